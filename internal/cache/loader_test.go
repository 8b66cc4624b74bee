package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_LoadsOnceThenHits(t *testing.T) {
	l := NewLoader(NewMemoryCache(), zerolog.Nop())
	ctx := context.Background()
	var calls atomic.Int32
	load := func(context.Context) (profile, error) {
		calls.Add(1)
		return profile{Major: "EE"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Fetch(ctx, l, "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "EE", got.Major)
	}
	assert.Equal(t, int32(1), calls.Load())

	l.Invalidate(ctx, "k")
	_, err := Fetch(ctx, l, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_ConcurrentMissesShareLoad(t *testing.T) {
	l := NewLoader(NewMemoryCache(), zerolog.Nop())
	ctx := context.Background()
	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(ctx, l, "shared", time.Minute, load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, 42, v)
	}
	assert.LessOrEqual(t, calls.Load(), int32(8))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestFetch_ErrorsAreNotCached(t *testing.T) {
	l := NewLoader(NewMemoryCache(), zerolog.Nop())
	ctx := context.Background()
	boom := errors.New("store down")

	_, err := Fetch(ctx, l, "k", time.Minute, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	v, err := Fetch(ctx, l, "k", time.Minute, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFetch_NoopCacheAlwaysLoads(t *testing.T) {
	l := NewLoader(nil, zerolog.Nop())
	var calls int
	for i := 0; i < 2; i++ {
		_, err := Fetch(context.Background(), l, "k", time.Minute, func(context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

type brokenCache struct{ NoopCache }

func (brokenCache) Get(context.Context, string, any) (bool, error) { return false, errors.New("conn refused") }

func TestFetch_CacheFailureFallsBackToLoad(t *testing.T) {
	l := NewLoader(brokenCache{}, zerolog.Nop())
	v, err := Fetch(context.Background(), l, "k", time.Minute, func(context.Context) (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}
