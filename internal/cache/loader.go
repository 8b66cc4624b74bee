package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Loader fronts a Cache with read-through loading. Concurrent misses for
// the same key share one load. Cache failures are logged and bypassed;
// only load failures reach the caller.
type Loader struct {
	cache Cache
	group singleflight.Group
	log   zerolog.Logger
}

func NewLoader(c Cache, log zerolog.Logger) *Loader {
	if c == nil {
		c = NoopCache{}
	}
	return &Loader{cache: c, log: log}
}

func (l *Loader) Cache() Cache { return l.cache }

// Invalidate drops key.
func (l *Loader) Invalidate(ctx context.Context, key string) {
	if err := l.cache.Delete(ctx, key); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
	}
}

// InvalidatePrefix drops every key under prefix.
func (l *Loader) InvalidatePrefix(ctx context.Context, prefix string) {
	if err := l.cache.DeletePrefix(ctx, prefix); err != nil {
		l.log.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidate failed")
	}
}

// Fetch returns the cached value at key, or calls load, caches the result
// for ttl and returns it.
func Fetch[T any](ctx context.Context, l *Loader, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var out T
	hit, err := l.cache.Get(ctx, key, &out)
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if hit {
		return out, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := l.cache.Set(ctx, key, val, ttl); err != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
