package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentLocks_SerializesSameStudent(t *testing.T) {
	l := newStudentLocks()
	unlock, err := l.acquire(context.Background(), "S1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		u, err := l.acquire(context.Background(), "S1")
		if err == nil {
			close(acquired)
			u()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire must wait for the first holder")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second acquire never proceeded")
	}
}

func TestStudentLocks_IndependentStudents(t *testing.T) {
	l := newStudentLocks()
	a, err := l.acquire(context.Background(), "S1")
	require.NoError(t, err)
	b, err := l.acquire(context.Background(), "S2")
	require.NoError(t, err)
	assert.Equal(t, 2, l.size())

	a()
	b()
	assert.Equal(t, 0, l.size())
}

func TestStudentLocks_ContextCancelled(t *testing.T) {
	l := newStudentLocks()
	unlock, err := l.acquire(context.Background(), "S1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.acquire(ctx, "S1")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, l.size())
}

func TestStudentLocks_UnlockIsIdempotent(t *testing.T) {
	l := newStudentLocks()
	unlock, err := l.acquire(context.Background(), "S1")
	require.NoError(t, err)
	unlock()
	unlock()
	assert.Equal(t, 0, l.size())

	again, err := l.acquire(context.Background(), "S1")
	require.NoError(t, err)
	again()
}
