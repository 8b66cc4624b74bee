package service

import (
	"context"
	"sync"
)

// studentLocks serializes planning mutations per student. Entries are
// reference counted and dropped once no caller holds or waits on them.
type studentLocks struct {
	mu    sync.Mutex
	locks map[string]*studentLock
}

type studentLock struct {
	sem  chan struct{}
	refs int
}

func newStudentLocks() *studentLocks {
	return &studentLocks{locks: make(map[string]*studentLock)}
}

// acquire blocks until the student's lock is free or ctx is done.
func (l *studentLocks) acquire(ctx context.Context, studentID string) (func(), error) {
	l.mu.Lock()
	lk, ok := l.locks[studentID]
	if !ok {
		lk = &studentLock{sem: make(chan struct{}, 1)}
		l.locks[studentID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	select {
	case lk.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(studentID, lk)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lk.sem
			l.release(studentID, lk)
		})
	}, nil
}

func (l *studentLocks) release(studentID string, lk *studentLock) {
	l.mu.Lock()
	lk.refs--
	if lk.refs == 0 {
		delete(l.locks, studentID)
	}
	l.mu.Unlock()
}

func (l *studentLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
