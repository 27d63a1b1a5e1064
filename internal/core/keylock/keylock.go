package keylock

import (
	"context"
	"fmt"
	"sync"
)

// KeyLock provides mutual exclusion per string key. At most one holder per
// key at a time; operations on different keys never contend. A waiter blocks
// only on its own key's holder and gives up when its context is done, so a
// slow storage round-trip cannot strand the lock for other callers forever.
type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// entry tracks one key's token and how many goroutines reference it.
// Entries are removed from the map once the last holder or waiter is gone.
type entry struct {
	refs int
	sem  chan struct{}
}

// New creates an empty KeyLock.
func New() *KeyLock {
	return &KeyLock{
		entries: make(map[string]*entry),
	}
}

// Acquire blocks until the key's lock is held or ctx is done.
// On ctx expiry the error wraps ctx.Err() and the key remains acquirable by
// others.
func (l *KeyLock) Acquire(ctx context.Context, key string) error {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, key)
		}
		l.mu.Unlock()
		return fmt.Errorf("acquire lock for %q: %w", key, ctx.Err())
	}
}

// Release frees the key's lock. Calling Release for a key that is not held
// is a no-op.
func (l *KeyLock) Release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return
	}

	// The holder owns the token, so this receive cannot block.
	<-e.sem
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
