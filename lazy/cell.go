package lazy

import (
	"sync"
	"sync/atomic"
)

// resolved wraps a published value so that a legitimately nil module value
// is still distinguishable from "not yet resolved".
type resolved struct {
	value any
}

// cell is a write-once resolution slot: lock-free reads after publication,
// double-checked locking around the single producing computation. A failed
// computation publishes nothing, so the next do call retries.
type cell struct {
	mu  sync.Mutex
	val atomic.Pointer[resolved]
}

// get returns the published value, if any, without locking.
func (c *cell) get() (any, bool) {
	if r := c.val.Load(); r != nil {
		return r.value, true
	}
	return nil, false
}

// do returns the published value or runs fn to produce it. For one cell, fn
// executes at most once successfully; concurrent callers serialize and the
// losers observe the winner's result.
func (c *cell) do(fn func() (any, error)) (any, error) {
	if r := c.val.Load(); r != nil {
		return r.value, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have published while we waited for the lock.
	if r := c.val.Load(); r != nil {
		return r.value, nil
	}
	v, err := fn()
	if err != nil {
		return nil, err
	}
	c.val.Store(&resolved{value: v})
	return v, nil
}
