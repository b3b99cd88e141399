package strategy

import (
	"context"
	"sync"
)

// Future is the eventually-resolved artifact produced by
// CreateInstance (spec §4.4's "Future<Instance>"), and the shape the
// pool's instance cache stores per config IRI. Resolve/Reject are
// safe to call at most once; subsequent calls are no-ops, matching the
// state machine of spec §4.4: "Transitions once resolved/rejected are
// terminal."
type Future struct {
	done  chan struct{}
	once  sync.Once
	value Instance
	err   error
}

// NewFuture creates a pending Future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolve completes the future successfully. Only the first call takes effect.
func (f *Future) Resolve(value Instance) {
	f.once.Do(func() {
		f.value = value
		close(f.done)
	})
}

// Reject completes the future with an error. Only the first call takes effect.
func (f *Future) Reject(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Get blocks until the future settles or ctx is done, whichever comes first.
func (f *Future) Get(ctx context.Context) (Instance, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Peek reports the Future's outcome without blocking: ready is false if
// the Future has not yet settled. Used by health reporting to count
// rejected cache entries without waiting on in-flight constructions.
func (f *Future) Peek() (value Instance, err error, ready bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	default:
		return nil, nil, false
	}
}

// ResolvedFuture returns an already-completed, successful Future, used
// for the pool's Variable short-circuit (spec §4.4 step 2: "return
// strategy.resolve_variable(...) wrapped as an already-completed future").
func ResolvedFuture(value Instance) *Future {
	f := NewFuture()
	f.Resolve(value)
	return f
}

// RejectedFuture returns an already-completed, failed Future.
func RejectedFuture(err error) *Future {
	f := NewFuture()
	f.Reject(err)
	return f
}
