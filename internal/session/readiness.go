package session

import (
	"context"
	"sync"
)

// ReadinessSignal is a boolean latched-once signal with wait-until-set
// semantics (spec §3): it starts unset, transitions to set exactly once,
// and never clears.
type ReadinessSignal struct {
	once sync.Once
	ch   chan struct{}
}

// NewReadinessSignal returns an unset signal.
func NewReadinessSignal() *ReadinessSignal {
	return &ReadinessSignal{ch: make(chan struct{})}
}

// Set latches the signal. Safe to call more than once or concurrently.
func (r *ReadinessSignal) Set() {
	r.once.Do(func() { close(r.ch) })
}

// IsSet reports whether the signal has been latched.
func (r *ReadinessSignal) IsSet() bool {
	select {
	case <-r.ch:
		return true
	default:
		return false
	}
}

// Wait blocks until the signal is set or ctx is done.
func (r *ReadinessSignal) Wait(ctx context.Context) error {
	select {
	case <-r.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
