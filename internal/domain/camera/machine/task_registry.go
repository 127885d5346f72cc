// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// taskRegistry tracks machine-owned goroutines and provides a bounded join on dispose.
type taskRegistry struct {
	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
	active  atomic.Int64
}

func (r *taskRegistry) Go(fn func()) bool {
	r.mu.Lock()
	if r.closing {
		r.mu.Unlock()
		return false
	}
	r.wg.Add(1)
	r.active.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer r.active.Add(-1)
		fn()
	}()

	return true
}

// Active returns the number of running tasks.
func (r *taskRegistry) Active() int64 {
	return r.active.Load()
}

func (r *taskRegistry) CloseAndWait(ctx context.Context) error {
	r.mu.Lock()
	r.closing = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("camera worker drain timeout: %w", ctx.Err())
	}
}
