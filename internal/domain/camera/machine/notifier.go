// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"sync"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
)

type notification struct {
	change *model.StateChange
	err    *model.ErrorRecord
}

// notifier delivers notifications in enqueue order. Enqueue happens under the
// machine lock so the order matches commit order; delivery happens outside of
// it. A callback that re-enters the machine only appends to the queue: the
// goroutine already draining picks the new entries up, so callbacks never
// nest and never run concurrently.
type notifier struct {
	mu       sync.Mutex
	queue    []notification
	draining bool
}

func (n *notifier) enqueue(item notification) {
	n.mu.Lock()
	n.queue = append(n.queue, item)
	n.mu.Unlock()
}

func (n *notifier) drain(deliver func(notification)) {
	n.mu.Lock()
	if n.draining {
		n.mu.Unlock()
		return
	}
	n.draining = true
	for len(n.queue) > 0 {
		item := n.queue[0]
		n.queue[0] = notification{}
		n.queue = n.queue[1:]
		n.mu.Unlock()
		deliver(item)
		n.mu.Lock()
	}
	n.draining = false
	n.mu.Unlock()
}

func (n *notifier) idle() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return !n.draining && len(n.queue) == 0
}
