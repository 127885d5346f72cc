// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"context"
	"time"
)

const awaitPollInterval = 5 * time.Millisecond

// Await blocks until the machine is quiescent: no pending operation, no open
// debounce window, no queued or running hardware work and no undelivered
// notification.
func (m *Machine) Await(ctx context.Context) error {
	ticker := time.NewTicker(awaitPollInterval)
	defer ticker.Stop()
	for {
		if m.quiescent() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (m *Machine) quiescent() bool {
	m.mu.Lock()
	busy := m.pending != nil || m.debounce != nil || len(m.jobs) > 0
	m.mu.Unlock()
	return !busy && m.tasks.Active() == 0 && m.notify.idle()
}
