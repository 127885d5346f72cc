// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"context"

	"github.com/ManuGH/camlife/internal/domain/camera/lifecycle"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
)

// Dispose supersedes all pending work, releases the session and moves to
// DISPOSED. It waits for in-flight hardware to settle for at most the
// transition timeout, then joins the machine's goroutines. Concurrent and
// repeated calls release the hardware once.
func (m *Machine) Dispose(ctx context.Context) error {
	_, err, _ := m.disposeGroup.Do("dispose", func() (interface{}, error) {
		return nil, m.dispose(ctx)
	})
	return err
}

func (m *Machine) dispose(ctx context.Context) error {
	m.mu.Lock()
	if m.state == model.StateDisposed {
		m.mu.Unlock()
		return nil
	}
	if m.state == model.StateDisposing {
		op := m.pending
		m.mu.Unlock()
		if op != nil {
			<-op.done
		}
		return nil
	}
	m.stopDebounceLocked()
	m.pauseDeferred = false
	release := m.detachLocked()
	op := m.beginLocked(model.OpDispose, lifecycle.EvDisposeRequested, m.target)
	op.release = release
	m.armTimeoutLocked(op)
	m.enqueueLocked(op, m.releaseJob(op))
	m.mu.Unlock()
	m.flush()

	// Bounded by the transition timeout.
	<-op.done

	m.stopLife()
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.cfg.TransitionTimeout)
	defer cancel()
	if err := m.tasks.CloseAndWait(drainCtx); err != nil {
		m.logger.Warn().Err(err).Msg("camera workers still running after dispose")
	}
	m.flush()
	m.logger.Info().Msg("camera machine disposed")
	return nil
}
