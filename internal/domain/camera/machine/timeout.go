// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"fmt"
	"time"

	"github.com/ManuGH/camlife/internal/domain/camera/lifecycle"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/log"
)

func (m *Machine) armTimeoutLocked(op *operation) {
	op.stopTimer()
	op.timer = time.AfterFunc(m.cfg.TransitionTimeout, func() { m.onTimeout(op) })
}

// onTimeout force-resolves an operation that did not settle in time. A stuck
// release is treated as done. A stuck acquisition lands in ERROR, but keeps
// running: if its session still arrives, acquireJob adopts it and the machine
// returns to READY without a caller retry.
func (m *Machine) onTimeout(op *operation) {
	m.mu.Lock()
	if !m.isCurrentLocked(op) {
		m.mu.Unlock()
		return
	}
	from := m.state
	outcome := lifecycle.TimeoutOutcome(from)
	op.cancelled = true
	op.timer = nil
	m.pending = nil
	m.version++

	err := lifecycle.NewReasonError(model.RTransitionTimeout,
		fmt.Sprintf("%s did not settle within %s", op.kind, m.cfg.TransitionTimeout), nil)
	rec := m.errorRecord(op.kind, err)
	if outcome.State == model.StateError {
		m.lastErr = &rec
		m.healing = op
	}
	timeoutsTotal.WithLabelValues(string(from)).Inc()
	m.logger.Warn().
		Str(log.FieldOp, string(op.kind)).
		Uint64(log.FieldToken, op.token).
		Str(log.FieldOldState, string(from)).
		Str(log.FieldNewState, string(outcome.State)).
		Msg("transition timed out")

	if terr := m.transitionLocked(lifecycle.EvTimeout, op.kind, m.version); terr != nil {
		m.logger.Error().Err(terr).Msg("timeout transition rejected")
	}
	m.reportLocked(rec)
	op.finish(err)
	m.mu.Unlock()
	m.flush()
}
