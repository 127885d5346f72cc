// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"github.com/ManuGH/camlife/internal/domain/camera/lifecycle"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/log"
)

// HandleAppLifecycleChange reacts to the host app moving between foreground
// and background. Release events preempt any in-flight resume, recreate or
// switch. A release seen while INITIALIZING is applied once READY is reached;
// a foreground event before then cancels it.
func (m *Machine) HandleAppLifecycleChange(ev model.AppLifecycleEvent) {
	m.mu.Lock()
	switch {
	case ev.ReleasesCamera():
		m.handleReleaseLocked(ev)
	case ev == model.AppForegrounded:
		m.handleForegroundLocked()
	default:
		m.logger.Warn().Str(log.FieldEvent, string(ev)).Msg("unknown app lifecycle event")
	}
	m.mu.Unlock()
	m.flush()
}

func (m *Machine) handleReleaseLocked(ev model.AppLifecycleEvent) {
	if m.state == model.StateInitializing {
		m.pauseDeferred = true
		m.logger.Debug().Str(log.FieldEvent, string(ev)).Msg("pause deferred until initialized")
		return
	}
	if m.state == model.StateError {
		m.cancelHealingLocked(string(ev))
	}
	if !lifecycle.Allowed(m.state, lifecycle.EvPauseRequested) {
		m.logger.Debug().
			Str(log.FieldEvent, string(ev)).
			Str(log.FieldOldState, string(m.state)).
			Msg("app lifecycle event ignored")
		return
	}
	m.pauseLocked()
}

func (m *Machine) handleForegroundLocked() {
	switch m.state {
	case model.StateInitializing:
		m.pauseDeferred = false
	case model.StatePaused, model.StatePausing:
		m.resumeLocked()
	default:
		m.logger.Debug().
			Str(log.FieldEvent, string(model.AppForegrounded)).
			Str(log.FieldOldState, string(m.state)).
			Msg("app lifecycle event ignored")
	}
}

func (m *Machine) pauseLocked() {
	m.stopDebounceLocked()
	release := m.detachLocked()
	op := m.beginLocked(model.OpPause, lifecycle.EvPauseRequested, m.target)
	op.release = release
	m.armTimeoutLocked(op)
	m.enqueueLocked(op, m.releaseJob(op))
}

func (m *Machine) resumeLocked() {
	op := m.beginLocked(model.OpResume, lifecycle.EvResumeRequested, m.target)
	m.armTimeoutLocked(op)
	m.enqueueLocked(op, m.acquireJob(op))
}
