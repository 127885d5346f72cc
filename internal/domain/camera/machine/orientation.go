// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"time"

	"github.com/ManuGH/camlife/internal/domain/camera/lifecycle"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/log"
)

// HandleOrientationChange records the device orientation. Bursts within the
// debounce window collapse into one decision made with the final orientation.
// When that decision falls outside READY it is re-evaluated on the next READY.
func (m *Machine) HandleOrientationChange(o model.Orientation) {
	if !o.Valid() {
		m.logger.Warn().Str(log.FieldOrientation, string(o)).Msg("invalid orientation ignored")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == model.StateDisposing || m.state == model.StateDisposed {
		return
	}
	m.latest = o
	m.orientGen++
	gen := m.orientGen
	if m.debounce != nil {
		m.debounce.Stop()
	}
	m.debounce = time.AfterFunc(m.cfg.Debounce, func() { m.onDebounce(gen) })
}

func (m *Machine) onDebounce(gen uint64) {
	m.mu.Lock()
	if gen != m.orientGen || m.debounce == nil {
		m.mu.Unlock()
		return
	}
	m.debounce = nil
	if m.state == model.StateReady &&
		lifecycle.Allowed(m.state, lifecycle.EvRecreateRequested) &&
		m.cfg.OrientationPolicy.RequiresRecreate(m.orientation.Orientation, m.latest) {
		m.logger.Debug().
			Str("configured", string(m.orientation.Orientation)).
			Str(log.FieldOrientation, string(m.latest)).
			Msg("orientation requires recreate")
		m.recreateLocked()
	}
	m.mu.Unlock()
	m.flush()
}

// stopDebounceLocked drops a pending orientation decision. The latest
// orientation is kept; the next open uses it.
func (m *Machine) stopDebounceLocked() {
	if m.debounce != nil {
		m.debounce.Stop()
		m.debounce = nil
	}
	m.orientGen++
}

func (m *Machine) recreateLocked() {
	release := m.detachLocked()
	op := m.beginLocked(model.OpRecreate, lifecycle.EvRecreateRequested, m.target)
	op.release = release
	m.armTimeoutLocked(op)
	m.enqueueLocked(op, m.acquireJob(op))
}
