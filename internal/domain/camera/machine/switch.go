// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"context"
	"fmt"

	"github.com/ManuGH/camlife/internal/domain/camera/lifecycle"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/log"
)

// SwitchCamera moves the session to the first lens with the requested facing.
//
// From READY, RECREATING or SWITCHING the current session is released and the
// new lens acquired; a pending orientation recreate is dropped. While no
// session is held (PAUSED, PAUSING, UNINITIALIZED, ERROR) only the target is
// changed and the next acquisition uses it. Flash resets to off on front
// lenses and zoom returns to baseline. A lens missing from the device fails
// with lifecycle.ErrCapabilityUnsupported without touching the session.
func (m *Machine) SwitchCamera(ctx context.Context, facing model.LensFacing) error {
	if !facing.Valid() {
		return lifecycle.NewReasonError(model.RLensUnavailable, fmt.Sprintf("unknown facing %q", facing), nil)
	}
	m.mu.Lock()
	err := m.switchableLocked()
	m.mu.Unlock()
	if err != nil {
		return err
	}

	// Lens enumeration is a read-only query outside the hardware lane, so a
	// switch can supersede an acquisition whose Open is still running.
	cams, err := m.hw.Cameras(ctx)
	if err != nil {
		return lifecycle.WrapWithDefault(err, model.RLensUnavailable)
	}
	var lens *model.CameraInfo
	for i := range cams {
		if cams[i].Facing == facing {
			lens = &cams[i]
			break
		}
	}
	if lens == nil {
		return lifecycle.NewReasonError(model.RLensUnavailable, fmt.Sprintf("no %s lens on device", facing), nil)
	}

	m.mu.Lock()
	if err := m.switchableLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	target := m.target.WithLens(*lens)
	settings := m.settings.ForLens(facing)

	switch m.state {
	case model.StatePaused, model.StatePausing, model.StateUninitialized, model.StateError:
		m.target = target
		m.settings = settings
		m.cancelHealingLocked("switch")
		logger := log.WithContext(ctx, m.logger)
		logger.Debug().
			Str(log.FieldFacing, string(facing)).
			Str(log.FieldHardwareID, target.HardwareID).
			Str(log.FieldOldState, string(m.state)).
			Msg("switch retargeted next acquisition")
		m.mu.Unlock()
		return nil
	}

	m.stopDebounceLocked()
	release := m.detachLocked()
	m.settings = settings
	op := m.beginLocked(model.OpSwitch, lifecycle.EvSwitchRequested, target)
	op.release = release
	op.lens = lens
	logger := log.WithContext(ctx, m.logger)
	logger.Debug().
		Uint64(log.FieldToken, op.token).
		Str(log.FieldHardwareID, target.HardwareID).
		Msg("switch requested")
	m.armTimeoutLocked(op)
	m.enqueueLocked(op, m.acquireJob(op))
	m.mu.Unlock()
	m.flush()

	return m.wait(ctx, op)
}

func (m *Machine) switchableLocked() error {
	switch m.state {
	case model.StateDisposing, model.StateDisposed:
		return lifecycle.NewReasonError(model.RDisposed, "switch after dispose", nil)
	case model.StateInitializing, model.StateResuming:
		return lifecycle.NewReasonError(model.RInvalidTransition, fmt.Sprintf("switch not allowed in %s", m.state), nil)
	}
	return nil
}
