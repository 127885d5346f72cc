// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"context"
	"fmt"

	"github.com/ManuGH/camlife/internal/domain/camera/lifecycle"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
	"github.com/ManuGH/camlife/internal/log"
)

// Initialize consults the permission gate, opens the session and waits for READY.
//
// It is valid from UNINITIALIZED and, as a manual retry, from ERROR. It is a
// no-op when READY and joins an initialization already in flight. Retries
// from ERROR are rate limited and fail with lifecycle.ErrRetryThrottled.
func (m *Machine) Initialize(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case model.StateDisposing, model.StateDisposed:
		m.mu.Unlock()
		return lifecycle.NewReasonError(model.RDisposed, "initialize after dispose", nil)
	case model.StateReady:
		m.mu.Unlock()
		return nil
	case model.StateInitializing:
		op := m.pending
		m.mu.Unlock()
		return m.wait(ctx, op)
	}
	if !lifecycle.Allowed(m.state, lifecycle.EvInitRequested) {
		state := m.state
		m.mu.Unlock()
		return lifecycle.NewReasonError(model.RInvalidTransition, fmt.Sprintf("initialize not allowed in %s", state), nil)
	}
	if m.state == model.StateError && !m.retry.Allow() {
		m.mu.Unlock()
		return lifecycle.NewReasonError(model.RRetryThrottled, "initialize retry throttled", nil)
	}

	m.pauseDeferred = false
	op := m.beginLocked(model.OpInitialize, lifecycle.EvInitRequested, m.target)
	logger := log.WithContext(ctx, m.logger)
	logger.Debug().
		Uint64(log.FieldToken, op.token).
		Str(log.FieldHardwareID, op.target.HardwareID).
		Msg("initialize requested")
	m.tasks.Go(func() { m.requestPermission(op) })
	m.mu.Unlock()
	m.flush()

	return m.wait(ctx, op)
}

// requestPermission runs the permission phase. Prompts may take arbitrarily
// long, so the transition timeout is armed only once access is granted.
func (m *Machine) requestPermission(op *operation) {
	req := ports.Requirement{Camera: true, Microphone: op.target.AudioEnabled}
	status, err := m.perms.CheckOrRequest(m.life, req)

	m.mu.Lock()
	if !m.isCurrentLocked(op) {
		m.staleLocked(op, "permission")
		m.mu.Unlock()
		return
	}
	switch {
	case err != nil:
		m.failLocked(op, lifecycle.WrapWithDefault(err, model.RPermissionDenied))
	case status == ports.PermissionGranted:
		m.armTimeoutLocked(op)
		m.enqueueLocked(op, m.acquireJob(op))
	case status == ports.PermissionPermanentlyDenied:
		m.failLocked(op, lifecycle.NewReasonError(model.RPermissionPermanentlyDenied, "permission permanently denied", nil))
	default:
		m.failLocked(op, lifecycle.NewReasonError(model.RPermissionDenied, fmt.Sprintf("permission %s", status), nil))
	}
	m.mu.Unlock()
	m.flush()
}
