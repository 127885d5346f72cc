// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/camlife/internal/domain/camera/lifecycle"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
	"github.com/ManuGH/camlife/internal/log"
	"github.com/ManuGH/camlife/internal/telemetry"
)

// acquireJob closes the operation's detached handle, opens the target session
// and commits READY while the operation is still current. A session opened for
// a superseded operation is closed again and never published.
func (m *Machine) acquireJob(op *operation) func(ctx context.Context) {
	return func(ctx context.Context) {
		if op.release != nil {
			m.closeHandle(ctx, op, op.release)
		}

		m.mu.Lock()
		if !m.ownsLocked(op) {
			m.staleLocked(op, "before_open")
			m.mu.Unlock()
			return
		}
		req := ports.OpenRequest{Descriptor: op.target, Orientation: m.latest}
		m.mu.Unlock()

		h, err := m.openHandle(ctx, op, req)
		if err != nil {
			m.mu.Lock()
			defer m.mu.Unlock()
			if !m.isCurrentLocked(op) {
				if m.healing == op {
					m.healing = nil
				}
				m.staleLocked(op, "open_failed")
				return
			}
			m.failLocked(op, classifyOpenError(op.kind, err))
			return
		}

		settings := op.settings
		caps := model.AllCapabilities()
		if op.lens != nil && !op.lens.HasFlash {
			caps = caps.Without(model.CapabilityFlash).Without(model.CapabilityTorch)
			settings.Flash = model.FlashOff
		}
		if serr := m.hw.ApplySettings(ctx, h, settings); serr != nil {
			if sessionLost(serr) {
				m.closeHandle(ctx, op, h)
				m.mu.Lock()
				defer m.mu.Unlock()
				if !m.isCurrentLocked(op) {
					if m.healing == op {
						m.healing = nil
					}
					m.staleLocked(op, "settings_failed")
					return
				}
				m.failLocked(op, lifecycle.WrapWithReasonClass(serr))
				return
			}
			caps = m.degrade(caps, serr)
		}

		m.mu.Lock()
		adopted := false
		if !m.isCurrentLocked(op) {
			if !m.ownsLocked(op) {
				m.staleLocked(op, "after_open")
				m.mu.Unlock()
				m.closeHandle(ctx, op, h)
				return
			}
			adopted = true
		}
		defer m.mu.Unlock()

		d := op.target
		m.handle = h
		m.descriptor = &d
		m.settings = settings
		m.caps = caps
		m.orientation = model.OrientationSnapshot{Orientation: req.Orientation, ConfiguredAt: time.Now()}
		m.healing = nil
		if adopted {
			lateSessionsAdoptedTotal.WithLabelValues(string(op.kind)).Inc()
			m.logger.Info().
				Str(log.FieldOp, string(op.kind)).
				Uint64(log.FieldToken, op.token).
				Str(log.FieldHandle, h.ID()).
				Msg("late session adopted after timeout")
		} else {
			m.pending = nil
			op.stopTimer()
		}
		if terr := m.transitionLocked(lifecycle.EvSessionOpened, op.kind, op.token); terr != nil {
			m.logger.Error().Err(terr).Msg("ready transition rejected")
		}
		op.finish(nil)
		m.afterReadyLocked()
	}
}

// releaseJob closes the operation's detached handle and commits the release
// transition (PAUSING to PAUSED, DISPOSING to DISPOSED).
func (m *Machine) releaseJob(op *operation) func(ctx context.Context) {
	return func(ctx context.Context) {
		if op.release != nil {
			m.closeHandle(ctx, op, op.release)
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.isCurrentLocked(op) {
			m.staleLocked(op, "after_release")
			return
		}
		m.pending = nil
		op.stopTimer()
		if err := m.transitionLocked(lifecycle.EvSessionReleased, op.kind, op.token); err != nil {
			m.logger.Error().Err(err).Msg("release transition rejected")
		}
		op.finish(nil)
	}
}

// afterReadyLocked applies work that waited for a settled session.
func (m *Machine) afterReadyLocked() {
	if m.pauseDeferred {
		m.pauseDeferred = false
		m.pauseLocked()
		return
	}
	if m.debounce == nil && m.cfg.OrientationPolicy.RequiresRecreate(m.orientation.Orientation, m.latest) {
		m.recreateLocked()
	}
}

func classifyOpenError(kind model.OpKind, err error) error {
	switch kind {
	case model.OpInitialize:
		return lifecycle.WrapWithDefault(err, model.RHardwareUnavailable)
	case model.OpSwitch:
		switch lifecycle.ReasonOf(err) {
		case model.RPermissionRevoked, model.RDeviceDisconnected, model.RTransitionTimeout:
			return lifecycle.WrapWithReasonClass(err)
		}
		return lifecycle.NewReasonError(model.RSwitchFailed, "switch open failed", err)
	default:
		return lifecycle.WrapWithReasonClass(err)
	}
}

// sessionLost reports whether err means the session just opened is already gone.
func sessionLost(err error) bool {
	switch lifecycle.ReasonOf(err) {
	case model.RPermissionRevoked, model.RDeviceDisconnected:
		return true
	}
	return false
}

// degrade clears the capability named by a settings error. Other settings
// errors are logged; settings are best effort.
func (m *Machine) degrade(caps model.Capabilities, err error) model.Capabilities {
	capability, ok := lifecycle.CapabilityFromError(err)
	if !ok {
		reason, detail := lifecycle.ClassifyReason(err)
		m.logger.Warn().
			Str(log.FieldReason, string(reason)).
			Str("detail", detail).
			Msg("apply settings failed")
		return caps
	}
	capabilityDegradedTotal.WithLabelValues(string(capability)).Inc()
	m.logger.Info().Str(log.FieldCapability, string(capability)).Msg("capability unsupported, degrading")
	return caps.Without(capability)
}

func (m *Machine) openHandle(ctx context.Context, op *operation, req ports.OpenRequest) (ports.SessionHandle, error) {
	attrs := telemetry.OperationAttributes(m.id, string(op.kind), op.token)
	attrs = append(attrs, telemetry.SessionAttributes(
		req.Descriptor.HardwareID,
		string(req.Descriptor.Facing),
		string(req.Descriptor.Resolution),
		string(req.Orientation),
	)...)
	ctx, span := m.tracer.Start(ctx, "camera.open", trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	h, err := m.hw.Open(ctx, req)
	openDuration.Observe(time.Since(start).Seconds())
	if err == nil && h == nil {
		err = fmt.Errorf("%w: open returned no handle", ports.ErrHardwareUnavailable)
	}
	hardwareOpsTotal.WithLabelValues("open", resultLabel(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		span.SetAttributes(telemetry.ErrorAttributes(err, string(lifecycle.ReasonOf(err)))...)
		return nil, err
	}

	m.logger.Debug().
		Str(log.FieldOp, string(op.kind)).
		Uint64(log.FieldToken, op.token).
		Str(log.FieldHandle, h.ID()).
		Str(log.FieldHardwareID, req.Descriptor.HardwareID).
		Str(log.FieldOrientation, string(req.Orientation)).
		Dur(log.FieldDuration, time.Since(start)).
		Msg("session opened")
	return h, nil
}

// closeHandle releases h. Close failures are logged, never surfaced: the
// handle is gone from the machine either way.
func (m *Machine) closeHandle(ctx context.Context, op *operation, h ports.SessionHandle) {
	attrs := telemetry.OperationAttributes(m.id, string(op.kind), op.token)
	ctx, span := m.tracer.Start(ctx, "camera.close", trace.WithAttributes(attrs...))
	defer span.End()

	err := m.hw.Close(ctx, h)
	hardwareOpsTotal.WithLabelValues("close", resultLabel(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "close failed")
		_, detail := lifecycle.ClassifyReason(err)
		m.logger.Warn().
			Str(log.FieldOp, string(op.kind)).
			Str(log.FieldHandle, h.ID()).
			Str("detail", detail).
			Msg("session close failed")
		return
	}
	m.logger.Debug().
		Str(log.FieldOp, string(op.kind)).
		Str(log.FieldHandle, h.ID()).
		Msg("session closed")
}
