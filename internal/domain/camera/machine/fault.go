// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"context"

	"github.com/ManuGH/camlife/internal/domain/camera/lifecycle"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/log"
)

// ReportFault feeds a platform error observed outside a machine operation.
//
// Capability errors clear the matching capability flag and change nothing
// else. Permission revocation and device disconnection drop the session and
// move to a recoverable ERROR, reported once. Anything else is logged.
func (m *Machine) ReportFault(err error) {
	if err == nil {
		return
	}
	reason, detail := lifecycle.ClassifyReason(err)

	m.mu.Lock()
	switch reason {
	case model.RCapabilityUnsupported:
		if capability, ok := lifecycle.CapabilityFromError(err); ok && m.caps.Has(capability) {
			m.caps = m.caps.Without(capability)
			capabilityDegradedTotal.WithLabelValues(string(capability)).Inc()
			m.logger.Info().Str(log.FieldCapability, string(capability)).Msg("capability unsupported, degrading")
		}
	case model.RPermissionRevoked, model.RDeviceDisconnected:
		m.faultLocked(err)
	default:
		m.logger.Warn().
			Str(log.FieldReason, string(reason)).
			Str("detail", detail).
			Msg("unclassified fault ignored")
	}
	m.mu.Unlock()
	m.flush()
}

func (m *Machine) faultLocked(err error) {
	m.cancelHealingLocked("fault")
	if !lifecycle.Allowed(m.state, lifecycle.EvFault) {
		m.logger.Debug().
			Str(log.FieldOldState, string(m.state)).
			Msg("fault ignored")
		return
	}
	m.stopDebounceLocked()
	m.pauseDeferred = false
	release := m.detachLocked()
	m.supersedeLocked(model.OpFault)
	m.version++
	op := newOperation(model.OpFault, m.version)
	op.release = release

	rec := m.errorRecord(model.OpFault, lifecycle.WrapWithReasonClass(err))
	m.lastErr = &rec
	if terr := m.transitionLocked(lifecycle.EvFault, model.OpFault, op.token); terr != nil {
		m.logger.Error().Err(terr).Msg("fault transition rejected")
	}
	m.reportLocked(rec)

	if release != nil {
		m.enqueueLocked(op, func(ctx context.Context) {
			m.closeHandle(ctx, op, release)
		})
	}
}
