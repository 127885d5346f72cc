// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"errors"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
)

// Error classes. Every error returned by the machine matches exactly one of
// these with errors.Is.
var (
	ErrPermission                  = errors.New("camera permission denied")
	ErrPermissionPermanentlyDenied = errors.New("camera permission permanently denied")
	ErrSessionLost                 = errors.New("camera session lost")
	ErrHardwareUnavailable         = errors.New("camera hardware unavailable")
	ErrCapabilityUnsupported       = errors.New("camera capability unsupported")
	ErrTransitionTimeout           = errors.New("camera transition timed out")
	ErrSwitchFailed                = errors.New("camera switch failed")
	ErrSuperseded                  = errors.New("operation superseded")
	ErrDisposed                    = errors.New("camera machine disposed")
	ErrRetryThrottled              = errors.New("initialize retry throttled")
	ErrInvalidTransition           = errors.New("invalid lifecycle transition")
	ErrCancelled                   = errors.New("operation cancelled")
	ErrUnknown                     = errors.New("unknown camera error")
)

// ReasonErrorClass maps a reason code to its error class.
func ReasonErrorClass(reason model.ReasonCode) error {
	switch reason {
	case model.RPermissionDenied:
		return ErrPermission
	case model.RPermissionPermanentlyDenied:
		return ErrPermissionPermanentlyDenied
	case model.RPermissionRevoked, model.RDeviceDisconnected:
		return ErrSessionLost
	case model.RHardwareUnavailable, model.RCameraInUse:
		return ErrHardwareUnavailable
	case model.RCapabilityUnsupported, model.RLensUnavailable:
		return ErrCapabilityUnsupported
	case model.RTransitionTimeout:
		return ErrTransitionTimeout
	case model.RSwitchFailed:
		return ErrSwitchFailed
	case model.RSuperseded:
		return ErrSuperseded
	case model.RDisposed:
		return ErrDisposed
	case model.RRetryThrottled:
		return ErrRetryThrottled
	case model.RInvalidTransition:
		return ErrInvalidTransition
	case model.RCancelled:
		return ErrCancelled
	case model.RNone:
		return nil
	default:
		return ErrUnknown
	}
}
