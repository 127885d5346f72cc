// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import "time"

// ReasonCode is a compact, typed failure signal.
// Keep these stable: metrics and UI routing depend on them.
type ReasonCode string

const (
	RNone                        ReasonCode = "R_NONE"
	RUnknown                     ReasonCode = "R_UNKNOWN"
	RPermissionDenied            ReasonCode = "R_PERMISSION_DENIED"
	RPermissionPermanentlyDenied ReasonCode = "R_PERMISSION_PERMANENTLY_DENIED"
	RPermissionRevoked           ReasonCode = "R_PERMISSION_REVOKED"
	RHardwareUnavailable         ReasonCode = "R_HARDWARE_UNAVAILABLE"
	RCameraInUse                 ReasonCode = "R_CAMERA_IN_USE"
	RDeviceDisconnected          ReasonCode = "R_DEVICE_DISCONNECTED"
	RCapabilityUnsupported       ReasonCode = "R_CAPABILITY_UNSUPPORTED"
	RLensUnavailable             ReasonCode = "R_LENS_UNAVAILABLE"
	RTransitionTimeout           ReasonCode = "R_TRANSITION_TIMEOUT"
	RSwitchFailed                ReasonCode = "R_SWITCH_FAILED"
	RSuperseded                  ReasonCode = "R_SUPERSEDED"
	RDisposed                    ReasonCode = "R_DISPOSED"
	RRetryThrottled              ReasonCode = "R_RETRY_THROTTLED"
	RInvalidTransition           ReasonCode = "R_INVALID_TRANSITION"
	RCancelled                   ReasonCode = "R_CANCELLED"
)

// IsRecoverable reports whether a caller-driven Initialize retry can succeed
// without the user leaving the app.
func (r ReasonCode) IsRecoverable() bool {
	switch r {
	case RPermissionPermanentlyDenied, RHardwareUnavailable:
		return false
	}
	return true
}

// ErrorRecord is the immutable error notification handed to the owner.
// Message is public-safe; Cause keeps the classified error for logs.
type ErrorRecord struct {
	Source      OpKind     `json:"source"`
	Reason      ReasonCode `json:"reason"`
	Message     string     `json:"message"`
	Cause       error      `json:"-"`
	Recoverable bool       `json:"recoverable"`
	At          time.Time  `json:"at"`
}
