// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ports

import (
	"errors"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
)

// Adapters wrap platform failures with these so the machine can classify them.
var (
	ErrPermissionRevoked   = errors.New("camera permission revoked")
	ErrDeviceDisconnected  = errors.New("camera device disconnected")
	ErrCameraInUse         = errors.New("camera in use by another client")
	ErrHardwareUnavailable = errors.New("camera hardware unavailable")
	ErrCapability          = errors.New("capability unsupported")
)

// CapabilityError reports a feature the current lens cannot provide.
type CapabilityError struct {
	Capability model.Capability
}

func (e *CapabilityError) Error() string {
	if e == nil || e.Capability == "" {
		return ErrCapability.Error()
	}
	return "capability unsupported: " + string(e.Capability)
}

func (e *CapabilityError) Unwrap() error {
	return ErrCapability
}
