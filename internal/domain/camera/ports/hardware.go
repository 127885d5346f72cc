// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ports

import (
	"context"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
)

// SessionHandle is an opaque token for an open hardware capture session.
// Capture, record, zoom and focus primitives live behind the concrete type;
// the lifecycle machine only tracks the handle.
type SessionHandle interface {
	// ID returns a stable identifier for logs.
	ID() string
}

// OpenRequest describes the session to acquire.
type OpenRequest struct {
	Descriptor  model.SessionDescriptor
	Orientation model.Orientation
}

// HardwareSession is the contract of the native camera layer.
// Implementations must honor ctx on a best-effort basis; the machine never
// assumes a call can be preempted.
type HardwareSession interface {
	// Open acquires the lens described by req.
	Open(ctx context.Context, req OpenRequest) (SessionHandle, error)

	// Close releases a handle previously returned by Open.
	Close(ctx context.Context, h SessionHandle) error

	// Cameras lists the lenses available on the device. Unlike Open, Close and
	// ApplySettings it is not serialized by the machine and may run while
	// another call is in flight.
	Cameras(ctx context.Context) ([]model.CameraInfo, error)

	// ApplySettings pushes user-visible settings to an open session.
	// Unsupported features are reported with *CapabilityError.
	ApplySettings(ctx context.Context, h SessionHandle, s model.CaptureSettings) error
}
