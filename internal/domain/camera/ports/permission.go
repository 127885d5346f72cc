// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package ports

import "context"

// PermissionStatus is the outcome of a permission check.
type PermissionStatus string

const (
	PermissionGranted           PermissionStatus = "granted"
	PermissionDenied            PermissionStatus = "denied"
	PermissionPermanentlyDenied PermissionStatus = "permanentlyDenied"
)

// Requirement lists the runtime permissions a session needs.
type Requirement struct {
	Camera     bool
	Microphone bool
}

// PermissionGate checks and, if needed, requests runtime permissions.
// It may block while the platform shows a prompt.
type PermissionGate interface {
	CheckOrRequest(ctx context.Context, req Requirement) (PermissionStatus, error)
}
