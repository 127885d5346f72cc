// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import (
	"errors"
	"fmt"
)

// LensFacing is the physical direction a lens points at.
type LensFacing string

const (
	FacingBack     LensFacing = "back"
	FacingFront    LensFacing = "front"
	FacingExternal LensFacing = "external"
)

// Valid reports whether f is a known lens direction.
func (f LensFacing) Valid() bool {
	switch f {
	case FacingBack, FacingFront, FacingExternal:
		return true
	}
	return false
}

// Opposite returns the lens on the other side of the device. External lenses map to back.
func (f LensFacing) Opposite() LensFacing {
	if f == FacingBack {
		return FacingFront
	}
	return FacingBack
}

// ResolutionPreset is the logical capture quality tier.
type ResolutionPreset string

const (
	ResolutionLow      ResolutionPreset = "low"
	ResolutionMedium   ResolutionPreset = "medium"
	ResolutionHigh     ResolutionPreset = "high"
	ResolutionVeryHigh ResolutionPreset = "veryHigh"
	ResolutionUltra    ResolutionPreset = "ultraHigh"
	ResolutionMax      ResolutionPreset = "max"
)

// Valid reports whether r is a known preset.
func (r ResolutionPreset) Valid() bool {
	switch r {
	case ResolutionLow, ResolutionMedium, ResolutionHigh, ResolutionVeryHigh, ResolutionUltra, ResolutionMax:
		return true
	}
	return false
}

// SessionDescriptor fully describes the hardware session a machine wants open.
type SessionDescriptor struct {
	HardwareID   string           `json:"hardwareId" yaml:"hardwareId"`
	Facing       LensFacing       `json:"facing" yaml:"facing"`
	Resolution   ResolutionPreset `json:"resolution" yaml:"resolution"`
	AudioEnabled bool             `json:"audioEnabled" yaml:"audio"`
}

var ErrInvalidDescriptor = errors.New("invalid session descriptor")

// Validate checks the descriptor. An empty HardwareID is allowed; the adapter
// then resolves the first lens with the requested facing.
func (d SessionDescriptor) Validate() error {
	if !d.Facing.Valid() {
		return fmt.Errorf("%w: unknown facing %q", ErrInvalidDescriptor, d.Facing)
	}
	if !d.Resolution.Valid() {
		return fmt.Errorf("%w: unknown resolution %q", ErrInvalidDescriptor, d.Resolution)
	}
	return nil
}

// WithLens returns a copy of d pointing at another lens, keeping quality and audio.
func (d SessionDescriptor) WithLens(cam CameraInfo) SessionDescriptor {
	d.HardwareID = cam.HardwareID
	d.Facing = cam.Facing
	return d
}

// CameraInfo describes one lens reported by the hardware adapter.
type CameraInfo struct {
	HardwareID        string     `json:"hardwareId"`
	Facing            LensFacing `json:"facing"`
	SensorOrientation int        `json:"sensorOrientation"`
	HasFlash          bool       `json:"hasFlash"`
}
