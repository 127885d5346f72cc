// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

// FlashMode is the user-selected flash policy.
type FlashMode string

const (
	FlashOff    FlashMode = "off"
	FlashAuto   FlashMode = "auto"
	FlashAlways FlashMode = "always"
	FlashTorch  FlashMode = "torch"
)

// BaselineZoom is the zoom level every new lens starts at.
const BaselineZoom = 1.0

// CaptureSettings are the user-visible settings carried across session recreation.
type CaptureSettings struct {
	Flash FlashMode `json:"flash"`
	Zoom  float64   `json:"zoom"`
}

// DefaultCaptureSettings returns flash off at baseline zoom.
func DefaultCaptureSettings() CaptureSettings {
	return CaptureSettings{Flash: FlashOff, Zoom: BaselineZoom}
}

// ForLens returns the settings to request on a freshly switched lens:
// zoom goes back to baseline and front lenses start with flash off.
func (s CaptureSettings) ForLens(facing LensFacing) CaptureSettings {
	out := CaptureSettings{Flash: s.Flash, Zoom: BaselineZoom}
	if facing == FacingFront {
		out.Flash = FlashOff
	}
	return out
}

// Capability names a degradable feature of an open session.
type Capability string

const (
	CapabilityFlash Capability = "flash"
	CapabilityTorch Capability = "torch"
	CapabilityZoom  Capability = "zoom"
	CapabilityFocus Capability = "focus"
)

// Capabilities holds the feature flags of the current session.
// A flag is cleared when the hardware reports the feature as unsupported.
type Capabilities struct {
	Flash bool `json:"flash"`
	Torch bool `json:"torch"`
	Zoom  bool `json:"zoom"`
	Focus bool `json:"focus"`
}

// AllCapabilities is the optimistic starting point for a new session.
func AllCapabilities() Capabilities {
	return Capabilities{Flash: true, Torch: true, Zoom: true, Focus: true}
}

// Without returns a copy with capability c cleared.
func (c Capabilities) Without(capability Capability) Capabilities {
	switch capability {
	case CapabilityFlash:
		c.Flash = false
	case CapabilityTorch:
		c.Torch = false
	case CapabilityZoom:
		c.Zoom = false
	case CapabilityFocus:
		c.Focus = false
	}
	return c
}

// Has reports whether capability c is still available.
func (c Capabilities) Has(capability Capability) bool {
	switch capability {
	case CapabilityFlash:
		return c.Flash
	case CapabilityTorch:
		return c.Torch
	case CapabilityZoom:
		return c.Zoom
	case CapabilityFocus:
		return c.Focus
	}
	return false
}
