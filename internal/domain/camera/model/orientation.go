// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import "time"

// Orientation is the physical device orientation reported by the platform.
type Orientation string

const (
	OrientationPortraitUp     Orientation = "portraitUp"
	OrientationLandscapeLeft  Orientation = "landscapeLeft"
	OrientationPortraitDown   Orientation = "portraitDown"
	OrientationLandscapeRight Orientation = "landscapeRight"
)

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool {
	switch o {
	case OrientationPortraitUp, OrientationLandscapeLeft, OrientationPortraitDown, OrientationLandscapeRight:
		return true
	}
	return false
}

// IsLandscape reports whether the long edge is horizontal.
func (o Orientation) IsLandscape() bool {
	return o == OrientationLandscapeLeft || o == OrientationLandscapeRight
}

// Degrees returns the clockwise rotation from portraitUp.
func (o Orientation) Degrees() int {
	switch o {
	case OrientationLandscapeLeft:
		return 90
	case OrientationPortraitDown:
		return 180
	case OrientationLandscapeRight:
		return 270
	default:
		return 0
	}
}

// OrientationSnapshot records the orientation a session was configured for.
type OrientationSnapshot struct {
	Orientation  Orientation `json:"orientation"`
	ConfiguredAt time.Time   `json:"configuredAt"`
}
