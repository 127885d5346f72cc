// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"fmt"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
)

// OrientationPolicy decides whether a new device orientation needs the
// capture surface to be rebuilt or whether a UI relayout suffices.
type OrientationPolicy string

const (
	// PolicyAxis recreates only when the device crosses between portrait and landscape.
	PolicyAxis OrientationPolicy = "axis"
	// PolicyAny recreates on every orientation change.
	PolicyAny OrientationPolicy = "any"
	// PolicyNever never recreates; the UI rotates the preview itself.
	PolicyNever OrientationPolicy = "never"
)

func (p OrientationPolicy) Valid() bool {
	switch p {
	case PolicyAxis, PolicyAny, PolicyNever:
		return true
	}
	return false
}

// ParseOrientationPolicy converts a config value.
func ParseOrientationPolicy(s string) (OrientationPolicy, error) {
	p := OrientationPolicy(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown orientation policy %q", s)
	}
	return p, nil
}

// RequiresRecreate reports whether a session configured for configured must be
// rebuilt to serve latest.
func (p OrientationPolicy) RequiresRecreate(configured, latest model.Orientation) bool {
	if configured == latest {
		return false
	}
	switch p {
	case PolicyAny:
		return true
	case PolicyNever:
		return false
	default:
		return configured.IsLandscape() != latest.IsLandscape()
	}
}
