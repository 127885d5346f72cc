// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"time"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
)

const (
	DefaultDebounce          = 500 * time.Millisecond
	DefaultTransitionTimeout = 1500 * time.Millisecond
	DefaultRetryInterval     = time.Second
	DefaultRetryBurst        = 1
)

// Config tunes a Machine. Zero values fall back to the defaults.
type Config struct {
	// Debounce is the quiet period before orientation bursts are acted on.
	Debounce time.Duration
	// TransitionTimeout bounds every hardware-affecting transition.
	TransitionTimeout time.Duration
	// OrientationPolicy decides when an orientation change needs a new session.
	OrientationPolicy OrientationPolicy
	// RetryInterval and RetryBurst pace Initialize retries from ERROR.
	// A negative RetryInterval disables pacing.
	RetryInterval time.Duration
	RetryBurst    int
	// InitialOrientation is the device orientation at construction.
	InitialOrientation model.Orientation
}

// DefaultConfig returns the built-in tuning.
func DefaultConfig() Config {
	return Config{
		Debounce:           DefaultDebounce,
		TransitionTimeout:  DefaultTransitionTimeout,
		OrientationPolicy:  PolicyAxis,
		RetryInterval:      DefaultRetryInterval,
		RetryBurst:         DefaultRetryBurst,
		InitialOrientation: model.OrientationPortraitUp,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Debounce <= 0 {
		c.Debounce = d.Debounce
	}
	if c.TransitionTimeout <= 0 {
		c.TransitionTimeout = d.TransitionTimeout
	}
	if !c.OrientationPolicy.Valid() {
		c.OrientationPolicy = d.OrientationPolicy
	}
	if c.RetryInterval == 0 {
		c.RetryInterval = d.RetryInterval
	}
	if c.RetryBurst <= 0 {
		c.RetryBurst = d.RetryBurst
	}
	if !c.InitialOrientation.Valid() {
		c.InitialOrientation = d.InitialOrientation
	}
	return c
}
