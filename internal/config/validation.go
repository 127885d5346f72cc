// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinDebounce = 250 * time.Millisecond
	MaxDebounce = time.Second
)

// Validate enforces value ranges. All violations are reported together.
func Validate(cfg Config) error {
	var errs []error
	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	lc := cfg.Lifecycle
	if lc.Debounce < MinDebounce || lc.Debounce > MaxDebounce {
		add("lifecycle.debounce %s out of range [%s, %s]", lc.Debounce, MinDebounce, MaxDebounce)
	}
	if lc.TransitionTimeout <= 0 {
		add("lifecycle.transitionTimeout must be positive, got %s", lc.TransitionTimeout)
	}
	switch lc.OrientationPolicy {
	case "axis", "any", "never":
	default:
		add("lifecycle.orientationPolicy %q not one of axis, any, never", lc.OrientationPolicy)
	}
	if lc.RetryInterval < 0 {
		add("lifecycle.retryInterval must not be negative, got %s", lc.RetryInterval)
	}
	if lc.RetryBurst < 1 {
		add("lifecycle.retryBurst must be at least 1, got %d", lc.RetryBurst)
	}

	if cfg.Registry.MaxItems < 1 {
		add("registry.maxItems must be at least 1, got %d", cfg.Registry.MaxItems)
	}

	switch cfg.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		add("logging.level %q is not a zerolog level", cfg.Logging.Level)
	}

	if cfg.Telemetry.Enabled {
		switch cfg.Telemetry.Exporter {
		case "grpc", "http":
		default:
			add("telemetry.exporter %q not one of grpc, http", cfg.Telemetry.Exporter)
		}
		if cfg.Telemetry.Endpoint == "" {
			add("telemetry.endpoint is required when telemetry is enabled")
		}
	}
	if cfg.Telemetry.SamplingRate < 0 || cfg.Telemetry.SamplingRate > 1 {
		add("telemetry.samplingRate %v out of range [0, 1]", cfg.Telemetry.SamplingRate)
	}

	switch cfg.Camera.Facing {
	case "back", "front", "external":
	default:
		add("camera.facing %q not one of back, front, external", cfg.Camera.Facing)
	}
	switch cfg.Camera.Resolution {
	case "low", "medium", "high", "veryHigh", "ultraHigh", "max":
	default:
		add("camera.resolution %q is not a known preset", cfg.Camera.Resolution)
	}
	if cfg.Camera.HardwareID == "" {
		add("camera.hardwareId is required")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
