// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

const (
	DefaultDebounce          = 500 * time.Millisecond
	DefaultTransitionTimeout = 1500 * time.Millisecond
	DefaultOrientationPolicy = "axis"
	DefaultRetryInterval     = time.Second
	DefaultRetryBurst        = 1
	DefaultRegistryMaxItems  = 10
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Lifecycle: LifecycleConfig{
			Debounce:          DefaultDebounce,
			TransitionTimeout: DefaultTransitionTimeout,
			OrientationPolicy: DefaultOrientationPolicy,
			RetryInterval:     DefaultRetryInterval,
			RetryBurst:        DefaultRetryBurst,
		},
		Registry: RegistryConfig{MaxItems: DefaultRegistryMaxItems},
		Logging:  LoggingConfig{Level: "info"},
		Telemetry: TelemetryConfig{
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
		Camera: CameraConfig{
			HardwareID: "back-0",
			Facing:     "back",
			Resolution: "high",
		},
	}
}
