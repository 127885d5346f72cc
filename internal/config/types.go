// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// Config is the effective application configuration.
type Config struct {
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
	Registry  RegistryConfig  `yaml:"registry"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Camera    CameraConfig    `yaml:"camera"`
}

// LifecycleConfig tunes the camera lifecycle machine.
type LifecycleConfig struct {
	Debounce          time.Duration `yaml:"debounce"`
	TransitionTimeout time.Duration `yaml:"transitionTimeout"`
	// OrientationPolicy is one of "axis", "any" or "never".
	OrientationPolicy string `yaml:"orientationPolicy"`
	// RetryInterval is the minimum spacing between caller-initiated retries from ERROR.
	RetryInterval time.Duration `yaml:"retryInterval"`
	RetryBurst    int           `yaml:"retryBurst"`
}

type RegistryConfig struct {
	MaxItems int `yaml:"maxItems"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"`
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"samplingRate"`
}

type MetricsConfig struct {
	ListenAddr string `yaml:"listenAddr"`
}

// CameraConfig is the initial session descriptor bound at machine construction.
type CameraConfig struct {
	HardwareID string `yaml:"hardwareId"`
	Facing     string `yaml:"facing"`
	Resolution string `yaml:"resolution"`
	Audio      bool   `yaml:"audio"`
}
