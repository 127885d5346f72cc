// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "debounce too short", mutate: func(c *Config) { c.Lifecycle.Debounce = 100 * time.Millisecond }, wantErr: "lifecycle.debounce"},
		{name: "debounce too long", mutate: func(c *Config) { c.Lifecycle.Debounce = 2 * time.Second }, wantErr: "lifecycle.debounce"},
		{name: "debounce lower bound", mutate: func(c *Config) { c.Lifecycle.Debounce = MinDebounce }},
		{name: "zero timeout", mutate: func(c *Config) { c.Lifecycle.TransitionTimeout = 0 }, wantErr: "transitionTimeout"},
		{name: "bad policy", mutate: func(c *Config) { c.Lifecycle.OrientationPolicy = "sometimes" }, wantErr: "orientationPolicy"},
		{name: "registry empty", mutate: func(c *Config) { c.Registry.MaxItems = 0 }, wantErr: "registry.maxItems"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "telemetry without endpoint", mutate: func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Endpoint = ""
		}, wantErr: "telemetry.endpoint"},
		{name: "bad facing", mutate: func(c *Config) { c.Camera.Facing = "side" }, wantErr: "camera.facing"},
		{name: "bad resolution", mutate: func(c *Config) { c.Camera.Resolution = "4k" }, wantErr: "camera.resolution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	cfg := Defaults()
	cfg.Registry.MaxItems = 0
	cfg.Camera.HardwareID = ""
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry.maxItems")
	assert.Contains(t, err.Error(), "camera.hardwareId")
}
