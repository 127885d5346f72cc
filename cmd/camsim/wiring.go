// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"fmt"

	"github.com/ManuGH/camlife/internal/config"
	"github.com/ManuGH/camlife/internal/domain/camera/machine"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/telemetry"
	"github.com/ManuGH/camlife/internal/version"
)

func machineConfig(cfg config.Config) (machine.Config, error) {
	policy, err := machine.ParseOrientationPolicy(cfg.Lifecycle.OrientationPolicy)
	if err != nil {
		return machine.Config{}, err
	}
	return machine.Config{
		Debounce:          cfg.Lifecycle.Debounce,
		TransitionTimeout: cfg.Lifecycle.TransitionTimeout,
		OrientationPolicy: policy,
		RetryInterval:     cfg.Lifecycle.RetryInterval,
		RetryBurst:        cfg.Lifecycle.RetryBurst,
	}, nil
}

func sessionDescriptor(cfg config.Config) (model.SessionDescriptor, error) {
	d := model.SessionDescriptor{
		HardwareID:   cfg.Camera.HardwareID,
		Facing:       model.LensFacing(cfg.Camera.Facing),
		Resolution:   model.ResolutionPreset(cfg.Camera.Resolution),
		AudioEnabled: cfg.Camera.Audio,
	}
	if err := d.Validate(); err != nil {
		return model.SessionDescriptor{}, fmt.Errorf("camera: %w", err)
	}
	return d, nil
}

func telemetryConfig(cfg config.Config) telemetry.Config {
	return telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "camsim",
		ServiceVersion: version.Version,
		Environment:    "simulation",
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	}
}
