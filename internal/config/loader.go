// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading with precedence ENV > file > defaults.
type Loader struct {
	configPath string
}

// NewLoader creates a new configuration loader. An empty path means ENV-only.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Path returns the config file path the loader reads, if any.
func (l *Loader) Path() string { return l.configPath }

// Load builds the effective configuration and validates it.
func (l *Loader) Load() (Config, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := l.loadFile(l.configPath, &cfg); err != nil {
			return Config{}, fmt.Errorf("load file %s: %w", l.configPath, err)
		}
	}

	mergeEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeEnv(cfg *Config) {
	cfg.Lifecycle.Debounce = ParseDuration(EnvDebounce, cfg.Lifecycle.Debounce)
	cfg.Lifecycle.TransitionTimeout = ParseDuration(EnvTransitionTimeout, cfg.Lifecycle.TransitionTimeout)
	cfg.Lifecycle.OrientationPolicy = ParseString(EnvOrientationPolicy, cfg.Lifecycle.OrientationPolicy)
	cfg.Registry.MaxItems = ParseInt(EnvRegistryMax, cfg.Registry.MaxItems)
	cfg.Logging.Level = ParseString(EnvLogLevel, cfg.Logging.Level)
	cfg.Metrics.ListenAddr = ParseString(EnvMetricsAddr, cfg.Metrics.ListenAddr)
}

// loadFile decodes a YAML file over cfg with STRICT parsing.
// Unknown fields cause an error to prevent misconfiguration.
func (l *Loader) loadFile(path string, cfg *Config) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}
