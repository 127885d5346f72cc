// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config loads camlife configuration with the precedence
// ENV > YAML file > defaults, validates it, and supports hot reload of the
// config file through a Holder.
package config
