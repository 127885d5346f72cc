// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
)

// Step actions understood by the runner.
const (
	ActionInitialize  = "initialize"
	ActionSwitch      = "switch"
	ActionOrientation = "orientation"
	ActionApp         = "app"
	ActionFault       = "fault"
	ActionPermission  = "permission"
	ActionFailOpen    = "failOpen"
	ActionDisconnect  = "disconnect"
	ActionCapture     = "capture"
	ActionSleep       = "sleep"
	ActionAwait       = "await"
	ActionDispose     = "dispose"
)

// Scenario is a scripted sequence of inputs for one machine.
type Scenario struct {
	Name       string          `yaml:"name"`
	Permission string          `yaml:"permission"`
	Hardware   HardwareProfile `yaml:"hardware"`
	Steps      []Step          `yaml:"steps"`
}

// HardwareProfile tunes the simulated device.
type HardwareProfile struct {
	OpenLatency   time.Duration `yaml:"openLatency"`
	CloseLatency  time.Duration `yaml:"closeLatency"`
	PromptLatency time.Duration `yaml:"promptLatency"`
	Unsupported   []string      `yaml:"unsupported"`
}

// Step is one scenario input. Async steps run concurrently with the
// following steps; Expect awaits quiescence and checks the state.
type Step struct {
	Action string        `yaml:"action"`
	Value  string        `yaml:"value"`
	Wait   time.Duration `yaml:"wait"`
	Async  bool          `yaml:"async"`
	Expect string        `yaml:"expect"`
}

var errInvalidScenario = errors.New("invalid scenario")

func loadScenario(path string) (Scenario, error) {
	// #nosec G304 -- scenario paths are provided by the operator via CLI
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := parseScenario(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = filepath.Base(path)
	}
	return sc, nil
}

func parseScenario(data []byte) (Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return Scenario{}, fmt.Errorf("%w: empty document", errInvalidScenario)
		}
		return Scenario{}, fmt.Errorf("%w: %v", errInvalidScenario, err)
	}
	if sc.Permission == "" {
		sc.Permission = string(ports.PermissionGranted)
	}
	return sc, sc.validate()
}

func (sc Scenario) validate() error {
	var errs []error
	if !validPermission(sc.Permission) {
		errs = append(errs, fmt.Errorf("unknown permission %q", sc.Permission))
	}
	for _, c := range sc.Hardware.Unsupported {
		if !validCapability(model.Capability(c)) {
			errs = append(errs, fmt.Errorf("unknown capability %q", c))
		}
	}
	if len(sc.Steps) == 0 {
		errs = append(errs, errors.New("no steps"))
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d (%s): %w", i+1, st.Action, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", errInvalidScenario, errors.Join(errs...))
	}
	return nil
}

func (st Step) validate() error {
	if st.Expect != "" && !validState(model.LifecycleState(st.Expect)) {
		return fmt.Errorf("unknown expected state %q", st.Expect)
	}
	if st.Async && st.Expect != "" {
		return errors.New("async steps cannot carry an expectation")
	}
	if st.Async && st.Action != ActionInitialize && st.Action != ActionSwitch && st.Action != ActionDispose {
		return errors.New("only initialize, switch and dispose can run async")
	}
	switch st.Action {
	case ActionInitialize, ActionAwait, ActionDispose:
		return nil
	case ActionSwitch:
		if !model.LensFacing(st.Value).Valid() {
			return fmt.Errorf("unknown facing %q", st.Value)
		}
	case ActionOrientation:
		if !model.Orientation(st.Value).Valid() {
			return fmt.Errorf("unknown orientation %q", st.Value)
		}
	case ActionApp:
		if !model.AppLifecycleEvent(st.Value).Valid() {
			return fmt.Errorf("unknown app event %q", st.Value)
		}
	case ActionFault:
		if _, err := faultError(st.Value); err != nil {
			return err
		}
	case ActionPermission:
		if !validPermission(st.Value) {
			return fmt.Errorf("unknown permission %q", st.Value)
		}
	case ActionFailOpen, ActionDisconnect, ActionCapture:
		if st.Value == "" {
			return errors.New("value is required")
		}
	case ActionSleep:
		if st.Wait <= 0 {
			return errors.New("wait must be positive")
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// faultError maps a scenario fault name to the platform error an adapter
// would report: "revoked", "disconnected" or "capability:<name>".
func faultError(name string) (error, error) {
	switch name {
	case "revoked":
		return ports.ErrPermissionRevoked, nil
	case "disconnected":
		return ports.ErrDeviceDisconnected, nil
	}
	if c, ok := strings.CutPrefix(name, "capability:"); ok && validCapability(model.Capability(c)) {
		return &ports.CapabilityError{Capability: model.Capability(c)}, nil
	}
	return nil, fmt.Errorf("unknown fault %q", name)
}

func validPermission(s string) bool {
	switch ports.PermissionStatus(s) {
	case ports.PermissionGranted, ports.PermissionDenied, ports.PermissionPermanentlyDenied:
		return true
	}
	return false
}

func validCapability(c model.Capability) bool {
	switch c {
	case model.CapabilityFlash, model.CapabilityTorch, model.CapabilityZoom, model.CapabilityFocus:
		return true
	}
	return false
}

func validState(s model.LifecycleState) bool {
	for _, st := range model.AllStates {
		if st == s {
			return true
		}
	}
	return false
}
