// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/renameio/v2"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/media/registry"
	"github.com/ManuGH/camlife/internal/infrastructure/camera/sim"
)

// Report is the outcome of one scenario run.
type Report struct {
	Scenario     string               `json:"scenario"`
	RunID        string               `json:"runId"`
	MachineID    string               `json:"machineId"`
	StartedAt    time.Time            `json:"startedAt"`
	DurationMs   int64                `json:"durationMs"`
	FinalState   model.LifecycleState `json:"finalState"`
	Steps        []StepResult         `json:"steps"`
	Transitions  []TransitionRecord   `json:"transitions"`
	Errors       []ErrorEntry         `json:"errors"`
	Hardware     sim.Stats            `json:"hardware"`
	Media        []registry.Entry     `json:"media"`
	MediaChanges int                  `json:"mediaChanges"`
	Failures     []string             `json:"failures,omitempty"`
}

// Passed reports whether every expectation held.
func (r Report) Passed() bool { return len(r.Failures) == 0 }

type StepResult struct {
	Index  int                  `json:"index"`
	Action string               `json:"action"`
	Value  string               `json:"value,omitempty"`
	Async  bool                 `json:"async,omitempty"`
	Reason model.ReasonCode     `json:"reason,omitempty"`
	State  model.LifecycleState `json:"state"`
}

type TransitionRecord struct {
	From  model.LifecycleState `json:"from"`
	To    model.LifecycleState `json:"to"`
	Cause model.OpKind         `json:"cause"`
	Token uint64               `json:"token"`
	At    time.Time            `json:"at"`
}

type ErrorEntry struct {
	Source      model.OpKind     `json:"source"`
	Reason      model.ReasonCode `json:"reason"`
	Message     string           `json:"message"`
	Recoverable bool             `json:"recoverable"`
}

// writeReport replaces path atomically so readers never see a partial report.
func writeReport(path string, rep Report) (err error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending report: %w", err)
	}
	defer func() {
		if cerr := pending.Cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("cleanup pending report: %w", cerr)
		}
	}()

	if _, err := pending.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	return nil
}
