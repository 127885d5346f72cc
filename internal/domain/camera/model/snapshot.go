// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import "time"

// Snapshot is a read-only projection of a machine at one commit.
// Pointer fields are copies; mutating them has no effect on the machine.
type Snapshot struct {
	MachineID    string              `json:"machineId"`
	State        LifecycleState      `json:"state"`
	Descriptor   *SessionDescriptor  `json:"descriptor,omitempty"`
	Target       SessionDescriptor   `json:"target"`
	Orientation  OrientationSnapshot `json:"orientation"`
	Settings     CaptureSettings     `json:"settings"`
	Capabilities Capabilities        `json:"capabilities"`
	Pending      *PendingOperation   `json:"pending,omitempty"`
	Err          *ErrorRecord        `json:"error,omitempty"`
	Version      uint64              `json:"version"`
}

// Recoverable reports whether the snapshot is in ERROR with a retryable cause.
func (s Snapshot) Recoverable() bool {
	return s.State == StateError && s.Err != nil && s.Err.Recoverable
}

// StateChange is emitted once per committed transition, in commit order.
type StateChange struct {
	From     LifecycleState `json:"from"`
	To       LifecycleState `json:"to"`
	Cause    OpKind         `json:"cause"`
	Token    uint64         `json:"token"`
	Snapshot Snapshot       `json:"snapshot"`
	At       time.Time      `json:"at"`
}
