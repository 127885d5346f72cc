// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldMachineID = "machine_id"
	FieldRunID     = "run_id"
	FieldHandle    = "handle"
	FieldEntryID   = "entry_id"

	// Operation fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldOp        = "op"
	FieldToken     = "token"
	FieldReason    = "reason"
	FieldDuration  = "dur_ms"

	// Camera fields
	FieldHardwareID  = "hardware_id"
	FieldFacing      = "facing"
	FieldResolution  = "resolution"
	FieldOrientation = "orientation"
	FieldCapability  = "capability"

	// State fields
	FieldOldState = "old_state"
	FieldNewState = "new_state"

	// Path fields
	FieldPath = "path"
)
