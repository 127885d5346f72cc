// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

// AppLifecycleEvent is a host application lifecycle notification.
type AppLifecycleEvent string

const (
	AppForegrounded AppLifecycleEvent = "foregrounded"
	AppBackgrounded AppLifecycleEvent = "backgrounded"
	AppInactive     AppLifecycleEvent = "inactive"
	AppHidden       AppLifecycleEvent = "hidden"
	AppDetached     AppLifecycleEvent = "detached"
)

// ReleasesCamera reports whether the event means the app loses camera access.
func (e AppLifecycleEvent) ReleasesCamera() bool {
	switch e {
	case AppBackgrounded, AppInactive, AppHidden, AppDetached:
		return true
	}
	return false
}

// Valid reports whether e is a known lifecycle event.
func (e AppLifecycleEvent) Valid() bool {
	return e == AppForegrounded || e.ReleasesCamera()
}

// OpKind names a hardware-affecting operation.
type OpKind string

const (
	OpInitialize OpKind = "initialize"
	OpPause      OpKind = "pause"
	OpResume     OpKind = "resume"
	OpRecreate   OpKind = "recreate"
	OpSwitch     OpKind = "switch"
	OpDispose    OpKind = "dispose"
	OpFault      OpKind = "fault"
)

// PendingOperation is the read-only view of the operation in flight.
type PendingOperation struct {
	Kind      OpKind `json:"kind"`
	Token     uint64 `json:"token"`
	Cancelled bool   `json:"cancelled"`
}
