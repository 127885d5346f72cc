// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

// LifecycleState is the externally visible state of a camera lifecycle machine.
// Keep the string values stable: metrics labels and logs depend on them.
type LifecycleState string

const (
	StateUninitialized LifecycleState = "UNINITIALIZED"
	StateInitializing  LifecycleState = "INITIALIZING"
	StateReady         LifecycleState = "READY"
	StatePausing       LifecycleState = "PAUSING"
	StatePaused        LifecycleState = "PAUSED"
	StateResuming      LifecycleState = "RESUMING"
	StateRecreating    LifecycleState = "RECREATING"
	StateSwitching     LifecycleState = "SWITCHING"
	StateError         LifecycleState = "ERROR"
	StateDisposing     LifecycleState = "DISPOSING"
	StateDisposed      LifecycleState = "DISPOSED"
)

// AllStates lists every lifecycle state in declaration order.
var AllStates = []LifecycleState{
	StateUninitialized,
	StateInitializing,
	StateReady,
	StatePausing,
	StatePaused,
	StateResuming,
	StateRecreating,
	StateSwitching,
	StateError,
	StateDisposing,
	StateDisposed,
}

// IsTerminal reports whether no transition may leave the state.
func (s LifecycleState) IsTerminal() bool {
	return s == StateDisposed
}

// IsTransitional reports whether the state waits on an asynchronous step.
func (s LifecycleState) IsTransitional() bool {
	switch s {
	case StateInitializing, StatePausing, StateResuming, StateRecreating, StateSwitching, StateDisposing:
		return true
	}
	return false
}

// MayHoldSession reports whether a session descriptor may be present in this state.
func (s LifecycleState) MayHoldSession() bool {
	switch s {
	case StateReady, StateResuming, StateRecreating, StateSwitching:
		return true
	}
	return false
}

// ShowsLoading reports whether the UI should render a loading indicator.
func (s LifecycleState) ShowsLoading() bool {
	switch s {
	case StateInitializing, StateResuming, StateRecreating, StateSwitching:
		return true
	}
	return false
}
