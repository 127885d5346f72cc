// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "github.com/ManuGH/camlife/internal/domain/camera/model"

// Transition is a single allowed edge in the lifecycle state machine.
type Transition struct {
	From  model.LifecycleState
	To    model.LifecycleState
	Event EventKind
}

// Decision records whether a transition is allowed and why it is forbidden.
type Decision struct {
	Allowed bool
	Reason  string
}

var transitionsTable = []Transition{
	// Acquisition
	{From: model.StateUninitialized, To: model.StateInitializing, Event: EvInitRequested},
	{From: model.StateError, To: model.StateInitializing, Event: EvInitRequested},

	// Async completions
	{From: model.StateInitializing, To: model.StateReady, Event: EvSessionOpened},
	{From: model.StateResuming, To: model.StateReady, Event: EvSessionOpened},
	{From: model.StateRecreating, To: model.StateReady, Event: EvSessionOpened},
	{From: model.StateSwitching, To: model.StateReady, Event: EvSessionOpened},
	// A session that arrives after its acquisition timed out heals ERROR.
	{From: model.StateError, To: model.StateReady, Event: EvSessionOpened},
	{From: model.StateInitializing, To: model.StateError, Event: EvOpenFailed},
	{From: model.StateResuming, To: model.StateError, Event: EvOpenFailed},
	{From: model.StateRecreating, To: model.StateError, Event: EvOpenFailed},
	{From: model.StateSwitching, To: model.StateError, Event: EvOpenFailed},
	{From: model.StatePausing, To: model.StatePaused, Event: EvSessionReleased},
	{From: model.StateDisposing, To: model.StateDisposed, Event: EvSessionReleased},

	// App lifecycle: backgrounding preempts any hardware transition
	{From: model.StateReady, To: model.StatePausing, Event: EvPauseRequested},
	{From: model.StateResuming, To: model.StatePausing, Event: EvPauseRequested},
	{From: model.StateRecreating, To: model.StatePausing, Event: EvPauseRequested},
	{From: model.StateSwitching, To: model.StatePausing, Event: EvPauseRequested},
	{From: model.StatePaused, To: model.StateResuming, Event: EvResumeRequested},
	{From: model.StatePausing, To: model.StateResuming, Event: EvResumeRequested},

	// Surface reconfiguration and lens switching
	{From: model.StateReady, To: model.StateRecreating, Event: EvRecreateRequested},
	{From: model.StateReady, To: model.StateSwitching, Event: EvSwitchRequested},
	{From: model.StateRecreating, To: model.StateSwitching, Event: EvSwitchRequested},
	{From: model.StateSwitching, To: model.StateSwitching, Event: EvSwitchRequested},

	// Mid-session faults (permission revoked, device disconnected)
	{From: model.StateReady, To: model.StateError, Event: EvFault},
	{From: model.StatePausing, To: model.StateError, Event: EvFault},
	{From: model.StatePaused, To: model.StateError, Event: EvFault},
	{From: model.StateResuming, To: model.StateError, Event: EvFault},
	{From: model.StateRecreating, To: model.StateError, Event: EvFault},
	{From: model.StateSwitching, To: model.StateError, Event: EvFault},

	// Teardown
	{From: model.StateUninitialized, To: model.StateDisposing, Event: EvDisposeRequested},
	{From: model.StateInitializing, To: model.StateDisposing, Event: EvDisposeRequested},
	{From: model.StateReady, To: model.StateDisposing, Event: EvDisposeRequested},
	{From: model.StatePausing, To: model.StateDisposing, Event: EvDisposeRequested},
	{From: model.StatePaused, To: model.StateDisposing, Event: EvDisposeRequested},
	{From: model.StateResuming, To: model.StateDisposing, Event: EvDisposeRequested},
	{From: model.StateRecreating, To: model.StateDisposing, Event: EvDisposeRequested},
	{From: model.StateSwitching, To: model.StateDisposing, Event: EvDisposeRequested},
	{From: model.StateError, To: model.StateDisposing, Event: EvDisposeRequested},
}

// TransitionFor returns the allowed transition for a given state+event.
func TransitionFor(from model.LifecycleState, ev EventKind) (Transition, bool) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Event == ev {
			return tr, true
		}
	}
	return Transition{}, false
}
