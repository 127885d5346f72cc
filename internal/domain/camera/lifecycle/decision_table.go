// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "github.com/ManuGH/camlife/internal/domain/camera/model"

const (
	ForbiddenTerminalAbsorbing = "terminal_absorbing"
	ForbiddenOutOfOrder        = "out_of_order"
	ForbiddenAlreadyInState    = "already_in_state"
	ForbiddenRequiresIdle      = "requires_idle"
	ForbiddenRequiresSession   = "requires_session"
	ForbiddenRequiresReady     = "requires_ready"
	ForbiddenRequiresPaused    = "requires_paused"
	ForbiddenNotTransitional   = "not_transitional"
)

func allowed() Decision        { return Decision{Allowed: true} }
func forbid(r string) Decision { return Decision{Allowed: false, Reason: r} }

// decisionTable holds an explicit decision for every State x Event combination.
var decisionTable = buildDecisionTable()

func buildDecisionTable() map[model.LifecycleState]map[EventKind]Decision {
	table := make(map[model.LifecycleState]map[EventKind]Decision, len(model.AllStates))
	for _, s := range model.AllStates {
		row := make(map[EventKind]Decision, len(AllEvents))
		for _, ev := range AllEvents {
			row[ev] = decide(s, ev)
		}
		table[s] = row
	}
	return table
}

func decide(from model.LifecycleState, ev EventKind) Decision {
	if from.IsTerminal() {
		return forbid(ForbiddenTerminalAbsorbing)
	}
	if ev == EvTimeout {
		if from.IsTransitional() {
			return allowed()
		}
		return forbid(ForbiddenNotTransitional)
	}
	if _, ok := TransitionFor(from, ev); ok {
		return allowed()
	}
	switch ev {
	case EvInitRequested:
		if from == model.StateInitializing {
			return forbid(ForbiddenAlreadyInState)
		}
		return forbid(ForbiddenRequiresIdle)
	case EvSessionOpened, EvOpenFailed, EvSessionReleased:
		return forbid(ForbiddenOutOfOrder)
	case EvPauseRequested:
		if from == model.StatePausing || from == model.StatePaused {
			return forbid(ForbiddenAlreadyInState)
		}
		return forbid(ForbiddenRequiresSession)
	case EvResumeRequested:
		if from == model.StateResuming {
			return forbid(ForbiddenAlreadyInState)
		}
		return forbid(ForbiddenRequiresPaused)
	case EvRecreateRequested:
		if from == model.StateRecreating {
			return forbid(ForbiddenAlreadyInState)
		}
		return forbid(ForbiddenRequiresReady)
	case EvSwitchRequested:
		return forbid(ForbiddenRequiresReady)
	case EvFault:
		if from == model.StateError {
			return forbid(ForbiddenAlreadyInState)
		}
		return forbid(ForbiddenRequiresSession)
	case EvDisposeRequested:
		return forbid(ForbiddenAlreadyInState)
	}
	return forbid(ForbiddenOutOfOrder)
}

// DecisionFor returns the explicit decision for state x event.
func DecisionFor(from model.LifecycleState, ev EventKind) (Decision, bool) {
	m, ok := decisionTable[from]
	if !ok {
		return Decision{}, false
	}
	d, ok := m[ev]
	return d, ok
}

// ForbiddenTransitionReason documents why a transition is disallowed.
func ForbiddenTransitionReason(from model.LifecycleState, ev EventKind) string {
	decision, ok := DecisionFor(from, ev)
	if !ok || decision.Allowed {
		return ""
	}
	return decision.Reason
}
