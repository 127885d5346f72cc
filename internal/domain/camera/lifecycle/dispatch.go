// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "github.com/ManuGH/camlife/internal/domain/camera/model"

// Dispatch resolves the next transition from the lifecycle rules.
// It is the only entry point the machine uses to move between states.
// EvTimeout is resolved through TimeoutOutcome.
func Dispatch(from model.LifecycleState, ev EventKind) (Transition, error) {
	decision, ok := DecisionFor(from, ev)
	if !ok || !decision.Allowed {
		return illegalTransition(from, ev, decision.Reason)
	}
	if ev == EvTimeout {
		return Transition{From: from, To: TimeoutOutcome(from).State, Event: EvTimeout}, nil
	}
	tr, ok := TransitionFor(from, ev)
	if !ok {
		return illegalTransition(from, ev, ForbiddenOutOfOrder)
	}
	return tr, nil
}

// Allowed reports whether ev is accepted in state from without building a transition.
func Allowed(from model.LifecycleState, ev EventKind) bool {
	d, ok := DecisionFor(from, ev)
	return ok && d.Allowed
}
