// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"testing"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable_Coverage(t *testing.T) {
	allowedEdges := map[model.LifecycleState]map[EventKind]struct{}{}
	for _, tr := range transitionsTable {
		if _, ok := allowedEdges[tr.From]; !ok {
			allowedEdges[tr.From] = map[EventKind]struct{}{}
		}
		if _, exists := allowedEdges[tr.From][tr.Event]; exists {
			t.Fatalf("duplicate transition: %s + %v", tr.From, tr.Event)
		}
		allowedEdges[tr.From][tr.Event] = struct{}{}
	}

	for _, state := range model.AllStates {
		for _, ev := range AllEvents {
			decision, ok := DecisionFor(state, ev)
			require.True(t, ok, "missing decision for %s + %v", state, ev)
			if ev == EvTimeout {
				// Timeout is resolved outside the transition table.
				require.Equal(t, state.IsTransitional() && !state.IsTerminal(), decision.Allowed, "%s + %v", state, ev)
				continue
			}
			if _, ok := allowedEdges[state][ev]; ok {
				require.True(t, decision.Allowed, "allowed transition must be marked allowed for %s + %v", state, ev)
				continue
			}
			require.False(t, decision.Allowed, "forbidden transition must be marked forbidden for %s + %v", state, ev)
			require.NotEmpty(t, decision.Reason, "forbidden transition must have reason for %s + %v", state, ev)
		}
	}
}

func TestTransitionTable_DisposedIsAbsorbing(t *testing.T) {
	for _, ev := range AllEvents {
		require.Equal(t, ForbiddenTerminalAbsorbing, ForbiddenTransitionReason(model.StateDisposed, ev), "event %v", ev)
	}
	for _, tr := range transitionsTable {
		require.NotEqual(t, model.StateDisposed, tr.From, "no edge may leave DISPOSED")
	}
}

func TestTransitionTable_EveryLiveStateCanDispose(t *testing.T) {
	for _, state := range model.AllStates {
		if state == model.StateDisposed || state == model.StateDisposing {
			continue
		}
		tr, err := Dispatch(state, EvDisposeRequested)
		require.NoError(t, err, "state %s", state)
		require.Equal(t, model.StateDisposing, tr.To)
	}
}
