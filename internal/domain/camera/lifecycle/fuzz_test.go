// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"testing"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
)

func FuzzDispatchInvariants(f *testing.F) {
	f.Add(uint(0), uint(0))
	f.Add(uint(2), uint(3))
	f.Add(uint(9), uint(11))
	f.Add(uint(10), uint(12))

	f.Fuzz(func(t *testing.T, stateIdx, evIdx uint) {
		from := model.AllStates[stateIdx%uint(len(model.AllStates))]
		ev := AllEvents[evIdx%uint(len(AllEvents))]

		if !Allowed(from, ev) {
			if ForbiddenTransitionReason(from, ev) == "" {
				t.Fatalf("%s/%s forbidden without a reason", from, ev)
			}
			return
		}
		if from.IsTerminal() {
			t.Fatalf("terminal state %s accepted %s", from, ev)
		}

		tr, err := Dispatch(from, ev)
		if err != nil {
			t.Fatalf("allowed %s/%s failed to dispatch: %v", from, ev, err)
		}
		if tr.From != from || tr.Event != ev {
			t.Fatalf("transition mislabelled: %+v", tr)
		}
		if ev == EvTimeout && tr.To.IsTransitional() {
			t.Fatalf("timeout from %s left the machine in %s", from, tr.To)
		}
		if tr.To == model.StateDisposed && from != model.StateDisposing {
			t.Fatalf("DISPOSED reached from %s", from)
		}
		if ev == EvFault && tr.To != model.StateError {
			t.Fatalf("fault from %s landed in %s", from, tr.To)
		}
		if ev == EvDisposeRequested && tr.To != model.StateDisposing {
			t.Fatalf("dispose from %s landed in %s", from, tr.To)
		}
	})
}
