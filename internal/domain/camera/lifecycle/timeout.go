// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import "github.com/ManuGH/camlife/internal/domain/camera/model"

// Outcome is the canonical resolution of a transition that never settled.
type Outcome struct {
	State  model.LifecycleState
	Reason model.ReasonCode
}

// TimeoutOutcome maps a stuck transitional state to a usable one.
// Releases are assumed to have happened; acquisitions land in a retryable ERROR.
func TimeoutOutcome(from model.LifecycleState) Outcome {
	switch from {
	case model.StatePausing:
		return Outcome{State: model.StatePaused, Reason: model.RTransitionTimeout}
	case model.StateDisposing:
		return Outcome{State: model.StateDisposed, Reason: model.RTransitionTimeout}
	case model.StateInitializing, model.StateResuming, model.StateRecreating, model.StateSwitching:
		return Outcome{State: model.StateError, Reason: model.RTransitionTimeout}
	default:
		return Outcome{State: from, Reason: model.RNone}
	}
}
