// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

//go:build !debug

package lifecycle

import (
	"fmt"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
)

func illegalTransition(from model.LifecycleState, ev EventKind, reason string) (Transition, error) {
	return Transition{From: from, To: from, Event: ev}, NewReasonError(
		model.RInvalidTransition,
		fmt.Sprintf("illegal transition: %s + %v (%s)", from, ev, reason),
		nil,
	)
}
