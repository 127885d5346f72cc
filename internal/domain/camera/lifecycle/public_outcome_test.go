// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package lifecycle

import (
	"testing"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/stretchr/testify/assert"
)

func TestPresentationFor_Views(t *testing.T) {
	views := map[model.LifecycleState]View{
		model.StateUninitialized: ViewBlank,
		model.StateInitializing:  ViewLoading,
		model.StateReady:         ViewPreview,
		model.StatePausing:       ViewBlank,
		model.StatePaused:        ViewBlank,
		model.StateResuming:      ViewLoading,
		model.StateRecreating:    ViewLoading,
		model.StateSwitching:     ViewLoading,
		model.StateDisposing:     ViewBlank,
		model.StateDisposed:      ViewBlank,
	}
	for state, want := range views {
		assert.Equal(t, want, PresentationFor(model.Snapshot{State: state}).View, "state %s", state)
	}
}

func TestPresentationFor_ErrorRouting(t *testing.T) {
	denied := PresentationFor(model.Snapshot{
		State: model.StateError,
		Err:   &model.ErrorRecord{Reason: model.RPermissionDenied, Recoverable: true},
	})
	assert.Equal(t, ViewError, denied.View)
	assert.True(t, denied.CanRetry)
	assert.False(t, denied.OpenSettings)

	permanent := PresentationFor(model.Snapshot{
		State: model.StateError,
		Err:   &model.ErrorRecord{Reason: model.RPermissionPermanentlyDenied},
	})
	assert.True(t, permanent.OpenSettings)
	assert.False(t, permanent.CanRetry)
	assert.Equal(t, PublicMessage(model.RPermissionPermanentlyDenied), permanent.Message)

	hardware := PresentationFor(model.Snapshot{
		State: model.StateError,
		Err:   &model.ErrorRecord{Reason: model.RHardwareUnavailable},
	})
	assert.False(t, hardware.CanRetry)
	assert.False(t, hardware.OpenSettings)
}

func TestPresentationFor_TimeoutIsNotAnErrorScreen(t *testing.T) {
	p := PresentationFor(model.Snapshot{
		State: model.StateError,
		Err:   &model.ErrorRecord{Reason: model.RTransitionTimeout, Recoverable: true},
	})
	assert.Equal(t, ViewBlank, p.View)
	assert.Empty(t, p.Message)
	assert.Equal(t, model.RTransitionTimeout, p.Reason)
	assert.True(t, p.CanRetry)
	assert.False(t, p.OpenSettings)
}

func TestPublicMessage_NeverEchoesUnknownReasons(t *testing.T) {
	msg := PublicMessage(model.ReasonCode("E_HAL: /dev/video0 ioctl failed"))
	assert.Equal(t, "Something went wrong with the camera.", msg)
}
