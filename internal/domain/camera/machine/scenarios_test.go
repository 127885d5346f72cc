// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/camlife/internal/domain/camera/lifecycle"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
)

func TestScenario_PermissionDeniedThenGranted(t *testing.T) {
	h := newHarness(t, func(o *Options) {
		// Default retry pacing still admits the first manual retry.
		o.Config.RetryInterval = 0
	})
	h.perms.Set(ports.PermissionDenied)

	require.ErrorIs(t, h.m.Initialize(h.ctx()), lifecycle.ErrPermission)
	h.await()
	assert.True(t, h.m.Presentation().CanRetry)

	h.perms.Set(ports.PermissionGranted)
	require.NoError(t, h.m.Initialize(h.ctx()))
	h.await()

	h.requireStates(
		model.StateInitializing, model.StateError,
		model.StateInitializing, model.StateReady,
	)
	assert.Nil(t, h.m.Snapshot().Err)
	assert.Equal(t, 1, h.hw.Opens())
	assert.Len(t, h.rec.errors(), 1)
}

func TestScenario_SwitchDuringRecreate(t *testing.T) {
	h := newHarness(t, nil)
	h.ready()
	staleBefore := counterValue(t, staleResultsTotal.WithLabelValues(string(model.OpRecreate)))

	h.hw.HoldOpens()
	h.m.HandleOrientationChange(model.OrientationLandscapeLeft)
	h.waitState(model.StateRecreating)
	h.nextOpen()

	switchErr := make(chan error, 1)
	go func() { switchErr <- h.m.SwitchCamera(h.ctx(), model.FacingFront) }()
	h.waitState(model.StateSwitching)

	h.hw.ReleaseOpens()
	require.NoError(t, <-switchErr)
	h.await()

	h.requireStates(
		model.StateInitializing, model.StateReady,
		model.StateRecreating, model.StateSwitching, model.StateReady,
	)
	snap := h.m.Snapshot()
	require.NotNil(t, snap.Descriptor)
	assert.Equal(t, model.FacingFront, snap.Descriptor.Facing)
	assert.Equal(t, "front-1", snap.Descriptor.HardwareID)
	assert.Equal(t, model.OrientationLandscapeLeft, snap.Orientation.Orientation)

	assert.Equal(t, 3, h.hw.Opens())
	assert.Equal(t, 1, h.hw.OpenHandles())
	assert.Equal(t, staleBefore+1, counterValue(t, staleResultsTotal.WithLabelValues(string(model.OpRecreate))))
}

func TestScenario_BackgroundForegroundBounce(t *testing.T) {
	h := newHarness(t, nil)
	h.ready()

	h.m.HandleAppLifecycleChange(model.AppBackgrounded)
	time.Sleep(20 * time.Millisecond)
	h.m.HandleAppLifecycleChange(model.AppForegrounded)
	h.await()

	assert.Equal(t, model.StateReady, h.m.State())
	assert.Equal(t, 2, h.hw.Opens())
	assert.Equal(t, 1, h.hw.Closes())
	assert.Equal(t, 1, h.hw.OpenHandles())

	states := h.rec.states()
	assert.Equal(t, model.StateReady, states[len(states)-1])
	assert.Equal(t, 1, countState(states, model.StateResuming))
	assert.Empty(t, h.rec.errors())
}

func TestScenario_DetachedPauses(t *testing.T) {
	h := newHarness(t, nil)
	h.ready()

	h.m.HandleAppLifecycleChange(model.AppDetached)
	h.await()

	h.requireStates(model.StateInitializing, model.StateReady, model.StatePausing, model.StatePaused)
	assert.Zero(t, h.hw.OpenHandles())
}

func TestScenario_PauseDuringInitializeIsDeferred(t *testing.T) {
	h := newHarness(t, nil)
	h.perms.Hold()

	initErr := make(chan error, 1)
	go func() { initErr <- h.m.Initialize(h.ctx()) }()
	h.waitState(model.StateInitializing)

	h.m.HandleAppLifecycleChange(model.AppInactive)
	assert.Equal(t, model.StateInitializing, h.m.State())
	h.perms.Release()

	require.NoError(t, <-initErr)
	h.await()

	h.requireStates(model.StateInitializing, model.StateReady, model.StatePausing, model.StatePaused)
	assert.Zero(t, h.hw.OpenHandles())
}

func TestScenario_ForegroundCancelsDeferredPause(t *testing.T) {
	h := newHarness(t, nil)
	h.perms.Hold()

	initErr := make(chan error, 1)
	go func() { initErr <- h.m.Initialize(h.ctx()) }()
	h.waitState(model.StateInitializing)

	h.m.HandleAppLifecycleChange(model.AppHidden)
	h.m.HandleAppLifecycleChange(model.AppForegrounded)
	h.perms.Release()

	require.NoError(t, <-initErr)
	h.await()
	h.requireStates(model.StateInitializing, model.StateReady)
}

func TestScenario_ReentrantCallbackKeepsOrder(t *testing.T) {
	h := newHarness(t, nil)
	h.rec.setHook(func(c model.StateChange) {
		if c.To == model.StateReady && c.Cause == model.OpInitialize {
			h.m.HandleAppLifecycleChange(model.AppBackgrounded)
		}
	})

	require.NoError(t, h.m.Initialize(h.ctx()))
	h.await()

	h.requireStates(model.StateInitializing, model.StateReady, model.StatePausing, model.StatePaused)
	states := h.rec.states()
	assert.Equal(t, model.StatePaused, h.m.State())
	assert.Equal(t, model.StatePaused, states[len(states)-1])
}
