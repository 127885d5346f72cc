// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/camlife/internal/domain/camera/lifecycle"
	"github.com/ManuGH/camlife/internal/domain/camera/machine/testkit"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
)

func TestSwitchCamera_FromReady(t *testing.T) {
	h := newHarness(t, func(o *Options) {
		o.Settings = model.CaptureSettings{Flash: model.FlashAuto, Zoom: 2.5}
	})
	h.ready()

	require.NoError(t, h.m.SwitchCamera(h.ctx(), model.FacingFront))
	h.await()

	h.requireStates(model.StateInitializing, model.StateReady, model.StateSwitching, model.StateReady)
	snap := h.m.Snapshot()
	require.NotNil(t, snap.Descriptor)
	assert.Equal(t, "front-1", snap.Descriptor.HardwareID)
	assert.Equal(t, model.FacingFront, snap.Target.Facing)
	assert.Equal(t, model.CaptureSettings{Flash: model.FlashOff, Zoom: model.BaselineZoom}, snap.Settings)
	assert.False(t, snap.Capabilities.Flash)
	assert.False(t, snap.Capabilities.Torch)
	assert.True(t, snap.Capabilities.Zoom)

	assert.Equal(t, 2, h.hw.Opens())
	assert.Equal(t, 1, h.hw.Closes())
	assert.Equal(t, 1, h.hw.OpenHandles())
	applied := h.hw.AppliedSettings()
	assert.Equal(t, model.FlashOff, applied[len(applied)-1].Flash)
}

func TestSwitchCamera_BackLensKeepsFlashMode(t *testing.T) {
	h := newHarness(t, func(o *Options) {
		o.Descriptor = model.SessionDescriptor{HardwareID: "front-1", Facing: model.FacingFront, Resolution: model.ResolutionMedium}
		o.Settings = model.CaptureSettings{Flash: model.FlashAuto, Zoom: 3}
	})
	h.ready()

	require.NoError(t, h.m.SwitchCamera(h.ctx(), model.FacingBack))
	h.await()

	snap := h.m.Snapshot()
	assert.Equal(t, "back-0", snap.Descriptor.HardwareID)
	assert.Equal(t, model.ResolutionMedium, snap.Descriptor.Resolution)
	assert.Equal(t, model.FlashAuto, snap.Settings.Flash)
	assert.Equal(t, model.BaselineZoom, snap.Settings.Zoom)
	assert.True(t, snap.Capabilities.Flash)
}

func TestSwitchCamera_MissingLens(t *testing.T) {
	h := newHarness(t, nil)
	h.hw.SetCameras(testkit.DefaultCameras()[:1])
	h.ready()

	err := h.m.SwitchCamera(h.ctx(), model.FacingFront)
	require.ErrorIs(t, err, lifecycle.ErrCapabilityUnsupported)
	assert.Equal(t, model.RLensUnavailable, lifecycle.ReasonOf(err))

	h.await()
	assert.Equal(t, model.StateReady, h.m.State())
	assert.Equal(t, 1, h.hw.Opens())
	assert.Len(t, h.rec.states(), 2)
}

func TestSwitchCamera_UnknownFacing(t *testing.T) {
	h := newHarness(t, nil)
	err := h.m.SwitchCamera(h.ctx(), "periscope")
	assert.Equal(t, model.RLensUnavailable, lifecycle.ReasonOf(err))
}

func TestSwitchCamera_OpenFailureMovesToError(t *testing.T) {
	h := newHarness(t, nil)
	h.ready()
	h.hw.FailNextOpen(errors.New("lens busy"))

	err := h.m.SwitchCamera(h.ctx(), model.FacingFront)
	require.ErrorIs(t, err, lifecycle.ErrSwitchFailed)
	h.await()

	h.requireStates(model.StateInitializing, model.StateReady, model.StateSwitching, model.StateError)
	errs := h.rec.errors()
	require.Len(t, errs, 1)
	assert.Equal(t, model.RSwitchFailed, errs[0].Reason)
	assert.True(t, errs[0].Recoverable)
	assert.Zero(t, h.hw.OpenHandles())
}

func TestSwitchCamera_WhilePausedRetargetsResume(t *testing.T) {
	h := newHarness(t, nil)
	h.ready()
	h.m.HandleAppLifecycleChange(model.AppBackgrounded)
	h.await()

	require.NoError(t, h.m.SwitchCamera(h.ctx(), model.FacingFront))
	assert.Equal(t, model.StatePaused, h.m.State())
	assert.Equal(t, 1, h.hw.Opens())

	h.m.HandleAppLifecycleChange(model.AppForegrounded)
	h.await()

	assert.Equal(t, model.StateReady, h.m.State())
	reqs := h.hw.Requests()
	assert.Equal(t, "front-1", reqs[len(reqs)-1].Descriptor.HardwareID)
	assert.Zero(t, countState(h.rec.states(), model.StateSwitching))
}

func TestSwitchCamera_DropsPendingOrientationDecision(t *testing.T) {
	h := newHarness(t, nil)
	h.ready()

	h.m.HandleOrientationChange(model.OrientationLandscapeLeft)
	require.NoError(t, h.m.SwitchCamera(h.ctx(), model.FacingFront))
	h.await()

	assert.Zero(t, countState(h.rec.states(), model.StateRecreating))
	assert.Equal(t, 2, h.hw.Opens())
	reqs := h.hw.Requests()
	assert.Equal(t, model.OrientationLandscapeLeft, reqs[1].Orientation)
}

func TestSwitchCamera_SettingsCapabilityDegrades(t *testing.T) {
	h := newHarness(t, nil)
	h.ready()
	h.hw.SetSettingsError(&ports.CapabilityError{Capability: model.CapabilityZoom})

	require.NoError(t, h.m.SwitchCamera(h.ctx(), model.FacingFront))
	h.await()

	assert.Equal(t, model.StateReady, h.m.State())
	assert.False(t, h.m.Snapshot().Capabilities.Zoom)
	assert.Empty(t, h.rec.errors())
}

func TestSwitchCamera_RejectedWhileInitializing(t *testing.T) {
	h := newHarness(t, nil)
	h.perms.Hold()

	initErr := make(chan error, 1)
	go func() { initErr <- h.m.Initialize(h.ctx()) }()
	h.waitState(model.StateInitializing)

	err := h.m.SwitchCamera(h.ctx(), model.FacingFront)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

	h.perms.Release()
	require.NoError(t, <-initErr)
}

func TestSwitchCamera_LensLookupDoesNotWaitForHardware(t *testing.T) {
	h := newHarness(t, nil)
	h.ready()
	h.hw.HoldOpens()

	h.m.HandleOrientationChange(model.OrientationLandscapeLeft)
	h.waitState(model.StateRecreating)
	h.nextOpen()

	// The recreate holds the hardware lane inside Open; the switch must
	// still resolve its lens and take over.
	switchErr := make(chan error, 1)
	go func() { switchErr <- h.m.SwitchCamera(h.ctx(), model.FacingFront) }()
	h.waitState(model.StateSwitching)
	assert.Equal(t, model.FacingFront, h.m.Snapshot().Target.Facing)

	h.hw.ReleaseOpens()
	require.NoError(t, <-switchErr)
	h.await()
	assert.Equal(t, model.StateReady, h.m.State())
	assert.Equal(t, 1, h.hw.OpenHandles())
}
