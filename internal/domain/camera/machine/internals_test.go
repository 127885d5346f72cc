// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
)

func TestNotifier_ReentrantEnqueueDeliversInOrder(t *testing.T) {
	var n notifier
	var got []model.LifecycleState

	n.enqueue(notification{change: &model.StateChange{To: model.StateInitializing}})
	n.enqueue(notification{change: &model.StateChange{To: model.StateReady}})

	var deliver func(notification)
	deliver = func(item notification) {
		got = append(got, item.change.To)
		if item.change.To == model.StateReady {
			n.enqueue(notification{change: &model.StateChange{To: model.StatePausing}})
			// Nested drain is a no-op; the outer loop picks the entry up.
			n.drain(deliver)
			assert.Equal(t, []model.LifecycleState{model.StateInitializing, model.StateReady}, got)
		}
	}
	n.drain(deliver)

	want := []model.LifecycleState{model.StateInitializing, model.StateReady, model.StatePausing}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("delivery order mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, n.idle())
}

func TestTaskRegistry_CloseAndWait(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var r taskRegistry
	release := make(chan struct{})
	require.True(t, r.Go(func() { <-release }))
	assert.Equal(t, int64(1), r.Active())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, r.CloseAndWait(ctx))
	assert.False(t, r.Go(func() {}), "closed registry must reject new tasks")

	close(release)
	require.NoError(t, r.CloseAndWait(context.Background()))
	assert.Zero(t, r.Active())
}

func TestOrientationPolicy_RequiresRecreate(t *testing.T) {
	tests := []struct {
		policy     OrientationPolicy
		configured model.Orientation
		latest     model.Orientation
		want       bool
	}{
		{PolicyAxis, model.OrientationPortraitUp, model.OrientationPortraitUp, false},
		{PolicyAxis, model.OrientationPortraitUp, model.OrientationPortraitDown, false},
		{PolicyAxis, model.OrientationPortraitUp, model.OrientationLandscapeLeft, true},
		{PolicyAxis, model.OrientationLandscapeRight, model.OrientationLandscapeLeft, false},
		{PolicyAny, model.OrientationPortraitUp, model.OrientationPortraitDown, true},
		{PolicyAny, model.OrientationLandscapeLeft, model.OrientationLandscapeLeft, false},
		{PolicyNever, model.OrientationPortraitUp, model.OrientationLandscapeLeft, false},
	}
	for _, tt := range tests {
		got := tt.policy.RequiresRecreate(tt.configured, tt.latest)
		assert.Equal(t, tt.want, got, "%s: %s -> %s", tt.policy, tt.configured, tt.latest)
	}
}

func TestParseOrientationPolicy(t *testing.T) {
	p, err := ParseOrientationPolicy("any")
	require.NoError(t, err)
	assert.Equal(t, PolicyAny, p)

	_, err = ParseOrientationPolicy("sometimes")
	assert.Error(t, err)
}

func TestConfig_WithDefaults(t *testing.T) {
	assert.Equal(t, DefaultConfig(), Config{}.withDefaults())

	cfg := Config{
		Debounce:           time.Second,
		TransitionTimeout:  2 * time.Second,
		OrientationPolicy:  PolicyNever,
		RetryInterval:      -1,
		RetryBurst:         3,
		InitialOrientation: model.OrientationLandscapeLeft,
	}
	assert.Equal(t, cfg, cfg.withDefaults())

	bad := Config{OrientationPolicy: "diagonal", InitialOrientation: "upside"}.withDefaults()
	assert.Equal(t, PolicyAxis, bad.OrientationPolicy)
	assert.Equal(t, model.OrientationPortraitUp, bad.InitialOrientation)
}

func TestOperation_FinishOnce(t *testing.T) {
	op := newOperation(model.OpResume, 7)
	op.finish(nil)
	op.finish(context.Canceled)

	select {
	case <-op.done:
	default:
		t.Fatal("done not closed")
	}
	assert.NoError(t, op.err)
	assert.Equal(t, &model.PendingOperation{Kind: model.OpResume, Token: 7}, op.pending())
}
