// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ManuGH/camlife/internal/domain/camera/machine/testkit"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
)

const testWait = 3 * time.Second

// recorder captures observer callbacks in delivery order.
type recorder struct {
	mu      sync.Mutex
	changes []model.StateChange
	errs    []model.ErrorRecord
	hook    func(model.StateChange)
}

func (r *recorder) onChange(c model.StateChange) {
	r.mu.Lock()
	r.changes = append(r.changes, c)
	hook := r.hook
	r.mu.Unlock()
	if hook != nil {
		hook(c)
	}
}

func (r *recorder) onError(e model.ErrorRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, e)
}

func (r *recorder) setHook(fn func(model.StateChange)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hook = fn
}

func (r *recorder) states() []model.LifecycleState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.LifecycleState, 0, len(r.changes))
	for _, c := range r.changes {
		out = append(out, c.To)
	}
	return out
}

func (r *recorder) changeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changes)
}

func (r *recorder) errors() []model.ErrorRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.ErrorRecord(nil), r.errs...)
}

type harness struct {
	t     *testing.T
	m     *Machine
	hw    *testkit.StepperHardware
	perms *testkit.PermissionGate
	rec   *recorder
}

func backDescriptor() model.SessionDescriptor {
	return model.SessionDescriptor{
		HardwareID: "back-0",
		Facing:     model.FacingBack,
		Resolution: model.ResolutionHigh,
	}
}

func testConfig() Config {
	return Config{
		Debounce:          30 * time.Millisecond,
		TransitionTimeout: time.Second,
		RetryInterval:     -1,
	}
}

// newHarness builds a machine over stepper hardware with a granting
// permission gate. mutate may adjust the options before construction.
// Cleanup releases every gate, disposes the machine and checks for leaked goroutines.
func newHarness(t *testing.T, mutate func(*Options)) *harness {
	t.Helper()
	ignore := goleak.IgnoreCurrent()
	t.Cleanup(func() { goleak.VerifyNone(t, ignore) })

	h := &harness{
		t:     t,
		hw:    testkit.NewStepperHardware(),
		perms: testkit.NewPermissionGate(ports.PermissionGranted),
		rec:   &recorder{},
	}
	opts := Options{
		Descriptor:    backDescriptor(),
		Hardware:      h.hw,
		Permissions:   h.perms,
		OnStateChange: h.rec.onChange,
		OnError:       h.rec.onError,
		Config:        testConfig(),
	}
	if mutate != nil {
		mutate(&opts)
	}
	m, err := New(opts)
	require.NoError(t, err)
	h.m = m

	t.Cleanup(func() {
		h.hw.ReleaseOpens()
		h.hw.ReleaseCloses()
		h.perms.Release()
		ctx, cancel := context.WithTimeout(context.Background(), testWait)
		defer cancel()
		_ = m.Dispose(ctx)
	})
	return h
}

func (h *harness) ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), testWait)
	h.t.Cleanup(cancel)
	return ctx
}

// ready initializes the machine and consumes the initial open notification.
func (h *harness) ready() {
	h.t.Helper()
	require.NoError(h.t, h.m.Initialize(h.ctx()))
	require.Equal(h.t, model.StateReady, h.m.State())
	h.nextOpen()
	h.await()
}

func (h *harness) await() {
	h.t.Helper()
	require.NoError(h.t, h.m.Await(h.ctx()))
}

// nextOpen waits for the next Open call to start.
func (h *harness) nextOpen() ports.OpenRequest {
	h.t.Helper()
	select {
	case req := <-h.hw.OpenStarted():
		return req
	case <-time.After(testWait):
		h.t.Fatal("timed out waiting for Open")
		return ports.OpenRequest{}
	}
}

func (h *harness) waitState(state model.LifecycleState) {
	h.t.Helper()
	require.Eventually(h.t, func() bool { return h.m.State() == state },
		testWait, 2*time.Millisecond, "never reached %s, stuck in %s", state, h.m.State())
}

func (h *harness) requireStates(want ...model.LifecycleState) {
	h.t.Helper()
	if diff := cmp.Diff(want, h.rec.states()); diff != "" {
		h.t.Fatalf("state sequence mismatch (-want +got):\n%s", diff)
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func countState(states []model.LifecycleState, s model.LifecycleState) int {
	n := 0
	for _, st := range states {
		if st == s {
			n++
		}
	}
	return n
}

// capturingBus records published topics in order.
type capturingBus struct {
	mu   sync.Mutex
	seen []string
}

func (b *capturingBus) Publish(_ context.Context, topic string, _ interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seen = append(b.seen, topic)
	return nil
}

func (b *capturingBus) topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.seen...)
}
