// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/camlife/internal/bus"
	"github.com/ManuGH/camlife/internal/config"
	"github.com/ManuGH/camlife/internal/domain/camera/lifecycle"
	"github.com/ManuGH/camlife/internal/domain/camera/machine"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
	"github.com/ManuGH/camlife/internal/domain/media/registry"
	"github.com/ManuGH/camlife/internal/infrastructure/camera/sim"
	"github.com/ManuGH/camlife/internal/log"
)

// settleTimeout bounds every await and expectation check.
const settleTimeout = 10 * time.Second

// runner executes one scenario against a fresh machine.
type runner struct {
	sc     Scenario
	hw     *sim.Hardware
	perms  *sim.Permissions
	media  *registry.Registry
	events *bus.MemoryBus
	m      *machine.Machine
	logger zerolog.Logger

	// async tracks steps running concurrently with the script.
	async errgroup.Group

	mu  sync.Mutex
	rep Report
}

func newRunner(cfg config.Config, sc Scenario) (*runner, error) {
	mcfg, err := machineConfig(cfg)
	if err != nil {
		return nil, err
	}
	desc, err := sessionDescriptor(cfg)
	if err != nil {
		return nil, err
	}

	unsupported := make([]model.Capability, 0, len(sc.Hardware.Unsupported))
	for _, c := range sc.Hardware.Unsupported {
		unsupported = append(unsupported, model.Capability(c))
	}

	r := &runner{
		sc: sc,
		hw: sim.NewHardware(sim.HardwareOptions{
			OpenLatency:  sc.Hardware.OpenLatency,
			CloseLatency: sc.Hardware.CloseLatency,
			Unsupported:  unsupported,
		}),
		perms:  sim.NewPermissions(ports.PermissionStatus(sc.Permission), sc.Hardware.PromptLatency),
		events: bus.NewMemoryBusWithBuffer(1024),
		logger: log.WithComponent("camsim").With().Str("scenario", sc.Name).Logger(),
	}
	r.media = registry.New(registry.Options{MaxItems: cfg.Registry.MaxItems, Bus: r.events})

	r.m, err = machine.New(machine.Options{
		Descriptor:    desc,
		Hardware:      r.hw,
		Permissions:   r.perms,
		OnStateChange: r.onStateChange,
		OnError:       r.onError,
		Bus:           r.events,
		Config:        mcfg,
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *runner) onStateChange(c model.StateChange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rep.Transitions = append(r.rep.Transitions, TransitionRecord{
		From: c.From, To: c.To, Cause: c.Cause, Token: c.Token, At: c.At,
	})
}

func (r *runner) onError(e model.ErrorRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rep.Errors = append(r.rep.Errors, ErrorEntry{
		Source: e.Source, Reason: e.Reason, Message: e.Message, Recoverable: e.Recoverable,
	})
}

func (r *runner) recordStep(res StepResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rep.Steps = append(r.rep.Steps, res)
}

func (r *runner) fail(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.logger.Warn().Msg(msg)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rep.Failures = append(r.rep.Failures, msg)
}

// run executes the scenario and always disposes the machine. Expectation
// mismatches are collected in the report; the error is reserved for
// failures of the run itself.
func (r *runner) run(ctx context.Context) (Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = log.ContextWithRunID(ctx, runID)
	r.logger = log.WithContext(ctx, r.logger)

	changes, err := r.media.Watch(ctx)
	if err != nil {
		return Report{}, err
	}
	defer changes.Close()

	for i, st := range r.sc.Steps {
		if err := ctx.Err(); err != nil {
			break
		}
		idx := i + 1
		if st.Async {
			r.async.Go(func() error {
				r.step(ctx, idx, st)
				return nil
			})
			continue
		}
		r.step(ctx, idx, st)
	}
	_ = r.async.Wait()

	disposeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
	defer cancel()
	if err := r.m.Dispose(disposeCtx); err != nil {
		return Report{}, fmt.Errorf("dispose: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rep := r.rep
	rep.Scenario = r.sc.Name
	rep.RunID = runID
	rep.MachineID = r.m.ID()
	rep.StartedAt = start
	rep.DurationMs = time.Since(start).Milliseconds()
	rep.FinalState = r.m.State()
	rep.Hardware = r.hw.Stats()
	rep.Media = r.media.Items()
	rep.MediaChanges = drain(changes)
	r.logger.Info().
		Str("final_state", string(rep.FinalState)).
		Int("transitions", len(rep.Transitions)).
		Int("errors", len(rep.Errors)).
		Int("failures", len(rep.Failures)).
		Int64(log.FieldDuration, rep.DurationMs).
		Msg("scenario finished")
	return rep, nil
}

func (r *runner) step(ctx context.Context, idx int, st Step) {
	res := StepResult{Index: idx, Action: st.Action, Value: st.Value, Async: st.Async}
	err := r.apply(ctx, st)
	if err != nil {
		res.Reason = lifecycle.ReasonOf(err)
	}
	if st.Expect != "" {
		r.expect(ctx, idx, model.LifecycleState(st.Expect))
	}
	res.State = r.m.State()
	r.recordStep(res)
	r.logger.Debug().
		Int("step", idx).
		Str(log.FieldOp, st.Action).
		Str(log.FieldReason, string(res.Reason)).
		Str(log.FieldNewState, string(res.State)).
		Msg("step applied")
}

func (r *runner) apply(ctx context.Context, st Step) error {
	switch st.Action {
	case ActionInitialize:
		return r.m.Initialize(ctx)
	case ActionSwitch:
		return r.m.SwitchCamera(ctx, model.LensFacing(st.Value))
	case ActionOrientation:
		r.m.HandleOrientationChange(model.Orientation(st.Value))
	case ActionApp:
		r.m.HandleAppLifecycleChange(model.AppLifecycleEvent(st.Value))
	case ActionFault:
		fault, err := faultError(st.Value)
		if err != nil {
			return err
		}
		r.m.ReportFault(fault)
	case ActionPermission:
		r.perms.Set(ports.PermissionStatus(st.Value))
	case ActionFailOpen:
		r.hw.InjectOpenFailure(st.Value, fmt.Errorf("simulated open failure on %s", st.Value))
	case ActionDisconnect:
		if r.hw.Disconnect(st.Value) > 0 {
			r.m.ReportFault(fmt.Errorf("%s: %w", st.Value, ports.ErrDeviceDisconnected))
		}
	case ActionCapture:
		return r.capture(st.Value)
	case ActionSleep:
		t := time.NewTimer(st.Wait)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	case ActionAwait:
		return r.await(ctx)
	case ActionDispose:
		return r.m.Dispose(ctx)
	}
	return nil
}

// capture registers a media file, as the controller layer does after a
// successful shot. It requires a live session.
func (r *runner) capture(path string) error {
	if r.m.Session() == nil {
		return lifecycle.NewReasonError(model.RInvalidTransition, "capture without a ready session", nil)
	}
	kind := registry.KindPhoto
	if strings.EqualFold(filepath.Ext(path), ".mp4") {
		kind = registry.KindVideo
	}
	_, evicted, err := r.media.Add(path, kind)
	for _, e := range evicted {
		r.logger.Debug().Str(log.FieldEntryID, e.ID).Str(log.FieldPath, e.Path).Msg("capture evicted")
	}
	return err
}

// await joins outstanding async steps, then waits for the machine to go quiet.
func (r *runner) await(ctx context.Context) error {
	_ = r.async.Wait()
	ctx, cancel := context.WithTimeout(ctx, settleTimeout)
	defer cancel()
	return r.m.Await(ctx)
}

func (r *runner) expect(ctx context.Context, idx int, want model.LifecycleState) {
	if err := r.await(ctx); err != nil {
		r.fail("step %d: machine did not settle: %v", idx, err)
		return
	}
	if got := r.m.State(); got != want {
		r.fail("step %d: expected %s, got %s", idx, want, got)
	}
}

func drain(sub bus.Subscriber) int {
	n := 0
	for {
		select {
		case <-sub.C():
			n++
		default:
			return n
		}
	}
}
