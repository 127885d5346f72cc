// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/ManuGH/camlife/internal/domain/camera/lifecycle"
	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
	"github.com/ManuGH/camlife/internal/log"
	"github.com/ManuGH/camlife/internal/telemetry"
)

var (
	ErrNoHardware    = errors.New("machine: hardware session is required")
	ErrNoPermissions = errors.New("machine: permission gate is required")
)

// Options binds a Machine to its collaborators.
type Options struct {
	Descriptor  model.SessionDescriptor
	Hardware    ports.HardwareSession
	Permissions ports.PermissionGate

	// OnStateChange and OnError are invoked in commit order, never
	// concurrently, and never while the machine lock is held.
	OnStateChange func(model.StateChange)
	OnError       func(model.ErrorRecord)

	// Bus optionally receives every StateChange and ErrorRecord.
	Bus ports.Bus

	// Settings are the initial capture settings; zero means flash off at baseline zoom.
	Settings model.CaptureSettings

	Config Config
}

// Machine is the camera lifecycle machine. Create it with New.
type Machine struct {
	id     string
	cfg    Config
	hw     ports.HardwareSession
	perms  ports.PermissionGate
	bus    ports.Bus
	logger zerolog.Logger
	tracer trace.Tracer

	onStateChange func(model.StateChange)
	onError       func(model.ErrorRecord)

	hwSem        *semaphore.Weighted
	tasks        taskRegistry
	disposeGroup singleflight.Group
	retry        *rate.Limiter
	notify       notifier

	// life is cancelled once the machine is disposed; hardware and permission
	// calls run under it.
	life     context.Context
	stopLife context.CancelFunc

	mu          sync.Mutex
	state       model.LifecycleState
	version     uint64
	pending     *operation
	jobs        []hwJob
	handle      ports.SessionHandle
	descriptor  *model.SessionDescriptor
	target      model.SessionDescriptor
	settings    model.CaptureSettings
	caps        model.Capabilities
	orientation model.OrientationSnapshot
	latest      model.Orientation
	orientGen   uint64
	debounce    *time.Timer
	lastErr     *model.ErrorRecord
	// healing is an acquisition that timed out into ERROR. Its late session
	// is adopted unless anything newer happens first.
	healing *operation
	// pauseDeferred records a release event seen while INITIALIZING.
	pauseDeferred bool
}

// New constructs a machine in UNINITIALIZED. No hardware is touched until Initialize.
func New(opts Options) (*Machine, error) {
	if opts.Hardware == nil {
		return nil, ErrNoHardware
	}
	if opts.Permissions == nil {
		return nil, ErrNoPermissions
	}
	if err := opts.Descriptor.Validate(); err != nil {
		return nil, err
	}

	cfg := opts.Config.withDefaults()
	settings := opts.Settings
	if settings.Flash == "" {
		settings.Flash = model.FlashOff
	}
	if settings.Zoom <= 0 {
		settings.Zoom = model.BaselineZoom
	}

	id := uuid.NewString()
	life, stop := context.WithCancel(context.Background())
	m := &Machine{
		id:            id,
		cfg:           cfg,
		hw:            opts.Hardware,
		perms:         opts.Permissions,
		bus:           opts.Bus,
		logger:        log.WithComponent("camera.machine").With().Str(log.FieldMachineID, id).Logger(),
		tracer:        telemetry.Tracer("camera.machine"),
		onStateChange: opts.OnStateChange,
		onError:       opts.OnError,
		hwSem:         semaphore.NewWeighted(1),
		retry:         rate.NewLimiter(rate.Every(cfg.RetryInterval), cfg.RetryBurst),
		life:          life,
		stopLife:      stop,
		state:         model.StateUninitialized,
		target:        opts.Descriptor,
		settings:      settings,
		caps:          model.AllCapabilities(),
		orientation:   model.OrientationSnapshot{Orientation: cfg.InitialOrientation},
		latest:        cfg.InitialOrientation,
	}
	m.logger.Debug().
		Str(log.FieldHardwareID, opts.Descriptor.HardwareID).
		Str(log.FieldFacing, string(opts.Descriptor.Facing)).
		Str("policy", string(cfg.OrientationPolicy)).
		Msg("camera machine created")
	return m, nil
}

// ID returns the machine's unique identifier.
func (m *Machine) ID() string { return m.id }

// Snapshot returns an immutable view of the current state.
func (m *Machine) Snapshot() model.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// State returns the current lifecycle state.
func (m *Machine) State() model.LifecycleState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Presentation derives the render input from the current snapshot.
func (m *Machine) Presentation() lifecycle.Presentation {
	return lifecycle.PresentationFor(m.Snapshot())
}

// Session returns the open hardware handle while READY, and nil otherwise.
func (m *Machine) Session() ports.SessionHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != model.StateReady {
		return nil
	}
	return m.handle
}

func (m *Machine) snapshotLocked() model.Snapshot {
	s := model.Snapshot{
		MachineID:    m.id,
		State:        m.state,
		Target:       m.target,
		Orientation:  m.orientation,
		Settings:     m.settings,
		Capabilities: m.caps,
		Version:      m.version,
	}
	if m.descriptor != nil {
		d := *m.descriptor
		s.Descriptor = &d
	}
	if m.pending != nil {
		s.Pending = m.pending.pending()
	}
	if m.lastErr != nil {
		e := *m.lastErr
		s.Err = &e
	}
	return s
}

// beginLocked supersedes any pending operation, bumps the version and commits
// the request transition. Callers check lifecycle.Allowed first.
func (m *Machine) beginLocked(kind model.OpKind, ev lifecycle.EventKind, target model.SessionDescriptor) *operation {
	m.supersedeLocked(kind)
	m.healing = nil
	m.version++
	op := newOperation(kind, m.version)
	op.target = target
	op.settings = m.settings
	m.target = target
	m.pending = op
	if err := m.transitionLocked(ev, kind, op.token); err != nil {
		m.logger.Error().Err(err).Str(log.FieldOp, string(kind)).Msg("request transition rejected")
	}
	return op
}

func (m *Machine) supersedeLocked(by model.OpKind) {
	prev := m.pending
	if prev == nil {
		return
	}
	prev.cancelled = true
	prev.stopTimer()
	m.pending = nil
	supersededTotal.WithLabelValues(string(prev.kind), string(by)).Inc()
	m.logger.Debug().
		Str(log.FieldOp, string(prev.kind)).
		Uint64(log.FieldToken, prev.token).
		Str("by", string(by)).
		Msg("operation superseded")
	prev.finish(lifecycle.NewReasonError(model.RSuperseded, fmt.Sprintf("%s superseded by %s", prev.kind, by), nil))
}

func (m *Machine) isCurrentLocked(op *operation) bool {
	return m.pending == op && !op.cancelled
}

// ownsLocked reports whether op may still commit a session: it is current,
// or it timed out and the machine is still waiting in ERROR for its result.
func (m *Machine) ownsLocked(op *operation) bool {
	return m.isCurrentLocked(op) || (m.healing == op && m.state == model.StateError)
}

func (m *Machine) cancelHealingLocked(why string) {
	if m.healing == nil {
		return
	}
	m.logger.Debug().
		Str(log.FieldOp, string(m.healing.kind)).
		Uint64(log.FieldToken, m.healing.token).
		Str("by", why).
		Msg("timed out acquisition no longer adoptable")
	m.healing = nil
}

func (m *Machine) staleLocked(op *operation, stage string) {
	staleResultsTotal.WithLabelValues(string(op.kind)).Inc()
	m.logger.Debug().
		Str(log.FieldOp, string(op.kind)).
		Uint64(log.FieldToken, op.token).
		Uint64("version", m.version).
		Str("stage", stage).
		Msg("discarding stale result")
}

// detachLocked hands the open session to the caller, who becomes responsible for closing it.
func (m *Machine) detachLocked() ports.SessionHandle {
	h := m.handle
	m.handle = nil
	m.descriptor = nil
	return h
}

func (m *Machine) transitionLocked(ev lifecycle.EventKind, cause model.OpKind, token uint64) error {
	tr, err := lifecycle.Dispatch(m.state, ev)
	if err != nil {
		return err
	}
	from := m.state
	m.state = tr.To
	if tr.To != model.StateError {
		m.lastErr = nil
	}
	transitionsTotal.WithLabelValues(string(from), string(tr.To)).Inc()
	m.logger.Debug().
		Str(log.FieldOldState, string(from)).
		Str(log.FieldNewState, string(tr.To)).
		Str(log.FieldEvent, tr.Event.String()).
		Str(log.FieldOp, string(cause)).
		Uint64(log.FieldToken, token).
		Msg("transition committed")

	change := model.StateChange{
		From:     from,
		To:       tr.To,
		Cause:    cause,
		Token:    token,
		Snapshot: m.snapshotLocked(),
		At:       time.Now(),
	}
	m.notify.enqueue(notification{change: &change})
	return nil
}

func (m *Machine) errorRecord(source model.OpKind, err error) model.ErrorRecord {
	reason, _ := lifecycle.ClassifyReason(err)
	return model.ErrorRecord{
		Source:      source,
		Reason:      reason,
		Message:     lifecycle.PublicMessage(reason),
		Cause:       err,
		Recoverable: reason.IsRecoverable(),
		At:          time.Now(),
	}
}

func (m *Machine) reportLocked(rec model.ErrorRecord) {
	_, detail := lifecycle.ClassifyReason(rec.Cause)
	errorsTotal.WithLabelValues(string(rec.Reason)).Inc()
	m.logger.Warn().
		Str(log.FieldOp, string(rec.Source)).
		Str(log.FieldReason, string(rec.Reason)).
		Bool("recoverable", rec.Recoverable).
		Str("detail", detail).
		Msg("camera error")
	m.notify.enqueue(notification{err: &rec})
}

// failLocked moves an acquiring operation to ERROR.
func (m *Machine) failLocked(op *operation, err error) {
	rec := m.errorRecord(op.kind, err)
	op.stopTimer()
	m.pending = nil
	m.lastErr = &rec
	if terr := m.transitionLocked(lifecycle.EvOpenFailed, op.kind, op.token); terr != nil {
		m.logger.Error().Err(terr).Msg("failure transition rejected")
	}
	m.reportLocked(rec)
	op.finish(err)
}

func (m *Machine) wait(ctx context.Context, op *operation) error {
	if op == nil {
		return nil
	}
	select {
	case <-op.done:
		return op.err
	case <-ctx.Done():
		return lifecycle.NewReasonError(model.RCancelled, "caller stopped waiting", ctx.Err())
	}
}

func (m *Machine) flush() {
	m.notify.drain(m.deliver)
}

func (m *Machine) deliver(n notification) {
	switch {
	case n.change != nil:
		if m.onStateChange != nil {
			m.onStateChange(*n.change)
		}
		m.publish(ports.TopicCameraState, *n.change)
	case n.err != nil:
		if m.onError != nil {
			m.onError(*n.err)
		}
		m.publish(ports.TopicCameraError, *n.err)
	}
}

func (m *Machine) publish(topic string, event interface{}) {
	if m.bus == nil {
		return
	}
	if err := m.bus.Publish(context.Background(), topic, event); err != nil {
		m.logger.Debug().Err(err).Str("topic", topic).Msg("bus publish failed")
	}
}
