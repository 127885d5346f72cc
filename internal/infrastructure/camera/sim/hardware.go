// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package sim provides in-memory camera hardware and permission adapters with
// configurable latency and failure injection. cmd/camsim drives the lifecycle
// machine against them.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
	"github.com/ManuGH/camlife/internal/log"
)

// Handle is an open simulated session.
type Handle struct {
	id          string
	Descriptor  model.SessionDescriptor
	Orientation model.Orientation
	OpenedAt    time.Time
}

func (h *Handle) ID() string { return h.id }

// HardwareOptions configures simulated hardware.
type HardwareOptions struct {
	// Cameras defaults to DefaultCameras.
	Cameras      []model.CameraInfo
	OpenLatency  time.Duration
	CloseLatency time.Duration
	// Unsupported capabilities make ApplySettings report a *ports.CapabilityError.
	Unsupported []model.Capability
}

// DefaultCameras is a phone-like lens set.
func DefaultCameras() []model.CameraInfo {
	return []model.CameraInfo{
		{HardwareID: "back-0", Facing: model.FacingBack, SensorOrientation: 90, HasFlash: true},
		{HardwareID: "front-1", Facing: model.FacingFront, SensorOrientation: 270},
	}
}

// Stats counts hardware activity.
type Stats struct {
	Opens  int `json:"opens"`
	Closes int `json:"closes"`
	Active int `json:"active"`
}

// Hardware implements ports.HardwareSession. One lens can be held by one
// session at a time; a second Open of a busy lens fails with ports.ErrCameraInUse.
type Hardware struct {
	mu           sync.Mutex
	cameras      []model.CameraInfo
	openLatency  time.Duration
	closeLatency time.Duration
	unsupported  map[model.Capability]bool
	failures     map[string][]error
	active       map[string]*Handle
	stats        Stats
	logger       zerolog.Logger
}

func NewHardware(opts HardwareOptions) *Hardware {
	cams := opts.Cameras
	if len(cams) == 0 {
		cams = DefaultCameras()
	}
	h := &Hardware{
		cameras:      append([]model.CameraInfo(nil), cams...),
		openLatency:  opts.OpenLatency,
		closeLatency: opts.CloseLatency,
		unsupported:  make(map[model.Capability]bool),
		failures:     make(map[string][]error),
		active:       make(map[string]*Handle),
		logger:       log.WithComponent("camera.sim"),
	}
	for _, c := range opts.Unsupported {
		h.unsupported[c] = true
	}
	return h
}

// InjectOpenFailure makes the next Open of hardwareID fail with err.
func (h *Hardware) InjectOpenFailure(hardwareID string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures[hardwareID] = append(h.failures[hardwareID], err)
}

// Unsupport marks a capability as unavailable on every lens.
func (h *Hardware) Unsupport(c model.Capability) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsupported[c] = true
}

// Disconnect drops every session open on hardwareID, as an unplugged
// external camera would, and returns how many were dropped.
func (h *Hardware) Disconnect(hardwareID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for id, s := range h.active {
		if s.Descriptor.HardwareID == hardwareID {
			delete(h.active, id)
			n++
		}
	}
	h.stats.Active = len(h.active)
	h.logger.Info().Str(log.FieldHardwareID, hardwareID).Int("dropped", n).Msg("simulated disconnect")
	return n
}

func (h *Hardware) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

func (h *Hardware) lens(id string) (model.CameraInfo, bool) {
	for _, c := range h.cameras {
		if c.HardwareID == id {
			return c, true
		}
	}
	return model.CameraInfo{}, false
}

func (h *Hardware) Open(ctx context.Context, req ports.OpenRequest) (ports.SessionHandle, error) {
	if err := sleep(ctx, h.openLatency); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats.Opens++

	if q := h.failures[req.Descriptor.HardwareID]; len(q) > 0 {
		err := q[0]
		h.failures[req.Descriptor.HardwareID] = q[1:]
		return nil, err
	}
	if _, ok := h.lens(req.Descriptor.HardwareID); !ok {
		return nil, fmt.Errorf("%w: no lens %q", ports.ErrHardwareUnavailable, req.Descriptor.HardwareID)
	}
	for _, s := range h.active {
		if s.Descriptor.HardwareID == req.Descriptor.HardwareID {
			return nil, fmt.Errorf("%w: %s held by %s", ports.ErrCameraInUse, req.Descriptor.HardwareID, s.id)
		}
	}

	s := &Handle{
		id:          fmt.Sprintf("sim-%s-%s", req.Descriptor.HardwareID, uuid.New().String()),
		Descriptor:  req.Descriptor,
		Orientation: req.Orientation,
		OpenedAt:    time.Now(),
	}
	h.active[s.id] = s
	h.stats.Active = len(h.active)
	return s, nil
}

func (h *Hardware) Close(ctx context.Context, sh ports.SessionHandle) error {
	if sh == nil {
		return nil
	}
	// Release is not cancellable on real devices either.
	_ = sleep(context.WithoutCancel(ctx), h.closeLatency)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats.Closes++
	if _, ok := h.active[sh.ID()]; !ok {
		return fmt.Errorf("sim: close of unknown handle %s", sh.ID())
	}
	delete(h.active, sh.ID())
	h.stats.Active = len(h.active)
	return nil
}

func (h *Hardware) Cameras(ctx context.Context) ([]model.CameraInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]model.CameraInfo(nil), h.cameras...), nil
}

func (h *Hardware) ApplySettings(_ context.Context, sh ports.SessionHandle, s model.CaptureSettings) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	cur, ok := h.active[sh.ID()]
	if !ok {
		return fmt.Errorf("%w: handle %s", ports.ErrDeviceDisconnected, sh.ID())
	}
	lens, _ := h.lens(cur.Descriptor.HardwareID)
	if s.Flash != model.FlashOff && (!lens.HasFlash || h.unsupported[model.CapabilityFlash]) {
		return &ports.CapabilityError{Capability: model.CapabilityFlash}
	}
	if s.Zoom != model.BaselineZoom && h.unsupported[model.CapabilityZoom] {
		return &ports.CapabilityError{Capability: model.CapabilityZoom}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
