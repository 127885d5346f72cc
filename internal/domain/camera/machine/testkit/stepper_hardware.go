// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package testkit provides controllable fakes for the camera ports.
package testkit

import (
	"context"
	"fmt"
	"sync"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
)

// Handle is the session handle returned by StepperHardware.
type Handle struct {
	id  string
	Req ports.OpenRequest
}

func (h *Handle) ID() string { return h.id }

// StepperHardware is a HardwareSession whose Open and Close calls can be held
// until the test releases them. Every call is recorded.
type StepperHardware struct {
	mu sync.Mutex

	cameras []model.CameraInfo

	openGate  chan struct{}
	closeGate chan struct{}

	openStarted chan ports.OpenRequest

	failOpens   []error
	settingsErr error
	closeErr    error

	seq      int
	requests []ports.OpenRequest
	open     map[string]bool
	opens    int
	closes   int
	applied  []model.CaptureSettings
}

// DefaultCameras is a back lens with flash and a front lens without one.
func DefaultCameras() []model.CameraInfo {
	return []model.CameraInfo{
		{HardwareID: "back-0", Facing: model.FacingBack, SensorOrientation: 90, HasFlash: true},
		{HardwareID: "front-1", Facing: model.FacingFront, SensorOrientation: 270, HasFlash: false},
	}
}

func NewStepperHardware() *StepperHardware {
	return &StepperHardware{
		cameras:     DefaultCameras(),
		openStarted: make(chan ports.OpenRequest, 64),
		open:        make(map[string]bool),
	}
}

// HoldOpens makes subsequent Open calls block until ReleaseOpens.
func (h *StepperHardware) HoldOpens() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.openGate == nil {
		h.openGate = make(chan struct{})
	}
}

// ReleaseOpens unblocks held and future Open calls.
func (h *StepperHardware) ReleaseOpens() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.openGate != nil {
		close(h.openGate)
		h.openGate = nil
	}
}

// HoldCloses makes subsequent Close calls block until ReleaseCloses.
func (h *StepperHardware) HoldCloses() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closeGate == nil {
		h.closeGate = make(chan struct{})
	}
}

func (h *StepperHardware) ReleaseCloses() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closeGate != nil {
		close(h.closeGate)
		h.closeGate = nil
	}
}

// OpenStarted delivers the request of every Open call as it begins.
func (h *StepperHardware) OpenStarted() <-chan ports.OpenRequest {
	return h.openStarted
}

// FailNextOpen queues err as the result of the next Open call.
func (h *StepperHardware) FailNextOpen(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failOpens = append(h.failOpens, err)
}

// SetSettingsError makes ApplySettings return err.
func (h *StepperHardware) SetSettingsError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.settingsErr = err
}

// SetCloseError makes Close return err (the handle is still released).
func (h *StepperHardware) SetCloseError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closeErr = err
}

// SetCameras replaces the lens list.
func (h *StepperHardware) SetCameras(cams []model.CameraInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cameras = append([]model.CameraInfo(nil), cams...)
}

func (h *StepperHardware) Open(ctx context.Context, req ports.OpenRequest) (ports.SessionHandle, error) {
	h.mu.Lock()
	gate := h.openGate
	h.opens++
	h.requests = append(h.requests, req)
	h.mu.Unlock()

	select {
	case h.openStarted <- req:
	default:
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.failOpens) > 0 {
		err := h.failOpens[0]
		h.failOpens = h.failOpens[1:]
		return nil, err
	}
	h.seq++
	handle := &Handle{id: fmt.Sprintf("h%d-%s", h.seq, req.Descriptor.HardwareID), Req: req}
	h.open[handle.id] = true
	return handle, nil
}

func (h *StepperHardware) Close(ctx context.Context, sh ports.SessionHandle) error {
	h.mu.Lock()
	gate := h.closeGate
	h.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closes++
	delete(h.open, sh.ID())
	return h.closeErr
}

func (h *StepperHardware) Cameras(_ context.Context) ([]model.CameraInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]model.CameraInfo(nil), h.cameras...), nil
}

func (h *StepperHardware) ApplySettings(_ context.Context, _ ports.SessionHandle, s model.CaptureSettings) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.applied = append(h.applied, s)
	return h.settingsErr
}

// Opens returns the number of Open calls.
func (h *StepperHardware) Opens() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.opens
}

// Closes returns the number of completed Close calls.
func (h *StepperHardware) Closes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closes
}

// OpenHandles returns the number of handles opened and not yet closed.
func (h *StepperHardware) OpenHandles() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.open)
}

// Requests returns every Open request in call order.
func (h *StepperHardware) Requests() []ports.OpenRequest {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]ports.OpenRequest(nil), h.requests...)
}

// AppliedSettings returns every ApplySettings payload in call order.
func (h *StepperHardware) AppliedSettings() []model.CaptureSettings {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]model.CaptureSettings(nil), h.applied...)
}
