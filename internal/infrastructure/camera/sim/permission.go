// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package sim

import (
	"context"
	"sync"
	"time"

	"github.com/ManuGH/camlife/internal/domain/camera/ports"
)

// Permissions implements ports.PermissionGate with a settable answer.
// PromptLatency models the time a user spends on the system dialog.
type Permissions struct {
	mu            sync.Mutex
	camera        ports.PermissionStatus
	microphone    ports.PermissionStatus
	promptLatency time.Duration
	prompts       int
}

func NewPermissions(status ports.PermissionStatus, promptLatency time.Duration) *Permissions {
	return &Permissions{camera: status, microphone: ports.PermissionGranted, promptLatency: promptLatency}
}

// Set changes the camera permission answer.
func (p *Permissions) Set(status ports.PermissionStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.camera = status
}

// SetMicrophone changes the microphone permission answer.
func (p *Permissions) SetMicrophone(status ports.PermissionStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.microphone = status
}

// Prompts returns how many times a dialog would have been shown.
func (p *Permissions) Prompts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prompts
}

// CheckOrRequest answers with the worst status among the required permissions.
// Only a plain denial prompts; granted and permanently denied answer at once.
func (p *Permissions) CheckOrRequest(ctx context.Context, req ports.Requirement) (ports.PermissionStatus, error) {
	p.mu.Lock()
	status := ports.PermissionGranted
	if req.Camera {
		status = worse(status, p.camera)
	}
	if req.Microphone {
		status = worse(status, p.microphone)
	}
	prompt := status == ports.PermissionDenied
	if prompt {
		p.prompts++
	}
	p.mu.Unlock()

	if prompt {
		if err := sleep(ctx, p.promptLatency); err != nil {
			return "", err
		}
	}
	return status, nil
}

func worse(a, b ports.PermissionStatus) ports.PermissionStatus {
	rank := func(s ports.PermissionStatus) int {
		switch s {
		case ports.PermissionPermanentlyDenied:
			return 2
		case ports.PermissionDenied:
			return 1
		}
		return 0
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}
