// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package testkit

import (
	"context"
	"sync"

	"github.com/ManuGH/camlife/internal/domain/camera/ports"
)

// PermissionGate returns a settable status. Hold makes calls block until Release.
type PermissionGate struct {
	mu       sync.Mutex
	status   ports.PermissionStatus
	err      error
	gate     chan struct{}
	calls    int
	requests []ports.Requirement
}

func NewPermissionGate(status ports.PermissionStatus) *PermissionGate {
	return &PermissionGate{status: status}
}

func (g *PermissionGate) Set(status ports.PermissionStatus) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = status
}

func (g *PermissionGate) SetError(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

func (g *PermissionGate) Hold() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gate == nil {
		g.gate = make(chan struct{})
	}
}

func (g *PermissionGate) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gate != nil {
		close(g.gate)
		g.gate = nil
	}
}

func (g *PermissionGate) CheckOrRequest(ctx context.Context, req ports.Requirement) (ports.PermissionStatus, error) {
	g.mu.Lock()
	g.calls++
	g.requests = append(g.requests, req)
	gate := g.gate
	g.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status, g.err
}

func (g *PermissionGate) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *PermissionGate) Requests() []ports.Requirement {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]ports.Requirement(nil), g.requests...)
}
