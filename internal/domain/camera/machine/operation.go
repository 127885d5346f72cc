// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"sync"
	"time"

	"github.com/ManuGH/camlife/internal/domain/camera/model"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
)

// operation is one hardware-affecting request. Fields other than done/err
// are guarded by Machine.mu.
type operation struct {
	kind      model.OpKind
	token     uint64
	cancelled bool

	// release is the handle detached from the machine when the operation
	// started. The operation closes it exactly once, even when superseded.
	release ports.SessionHandle
	target  model.SessionDescriptor
	// settings are pushed to the session after a successful open.
	settings model.CaptureSettings
	lens     *model.CameraInfo

	timer   *time.Timer
	started time.Time

	done chan struct{}
	once sync.Once
	err  error
}

func newOperation(kind model.OpKind, token uint64) *operation {
	return &operation{kind: kind, token: token, done: make(chan struct{}), started: time.Now()}
}

// finish records the caller-visible result. Later calls are ignored.
func (op *operation) finish(err error) {
	op.once.Do(func() {
		op.err = err
		close(op.done)
	})
}

func (op *operation) stopTimer() {
	if op.timer != nil {
		op.timer.Stop()
		op.timer = nil
	}
}

func (op *operation) pending() *model.PendingOperation {
	return &model.PendingOperation{Kind: op.kind, Token: op.token, Cancelled: op.cancelled}
}
