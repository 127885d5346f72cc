// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"context"

	"github.com/ManuGH/camlife/internal/log"
)

type hwJob struct {
	op  *operation
	run func(ctx context.Context)
}

// enqueueLocked schedules run for op on a hardware worker.
//
// Every job gets its own goroutine, but a goroutine that wins the hardware
// semaphore pops the oldest queued job rather than its own. Jobs therefore
// execute one at a time in enqueue order, whatever the scheduler does.
func (m *Machine) enqueueLocked(op *operation, run func(ctx context.Context)) {
	m.jobs = append(m.jobs, hwJob{op: op, run: run})
	if !m.tasks.Go(m.runNextJob) {
		j := m.jobs[len(m.jobs)-1]
		m.jobs = m.jobs[:len(m.jobs)-1]
		m.abandon(j)
	}
}

func (m *Machine) runNextJob() {
	err := m.hwSem.Acquire(m.life, 1)

	m.mu.Lock()
	j := m.jobs[0]
	m.jobs[0] = hwJob{}
	m.jobs = m.jobs[1:]
	m.mu.Unlock()

	if err != nil {
		m.abandon(j)
		return
	}
	j.run(m.life)
	m.hwSem.Release(1)
	m.flush()
}

func (m *Machine) abandon(j hwJob) {
	abandonedJobsTotal.Inc()
	ev := m.logger.Warn().
		Str(log.FieldOp, string(j.op.kind)).
		Uint64(log.FieldToken, j.op.token)
	if j.op.release != nil {
		ev = ev.Str(log.FieldHandle, j.op.release.ID())
	}
	ev.Msg("hardware job abandoned after dispose")
}
