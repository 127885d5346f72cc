// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package machine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camlife_camera_transitions_total",
			Help: "Committed camera lifecycle transitions.",
		},
		[]string{"state_from", "state_to"},
	)

	staleResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camlife_camera_stale_results_total",
			Help: "Asynchronous hardware results discarded because a newer request superseded them.",
		},
		[]string{"op"},
	)

	lateSessionsAdoptedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camlife_camera_late_sessions_adopted_total",
			Help: "Sessions that arrived after their acquisition timed out and restored READY.",
		},
		[]string{"op"},
	)

	supersededTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camlife_camera_superseded_total",
			Help: "Pending operations superseded by a newer request.",
		},
		[]string{"op", "by"},
	)

	timeoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camlife_camera_transition_timeouts_total",
			Help: "Transitions force-resolved by the safety-net timeout.",
		},
		[]string{"state"},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camlife_camera_errors_total",
			Help: "Errors reported to observers by reason.",
		},
		[]string{"reason"},
	)

	capabilityDegradedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camlife_camera_capability_degraded_total",
			Help: "Capability flags cleared after the hardware reported them unsupported.",
		},
		[]string{"capability"},
	)

	hardwareOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camlife_camera_hardware_ops_total",
			Help: "Hardware session calls by operation and result.",
		},
		[]string{"op", "result"},
	)

	openDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "camlife_camera_open_duration_seconds",
			Help:    "Time spent in HardwareSession.Open.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 1.5, 3},
		},
	)

	abandonedJobsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "camlife_camera_abandoned_jobs_total",
			Help: "Queued hardware jobs dropped because the machine shut down first.",
		},
	)
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
