// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mediaRegistryItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "camlife_media_registry_items",
		Help: "Number of captured media items currently held across all registries",
	})

	mediaRegistryEvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "camlife_media_registry_evictions_total",
		Help: "Total number of media items evicted because the registry was full",
	})

	mediaRegistryOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "camlife_media_registry_ops_total",
		Help: "Total number of media registry operations by kind",
	}, []string{"op"})
)

// AddMediaRegistryItems moves the held-items gauge by delta. Every registry
// reports deltas, so concurrent registries add up instead of overwriting.
func AddMediaRegistryItems(delta int) {
	mediaRegistryItems.Add(float64(delta))
}

// IncMediaRegistryEviction records one evicted media item.
func IncMediaRegistryEviction() {
	mediaRegistryEvictionsTotal.Inc()
}

// IncMediaRegistryOp records a registry operation ("add", "remove", "clear").
func IncMediaRegistryOp(op string) {
	if op == "" {
		op = "unknown"
	}
	mediaRegistryOpsTotal.WithLabelValues(op).Inc()
}
