// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reasons a bus message is not delivered to a subscriber.
const (
	DropReasonFull   = "full"
	DropReasonClosed = "closed"
)

// BusDroppedTotal counts undelivered in-memory bus messages.
var BusDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "camlife_bus_dropped_total",
	Help: "Total number of in-memory bus message drops by topic and reason",
}, []string{"topic", "reason"})

// IncBusDrop records a message for topic that a subscriber did not receive.
func IncBusDrop(topic, reason string) {
	if topic == "" {
		topic = "unknown"
	}
	if reason == "" {
		reason = "unknown"
	}
	BusDroppedTotal.WithLabelValues(topic, reason).Inc()
}
