// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package bus

import (
	"context"
	"sync"

	"github.com/ManuGH/camlife/internal/metrics"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 64

// MemoryBus is an in-memory pub/sub. It is not durable and provides
// best-effort delivery: a slow subscriber loses messages rather than
// blocking the publisher.
type MemoryBus struct {
	mu     sync.RWMutex
	subs   map[string][]*memorySub
	buffer int
}

func NewMemoryBus() *MemoryBus {
	return NewMemoryBusWithBuffer(DefaultBuffer)
}

// NewMemoryBusWithBuffer creates a bus whose subscribers buffer n messages.
func NewMemoryBusWithBuffer(n int) *MemoryBus {
	if n <= 0 {
		n = DefaultBuffer
	}
	return &MemoryBus{subs: make(map[string][]*memorySub), buffer: n}
}

func (b *MemoryBus) Publish(ctx context.Context, topic string, msg Message) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	b.mu.RLock()
	subs := append([]*memorySub(nil), b.subs[topic]...)
	b.mu.RUnlock()
	for _, s := range subs {
		if reason := s.offer(msg); reason != "" {
			metrics.IncBusDrop(topic, reason)
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(_ context.Context, topic string) (Subscriber, error) {
	s := &memorySub{bus: b, topic: topic, ch: make(chan Message, b.buffer)}
	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], s)
	b.mu.Unlock()
	return s, nil
}

func (b *MemoryBus) remove(s *memorySub) {
	b.mu.Lock()
	defer b.mu.Unlock()
	lst := b.subs[s.topic]
	out := lst[:0]
	for _, c := range lst {
		if c != s {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		delete(b.subs, s.topic)
	} else {
		b.subs[s.topic] = out
	}
}

type memorySub struct {
	bus   *MemoryBus
	topic string
	ch    chan Message

	mu     sync.Mutex
	closed bool
}

func (s *memorySub) C() <-chan Message { return s.ch }

// offer never blocks; it returns why msg was dropped, or "" on delivery.
func (s *memorySub) offer(msg Message) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return metrics.DropReasonClosed
	}
	select {
	case s.ch <- msg:
		return ""
	default:
		return metrics.DropReasonFull
	}
}

func (s *memorySub) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()
	s.bus.remove(s)
	return nil
}
