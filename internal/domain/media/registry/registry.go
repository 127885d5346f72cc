// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package registry keeps the captured media of one capture screen: a bounded,
// insertion-ordered list of file references that evicts the oldest entry when full.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ManuGH/camlife/internal/bus"
	"github.com/ManuGH/camlife/internal/domain/camera/ports"
	"github.com/ManuGH/camlife/internal/log"
	"github.com/ManuGH/camlife/internal/metrics"
)

// DefaultMaxItems bounds a registry created without an explicit size.
const DefaultMaxItems = 10

var (
	ErrEmptyPath   = errors.New("registry: media path is required")
	ErrUnknownKind = errors.New("registry: unknown media kind")
)

// Kind distinguishes stills from recordings.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

func (k Kind) Valid() bool { return k == KindPhoto || k == KindVideo }

// Entry references one captured file.
type Entry struct {
	ID         string    `json:"id"`
	Path       string    `json:"path"`
	Kind       Kind      `json:"kind"`
	CapturedAt time.Time `json:"capturedAt"`
}

// ChangeKind names what happened to the registry.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeEvicted ChangeKind = "evicted"
	ChangeCleared ChangeKind = "cleared"
)

// Change is published on ports.TopicMediaChange after every mutation.
type Change struct {
	Kind  ChangeKind `json:"kind"`
	Entry *Entry     `json:"entry,omitempty"`
	Count int        `json:"count"`
}

// Options configures a Registry.
type Options struct {
	MaxItems int
	// Bus carries change notifications. A private MemoryBus is used when nil.
	Bus bus.Bus
}

// Registry is safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	limit  int
	items  []Entry
	bus    bus.Bus
	logger zerolog.Logger
}

func New(opts Options) *Registry {
	limit := opts.MaxItems
	if limit <= 0 {
		limit = DefaultMaxItems
	}
	b := opts.Bus
	if b == nil {
		b = bus.NewMemoryBus()
	}
	return &Registry{
		limit:  limit,
		bus:    b,
		logger: log.WithComponent("media.registry"),
	}
}

// MaxItems returns the capacity.
func (r *Registry) MaxItems() int { return r.limit }

// Add appends a captured file and returns the new entry together with any
// entries evicted to stay within capacity, oldest first.
func (r *Registry) Add(path string, kind Kind) (Entry, []Entry, error) {
	if path == "" {
		return Entry{}, nil, ErrEmptyPath
	}
	if !kind.Valid() {
		return Entry{}, nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e := Entry{ID: uuid.NewString(), Path: path, Kind: kind, CapturedAt: time.Now()}
	var evicted []Entry
	for len(r.items) >= r.limit {
		old := r.items[0]
		r.items[0] = Entry{}
		r.items = r.items[1:]
		evicted = append(evicted, old)
		metrics.IncMediaRegistryEviction()
		r.publishLocked(ChangeEvicted, &old, -1)
		r.logger.Debug().Str(log.FieldEntryID, old.ID).Str(log.FieldPath, old.Path).Msg("media evicted")
	}
	r.items = append(r.items, e)
	metrics.IncMediaRegistryOp("add")
	r.publishLocked(ChangeAdded, &e, 1)
	return e, evicted, nil
}

// Remove deletes the entry with id and reports whether it existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		e := r.items[i]
		r.items = append(r.items[:i], r.items[i+1:]...)
		metrics.IncMediaRegistryOp("remove")
		r.publishLocked(ChangeRemoved, &e, -1)
		return true
	}
	return false
}

// Clear drops every entry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return
	}
	n := len(r.items)
	r.items = nil
	metrics.IncMediaRegistryOp("clear")
	r.publishLocked(ChangeCleared, nil, -n)
}

// Count returns the number of held entries.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Items returns a copy of the entries, oldest first.
func (r *Registry) Items() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.items...)
}

// Latest returns the newest entry.
func (r *Registry) Latest() (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Entry{}, false
	}
	return r.items[len(r.items)-1], true
}

// Watch subscribes to registry changes. Messages are Change values; the
// subscription must be closed by the caller. Slow watchers lose changes.
func (r *Registry) Watch(ctx context.Context) (bus.Subscriber, error) {
	return r.bus.Subscribe(ctx, ports.TopicMediaChange)
}

// publishLocked runs under r.mu so watchers observe changes in mutation order.
// delta is the change in held entries.
func (r *Registry) publishLocked(kind ChangeKind, e *Entry, delta int) {
	metrics.AddMediaRegistryItems(delta)
	c := Change{Kind: kind, Count: len(r.items)}
	if e != nil {
		cp := *e
		c.Entry = &cp
	}
	if err := r.bus.Publish(context.Background(), ports.TopicMediaChange, c); err != nil {
		r.logger.Warn().Err(err).Str(log.FieldEvent, string(kind)).Msg("media change publish failed")
	}
}
