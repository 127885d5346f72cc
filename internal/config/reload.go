// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	camlog "github.com/ManuGH/camlife/internal/log"
)

// reloadDebounce collapses bursts of file events (editors write in several steps).
const reloadDebounce = 200 * time.Millisecond

// Holder holds configuration with atomic reloading capability.
type Holder struct {
	mu      sync.RWMutex
	current Config
	loader  *Loader
	logger  zerolog.Logger

	watchMu sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
	done    chan struct{}

	reloadMu        sync.RWMutex
	reloadListeners []chan<- Config
}

// NewHolder creates a new configuration holder with initial config.
func NewHolder(initial Config, loader *Loader) *Holder {
	return &Holder{
		current: initial,
		loader:  loader,
		logger:  camlog.WithComponent("config"),
	}
}

// Get returns the current configuration (thread-safe read).
func (h *Holder) Get() Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload reloads configuration from file and validates it.
// If loading or validation fails the old configuration is kept.
func (h *Holder) Reload(_ context.Context) error {
	h.logger.Info().Str(camlog.FieldEvent, "config.reload_start").Msg("reloading configuration")

	newCfg, err := h.loader.Load()
	if err != nil {
		h.logger.Error().
			Err(err).
			Str(camlog.FieldEvent, "config.reload_failed").
			Msg("failed to load new configuration")
		return fmt.Errorf("load config: %w", err)
	}

	h.mu.Lock()
	oldCfg := h.current
	h.current = newCfg
	h.mu.Unlock()

	h.notifyListeners(newCfg)
	h.logChanges(oldCfg, newCfg)

	h.logger.Info().
		Str(camlog.FieldEvent, "config.reload_success").
		Msg("configuration reloaded successfully")
	return nil
}

// StartWatcher starts watching the config file for changes.
// If the loader has no file, this is a no-op (config comes from ENV only).
// The watcher stops when ctx is cancelled or Stop is called.
func (h *Holder) StartWatcher(ctx context.Context) error {
	path := h.loader.Path()
	if path == "" {
		h.logger.Info().
			Str(camlog.FieldEvent, "config.watcher_disabled").
			Msg("config file watcher disabled (using ENV-only configuration)")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory so atomic rename-based saves are seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}

	h.watchMu.Lock()
	h.watcher = watcher
	h.done = make(chan struct{})
	done := h.done
	h.watchMu.Unlock()

	h.logger.Info().
		Str(camlog.FieldEvent, "config.watcher_started").
		Str(camlog.FieldPath, path).
		Msg("watching config file for changes")

	go h.watchLoop(ctx, watcher, filepath.Clean(path), done)
	return nil
}

func (h *Holder) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str(camlog.FieldEvent, "config.watcher_stopped").Msg("config watcher stopped")
			_ = watcher.Close()
			h.stopTimer()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				h.stopTimer()
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				h.logger.Debug().
					Str(camlog.FieldEvent, "config.file_changed").
					Str(camlog.FieldOp, event.Op.String()).
					Msg("config file changed")
				h.scheduleReload(ctx)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				h.stopTimer()
				return
			}
			h.logger.Error().
				Err(err).
				Str(camlog.FieldEvent, "config.watcher_error").
				Msg("config watcher error")
		}
	}
}

func (h *Holder) scheduleReload(ctx context.Context) {
	h.watchMu.Lock()
	defer h.watchMu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(reloadDebounce, func() {
		if err := h.Reload(ctx); err != nil {
			h.logger.Error().
				Err(err).
				Str(camlog.FieldEvent, "config.auto_reload_failed").
				Msg("automatic config reload failed")
		}
	})
}

func (h *Holder) stopTimer() {
	h.watchMu.Lock()
	defer h.watchMu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

// Stop stops the config watcher (if running) and waits for its goroutine.
func (h *Holder) Stop() {
	h.watchMu.Lock()
	watcher, done := h.watcher, h.done
	h.watcher = nil
	h.watchMu.Unlock()
	if watcher == nil {
		return
	}
	_ = watcher.Close()
	<-done
}

// RegisterListener registers a channel to receive config reload notifications.
// The caller is responsible for closing the channel.
func (h *Holder) RegisterListener(ch chan<- Config) {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()
	h.reloadListeners = append(h.reloadListeners, ch)
}

// notifyListeners sends the new config to all registered listeners (non-blocking).
func (h *Holder) notifyListeners(newCfg Config) {
	h.reloadMu.RLock()
	defer h.reloadMu.RUnlock()

	for _, ch := range h.reloadListeners {
		select {
		case ch <- newCfg:
		default:
			h.logger.Warn().
				Str(camlog.FieldEvent, "config.listener_skip").
				Msg("skipped notifying listener (channel full)")
		}
	}
}

func (h *Holder) logChanges(old, newCfg Config) {
	if old.Lifecycle.Debounce != newCfg.Lifecycle.Debounce {
		h.logger.Info().
			Dur("old", old.Lifecycle.Debounce).
			Dur("new", newCfg.Lifecycle.Debounce).
			Msg("config changed: lifecycle.debounce")
	}
	if old.Lifecycle.TransitionTimeout != newCfg.Lifecycle.TransitionTimeout {
		h.logger.Info().
			Dur("old", old.Lifecycle.TransitionTimeout).
			Dur("new", newCfg.Lifecycle.TransitionTimeout).
			Msg("config changed: lifecycle.transitionTimeout")
	}
	if old.Lifecycle.OrientationPolicy != newCfg.Lifecycle.OrientationPolicy {
		h.logger.Info().
			Str("old", old.Lifecycle.OrientationPolicy).
			Str("new", newCfg.Lifecycle.OrientationPolicy).
			Msg("config changed: lifecycle.orientationPolicy")
	}
	if old.Registry.MaxItems != newCfg.Registry.MaxItems {
		h.logger.Info().
			Int("old", old.Registry.MaxItems).
			Int("new", newCfg.Registry.MaxItems).
			Msg("config changed: registry.maxItems")
	}
	if old.Logging.Level != newCfg.Logging.Level {
		h.logger.Info().
			Str("old", old.Logging.Level).
			Str("new", newCfg.Logging.Level).
			Msg("config changed: logging.level")
	}
}
