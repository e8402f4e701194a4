package engine

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/xvierd/tomato/internal/domain"
	"github.com/xvierd/tomato/internal/ports"
)

// Checkpoint keys. Values are JSON encoded.
const (
	KeyConfig    = "timer.config"
	KeyMode      = "timer.mode"
	KeyRunning   = "timer.running"
	KeyRemaining = "timer.remaining"
	KeySavedAt   = "timer.saved_at"
)

// effects collects what a state change must tell the outside world.
type effects struct {
	changed   bool
	config    bool
	show      bool
	tick      bool
	quiet     bool
	completed domain.Mode
	ended     *domain.SessionRecord

	// filled by finish while the state lock is still held
	snap      domain.Snapshot
	state     domain.TimerState
	cfg       domain.TimerConfig
	savedAt   time.Time
	store     ports.Store
	presenter ports.Presenter
	audio     ports.AudioCue
	observer  ports.SessionObserver
}

// finish releases e.mu and applies fx. Callers must hold e.mu.
func (e *Engine) finish(fx *effects) {
	if !fx.changed && !fx.config && !fx.show && fx.ended == nil {
		e.mu.Unlock()
		return
	}
	fx.snap = domain.NewSnapshot(e.state, e.cfg)
	fx.state = e.state
	fx.cfg = e.cfg
	fx.savedAt = e.sched.Now()
	fx.store = e.store
	fx.presenter = e.presenter
	fx.audio = e.audio
	fx.observer = e.observer

	e.outMu.Lock()
	e.mu.Unlock()
	defer e.outMu.Unlock()
	e.apply(fx)
}

func (e *Engine) apply(fx *effects) {
	ctx := context.Background()

	if fx.store != nil {
		if fx.config {
			e.saveJSON(ctx, fx.store, KeyConfig, fx.cfg)
		}
		if fx.changed {
			e.saveJSON(ctx, fx.store, KeyMode, fx.state.Mode)
			e.saveJSON(ctx, fx.store, KeyRunning, fx.state.Running)
			e.saveJSON(ctx, fx.store, KeyRemaining, fx.state.Remaining)
			// saved_at goes last: other processes treat it as the commit.
			if e.saveJSON(ctx, fx.store, KeySavedAt, fx.savedAt) {
				e.lastSaved = fx.savedAt
			}
		}
	}

	if fx.presenter != nil && (fx.changed || fx.config || fx.show) {
		fx.presenter.Present(fx.snap)
	}

	if fx.audio != nil && !fx.quiet {
		if fx.tick {
			e.cue(fx.audio.Tick)
		}
		if fx.completed != "" {
			mode := fx.completed
			e.cue(func() { fx.audio.Complete(mode) })
		}
	}

	if fx.ended != nil && fx.observer != nil {
		fx.observer.SessionEnded(ctx, *fx.ended)
	}
}

// cue runs an audio call and swallows anything it throws.
func (e *Engine) cue(play func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("audio cue failed", "panic", r)
		}
	}()
	play()
}

func (e *Engine) saveJSON(ctx context.Context, store ports.Store, key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		e.logger.Warn("failed to encode timer state", "key", key, "error", err)
		return false
	}
	if err := store.Save(ctx, key, data); err != nil {
		e.logger.Warn("failed to save timer state", "key", key, "error", err)
		return false
	}
	return true
}

// loadJSON decodes key into v. Absent, unreadable and malformed values all
// report false so the caller keeps its default.
func (e *Engine) loadJSON(ctx context.Context, key string, v any) bool {
	raw, ok, err := e.store.Load(ctx, key)
	if err != nil {
		e.logger.Warn("failed to load timer state", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		e.logger.Warn("discarding malformed timer state", "key", key, "error", err)
		return false
	}
	return true
}

// restoreLocked rebuilds the state from the last checkpoint. The stored
// configuration is used only when withConfig is set; otherwise the one
// already held wins. A running checkpoint is moved forward by the
// wall-clock time since it was written, which may complete the interrupted
// session, and then resumes.
func (e *Engine) restoreLocked(fx *effects, withConfig bool) {
	fx.changed = true
	e.state = domain.NewTimerState(e.cfg, domain.ModeFocus)
	if e.store == nil {
		return
	}
	ctx := context.Background()

	if withConfig {
		var cfg domain.TimerConfig
		if e.loadJSON(ctx, KeyConfig, &cfg) {
			e.cfg = cfg.Normalized()
			e.state = domain.NewTimerState(e.cfg, domain.ModeFocus)
		}
	}

	var raw string
	if e.loadJSON(ctx, KeyMode, &raw) {
		if mode, err := domain.ParseMode(raw); err == nil {
			e.state = domain.NewTimerState(e.cfg, mode)
		} else {
			e.logger.Warn("discarding stored mode", "error", err)
		}
	}

	total := e.cfg.Seconds(e.state.Mode)
	var remaining float64
	if e.loadJSON(ctx, KeyRemaining, &remaining) {
		switch {
		case math.IsNaN(remaining) || math.IsInf(remaining, 0) || remaining <= 0:
			e.logger.Warn("discarding stored remaining time", "remaining", remaining)
		case remaining > total:
			e.state.Remaining = total
		default:
			e.state.Remaining = remaining
		}
	}

	var running bool
	if !e.loadJSON(ctx, KeyRunning, &running) || !running {
		return
	}

	var savedAt time.Time
	if e.loadJSON(ctx, KeySavedAt, &savedAt) {
		if away := e.sched.Now().Sub(savedAt); away > 0 {
			e.advanceLocked(away, fx)
		}
	}
	if e.pending == nil && e.state.Remaining > 0 {
		e.startLocked(fx)
	}
}

// syncLocked replaces the state with the stored checkpoint when its
// saved_at differs from the last one this engine wrote. The stored
// configuration comes along, since the writer owned it at the time.
func (e *Engine) syncLocked(fx *effects) bool {
	if e.store == nil {
		return false
	}

	// Waits for this engine's own write in flight, if any.
	e.outMu.Lock()
	var savedAt time.Time
	ok := e.loadJSON(context.Background(), KeySavedAt, &savedAt)
	foreign := ok && !savedAt.Equal(e.lastSaved)
	e.outMu.Unlock()
	if !foreign {
		return false
	}

	e.logger.Debug("adopting checkpoint from another process", "saved_at", savedAt)
	e.cancelPendingLocked()
	e.stopLocked()
	e.restoreLocked(fx, true)
	fx.quiet = true
	fx.show = true
	return true
}
