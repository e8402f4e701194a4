// Package engine implements the countdown and the session state machine of
// the timer. Time is measured against a scheduler clock and accumulated as
// fractional seconds, so the countdown does not drift when ticks arrive late.
//
// States are {focus, short_break, long_break} x {running, paused}. Start and
// Pause toggle the running bit, Reset refills the current mode, and Skip or a
// natural completion move to the next mode. There is no terminal state.
package engine

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/xvierd/tomato/internal/domain"
	"github.com/xvierd/tomato/internal/ports"
	"github.com/xvierd/tomato/internal/scheduler"
)

const (
	// DefaultTickInterval gives four advancements per second.
	DefaultTickInterval = 250 * time.Millisecond

	// DefaultTransitionDelay is the pause between a completed session and
	// the switch to the next mode.
	DefaultTransitionDelay = time.Second
)

// Engine is the timer. All methods are safe for concurrent use.
type Engine struct {
	mu sync.Mutex
	// outMu keeps side effects in the order their state changes happened.
	// It is taken before mu is released, never the other way round.
	outMu sync.Mutex

	cfg   domain.TimerConfig
	state domain.TimerState

	store     ports.Store
	presenter ports.Presenter
	audio     ports.AudioCue
	observer  ports.SessionObserver
	sched     scheduler.Scheduler
	logger    *slog.Logger

	tickInterval    time.Duration
	transitionDelay time.Duration

	// ticker is the single outstanding repeating advancement.
	ticker scheduler.Task
	// pending is the delayed switch after a completed session.
	pending scheduler.Task
	// gen invalidates callbacks scheduled before the latest stop or start.
	gen uint64

	// storedConfig makes restore prefer the checkpointed configuration.
	storedConfig bool
	// lastSaved is the saved_at of the newest checkpoint this engine wrote.
	// Guarded by outMu.
	lastSaved time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore sets the checkpoint store.
func WithStore(s ports.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithPresenter sets the presentation layer.
func WithPresenter(p ports.Presenter) Option {
	return func(e *Engine) { e.presenter = p }
}

// WithAudio sets the audio cue emitter.
func WithAudio(a ports.AudioCue) Option {
	return func(e *Engine) { e.audio = a }
}

// WithObserver sets the receiver of ended sessions.
func WithObserver(o ports.SessionObserver) Option {
	return func(e *Engine) { e.observer = o }
}

// WithScheduler replaces the real-time scheduler.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithLogger sets the logger used for swallowed errors.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTickInterval sets the advancement period.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.tickInterval = d
		}
	}
}

// WithTransitionDelay sets the delay between completion and the next mode.
// Zero switches immediately.
func WithTransitionDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.transitionDelay = d
		}
	}
}

// WithStoredConfig restores the checkpointed configuration, when one is
// present and readable, in place of the one passed to New.
func WithStoredConfig() Option {
	return func(e *Engine) { e.storedConfig = true }
}

// New creates an engine for cfg and restores any checkpoint found in the
// store. A checkpoint that was running resumes ticking.
func New(cfg domain.TimerConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:             cfg.Normalized(),
		sched:           scheduler.System,
		logger:          slog.New(slog.DiscardHandler),
		tickInterval:    DefaultTickInterval,
		transitionDelay: DefaultTransitionDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.mu.Lock()
	fx := &effects{config: true, quiet: true}
	e.restoreLocked(fx, e.storedConfig)
	e.finish(fx)
	return e
}

// Start begins or resumes the countdown. It is a no-op while running.
func (e *Engine) Start() {
	e.mu.Lock()
	fx := &effects{}
	e.startLocked(fx)
	e.finish(fx)
}

// Pause counts the time since the last tick, then stops the countdown and
// keeps the remaining time exactly.
func (e *Engine) Pause() {
	e.mu.Lock()
	fx := &effects{}
	if e.state.Running {
		e.catchUpLocked(fx)
		// Catching up may have completed the session, which already stopped.
		if e.state.Running {
			e.stopLocked()
		}
		fx.changed = true
	}
	e.finish(fx)
}

// Reset stops the countdown and refills the current mode.
func (e *Engine) Reset() {
	e.mu.Lock()
	fx := &effects{}
	e.cancelPendingLocked()
	e.stopLocked()
	e.state.Remaining = e.cfg.Seconds(e.state.Mode)
	fx.changed = true
	e.finish(fx)
}

// Skip ends the current session early and moves to the next mode without
// starting it.
func (e *Engine) Skip() {
	e.mu.Lock()
	fx := &effects{}
	from := e.state.Mode
	if e.pending == nil {
		planned := e.cfg.Duration(from)
		elapsed := planned - seconds(e.state.Remaining)
		rec := domain.NewSessionRecord(from, planned, elapsed, domain.OutcomeSkipped, e.sched.Now())
		fx.ended = &rec
	}
	e.transitionLocked(from.Next(), false, fx)
	e.finish(fx)
}

// Advance subtracts elapsed from the remaining time. Reaching zero
// completes the session exactly once.
func (e *Engine) Advance(elapsed time.Duration) {
	e.mu.Lock()
	fx := &effects{}
	e.advanceLocked(elapsed, fx)
	e.finish(fx)
}

// SetConfig replaces the configuration. An idle timer sitting at the full
// length of its mode picks up the new length.
func (e *Engine) SetConfig(cfg domain.TimerConfig) {
	e.mu.Lock()
	fx := &effects{}
	cfg = cfg.Normalized()
	idleAtFull := !e.state.Running && e.pending == nil && e.state.Remaining == e.cfg.Seconds(e.state.Mode)
	e.cfg = cfg
	if idleAtFull {
		e.state.Remaining = cfg.Seconds(e.state.Mode)
	}
	fx.config = true
	fx.changed = true
	e.finish(fx)
}

// SetPresenter replaces the presentation layer and shows it the current state.
func (e *Engine) SetPresenter(p ports.Presenter) {
	e.mu.Lock()
	e.presenter = p
	fx := &effects{}
	fx.show = true
	e.finish(fx)
}

// Snapshot returns the current display values.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.NewSnapshot(e.state, e.cfg)
}

// Config returns the active configuration.
func (e *Engine) Config() domain.TimerConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// State returns a copy of the timer state.
func (e *Engine) State() domain.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Close accounts for time since the last tick, settles a waiting
// transition, cancels every scheduled callback and writes a final
// checkpoint. The running flag is kept so the next process resumes.
func (e *Engine) Close() {
	e.mu.Lock()
	fx := &effects{}
	if e.state.Running {
		e.catchUpLocked(fx)
	}
	if e.pending != nil {
		from := e.state.Mode
		e.transitionLocked(from.Next(), e.cfg.AutoStartAfter(from), fx)
	}
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
	e.gen++
	fx.changed = true
	e.finish(fx)
}

// Sync adopts a checkpoint that another process wrote after this engine's
// last one, and reports whether it did.
func (e *Engine) Sync() bool {
	e.mu.Lock()
	fx := &effects{}
	synced := e.syncLocked(fx)
	e.finish(fx)
	return synced
}

// tick is the scheduled callback. Callbacks left over from an earlier
// start, or arriving while paused, do nothing. A checkpoint written by
// another process replaces the local state before any time is counted.
func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	fx := &effects{}
	if gen == e.gen && e.state.Running && !e.syncLocked(fx) {
		e.catchUpLocked(fx)
	}
	e.finish(fx)
}

// catchUpLocked advances by the time since the last reference point.
func (e *Engine) catchUpLocked(fx *effects) {
	now := e.sched.Now()
	elapsed := now.Sub(e.state.LastTick)
	e.state.LastTick = now
	e.advanceLocked(elapsed, fx)
}

func (e *Engine) advanceLocked(elapsed time.Duration, fx *effects) {
	if elapsed <= 0 || e.state.Remaining <= 0 {
		return
	}
	prev := e.state.Remaining
	e.state.Remaining -= elapsed.Seconds()
	fx.changed = true

	if e.state.Remaining <= 0 {
		e.state.Remaining = 0
		e.completeLocked(fx)
		return
	}
	if e.cfg.TickSound && math.Floor(e.state.Remaining) < math.Floor(prev) {
		fx.tick = true
	}
}

// completeLocked stops the timer, reports the finished session and
// schedules the switch to the next mode.
func (e *Engine) completeLocked(fx *effects) {
	finished := e.state.Mode
	e.stopLocked()

	if e.cfg.CompletionSound {
		fx.completed = finished
	}
	planned := e.cfg.Duration(finished)
	rec := domain.NewSessionRecord(finished, planned, planned, domain.OutcomeCompleted, e.sched.Now())
	fx.ended = &rec

	next := finished.Next()
	if e.transitionDelay <= 0 {
		e.transitionLocked(next, e.cfg.AutoStartAfter(finished), fx)
		return
	}
	gen := e.gen
	e.pending = e.sched.After(e.transitionDelay, func() { e.transition(gen, finished, next) })
}

// transition is the delayed half of a completion. The auto-start flag is
// read now, not when the session finished.
func (e *Engine) transition(gen uint64, from, next domain.Mode) {
	e.mu.Lock()
	fx := &effects{}
	if gen == e.gen && e.pending != nil {
		e.pending = nil
		e.transitionLocked(next, e.cfg.AutoStartAfter(from), fx)
	}
	e.finish(fx)
}

func (e *Engine) transitionLocked(next domain.Mode, autoStart bool, fx *effects) {
	e.cancelPendingLocked()
	e.stopLocked()
	e.state.Mode = next
	e.state.Remaining = e.cfg.Seconds(next)
	fx.changed = true
	if autoStart {
		e.startLocked(fx)
	}
}

func (e *Engine) startLocked(fx *effects) {
	if e.state.Running {
		return
	}
	if e.pending != nil {
		// The finished session is still on screen; move past it first.
		e.transitionLocked(e.state.Mode.Next(), false, fx)
	}
	if e.state.Remaining <= 0 {
		e.state.Remaining = e.cfg.Seconds(e.state.Mode)
	}
	e.state.Running = true
	e.state.LastTick = e.sched.Now()
	e.gen++
	gen := e.gen
	e.ticker = e.sched.Every(e.tickInterval, func() { e.tick(gen) })
	fx.changed = true
}

func (e *Engine) stopLocked() {
	e.state.Running = false
	e.state.LastTick = time.Time{}
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
	e.gen++
}

func (e *Engine) cancelPendingLocked() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
