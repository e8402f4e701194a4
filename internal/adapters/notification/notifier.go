// Package notification provides the audio cues and desktop notifications
// of the timer.
package notification

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/tomato/internal/config"
	"github.com/xvierd/tomato/internal/domain"
	"github.com/xvierd/tomato/internal/ports"
)

// tickDuration is the length of the tick beep in milliseconds.
const tickDuration = 30

// Notifier implements ports.AudioCue with beeep. Completion also raises a
// desktop notification when notifications are enabled.
type Notifier struct {
	cfg    *config.NotificationConfig
	logger *slog.Logger

	beep  func(freq float64, duration int) error
	alert func(title, message string, icon any) error
	// run dispatches a cue; the default runs it on its own goroutine.
	run func(func())
	// inflight counts dispatched cues that have not finished.
	inflight sync.WaitGroup
}

// Ensure Notifier implements ports.AudioCue.
var _ ports.AudioCue = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Notifier{
		cfg:    cfg,
		logger: logger,
		beep:   beeep.Beep,
		alert:  beeep.Alert,
		run:    func(f func()) { go f() },
	}
}

// dispatch runs cue through run. A panicking cue is logged and dropped.
func (n *Notifier) dispatch(cue func()) {
	n.inflight.Add(1)
	n.run(func() {
		defer n.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				n.logger.Warn("audio cue panicked", "panic", r)
			}
		}()
		cue()
	})
}

// Wait blocks until every dispatched cue has finished or timeout passes.
// It reports whether all cues finished.
func (n *Notifier) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		n.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Tick plays a short beep.
func (n *Notifier) Tick() {
	n.dispatch(func() {
		if err := n.beep(beeep.DefaultFreq, tickDuration); err != nil {
			n.logger.Debug("tick beep failed", "error", err)
		}
	})
}

// Complete announces the end of a session.
func (n *Notifier) Complete(mode domain.Mode) {
	title, message := completionMessage(mode)
	n.dispatch(func() {
		if n.IsEnabled() {
			if err := n.alert(title, message, ""); err != nil {
				n.logger.Debug("desktop notification failed", "error", err)
			}
			return
		}
		if err := n.beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			n.logger.Debug("completion beep failed", "error", err)
		}
	})
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

func completionMessage(mode domain.Mode) (title, message string) {
	switch mode {
	case domain.ModeFocus:
		return "🍅 Focus Complete!", "Great job! Time for a break."
	case domain.ModeLongBreak:
		return "☕ Long Break Over!", "Recharged? Ready to focus?"
	default:
		return "☕ Break Over!", "Your break is complete. Ready to focus?"
	}
}
