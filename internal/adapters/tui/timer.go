package tui

import (
	"context"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/tomato/internal/domain"
	"github.com/xvierd/tomato/internal/ports"
)

// Presenter implements ports.Presenter by keeping the latest snapshot for
// the model to poll. Present never blocks the engine on the UI.
type Presenter struct {
	mu   sync.RWMutex
	snap domain.Snapshot
}

// NewPresenter creates a presenter seeded with snap.
func NewPresenter(snap domain.Snapshot) *Presenter {
	return &Presenter{snap: snap}
}

// Present stores snap as the latest display.
func (p *Presenter) Present(snap domain.Snapshot) {
	p.mu.Lock()
	p.snap = snap
	p.mu.Unlock()
}

// Snapshot returns the latest display.
func (p *Presenter) Snapshot() domain.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// Run shows the interactive timer and blocks until the user quits or ctx
// is cancelled. The presenter must already be attached to ctrl.
func Run(ctx context.Context, ctrl ports.TimerController, presenter *Presenter, opts Options) error {
	model := NewModel(ctrl, presenter.Snapshot, opts)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !opts.Inline {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// ShowStatus prints a plain-text summary of the timer.
func ShowStatus(w io.Writer, snap domain.Snapshot, stats *domain.DailyStats) {
	state := "paused"
	switch {
	case snap.Running:
		state = "running"
	case snap.Remaining <= 0:
		state = "complete"
	}

	fmt.Fprintf(w, "🍅 %s  %s  (%s)\n", snap.Mode.Label(), snap.Display, state)
	fmt.Fprintf(w, "   %d%% done\n", int(snap.Progress*100))

	if stats != nil {
		fmt.Fprintf(w, "\n📊 Today:\n")
		fmt.Fprintf(w, "   Focus sessions: %d\n", stats.FocusSessions)
		fmt.Fprintf(w, "   Breaks taken:   %d\n", stats.BreaksTaken)
		fmt.Fprintf(w, "   Skipped:        %d\n", stats.SkippedSessions)
		fmt.Fprintf(w, "   Focus time:     %s\n", formatMinutesCompact(stats.TotalFocusTime))
	}
}
