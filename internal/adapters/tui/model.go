// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/tomato/internal/adapters/git"
	"github.com/xvierd/tomato/internal/config"
	"github.com/xvierd/tomato/internal/domain"
	"github.com/xvierd/tomato/internal/ports"
)

// frameInterval is how often the model pulls a fresh snapshot.
const frameInterval = 100 * time.Millisecond

// frameMsg is sent on every redraw tick.
type frameMsg time.Time

// snapshotMsg carries a snapshot fetched asynchronously.
type snapshotMsg domain.Snapshot

// statsMsg carries today's statistics.
type statsMsg struct {
	stats *domain.DailyStats
}

// Options configures the TUI.
type Options struct {
	Theme *config.ThemeConfig
	// Inline renders a compact view below the prompt instead of taking
	// over the screen.
	Inline bool
	Git    *ports.GitInfo
	// Stats, if set, is polled whenever the mode changes.
	Stats func() *domain.DailyStats
}

// Model represents the TUI state.
type Model struct {
	ctrl     ports.TimerController
	fetch    func() domain.Snapshot
	stats    func() *domain.DailyStats
	snap     domain.Snapshot
	today    *domain.DailyStats
	progress progress.Model
	theme    config.ThemeConfig
	git      *ports.GitInfo
	inline   bool
	width    int
	height   int
}

// NewModel creates a new TUI model. fetch returns the latest snapshot
// and must not block.
func NewModel(ctrl ports.TimerController, fetch func() domain.Snapshot, opts Options) Model {
	m := Model{
		ctrl:     ctrl,
		fetch:    fetch,
		stats:    opts.Stats,
		snap:     fetch(),
		progress: progress.New(progress.WithoutPercentage()),
		theme:    resolveTheme(opts.Theme),
		git:      opts.Git,
		inline:   opts.Inline,
	}
	if m.inline {
		m.width = getTerminalWidth()
	}
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameCmd()}
	if m.stats != nil {
		cmds = append(cmds, fetchStatsCmd(m.stats))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case " ", "p", "enter":
			if m.snap.Running {
				return m, m.command(m.ctrl.Pause)
			}
			return m, m.command(m.ctrl.Start)
		case "r":
			return m, m.command(m.ctrl.Reset)
		case "s":
			return m, m.command(m.ctrl.Skip)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case frameMsg:
		return m, tea.Batch(frameCmd(), fetchSnapshotCmd(m.fetch))

	case snapshotMsg:
		var cmd tea.Cmd
		if msg.Mode != m.snap.Mode && m.stats != nil {
			cmd = fetchStatsCmd(m.stats)
		}
		m.snap = domain.Snapshot(msg)
		return m, cmd

	case statsMsg:
		m.today = msg.stats
	}

	return m, nil
}

// command runs a timer operation off the update loop and reports the
// resulting snapshot.
func (m Model) command(op func()) tea.Cmd {
	fetch := m.fetch
	return func() tea.Msg {
		op()
		return snapshotMsg(fetch())
	}
}

// finished reports whether a completed session is waiting for the switch
// to the next mode.
func (m Model) finished() bool {
	return !m.snap.Running && m.snap.Remaining <= 0
}

// View renders the TUI.
func (m Model) View() string {
	if m.inline {
		return m.viewInline()
	}
	if m.width == 0 {
		return "Loading..."
	}

	color := modeColor(m.theme, m.snap.Mode, m.snap.Running)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorHelp)).MarginBottom(1)
	statusStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var sections []string
	sections = append(sections, titleStyle.Render("🍅 Tomato"))

	status := m.snap.Mode.Label()
	switch {
	case m.finished():
		status = fmt.Sprintf("%s complete!", m.snap.Mode.Label())
	case !m.snap.Running:
		status += " · paused"
	}
	sections = append(sections, statusStyle.Render(status))
	sections = append(sections, "")
	sections = append(sections, renderBigTime(m.snap.Display, color, m.width))
	sections = append(sections, "")

	bar := m.progress
	bar.FullColor = string(color)
	bar.Width = barWidth(m.width-12, 60)
	sections = append(sections, bar.ViewAs(m.snap.Progress))

	if m.today != nil {
		sections = append(sections, "")
		sections = append(sections, helpStyle.Render(fmt.Sprintf("📊 Today: %d focus sessions, %d breaks, %s focused",
			m.today.FocusSessions, m.today.BreaksTaken, formatMinutesCompact(m.today.TotalFocusTime))))
	}

	if m.git != nil && m.git.Branch != "" {
		branch := m.git.Branch
		if m.git.Dirty {
			branch += "*"
		}
		line := fmt.Sprintf("🌿 %s (%s)", branch, git.ShortCommit(m.git.Commit))
		if m.git.Repository != "" {
			line = m.git.Repository + " " + line
		}
		sections = append(sections, helpStyle.Render(line))
	}

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render(m.helpText()))

	panel := lipgloss.NewStyle().
		Background(PanelBackground(m.theme.PanelColor, m.theme.PanelOpacity)).
		Padding(1, 4).
		Render(lipgloss.JoinVertical(lipgloss.Center, sections...))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

func (m Model) helpText() string {
	action := "[space] start"
	if m.snap.Running {
		action = "[space] pause"
	}
	return action + "  [r]eset  [s]kip  [q]uit"
}

// frameCmd schedules the next redraw.
func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// fetchSnapshotCmd returns a tea.Cmd that fetches the snapshot asynchronously.
func fetchSnapshotCmd(fetch func() domain.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(fetch())
	}
}

// fetchStatsCmd returns a tea.Cmd that loads today's statistics.
func fetchStatsCmd(stats func() *domain.DailyStats) tea.Cmd {
	return func() tea.Msg {
		return statsMsg{stats: stats()}
	}
}

func barWidth(available, limit int) int {
	if available > limit {
		return limit
	}
	if available < 10 {
		return 10
	}
	return available
}

func formatMinutesCompact(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
