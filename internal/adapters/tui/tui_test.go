package tui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/tomato/internal/config"
	"github.com/xvierd/tomato/internal/domain"
	"github.com/xvierd/tomato/internal/ports"
)

type fakeController struct {
	mu    sync.Mutex
	cfg   domain.TimerConfig
	state domain.TimerState
	calls []string
}

func newFakeController() *fakeController {
	cfg := domain.DefaultTimerConfig()
	return &fakeController{cfg: cfg, state: domain.NewTimerState(cfg, domain.ModeFocus)}
}

func (f *fakeController) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	switch name {
	case "start":
		f.state.Running = true
	case "pause":
		f.state.Running = false
	case "reset":
		f.state = domain.NewTimerState(f.cfg, f.state.Mode)
	case "skip":
		f.state = domain.NewTimerState(f.cfg, f.state.Mode.Next())
	}
}

func (f *fakeController) Start() { f.record("start") }
func (f *fakeController) Pause() { f.record("pause") }
func (f *fakeController) Reset() { f.record("reset") }
func (f *fakeController) Skip() { f.record("skip") }

func (f *fakeController) Snapshot() domain.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.NewSnapshot(f.state, f.cfg)
}

func (f *fakeController) Config() domain.TimerConfig { return f.cfg }
func (f *fakeController) SetConfig(cfg domain.TimerConfig) { f.cfg = cfg }

var _ ports.TimerController = (*fakeController)(nil)

func press(t *testing.T, m Model, key string) (Model, tea.Msg) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatalf("key %q produced no command", key)
	}
	return updated.(Model), cmd()
}

func TestModel_KeyBindings(t *testing.T) {
	ctrl := newFakeController()
	m := NewModel(ctrl, ctrl.Snapshot, Options{})

	m, msg := press(t, m, " ")
	updated, _ := m.Update(msg)
	m = updated.(Model)
	if !m.snap.Running {
		t.Fatal("space should start the timer")
	}

	m, msg = press(t, m, "p")
	updated, _ = m.Update(msg)
	m = updated.(Model)
	if m.snap.Running {
		t.Fatal("p should pause a running timer")
	}

	_, _ = press(t, m, "r")
	m, msg = press(t, m, "s")
	updated, _ = m.Update(msg)
	m = updated.(Model)
	if m.snap.Mode != domain.ModeShortBreak {
		t.Errorf("expected short break after skip, got %s", m.snap.Mode)
	}

	want := []string{"start", "pause", "reset", "skip"}
	if strings.Join(ctrl.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", ctrl.calls, want)
	}
}

func TestModel_Quit(t *testing.T) {
	ctrl := newFakeController()
	m := NewModel(ctrl, ctrl.Snapshot, Options{})

	for _, key := range []string{"q", "ctrl+c"} {
		_, msg := press(t, m, key)
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Errorf("%q should quit, got %T", key, msg)
		}
	}
	if len(ctrl.calls) != 0 {
		t.Errorf("quitting should not touch the timer, got %v", ctrl.calls)
	}
}

func TestModel_FrameFetchesSnapshot(t *testing.T) {
	ctrl := newFakeController()
	presenter := NewPresenter(ctrl.Snapshot())
	m := NewModel(ctrl, presenter.Snapshot, Options{})

	state := domain.NewTimerState(ctrl.cfg, domain.ModeFocus)
	state.Remaining = 90
	state.Running = true
	presenter.Present(domain.NewSnapshot(state, ctrl.cfg))

	_, cmd := m.Update(frameMsg(time.Now()))
	if cmd == nil {
		t.Fatal("frame should schedule work")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected batch, got %T", cmd())
	}

	var got domain.Snapshot
	for _, c := range batch {
		if snap, ok := c().(snapshotMsg); ok {
			got = domain.Snapshot(snap)
		}
	}
	if got.Display != "01:30" {
		t.Errorf("expected fetched display 01:30, got %q", got.Display)
	}
}

func TestModel_StatsRefreshOnModeChange(t *testing.T) {
	ctrl := newFakeController()
	calls := 0
	stats := func() *domain.DailyStats {
		calls++
		return &domain.DailyStats{FocusSessions: calls}
	}
	m := NewModel(ctrl, ctrl.Snapshot, Options{Stats: stats})

	same := ctrl.Snapshot()
	if _, cmd := m.Update(snapshotMsg(same)); cmd != nil {
		t.Error("same mode should not refresh stats")
	}

	next := domain.NewSnapshot(domain.NewTimerState(ctrl.cfg, domain.ModeShortBreak), ctrl.cfg)
	updated, cmd := m.Update(snapshotMsg(next))
	if cmd == nil {
		t.Fatal("mode change should refresh stats")
	}
	updated, _ = updated.(Model).Update(cmd())
	if got := updated.(Model).today; got == nil || got.FocusSessions != 1 {
		t.Errorf("expected refreshed stats, got %+v", got)
	}
}

func TestModel_View(t *testing.T) {
	ctrl := newFakeController()
	m := NewModel(ctrl, ctrl.Snapshot, Options{
		Git: &ports.GitInfo{Branch: "main", Commit: "abcdef1234567"},
	})

	if m.View() != "Loading..." {
		t.Error("expected loading view before the first window size")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 20})
	m = updated.(Model)
	m.today = &domain.DailyStats{FocusSessions: 2, BreaksTaken: 1, TotalFocusTime: 50 * time.Minute}

	view := m.View()
	for _, want := range []string{"Tomato", "Focus", "paused", "25:00", "2 focus sessions", "50m", "main (abcdef1)", "[q]uit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_ViewCompleted(t *testing.T) {
	ctrl := newFakeController()
	ctrl.state.Remaining = 0
	m := NewModel(ctrl, ctrl.Snapshot, Options{})
	m.width, m.height = 30, 20

	if view := m.View(); !strings.Contains(view, "Focus complete!") {
		t.Errorf("expected completion banner:\n%s", view)
	}
}

func TestModel_ViewInline(t *testing.T) {
	ctrl := newFakeController()
	ctrl.state.Running = true
	m := NewModel(ctrl, ctrl.Snapshot, Options{Inline: true})

	view := m.View()
	if !strings.Contains(view, "Focus  25:00") {
		t.Errorf("inline view missing clock:\n%s", view)
	}
	if strings.Contains(view, "PAUSED") {
		t.Error("running timer should not show paused")
	}
	if !strings.Contains(view, "[space] pause") {
		t.Error("running timer should offer pause")
	}
}

func TestRenderBigTime(t *testing.T) {
	narrow := renderBigTime("25:00", lipgloss.Color("#ffffff"), 30)
	if !strings.Contains(narrow, "25:00") || strings.Contains(narrow, "\n") {
		t.Errorf("narrow terminals should get one line, got %q", narrow)
	}

	big := renderBigTime("10:00", lipgloss.Color("#ffffff"), 80)
	lines := strings.Split(big, "\n")
	if len(lines) != glyphRows {
		t.Fatalf("expected %d rows, got %d", glyphRows, len(lines))
	}
	if strings.Contains(big, "10:00") {
		t.Error("wide terminals should not print the plain clock")
	}
}

func TestGlyph(t *testing.T) {
	one := glyph(segments['1'])
	for i, row := range one {
		if !strings.HasSuffix(row, "█") {
			t.Errorf("row %d of 1 should end with a block: %q", i, row)
		}
	}
	eight := glyph(segments['8'])
	if eight[0] != "████" || eight[2] != "████" || eight[4] != "████" {
		t.Errorf("unexpected 8: %q", eight)
	}
}

func TestPanelBackground(t *testing.T) {
	tests := []struct {
		hex     string
		opacity int
		want    lipgloss.Color
	}{
		{"#ffffff", 100, "#ffffff"},
		{"#ffffff", 0, "#000000"},
		{"#fff", 50, "#7f7f7f"},
		{"#204060", 50, "#102030"},
		{"#204060", 150, "#204060"},
		{"not-a-color", 100, lipgloss.Color(strings.ToLower(config.DefaultThemeConfig().PanelColor))},
	}
	for _, tt := range tests {
		if got := PanelBackground(tt.hex, tt.opacity); got != tt.want {
			t.Errorf("PanelBackground(%q, %d) = %q, want %q", tt.hex, tt.opacity, got, tt.want)
		}
	}
}

func TestResolveTheme(t *testing.T) {
	got := resolveTheme(&config.ThemeConfig{ColorFocus: "#000000"})
	defaults := config.DefaultThemeConfig()
	if got.ColorFocus != "#000000" {
		t.Errorf("explicit color should be kept, got %q", got.ColorFocus)
	}
	if got.ColorShortBreak != defaults.ColorShortBreak || got.PanelColor != defaults.PanelColor {
		t.Errorf("empty colors should fall back to defaults: %+v", got)
	}
	if resolveTheme(nil) != defaults {
		t.Error("nil theme should resolve to defaults")
	}
}

func TestModeColor(t *testing.T) {
	theme := config.DefaultThemeConfig()
	if modeColor(theme, domain.ModeFocus, false) != lipgloss.Color(theme.ColorPaused) {
		t.Error("stopped timer should use the paused color")
	}
	if modeColor(theme, domain.ModeLongBreak, true) != lipgloss.Color(theme.ColorLongBreak) {
		t.Error("running long break should use its color")
	}
}

func TestShowStatus(t *testing.T) {
	ctrl := newFakeController()
	var buf bytes.Buffer
	ShowStatus(&buf, ctrl.Snapshot(), &domain.DailyStats{FocusSessions: 3, SkippedSessions: 1, TotalFocusTime: 75 * time.Minute})

	out := buf.String()
	for _, want := range []string{"Focus  25:00  (paused)", "0% done", "Focus sessions: 3", "Skipped:        1", "1h15m"} {
		if !strings.Contains(out, want) {
			t.Errorf("status missing %q:\n%s", want, out)
		}
	}
}
