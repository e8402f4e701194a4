package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/xvierd/tomato/internal/domain"
)

func TestStatusCmd(t *testing.T) {
	t.Run("status command structure", func(t *testing.T) {
		if statusCmd.Use != "status" {
			t.Errorf("statusCmd.Use = %q, want %q", statusCmd.Use, "status")
		}

		if statusCmd.Short != "Show current status" {
			t.Errorf("statusCmd.Short = %q, want %q", statusCmd.Short, "Show current status")
		}
	})
}

func TestStatusJSON(t *testing.T) {
	cfg := domain.DefaultTimerConfig()
	state := domain.NewTimerState(cfg, domain.ModeShortBreak)
	state.Remaining = 150
	state.Running = true
	snap := domain.NewSnapshot(state, cfg)

	result := statusJSON(snap, &domain.DailyStats{FocusSessions: 5, BreaksTaken: 3, TotalFocusTime: 2*time.Hour + 5*time.Minute})

	if result["mode"] != "short_break" || result["display"] != "02:30" || result["running"] != true {
		t.Errorf("unexpected timer fields: %v", result)
	}
	if result["progress"] != 0.5 {
		t.Errorf("expected progress 0.5, got %v", result["progress"])
	}
	stats := result["today_stats"].(map[string]interface{})
	if stats["focus_sessions"] != 5 || stats["total_focus_time"] != "2h5m0s" {
		t.Errorf("unexpected stats: %v", stats)
	}

	if _, ok := statusJSON(snap, nil)["today_stats"]; ok {
		t.Error("stats should be omitted when unknown")
	}
}

func TestCLI_StartPauseStatus(t *testing.T) {
	useTempHome(t)

	out := runCLI(t, "start")
	if !strings.Contains(out, "Started: Focus 25:00") {
		t.Errorf("unexpected start output %q", out)
	}

	status := decodeJSON(t, runCLI(t, "--json", "status"))
	if status["running"] != true || status["mode"] != "focus" {
		t.Errorf("timer should still be running in a new process: %v", status)
	}
	if _, ok := status["today_stats"]; !ok {
		t.Error("status should include today's stats")
	}

	out = runCLI(t, "pause")
	if !strings.Contains(out, "Paused: Focus") {
		t.Errorf("unexpected pause output %q", out)
	}

	status = decodeJSON(t, runCLI(t, "--json", "status"))
	if status["running"] != false {
		t.Error("timer should stay paused")
	}
	if remaining := status["remaining_seconds"].(float64); remaining <= 0 || remaining > 1500 {
		t.Errorf("remaining time out of range: %v", remaining)
	}

	out = runCLI(t, "status")
	if !strings.Contains(out, "(paused)") || !strings.Contains(out, "Focus sessions: 0") {
		t.Errorf("unexpected status text:\n%s", out)
	}
}

func TestCLI_Reset(t *testing.T) {
	useTempHome(t)

	runCLI(t, "start")
	out := runCLI(t, "reset")
	if !strings.Contains(out, "Reset: Focus 25:00") {
		t.Errorf("unexpected reset output %q", out)
	}

	status := decodeJSON(t, runCLI(t, "--json", "status"))
	if status["running"] != false || status["remaining_seconds"] != float64(1500) {
		t.Errorf("reset should stop and refill the session: %v", status)
	}
}

func TestCLI_SkipRecordsHistory(t *testing.T) {
	useTempHome(t)

	out := runCLI(t, "skip")
	if !strings.Contains(out, "Skipped: Short Break 05:00") {
		t.Errorf("unexpected skip output %q", out)
	}

	history := decodeJSON(t, runCLI(t, "--json", "history"))
	if history["count"] != float64(1) {
		t.Fatalf("expected one recorded session, got %v", history["count"])
	}
	rec := history["sessions"].([]interface{})[0].(map[string]interface{})
	if rec["mode"] != "focus" || rec["outcome"] != "skipped" {
		t.Errorf("unexpected record: %v", rec)
	}

	runCLI(t, "skip")
	out = runCLI(t, "history")
	if !strings.Contains(out, "Sessions (2)") || !strings.Contains(out, "2 skipped") {
		t.Errorf("unexpected history text:\n%s", out)
	}

	status := decodeJSON(t, runCLI(t, "--json", "status"))
	if status["mode"] != "focus" {
		t.Errorf("a skipped break should return to focus, got %v", status["mode"])
	}
}

func TestCLI_HistoryEmpty(t *testing.T) {
	useTempHome(t)

	out := runCLI(t, "history")
	if !strings.Contains(out, "No sessions yet.") || !strings.Contains(out, "0 focus sessions") {
		t.Errorf("unexpected history text:\n%s", out)
	}
}
