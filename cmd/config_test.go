package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xvierd/tomato/internal/domain"
)

func TestCLI_ConfigShow(t *testing.T) {
	useTempHome(t)

	out := runCLI(t, "config")
	for _, want := range []string{"timer.focus", "25", "theme.panel_opacity", "log.level"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}

	data := decodeJSON(t, runCLI(t, "--json", "config"))
	if data["timer.short_break"] != "5" {
		t.Errorf("expected short break 5, got %v", data["timer.short_break"])
	}
}

func TestCLI_ConfigSet(t *testing.T) {
	home := useTempHome(t)

	out := runCLI(t, "config", "set", "timer.focus", "50")
	if !strings.Contains(out, "Saved: timer.focus = 50") {
		t.Errorf("unexpected output %q", out)
	}

	raw, err := os.ReadFile(filepath.Join(home, ".tomato", "config.toml"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(raw), "focus = 50") {
		t.Errorf("config file does not hold the new value:\n%s", raw)
	}

	status := decodeJSON(t, runCLI(t, "--json", "status"))
	if status["display"] != "50:00" || status["total_seconds"] != float64(3000) {
		t.Errorf("idle timer should pick up the new length: %v", status)
	}

	out = runCLI(t, "config", "set", "TIMER.LONG_BREAK", "999")
	if !strings.Contains(out, "Saved: timer.long_break = 180") {
		t.Errorf("expected clamped value, got %q", out)
	}
}

func TestCLI_ConfigSetErrors(t *testing.T) {
	useTempHome(t)
	dbPath, jsonOutput, inlineMode = "", false, false

	_, _, err := executeCmd(rootCmd, "config", "set", "timer.focs", "30")
	if !errors.Is(err, domain.ErrUnknownSetting) {
		t.Fatalf("expected unknown setting, got %v", err)
	}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Errorf("expected a suggestion in %q", err.Error())
	}

	_, _, err = executeCmd(rootCmd, "config", "set", "sound.tick", "loud")
	if !errors.Is(err, domain.ErrInvalidValue) {
		t.Errorf("expected invalid value, got %v", err)
	}

	_, _, err = executeCmd(rootCmd, "config", "set", "timer.focus")
	if err == nil {
		t.Error("expected an argument error")
	}
}

func TestCLI_ConfigRebuiltFromCheckpoint(t *testing.T) {
	home := useTempHome(t)
	path := filepath.Join(home, ".tomato", "config.toml")

	runCLI(t, "config", "set", "timer.focus", "40")
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove config: %v", err)
	}

	status := decodeJSON(t, runCLI(t, "--json", "status"))
	if status["total_seconds"] != float64(2400) || status["remaining_seconds"] != float64(2400) {
		t.Errorf("checkpointed focus length should survive a lost config file: %v", status)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not rebuilt: %v", err)
	}
	if !strings.Contains(string(raw), "focus = 40") {
		t.Errorf("rebuilt config should hold the checkpointed value:\n%s", raw)
	}
}
