package cmd

import (
	"testing"

	"github.com/xvierd/tomato/internal/domain"
)

func TestCheckpointTimer_SharesStateWithCLI(t *testing.T) {
	useTempHome(t)
	runCLI(t, "start")

	dbPath, jsonOutput, inlineMode = "", false, false
	if err := initializeServices(mcpCmd); err != nil {
		t.Fatalf("initializeServices() error = %v", err)
	}
	if app.engine != nil {
		t.Fatal("the MCP server should not hold an engine between calls")
	}

	timer := &checkpointTimer{}
	if !timer.Snapshot().Running {
		t.Fatal("timer started by the CLI should be running")
	}
	timer.Pause()
	if timer.Snapshot().Running {
		t.Fatal("pause should be written back to the checkpoint")
	}
	timer.Skip()
	if err := cleanupServices(); err != nil {
		t.Fatalf("cleanupServices() error = %v", err)
	}

	status := decodeJSON(t, runCLI(t, "--json", "status"))
	if status["mode"] != string(domain.ModeShortBreak) || status["running"] != false {
		t.Errorf("CLI should see the state left by MCP calls: %v", status)
	}

	history := decodeJSON(t, runCLI(t, "--json", "history"))
	if history["count"] != float64(1) {
		t.Errorf("expected the skipped focus session once, got %v", history["count"])
	}
}

func TestCheckpointTimer_SetConfigPersists(t *testing.T) {
	useTempHome(t)

	dbPath, jsonOutput, inlineMode = "", false, false
	if err := initializeServices(mcpCmd); err != nil {
		t.Fatalf("initializeServices() error = %v", err)
	}

	timer := &checkpointTimer{}
	cfg := timer.Config()
	cfg.SetMinutes(domain.ModeShortBreak, 7)
	timer.SetConfig(cfg)

	if got := timer.Config().ShortBreak; got != 7 {
		t.Errorf("expected short break 7 on the next call, got %d", got)
	}
	if app.config.Timer.ShortBreak != 7 {
		t.Errorf("config file settings not updated: %d", app.config.Timer.ShortBreak)
	}
}
