package domain

import (
	"testing"
	"time"
)

func TestNewSessionRecord(t *testing.T) {
	ended := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := NewSessionRecord(ModeFocus, 25*time.Minute, 10*time.Minute, OutcomeSkipped, ended)

	if rec.ID == "" {
		t.Error("NewSessionRecord() ID is empty")
	}
	if rec.Mode != ModeFocus {
		t.Errorf("Mode = %v, want focus", rec.Mode)
	}
	if rec.Elapsed != 10*time.Minute {
		t.Errorf("Elapsed = %v, want 10m", rec.Elapsed)
	}
	if rec.Outcome != OutcomeSkipped {
		t.Errorf("Outcome = %v, want skipped", rec.Outcome)
	}
	if !rec.EndedAt.Equal(ended) {
		t.Errorf("EndedAt = %v, want %v", rec.EndedAt, ended)
	}
}

func TestNewSessionRecord_ClampsElapsed(t *testing.T) {
	now := time.Now()

	over := NewSessionRecord(ModeShortBreak, 5*time.Minute, 7*time.Minute, OutcomeCompleted, now)
	if over.Elapsed != 5*time.Minute {
		t.Errorf("Elapsed = %v, want 5m", over.Elapsed)
	}

	under := NewSessionRecord(ModeShortBreak, 5*time.Minute, -time.Second, OutcomeCompleted, now)
	if under.Elapsed != 0 {
		t.Errorf("Elapsed = %v, want 0", under.Elapsed)
	}
}

func TestSessionRecord_SetGitContext(t *testing.T) {
	rec := NewSessionRecord(ModeFocus, time.Minute, time.Minute, OutcomeCompleted, time.Now())
	rec.SetGitContext("feature/timer", "abc1234")

	if rec.GitBranch != "feature/timer" {
		t.Errorf("GitBranch = %v, want feature/timer", rec.GitBranch)
	}
	if rec.GitCommit != "abc1234" {
		t.Errorf("GitCommit = %v, want abc1234", rec.GitCommit)
	}
}
