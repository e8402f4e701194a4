package domain

import (
	"testing"
	"time"
)

func TestDefaultTimerConfig(t *testing.T) {
	cfg := DefaultTimerConfig()

	if cfg.Focus != 25 {
		t.Errorf("Focus = %v, want 25", cfg.Focus)
	}
	if cfg.ShortBreak != 5 {
		t.Errorf("ShortBreak = %v, want 5", cfg.ShortBreak)
	}
	if cfg.LongBreak != 15 {
		t.Errorf("LongBreak = %v, want 15", cfg.LongBreak)
	}
	if cfg.AutoStartBreaks || cfg.AutoStartFocus {
		t.Error("auto-start flags should default to false")
	}
	if !cfg.CompletionSound {
		t.Error("CompletionSound should default to true")
	}
}

func TestClampMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{25, 25},
		{180, 180},
		{181, 180},
		{10000, 180},
	}

	for _, tt := range tests {
		if got := ClampMinutes(tt.in); got != tt.want {
			t.Errorf("ClampMinutes(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTimerConfig_MinutesFallback(t *testing.T) {
	cfg := TimerConfig{Focus: 0, ShortBreak: -3, LongBreak: 20}

	if got := cfg.Minutes(ModeFocus); got != DefaultFocusMinutes {
		t.Errorf("Minutes(focus) = %d, want %d", got, DefaultFocusMinutes)
	}
	if got := cfg.Minutes(ModeShortBreak); got != DefaultShortBreakMinutes {
		t.Errorf("Minutes(short_break) = %d, want %d", got, DefaultShortBreakMinutes)
	}
	if got := cfg.Minutes(ModeLongBreak); got != 20 {
		t.Errorf("Minutes(long_break) = %d, want 20", got)
	}
}

func TestTimerConfig_SetMinutes(t *testing.T) {
	cfg := DefaultTimerConfig()

	cfg.SetMinutes(ModeFocus, 500)
	if cfg.Focus != MaxMinutes {
		t.Errorf("Focus = %d, want %d", cfg.Focus, MaxMinutes)
	}

	cfg.SetMinutes(ModeShortBreak, 0)
	if cfg.ShortBreak != MinMinutes {
		t.Errorf("ShortBreak = %d, want %d", cfg.ShortBreak, MinMinutes)
	}

	if cfg.Duration(ModeFocus) != 180*time.Minute {
		t.Errorf("Duration(focus) = %v, want 3h", cfg.Duration(ModeFocus))
	}
}

func TestTimerConfig_SecondsCoversRange(t *testing.T) {
	cfg := DefaultTimerConfig()
	for d := MinMinutes; d <= MaxMinutes; d++ {
		cfg.SetMinutes(ModeLongBreak, d)
		if got := cfg.Seconds(ModeLongBreak); got != float64(d*60) {
			t.Fatalf("Seconds(long_break) with %d minutes = %v, want %v", d, got, d*60)
		}
	}
}

func TestTimerConfig_AutoStartAfter(t *testing.T) {
	cfg := TimerConfig{AutoStartBreaks: true}

	if !cfg.AutoStartAfter(ModeFocus) {
		t.Error("AutoStartAfter(focus) should follow AutoStartBreaks")
	}
	if cfg.AutoStartAfter(ModeShortBreak) || cfg.AutoStartAfter(ModeLongBreak) {
		t.Error("AutoStartAfter(break) should follow AutoStartFocus")
	}
}

func TestTimerConfig_Normalized(t *testing.T) {
	cfg := TimerConfig{Focus: 999, ShortBreak: 0, LongBreak: 12}.Normalized()

	if cfg.Focus != 180 || cfg.ShortBreak != 5 || cfg.LongBreak != 12 {
		t.Errorf("Normalized() = %+v", cfg)
	}
}
