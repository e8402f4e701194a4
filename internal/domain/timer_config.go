package domain

import "time"

// Duration bounds for a single session, in minutes.
const (
	MinMinutes = 1
	MaxMinutes = 180
)

// Default session lengths, in minutes.
const (
	DefaultFocusMinutes      = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
)

// TimerConfig holds the per-mode durations and the behaviour flags of the timer.
type TimerConfig struct {
	Focus      int `json:"focus"`
	ShortBreak int `json:"short_break"`
	LongBreak  int `json:"long_break"`

	// AutoStartBreaks starts the break right after a focus session completes.
	AutoStartBreaks bool `json:"auto_start_breaks"`
	// AutoStartFocus starts the next focus session right after a break completes.
	AutoStartFocus bool `json:"auto_start_focus"`

	TickSound       bool `json:"tick_sound"`
	CompletionSound bool `json:"completion_sound"`
}

// DefaultTimerConfig returns the standard pomodoro configuration.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Focus:           DefaultFocusMinutes,
		ShortBreak:      DefaultShortBreakMinutes,
		LongBreak:       DefaultLongBreakMinutes,
		CompletionSound: true,
	}
}

// ClampMinutes forces a user-entered duration into [MinMinutes, MaxMinutes].
func ClampMinutes(n int) int {
	if n < MinMinutes {
		return MinMinutes
	}
	if n > MaxMinutes {
		return MaxMinutes
	}
	return n
}

// defaultMinutes returns the built-in duration for a mode.
func defaultMinutes(m Mode) int {
	switch m {
	case ModeShortBreak:
		return DefaultShortBreakMinutes
	case ModeLongBreak:
		return DefaultLongBreakMinutes
	default:
		return DefaultFocusMinutes
	}
}

// Minutes returns the configured minutes for a mode. Absent or non-positive
// values are replaced by the mode's default.
func (c TimerConfig) Minutes(m Mode) int {
	var n int
	switch m {
	case ModeFocus:
		n = c.Focus
	case ModeShortBreak:
		n = c.ShortBreak
	case ModeLongBreak:
		n = c.LongBreak
	}
	if n <= 0 {
		return defaultMinutes(m)
	}
	return n
}

// SetMinutes stores a clamped duration for a mode. Unknown modes are ignored.
func (c *TimerConfig) SetMinutes(m Mode, minutes int) {
	minutes = ClampMinutes(minutes)
	switch m {
	case ModeFocus:
		c.Focus = minutes
	case ModeShortBreak:
		c.ShortBreak = minutes
	case ModeLongBreak:
		c.LongBreak = minutes
	}
}

// Seconds returns the full length of a mode in seconds.
func (c TimerConfig) Seconds(m Mode) float64 {
	return float64(c.Minutes(m) * 60)
}

// Duration returns the full length of a mode.
func (c TimerConfig) Duration(m Mode) time.Duration {
	return time.Duration(c.Minutes(m)) * time.Minute
}

// AutoStartAfter reports whether the session following a completed
// session of mode m should start on its own.
func (c TimerConfig) AutoStartAfter(m Mode) bool {
	if m.IsBreak() {
		return c.AutoStartFocus
	}
	return c.AutoStartBreaks
}

// Normalized returns a copy with every positive duration clamped and every
// missing duration replaced by its default.
func (c TimerConfig) Normalized() TimerConfig {
	for _, m := range ValidModes {
		c.SetMinutes(m, c.Minutes(m))
	}
	return c
}
