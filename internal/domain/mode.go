// Package domain contains the core entities of the Tomato timer.
// These types describe session modes, timer configuration and timer state
// and are independent of any storage, scheduling or rendering concerns.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors.
var (
	ErrInvalidMode    = errors.New("invalid mode")
	ErrUnknownSetting = errors.New("unknown setting")
	ErrInvalidValue   = errors.New("invalid value")
)

// Mode identifies the kind of session the timer is counting down.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// ValidModes lists all supported modes in display order.
var ValidModes = []Mode{
	ModeFocus,
	ModeShortBreak,
	ModeLongBreak,
}

// ParseMode checks if a string names a valid mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	for _, valid := range ValidModes {
		if m == valid {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of focus, short_break, long_break", ErrInvalidMode, s)
}

// Label returns a human-readable label.
func (m Mode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// IsBreak returns true for both break lengths.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// Next returns the mode that follows m when a session ends.
// Focus always hands over to a short break; any break returns to focus.
func (m Mode) Next() Mode {
	if m.IsBreak() {
		return ModeFocus
	}
	return ModeShortBreak
}
