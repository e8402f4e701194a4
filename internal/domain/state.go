package domain

import (
	"fmt"
	"math"
	"time"
)

// TimerState is the permanent session state of the timer.
type TimerState struct {
	Mode Mode
	// Remaining is kept in fractional seconds so repeated advancement
	// does not accumulate truncation drift.
	Remaining float64
	Running   bool
	// LastTick is the reference point for the next advancement. It is only
	// set while running.
	LastTick time.Time
}

// NewTimerState returns a paused state for mode m at its full duration.
func NewTimerState(cfg TimerConfig, m Mode) TimerState {
	return TimerState{
		Mode:      m,
		Remaining: cfg.Seconds(m),
	}
}

// Snapshot is what the presentation layer receives after every change.
type Snapshot struct {
	Mode      Mode
	Remaining float64
	Total     float64
	Running   bool
	Display   string
	Progress  float64
}

// NewSnapshot builds a presentation snapshot for a state.
func NewSnapshot(state TimerState, cfg TimerConfig) Snapshot {
	total := cfg.Seconds(state.Mode)
	return Snapshot{
		Mode:      state.Mode,
		Remaining: state.Remaining,
		Total:     total,
		Running:   state.Running,
		Display:   FormatClock(state.Remaining),
		Progress:  Progress(state.Remaining, total),
	}
}

// FormatClock renders seconds as mm:ss, rounding down to whole seconds.
// Minutes are not wrapped into hours.
func FormatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	whole := int(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d", whole/60, whole%60)
}

// Progress returns the completed fraction of a session (0.0 to 1.0).
func Progress(remaining, total float64) float64 {
	if total <= 0 {
		return 0
	}
	p := 1 - remaining/total
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
