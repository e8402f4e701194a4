package ports

import (
	"context"

	"github.com/xvierd/tomato/internal/domain"
)

// Presenter receives the timer display after every advancement or state change.
// This is a driven port (implemented by the TUI and plain-text adapters).
// Implementations must not block.
type Presenter interface {
	Present(snap domain.Snapshot)
}

// AudioCue plays short audible signals. Calls are fire-and-forget; the
// engine ignores anything that goes wrong inside them.
// This is a driven port (implemented by adapters).
type AudioCue interface {
	// Tick is played when the display crosses a whole second.
	Tick()

	// Complete is played when a session of the given mode finishes.
	Complete(mode domain.Mode)
}

// SessionObserver is told about every session that ends, naturally or by skip.
// This is a driven port (implemented by the services layer).
type SessionObserver interface {
	SessionEnded(ctx context.Context, rec domain.SessionRecord)
}

// TimerController is the set of timer operations exposed to front-ends.
// This is a driving port (implemented by the engine).
type TimerController interface {
	Start()
	Pause()
	Reset()
	Skip()
	Snapshot() domain.Snapshot
	Config() domain.TimerConfig
	SetConfig(cfg domain.TimerConfig)
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(domain.Snapshot)

// Present calls f(snap).
func (f PresenterFunc) Present(snap domain.Snapshot) { f(snap) }

// Server is a long-running front-end that drives the timer for another
// program, such as the MCP stdio server.
// This is a driving port (implemented by adapters).
type Server interface {
	Start(ctx context.Context) error
	Stop() error
	IsRunning() bool
}
