package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/tomato/internal/adapters/git"
	"github.com/xvierd/tomato/internal/adapters/notification"
	"github.com/xvierd/tomato/internal/adapters/storage"
	"github.com/xvierd/tomato/internal/config"
	"github.com/xvierd/tomato/internal/domain"
	"github.com/xvierd/tomato/internal/engine"
	"github.com/xvierd/tomato/internal/ports"
	"github.com/xvierd/tomato/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	logger   *slog.Logger
	logFile  io.Closer
	storage  ports.Storage
	git      *git.Detector
	history  *services.HistoryService
	notifier *notification.Notifier
	engine   *engine.Engine

	// delay is the transition delay of engines built by newEngine.
	delay time.Duration
	// restoreConfig is set when the config file was missing at startup;
	// the first engine then rebuilds it from the checkpointed timer config.
	restoreConfig bool
}

// cueGrace bounds how long a finished command waits for audio cues.
const cueGrace = 2 * time.Second

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices(cmd *cobra.Command) error {
	app = appDeps{}

	if path, err := config.GetConfigPath(); err == nil {
		_, statErr := os.Stat(path)
		app.restoreConfig = errors.Is(statErr, fs.ErrNotExist)
	}

	// Load configuration
	var err error
	app.config, err = config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; using defaults\n", err)
		app.config = config.DefaultConfig()
	}

	// Determine database path
	path := dbPath
	if path == "" {
		path = config.GetDBPath(app.config)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	logPath := config.GetLogPath(app.config)
	if dbPath != "" {
		logPath = filepath.Join(filepath.Dir(dbPath), filepath.Base(logPath))
	}
	app.logger, app.logFile = openLogger(logPath, app.config.SlogLevel())

	// Initialize storage
	app.storage, err = storage.New(path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.git = git.NewDetector()
	app.history = services.NewHistoryService(app.storage.Sessions(), app.git, app.logger)
	if wd, err := os.Getwd(); err == nil {
		app.history.SetWorkingDir(wd)
	}
	app.notifier = notification.New(&app.config.Notifications, app.logger)

	// One-shot commands settle a completed session before they exit.
	app.delay = app.config.Timer.TransitionDelay
	if !isInteractive(cmd) {
		app.delay = 0
	}

	// Detached commands build an engine per operation instead.
	if !isDetached(cmd) {
		app.engine = newEngine()
	}

	return nil
}

// newEngine restores an engine from the shared checkpoint.
func newEngine() *engine.Engine {
	opts := []engine.Option{
		engine.WithStore(app.storage.KV()),
		engine.WithAudio(app.notifier),
		engine.WithObserver(app.history),
		engine.WithLogger(app.logger),
		engine.WithTickInterval(app.config.Timer.TickInterval),
		engine.WithTransitionDelay(app.delay),
	}
	if app.restoreConfig {
		opts = append(opts, engine.WithStoredConfig())
	}

	e := engine.New(app.config.TimerConfig(), opts...)

	if app.restoreConfig {
		app.restoreConfig = false
		app.config.ApplyTimerConfig(e.Config())
		if err := config.Save(app.config); err != nil {
			app.logger.Warn("failed to save restored config", "error", err)
		}
	}
	return e
}

// cleanupServices closes all resources. The engine writes its final
// checkpoint before the store goes away.
func cleanupServices() error {
	if app.engine != nil {
		app.engine.Close()
	}
	if app.notifier != nil && !app.notifier.Wait(cueGrace) {
		app.logger.Debug("audio cues still playing at exit")
	}
	var err error
	if app.storage != nil {
		err = app.storage.Close()
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
	app = appDeps{}
	return err
}

// openLogger writes structured logs to the data directory. The terminal
// belongs to the TUI, so a log file that cannot be opened is dropped.
func openLogger(path string, level slog.Level) (*slog.Logger, io.Closer) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return slog.New(slog.DiscardHandler), nil
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("pid", os.Getpid()), f
}

// controller exposes the engine to front-ends. Configuration changes made
// through it are also written to the config file.
type controller struct {
	*engine.Engine
}

// SetConfig applies cfg to the engine and persists it.
func (c controller) SetConfig(cfg domain.TimerConfig) {
	c.Engine.SetConfig(cfg)
	app.config.ApplyTimerConfig(c.Engine.Config())
	if err := config.Save(app.config); err != nil {
		app.logger.Warn("failed to save config", "error", err)
	}
}

var _ ports.TimerController = controller{}
