package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/tomato/internal/adapters/tui"
	"github.com/xvierd/tomato/internal/domain"
	"github.com/xvierd/tomato/internal/ports"
	"github.com/xvierd/tomato/internal/scheduler"
)

// syncInterval is how often the timer screen looks for checkpoints written
// by other processes.
const syncInterval = time.Second

// runTimer opens the interactive timer on top of the restored engine.
func runTimer(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	eng := app.engine
	presenter := tui.NewPresenter(eng.Snapshot())
	eng.SetPresenter(presenter)

	// Other tomato processes may drive the same timer; follow their
	// checkpoints even while this one is paused.
	follow := scheduler.System.Every(syncInterval, func() { eng.Sync() })
	defer follow.Stop()

	return tui.Run(ctx, controller{eng}, presenter, tui.Options{
		Theme:  &app.config.Theme,
		Inline: inlineMode,
		Git:    detectGit(ctx),
		Stats: func() *domain.DailyStats {
			stats, err := app.history.Today(context.Background())
			if err != nil {
				app.logger.Warn("failed to load today's stats", "error", err)
				return nil
			}
			return stats
		},
	})
}

// detectGit returns the repository of the working directory, if any.
func detectGit(ctx context.Context) *ports.GitInfo {
	wd, err := os.Getwd()
	if err != nil || !app.git.IsAvailable() {
		return nil
	}
	info, err := app.git.Detect(ctx, wd)
	if err != nil {
		app.logger.Debug("git detection failed", "dir", wd, "error", err)
		return nil
	}
	return info
}
