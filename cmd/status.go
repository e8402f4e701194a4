package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xvierd/tomato/internal/adapters/tui"
	"github.com/xvierd/tomato/internal/domain"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current status",
	Long:  `Display the timer and today's statistics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := app.history.Today(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get today's stats: %w", err)
		}

		snap := app.engine.Snapshot()
		if jsonOutput {
			return outputStatusJSON(cmd.OutOrStdout(), snap, stats)
		}

		tui.ShowStatus(cmd.OutOrStdout(), snap, stats)
		return nil
	},
}

// printTimer reports the timer after a one-shot command.
func printTimer(cmd *cobra.Command, action string) error {
	snap := app.engine.Snapshot()
	if jsonOutput {
		return outputStatusJSON(cmd.OutOrStdout(), snap, nil)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", action, snap.Mode.Label(), snap.Display)
	return nil
}

// statusJSON builds the JSON document of the status command. stats may be nil.
func statusJSON(snap domain.Snapshot, stats *domain.DailyStats) map[string]interface{} {
	result := map[string]interface{}{
		"mode":              string(snap.Mode),
		"display":           snap.Display,
		"remaining_seconds": snap.Remaining,
		"total_seconds":     snap.Total,
		"progress":          snap.Progress,
		"running":           snap.Running,
	}

	if stats != nil {
		result["today_stats"] = map[string]interface{}{
			"focus_sessions":   stats.FocusSessions,
			"breaks_taken":     stats.BreaksTaken,
			"skipped_sessions": stats.SkippedSessions,
			"total_focus_time": stats.TotalFocusTime.String(),
		}
	}

	return result
}

// outputStatusJSON outputs the status in JSON format
func outputStatusJSON(w io.Writer, snap domain.Snapshot, stats *domain.DailyStats) error {
	jsonData, err := json.MarshalIndent(statusJSON(snap, stats), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}
