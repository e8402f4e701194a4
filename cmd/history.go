package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/tomato/internal/adapters/git"
	"github.com/xvierd/tomato/internal/domain"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sessions",
	Long:  `List the sessions finished or skipped during the last seven days, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		records, err := app.history.Recent(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		stats, err := app.history.Today(ctx)
		if err != nil {
			return fmt.Errorf("failed to get today's stats: %w", err)
		}

		out := cmd.OutOrStdout()

		if jsonOutput {
			sessions := make([]map[string]interface{}, 0, len(records))
			for _, rec := range records {
				sessions = append(sessions, map[string]interface{}{
					"id":         rec.ID,
					"mode":       string(rec.Mode),
					"outcome":    string(rec.Outcome),
					"planned":    rec.Planned.String(),
					"elapsed":    rec.Elapsed.String(),
					"ended_at":   rec.EndedAt.Format(time.RFC3339),
					"git_branch": rec.GitBranch,
					"git_commit": rec.GitCommit,
				})
			}
			data := map[string]interface{}{
				"sessions": sessions,
				"count":    len(sessions),
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal sessions: %w", err)
			}
			fmt.Fprintln(out, string(jsonData))
			return nil
		}

		if len(records) == 0 {
			fmt.Fprintln(out, "No sessions yet.")
		} else {
			fmt.Fprintf(out, "🍅 Sessions (%d):\n\n", len(records))
			for _, rec := range records {
				fmt.Fprintf(out, "%s %s  %-11s %s / %s",
					getOutcomeIcon(rec.Outcome),
					rec.EndedAt.Local().Format("Mon 15:04"),
					rec.Mode.Label(),
					formatCmdDuration(rec.Elapsed),
					formatCmdDuration(rec.Planned))
				if rec.GitBranch != "" {
					fmt.Fprintf(out, "  🌿 %s (%s)", rec.GitBranch, git.ShortCommit(rec.GitCommit))
				}
				fmt.Fprintln(out)
			}
		}

		fmt.Fprintf(out, "\n📊 Today: %d focus sessions, %d breaks, %d skipped, %s focused\n",
			stats.FocusSessions, stats.BreaksTaken, stats.SkippedSessions, formatMinutes(stats.TotalFocusTime))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of sessions to show (0 for all)")
}

func getOutcomeIcon(outcome domain.SessionOutcome) string {
	switch outcome {
	case domain.OutcomeCompleted:
		return "✅"
	case domain.OutcomeSkipped:
		return "⏭️"
	default:
		return "❓"
	}
}

// formatCmdDuration formats a duration as MM:SS.
func formatCmdDuration(d time.Duration) string {
	return domain.FormatClock(d.Seconds())
}

// formatMinutes formats a duration as a human-friendly string like "25m" or "1h30m".
func formatMinutes(d time.Duration) string {
	if d >= time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}
