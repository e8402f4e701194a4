package cmd

import (
	"github.com/spf13/cobra"
)

// skipCmd represents the skip command
var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip to the next session",
	Long: `Abandon the current session and move to the next one without starting
it. Focus is followed by a short break, any break by focus. The skipped
session is recorded in the history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.engine.Skip()
		return printTimer(cmd, "⏭️  Skipped")
	},
}
