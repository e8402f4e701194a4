package cmd

import (
	"github.com/spf13/cobra"
)

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the timer",
	Long:  `Pause the running countdown, keeping the remaining time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.engine.Pause()
		return printTimer(cmd, "⏸️  Paused")
	},
}
