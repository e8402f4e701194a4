package cmd

import (
	"github.com/spf13/cobra"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the current session",
	Long:  `Stop the timer and refill the current session to its full length.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.engine.Reset()
		return printTimer(cmd, "🔄 Reset")
	},
}
