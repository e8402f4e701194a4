package cmd

import (
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start or resume the timer",
	Long: `Start the countdown of the current session, or resume it if it was
paused. The timer keeps counting while no window is open; the next
"tomato" or "tomato status" picks up where it is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.engine.Start()
		return printTimer(cmd, "▶️  Started")
	},
}
