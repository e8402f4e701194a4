// Package cmd provides the CLI commands for the Tomato application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool
	inlineMode bool
)

const (
	// interactive marks commands that keep the engine alive, as opposed to
	// the one-shot commands that load the checkpoint, change it and exit.
	interactive = "interactive"
	// detached marks long-running commands that hold no engine of their
	// own and work on the checkpoint one operation at a time.
	detached = "detached"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tomato",
	Short: "Tomato - A Pomodoro timer for the terminal",
	Long: `Tomato is a Pomodoro timer that cycles between focus sessions and
breaks, remembers where it was between runs, and keeps a history of the
sessions you finished or skipped.

Run "tomato" with no arguments to open the timer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Annotations:   map[string]string{interactive: "true"},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runTimer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.tomato/tomato.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&inlineMode, "inline", "i", false, "Compact inline timer (no fullscreen)")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("Tomato\nVersion: {{.Version}}\nCommit:  %s\nBuilt:   %s\n", GitCommit, BuildDate))

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(skipCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}

// isInteractive reports whether cmd runs a long-lived engine.
func isInteractive(cmd *cobra.Command) bool {
	return cmd.Annotations[interactive] == "true"
}

// isDetached reports whether cmd builds its engines per operation.
func isDetached(cmd *cobra.Command) bool {
	return cmd.Annotations[detached] == "true"
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
