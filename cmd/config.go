package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/tomato/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit settings",
	Long: `Show every setting and its current value. Use "tomato config set" to
change one; the file lives at ~/.tomato/config.toml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := app.config.Settings()
		out := cmd.OutOrStdout()

		if jsonOutput {
			data := make(map[string]string, len(settings))
			for _, s := range settings {
				data[s.Key] = s.Value
			}
			jsonData, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(out, string(jsonData))
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Current configuration:")
		fmt.Fprintln(out)
		for _, s := range settings {
			fmt.Fprintf(out, "    %-24s %s\n", s.Key, s.Value)
		}
		fmt.Fprintln(out)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting and save it. Session lengths are whole minutes between
1 and 180; values outside that range are clamped. An idle timer sitting at
the full length of its session picks up the new length immediately.`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return config.Keys(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.config.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(app.config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		app.engine.SetConfig(app.config.TimerConfig())

		key := config.NormalizeKey(args[0])
		for _, s := range app.config.Settings() {
			if s.Key == key {
				fmt.Fprintf(cmd.OutOrStdout(), "  Saved: %s = %s\n", s.Key, s.Value)
			}
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}
