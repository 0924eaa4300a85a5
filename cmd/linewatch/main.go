// Command linewatch runs configured shell checks and renders their
// status to the terminal: once with a summary table, or continuously
// with a live status region that repaints in place.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smoreland/linewatch/internal/config"
)

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:           "linewatch",
		Short:         "Run shell checks and render live terminal status lines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "config/checks.yaml", "Config file path")
	rootCmd.AddCommand(runCmd(), watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	return config.Load(path)
}
