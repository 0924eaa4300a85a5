package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/smoreland/linewatch/internal/config"
	"github.com/smoreland/linewatch/internal/display"
	"github.com/smoreland/linewatch/internal/runner"
)

func runCmd() *cobra.Command {
	var (
		format    string
		reportDir string
		parallel  int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every check once and print a summary",
		Long: `Run every configured check once and print a summary table.
Exits non-zero when any check does not pass.

Examples:
  linewatch run
  linewatch run --format json
  linewatch run --report reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runOnce(cfg, format, reportDir, parallel, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&format, "format", "terminal", "Output format: terminal|json")
	cmd.Flags().StringVar(&reportDir, "report", "", "Directory to write a JSON report file (optional)")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "Max concurrent checks (defaults to config)")
	return cmd
}

func runOnce(cfg *config.Config, format, reportDir string, parallelOverride int, out io.Writer) error {
	parallel := cfg.Defaults.Parallel
	if parallelOverride > 0 {
		parallel = parallelOverride
	}

	checks := runner.FromConfig(cfg.Checks)
	results := runner.RunAll(context.Background(), checks, parallel)

	// One report serves both the printed JSON and the saved file, so
	// they carry the same timestamp.
	report := display.BuildReport(results, nil)

	var formatter display.Formatter
	switch format {
	case "terminal":
		formatter = display.NewSummaryFormatter(results)
	case "json":
		formatter = display.NewJSONFormatter(report)
	default:
		return fmt.Errorf("unknown format %q (expected terminal or json)", format)
	}
	if err := formatter.Format(out); err != nil {
		return err
	}

	if reportDir != "" {
		path, err := display.SaveReport(reportDir, report)
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d checks did not pass", failed, len(results))
	}
	return nil
}
