package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/smoreland/linewatch/internal/config"
	"github.com/smoreland/linewatch/internal/display"
	"github.com/smoreland/linewatch/internal/render"
	"github.com/smoreland/linewatch/internal/runner"
	"github.com/smoreland/linewatch/internal/stats"
)

// readyMarker is printed once before the first frame. External drivers
// (see cmd/drive) wait for this line before feeding stdin commands.
const readyMarker = "linewatch: watch ready"

func watchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Continuously run checks and repaint a live status region",
		Long: `Continuously run all configured checks and repaint their status
lines in place on each refresh.

While running, watch reads commands from stdin:
  pause   stop refreshing (the region stays on screen)
  resume  resume refreshing
  once    run one refresh cycle immediately
  quit    exit

Examples:
  linewatch watch
  linewatch watch --interval 5s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runWatch(cfg, interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Refresh interval (defaults to config)")
	return cmd
}

func runWatch(cfg *config.Config, intervalOverride time.Duration) error {
	// Use config default unless explicitly overridden.
	interval := cfg.Defaults.WatchInterval.Std()
	if intervalOverride > 0 {
		interval = intervalOverride
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "\nReceived signal: %v\n", sig)
		cancel()
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	checks := runner.FromConfig(cfg.Checks)
	history := stats.NewHistory(cfg.Defaults.History)
	region := render.New(os.Stdout)
	cmds := readCommands(ctx)

	fmt.Println(readyMarker)

	var (
		paused      bool
		cycle       int
		lastResults []runner.Result
	)

	repaint := func() {
		frame := display.WatchFrame{
			Results:  lastResults,
			Interval: interval,
			Cycle:    cycle,
			Paused:   paused,
			Now:      time.Now(),
		}
		if err := region.Render(frame.Lines()); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering status: %v\n", err)
		}
	}

	refresh := func() {
		cycle++
		lastResults = runner.RunAll(ctx, checks, cfg.Defaults.Parallel)
		if ctx.Err() != nil {
			// Shutdown arrived mid-cycle; the killed checks would
			// show up as bogus failures in the session summary.
			return
		}
		history.Record(lastResults)
		repaint()
	}

	// Immediate first cycle so the user isn't staring at a blank
	// region until the first tick.
	refresh()

	for {
		select {
		case <-ctx.Done():
			return finishWatch(region, history)

		case <-ticker.C:
			if ctx.Err() != nil || paused {
				continue
			}
			refresh()

		case line, ok := <-cmds:
			if !ok {
				// stdin closed; keep refreshing on the ticker alone.
				cmds = nil
				continue
			}
			switch line {
			case "pause":
				paused = true
				repaint()
			case "resume":
				paused = false
				refresh()
			case "once":
				refresh()
			case "quit":
				cancel()
			default:
				fmt.Fprintf(os.Stderr, "Unknown command %q (pause|resume|once|quit)\n", line)
			}
		}
	}
}

// finishWatch clears the status region and prints the session summary.
func finishWatch(region *render.Region, history *stats.History) error {
	if err := region.Close(); err != nil {
		return err
	}
	summaries := history.Summaries()
	if len(summaries) == 0 {
		return nil
	}
	return display.NewHistoryFormatter(summaries).Format(os.Stdout)
}

// readCommands feeds trimmed, lowercased stdin lines to the watch loop.
// The channel closes when stdin does.
func readCommands(ctx context.Context) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if line == "" {
				continue
			}
			select {
			case ch <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
