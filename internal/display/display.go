// Package display contains terminal formatting logic for CLI commands.
//
// Commands should keep execution and business logic separate from
// rendering concerns by delegating all human-readable output to
// formatters in this package.
package display

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/smoreland/linewatch/internal/runner"
)

// Formatter writes formatted output to a writer.
type Formatter interface {
	Format(w io.Writer) error
}

// Colors for status indicators.
var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// statusCell renders a check status with its color and glyph.
func statusCell(s runner.Status) string {
	switch s {
	case runner.StatusOK:
		return green("✓ ok")
	case runner.StatusFailed:
		return red("✗ failed")
	case runner.StatusTimedOut:
		return yellow("⧖ timeout")
	case runner.StatusCanceled:
		return dim("– canceled")
	default:
		return red("! error")
	}
}

// formatDuration renders a latency rounded to a readable unit.
func formatDuration(d time.Duration) string {
	switch {
	case d == 0:
		return "—"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}

// formatRate renders a success rate as a colored percentage.
func formatRate(rate float64) string {
	str := fmt.Sprintf("%.0f%%", rate*100)
	switch {
	case rate >= 1:
		return green(str)
	case rate >= 0.8:
		return yellow(str)
	default:
		return red(str)
	}
}
