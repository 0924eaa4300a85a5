package display

import (
	"fmt"
	"time"

	"github.com/smoreland/linewatch/internal/runner"
)

// WatchFrame holds everything needed to paint one refresh cycle of the
// live status region.
type WatchFrame struct {
	Results  []runner.Result
	Interval time.Duration
	Cycle    int
	Paused   bool
	Now      time.Time
}

// Lines builds the status region rows for this frame: a header, one row
// per check, and a key-hint footer. The caller hands them to the render
// region, which owns erasing the previous frame.
func (f *WatchFrame) Lines() []string {
	state := fmt.Sprintf("refresh %s · cycle %d", f.Interval, f.Cycle)
	if f.Paused {
		state = yellow("paused") + " · cycle " + fmt.Sprintf("%d", f.Cycle)
	}
	lines := make([]string, 0, len(f.Results)+2)
	lines = append(lines, cyan("╭─")+bold(" linewatch ")+fmt.Sprintf("── %s (%s) ", f.Now.Format("15:04:05"), state)+cyan("─╮"))

	for _, r := range f.Results {
		line := fmt.Sprintf("  %-22s %-10s %8s", r.Name, statusCell(r.Status), formatDuration(r.Latency))
		if r.Output != "" {
			line += "  " + dim(r.Output)
		}
		lines = append(lines, line)
	}

	lines = append(lines, dim("  pause · resume · once · quit        Ctrl+C to exit"))
	return lines
}
