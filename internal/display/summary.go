package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/smoreland/linewatch/internal/runner"
	"github.com/smoreland/linewatch/internal/stats"
)

// SummaryFormatter renders the one-shot `run` results as a table.
type SummaryFormatter struct {
	Results []runner.Result
}

// NewSummaryFormatter builds a summary formatter over results.
func NewSummaryFormatter(results []runner.Result) *SummaryFormatter {
	return &SummaryFormatter{Results: results}
}

// Format writes the check results table followed by a pass/fail line.
func (f *SummaryFormatter) Format(w io.Writer) error {
	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("Check", "Status", "Latency", "Exit", "Output")
	tbl.WithHeaderFormatter(headerFmt)
	tbl.WithWriter(w)

	passed := 0
	for _, r := range f.Results {
		exit := "—"
		if r.Status == runner.StatusFailed {
			exit = fmt.Sprintf("%d", r.ExitCode)
		}
		tbl.AddRow(r.Name, statusCell(r.Status), formatDuration(r.Latency), exit, r.Output)
		if r.OK() {
			passed++
		}
	}

	tbl.Print()

	if passed == len(f.Results) {
		_, err := fmt.Fprintf(w, "\n%s %d/%d checks passed\n", green("✓"), passed, len(f.Results))
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s %d/%d checks passed\n", red("✗"), passed, len(f.Results))
	return err
}

// HistoryFormatter renders per-check session aggregates, shown when a
// watch session ends.
type HistoryFormatter struct {
	Summaries []stats.CheckSummary
}

// NewHistoryFormatter builds a formatter over session summaries.
func NewHistoryFormatter(summaries []stats.CheckSummary) *HistoryFormatter {
	return &HistoryFormatter{Summaries: summaries}
}

// Format writes the session summary table.
func (f *HistoryFormatter) Format(w io.Writer) error {
	if _, err := fmt.Fprintln(w, bold("Session summary")); err != nil {
		return err
	}

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("Check", "Samples", "Success", "p50", "p95", "Max")
	tbl.WithHeaderFormatter(headerFmt)
	tbl.WithWriter(w)

	for _, s := range f.Summaries {
		tbl.AddRow(
			s.Name,
			s.Samples,
			formatRate(s.SuccessRate),
			formatDuration(s.Latency.P50),
			formatDuration(s.Latency.P95),
			formatDuration(s.Latency.Max),
		)
	}

	tbl.Print()
	return nil
}
