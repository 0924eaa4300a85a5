package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/smoreland/linewatch/internal/runner"
	"github.com/smoreland/linewatch/internal/stats"
)

// Report is the machine-readable output format, mirroring the terminal
// summary. Latencies are integer millisecond counts.
type Report struct {
	Timestamp time.Time     `json:"timestamp"`
	Results   []ReportEntry `json:"results"`
	Stats     []ReportStats `json:"stats,omitempty"`
}

// ReportEntry is a single check outcome.
type ReportEntry struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	ExitCode  int    `json:"exit_code,omitempty"`
	Output    string `json:"output,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ReportStats is a per-check session aggregate.
type ReportStats struct {
	Name        string  `json:"name"`
	Samples     int     `json:"samples"`
	SuccessRate float64 `json:"success_rate"`
	P50MS       int64   `json:"p50_latency_ms"`
	P95MS       int64   `json:"p95_latency_ms"`
	MaxMS       int64   `json:"max_latency_ms"`
}

// BuildReport assembles a Report from results and optional session
// summaries.
func BuildReport(results []runner.Result, summaries []stats.CheckSummary) Report {
	r := Report{Timestamp: time.Now().UTC()}

	for _, res := range results {
		entry := ReportEntry{
			Name:      res.Name,
			Status:    res.Status.String(),
			LatencyMS: res.Latency.Milliseconds(),
			Output:    res.Output,
		}
		if res.Status == runner.StatusFailed {
			entry.ExitCode = res.ExitCode
		}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		}
		r.Results = append(r.Results, entry)
	}

	for _, s := range summaries {
		r.Stats = append(r.Stats, ReportStats{
			Name:        s.Name,
			Samples:     s.Samples,
			SuccessRate: s.SuccessRate,
			P50MS:       s.Latency.P50.Milliseconds(),
			P95MS:       s.Latency.P95.Milliseconds(),
			MaxMS:       s.Latency.Max.Milliseconds(),
		})
	}

	return r
}

// JSONFormatter renders a Report as indented JSON.
type JSONFormatter struct {
	Report Report
}

// NewJSONFormatter builds a JSON formatter over a report.
func NewJSONFormatter(report Report) *JSONFormatter {
	return &JSONFormatter{Report: report}
}

// Format writes the report as indented JSON.
func (f *JSONFormatter) Format(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f.Report)
}

// SaveReport writes a report into dir with a timestamped filename,
// creating the directory if needed, and returns the file path. Reports
// accumulate over time so runs can be compared later.
func SaveReport(dir string, report Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("linewatch_%s.json", report.Timestamp.Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := NewJSONFormatter(report).Format(f); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
