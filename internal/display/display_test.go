package display

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/smoreland/linewatch/internal/runner"
	"github.com/smoreland/linewatch/internal/stats"
)

func TestMain(m *testing.M) {
	// Stable output regardless of where the tests run.
	color.NoColor = true
	os.Exit(m.Run())
}

func sampleResults() []runner.Result {
	return []runner.Result{
		{Name: "disk", Status: runner.StatusOK, Latency: 12 * time.Millisecond, Output: "42%"},
		{Name: "dns", Status: runner.StatusFailed, Latency: 80 * time.Millisecond, ExitCode: 2, Err: errors.New("exit status 2")},
		{Name: "slow", Status: runner.StatusTimedOut, Latency: 100 * time.Millisecond},
	}
}

func TestSummaryFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewSummaryFormatter(sampleResults()).Format(&buf); err != nil {
		t.Fatalf("Format: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"disk", "dns", "slow", "✓ ok", "✗ failed", "⧖ timeout", "12ms", "1/3 checks passed"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryFormatterAllPassing(t *testing.T) {
	var buf bytes.Buffer
	results := []runner.Result{{Name: "a", Status: runner.StatusOK, Latency: time.Millisecond}}
	if err := NewSummaryFormatter(results).Format(&buf); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(buf.String(), "1/1 checks passed") {
		t.Errorf("output missing pass line:\n%s", buf.String())
	}
}

func TestStatusCellCanceled(t *testing.T) {
	if got := statusCell(runner.StatusCanceled); got != "– canceled" {
		t.Errorf("statusCell(StatusCanceled) = %q, want %q", got, "– canceled")
	}
}

func TestHistoryFormatter(t *testing.T) {
	summaries := []stats.CheckSummary{
		{
			Name:        "disk",
			Samples:     10,
			Successes:   9,
			SuccessRate: 0.9,
			Latency:     stats.TailLatency{P50: 10 * time.Millisecond, P95: 40 * time.Millisecond, Max: 55 * time.Millisecond},
		},
	}

	var buf bytes.Buffer
	if err := NewHistoryFormatter(summaries).Format(&buf); err != nil {
		t.Fatalf("Format: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Session summary", "disk", "90%", "10ms", "40ms", "55ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("history output missing %q:\n%s", want, out)
		}
	}
}

func TestWatchFrameLines(t *testing.T) {
	frame := WatchFrame{
		Results:  sampleResults(),
		Interval: 10 * time.Second,
		Cycle:    3,
		Now:      time.Date(2026, 8, 23, 15, 4, 5, 0, time.UTC),
	}

	lines := frame.Lines()
	// Header + one row per check + footer.
	if got, want := len(lines), len(frame.Results)+2; got != want {
		t.Fatalf("got %d lines, want %d", got, want)
	}
	if !strings.Contains(lines[0], "15:04:05") || !strings.Contains(lines[0], "cycle 3") {
		t.Errorf("header = %q, want timestamp and cycle", lines[0])
	}
	if !strings.Contains(lines[1], "disk") || !strings.Contains(lines[1], "✓ ok") {
		t.Errorf("first row = %q, want disk status", lines[1])
	}
	if !strings.Contains(lines[len(lines)-1], "quit") {
		t.Errorf("footer = %q, want key hints", lines[len(lines)-1])
	}

	frame.Paused = true
	if !strings.Contains(frame.Lines()[0], "paused") {
		t.Error("paused frame header does not say paused")
	}
}

func TestBuildReportAndJSONFormatter(t *testing.T) {
	report := BuildReport(sampleResults(), []stats.CheckSummary{
		{Name: "disk", Samples: 5, SuccessRate: 1, Latency: stats.TailLatency{P50: 10 * time.Millisecond}},
	})

	var buf bytes.Buffer
	if err := NewJSONFormatter(report).Format(&buf); err != nil {
		t.Fatalf("Format: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(decoded.Results))
	}
	if decoded.Results[1].Status != "failed" || decoded.Results[1].ExitCode != 2 {
		t.Errorf("dns entry = %+v, want failed with exit code 2", decoded.Results[1])
	}
	if decoded.Results[0].ExitCode != 0 {
		t.Errorf("ok entry carries exit code %d, want omitted", decoded.Results[0].ExitCode)
	}
	if len(decoded.Stats) != 1 || decoded.Stats[0].P50MS != 10 {
		t.Errorf("stats = %+v, want disk p50 of 10ms", decoded.Stats)
	}
}

func TestSaveReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	path, err := SaveReport(dir, BuildReport(sampleResults(), nil))
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("report written to %s, want inside %s", path, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report file is not valid JSON: %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "—"},
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
