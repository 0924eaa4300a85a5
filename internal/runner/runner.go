// Package runner executes configured shell checks and classifies their
// outcomes. Checks fan out concurrently up to a configured limit; the
// runner never fails fast — every check runs and records its own result.
package runner

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/smoreland/linewatch/internal/config"
)

// Status classifies the outcome of one check execution.
type Status int

const (
	StatusOK       Status = iota // exit code 0
	StatusFailed                 // non-zero exit code
	StatusTimedOut               // killed by the per-check timeout
	StatusCanceled               // cut short by caller cancellation, not a check failure
	StatusError                  // could not be started at all
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timeout"
	case StatusCanceled:
		return "canceled"
	default:
		return "error"
	}
}

// Check is a single named shell command with its effective timeout.
type Check struct {
	Name    string
	Command string
	Timeout time.Duration
}

// Result is the outcome of one check execution.
type Result struct {
	Name     string
	Status   Status
	Latency  time.Duration
	ExitCode int
	Output   string // trimmed tail of combined stdout+stderr
	Err      error
}

// OK reports whether the check succeeded.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// FromConfig converts configured checks into runnable ones. Config
// validation has already applied the default timeout to every check.
func FromConfig(checks []config.Check) []Check {
	out := make([]Check, len(checks))
	for i, c := range checks {
		out[i] = Check{Name: c.Name, Command: c.Command, Timeout: c.Timeout.Std()}
	}
	return out
}

// maxOutputBytes caps how much check output a Result retains. Status
// lines only have room for the tail anyway.
const maxOutputBytes = 512

// RunAll executes every check concurrently, at most parallel at a time,
// and returns results in check order regardless of completion order.
// It does not fail fast: each check records its own error.
func RunAll(ctx context.Context, checks []Check, parallel int) []Result {
	results := make([]Result, len(checks))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for i, ch := range checks {
		i, ch := i, ch // capture loop vars
		g.Go(func() error {
			r := runOne(gctx, ch)
			mu.Lock()
			results[i] = r
			mu.Unlock()
			return nil // don't fail-fast; collect all results
		})
	}

	_ = g.Wait()
	return results
}

func runOne(ctx context.Context, ch Check) Result {
	runCtx := ctx
	cancel := context.CancelFunc(func() {})
	if ch.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, ch.Timeout)
	}
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(runCtx, "/bin/sh", "-c", ch.Command)
	out, err := cmd.CombinedOutput()
	latency := time.Since(start)

	r := Result{
		Name:    ch.Name,
		Latency: latency,
		Output:  tail(string(out), maxOutputBytes),
		Err:     err,
	}

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		r.Status = StatusTimedOut
		r.Err = runCtx.Err()
	case errors.Is(runCtx.Err(), context.Canceled):
		// Shutdown killed the check; don't report it as a failure.
		r.Status = StatusCanceled
		r.Err = runCtx.Err()
	case err == nil:
		r.Status = StatusOK
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.Status = StatusFailed
			r.ExitCode = exitErr.ExitCode()
		} else {
			r.Status = StatusError
		}
	}
	return r
}

// tail returns the last max bytes of s, collapsed to a single line with
// surrounding whitespace removed.
func tail(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return strings.ReplaceAll(s, "\n", " · ")
}
