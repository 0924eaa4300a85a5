// Package drive implements the scripted process driver behind the drive
// diagnostic binary: wait for a marker line on a child's output, then
// play a timed input script into its stdin.
package drive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// Step is one scripted stdin write, sent after waiting Delay.
type Step struct {
	Delay time.Duration
	Text  string
}

// ParseScript parses a comma-separated list of delay:text pairs, e.g.
// "1s:pause,2s:resume,500ms:quit". An empty script is valid and yields
// no steps.
func ParseScript(s string) ([]Step, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	steps := make([]Step, 0, len(parts))
	for _, part := range parts {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			return nil, fmt.Errorf("invalid script step %q (want delay:text)", strings.TrimSpace(part))
		}
		d, err := time.ParseDuration(kv[0])
		if err != nil {
			return nil, fmt.Errorf("invalid script delay %q: %w", kv[0], err)
		}
		if d < 0 {
			return nil, fmt.Errorf("negative script delay %q", kv[0])
		}
		steps = append(steps, Step{Delay: d, Text: kv[1]})
	}
	return steps, nil
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// AwaitMarker reads r line by line until a line contains marker,
// echoing every raw line to echo when echo is non-nil. Control
// sequences and trailing carriage returns are stripped before matching,
// since the child is usually writing to a pty.
func AwaitMarker(ctx context.Context, r io.Reader, marker string, echo io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if echo != nil {
			fmt.Fprintln(echo, line)
		}
		clean := strings.TrimRight(ansiRegex.ReplaceAllString(line, ""), "\r")
		if strings.Contains(clean, marker) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("marker %q not seen before output closed", marker)
}

// Play writes each step's text as a line to w, waiting out the step
// delay first. It stops early if the context is cancelled.
func Play(ctx context.Context, w io.Writer, steps []Step) error {
	for _, st := range steps {
		timer := time.NewTimer(st.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		if _, err := fmt.Fprintln(w, st.Text); err != nil {
			return fmt.Errorf("write %q: %w", st.Text, err)
		}
	}
	return nil
}
