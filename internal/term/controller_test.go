package term

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/morikuni/aec"
)

func TestControllerSequences(t *testing.T) {
	up1 := aec.Up(1).String()
	eraseLine := aec.EraseLine(aec.EraseModes.All).String()
	col1 := aec.Column(1).String()

	tests := []struct {
		name string
		op   func(c *Controller) error
		want string
	}{
		{
			name: "clear_lines_one",
			op:   func(c *Controller) error { return c.ClearLines(1) },
			want: up1 + eraseLine + col1,
		},
		{
			name: "clear_lines_three",
			op:   func(c *Controller) error { return c.ClearLines(3) },
			want: strings.Repeat(up1+eraseLine, 3) + col1,
		},
		{
			name: "clear_lines_zero_writes_nothing",
			op:   func(c *Controller) error { return c.ClearLines(0) },
			want: "",
		},
		{
			name: "clear_lines_negative_writes_nothing",
			op:   func(c *Controller) error { return c.ClearLines(-2) },
			want: "",
		},
		{
			name: "clear_screen",
			op:   func(c *Controller) error { return c.ClearScreen() },
			want: aec.EraseDisplay(aec.EraseModes.All).String() + aec.Position(1, 1).String(),
		},
		{
			name: "cursor_up_five",
			op:   func(c *Controller) error { return c.CursorUp(5) },
			want: aec.Up(5).String(),
		},
		{
			name: "cursor_up_zero_writes_nothing",
			op:   func(c *Controller) error { return c.CursorUp(0) },
			want: "",
		},
		{
			name: "clear_from_cursor",
			op:   func(c *Controller) error { return c.ClearFromCursor() },
			want: aec.EraseDisplay(aec.EraseModes.Tail).String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := NewController(&buf)
			if err := tt.op(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("wrote %q, want %q", got, tt.want)
			}
		})
	}
}

// Two identical calls must write the concatenation of the same two
// sequences: no coalescing, no state carried between calls.
func TestControllerRepeatConcatenates(t *testing.T) {
	var buf bytes.Buffer
	c := NewController(&buf)

	if err := c.ClearLines(2); err != nil {
		t.Fatalf("first call: %v", err)
	}
	first := buf.String()

	if err := c.ClearLines(2); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if got, want := buf.String(), first+first; got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
}

type failWriter struct {
	err error
}

func (w failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

// A write failure must surface to the caller unchanged.
func TestControllerPropagatesWriteError(t *testing.T) {
	sentinel := errors.New("stream closed")
	c := NewController(failWriter{err: sentinel})

	ops := []struct {
		name string
		op   func() error
	}{
		{"clear_lines", func() error { return c.ClearLines(1) }},
		{"clear_screen", c.ClearScreen},
		{"cursor_up", func() error { return c.CursorUp(1) }},
		{"clear_from_cursor", c.ClearFromCursor},
	}

	for _, tt := range ops {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op(); err != sentinel {
				t.Errorf("got error %v, want the sentinel unchanged", err)
			}
		})
	}
}

// Zero-count operations must succeed even on a broken stream, since they
// perform no write at all.
func TestControllerZeroCountSkipsWrite(t *testing.T) {
	c := NewController(failWriter{err: errors.New("broken")})
	if err := c.ClearLines(0); err != nil {
		t.Errorf("ClearLines(0) = %v, want nil", err)
	}
	if err := c.CursorUp(0); err != nil {
		t.Errorf("CursorUp(0) = %v, want nil", err)
	}
}
