// Package render maintains a repaintable block of status lines on a
// terminal. Each frame replaces the previous one in place; on outputs
// that are not terminals the region degrades to plain appends so piped
// or redirected output stays readable.
package render

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	xterm "golang.org/x/term"

	"github.com/smoreland/linewatch/internal/term"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// Region is a block of terminal lines that is erased and repainted on
// each Render call. It remembers how many rows the previous frame
// occupied and asks the controller to erase exactly that many before
// painting the next frame.
type Region struct {
	mu    sync.Mutex
	out   io.Writer
	ctrl  *term.Controller
	istty bool
	width int
	lines int // rows painted by the previous frame
}

// New builds a Region for out. When out is an *os.File attached to a
// terminal, frames are repainted in place and truncated to the terminal
// width; otherwise frames are appended with a blank separator line.
func New(out io.Writer) *Region {
	r := &Region{out: out, ctrl: term.NewController(out)}
	if f, ok := out.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
		r.istty = true
		if w, _, err := xterm.GetSize(int(f.Fd())); err == nil {
			r.width = w
		}
	}
	return r
}

// ForTerminal returns a Region that treats out as a terminal of the
// given width regardless of its concrete type. A width of 0 disables
// truncation.
func ForTerminal(out io.Writer, width int) *Region {
	return &Region{out: out, ctrl: term.NewController(out), istty: true, width: width}
}

// Render replaces the previously painted frame with lines. Lines must
// not contain newlines of their own; each entry is one terminal row.
func (r *Region) Render(lines []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.istty {
		if err := r.ctrl.ClearLines(r.lines); err != nil {
			return err
		}
	} else if r.lines > 0 {
		// Blank separator between appended frames.
		if _, err := fmt.Fprintln(r.out); err != nil {
			return err
		}
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(r.fit(line))
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return err
	}
	r.lines = len(lines)
	return nil
}

// Close erases the painted frame so the shell gets back a clean line.
// On non-terminal outputs it is a no-op.
func (r *Region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.istty || r.lines == 0 {
		return nil
	}
	err := r.ctrl.ClearLines(r.lines)
	r.lines = 0
	return err
}

// fit truncates a line to the region width, measured in terminal cells
// rather than bytes so multibyte and wide glyphs survive intact. Lines
// carrying color codes are measured on their stripped form; an overlong
// colored line is truncated stripped, trading color for a non-wrapping
// row.
func (r *Region) fit(line string) string {
	if !r.istty || r.width <= 0 {
		return line
	}
	visible := ansiRegex.ReplaceAllString(line, "")
	if runewidth.StringWidth(visible) <= r.width {
		return line
	}
	return runewidth.Truncate(visible, r.width, "")
}
