// Package term writes cursor and erase control sequences to an output
// stream. Sequence construction is delegated entirely to the aec library;
// this package only decides which sequence expresses a given intent and
// performs the write.
package term

import (
	"io"
	"strings"

	"github.com/morikuni/aec"
)

// Pre-built sequences. aec owns the byte layout.
var (
	// Move up one row, then erase that entire row. Repeated once per
	// line by ClearLines.
	eraseLineUp = aec.Up(1).String() + aec.EraseLine(aec.EraseModes.All).String()

	// Erase the whole display and home the cursor.
	clearAll = aec.EraseDisplay(aec.EraseModes.All).String() + aec.Position(1, 1).String()

	// Erase from the cursor to the end of the display.
	eraseBelow = aec.EraseDisplay(aec.EraseModes.Tail).String()

	column1 = aec.Column(1).String()
)

// Controller issues terminal control writes against a single output
// stream. It holds no state: every call is an independent side effect.
// Write errors are returned to the caller unchanged — never wrapped,
// logged, or retried.
//
// The output stream is substitutable: pass a bytes.Buffer to capture
// sequences instead of driving a real terminal.
type Controller struct {
	out io.Writer
}

// NewController returns a Controller writing to out.
func NewController(out io.Writer) *Controller {
	return &Controller{out: out}
}

// ClearLines erases count lines, counting upward from the current cursor
// row, and leaves the cursor at column 1 of the first erased row. The
// caller is responsible for count matching the number of lines actually
// printed; no bounds checking is performed. count <= 0 writes nothing.
func (c *Controller) ClearLines(count int) error {
	if count <= 0 {
		return nil
	}
	_, err := io.WriteString(c.out, strings.Repeat(eraseLineUp, count)+column1)
	return err
}

// ClearScreen erases the full display and moves the cursor to the
// top-left corner.
func (c *Controller) ClearScreen() error {
	_, err := io.WriteString(c.out, clearAll)
	return err
}

// CursorUp moves the cursor up count rows without erasing anything.
// count <= 0 writes nothing.
func (c *Controller) CursorUp(count int) error {
	if count <= 0 {
		return nil
	}
	_, err := io.WriteString(c.out, aec.Up(uint(count)).String())
	return err
}

// ClearFromCursor erases from the current cursor position to the end of
// the display.
func (c *Controller) ClearFromCursor() error {
	_, err := io.WriteString(c.out, eraseBelow)
	return err
}
