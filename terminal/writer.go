package terminal

import (
	"io"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/cellwright/gridterm/engine"
)

// Writer is a render sink that paints frames onto an ANSI terminal.
//
// Each frame becomes a single Write: the cursor-home sequence followed by
// every row, newline-terminated. The frame assembly buffer is reused, so a
// steady-state frame costs one allocation-free Write call.
//
// Writer targets any io.Writer. Interactive terminals additionally get the
// alternate screen and a hidden cursor between Start and Stop; pipes and
// files receive plain frames.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
	buf []byte

	tty       bool
	started   bool
	finalized bool
}

// NewWriter creates a writer that emits frames to out.
func NewWriter(out io.Writer) *Writer {
	w := &Writer{out: out}
	if f, ok := out.(*os.File); ok {
		w.tty = term.IsTerminal(int(f.Fd()))
	}
	return w
}

// Stdout creates a writer for standard output.
func Stdout() *Writer {
	return NewWriter(os.Stdout)
}

// IsTerminal reports whether the output is an interactive terminal.
func (w *Writer) IsTerminal() bool {
	return w.tty
}

// Start prepares the output for frame writes: alternate screen, hidden
// cursor and wrap disabled on interactive terminals, then one full clear.
// Safe to call multiple times.
func (w *Writer) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started || w.finalized {
		return nil
	}

	if w.tty {
		if _, err := w.out.Write(csiAltScreenEnter); err != nil {
			return err
		}
		w.out.Write(csiCursorHide)
		w.out.Write(csiAutoWrapOff)
	}
	if _, err := w.out.Write(csiClear); err != nil {
		return err
	}

	w.started = true
	return nil
}

// Stop restores the terminal state. Safe to call multiple times; frame
// writes after Stop are dropped.
func (w *Writer) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started || w.finalized {
		return
	}

	if w.tty {
		w.out.Write(csiCursorShow)
		w.out.Write(csiAltScreenExit)
		w.out.Write(csiAutoWrapOn)
		w.out.Write(csiSGR0)
	}

	w.finalized = true
}

// WriteFrame emits one frame as a single write: home sequence, then each row
// followed by a newline.
func (w *Writer) WriteFrame(f engine.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finalized {
		return nil
	}

	w.buf = w.buf[:0]
	w.buf = append(w.buf, csiHome...)
	for _, row := range f.Rows {
		w.buf = appendRow(w.buf, row)
		w.buf = append(w.buf, '\n')
	}

	_, err := w.out.Write(w.buf)
	return err
}

// appendRow emits a row's runes, skipping the cell shadowed by a preceding
// wide rune so the printed row occupies exactly the grid width in columns.
func appendRow(buf []byte, row string) []byte {
	skip := false
	for _, r := range row {
		if skip {
			skip = false
			continue
		}
		if runewidth.RuneWidth(r) == 2 {
			skip = true
		}
		buf = utf8.AppendRune(buf, r)
	}
	return buf
}

// Restore forces the terminal back to a sane state. Call from panic recovery
// when Stop cannot run normally.
func Restore(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiAutoWrapOn)
	w.Write(csiSGR0)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
