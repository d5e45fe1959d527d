// Package screen provides a tcell-backed render sink, for running scenes
// inside a managed terminal with event polling.
package screen

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/cellwright/gridterm/engine"
)

// Sink renders frames onto a tcell screen. tcell owns the terminal state
// and handles its own diffing on Show.
type Sink struct {
	screen tcell.Screen
	style  tcell.Style
}

// New initializes a tcell screen and wraps it as a render sink.
func New() (*Sink, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return &Sink{
		screen: s,
		style:  tcell.StyleDefault,
	}, nil
}

// Wrap adapts an already initialized tcell screen, such as the simulation
// screen used in tests.
func Wrap(s tcell.Screen) *Sink {
	return &Sink{
		screen: s,
		style:  tcell.StyleDefault,
	}
}

// WriteFrame paints the frame cell by cell and flips it to the terminal.
func (s *Sink) WriteFrame(f engine.Frame) error {
	s.screen.Clear()
	for y, row := range f.Rows {
		x := 0
		skip := false
		for _, r := range row {
			if skip {
				// This cell is the continuation of a wide rune;
				// painting it would truncate the rune in tcell
				skip = false
				x++
				continue
			}
			s.screen.SetContent(x, y, r, nil, s.style)
			if runewidth.RuneWidth(r) == 2 {
				skip = true
			}
			x++
		}
	}
	s.screen.Show()
	return nil
}

// Size returns the tcell screen dimensions.
func (s *Sink) Size() (width, height int) {
	return s.screen.Size()
}

// PollEvent blocks until the next input event. Returns nil after Fini.
func (s *Sink) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Fini restores the terminal. Safe to call once rendering has stopped.
func (s *Sink) Fini() {
	s.screen.Fini()
}
