package engine

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Default grid geometry and glyphs
const (
	DefaultWidth  = 120
	DefaultHeight = 30

	DefaultActiveGlyph = '#'
	DefaultEmptyGlyph  = ' '
)

// Config carries the display geometry and glyph set.
// Glyphs are injected here rather than read from package globals so two
// displays in one process can disagree about them.
type Config struct {
	Width  int
	Height int

	// ActiveGlyph is the symbol used when a cell is activated without an
	// explicit one. EmptyGlyph is what inactive cells hold and render as.
	ActiveGlyph rune
	EmptyGlyph  rune
}

// DefaultConfig returns the standard 120x30 grid with '#' and space glyphs.
func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		ActiveGlyph: DefaultActiveGlyph,
		EmptyGlyph:  DefaultEmptyGlyph,
	}
}

// Validate checks the configuration for construction.
// Glyphs must occupy exactly one terminal column; wide or zero-width default
// glyphs would break row alignment on every sink.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid grid size %dx%d", c.Width, c.Height)
	}
	if w := runewidth.RuneWidth(c.ActiveGlyph); w != 1 {
		return fmt.Errorf("active glyph %q is %d columns wide, want 1", c.ActiveGlyph, w)
	}
	if w := runewidth.RuneWidth(c.EmptyGlyph); w != 1 {
		return fmt.Errorf("empty glyph %q is %d columns wide, want 1", c.EmptyGlyph, w)
	}
	return nil
}
