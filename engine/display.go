package engine

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
)

// ErrNotPlaced is returned when removing or moving an object that is not
// drawn on the display.
var ErrNotPlaced = errors.New("object is not placed")

// Display owns a fixed-size grid of cells and is the sole gatekeeper for
// bounds checks. Single-cell operations on out-of-bounds coordinates are
// silent no-ops; object placement silently drops out-of-bounds form cells.
//
// The grid is a flat row-major arena: cells[y*width + x].
type Display struct {
	width  int
	height int
	cells  []Cell

	activeGlyph rune
	emptyGlyph  rune

	sink Sink
}

// NewDisplay creates a display with every cell inactive, rendering to sink.
func NewDisplay(cfg Config, sink Sink) (*Display, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid display config: %w", err)
	}
	if sink == nil {
		return nil, errors.New("nil render sink")
	}

	d := &Display{
		width:       cfg.Width,
		height:      cfg.Height,
		cells:       make([]Cell, cfg.Width*cfg.Height),
		activeGlyph: cfg.ActiveGlyph,
		emptyGlyph:  cfg.EmptyGlyph,
		sink:        sink,
	}
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			d.cells[y*d.width+x] = Cell{X: x, Y: y, Symbol: d.emptyGlyph}
		}
	}
	return d, nil
}

// Width returns the grid width.
func (d *Display) Width() int {
	return d.width
}

// Height returns the grid height.
func (d *Display) Height() int {
	return d.height
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (d *Display) InBounds(x, y int) bool {
	return x >= 0 && x < d.width && y >= 0 && y < d.height
}

// ActivateCell activates the cell at (x, y). The optional symbol overrides
// the configured active glyph; any rune is accepted, including the empty
// glyph. Out-of-bounds coordinates are ignored.
func (d *Display) ActivateCell(x, y int, symbol ...rune) {
	if !d.InBounds(x, y) {
		return
	}
	s := d.activeGlyph
	if len(symbol) > 0 {
		s = symbol[0]
	}
	d.cells[y*d.width+x].activate(s)
}

// DeactivateCell resets the cell at (x, y) to the empty glyph.
// Out-of-bounds coordinates are ignored.
func (d *Display) DeactivateCell(x, y int) {
	if !d.InBounds(x, y) {
		return
	}
	d.cells[y*d.width+x].deactivate(d.emptyGlyph)
}

// CellActive reports whether the cell at (x, y) is active.
// Out-of-bounds coordinates report false.
func (d *Display) CellActive(x, y int) bool {
	if !d.InBounds(x, y) {
		return false
	}
	return d.cells[y*d.width+x].Active
}

// CellAt returns a copy of the cell at (x, y) and whether the coordinates
// are in bounds.
func (d *Display) CellAt(x, y int) (Cell, bool) {
	if !d.InBounds(x, y) {
		return Cell{}, false
	}
	return d.cells[y*d.width+x], true
}

// DrawObject places the object with its origin at (x, y). Form cells that
// land out of bounds are dropped; the rest are activated and recorded as the
// object's placement, in form order. Drawing an object that is already placed
// overwrites its placement without clearing the previous cells; use
// MoveObject to relocate.
func (d *Display) DrawObject(o *Object, x, y int) {
	placed := make([]Point, 0, len(o.form))
	for _, fc := range o.form {
		cx, cy := x+fc.DX, y+fc.DY
		if !d.InBounds(cx, cy) {
			continue
		}
		s := fc.Symbol
		if s == 0 {
			s = d.activeGlyph
		}
		d.cells[cy*d.width+cx].activate(s)
		placed = append(placed, Point{X: cx, Y: cy})
	}
	o.placed = placed
}

// RemoveObject deactivates every cell the object occupies and marks it
// unplaced. Returns ErrNotPlaced if the object is not on the display.
func (d *Display) RemoveObject(o *Object) error {
	if o.placed == nil {
		return ErrNotPlaced
	}
	for _, p := range o.placed {
		d.cells[p.Y*d.width+p.X].deactivate(d.emptyGlyph)
	}
	o.placed = nil
	return nil
}

// MoveObject removes the object and redraws it at (x, y).
// Returns ErrNotPlaced if the object is not on the display.
func (d *Display) MoveObject(o *Object, x, y int) error {
	if err := d.RemoveObject(o); err != nil {
		return err
	}
	d.DrawObject(o, x, y)
	return nil
}

// DrawText activates one cell per rune starting at (x, y), advancing by the
// rune's display width so wide runes keep later text aligned. Out-of-bounds
// cells are skipped as usual.
func (d *Display) DrawText(x, y int, text string) {
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			// Combining marks have no cell of their own
			continue
		}
		d.ActivateCell(col, y, r)
		col += w
	}
}

// Clear deactivates every cell. Objects drawn before the clear keep their
// placement records; remove or redraw them as needed.
func (d *Display) Clear() {
	for i := range d.cells {
		d.cells[i].deactivate(d.emptyGlyph)
	}
}

// Render composes the current grid into a frame and writes it to the sink.
// Rows are emitted top to bottom, columns left to right, every cell exactly
// once. Returns the sink's error unmodified.
func (d *Display) Render() error {
	rows := make([]string, d.height)
	line := make([]rune, d.width)
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			line[x] = d.cells[y*d.width+x].Symbol
		}
		rows[y] = string(line)
	}
	return d.sink.WriteFrame(Frame{Width: d.width, Height: d.height, Rows: rows})
}
