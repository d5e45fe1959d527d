package engine

// Point represents a 2D grid coordinate
type Point struct {
	X, Y int
}

// Cell is a single addressable grid position holding a display symbol and an
// active flag. Cells are owned by the Display arena; all mutation goes through
// Display methods, which keep Active consistent with the configured glyphs.
// Accessors such as Display.CellAt return copies.
type Cell struct {
	X, Y   int
	Symbol rune
	Active bool
}

// activate sets the symbol and marks the cell occupied
// Any rune is accepted; idempotent
func (c *Cell) activate(symbol rune) {
	c.Symbol = symbol
	c.Active = true
}

// deactivate resets the cell to the empty glyph; idempotent
func (c *Cell) deactivate(empty rune) {
	c.Symbol = empty
	c.Active = false
}
