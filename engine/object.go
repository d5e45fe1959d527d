package engine

// FormCell is one cell of an object template: an offset from the object
// origin and the symbol drawn there. A zero Symbol selects the display's
// default active glyph at draw time.
type FormCell struct {
	DX, DY int
	Symbol rune
}

// Object is a multi-cell shape drawn onto a Display as a unit.
//
// The form is immutable after construction. Placement state is managed by the
// Display: a nil placement means the object is not on any grid; a non-nil
// placement holds the coordinates of the form cells that landed in bounds, in
// form order. The two are distinct states: an object drawn entirely out of
// bounds is placed with zero cells, not unplaced.
type Object struct {
	form   []FormCell
	placed []Point
}

// NewObject creates an object from a form template. The template is copied,
// so the caller may reuse or modify the slice afterwards.
func NewObject(form []FormCell) *Object {
	o := &Object{form: make([]FormCell, len(form))}
	copy(o.form, form)
	return o
}

// Form returns a copy of the object's template.
func (o *Object) Form() []FormCell {
	form := make([]FormCell, len(o.form))
	copy(form, o.form)
	return form
}

// Placed reports whether the object is currently drawn on a display.
func (o *Object) Placed() bool {
	return o.placed != nil
}

// Positions returns a copy of the grid coordinates the object occupies,
// in form order. Empty when the object is unplaced or landed fully out of
// bounds.
func (o *Object) Positions() []Point {
	pts := make([]Point, len(o.placed))
	copy(pts, o.placed)
	return pts
}
