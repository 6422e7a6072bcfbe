package document

import "github.com/hnimtadd/artio/attribute"

// Caret is the insertion point: a position plus the attribute applied to
// everything printed.
type Caret struct {
	Position Point
	Attr     attribute.Attribute
	Visible  bool
}

// NewCaret returns a visible caret at the origin with the default
// attribute.
func NewCaret() Caret {
	return Caret{Attr: attribute.Default(), Visible: true}
}

// Reset puts the caret back to its initial state.
func (c *Caret) Reset() {
	*c = NewCaret()
}

// Home moves the caret to the origin without touching the attribute.
func (c *Caret) Home() {
	c.Position = Point{}
}
