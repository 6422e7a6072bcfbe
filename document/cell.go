package document

import "github.com/hnimtadd/artio/attribute"

// Point is a 0-based grid position.
type Point struct {
	X, Y int
}

// Cell is one grid position: a glyph code and its attribute. For CP437 and
// the fixed-mapping dialects Ch holds the raw glyph byte; Unicode documents
// hold code points.
type Cell struct {
	Ch   rune
	Attr attribute.Attribute
}

// EmptyCell is a space with the default attribute.
func EmptyCell() Cell {
	return Cell{Ch: ' ', Attr: attribute.Default()}
}

// InvisibleCell is the filler returned for reads outside a layer. It never
// renders and never serializes.
func InvisibleCell() Cell {
	a := attribute.Default()
	a.Flags |= attribute.Invisible
	return Cell{Ch: ' ', Attr: a}
}

// IsEmpty reports whether the cell is a blank with the default attribute.
func (c Cell) IsEmpty() bool {
	return (c.Ch == 0 || c.Ch == ' ') && c.Attr.IsDefault()
}

// IsVisible reports whether the cell carries real content.
func (c Cell) IsVisible() bool {
	return !c.Attr.Has(attribute.Invisible)
}
