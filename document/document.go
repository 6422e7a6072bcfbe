// Package document holds the persistent character-grid model shared by the
// dialect parsers, the encoders and the binary container formats.
package document

import (
	"strings"

	"github.com/hnimtadd/artio/color"
	"golang.org/x/text/encoding/charmap"
)

// BufferType selects how glyph codes in cells relate to text.
type BufferType int

const (
	// BufferCP437 stores raw 8-bit glyph codes interpreted through code
	// page 437 (or the document font for the fixed-mapping dialects).
	BufferCP437 BufferType = iota
	// BufferUnicode stores code points directly.
	BufferUnicode
)

// IceMode selects what the classic attribute blink bit means.
type IceMode int

const (
	// IceBlink: bit 7 of a DOS attribute blinks the cell.
	IceBlink IceMode = iota
	// IceColors: bit 7 selects a bright background instead.
	IceColors
)

// Document is a multi-layer character grid with a shared palette and font
// table.
type Document struct {
	BufferType BufferType
	IceMode    IceMode

	Palette *color.Palette
	Layers  []*Layer
	Fonts   map[int]*Font

	// Sauce holds the applied metadata record, if any.
	Sauce *SauceInfo

	width, height int
	activeLayer   int
}

// New creates a document with a single full-size layer and the DOS palette.
func New(width, height int) *Document {
	return &Document{
		Palette: color.DOS(),
		Layers:  []*Layer{NewLayer("Background", width, height)},
		Fonts:   map[int]*Font{},
		width:   width,
		height:  height,
	}
}

func (d *Document) Width() int  { return d.width }
func (d *Document) Height() int { return d.height }

// Resize changes the document bounds and the bounds of every layer that
// matches the old document size.
func (d *Document) Resize(width, height int) {
	for _, l := range d.Layers {
		if l.Width() == d.width && l.Height() == d.height {
			l.Resize(width, height)
		}
	}
	d.width = width
	d.height = height
}

// GrowHeight extends the document downward if y is past the last row.
func (d *Document) GrowHeight(y int) {
	if y >= d.height {
		d.Resize(d.width, y+1)
	}
}

// ActiveLayer returns the layer mutations currently target.
func (d *Document) ActiveLayer() *Layer {
	return d.Layers[d.activeLayer]
}

// SelectLayer switches the mutation target. Out-of-range indexes are
// ignored.
func (d *Document) SelectLayer(idx int) {
	if idx >= 0 && idx < len(d.Layers) {
		d.activeLayer = idx
	}
}

// AddLayer appends a layer on top.
func (d *Document) AddLayer(l *Layer) {
	d.Layers = append(d.Layers, l)
}

// Char returns the composite cell at p, merging visible layers from the
// top down. A layer with alpha lets empty cells fall through.
func (d *Document) Char(p Point) Cell {
	for i := len(d.Layers) - 1; i >= 0; i-- {
		l := d.Layers[i]
		if !l.Visible {
			continue
		}
		c := l.Char(p)
		if !c.IsVisible() {
			continue
		}
		if l.HasAlpha && c.IsEmpty() {
			continue
		}
		return c
	}
	return EmptyCell()
}

// SetChar writes the cell at p on the active layer.
func (d *Document) SetChar(p Point, c Cell) {
	d.ActiveLayer().SetChar(p, c)
}

// DecodeChar turns a stored glyph code into a text rune.
func (d *Document) DecodeChar(ch rune) rune {
	if d.BufferType == BufferCP437 && ch < 256 {
		return charmap.CodePage437.DecodeByte(byte(ch))
	}
	return ch
}

// EncodeRune turns a text rune into a stored glyph code. The second result
// is false when the rune has no representation in the document charset.
func (d *Document) EncodeRune(r rune) (rune, bool) {
	if d.BufferType == BufferCP437 {
		b, ok := charmap.CodePage437.EncodeRune(r)
		return rune(b), ok
	}
	return r, true
}

// String renders the grid as plain text, one line per row, attributes and
// trailing blanks dropped.
func (d *Document) String() string {
	var sb strings.Builder
	for y := 0; y < d.height; y++ {
		line := make([]rune, 0, d.width)
		for x := 0; x < d.width; x++ {
			c := d.Char(Point{X: x, Y: y})
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			line = append(line, d.DecodeChar(ch))
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
