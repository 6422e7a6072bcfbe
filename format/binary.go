package format

import (
	"fmt"

	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/document"
)

// DefaultBinaryWidth is the classic .bin screen width.
const DefaultBinaryWidth = 160

// LoadBinary parses a headerless char/attribute screen dump. width <= 0
// falls back to the classic 160 columns; the sauce record, when present,
// overrides it.
func LoadBinary(data []byte, width int, sauce *document.SauceInfo) (*document.Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("binary: %w", ErrTooShort)
	}
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("binary: %w", ErrOddLength)
	}
	if width <= 0 {
		width = DefaultBinaryWidth
	}
	if sauce != nil && sauce.Width > 0 {
		width = sauce.Width
	}

	cells := len(data) / 2
	height := (cells + width - 1) / width
	doc := document.New(width, height)
	if sauce != nil && sauce.UseIce {
		doc.IceMode = document.IceColors
	}
	ice := doc.IceMode == document.IceColors

	for i := 0; i < cells; i++ {
		pos := document.Point{X: i % width, Y: i / width}
		doc.SetChar(pos, document.Cell{
			Ch:   rune(data[i*2]),
			Attr: attribute.FromDOS(data[i*2+1], ice),
		})
	}

	if sauce != nil {
		doc.ApplySauce(*sauce)
	}
	return doc, nil
}

// SaveBinary serializes the document as fixed-width char/attribute pairs.
// The width travels out of band (SAUCE or convention), so any width is
// accepted.
func SaveBinary(doc *document.Document) ([]byte, error) {
	if doc.Width() == 0 || doc.Height() == 0 {
		return nil, fmt.Errorf("binary: empty document: %w", ErrInvalidSize)
	}
	ice := doc.IceMode == document.IceColors
	out := make([]byte, 0, doc.Width()*doc.Height()*2)
	for y := 0; y < doc.Height(); y++ {
		for x := 0; x < doc.Width(); x++ {
			c := doc.Char(document.Point{X: x, Y: y})
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			out = append(out, byte(ch), c.Attr.AsDOS(ice))
		}
	}
	return out, nil
}
