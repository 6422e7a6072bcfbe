package encoder

import (
	"fmt"

	"github.com/hnimtadd/artio/document"
	"github.com/hnimtadd/artio/parser/atascii"
)

var atasciiControls = func() map[byte]bool {
	m := map[byte]bool{}
	for _, b := range atascii.Controls() {
		m[b] = true
	}
	return m
}()

// EncodeAtascii renders the document as an ATASCII stream. The dialect has
// no colors at all: any styled cell fails closed. Inverse video glyphs
// carry their high bit in the glyph code itself.
func EncodeAtascii(doc *document.Document, opts Options) ([]byte, error) {
	var out []byte
	for y := 0; y < doc.Height(); y++ {
		n := doc.Width()
		if opts.Compress && !opts.PreserveLineLength {
			for n > 0 && doc.Char(document.Point{X: n - 1, Y: y}).IsEmpty() {
				n--
			}
		}
		for x := 0; x < n; x++ {
			cell := doc.Char(document.Point{X: x, Y: y})
			if !cell.Attr.IsDefault() {
				return nil, fmt.Errorf("cell %d,%d: %w", x, y, ErrUnsupportedColor)
			}
			ch := cell.Ch
			if ch == 0 {
				ch = ' '
			}
			if ch > 0xFF {
				return nil, fmt.Errorf("glyph %q: %w", ch, ErrUnsupportedChar)
			}
			b := byte(ch)
			if atasciiControls[b] {
				out = append(out, 0x1B, b)
			} else {
				out = append(out, b)
			}
		}
		if y < doc.Height()-1 {
			out = append(out, 0x9B)
		}
	}
	return out, nil
}
