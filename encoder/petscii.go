package encoder

import (
	"fmt"

	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/document"
	"github.com/hnimtadd/artio/parser/petscii"
)

// EncodePetscii renders the document as a PETSCII stream: color control
// bytes, reverse video toggles and the fixed glyph remapping. Documents
// must stay inside the 16-color palette.
func EncodePetscii(doc *document.Document, opts Options) ([]byte, error) {
	var out []byte
	curFG := attribute.Default().FG
	curRev := false
	curFont := uint8(0)

	for y := 0; y < doc.Height(); y++ {
		n := doc.Width()
		if opts.Compress && !opts.PreserveLineLength {
			for n > 0 && doc.Char(document.Point{X: n - 1, Y: y}).IsEmpty() {
				n--
			}
		}
		for x := 0; x < n; x++ {
			cell := doc.Char(document.Point{X: x, Y: y})

			// Reverse video travels in the glyph byte; there is no
			// encoding for style flags or per-cell backgrounds.
			if cell.Attr.Flags != 0 {
				return nil, fmt.Errorf("style flags %#x: %w",
					cell.Attr.Flags, ErrUnsupportedColor)
			}
			if cell.Attr.BG != attribute.PaletteColor(0) {
				return nil, fmt.Errorf("background %s: %w",
					cell.Attr.BG, ErrUnsupportedColor)
			}

			if cell.Attr.FontPage != curFont {
				switch cell.Attr.FontPage {
				case 0:
					out = append(out, 0x8E)
				case 1:
					out = append(out, 0x0E)
				default:
					return nil, fmt.Errorf("font page %d: %w",
						cell.Attr.FontPage, ErrFontPageUnsupported)
				}
				curFont = cell.Attr.FontPage
			}

			if cell.Attr.FG != curFG {
				if cell.Attr.FG.Kind != attribute.KindPalette {
					return nil, fmt.Errorf("foreground %s: %w",
						cell.Attr.FG, ErrUnsupportedColor)
				}
				ctrl, ok := petscii.ColorControl(cell.Attr.FG.Index)
				if !ok {
					return nil, fmt.Errorf("palette index %d: %w",
						cell.Attr.FG.Index, ErrUnsupportedColor)
				}
				out = append(out, ctrl)
				curFG = cell.Attr.FG
			}

			code := cell.Ch
			if code == 0 {
				code = ' '
			}
			if code > 0xFF {
				return nil, fmt.Errorf("glyph %q: %w", code, ErrUnsupportedChar)
			}
			rev := byte(code)&0x80 != 0
			if rev != curRev {
				if rev {
					out = append(out, 0x12)
				} else {
					out = append(out, 0x92)
				}
				curRev = rev
			}
			out = append(out, petscii.FromScreenCode(byte(code)&0x7F))
		}
		if y < doc.Height()-1 {
			out = append(out, 0x0D)
			curRev = false
		}
	}
	return out, nil
}
