package encoder

import (
	"fmt"

	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/document"
)

const (
	avtCommand = 0x16
	avtRepeat  = 0x19
)

// avatarControls are bytes the AVATAR stream treats as controls; glyphs
// with these values are emitted through a length-1 repeat instead.
func avatarControl(b byte) bool {
	switch b {
	case 0x07, 0x08, 0x09, 0x0A, 0x0C, 0x0D, avtCommand, avtRepeat:
		return true
	}
	return false
}

// EncodeAvatar renders the document as an AVATAR stream. Only the 16-color
// DOS attribute space is representable; anything richer fails closed.
func EncodeAvatar(doc *document.Document, opts Options) ([]byte, error) {
	var out []byte
	cur := attribute.Default()
	curBlink := false

	for y := 0; y < doc.Height(); y++ {
		n := doc.Width()
		if opts.Compress && !opts.PreserveLineLength {
			for n > 0 && doc.Char(document.Point{X: n - 1, Y: y}).IsEmpty() {
				n--
			}
		}
		for x := 0; x < n; {
			cell := doc.Char(document.Point{X: x, Y: y})

			// Every emitted cell must fit the 16-color space, matching
			// shadow state included.
			b, err := avatarColor(cell.Attr)
			if err != nil {
				return nil, err
			}
			if b != colorByte(cur) {
				out = append(out, avtCommand, 1, b)
				cur = cell.Attr
				curBlink = false
			}
			if blink := cell.Attr.Has(attribute.Blink); blink != curBlink {
				if !blink {
					// Blink only switches off through a color
					// change; force one.
					out = append(out, avtCommand, 1, b)
				} else {
					out = append(out, avtCommand, 2)
				}
				curBlink = blink
			}

			ch := glyphByte(cell.Ch)
			run := 1
			for x+run < n && run < 255 {
				if doc.Char(document.Point{X: x + run, Y: y}) != cell {
					break
				}
				run++
			}
			switch {
			case opts.Compress && run >= 4:
				out = append(out, avtRepeat, ch, byte(run))
				x += run
			case avatarControl(ch):
				out = append(out, avtRepeat, ch, 1)
				x++
			default:
				out = append(out, ch)
				x++
			}
		}
		if y < doc.Height()-1 {
			out = append(out, '\r', '\n')
		}
	}
	return out, nil
}

func glyphByte(ch rune) byte {
	if ch == 0 {
		return ' '
	}
	return byte(ch)
}

// colorByte folds an attribute into its 7-bit AVATAR color, ignoring
// blink.
func colorByte(a attribute.Attribute) byte {
	return a.FG.Index&0x0F | (a.BG.Index&0x07)<<4
}

func avatarColor(a attribute.Attribute) (byte, error) {
	if a.Flags&^attribute.Blink != 0 {
		return 0, fmt.Errorf("style flags %#x: %w", a.Flags, ErrUnsupportedColor)
	}
	if a.FG.Kind != attribute.KindPalette || a.FG.Index > 15 {
		return 0, fmt.Errorf("foreground %s: %w", a.FG, ErrUnsupportedColor)
	}
	if a.BG.Kind != attribute.KindPalette || a.BG.Index > 7 {
		return 0, fmt.Errorf("background %s: %w", a.BG, ErrUnsupportedColor)
	}
	return colorByte(a), nil
}
