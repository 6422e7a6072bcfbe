package format

import (
	"encoding/binary"
	"fmt"

	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/color"
	"github.com/hnimtadd/artio/document"
)

var tundraMagic = []byte{24, 'T', 'U', 'N', 'D', 'R', 'A', '2', '4'}

const (
	tundraPosition = 1
	tundraFG       = 2
	tundraBG       = 4
)

// DefaultTundraWidth is assumed when no SAUCE record says otherwise.
const DefaultTundraWidth = 80

// LoadTundra parses a TundraDraw buffer: a position-addressed stream of
// 24-bit colored cells. The palette is rebuilt from the colors actually
// used.
func LoadTundra(data []byte, sauce *document.SauceInfo) (*document.Document, error) {
	if len(data) < len(tundraMagic) {
		return nil, fmt.Errorf("tundra: %w", ErrTooShort)
	}
	for i, b := range tundraMagic {
		if data[i] != b {
			return nil, fmt.Errorf("tundra: %w", ErrBadMagic)
		}
	}

	width := DefaultTundraWidth
	if sauce != nil && sauce.Width > 0 {
		width = sauce.Width
	}

	doc := document.New(width, 1)
	doc.IceMode = document.IceColors
	doc.Palette.Clear()
	doc.Palette.Insert(color.RGB{}) // index 0 stays black

	attr := attribute.Default()
	pos := document.Point{}

	readColor := func(o int) (attribute.Color, int, error) {
		// Four bytes per color, the first unused.
		if o+4 > len(data) {
			return attribute.Color{}, 0, fmt.Errorf("tundra color: %w", ErrTooShort)
		}
		rgb := color.RGB{R: data[o+1], G: data[o+2], B: data[o+3]}
		idx := doc.Palette.Insert(rgb)
		if idx > 0xFF {
			return attribute.RGBColor(rgb.R, rgb.G, rgb.B), o + 4, nil
		}
		return attribute.PaletteColor(uint8(idx)), o + 4, nil
	}

	putChar := func(ch byte) {
		doc.GrowHeight(pos.Y)
		doc.SetChar(pos, document.Cell{Ch: rune(ch), Attr: attr})
		pos.X++
		if pos.X >= width {
			pos.X = 0
			pos.Y++
		}
	}

	o := len(tundraMagic)
	for o < len(data) {
		cmd := data[o]
		switch {
		case cmd == tundraPosition:
			if o+9 > len(data) {
				return nil, fmt.Errorf("tundra position: %w", ErrTooShort)
			}
			pos.Y = int(int32(binary.BigEndian.Uint32(data[o+1:])))
			pos.X = int(int32(binary.BigEndian.Uint32(data[o+5:])))
			o += 9

		case cmd == tundraFG || cmd == tundraBG || cmd == tundraFG|tundraBG:
			if o+2 > len(data) {
				return nil, fmt.Errorf("tundra cell: %w", ErrTooShort)
			}
			ch := data[o+1]
			o += 2
			var err error
			if cmd&tundraFG != 0 {
				attr.FG, o, err = readColor(o)
				if err != nil {
					return nil, err
				}
			}
			if cmd&tundraBG != 0 {
				attr.BG, o, err = readColor(o)
				if err != nil {
					return nil, err
				}
			}
			putChar(ch)

		default:
			putChar(cmd)
			o++
		}
	}

	if sauce != nil {
		doc.ApplySauce(*sauce)
	}
	return doc, nil
}

// SaveTundra serializes the document. Glyph codes that collide with the
// command bytes ride on a redundant color command.
func SaveTundra(doc *document.Document) ([]byte, error) {
	out := append([]byte(nil), tundraMagic...)

	var curFG, curBG color.RGB
	first := true
	expected := document.Point{}

	for y := 0; y < doc.Height(); y++ {
		n := doc.Width()
		for n > 0 && doc.Char(document.Point{X: n - 1, Y: y}).IsEmpty() {
			n--
		}
		for x := 0; x < n; x++ {
			pos := document.Point{X: x, Y: y}
			if pos != expected {
				out = append(out, tundraPosition)
				out = binary.BigEndian.AppendUint32(out, uint32(int32(pos.Y)))
				out = binary.BigEndian.AppendUint32(out, uint32(int32(pos.X)))
			}

			cell := doc.Char(pos)
			ch := cell.Ch
			if ch == 0 {
				ch = ' '
			}
			if ch > 0xFF {
				return nil, fmt.Errorf("glyph %q: %w", ch, ErrInvalidSize)
			}
			fg := cell.Attr.FG.Resolve(doc.Palette)
			bg := cell.Attr.BG.Resolve(doc.Palette)

			cmd := byte(0)
			if first || fg != curFG {
				cmd |= tundraFG
			}
			if first || bg != curBG {
				cmd |= tundraBG
			}
			if cmd == 0 && ch <= 6 {
				// Escape a colliding glyph with a no-op color change.
				cmd = tundraFG
			}

			if cmd != 0 {
				out = append(out, cmd, byte(ch))
				if cmd&tundraFG != 0 {
					out = append(out, 0, fg.R, fg.G, fg.B)
				}
				if cmd&tundraBG != 0 {
					out = append(out, 0, bg.R, bg.G, bg.B)
				}
				curFG, curBG = fg, bg
				first = false
			} else {
				out = append(out, byte(ch))
			}

			expected = document.Point{X: x + 1, Y: y}
			if expected.X >= doc.Width() {
				expected = document.Point{X: 0, Y: y + 1}
			}
		}
	}
	return out, nil
}
