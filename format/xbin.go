package format

import (
	"encoding/binary"
	"fmt"

	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/color"
	"github.com/hnimtadd/artio/document"
)

var xbinMagic = []byte("XBIN\x1a")

const (
	xbinHeaderLen = 11

	xbinFlagPalette  = 1 << 0
	xbinFlagFont     = 1 << 1
	xbinFlagCompress = 1 << 2
	xbinFlagNonBlink = 1 << 3
	xbinFlag512Chars = 1 << 4

	xbinMaxWidth      = 4096
	xbinMaxFontHeight = 32

	// RLE block kinds, stored in the top two bits of the counter byte.
	xbinRunNone = 0x00
	xbinRunChar = 0x40
	xbinRunAttr = 0x80
	xbinRunFull = 0xC0
)

// XBinOptions controls saving.
type XBinOptions struct {
	Compress bool
}

// LoadXBin parses an XBin buffer. A non-nil sauce record is applied after
// the header-driven setup.
func LoadXBin(data []byte, sauce *document.SauceInfo) (*document.Document, error) {
	if len(data) < len(xbinMagic) {
		return nil, fmt.Errorf("xbin: %w", ErrTooShort)
	}
	for i, b := range xbinMagic {
		if data[i] != b {
			return nil, fmt.Errorf("xbin: %w", ErrBadMagic)
		}
	}
	if len(data) < xbinHeaderLen {
		return nil, fmt.Errorf("xbin header: %w", ErrTooShort)
	}
	width := int(binary.LittleEndian.Uint16(data[5:]))
	height := int(binary.LittleEndian.Uint16(data[7:]))
	fontHeight := int(data[9])
	flags := data[10]

	if width == 0 || width > xbinMaxWidth {
		return nil, fmt.Errorf("xbin width %d: %w", width, ErrInvalidSize)
	}
	if fontHeight == 0 {
		fontHeight = 16
	}
	if fontHeight > xbinMaxFontHeight {
		return nil, fmt.Errorf("xbin font height %d: %w", fontHeight, ErrUnsupportedFont)
	}

	doc := document.New(width, height)
	if flags&xbinFlagNonBlink != 0 {
		doc.IceMode = document.IceColors
	}

	o := xbinHeaderLen
	if flags&xbinFlagPalette != 0 {
		if len(data) < o+48 {
			return nil, fmt.Errorf("xbin palette: %w", ErrTooShort)
		}
		doc.Palette = color.FromDAC(data[o : o+48])
		o += 48
	}
	if flags&xbinFlagFont != 0 {
		glyphs := 256
		if flags&xbinFlag512Chars != 0 {
			glyphs = 512
		}
		size := glyphs * fontHeight
		if len(data) < o+size {
			return nil, fmt.Errorf("xbin font: %w", ErrTooShort)
		}
		doc.Fonts[0] = &document.Font{
			Width:  8,
			Height: fontHeight,
			Data:   append([]byte(nil), data[o:o+size]...),
		}
		o += size
	}

	var pairs []byte
	var err error
	if flags&xbinFlagCompress != 0 {
		pairs, err = xbinDecompress(data[o:], width*height)
	} else {
		if len(data) < o+width*height*2 {
			err = fmt.Errorf("xbin data: %w", ErrTooShort)
		} else {
			pairs = data[o : o+width*height*2]
		}
	}
	if err != nil {
		return nil, err
	}

	ice := doc.IceMode == document.IceColors
	for i := 0; i+1 < len(pairs) && i/2 < width*height; i += 2 {
		pos := document.Point{X: (i / 2) % width, Y: (i / 2) / width}
		doc.SetChar(pos, document.Cell{
			Ch:   rune(pairs[i]),
			Attr: attribute.FromDOS(pairs[i+1], ice),
		})
	}

	if sauce != nil {
		doc.ApplySauce(*sauce)
	}
	return doc, nil
}

// xbinDecompress expands the RLE cell stream into char/attr pairs.
func xbinDecompress(data []byte, cells int) ([]byte, error) {
	out := make([]byte, 0, cells*2)
	i := 0
	for len(out) < cells*2 && i < len(data) {
		counter := data[i]
		i++
		kind := counter & 0xC0
		run := int(counter&0x3F) + 1
		switch kind {
		case xbinRunNone:
			if i+run*2 > len(data) {
				return nil, fmt.Errorf("xbin run: %w", ErrTooShort)
			}
			out = append(out, data[i:i+run*2]...)
			i += run * 2
		case xbinRunChar:
			if i >= len(data) {
				return nil, fmt.Errorf("xbin run: %w", ErrTooShort)
			}
			ch := data[i]
			i++
			for _i := 0; _i < run; _i++ {
				if i >= len(data) {
					return nil, fmt.Errorf("xbin run: %w", ErrTooShort)
				}
				out = append(out, ch, data[i])
				i++
			}
		case xbinRunAttr:
			if i >= len(data) {
				return nil, fmt.Errorf("xbin run: %w", ErrTooShort)
			}
			attr := data[i]
			i++
			for _i := 0; _i < run; _i++ {
				if i >= len(data) {
					return nil, fmt.Errorf("xbin run: %w", ErrTooShort)
				}
				out = append(out, data[i], attr)
				i++
			}
		case xbinRunFull:
			if i+1 >= len(data) {
				return nil, fmt.Errorf("xbin run: %w", ErrTooShort)
			}
			ch, attr := data[i], data[i+1]
			i += 2
			for _i := 0; _i < run; _i++ {
				out = append(out, ch, attr)
			}
		}
	}
	if len(out) < cells*2 {
		return nil, fmt.Errorf("xbin data: %w", ErrTooShort)
	}
	return out[:cells*2], nil
}

// SaveXBin serializes the document.
func SaveXBin(doc *document.Document, opts XBinOptions) ([]byte, error) {
	width, height := doc.Width(), doc.Height()
	if width == 0 || width > xbinMaxWidth {
		return nil, fmt.Errorf("xbin width %d: %w", width, ErrInvalidSize)
	}

	font := doc.Fonts[0]
	if font != nil {
		if font.Width != 8 {
			return nil, fmt.Errorf("xbin font width %d: %w", font.Width, ErrUnsupportedFont)
		}
		if font.Height > xbinMaxFontHeight {
			return nil, fmt.Errorf("xbin font height %d: %w", font.Height, ErrUnsupportedFont)
		}
	}
	if len(doc.Fonts) > 2 {
		return nil, fmt.Errorf("xbin fonts: %d pages: %w", len(doc.Fonts), ErrUnsupportedFont)
	}

	fontHeight := 16
	flags := byte(0)
	if !doc.Palette.IsDefault() {
		flags |= xbinFlagPalette
	}
	if font != nil && len(font.Data) > 0 {
		flags |= xbinFlagFont
		fontHeight = font.Height
		if font.GlyphCount() > 256 {
			flags |= xbinFlag512Chars
		}
	}
	if opts.Compress {
		flags |= xbinFlagCompress
	}
	if doc.IceMode == document.IceColors {
		flags |= xbinFlagNonBlink
	}

	out := append([]byte(nil), xbinMagic...)
	out = binary.LittleEndian.AppendUint16(out, uint16(width))
	out = binary.LittleEndian.AppendUint16(out, uint16(height))
	out = append(out, byte(fontHeight), flags)

	if flags&xbinFlagPalette != 0 {
		out = append(out, doc.Palette.AsDAC(16)...)
	}
	if flags&xbinFlagFont != 0 {
		out = append(out, font.Data...)
	}

	ice := doc.IceMode == document.IceColors
	pairs := make([]byte, 0, width*height*2)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := doc.Char(document.Point{X: x, Y: y})
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			pairs = append(pairs, byte(ch), c.Attr.AsDOS(ice))
		}
	}

	if opts.Compress {
		out = append(out, xbinCompress(pairs)...)
	} else {
		out = append(out, pairs...)
	}
	return out, nil
}

// xbinCompress encodes char/attr pairs with a greedy block chooser: full
// runs first, then char or attribute runs, raw otherwise.
func xbinCompress(pairs []byte) []byte {
	cells := len(pairs) / 2
	cellAt := func(i int) (byte, byte) { return pairs[i*2], pairs[i*2+1] }

	var out []byte
	for i := 0; i < cells; {
		ch, attr := cellAt(i)
		full, charRun, attrRun := 1, 1, 1
		for j := i + 1; j < cells && j-i < 64; j++ {
			c, a := cellAt(j)
			if c == ch && a == attr && full == j-i {
				full++
			}
			if c == ch && charRun == j-i {
				charRun++
			}
			if a == attr && attrRun == j-i {
				attrRun++
			}
		}
		switch {
		case full >= 2:
			out = append(out, xbinRunFull|byte(full-1), ch, attr)
			i += full
		case charRun >= 3:
			out = append(out, xbinRunChar|byte(charRun-1), ch)
			for j := i; j < i+charRun; j++ {
				_, a := cellAt(j)
				out = append(out, a)
			}
			i += charRun
		case attrRun >= 3:
			out = append(out, xbinRunAttr|byte(attrRun-1), attr)
			for j := i; j < i+attrRun; j++ {
				c, _ := cellAt(j)
				out = append(out, c)
			}
			i += attrRun
		default:
			// Collect raw cells until the next compressible run.
			run := 0
			for i+run < cells && run < 64 {
				if run > 0 && i+run+1 < cells {
					c1, a1 := cellAt(i + run)
					c2, a2 := cellAt(i + run + 1)
					if c1 == c2 && a1 == a2 {
						break
					}
				}
				run++
			}
			out = append(out, xbinRunNone|byte(run-1))
			out = append(out, pairs[i*2:(i+run)*2]...)
			i += run
		}
	}
	return out
}
