package encoder

import (
	"fmt"

	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/document"
)

// glyph classes of a viewdata cell.
type vdClass int

const (
	vdBlank vdClass = iota
	vdAlpha       // 0x20-0x7F, mode-independent for 0x40-0x5F
	vdAlphaStrict // alpha ranges that collide with mosaics
	vdMosaic
	vdMosaicSep
)

type vdState struct {
	fg, bg    uint8
	flash     bool
	dblHeight bool
	conceal   bool
	graphics  bool
	separated bool
}

func vdDefault() vdState { return vdState{fg: 7} }

// attr returns the attribute a replaying screen holds in this state.
func (s vdState) attr() attribute.Attribute {
	a := attribute.Attribute{
		FG: attribute.PaletteColor(s.fg),
		BG: attribute.PaletteColor(s.bg),
	}
	a = a.With(attribute.Blink, s.flash)
	a = a.With(attribute.DoubleHeight, s.dblHeight)
	return a.With(attribute.Conceal, s.conceal)
}

// EncodeViewdata renders the document as a Viewdata/teletext stream.
// Attribute changes occupy a cell, so every change must coincide with a
// blank; rows that change attributes mid-glyph fail closed. Mode state
// resets at every row, mirroring playback.
func EncodeViewdata(doc *document.Document, opts Options) ([]byte, error) {
	var out []byte
	for y := 0; y < doc.Height(); y++ {
		row, err := encodeViewdataRow(doc, y)
		if err != nil {
			return nil, err
		}
		out = append(out, row...)
		if y < doc.Height()-1 {
			out = append(out, '\r', '\n')
		}
	}
	return out, nil
}

func classify(ch rune) (vdClass, error) {
	switch {
	case ch == 0 || ch == ' ':
		return vdBlank, nil
	case ch >= 0x80 && ch <= 0xBF:
		return vdMosaic, nil
	case ch >= 0xC0 && ch <= 0xFF:
		return vdMosaicSep, nil
	case ch >= 0x40 && ch <= 0x5F:
		return vdAlpha, nil
	case ch >= 0x20 && ch < 0x80:
		return vdAlphaStrict, nil
	}
	return 0, fmt.Errorf("glyph %q: %w", ch, ErrUnsupportedChar)
}

func paletteIndex(c attribute.Color, what string) (uint8, error) {
	if c.Kind != attribute.KindPalette || c.Index > 7 {
		return 0, fmt.Errorf("%s %s: %w", what, c, ErrUnsupportedColor)
	}
	return c.Index, nil
}

func encodeViewdataRow(doc *document.Document, y int) ([]byte, error) {
	w := doc.Width()
	cells := make([]document.Cell, w)
	classes := make([]vdClass, w)
	for x := 0; x < w; x++ {
		cells[x] = doc.Char(document.Point{X: x, Y: y})
		cl, err := classify(cells[x].Ch)
		if err != nil {
			return nil, err
		}
		classes[x] = cl
	}

	// nextGlyph[x] is the index of the first non-blank cell at or after
	// x; blanks that become control cells take their target from it.
	nextGlyph := make([]int, w+1)
	nextGlyph[w] = w
	for x := w - 1; x >= 0; x-- {
		if classes[x] == vdBlank {
			nextGlyph[x] = nextGlyph[x+1]
		} else {
			nextGlyph[x] = x
		}
	}

	// Trailing blanks are dropped whatever their attributes: playback
	// repaints the tail of the row on every attribute switch.
	n := w
	for n > 0 && (cells[n-1].Ch == 0 || cells[n-1].Ch == ' ') {
		n--
	}

	var out []byte
	cur := vdDefault()
	for x := 0; x < n; x++ {
		cell := cells[x]
		if classes[x] != vdBlank {
			b, err := viewdataGlyph(&cur, cell, classes[x])
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			out = append(out, b)
			continue
		}
		j := nextGlyph[x]
		code, isControl, err := blankControl(&cur, cell, cells[j], classes[j])
		if err != nil {
			return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
		}
		if isControl {
			out = append(out, 0x1B, code)
			// Each control consumed one blank cell; the next blank
			// carries the next change, if any.
			continue
		}
		if cur.graphics {
			// A literal space under graphics mode only exists as a
			// control cell; a no-op mode code reproduces it.
			noop := byte('Y')
			if cur.separated {
				noop = 'Z'
			}
			out = append(out, 0x1B, noop)
			continue
		}
		out = append(out, ' ')
	}
	return out, nil
}

// blankControl decides what a blank cell is: a control whose switch acts
// on its own cell (its stored attribute differs from the replay state), a
// control moving the state toward the next glyph, or a literal blank. At
// most one mode code comes out per cell.
func blankControl(cur *vdState, cell, target document.Cell, targetClass vdClass) (byte, bool, error) {
	if cell.Attr != cur.attr() {
		code, err := beforeControl(cur, cell.Attr)
		return code, err == nil, err
	}

	tbg, err := paletteIndex(target.Attr.BG, "background")
	if err != nil {
		return 0, false, err
	}
	if tbg != cur.bg && tbg != 0 && tbg != cur.fg {
		// Route the background through the foreground.
		cur.fg = tbg
		cur.graphics = false
		cur.conceal = false
		return 'A' + tbg - 1, true, nil
	}
	if target.Attr.Has(attribute.Blink) && !cur.flash {
		cur.flash = true
		return 'H', true, nil
	}
	if target.Attr.Has(attribute.DoubleHeight) && !cur.dblHeight {
		cur.dblHeight = true
		return 'M', true, nil
	}

	// Foreground, graphics mode and reveal travel in one code.
	tfg, err := paletteIndex(target.Attr.FG, "foreground")
	if err != nil {
		return 0, false, err
	}
	wantGraphics := cur.graphics
	switch targetClass {
	case vdMosaic, vdMosaicSep:
		wantGraphics = true
	case vdAlphaStrict:
		wantGraphics = false
	}
	reveal := cur.conceal && !target.Attr.Has(attribute.Conceal)
	if tfg != cur.fg || wantGraphics != cur.graphics || reveal {
		if tfg == 0 {
			return 0, false, fmt.Errorf("foreground black: %w", ErrUnsupportedColor)
		}
		cur.fg = tfg
		cur.graphics = wantGraphics
		cur.conceal = false
		if wantGraphics {
			return 'Q' + tfg - 1, true, nil
		}
		return 'A' + tfg - 1, true, nil
	}

	if targetClass == vdMosaic && cur.separated {
		cur.separated = false
		return 'Y', true, nil
	}
	if targetClass == vdMosaicSep && !cur.separated {
		cur.separated = true
		return 'Z', true, nil
	}
	return 0, false, nil
}

// beforeControl matches a control cell that already carries its own
// switch: backgrounds, steady, normal height and conceal apply before the
// cell prints.
func beforeControl(cur *vdState, want attribute.Attribute) (byte, error) {
	wbg, err := paletteIndex(want.BG, "background")
	if err != nil {
		return 0, err
	}
	next := *cur
	var code byte
	switch {
	case wbg == 0 && cur.bg != 0:
		next.bg = 0
		next.conceal = false
		code = '\\'
	case wbg != cur.bg && wbg == cur.fg:
		next.bg = wbg
		code = ']'
	case cur.flash && !want.Has(attribute.Blink):
		next.flash = false
		code = 'I'
	case cur.dblHeight && !want.Has(attribute.DoubleHeight):
		next.dblHeight = false
		code = 'L'
	case !cur.conceal && want.Has(attribute.Conceal) && !cur.graphics:
		next.conceal = true
		code = 'X'
	default:
		return 0, fmt.Errorf("%w", ErrAttributeAlignment)
	}
	if next.attr() != want {
		return 0, fmt.Errorf("%w", ErrAttributeAlignment)
	}
	*cur = next
	return code, nil
}

// viewdataGlyph emits a glyph cell; its attribute and mode must already
// be in place since switches cannot land on glyphs.
func viewdataGlyph(cur *vdState, cell document.Cell, cl vdClass) (byte, error) {
	fg, err := paletteIndex(cell.Attr.FG, "foreground")
	if err != nil {
		return 0, err
	}
	if fg == 0 {
		return 0, fmt.Errorf("foreground black: %w", ErrUnsupportedColor)
	}
	if _, err := paletteIndex(cell.Attr.BG, "background"); err != nil {
		return 0, err
	}
	if cell.Attr != cur.attr() {
		return 0, fmt.Errorf("%w", ErrAttributeAlignment)
	}
	switch cl {
	case vdMosaic:
		if !cur.graphics || cur.separated {
			return 0, fmt.Errorf("contiguous mosaic: %w", ErrAttributeAlignment)
		}
	case vdMosaicSep:
		if !cur.graphics || !cur.separated {
			return 0, fmt.Errorf("separated mosaic: %w", ErrAttributeAlignment)
		}
	case vdAlphaStrict:
		if cur.graphics {
			return 0, fmt.Errorf("alpha glyph: %w", ErrAttributeAlignment)
		}
	}
	return glyphOut(cell.Ch)
}

// glyphOut maps a stored glyph back to its wire byte.
func glyphOut(ch rune) (byte, error) {
	if ch == 0 {
		ch = ' '
	}
	switch {
	case ch == ' ':
		return ' ', nil
	case ch >= 0x80 && ch <= 0x9F:
		return byte(ch) - 0x60, nil
	case ch >= 0xA0 && ch <= 0xBF:
		return byte(ch) - 0x40, nil
	case ch >= 0xC0 && ch <= 0xDF:
		return byte(ch) - 0xA0, nil
	case ch >= 0xE0 && ch <= 0xFF:
		return byte(ch) - 0x80, nil
	case ch >= 0x20 && ch < 0x80:
		return byte(ch), nil
	}
	return 0, fmt.Errorf("glyph %q: %w", ch, ErrUnsupportedChar)
}
