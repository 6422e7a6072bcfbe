package encoder

import (
	"fmt"
	"strconv"

	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/document"
)

// sgrState is the shadow of what a terminal replaying the stream would
// currently display. Foreground indexes 8-15 are normalized to bold plus
// the base color; in ice mode bright backgrounds normalize to blink.
type sgrState struct {
	bold, faint, italic, blink        bool
	underline, dblUnderline, overline bool
	conceal, crossed                  bool
	fg, bg                            attribute.Color
}

func defaultSgrState() sgrState {
	return sgrState{
		fg: attribute.PaletteColor(7),
		bg: attribute.PaletteColor(0),
	}
}

type ansiEncoder struct {
	opts     Options
	doc      *document.Document
	out      []byte
	state    sgrState
	fontPage uint8
	lineLen  int
	row      int
}

// EncodeAnsi renders the document as an ANSI stream under the given
// options. Encoding is deterministic: the same document and options always
// produce the same bytes.
func EncodeAnsi(doc *document.Document, opts Options) ([]byte, error) {
	e := &ansiEncoder{opts: opts, doc: doc, state: defaultSgrState()}

	ice := doc.IceMode == document.IceColors
	if ice {
		e.emit("\x1b[?33h")
	}
	switch opts.ScreenPrep {
	case PrepClear:
		e.emit("\x1b[2J")
	case PrepHome:
		e.emit("\x1b[1;1H")
	}

	skip := map[int]bool{}
	for _, y := range opts.SkipLines {
		skip[y] = true
	}

	pendingGoto := false
	needSep := false
	lastRowFull := false
	for y := 0; y < doc.Height(); y++ {
		if skip[y] {
			pendingGoto = true
			continue
		}
		unanchored := needSep && lastRowFull
		if pendingGoto {
			e.emit("\x1b[" + strconv.Itoa(y+1) + ";1H")
			pendingGoto = false
			unanchored = false
		} else if needSep && !lastRowFull {
			e.emit("\r\n")
			e.lineLen = 0
		}
		n, err := e.encodeRow(y, unanchored)
		if err != nil {
			return nil, err
		}
		needSep = true
		lastRowFull = n == doc.Width()
	}

	if ice {
		e.emit("\x1b[?33l")
	}
	return e.out, nil
}

func (e *ansiEncoder) emit(s string) {
	e.out = append(e.out, s...)
	e.lineLen += len(s)
}

// breakLine splits overlong output lines without disturbing playback: the
// caret position is saved across the literal newline.
func (e *ansiEncoder) breakLine() {
	if e.opts.MaxLineLength <= 0 || e.lineLen < e.opts.MaxLineLength {
		return
	}
	// A literal newline on the last row would scroll or grow the target;
	// that line stays long.
	if e.row == e.doc.Height()-1 {
		return
	}
	e.out = append(e.out, "\x1b[s\r\n\x1b[u"...)
	e.lineLen = 0
}

// rowLength returns how many cells of row y to emit. With compression on,
// trailing blanks on the default background are left to the terminal.
func (e *ansiEncoder) rowLength(y int) int {
	w := e.doc.Width()
	if !e.opts.Compress || e.opts.PreserveLineLength {
		return w
	}
	n := w
	for n > 0 {
		c := e.doc.Char(document.Point{X: n - 1, Y: y})
		if !isPlainBlank(c) {
			break
		}
		n--
	}
	return n
}

// isPlainBlank reports whether the cell renders as nothing on a default
// background, so skipping it is invisible.
func isPlainBlank(c document.Cell) bool {
	if c.Ch != 0 && c.Ch != ' ' {
		return false
	}
	if c.Attr.BG != attribute.PaletteColor(0) {
		return false
	}
	marks := attribute.Underline | attribute.DoubleUnderline |
		attribute.CrossedOut | attribute.Overline
	return c.Attr.Flags&marks == 0
}

func (e *ansiEncoder) encodeRow(y int, unanchored bool) (int, error) {
	e.row = y
	n := e.rowLength(y)
	for x := 0; x < n; {
		cell := e.doc.Char(document.Point{X: x, Y: y})

		run := 1
		for x+run < n {
			next := e.doc.Char(document.Point{X: x + run, Y: y})
			if next != cell {
				break
			}
			run++
		}

		// Unstyled blank runs become caret motion; the skipped cells
		// never need attribute changes.
		if e.opts.Compress && e.opts.UseCursorForward &&
			e.opts.Level.SupportsCursorForward() &&
			isPlainBlank(cell) && x+run < n {
			seq := "\x1b[" + strconv.Itoa(run) + "C"
			if len(seq) < run {
				// After a full previous row the caret may still sit on
				// it; relative motion needs an absolute anchor first.
				if x == 0 && unanchored {
					e.emit("\x1b[" + strconv.Itoa(y+1) + ";1H")
				}
				e.emit(seq)
				e.breakLine()
				x += run
				continue
			}
		}

		if err := e.applyAttr(cell.Attr); err != nil {
			return 0, err
		}

		if e.opts.Compress && e.opts.UseRepeat &&
			e.opts.Level.SupportsRepeat() && run > 1 {
			seq := "\x1b[" + strconv.Itoa(run-1) + "b"
			if len(seq) < run-1 {
				e.emitChar(cell.Ch)
				e.emit(seq)
				e.breakLine()
				x += run
				continue
			}
		}

		e.emitChar(cell.Ch)
		e.breakLine()
		x++
	}
	return n, nil
}

func (e *ansiEncoder) emitChar(ch rune) {
	if ch == 0 {
		ch = ' '
	}
	if e.opts.Level.SupportsUTF8() {
		e.emit(string(e.doc.DecodeChar(ch)))
		return
	}
	e.out = append(e.out, byte(ch))
	e.lineLen++
}

// applyAttr emits the SGR (and related) sequences moving the shadow state
// to attr.
func (e *ansiEncoder) applyAttr(attr attribute.Attribute) error {
	if attr.FontPage != e.fontPage {
		if !e.opts.Level.SupportsFontPages() {
			return fmt.Errorf("font page %d: %w", attr.FontPage, ErrFontPageUnsupported)
		}
		e.emit("\x1b[0;" + strconv.Itoa(int(attr.FontPage)) + " D")
		e.fontPage = attr.FontPage
	}

	target, err := e.normalize(attr)
	if err != nil {
		return err
	}
	if target == e.state {
		return nil
	}

	needReset := e.state.bold && !target.bold ||
		e.state.faint && !target.faint ||
		e.state.italic && !target.italic ||
		e.state.blink && !target.blink ||
		e.state.underline && !target.underline ||
		e.state.dblUnderline && !target.dblUnderline ||
		e.state.overline && !target.overline ||
		e.state.conceal && !target.conceal ||
		e.state.crossed && !target.crossed

	var codes []string
	cur := e.state
	if needReset {
		codes = append(codes, "0")
		cur = defaultSgrState()
	}
	add := func(on, was bool, code string) {
		if on && !was {
			codes = append(codes, code)
		}
	}
	add(target.bold, cur.bold, "1")
	add(target.faint, cur.faint, "2")
	add(target.italic, cur.italic, "3")
	add(target.underline, cur.underline, "4")
	add(target.blink, cur.blink, "5")
	add(target.dblUnderline, cur.dblUnderline, "21")
	add(target.conceal, cur.conceal, "8")
	add(target.crossed, cur.crossed, "9")
	add(target.overline, cur.overline, "53")

	var tail []string
	if target.fg != cur.fg {
		c, t, err := e.colorCodes(target.fg, true)
		if err != nil {
			return err
		}
		codes = append(codes, c...)
		tail = append(tail, t...)
	}
	if target.bg != cur.bg {
		c, t, err := e.colorCodes(target.bg, false)
		if err != nil {
			return err
		}
		codes = append(codes, c...)
		tail = append(tail, t...)
	}

	if len(codes) > 0 {
		seq := "\x1b["
		for i, c := range codes {
			if i > 0 {
				seq += ";"
			}
			seq += c
		}
		e.emit(seq + "m")
	}
	for _, t := range tail {
		e.emit(t)
	}
	e.state = target
	return nil
}

// normalize folds an attribute into terminal-visible terms: bright
// foregrounds become bold, bright backgrounds become blink in ice mode.
func (e *ansiEncoder) normalize(attr attribute.Attribute) (sgrState, error) {
	t := sgrState{
		bold:         attr.Has(attribute.Bold),
		faint:        attr.Has(attribute.Faint),
		italic:       attr.Has(attribute.Italic),
		blink:        attr.Has(attribute.Blink),
		underline:    attr.Has(attribute.Underline),
		dblUnderline: attr.Has(attribute.DoubleUnderline),
		overline:     attr.Has(attribute.Overline),
		conceal:      attr.Has(attribute.Conceal),
		crossed:      attr.Has(attribute.CrossedOut),
		fg:           attr.FG,
		bg:           attr.BG,
	}
	if t.fg.Kind == attribute.KindPalette && t.fg.Index >= 8 && t.fg.Index < 16 {
		t.bold = true
		t.fg.Index -= 8
	}
	if t.fg.Kind == attribute.KindPalette && t.fg.Index >= 16 {
		t.fg = rgbOf(e.doc, t.fg)
	}
	if t.bg.Kind == attribute.KindPalette && t.bg.Index >= 16 {
		t.bg = rgbOf(e.doc, t.bg)
	}
	if t.bg.Kind == attribute.KindPalette && t.bg.Index >= 8 && t.bg.Index < 16 {
		// Without ice colors a bright background has no encoding; the
		// bright bit is dropped rather than inventing a blink.
		if e.doc.IceMode == document.IceColors {
			t.blink = true
		}
		t.bg.Index -= 8
	}
	return t, nil
}

// rgbOf widens a palette index past the 16-color range into its RGB value.
func rgbOf(doc *document.Document, c attribute.Color) attribute.Color {
	rgb := doc.Palette.Get(int(c.Index))
	return attribute.RGBColor(rgb.R, rgb.G, rgb.B)
}

// colorCodes returns the SGR parameter strings for a color, plus any
// standalone sequences (the 24-bit CSI t form) emitted after the SGR.
func (e *ansiEncoder) colorCodes(c attribute.Color, fg bool) ([]string, []string, error) {
	switch c.Kind {
	case attribute.KindPalette:
		base := 40
		if fg {
			base = 30
		}
		if c.Index >= 8 {
			return nil, nil, fmt.Errorf("palette index %d: %w", c.Index, Err256ColorUnsupported)
		}
		return []string{strconv.Itoa(base + int(c.Index))}, nil, nil
	case attribute.KindExtended:
		if !e.opts.Level.Supports256Colors() {
			return nil, nil, fmt.Errorf("extended index %d: %w", c.Index, Err256ColorUnsupported)
		}
		intro := "48"
		if fg {
			intro = "38"
		}
		return []string{intro, "5", strconv.Itoa(int(c.Index))}, nil, nil
	default:
		if !e.opts.Level.SupportsTrueColor() {
			return nil, nil, fmt.Errorf("%s: %w", c.RGB, ErrTrueColorUnsupported)
		}
		if e.opts.Level.SupportsUTF8() {
			intro := "48"
			if fg {
				intro = "38"
			}
			return []string{
				intro, "2",
				strconv.Itoa(int(c.RGB.R)),
				strconv.Itoa(int(c.RGB.G)),
				strconv.Itoa(int(c.RGB.B)),
			}, nil, nil
		}
		target := "0"
		if fg {
			target = "1"
		}
		seq := fmt.Sprintf("\x1b[%s;%d;%d;%dt", target, c.RGB.R, c.RGB.G, c.RGB.B)
		return nil, []string{seq}, nil
	}
}
