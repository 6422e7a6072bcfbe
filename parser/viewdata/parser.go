// Package viewdata parses the Viewdata/teletext dialect: ESC plus a mode
// byte switches colors, flash, height and mosaic graphics, every mode
// switch occupies a grid cell, and mode state resets at each new row.
package viewdata

import (
	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/command"
	"github.com/hnimtadd/artio/logger"
)

// Mosaic glyph pages. Contiguous mosaics start at 0x80, separated mosaics
// at 0xC0.
const (
	MosaicBase          = 0x80
	MosaicSeparatedBase = 0xC0
)

// Parser is the Viewdata stream parser. Not safe for concurrent use.
type Parser struct {
	gotEsc    bool
	graphics  bool
	separated bool
	hold      bool
	conceal   bool
	heldGlyph byte

	pending []byte

	log logger.Logger
}

func New(log logger.Logger) *Parser {
	if log == nil {
		log = logger.DefaultLogger
	}
	return &Parser{heldGlyph: ' ', log: log}
}

func (p *Parser) Parse(buf []byte, sink command.Sink) {
	for _, c := range buf {
		p.next(c, sink)
	}
}

func (p *Parser) Flush(sink command.Sink) {
	p.flushPending(sink)
}

func (p *Parser) flushPending(sink command.Sink) {
	if len(p.pending) > 0 {
		sink.Print(p.pending)
		p.pending = nil
	}
}

// resetRowState clears the per-row attributes. Viewdata attributes never
// survive a row change.
func (p *Parser) resetRowState(sink command.Sink) {
	p.gotEsc = false
	p.graphics = false
	p.separated = false
	p.hold = false
	p.conceal = false
	p.heldGlyph = ' '
	sink.Emit(command.ResetAttributes{})
}

func (p *Parser) next(c byte, sink command.Sink) {
	if p.gotEsc {
		p.gotEsc = false
		p.escape(c, sink)
		return
	}

	switch c {
	case 0x08:
		p.flushPending(sink)
		sink.Emit(command.CursorBack{N: 1})
	case 0x09:
		p.flushPending(sink)
		sink.Emit(command.CursorForward{N: 1})
	case 0x0A:
		p.flushPending(sink)
		sink.Emit(command.LineFeed{})
		p.resetRowState(sink)
	case 0x0B:
		p.flushPending(sink)
		sink.Emit(command.CursorUp{N: 1})
	case 0x0C:
		p.flushPending(sink)
		sink.Emit(command.ClearScreen{})
		p.resetRowState(sink)
	case 0x0D:
		p.flushPending(sink)
		sink.Emit(command.CarriageReturn{})
	case 0x11:
		p.flushPending(sink)
		sink.Emit(command.SetMode{Mode: command.ModeCursorVisible, On: true})
	case 0x14:
		p.flushPending(sink)
		sink.Emit(command.SetMode{Mode: command.ModeCursorVisible, On: false})
	case 0x1E:
		p.flushPending(sink)
		sink.Emit(command.CursorPosition{Row: 1, Col: 1})
	case 0x1B:
		p.gotEsc = true
	default:
		if c < 0x20 {
			p.log.Debug("unhandled viewdata control", "byte", c)
			return
		}
		p.printByte(c)
	}
}

// escape handles the mode byte after ESC. Every mode byte occupies a
// cell: backgrounds, steady, normal height and conceal act before that
// cell prints; colors, flash and double height act after it, so the
// control cell itself carries the previous attribute. Attribute switches
// repaint matching cells to the end of the row.
func (p *Parser) escape(c byte, sink command.Sink) {
	p.flushPending(sink)

	switch c {
	case '\\': // black background
		if p.conceal {
			p.conceal = false
			sink.Emit(command.SetStyle{Flag: attribute.Conceal, On: false})
		}
		sink.Emit(command.SetBackground{Color: attribute.PaletteColor(0)})
		sink.Emit(command.FillToLineEnd{})
	case ']': // new background
		sink.Emit(command.SetBackgroundToForeground{})
		sink.Emit(command.FillToLineEnd{})
	case 'I': // steady
		sink.Emit(command.SetStyle{Flag: attribute.Blink, On: false})
		sink.Emit(command.FillToLineEnd{})
	case 'L': // normal height
		sink.Emit(command.SetStyle{Flag: attribute.DoubleHeight, On: false})
		sink.Emit(command.FillToLineEnd{})
	case 'X': // conceal, no effect in graphics mode
		if !p.graphics {
			p.conceal = true
			sink.Emit(command.SetStyle{Flag: attribute.Conceal, On: true})
			sink.Emit(command.FillToLineEnd{})
		}
	case 'Y': // contiguous mosaics
		p.separated = false
		p.graphics = true
	case 'Z': // separated mosaics
		p.separated = true
	case '^': // hold graphics
		p.hold = true
		p.graphics = true
	}

	if !p.hold {
		p.heldGlyph = ' '
	}
	glyph := byte(' ')
	if p.hold {
		glyph = p.heldGlyph
	}
	sink.Print([]byte{glyph})

	switch {
	case c >= 'A' && c <= 'G': // alpha colors 1-7
		p.graphics = false
		p.heldGlyph = ' '
		p.setForeground(sink, c-'A'+1)
	case c >= 'Q' && c <= 'W': // mosaic colors 1-7
		if !p.graphics {
			p.graphics = true
			p.heldGlyph = ' '
		}
		p.setForeground(sink, c-'Q'+1)
	case c == 'H': // flash
		sink.Emit(command.SetStyle{Flag: attribute.Blink, On: true})
		sink.Emit(command.FillToLineEnd{})
	case c == 'M': // double height
		sink.Emit(command.SetStyle{Flag: attribute.DoubleHeight, On: true})
		sink.Emit(command.FillToLineEnd{})
	case c == '_': // release graphics
		p.hold = false
	}
}

// setForeground emits a color switch; color codes also reveal concealed
// output.
func (p *Parser) setForeground(sink command.Sink, idx byte) {
	if p.conceal {
		p.conceal = false
		sink.Emit(command.SetStyle{Flag: attribute.Conceal, On: false})
	}
	sink.Emit(command.SetForeground{Color: attribute.PaletteColor(idx)})
	sink.Emit(command.FillToLineEnd{})
}

func (p *Parser) printByte(c byte) {
	if !p.hold {
		p.heldGlyph = ' '
	}
	g := c
	if p.graphics {
		if m, ok := Mosaic(c, p.separated); ok {
			g = m
		}
		p.heldGlyph = g
	}
	p.pending = append(p.pending, g)
}

// Mosaic remaps a printable byte into the mosaic glyph pages. Bytes in the
// 0x40-0x5F range stay alphanumeric even in graphics mode.
func Mosaic(c byte, separated bool) (byte, bool) {
	base := byte(MosaicBase)
	if separated {
		base = MosaicSeparatedBase
	}
	switch {
	case c >= 0x20 && c <= 0x3F:
		return c - 0x20 + base, true
	case c >= 0x60 && c <= 0x7F:
		return c - 0x40 + base, true
	}
	return 0, false
}
