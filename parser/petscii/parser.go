// Package petscii parses the Commodore PETSCII dialect: a fixed byte-to-
// glyph mapping plus control bytes for colors, caret movement and reverse
// video.
package petscii

import (
	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/command"
	"github.com/hnimtadd/artio/logger"
)

// Parser is the PETSCII stream parser. Not safe for concurrent use.
type Parser struct {
	// literalNext is set after ESC: the next byte prints as-is instead
	// of acting as a control.
	literalNext bool
	reverse     bool

	pending []byte

	log logger.Logger
}

func New(log logger.Logger) *Parser {
	if log == nil {
		log = logger.DefaultLogger
	}
	return &Parser{log: log}
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

func (p *Parser) next(c byte, sink command.Sink) {
	if p.literalNext {
		p.literalNext = false
		p.printByte(c)
		return
	}

	if idx, ok := colorCodes[c]; ok {
		p.flushPending(sink)
		sink.Emit(command.SetForeground{Color: attribute.PaletteColor(idx)})
		return
	}

	switch c {
	case 0x07:
		p.flushPending(sink)
		sink.Emit(command.Bell{})
	case 0x0D, 0x8D:
		p.flushPending(sink)
		p.reverse = false
		sink.Emit(command.CarriageReturn{})
		sink.Emit(command.LineFeed{})
	case 0x0E:
		p.flushPending(sink)
		sink.Emit(command.SetFontPage{Page: 1})
	case 0x8E:
		p.flushPending(sink)
		sink.Emit(command.SetFontPage{Page: 0})
	case 0x11:
		p.flushPending(sink)
		sink.Emit(command.CursorDown{N: 1})
	case 0x91:
		p.flushPending(sink)
		sink.Emit(command.CursorUp{N: 1})
	case 0x1D:
		p.flushPending(sink)
		sink.Emit(command.CursorForward{N: 1})
	case 0x9D:
		p.flushPending(sink)
		sink.Emit(command.CursorBack{N: 1})
	case 0x12:
		p.reverse = true
	case 0x92:
		p.reverse = false
	case 0x13:
		p.flushPending(sink)
		sink.Emit(command.CursorPosition{Row: 1, Col: 1})
	case 0x93:
		p.flushPending(sink)
		p.reverse = false
		sink.Emit(command.ClearScreen{})
	case 0x14:
		p.flushPending(sink)
		sink.Emit(command.Backspace{})
		sink.Emit(command.DeleteChar{N: 1})
	case 0x1B:
		p.literalNext = true
	default:
		p.printByte(c)
	}
}

func (p *Parser) printByte(c byte) {
	code, ok := ToScreenCode(c)
	if !ok {
		p.log.Debug("unhandled petscii byte", "byte", c)
		return
	}
	if p.reverse {
		code |= 0x80
	}
	p.pending = append(p.pending, code)
}
