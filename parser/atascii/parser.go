// Package atascii parses the Atari ATASCII dialect. The mapping is fixed:
// a handful of control bytes, an escape that forces the next byte literal,
// and high-bit bytes rendering as inverse-video glyphs.
package atascii

import (
	"github.com/hnimtadd/artio/command"
	"github.com/hnimtadd/artio/logger"
)

// Parser is the ATASCII stream parser. Not safe for concurrent use.
type Parser struct {
	literalNext bool
	pending     []byte
	log         logger.Logger
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
		p.pending = append(p.pending, c)
		return
	}

	switch c {
	case 0x1B:
		p.literalNext = true
	case 0x1C:
		p.flushPending(sink)
		sink.Emit(command.CursorUp{N: 1})
	case 0x1D:
		p.flushPending(sink)
		sink.Emit(command.CursorDown{N: 1})
	case 0x1E:
		p.flushPending(sink)
		sink.Emit(command.CursorBack{N: 1})
	case 0x1F:
		p.flushPending(sink)
		sink.Emit(command.CursorForward{N: 1})
	case 0x7D:
		p.flushPending(sink)
		sink.Emit(command.ClearScreen{})
	case 0x7E:
		// Destructive backspace.
		p.flushPending(sink)
		sink.Emit(command.Backspace{})
		sink.Emit(command.EraseChar{N: 1})
	case 0x7F:
		p.flushPending(sink)
		sink.Emit(command.Tab{})
	case 0x9B:
		// ATASCII end of line.
		p.flushPending(sink)
		sink.Emit(command.CarriageReturn{})
		sink.Emit(command.LineFeed{})
	case 0x9C:
		p.flushPending(sink)
		sink.Emit(command.DeleteLine{N: 1})
	case 0x9D:
		p.flushPending(sink)
		sink.Emit(command.InsertLine{N: 1})
	case 0x9E:
		p.flushPending(sink)
		sink.Emit(command.TabClear{})
	case 0x9F:
		p.flushPending(sink)
		sink.Emit(command.TabSet{})
	case 0xFD:
		p.flushPending(sink)
		sink.Emit(command.Bell{})
	case 0xFE:
		p.flushPending(sink)
		sink.Emit(command.DeleteChar{N: 1})
	case 0xFF:
		p.flushPending(sink)
		sink.Emit(command.InsertChar{N: 1})
	default:
		p.pending = append(p.pending, c)
	}
}

// Controls lists every byte that acts as a control in the stream; the
// encoder escapes glyphs that collide with them.
func Controls() []byte {
	return []byte{
		0x1B, 0x1C, 0x1D, 0x1E, 0x1F,
		0x7D, 0x7E, 0x7F,
		0x9B, 0x9C, 0x9D, 0x9E, 0x9F,
		0xFD, 0xFE, 0xFF,
	}
}
