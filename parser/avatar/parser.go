// Package avatar parses the AVATAR dialect: a compact BBS encoding that
// packs color changes and run-length repeats into ^V and ^Y control
// sequences.
package avatar

import (
	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/command"
	"github.com/hnimtadd/artio/logger"
)

const (
	ctrlCommand = 0x16 // ^V, command introducer
	ctrlRepeat  = 0x19 // ^Y, run-length repeat
	ctrlClear   = 0x0C // ^L, clear screen
)

type state int

const (
	stateGround state = iota
	stateCommand
	stateColor
	stateGotoRow
	stateGotoCol
	stateRepeatChar
	stateRepeatCount
)

// Parser is the AVATAR stream parser. Not safe for concurrent use.
type Parser struct {
	state   state
	gotoRow int
	repeat  byte

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
	switch p.state {
	case stateGround:
		p.ground(c, sink)

	case stateCommand:
		p.state = stateGround
		switch c {
		case 1:
			p.state = stateColor
		case 2:
			sink.Emit(command.SetStyle{Flag: attribute.Blink, On: true})
		case 3:
			sink.Emit(command.CursorUp{N: 1})
		case 4:
			sink.Emit(command.CursorDown{N: 1})
		case 5:
			sink.Emit(command.CursorBack{N: 1})
		case 6:
			sink.Emit(command.CursorForward{N: 1})
		case 7:
			sink.Emit(command.EraseLine{Mode: command.EraseToEnd})
		case 8:
			p.state = stateGotoRow
		default:
			p.log.Warn("unknown avatar command", "command", c)
		}

	case stateColor:
		// Bits 0-3 foreground, 4-6 background. A color change drops
		// blink; it comes back through its own command.
		sink.Emit(command.SetStyle{Flag: attribute.Blink, On: false})
		sink.Emit(command.SetForeground{Color: attribute.PaletteColor(c & 0x0F)})
		sink.Emit(command.SetBackground{Color: attribute.PaletteColor((c >> 4) & 0x07)})
		p.state = stateGround

	case stateGotoRow:
		p.gotoRow = int(c)
		p.state = stateGotoCol

	case stateGotoCol:
		sink.Emit(command.CursorPosition{Row: p.gotoRow, Col: int(c)})
		p.state = stateGround

	case stateRepeatChar:
		p.repeat = c
		p.state = stateRepeatCount

	case stateRepeatCount:
		// A zero count repeats nothing.
		for i := 0; i < int(c); i++ {
			p.pending = append(p.pending, p.repeat)
		}
		p.state = stateGround
	}
}

func (p *Parser) ground(c byte, sink command.Sink) {
	switch c {
	case ctrlCommand:
		p.flushPending(sink)
		p.state = stateCommand
	case ctrlRepeat:
		p.state = stateRepeatChar
	case ctrlClear:
		p.flushPending(sink)
		sink.Emit(command.ClearScreen{})
	case 0x07:
		p.flushPending(sink)
		sink.Emit(command.Bell{})
	case 0x08:
		p.flushPending(sink)
		sink.Emit(command.Backspace{})
	case 0x09:
		p.flushPending(sink)
		sink.Emit(command.Tab{})
	case 0x0A:
		p.flushPending(sink)
		sink.Emit(command.LineFeed{})
	case 0x0D:
		p.flushPending(sink)
		sink.Emit(command.CarriageReturn{})
	default:
		p.pending = append(p.pending, c)
	}
}
