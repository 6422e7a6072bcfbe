// Package ansi parses the ANSI escape dialect used by BBS-era art,
// including the common extensions: 256-color and 24-bit SGR, ice color
// mode, font page selection and OSC hyperlinks.
package ansi

import (
	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/command"
	"github.com/hnimtadd/artio/logger"
)

type state int

const (
	stateGround state = iota
	stateEscape
	stateEscapeCharset
	stateCSI
	stateOSC
)

// maxParams bounds a CSI sequence; anything longer is treated as
// malformed and dropped.
const maxParams = 32

// Parser is the ANSI stream parser. State persists across Parse calls so
// sequences may span any chunk boundary. Not safe for concurrent use.
type Parser struct {
	state   state
	params  []int
	acc     int
	accSet  bool
	private byte
	inter   byte
	broken  bool

	osc    []byte
	oscEsc bool

	pending []byte

	log logger.Logger
}

// New creates a parser. A nil logger falls back to the package default.
func New(log logger.Logger) *Parser {
	if log == nil {
		log = logger.DefaultLogger
	}
	return &Parser{log: log}
}

// Parse feeds a chunk of the stream into the parser.
func (p *Parser) Parse(buf []byte, sink command.Sink) {
	for _, c := range buf {
		p.next(c, sink)
	}
}

// Flush drains the pending printable run.
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
	case stateEscape:
		p.escape(c, sink)
	case stateEscapeCharset:
		// Charset designation byte, nothing we track.
		p.state = stateGround
	case stateCSI:
		p.csi(c, sink)
	case stateOSC:
		p.oscByte(c, sink)
	}
}

func (p *Parser) ground(c byte, sink command.Sink) {
	switch c {
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
	case 0x0C:
		p.flushPending(sink)
		sink.Emit(command.ClearScreen{})
	case 0x0D:
		p.flushPending(sink)
		sink.Emit(command.CarriageReturn{})
	case 0x1B:
		p.flushPending(sink)
		p.state = stateEscape
	default:
		// Everything else, control range included, is a CP437 glyph.
		p.pending = append(p.pending, c)
	}
}

func (p *Parser) escape(c byte, sink command.Sink) {
	p.state = stateGround
	switch c {
	case '[':
		p.startCSI()
	case ']':
		p.osc = p.osc[:0]
		p.oscEsc = false
		p.state = stateOSC
	case '(', ')':
		p.state = stateEscapeCharset
	case '7':
		sink.Emit(command.SaveCaret{})
	case '8':
		sink.Emit(command.RestoreCaret{})
	case 'D':
		sink.Emit(command.Index{})
	case 'E':
		sink.Emit(command.CursorNextLine{N: 1})
	case 'H':
		sink.Emit(command.TabSet{})
	case 'M':
		sink.Emit(command.ReverseIndex{})
	case 'c':
		sink.Emit(command.ResetTerminal{})
	default:
		p.log.Warn("unknown escape sequence", "final", string(rune(c)))
	}
}

func (p *Parser) startCSI() {
	p.state = stateCSI
	p.params = p.params[:0]
	p.acc = 0
	p.accSet = false
	p.private = 0
	p.inter = 0
	p.broken = false
}

func (p *Parser) csi(c byte, sink command.Sink) {
	switch {
	case c >= '0' && c <= '9':
		if p.acc < 0xFFFF {
			p.acc = p.acc*10 + int(c-'0')
		}
		p.accSet = true
	case c == ';':
		if len(p.params) <= maxParams {
			p.params = append(p.params, p.acc)
		}
		p.acc = 0
		p.accSet = false
	case c == '?' || c == '=' || c == '<' || c == '>':
		if len(p.params) == 0 && !p.accSet {
			p.private = c
		} else {
			p.broken = true
		}
	case c == ' ':
		p.inter = c
	case c == 0x1B:
		// A new escape aborts the unfinished sequence.
		p.log.Warn("unterminated csi sequence")
		p.state = stateEscape
	case c >= 0x40 && c <= 0x7E:
		p.pushParam()
		if p.broken || len(p.params) > maxParams {
			p.log.Warn("malformed csi sequence", "final", string(rune(c)))
		} else {
			p.dispatchCSI(c, sink)
		}
		p.state = stateGround
	default:
		p.broken = true
	}
}

func (p *Parser) pushParam() {
	if p.accSet || len(p.params) > 0 {
		if len(p.params) <= maxParams {
			p.params = append(p.params, p.acc)
		}
	}
	p.acc = 0
	p.accSet = false
}

// param returns the i-th parameter or def when absent or zero.
func (p *Parser) param(i, def int) int {
	if i >= len(p.params) || p.params[i] == 0 {
		return def
	}
	return p.params[i]
}

// raw returns the i-th parameter or def when absent, keeping explicit
// zeros.
func (p *Parser) raw(i, def int) int {
	if i >= len(p.params) {
		return def
	}
	return p.params[i]
}

func (p *Parser) dispatchCSI(final byte, sink command.Sink) {
	if p.inter == ' ' {
		if final == 'D' {
			sink.Emit(command.SetFontPage{Page: p.raw(1, 0)})
			return
		}
		p.log.Debug("unsupported csi intermediate", "final", string(rune(final)))
		return
	}
	if p.private != 0 {
		switch final {
		case 'h':
			p.setModes(true, sink)
		case 'l':
			p.setModes(false, sink)
		default:
			p.log.Debug("unsupported private csi", "final", string(rune(final)))
		}
		return
	}

	switch final {
	case 'A':
		sink.Emit(command.CursorUp{N: p.param(0, 1)})
	case 'B', 'e':
		sink.Emit(command.CursorDown{N: p.param(0, 1)})
	case 'C', 'a':
		sink.Emit(command.CursorForward{N: p.param(0, 1)})
	case 'D':
		sink.Emit(command.CursorBack{N: p.param(0, 1)})
	case 'E':
		sink.Emit(command.CursorNextLine{N: p.param(0, 1)})
	case 'F':
		sink.Emit(command.CursorPrevLine{N: p.param(0, 1)})
	case 'G', '`':
		sink.Emit(command.CursorColumn{N: p.param(0, 1)})
	case 'd':
		sink.Emit(command.CursorRow{N: p.param(0, 1)})
	case 'H', 'f':
		sink.Emit(command.CursorPosition{
			Row: p.param(0, 1),
			Col: p.param(1, 1),
		})
	case 'J':
		sink.Emit(command.EraseDisplay{Mode: eraseMode(p.raw(0, 0))})
	case 'K':
		sink.Emit(command.EraseLine{Mode: eraseMode(p.raw(0, 0))})
	case 'L':
		sink.Emit(command.InsertLine{N: p.param(0, 1)})
	case 'M':
		sink.Emit(command.DeleteLine{N: p.param(0, 1)})
	case 'P':
		sink.Emit(command.DeleteChar{N: p.param(0, 1)})
	case '@':
		sink.Emit(command.InsertChar{N: p.param(0, 1)})
	case 'X':
		sink.Emit(command.EraseChar{N: p.param(0, 1)})
	case 'S':
		sink.Emit(command.ScrollUp{N: p.param(0, 1)})
	case 'T':
		sink.Emit(command.ScrollDown{N: p.param(0, 1)})
	case 'b':
		sink.Emit(command.RepeatLastChar{N: p.param(0, 1)})
	case 'm':
		p.applySGR(sink)
	case 'n':
		p.log.Debug("device status report ignored")
	case 'r':
		sink.Emit(command.SetScrollRegion{
			Top:    p.raw(0, 0),
			Bottom: p.raw(1, 0),
		})
	case 's':
		// Bare CSI s saves the caret; with parameters it sets the
		// left/right margin band instead.
		if len(p.params) == 0 {
			sink.Emit(command.SaveCaret{})
			return
		}
		sink.Emit(command.SetLeftRightMargin{
			Left:  p.param(0, 1),
			Right: p.raw(1, 0),
		})
	case 'u':
		sink.Emit(command.RestoreCaret{})
	case 't':
		p.rgbColor(sink)
	case 'h', 'l':
		p.log.Debug("ansi mode ignored", "final", string(rune(final)))
	default:
		p.log.Warn("unknown csi final", "final", string(rune(final)))
	}
}

func eraseMode(v int) command.EraseMode {
	switch v {
	case 1:
		return command.EraseToStart
	case 2:
		return command.EraseAll
	default:
		return command.EraseToEnd
	}
}

func (p *Parser) setModes(on bool, sink command.Sink) {
	for i := range p.params {
		var mode command.Mode
		switch p.params[i] {
		case 6:
			mode = command.ModeOrigin
		case 7:
			mode = command.ModeAutoWrap
		case 9:
			mode = command.ModeMouseX10
		case 25:
			mode = command.ModeCursorVisible
		case 33:
			mode = command.ModeIceColors
		case 1000:
			mode = command.ModeMouseNormal
		case 1002:
			mode = command.ModeMouseButton
		case 1003:
			mode = command.ModeMouseAny
		case 1006:
			mode = command.ModeMouseSGR
		default:
			p.log.Debug("unsupported private mode", "mode", p.params[i])
			continue
		}
		sink.Emit(command.SetMode{Mode: mode, On: on})
	}
}

// rgbColor handles the PabloDraw 24-bit extension: CSI {0|1};r;g;b t.
func (p *Parser) rgbColor(sink command.Sink) {
	if len(p.params) != 4 {
		p.log.Debug("window manipulation ignored")
		return
	}
	c := attribute.RGBColor(clamp8(p.params[1]), clamp8(p.params[2]), clamp8(p.params[3]))
	switch p.params[0] {
	case 1:
		sink.Emit(command.SetForeground{Color: c})
	case 0:
		sink.Emit(command.SetBackground{Color: c})
	default:
		p.log.Debug("unknown rgb color target", "target", p.params[0])
	}
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (p *Parser) oscByte(c byte, sink command.Sink) {
	if p.oscEsc {
		p.oscEsc = false
		if c == '\\' {
			p.dispatchOSC(sink)
			p.state = stateGround
			return
		}
		p.osc = append(p.osc, 0x1B)
	}
	switch c {
	case 0x07:
		p.dispatchOSC(sink)
		p.state = stateGround
	case 0x1B:
		p.oscEsc = true
	default:
		p.osc = append(p.osc, c)
	}
}

// dispatchOSC understands OSC 8 hyperlinks; everything else is dropped.
func (p *Parser) dispatchOSC(sink command.Sink) {
	s := string(p.osc)
	p.osc = p.osc[:0]
	if len(s) >= 2 && s[0] == '8' && s[1] == ';' {
		rest := s[2:]
		for i := 0; i < len(rest); i++ {
			if rest[i] == ';' {
				sink.Emit(command.Hyperlink{URL: rest[i+1:]})
				return
			}
		}
		sink.Emit(command.Hyperlink{URL: ""})
		return
	}
	p.log.Debug("osc sequence ignored")
}
