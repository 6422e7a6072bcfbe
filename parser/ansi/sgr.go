package ansi

import (
	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/command"
)

// applySGR walks the parameter list of a CSI m sequence and emits the
// matching style commands. An empty list means reset.
func (p *Parser) applySGR(sink command.Sink) {
	if len(p.params) == 0 {
		sink.Emit(command.ResetAttributes{})
		return
	}
	for i := 0; i < len(p.params); i++ {
		v := p.params[i]
		switch {
		case v == 0:
			sink.Emit(command.ResetAttributes{})
		case v == 1:
			sink.Emit(command.SetStyle{Flag: attribute.Bold, On: true})
		case v == 2:
			sink.Emit(command.SetStyle{Flag: attribute.Faint, On: true})
		case v == 3:
			sink.Emit(command.SetStyle{Flag: attribute.Italic, On: true})
		case v == 4:
			sink.Emit(command.SetStyle{Flag: attribute.Underline, On: true})
		case v == 5 || v == 6:
			sink.Emit(command.SetStyle{Flag: attribute.Blink, On: true})
		case v == 7:
			sink.Emit(command.SetInverse{On: true})
		case v == 8:
			sink.Emit(command.SetStyle{Flag: attribute.Conceal, On: true})
		case v == 9:
			sink.Emit(command.SetStyle{Flag: attribute.CrossedOut, On: true})
		case v == 21:
			sink.Emit(command.SetStyle{Flag: attribute.DoubleUnderline, On: true})
		case v == 22:
			sink.Emit(command.SetStyle{Flag: attribute.Bold, On: false})
			sink.Emit(command.SetStyle{Flag: attribute.Faint, On: false})
		case v == 23:
			sink.Emit(command.SetStyle{Flag: attribute.Italic, On: false})
		case v == 24:
			sink.Emit(command.SetStyle{Flag: attribute.Underline, On: false})
			sink.Emit(command.SetStyle{Flag: attribute.DoubleUnderline, On: false})
		case v == 25:
			sink.Emit(command.SetStyle{Flag: attribute.Blink, On: false})
		case v == 27:
			sink.Emit(command.SetInverse{On: false})
		case v == 28:
			sink.Emit(command.SetStyle{Flag: attribute.Conceal, On: false})
		case v == 29:
			sink.Emit(command.SetStyle{Flag: attribute.CrossedOut, On: false})
		case v >= 30 && v <= 37:
			sink.Emit(command.SetForeground{Color: attribute.PaletteColor(uint8(v - 30))})
		case v == 38:
			if c, used, ok := p.extendedColor(i); ok {
				sink.Emit(command.SetForeground{Color: c})
				i += used
			} else {
				p.log.Debug("malformed extended foreground")
				return
			}
		case v == 39:
			sink.Emit(command.SetForeground{Color: attribute.PaletteColor(7)})
		case v >= 40 && v <= 47:
			sink.Emit(command.SetBackground{Color: attribute.PaletteColor(uint8(v - 40))})
		case v == 48:
			if c, used, ok := p.extendedColor(i); ok {
				sink.Emit(command.SetBackground{Color: c})
				i += used
			} else {
				p.log.Debug("malformed extended background")
				return
			}
		case v == 49:
			sink.Emit(command.SetBackground{Color: attribute.PaletteColor(0)})
		case v == 53:
			sink.Emit(command.SetStyle{Flag: attribute.Overline, On: true})
		case v == 55:
			sink.Emit(command.SetStyle{Flag: attribute.Overline, On: false})
		case v >= 90 && v <= 97:
			sink.Emit(command.SetForeground{Color: attribute.PaletteColor(uint8(v - 90 + 8))})
		case v >= 100 && v <= 107:
			sink.Emit(command.SetBackground{Color: attribute.PaletteColor(uint8(v - 100 + 8))})
		default:
			p.log.Debug("unsupported sgr attribute", "value", v)
		}
	}
}

// extendedColor decodes the 38/48 sub-forms: ;5;idx and ;2;r;g;b. It
// returns the color, how many parameters were consumed after i, and
// whether the form was well-formed.
func (p *Parser) extendedColor(i int) (attribute.Color, int, bool) {
	if i+1 >= len(p.params) {
		return attribute.Color{}, 0, false
	}
	switch p.params[i+1] {
	case 5:
		if i+2 >= len(p.params) {
			return attribute.Color{}, 0, false
		}
		return attribute.ExtendedColor(clamp8(p.params[i+2])), 2, true
	case 2:
		if i+4 >= len(p.params) {
			return attribute.Color{}, 0, false
		}
		c := attribute.RGBColor(
			clamp8(p.params[i+2]),
			clamp8(p.params[i+3]),
			clamp8(p.params[i+4]),
		)
		return c, 4, true
	}
	return attribute.Color{}, 0, false
}
