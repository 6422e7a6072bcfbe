package viewdata

import (
	"testing"

	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/command"
	"github.com/stretchr/testify/assert"
)

func record(t *testing.T, input []byte) []any {
	t.Helper()
	p := New(nil)
	rec := &command.Recorder{}
	p.Parse(input, rec)
	p.Flush(rec)
	return rec.Events
}

func TestParse(t *testing.T) {
	tcs := []struct {
		name     string
		input    []byte
		expected []any
	}{
		{
			name:  "alpha color acts after its own cell",
			input: []byte{0x1B, 'A', 'X'},
			expected: []any{
				command.PrintEvent{Text: " "},
				command.SetForeground{Color: attribute.PaletteColor(1)},
				command.FillToLineEnd{},
				command.PrintEvent{Text: "X"},
			},
		},
		{
			name:  "graphics color remaps mosaics",
			input: []byte{0x1B, 'Q', 0x21},
			expected: []any{
				command.PrintEvent{Text: " "},
				command.SetForeground{Color: attribute.PaletteColor(1)},
				command.FillToLineEnd{},
				command.PrintEvent{Text: "\x81"},
			},
		},
		{
			name:  "separated mosaics use the upper page",
			input: []byte{0x1B, 'Q', 0x1B, 'Z', 0x21},
			expected: []any{
				command.PrintEvent{Text: " "},
				command.SetForeground{Color: attribute.PaletteColor(1)},
				command.FillToLineEnd{},
				command.PrintEvent{Text: " "},
				command.PrintEvent{Text: "\xc1"},
			},
		},
		{
			name:  "uppercase stays alphanumeric in graphics mode",
			input: []byte{0x1B, 'Q', 'A'},
			expected: []any{
				command.PrintEvent{Text: " "},
				command.SetForeground{Color: attribute.PaletteColor(1)},
				command.FillToLineEnd{},
				command.PrintEvent{Text: "A"},
			},
		},
		{
			name:  "flash acts after its cell, steady before",
			input: []byte{0x1B, 'H', 0x1B, 'I'},
			expected: []any{
				command.PrintEvent{Text: " "},
				command.SetStyle{Flag: attribute.Blink, On: true},
				command.FillToLineEnd{},
				command.SetStyle{Flag: attribute.Blink, On: false},
				command.FillToLineEnd{},
				command.PrintEvent{Text: " "},
			},
		},
		{
			name:  "new background acts before its cell",
			input: []byte{0x1B, ']'},
			expected: []any{
				command.SetBackgroundToForeground{},
				command.FillToLineEnd{},
				command.PrintEvent{Text: " "},
			},
		},
		{
			name:  "black background acts before its cell",
			input: []byte{0x1B, '\\'},
			expected: []any{
				command.SetBackground{Color: attribute.PaletteColor(0)},
				command.FillToLineEnd{},
				command.PrintEvent{Text: " "},
			},
		},
		{
			name:  "line feed resets the row attributes",
			input: []byte{0x1B, 'B', 0x0A},
			expected: []any{
				command.PrintEvent{Text: " "},
				command.SetForeground{Color: attribute.PaletteColor(2)},
				command.FillToLineEnd{},
				command.LineFeed{},
				command.ResetAttributes{},
			},
		},
		{
			name:  "clear resets everything",
			input: []byte{0x0C},
			expected: []any{
				command.ClearScreen{},
				command.ResetAttributes{},
			},
		},
		{
			name:  "home moves without touching row state",
			input: []byte{0x1E},
			expected: []any{
				command.CursorPosition{Row: 1, Col: 1},
			},
		},
		{
			name:  "cursor visibility",
			input: []byte{0x11, 0x14},
			expected: []any{
				command.SetMode{Mode: command.ModeCursorVisible, On: true},
				command.SetMode{Mode: command.ModeCursorVisible, On: false},
			},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, record(t, tc.input))
		})
	}
}

func TestParse_HoldGraphicsKeepsLastMosaic(t *testing.T) {
	// With hold active, the cells mode switches occupy render the last
	// mosaic glyph instead of a space.
	events := record(t, []byte{0x1B, 'Q', 0x21, 0x1B, '^', 0x1B, 'R'})
	assert.Equal(t, []any{
		command.PrintEvent{Text: " "},
		command.SetForeground{Color: attribute.PaletteColor(1)},
		command.FillToLineEnd{},
		command.PrintEvent{Text: "\x81"},
		command.PrintEvent{Text: "\x81"},
		command.PrintEvent{Text: "\x81"},
		command.SetForeground{Color: attribute.PaletteColor(2)},
		command.FillToLineEnd{},
	}, events)
}

func TestParse_HoldEntersGraphics(t *testing.T) {
	// ESC ^ switches to graphics mode by itself; the next byte is already a
	// mosaic.
	events := record(t, []byte{0x1B, '^', 0x21})
	assert.Equal(t, []any{
		command.PrintEvent{Text: " "},
		command.PrintEvent{Text: "\x81"},
	}, events)
}

func TestParse_ContiguousEntersGraphics(t *testing.T) {
	// ESC Y enters graphics mode even without a preceding mosaic color.
	events := record(t, []byte{0x1B, 'Y', 0x21})
	assert.Equal(t, []any{
		command.PrintEvent{Text: " "},
		command.PrintEvent{Text: "\x81"},
	}, events)
}

func TestParse_ConcealIgnoredInGraphicsMode(t *testing.T) {
	events := record(t, []byte{0x1B, 'Q', 0x1B, 'X'})
	assert.Equal(t, []any{
		command.PrintEvent{Text: " "},
		command.SetForeground{Color: attribute.PaletteColor(1)},
		command.FillToLineEnd{},
		command.PrintEvent{Text: " "},
	}, events)
}

func TestParse_ColorCodesRevealConcealedOutput(t *testing.T) {
	events := record(t, []byte{0x1B, 'X', 0x1B, 'A'})
	assert.Equal(t, []any{
		command.SetStyle{Flag: attribute.Conceal, On: true},
		command.FillToLineEnd{},
		command.PrintEvent{Text: " "},
		command.PrintEvent{Text: " "},
		command.SetStyle{Flag: attribute.Conceal, On: false},
		command.SetForeground{Color: attribute.PaletteColor(1)},
		command.FillToLineEnd{},
	}, events)
}
