package ansi

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
		input    string
		expected []any
	}{
		{
			name:  "plain text batches into one print",
			input: "Hello",
			expected: []any{
				command.PrintEvent{Text: "Hello"},
			},
		},
		{
			name:  "control byte splits the batch",
			input: "AB\rC",
			expected: []any{
				command.PrintEvent{Text: "AB"},
				command.CarriageReturn{},
				command.PrintEvent{Text: "C"},
			},
		},
		{
			name:  "cursor position",
			input: "\x1b[3;7H",
			expected: []any{
				command.CursorPosition{Row: 3, Col: 7},
			},
		},
		{
			name:  "cursor position defaults",
			input: "\x1b[H",
			expected: []any{
				command.CursorPosition{Row: 1, Col: 1},
			},
		},
		{
			name:  "empty first parameter",
			input: "\x1b[;5H",
			expected: []any{
				command.CursorPosition{Row: 1, Col: 5},
			},
		},
		{
			name:  "motion with zero count acts as one",
			input: "\x1b[0A",
			expected: []any{
				command.CursorUp{N: 1},
			},
		},
		{
			name:  "erase display keeps explicit mode",
			input: "\x1b[2J\x1b[K",
			expected: []any{
				command.EraseDisplay{Mode: command.EraseAll},
				command.EraseLine{Mode: command.EraseToEnd},
			},
		},
		{
			name:  "sgr bold and color",
			input: "\x1b[1;34m",
			expected: []any{
				command.SetStyle{Flag: attribute.Bold, On: true},
				command.SetForeground{Color: attribute.PaletteColor(4)},
			},
		},
		{
			name:  "sgr without parameters resets",
			input: "\x1b[m",
			expected: []any{
				command.ResetAttributes{},
			},
		},
		{
			name:  "sgr 256 color",
			input: "\x1b[38;5;200m",
			expected: []any{
				command.SetForeground{Color: attribute.ExtendedColor(200)},
			},
		},
		{
			name:  "sgr truecolor",
			input: "\x1b[48;2;10;20;30m",
			expected: []any{
				command.SetBackground{Color: attribute.RGBColor(10, 20, 30)},
			},
		},
		{
			name:  "pablodraw 24-bit foreground",
			input: "\x1b[1;10;20;30t",
			expected: []any{
				command.SetForeground{Color: attribute.RGBColor(10, 20, 30)},
			},
		},
		{
			name:  "ice color mode",
			input: "\x1b[?33h\x1b[?33l",
			expected: []any{
				command.SetMode{Mode: command.ModeIceColors, On: true},
				command.SetMode{Mode: command.ModeIceColors, On: false},
			},
		},
		{
			name:  "repeat",
			input: "\x1b[5b",
			expected: []any{
				command.RepeatLastChar{N: 5},
			},
		},
		{
			name:  "font selection",
			input: "\x1b[0;3 D",
			expected: []any{
				command.SetFontPage{Page: 3},
			},
		},
		{
			name:  "scroll region",
			input: "\x1b[5;20r",
			expected: []any{
				command.SetScrollRegion{Top: 5, Bottom: 20},
			},
		},
		{
			name:  "margin band vs save caret",
			input: "\x1b[s\x1b[5;40s",
			expected: []any{
				command.SaveCaret{},
				command.SetLeftRightMargin{Left: 5, Right: 40},
			},
		},
		{
			name:  "osc hyperlink with string terminator",
			input: "\x1b]8;;http://example.com\x1b\\link\x1b]8;;\x07",
			expected: []any{
				command.Hyperlink{URL: "http://example.com"},
				command.PrintEvent{Text: "link"},
				command.Hyperlink{URL: ""},
			},
		},
		{
			name:  "esc index ops",
			input: "\x1b7\x1bD\x1bM\x1b8",
			expected: []any{
				command.SaveCaret{},
				command.Index{},
				command.ReverseIndex{},
				command.RestoreCaret{},
			},
		},
		{
			name:  "malformed csi drops without corrupting the stream",
			input: "\x1b[1:2mA",
			expected: []any{
				command.PrintEvent{Text: "A"},
			},
		},
		{
			name:  "high bytes print as glyphs",
			input: "\xb0\xb1\xb2",
			expected: []any{
				command.PrintEvent{Text: "\xb0\xb1\xb2"},
			},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, record(t, []byte(tc.input)))
		})
	}
}

func TestParse_ChunkIndependence(t *testing.T) {
	input := []byte("AB\x1b[1;32mGreen\x1b[0m \x1b[10;20Hrest\x1b]8;;x\x07!")

	whole := &command.Recorder{}
	p := New(nil)
	p.Parse(input, whole)
	p.Flush(whole)

	byByte := &command.Recorder{}
	q := New(nil)
	for _, b := range input {
		q.Parse([]byte{b}, byByte)
	}
	q.Flush(byByte)

	assert.Equal(t, whole.Events, byByte.Events)
}

func TestParse_TruncatedSequenceResumes(t *testing.T) {
	p := New(nil)
	rec := &command.Recorder{}
	p.Parse([]byte("\x1b[3"), rec)
	assert.Empty(t, rec.Events)
	p.Parse([]byte("1;2H"), rec)
	p.Flush(rec)
	assert.Equal(t, []any{command.CursorPosition{Row: 31, Col: 2}}, rec.Events)
}
