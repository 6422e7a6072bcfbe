package atascii

import (
	"testing"

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
			name:  "end of line",
			input: []byte{'H', 'I', 0x9B, 'X'},
			expected: []any{
				command.PrintEvent{Text: "HI"},
				command.CarriageReturn{},
				command.LineFeed{},
				command.PrintEvent{Text: "X"},
			},
		},
		{
			name:  "cursor moves",
			input: []byte{0x1C, 0x1D, 0x1E, 0x1F},
			expected: []any{
				command.CursorUp{N: 1},
				command.CursorDown{N: 1},
				command.CursorBack{N: 1},
				command.CursorForward{N: 1},
			},
		},
		{
			name:  "clear screen",
			input: []byte{0x7D},
			expected: []any{
				command.ClearScreen{},
			},
		},
		{
			name:  "destructive backspace",
			input: []byte{0x7E},
			expected: []any{
				command.Backspace{},
				command.EraseChar{N: 1},
			},
		},
		{
			name:  "escape makes the next byte literal",
			input: []byte{0x1B, 0x7D},
			expected: []any{
				command.PrintEvent{Text: "\x7d"},
			},
		},
		{
			name:  "inverse video glyphs pass through",
			input: []byte{0xC1, 0xC2},
			expected: []any{
				command.PrintEvent{Text: "\xc1\xc2"},
			},
		},
		{
			name:  "line edits",
			input: []byte{0x9C, 0x9D, 0xFE, 0xFF},
			expected: []any{
				command.DeleteLine{N: 1},
				command.InsertLine{N: 1},
				command.DeleteChar{N: 1},
				command.InsertChar{N: 1},
			},
		},
		{
			name:  "tab handling",
			input: []byte{0x7F, 0x9E, 0x9F},
			expected: []any{
				command.Tab{},
				command.TabClear{},
				command.TabSet{},
			},
		},
		{
			name:  "bell",
			input: []byte{0xFD},
			expected: []any{
				command.Bell{},
			},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, record(t, tc.input))
		})
	}
}

func TestParse_EscapeSplitAcrossChunks(t *testing.T) {
	p := New(nil)
	rec := &command.Recorder{}
	p.Parse([]byte{0x1B}, rec)
	p.Parse([]byte{0x9B}, rec)
	p.Flush(rec)
	assert.Equal(t, []any{command.PrintEvent{Text: "\x9b"}}, rec.Events)
}
