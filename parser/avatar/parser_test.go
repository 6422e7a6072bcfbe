package avatar

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
			name:  "set color decomposes the attribute byte",
			input: []byte{0x16, 0x01, 0x4E},
			expected: []any{
				command.SetStyle{Flag: attribute.Blink, On: false},
				command.SetForeground{Color: attribute.PaletteColor(14)},
				command.SetBackground{Color: attribute.PaletteColor(4)},
			},
		},
		{
			name:  "blink on",
			input: []byte{0x16, 0x02},
			expected: []any{
				command.SetStyle{Flag: attribute.Blink, On: true},
			},
		},
		{
			name:  "cursor moves",
			input: []byte{0x16, 0x03, 0x16, 0x04, 0x16, 0x05, 0x16, 0x06},
			expected: []any{
				command.CursorUp{N: 1},
				command.CursorDown{N: 1},
				command.CursorBack{N: 1},
				command.CursorForward{N: 1},
			},
		},
		{
			name:  "clear to end of line",
			input: []byte{0x16, 0x07},
			expected: []any{
				command.EraseLine{Mode: command.EraseToEnd},
			},
		},
		{
			name:  "goto row and column",
			input: []byte{0x16, 0x08, 5, 10},
			expected: []any{
				command.CursorPosition{Row: 5, Col: 10},
			},
		},
		{
			name:  "repeat expands into the printable run",
			input: []byte{'A', 0x19, 'X', 3, 'B'},
			expected: []any{
				command.PrintEvent{Text: "AXXXB"},
			},
		},
		{
			name:     "repeat with zero count is a no-op",
			input:    []byte{0x19, 'X', 0},
			expected: nil,
		},
		{
			name:  "clear screen",
			input: []byte{0x0C},
			expected: []any{
				command.ClearScreen{},
			},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, record(t, tc.input))
		})
	}
}

func TestParse_RepeatSplitAcrossChunks(t *testing.T) {
	p := New(nil)
	rec := &command.Recorder{}
	p.Parse([]byte{0x19}, rec)
	p.Parse([]byte{'Z'}, rec)
	p.Parse([]byte{4}, rec)
	p.Flush(rec)
	assert.Equal(t, []any{command.PrintEvent{Text: "ZZZZ"}}, rec.Events)
}
