package petscii

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

func TestScreenCodeMapping(t *testing.T) {
	tcs := []struct {
		name     string
		input    byte
		expected byte
	}{
		{name: "digits keep their code", input: '1', expected: 0x31},
		{name: "upper range folds down", input: 'A', expected: 0x01},
		{name: "lowercase range", input: 0x61, expected: 0x41},
		{name: "shifted graphics", input: 0xA1, expected: 0x61},
		{name: "high graphics", input: 0xC1, expected: 0x41},
		{name: "pi", input: 0xFF, expected: 0x5E},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ToScreenCode(tc.input)
			assert.True(t, ok)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t,
				tc.expected, mustScreen(t, FromScreenCode(tc.expected)),
				"inverse mapping must survive a round trip")
		})
	}
}

func mustScreen(t *testing.T, b byte) byte {
	t.Helper()
	code, ok := ToScreenCode(b)
	assert.True(t, ok)
	return code
}

func TestParse(t *testing.T) {
	tcs := []struct {
		name     string
		input    []byte
		expected []any
	}{
		{
			name:  "text prints as screen codes",
			input: []byte("AB"),
			expected: []any{
				command.PrintEvent{Text: "\x01\x02"},
			},
		},
		{
			name:  "reverse video sets the high bit",
			input: []byte{0x12, 'A', 0x92, 'A'},
			expected: []any{
				command.PrintEvent{Text: "\x81\x01"},
			},
		},
		{
			name:  "color code",
			input: []byte{0x1C},
			expected: []any{
				command.SetForeground{Color: attribute.PaletteColor(2)},
			},
		},
		{
			name:  "return emits cr lf and clears reverse",
			input: []byte{0x12, 0x0D, 'A'},
			expected: []any{
				command.CarriageReturn{},
				command.LineFeed{},
				command.PrintEvent{Text: "\x01"},
			},
		},
		{
			name:  "home and clear",
			input: []byte{0x13, 0x93},
			expected: []any{
				command.CursorPosition{Row: 1, Col: 1},
				command.ClearScreen{},
			},
		},
		{
			name:  "shift modes switch font pages",
			input: []byte{0x0E, 0x8E},
			expected: []any{
				command.SetFontPage{Page: 1},
				command.SetFontPage{Page: 0},
			},
		},
		{
			name:     "escape suppresses the next control",
			input:    []byte{0x1B, 0x13},
			expected: nil,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, record(t, tc.input))
		})
	}
}
