package format

import (
	"testing"

	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/color"
	"github.com/hnimtadd/artio/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTundra_RoundTrip(t *testing.T) {
	doc := document.New(10, 2)
	red := attribute.Default()
	red.FG = attribute.RGBColor(200, 10, 10)
	red.BG = attribute.RGBColor(0, 0, 0)
	blue := attribute.Default()
	blue.FG = attribute.RGBColor(10, 10, 200)
	blue.BG = attribute.RGBColor(40, 40, 40)

	doc.SetChar(document.Point{X: 0, Y: 0}, document.Cell{Ch: 'A', Attr: red})
	doc.SetChar(document.Point{X: 1, Y: 0}, document.Cell{Ch: 'B', Attr: red})
	// A glyph code that collides with a command byte.
	doc.SetChar(document.Point{X: 2, Y: 0}, document.Cell{Ch: 2, Attr: red})
	doc.SetChar(document.Point{X: 3, Y: 1}, document.Cell{Ch: 'C', Attr: blue})

	data, err := SaveTundra(doc)
	require.NoError(t, err)

	got, err := LoadTundra(data, &document.SauceInfo{Width: 10})
	require.NoError(t, err)
	require.Equal(t, 10, got.Width())
	require.Equal(t, 2, got.Height())
	assert.Equal(t, document.IceColors, got.IceMode)

	for _, p := range []document.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 1},
	} {
		want := doc.Char(p)
		have := got.Char(p)
		assert.Equal(t, want.Ch, have.Ch, "glyph %v", p)
		assert.Equal(t,
			want.Attr.FG.Resolve(doc.Palette),
			have.Attr.FG.Resolve(got.Palette),
			"foreground %v", p)
		assert.Equal(t,
			want.Attr.BG.Resolve(doc.Palette),
			have.Attr.BG.Resolve(got.Palette),
			"background %v", p)
	}
}

func TestLoadTundra_PositionCommand(t *testing.T) {
	data := append([]byte(nil), []byte{24, 'T', 'U', 'N', 'D', 'R', 'A', '2', '4'}...)
	data = append(data,
		1, // position
		0, 0, 0, 3, // row 3
		0, 0, 0, 5, // col 5
		'Z',
	)

	got, err := LoadTundra(data, nil)
	require.NoError(t, err)
	assert.Equal(t, 'Z', got.Char(document.Point{X: 5, Y: 3}).Ch)
	assert.Equal(t, 4, got.Height())
}

func TestLoadTundra_RebuildsPalette(t *testing.T) {
	data := append([]byte(nil), []byte{24, 'T', 'U', 'N', 'D', 'R', 'A', '2', '4'}...)
	data = append(data,
		6, 'A', // char with fg and bg
		0, 200, 10, 10,
		0, 40, 40, 40,
	)

	got, err := LoadTundra(data, nil)
	require.NoError(t, err)
	cell := got.Char(document.Point{})
	assert.Equal(t, 'A', cell.Ch)
	assert.Equal(t, color.RGB{R: 200, G: 10, B: 10}, cell.Attr.FG.Resolve(got.Palette))
	assert.Equal(t, color.RGB{R: 40, G: 40, B: 40}, cell.Attr.BG.Resolve(got.Palette))
	// Index 0 stays black for the implicit background.
	assert.Equal(t, color.RGB{}, got.Palette.Get(0))
}

func TestLoadTundra_Errors(t *testing.T) {
	tcs := []struct {
		name     string
		data     []byte
		expected error
	}{
		{
			name:     "truncated magic",
			data:     []byte{24, 'T', 'U'},
			expected: ErrTooShort,
		},
		{
			name:     "wrong magic",
			data:     []byte{24, 'T', 'U', 'N', 'D', 'R', 'A', '9', '9'},
			expected: ErrBadMagic,
		},
		{
			name:     "truncated position",
			data:     []byte{24, 'T', 'U', 'N', 'D', 'R', 'A', '2', '4', 1, 0, 0},
			expected: ErrTooShort,
		},
		{
			name:     "truncated color",
			data:     []byte{24, 'T', 'U', 'N', 'D', 'R', 'A', '2', '4', 2, 'A', 0, 200},
			expected: ErrTooShort,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadTundra(tc.data, nil)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
