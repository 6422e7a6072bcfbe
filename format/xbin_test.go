package format

import (
	"testing"

	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/color"
	"github.com/hnimtadd/artio/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestDoc(t *testing.T) *document.Document {
	t.Helper()
	doc := document.New(4, 2)
	bright := attribute.Default()
	bright.FG = attribute.PaletteColor(14)
	bright.BG = attribute.PaletteColor(3)
	blink := attribute.Default().With(attribute.Blink, true)

	doc.SetChar(document.Point{X: 0, Y: 0}, document.Cell{Ch: 0xB0, Attr: bright})
	doc.SetChar(document.Point{X: 1, Y: 0}, document.Cell{Ch: 0xB0, Attr: bright})
	doc.SetChar(document.Point{X: 2, Y: 0}, document.Cell{Ch: 'X', Attr: blink})
	doc.SetChar(document.Point{X: 1, Y: 1}, document.Cell{Ch: 'Y', Attr: attribute.Default()})
	return doc
}

func assertSameCells(t *testing.T, want, got *document.Document) {
	t.Helper()
	require.Equal(t, want.Width(), got.Width())
	require.Equal(t, want.Height(), got.Height())
	for y := 0; y < want.Height(); y++ {
		for x := 0; x < want.Width(); x++ {
			p := document.Point{X: x, Y: y}
			assert.Equal(t, want.Char(p), got.Char(p), "cell %d,%d", x, y)
		}
	}
}

func TestXBin_RoundTrip(t *testing.T) {
	tcs := []struct {
		name string
		opts XBinOptions
	}{
		{name: "uncompressed", opts: XBinOptions{}},
		{name: "compressed", opts: XBinOptions{Compress: true}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			doc := buildTestDoc(t)
			data, err := SaveXBin(doc, tc.opts)
			require.NoError(t, err)

			got, err := LoadXBin(data, nil)
			require.NoError(t, err)
			assertSameCells(t, doc, got)
			assert.Equal(t, document.IceBlink, got.IceMode)
		})
	}
}

func TestXBin_IceColors(t *testing.T) {
	doc := document.New(2, 1)
	doc.IceMode = document.IceColors
	attr := attribute.Default()
	attr.BG = attribute.PaletteColor(12)
	doc.SetChar(document.Point{}, document.Cell{Ch: 'A', Attr: attr})

	data, err := SaveXBin(doc, XBinOptions{})
	require.NoError(t, err)

	got, err := LoadXBin(data, nil)
	require.NoError(t, err)
	assert.Equal(t, document.IceColors, got.IceMode)
	assert.Equal(t, attr, got.Char(document.Point{}).Attr)
}

func TestXBin_PaletteTravels(t *testing.T) {
	doc := document.New(2, 1)
	doc.Palette.Set(1, color.RGB{R: 170, G: 85, B: 255})
	doc.SetChar(document.Point{}, document.Cell{Ch: 'A', Attr: attribute.Default()})

	data, err := SaveXBin(doc, XBinOptions{})
	require.NoError(t, err)

	got, err := LoadXBin(data, nil)
	require.NoError(t, err)
	assert.Equal(t, color.RGB{R: 170, G: 85, B: 255}, got.Palette.Get(1))
}

func TestXBin_FontTravels(t *testing.T) {
	doc := document.New(2, 1)
	doc.Fonts[0] = &document.Font{
		Width:  8,
		Height: 8,
		Data:   make([]byte, 256*8),
	}
	doc.Fonts[0].Data[0] = 0xAA

	data, err := SaveXBin(doc, XBinOptions{})
	require.NoError(t, err)

	got, err := LoadXBin(data, nil)
	require.NoError(t, err)
	require.NotNil(t, got.Fonts[0])
	assert.Equal(t, 8, got.Fonts[0].Height)
	assert.Equal(t, byte(0xAA), got.Fonts[0].Data[0])
}

func TestXBin_AppliesSauce(t *testing.T) {
	doc := document.New(4, 2)
	data, err := SaveXBin(doc, XBinOptions{})
	require.NoError(t, err)

	got, err := LoadXBin(data, &document.SauceInfo{UseIce: true, FontName: "IBM VGA"})
	require.NoError(t, err)
	assert.Equal(t, document.IceColors, got.IceMode)
	require.NotNil(t, got.Fonts[0])
	assert.Equal(t, "IBM VGA", got.Fonts[0].Name)
}

func TestLoadXBin_Errors(t *testing.T) {
	tcs := []struct {
		name     string
		data     []byte
		expected error
	}{
		{
			name:     "truncated magic",
			data:     []byte{'X'},
			expected: ErrTooShort,
		},
		{
			name:     "wrong magic",
			data:     []byte("NOTXBIN\x1a\x00\x00\x00"),
			expected: ErrBadMagic,
		},
		{
			name:     "truncated header",
			data:     []byte("XBIN\x1a\x02\x00"),
			expected: ErrTooShort,
		},
		{
			name:     "zero width",
			data:     []byte("XBIN\x1a\x00\x00\x01\x00\x10\x00"),
			expected: ErrInvalidSize,
		},
		{
			name:     "font height out of range",
			data:     []byte("XBIN\x1a\x02\x00\x01\x00\x40\x00"),
			expected: ErrUnsupportedFont,
		},
		{
			name:     "truncated cell data",
			data:     []byte("XBIN\x1a\x02\x00\x01\x00\x10\x00A\x07"),
			expected: ErrTooShort,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadXBin(tc.data, nil)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestXBinDecompress_BlockKinds(t *testing.T) {
	header := []byte("XBIN\x1a\x04\x00\x01\x00\x10\x04")
	// One full-run block covering all four cells.
	data := append(append([]byte(nil), header...), 0xC3, 'A', 0x07)

	got, err := LoadXBin(data, nil)
	require.NoError(t, err)
	for x := 0; x < 4; x++ {
		assert.Equal(t, 'A', got.Char(document.Point{X: x, Y: 0}).Ch)
	}
}
