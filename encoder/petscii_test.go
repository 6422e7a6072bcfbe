package encoder

import (
	"testing"

	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/document"
	"github.com/hnimtadd/artio/parser/petscii"
	"github.com/hnimtadd/artio/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePetscii_ReverseVideo(t *testing.T) {
	doc := document.New(4, 1)
	setCell(doc, 0, 0, 0x01, attribute.Default())
	setCell(doc, 1, 0, 0x81, attribute.Default())
	setCell(doc, 2, 0, 0x01, attribute.Default())

	out, err := EncodePetscii(doc, Options{Compress: true})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0x12, 0x41, 0x92, 0x41}, out)
}

func TestEncodePetscii_ColorControls(t *testing.T) {
	doc := document.New(3, 1)
	red := attribute.Default()
	red.FG = attribute.PaletteColor(2)
	setCell(doc, 0, 0, 0x01, red)

	out, err := EncodePetscii(doc, Options{Compress: true})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1C, 0x41}, out)
}

func TestEncodePetscii_FontPages(t *testing.T) {
	doc := document.New(3, 1)
	lower := attribute.Default()
	lower.FontPage = 1
	setCell(doc, 0, 0, 0x01, lower)
	setCell(doc, 1, 0, 0x01, attribute.Default())

	out, err := EncodePetscii(doc, Options{Compress: true})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0E, 0x41, 0x8E, 0x41}, out)
}

func TestEncodePetscii_RoundTrip(t *testing.T) {
	stream := []byte{0x1C, 'H', 'I', 0x12, 'J', 0x0D, 0x05, 'K'}
	doc := document.New(10, 2)
	s := screen.New(doc, nil)
	p := petscii.New(nil)
	p.Parse(stream, s)
	p.Flush(s)

	encoded, err := EncodePetscii(doc, Options{Compress: true})
	require.NoError(t, err)

	got := document.New(10, 2)
	s2 := screen.New(got, nil)
	p2 := petscii.New(nil)
	p2.Parse(encoded, s2)
	p2.Flush(s2)

	for y := 0; y < 2; y++ {
		for x := 0; x < 10; x++ {
			pt := document.Point{X: x, Y: y}
			assert.Equal(t, doc.Char(pt), got.Char(pt), "cell %d,%d", x, y)
		}
	}
}

func TestEncodePetscii_StyleFlagsFailClosed(t *testing.T) {
	// Reverse video travels in the glyph byte; every other style flag has
	// no encoding and must not drop silently.
	doc := document.New(2, 1)
	blink := attribute.Default()
	blink.Flags |= attribute.Blink
	setCell(doc, 0, 0, 0x01, blink)

	_, err := EncodePetscii(doc, Options{Compress: true})
	assert.ErrorIs(t, err, ErrUnsupportedColor)
}

func TestEncodePetscii_BackgroundFailsClosed(t *testing.T) {
	doc := document.New(2, 1)
	bg := attribute.Default()
	bg.BG = attribute.PaletteColor(2)
	setCell(doc, 0, 0, 0x01, bg)

	_, err := EncodePetscii(doc, Options{Compress: true})
	assert.ErrorIs(t, err, ErrUnsupportedColor)
}

func TestEncodePetscii_UnrepresentableColor(t *testing.T) {
	doc := document.New(2, 1)
	rgb := attribute.Default()
	rgb.FG = attribute.RGBColor(1, 2, 3)
	setCell(doc, 0, 0, 0x01, rgb)

	_, err := EncodePetscii(doc, Options{})
	assert.ErrorIs(t, err, ErrUnsupportedColor)
}
