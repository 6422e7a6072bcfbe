package color

// The 16-color CGA/EGA text mode palette.
var dosColors = []RGB{
	{0x00, 0x00, 0x00}, // black
	{0x00, 0x00, 0xAA}, // blue
	{0x00, 0xAA, 0x00}, // green
	{0x00, 0xAA, 0xAA}, // cyan
	{0xAA, 0x00, 0x00}, // red
	{0xAA, 0x00, 0xAA}, // magenta
	{0xAA, 0x55, 0x00}, // brown
	{0xAA, 0xAA, 0xAA}, // light gray
	{0x55, 0x55, 0x55}, // dark gray
	{0x55, 0x55, 0xFF}, // bright blue
	{0x55, 0xFF, 0x55}, // bright green
	{0x55, 0xFF, 0xFF}, // bright cyan
	{0xFF, 0x55, 0x55}, // bright red
	{0xFF, 0x55, 0xFF}, // bright magenta
	{0xFF, 0xFF, 0x55}, // yellow
	{0xFF, 0xFF, 0xFF}, // white
}

var c64Colors = []RGB{
	{0x00, 0x00, 0x00}, // black
	{0xFF, 0xFF, 0xFF}, // white
	{0x68, 0x37, 0x2B}, // red
	{0x70, 0xA4, 0xB2}, // cyan
	{0x6F, 0x3D, 0x86}, // purple
	{0x58, 0x8D, 0x43}, // green
	{0x35, 0x28, 0x79}, // blue
	{0xB8, 0xC7, 0x6F}, // yellow
	{0x6F, 0x4F, 0x25}, // orange
	{0x43, 0x39, 0x00}, // brown
	{0x9A, 0x67, 0x59}, // light red
	{0x44, 0x44, 0x44}, // dark gray
	{0x6C, 0x6C, 0x6C}, // gray
	{0x9A, 0xD2, 0x84}, // light green
	{0x6C, 0x5E, 0xB5}, // light blue
	{0x95, 0x95, 0x95}, // light gray
}

// The eight full-intensity teletext colors.
var viewdataColors = []RGB{
	{0x00, 0x00, 0x00},
	{0xFF, 0x00, 0x00},
	{0x00, 0xFF, 0x00},
	{0xFF, 0xFF, 0x00},
	{0x00, 0x00, 0xFF},
	{0xFF, 0x00, 0xFF},
	{0x00, 0xFF, 0xFF},
	{0xFF, 0xFF, 0xFF},
}

// DOS returns the default 16-color DOS palette.
func DOS() *Palette { return NewPalette(dosColors) }

// C64 returns the Commodore 64 palette.
func C64() *Palette { return NewPalette(c64Colors) }

// Viewdata returns the 8-color teletext palette.
func Viewdata() *Palette { return NewPalette(viewdataColors) }

// XTerm256 returns the extended 256-color table: the 16 base colors, a
// 6x6x6 color cube and a 24-step grayscale ramp.
func XTerm256() *Palette {
	colors := make([]RGB, 0, 256)
	colors = append(colors, dosColors...)

	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				colors = append(colors, RGB{levels[r], levels[g], levels[b]})
			}
		}
	}
	for i := 0; i < 24; i++ {
		v := uint8(8 + i*10)
		colors = append(colors, RGB{v, v, v})
	}
	return NewPalette(colors)
}
