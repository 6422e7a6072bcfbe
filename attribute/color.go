package attribute

import (
	"fmt"

	"github.com/hnimtadd/artio/color"
)

// ColorKind discriminates how a cell color is addressed.
type ColorKind uint8

const (
	// KindPalette addresses the document's own color table.
	KindPalette ColorKind = iota
	// KindExtended addresses the fixed xterm 256-color table.
	KindExtended
	// KindRGB carries an inline 24-bit value.
	KindRGB
)

// Color is one side (foreground or background) of a cell attribute.
type Color struct {
	Kind  ColorKind
	Index uint8
	RGB   color.RGB
}

// PaletteColor addresses entry idx of the document palette.
func PaletteColor(idx uint8) Color { return Color{Kind: KindPalette, Index: idx} }

// ExtendedColor addresses entry idx of the xterm 256-color table.
func ExtendedColor(idx uint8) Color { return Color{Kind: KindExtended, Index: idx} }

// RGBColor carries an explicit 24-bit value.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: KindRGB, RGB: color.RGB{R: r, G: g, B: b}}
}

// Resolve looks the color up against the given document palette.
func (c Color) Resolve(pal *color.Palette) color.RGB {
	switch c.Kind {
	case KindPalette:
		return pal.Get(int(c.Index))
	case KindExtended:
		return xterm.Get(int(c.Index))
	default:
		return c.RGB
	}
}

var xterm = color.XTerm256()

func (c Color) String() string {
	switch c.Kind {
	case KindPalette:
		return fmt.Sprintf("palette(%d)", c.Index)
	case KindExtended:
		return fmt.Sprintf("extended(%d)", c.Index)
	default:
		return c.RGB.String()
	}
}
