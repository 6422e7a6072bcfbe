// Package attribute holds the packed per-cell text attribute: two colors,
// a set of style flags and a font page.
package attribute

import (
	"github.com/hnimtadd/artio/utils"
	"github.com/mitchellh/hashstructure/v2"
)

// Flag is one style bit. The layout is stable; serialized documents rely
// on it.
type Flag uint16

const (
	Bold            Flag = 1 << 0
	Faint           Flag = 1 << 1
	Italic          Flag = 1 << 2
	Blink           Flag = 1 << 3
	Underline       Flag = 1 << 4
	DoubleUnderline Flag = 1 << 5
	Conceal         Flag = 1 << 6
	CrossedOut      Flag = 1 << 7
	DoubleHeight    Flag = 1 << 8
	Overline        Flag = 1 << 9

	// Invisible marks filler cells that exist only to pad the grid. They
	// never render and never serialize.
	Invisible Flag = 1 << 15
)

const (
	defaultForeground = 7
	defaultBackground = 0
)

// Attribute is the full style state of one cell. The zero value is NOT the
// default attribute; use Default.
type Attribute struct {
	FG       Color
	BG       Color
	Flags    Flag
	FontPage uint8
}

// Default returns light gray on black with no flags set.
func Default() Attribute {
	return Attribute{
		FG: PaletteColor(defaultForeground),
		BG: PaletteColor(defaultBackground),
	}
}

func (a Attribute) Has(f Flag) bool { return a.Flags&f != 0 }

func (a Attribute) With(f Flag, on bool) Attribute {
	if on {
		a.Flags |= f
	} else {
		a.Flags &^= f
	}
	return a
}

func (a Attribute) IsDefault() bool { return a == Default() }

// Hash returns a stable hash of the attribute, used to dedup style runs.
func (a Attribute) Hash() uint64 {
	hash, err := hashstructure.Hash(a, hashstructure.FormatV2, nil)
	utils.Assert(err == nil, "attribute must be hashable")
	return hash
}

// FromDOS unpacks a classic DOS attribute byte. In ice mode the top bit
// selects a bright background, otherwise it is the blink flag.
func FromDOS(b uint8, ice bool) Attribute {
	a := Attribute{FG: PaletteColor(b & 0x0F)}
	if ice {
		a.BG = PaletteColor(b >> 4)
	} else {
		a.BG = PaletteColor((b >> 4) & 7)
		if b&0x80 != 0 {
			a.Flags |= Blink
		}
	}
	return a
}

// AsDOS packs the attribute back into a DOS attribute byte. Colors outside
// the 16-color range truncate; callers that cannot tolerate that must check
// the color kinds first.
func (a Attribute) AsDOS(ice bool) uint8 {
	b := a.FG.Index & 0x0F
	if ice {
		b |= a.BG.Index << 4
	} else {
		b |= (a.BG.Index & 7) << 4
		if a.Has(Blink) {
			b |= 0x80
		}
	}
	return b
}
