package color

// Palette is an append-only color table. Colors are only ever added, never
// removed, so an index handed out once stays valid for the lifetime of the
// palette.
type Palette struct {
	colors []RGB
}

// NewPalette creates a palette seeded with the given colors. The slice is
// copied.
func NewPalette(colors []RGB) *Palette {
	p := &Palette{colors: make([]RGB, len(colors))}
	copy(p.colors, colors)
	return p
}

func (p *Palette) Len() int { return len(p.colors) }

// Get returns the color at idx. Out-of-range indexes read black.
func (p *Palette) Get(idx int) RGB {
	if idx < 0 || idx >= len(p.colors) {
		return RGB{}
	}
	return p.colors[idx]
}

// Set overwrites the color at idx, growing the table as needed.
func (p *Palette) Set(idx int, c RGB) {
	for len(p.colors) <= idx {
		p.colors = append(p.colors, RGB{})
	}
	p.colors[idx] = c
}

// Insert returns the index of c, appending it if no entry matches exactly.
// The returned index is stable.
func (p *Palette) Insert(c RGB) int {
	for i, have := range p.colors {
		if have == c {
			return i
		}
	}
	p.colors = append(p.colors, c)
	return len(p.colors) - 1
}

// Clear removes every entry. Only format loaders that rebuild the table from
// scratch should call this.
func (p *Palette) Clear() {
	p.colors = p.colors[:0]
}

// FillTo16 pads the table with the default DOS colors until it holds at
// least 16 entries.
func (p *Palette) FillTo16() {
	for len(p.colors) < len(dosColors) {
		p.colors = append(p.colors, dosColors[len(p.colors)])
	}
}

// IsDefault reports whether the table is exactly the 16-color DOS palette.
func (p *Palette) IsDefault() bool {
	if len(p.colors) != len(dosColors) {
		return false
	}
	for i, c := range p.colors {
		if c != dosColors[i] {
			return false
		}
	}
	return true
}

// Colors returns a copy of the table.
func (p *Palette) Colors() []RGB {
	out := make([]RGB, len(p.colors))
	copy(out, p.colors)
	return out
}

// Clone returns an independent copy of the palette.
func (p *Palette) Clone() *Palette {
	return NewPalette(p.colors)
}

// AsDAC serializes the first n entries as 6-bit r,g,b triplets, the layout
// VGA-era formats store palettes in. Missing entries write as black.
func (p *Palette) AsDAC(n int) []byte {
	out := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		c := p.Get(i)
		out = append(out, To63(c.R), To63(c.G), To63(c.B))
	}
	return out
}

// FromDAC builds a palette from 6-bit r,g,b triplets.
func FromDAC(data []byte) *Palette {
	p := &Palette{}
	for i := 0; i+2 < len(data); i += 3 {
		p.colors = append(p.colors, RGB{
			R: From63(data[i]),
			G: From63(data[i+1]),
			B: From63(data[i+2]),
		})
	}
	return p
}
