package document

// Font is a bitmap glyph set referenced by attribute font pages. Data is
// the raw glyph bitmap, Height bytes per glyph for 8-pixel-wide fonts.
type Font struct {
	Name   string
	Width  int
	Height int
	Data   []byte
}

// GlyphCount returns how many glyphs the font data covers.
func (f *Font) GlyphCount() int {
	if f.Height == 0 {
		return 0
	}
	return len(f.Data) / f.Height
}
