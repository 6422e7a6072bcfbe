package document

// SauceInfo is an already-parsed SAUCE metadata record. Reading the trailer
// off a file is out of scope here; loaders accept the parsed record and
// apply it.
type SauceInfo struct {
	Title  string
	Author string
	Group  string

	// Width and Height override the loader's guess when non-zero.
	Width  int
	Height int

	FontName      string
	UseIce        bool
	LetterSpacing bool
	AspectRatio   bool
}

// ApplySauce folds the record into the document: canvas size, ice mode and
// font name.
func (d *Document) ApplySauce(info SauceInfo) {
	d.Sauce = &info
	if info.Width > 0 && info.Height > 0 {
		d.Resize(info.Width, info.Height)
	} else if info.Width > 0 {
		d.Resize(info.Width, d.height)
	}
	if info.UseIce {
		d.IceMode = IceColors
	}
	if info.FontName != "" {
		if f, ok := d.Fonts[0]; ok {
			f.Name = info.FontName
		} else {
			d.Fonts[0] = &Font{Name: info.FontName, Width: 8, Height: 16}
		}
	}
}
