package document

// Properties are the user-facing knobs of a layer.
type Properties struct {
	Title          string
	Visible        bool
	Locked         bool
	PositionLocked bool

	// HasAlpha makes empty cells of this layer transparent so lower
	// layers show through.
	HasAlpha    bool
	AlphaLocked bool

	Offset Point
}

// HyperLink is a clickable region anchored to the grid.
type HyperLink struct {
	URL      string
	Position Point
	Length   int
}

// Raster is an opaque raster fragment anchored to the grid. The document
// model only carries it; decoding is a renderer concern.
type Raster struct {
	Position      Point
	Width, Height int
	Data          []byte
}

// Layer is one plane of the document grid.
type Layer struct {
	Properties

	width, height int
	lines         [][]Cell

	Hyperlinks []HyperLink
	Rasters    []Raster
}

// NewLayer creates a visible, unlocked layer of the given size. Rows are
// allocated lazily on first write.
func NewLayer(title string, width, height int) *Layer {
	return &Layer{
		Properties: Properties{Title: title, Visible: true},
		width:      width,
		height:     height,
	}
}

func (l *Layer) Width() int  { return l.width }
func (l *Layer) Height() int { return l.height }

// Resize changes the layer bounds. Content outside the new bounds is kept
// in storage but no longer addressable.
func (l *Layer) Resize(width, height int) {
	l.width = width
	l.height = height
}

// Char returns the cell at p. Reads outside the layer return the invisible
// filler cell.
func (l *Layer) Char(p Point) Cell {
	p.X -= l.Offset.X
	p.Y -= l.Offset.Y
	if p.X < 0 || p.Y < 0 || p.X >= l.width || p.Y >= l.height {
		return InvisibleCell()
	}
	if p.Y >= len(l.lines) || p.X >= len(l.lines[p.Y]) {
		if l.HasAlpha {
			return InvisibleCell()
		}
		return EmptyCell()
	}
	return l.lines[p.Y][p.X]
}

// SetChar writes the cell at p. Writes to a locked or hidden layer and
// writes outside the bounds are dropped.
func (l *Layer) SetChar(p Point, c Cell) {
	if l.Locked || !l.Visible {
		return
	}
	p.X -= l.Offset.X
	p.Y -= l.Offset.Y
	if p.X < 0 || p.Y < 0 || p.X >= l.width || p.Y >= l.height {
		return
	}
	for len(l.lines) <= p.Y {
		l.lines = append(l.lines, nil)
	}
	row := l.lines[p.Y]
	for len(row) <= p.X {
		row = append(row, EmptyCell())
	}
	row[p.X] = c
	l.lines[p.Y] = row
}

// Clear drops every cell of the layer.
func (l *Layer) Clear() {
	l.lines = nil
}

// Row returns the backing row for y, extended to full width. The returned
// slice is the live storage.
func (l *Layer) Row(y int) []Cell {
	for len(l.lines) <= y {
		l.lines = append(l.lines, nil)
	}
	row := l.lines[y]
	for len(row) < l.width {
		row = append(row, EmptyCell())
	}
	l.lines[y] = row
	return row
}

// SetRow replaces the backing row for y.
func (l *Layer) SetRow(y int, row []Cell) {
	for len(l.lines) <= y {
		l.lines = append(l.lines, nil)
	}
	l.lines[y] = row
}

// AddHyperlink records a link region on this layer.
func (l *Layer) AddHyperlink(url string, pos Point, length int) {
	l.Hyperlinks = append(l.Hyperlinks, HyperLink{
		URL:      url,
		Position: pos,
		Length:   length,
	})
}
