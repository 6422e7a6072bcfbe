package screen

import (
	"github.com/hnimtadd/artio/command"
	"github.com/hnimtadd/artio/document"
	"github.com/hnimtadd/artio/utils"
)

func (s *Screen) fillRow(y, x1, x2 int) {
	l := s.doc.ActiveLayer()
	fill := s.eraseCell()
	for x := x1; x <= x2 && x < s.width(); x++ {
		l.SetChar(document.Point{X: x, Y: y}, fill)
	}
	s.markDirty(y)
}

func (s *Screen) eraseDisplay(mode command.EraseMode) {
	p := s.caret.Position
	switch mode {
	case command.EraseToEnd:
		s.fillRow(p.Y, p.X, s.width()-1)
		for y := p.Y + 1; y < s.height(); y++ {
			s.fillRow(y, 0, s.width()-1)
		}
	case command.EraseToStart:
		for y := 0; y < p.Y; y++ {
			s.fillRow(y, 0, s.width()-1)
		}
		s.fillRow(p.Y, 0, p.X)
	case command.EraseAll:
		for y := 0; y < s.height(); y++ {
			s.fillRow(y, 0, s.width()-1)
		}
		s.caret.Home()
	}
}

func (s *Screen) eraseLine(mode command.EraseMode) {
	p := s.caret.Position
	switch mode {
	case command.EraseToEnd:
		s.fillRow(p.Y, p.X, s.width()-1)
	case command.EraseToStart:
		s.fillRow(p.Y, 0, p.X)
	case command.EraseAll:
		s.fillRow(p.Y, 0, s.width()-1)
	}
}

func (s *Screen) eraseChars(n int) {
	p := s.caret.Position
	s.fillRow(p.Y, p.X, p.X+n-1)
}

func (s *Screen) insertChars(n int) {
	l := s.doc.ActiveLayer()
	p := s.caret.Position
	row := l.Row(p.Y)
	if p.X >= len(row) {
		return
	}
	tail := row[p.X:]
	utils.RotateR(tail, min(n, len(tail)))
	fill := s.eraseCell()
	for i := 0; i < n && p.X+i < len(row); i++ {
		row[p.X+i] = fill
	}
	s.markDirty(p.Y)
}

func (s *Screen) deleteChars(n int) {
	l := s.doc.ActiveLayer()
	p := s.caret.Position
	row := l.Row(p.Y)
	if p.X >= len(row) {
		return
	}
	tail := row[p.X:]
	utils.Rotate(tail, min(n, len(tail)))
	fill := s.eraseCell()
	for i := max(len(tail)-n, 0); i < len(tail); i++ {
		tail[i] = fill
	}
	s.markDirty(p.Y)
}

// regionRows returns the live rows of the scroll region that contains the
// caret, clamped so the caret row is inside it.
func (s *Screen) regionRows(from int) [][]document.Cell {
	l := s.doc.ActiveLayer()
	rows := make([][]document.Cell, 0, s.regionBottom()-from+1)
	for y := from; y <= s.regionBottom(); y++ {
		rows = append(rows, l.Row(y))
	}
	return rows
}

func (s *Screen) blankRow() []document.Cell {
	fill := s.eraseCell()
	row := make([]document.Cell, s.width())
	for i := range row {
		row[i] = fill
	}
	return row
}

func (s *Screen) storeRows(from int, rows [][]document.Cell) {
	l := s.doc.ActiveLayer()
	for i, row := range rows {
		l.SetRow(from+i, row)
	}
	s.markDirty(from)
	s.markDirty(from + len(rows) - 1)
}

func (s *Screen) scrollRegionUp(n int) {
	rows := s.regionRows(s.regionTop())
	if len(rows) == 0 {
		return
	}
	n = min(n, len(rows))
	utils.Rotate(rows, n)
	for i := len(rows) - n; i < len(rows); i++ {
		rows[i] = s.blankRow()
	}
	s.storeRows(s.regionTop(), rows)
}

func (s *Screen) scrollRegionDown(n int) {
	rows := s.regionRows(s.regionTop())
	if len(rows) == 0 {
		return
	}
	n = min(n, len(rows))
	utils.RotateR(rows, n)
	for i := 0; i < n; i++ {
		rows[i] = s.blankRow()
	}
	s.storeRows(s.regionTop(), rows)
}

// insertLines opens n blank rows at the caret, pushing the rest of the
// region down.
func (s *Screen) insertLines(n int) {
	y := s.caret.Position.Y
	if y < s.regionTop() || y > s.regionBottom() {
		return
	}
	rows := s.regionRows(y)
	n = min(n, len(rows))
	utils.RotateR(rows, n)
	for i := 0; i < n; i++ {
		rows[i] = s.blankRow()
	}
	s.storeRows(y, rows)
}

// deleteLines removes n rows at the caret, pulling the rest of the region
// up.
func (s *Screen) deleteLines(n int) {
	y := s.caret.Position.Y
	if y < s.regionTop() || y > s.regionBottom() {
		return
	}
	rows := s.regionRows(y)
	n = min(n, len(rows))
	utils.Rotate(rows, n)
	for i := len(rows) - n; i < len(rows); i++ {
		rows[i] = s.blankRow()
	}
	s.storeRows(y, rows)
}
