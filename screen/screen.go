// Package screen applies the parsed command stream to a document. It owns
// the caret, the scroll region, tab stops and the terminal modes.
package screen

import (
	"unicode/utf8"

	"github.com/hnimtadd/artio/attribute"
	"github.com/hnimtadd/artio/command"
	"github.com/hnimtadd/artio/document"
	"github.com/hnimtadd/artio/logger"
	"github.com/hnimtadd/artio/tabstops"
	"github.com/mattn/go-runewidth"
)

// Screen is a command.Sink writing into a document.
type Screen struct {
	// AutoGrow extends the document downward instead of scrolling when
	// the caret passes the last row and no scroll region is active. Art
	// loaders want this; terminal emulation wants it off.
	AutoGrow bool

	doc   *document.Document
	caret document.Caret
	saved *document.Caret
	tabs  *tabstops.Tabstops

	// Scroll region, 0-based inclusive. bottom < 0 means the last row.
	top, bottom int

	// Horizontal margin band, 0-based inclusive. right < 0 means the last
	// column. Printing wraps within the band; carriage return targets
	// left.
	left, right int

	autoWrap bool
	origin   bool
	inverse  bool

	mouseTracking command.Mode
	mouseActive   bool
	mouseSGR      bool

	lastCell *document.Cell

	linkURL   string
	linkStart document.Point

	u8buf []byte

	dirtyMin, dirtyMax int
	dirtyAny           bool

	log logger.Logger
}

// New creates a screen over doc. A nil logger falls back to the package
// default.
func New(doc *document.Document, log logger.Logger) *Screen {
	if log == nil {
		log = logger.DefaultLogger
	}
	return &Screen{
		AutoGrow: true,
		doc:      doc,
		caret:    document.NewCaret(),
		tabs:     tabstops.New(doc.Width()),
		bottom:   -1,
		right:    -1,
		autoWrap: true,
		log:      log,
	}
}

func (s *Screen) Document() *document.Document { return s.doc }
func (s *Screen) Caret() *document.Caret       { return &s.caret }

// MouseTracking returns the active tracking mode, if any, and whether SGR
// encoding was requested.
func (s *Screen) MouseTracking() (command.Mode, bool, bool) {
	return s.mouseTracking, s.mouseActive, s.mouseSGR
}

// DirtyRange returns the rows touched since the last ClearDirty.
func (s *Screen) DirtyRange() (minY, maxY int, any bool) {
	return s.dirtyMin, s.dirtyMax, s.dirtyAny
}

func (s *Screen) ClearDirty() {
	s.dirtyAny = false
}

func (s *Screen) markDirty(y int) {
	if !s.dirtyAny {
		s.dirtyMin, s.dirtyMax = y, y
		s.dirtyAny = true
		return
	}
	s.dirtyMin = min(s.dirtyMin, y)
	s.dirtyMax = max(s.dirtyMax, y)
}

func (s *Screen) width() int  { return s.doc.Width() }
func (s *Screen) height() int { return s.doc.Height() }

func (s *Screen) regionTop() int { return s.top }

func (s *Screen) regionBottom() int {
	if s.bottom < 0 || s.bottom >= s.height() {
		return s.height() - 1
	}
	return s.bottom
}

func (s *Screen) regionLeft() int { return s.left }

func (s *Screen) regionRight() int {
	if s.right < 0 || s.right >= s.width() {
		return s.width() - 1
	}
	return s.right
}

// Print implements command.Sink.
func (s *Screen) Print(text []byte) {
	if s.doc.BufferType == document.BufferUnicode {
		s.printUnicode(text)
		return
	}
	for _, b := range text {
		s.printChar(rune(b))
	}
}

// printUnicode decodes UTF-8, carrying incomplete trailing runes over to
// the next Print call.
func (s *Screen) printUnicode(text []byte) {
	buf := text
	if len(s.u8buf) > 0 {
		buf = append(s.u8buf, text...)
		s.u8buf = nil
	}
	for len(buf) > 0 {
		r, size := utf8.DecodeRune(buf)
		if r == utf8.RuneError && !utf8.FullRune(buf) {
			s.u8buf = append(s.u8buf, buf...)
			return
		}
		s.printChar(r)
		if runewidth.RuneWidth(r) == 2 {
			// The trailing half of a wide rune is an empty spacer.
			s.writeCell(document.Cell{Ch: 0, Attr: s.displayAttr()})
		}
		buf = buf[size:]
	}
}

func (s *Screen) printChar(ch rune) {
	cell := document.Cell{Ch: ch, Attr: s.displayAttr()}
	s.writeCell(cell)
	s.lastCell = &cell
}

func (s *Screen) writeCell(cell document.Cell) {
	if s.caret.Position.X > s.regionRight() {
		if !s.autoWrap {
			s.caret.Position.X = s.regionRight()
		} else {
			s.caret.Position.X = s.regionLeft()
			s.lineFeed()
		}
	}
	s.doc.SetChar(s.caret.Position, cell)
	s.markDirty(s.caret.Position.Y)
	s.caret.Position.X++
}

// displayAttr resolves the caret attribute into what actually lands on the
// grid: inverse video swaps the colors, ice mode folds blink into a bright
// background.
func (s *Screen) displayAttr() attribute.Attribute {
	a := s.caret.Attr
	if s.inverse {
		a.FG, a.BG = a.BG, a.FG
	}
	if s.doc.IceMode == document.IceColors &&
		a.Has(attribute.Blink) &&
		a.BG.Kind == attribute.KindPalette && a.BG.Index < 8 {
		a.BG.Index += 8
		a = a.With(attribute.Blink, false)
	}
	return a
}

// eraseCell is the fill used by every erase operation: a blank carrying
// the active background.
func (s *Screen) eraseCell() document.Cell {
	a := attribute.Default()
	a.BG = s.caret.Attr.BG
	return document.Cell{Ch: ' ', Attr: a}
}

func (s *Screen) lineFeed() {
	s.caret.Position.Y++
	if s.caret.Position.Y > s.regionBottom() {
		if s.AutoGrow && s.top == 0 && s.bottom < 0 {
			s.doc.GrowHeight(s.caret.Position.Y)
			s.tabs.Resize(s.width())
			return
		}
		s.caret.Position.Y = s.regionBottom()
		s.scrollRegionUp(1)
	}
}

func (s *Screen) clampCaret() {
	s.caret.Position.X = max(0, min(s.caret.Position.X, s.width()-1))
	s.caret.Position.Y = max(0, min(s.caret.Position.Y, s.height()-1))
}

// Emit implements command.Sink.
func (s *Screen) Emit(cmd command.Command) {
	switch c := cmd.(type) {
	case command.Bell:
		s.log.Debug("bell")

	case command.Backspace:
		s.caret.Position.X = max(0, s.caret.Position.X-1)

	case command.Tab:
		s.caret.Position.X = s.tabs.Next(s.caret.Position.X)

	case command.CarriageReturn:
		s.caret.Position.X = s.regionLeft()

	case command.LineFeed:
		s.lineFeed()

	case command.ClearScreen:
		s.clearGrid()
		s.caret.Home()

	case command.ResetTerminal:
		s.resetTerminal()

	case command.CursorUp:
		s.caret.Position.Y -= c.N
		s.clampCaret()
	case command.CursorDown:
		s.caret.Position.Y += c.N
		s.clampCaret()
	case command.CursorForward:
		s.caret.Position.X += c.N
		s.clampCaret()
	case command.CursorBack:
		s.caret.Position.X -= c.N
		s.clampCaret()
	case command.CursorNextLine:
		s.caret.Position.X = 0
		s.caret.Position.Y += c.N
		s.clampCaret()
	case command.CursorPrevLine:
		s.caret.Position.X = 0
		s.caret.Position.Y -= c.N
		s.clampCaret()
	case command.CursorColumn:
		s.caret.Position.X = c.N - 1
		s.clampCaret()
	case command.CursorRow:
		s.caret.Position.Y = c.N - 1
		s.clampCaret()

	case command.CursorPosition:
		row, col := c.Row-1, c.Col-1
		if s.origin {
			row += s.regionTop()
		}
		s.caret.Position = document.Point{X: col, Y: row}
		s.clampCaret()

	case command.SaveCaret:
		saved := s.caret
		s.saved = &saved
	case command.RestoreCaret:
		if s.saved != nil {
			s.caret = *s.saved
			s.clampCaret()
		}

	case command.Index:
		s.lineFeed()
	case command.ReverseIndex:
		s.caret.Position.Y--
		if s.caret.Position.Y < s.regionTop() {
			s.caret.Position.Y = s.regionTop()
			s.scrollRegionDown(1)
		}

	case command.EraseDisplay:
		s.eraseDisplay(c.Mode)
	case command.EraseLine:
		s.eraseLine(c.Mode)
	case command.EraseChar:
		s.eraseChars(c.N)

	case command.InsertChar:
		s.insertChars(c.N)
	case command.DeleteChar:
		s.deleteChars(c.N)
	case command.InsertLine:
		s.insertLines(c.N)
	case command.DeleteLine:
		s.deleteLines(c.N)

	case command.ScrollUp:
		s.scrollRegionUp(c.N)
	case command.ScrollDown:
		s.scrollRegionDown(c.N)

	case command.RepeatLastChar:
		if s.lastCell != nil {
			for _i := 0; _i < c.N; _i++ {
				s.writeCell(*s.lastCell)
			}
		}

	case command.SetScrollRegion:
		s.setScrollRegion(c.Top, c.Bottom)
	case command.SetLeftRightMargin:
		s.setLeftRightMargin(c.Left, c.Right)

	case command.ResetAttributes:
		s.caret.Attr = attribute.Default()
		s.inverse = false
	case command.SetStyle:
		s.caret.Attr = s.caret.Attr.With(c.Flag, c.On)
	case command.SetForeground:
		s.caret.Attr.FG = c.Color
	case command.SetBackground:
		s.caret.Attr.BG = c.Color
	case command.SetInverse:
		s.inverse = c.On
	case command.SetBackgroundToForeground:
		s.caret.Attr.BG = s.caret.Attr.FG
	case command.FillToLineEnd:
		s.fillToLineEnd()

	case command.SetMode:
		s.setMode(c.Mode, c.On)
	case command.SetFontPage:
		s.caret.Attr.FontPage = uint8(c.Page)

	case command.TabSet:
		s.tabs.Set(s.caret.Position.X)
	case command.TabClear:
		s.tabs.Unset(s.caret.Position.X)
	case command.ClearAllTabs:
		s.tabs.Clear()

	case command.Hyperlink:
		s.hyperlink(c.URL)

	default:
		s.log.Warn("unhandled command", "command", cmd)
	}
}

func (s *Screen) setMode(mode command.Mode, on bool) {
	switch mode {
	case command.ModeCursorVisible:
		s.caret.Visible = on
	case command.ModeIceColors:
		if on {
			s.doc.IceMode = document.IceColors
		} else {
			s.doc.IceMode = document.IceBlink
		}
	case command.ModeAutoWrap:
		s.autoWrap = on
	case command.ModeOrigin:
		s.origin = on
	case command.ModeMouseSGR:
		s.mouseSGR = on
	case command.ModeMouseX10, command.ModeMouseNormal,
		command.ModeMouseButton, command.ModeMouseAny:
		s.mouseTracking = mode
		s.mouseActive = on
	}
}

func (s *Screen) setScrollRegion(top, bottom int) {
	if top <= 0 {
		top = 1
	}
	if bottom <= 0 {
		bottom = s.height()
	}
	if top >= bottom {
		s.log.Warn("invalid scroll region", "top", top, "bottom", bottom)
		return
	}
	s.top = top - 1
	s.bottom = min(bottom-1, s.height()-1)
	s.caret.Home()
}

func (s *Screen) setLeftRightMargin(left, right int) {
	if left <= 0 {
		left = 1
	}
	if right <= 0 {
		right = s.width()
	}
	if left >= right {
		s.log.Warn("invalid margin band", "left", left, "right", right)
		return
	}
	s.left = left - 1
	s.right = min(right-1, s.width()-1)
	s.caret.Home()
}

func (s *Screen) resetTerminal() {
	s.clearGrid()
	s.caret.Reset()
	s.saved = nil
	s.top, s.bottom = 0, -1
	s.left, s.right = 0, -1
	s.autoWrap = true
	s.origin = false
	s.inverse = false
	s.mouseActive = false
	s.mouseSGR = false
	s.tabs.Reset(tabstops.DefaultInterval)
	s.lastCell = nil
}

func (s *Screen) clearGrid() {
	s.doc.ActiveLayer().Clear()
	s.markDirty(0)
	s.markDirty(s.height() - 1)
}

// fillToLineEnd repaints the run of cells ahead of the caret that share
// the attribute stored at the caret position with the active attribute.
// Nothing happens at the start of a row.
func (s *Screen) fillToLineEnd() {
	pos := s.caret.Position
	if pos.X <= 0 {
		return
	}
	ref := s.doc.Char(pos).Attr
	attr := s.displayAttr()
	for x := pos.X; x < s.width(); x++ {
		p := document.Point{X: x, Y: pos.Y}
		c := s.doc.Char(p)
		if c.Attr != ref {
			break
		}
		c.Attr = attr
		s.doc.SetChar(p, c)
	}
	s.markDirty(pos.Y)
}

func (s *Screen) hyperlink(url string) {
	if url != "" {
		s.linkURL = url
		s.linkStart = s.caret.Position
		return
	}
	if s.linkURL == "" {
		return
	}
	length := (s.caret.Position.Y-s.linkStart.Y)*s.width() +
		(s.caret.Position.X - s.linkStart.X)
	if length > 0 {
		s.doc.ActiveLayer().AddHyperlink(s.linkURL, s.linkStart, length)
	}
	s.linkURL = ""
}
