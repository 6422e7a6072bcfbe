// Package command defines the dialect-independent command set produced by
// the stream parsers and consumed by sinks.
package command

import "github.com/hnimtadd/artio/attribute"

// Command is one structured operation decoded from a byte stream. The set
// of implementations is closed; sinks switch over the concrete types.
type Command interface {
	isCommand()
}

// EraseMode selects the region of an erase operation relative to the caret.
type EraseMode int

const (
	EraseToEnd EraseMode = iota
	EraseToStart
	EraseAll
)

// Mode is a terminal mode toggled via SetMode.
type Mode int

const (
	ModeCursorVisible Mode = iota
	ModeIceColors
	ModeAutoWrap
	ModeOrigin
	ModeMouseX10
	ModeMouseNormal
	ModeMouseButton
	ModeMouseAny
	ModeMouseSGR
)

// Control flow.
type (
	Bell           struct{}
	Backspace      struct{}
	Tab            struct{}
	CarriageReturn struct{}
	LineFeed       struct{}

	// ClearScreen clears the grid and homes the caret.
	ClearScreen struct{}

	// ResetTerminal restores attributes, modes and tab stops and clears
	// the grid.
	ResetTerminal struct{}
)

// Caret motion. Counts are always >= 1; row/column values are 1-based.
type (
	CursorUp       struct{ N int }
	CursorDown     struct{ N int }
	CursorForward  struct{ N int }
	CursorBack     struct{ N int }
	CursorNextLine struct{ N int }
	CursorPrevLine struct{ N int }
	CursorColumn   struct{ N int }
	CursorRow      struct{ N int }
	CursorPosition struct{ Row, Col int }
	SaveCaret      struct{}
	RestoreCaret   struct{}
	Index          struct{}
	ReverseIndex   struct{}
)

// Editing.
type (
	EraseDisplay struct{ Mode EraseMode }
	EraseLine    struct{ Mode EraseMode }
	EraseChar    struct{ N int }
	InsertLine   struct{ N int }
	DeleteLine   struct{ N int }
	InsertChar   struct{ N int }
	DeleteChar   struct{ N int }
	ScrollUp     struct{ N int }
	ScrollDown   struct{ N int }

	// RepeatLastChar prints the last graphic character again N times.
	RepeatLastChar struct{ N int }

	SetScrollRegion struct{ Top, Bottom int }

	// SetLeftRightMargin bounds printing and carriage returns to a column
	// band, 1-based inclusive. Right 0 means the last column.
	SetLeftRightMargin struct{ Left, Right int }
)

// Style. Style commands only ever touch the caret attribute, never cells
// already on the grid.
type (
	ResetAttributes struct{}
	SetStyle        struct {
		Flag attribute.Flag
		On   bool
	}
	SetForeground struct{ Color attribute.Color }
	SetBackground struct{ Color attribute.Color }

	// SetInverse swaps foreground and background of everything printed
	// while active.
	SetInverse struct{ On bool }

	// SetBackgroundToForeground copies the active foreground into the
	// background (teletext "new background").
	SetBackgroundToForeground struct{}

	// FillToLineEnd repaints the run of cells from the caret to the end
	// of the row that share the attribute found at the caret with the
	// active attribute. Teletext attribute switches act to the row end.
	FillToLineEnd struct{}
)

// Modes, tabs and annotations.
type (
	SetMode struct {
		Mode Mode
		On   bool
	}
	SetFontPage  struct{ Page int }
	TabSet       struct{}
	TabClear     struct{}
	ClearAllTabs struct{}

	// Hyperlink opens a link region at the caret; an empty URL closes it.
	Hyperlink struct{ URL string }
)

func (Bell) isCommand()           {}
func (Backspace) isCommand()      {}
func (Tab) isCommand()            {}
func (CarriageReturn) isCommand() {}
func (LineFeed) isCommand()       {}
func (ClearScreen) isCommand()    {}
func (ResetTerminal) isCommand()  {}

func (CursorUp) isCommand()       {}
func (CursorDown) isCommand()     {}
func (CursorForward) isCommand()  {}
func (CursorBack) isCommand()     {}
func (CursorNextLine) isCommand() {}
func (CursorPrevLine) isCommand() {}
func (CursorColumn) isCommand()   {}
func (CursorRow) isCommand()      {}
func (CursorPosition) isCommand() {}
func (SaveCaret) isCommand()      {}
func (RestoreCaret) isCommand()   {}
func (Index) isCommand()          {}
func (ReverseIndex) isCommand()   {}

func (EraseDisplay) isCommand()       {}
func (EraseLine) isCommand()          {}
func (EraseChar) isCommand()          {}
func (InsertLine) isCommand()         {}
func (DeleteLine) isCommand()         {}
func (InsertChar) isCommand()         {}
func (DeleteChar) isCommand()         {}
func (ScrollUp) isCommand()           {}
func (ScrollDown) isCommand()         {}
func (RepeatLastChar) isCommand()     {}
func (SetScrollRegion) isCommand()    {}
func (SetLeftRightMargin) isCommand() {}

func (ResetAttributes) isCommand()           {}
func (SetStyle) isCommand()                  {}
func (SetForeground) isCommand()             {}
func (SetBackground) isCommand()             {}
func (SetInverse) isCommand()                {}
func (SetBackgroundToForeground) isCommand() {}
func (FillToLineEnd) isCommand()             {}

func (SetMode) isCommand()      {}
func (SetFontPage) isCommand()  {}
func (TabSet) isCommand()       {}
func (TabClear) isCommand()     {}
func (ClearAllTabs) isCommand() {}
func (Hyperlink) isCommand()    {}
