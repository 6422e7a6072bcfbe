// Package encoder turns documents back into dialect byte streams.
package encoder

import "errors"

// CompatibilityLevel bounds what an ANSI encoder may emit. Levels are
// ordered; a higher level is a superset of the one below.
type CompatibilityLevel int

const (
	// LevelAnsiSys targets DOS ANSI.SYS: 16 colors, no repeat
	// sequences, no cursor tricks beyond the basics.
	LevelAnsiSys CompatibilityLevel = iota
	// LevelVT100 adds cursor-forward runs.
	LevelVT100
	// LevelIcyTerm adds 256-color and 24-bit SGR, repeat sequences and
	// font page switching.
	LevelIcyTerm
	// LevelUTF8 additionally emits text as UTF-8 instead of CP437.
	LevelUTF8
)

func (l CompatibilityLevel) Supports256Colors() bool { return l >= LevelIcyTerm }
func (l CompatibilityLevel) SupportsTrueColor() bool { return l >= LevelIcyTerm }
func (l CompatibilityLevel) SupportsRepeat() bool    { return l >= LevelIcyTerm }
func (l CompatibilityLevel) SupportsFontPages() bool { return l >= LevelIcyTerm }
func (l CompatibilityLevel) SupportsCursorForward() bool {
	return l >= LevelVT100
}
func (l CompatibilityLevel) SupportsUTF8() bool { return l == LevelUTF8 }

// ScreenPrep selects what an encoder emits before the first cell.
type ScreenPrep int

const (
	PrepNone ScreenPrep = iota
	// PrepClear emits a clear-screen so playback starts on a blank
	// grid.
	PrepClear
	// PrepHome only moves the caret to the origin.
	PrepHome
)

// Options controls encoding. The zero value is a conservative, lossless
// default at the IcyTerm level.
type Options struct {
	Level CompatibilityLevel

	// Compress drops trailing blanks and folds runs.
	Compress bool

	// UseRepeat folds character runs into repeat sequences. Requires a
	// level that supports them.
	UseRepeat bool

	// UseCursorForward encodes runs of unstyled blanks as caret motion
	// instead of spaces.
	UseCursorForward bool

	// PreserveLineLength keeps trailing blanks so every encoded row has
	// its full width.
	PreserveLineLength bool

	// SkipLines excludes the listed 0-based rows; playback jumps over
	// them with explicit caret positioning.
	SkipLines []int

	ScreenPrep ScreenPrep

	// MaxLineLength splits output lines that grow past this many bytes,
	// guarding the caret position around the break. Zero disables
	// splitting.
	MaxLineLength int
}

// DefaultOptions returns the settings used for plain lossless saves.
func DefaultOptions() Options {
	return Options{Level: LevelIcyTerm, Compress: true}
}

// Named encode failures. Encoders fail closed: a document that cannot be
// represented under the requested options returns an error instead of
// degrading silently.
var (
	ErrTrueColorUnsupported = errors.New("level does not support 24-bit color")
	Err256ColorUnsupported  = errors.New("level does not support 256-color indexes")
	ErrFontPageUnsupported  = errors.New("level does not support font pages")
	ErrRepeatUnsupported    = errors.New("level does not support repeat sequences")
	ErrUnsupportedColor     = errors.New("color not representable in this dialect")
	ErrUnsupportedChar      = errors.New("character not representable in this dialect")
	ErrAttributeAlignment   = errors.New("attribute change does not align with a blank cell")
)
