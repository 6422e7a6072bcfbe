// Package format loads and saves the binary container formats sharing the
// document model: XBin, flat screen dumps and TundraDraw files.
package format

import "errors"

// Load failures are fatal and named; a partially parsed document is never
// returned.
var (
	// ErrTooShort: the buffer ends before the header or a required
	// section is complete.
	ErrTooShort = errors.New("file too short")
	// ErrBadMagic: the identification bytes do not match the format.
	ErrBadMagic = errors.New("unrecognized file id")
	// ErrInvalidSize: header dimensions outside the supported range.
	ErrInvalidSize = errors.New("unsupported dimensions")
	// ErrUnsupportedFont: font metrics the format cannot carry.
	ErrUnsupportedFont = errors.New("unsupported font")
	// ErrOddLength: a char/attribute pair format with a dangling byte.
	ErrOddLength = errors.New("odd data length")
)
