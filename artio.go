// Package artio parses legacy BBS and terminal art byte streams into an
// editable character-grid document and encodes documents back into those
// dialects.
package artio

import (
	"fmt"
	"runtime/debug"

	"github.com/hnimtadd/artio/command"
	"github.com/hnimtadd/artio/document"
	"github.com/hnimtadd/artio/encoder"
	"github.com/hnimtadd/artio/logger"
	"github.com/hnimtadd/artio/parser/ansi"
	"github.com/hnimtadd/artio/parser/atascii"
	"github.com/hnimtadd/artio/parser/avatar"
	"github.com/hnimtadd/artio/parser/petscii"
	"github.com/hnimtadd/artio/parser/viewdata"
	"github.com/hnimtadd/artio/screen"
)

// Dialect selects a byte-stream encoding.
type Dialect int

const (
	DialectAnsi Dialect = iota
	DialectAvatar
	DialectPetscii
	DialectAtascii
	DialectViewdata
)

// Session binds a dialect parser to a screen over a document.
type Session struct {
	dialect Dialect
	doc     *document.Document
	screen  *screen.Screen
	parser  command.Parser

	logger logger.Logger
}

type Options struct {
	Cols, Rows int
	Dialect    Dialect

	// BufferType defaults to CP437 glyph codes.
	BufferType document.BufferType

	Logger logger.Logger
}

// NewSession creates a session with a fresh document.
func NewSession(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = logger.DefaultLogger
	}
	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 25
	}

	doc := document.New(cols, rows)
	doc.BufferType = opts.BufferType

	var p command.Parser
	switch opts.Dialect {
	case DialectAvatar:
		p = avatar.New(log)
	case DialectPetscii:
		p = petscii.New(log)
	case DialectAtascii:
		p = atascii.New(log)
	case DialectViewdata:
		p = viewdata.New(log)
	default:
		p = ansi.New(log)
	}

	return &Session{
		dialect: opts.Dialect,
		doc:     doc,
		screen:  screen.New(doc, log),
		parser:  p,
		logger:  log,
	}
}

// Parse feeds a chunk of the stream into the session. Chunks may split
// sequences anywhere.
func (s *Session) Parse(buf []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in Parse", "panic", r)
			fmt.Println(string(debug.Stack()))
			err = fmt.Errorf("panic in Parse: %v", r)
		}
	}()
	s.parser.Parse(buf, s.screen)
	return nil
}

// Flush drains any pending printable run into the document. Call it after
// the last chunk.
func (s *Session) Flush() {
	s.parser.Flush(s.screen)
}

// Write implements io.Writer.
func (s *Session) Write(p []byte) (n int, err error) {
	if err := s.Parse(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Document exposes the underlying grid. Flush first.
func (s *Session) Document() *document.Document { return s.doc }

// Screen exposes the command sink, caret and dirty tracking.
func (s *Session) Screen() *screen.Screen { return s.screen }

// DumpString renders the document as plain text.
func (s *Session) DumpString() string {
	s.Flush()
	return s.doc.String()
}

// Encode renders the session's document back into its dialect.
func (s *Session) Encode(opts encoder.Options) ([]byte, error) {
	s.Flush()
	return Encode(s.doc, s.dialect, opts)
}

// Encode renders a document into the given dialect.
func Encode(doc *document.Document, dialect Dialect, opts encoder.Options) ([]byte, error) {
	switch dialect {
	case DialectAvatar:
		return encoder.EncodeAvatar(doc, opts)
	case DialectPetscii:
		return encoder.EncodePetscii(doc, opts)
	case DialectAtascii:
		return encoder.EncodeAtascii(doc, opts)
	case DialectViewdata:
		return encoder.EncodeViewdata(doc, opts)
	default:
		return encoder.EncodeAnsi(doc, opts)
	}
}
