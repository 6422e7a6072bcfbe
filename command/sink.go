package command

// Sink receives the decoded output of a dialect parser. Printable runs
// arrive batched through Print; everything structured arrives through Emit.
type Sink interface {
	// Print receives a run of literal glyph bytes. Parsers batch
	// consecutive printable bytes into a single call; the run boundaries
	// depend only on the control bytes in the stream, never on how the
	// input was chunked.
	Print(text []byte)

	// Emit receives one structured command.
	Emit(cmd Command)
}

// Parser turns dialect byte streams into Sink calls. Implementations keep
// their state across Parse calls so sequences may be split at any byte
// boundary. A parser instance must not be shared between goroutines.
type Parser interface {
	Parse(buf []byte, sink Sink)

	// Flush drains any pending printable run. Call it when the stream
	// ends or before inspecting the sink.
	Flush(sink Sink)
}
