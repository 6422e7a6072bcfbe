package command

// PrintEvent is a recorded Print call.
type PrintEvent struct {
	Text string
}

// Recorder is a Sink that keeps everything it receives in order: Print
// calls as PrintEvent, Emit calls as the Command value itself. Useful for
// tests and for tracing a stream.
type Recorder struct {
	Events []any
}

func (r *Recorder) Print(text []byte) {
	r.Events = append(r.Events, PrintEvent{Text: string(text)})
}

func (r *Recorder) Emit(cmd Command) {
	r.Events = append(r.Events, cmd)
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.Events = nil
}
