package sink

// WriteFunc is the user-supplied byte consumer behind a callback sink. It
// is invoked only on the flusher goroutine. An empty slice is the EOF
// sentinel sent once, after the final shutdown drain.
type WriteFunc func(p []byte)

// CallbackSink adapts a WriteFunc to the Sink interface. It has no
// rename/fsync/free-space counterpart: those concerns only apply to a
// real file.
type CallbackSink struct {
	fn WriteFunc
}

// NewCallbackSink wraps fn as a Sink.
func NewCallbackSink(fn WriteFunc) *CallbackSink {
	return &CallbackSink{fn: fn}
}

// Write invokes the wrapped function with p. It never fails: a
// user-supplied function that wants to signal failure does so out of
// band (e.g. by closing over an error variable it owns).
func (c *CallbackSink) Write(p []byte) error {
	c.fn(p)
	return nil
}

// WriteEOF sends the empty-slice EOF sentinel after the final drain.
func (c *CallbackSink) WriteEOF() {
	c.fn(nil)
}
