// Package sink implements the two interchangeable byte-stream destinations
// the flusher writes drained blocks to: a filesystem sink (create, append,
// rename, fsync, free-space governance) and a callback sink (invoke a
// user-supplied function). Both satisfy the same minimal Sink interface;
// the flusher holds the concrete FileSink or CallbackSink and calls
// FileSink's extra methods directly for rename/fsync/free-space.
package sink

// Sink is the minimal interface the flusher writes blocks through.
type Sink interface {
	// Write writes p in full, retrying transient errors internally.
	// A non-nil error means writing has permanently failed for this sink.
	Write(p []byte) error
}
