// Package wpilog implements the append-only log writer subsystem for
// WPILOG, a compact binary container for time-stamped telemetry captured
// from many concurrent producers and streamed asynchronously to a file or
// user-supplied byte sink.
//
// The package covers entry registration, record encoding, producer-side
// lock-protected buffering into a pool of fixed-size blocks, and the
// single background flusher that drains those blocks to the configured
// sink and manages its lifecycle (file creation, rename, fsync, disk-space
// governance). The reader/replay side of the format, and any
// foreign-language binding layer, are out of scope: callers consume only
// the Start/Finish/SetMetadata/Append* surface documented on DataLog.
package wpilog
