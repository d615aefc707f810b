package wpilog

import (
	"sync"
	"time"

	"github.com/BlueZeeKing/allwpilib/internal/buffer"
	"github.com/BlueZeeKing/allwpilib/internal/logging"
	"github.com/BlueZeeKing/allwpilib/internal/mempool"
	"github.com/BlueZeeKing/allwpilib/internal/record"
	"github.com/BlueZeeKing/allwpilib/internal/registry"
	"github.com/BlueZeeKing/allwpilib/internal/sink"
)

// processStart anchors monotonicMicros: time.Since measures against the
// monotonic reading time.Now() embeds, so elapsed time here is immune to
// wall-clock adjustments even though no field is ever compared to another
// process's clock.
var processStart = time.Now()

func monotonicMicros() uint64 {
	return uint64(time.Since(processStart).Microseconds())
}

type sinkMode int

const (
	sinkModeFile sinkMode = iota
	sinkModeCallback
)

// DataLog is the append-only log writer: entry registration, producer-side
// buffering, and the single background flusher that drains buffers to a
// file or callback sink. All exported methods are safe for concurrent use
// by any number of producer goroutines; the flusher runs on its own
// goroutine started by OpenFile/OpenCallback.
type DataLog struct {
	mu   sync.Mutex
	cond *sync.Cond

	cfg *Config

	reg  *registry.Registry
	pool *buffer.Pool

	mode         sinkMode
	fileSink     *sink.FileSink
	callbackSink *sink.CallbackSink
	extraHeader  []byte

	// active, doFlush, and newFilename/renameRequested are the flusher's
	// steady-state control flags, guarded by mu and signaled through cond.
	active          bool
	doFlush         bool
	newFilename     string
	renameRequested bool

	// userPaused and blocked are the two latches the design note in the
	// requirements keeps distinct from the buffer pool's own overflow
	// latch (pool.Paused): userPaused is set only by Pause, blocked only
	// by the flusher's disk-space governance. All three suppress data
	// records; Resume clears all three together.
	userPaused bool
	blocked    bool

	// freeSpaceEstimate is touched only by the flusher goroutine; no lock
	// needed since producers never read it.
	freeSpaceEstimate uint64

	closed    bool
	closeOnce sync.Once
	doneCh    chan struct{}
}

func newDataLog(cfg *Config) *DataLog {
	cfg = withDefaults(cfg)
	d := &DataLog{
		cfg:    cfg,
		reg:    registry.New(),
		pool:   buffer.NewPool(cfg.BlockSize, cfg.MaxOutgoing, cfg.MaxFree),
		active: true,
		doneCh: make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// OpenFile starts a data log that flushes to dir/filename. If filename is
// empty, the flusher generates a random name on open. If period is <= 0,
// cfg's Period (or the package default) is used. cfg may be nil to accept
// every default.
func OpenFile(dir, filename string, period time.Duration, extraHeader []byte, cfg *Config) *DataLog {
	d := newDataLog(cfg)
	if period > 0 {
		d.cfg.Period = period
	}
	d.mode = sinkModeFile
	d.extraHeader = extraHeader
	d.fileSink = sink.NewFileSink(d.cfg.FS, dir, d.cfg.Logger)
	go d.runFileFlusher(filename)
	return d
}

// OpenCallback starts a data log that flushes by invoking fn on the
// flusher goroutine with each drained chunk of bytes, and once more with
// an empty slice as an EOF sentinel after Close.
func OpenCallback(fn sink.WriteFunc, period time.Duration, extraHeader []byte, cfg *Config) *DataLog {
	d := newDataLog(cfg)
	if period > 0 {
		d.cfg.Period = period
	}
	d.mode = sinkModeCallback
	d.extraHeader = extraHeader
	d.callbackSink = sink.NewCallbackSink(fn)
	go d.runCallbackFlusher()
	return d
}

// SetFilename requests that the active log file be renamed on the next
// flush cycle. A no-op for a callback-backed log, and silently dropped if
// no file is open yet by the time the flusher processes it (matches the
// reference behavior: a rename requested before the first open is never
// retried).
func (d *DataLog) SetFilename(name string) {
	d.mu.Lock()
	d.newFilename = name
	d.renameRequested = true
	d.cond.Broadcast()
	d.mu.Unlock()
}

// Flush requests an immediate flush of any buffered records. It does not
// block until the flush completes.
func (d *DataLog) Flush() {
	d.mu.Lock()
	d.doFlush = true
	d.cond.Broadcast()
	d.mu.Unlock()
}

// Pause sets the user-requested pause latch: subsequent data records are
// dropped (Start/Finish/SetMetadata are never affected) until Resume.
func (d *DataLog) Pause() {
	d.mu.Lock()
	if !d.userPaused {
		d.userPaused = true
		d.cfg.EventListener.OnPaused("paused by caller")
	}
	d.mu.Unlock()
}

// Resume clears every pause latch: user-requested, disk-space-blocked,
// and the buffer pool's overflow latch.
func (d *DataLog) Resume() {
	d.mu.Lock()
	wasPaused := d.userPaused || d.blocked || d.pool.Paused
	d.userPaused = false
	d.blocked = false
	d.pool.Paused = false
	if wasPaused {
		d.cfg.EventListener.OnResumed()
	}
	d.mu.Unlock()
}

// Start registers name as an entry of type typ if not already registered,
// returning its id. Returns 0 if name still has live registrations under a
// different type; the existing registration is left untouched.
func (d *DataLog) Start(name, typ, metadata string, timestamp uint64) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0
	}
	res := d.reg.Start(name, typ)
	if res.Conflict {
		d.cfg.Logger.Warnf(logging.NSEntry+"Start(%q): declared type %q conflicts with existing registration", name, typ)
		return 0
	}
	if res.Emit {
		d.emitLocked(0, record.EncodeStart(res.ID, name, typ, metadata), timestamp)
	}
	return res.ID
}

// Finish releases one registration of id. No-op if id is 0.
func (d *DataLog) Finish(id uint32, timestamp uint64) {
	if id == 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.reg.Finish(id) {
		d.emitLocked(0, record.EncodeFinish(id), timestamp)
	}
}

// SetMetadata emits a SetMetadata control record for id. No-op if id is 0.
func (d *DataLog) SetMetadata(id uint32, metadata string, timestamp uint64) {
	if id == 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.emitLocked(0, record.EncodeSetMetadata(id, metadata), timestamp)
}

func (d *DataLog) AppendBoolean(id uint32, value bool, timestamp uint64) {
	d.appendData(id, record.EncodeBoolean(value), timestamp)
}

func (d *DataLog) AppendInteger(id uint32, value int64, timestamp uint64) {
	d.appendData(id, record.EncodeInteger(value), timestamp)
}

func (d *DataLog) AppendFloat(id uint32, value float32, timestamp uint64) {
	d.appendData(id, record.EncodeFloat(value), timestamp)
}

func (d *DataLog) AppendDouble(id uint32, value float64, timestamp uint64) {
	d.appendData(id, record.EncodeDouble(value), timestamp)
}

// AppendString emits value's UTF-8 bytes verbatim; the wire format carries
// no separate length prefix for a string payload, since the record header
// already declares payload_len.
func (d *DataLog) AppendString(id uint32, value string, timestamp uint64) {
	d.appendData(id, []byte(value), timestamp)
}

// AppendRaw emits value verbatim.
func (d *DataLog) AppendRaw(id uint32, value []byte, timestamp uint64) {
	d.appendData(id, value, timestamp)
}

func (d *DataLog) AppendBooleanArray(id uint32, value []bool, timestamp uint64) {
	d.appendData(id, record.EncodeBooleanArray(value), timestamp)
}

func (d *DataLog) AppendIntegerArray(id uint32, value []int64, timestamp uint64) {
	d.appendData(id, record.EncodeIntegerArray(value), timestamp)
}

func (d *DataLog) AppendFloatArray(id uint32, value []float32, timestamp uint64) {
	d.appendData(id, record.EncodeFloatArray(value), timestamp)
}

func (d *DataLog) AppendDoubleArray(id uint32, value []float64, timestamp uint64) {
	d.appendData(id, record.EncodeDoubleArray(value), timestamp)
}

func (d *DataLog) AppendStringArray(id uint32, value []string, timestamp uint64) {
	d.appendData(id, record.EncodeStringArray(value), timestamp)
}

// appendData implements the common producer-API shape for data records:
// sentinel check, pause check, then emit. Start/Finish/SetMetadata bypass
// the pause check by calling emitLocked directly, since control records
// must not be suppressed once issued (see EventListener.OnPaused doc).
func (d *DataLog) appendData(id uint32, payload []byte, timestamp uint64) {
	if id == 0 {
		d.cfg.Logger.Warnf(logging.NSEntry + "append to entry id 0 ignored")
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.userPaused || d.blocked || d.pool.Paused {
		return
	}
	d.emitLocked(id, payload, timestamp)
}

// emitLocked encodes entryID/payload/ts as one record and reserves its
// bytes into the buffer pool, splitting the payload across block
// boundaries as needed. Caller holds mu.
func (d *DataLog) emitLocked(entryID uint32, payload []byte, ts uint64) {
	if ts == 0 {
		ts = monotonicMicros()
	}
	h := record.Header{EntryID: entryID, PayloadLen: uint32(len(payload)), TimestampUs: ts}
	hdr := mempool.GlobalPool.Get(h.Size())[:h.Size()]
	h.Encode(hdr)

	overflowed := d.reserveAndCopy(hdr)
	mempool.GlobalPool.Put(hdr)
	overflowed = d.reserveAndCopy(payload) || overflowed

	if overflowed {
		d.cfg.Logger.Warnf(logging.NSBuffer+"outgoing buffer limit (%d blocks) reached, pausing producers", d.pool.MaxOutgoing)
		d.cfg.EventListener.OnPaused("outgoing buffer overflow")
	}
}

// reserveAndCopy copies data into the pool in BlockSize-sized chunks,
// reporting whether any chunk's Reserve call newly latched the pool's
// overflow pause.
func (d *DataLog) reserveAndCopy(data []byte) bool {
	overflowed := false
	off := 0
	for off < len(data) {
		n := len(data) - off
		if n > d.pool.BlockSize {
			n = d.pool.BlockSize
		}
		dst, ov := d.pool.Reserve(n)
		copy(dst, data[off:off+n])
		off += n
		if ov {
			overflowed = true
		}
	}
	return overflowed
}

// Close stops accepting further lifecycle requests, signals the flusher
// to drain and exit, and blocks until it has. Safe to call more than
// once. The caller must have ceased issuing appends before calling Close.
func (d *DataLog) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.active = false
		d.doFlush = true
		d.cond.Broadcast()
		d.mu.Unlock()
		<-d.doneCh
	})
}
