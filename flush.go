package wpilog

import (
	"time"

	"github.com/BlueZeeKing/allwpilib/internal/buffer"
	"github.com/BlueZeeKing/allwpilib/internal/logging"
	"github.com/BlueZeeKing/allwpilib/internal/record"
	"github.com/BlueZeeKing/allwpilib/internal/sink"
)

// drainFunc writes the drained blocks to a sink and recycles them,
// returning how many blocks and bytes were actually written (less than
// requested if a write failed or disk space ran out partway through).
// flushCount is this call's 1-based sequence number, used for free-space
// resample cadence.
type drainFunc func(blocks []*buffer.Block, flushCount int) (blockCount, bytesWritten int)

// runFileFlusher is the flusher goroutine entry point for a file-backed
// log: open the file, run the steady-state loop, close on exit.
func (d *DataLog) runFileFlusher(preferredFilename string) {
	defer close(d.doneCh)

	name, err := d.fileSink.Open(preferredFilename, d.cfg.MinFreeSpace, d.cfg.FilenameRetries, d.extraHeader)
	if err != nil {
		d.cfg.Logger.Errorf(logging.NSFlush+"opening log file: %v; running in no-sink mode", err)
		d.cfg.EventListener.OnBackgroundError(err)
	} else {
		if free, ferr := d.fileSink.FreeSpace(); ferr == nil {
			d.freeSpaceEstimate = free
		}
		d.cfg.EventListener.OnFileOpened(name)
	}

	d.flushLoop(d.drainToFile)
	d.fileSink.Close()
}

// runCallbackFlusher is the flusher goroutine entry point for a
// callback-backed log.
func (d *DataLog) runCallbackFlusher() {
	defer close(d.doneCh)
	_ = d.callbackSink.Write(record.EncodeFileHeader(d.extraHeader))
	d.flushLoop(d.drainToCallback)
	d.callbackSink.WriteEOF()
}

// flushLoop implements the shared steady-state control flow: wait on cond
// with a Period deadline, handle a pending rename, flush on timeout or
// explicit request, and exit after one final drain once active is false.
func (d *DataLog) flushLoop(drain drainFunc) {
	flushCount := 0
	for {
		d.mu.Lock()
		deadline := time.Now().Add(d.cfg.Period)
		timer := time.AfterFunc(d.cfg.Period, func() {
			d.mu.Lock()
			d.cond.Broadcast()
			d.mu.Unlock()
		})
		for d.active && !d.doFlush && !d.renameRequested && time.Now().Before(deadline) {
			d.cond.Wait()
		}
		timer.Stop()
		timedOut := !time.Now().Before(deadline)

		if d.renameRequested {
			newName := d.newFilename
			d.newFilename = ""
			d.renameRequested = false
			if d.mode == sinkModeFile && d.fileSink.IsOpen() {
				oldName := d.fileSink.Filename()
				d.mu.Unlock()
				renamed, err := d.fileSink.Rename(newName)
				d.mu.Lock()
				if err != nil {
					d.cfg.Logger.Warnf(logging.NSFlush+"rename to %q failed: %v", newName, err)
					d.cfg.EventListener.OnBackgroundError(err)
				} else {
					d.cfg.Logger.Infof(logging.NSFlush+"renamed %q to %q", oldName, renamed)
					d.cfg.EventListener.OnFileRenamed(oldName, renamed)
				}
			}
		}

		shuttingDown := !d.active
		flushNow := d.doFlush || timedOut || shuttingDown
		d.doFlush = false

		// With no file open (open failed or was skipped for low disk space),
		// blocks stay queued so the MaxOutgoing limit pauses producers.
		sinkReady := d.mode != sinkModeFile || d.fileSink.IsOpen()
		var blocks []*buffer.Block
		if flushNow && sinkReady && d.pool.OutgoingLen() > 0 {
			blocks = d.pool.SwapOutgoing()
		}
		d.mu.Unlock()

		blockCount, bytesWritten := 0, 0
		if len(blocks) > 0 {
			flushCount++
			blockCount, bytesWritten = drain(blocks, flushCount)
		}
		if flushNow {
			d.cfg.EventListener.OnFlushCompleted(blockCount, bytesWritten)
		}

		if shuttingDown {
			return
		}
	}
}

// drainToFile writes blocks to the file sink, resampling free space every
// FreeSpaceResampleEvery flushes and stopping early (latching blocked) if
// the estimate falls under MinFreeSpace before a block is written.
func (d *DataLog) drainToFile(blocks []*buffer.Block, flushCount int) (int, int) {
	if !d.fileSink.IsOpen() {
		d.mu.Lock()
		d.pool.Recycle(blocks)
		d.mu.Unlock()
		return 0, 0
	}

	if flushCount%d.cfg.FreeSpaceResampleEvery == 0 {
		if free, err := d.fileSink.FreeSpace(); err == nil {
			d.freeSpaceEstimate = free
		}
	}

	written := 0
	blocksWritten := 0
	blocked := false
	var writeErr error
	for _, b := range blocks {
		if blocked {
			break
		}
		data := b.Bytes()
		if d.freeSpaceEstimate < d.cfg.MinFreeSpace+uint64(len(data)) {
			blocked = true
			writeErr = sink.ErrInsufficientSpace
			d.cfg.Logger.Errorf(logging.NSFlush + "free space below threshold mid-flush, pausing writes")
			break
		}
		if err := d.fileSink.Write(data); err != nil {
			blocked = true
			writeErr = err
			d.cfg.Logger.Errorf(logging.NSFlush+"write failed: %v", err)
			break
		}
		written += len(data)
		blocksWritten++
		d.freeSpaceEstimate -= uint64(len(data))
	}

	if !blocked {
		if err := d.fileSink.Sync(); err != nil {
			d.cfg.Logger.Warnf(logging.NSFlush+"sync failed: %v", err)
		}
	}

	d.mu.Lock()
	if blocked {
		d.blocked = true
		d.cfg.EventListener.OnPaused("disk space or write failure during flush")
		d.cfg.EventListener.OnBackgroundError(writeErr)
	}
	d.pool.Recycle(blocks)
	d.mu.Unlock()

	return blocksWritten, written
}

// drainToCallback writes blocks to the callback sink. The callback sink
// never fails (a user function that wants to signal failure does so out
// of band), so every block is always considered written.
func (d *DataLog) drainToCallback(blocks []*buffer.Block, _ int) (int, int) {
	written := 0
	for _, b := range blocks {
		data := b.Bytes()
		_ = d.callbackSink.Write(data)
		written += len(data)
	}
	d.mu.Lock()
	d.pool.Recycle(blocks)
	d.mu.Unlock()
	return len(blocks), written
}
