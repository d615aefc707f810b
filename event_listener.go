package wpilog

import "sync"

// EventListener observes data log lifecycle events. File, flush and
// background-error events come from the flusher goroutine; OnPaused and
// OnResumed may also come from the goroutine calling Pause, Resume or an
// Append method, so calls can overlap. Methods must not block for long or
// call back into the data log that invoked them.
type EventListener interface {
	// OnFileOpened fires once a log file has been created and its header
	// written.
	OnFileOpened(filename string)

	// OnFileRenamed fires after a successful rename of the active log
	// file.
	OnFileRenamed(oldName, newName string)

	// OnFlushCompleted fires after a flush cycle drains blockCount blocks
	// (bytesWritten bytes) to the sink. Called even when blockCount is 0,
	// once per flush cycle (period timeout, Flush, or Close).
	OnFlushCompleted(blockCount, bytesWritten int)

	// OnPaused fires when a pause latch is set: by Pause, the first time
	// Reserve overflows MaxOutgoing, or when a flush stops on low disk
	// space or a write failure. While paused, data records are dropped;
	// Start/Finish/SetMetadata control records are still written. reason
	// is a short, human-readable description.
	OnPaused(reason string)

	// OnResumed fires when Resume clears the paused state.
	OnResumed()

	// OnBackgroundError fires when the flusher hits a condition it cannot
	// recover from inline (fatal write error, rename failure). The data
	// log continues running; err is also sent to the Logger.
	OnBackgroundError(err error)
}

// NoOpEventListener implements EventListener with no-op methods. It is the
// default when a Config does not supply one.
type NoOpEventListener struct{}

func (NoOpEventListener) OnFileOpened(string)          {}
func (NoOpEventListener) OnFileRenamed(string, string) {}
func (NoOpEventListener) OnFlushCompleted(int, int)    {}
func (NoOpEventListener) OnPaused(string)              {}
func (NoOpEventListener) OnResumed()                   {}
func (NoOpEventListener) OnBackgroundError(error)       {}

// CountingEventListener is a concurrency-safe EventListener that tallies
// each event, useful in tests that assert on lifecycle behavior without
// caring about exact filenames or byte counts.
type CountingEventListener struct {
	mu sync.Mutex

	filesOpened     int
	filesRenamed    int
	flushes         int
	blocksFlushed   int
	bytesFlushed    int
	pauses          int
	resumes         int
	backgroundErrs  int
	lastError       error
	lastOpenedName  string
	lastRenamedFrom string
	lastRenamedTo   string
}

func (c *CountingEventListener) OnFileOpened(filename string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filesOpened++
	c.lastOpenedName = filename
}

func (c *CountingEventListener) OnFileRenamed(oldName, newName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filesRenamed++
	c.lastRenamedFrom = oldName
	c.lastRenamedTo = newName
}

func (c *CountingEventListener) OnFlushCompleted(blockCount, bytesWritten int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushes++
	c.blocksFlushed += blockCount
	c.bytesFlushed += bytesWritten
}

func (c *CountingEventListener) OnPaused(string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauses++
}

func (c *CountingEventListener) OnResumed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resumes++
}

func (c *CountingEventListener) OnBackgroundError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backgroundErrs++
	c.lastError = err
}

// Counts returns a snapshot of every counter.
func (c *CountingEventListener) Counts() (filesOpened, filesRenamed, flushes, blocksFlushed, bytesFlushed, pauses, resumes, backgroundErrs int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filesOpened, c.filesRenamed, c.flushes, c.blocksFlushed, c.bytesFlushed, c.pauses, c.resumes, c.backgroundErrs
}

// LastError returns the most recently reported background error, if any.
func (c *CountingEventListener) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}
