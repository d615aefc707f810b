package sink

import (
	"encoding/hex"
	"errors"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/BlueZeeKing/allwpilib/internal/logging"
	"github.com/BlueZeeKing/allwpilib/internal/record"
	"github.com/BlueZeeKing/allwpilib/internal/vfs"
)

// ErrInsufficientSpace is returned by Open when the target directory has
// less free space than the caller's MinFreeSpace threshold; the caller
// should run in no-sink (buffer-only) mode instead of opening a file.
var ErrInsufficientSpace = errors.New("sink: insufficient free space to open log file")

// ErrOpenFailed is returned by Open when every filename attempt failed to
// create a file.
var ErrOpenFailed = errors.New("sink: failed to create log file after all retries")

// FileSink is the filesystem sink: it owns the currently open log file,
// and exposes the extra operations (rename, sync, free space) the flusher
// needs beyond the common Sink interface.
type FileSink struct {
	fs     vfs.FS
	dir    string
	logger logging.Logger

	filename string
	file     vfs.WritableFile
}

// NewFileSink creates a sink rooted at dir. Open must be called before
// Write.
func NewFileSink(fs vfs.FS, dir string, logger logging.Logger) *FileSink {
	return &FileSink{fs: fs, dir: dir, logger: logger}
}

// randomFilename generates a 16-hex-digit random name with the wpilog_
// prefix and .wpilog suffix.
func randomFilename() string {
	id := uuid.New()
	return "wpilog_" + hex.EncodeToString(id[:8]) + ".wpilog"
}

// Open performs the filesystem flusher's startup sequence: free-space
// check, then up to retries attempts at creating the file exclusively
// (regenerating a random name on every attempt after the first), then
// writing the file header. Returns the filename actually opened.
func (s *FileSink) Open(preferredFilename string, minFreeSpace uint64, retries int, extraHeader []byte) (string, error) {
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}

	free, err := s.fs.FreeSpace(s.dir)
	if err != nil {
		s.logger.Warnf(logging.NSSink+"could not query free space on %s: %v", s.dir, err)
	} else if free < minFreeSpace {
		s.logger.Errorf(logging.NSSink+"insufficient free space on %s (%d < %d), deferring file open", s.dir, free, minFreeSpace)
		return "", ErrInsufficientSpace
	}

	name := preferredFilename
	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if name == "" {
			name = randomFilename()
		}
		path := filepath.Join(s.dir, name)
		f, err := s.fs.CreateExclusive(path)
		if err == nil {
			s.filename = name
			s.file = f
			if err := s.writeHeader(extraHeader); err != nil {
				s.logger.Errorf(logging.NSSink+"failed writing file header to %s: %v", path, err)
				_ = f.Close()
				s.file = nil
				if rmErr := s.fs.Remove(path); rmErr != nil {
					s.logger.Warnf(logging.NSSink+"failed removing half-written file %s: %v", path, rmErr)
				}
				return "", err
			}
			s.logger.Infof(logging.NSSink+"opened log file %s", path)
			return name, nil
		}
		lastErr = err
		s.logger.Warnf(logging.NSSink+"failed to create %s (attempt %d/%d): %v", path, attempt+1, retries, err)
		name = "" // force regeneration on the next attempt
	}
	s.logger.Errorf(logging.NSSink+"giving up after %d attempts: %v", retries, lastErr)
	return "", ErrOpenFailed
}

func (s *FileSink) writeHeader(extraHeader []byte) error {
	return s.Write(record.EncodeFileHeader(extraHeader))
}

// Write writes p in full, retrying transient errors (interrupted syscall,
// temporarily unavailable) and tracking progress across partial writes.
func (s *FileSink) Write(p []byte) error {
	if s.file == nil {
		return errors.New("sink: no file open")
	}
	for len(p) > 0 {
		n, err := s.file.Write(p)
		p = p[n:]
		if err != nil {
			if isTransient(err) {
				continue
			}
			s.logger.Errorf(logging.NSSink+"write to %s failed permanently: %v", s.filename, err)
			return err
		}
	}
	return nil
}

func isTransient(err error) bool {
	return errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN)
}

// Rename renames the currently open file to newName within the same
// directory. Returns the new filename on success. The caller is expected
// to hold no lock during this call that would stall other work for the
// duration of the syscall.
func (s *FileSink) Rename(newName string) (string, error) {
	if s.file == nil {
		return "", errors.New("sink: no file open")
	}
	oldPath := filepath.Join(s.dir, s.filename)
	newPath := filepath.Join(s.dir, newName)
	if err := s.fs.Rename(oldPath, newPath); err != nil {
		return "", err
	}
	s.filename = newName
	return newName, nil
}

// Sync flushes the file to stable storage and syncs the containing
// directory (required for the rename to be durable across a crash).
func (s *FileSink) Sync() error {
	if s.file == nil {
		return nil
	}
	if err := s.file.Sync(); err != nil {
		return err
	}
	return s.fs.SyncDir(s.dir)
}

// FreeSpace returns the current free space estimate on the sink's
// directory.
func (s *FileSink) FreeSpace() (uint64, error) {
	return s.fs.FreeSpace(s.dir)
}

// Filename returns the name of the currently open file.
func (s *FileSink) Filename() string {
	return s.filename
}

// IsOpen reports whether Open has succeeded and Close has not yet been
// called.
func (s *FileSink) IsOpen() bool {
	return s.file != nil
}

// Close closes the underlying file, if open.
func (s *FileSink) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
