package wpilog

import (
	"time"

	"github.com/BlueZeeKing/allwpilib/internal/logging"
	"github.com/BlueZeeKing/allwpilib/internal/vfs"
)

// Default tunables, carried over from the reference implementation's
// constants.
const (
	DefaultBlockSize              = 16 * 1024
	DefaultMaxOutgoing            = 64 // 1 MiB of outgoing blocks
	DefaultMaxFree                = 16 // 256 KiB of recycled blocks
	DefaultMinFreeSpace           = 5 * 1024 * 1024
	DefaultFilenameRetries        = 5
	DefaultFreeSpaceResampleEvery = 10
	DefaultPeriod                 = 250 * time.Millisecond
)

// Config collects every tunable and dependency the data log needs at open
// time. Unlike the functional-options pattern, callers build a Config value
// directly (or start from DefaultConfig and override fields), matching the
// options-struct convention used throughout this codebase.
type Config struct {
	// BlockSize is the fixed capacity of each buffer block, in bytes.
	BlockSize int

	// MaxOutgoing bounds the number of filled blocks awaiting flush before
	// Reserve latches Paused.
	MaxOutgoing int

	// MaxFree bounds the number of blocks kept on the recycle list.
	MaxFree int

	// MinFreeSpace is the minimum free disk space required to open a log
	// file and to keep writing to it, in bytes. Ignored by a callback-backed
	// log.
	MinFreeSpace uint64

	// FilenameRetries bounds the number of CreateExclusive attempts the
	// file sink makes before giving up.
	FilenameRetries int

	// FreeSpaceResampleEvery is the number of flushes between free-space
	// re-checks against MinFreeSpace.
	FreeSpaceResampleEvery int

	// Period is the steady-state interval between background flushes, and
	// the deadline the flusher waits against between explicit wakeups.
	Period time.Duration

	// Logger receives conditions the writer handles internally instead of
	// returning an error. Defaults to logging.Discard if nil or typed-nil.
	Logger logging.Logger

	// EventListener observes lifecycle events (file open/rename, flush,
	// pause/resume, background errors). Defaults to NoOpEventListener if
	// nil.
	EventListener EventListener

	// FS is the filesystem the file sink uses. Defaults to vfs.Default()
	// if nil. Unused by a callback-backed log.
	FS vfs.FS
}

// DefaultConfig returns a Config populated with the package's default
// tunables and a discard logger, no-op event listener, and the OS
// filesystem.
func DefaultConfig() *Config {
	return &Config{
		BlockSize:              DefaultBlockSize,
		MaxOutgoing:            DefaultMaxOutgoing,
		MaxFree:                DefaultMaxFree,
		MinFreeSpace:           DefaultMinFreeSpace,
		FilenameRetries:        DefaultFilenameRetries,
		FreeSpaceResampleEvery: DefaultFreeSpaceResampleEvery,
		Period:                 DefaultPeriod,
		Logger:                 logging.Discard,
		EventListener:          NoOpEventListener{},
		FS:                     vfs.Default(),
	}
}

// withDefaults returns a copy of cfg (or a fresh DefaultConfig if cfg is
// nil) with every zero-valued field backfilled from the defaults.
func withDefaults(cfg *Config) *Config {
	def := DefaultConfig()
	if cfg == nil {
		return def
	}
	out := *cfg
	if out.BlockSize <= 0 {
		out.BlockSize = def.BlockSize
	}
	if out.MaxOutgoing <= 0 {
		out.MaxOutgoing = def.MaxOutgoing
	}
	if out.MaxFree <= 0 {
		out.MaxFree = def.MaxFree
	}
	if out.MinFreeSpace == 0 {
		out.MinFreeSpace = def.MinFreeSpace
	}
	if out.FilenameRetries <= 0 {
		out.FilenameRetries = def.FilenameRetries
	}
	if out.FreeSpaceResampleEvery <= 0 {
		out.FreeSpaceResampleEvery = def.FreeSpaceResampleEvery
	}
	if out.Period <= 0 {
		out.Period = def.Period
	}
	if logging.IsNil(out.Logger) {
		out.Logger = def.Logger
	}
	if out.EventListener == nil {
		out.EventListener = def.EventListener
	}
	if out.FS == nil {
		out.FS = def.FS
	}
	return &out
}
