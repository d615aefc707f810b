//go:build !linux

package vfs

import "os"

// syncFile durably flushes f using the platform's ordinary fsync.
func syncFile(f *os.File) error {
	return f.Sync()
}
