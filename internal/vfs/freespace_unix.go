//go:build linux || darwin

package vfs

import "golang.org/x/sys/unix"

// FreeSpace returns the number of bytes free on the filesystem holding path.
func (fs *osFS) FreeSpace(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}
