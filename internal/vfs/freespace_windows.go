//go:build windows

package vfs

import (
	"path/filepath"
	"syscall"

	"golang.org/x/sys/windows"
)

// FreeSpace returns the number of bytes free on the volume holding path.
func (fs *osFS) FreeSpace(path string) (uint64, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}
	ptr, err := syscall.UTF16PtrFromString(filepath.VolumeName(abs) + `\`)
	if err != nil {
		return 0, err
	}
	var freeAvail, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(ptr, &freeAvail, &total, &totalFree); err != nil {
		return 0, err
	}
	return freeAvail, nil
}
