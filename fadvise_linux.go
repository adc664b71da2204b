//go:build linux

package dsum

import "golang.org/x/sys/unix"

// fadviseSequential hints to the kernel that the file will be read
// sequentially. Applied to the device handle at open time: the block
// cursor only moves forward, so even though O_DIRECT reads bypass the
// page cache, readahead at the block layer still benefits.
// Best-effort: errors are silently ignored.
func fadviseSequential(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_SEQUENTIAL)
}
