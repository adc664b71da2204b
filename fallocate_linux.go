//go:build linux

package dsum

import (
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile reserves size bytes for the output manifest before it is
// mapped, so a disk-full condition surfaces here instead of as a SIGBUS
// from a worker's scatter write deep into the run. On Linux, fallocate
// gives a real space reservation instead of a sparse file.
func fallocateFile(file *os.File, size int64) error {
	err := unix.Fallocate(int(file.Fd()), 0, 0, size)
	if err != nil {
		// Some filesystems (NFS among them) don't support fallocate at all.
		return unix.Ftruncate(int(file.Fd()), size)
	}
	// fallocate reserves blocks but leaves the reported file size alone.
	return unix.Ftruncate(int(file.Fd()), size)
}
