//go:build darwin

package dsum

import (
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile reserves size bytes for the output manifest on macOS,
// where there is no fallocate syscall, via fcntl F_PREALLOCATE.
func fallocateFile(file *os.File, size int64) error {
	// F_ALLOCATEALL demands all requested space up front rather than
	// however much the filesystem feels like giving back.
	fst := unix.Fstore_t{
		Flags:   unix.F_ALLOCATEALL,
		Posmode: unix.F_PEOFPOSMODE,
		Offset:  0,
		Length:  size,
	}

	err := unix.FcntlFstore(file.Fd(), unix.F_PREALLOCATE, &fst)
	if err != nil {
		return unix.Ftruncate(int(file.Fd()), size)
	}

	// F_PREALLOCATE only reserves space; the reported file size is still zero.
	return unix.Ftruncate(int(file.Fd()), size)
}
