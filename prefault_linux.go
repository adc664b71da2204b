//go:build linux

package dsum

import "golang.org/x/sys/unix"

// MADV_POPULATE_WRITE was added in Linux 5.14; x/sys/unix doesn't name
// it yet, so the raw value is used directly.
const madvPopulateWrite = 23

// prefaultRegion pre-touches every page of the output mapping and the
// I/O buffers so the first scatter write or read doesn't stall on a
// page fault mid-run. On kernels older than 5.14, madvise returns
// EINVAL, which is harmless to ignore: the pages just fault in lazily
// as before.
func prefaultRegion(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, madvPopulateWrite)
}
