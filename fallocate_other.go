//go:build !linux && !darwin

package dsum

import "os"

// fallocateFile reserves size bytes for the output manifest. Without a
// native space-reservation call on this platform, Truncate sets the
// reported size but some filesystems won't back it with real blocks
// until written, so the SIGBUS-on-disk-full risk this guards against
// elsewhere isn't fully closed here.
func fallocateFile(file *os.File, size int64) error {
	return file.Truncate(size)
}
