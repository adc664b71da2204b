//go:build !linux

package dsum

// fadviseSequential is a no-op here: FADV_SEQUENTIAL is Linux-specific,
// so elsewhere the device read pattern gets no readahead hint beyond
// whatever the platform already does for sequential access.
func fadviseSequential(fd int, offset, length int64) {
}
