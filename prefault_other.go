//go:build !linux

package dsum

// prefaultRegion is a no-op here: MADV_POPULATE_WRITE is Linux-specific,
// so elsewhere the output mapping and I/O buffers just fault in lazily
// on first touch.
func prefaultRegion(data []byte) {
}
