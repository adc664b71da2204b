package dsum

import "sync/atomic"

// blockCursor is the single monotonic block counter shared by every I/O
// slot goroutine. claim is the only mutator, and it is the only piece of
// shared mutable state in the pipeline besides the output map itself.
type blockCursor struct {
	next       atomic.Uint64
	blockCount uint64
}

func newBlockCursor(blockCount uint64) *blockCursor {
	return &blockCursor{blockCount: blockCount}
}

// claim returns the next block index to read and whether the device
// range is exhausted. A caller that gets done=true must not issue a
// read for idx; its slot retires.
func (c *blockCursor) claim() (idx uint64, done bool) {
	idx = c.next.Add(1) - 1
	return idx, idx >= c.blockCount
}
