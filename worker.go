package dsum

import (
	"context"
	"crypto/sha1"
)

// workerFleet runs thread_count workers, each repeatedly draining the
// completion queue, hashing the delivered block's chunks into the output
// map, and releasing the slot back to its I/O goroutine.
//
// Hashing is the only CPU-bound step and the throughput bottleneck for
// any reasonably fast device; the only point a worker blocks is the
// receive on completions.
type workerFleet struct {
	slots          []*requestSlot
	completions    completionQueue
	out            *outputMap
	chunkAlign     uint64
	chunksPerBlock uint64
}

// runWorker is one worker's loop. It returns nil when completions is
// closed (drained) and an error if the dispatcher wait itself fails —
// which, for a Go channel, only happens via ctx cancellation propagated
// from a sibling's error.
func (f *workerFleet) runWorker(ctx context.Context) error {
	for {
		select {
		case c, ok := <-f.completions:
			if !ok {
				return nil
			}
			f.hashCompletion(c)

			select {
			case f.slots[c.slot].release <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// hashCompletion computes the base chunk index for the delivered block,
// then hashes each chunk_align window of the slot's buffer into its
// disjoint 20-byte output slot.
func (f *workerFleet) hashCompletion(c completion) {
	chunkBase := c.offset / f.chunkAlign
	buf := f.slots[c.slot].buf

	for i := uint64(0); i < f.chunksPerBlock; i++ {
		start := i * f.chunkAlign
		end := start + f.chunkAlign
		digest := sha1.Sum(buf[start:end])
		f.out.writeDigest(chunkBase+i, digest[:])
	}
}
