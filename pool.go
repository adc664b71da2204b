package dsum

import (
	"fmt"

	"golang.org/x/sys/unix"

	dsumerrors "github.com/Emjayen/dsum/errors"
)

// bufferPool owns queue_depth page-aligned, DMA-capable buffers of size
// io_block_sz, one per request slot. Each buffer is its own anonymous
// mmap region: mmap always returns page-aligned memory, so this gets
// alignment at least as strict as any device sector size without cgo or
// posix_memalign, the same x/sys/unix idiom used to size and prefault the
// output file (fallocate_linux.go, prefault_linux.go).
//
// Buffers live for the run's lifetime; bufferPool exposes no
// deallocation API before release.
type bufferPool struct {
	bufs [][]byte
}

// newBufferPool allocates n buffers of size bufSize. Allocation failure
// is fatal and surfaces before any I/O is submitted.
func newBufferPool(n int, bufSize uint64) (*bufferPool, error) {
	p := &bufferPool{bufs: make([][]byte, 0, n)}
	for i := 0; i < n; i++ {
		buf, err := unix.Mmap(-1, 0, int(bufSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
		if err != nil {
			_ = p.release()
			return nil, fmt.Errorf("%w: buffer %d: %v", dsumerrors.ErrBufferAlloc, i, err)
		}
		prefaultRegion(buf)
		p.bufs = append(p.bufs, buf)
	}
	return p, nil
}

func (p *bufferPool) buffer(slot int) []byte {
	return p.bufs[slot]
}

// release unmaps every buffer. Best-effort: the first error (if any) is
// returned, but every buffer is still attempted.
func (p *bufferPool) release() error {
	var firstErr error
	for _, buf := range p.bufs {
		if buf == nil {
			continue
		}
		if err := unix.Munmap(buf); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.bufs = nil
	return firstErr
}
