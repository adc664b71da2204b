package dsum

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	dsumerrors "github.com/Emjayen/dsum/errors"
)

// outputMap is the memory-mapped output file: exactly output_size bytes,
// writable by every worker. Each worker writes only to the 20-byte
// region it owns for the chunk it just hashed; those regions are
// disjoint by construction, so writeDigest needs no locking: no two
// workers ever write the same byte range.
type outputMap struct {
	file *os.File
	mm   mmap.MMap
	data []byte
}

// newOutputMap creates/truncates path to size bytes and maps it RDWR.
// fallocate runs first, to fail fast on disk-full rather than via
// SIGBUS during a scatter write, then mmap.MapRegion.
func newOutputMap(path string, size uint64) (*outputMap, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dsumerrors.ErrOutputCreate, err)
	}

	if err := fallocateFile(f, int64(size)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", dsumerrors.ErrOutputCreate, err)
	}

	var mm mmap.MMap
	if size > 0 {
		mm, err = mmap.MapRegion(f, int(size), mmap.RDWR, 0, 0)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%w: %v", dsumerrors.ErrOutputMap, err)
		}
	}

	om := &outputMap{file: f, mm: mm}
	if mm != nil {
		om.data = []byte(mm)
	}

	prefaultRegion(om.data)

	return om, nil
}

// writeDigest copies a 20-byte digest into chunk chunkIdx's slot, at byte
// offset chunkIdx*20.
func (o *outputMap) writeDigest(chunkIdx uint64, digest []byte) {
	off := chunkIdx * digestSize
	copy(o.data[off:off+digestSize], digest)
}

// close flushes the mapping to disk rather than relying on process-exit
// semantics, unmaps it, and closes the file.
func (o *outputMap) close() error {
	var err error
	if o.mm != nil {
		if ferr := o.mm.Flush(); ferr != nil {
			err = ferr
		}
		if uerr := o.mm.Unmap(); uerr != nil && err == nil {
			err = uerr
		}
	}
	if cerr := o.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
