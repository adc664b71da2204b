//go:build !linux

package dsum

import (
	"fmt"
	"os"

	dsumerrors "github.com/Emjayen/dsum/errors"
)

// device is a best-effort, non-Linux fallback: no O_DIRECT, no
// BLKGETSIZE64. dsum's unbuffered-async-read design targets Linux block
// devices; this build keeps the package importable (and testable
// against regular files) on other Unix-like systems. Non-Unix targets do
// not build, since pool.go allocates buffers through x/sys/unix.
type device struct {
	f *os.File
}

func openDevice(path string, direct bool) (*device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", dsumerrors.ErrDeviceOpen, path, err)
	}
	return &device{f: f}, nil
}

func (d *device) size() (uint64, error) {
	fi, err := d.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", dsumerrors.ErrDeviceGeometry, err)
	}
	return uint64(fi.Size()), nil
}

func (d *device) readAt(buf []byte, offset int64) error {
	n, err := d.f.ReadAt(buf, offset)
	if err != nil && n == 0 {
		return fmt.Errorf("%w: offset %d: %v", dsumerrors.ErrReadFailed, offset, err)
	}
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return nil
}

func (d *device) close() error {
	return d.f.Close()
}
