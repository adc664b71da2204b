//go:build linux

package dsum

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	dsumerrors "github.com/Emjayen/dsum/errors"
)

// device is the open handle to the raw block device. Geometry discovery
// fetches only the one fact the pipeline needs (total byte size), not
// full disk geometry.
type device struct {
	fd int
}

// openDevice opens path for unbuffered, async-capable reads. On Linux
// this is O_DIRECT; direct is a test seam (see RunConfig.noDirectIO) since
// most test filesystems reject O_DIRECT on an ordinary file.
func openDevice(path string, direct bool) (*device, error) {
	flags := unix.O_RDONLY
	if direct {
		flags |= unix.O_DIRECT
	}

	fd, err := unix.Open(path, flags, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", dsumerrors.ErrDeviceOpen, path, err)
	}

	fadviseSequential(fd, 0, 0)

	return &device{fd: fd}, nil
}

// size returns the device's total byte size: BLKGETSIZE64 for a block
// device, stat size for a regular file (so tests can point dsum at a
// plain file standing in for a device).
func (d *device) size() (uint64, error) {
	if n, err := ioctlGetUint64(d.fd, unix.BLKGETSIZE64); err == nil {
		return n, nil
	}

	var st unix.Stat_t
	if err := unix.Fstat(d.fd, &st); err != nil {
		return 0, fmt.Errorf("%w: %v", dsumerrors.ErrDeviceGeometry, err)
	}
	if st.Size < 0 {
		return 0, fmt.Errorf("%w: negative file size", dsumerrors.ErrDeviceGeometry)
	}
	return uint64(st.Size), nil
}

// readAt issues a blocking pread of len(buf) bytes at offset. Short reads
// past the true device end (possible only for the final, rounded-up
// block — see DESIGN.md's tail-region decision) zero-fill the remainder
// of buf rather than erroring.
func (d *device) readAt(buf []byte, offset int64) error {
	n, err := unix.Pread(d.fd, buf, offset)
	if err != nil {
		return fmt.Errorf("%w: offset %d: %v", dsumerrors.ErrReadFailed, offset, err)
	}
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return nil
}

func (d *device) close() error {
	return unix.Close(d.fd)
}

// ioctlGetUint64 is unix.IoctlGetUint64, inlined: the pinned x/sys version
// (kept below go1.23's module requirement) predates that helper.
func ioctlGetUint64(fd int, req uint) (uint64, error) {
	var value uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(unsafe.Pointer(&value)))
	if errno != 0 {
		return 0, errno
	}
	return value, nil
}
