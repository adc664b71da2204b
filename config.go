package dsum

import (
	"github.com/klauspost/cpuid/v2"

	dsumerrors "github.com/Emjayen/dsum/errors"
)

const (
	// defaultIOBlockSize is the default /iosize value, bytes.
	defaultIOBlockSize = 0x10000

	// defaultQueueDepth is the default /iodepth value.
	defaultQueueDepth = 256

	// maxQueueDepth is the hard ceiling on /iodepth.
	maxQueueDepth = 1024

	// maxThreadCount is the hard ceiling on /threads.
	maxThreadCount = 64

	// digestSize is the width, in bytes, of one chunk's output slot.
	digestSize = 20
)

// RunConfig is the immutable-after-Validate configuration for a run.
type RunConfig struct {
	DevicePath string // raw block device path; required
	OutputPath string // output manifest path; required
	ChunkAlign uint64 // chunk_align; required, > 0

	IOBlockSize uint64 // io_block_sz; 0 means defaultIOBlockSize
	QueueDepth  int    // queue_depth; 0 means defaultQueueDepth
	ThreadCount int    // thread_count; 0 means "use all physical cores"
	DiskBytes   uint64 // disk_bytes to process; 0 means "full device"

	// noDirectIO disables O_DIRECT on device open. Always false via the
	// CLI; tests targeting a regular file on a filesystem that rejects
	// O_DIRECT (tmpfs, overlayfs) set this true. Zero-value false means
	// RunConfig{} built directly (not through ParseArgs) still gets the
	// real behavior by default.
	noDirectIO bool

	// warn receives non-fatal diagnostics produced by deriveFromDevice.
	// nil is legal and discards them.
	warn func(format string, args ...any)
}

// derived holds values computed from a validated RunConfig.
type derived struct {
	blockCount      uint64
	chunksPerBlock  uint64
	outputSize      uint64
	threadCount     int
	queueDepth      int
	ioBlockSize     uint64
	diskBytes       uint64
}

// Validate checks the configuration's constraints and fills in defaults.
// It does not touch the filesystem or the device; that happens in
// deriveFromDevice, which needs the device's true size.
func (c *RunConfig) Validate() error {
	if c.DevicePath == "" {
		return dsumerrors.ErrMissingDevicePath
	}
	if c.OutputPath == "" {
		return dsumerrors.ErrMissingOutputPath
	}
	if c.ChunkAlign == 0 {
		return dsumerrors.ErrMissingChunkAlign
	}

	if c.IOBlockSize == 0 {
		c.IOBlockSize = defaultIOBlockSize
	}
	if c.QueueDepth == 0 {
		c.QueueDepth = defaultQueueDepth
	}

	if c.ChunkAlign > c.IOBlockSize {
		return dsumerrors.ErrAlignTooLarge
	}
	if c.IOBlockSize%c.ChunkAlign != 0 {
		return dsumerrors.ErrAlignNotDivisor
	}
	if c.QueueDepth < 1 || c.QueueDepth > maxQueueDepth {
		return dsumerrors.ErrQueueDepthRange
	}
	if c.ThreadCount < 0 || c.ThreadCount > maxThreadCount {
		return dsumerrors.ErrThreadCountRange
	}

	return nil
}

// deriveFromDevice clamps DiskBytes/ThreadCount against the discovered
// device size and physical core count, and computes the run's derived
// sizes. trueDiskSize is in bytes.
func (c *RunConfig) deriveFromDevice(trueDiskSize uint64) derived {
	diskBytes := c.DiskBytes
	if diskBytes > trueDiskSize {
		c.warnf("Desired size greater than actual disk size.")
		diskBytes = trueDiskSize
	}
	if diskBytes == 0 {
		diskBytes = trueDiskSize
	}
	diskBytes = roundUp(diskBytes, c.IOBlockSize)

	threads := c.ThreadCount
	physicalCores := cpuid.CPU.PhysicalCores
	if physicalCores < 1 {
		physicalCores = 1
	}
	if threads > physicalCores {
		threads = physicalCores
		c.warnf("Desired thread count greater than available cores.")
	}
	if threads == 0 {
		threads = physicalCores
	}

	blockCount := diskBytes / c.IOBlockSize
	chunksPerBlock := c.IOBlockSize / c.ChunkAlign
	outputSize := (diskBytes / c.ChunkAlign) * digestSize

	queueDepth := c.QueueDepth
	if blockCount > 0 && uint64(queueDepth) > blockCount {
		// No point running more I/O slots than there are blocks to read.
		queueDepth = int(blockCount)
	}
	if queueDepth < 1 {
		queueDepth = 1
	}

	return derived{
		blockCount:     blockCount,
		chunksPerBlock: chunksPerBlock,
		outputSize:     outputSize,
		threadCount:    threads,
		queueDepth:     queueDepth,
		ioBlockSize:    c.IOBlockSize,
		diskBytes:      diskBytes,
	}
}

func (c *RunConfig) warnf(format string, args ...any) {
	if c.warn != nil {
		c.warn(format, args...)
	}
}

func roundUp(n, m uint64) uint64 {
	return ((n + m - 1) / m) * m
}
