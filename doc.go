// Package dsum computes a dense SHA-1 fingerprint map of a raw block
// device: for every aligned chunk_align-sized chunk of the device, it
// writes a 20-byte digest at byte offset chunk_index*20 of a flat output
// file.
//
// The core of the package is a pipeline: a fleet of I/O slots issue
// overlapping reads of the device in io_block_sz-sized blocks, a shared
// completion channel fans those reads out to any idle worker, and each
// worker hashes chunks_per_block chunks of the delivered block directly
// into a memory-mapped output file before releasing the slot to read the
// next block.
//
// # Basic usage
//
//	cfg := dsum.RunConfig{
//	    DevicePath: "/dev/sdb",
//	    OutputPath: "manifest.bin",
//	    ChunkAlign: 4096,
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := dsum.Run(context.Background(), cfg, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// # Package structure
//
//   - Configuration: config.go (RunConfig, Validate, derived sizes), flags.go (/name:value CLI parsing)
//   - Cursor: cursor.go (atomic block claim)
//   - Buffer pool: pool.go (page-aligned I/O buffers)
//   - Device I/O: device_linux.go / device_other.go (open, geometry, pread)
//   - Pipeline: slot.go, completion.go, worker.go
//   - Output: output.go (mmap-backed scatter writes)
//   - Orchestration: run.go (Run)
//   - Platform helpers: fallocate_*.go, prefault_*.go, fadvise_*.go
package dsum
