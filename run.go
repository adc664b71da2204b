package dsum

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// Run executes one complete device-hashing pass: validate, acquire
// resources, pump the pipeline to exhaustion, tear down. diag receives
// CRLF-prefixed human-readable progress lines; pass io.Discard to
// silence them.
func Run(ctx context.Context, cfg RunConfig, diag io.Writer) (err error) {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.warn = func(format string, args ...any) {
		fmt.Fprintf(diag, "\r\nWARNING: "+format, args...)
	}

	dev, err := openDevice(cfg.DevicePath, !cfg.noDirectIO)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, dev.close()) }()

	trueSize, err := dev.size()
	if err != nil {
		return err
	}

	d := cfg.deriveFromDevice(trueSize)

	fmt.Fprintf(diag, "\r\n-------------------------------")
	fmt.Fprintf(diag, "\r\nDisk path: %q", cfg.DevicePath)
	fmt.Fprintf(diag, "\r\nOut path:  %q", cfg.OutputPath)
	fmt.Fprintf(diag, "\r\nDisk read: %d bytes", d.diskBytes)
	fmt.Fprintf(diag, "\r\nI/O block size: %d bytes", d.ioBlockSize)
	fmt.Fprintf(diag, "\r\nChunk align: %d bytes", cfg.ChunkAlign)
	fmt.Fprintf(diag, "\r\nThread count: %d", d.threadCount)
	fmt.Fprintf(diag, "\r\nOutput file size: %d bytes", d.outputSize)

	out, err := newOutputMap(cfg.OutputPath, d.outputSize)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, out.close()) }()

	pool, err := newBufferPool(d.queueDepth, d.ioBlockSize)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, pool.release()) }()

	cur := newBlockCursor(d.blockCount)

	slots := make([]*requestSlot, d.queueDepth)
	for i := range slots {
		slots[i] = &requestSlot{
			index:   i,
			buf:     pool.buffer(i),
			release: make(chan struct{}),
		}
	}

	completions := make(completionQueue, d.queueDepth)

	// A single cancellation scope ties the I/O slot fleet and the worker
	// fleet together: an error on either side (a failed read, a failed
	// completion wait) must abort the whole run, not just the fleet it
	// occurred in. There are no retries; cancellation unblocks any
	// goroutine stuck sending or receiving on a channel.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var ioGroup, workerGroup errgroup.Group

	for _, s := range slots {
		s := s
		ioGroup.Go(func() error {
			err := s.run(runCtx, dev, cur, d.ioBlockSize, completions)
			if err != nil {
				cancel()
			}
			return err
		})
	}

	fleet := &workerFleet{
		slots:          slots,
		completions:    completions,
		out:            out,
		chunkAlign:     cfg.ChunkAlign,
		chunksPerBlock: d.chunksPerBlock,
	}

	for i := 0; i < d.threadCount; i++ {
		workerGroup.Go(func() error {
			err := fleet.runWorker(runCtx)
			if err != nil {
				cancel()
			}
			fmt.Fprintf(diag, "\r\nworker complete")
			return err
		})
	}

	ioErr := ioGroup.Wait()
	close(completions)
	workerErr := workerGroup.Wait()

	if ioErr != nil || workerErr != nil {
		return errors.Join(ioErr, workerErr)
	}

	fmt.Fprintf(diag, "\r\nDone.")
	return nil
}
