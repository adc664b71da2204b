// Package errors defines all exported error sentinels for dsum.
//
// This is the single source of truth for error values, so both the
// top-level dsum package and cmd/dsum can errors.Is against them.
package errors

import "errors"

// Configuration errors, reported before any resource acquisition.
var (
	ErrMissingDevicePath = errors.New("dsum: Missing /disk")
	ErrMissingOutputPath = errors.New("dsum: Missing /out")
	ErrMissingChunkAlign = errors.New("dsum: Missing /align")
	ErrAlignTooLarge     = errors.New("dsum: alignment must be smaller than I/O size")
	ErrAlignNotDivisor   = errors.New("dsum: I/O size must be divisible by alignment")
	ErrQueueDepthRange   = errors.New("dsum: queue depth out of range [1,1024]")
	ErrThreadCountRange  = errors.New("dsum: thread count out of range [0,64]")
	ErrZeroChunkAlign    = errors.New("dsum: chunk align must be greater than zero")
)

// Resource-acquisition errors.
var (
	ErrDeviceOpen     = errors.New("dsum: failed to open device")
	ErrDeviceGeometry = errors.New("dsum: failed to fetch device geometry")
	ErrOutputCreate   = errors.New("dsum: failed to create output file")
	ErrOutputMap      = errors.New("dsum: failed to map output file")
	ErrBufferAlloc    = errors.New("dsum: failed to allocate I/O buffer")
)

// I/O and completion errors.
var (
	ErrSubmitFailed    = errors.New("dsum: I/O submission failed")
	ErrReadFailed      = errors.New("dsum: device read failed")
	ErrCompletionWait  = errors.New("dsum: completion wait failed")
)
