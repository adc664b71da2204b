package dsum

// completion carries enough to recover the slot's buffer pointer and the
// device offset the read was issued at. Any worker may receive any
// completion — completionQueue is an ordinary Go channel, and a channel
// with multiple consumers already has exactly that fan-out semantics
// with no FIFO guarantee implied.
type completion struct {
	slot   int
	offset uint64
}

// completionQueue is the shared multi-producer/multi-consumer dispatcher.
// Producers are I/O slot goroutines (slot.go); consumers are worker
// goroutines (worker.go).
type completionQueue chan completion
