package allocator

import "buddyarena/allocator/types"

// Handle is the ownership token for one reserved range. At most one Handle
// exists per occupied block; a Handle must not be copied.
//
// A Handle does not free its block directly. Release enqueues the block on
// the Manager's pending queue, and a later Tidy call performs the actual
// reclamation. Until then the range stays reserved.
type Handle struct {
	ref      types.Ref
	rng      types.Range
	pending  *pendingQueue
	released bool
}

// Range returns the exact range that was requested, which may be smaller
// than the power-of-two block backing it. Indexing a store with it is valid
// until Release.
func (h *Handle) Range() types.Range {
	return h.rng
}

// Release gives the reserved range back. It never blocks, never fails, and
// is safe from any goroutine; the actual reclamation happens in a later
// maintenance call. Releasing twice, or releasing a nil Handle, is a no-op.
//
// The caller must not use any view of the range after Release.
func (h *Handle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	h.pending.push(h.ref)
}
