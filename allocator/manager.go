// Package allocator manages reservations of contiguous ranges within a
// fixed, power-of-two-sized universe using a buddy bookkeeping tree.
//
// A Manager hands out Handles for variable-sized requests, rounding each to
// a power-of-two block. Releasing a Handle does not free its block; it
// enqueues the block on a pending-release queue that the host drains by
// calling Tidy (or one of its budgeted variants) periodically. Without
// maintenance calls, released blocks stay unreclaimed, fragmentation is
// monotonic, and the tree never re-coalesces into larger blocks.
//
// The Manager itself is single-writer: Alloc and the Tidy family must be
// serialized by the caller. The pending-release queue is the one safe
// concurrency boundary; Handles may be released from any goroutine.
package allocator

import (
	"time"

	"buddyarena/allocator/buddy"
	"buddyarena/allocator/types"
)

// Manager composes the block tree, its root, the pending-release queue,
// and the sizing constraints.
type Manager struct {
	cfg     Config
	nodes   *buddy.Tree
	root    types.Ref
	pending *pendingQueue
}

// New creates a Manager over the range [0, cfg.UniverseSize).
func New(cfg Config) (*Manager, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	nodes, root := buddy.NewTree(cfg.UniverseSize)

	return &Manager{
		cfg:     cfg,
		nodes:   nodes,
		root:    root,
		pending: &pendingQueue{},
	}, nil
}

// Config returns the sizing constraints, with defaults applied.
func (m *Manager) Config() Config {
	return m.cfg
}

// Alloc reserves count units and returns a Handle over exactly
// [start, start+count). The backing block is the count rounded up to a
// power of two and clamped into [MinBlockSize, MaxBlockSize].
//
// It reports false, with zero side effects on the tree, when count is
// not positive, rounds above MaxBlockSize, or no sufficiently large
// available block exists.
func (m *Manager) Alloc(count int) (*Handle, bool) {
	size, ok := buddy.BestSize(count, m.cfg.MinBlockSize, m.cfg.MaxBlockSize)
	if !ok {
		return nil, false
	}

	ref, ok := buddy.Alloc(m.nodes, m.root, size)
	if !ok {
		return nil, false
	}

	start := m.nodes.MustGet(ref).Range.Start
	return &Handle{
		ref:     ref,
		rng:     types.Range{Start: start, End: start + count},
		pending: m.pending,
	}, true
}

// Tidy drains every pending release, marking each block Available, then
// coalesces the whole tree bottom-up. Cost is proportional to the queue
// length plus the current tree size.
func (m *Manager) Tidy() {
	for {
		ref, ok := m.pending.pop()
		if !ok {
			break
		}
		buddy.Dealloc(m.nodes, ref)
	}
	buddy.Tidy(m.nodes, m.root)
}

// TidyGas is Tidy under a work budget: one unit of gas per drained release
// and one per tree block visited. The drain stops as soon as the budget is
// exhausted, leaving the remainder queued, and whatever budget is left
// bounds the coalescing pass. Safe to call arbitrarily often with
// arbitrarily small budgets; exhaustion only defers work, never corrupts
// state.
func (m *Manager) TidyGas(gas int) {
	for gas > 0 {
		ref, ok := m.pending.pop()
		if !ok {
			break
		}
		buddy.Dealloc(m.nodes, ref)
		gas--
	}
	buddy.TidyGas(m.nodes, m.root, &gas)
}

// TidyTimed is Tidy under an absolute deadline, checked before each drained
// release and each tree block. Once the deadline has passed, remaining work
// is deferred to a future call.
func (m *Manager) TidyTimed(deadline time.Time) {
	for time.Now().Before(deadline) {
		ref, ok := m.pending.pop()
		if !ok {
			break
		}
		buddy.Dealloc(m.nodes, ref)
	}
	buddy.TidyTimed(m.nodes, m.root, deadline)
}

// Snapshot returns a read-only projection of the whole tree.
func (m *Manager) Snapshot() *buddy.BlockInfo {
	return buddy.Snapshot(m.nodes, m.root)
}

// Pending returns the number of released handles not yet drained by a
// maintenance call.
func (m *Manager) Pending() int {
	return m.pending.size()
}

// Stats returns the number of blocks in each state, for monitoring.
func (m *Manager) Stats() (available, occupied, splits int) {
	var count func(b *buddy.BlockInfo)
	count = func(b *buddy.BlockInfo) {
		switch b.State {
		case buddy.Available:
			available++
		case buddy.Occupied:
			occupied++
		case buddy.Split:
			splits++
			count(b.Left)
			count(b.Right)
		}
	}
	count(m.Snapshot())
	return available, occupied, splits
}

var _ types.Tidier = (*Manager)(nil)
