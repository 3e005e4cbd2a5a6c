// Package buddy implements the buddy-system bookkeeping tree: a recursive
// split/merge state machine over power-of-two ranges, stored in a
// generation-checked slot arena so sibling references never dangle.
//
// Everything in this package assumes single-writer access and pre-validated
// sizes. It will not corrupt state on bad budgets, but it is the caller's
// job to only Dealloc blocks it knows are Occupied.
package buddy

import (
	"fmt"

	"buddyarena/allocator/types"
	"buddyarena/internal/slotarena"
)

// State describes what a block is currently doing.
type State uint8

const (
	// Available blocks are free and allocatable.
	Available State = iota

	// Occupied blocks are leased out via exactly one live handle.
	Occupied

	// Split blocks have been subdivided into two buddies; only their
	// descendants carry allocatable space.
	Split
)

func (s State) String() string {
	switch s {
	case Available:
		return "Available"
	case Occupied:
		return "Occupied"
	case Split:
		return "Split"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Block is one node of the buddy tree. Its range length is always a power
// of two. Left and Right are set only while State == Split, and then
// address two buddies whose ranges exactly partition Range into equal
// contiguous halves.
type Block struct {
	Range types.Range
	State State
	Left  types.Ref
	Right types.Ref
}

// Tree is the slot arena holding the blocks of one buddy tree.
type Tree = slotarena.Arena[Block]

// NewTree creates a tree consisting of a single Available root block
// covering [0, universeSize). universeSize must be a power of two.
func NewTree(universeSize int) (*Tree, types.Ref) {
	if !IsPowerOfTwo(universeSize) {
		panic(fmt.Sprintf("buddy: universe size %d is not a power of two", universeSize))
	}
	t := slotarena.New[Block]()
	root := t.Insert(Block{Range: types.Range{Start: 0, End: universeSize}})
	return t, root
}

// Alloc finds or creates an Available block of exactly desiredSize units
// under ref, marks it Occupied, and returns its reference. It reports false
// when no sufficiently large Available block exists; the tree is unchanged
// apart from splits already committed on the path taken.
//
// desiredSize must be a power of two; anything else would break the buddy
// invariant and panics.
func Alloc(t *Tree, ref types.Ref, desiredSize int) (types.Ref, bool) {
	if !IsPowerOfTwo(desiredSize) {
		panic(fmt.Sprintf("buddy: alloc size %d is not a power of two", desiredSize))
	}
	return alloc(t, ref, desiredSize)
}

func alloc(t *Tree, ref types.Ref, desiredSize int) (types.Ref, bool) {
	b := t.MustGet(ref)

	switch {
	case b.Range.Len() < desiredSize:
		// Too small, and so is everything below it.
		return types.Ref{}, false

	case b.Range.Len() == desiredSize:
		// Exact fit. A Split block never matches here since its
		// children are strictly smaller.
		if b.State != Available {
			return types.Ref{}, false
		}
		b.State = Occupied
		return ref, true
	}

	switch b.State {
	case Occupied:
		return types.Ref{}, false

	case Available:
		// Halve and descend. The low-address buddy is always tried
		// first so placement is deterministic.
		mid := b.Range.Start + b.Range.Len()/2
		rng := b.Range
		left := t.Insert(Block{Range: types.Range{Start: rng.Start, End: mid}})
		right := t.Insert(Block{Range: types.Range{Start: mid, End: rng.End}})

		// Insert may have grown the arena; refetch before mutating.
		b = t.MustGet(ref)
		b.State = Split
		b.Left, b.Right = left, right

		return alloc(t, left, desiredSize)

	default: // Split
		left, right := b.Left, b.Right
		if got, ok := alloc(t, left, desiredSize); ok {
			return got, ok
		}
		return alloc(t, right, desiredSize)
	}
}

// Dealloc unconditionally marks the block at ref Available. It never merges;
// coalescing is strictly the job of the Tidy family. The block must be
// Occupied; callers are expected to only pass references drained from the
// pending-release queue.
func Dealloc(t *Tree, ref types.Ref) {
	t.MustGet(ref).State = Available
}
