package buddy

import (
	"time"

	"buddyarena/allocator/types"
)

// Tidy coalesces the subtree under ref bottom-up: whenever both buddies of
// a Split block report available, they are removed from the arena and the
// parent becomes a single Available block. It reports whether the block at
// ref ended up Available. Cost is proportional to the current size of the
// subtree.
func Tidy(t *Tree, ref types.Ref) bool {
	b := t.MustGet(ref)

	switch b.State {
	case Available:
		return true
	case Occupied:
		return false
	}

	left, right := b.Left, b.Right

	// Visit both children unconditionally; a blocked left buddy must not
	// stop the right subtree from coalescing internally.
	leftFree := Tidy(t, left)
	rightFree := Tidy(t, right)
	if !leftFree || !rightFree {
		return false
	}

	return merge(t, ref, left, right)
}

// TidyGas is Tidy under a shared work budget. One unit of gas is consumed
// per block visited; once the budget is exhausted every remaining visit
// reports "not available" without inspecting state, which stops ancestors
// from merging over subtrees whose status is unknown. Merges already
// committed within the call remain valid, and the deferred subtrees are
// simply revisited by a later call.
func TidyGas(t *Tree, ref types.Ref, gas *int) bool {
	if *gas == 0 {
		return false
	}
	*gas--

	b := t.MustGet(ref)

	switch b.State {
	case Available:
		return true
	case Occupied:
		return false
	}

	left, right := b.Left, b.Right
	leftFree := TidyGas(t, left, gas)
	rightFree := TidyGas(t, right, gas)
	if !leftFree || !rightFree {
		return false
	}

	return merge(t, ref, left, right)
}

// TidyTimed is Tidy under an absolute wall-clock deadline, checked before
// each block is processed. Exhaustion behaves exactly like running out of
// gas: the visit reports "not available" and that subtree's coalescing is
// deferred to a future call.
func TidyTimed(t *Tree, ref types.Ref, deadline time.Time) bool {
	if !time.Now().Before(deadline) {
		return false
	}

	b := t.MustGet(ref)

	switch b.State {
	case Available:
		return true
	case Occupied:
		return false
	}

	left, right := b.Left, b.Right
	leftFree := TidyTimed(t, left, deadline)
	rightFree := TidyTimed(t, right, deadline)
	if !leftFree || !rightFree {
		return false
	}

	return merge(t, ref, left, right)
}

// merge removes both buddies and turns their parent back into a single
// Available block. Both removals happen together; a half-merged Split is
// never observable.
func merge(t *Tree, parent, left, right types.Ref) bool {
	t.Remove(left)
	t.Remove(right)

	b := t.MustGet(parent)
	b.State = Available
	b.Left, b.Right = types.Ref{}, types.Ref{}
	return true
}
