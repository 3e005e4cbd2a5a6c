// Package slotarena provides a generation-checked slot store. Values are
// addressed by a Ref carrying both the slot index and the generation the slot
// had when the value was inserted. Removing a value bumps the slot's
// generation, so a Ref held across a removal can never resolve to a later
// value that happens to reuse the same slot.
package slotarena

// Ref is an opaque reference to a value in an Arena.
// The zero Ref is never valid (generations start at 1).
// Generations are 64-bit so a slot's counter cannot wrap back to a
// previously issued value within any feasible workload.
type Ref struct {
	Slot int
	Gen  uint64
}

// IsZero reports whether r is the zero Ref.
func (r Ref) IsZero() bool {
	return r.Gen == 0
}

type slot[T any] struct {
	gen  uint64
	live bool
	val  T
}

// Arena is a slot store with generation-checked references.
// It is not safe for concurrent use.
type Arena[T any] struct {
	slots []slot[T]
	free  []int
	count int
}

// New creates an empty Arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Insert stores v and returns a Ref to it. Freed slots are reused in
// preference to growing the backing storage.
func (a *Arena[T]) Insert(v T) Ref {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.live = true
		s.val = v
		return Ref{Slot: idx, Gen: s.gen}
	}
	// Generations start at 1 so the zero Ref is always invalid.
	a.slots = append(a.slots, slot[T]{gen: 1, live: true, val: v})
	return Ref{Slot: len(a.slots) - 1, Gen: 1}
}

// Get returns a pointer to the value addressed by ref, or false if ref is
// stale or was never valid. The pointer is invalidated by the next Insert.
func (a *Arena[T]) Get(ref Ref) (*T, bool) {
	if ref.Slot < 0 || ref.Slot >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[ref.Slot]
	if !s.live || s.gen != ref.Gen {
		return nil, false
	}
	return &s.val, true
}

// MustGet is Get for references the caller knows are live. It panics on a
// stale or invalid ref, since that means an internal invariant was broken.
func (a *Arena[T]) MustGet(ref Ref) *T {
	v, ok := a.Get(ref)
	if !ok {
		panic("slotarena: stale or invalid ref")
	}
	return v
}

// Remove deletes the value addressed by ref and returns it. The slot's
// generation is bumped immediately, invalidating ref and any copies of it.
func (a *Arena[T]) Remove(ref Ref) (T, bool) {
	var zero T
	if ref.Slot < 0 || ref.Slot >= len(a.slots) {
		return zero, false
	}
	s := &a.slots[ref.Slot]
	if !s.live || s.gen != ref.Gen {
		return zero, false
	}
	v := s.val
	s.val = zero
	s.live = false
	s.gen++
	a.free = append(a.free, ref.Slot)
	a.count--
	return v, true
}

// Len returns the number of live values in the arena.
func (a *Arena[T]) Len() int {
	return a.count
}
