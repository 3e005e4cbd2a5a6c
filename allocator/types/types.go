package types

// Package types defines the core data types shared across the allocator
// packages. These types are intentionally simple and decoupled from any
// particular allocator implementation.

import (
	"fmt"
	"time"

	"buddyarena/internal/slotarena"
)

// Ref is a generation-checked reference to a block in the bookkeeping tree.
// A Ref held across a merge can never resolve to a different, later block.
type Ref = slotarena.Ref

// Range is a half-open interval [Start, End) of offsets within a store.
type Range struct {
	Start int
	End   int
}

// Len returns the number of units covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Tidier is implemented by anything that exposes the maintenance entry
// points. Hosts that only schedule maintenance can hold a Tidier rather
// than a concrete manager or store.
//
// Use with the same single-writer discipline as the concrete type: all
// Tidy* calls must be serialized with allocations.
type Tidier interface {
	// Tidy drains all pending releases and fully coalesces the tree.
	Tidy()

	// TidyGas is Tidy bounded by a work budget: one unit of gas per
	// drained release and per tree node visited.
	TidyGas(gas int)

	// TidyTimed is Tidy bounded by an absolute deadline checked before
	// each unit of work.
	TidyTimed(deadline time.Time)
}
