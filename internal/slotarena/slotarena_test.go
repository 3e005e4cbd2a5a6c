package slotarena

import "testing"

// TestInsertGetRemove verifies the basic slot lifecycle.
func TestInsertGetRemove(t *testing.T) {
	a := New[string]()

	r1 := a.Insert("first")
	r2 := a.Insert("second")

	if a.Len() != 2 {
		t.Fatalf("Expected 2 live values, got %d", a.Len())
	}

	v, ok := a.Get(r1)
	if !ok || *v != "first" {
		t.Fatalf("Get(r1) = %v, %v; want first, true", v, ok)
	}

	got, ok := a.Remove(r2)
	if !ok || got != "second" {
		t.Fatalf("Remove(r2) = %q, %v; want second, true", got, ok)
	}
	if a.Len() != 1 {
		t.Errorf("Expected 1 live value after remove, got %d", a.Len())
	}

	if _, ok := a.Get(r2); ok {
		t.Error("Get succeeded on a removed ref")
	}
	if _, ok := a.Remove(r2); ok {
		t.Error("Second Remove succeeded on the same ref")
	}
}

// TestStaleRefAfterSlotReuse verifies that a ref from before a removal can
// never resolve to a later value occupying the same slot.
func TestStaleRefAfterSlotReuse(t *testing.T) {
	a := New[int]()

	old := a.Insert(1)
	a.Remove(old)

	fresh := a.Insert(2)
	if fresh.Slot != old.Slot {
		t.Fatalf("Expected slot %d to be reused, got %d", old.Slot, fresh.Slot)
	}
	if fresh.Gen == old.Gen {
		t.Fatal("Reused slot kept its old generation")
	}

	if _, ok := a.Get(old); ok {
		t.Error("Stale ref resolved after slot reuse")
	}
	v, ok := a.Get(fresh)
	if !ok || *v != 2 {
		t.Errorf("Fresh ref failed to resolve: %v, %v", v, ok)
	}
}

// TestZeroRefInvalid verifies the zero Ref never resolves.
func TestZeroRefInvalid(t *testing.T) {
	a := New[int]()
	a.Insert(42)

	var zero Ref
	if !zero.IsZero() {
		t.Error("Zero ref does not report IsZero")
	}
	if _, ok := a.Get(zero); ok {
		t.Error("Zero ref resolved")
	}
}

// TestGenerationWidth pins the generation counter at 64 bits; a narrower
// counter could wrap after enough removals on one slot and let a stale
// ref validate again.
func TestGenerationWidth(t *testing.T) {
	var gen uint64 = Ref{}.Gen
	_ = gen
}

// TestMustGetPanicsOnStaleRef verifies MustGet treats staleness as an
// invariant violation.
func TestMustGetPanicsOnStaleRef(t *testing.T) {
	a := New[int]()
	ref := a.Insert(7)
	a.Remove(ref)

	defer func() {
		if recover() == nil {
			t.Error("MustGet did not panic on a stale ref")
		}
	}()
	a.MustGet(ref)
}
