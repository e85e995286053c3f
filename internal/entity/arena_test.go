package entity

import "testing"

type testEnemy struct {
	HP int
}

func TestArenaInsertGet(t *testing.T) {
	a := NewArena[testEnemy]()
	h := a.Insert(&testEnemy{HP: 10})
	if h.IsZero() {
		t.Fatal("handle should not be zero")
	}
	v, ok := a.Get(h)
	if !ok || v.HP != 10 {
		t.Fatalf("expected value with HP 10, got %v %v", v, ok)
	}
	if a.Len() != 1 {
		t.Errorf("expected len 1, got %d", a.Len())
	}
}

func TestArenaStaleHandleAfterReuse(t *testing.T) {
	a := NewArena[testEnemy]()
	first := a.Insert(&testEnemy{HP: 1})
	if !a.Remove(first) {
		t.Fatal("Remove should succeed for a live handle")
	}
	second := a.Insert(&testEnemy{HP: 2})

	if first.Index() != second.Index() {
		t.Fatalf("expected slot reuse, got %d and %d", first.Index(), second.Index())
	}
	if a.Valid(first) {
		t.Error("stale handle must not be valid after slot reuse")
	}
	if v, ok := a.Get(second); !ok || v.HP != 2 {
		t.Errorf("new handle should resolve to the new value")
	}
	if a.Remove(first) {
		t.Error("removing a stale handle must be a no-op")
	}
	if a.Len() != 1 {
		t.Errorf("expected len 1, got %d", a.Len())
	}
}

func TestArenaZeroHandleInvalid(t *testing.T) {
	a := NewArena[testEnemy]()
	a.Insert(&testEnemy{})
	if a.Valid(0) {
		t.Error("zero handle must never be valid")
	}
}

func TestArenaEachOrderAndClear(t *testing.T) {
	a := NewArena[testEnemy]()
	hs := []Handle{
		a.Insert(&testEnemy{HP: 1}),
		a.Insert(&testEnemy{HP: 2}),
		a.Insert(&testEnemy{HP: 3}),
	}
	a.Remove(hs[1])

	var seen []int
	a.Each(func(_ Handle, v *testEnemy) {
		seen = append(seen, v.HP)
	})
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 3 {
		t.Errorf("unexpected iteration order %v", seen)
	}

	a.Clear()
	if a.Len() != 0 {
		t.Errorf("expected empty arena after Clear, got %d", a.Len())
	}
	for _, h := range hs {
		if a.Valid(h) {
			t.Errorf("handle %s should be invalid after Clear", h)
		}
	}
}
