package pool

import "testing"

type shot struct {
	Target int
	Damage float64
}

func newShotPool(max int) *Pool[shot] {
	return New(max, nil, func(s *shot) { *s = shot{} })
}

func TestAcquireReusesReleased(t *testing.T) {
	p := newShotPool(4)
	a := p.Acquire()
	a.Target = 7
	a.Damage = 12
	if !p.Release(a) {
		t.Fatal("release under the cap should keep the object")
	}
	b := p.Acquire()
	if b != a {
		t.Fatal("expected the released object to be reused")
	}
	if b.Target != 0 || b.Damage != 0 {
		t.Errorf("reused object kept residual state: %+v", *b)
	}
}

func TestReleaseOverCapDrops(t *testing.T) {
	p := newShotPool(2)
	objs := []*shot{p.Acquire(), p.Acquire(), p.Acquire()}
	kept := 0
	for _, o := range objs {
		if p.Release(o) {
			kept++
		}
	}
	if kept != 2 || p.Free() != 2 {
		t.Errorf("expected 2 pooled objects, kept=%d free=%d", kept, p.Free())
	}
	st := p.Stats()
	if st.Created != 3 || st.Dropped != 1 {
		t.Errorf("unexpected stats %+v", st)
	}
	if p.Release(nil) {
		t.Error("nil release must be rejected")
	}
}

func TestDrain(t *testing.T) {
	p := newShotPool(3)
	p.Release(p.Acquire())
	p.Drain()
	if p.Free() != 0 {
		t.Errorf("expected empty pool, got %d", p.Free())
	}
}
