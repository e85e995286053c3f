package event

import "testing"

type countingListener struct {
	n int
}

func (c *countingListener) OnEvent(Event) { c.n++ }

func TestDispatcherSubscribeUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	a := &countingListener{}
	b := &countingListener{}
	d.Subscribe(TowerBuiltType, a)
	d.Subscribe(TowerBuiltType, b)
	d.Subscribe(TowerSoldType, a)

	d.Dispatch(TowerBuilt{Cost: 100})
	d.Dispatch(TowerSold{Refund: 50})
	if a.n != 2 || b.n != 1 {
		t.Fatalf("unexpected counts a=%d b=%d", a.n, b.n)
	}

	d.Unsubscribe(TowerBuiltType, a)
	d.Dispatch(TowerBuilt{})
	if a.n != 2 || b.n != 2 {
		t.Errorf("unsubscribe failed: a=%d b=%d", a.n, b.n)
	}
}

func TestRecorderSeesEverything(t *testing.T) {
	d := NewDispatcher()
	rec := &Recorder{}
	d.SubscribeAll(rec)

	d.Dispatch(TowerAttack{Tower: 1})
	d.Dispatch(ProjectileHit{Damage: 25})
	d.Dispatch(ProjectileHit{Damage: 5})

	want := []EventType{TowerAttackType, ProjectileHitType, ProjectileHitType}
	got := rec.Types()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	hits := Of[ProjectileHit](rec)
	if len(hits) != 2 || hits[0].Damage != 25 {
		t.Errorf("Of returned %v", hits)
	}
	if rec.Count(TowerAttackType) != 1 {
		t.Errorf("expected one attack event")
	}

	d.UnsubscribeAll(rec)
	rec.Reset()
	d.Dispatch(TowerAttack{})
	if len(rec.Events) != 0 {
		t.Errorf("recorder still subscribed")
	}
}
