package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/event"
	"tg-tower-defense/pkg/waymap"
)

func TestCreateEnemy(t *testing.T) {
	w := newWorld(t)

	if e := w.enemies.CreateEnemy("dragon", w.path, nil); e != nil {
		t.Fatalf("unknown type should return nil, got %+v", e)
	}
	if e := w.enemies.CreateEnemy(defs.EnemyFast, nil, nil); e != nil {
		t.Fatal("nil path should return nil")
	}
	if w.rec.Count(event.EnemySpawnedType) != 0 {
		t.Fatal("failed creations must not emit events")
	}

	e := w.enemies.CreateEnemy(defs.EnemyFast, w.path, nil)
	if e == nil {
		t.Fatal("CreateEnemy failed")
	}
	if e.Position != w.path.Start() {
		t.Errorf("expected spawn at path start, got %v", e.Position)
	}
	if e.Health != e.MaxHealth || e.Speed != e.BaseSpeed {
		t.Errorf("unexpected initial stats %+v", e)
	}
	if got := event.Of[event.EnemySpawned](w.rec); len(got) != 1 || got[0].Enemy != e.Handle {
		t.Errorf("expected one EnemySpawned for the enemy, got %v", got)
	}

	override := w.spawnAt(t, defs.EnemyFast, 300, 0)
	if override.Position != (cp.Vector{X: 300, Y: 0}) {
		t.Errorf("position override ignored: %v", override.Position)
	}
}

func TestMovementCarriesAcrossSegments(t *testing.T) {
	w := newWorld(t)
	path, err := waymap.NewPath([]cp.Vector{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 300, Y: 100}})
	if err != nil {
		t.Fatal(err)
	}
	e := w.enemies.CreateEnemy(defs.EnemyFast, path, nil) // 120 px/s

	w.enemies.Update(time.Second)
	if e.WaypointIndex != 1 {
		t.Fatalf("expected to pass the first waypoint, index %d", e.WaypointIndex)
	}
	want := cp.Vector{X: 100, Y: 20}
	if e.Position.Distance(want) > 1e-9 {
		t.Errorf("position = %v, want %v", e.Position, want)
	}
	if !approx(e.Progress(), 120) {
		t.Errorf("progress = %v, want 120", e.Progress())
	}
}

func TestReachEnd(t *testing.T) {
	w := newWorld(t)
	e := w.enemies.CreateEnemy(defs.EnemyFast, w.path, nil)

	for i := 0; i < 10; i++ {
		w.enemies.Update(time.Second)
	}
	if e.State != component.EnemyRemoved {
		t.Fatalf("expected removed, got %s", e.State)
	}
	if e.Position != w.path.End() {
		t.Errorf("expected enemy at path end, got %v", e.Position)
	}
	if w.enemies.Count() != 0 {
		t.Errorf("expected no enemies, got %d", w.enemies.Count())
	}
	if _, ok := w.enemies.Lookup(e.Handle); ok {
		t.Error("handle of a removed enemy must be stale")
	}
	if n := w.rec.Count(event.EnemyReachedEndType); n != 1 {
		t.Errorf("expected one EnemyReachedEnd, got %d", n)
	}
	if w.rec.Count(event.EnemyDiedType) != 0 {
		t.Error("reaching the end is not a kill")
	}
}

func TestTakeDamage(t *testing.T) {
	tests := []struct {
		name       string
		hits       []float64
		wantHealth float64
		wantDied   int
	}{
		{"partial", []float64{20}, 30, 0},
		{"exact kill", []float64{50}, 0, 1},
		{"overkill clamps", []float64{80}, 0, 1},
		{"hits after death ignored", []float64{30, 30, 30, 30}, 0, 1},
		{"non-positive ignored", []float64{0, -10, 5}, 45, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld(t)
			e := w.spawnAt(t, defs.EnemySlow, 0, 0) // 50 hp
			kills := 0
			for _, h := range tt.hits {
				if w.enemies.TakeDamage(e, h) {
					kills++
				}
			}
			if e.Health != tt.wantHealth {
				t.Errorf("health = %v, want %v", e.Health, tt.wantHealth)
			}
			if kills != tt.wantDied {
				t.Errorf("TakeDamage reported %d kills, want %d", kills, tt.wantDied)
			}
			if n := w.rec.Count(event.EnemyDiedType); n != tt.wantDied {
				t.Errorf("EnemyDied fired %d times, want %d", n, tt.wantDied)
			}
		})
	}
}

func TestEnemiesListsOnlyAlive(t *testing.T) {
	w := newWorld(t)
	a := w.spawnAt(t, defs.EnemySlow, 0, 0)
	b := w.spawnAt(t, defs.EnemySlow, 10, 0)
	c := w.spawnAt(t, defs.EnemySlow, 20, 0)
	w.enemies.TakeDamage(b, 1000)

	alive := w.enemies.Enemies()
	if len(alive) != 2 || alive[0] != a || alive[1] != c {
		t.Fatalf("unexpected alive set %v", alive)
	}

	// слот b переиспользуется, старый хэндл не должен найти нового врага
	d := w.spawnAt(t, defs.EnemyFast, 30, 0)
	if d.Handle.Index() != b.Handle.Index() {
		t.Skip("arena did not reuse the slot")
	}
	if _, ok := w.enemies.Lookup(b.Handle); ok {
		t.Error("stale handle resolved to a new enemy")
	}
}

func TestClearAllIsSilent(t *testing.T) {
	w := newWorld(t)
	e := w.spawnAt(t, defs.EnemySlow, 0, 0)
	w.effects.Apply(e, &component.SlowEffect{Amount: 0.5, EndTime: time.Hour})
	w.spawnAt(t, defs.EnemyFast, 50, 0)
	w.rec.Reset()

	w.enemies.ClearAll()
	if w.enemies.Count() != 0 {
		t.Errorf("expected empty registry, got %d", w.enemies.Count())
	}
	if w.effects.Tracked() != 0 {
		t.Errorf("ClearAll leaked effect bookkeeping")
	}
	if len(w.rec.Events) != 0 {
		t.Errorf("ClearAll must not emit events, got %v", w.rec.Types())
	}
}
