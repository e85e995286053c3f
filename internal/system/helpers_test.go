package system

import (
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/event"
	"tg-tower-defense/internal/timer"
	"tg-tower-defense/pkg/waymap"
)

type world struct {
	lib         *defs.Library
	scheduler   *timer.Scheduler
	dispatcher  *event.Dispatcher
	rec         *event.Recorder
	enemies     *EnemySystem
	effects     *EffectSystem
	projectiles *ProjectileSystem
	towers      *TowerSystem
	waves       *WaveSystem
	path        *waymap.Path
}

func newWorld(t *testing.T) *world {
	t.Helper()
	lib, err := defs.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	path, err := waymap.NewPath([]cp.Vector{{X: 0, Y: 0}, {X: 1000, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	w := &world{
		lib:        lib,
		scheduler:  timer.NewScheduler(),
		dispatcher: event.NewDispatcher(),
		rec:        &event.Recorder{},
		path:       path,
	}
	w.dispatcher.SubscribeAll(w.rec)
	w.enemies = NewEnemySystem(lib, w.scheduler, w.dispatcher)
	w.effects = NewEffectSystem(w.scheduler, w.dispatcher, w.enemies)
	w.projectiles = NewProjectileSystem(w.enemies, w.effects, w.scheduler, w.dispatcher)
	w.towers = NewTowerSystem(lib, nil, w.projectiles, w.dispatcher)
	w.waves = NewWaveSystem(w.enemies, w.scheduler, w.dispatcher)
	w.enemies.AddObserver(w.effects)
	w.enemies.AddObserver(w.waves)
	w.waves.SetPath(path)
	return w
}

// spawnAt creates an enemy of the given type standing at pos.
func (w *world) spawnAt(t *testing.T, enemyType string, x, y float64) *component.Enemy {
	t.Helper()
	pos := cp.Vector{X: x, Y: y}
	e := w.enemies.CreateEnemy(enemyType, w.path, &pos)
	if e == nil {
		t.Fatalf("CreateEnemy(%q) returned nil", enemyType)
	}
	return e
}

// advance steps the whole world in fixed ticks the way the game loop does.
func (w *world) advance(total, step time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		w.enemies.Update(step)
		w.towers.Update(w.enemies.Enemies(), w.scheduler.Now())
		w.projectiles.Update(step)
		w.scheduler.Advance(step)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func indexOf(types []event.EventType, want event.EventType) int {
	for i, t := range types {
		if t == want {
			return i
		}
	}
	return -1
}
