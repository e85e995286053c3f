// internal/app/snapshot.go
package app

import (
	"time"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/component"
)

// EnemyView is a read-only copy of an enemy for presentation.
type EnemyView struct {
	ID       uint64
	Type     string
	Position cp.Vector
	Health   float64
	Ratio    float64
	Slowed   bool
	Poisoned bool
}

// TowerView is a read-only copy of a tower.
type TowerView struct {
	ID       uint64
	Type     string
	Level    int
	Position cp.Vector
	Range    float64
	Rotation float64
}

// ProjectileView is a read-only copy of a moving projectile.
type ProjectileView struct {
	ID       uint64
	Kind     string
	Position cp.Vector
}

// Snapshot — состояние сессии для отрисовки и моста. Ссылок на сущности нет.
type Snapshot struct {
	Now         time.Duration
	Phase       string
	Coins       int
	Lives       int
	Wave        component.WaveProgress
	WaveState   string
	Enemies     []EnemyView
	Towers      []TowerView
	Projectiles []ProjectileView
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Now:       g.Scheduler.Now(),
		Phase:     g.phase.Current(),
		Coins:     g.coins,
		Lives:     g.lives,
		Wave:      g.WaveSystem.Progress(),
		WaveState: g.WaveSystem.State(),
	}
	for _, e := range g.EnemySystem.Enemies() {
		v := EnemyView{
			ID:       uint64(e.Handle),
			Type:     e.Type,
			Position: e.Position,
			Health:   e.Health,
			Ratio:    e.HealthRatio(),
		}
		for _, eff := range g.EffectSystem.Effects(e.Handle) {
			switch eff.(type) {
			case *component.SlowEffect:
				v.Slowed = true
			case *component.PoisonEffect:
				v.Poisoned = true
			}
		}
		s.Enemies = append(s.Enemies, v)
	}
	for _, t := range g.TowerSystem.Towers() {
		s.Towers = append(s.Towers, TowerView{
			ID:       uint64(t.ID),
			Type:     t.Type,
			Level:    t.Level,
			Position: t.Position,
			Range:    t.Stats.Range,
			Rotation: t.Rotation,
		})
	}
	for _, p := range g.ProjectileSystem.Active() {
		s.Projectiles = append(s.Projectiles, ProjectileView{
			ID:       uint64(p.ID),
			Kind:     string(p.Kind),
			Position: p.Position,
		})
	}
	return s
}
