// internal/system/projectile.go
package system

import (
	"time"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/config"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/entity"
	"tg-tower-defense/internal/event"
	"tg-tower-defense/internal/pool"
)

// ProjectileSystem управляет движением снарядов и нанесением урона
type ProjectileSystem struct {
	enemies         *EnemySystem
	effects         *EffectSystem
	clock           Clock
	eventDispatcher *event.Dispatcher
	pool            *pool.Pool[component.Projectile]
	active          []*component.Projectile
	nextID          component.ProjectileID
}

func NewProjectileSystem(enemies *EnemySystem, effects *EffectSystem, clock Clock, eventDispatcher *event.Dispatcher) *ProjectileSystem {
	return &ProjectileSystem{
		enemies:         enemies,
		effects:         effects,
		clock:           clock,
		eventDispatcher: eventDispatcher,
		pool: pool.New(config.ProjectilePoolSize, nil, func(p *component.Projectile) {
			p.Reset()
		}),
	}
}

// Create fires a projectile from origin at target. Instant projectiles are
// resolved before Create returns and never enter the moving set.
func (s *ProjectileSystem) Create(origin cp.Vector, def defs.ProjectileDef, damage float64, target entity.Handle, payload component.Payload, source component.TowerID) component.ProjectileID {
	s.nextID++
	p := s.pool.Acquire()
	p.ID = s.nextID
	p.Kind = def.Type
	p.Speed = def.Speed
	if p.Speed <= 0 {
		p.Speed = config.DefaultProjectileSpeed
	}
	p.Position = origin
	p.Damage = damage
	p.Payload = payload
	p.Target = target
	p.Source = source
	p.Active = true

	s.eventDispatcher.Dispatch(event.ProjectileFired{
		Projectile: p.ID,
		Kind:       string(p.Kind),
		Source:     source,
		Target:     target,
		Origin:     origin,
	})

	if p.Kind == defs.ProjectileInstant {
		if enemy, ok := s.enemies.Lookup(target); ok {
			p.Position = enemy.Position
			s.resolveHit(p, enemy)
		} else {
			s.miss(p)
		}
		id := p.ID
		s.release(p)
		return id
	}

	s.active = append(s.active, p)
	return p.ID
}

// Update moves homing projectiles toward their targets' current positions.
func (s *ProjectileSystem) Update(dt time.Duration) {
	step := dt.Seconds()
	kept := s.active[:0]
	for _, p := range s.active {
		if s.advance(p, step) {
			kept = append(kept, p)
			continue
		}
		s.release(p)
	}
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = kept
}

// advance returns false once the projectile is resolved or lost.
func (s *ProjectileSystem) advance(p *component.Projectile, step float64) bool {
	target, ok := s.enemies.Lookup(p.Target)
	if !ok {
		s.miss(p)
		return false
	}
	if p.Position.Distance(target.Position) < config.ProjectileHitRadius {
		s.resolveHit(p, target)
		return false
	}
	p.Position = p.Position.LerpConst(target.Position, p.Speed*step)
	if p.Position.Distance(target.Position) < config.ProjectileHitRadius {
		s.resolveHit(p, target)
		return false
	}
	return true
}

func (s *ProjectileSystem) resolveHit(p *component.Projectile, target *component.Enemy) {
	impact := target.Position
	killed := s.enemies.TakeDamage(target, p.Damage)

	splashHits := 0
	if sp := p.Payload.Splash; sp != nil && sp.Radius > 0 {
		base := p.Damage * sp.Multiplier
		for _, other := range s.enemies.Enemies() {
			if other.Handle == target.Handle || !other.Active() {
				continue
			}
			d := other.Position.Distance(impact)
			if d > sp.Radius {
				continue
			}
			s.enemies.TakeDamage(other, SplashDamageAt(base, d, sp.Radius))
			splashHits++
		}
	}

	now := s.clock.Now()
	if sl := p.Payload.Slow; sl != nil && target.Active() {
		s.effects.Apply(target, &component.SlowEffect{
			Amount:   sl.Amount,
			Duration: sl.Duration,
			EndTime:  now + sl.Duration,
		})
	}
	if po := p.Payload.Poison; po != nil && target.Active() {
		s.effects.Apply(target, &component.PoisonEffect{
			DamagePerSecond: po.DamagePerSecond,
			Duration:        po.Duration,
			EndTime:         now + po.Duration,
			Stacks:          1,
			Stackable:       po.Stackable,
		})
	}

	s.eventDispatcher.Dispatch(event.ProjectileHit{
		Projectile: p.ID,
		Target:     target.Handle,
		Position:   impact,
		Damage:     p.Damage,
		Killed:     killed,
		SplashHits: splashHits,
	})
}

func (s *ProjectileSystem) miss(p *component.Projectile) {
	s.eventDispatcher.Dispatch(event.ProjectileMissed{Projectile: p.ID, Position: p.Position})
}

func (s *ProjectileSystem) release(p *component.Projectile) {
	s.pool.Release(p)
}

// SplashDamageAt returns splash damage at distance d from the impact for a
// blast of radius r and base damage base: full at the centre, half at the edge.
func SplashDamageAt(base, d, r float64) float64 {
	if r <= 0 || d > r {
		return 0
	}
	if d < 0 {
		d = 0
	}
	return base * (1 - config.SplashFalloff*d/r)
}

// Active returns a snapshot of the moving projectiles.
func (s *ProjectileSystem) Active() []*component.Projectile {
	return append([]*component.Projectile(nil), s.active...)
}

// PoolSize returns the number of pooled projectiles ready for reuse.
func (s *ProjectileSystem) PoolSize() int {
	return s.pool.Free()
}

// PoolStats exposes pool counters.
func (s *ProjectileSystem) PoolStats() pool.Stats {
	return s.pool.Stats()
}

// Clear returns every moving projectile to the pool without events.
func (s *ProjectileSystem) Clear() {
	for i, p := range s.active {
		s.release(p)
		s.active[i] = nil
	}
	s.active = s.active[:0]
}
