// internal/component/projectile.go
package component

import (
	"time"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/entity"
)

// ProjectileID identifies a fired projectile.
type ProjectileID uint64

// SlowPayload замедляет цель: Amount — множитель скорости.
type SlowPayload struct {
	Amount   float64
	Duration time.Duration
}

// SplashPayload damages enemies around the impact point.
type SplashPayload struct {
	Radius     float64
	Multiplier float64
}

// PoisonPayload poisons the primary target.
type PoisonPayload struct {
	DamagePerSecond float64
	Duration        time.Duration
	Stackable       bool
}

// Payload — дополнительные эффекты снаряда. nil означает отсутствие эффекта.
type Payload struct {
	Slow   *SlowPayload
	Splash *SplashPayload
	Poison *PoisonPayload
}

// PayloadFor builds the payload a tower of this definition fires.
func PayloadFor(def *defs.TowerDefinition) Payload {
	var p Payload
	if def == nil {
		return p
	}
	if def.HasEffect(defs.EffectSlow) && def.SlowAmount > 0 {
		p.Slow = &SlowPayload{Amount: def.SlowAmount, Duration: secs(def.SlowDuration)}
	}
	if def.HasEffect(defs.EffectSplash) && def.SplashRadius > 0 {
		p.Splash = &SplashPayload{Radius: def.SplashRadius, Multiplier: def.SplashDamage}
	}
	if def.HasEffect(defs.EffectPoison) && def.PoisonDamage > 0 {
		p.Poison = &PoisonPayload{
			DamagePerSecond: def.PoisonDamage,
			Duration:        secs(def.PoisonDuration),
			Stackable:       def.PoisonStacks,
		}
	}
	return p
}

// Empty reports whether the payload carries no effects.
func (p Payload) Empty() bool {
	return p.Slow == nil && p.Splash == nil && p.Poison == nil
}

// Projectile представляет летящий снаряд. Живёт в пуле и переиспользуется.
type Projectile struct {
	ID       ProjectileID
	Kind     defs.ProjectileType
	Speed    float64
	Position cp.Vector
	Damage   float64
	Payload  Payload
	Target   entity.Handle
	Source   TowerID
	Active   bool
}

// Reset clears every field before the projectile goes back to the pool.
func (p *Projectile) Reset() {
	*p = Projectile{}
}

func secs(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
