// internal/defs/types.go
package defs

// TargetStrategy — правило выбора цели башней.
type TargetStrategy string

const (
	TargetClosest   TargetStrategy = "closest"
	TargetStrongest TargetStrategy = "strongest"
	TargetWeakest   TargetStrategy = "weakest"
	TargetFirst     TargetStrategy = "first"
)

// Valid reports whether s is a known strategy.
func (s TargetStrategy) Valid() bool {
	switch s {
	case TargetClosest, TargetStrongest, TargetWeakest, TargetFirst:
		return true
	}
	return false
}

// ProjectileType defines how a projectile travels.
type ProjectileType string

const (
	ProjectileBullet  ProjectileType = "bullet"
	ProjectileRocket  ProjectileType = "rocket"
	ProjectileLaser   ProjectileType = "laser"
	ProjectileInstant ProjectileType = "instant"
)

// EffectKind names an on-hit effect carried by a tower's projectiles.
type EffectKind string

const (
	EffectSlow   EffectKind = "slow"
	EffectPoison EffectKind = "poison"
	EffectSplash EffectKind = "splash"
)

// Enemy types shipped with the default tables. The type is open: any key
// present in the enemy table is accepted.
const (
	EnemySlow  = "slow"
	EnemyFast  = "fast"
	EnemyTank  = "tank"
	EnemySwarm = "swarm"
)
