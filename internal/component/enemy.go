// internal/component/enemy.go
package component

import (
	"time"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/entity"
	"tg-tower-defense/pkg/waymap"
)

// EnemyState — стадия жизненного цикла врага.
type EnemyState int

const (
	EnemyAlive EnemyState = iota
	EnemyDying
	EnemyRemoved
)

func (s EnemyState) String() string {
	switch s {
	case EnemyAlive:
		return "alive"
	case EnemyDying:
		return "dying"
	case EnemyRemoved:
		return "removed"
	}
	return "unknown"
}

// Enemy представляет вражескую сущность.
type Enemy struct {
	Handle        entity.Handle
	Type          string // ключ из таблицы врагов
	Health        float64
	MaxHealth     float64
	BaseSpeed     float64
	Speed         float64 // с учётом замедления
	WaypointIndex int     // последний пройденный waypoint
	Position      cp.Vector
	Path          *waymap.Path
	Bounty        int
	State         EnemyState
	SpawnedAt     time.Duration
}

// Active reports whether the enemy is alive and can be targeted.
func (e *Enemy) Active() bool {
	return e != nil && e.State == EnemyAlive
}

// Progress returns the distance travelled along the path.
func (e *Enemy) Progress() float64 {
	if e.Path == nil {
		return 0
	}
	return e.Path.Travelled(e.WaypointIndex, e.Position)
}

// HealthRatio returns health / max health in [0, 1].
func (e *Enemy) HealthRatio() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	r := e.Health / e.MaxHealth
	if r < 0 {
		return 0
	}
	return r
}
