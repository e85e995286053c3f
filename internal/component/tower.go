// internal/component/tower.go
package component

import (
	"time"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/entity"
)

// TowerID identifies a placed tower.
type TowerID uint64

// TowerStats — боевые параметры, которые меняют улучшения.
type TowerStats struct {
	Damage      float64
	Range       float64
	AttackSpeed float64 // выстрелов в секунду
}

// Tower — построенная башня. Def общий для всех башен типа и не меняется,
// улучшения пишутся только в Stats.
type Tower struct {
	ID          TowerID
	Type        string
	Level       int
	Def         *defs.TowerDefinition
	Stats       TowerStats
	Position    cp.Vector
	Rotation    float64
	Target      entity.Handle
	Strategy    defs.TargetStrategy
	Payload     Payload
	LastAttack  time.Duration
	HasAttacked bool
}

// NewTower creates a level 1 tower from its definition.
func NewTower(id TowerID, def *defs.TowerDefinition, pos cp.Vector) *Tower {
	return &Tower{
		ID:    id,
		Type:  def.ID,
		Level: 1,
		Def:   def,
		Stats: TowerStats{
			Damage:      def.Damage,
			Range:       def.Range,
			AttackSpeed: def.AttackSpeed,
		},
		Position: pos,
		Strategy: def.DefaultStrategy(),
		Payload:  PayloadFor(def),
	}
}

// Cooldown returns the minimum time between attacks.
func (t *Tower) Cooldown() time.Duration {
	if t.Stats.AttackSpeed <= 0 {
		return time.Duration(1<<63 - 1)
	}
	return time.Duration(float64(time.Second) / t.Stats.AttackSpeed)
}

// Ready reports whether the tower may attack at now.
func (t *Tower) Ready(now time.Duration) bool {
	return !t.HasAttacked || now-t.LastAttack >= t.Cooldown()
}

// ApplyUpgrade overwrites the stats the upgrade specifies and bumps the level.
func (t *Tower) ApplyUpgrade(u defs.TowerUpgrade) {
	if u.Damage != nil {
		t.Stats.Damage = *u.Damage
	}
	if u.Range != nil {
		t.Stats.Range = *u.Range
	}
	if u.AttackSpeed != nil {
		t.Stats.AttackSpeed = *u.AttackSpeed
	}
	t.Level = u.Level
}
