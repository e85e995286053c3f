// internal/component/status_effect.go
package component

import "time"

// EffectType names a status effect slot. Each enemy holds at most one
// effect per slot.
type EffectType string

const (
	EffectSlow   EffectType = "slow"
	EffectPoison EffectType = "poison"
)

// Effect — закрытое объединение статус-эффектов: *SlowEffect или *PoisonEffect.
type Effect interface {
	Type() EffectType
	Expiry() time.Duration
	effect()
}

// SlowEffect multiplies the enemy's speed by Amount until EndTime.
type SlowEffect struct {
	Amount   float64
	Duration time.Duration
	EndTime  time.Duration
}

func (*SlowEffect) Type() EffectType        { return EffectSlow }
func (e *SlowEffect) Expiry() time.Duration { return e.EndTime }
func (*SlowEffect) effect()                 {}

// PoisonEffect deals DamagePerSecond once per second until EndTime.
type PoisonEffect struct {
	DamagePerSecond float64
	Duration        time.Duration
	EndTime         time.Duration
	Stacks          int
	Stackable       bool
	LastTick        time.Duration
}

func (*PoisonEffect) Type() EffectType        { return EffectPoison }
func (e *PoisonEffect) Expiry() time.Duration { return e.EndTime }
func (*PoisonEffect) effect()                 {}
