// internal/system/targeting.go
package system

import (
	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/defs"
)

// SelectTarget picks an alive enemy within rng of pos using the strategy.
// Ties go to the first enemy encountered. Returns nil when nothing is in range.
func SelectTarget(strategy defs.TargetStrategy, pos cp.Vector, rng float64, enemies []*component.Enemy) *component.Enemy {
	var best *component.Enemy
	var bestScore float64
	for _, e := range enemies {
		if !e.Active() {
			continue
		}
		dist := pos.Distance(e.Position)
		// NaN не проходит сравнение, поэтому условие инвертировано
		if !(dist <= rng) {
			continue
		}

		var score float64
		switch strategy {
		case defs.TargetStrongest:
			score = e.Health
		case defs.TargetWeakest:
			score = -e.Health
		case defs.TargetFirst:
			score = e.Progress()
		default:
			score = -dist
		}
		// строгое сравнение: при равенстве остаётся первый
		if best == nil || score > bestScore {
			best = e
			bestScore = score
		}
	}
	return best
}
