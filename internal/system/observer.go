// internal/system/observer.go
package system

import (
	"time"

	"tg-tower-defense/internal/component"
)

// Clock отдаёт текущее время симуляции.
type Clock interface {
	Now() time.Duration
}

// EnemyObserver получает уведомления о конце жизни врага синхронно, в том же
// вызове, где враг умер или дошёл до конца пути.
type EnemyObserver interface {
	OnEnemyDied(e *component.Enemy)
	OnEnemyReachedEnd(e *component.Enemy)
	// OnEnemyCleared is called for every enemy dropped by ClearAll.
	OnEnemyCleared(e *component.Enemy)
}

// Damager applies damage to an enemy and reports whether it died.
type Damager interface {
	TakeDamage(e *component.Enemy, amount float64) bool
}
