// internal/event/types.go
package event

import (
	"time"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/entity"
)

const (
	EnemySpawnedType     EventType = "enemySpawned"
	EnemyDiedType        EventType = "enemyDied"
	EnemyReachedEndType  EventType = "enemyReachedEnd"
	WaveStartedType      EventType = "waveStarted"
	WaveProgressType     EventType = "waveProgressUpdated"
	WaveCompletedType    EventType = "waveCompleted"
	AllWavesCompleteType EventType = "allWavesCompleted"
	TowerBuiltType       EventType = "towerBuilt"
	TowerUpgradedType    EventType = "towerUpgraded"
	TowerSoldType        EventType = "towerSold"
	TowerAttackType      EventType = "towerAttack"
	ProjectileFiredType  EventType = "projectileFired"
	ProjectileHitType    EventType = "projectileHit"
	ProjectileMissedType EventType = "projectileMissed"
	EffectAppliedType    EventType = "effectApplied"
	EffectExpiredType    EventType = "effectExpired"
	EffectTickType       EventType = "effectTick"

	// Уровень игры
	CoinsChangedType        EventType = "coinsChanged"
	LivesChangedType        EventType = "livesChanged"
	PhaseChangedType        EventType = "phaseChanged"
	GameOverType            EventType = "gameOver"
	AchievementUnlockedType EventType = "achievementUnlocked"
)

// Враги

type EnemySpawned struct {
	Enemy     entity.Handle
	EnemyType string
	Position  cp.Vector
}

type EnemyDied struct {
	Enemy     entity.Handle
	EnemyType string
	Bounty    int
	Position  cp.Vector
}

type EnemyReachedEnd struct {
	Enemy     entity.Handle
	EnemyType string
}

// Волны

type WaveStarted struct {
	WaveNumber  int
	Description string
	Total       int
}

type WaveProgressUpdated struct {
	Progress component.WaveProgress
}

type WaveCompleted struct {
	WaveNumber int
	Reward     int
}

type AllWavesCompleted struct {
	Waves int
}

// Башни

type TowerBuilt struct {
	Tower     component.TowerID
	TowerType string
	Position  cp.Vector
	Cost      int
}

type TowerUpgraded struct {
	Tower     component.TowerID
	TowerType string
	Level     int
	Cost      int
}

type TowerSold struct {
	Tower     component.TowerID
	TowerType string
	Refund    int
}

type TowerAttack struct {
	Tower    component.TowerID
	Target   entity.Handle
	Rotation float64
}

// Снаряды

type ProjectileFired struct {
	Projectile component.ProjectileID
	Kind       string
	Source     component.TowerID
	Target     entity.Handle
	Origin     cp.Vector
}

type ProjectileHit struct {
	Projectile component.ProjectileID
	Target     entity.Handle
	Position   cp.Vector
	Damage     float64
	Killed     bool
	SplashHits int
}

type ProjectileMissed struct {
	Projectile component.ProjectileID
	Position   cp.Vector
}

// Эффекты

// EffectApplied carries the resulting state: Amount is the slow multiplier
// or the merged poison damage per second.
type EffectApplied struct {
	Enemy  entity.Handle
	Effect component.EffectType
	Stacks int
	Amount float64
}

type EffectExpired struct {
	Enemy  entity.Handle
	Effect component.EffectType
}

type EffectTick struct {
	Enemy  entity.Handle
	Effect component.EffectType
	Damage float64
	Killed bool
}

// Игра

type CoinsChanged struct {
	Coins int
	Delta int
}

type LivesChanged struct {
	Lives int
	Delta int
}

type PhaseChanged struct {
	From string
	To   string
}

type GameOver struct {
	Victory bool
	Wave    int
	Elapsed time.Duration
}

type AchievementUnlocked struct {
	ID     string
	Name   string
	Reward int
}

func (EnemySpawned) Type() EventType        { return EnemySpawnedType }
func (EnemyDied) Type() EventType           { return EnemyDiedType }
func (EnemyReachedEnd) Type() EventType     { return EnemyReachedEndType }
func (WaveStarted) Type() EventType         { return WaveStartedType }
func (WaveProgressUpdated) Type() EventType { return WaveProgressType }
func (WaveCompleted) Type() EventType       { return WaveCompletedType }
func (AllWavesCompleted) Type() EventType   { return AllWavesCompleteType }
func (TowerBuilt) Type() EventType          { return TowerBuiltType }
func (TowerUpgraded) Type() EventType       { return TowerUpgradedType }
func (TowerSold) Type() EventType           { return TowerSoldType }
func (TowerAttack) Type() EventType         { return TowerAttackType }
func (ProjectileFired) Type() EventType     { return ProjectileFiredType }
func (ProjectileHit) Type() EventType       { return ProjectileHitType }
func (ProjectileMissed) Type() EventType    { return ProjectileMissedType }
func (EffectApplied) Type() EventType       { return EffectAppliedType }
func (EffectExpired) Type() EventType       { return EffectExpiredType }
func (EffectTick) Type() EventType          { return EffectTickType }
func (CoinsChanged) Type() EventType        { return CoinsChangedType }
func (LivesChanged) Type() EventType        { return LivesChangedType }
func (PhaseChanged) Type() EventType        { return PhaseChangedType }
func (GameOver) Type() EventType            { return GameOverType }
func (AchievementUnlocked) Type() EventType { return AchievementUnlockedType }
