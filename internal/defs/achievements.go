// internal/defs/achievements.go
package defs

// ConditionType is the stat an achievement watches.
type ConditionType string

const (
	CondKillEnemies       ConditionType = "kill_enemies"
	CondKillEnemyType     ConditionType = "kill_enemy_type"
	CondBuildTower        ConditionType = "build_tower"
	CondUpgradeTower      ConditionType = "upgrade_tower"
	CondCompleteWave      ConditionType = "complete_wave"
	CondPerfectWaves      ConditionType = "perfect_waves"
	CondEarnCoins         ConditionType = "earn_coins"
	CondCompleteMapNoLoss ConditionType = "complete_map_no_lives_lost"
)

// AchievementCondition — условие разблокировки.
type AchievementCondition struct {
	Type   ConditionType `json:"type" yaml:"type"`
	Value  int           `json:"value" yaml:"value"`
	Target string        `json:"target,omitempty" yaml:"target,omitempty"`
}

// AchievementDefinition holds one achievement.
type AchievementDefinition struct {
	ID          string               `json:"id" yaml:"id"`
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Reward      int                  `json:"reward" yaml:"reward"`
	Condition   AchievementCondition `json:"condition" yaml:"condition"`
}
