// internal/profile/tracker.go
package profile

import "tg-tower-defense/internal/defs"

// Tracker проверяет условия достижений по статистике профиля.
type Tracker struct {
	achievements []defs.AchievementDefinition
	profile      *Profile
}

func NewTracker(achievements []defs.AchievementDefinition, p *Profile) *Tracker {
	p.ensureMaps()
	return &Tracker{achievements: achievements, profile: p}
}

// Check unlocks every achievement whose condition now holds and returns the
// newly unlocked ones. Rewards are credited to the profile.
func (t *Tracker) Check() []defs.AchievementDefinition {
	var unlocked []defs.AchievementDefinition
	for _, a := range t.achievements {
		if t.profile.Achievements[a.ID] {
			continue
		}
		if t.Progress(a) < a.Condition.Value {
			continue
		}
		t.profile.Achievements[a.ID] = true
		t.profile.Gems += a.Reward
		unlocked = append(unlocked, a)
	}
	return unlocked
}

// Progress returns the current value of the achievement's watched stat.
func (t *Tracker) Progress(a defs.AchievementDefinition) int {
	st := t.profile.Stats
	switch a.Condition.Type {
	case defs.CondKillEnemies:
		return st.EnemiesKilled
	case defs.CondKillEnemyType:
		return st.KillsByType[a.Condition.Target]
	case defs.CondBuildTower:
		return st.TowersBuilt
	case defs.CondUpgradeTower:
		return st.TowersUpgraded
	case defs.CondCompleteWave:
		return st.WavesCompleted
	case defs.CondPerfectWaves:
		return st.PerfectWaves
	case defs.CondEarnCoins:
		return st.CoinsEarned
	case defs.CondCompleteMapNoLoss:
		return st.MapsCompletedNoLoss
	}
	return 0
}
