// internal/profile/profile.go
package profile

// Stats — накопительная статистика игрока по всем сессиям.
type Stats struct {
	EnemiesKilled       int            `yaml:"enemies_killed"`
	KillsByType         map[string]int `yaml:"kills_by_type,omitempty"`
	TowersBuilt         int            `yaml:"towers_built"`
	TowersUpgraded      int            `yaml:"towers_upgraded"`
	WavesCompleted      int            `yaml:"waves_completed"`
	PerfectWaves        int            `yaml:"perfect_waves"`
	CoinsEarned         int            `yaml:"coins_earned"`
	MapsCompletedNoLoss int            `yaml:"maps_completed_no_loss"`
	GamesPlayed         int            `yaml:"games_played"`
	GamesWon            int            `yaml:"games_won"`
}

// Profile is the persistent player profile.
type Profile struct {
	Name         string          `yaml:"name"`
	Gems         int             `yaml:"gems"` // мета-валюта за достижения
	Stats        Stats           `yaml:"stats"`
	Achievements map[string]bool `yaml:"achievements,omitempty"`
	BestWave     map[string]int  `yaml:"best_wave,omitempty"`
}

// New returns an empty profile.
func New(name string) *Profile {
	p := &Profile{Name: name}
	p.ensureMaps()
	return p
}

func (p *Profile) ensureMaps() {
	if p.Stats.KillsByType == nil {
		p.Stats.KillsByType = make(map[string]int)
	}
	if p.Achievements == nil {
		p.Achievements = make(map[string]bool)
	}
	if p.BestWave == nil {
		p.BestWave = make(map[string]int)
	}
}

// Clone returns a deep copy safe to hand to another goroutine.
func (p *Profile) Clone() Profile {
	c := *p
	c.Stats.KillsByType = make(map[string]int, len(p.Stats.KillsByType))
	for k, v := range p.Stats.KillsByType {
		c.Stats.KillsByType[k] = v
	}
	c.Achievements = make(map[string]bool, len(p.Achievements))
	for k, v := range p.Achievements {
		c.Achievements[k] = v
	}
	c.BestWave = make(map[string]int, len(p.BestWave))
	for k, v := range p.BestWave {
		c.BestWave[k] = v
	}
	return c
}

// RecordWave remembers the best wave reached on a map.
func (p *Profile) RecordWave(mapID string, wave int) {
	p.ensureMaps()
	if wave > p.BestWave[mapID] {
		p.BestWave[mapID] = wave
	}
}

// RecordKill counts a killed enemy.
func (p *Profile) RecordKill(enemyType string) {
	p.ensureMaps()
	p.Stats.EnemiesKilled++
	p.Stats.KillsByType[enemyType]++
}
