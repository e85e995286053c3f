// internal/defs/waves.go
package defs

import "time"

// WaveGroup — группа одинаковых врагов внутри волны.
type WaveGroup struct {
	Type       string  `json:"type" yaml:"type"`
	Count      int     `json:"count" yaml:"count"`
	SpawnDelay float64 `json:"spawnDelay" yaml:"spawnDelay"` // секунды между появлениями
}

// SpawnInterval returns the per-enemy stagger as a duration.
func (g WaveGroup) SpawnInterval() time.Duration {
	return seconds(g.SpawnDelay)
}

// WaveDefinition описывает одну волну. После загрузки не меняется.
type WaveDefinition struct {
	WaveNumber   int         `json:"waveNumber" yaml:"waveNumber"`
	Description  string      `json:"description,omitempty" yaml:"description,omitempty"`
	Enemies      []WaveGroup `json:"enemies" yaml:"enemies"`
	Reward       int         `json:"reward" yaml:"reward"`
	PreWaveDelay float64     `json:"preWaveDelay" yaml:"preWaveDelay"` // секунды
}

// TotalEnemies returns the number of spawns in the wave. Groups with a
// non-positive count spawn nothing and add nothing.
func (w WaveDefinition) TotalEnemies() int {
	total := 0
	for _, g := range w.Enemies {
		if g.Count > 0 {
			total += g.Count
		}
	}
	return total
}

// PreDelay returns the countdown before the wave starts.
func (w WaveDefinition) PreDelay() time.Duration {
	return seconds(w.PreWaveDelay)
}

// WaveTableKey returns the wave table key for a map id.
func WaveTableKey(mapID string) string {
	return "map_" + mapID
}

func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
