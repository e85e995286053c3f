// internal/component/wave.go
package component

import "time"

// WaveProgress — производное состояние текущей волны, пересчитывается
// после каждого появления, смерти или ухода врага.
type WaveProgress struct {
	CurrentWave   int
	TotalWaves    int
	Spawned       int
	Total         int
	Alive         int
	TimeUntilNext time.Duration
	InProgress    bool
}
