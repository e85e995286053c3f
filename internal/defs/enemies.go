// internal/defs/enemies.go
package defs

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID      string  `json:"-" yaml:"-"`
	Health  float64 `json:"health" yaml:"health"`
	Speed   float64 `json:"speed" yaml:"speed"` // пикселей в секунду
	Bounty  int     `json:"bounty" yaml:"bounty"`
	Texture string  `json:"texture,omitempty" yaml:"texture,omitempty"`
}
