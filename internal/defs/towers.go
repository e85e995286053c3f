// internal/defs/towers.go
package defs

// ProjectileDef describes what a tower fires.
type ProjectileDef struct {
	Type    ProjectileType `json:"type" yaml:"type"`
	Speed   float64        `json:"speed,omitempty" yaml:"speed,omitempty"`
	Texture string         `json:"texture,omitempty" yaml:"texture,omitempty"`
}

// TowerUpgrade is one step of the upgrade ladder. Nil fields keep the
// tower's previous value.
type TowerUpgrade struct {
	Level       int      `json:"level" yaml:"level"`
	Damage      *float64 `json:"damage,omitempty" yaml:"damage,omitempty"`
	Range       *float64 `json:"range,omitempty" yaml:"range,omitempty"`
	AttackSpeed *float64 `json:"attackSpeed,omitempty" yaml:"attackSpeed,omitempty"`
	Cost        int      `json:"cost" yaml:"cost"`
}

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID          string         `json:"-" yaml:"-"`
	Name        string         `json:"name" yaml:"name"`
	Damage      float64        `json:"damage" yaml:"damage"`
	Range       float64        `json:"range" yaml:"range"`
	AttackSpeed float64        `json:"attackSpeed" yaml:"attackSpeed"` // выстрелов в секунду
	Cost        int            `json:"cost" yaml:"cost"`
	Projectile  ProjectileDef  `json:"projectile" yaml:"projectile"`
	Upgrades    []TowerUpgrade `json:"upgrades,omitempty" yaml:"upgrades,omitempty"`
	Effects     []EffectKind   `json:"effects,omitempty" yaml:"effects,omitempty"`
	Strategy    TargetStrategy `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Texture     string         `json:"texture,omitempty" yaml:"texture,omitempty"`

	// Множители 0..1, длительности в секундах, яд в уроне за секунду.
	SplashRadius   float64 `json:"splashRadius,omitempty" yaml:"splashRadius,omitempty"`
	SplashDamage   float64 `json:"splashDamage,omitempty" yaml:"splashDamage,omitempty"`
	SlowAmount     float64 `json:"slowAmount,omitempty" yaml:"slowAmount,omitempty"`
	SlowDuration   float64 `json:"slowDuration,omitempty" yaml:"slowDuration,omitempty"`
	PoisonDamage   float64 `json:"poisonDamage,omitempty" yaml:"poisonDamage,omitempty"`
	PoisonDuration float64 `json:"poisonDuration,omitempty" yaml:"poisonDuration,omitempty"`
	PoisonStacks   bool    `json:"poisonStacks,omitempty" yaml:"poisonStacks,omitempty"`
}

// HasEffect reports whether the tower's projectiles carry the effect.
func (d *TowerDefinition) HasEffect(kind EffectKind) bool {
	for _, e := range d.Effects {
		if e == kind {
			return true
		}
	}
	return false
}

// UpgradeFor returns the upgrade entry for the given level.
func (d *TowerDefinition) UpgradeFor(level int) (TowerUpgrade, bool) {
	for _, u := range d.Upgrades {
		if u.Level == level {
			return u, true
		}
	}
	return TowerUpgrade{}, false
}

// InvestedCost is the base cost plus every upgrade at or below level.
func (d *TowerDefinition) InvestedCost(level int) int {
	total := d.Cost
	for _, u := range d.Upgrades {
		if u.Level <= level {
			total += u.Cost
		}
	}
	return total
}

// DefaultStrategy returns the configured strategy or closest.
func (d *TowerDefinition) DefaultStrategy() TargetStrategy {
	if d.Strategy.Valid() {
		return d.Strategy
	}
	return TargetClosest
}
