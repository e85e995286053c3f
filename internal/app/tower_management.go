// internal/app/tower_management.go
package app

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/system"
)

// BuildTower checks funds and places a tower. Coins are deducted when the
// TowerBuilt event arrives.
func (g *Game) BuildTower(towerType string, pos cp.Vector) (*component.Tower, error) {
	if !g.phase.Is(PhasePlaying) {
		return nil, ErrNotPlaying
	}
	def, err := g.Library.Tower(towerType)
	if err != nil {
		return nil, err
	}
	if g.coins < def.Cost {
		return nil, fmt.Errorf("build %s for %d with %d: %w", towerType, def.Cost, g.coins, ErrInsufficientFunds)
	}
	return g.TowerSystem.Build(towerType, pos)
}

// UpgradeTower buys the next level of the tower.
func (g *Game) UpgradeTower(t *component.Tower) error {
	if !g.phase.Is(PhasePlaying) {
		return ErrNotPlaying
	}
	cost, ok := g.TowerSystem.UpgradeCost(t)
	if !ok {
		return system.ErrMaxLevel
	}
	if g.coins < cost {
		return fmt.Errorf("upgrade for %d with %d: %w", cost, g.coins, ErrInsufficientFunds)
	}
	if !g.TowerSystem.Upgrade(t) {
		return system.ErrUnknownTower
	}
	return nil
}

// SellTower sells the tower and returns the refund.
func (g *Game) SellTower(t *component.Tower) (int, error) {
	if !g.phase.Is(PhasePlaying) {
		return 0, ErrNotPlaying
	}
	refund, ok := g.TowerSystem.Sell(t)
	if !ok {
		return 0, system.ErrUnknownTower
	}
	return refund, nil
}

// SetTowerStrategy changes the targeting rule of a tower.
func (g *Game) SetTowerStrategy(t *component.Tower, strategy defs.TargetStrategy) bool {
	return g.TowerSystem.SetStrategy(t, strategy)
}

// CanAfford reports whether the player has enough coins for a tower type.
func (g *Game) CanAfford(towerType string) bool {
	def, err := g.Library.Tower(towerType)
	return err == nil && g.coins >= def.Cost
}
