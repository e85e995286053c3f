// internal/system/tower.go
package system

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/config"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/event"
	"tg-tower-defense/pkg/waymap"
)

var (
	ErrTooClose        = errors.New("too close to another tower")
	ErrNotBuildable    = errors.New("tile is not buildable")
	ErrMaxLevel        = errors.New("tower is at max level")
	ErrUnknownTower    = errors.New("tower is not registered")
	ErrInvalidPosition = errors.New("position is not a finite point")
)

// TowerSystem владеет построенными башнями: выбор цели, перезарядка, улучшения.
// Валюту не хранит: стоимость уходит в событиях.
type TowerSystem struct {
	library          *defs.Library
	gameMap          *waymap.Map
	projectileSystem *ProjectileSystem
	eventDispatcher  *event.Dispatcher
	towers           []*component.Tower
	nextID           component.TowerID
}

func NewTowerSystem(library *defs.Library, gameMap *waymap.Map, projectileSystem *ProjectileSystem, eventDispatcher *event.Dispatcher) *TowerSystem {
	return &TowerSystem{
		library:          library,
		gameMap:          gameMap,
		projectileSystem: projectileSystem,
		eventDispatcher:  eventDispatcher,
	}
}

// CanBuild checks placement rules without building.
func (s *TowerSystem) CanBuild(pos cp.Vector) error {
	if !finite(pos.X) || !finite(pos.Y) {
		return fmt.Errorf("build at (%v, %v): %w", pos.X, pos.Y, ErrInvalidPosition)
	}
	if s.gameMap != nil && !s.gameMap.CanBuildAt(pos) {
		return fmt.Errorf("build at %s: %w", waymap.TileKey(pos), ErrNotBuildable)
	}
	for _, t := range s.towers {
		if t.Position.Distance(pos) < config.TowerMinSeparation {
			return fmt.Errorf("build near tower %d: %w", t.ID, ErrTooClose)
		}
	}
	return nil
}

// Build places a tower of the given type.
func (s *TowerSystem) Build(towerType string, pos cp.Vector) (*component.Tower, error) {
	def, err := s.library.Tower(towerType)
	if err != nil {
		log.Printf("TowerSystem: %v", err)
		return nil, err
	}
	if err := s.CanBuild(pos); err != nil {
		return nil, err
	}

	s.nextID++
	t := component.NewTower(s.nextID, def, pos)
	s.towers = append(s.towers, t)

	s.eventDispatcher.Dispatch(event.TowerBuilt{Tower: t.ID, TowerType: t.Type, Position: pos, Cost: def.Cost})
	return t, nil
}

// Update lets every ready tower pick a target and fire.
func (s *TowerSystem) Update(enemies []*component.Enemy, now time.Duration) {
	for _, t := range s.towers {
		if !t.Ready(now) {
			continue
		}
		target := SelectTarget(t.Strategy, t.Position, t.Stats.Range, enemies)
		if target == nil {
			t.Target = 0
			continue
		}

		t.Target = target.Handle
		t.Rotation = target.Position.Sub(t.Position).ToAngle()
		t.LastAttack = now
		t.HasAttacked = true

		s.eventDispatcher.Dispatch(event.TowerAttack{Tower: t.ID, Target: target.Handle, Rotation: t.Rotation})
		s.projectileSystem.Create(t.Position, t.Def.Projectile, t.Stats.Damage, target.Handle, t.Payload, t.ID)
	}
}

// UpgradeCost returns the cost of the next level.
func (s *TowerSystem) UpgradeCost(t *component.Tower) (int, bool) {
	u, ok := t.Def.UpgradeFor(t.Level + 1)
	if !ok {
		return 0, false
	}
	return u.Cost, true
}

// Upgrade moves the tower to the next level. Returns false at max level.
func (s *TowerSystem) Upgrade(t *component.Tower) bool {
	if s.indexOf(t) < 0 {
		return false
	}
	u, ok := t.Def.UpgradeFor(t.Level + 1)
	if !ok {
		return false
	}
	t.ApplyUpgrade(u)
	s.eventDispatcher.Dispatch(event.TowerUpgraded{Tower: t.ID, TowerType: t.Type, Level: t.Level, Cost: u.Cost})
	return true
}

// SellPrice returns the refund for selling the tower now.
func (s *TowerSystem) SellPrice(t *component.Tower) int {
	return int(math.Floor(config.SellRefundRatio * float64(t.Def.InvestedCost(t.Level))))
}

// Sell removes the tower and returns the refund.
func (s *TowerSystem) Sell(t *component.Tower) (int, bool) {
	i := s.indexOf(t)
	if i < 0 {
		return 0, false
	}
	refund := s.SellPrice(t)
	s.towers = append(s.towers[:i], s.towers[i+1:]...)
	s.eventDispatcher.Dispatch(event.TowerSold{Tower: t.ID, TowerType: t.Type, Refund: refund})
	return refund, true
}

// SetStrategy changes how the tower picks targets.
func (s *TowerSystem) SetStrategy(t *component.Tower, strategy defs.TargetStrategy) bool {
	if !strategy.Valid() || s.indexOf(t) < 0 {
		return false
	}
	t.Strategy = strategy
	return true
}

// TowerAt returns the tower closest to pos within the click radius.
func (s *TowerSystem) TowerAt(pos cp.Vector) *component.Tower {
	var best *component.Tower
	bestDist := config.TowerClickRadius
	for _, t := range s.towers {
		if d := t.Position.Distance(pos); d <= bestDist {
			best = t
			bestDist = d
		}
	}
	return best
}

// Get returns the tower with the given id.
func (s *TowerSystem) Get(id component.TowerID) *component.Tower {
	for _, t := range s.towers {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Towers returns a snapshot of placed towers in build order.
func (s *TowerSystem) Towers() []*component.Tower {
	return append([]*component.Tower(nil), s.towers...)
}

// Clear removes all towers without events.
func (s *TowerSystem) Clear() {
	s.towers = nil
}

func (s *TowerSystem) indexOf(t *component.Tower) int {
	if t == nil {
		return -1
	}
	for i, o := range s.towers {
		if o == t {
			return i
		}
	}
	return -1
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
