// internal/system/enemy.go
package system

import (
	"log"
	"time"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/entity"
	"tg-tower-defense/internal/event"
	"tg-tower-defense/pkg/waymap"
)

// EnemySystem владеет врагами: создание, движение по пути, урон, смерть.
type EnemySystem struct {
	library         *defs.Library
	clock           Clock
	eventDispatcher *event.Dispatcher
	arena           *entity.Arena[component.Enemy]
	observers       []EnemyObserver
}

func NewEnemySystem(library *defs.Library, clock Clock, eventDispatcher *event.Dispatcher) *EnemySystem {
	return &EnemySystem{
		library:         library,
		clock:           clock,
		eventDispatcher: eventDispatcher,
		arena:           entity.NewArena[component.Enemy](),
	}
}

// AddObserver registers o. Observers are notified in registration order.
func (s *EnemySystem) AddObserver(o EnemyObserver) {
	s.observers = append(s.observers, o)
}

// CreateEnemy spawns an enemy of the given type at the start of path, or at
// pos when it is not nil. It returns nil if the type is unknown.
func (s *EnemySystem) CreateEnemy(enemyType string, path *waymap.Path, pos *cp.Vector) *component.Enemy {
	def, err := s.library.Enemy(enemyType)
	if err != nil {
		log.Printf("EnemySystem: cannot create enemy: %v", err)
		return nil
	}
	if path == nil {
		log.Printf("EnemySystem: cannot create enemy %q without a path", enemyType)
		return nil
	}

	e := &component.Enemy{
		Type:      enemyType,
		Health:    def.Health,
		MaxHealth: def.Health,
		BaseSpeed: def.Speed,
		Speed:     def.Speed,
		Position:  path.Start(),
		Path:      path,
		Bounty:    def.Bounty,
		State:     component.EnemyAlive,
		SpawnedAt: s.clock.Now(),
	}
	if pos != nil {
		e.Position = *pos
	}
	e.Handle = s.arena.Insert(e)

	s.eventDispatcher.Dispatch(event.EnemySpawned{Enemy: e.Handle, EnemyType: enemyType, Position: e.Position})
	return e
}

// Update moves every alive enemy along its path.
func (s *EnemySystem) Update(dt time.Duration) {
	step := dt.Seconds()
	if step <= 0 {
		return
	}
	for _, h := range s.arena.Handles() {
		e, ok := s.arena.Get(h)
		if !ok || !e.Active() {
			continue
		}
		s.move(e, e.Speed*step)
	}
}

// move advances the enemy by distance, carrying the leftover into the next
// segment when a waypoint is passed.
func (s *EnemySystem) move(e *component.Enemy, distance float64) {
	last := e.Path.Len() - 1
	for distance > 0 {
		if e.WaypointIndex >= last {
			s.reachEnd(e)
			return
		}
		next := e.Path.Waypoint(e.WaypointIndex + 1)
		d := e.Position.Distance(next)
		if distance < d {
			e.Position = e.Position.LerpConst(next, distance)
			return
		}
		e.Position = next
		distance -= d
		e.WaypointIndex++
		if e.WaypointIndex >= last {
			s.reachEnd(e)
			return
		}
	}
}

func (s *EnemySystem) reachEnd(e *component.Enemy) {
	e.State = component.EnemyRemoved
	s.arena.Remove(e.Handle)
	s.eventDispatcher.Dispatch(event.EnemyReachedEnd{Enemy: e.Handle, EnemyType: e.Type})
	for _, o := range s.observers {
		o.OnEnemyReachedEnd(e)
	}
}

// TakeDamage subtracts amount from the enemy's health and reports whether
// this call killed it. Calls on dead or removed enemies do nothing.
func (s *EnemySystem) TakeDamage(e *component.Enemy, amount float64) bool {
	if !e.Active() || amount <= 0 {
		return false
	}
	e.Health -= amount
	if e.Health > 0 {
		return false
	}

	e.Health = 0
	e.State = component.EnemyDying
	s.arena.Remove(e.Handle)
	s.eventDispatcher.Dispatch(event.EnemyDied{
		Enemy:     e.Handle,
		EnemyType: e.Type,
		Bounty:    e.Bounty,
		Position:  e.Position,
	})
	for _, o := range s.observers {
		o.OnEnemyDied(e)
	}
	e.State = component.EnemyRemoved
	return true
}

// Enemies returns alive enemies in arena order. The slice is a snapshot.
func (s *EnemySystem) Enemies() []*component.Enemy {
	out := make([]*component.Enemy, 0, s.arena.Len())
	s.arena.Each(func(_ entity.Handle, e *component.Enemy) {
		if e.Active() {
			out = append(out, e)
		}
	})
	return out
}

// Lookup resolves a handle to an alive enemy.
func (s *EnemySystem) Lookup(h entity.Handle) (*component.Enemy, bool) {
	e, ok := s.arena.Get(h)
	if !ok || !e.Active() {
		return nil, false
	}
	return e, true
}

// Count returns the number of alive enemies.
func (s *EnemySystem) Count() int {
	return s.arena.Len()
}

// ClearAll removes every enemy without emitting events. Observers get
// OnEnemyCleared so they can drop per-enemy state.
func (s *EnemySystem) ClearAll() {
	for _, h := range s.arena.Handles() {
		e, ok := s.arena.Get(h)
		if !ok {
			continue
		}
		e.State = component.EnemyRemoved
		for _, o := range s.observers {
			o.OnEnemyCleared(e)
		}
	}
	s.arena.Clear()
}
