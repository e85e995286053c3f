// internal/state/state.go
package state

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"tg-tower-defense/internal/defs"
)

// State — интерфейс для всех состояний
type State interface {
	Enter()
	Update(dt time.Duration)
	Draw(screen *ebiten.Image)
	Exit()
}

// Reloadable состояния принимают перечитанные определения.
type Reloadable interface {
	Reload(lib *defs.Library)
}

// StateMachine — структура для управления состояниями
type StateMachine struct {
	current State
}

// NewStateMachine создаёт новую машину состояний без начального состояния
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState устанавливает новое состояние
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter()
	}
}

// Current returns the active state.
func (sm *StateMachine) Current() State {
	return sm.current
}

// Update обновляет текущее состояние
func (sm *StateMachine) Update(dt time.Duration) {
	if sm.current != nil {
		sm.current.Update(dt)
	}
}

// Draw отрисовывает текущее состояние
func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}

// Reload передаёт новые определения текущему состоянию.
func (sm *StateMachine) Reload(lib *defs.Library) {
	if r, ok := sm.current.(Reloadable); ok {
		r.Reload(lib)
	}
}
