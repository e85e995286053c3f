// internal/state/menu_state.go
package state

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"tg-tower-defense/internal/config"
	"tg-tower-defense/internal/defs"
)

// MenuState — выбор карты перед началом игры.
type MenuState struct {
	sm       *StateMachine
	session  *Session
	maps     []string
	selected int
}

func NewMenuState(sm *StateMachine, session *Session) *MenuState {
	m := &MenuState{sm: sm, session: session}
	m.Reload(session.Library)
	return m
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(time.Duration) {
	if len(m.maps) == 0 {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		m.selected = (m.selected + 1) % len(m.maps)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		m.selected = (m.selected + len(m.maps) - 1) % len(m.maps)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		gs, err := NewGameState(m.sm, m.session, m.maps[m.selected])
		if err != nil {
			log.Printf("Menu: %v", err)
			return
		}
		m.sm.SetState(gs)
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := m.session.Face
	text.Draw(screen, "Select a map (Up/Down, Enter)", face, 40, 60, config.TextLightColor)
	for i, id := range m.maps {
		name := m.session.Library.Maps[id].Name
		line := fmt.Sprintf("  %s  %s (%d waves)", id, name, len(m.session.Library.WavesFor(id)))
		clr := config.TextLightColor
		if i == m.selected {
			line = ">" + line[1:]
			clr = config.SelectedColor
		}
		text.Draw(screen, line, face, 40, 100+i*24, clr)
	}
	if p := m.session.Options.Profile; p != nil {
		info := fmt.Sprintf("%s  gems %d  achievements %d", p.Name, p.Gems, len(p.Achievements))
		text.Draw(screen, info, face, 40, config.ScreenHeight-40, config.HUDColor)
	}
}

func (m *MenuState) Exit() {}

// Reload обновляет список карт.
func (m *MenuState) Reload(lib *defs.Library) {
	m.session.Library = lib
	m.maps = m.maps[:0]
	for id := range lib.Maps {
		m.maps = append(m.maps, id)
	}
	sort.Strings(m.maps)
	if m.selected >= len(m.maps) {
		m.selected = 0
	}
}
