// internal/state/game_state.go
package state

import (
	"errors"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/app"
	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/config"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/system"
	"tg-tower-defense/internal/ui"
	"tg-tower-defense/pkg/render"
)

var _ State = (*GameState)(nil)

var towerKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

var strategyCycle = []defs.TargetStrategy{
	defs.TargetFirst, defs.TargetClosest, defs.TargetStrongest, defs.TargetWeakest,
}

// GameState — состояние игры
type GameState struct {
	sm        *StateMachine
	session   *Session
	mapID     string
	game      *app.Game
	renderer  *render.BattlefieldRenderer
	indicator *ui.StateIndicator
	speed     *ui.SpeedButton
	pause     *ui.PauseButton
	wave      *ui.WaveIndicator
	infoPanel *ui.InfoPanel

	towerType     string
	selected      component.TowerID
	message       string
	messageUntil  time.Time
	lastClickTime time.Time
}

func NewGameState(sm *StateMachine, session *Session, mapID string) (*GameState, error) {
	g, err := app.NewGame(session.Library, mapID, session.Options)
	if err != nil {
		return nil, err
	}
	gs := &GameState{
		sm:        sm,
		session:   session,
		mapID:     mapID,
		game:      g,
		renderer:  render.NewBattlefieldRenderer(g.Map, config.ScreenWidth, config.ScreenHeight, session.Face),
		indicator: ui.NewStateIndicator(config.ScreenWidth-30, config.HUDHeight/2, config.IndicatorSize),
		speed:     ui.NewSpeedButton(config.ScreenWidth-70, config.HUDHeight/2, config.ButtonSize, config.GameSpeeds, config.SpeedColors),
		pause:     ui.NewPauseButton(config.ScreenWidth-110, config.HUDHeight/2, config.ButtonSize, config.PausedColor, config.PlayingColor),
		wave:      ui.NewWaveIndicator(config.ScreenWidth-360, config.HUDHeight/2+config.TextOffsetY, session.Face),
		infoPanel: ui.NewInfoPanel(session.Face),
	}
	if ids := session.Library.TowerIDs(); len(ids) > 0 {
		gs.towerType = ids[0]
	}
	return gs, nil
}

// Game returns the running session.
func (g *GameState) Game() *app.Game {
	return g.game
}

func (g *GameState) Enter() {}

func (g *GameState) Update(dt time.Duration) {
	g.infoPanel.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if !g.game.IsOver() {
			g.sm.SetState(NewPauseState(g.sm, g))
			return
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.game.Restart()
		g.deselect()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.advanceWave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cycleStrategy()
	}
	ids := g.session.Library.TowerIDs()
	for i, key := range towerKeys {
		if i < len(ids) && inpututil.IsKeyJustPressed(key) {
			g.towerType = ids[i]
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if time.Since(g.lastClickTime) >= config.ClickCooldown {
			if !g.handleUIClick(x, y) {
				g.handleGameClick(x, y)
			}
			g.lastClickTime = time.Now()
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.deselect()
	}

	// ускорение — несколько шагов фиксированного dt за кадр
	for i := 0; i < g.speed.Multiplier(); i++ {
		g.game.Update(dt)
	}
	g.refreshPanel()
}

func (g *GameState) advanceWave() {
	if g.game.SkipWaveDelay() {
		return
	}
	if !g.game.StartNextWave() {
		g.notify("wave already running")
	}
	g.indicator.HandleClick()
}

func (g *GameState) handleUIClick(x, y int) bool {
	switch {
	case g.pause.Contains(x, y):
		g.pause.Toggle()
		g.sm.SetState(NewPauseState(g.sm, g))
	case g.speed.Contains(x, y):
		g.speed.Toggle()
	case g.indicator.Contains(x, y):
		g.advanceWave()
	case g.infoPanel.Contains(x, y):
		g.handlePanel(g.infoPanel.Click(x, y))
	case y < config.HUDHeight:
	default:
		return false
	}
	return true
}

func (g *GameState) handlePanel(action ui.PanelAction) {
	t := g.game.TowerSystem.Get(g.selected)
	if t == nil {
		g.deselect()
		return
	}
	switch action {
	case ui.ActionUpgrade:
		if err := g.game.UpgradeTower(t); err != nil {
			g.notify(err.Error())
		}
	case ui.ActionSell:
		if _, err := g.game.SellTower(t); err != nil {
			g.notify(err.Error())
			return
		}
		g.deselect()
	case ui.ActionStrategy:
		g.cycleStrategy()
	case ui.ActionClose:
		g.deselect()
	}
}

func (g *GameState) handleGameClick(x, y int) {
	pos := cp.Vector{X: float64(x), Y: float64(y)}
	if t := g.game.TowerSystem.TowerAt(pos); t != nil {
		g.selected = t.ID
		g.refreshPanel()
		return
	}
	g.deselect()
	if g.towerType == "" {
		return
	}
	_, err := g.game.BuildTower(g.towerType, pos)
	switch {
	case err == nil:
	case errors.Is(err, app.ErrInsufficientFunds):
		g.notify("not enough coins")
	case errors.Is(err, system.ErrTooClose), errors.Is(err, system.ErrNotBuildable), errors.Is(err, system.ErrInvalidPosition):
		g.notify("can't build here")
	default:
		log.Printf("GameState: build %s: %v", g.towerType, err)
		g.notify(err.Error())
	}
}

func (g *GameState) cycleStrategy() {
	t := g.game.TowerSystem.Get(g.selected)
	if t == nil {
		return
	}
	next := strategyCycle[0]
	for i, s := range strategyCycle {
		if s == t.Strategy {
			next = strategyCycle[(i+1)%len(strategyCycle)]
			break
		}
	}
	g.game.SetTowerStrategy(t, next)
}

func (g *GameState) refreshPanel() {
	if g.selected == 0 {
		return
	}
	t := g.game.TowerSystem.Get(g.selected)
	if t == nil {
		g.deselect()
		return
	}
	cost, canUpgrade := g.game.TowerSystem.UpgradeCost(t)
	g.infoPanel.Show(ui.TowerInfo{
		ID:          uint64(t.ID),
		Type:        t.Type,
		Level:       t.Level,
		Damage:      t.Stats.Damage,
		Range:       t.Stats.Range,
		AttackSpeed: t.Stats.AttackSpeed,
		Strategy:    string(t.Strategy),
		UpgradeCost: cost,
		CanUpgrade:  canUpgrade,
		Affordable:  g.game.Coins() >= cost,
		SellPrice:   g.game.TowerSystem.SellPrice(t),
	})
}

func (g *GameState) deselect() {
	g.selected = 0
	g.infoPanel.Hide()
}

func (g *GameState) notify(msg string) {
	g.message = msg
	g.messageUntil = time.Now().Add(2 * time.Second)
}

func (g *GameState) phaseColor() color.RGBA {
	switch g.game.Phase() {
	case app.PhaseVictory:
		return config.VictoryColor
	case app.PhaseDefeat:
		return config.DefeatColor
	case app.PhasePaused:
		return config.PausedColor
	}
	if g.game.WaveSystem.State() == system.WaveCountdown {
		return config.CountdownColor
	}
	return config.PlayingColor
}

func (g *GameState) Draw(screen *ebiten.Image) {
	snap := g.game.Snapshot()
	g.renderer.Draw(screen, snap, uint64(g.selected))
	g.renderer.DrawHUD(screen, snap, g.towerType, g.speed.Multiplier())

	g.wave.Draw(screen, snap.Wave)
	g.indicator.Draw(screen, g.phaseColor())
	g.speed.Draw(screen)
	g.pause.Draw(screen)

	mx, my := ebiten.CursorPosition()
	g.infoPanel.Draw(screen, mx, my)

	if time.Now().Before(g.messageUntil) {
		text.Draw(screen, g.message, g.session.Face, 10, config.HUDHeight+20, config.DefeatColor)
	}
	if g.game.IsOver() {
		label := "DEFEAT  (R to restart)"
		clr := config.DefeatColor
		if g.game.Phase() == app.PhaseVictory {
			label = "VICTORY  (R to restart)"
			clr = config.VictoryColor
		}
		w := len(label) * config.TextCharWidth
		text.Draw(screen, label, g.session.Face, (config.ScreenWidth-w)/2, config.ScreenHeight/2, clr)
	}
}

func (g *GameState) Exit() {}

// Reload пересоздаёт сессию на новых определениях. Текущий бой теряется.
func (g *GameState) Reload(lib *defs.Library) {
	g.session.Library = lib
	next, err := NewGameState(g.sm, g.session, g.mapID)
	if err != nil {
		log.Printf("GameState: reload failed, keeping current session: %v", err)
		return
	}
	g.game.Close()
	*g = *next
	log.Printf("GameState: definitions reloaded for map %s", g.mapID)
}
