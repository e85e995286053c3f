// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"tg-tower-defense/internal/config"
)

const (
	panelMargin    = 10
	animationSpeed = 10.0
	lineHeight     = 18
	buttonWidth    = 110
	buttonHeight   = 26
)

// PanelAction — что игрок нажал на панели.
type PanelAction int

const (
	ActionNone PanelAction = iota
	ActionUpgrade
	ActionSell
	ActionStrategy
	ActionClose
)

// TowerInfo — данные выбранной башни для панели.
type TowerInfo struct {
	ID          uint64
	Type        string
	Level       int
	Damage      float64
	Range       float64
	AttackSpeed float64
	Strategy    string
	UpgradeCost int
	CanUpgrade  bool
	Affordable  bool
	SellPrice   int
}

// InfoPanel выезжает снизу экрана и показывает выбранную башню.
type InfoPanel struct {
	IsVisible bool
	Info      TowerInfo
	face      font.Face
	currentY  float64
	targetY   float64

	upgrade  *Button
	sell     *Button
	strategy *Button
}

func NewInfoPanel(face font.Face) *InfoPanel {
	return &InfoPanel{
		face:     face,
		currentY: config.ScreenHeight,
		targetY:  config.ScreenHeight,
		upgrade:  NewButton(image.Rectangle{}, "Upgrade", face),
		sell:     NewButton(image.Rectangle{}, "Sell", face),
		strategy: NewButton(image.Rectangle{}, "Target", face),
	}
}

// Show opens the panel for the tower.
func (p *InfoPanel) Show(info TowerInfo) {
	p.Info = info
	p.IsVisible = true
	p.targetY = config.ScreenHeight - config.PanelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

func (p *InfoPanel) Update() {
	if p.currentY != p.targetY {
		diff := p.targetY - p.currentY
		if math.Abs(diff) < animationSpeed {
			p.currentY = p.targetY
		} else {
			p.currentY += math.Copysign(animationSpeed, diff)
		}
	}
	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
	}
	p.layout()
}

// Contains reports whether the point lies on the visible panel.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

// Click возвращает действие для клика в точке x, y.
func (p *InfoPanel) Click(x, y int) PanelAction {
	if !p.Contains(x, y) {
		return ActionNone
	}
	switch {
	case p.upgrade.Contains(x, y):
		return ActionUpgrade
	case p.sell.Contains(x, y):
		return ActionSell
	case p.strategy.Contains(x, y):
		return ActionStrategy
	}
	return ActionNone
}

func (p *InfoPanel) layout() {
	top := int(p.currentY) + panelMargin
	left := config.ScreenWidth - panelMargin - buttonWidth
	p.upgrade.Rect = image.Rect(left, top, left+buttonWidth, top+buttonHeight)
	p.sell.Rect = p.upgrade.Rect.Add(image.Pt(0, buttonHeight+6))
	p.strategy.Rect = p.sell.Rect.Add(image.Pt(0, buttonHeight+6))

	p.upgrade.Disabled = !p.Info.CanUpgrade || !p.Info.Affordable
	if p.Info.CanUpgrade {
		p.upgrade.Text = fmt.Sprintf("Upgrade %d", p.Info.UpgradeCost)
	} else {
		p.upgrade.Text = "Max level"
	}
	p.sell.Text = fmt.Sprintf("Sell +%d", p.Info.SellPrice)
	p.strategy.Text = "Target: " + p.Info.Strategy
}

func (p *InfoPanel) Draw(screen *ebiten.Image, mx, my int) {
	if !p.IsVisible {
		return
	}
	y := float32(p.currentY)
	vector.DrawFilledRect(screen, 0, y, config.ScreenWidth, config.PanelHeight, config.PanelColor, false)
	vector.StrokeLine(screen, 0, y, config.ScreenWidth, y, 2, config.HUDColor, false)

	lines := []string{
		fmt.Sprintf("%s  lvl %d", p.Info.Type, p.Info.Level),
		fmt.Sprintf("damage %.0f   range %.0f   %.2f/s", p.Info.Damage, p.Info.Range, p.Info.AttackSpeed),
		fmt.Sprintf("strategy %s", p.Info.Strategy),
	}
	for i, line := range lines {
		text.Draw(screen, line, p.face, panelMargin, int(p.currentY)+panelMargin+lineHeight*(i+1), config.TextLightColor)
	}
	p.upgrade.Draw(screen, mx, my)
	p.sell.Draw(screen, mx, my)
	p.strategy.Draw(screen, mx, my)
}
