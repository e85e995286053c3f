// pkg/render/battlefield.go
package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"tg-tower-defense/internal/app"
	"tg-tower-defense/internal/config"
	"tg-tower-defense/internal/utils"
	"tg-tower-defense/pkg/waymap"
)

// BattlefieldRenderer рисует карту, башни, врагов и снаряды из снимка игры.
type BattlefieldRenderer struct {
	gameMap      *waymap.Map
	screenWidth  int
	screenHeight int
	fontFace     font.Face
	mapImage     *ebiten.Image // предрендеренная карта
	rotations    map[uint64]float64
}

func NewBattlefieldRenderer(gameMap *waymap.Map, screenWidth, screenHeight int, face font.Face) *BattlefieldRenderer {
	r := &BattlefieldRenderer{
		gameMap:      gameMap,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		fontFace:     face,
		mapImage:     ebiten.NewImage(screenWidth, screenHeight),
		rotations:    make(map[uint64]float64),
	}
	r.RenderMapImage()
	return r
}

// RenderMapImage создаёт предрендеренное изображение задника
func (r *BattlefieldRenderer) RenderMapImage() {
	r.mapImage.Clear()
	r.mapImage.Fill(config.BackgroundColor)

	for _, tile := range r.gameMap.BuildableTiles() {
		x, y, ok := parseTile(tile)
		if !ok {
			continue
		}
		vector.DrawFilledRect(r.mapImage, float32(x*waymap.TileSize)+1, float32(y*waymap.TileSize)+1,
			waymap.TileSize-2, waymap.TileSize-2, config.BuildableColor, false)
	}

	pts := r.gameMap.Path.Waypoints()
	for i := 0; i < len(pts)-1; i++ {
		a, b := pts[i], pts[i+1]
		vector.StrokeLine(r.mapImage, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), config.PathWidth, config.PathColor, true)
		vector.DrawFilledCircle(r.mapImage, float32(b.X), float32(b.Y), config.PathWidth/2, config.PathColor, true)
	}
	start, end := r.gameMap.Path.Start(), r.gameMap.Path.End()
	vector.DrawFilledCircle(r.mapImage, float32(start.X), float32(start.Y), config.PathWidth/2, config.PlayingColor, true)
	vector.DrawFilledCircle(r.mapImage, float32(end.X), float32(end.Y), config.PathWidth/2, config.DefeatColor, true)
}

// Draw рисует кадр. selected — id выделенной башни или 0.
func (r *BattlefieldRenderer) Draw(screen *ebiten.Image, s app.Snapshot, selected uint64) {
	screen.DrawImage(r.mapImage, nil)

	seen := make(map[uint64]struct{}, len(s.Towers))
	for _, t := range s.Towers {
		seen[t.ID] = struct{}{}
		r.drawTower(screen, t, t.ID == selected)
	}
	// повороты проданных башен больше не нужны
	for id := range r.rotations {
		if _, ok := seen[id]; !ok {
			delete(r.rotations, id)
		}
	}

	for _, e := range s.Enemies {
		r.drawEnemy(screen, e)
	}
	for _, p := range s.Projectiles {
		vector.DrawFilledCircle(screen, float32(p.Position.X), float32(p.Position.Y), config.ProjectileRadius, config.ProjectileColor, true)
	}
}

func (r *BattlefieldRenderer) drawTower(screen *ebiten.Image, t app.TowerView, selected bool) {
	x, y := float32(t.Position.X), float32(t.Position.Y)
	if selected {
		vector.DrawFilledCircle(screen, x, y, float32(t.Range), config.RangeColor, true)
	}

	rot, ok := r.rotations[t.ID]
	if !ok {
		rot = t.Rotation
	}
	rot = utils.LerpAngle(rot, t.Rotation, config.RotationSmooth)
	r.rotations[t.ID] = rot

	fill := TowerColor(t.Type)
	stroke := config.TowerStrokeColor
	if selected {
		stroke = config.SelectedColor
	}
	vector.DrawFilledCircle(screen, x, y, config.TowerRadius, DarkenColor(fill), true)
	vector.StrokeCircle(screen, x, y, config.TowerRadius, 2, stroke, true)

	barrel := float32(config.TowerRadius * 1.3)
	bx := x + barrel*float32(math.Cos(rot))
	by := y + barrel*float32(math.Sin(rot))
	vector.StrokeLine(screen, x, y, bx, by, 4, fill, true)

	label := strconv.Itoa(t.Level)
	text.Draw(screen, label, r.fontFace, int(x)-config.TextCharWidth/2, int(y)+config.TextOffsetY, config.TextLightColor)
}

func (r *BattlefieldRenderer) drawEnemy(screen *ebiten.Image, e app.EnemyView) {
	x, y := float32(e.Position.X), float32(e.Position.Y)
	vector.DrawFilledCircle(screen, x, y, config.EnemyRadius, EnemyColor(e.Type, e.Slowed, e.Poisoned), true)

	// полоска здоровья
	w := float32(config.EnemyRadius * 2)
	top := y - config.EnemyRadius - 6
	vector.DrawFilledRect(screen, x-w/2, top, w, 3, config.HealthBackColor, false)
	vector.DrawFilledRect(screen, x-w/2, top, w*float32(e.Ratio), 3, config.HealthBarColor, false)
}

// DrawHUD рисует верхнюю строку: монеты, жизни, фаза.
func (r *BattlefieldRenderer) DrawHUD(screen *ebiten.Image, s app.Snapshot, towerType string, speed int) {
	vector.DrawFilledRect(screen, 0, 0, float32(r.screenWidth), config.HUDHeight, color.RGBA{0, 0, 0, 140}, false)
	line := fmt.Sprintf("coins %d   lives %d   %s   build: %s   x%d   t=%.1fs",
		s.Coins, s.Lives, s.Phase, towerType, speed, s.Now.Seconds())
	text.Draw(screen, line, r.fontFace, 10, config.HUDHeight/2+config.TextOffsetY, config.TextLightColor)
}

func parseTile(key string) (int, int, bool) {
	xs, ys, ok := strings.Cut(key, ",")
	if !ok {
		return 0, 0, false
	}
	x, err1 := strconv.Atoi(xs)
	y, err2 := strconv.Atoi(ys)
	return x, y, err1 == nil && err2 == nil
}
