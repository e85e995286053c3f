// cmd/tdwatch/bot.go
package main

import (
	"math"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/internal/app"
	"tg-tower-defense/internal/system"
	"tg-tower-defense/internal/utils"
)

const (
	botBuildTries = 8
	botMinOffset  = 40.0
	botMaxOffset  = 110.0
)

// Bot — автоигрок: строит башни вдоль пути и запускает волны.
type Bot struct {
	rng *utils.PRNGService
}

func NewBot(seed int64) *Bot {
	return &Bot{rng: utils.NewPRNGService(seed)}
}

// Step делает один ход: запускает простаивающую волну и тратит монеты.
func (b *Bot) Step(g *app.Game) {
	if g.IsOver() {
		return
	}
	if g.WaveSystem.State() == system.WaveIdle || g.WaveSystem.State() == system.WaveComplete {
		g.StartNextWave()
	}
	choice := b.chooseTower(g)
	if choice == "" {
		return
	}
	for i := 0; i < botBuildTries; i++ {
		if _, err := g.BuildTower(choice, b.spot(g)); err == nil {
			return
		}
	}
}

// chooseTower выбирает доступную башню; дешёвые выпадают чаще.
func (b *Bot) chooseTower(g *app.Game) string {
	var options []utils.Weighted
	for _, id := range g.Library.TowerIDs() {
		def, err := g.Library.Tower(id)
		if err != nil || def.Cost <= 0 || !g.CanAfford(id) {
			continue
		}
		options = append(options, utils.Weighted{ID: id, Weight: 1000 / def.Cost})
	}
	return b.rng.ChooseWeighted(options)
}

// spot returns a point beside a random spot on the path.
func (b *Bot) spot(g *app.Game) cp.Vector {
	path := g.Map.Path
	p := path.PointAt(b.rng.Range(0, path.TotalLength()))
	angle := b.rng.Range(0, 2*math.Pi)
	r := b.rng.Range(botMinOffset, botMaxOffset)
	return p.Add(cp.ForAngle(angle).Mult(r))
}
