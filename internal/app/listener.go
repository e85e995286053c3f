// internal/app/listener.go
package app

import (
	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/event"
)

// GameEventListener обрабатывает события, важные для основного игрового цикла:
// экономика, жизни, статистика профиля.
type GameEventListener struct {
	game *Game
}

// OnEvent реализует интерфейс event.Listener.
func (l *GameEventListener) OnEvent(e event.Event) {
	g := l.game
	switch ev := e.(type) {
	case event.TowerBuilt:
		g.addCoins(-ev.Cost, false)
		g.Profile.Stats.TowersBuilt++
		g.checkAchievements()
	case event.TowerUpgraded:
		g.addCoins(-ev.Cost, false)
		g.Profile.Stats.TowersUpgraded++
		g.checkAchievements()
	case event.TowerSold:
		g.addCoins(ev.Refund, false)
	case event.WaveStarted:
		g.waveLives = g.lives
	case event.WaveCompleted:
		if g.IsOver() {
			return
		}
		g.addCoins(ev.Reward, true)
		g.Profile.Stats.WavesCompleted++
		if g.lives == g.waveLives {
			g.Profile.Stats.PerfectWaves++
		}
		g.Profile.RecordWave(g.Map.ID, ev.WaveNumber)
		g.checkAchievements()
		g.save()
		g.scheduleAutoAdvance()
	case event.AllWavesCompleted:
		if g.transition("win") {
			g.finish(true)
		}
	}
}

func (l *GameEventListener) OnEnemyDied(e *component.Enemy) {
	g := l.game
	g.addCoins(e.Bounty, true)
	g.Profile.RecordKill(e.Type)
	g.checkAchievements()
}

func (l *GameEventListener) OnEnemyReachedEnd(*component.Enemy) {
	if l.game.IsOver() {
		return
	}
	l.game.loseLife()
}

func (l *GameEventListener) OnEnemyCleared(*component.Enemy) {}
