// internal/app/game.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/looplab/fsm"

	"tg-tower-defense/internal/config"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/event"
	"tg-tower-defense/internal/profile"
	"tg-tower-defense/internal/system"
	"tg-tower-defense/internal/timer"
	"tg-tower-defense/pkg/waymap"
)

// Фазы игры
const (
	PhasePlaying = "playing"
	PhasePaused  = "paused"
	PhaseVictory = "victory"
	PhaseDefeat  = "defeat"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotPlaying        = errors.New("game is not running")
)

// Saver persists profile snapshots without blocking the caller.
type Saver interface {
	Save(p *profile.Profile)
}

// Options configures a session. Zero values mean defaults.
type Options struct {
	Lives       int
	Coins       int
	AutoAdvance time.Duration // <0 отключает автозапуск следующей волны
	Profile     *profile.Profile
	Saver       Saver
}

// Game связывает системы в один тик и держит экономику сессии.
type Game struct {
	Library          *defs.Library
	Map              *waymap.Map
	Scheduler        *timer.Scheduler
	EventDispatcher  *event.Dispatcher
	EnemySystem      *system.EnemySystem
	EffectSystem     *system.EffectSystem
	ProjectileSystem *system.ProjectileSystem
	TowerSystem      *system.TowerSystem
	WaveSystem       *system.WaveSystem
	Profile          *profile.Profile

	tracker     *profile.Tracker
	saver       Saver
	phase       *fsm.FSM
	opts        Options
	coins       int
	lives       int
	livesLost   bool
	waveLives   int
	autoAdvance *timer.Timer
}

// NewGame builds a session on the given map. A missing or broken map falls
// back to the default one.
func NewGame(library *defs.Library, mapID string, opts Options) (*Game, error) {
	m, err := library.MapOrDefault(mapID, config.DefaultMapID)
	if err != nil {
		return nil, fmt.Errorf("failed to load map %q: %w", mapID, err)
	}
	if opts.Lives <= 0 {
		opts.Lives = config.StartingLives
	}
	if opts.Coins <= 0 {
		opts.Coins = config.StartingCoins
	}
	if opts.AutoAdvance == 0 {
		opts.AutoAdvance = config.WaveAutoAdvanceDelay
	}
	if opts.Profile == nil {
		opts.Profile = profile.New("player")
	}

	scheduler := timer.NewScheduler()
	eventDispatcher := event.NewDispatcher()
	g := &Game{
		Library:         library,
		Map:             m,
		Scheduler:       scheduler,
		EventDispatcher: eventDispatcher,
		Profile:         opts.Profile,
		saver:           opts.Saver,
		opts:            opts,
	}
	g.EnemySystem = system.NewEnemySystem(library, scheduler, eventDispatcher)
	g.EffectSystem = system.NewEffectSystem(scheduler, eventDispatcher, g.EnemySystem)
	g.ProjectileSystem = system.NewProjectileSystem(g.EnemySystem, g.EffectSystem, scheduler, eventDispatcher)
	g.TowerSystem = system.NewTowerSystem(library, m, g.ProjectileSystem, eventDispatcher)
	g.WaveSystem = system.NewWaveSystem(g.EnemySystem, scheduler, eventDispatcher)
	g.tracker = profile.NewTracker(library.Achievements, g.Profile)

	g.phase = fsm.NewFSM(
		PhasePlaying,
		fsm.Events{
			{Name: "pause", Src: []string{PhasePlaying}, Dst: PhasePaused},
			{Name: "resume", Src: []string{PhasePaused}, Dst: PhasePlaying},
			{Name: "win", Src: []string{PhasePlaying, PhasePaused}, Dst: PhaseVictory},
			{Name: "lose", Src: []string{PhasePlaying, PhasePaused}, Dst: PhaseDefeat},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Printf("Game: phase %s -> %s", e.Src, e.Dst)
			},
		},
	)

	// порядок важен: эффекты снимаются первыми, потери жизней раньше завершения волны
	listener := &GameEventListener{game: g}
	g.EnemySystem.AddObserver(g.EffectSystem)
	g.EnemySystem.AddObserver(listener)
	g.EnemySystem.AddObserver(g.WaveSystem)

	eventDispatcher.Subscribe(event.TowerBuiltType, listener)
	eventDispatcher.Subscribe(event.TowerUpgradedType, listener)
	eventDispatcher.Subscribe(event.TowerSoldType, listener)
	eventDispatcher.Subscribe(event.WaveStartedType, listener)
	eventDispatcher.Subscribe(event.WaveCompletedType, listener)
	eventDispatcher.Subscribe(event.AllWavesCompleteType, listener)

	g.start()
	return g, nil
}

func (g *Game) start() {
	g.coins = g.opts.Coins
	g.lives = g.opts.Lives
	g.waveLives = g.lives
	g.livesLost = false
	g.WaveSystem.SetWaves(g.Library.WavesFor(g.Map.ID))
	g.WaveSystem.SetPath(g.Map.Path)
	g.EffectSystem.Start()
	g.Profile.Stats.GamesPlayed++
}

// Update advances the simulation by dt: enemies, towers, projectiles, then
// every timer due inside the step (effects, spawns, wave countdowns).
func (g *Game) Update(dt time.Duration) {
	if !g.phase.Is(PhasePlaying) {
		return
	}
	if dt > config.MaxDeltaTime {
		dt = config.MaxDeltaTime
	}
	if dt <= 0 {
		return
	}
	g.EnemySystem.Update(dt)
	g.TowerSystem.Update(g.EnemySystem.Enemies(), g.Scheduler.Now())
	g.ProjectileSystem.Update(dt)
	g.Scheduler.Advance(dt)
}

// StartNextWave starts the next wave right away.
func (g *Game) StartNextWave() bool {
	if !g.phase.Is(PhasePlaying) {
		return false
	}
	g.autoAdvance.Cancel()
	g.autoAdvance = nil
	return g.WaveSystem.StartNextWave()
}

// SkipWaveDelay skips the countdown of a pending wave.
func (g *Game) SkipWaveDelay() bool {
	if !g.phase.Is(PhasePlaying) {
		return false
	}
	return g.WaveSystem.SkipWaveDelay()
}

// Pause stops the simulation clock.
func (g *Game) Pause() bool {
	return g.transition("pause")
}

// Resume continues a paused game.
func (g *Game) Resume() bool {
	return g.transition("resume")
}

// Restart tears the session down and starts over on the same map.
func (g *Game) Restart() {
	g.autoAdvance.Cancel()
	g.autoAdvance = nil
	g.WaveSystem.Reset()
	g.ProjectileSystem.Clear()
	g.EnemySystem.ClearAll()
	g.EffectSystem.Stop()
	g.EffectSystem.Reset()
	g.TowerSystem.Clear()
	g.Scheduler.Reset()

	from := g.phase.Current()
	g.phase.SetState(PhasePlaying)
	g.start()
	if from != PhasePlaying {
		g.EventDispatcher.Dispatch(event.PhaseChanged{From: from, To: PhasePlaying})
	}
	g.EventDispatcher.Dispatch(event.CoinsChanged{Coins: g.coins})
	g.EventDispatcher.Dispatch(event.LivesChanged{Lives: g.lives})
}

// Close stops background timers. The saver is owned by the caller.
func (g *Game) Close() {
	g.EffectSystem.Stop()
	g.Scheduler.CancelAll()
}

func (g *Game) Coins() int    { return g.coins }
func (g *Game) Lives() int    { return g.lives }
func (g *Game) Phase() string { return g.phase.Current() }

// Now returns the simulation time.
func (g *Game) Now() time.Duration { return g.Scheduler.Now() }

// IsOver reports whether the session ended in victory or defeat.
func (g *Game) IsOver() bool {
	return g.phase.Is(PhaseVictory) || g.phase.Is(PhaseDefeat)
}

func (g *Game) transition(name string) bool {
	from := g.phase.Current()
	if err := g.phase.Event(context.Background(), name); err != nil {
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			log.Printf("Game: cannot %s from %s: %v", name, from, err)
		}
		return false
	}
	g.EventDispatcher.Dispatch(event.PhaseChanged{From: from, To: g.phase.Current()})
	return true
}

func (g *Game) addCoins(delta int, earned bool) {
	if delta == 0 {
		return
	}
	g.coins += delta
	if earned && delta > 0 {
		g.Profile.Stats.CoinsEarned += delta
	}
	g.EventDispatcher.Dispatch(event.CoinsChanged{Coins: g.coins, Delta: delta})
}

func (g *Game) loseLife() {
	g.lives--
	g.livesLost = true
	g.EventDispatcher.Dispatch(event.LivesChanged{Lives: g.lives, Delta: -1})
	if g.lives <= 0 && g.transition("lose") {
		g.finish(false)
	}
}

func (g *Game) finish(victory bool) {
	g.autoAdvance.Cancel()
	g.autoAdvance = nil
	if victory {
		g.Profile.Stats.GamesWon++
		if !g.livesLost {
			g.Profile.Stats.MapsCompletedNoLoss++
		}
	}
	g.Profile.RecordWave(g.Map.ID, g.WaveSystem.Progress().CurrentWave)
	g.checkAchievements()
	g.save()
	g.EventDispatcher.Dispatch(event.GameOver{
		Victory: victory,
		Wave:    g.WaveSystem.Progress().CurrentWave,
		Elapsed: g.Scheduler.Now(),
	})
}

func (g *Game) checkAchievements() {
	for _, a := range g.tracker.Check() {
		log.Printf("Game: achievement unlocked: %s", a.ID)
		g.EventDispatcher.Dispatch(event.AchievementUnlocked{ID: a.ID, Name: a.Name, Reward: a.Reward})
	}
}

func (g *Game) save() {
	if g.saver != nil {
		g.saver.Save(g.Profile)
	}
}

func (g *Game) scheduleAutoAdvance() {
	if g.opts.AutoAdvance < 0 {
		return
	}
	g.autoAdvance.Cancel()
	g.autoAdvance = g.Scheduler.After(g.opts.AutoAdvance, func() {
		g.autoAdvance = nil
		if g.phase.Is(PhasePlaying) {
			g.WaveSystem.StartNextWave()
		}
	})
}
