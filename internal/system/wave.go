// internal/system/wave.go
package system

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/looplab/fsm"

	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/config"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/event"
	"tg-tower-defense/internal/timer"
	"tg-tower-defense/pkg/waymap"
)

// Состояния расписания волн
const (
	WaveIdle        = "idle"
	WaveCountdown   = "countdown"
	WaveSpawning    = "spawning"
	WaveComplete    = "complete"
	WaveAllComplete = "all_complete"
)

// WaveSystem запускает волны, расставляет появления врагов во времени и
// определяет завершение волны.
type WaveSystem struct {
	enemySystem     *EnemySystem
	scheduler       *timer.Scheduler
	eventDispatcher *event.Dispatcher
	machine         *fsm.FSM

	waves   []defs.WaveDefinition
	path    *waymap.Path
	index   int
	spawned int
	total   int

	startTimer    *timer.Timer
	progressTimer *timer.Timer
	spawnTimers   []*timer.Timer
}

func NewWaveSystem(enemySystem *EnemySystem, scheduler *timer.Scheduler, eventDispatcher *event.Dispatcher) *WaveSystem {
	s := &WaveSystem{
		enemySystem:     enemySystem,
		scheduler:       scheduler,
		eventDispatcher: eventDispatcher,
		index:           -1,
	}
	s.machine = fsm.NewFSM(
		WaveIdle,
		fsm.Events{
			{Name: "countdown", Src: []string{WaveIdle, WaveComplete}, Dst: WaveCountdown},
			{Name: "spawn", Src: []string{WaveIdle, WaveComplete, WaveCountdown}, Dst: WaveSpawning},
			{Name: "complete", Src: []string{WaveSpawning}, Dst: WaveComplete},
			{Name: "finish", Src: []string{WaveIdle, WaveComplete}, Dst: WaveAllComplete},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Printf("WaveSystem: %s -> %s (wave %d)", e.Src, e.Dst, s.index+1)
			},
		},
	)
	return s
}

// SetWaves replaces the wave list and resets the schedule.
func (s *WaveSystem) SetWaves(waves []defs.WaveDefinition) {
	s.Reset()
	s.waves = append([]defs.WaveDefinition(nil), waves...)
}

// SetPath sets the path spawned enemies follow.
func (s *WaveSystem) SetPath(path *waymap.Path) {
	s.path = path
}

// State returns the current scheduler state.
func (s *WaveSystem) State() string {
	return s.machine.Current()
}

// IsActive reports whether a wave is counting down or spawning.
func (s *WaveSystem) IsActive() bool {
	return s.machine.Is(WaveCountdown) || s.machine.Is(WaveSpawning)
}

// StartNextWave advances to the next wave. It returns false if a wave is
// already active, no path is set, or there are no waves left.
func (s *WaveSystem) StartNextWave() bool {
	if s.IsActive() || s.machine.Is(WaveAllComplete) {
		return false
	}
	if s.path == nil {
		log.Printf("WaveSystem: cannot start wave without a path")
		return false
	}

	next := s.index + 1
	if next >= len(s.waves) {
		s.fire("finish")
		s.eventDispatcher.Dispatch(event.AllWavesCompleted{Waves: len(s.waves)})
		s.publishProgress()
		return false
	}

	s.index = next
	s.spawned = 0
	s.total = s.waves[next].TotalEnemies()
	s.cancelSpawns()

	wave := s.waves[next]
	if delay := wave.PreDelay(); delay > 0 && next > 0 {
		s.fire("countdown")
		s.startTimer = s.scheduler.After(delay, s.beginWave)
		s.progressTimer = s.scheduler.Every(config.WaveProgressInterval, s.publishProgress)
		s.publishProgress()
		return true
	}
	s.beginWave()
	return true
}

// SkipWaveDelay starts a counting-down wave right away.
func (s *WaveSystem) SkipWaveDelay() bool {
	if !s.machine.Is(WaveCountdown) || !s.startTimer.Pending() {
		return false
	}
	s.beginWave()
	return true
}

func (s *WaveSystem) beginWave() {
	s.startTimer.Cancel()
	s.progressTimer.Cancel()
	s.startTimer, s.progressTimer = nil, nil
	s.fire("spawn")

	wave := s.waves[s.index]
	s.eventDispatcher.Dispatch(event.WaveStarted{
		WaveNumber:  wave.WaveNumber,
		Description: wave.Description,
		Total:       s.total,
	})

	var offset time.Duration
	for _, group := range wave.Enemies {
		enemyType := group.Type
		for i := 0; i < group.Count; i++ {
			s.spawnTimers = append(s.spawnTimers, s.scheduler.After(offset, func() {
				s.spawn(enemyType)
			}))
			offset += group.SpawnInterval()
		}
	}
	s.publishProgress()
	s.checkCompletion()
}

func (s *WaveSystem) spawn(enemyType string) {
	if !s.machine.Is(WaveSpawning) {
		return
	}
	// счётчик растёт даже при ошибке создания, иначе волна не завершится
	s.spawned++
	if e := s.enemySystem.CreateEnemy(enemyType, s.path, nil); e == nil {
		log.Printf("WaveSystem: spawn of %q failed in wave %d", enemyType, s.index+1)
	}
	s.publishProgress()
	s.checkCompletion()
}

func (s *WaveSystem) checkCompletion() {
	if !s.machine.Is(WaveSpawning) {
		return
	}
	if s.spawned < s.total || s.enemySystem.Count() != 0 {
		return
	}
	s.cancelSpawns()
	s.fire("complete")
	wave := s.waves[s.index]
	s.eventDispatcher.Dispatch(event.WaveCompleted{WaveNumber: wave.WaveNumber, Reward: wave.Reward})
	s.publishProgress()
}

// Reset cancels all pending timers and returns to idle.
func (s *WaveSystem) Reset() {
	s.cancelSpawns()
	s.startTimer.Cancel()
	s.progressTimer.Cancel()
	s.startTimer, s.progressTimer = nil, nil
	s.index = -1
	s.spawned = 0
	s.total = 0
	s.machine.SetState(WaveIdle)
}

// Progress returns the current wave progress.
func (s *WaveSystem) Progress() component.WaveProgress {
	p := component.WaveProgress{
		CurrentWave: s.index + 1,
		TotalWaves:  len(s.waves),
		Spawned:     s.spawned,
		Total:       s.total,
		Alive:       s.enemySystem.Count(),
		InProgress:  s.machine.Is(WaveSpawning),
	}
	if s.machine.Is(WaveCountdown) {
		p.TimeUntilNext = s.startTimer.Remaining()
	}
	return p
}

// PendingSpawns returns the number of spawn timers still waiting.
func (s *WaveSystem) PendingSpawns() int {
	n := 0
	for _, t := range s.spawnTimers {
		if t.Pending() {
			n++
		}
	}
	return n
}

func (s *WaveSystem) OnEnemyDied(*component.Enemy) {
	s.publishProgress()
	s.checkCompletion()
}

func (s *WaveSystem) OnEnemyReachedEnd(*component.Enemy) {
	s.publishProgress()
	s.checkCompletion()
}

func (s *WaveSystem) OnEnemyCleared(*component.Enemy) {}

func (s *WaveSystem) publishProgress() {
	s.eventDispatcher.Dispatch(event.WaveProgressUpdated{Progress: s.Progress()})
}

func (s *WaveSystem) cancelSpawns() {
	for _, t := range s.spawnTimers {
		t.Cancel()
	}
	s.spawnTimers = s.spawnTimers[:0]
}

func (s *WaveSystem) fire(name string) {
	err := s.machine.Event(context.Background(), name)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		log.Printf("WaveSystem: transition %q from %s failed: %v", name, s.machine.Current(), err)
	}
}
