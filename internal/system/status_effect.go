// internal/system/status_effect.go
package system

import (
	"log"

	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/config"
	"tg-tower-defense/internal/entity"
	"tg-tower-defense/internal/event"
	"tg-tower-defense/internal/timer"
)

// enemyEffects — слоты эффектов одного врага.
type enemyEffects struct {
	enemy  *component.Enemy
	slow   *component.SlowEffect
	poison *component.PoisonEffect
}

func (r *enemyEffects) empty() bool {
	return r.slow == nil && r.poison == nil
}

// EffectSystem управляет жизненным циклом эффектов: замедление и яд.
// Эффекты тикают на собственном таймере, независимо от кадров.
type EffectSystem struct {
	scheduler       *timer.Scheduler
	eventDispatcher *event.Dispatcher
	damager         Damager
	tracked         map[entity.Handle]*enemyEffects
	order           []entity.Handle
	loop            *timer.Timer
}

func NewEffectSystem(scheduler *timer.Scheduler, eventDispatcher *event.Dispatcher, damager Damager) *EffectSystem {
	return &EffectSystem{
		scheduler:       scheduler,
		eventDispatcher: eventDispatcher,
		damager:         damager,
		tracked:         make(map[entity.Handle]*enemyEffects),
	}
}

// Start launches the effect loop. Calling Start twice is a no-op.
func (s *EffectSystem) Start() {
	if s.loop.Pending() {
		return
	}
	s.loop = s.scheduler.Every(config.EffectTickInterval, s.tick)
}

// Stop cancels the effect loop.
func (s *EffectSystem) Stop() {
	s.loop.Cancel()
	s.loop = nil
}

// Apply applies eff to the enemy following the stacking rules and reports
// whether anything changed.
func (s *EffectSystem) Apply(enemy *component.Enemy, eff component.Effect) bool {
	if !enemy.Active() || eff == nil {
		return false
	}
	rec := s.record(enemy)
	stacks := 1
	var amount float64

	switch e := eff.(type) {
	case *component.SlowEffect:
		if e.Amount <= 0 || e.Amount > 1 {
			log.Printf("EffectSystem: invalid slow amount %.2f for enemy %s", e.Amount, enemy.Handle)
			s.dropIfEmpty(rec)
			return false
		}
		if rec.slow != nil {
			// более слабое или равное замедление отбрасывается
			if e.Amount >= rec.slow.Amount {
				return false
			}
			enemy.Speed /= rec.slow.Amount
		}
		slow := *e
		rec.slow = &slow
		enemy.Speed *= slow.Amount
		amount = slow.Amount

	case *component.PoisonEffect:
		if e.DamagePerSecond <= 0 {
			s.dropIfEmpty(rec)
			return false
		}
		if rec.poison == nil {
			poison := *e
			if poison.Stacks < 1 {
				poison.Stacks = 1
			}
			poison.LastTick = s.scheduler.Now()
			rec.poison = &poison
		} else {
			// урон всегда суммируется в одну запись, Stackable влияет только на счётчик
			cur := rec.poison
			cur.DamagePerSecond += e.DamagePerSecond
			if e.Stackable {
				cur.Stacks++
			}
			if e.EndTime > cur.EndTime {
				cur.EndTime = e.EndTime
			}
			cur.Stackable = cur.Stackable || e.Stackable
		}
		stacks = rec.poison.Stacks
		amount = rec.poison.DamagePerSecond

	default:
		log.Printf("EffectSystem: unsupported effect %T", eff)
		s.dropIfEmpty(rec)
		return false
	}

	s.eventDispatcher.Dispatch(event.EffectApplied{Enemy: enemy.Handle, Effect: eff.Type(), Stacks: stacks, Amount: amount})
	return true
}

// ClearEnemyEffects reverses and removes every effect on the enemy.
func (s *EffectSystem) ClearEnemyEffects(enemy *component.Enemy) {
	if enemy == nil {
		return
	}
	rec, ok := s.tracked[enemy.Handle]
	if !ok {
		return
	}
	if rec.slow != nil {
		s.expireSlow(rec)
	}
	if rec.poison != nil {
		rec.poison = nil
		s.eventDispatcher.Dispatch(event.EffectExpired{Enemy: enemy.Handle, Effect: component.EffectPoison})
	}
	s.drop(enemy.Handle)
}

// Effects returns the active effects of an enemy.
func (s *EffectSystem) Effects(h entity.Handle) []component.Effect {
	rec, ok := s.tracked[h]
	if !ok {
		return nil
	}
	var out []component.Effect
	if rec.slow != nil {
		out = append(out, rec.slow)
	}
	if rec.poison != nil {
		out = append(out, rec.poison)
	}
	return out
}

// Tracked returns the number of enemies with at least one effect.
func (s *EffectSystem) Tracked() int {
	return len(s.tracked)
}

// Reset drops all bookkeeping without touching enemies.
func (s *EffectSystem) Reset() {
	s.tracked = make(map[entity.Handle]*enemyEffects)
	s.order = nil
}

func (s *EffectSystem) OnEnemyDied(e *component.Enemy) {
	s.drop(e.Handle)
}

func (s *EffectSystem) OnEnemyReachedEnd(e *component.Enemy) {
	s.ClearEnemyEffects(e)
}

func (s *EffectSystem) OnEnemyCleared(e *component.Enemy) {
	s.drop(e.Handle)
}

func (s *EffectSystem) tick() {
	now := s.scheduler.Now()
	handles := append([]entity.Handle(nil), s.order...)
	for _, h := range handles {
		rec, ok := s.tracked[h]
		if !ok {
			continue
		}
		if !rec.enemy.Active() {
			s.drop(h)
			continue
		}

		if rec.slow != nil && now >= rec.slow.EndTime {
			s.expireSlow(rec)
		}

		if p := rec.poison; p != nil {
			if now >= p.EndTime {
				rec.poison = nil
				s.eventDispatcher.Dispatch(event.EffectExpired{Enemy: h, Effect: component.EffectPoison})
			} else if now-p.LastTick >= config.PoisonTickInterval {
				p.LastTick = now
				killed := s.damager.TakeDamage(rec.enemy, p.DamagePerSecond)
				s.eventDispatcher.Dispatch(event.EffectTick{
					Enemy:  h,
					Effect: component.EffectPoison,
					Damage: p.DamagePerSecond,
					Killed: killed,
				})
				if killed {
					s.drop(h)
					continue
				}
			}
		}
		s.dropIfEmpty(rec)
	}
}

func (s *EffectSystem) expireSlow(rec *enemyEffects) {
	rec.enemy.Speed /= rec.slow.Amount
	rec.slow = nil
	s.eventDispatcher.Dispatch(event.EffectExpired{Enemy: rec.enemy.Handle, Effect: component.EffectSlow})
}

func (s *EffectSystem) record(enemy *component.Enemy) *enemyEffects {
	rec, ok := s.tracked[enemy.Handle]
	if !ok {
		rec = &enemyEffects{enemy: enemy}
		s.tracked[enemy.Handle] = rec
		s.order = append(s.order, enemy.Handle)
	}
	return rec
}

func (s *EffectSystem) dropIfEmpty(rec *enemyEffects) {
	if rec.empty() {
		s.drop(rec.enemy.Handle)
	}
}

func (s *EffectSystem) drop(h entity.Handle) {
	if _, ok := s.tracked[h]; !ok {
		return
	}
	delete(s.tracked, h)
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
