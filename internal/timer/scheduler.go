// internal/timer/scheduler.go
package timer

import (
	"container/heap"
	"time"
)

// Timer — отменяемый таймер, принадлежащий владельцу (волна, эффект, игра).
// Нулевой указатель безопасен: Cancel и Pending ничего не делают.
type Timer struct {
	due      time.Duration
	period   time.Duration
	fn       func()
	seq      uint64
	index    int
	canceled bool
	s        *Scheduler
}

// Cancel stops the timer. It is safe to call more than once and from inside
// the timer's own callback.
func (t *Timer) Cancel() {
	if t == nil || t.canceled {
		return
	}
	t.canceled = true
	if t.index >= 0 {
		heap.Remove(&t.s.queue, t.index)
	}
}

// Pending reports whether the timer will still fire.
func (t *Timer) Pending() bool {
	return t != nil && !t.canceled && t.index >= 0
}

// Remaining returns the time left until the next firing, or zero.
func (t *Timer) Remaining() time.Duration {
	if !t.Pending() {
		return 0
	}
	if r := t.due - t.s.now; r > 0 {
		return r
	}
	return 0
}

type queue []*Timer

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}
func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *queue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler — часы симуляции. Время двигается только через Advance,
// поэтому все отложенные вызовы детерминированы и не зависят от частоты кадров.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue queue
}

// NewScheduler creates a scheduler at sim time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current sim time. Inside a callback it equals the timer's
// due time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	return s.schedule(d, 0, fn)
}

// Every schedules fn to run every period, first firing one period from now.
func (s *Scheduler) Every(period time.Duration, fn func()) *Timer {
	if period <= 0 {
		period = time.Millisecond
	}
	return s.schedule(period, period, fn)
}

func (s *Scheduler) schedule(d, period time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{
		due:    s.now + d,
		period: period,
		fn:     fn,
		seq:    s.seq,
		index:  -1,
		s:      s,
	}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward by dt, firing every timer that comes due
// in due-time order. Timers scheduled by callbacks fire in the same call if
// they fall inside the window.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for len(s.queue) > 0 && s.queue[0].due <= target {
		t := heap.Pop(&s.queue).(*Timer)
		s.now = t.due
		if t.period > 0 {
			t.due += t.period
			s.seq++
			t.seq = s.seq
			heap.Push(&s.queue, t)
		}
		t.fn()
	}
	s.now = target
}

// Pending returns the number of scheduled timers.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// CancelAll drops every pending timer.
func (s *Scheduler) CancelAll() {
	for _, t := range s.queue {
		t.canceled = true
		t.index = -1
	}
	s.queue = nil
}

// Reset cancels everything and rewinds the clock to zero.
func (s *Scheduler) Reset() {
	s.CancelAll()
	s.now = 0
}
