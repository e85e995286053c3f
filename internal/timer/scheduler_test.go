package timer

import (
	"testing"
	"time"
)

func TestAfterFiresAtDueTime(t *testing.T) {
	s := NewScheduler()
	var firedAt []time.Duration
	s.After(150*time.Millisecond, func() { firedAt = append(firedAt, s.Now()) })

	s.Advance(100 * time.Millisecond)
	if len(firedAt) != 0 {
		t.Fatalf("timer fired early at %v", firedAt)
	}
	s.Advance(100 * time.Millisecond)
	if len(firedAt) != 1 || firedAt[0] != 150*time.Millisecond {
		t.Fatalf("expected single firing at 150ms, got %v", firedAt)
	}
	if s.Now() != 200*time.Millisecond {
		t.Errorf("expected clock at 200ms, got %v", s.Now())
	}
}

func TestEveryRepeatsUntilCanceled(t *testing.T) {
	s := NewScheduler()
	count := 0
	tm := s.Every(100*time.Millisecond, func() { count++ })

	s.Advance(350 * time.Millisecond)
	if count != 3 {
		t.Fatalf("expected 3 ticks, got %d", count)
	}
	tm.Cancel()
	s.Advance(time.Second)
	if count != 3 {
		t.Errorf("canceled timer kept firing: %d", count)
	}
	if s.Pending() != 0 {
		t.Errorf("expected empty queue, got %d", s.Pending())
	}
}

func TestCancelFromCallback(t *testing.T) {
	s := NewScheduler()
	count := 0
	var tm *Timer
	tm = s.Every(10*time.Millisecond, func() {
		count++
		if count == 2 {
			tm.Cancel()
		}
	})
	s.Advance(100 * time.Millisecond)
	if count != 2 {
		t.Errorf("expected 2 firings, got %d", count)
	}
}

func TestOrderingAndRemaining(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(20*time.Millisecond, func() { order = append(order, "b") })
	s.After(10*time.Millisecond, func() { order = append(order, "a") })
	s.After(20*time.Millisecond, func() { order = append(order, "c") })
	wait := s.After(time.Second, func() {})

	s.Advance(50 * time.Millisecond)
	want := []string{"a", "b", "c"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
	if got := wait.Remaining(); got != 950*time.Millisecond {
		t.Errorf("expected 950ms remaining, got %v", got)
	}
	if !wait.Pending() {
		t.Error("timer should still be pending")
	}
}

func TestCancelAllAndNilTimer(t *testing.T) {
	s := NewScheduler()
	fired := false
	tm := s.After(time.Millisecond, func() { fired = true })
	s.CancelAll()
	s.Advance(time.Second)
	if fired || tm.Pending() {
		t.Error("CancelAll must drop pending timers")
	}

	var nilTimer *Timer
	nilTimer.Cancel()
	if nilTimer.Pending() || nilTimer.Remaining() != 0 {
		t.Error("nil timer must be inert")
	}
}
