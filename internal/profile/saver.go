// internal/profile/saver.go
package profile

import (
	"log"
	"sync"
)

// AsyncSaver пишет профиль в фоне. Save никогда не блокирует тик:
// если запись ещё идёт, хранится только последний снимок.
type AsyncSaver struct {
	store   Store
	mu      sync.Mutex
	pending *Profile
	wake    chan struct{}
	done    chan struct{}
	closed  bool
	once    sync.Once
}

func NewAsyncSaver(store Store) *AsyncSaver {
	s := &AsyncSaver{
		store: store,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

// Save queues a snapshot of p.
func (s *AsyncSaver) Save(p *Profile) {
	snap := p.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = &snap
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Close flushes the last snapshot and stops the worker.
func (s *AsyncSaver) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.wake)
		s.mu.Unlock()
		<-s.done
	})
}

func (s *AsyncSaver) run() {
	defer close(s.done)
	for range s.wake {
		s.flush()
	}
	s.flush()
}

func (s *AsyncSaver) flush() {
	s.mu.Lock()
	p := s.pending
	s.pending = nil
	s.mu.Unlock()
	if p == nil {
		return
	}
	if err := s.store.Save(p); err != nil {
		log.Printf("Profile: autosave failed: %v", err)
	}
}
