// internal/pool/pool.go
package pool

// Pool — ограниченный список свободных объектов. Объекты сверх лимита
// просто не возвращаются в пул и достаются сборщику мусора.
type Pool[T any] struct {
	free    []*T
	max     int
	newFn   func() *T
	resetFn func(*T)
	created int
	reused  int
	dropped int
}

// Stats is a snapshot of pool counters.
type Stats struct {
	Free    int
	Created int
	Reused  int
	Dropped int
}

// New creates a pool holding at most max free objects. reset is applied on
// every Release and may be nil.
func New[T any](max int, newFn func() *T, reset func(*T)) *Pool[T] {
	if newFn == nil {
		newFn = func() *T { return new(T) }
	}
	return &Pool[T]{
		free:    make([]*T, 0, max),
		max:     max,
		newFn:   newFn,
		resetFn: reset,
	}
}

// Acquire returns a free object or allocates a new one.
func (p *Pool[T]) Acquire() *T {
	if n := len(p.free); n > 0 {
		obj := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		p.reused++
		return obj
	}
	p.created++
	return p.newFn()
}

// Release resets obj and keeps it for reuse. It returns false when the pool
// is full and the object was dropped.
func (p *Pool[T]) Release(obj *T) bool {
	if obj == nil {
		return false
	}
	if p.resetFn != nil {
		p.resetFn(obj)
	}
	if len(p.free) >= p.max {
		p.dropped++
		return false
	}
	p.free = append(p.free, obj)
	return true
}

// Free returns the number of objects waiting for reuse.
func (p *Pool[T]) Free() int {
	return len(p.free)
}

// Cap returns the pool limit.
func (p *Pool[T]) Cap() int {
	return p.max
}

func (p *Pool[T]) Stats() Stats {
	return Stats{Free: len(p.free), Created: p.created, Reused: p.reused, Dropped: p.dropped}
}

// Drain empties the free list.
func (p *Pool[T]) Drain() {
	for i := range p.free {
		p.free[i] = nil
	}
	p.free = p.free[:0]
}
