// internal/entity/arena.go
package entity

import "strconv"

// Handle — ссылка на сущность в арене: индекс слота и поколение.
// Устаревший хэндл (слот освобождён или переиспользован) определяется за O(1).
// Нулевой хэндл никогда не бывает валидным.
type Handle uint64

const indexBits = 32

// MakeHandle packs a slot index and generation into a handle.
func MakeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<indexBits | uint64(index))
}

// Index returns the slot index.
func (h Handle) Index() uint32 {
	return uint32(h)
}

// Generation returns the slot generation.
func (h Handle) Generation() uint32 {
	return uint32(uint64(h) >> indexBits)
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h == 0
}

func (h Handle) String() string {
	return strconv.FormatUint(uint64(h.Index()), 10) + "v" + strconv.FormatUint(uint64(h.Generation()), 10)
}

type slot[T any] struct {
	gen   uint32
	value *T
}

// Arena хранит сущности в слотах с поколениями. Освобождённые слоты
// переиспользуются, а их поколение увеличивается.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// NewArena creates an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Insert stores v and returns its handle.
func (a *Arena[T]) Insert(v *T) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		// поколение начинается с 1, чтобы нулевой хэндл был невалиден
		a.slots = append(a.slots, slot[T]{gen: 1})
	}
	a.slots[idx].value = v
	a.count++
	return MakeHandle(idx, a.slots[idx].gen)
}

// Get returns the value for h, or false if the handle is stale.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	idx := h.Index()
	if int(idx) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[idx]
	if s.value == nil || s.gen != h.Generation() {
		return nil, false
	}
	return s.value, true
}

// Valid reports whether h refers to a live value.
func (a *Arena[T]) Valid(h Handle) bool {
	_, ok := a.Get(h)
	return ok
}

// Remove frees the slot for h. Stale handles are ignored.
func (a *Arena[T]) Remove(h Handle) bool {
	if !a.Valid(h) {
		return false
	}
	idx := h.Index()
	a.slots[idx].value = nil
	a.slots[idx].gen++
	a.free = append(a.free, idx)
	a.count--
	return true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.count
}

// Each calls fn for every live value in slot order. fn must not insert or
// remove values; collect handles first if the arena has to change.
func (a *Arena[T]) Each(fn func(h Handle, v *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.value == nil {
			continue
		}
		fn(MakeHandle(uint32(i), s.gen), s.value)
	}
}

// Handles returns the handles of all live values in slot order.
func (a *Arena[T]) Handles() []Handle {
	out := make([]Handle, 0, a.count)
	a.Each(func(h Handle, _ *T) {
		out = append(out, h)
	})
	return out
}

// Clear removes every value and invalidates all outstanding handles.
func (a *Arena[T]) Clear() {
	for i := range a.slots {
		if a.slots[i].value != nil {
			a.slots[i].value = nil
			a.slots[i].gen++
			a.free = append(a.free, uint32(i))
		}
	}
	a.count = 0
}
