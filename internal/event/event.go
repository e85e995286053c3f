// internal/event/event.go
package event

// EventType — тип события
type EventType string

// Event — событие ядра. Каждый тип события — отдельная структура с
// минимальными данными (идентификаторы, числовые дельты).
type Event interface {
	Type() EventType
}

// Listener — интерфейс для подписчиков на события
type Listener interface {
	OnEvent(e Event)
}

// Dispatcher — диспетчер событий. Рассылка синхронная, в порядке подписки.
type Dispatcher struct {
	listeners map[EventType][]Listener
	all       []Listener
}

// NewDispatcher — создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe — подписка на событие
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeAll — подписка на все события (мосты, запись, логирование)
func (d *Dispatcher) SubscribeAll(listener Listener) {
	d.all = append(d.all, listener)
}

// Unsubscribe — отписка от события
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// UnsubscribeAll removes a listener added with SubscribeAll.
func (d *Dispatcher) UnsubscribeAll(listener Listener) {
	for i, l := range d.all {
		if l == listener {
			d.all = append(d.all[:i:i], d.all[i+1:]...)
			return
		}
	}
}

// Dispatch — отправка события всем подписчикам
func (d *Dispatcher) Dispatch(e Event) {
	for _, listener := range d.listeners[e.Type()] {
		listener.OnEvent(e)
	}
	for _, listener := range d.all {
		listener.OnEvent(e)
	}
}

// Recorder запоминает все полученные события. Используется в тестах и
// в режиме наблюдателя.
type Recorder struct {
	Events []Event
}

func (r *Recorder) OnEvent(e Event) {
	r.Events = append(r.Events, e)
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []EventType {
	out := make([]EventType, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type()
	}
	return out
}

// Count returns how many events of the given type were recorded.
func (r *Recorder) Count(t EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type() == t {
			n++
		}
	}
	return n
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Of returns the recorded events of type T.
func Of[T Event](r *Recorder) []T {
	var out []T
	for _, e := range r.Events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
