// internal/event/event.go
package event

// EventType - тип события
type EventType string

// Event - структура события
type Event struct {
	Type EventType
	Data any // Данные события, если нужны
}

// Listener - интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// Dispatcher - синхронный диспетчер событий одной сессии.
// Не потокобезопасен: вызывается только из игрового цикла.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher - создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe - подписка на одно или несколько событий
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener, more ...EventType) {
	for _, t := range append([]EventType{eventType}, more...) {
		d.listeners[t] = append(d.listeners[t], listener)
	}
}

// Unsubscribe - отписка от события
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	listeners := d.listeners[eventType]
	kept := make([]Listener, 0, len(listeners))
	for _, l := range listeners {
		if l != listener {
			kept = append(kept, l)
		}
	}
	d.listeners[eventType] = kept
}

// Reset снимает все подписки (конец сессии).
func (d *Dispatcher) Reset() {
	d.listeners = make(map[EventType][]Listener)
}

// Dispatch - отправка события всем подписчикам.
// Подписчик может отписаться прямо из OnEvent.
func (d *Dispatcher) Dispatch(event Event) {
	listeners := d.listeners[event.Type]
	if len(listeners) == 0 {
		return
	}
	snapshot := make([]Listener, len(listeners))
	copy(snapshot, listeners)
	for _, listener := range snapshot {
		listener.OnEvent(event)
	}
}
