package events

import (
	"reflect"
	"sync"
)

// Bus dispatches events synchronously to subscribers on the caller's
// goroutine, in subscription order.
type Bus struct {
	typed map[reflect.Type][]func(Event)
	all   []func(Event)

	mu sync.RWMutex
}

func NewBus() *Bus {
	return &Bus{typed: map[reflect.Type][]func(Event){}}
}

// On subscribes fn to events of type T.
func On[T Event](b *Bus, fn func(T)) {
	t := reflect.TypeFor[T]()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.typed[t] = append(b.typed[t], func(e Event) {
		if v, ok := e.(T); ok {
			fn(v)
		}
	})
}

// Subscribe registers fn for every event.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, fn)
}

func (b *Bus) Fire(e Event) {
	if e == nil {
		return
	}

	b.mu.RLock()
	handlers := append([]func(Event){}, b.typed[reflect.TypeOf(e)]...)
	handlers = append(handlers, b.all...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
