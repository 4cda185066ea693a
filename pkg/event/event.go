// Package event provides a simple synchronous/async event dispatcher.
//
// The order lifecycle emits domain events ("order.created",
// "order.status_changed") through this dispatcher; the notification layer
// and the confirmation-email job are ordinary listeners, which keeps
// presentation side effects out of the core logic.
package event

import (
	"sync"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

type registration struct {
	id int
	fn Handler
}

var (
	mu       sync.RWMutex
	nextID   int
	handlers = map[string][]registration{}
)

// Listen registers a handler for the given event name and returns a token
// usable with Forget.
func Listen(event string, handler Handler) int {
	mu.Lock()
	defer mu.Unlock()
	nextID++
	handlers[event] = append(handlers[event], registration{id: nextID, fn: handler})
	return nextID
}

// Forget removes a previously registered handler by its token.
func Forget(event string, token int) {
	mu.Lock()
	defer mu.Unlock()
	regs := handlers[event]
	for i, r := range regs {
		if r.id == token {
			handlers[event] = append(regs[:i], regs[i+1:]...)
			return
		}
	}
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	mu.RLock()
	regs := make([]registration, len(handlers[event]))
	copy(regs, handlers[event])
	mu.RUnlock()

	for _, r := range regs {
		r.fn(payload)
	}
}

// FireAsync dispatches the event to all listeners concurrently.
// It returns immediately without waiting for handlers to complete.
func FireAsync(event string, payload interface{}) {
	mu.RLock()
	regs := make([]registration, len(handlers[event]))
	copy(regs, handlers[event])
	mu.RUnlock()

	for _, r := range regs {
		go r.fn(payload)
	}
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]registration{}
}
