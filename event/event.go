// Package event implements a minimal named-event observer used by every player backend.
//
// Callbacks are registered through *Listener handles so that identity checks
// work for closures, which Go cannot compare directly.
package event

import (
	"sync"
)

// Data is the payload handed to every callback of a fired event.
type Data map[string]any

// Callback receives the object owning the event and the fired payload.
// Returning an error stops the remaining callbacks of the same fire.
type Callback func(owner any, data Data) error

// Listener is a registration handle; two listeners are equal only if they are the same pointer.
type Listener struct {
	callback Callback
}

// NewListener wraps cb into a registrable handle.
func NewListener(cb Callback) *Listener {
	return &Listener{callback: cb}
}

// Func wraps a callback that cannot fail.
func Func(fn func(owner any, data Data)) *Listener {
	return NewListener(func(owner any, data Data) error {
		fn(owner, data)
		return nil
	})
}

// Event holds the ordered callbacks registered under one name.
type Event struct {
	name  string
	owner any

	mu        sync.Mutex
	callbacks []*Listener
}

// New creates an event named name whose callbacks receive owner.
func New(name string, owner any) *Event {
	return &Event{name: name, owner: owner}
}

// Name returns the event name.
func (e *Event) Name() string {
	return e.name
}

// Len returns the number of registered callbacks.
func (e *Event) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.callbacks)
}

// Add appends l unless it is already registered.
func (e *Event) Add(l *Listener) {
	if l == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.indexOf(l) >= 0 {
		return
	}

	e.callbacks = append(e.callbacks, l)
}

// Remove unregisters the first occurrence of l, keeping the list compact.
func (e *Event) Remove(l *Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.callbacks) == 0 {
		return
	}

	i := e.indexOf(l)
	if i < 0 {
		return
	}

	e.callbacks = append(e.callbacks[:i:i], e.callbacks[i+1:]...)
}

// Fire calls every callback in registration order.
// The list is copied first, so callbacks may add, remove or dispatch freely.
func (e *Event) Fire(data Data) error {
	e.mu.Lock()
	if len(e.callbacks) == 0 {
		e.mu.Unlock()
		return nil
	}
	callbacks := make([]*Listener, len(e.callbacks))
	copy(callbacks, e.callbacks)
	e.mu.Unlock()

	if data == nil {
		data = Data{}
	}

	for _, l := range callbacks {
		if err := l.callback(e.owner, data); err != nil {
			return err
		}
	}

	return nil
}

func (e *Event) indexOf(l *Listener) int {
	for i, registered := range e.callbacks {
		if registered == l {
			return i
		}
	}
	return -1
}
