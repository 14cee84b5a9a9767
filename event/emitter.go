package event

import (
	"sync"

	"github.com/samber/lo"
)

// Target is anything that accepts named listeners.
type Target interface {
	AddEventListener(name string, l *Listener) *Emitter
}

// Emitter maps event names to lazily created events.
// The zero value is not usable; construct it with NewEmitter.
type Emitter struct {
	owner any

	mu     sync.Mutex
	events map[string]*Event
}

// NewEmitter creates an emitter whose callbacks receive owner.
// A nil owner makes the emitter its own owner.
func NewEmitter(owner any) *Emitter {
	e := &Emitter{events: make(map[string]*Event)}
	if owner == nil {
		e.owner = e
	} else {
		e.owner = owner
	}
	return e
}

// Owner returns the object passed to callbacks.
func (em *Emitter) Owner() any {
	return em.owner
}

// Register creates a fresh event under name.
// An event already registered under that name is replaced along with its callbacks.
func (em *Emitter) Register(name string) *Event {
	em.mu.Lock()
	defer em.mu.Unlock()
	return em.register(name)
}

// Event returns the event registered under name, registering it first if needed.
func (em *Emitter) Event(name string) *Event {
	em.mu.Lock()
	defer em.mu.Unlock()

	if ev, ok := em.events[name]; ok {
		return ev
	}
	return em.register(name)
}

// AddEventListener registers l for name.
func (em *Emitter) AddEventListener(name string, l *Listener) *Emitter {
	em.Event(name).Add(l)
	return em
}

// RemoveEventListener unregisters l from name.
func (em *Emitter) RemoveEventListener(name string, l *Listener) *Emitter {
	em.Event(name).Remove(l)
	return em
}

// On wraps cb in a listener, registers it for name and returns the handle for later removal.
func (em *Emitter) On(name string, cb Callback) *Listener {
	l := NewListener(cb)
	em.AddEventListener(name, l)
	return l
}

// Dispatch fires the event registered under name.
func (em *Emitter) Dispatch(name string, data Data) error {
	return em.Event(name).Fire(data)
}

// Names returns the names of every event known to the emitter.
func (em *Emitter) Names() []string {
	em.mu.Lock()
	defer em.mu.Unlock()

	return lo.Keys(em.events)
}

func (em *Emitter) register(name string) *Event {
	ev := New(name, em.owner)
	em.events[name] = ev
	return ev
}

// AddListenerAll registers the same listener for name on every item.
func AddListenerAll[T Target](items []T, name string, l *Listener) {
	for _, item := range items {
		item.AddEventListener(name, l)
	}
}
