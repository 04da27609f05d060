package starfield

import (
	"slices"
	"strings"
	"sync"
)

// KeyEvent is a key-down event. Ctrl and Meta are the two platform command
// modifiers.
type KeyEvent struct {
	Key  string
	Ctrl bool
	Meta bool

	prevented bool
}

// PreventDefault marks the event as consumed so the host skips its own
// handling of the combination.
func (e *KeyEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether a listener consumed the event.
func (e *KeyEvent) DefaultPrevented() bool { return e.prevented }

// IsToggleShortcut reports whether e is command+S in either case.
func IsToggleShortcut(e *KeyEvent) bool {
	if e == nil {
		return false
	}
	return (e.Ctrl || e.Meta) && strings.ToLower(e.Key) == "s"
}

// Keyboard is a registry of key-down listeners shared by a whole session.
// The zero value is ready to use.
type Keyboard struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(*KeyEvent)
}

// NewKeyboard returns an empty registry.
func NewKeyboard() *Keyboard {
	return &Keyboard{listeners: make(map[int]func(*KeyEvent))}
}

// Listen registers fn and returns a function that removes it. The remover
// may be called more than once.
func (k *Keyboard) Listen(fn func(*KeyEvent)) (remove func()) {
	k.mu.Lock()
	if k.listeners == nil {
		k.listeners = make(map[int]func(*KeyEvent))
	}
	id := k.nextID
	k.nextID++
	k.listeners[id] = fn
	k.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			k.mu.Lock()
			delete(k.listeners, id)
			k.mu.Unlock()
		})
	}
}

// Dispatch delivers e to every registered listener in registration order.
func (k *Keyboard) Dispatch(e *KeyEvent) {
	k.mu.Lock()
	ids := make([]int, 0, len(k.listeners))
	for id := range k.listeners {
		ids = append(ids, id)
	}
	fns := make([]func(*KeyEvent), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, k.listeners[id])
	}
	k.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

// Len returns the number of registered listeners.
func (k *Keyboard) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.listeners)
}
