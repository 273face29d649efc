// Package event provides a synchronous, in-process publish/subscribe bus.
//
// Publish runs every handler on the calling goroutine before it returns, so a
// publisher may rely on all listeners having observed its state by then.
package event

import (
	"sync"

	"github.com/google/uuid"
)

// Kind names a class of events.
type Kind string

// WeaponSwitched is published by a weapon selector after the active weapon changed.
const WeaponSwitched Kind = "weapon_switched"

// Event is a single notification.
type Event struct {
	// Kind selects which handlers receive the event.
	Kind Kind
	// Sender is the component that published the event.
	Sender any
	// Payload carries kind-specific data; may be nil.
	Payload any
}

// Handler receives published events.
type Handler func(Event)

// Publisher is the publishing half of a bus.
type Publisher interface {
	Publish(Event)
}

// Subscription identifies one registered handler.
type Subscription struct {
	kind Kind
	id   uuid.UUID
}

type entry struct {
	id      uuid.UUID
	handler Handler
}

// Bus dispatches events synchronously to the handlers registered for their kind.
//
// Handlers run in subscription order against a snapshot taken when Publish starts:
// a handler added or removed during a publish takes effect on the next one.
// A handler may publish; the nested publish completes before the outer one
// continues with its remaining handlers.
type Bus struct {
	mu       sync.Mutex
	handlers map[Kind][]entry
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]entry)}
}

// Subscribe registers h for events of kind k.
//
// Precondition: h must be non-nil.
// Postcondition: h receives every subsequent Publish of kind k until unsubscribed.
func (b *Bus) Subscribe(k Kind, h Handler) Subscription {
	if h == nil {
		panic("event: Bus.Subscribe: handler must not be nil")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := uuid.New()
	b.handlers[k] = append(b.handlers[k], entry{id: id, handler: h})
	return Subscription{kind: k, id: id}
}

// Unsubscribe removes the handler registered under s. Unknown subscriptions are ignored.
func (b *Bus) Unsubscribe(s Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.handlers[s.kind]
	for i, e := range list {
		if e.id == s.id {
			kept := make([]entry, 0, len(list)-1)
			kept = append(kept, list[:i]...)
			kept = append(kept, list[i+1:]...)
			if len(kept) == 0 {
				delete(b.handlers, s.kind)
			} else {
				b.handlers[s.kind] = kept
			}
			return
		}
	}
}

// Publish delivers ev to every handler subscribed to ev.Kind and returns after
// the last one has run.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	snapshot := b.handlers[ev.Kind]
	b.mu.Unlock()
	for _, e := range snapshot {
		e.handler(ev)
	}
}

// Len returns the number of handlers subscribed to k.
func (b *Bus) Len(k Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[k])
}
