// Package events carries typed change notifications between components.
package events

import (
	"sync"
	"time"
)

// SectionChanged is published whenever a section's draft data is persisted.
type SectionChanged struct {
	SectionID string
	At        time.Time
}

// Bus is an in-process publish/subscribe channel for SectionChanged events.
// Publish never blocks: a subscriber that cannot keep up misses events,
// which is acceptable because consumers re-read full state on each event.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan SectionChanged
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan SectionChanged)}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away.
func (b *Bus) Subscribe() (<-chan SectionChanged, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan SectionChanged, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish fans the event out to all current subscribers.
func (b *Bus) Publish(ev SectionChanged) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
