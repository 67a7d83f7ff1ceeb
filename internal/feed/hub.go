// Package feed delivers row-change events to in-process subscribers. A Hub
// fans events out by table, event type and column filter; a Source turns rows
// that appear in the database into insert events.
package feed

import (
	"fmt"
	"sync"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event is one row change. Record holds the row's column values; Row holds
// the typed record when the publisher has one.
type Event struct {
	Table  string
	Type   EventType
	Record map[string]any
	Row    any
}

// Filter selects events. Empty Table or Type match any; Match requires every
// listed column to equal the given value.
type Filter struct {
	Table string
	Event EventType
	Match map[string]string
}

func (f Filter) matches(e Event) bool {
	if f.Table != "" && f.Table != e.Table {
		return false
	}
	if f.Event != "" && f.Event != e.Type {
		return false
	}
	for col, want := range f.Match {
		got, ok := e.Record[col]
		if !ok || fmt.Sprint(got) != want {
			return false
		}
	}
	return true
}

type Handler func(Event)

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	hub  *Hub
	id   int
	once sync.Once
}

// Unsubscribe stops delivery to the subscription's handler. It is safe to
// call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() { s.hub.remove(s.id) })
}

type entry struct {
	id      int
	filter  Filter
	handler Handler
}

// Hub is safe for concurrent use. Handlers run synchronously on the
// publishing goroutine in subscription order.
type Hub struct {
	mu      sync.Mutex
	nextID  int
	entries []entry
}

func NewHub() *Hub { return &Hub{} }

func (h *Hub) Subscribe(filter Filter, handler Handler) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.entries = append(h.entries, entry{id: h.nextID, filter: filter, handler: handler})
	return &Subscription{hub: h, id: h.nextID}
}

// Publish delivers e to every matching subscriber and returns how many
// received it.
func (h *Hub) Publish(e Event) int {
	h.mu.Lock()
	var targets []Handler
	for _, en := range h.entries {
		if en.filter.matches(e) {
			targets = append(targets, en.handler)
		}
	}
	h.mu.Unlock()
	for _, fn := range targets {
		fn(e)
	}
	return len(targets)
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *Hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, en := range h.entries {
		if en.id == id {
			h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
			return
		}
	}
}
