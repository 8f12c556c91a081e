// Package events fans ledger events out to subscribers such as websocket
// clients. A subscriber only receives the events starting with its prefix.
package events

import (
	"fmt"
	"strings"
	"sync"
)

// ViewerPrefix marks the events meant for dashboards.
const ViewerPrefix = "viewer:"

// messageBuffer is the number of events a subscriber can fall behind
// before events are dropped for it.
const messageBuffer = 100

type subscriber struct {
	ch     chan string
	prefix string
}

// Events maintains the set of subscribers keyed by a unique id.
type Events struct {
	mu   sync.RWMutex
	subs map[string]subscriber
}

// New constructs an empty set of subscribers.
func New() *Events {
	return &Events{
		subs: make(map[string]subscriber),
	}
}

// Shutdown closes and removes every subscriber channel.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, sub := range evt.subs {
		delete(evt.subs, id)
		close(sub.ch)
	}
}

// Acquire registers a subscriber for the events starting with prefix and
// returns the channel to receive them on. An empty prefix receives every
// event. Acquiring an existing id returns its channel unchanged.
func (evt *Events) Acquire(id string, prefix string) <-chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if sub, exists := evt.subs[id]; exists {
		return sub.ch
	}

	sub := subscriber{
		ch:     make(chan string, messageBuffer),
		prefix: prefix,
	}
	evt.subs[id] = sub

	return sub.ch
}

// Release closes and removes the subscriber.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	sub, exists := evt.subs[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.subs, id)
	close(sub.ch)

	return nil
}

// Count returns the number of registered subscribers.
func (evt *Events) Count() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.subs)
}

// Send hands the event to every subscriber whose prefix matches. A
// subscriber that is behind loses the event, Send never blocks.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, sub := range evt.subs {
		if !strings.HasPrefix(s, sub.prefix) {
			continue
		}

		select {
		case sub.ch <- s:
		default:
		}
	}
}
