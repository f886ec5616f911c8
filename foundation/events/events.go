// Package events fans ledger events out to registered receivers such as
// websocket viewers.
package events

import (
	"fmt"
	"strings"
	"sync"
)

// Prefix marks the events handler messages that should be sent to viewers.
const Prefix = "viewer:"

// messageBuffer is the number of events a receiver can fall behind before
// events are dropped for that receiver.
const messageBuffer = 100

// =============================================================================

// Event is a single message sent to receivers.
type Event struct {
	Kind string `json:"kind"`
	Data string `json:"data"`
}

// Parse splits a viewer message of the form "viewer: <kind>: <data>" into an
// event. The bool is false for messages not meant for viewers.
func Parse(msg string) (Event, bool) {
	rest, ok := strings.CutPrefix(msg, Prefix)
	if !ok {
		return Event{}, false
	}

	kind, data, _ := strings.Cut(strings.TrimSpace(rest), ":")

	evt := Event{
		Kind: strings.TrimSpace(kind),
		Data: strings.TrimSpace(data),
	}

	return evt, true
}

// =============================================================================

type receiver struct {
	ch    chan Event
	kinds map[string]bool
}

func (r receiver) wants(kind string) bool {
	return len(r.kinds) == 0 || r.kinds[kind]
}

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	mu sync.RWMutex
	m  map[string]receiver
}

// New constructs an events for registering and receiving events.
func New() *Events {
	return &Events{
		m: make(map[string]receiver),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, r := range evt.m {
		delete(evt.m, id)
		close(r.ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used to receive
// events of the specified kinds. No kinds means every event.
func (evt *Events) Acquire(id string, kinds ...string) <-chan Event {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if r, exists := evt.m[id]; exists {
		return r.ch
	}

	r := receiver{
		ch:    make(chan Event, messageBuffer),
		kinds: make(map[string]bool),
	}
	for _, kind := range kinds {
		r.kinds[kind] = true
	}

	evt.m[id] = r
	return r.ch
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	r, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(r.ch)
	return nil
}

// Count returns the number of registered receivers.
func (evt *Events) Count() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.m)
}

// Send signals an event to every registered channel that wants it. Send will
// not block waiting for a receiver on any given channel.
func (evt *Events) Send(e Event) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, r := range evt.m {
		if !r.wants(e.Kind) {
			continue
		}

		select {
		case r.ch <- e:
		default:
		}
	}
}

// SendMessage parses a viewer message and sends it. Messages not meant for
// viewers are ignored.
func (evt *Events) SendMessage(msg string) {
	if e, ok := Parse(msg); ok {
		evt.Send(e)
	}
}
