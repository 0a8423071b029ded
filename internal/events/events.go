// Package events fans store change notifications out to live subscriptions.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Op is the kind of write that produced a Change.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one committed write.
type Change struct {
	Collection string    `json:"collection"`
	Op         Op        `json:"op"`
	ID         string    `json:"id"`
	Origin     string    `json:"origin,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewChange stamps a Change with the current time.
func NewChange(collection string, op Op, id string) Change {
	return Change{Collection: collection, Op: op, ID: id, Timestamp: time.Now().UTC()}
}

// ToJSON converts the change to JSON bytes.
func (c Change) ToJSON() ([]byte, error) {
	return json.Marshal(c)
}

// ChangeFromJSON decodes a change from JSON bytes.
func ChangeFromJSON(data []byte) (Change, error) {
	var c Change
	err := json.Unmarshal(data, &c)
	return c, err
}

// Notifier is told about every committed write.
type Notifier interface {
	Publish(ctx context.Context, change Change)
}

// Source hands out change signals for one collection.
type Source interface {
	// Listen returns a signal channel and a function that detaches it.
	// Signals carry no payload: listeners re-read the collection.
	Listen(collection string) (<-chan struct{}, func())
}

// Broadcaster is the in-process Notifier and Source. Each listener has a
// one-slot buffer; a pending signal absorbs further ones, so a slow listener
// never blocks writers and still observes the latest state on its next read.
type Broadcaster struct {
	mu        sync.Mutex
	listeners map[string]map[*listener]struct{}
}

type listener struct {
	ch chan struct{}
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[string]map[*listener]struct{})}
}

// Publish signals every listener of change.Collection.
func (b *Broadcaster) Publish(_ context.Context, change Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for l := range b.listeners[change.Collection] {
		select {
		case l.ch <- struct{}{}:
		default:
		}
	}
}

// Listen implements Source.
func (b *Broadcaster) Listen(collection string) (<-chan struct{}, func()) {
	l := &listener{ch: make(chan struct{}, 1)}

	b.mu.Lock()
	if b.listeners[collection] == nil {
		b.listeners[collection] = make(map[*listener]struct{})
	}
	b.listeners[collection][l] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners[collection], l)
			if len(b.listeners[collection]) == 0 {
				delete(b.listeners, collection)
			}
			b.mu.Unlock()
		})
	}
	return l.ch, release
}

// ListenerCount returns the number of attached listeners for collection.
func (b *Broadcaster) ListenerCount(collection string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[collection])
}
