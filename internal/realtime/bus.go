// Package realtime carries database change notifications from the write
// paths to the admin dashboard stream. Publishing is synchronous per topic,
// so subscribers observe events for one table in arrival order; nothing is
// guaranteed across tables.
package realtime

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
)

const (
	TableOrders      = "orders"
	TableMessages    = "messages"
	TableSubscribers = "subscribers"
)

type EventType string

const (
	EventInsert    EventType = "insert"
	EventUpdate    EventType = "update"
	EventReconcile EventType = "reconcile"
)

// Event is a single change notification for one table row. Payload is the
// row as it should appear to the dashboard (nil for reconcile hints).
type Event struct {
	Table   string      `json:"table"`
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// Bus fans events out to per-table subscribers. Registrations are keyed by
// a token issued at Subscribe time, never by the handler's code pointer:
// EventBus.Unsubscribe matches handlers via reflect's func pointer, and two
// subscribers built from the same closure literal share one, so cancelling
// either would remove whichever registered first.
type Bus struct {
	bus EventBus.Bus

	mu   sync.Mutex
	next int
	subs map[string]map[int]func(Event)
}

func NewBus() *Bus {
	return &Bus{
		bus:  EventBus.New(),
		subs: make(map[string]map[int]func(Event)),
	}
}

func topic(table string) string {
	return "storefront:" + table
}

// Publish delivers evt to every subscriber of the table's topic. Delivery is
// synchronous; handlers must not block.
func (b *Bus) Publish(table string, typ EventType, payload interface{}) {
	b.bus.Publish(topic(table), Event{
		Table:   table,
		Type:    typ,
		Payload: payload,
		At:      time.Now(),
	})
}

// Reconcile broadcasts a refetch hint for every table. Subscribed dashboards
// respond with a full reload, which repairs any drift the insert/update
// stream cannot express (external edits, deletes).
func (b *Bus) Reconcile() {
	for _, table := range []string{TableOrders, TableMessages, TableSubscribers} {
		b.Publish(table, EventReconcile, nil)
	}
}

// Subscribe registers fn for the table's events and returns a cancel func
// that removes exactly this registration, leaving all others intact.
func (b *Bus) Subscribe(table string, fn func(Event)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subs[table]
	if !ok {
		set = make(map[int]func(Event))
		if err := b.bus.Subscribe(topic(table), func(evt Event) { b.dispatch(table, evt) }); err != nil {
			return nil, err
		}
		b.subs[table] = set
	}

	id := b.next
	b.next++
	set[id] = fn
	return func() {
		b.mu.Lock()
		delete(b.subs[table], id)
		b.mu.Unlock()
	}, nil
}

func (b *Bus) dispatch(table string, evt Event) {
	b.mu.Lock()
	handlers := make([]func(Event), 0, len(b.subs[table]))
	for _, fn := range b.subs[table] {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(evt)
	}
}
