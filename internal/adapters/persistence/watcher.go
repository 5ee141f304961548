package persistence

import (
	"sync"

	"github.com/google/uuid"
)

// Table identifies one of the persisted tables for change notifications
type Table string

const (
	TableQuests           Table = "quests"
	TableItems            Table = "items"
	TableInventory        Table = "inventory"
	TableWishlist         Table = "wishlist"
	TableMapEvents        Table = "map_events"
	TableWorkshopUpgrades Table = "workshop_upgrades"
)

// ChangeEvent signals that rows in a table changed. Subscribers re-query the
// repository for the new snapshot; small result sets make that cheap.
type ChangeEvent struct {
	Table Table
}

// StoreWatcher provides pub/sub over store writes so readers can observe a
// table instead of polling it. Thread-safe; multiple subscribers per table.
// Buffered channels keep writers from blocking on slow subscribers.
type StoreWatcher struct {
	mu          sync.RWMutex
	subscribers map[Table]map[string]chan ChangeEvent
}

// NewStoreWatcher creates an empty watcher
func NewStoreWatcher() *StoreWatcher {
	return &StoreWatcher{
		subscribers: make(map[Table]map[string]chan ChangeEvent),
	}
}

// Subscribe registers interest in a table. Returns a subscription token and a
// channel that receives a ChangeEvent after each successful write. Callers
// must Unsubscribe when no longer interested.
func (w *StoreWatcher) Subscribe(table Table) (string, <-chan ChangeEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Buffer of 1: a pending notification already forces a re-read, so
	// coalescing further writes loses nothing
	ch := make(chan ChangeEvent, 1)
	token := uuid.NewString()

	if w.subscribers[table] == nil {
		w.subscribers[table] = make(map[string]chan ChangeEvent)
	}
	w.subscribers[table][token] = ch

	return token, ch
}

// Unsubscribe tears down a subscription and closes its channel. Unknown
// tokens are ignored.
func (w *StoreWatcher) Unsubscribe(table Table, token string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	channels := w.subscribers[table]
	ch, ok := channels[token]
	if !ok {
		return
	}
	close(ch)
	delete(channels, token)
	if len(channels) == 0 {
		delete(w.subscribers, table)
	}
}

// Notify signals every subscriber of the table. Safe to call on a nil
// watcher so repositories work without one wired in.
func (w *StoreWatcher) Notify(table Table) {
	if w == nil {
		return
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, ch := range w.subscribers[table] {
		select {
		case ch <- ChangeEvent{Table: table}:
		default:
			// Buffer full: a notification is already pending
		}
	}
}

// SubscriberCount returns the number of active subscriptions for a table
func (w *StoreWatcher) SubscriberCount(table Table) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.subscribers[table])
}
