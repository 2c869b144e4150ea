// internal/events/feed.go
package events

import (
	"sync"

	"github.com/aniefioke/intellectual-property/internal/marketplace"
)

// Feed is a bounded in-memory record of published marketplace events, newest
// last. When full it drops the oldest entries; the durable history lives in
// the ledger's own records, the feed only serves recent observability reads.
type Feed struct {
	mu     sync.RWMutex
	events []marketplace.Event
	limit  int
}

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 1024
	}
	return &Feed{limit: limit}
}

func (f *Feed) Publish(ev marketplace.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, ev)
	if len(f.events) > f.limit {
		f.events = f.events[len(f.events)-f.limit:]
	}
}

// Recent returns up to n most recent events in publication order.
func (f *Feed) Recent(n int) []marketplace.Event {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if n <= 0 || n > len(f.events) {
		n = len(f.events)
	}
	out := make([]marketplace.Event, n)
	copy(out, f.events[len(f.events)-n:])
	return out
}
