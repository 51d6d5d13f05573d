package usecase

import (
	"sync"

	"AXRadar/internal/domain/models"
	drepo "AXRadar/internal/domain/repository"
)

const subscriberBuffer = 32

// Update is one published view.
type Update struct {
	Feed string           `json:"feed"`
	View models.StateView `json:"view"`
}

// Board keeps the latest view per feed and fans updates out to subscribers.
// It implements repository.Publisher.
type Board struct {
	mu      sync.RWMutex
	views   map[string]models.StateView
	order   []string
	subs    map[int]chan Update
	nextID  int
	metrics drepo.Metrics
}

// NewBoard creates a board that knows feeds; each starts empty.
func NewBoard(metrics drepo.Metrics, feeds ...string) *Board {
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	b := &Board{
		views:   make(map[string]models.StateView, len(feeds)),
		subs:    make(map[int]chan Update),
		metrics: metrics,
	}
	for _, f := range feeds {
		b.views[f] = models.Empty[struct{}]()
		b.order = append(b.order, f)
	}
	return b
}

// Publish stores view as the latest for feed and notifies subscribers.
// Slow subscribers miss updates instead of blocking the publisher.
func (b *Board) Publish(feed string, view models.StateView) {
	b.mu.Lock()
	if _, ok := b.views[feed]; !ok {
		b.order = append(b.order, feed)
	}
	b.views[feed] = view
	b.mu.Unlock()

	b.metrics.RecordFeedState(feed, string(view.Status()))

	u := Update{Feed: feed, View: view}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- u:
		default:
		}
	}
}

// Get returns the latest view of feed; ok is false for unknown feeds.
func (b *Board) Get(feed string) (models.StateView, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.views[feed]
	return v, ok
}

// Snapshot returns every feed's latest view in registration order.
func (b *Board) Snapshot() []Update {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Update, 0, len(b.order))
	for _, f := range b.order {
		out = append(out, Update{Feed: f, View: b.views[f]})
	}
	return out
}

// Subscribe returns a channel of future updates and a func that cancels the
// subscription and closes the channel.
func (b *Board) Subscribe() (<-chan Update, func()) {
	ch := make(chan Update, subscriberBuffer)
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			close(ch)
			b.mu.Unlock()
		})
	}
}
