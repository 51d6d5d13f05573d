package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"AXRadar/internal/domain/models"
	"AXRadar/internal/service/fetch"
)

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeFetcher struct {
	mu      sync.Mutex
	data    map[string]string
	stale   map[string]bool
	errs    map[string]error
	calls   map[string]int
	started chan string
	gate    map[string]chan struct{}
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		data:  map[string]string{},
		stale: map[string]bool{},
		errs:  map[string]error{},
		calls: map[string]int{},
		gate:  map[string]chan struct{}{},
	}
}

func (f *fakeFetcher) set(key, payload string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = payload
	delete(f.errs, key)
}

func (f *fakeFetcher) fail(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[key] = &fetch.FetchError{Key: key, Attempts: 2, Cause: errors.New("upstream down")}
}

func (f *fakeFetcher) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeFetcher) Get(ctx context.Context, key string) (fetch.Result, error) {
	f.mu.Lock()
	f.calls[key]++
	gate, started := f.gate[key], f.started
	payload, ok := f.data[key]
	err := f.errs[key]
	stale := f.stale[key]
	f.mu.Unlock()

	if started != nil {
		started <- key
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return fetch.Result{}, err
	}
	if !ok {
		return fetch.Result{}, &fetch.FetchError{Key: key, Attempts: 1, Cause: errors.New("no route")}
	}
	return fetch.Result{Data: json.RawMessage(payload), Stale: stale}, nil
}

func testDeps(f Fetcher, b *Board) FeedDeps {
	return FeedDeps{
		Fetcher:   f,
		Publisher: b,
		Now:       func() time.Time { return testNow },
	}
}

func newTestBoard() *Board { return NewBoard(nil, FeedNames()...) }

func viewOf[T any](b *Board, feed string) models.View[T] {
	v, ok := b.Get(feed)
	if !ok {
		return models.View[T]{}
	}
	out, _ := v.(models.View[T])
	return out
}
