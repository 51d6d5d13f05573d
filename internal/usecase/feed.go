package usecase

import (
	"context"
	"time"

	"AXRadar/internal/domain/models"
	drepo "AXRadar/internal/domain/repository"
	"AXRadar/internal/service/fetch"
	"AXRadar/pkg/logger"
)

// Fetcher reads one upstream resource. Implemented by *fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, key string) (fetch.Result, error)
}

// Feed is one independently polled resource. Refresh never returns an
// error: every outcome ends as a published view.
type Feed interface {
	Name() string
	Refresh(ctx context.Context)
}

// FeedDeps are the collaborators shared by every adapter.
type FeedDeps struct {
	Fetcher   Fetcher
	Publisher drepo.Publisher
	Logger    *logger.Logger
	Now       func() time.Time
}

type feedBase struct {
	name string
	FeedDeps
}

func newFeedBase(name string, deps FeedDeps) feedBase {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	deps.Logger = deps.Logger.With(logger.String("feed", name))
	return feedBase{name: name, FeedDeps: deps}
}

func (b *feedBase) Name() string { return b.name }

func publish[T any](b *feedBase, feed string, v models.View[T]) {
	b.Publisher.Publish(feed, v.Stamped(b.Now()))
}

// load fetches key and decodes its payload into P. ok is false when the
// feed should show its error state; a null payload decodes to the zero P.
func load[P any](ctx context.Context, b *feedBase, key string) (payload P, stale bool, ok bool) {
	res, err := b.Fetcher.Get(ctx, key)
	if err != nil {
		b.Logger.Warn("feed unavailable", logger.String("resource", key), logger.Error(err))
		return payload, false, false
	}
	if res.IsNull() {
		return payload, res.Stale, true
	}
	if err := res.Decode(&payload); err != nil {
		b.Logger.Warn("feed payload malformed", logger.String("resource", key), logger.Error(err))
		return payload, false, false
	}
	return payload, res.Stale, true
}
