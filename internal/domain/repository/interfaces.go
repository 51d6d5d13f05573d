package repository

import (
	"context"
	"time"

	"AXRadar/internal/domain/models"
)

// Metrics records fetch and feed outcomes. Implemented by pkg/metrics.Recorder.
type Metrics interface {
	RecordFetchAttempt(resource, outcome string)
	RecordFallback(resource string)
	RecordFailure(resource string)
	RecordFeedState(feed, state string)
	RecordCycle(kind string)
	RecordLatency(op string, seconds float64)
}

// Publisher receives every derived view. Implementations must not block.
type Publisher interface {
	Publish(feed string, view models.StateView)
}

// Sleeper waits between fetch attempts. It returns early with ctx.Err()
// when the context is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

// RealSleeper waits on a timer.
type RealSleeper struct{}

func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordFetchAttempt(string, string) {}
func (NopMetrics) RecordFallback(string)             {}
func (NopMetrics) RecordFailure(string)              {}
func (NopMetrics) RecordFeedState(string, string)    {}
func (NopMetrics) RecordCycle(string)                {}
func (NopMetrics) RecordLatency(string, float64)     {}
