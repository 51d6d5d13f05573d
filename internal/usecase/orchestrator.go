package usecase

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"AXRadar/internal/domain/models"
	drepo "AXRadar/internal/domain/repository"
	"AXRadar/pkg/logger"
)

// DefaultRefreshInterval applies when the configured interval is not positive.
const DefaultRefreshInterval = 30 * time.Second

// OrchestratorOption configures Orchestrator.
type OrchestratorOption func(*Orchestrator)

// Orchestrator runs the bootstrap pass and the recurring refresh cycle.
// Feeds run concurrently and never affect each other.
type Orchestrator struct {
	feeds    []Feed
	interval time.Duration
	ticks    <-chan time.Time
	log      *logger.Logger
	metrics  drepo.Metrics
	pub      drepo.Publisher

	ready     chan struct{}
	readyOnce sync.Once
	inflight  sync.WaitGroup
}

func NewOrchestrator(feeds []Feed, interval time.Duration, opts ...OrchestratorOption) *Orchestrator {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	o := &Orchestrator{
		feeds:    feeds,
		interval: interval,
		log:      logger.Nop(),
		metrics:  drepo.NopMetrics{},
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Ready is closed once the bootstrap pass has settled.
func (o *Orchestrator) Ready() <-chan struct{} { return o.ready }

// IsReady reports whether the bootstrap pass has settled.
func (o *Orchestrator) IsReady() bool {
	select {
	case <-o.ready:
		return true
	default:
		return false
	}
}

// Bootstrap refreshes every feed concurrently, waits for all of them to
// settle and then signals readiness, whatever the individual outcomes.
func (o *Orchestrator) Bootstrap(ctx context.Context) {
	start := time.Now()
	o.metrics.RecordCycle("bootstrap")

	var wg sync.WaitGroup
	for _, f := range o.feeds {
		wg.Add(1)
		go func(f Feed) {
			defer wg.Done()
			o.refresh(ctx, f)
		}(f)
	}
	wg.Wait()

	o.readyOnce.Do(func() { close(o.ready) })
	o.metrics.RecordLatency("bootstrap", time.Since(start).Seconds())
	o.log.Info("dashboard ready",
		logger.Int("feeds", len(o.feeds)),
		logger.Duration("took_ms", time.Since(start)),
	)
}

// RefreshAll starts a refresh of every feed and returns without waiting.
func (o *Orchestrator) RefreshAll(ctx context.Context) {
	o.metrics.RecordCycle("refresh")
	for _, f := range o.feeds {
		o.inflight.Add(1)
		go func(f Feed) {
			defer o.inflight.Done()
			o.refresh(ctx, f)
		}(f)
	}
}

// Run bootstraps and then refreshes every feed on each tick until ctx ends.
// A slow cycle may overlap the next one.
func (o *Orchestrator) Run(ctx context.Context) {
	o.Bootstrap(ctx)

	ticks := o.ticks
	if ticks == nil {
		t := time.NewTicker(o.interval)
		defer t.Stop()
		ticks = t.C
	}
	o.log.Info("refresh cycle started", logger.Duration("interval_ms", o.interval))

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			o.RefreshAll(ctx)
		}
	}
}

// Wait blocks until refreshes started by RefreshAll have finished.
func (o *Orchestrator) Wait() { o.inflight.Wait() }

func (o *Orchestrator) refresh(ctx context.Context, f Feed) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("feed refresh panicked",
				logger.String("feed", f.Name()),
				logger.Error(fmt.Errorf("%v", r)),
				logger.String("stack", string(debug.Stack())),
			)
			if o.pub != nil {
				o.pub.Publish(f.Name(), models.Failed[struct{}]("").Stamped(time.Now()))
			}
		}
		o.metrics.RecordLatency("refresh:"+f.Name(), time.Since(start).Seconds())
	}()
	f.Refresh(ctx)
}

// WithTicks replaces the interval ticker, mainly for tests.
func WithTicks(ch <-chan time.Time) OrchestratorOption {
	return func(o *Orchestrator) { o.ticks = ch }
}

// WithOrchestratorLogger sets the logger.
func WithOrchestratorLogger(l *logger.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if l != nil {
			o.log = l
		}
	}
}

// WithOrchestratorMetrics sets the metrics sink.
func WithOrchestratorMetrics(m drepo.Metrics) OrchestratorOption {
	return func(o *Orchestrator) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithOrchestratorPublisher sets where a panicking feed's error view goes.
func WithOrchestratorPublisher(p drepo.Publisher) OrchestratorOption {
	return func(o *Orchestrator) { o.pub = p }
}
