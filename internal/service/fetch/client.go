// Package fetch reads upstream feed envelopes with bounded retry and falls
// back to the last good payload per resource when every attempt fails.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"AXRadar/internal/domain/repository"
	"AXRadar/pkg/cache"
	xhttp "AXRadar/pkg/http"
	"AXRadar/pkg/logger"
)

const (
	DefaultRetries    = 1
	DefaultRetryDelay = time.Second

	apiPrefix = "/api/v3/"
)

// Result is the data member of an ok envelope. Stale is set when the data
// came from the local last-good copy or the upstream flagged it as cached.
type Result struct {
	Data  json.RawMessage
	Stale bool
}

// Decode unmarshals the payload into v.
func (r Result) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// IsNull reports a missing or null data member.
func (r Result) IsNull() bool {
	s := strings.TrimSpace(string(r.Data))
	return s == "" || s == "null"
}

// ClientOption configures Client.
type ClientOption func(*Client)

// Client fetches resources from the upstream API. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *xhttp.Client
	store   cache.Service
	retries int
	delay   time.Duration
	sleeper repository.Sleeper
	metrics repository.Metrics
	log     *logger.Logger
}

// NewClient creates a fetch client for baseURL. store holds the last good
// payload per resource key.
func NewClient(baseURL string, httpClient *xhttp.Client, store cache.Service, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		store:   store,
		retries: DefaultRetries,
		delay:   DefaultRetryDelay,
		sleeper: repository.RealSleeper{},
		metrics: repository.NopMetrics{},
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient()
	}
	if c.store == nil {
		c.store = cache.NewMemoryCache()
	}
	return c
}

// Get fetches key with the configured retry count.
func (c *Client) Get(ctx context.Context, key string) (Result, error) {
	return c.Fetch(ctx, key, c.retries)
}

// Fetch makes up to retries+1 attempts for key, sleeping the fixed delay
// before each attempt after the first. Negative retries are treated as zero.
// On success the payload replaces the last good copy. When attempts run out,
// or ctx ends, the last good copy is returned with Stale set; without one
// the result is a *FetchError.
func (c *Client) Fetch(ctx context.Context, key string, retries int) (Result, error) {
	if retries < 0 {
		retries = 0
	}

	var (
		lastErr  error
		attempts int
	)
	for i := 0; i <= retries; i++ {
		if i > 0 {
			if err := c.sleeper.Sleep(ctx, c.delay); err != nil {
				lastErr = errors.Join(lastErr, err)
				break
			}
		}
		if err := ctx.Err(); err != nil {
			lastErr = errors.Join(lastErr, err)
			break
		}

		attempts++
		res, err := c.attempt(ctx, key)
		if err == nil {
			c.metrics.RecordFetchAttempt(key, "ok")
			c.remember(ctx, key, res.Data)
			return res, nil
		}
		lastErr = err
		c.metrics.RecordFetchAttempt(key, "error")
		if i < retries {
			c.log.Debug("fetch attempt failed, retrying",
				logger.String("resource", key),
				logger.Int("attempt", attempts),
				logger.Error(err),
			)
		}
	}

	// The caller's context may be gone; the fallback read must still run.
	if data, err := c.store.Get(context.WithoutCancel(ctx), key); err == nil {
		c.metrics.RecordFallback(key)
		c.log.Warn("serving last good payload",
			logger.String("resource", key),
			logger.Int("attempts", attempts),
			logger.Error(lastErr),
		)
		return Result{Data: data, Stale: true}, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		c.log.Warn("last good payload unavailable",
			logger.String("resource", key),
			logger.Error(err),
		)
	}

	c.metrics.RecordFailure(key)
	c.log.Error("fetch failed",
		logger.String("resource", key),
		logger.Int("attempts", attempts),
		logger.Error(lastErr),
	)
	return Result{}, &FetchError{Key: key, Attempts: attempts, Cause: lastErr}
}

func (c *Client) attempt(ctx context.Context, key string) (Result, error) {
	start := time.Now()
	defer func() { c.metrics.RecordLatency(key, time.Since(start).Seconds()) }()

	body, err := c.http.GetJSON(ctx, c.baseURL+apiPrefix+key)
	if err != nil {
		return Result{}, err
	}
	return parseEnvelope(body)
}

func parseEnvelope(body []byte) (Result, error) {
	if !gjson.ValidBytes(body) {
		return Result{}, fmt.Errorf("%w: invalid json", ErrEnvelope)
	}
	env := gjson.ParseBytes(body)
	if !env.IsObject() {
		return Result{}, fmt.Errorf("%w: not an object", ErrEnvelope)
	}
	if status := env.Get("status").String(); status != "ok" {
		msg := env.Get("message").String()
		if msg == "" {
			msg = "API error"
		}
		return Result{}, fmt.Errorf("%w: status %q: %s", ErrEnvelope, status, msg)
	}
	data := env.Get("data")
	raw := []byte("null")
	if data.Exists() {
		raw = []byte(data.Raw)
	}
	return Result{Data: raw, Stale: env.Get("cached").Bool()}, nil
}

func (c *Client) remember(ctx context.Context, key string, data []byte) {
	if err := c.store.Set(context.WithoutCancel(ctx), key, data); err != nil {
		c.log.Warn("store last good payload",
			logger.String("resource", key),
			logger.Error(err),
		)
	}
}

// WithRetries sets the retry count used by Get.
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.retries = n
	}
}

// WithRetryDelay sets the fixed wait before each retry.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithSleeper replaces the timer used between attempts.
func WithSleeper(s repository.Sleeper) ClientOption {
	return func(c *Client) {
		if s != nil {
			c.sleeper = s
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m repository.Metrics) ClientOption {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}
