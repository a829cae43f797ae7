package theme

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/tracing"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	ErrPersonaNotFound = errors.New("persona not found")
	ErrUpstream        = errors.New("persona store error")
)

// Fetch outcomes reported to OnFetch
const (
	StatusOK       = "ok"
	StatusDefault  = "default"
	StatusNotFound = "not_found"
	StatusError    = "error"
	StatusOpen     = "circuit_open"
)

// Options configures the persona store client
type Options struct {
	// BaseURL of the persona store; empty disables remote lookups
	BaseURL   string
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
	// RateLimit caps outbound requests per second; zero is unlimited
	RateLimit rate.Limit
	Breaker   *resilience.Breaker
	Logger    *zap.Logger
	// OnFetch observes the outcome of each Palette lookup
	OnFetch func(status string)
}

// Client reads persona accent colors from the persona store
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	log     *zap.Logger
	onFetch func(string)
	enabled bool
}

// NewClient creates a persona store client
func NewClient(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.RetryWait == 0 {
		opts.RetryWait = 200 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Breaker == nil {
		opts.Breaker = resilience.New("persona-store", resilience.Settings{
			MaxRequests: 2,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts resilience.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		})
	}
	limit := opts.RateLimit
	if limit == 0 {
		limit = rate.Inf
	}

	// Pooled transport from retryablehttp; retries are driven by resty
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil

	r := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetTransport(retryClient.HTTPClient.Transport).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(4*opts.RetryWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "AgentOS-Desktop/1.0")
	r.JSONMarshal = sonic.Marshal
	r.JSONUnmarshal = sonic.Unmarshal

	return &Client{
		resty:   r,
		limiter: rate.NewLimiter(limit, 1),
		breaker: opts.Breaker,
		log:     opts.Logger,
		onFetch: opts.OnFetch,
		enabled: opts.BaseURL != "",
	}
}

// Breaker exposes the client's circuit breaker
func (c *Client) Breaker() *resilience.Breaker {
	return c.breaker
}

// Fetch returns the stored palette for a persona
func (c *Client) Fetch(ctx context.Context, personaID string) (Palette, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Palette{}, err
	}

	notFound := false
	palette, err := resilience.Execute(c.breaker, func() (Palette, error) {
		var out Palette
		req := c.resty.R().
			SetContext(ctx).
			SetPathParam("id", personaID).
			SetResult(&out)
		tracing.Inject(ctx, req.Header)
		resp, err := req.Get("/personas/{id}/colors")
		if err != nil {
			return Palette{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		switch {
		case resp.StatusCode() == http.StatusNotFound:
			// a missing persona is an answer, not an outage
			notFound = true
			return Palette{}, nil
		case resp.IsError():
			return Palette{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
		}
		return out, nil
	})
	if err != nil {
		return Palette{}, err
	}
	if notFound {
		return Palette{}, fmt.Errorf("%w: %s", ErrPersonaNotFound, personaID)
	}
	return palette, nil
}

// Palette returns the persona's palette, falling back to the default on any
// failure. It never returns an error.
func (c *Client) Palette(ctx context.Context, personaID string) Palette {
	if personaID == "" || !c.enabled {
		c.report(StatusDefault)
		return Default()
	}

	palette, err := c.Fetch(ctx, personaID)
	if err == nil {
		c.report(StatusOK)
		return palette.WithFallback()
	}

	status := StatusError
	switch {
	case errors.Is(err, ErrPersonaNotFound):
		status = StatusNotFound
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrTooManyRequests):
		status = StatusOpen
	}
	c.report(status)
	c.log.Warn("Using default palette",
		zap.String("persona_id", personaID),
		zap.String("status", status),
		zap.Error(err))
	return Default()
}

func (c *Client) report(status string) {
	if c.onFetch != nil {
		c.onFetch(status)
	}
}
