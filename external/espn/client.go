package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/kprather/pickem-api/internal/platform/logging"
	"github.com/kprather/pickem-api/internal/platform/resilience"
	"github.com/kprather/pickem-api/internal/usecase"
)

const (
	defaultMaxAttempts    = 5
	defaultBackoffInitial = time.Second
	defaultBackoffMax     = 16 * time.Second
	maxResponseBytes      = 8 << 20
)

// Error classes for upstream failures. HTTP-status failures are the only
// retryable class; transport and decode failures surface immediately.
var (
	ErrHTTPStatus       = crerr.New("espn: upstream returned non-success status")
	ErrTransport        = crerr.New("espn: transport failure")
	ErrExhaustedRetries = crerr.New("espn: retries exhausted")
)

type ClientConfig struct {
	HTTPClient        *http.Client
	SiteBaseURL       string
	CoreBaseURL       string
	Timeout           time.Duration
	MaxAttempts       int
	BackoffInitial    time.Duration
	BackoffMax        time.Duration
	PhaseConcurrency  int
	AllowInsecureRefs bool
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient        *http.Client
	siteBaseURL       string
	coreBaseURL       string
	maxAttempts       int
	backoffInitial    time.Duration
	backoffMax        time.Duration
	phaseConcurrency  int
	allowInsecureRefs bool
	logger            *logging.Logger
	breaker           *resilience.CircuitBreaker
	circuitEnabled    bool
	flight            resilience.SingleFlight[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	siteBaseURL := strings.TrimRight(strings.TrimSpace(cfg.SiteBaseURL), "/")
	if siteBaseURL == "" {
		siteBaseURL = defaultSiteBaseURL
	}
	coreBaseURL := strings.TrimRight(strings.TrimSpace(cfg.CoreBaseURL), "/")
	if coreBaseURL == "" {
		coreBaseURL = defaultCoreBaseURL
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	backoffInitial := cfg.BackoffInitial
	if backoffInitial <= 0 {
		backoffInitial = defaultBackoffInitial
	}
	backoffMax := cfg.BackoffMax
	if backoffMax <= 0 {
		backoffMax = defaultBackoffMax
	}
	phaseConcurrency := cfg.PhaseConcurrency
	if phaseConcurrency <= 0 {
		phaseConcurrency = 8
	}

	return &Client{
		httpClient:        httpClient,
		siteBaseURL:       siteBaseURL,
		coreBaseURL:       coreBaseURL,
		maxAttempts:       maxAttempts,
		backoffInitial:    backoffInitial,
		backoffMax:        backoffMax,
		phaseConcurrency:  phaseConcurrency,
		allowInsecureRefs: cfg.AllowInsecureRefs,
		logger:            logger,
		breaker:           resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled:    cfg.CircuitBreaker.Enabled,
	}
}

// fetchJSON fetches a resource URL and decodes it into target. Identical
// concurrent fetches of the same URL collapse into one upstream request.
func (c *Client) fetchJSON(ctx context.Context, rawURL string, target any) error {
	fullURL := c.secureURL(rawURL)

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: schedule provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, ErrExhaustedRetries) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return body, reqErr
	})
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Mark(fmt.Errorf("decode provider payload url=%s: %v", fullURL, err), ErrTransport)
	}
	return nil
}

// executeRequest runs the bounded retry loop. Only non-2xx responses are
// retried; request construction, dial, and body-read failures abort
// immediately because repeating them is not expected to help. The wait
// doubles between attempts and tops out at backoffMax, with no jitter.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	backoff := c.backoffInitial

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Mark(fmt.Errorf("build request url=%s: %v", fullURL, err), ErrTransport)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, crerr.Mark(fmt.Errorf("send request url=%s: %v", fullURL, err), ErrTransport)
		}

		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, crerr.Mark(fmt.Errorf("read response body url=%s: %v", fullURL, readErr), ErrTransport)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return raw, nil
		}

		lastErr = crerr.Mark(
			fmt.Errorf("provider status=%d url=%s body=%s", resp.StatusCode, fullURL, abbreviateBody(raw)),
			ErrHTTPStatus,
		)
		if attempt == c.maxAttempts {
			break
		}

		c.logger.DebugContext(ctx, "espn request retrying",
			"url", fullURL, "attempt", attempt, "status", resp.StatusCode, "backoff", backoff.String())

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
		if backoff > c.backoffMax {
			backoff = c.backoffMax
		}
	}

	c.logger.WarnContext(ctx, "espn request exhausted retries", "url", fullURL, "attempts", c.maxAttempts, "error", lastErr)
	return nil, crerr.Mark(fmt.Errorf("after %d attempts: %w", c.maxAttempts, lastErr), ErrExhaustedRetries)
}

func abbreviateBody(raw []byte) string {
	const limit = 200
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
