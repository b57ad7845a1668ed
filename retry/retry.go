// Package retry is the uniform backoff/classification layer sitting beneath
// every outbound HTTP/RPC call amp makes. It classifies outcomes, applies
// exponential backoff with full jitter, and caps the number of attempts.
//
// Shape grounded on
// _examples/other_examples/..._data-preservation-programs-go-synapse__pkg-txutil-retry.go.go's
// RetryConfig/CalculateBackoff, generalized from one hard-coded Ethereum
// send loop into one reusable Do that both the HTTP API client and the RPC
// client call, and on the classification
// table from original_source/working-implementation.rs's AmpRetryPolicy
// (429 and 5xx retry, 401 surfaces immediately for the token manager to
// react to).
package retry

import (
	"context"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"amp/config"
	"amp/errors"
	"amp/internal/logging"
)

var log = logging.For("retry")

// Config mirrors spec §3's RetryConfig: enabled, max_attempts, base_delay_ms,
// max_delay_ms, with 1 <= max_attempts and base <= max.
type Config struct {
	Enabled     bool
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// FromConfig builds a Config from the process environment via config.LoadRetry.
func FromConfig() Config {
	r := config.LoadRetry()
	return Config{
		Enabled:     r.Enabled,
		MaxAttempts: r.MaxAttempts,
		BaseDelay:   time.Duration(r.BaseDelayMS) * time.Millisecond,
		MaxDelay:    time.Duration(r.MaxDelayMS) * time.Millisecond,
	}
}

// Engine wraps a request factory and retries it per Config.
type Engine struct {
	cfg Config
	// sleep is overridable by tests so backoff assertions don't actually wait.
	sleep func(context.Context, time.Duration) error
}

// New returns an Engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg, sleep: ctxSleep}
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
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

// Backoff returns min(maxDelay, base*2^(attempt-1)) + rand[0, base/2), the
// full-jitter schedule from spec §4.2. attempt is 1-indexed.
func Backoff(attempt int, base, maxDelay time.Duration) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	scaled := float64(base) * math.Pow(2, float64(attempt-1))
	capped := time.Duration(math.Min(scaled, float64(maxDelay)))
	jitter := time.Duration(0)
	if base > 1 {
		jitter = time.Duration(rand.Int63n(int64(base) / 2))
	}
	return capped + jitter
}

// Classify maps an HTTP status code to a retry decision, per spec §4.2's
// table: 2xx returns; 401 surfaces as Auth without retry (the token manager
// reacts at a higher level); 408/429/5xx retry while attempts remain; other
// 4xx surfaces as Api without retry.
func Classify(status int, body string) (retry bool, err *errors.Error) {
	switch {
	case status >= 200 && status < 300:
		return false, nil
	case status == 401:
		return false, errors.Auth("unauthorized")
	case status == 408 || status == 429 || (status >= 500 && status < 600):
		return true, errors.API(status, body)
	default:
		return false, errors.API(status, body)
	}
}

// Do invokes fn up to cfg.MaxAttempts times, sleeping with full jitter
// backoff between attempts, per the classification table in Classify and
// the transport-error handling described in spec §4.2.
func (e *Engine) Do(ctx context.Context, fn func() (*http.Response, error)) (*http.Response, *errors.Error) {
	maxAttempts := e.cfg.MaxAttempts
	if !e.cfg.Enabled || maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr *errors.Error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := Backoff(attempt-1, e.cfg.BaseDelay, e.cfg.MaxDelay)
			log.Debug("retrying after backoff", "attempt", attempt, "delay", delay)
			if serr := e.sleep(ctx, delay); serr != nil {
				return nil, errors.Network("context cancelled during backoff", serr)
			}
		}

		resp, err := fn()
		if err != nil {
			lastErr = errors.Network(err.Error(), err)
			if attempt < maxAttempts {
				continue
			}
			return nil, lastErr
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		body := readAndCloseBody(resp)
		shouldRetry, classified := Classify(resp.StatusCode, body)
		lastErr = classified
		if shouldRetry && attempt < maxAttempts {
			continue
		}
		return nil, classified
	}
	return nil, lastErr
}

func readAndCloseBody(resp *http.Response) string {
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}
