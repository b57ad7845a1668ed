// Package config reads amp's static, process-wide defaults from the
// environment, in the style of the teacher's cmd/api/main.go
// (github.com/kr/env's env.String + env.Parse, read once at process start).
//
// Credentials that must be re-read per call, so tests can swap them out
// without a process restart, are intentionally NOT handled here — see
// token.Manager and rpcclient.Client, which call os.Getenv/os.LookupEnv
// directly.
package config

import (
	"strconv"
	"time"

	"github.com/kr/env"
)

const (
	defaultMaxAttempts     = 3
	defaultBaseDelayMS     = 1000
	defaultMaxDelayMS      = 30000
	defaultRequestTimeout  = 10 * time.Second
	defaultMinConfirms     = 2
	defaultConfirmTimeout  = 10 * time.Minute
	defaultConfirmInterval = 5 * time.Second
)

var (
	apiBaseURL     = env.String("API_BASE_URL", "https://amp.example.com")
	retryEnabled   = env.String("RETRY_ENABLED", "true")
	retryMaxAttmpt = env.String("RETRY_MAX_ATTEMPTS", "")
	retryBaseDelay = env.String("RETRY_BASE_DELAY_MS", "")
	retryMaxDelay  = env.String("RETRY_MAX_DELAY_MS", "")
)

func init() {
	env.Parse()
}

// Retry holds the knobs described in spec §6 ("Configuration (environment)")
// and §3's RetryConfig invariants (1 <= max_attempts, base <= max).
type Retry struct {
	Enabled     bool
	MaxAttempts int
	BaseDelayMS int
	MaxDelayMS  int
}

// APIBaseURL returns API_BASE_URL or the built-in default.
func APIBaseURL() string {
	return *apiBaseURL
}

// RequestTimeout returns the default per-request timeout (10s). No package
// in this module reads it: api.Client and rpcclient.Client build their
// http.Client without a timeout, and token.Manager sets its own fixed 10s.
func RequestTimeout() time.Duration {
	return defaultRequestTimeout
}

// LoadRetry reads RETRY_ENABLED, RETRY_MAX_ATTEMPTS, RETRY_BASE_DELAY_MS,
// RETRY_MAX_DELAY_MS (captured at process start) and clamps them to a valid
// configuration. An invalid combination (max_attempts < 1, or base > max)
// falls back to built-in defaults rather than producing a broken retry loop.
func LoadRetry() Retry {
	enabled := *retryEnabled != "false"
	maxAttempts := parseIntOr(*retryMaxAttmpt, defaultMaxAttempts)
	baseDelay := parseIntOr(*retryBaseDelay, defaultBaseDelayMS)
	maxDelay := parseIntOr(*retryMaxDelay, defaultMaxDelayMS)

	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}
	if baseDelay > maxDelay {
		baseDelay, maxDelay = defaultBaseDelayMS, defaultMaxDelayMS
	}

	return Retry{
		Enabled:     enabled,
		MaxAttempts: maxAttempts,
		BaseDelayMS: baseDelay,
		MaxDelayMS:  maxDelay,
	}
}

func parseIntOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Confirmation holds the defaults for the confirmation poller (spec §4.8),
// overridable per call by the caller (e.g. tests pass milliseconds-scale
// values directly to confirm.WaitForConfirmations rather than through env).
type Confirmation struct {
	MinConfirmations int
	Timeout          time.Duration
	PollInterval     time.Duration
}

// DefaultConfirmation returns the production defaults: 2 confirmations,
// a ten minute deadline, and a five second poll interval.
func DefaultConfirmation() Confirmation {
	return Confirmation{
		MinConfirmations: defaultMinConfirms,
		Timeout:          defaultConfirmTimeout,
		PollInterval:     defaultConfirmInterval,
	}
}
