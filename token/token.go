// Package token implements the process-wide, single-writer cache of the
// platform's API bearer token (spec §4.3). A Manager is a value an
// application wires into api.Client at construction (spec §9's "prefer
// dependency injection ... pass a TokenSource handle over a global"),
// modeled on the teacher's core/mockhsm.HSM: a struct owning a
// sync.Mutex-guarded cache, constructed once via New, passed around by
// pointer rather than reached for as a bare package-level global.
package token

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	"amp/errors"
	"amp/internal/logging"
	"amp/retry"
	"amp/types"
)

var log = logging.For("token")

// skew is the safety margin get_token uses to decide a token is stale
// before it actually expires, per spec §4.3.
const skew = 5 * time.Minute

// lowerBound is the client-side expiry amp assumes after Obtain, because
// the server does not return an expiry (spec §4.3).
const lowerBound = 24 * time.Hour

// Manager is the process-wide token cache. Its zero value is not usable;
// construct with New.
type Manager struct {
	baseURL    string
	httpClient *http.Client
	retry      *retry.Engine

	mu      sync.Mutex
	current *types.Token
}

// New returns a Manager pointed at baseURL, using engine for every outbound
// HTTP call it makes.
func New(baseURL string, engine *retry.Engine) *Manager {
	return &Manager{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retry:      engine,
	}
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// GetToken returns the current token if valid; obtains one if missing,
// refreshes ahead of expiry, or falls back to Obtain if already expired.
// Linearizable: the mutex is held across any network call this makes, so
// concurrent callers never issue more than one refresh/obtain in flight.
func (m *Manager) GetToken(ctx context.Context) (types.Token, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	switch {
	case m.current == nil:
		return m.obtainLocked(ctx)
	case now.After(m.current.ExpiresAt):
		return m.obtainLocked(ctx)
	case m.current.Stale(now, skew):
		return m.refreshLocked(ctx)
	default:
		return *m.current, nil
	}
}

// Refresh forces a token refresh. On 401 or any non-2xx it transparently
// falls back to Obtain, per spec §4.3.
func (m *Manager) Refresh(ctx context.Context) (types.Token, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshLocked(ctx)
}

func (m *Manager) refreshLocked(ctx context.Context) (types.Token, *errors.Error) {
	if m.current == nil {
		return m.obtainLocked(ctx)
	}

	// Rebuilt fresh inside the factory on every retry attempt (spec
	// §4.2) rather than replaying one *http.Request across attempts.
	resp, rerr := m.retry.Do(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/user/refresh_token", nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "token "+m.current.Value)
		return m.httpClient.Do(req)
	})
	if rerr != nil {
		log.Debug("refresh failed, falling back to obtain", "error", rerr.Error())
		return m.obtainLocked(ctx)
	}
	defer resp.Body.Close()

	var decoded tokenResponse
	if jerr := json.NewDecoder(resp.Body).Decode(&decoded); jerr != nil {
		return types.Token{}, errors.Serde("decoding refresh_token response", jerr)
	}

	tok := types.Token{Value: decoded.Token, AcquiredAt: time.Now(), ExpiresAt: time.Now().Add(lowerBound)}
	m.current = &tok
	return tok, nil
}

func (m *Manager) obtainLocked(ctx context.Context) (types.Token, *errors.Error) {
	username, ok := os.LookupEnv("API_USERNAME")
	if !ok {
		return types.Token{}, errors.Auth("missing API_USERNAME environment variable")
	}
	password, ok := os.LookupEnv("API_PASSWORD")
	if !ok {
		return types.Token{}, errors.Auth("missing API_PASSWORD environment variable")
	}

	body, jerr := json.Marshal(tokenRequest{Username: username, Password: password})
	if jerr != nil {
		return types.Token{}, errors.Serde("encoding obtain_token request", jerr)
	}

	// Rebuilt fresh inside the factory on every retry attempt (spec
	// §4.2): body is a fresh bytes.NewReader(body) each time, since the
	// reader from a prior attempt is already drained.
	resp, rerr := m.retry.Do(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/user/obtain_token", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return m.httpClient.Do(req)
	})
	if rerr != nil {
		return types.Token{}, rerr
	}
	defer resp.Body.Close()

	var decoded tokenResponse
	if jerr := json.NewDecoder(resp.Body).Decode(&decoded); jerr != nil {
		return types.Token{}, errors.Serde("decoding obtain_token response", jerr)
	}

	tok := types.Token{Value: decoded.Token, AcquiredAt: time.Now(), ExpiresAt: time.Now().Add(lowerBound)}
	m.current = &tok
	log.Debug("obtained new token")
	return tok, nil
}

// Clear empties the cache, for testing and for 401 reactions at the HTTP
// client layer (spec §4.3).
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}
