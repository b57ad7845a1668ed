package retry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{Enabled: true, MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func newTestEngine() *Engine {
	e := New(testConfig())
	e.sleep = func(context.Context, time.Duration) error { return nil }
	return e
}

func TestClassifySuccess(t *testing.T) {
	retry, err := Classify(200, "")
	assert.False(t, retry)
	assert.Nil(t, err)
}

func TestClassify401DoesNotRetry(t *testing.T) {
	retry, err := Classify(401, "")
	assert.False(t, retry)
	require.NotNil(t, err)
	assert.Equal(t, "Auth", err.Kind.String())
}

func TestClassifyTransientStatusesRetry(t *testing.T) {
	for _, status := range []int{408, 429, 500, 502, 503, 504} {
		retry, err := Classify(status, "boom")
		assert.True(t, retry, "status %d should retry", status)
		require.NotNil(t, err)
		assert.True(t, err.IsRetryable())
	}
}

func TestClassifyOther4xxDoesNotRetry(t *testing.T) {
	retry, err := Classify(404, "not found")
	assert.False(t, retry)
	require.NotNil(t, err)
	assert.False(t, err.IsRetryable())
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e := newTestEngine()
	resp, err := e.Do(context.Background(), func() (*http.Response, error) {
		return http.Get(srv.URL)
	})
	require.Nil(t, err)
	require.NotNil(t, resp)
	resp.Body.Close()
	assert.Equal(t, 2, attempts)
}

func TestDoStopsAtMaxAttemptsForPersistentTransientFailure(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := newTestEngine()
	_, err := e.Do(context.Background(), func() (*http.Response, error) {
		return http.Get(srv.URL)
	})
	require.NotNil(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoDoesNotRetryOn401(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	e := newTestEngine()
	_, err := e.Do(context.Background(), func() (*http.Response, error) {
		return http.Get(srv.URL)
	})
	require.NotNil(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, "Auth", err.Kind.String())
}

func TestDoDoesNotRetryOnOther4xx(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
		io.Copy(w, strings.NewReader("nope"))
	}))
	defer srv.Close()

	e := newTestEngine()
	_, err := e.Do(context.Background(), func() (*http.Response, error) {
		return http.Get(srv.URL)
	})
	require.NotNil(t, err)
	assert.Equal(t, 1, attempts)
}

func TestBackoffIsCappedAtMaxDelay(t *testing.T) {
	d := Backoff(10, time.Second, 2*time.Second)
	assert.LessOrEqual(t, d, 2*time.Second+500*time.Millisecond)
}
