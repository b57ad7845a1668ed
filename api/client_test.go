package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amp/retry"
	"amp/token"
	"amp/types"
)

func testRetryEngine() *retry.Engine {
	return retry.New(retry.Config{Enabled: true, MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int) {
	t.Helper()
	var tokenCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/user/obtain_token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		json.NewEncoder(w).Encode(map[string]string{"token": "tok"})
	})
	mux.HandleFunc("/", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("API_USERNAME", "u")
	t.Setenv("API_PASSWORD", "p")

	tokens := token.New(srv.URL, testRetryEngine())
	c := New(srv.URL, tokens, testRetryEngine())
	return c, &tokenCalls
}

func TestListAssetsDecodesResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/assets", r.URL.Path)
		require.Equal(t, "token tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]map[string]interface{}{{"asset_uuid": "abc"}})
	})

	assets, err := c.ListAssets(context.Background())
	require.Nil(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "abc", assets[0].UUID)
}

func TestGetAssetSurfacesAPIErrorOnNon2xx(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"not found"}`))
	})

	_, err := c.GetAsset(context.Background(), "missing")
	require.NotNil(t, err)
	assert.Equal(t, "Api", err.Kind.String())
}

func TestDoInvalidatesTokenAndRetriesOncePersistentOn401(t *testing.T) {
	c, tokenCalls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.ListAssets(context.Background())
	require.NotNil(t, err)
	assert.Equal(t, "Auth", err.Kind.String())
	assert.Equal(t, 2, *tokenCalls, "a persistent 401 obtains a token twice: the initial attempt and the invalidate-and-retry")
}

func TestDoRecoversFromOneTimeUnauthorized(t *testing.T) {
	var calls int
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]map[string]interface{}{})
	})

	assets, err := c.ListAssets(context.Background())
	require.Nil(t, err)
	assert.Empty(t, assets)
	assert.Equal(t, 2, calls)
}

func TestIssueAssetSendsTypedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/assets/issue", r.URL.Path)
		var decoded map[string]interface{}
		json.NewDecoder(r.Body).Decode(&decoded)
		assert.Equal(t, "Test Asset", decoded["name"])
		json.NewEncoder(w).Encode(map[string]string{"asset_uuid": "u1", "asset_id": "a1", "txid": "t1"})
	})

	out, err := c.IssueAsset(context.Background(), types.Issuance{Name: "Test Asset", Amount: 100, Ticker: "TST", Precision: 0})
	require.Nil(t, err)
	assert.Equal(t, "u1", out.AssetUUID)
}
