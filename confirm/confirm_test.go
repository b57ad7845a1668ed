package confirm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amp/retry"
	"amp/rpcclient"
)

func testEngine() *retry.Engine {
	return retry.New(retry.Config{Enabled: true, MaxAttempts: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
}

func gettransactionServer(confirmations int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := fmt.Sprintf(`{"txid":"tx1","confirmations":%d}`, confirmations)
		json.NewEncoder(w).Encode(map[string]interface{}{"result": json.RawMessage(result)})
	}))
}

func TestWaitForConfirmationsSucceedsImmediately(t *testing.T) {
	srv := gettransactionServer(3)
	defer srv.Close()

	rpc := rpcclient.New(srv.URL, "u", "p", testEngine())
	tx, err := WaitForConfirmations(context.Background(), rpc, "tx1", Options{
		MinConfirmations: 2,
		Timeout:          time.Second,
		PollInterval:     10 * time.Millisecond,
	})
	require.Nil(t, err)
	assert.Equal(t, float64(3), tx["confirmations"])
}

func TestWaitForConfirmationsSucceedsAfterPolling(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		confirmations := 0
		if n >= 3 {
			confirmations = 2
		}
		result := fmt.Sprintf(`{"txid":"tx1","confirmations":%d}`, confirmations)
		json.NewEncoder(w).Encode(map[string]interface{}{"result": json.RawMessage(result)})
	}))
	defer srv.Close()

	rpc := rpcclient.New(srv.URL, "u", "p", testEngine())
	tx, err := WaitForConfirmations(context.Background(), rpc, "tx1", Options{
		MinConfirmations: 2,
		Timeout:          2 * time.Second,
		PollInterval:     5 * time.Millisecond,
	})
	require.Nil(t, err)
	assert.Equal(t, "tx1", tx["txid"])
}

func TestWaitForConfirmationsTimesOutCarryingTxID(t *testing.T) {
	srv := gettransactionServer(0)
	defer srv.Close()

	rpc := rpcclient.New(srv.URL, "u", "p", testEngine())
	_, err := WaitForConfirmations(context.Background(), rpc, "tx-timeout", Options{
		MinConfirmations: 2,
		Timeout:          30 * time.Millisecond,
		PollInterval:     5 * time.Millisecond,
	})
	require.NotNil(t, err)
	assert.Equal(t, "Timeout", err.Kind.String())
	assert.Equal(t, "tx-timeout", err.TxID)
	assert.Contains(t, err.RetryInstructions(), "tx-timeout")
}

func TestWaitForConfirmationsTreatsTransientRPCFailureAsContinue(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"result": json.RawMessage(`{"txid":"tx1","confirmations":2}`)})
	}))
	defer srv.Close()

	rpc := rpcclient.New(srv.URL, "u", "p", testEngine())
	tx, err := WaitForConfirmations(context.Background(), rpc, "tx1", Options{
		MinConfirmations: 2,
		Timeout:          2 * time.Second,
		PollInterval:     5 * time.Millisecond,
	})
	require.Nil(t, err)
	assert.Equal(t, "tx1", tx["txid"])
}
