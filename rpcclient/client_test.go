package rpcclient

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
	"amp/types"
)

func testEngine() *retry.Engine {
	return retry.New(retry.Config{Enabled: true, MaxAttempts: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
}

func TestGetNetworkInfoDecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rpcuser", user)
		assert.Equal(t, "rpcpass", pass)

		var req rpcRequest
		json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "getnetworkinfo", req.Method)

		json.NewEncoder(w).Encode(rpcResponse{Result: json.RawMessage(`{"version": 210000}`), ID: 1})
	}))
	defer srv.Close()

	c := New(srv.URL, "rpcuser", "rpcpass", testEngine())
	info, err := c.GetNetworkInfo(context.Background())
	require.Nil(t, err)
	assert.Equal(t, float64(210000), info["version"])
}

func TestCallSurfacesRPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rpcResponse{Error: &rpcError{Code: -32601, Message: "method not found"}})
	}))
	defer srv.Close()

	c := New(srv.URL, "u", "p", testEngine())
	_, err := c.GetNetworkInfo(context.Background())
	require.NotNil(t, err)
	assert.Equal(t, "Rpc", err.Kind.String())
	assert.Equal(t, -32601, err.Code)
}

func TestWalletScopesRequestsToWalletPath(t *testing.T) {
	var sawPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawPath = r.URL.Path
		json.NewEncoder(w).Encode(rpcResponse{Result: json.RawMessage(`"addr1"`)})
	}))
	defer srv.Close()

	c := New(srv.URL, "u", "p", testEngine())
	wc := c.Wallet("amp-wallet")
	addr, err := wc.GetNewAddress(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "addr1", addr)
	assert.Equal(t, "/wallet/amp-wallet", sawPath)
}

func TestListUnspentMapsToTypesUnspent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rpcResponse{Result: json.RawMessage(`[
			{"txid":"abc","vout":0,"address":"addr1","amount":1.5,"asset":"asset1","confirmations":6,"spendable":true}
		]`)})
	}))
	defer srv.Close()

	c := New(srv.URL, "u", "p", testEngine())
	utxos, err := c.ListUnspent(context.Background())
	require.Nil(t, err)
	require.Len(t, utxos, 1)
	assert.Equal(t, "abc", utxos[0].TxID)
	assert.Equal(t, 1.5, utxos[0].Amount)
	require.NotNil(t, utxos[0].Confirmations)
	assert.Equal(t, 6, *utxos[0].Confirmations)
}

func TestCreateRawTransactionSendsOrderedParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		json.NewDecoder(r.Body).Decode(&req)
		require.Len(t, req.Params, 5)
		json.NewEncoder(w).Encode(rpcResponse{Result: json.RawMessage(`"deadbeef"`)})
	}))
	defer srv.Close()

	c := New(srv.URL, "u", "p", testEngine())
	hex, err := c.CreateRawTransaction(context.Background(),
		[]types.TxVin{{TxID: "abc", Vout: 0}}, map[string]float64{"addr1": 1.0}, map[string]string{"addr1": "asset1"})
	require.Nil(t, err)
	assert.Equal(t, "deadbeef", hex)
}
