package coinselect

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
	"amp/rpcclient"
)

const assetID = "6f0279e9ed041c3d710a9f57d0c02928416460c4b722ae3457a11eec381c526d"

func testEngine() *retry.Engine {
	return retry.New(retry.Config{Enabled: true, MaxAttempts: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})
}

func unspentServer(t *testing.T, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"result": json.RawMessage(body)})
	}))
}

func TestSelectSingleSufficientUTXO(t *testing.T) {
	srv := unspentServer(t, `[{"txid":"t0","vout":0,"amount":150.0,"asset":"`+assetID+`","spendable":true}]`)
	defer srv.Close()

	rpc := rpcclient.New(srv.URL, "u", "p", testEngine())
	selected, sum, err := Select(context.Background(), rpc, assetID, 100.0, 1.0)
	require.Nil(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, 150.0, sum)
}

func TestSelectLargestFirstMultipleUTXOs(t *testing.T) {
	srv := unspentServer(t, `[
		{"txid":"t0","vout":0,"amount":50.0,"asset":"`+assetID+`","spendable":true},
		{"txid":"t1","vout":0,"amount":30.0,"asset":"`+assetID+`","spendable":true},
		{"txid":"t2","vout":0,"amount":40.0,"asset":"`+assetID+`","spendable":true},
		{"txid":"t3","vout":0,"amount":25.0,"asset":"`+assetID+`","spendable":true}
	]`)
	defer srv.Close()

	rpc := rpcclient.New(srv.URL, "u", "p", testEngine())
	selected, sum, err := Select(context.Background(), rpc, assetID, 120.0, 1.0)
	require.Nil(t, err)
	assert.GreaterOrEqual(t, sum, 121.0)
	for i := 1; i < len(selected); i++ {
		assert.GreaterOrEqual(t, selected[i-1].Amount, selected[i].Amount)
	}
}

func TestSelectInsufficientFunds(t *testing.T) {
	srv := unspentServer(t, `[
		{"txid":"t0","vout":0,"amount":10.0,"asset":"`+assetID+`","spendable":true},
		{"txid":"t1","vout":0,"amount":5.0,"asset":"`+assetID+`","spendable":true},
		{"txid":"t2","vout":0,"amount":3.0,"asset":"`+assetID+`","spendable":true}
	]`)
	defer srv.Close()

	rpc := rpcclient.New(srv.URL, "u", "p", testEngine())
	_, _, err := Select(context.Background(), rpc, assetID, 100.0, 1.0)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "Insufficient UTXOs")
}

func TestSelectNoSpendableUTXOs(t *testing.T) {
	srv := unspentServer(t, `[
		{"txid":"t0","vout":0,"amount":100.0,"asset":"`+assetID+`","spendable":false},
		{"txid":"t1","vout":0,"amount":50.0,"asset":"`+assetID+`","spendable":false}
	]`)
	defer srv.Close()

	rpc := rpcclient.New(srv.URL, "u", "p", testEngine())
	_, _, err := Select(context.Background(), rpc, assetID, 50.0, 1.0)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "No spendable UTXOs")
}

func TestSelectExactAmountOmitsChange(t *testing.T) {
	srv := unspentServer(t, `[
		{"txid":"t0","vout":0,"amount":51.0,"asset":"`+assetID+`","spendable":true},
		{"txid":"t1","vout":0,"amount":50.0,"asset":"`+assetID+`","spendable":true}
	]`)
	defer srv.Close()

	rpc := rpcclient.New(srv.URL, "u", "p", testEngine())
	selected, sum, err := Select(context.Background(), rpc, assetID, 100.0, 1.0)
	require.Nil(t, err)
	assert.Len(t, selected, 2)
	assert.Equal(t, 101.0, sum)
}
