package coinselect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amp/rpcclient"
)

// rpcServer dispatches listunspent and createrawtransaction calls the way a
// node would, for Assemble's two-call sequence.
func rpcServer(t *testing.T, unspentBody, rawTxHex string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		switch req.Method {
		case "listunspent":
			json.NewEncoder(w).Encode(map[string]interface{}{"result": json.RawMessage(unspentBody)})
		case "createrawtransaction":
			json.NewEncoder(w).Encode(map[string]interface{}{"result": json.RawMessage(`"` + rawTxHex + `"`)})
		default:
			t.Fatalf("unexpected rpc method %s", req.Method)
		}
	}))
}

func TestAssembleSingleRecipientWithChange(t *testing.T) {
	srv := rpcServer(t, `[{"txid":"T0","vout":0,"amount":0.005,"asset":"`+assetID+`","spendable":true}]`, "0123456789abcdef0123456789abcdef")
	defer srv.Close()

	rpc := rpcclient.New(srv.URL, "u", "p", testEngine())
	result, err := Assemble(context.Background(), rpc, assetID,
		map[string]float64{"addr1": 0.001}, "change-addr", 0.0001)
	require.Nil(t, err)
	require.Len(t, result.Selected, 1)
	assert.Equal(t, "T0", result.Selected[0].TxID)
	assert.InDelta(t, 0.0039, result.Change, 1e-9)
	assert.NotEmpty(t, result.RawHex)
}

func TestAssembleZeroTotalIsValidationError(t *testing.T) {
	rpc := rpcclient.New("http://unused.invalid", "u", "p", testEngine())
	_, err := Assemble(context.Background(), rpc, assetID, map[string]float64{}, "change-addr", 0.0001)
	require.NotNil(t, err)
	assert.Equal(t, "Validation", err.Kind.String())
}

func TestCollectChangeFiltersByTxidAndAsset(t *testing.T) {
	srv := rpcServer(t, `[
		{"txid":"T1","vout":1,"amount":0.0049,"asset":"`+assetID+`","spendable":true},
		{"txid":"OTHER","vout":0,"amount":1.0,"asset":"`+assetID+`","spendable":true}
	]`, "")
	defer srv.Close()

	rpc := rpcclient.New(srv.URL, "u", "p", testEngine())
	change, err := CollectChange(context.Background(), rpc, "T1", assetID)
	require.Nil(t, err)
	require.Len(t, change, 1)
	assert.Equal(t, "T1", change[0].TxID)
}
