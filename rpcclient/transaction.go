package rpcclient

import (
	"context"

	"amp/errors"
	"amp/types"
)

// GetTransaction calls gettransaction(txid, include_watchonly).
func (c *Client) GetTransaction(ctx context.Context, txid string, includeWatchonly bool) (map[string]interface{}, *errors.Error) {
	var out map[string]interface{}
	params := []interface{}{txid, includeWatchonly}
	if err := c.call(ctx, "gettransaction", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Confirmations extracts the integer "confirmations" field gettransaction
// returns, defaulting to 0 if absent.
func Confirmations(tx map[string]interface{}) int {
	v, ok := tx["confirmations"]
	if !ok {
		return 0
	}
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return int(f)
}

// CreateRawTransaction calls createrawtransaction(inputs, outputs, locktime,
// replaceable, assets) per spec.md §4.5's parameter order.
func (c *Client) CreateRawTransaction(
	ctx context.Context,
	inputs []types.TxVin,
	outputs map[string]float64,
	assets map[string]string,
) (string, *errors.Error) {
	rpcInputs := make([]map[string]interface{}, 0, len(inputs))
	for _, in := range inputs {
		rpcInputs = append(rpcInputs, map[string]interface{}{"txid": in.TxID, "vout": in.Vout})
	}

	params := []interface{}{rpcInputs, outputs, 0, false, assets}

	var hex string
	if err := c.call(ctx, "createrawtransaction", params, &hex); err != nil {
		return "", err
	}
	return hex, nil
}

// SendRawTransaction calls sendrawtransaction(hex), returning the txid the
// node assigns.
func (c *Client) SendRawTransaction(ctx context.Context, hex string) (string, *errors.Error) {
	var txid string
	if err := c.call(ctx, "sendrawtransaction", []interface{}{hex}, &txid); err != nil {
		return "", err
	}
	return txid, nil
}
