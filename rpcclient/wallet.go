package rpcclient

import (
	"context"

	"amp/errors"
	"amp/types"
)

// ListDescriptors calls listdescriptors(private), returning the wallet's
// configured output descriptors.
func (c *Client) ListDescriptors(ctx context.Context, private bool) ([]map[string]interface{}, *errors.Error) {
	var out struct {
		Descriptors []map[string]interface{} `json:"descriptors"`
	}
	if err := c.call(ctx, "listdescriptors", []interface{}{private}, &out); err != nil {
		return nil, err
	}
	return out.Descriptors, nil
}

// ImportDescriptor calls importdescriptors([descriptor]) with the single
// descriptor request spec.md §4.5 names.
func (c *Client) ImportDescriptor(ctx context.Context, descriptor map[string]interface{}) *errors.Error {
	return c.call(ctx, "importdescriptors", []interface{}{[]interface{}{descriptor}}, nil)
}

// GetWalletInfo calls getwalletinfo.
func (c *Client) GetWalletInfo(ctx context.Context) (map[string]interface{}, *errors.Error) {
	var out map[string]interface{}
	if err := c.call(ctx, "getwalletinfo", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetNewAddress calls getnewaddress, returning a fresh confidential address.
func (c *Client) GetNewAddress(ctx context.Context) (string, *errors.Error) {
	var address string
	if err := c.call(ctx, "getnewaddress", nil, &address); err != nil {
		return "", err
	}
	return address, nil
}

// rpcUnspent mirrors the node's listunspent entry shape before translation
// into types.Unspent.
type rpcUnspent struct {
	TxID          string  `json:"txid"`
	Vout          int     `json:"vout"`
	Address       string  `json:"address"`
	Amount        float64 `json:"amount"`
	Asset         string  `json:"asset"`
	Confirmations int     `json:"confirmations"`
	Spendable     bool    `json:"spendable"`
	ScriptPubKey  string  `json:"scriptPubKey"`
	RedeemScript  string  `json:"redeemScript"`
	WitnessScript string  `json:"witnessScript"`
	AmountBlinder string  `json:"amountblinder"`
	AssetBlinder  string  `json:"assetblinder"`
}

// ListUnspentQueryOptions mirrors the node's optional query_options object
// for listunspent (spec.md §4.5).
type ListUnspentQueryOptions struct {
	MinimumAmount    float64 `json:"minimumAmount,omitempty"`
	MinimumSumAmount float64 `json:"minimumSumAmount,omitempty"`
	MaximumCount     int     `json:"maximumCount,omitempty"`
}

// ListUnspent calls listunspent with spec.md §4.5's defaults
// (minconf=0, maxconf=9999999, addresses=[], include_unsafe=true).
func (c *Client) ListUnspent(ctx context.Context) ([]types.Unspent, *errors.Error) {
	var raw []rpcUnspent
	params := []interface{}{0, 9_999_999, []interface{}{}, true, ListUnspentQueryOptions{}}
	if err := c.call(ctx, "listunspent", params, &raw); err != nil {
		return nil, err
	}

	out := make([]types.Unspent, 0, len(raw))
	for _, u := range raw {
		confirmations := u.Confirmations
		out = append(out, types.Unspent{
			TxID:          u.TxID,
			Vout:          u.Vout,
			Amount:        u.Amount,
			Asset:         u.Asset,
			Address:       u.Address,
			Spendable:     u.Spendable,
			Confirmations: &confirmations,
			ScriptPubKey:  u.ScriptPubKey,
			RedeemScript:  u.RedeemScript,
			WitnessScript: u.WitnessScript,
			AmountBlinder: u.AmountBlinder,
			AssetBlinder:  u.AssetBlinder,
		})
	}
	return out, nil
}
