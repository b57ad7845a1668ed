package api

import (
	"context"

	"amp/errors"
)

// Broadcast submits a signed transaction hex through the platform, which
// may itself re-broadcast it to the node, per spec §4.4.
func (c *Client) Broadcast(ctx context.Context, signedHex string) (string, *errors.Error) {
	var out struct {
		TxID string `json:"txid"`
	}
	body := map[string]string{"tx_hex": signedHex}
	if err := c.do(ctx, "POST", "/broadcast", nil, body, &out); err != nil {
		return "", err
	}
	return out.TxID, nil
}

func (c *Client) BroadcastStatus(ctx context.Context, txid string) (string, *errors.Error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, "GET", "/broadcast/"+txid, nil, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}
