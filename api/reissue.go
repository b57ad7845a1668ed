package api

import (
	"context"

	"amp/errors"
	"amp/types"
)

func (c *Client) RequestReissue(ctx context.Context, assetUUID string, req types.ReissueRequest) (types.TxData, *errors.Error) {
	var out types.TxData
	if err := c.do(ctx, "POST", "/assets/"+assetUUID+"/reissue", nil, req, &out); err != nil {
		return types.TxData{}, err
	}
	return out, nil
}

func (c *Client) ConfirmReissue(ctx context.Context, assetUUID string, req types.ReissueConfirm) *errors.Error {
	return c.do(ctx, "POST", "/assets/"+assetUUID+"/reissue/confirm", nil, req, nil)
}

func (c *Client) RequestBurn(ctx context.Context, assetUUID string, req types.BurnRequest) (types.TxData, *errors.Error) {
	var out types.TxData
	if err := c.do(ctx, "POST", "/assets/"+assetUUID+"/burn", nil, req, &out); err != nil {
		return types.TxData{}, err
	}
	return out, nil
}

func (c *Client) ConfirmBurn(ctx context.Context, assetUUID string, req types.BurnConfirm) *errors.Error {
	return c.do(ctx, "POST", "/assets/"+assetUUID+"/burn/confirm", nil, req, nil)
}
