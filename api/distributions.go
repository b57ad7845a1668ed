package api

import (
	"context"

	"amp/errors"
	"amp/types"
)

// CreateDistribution reserves the given assignments into one distribution,
// the RESERVE_SERVER_SIDE step of spec §4.9's state machine.
func (c *Client) CreateDistribution(ctx context.Context, assetUUID string, assignmentIDs []int) (types.Distribution, *errors.Error) {
	var out types.Distribution
	body := map[string]interface{}{"assignments": assignmentIDs}
	if err := c.do(ctx, "POST", "/assets/"+assetUUID+"/distributions/create", nil, body, &out); err != nil {
		return types.Distribution{}, err
	}
	return out, nil
}

// ConfirmDistribution submits the signed transaction data and any resulting
// change UTXOs, the CONFIRM_SERVER_SIDE step of spec §4.9.
func (c *Client) ConfirmDistribution(ctx context.Context, assetUUID, distUUID string, req types.DistributionConfirm) (types.Distribution, *errors.Error) {
	var out types.Distribution
	if err := c.do(ctx, "POST", "/assets/"+assetUUID+"/distributions/"+distUUID+"/confirm", nil, req, &out); err != nil {
		return types.Distribution{}, err
	}
	return out, nil
}

func (c *Client) CancelDistribution(ctx context.Context, assetUUID, distUUID string) *errors.Error {
	return c.do(ctx, "POST", "/assets/"+assetUUID+"/distributions/"+distUUID+"/cancel", nil, nil, nil)
}

func (c *Client) ListDistributions(ctx context.Context, assetUUID string) ([]types.Distribution, *errors.Error) {
	var out []types.Distribution
	if err := c.do(ctx, "GET", "/assets/"+assetUUID+"/distributions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDistribution(ctx context.Context, assetUUID, distUUID string) (types.Distribution, *errors.Error) {
	var out types.Distribution
	if err := c.do(ctx, "GET", "/assets/"+assetUUID+"/distributions/"+distUUID, nil, nil, &out); err != nil {
		return types.Distribution{}, err
	}
	return out, nil
}
