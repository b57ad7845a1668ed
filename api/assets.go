package api

import (
	"context"
	"net/url"
	"strconv"

	"amp/errors"
	"amp/types"
)

func (c *Client) ListAssets(ctx context.Context) ([]types.Asset, *errors.Error) {
	var out []types.Asset
	if err := c.do(ctx, "GET", "/assets", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAsset(ctx context.Context, uuid string) (types.Asset, *errors.Error) {
	var out types.Asset
	if err := c.do(ctx, "GET", "/assets/"+uuid, nil, nil, &out); err != nil {
		return types.Asset{}, err
	}
	return out, nil
}

func (c *Client) IssueAsset(ctx context.Context, req types.Issuance) (types.IssuanceResponse, *errors.Error) {
	var out types.IssuanceResponse
	if err := c.do(ctx, "POST", "/assets/issue", nil, req, &out); err != nil {
		return types.IssuanceResponse{}, err
	}
	return out, nil
}

func (c *Client) RegisterAsset(ctx context.Context, uuid string) (types.Asset, *errors.Error) {
	var out types.Asset
	if err := c.do(ctx, "POST", "/assets/"+uuid+"/register", nil, nil, &out); err != nil {
		return types.Asset{}, err
	}
	return out, nil
}

func (c *Client) RegisterAssetAsAuthorized(ctx context.Context, uuid string) (types.Asset, *errors.Error) {
	var out types.Asset
	if err := c.do(ctx, "POST", "/assets/"+uuid+"/register-authorized", nil, nil, &out); err != nil {
		return types.Asset{}, err
	}
	return out, nil
}

func (c *Client) EditAsset(ctx context.Context, uuid string, req types.EditAssetRequest) (types.Asset, *errors.Error) {
	var out types.Asset
	if err := c.do(ctx, "PUT", "/assets/"+uuid, nil, req, &out); err != nil {
		return types.Asset{}, err
	}
	return out, nil
}

func (c *Client) DeleteAsset(ctx context.Context, uuid string) *errors.Error {
	return c.do(ctx, "DELETE", "/assets/"+uuid, nil, nil, nil)
}

func (c *Client) LockAsset(ctx context.Context, uuid string) *errors.Error {
	return c.do(ctx, "POST", "/assets/"+uuid+"/lock", nil, nil, nil)
}

func (c *Client) UnlockAsset(ctx context.Context, uuid string) *errors.Error {
	return c.do(ctx, "POST", "/assets/"+uuid+"/unlock", nil, nil, nil)
}

func (c *Client) AssetSummary(ctx context.Context, uuid string) (map[string]interface{}, *errors.Error) {
	var out map[string]interface{}
	if err := c.do(ctx, "GET", "/assets/"+uuid+"/summary", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AssetBalance(ctx context.Context, uuid string) (int64, *errors.Error) {
	var out struct {
		Balance int64 `json:"balance"`
	}
	if err := c.do(ctx, "GET", "/assets/"+uuid+"/balance", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

func (c *Client) AssetOwnerships(ctx context.Context, uuid string) ([]types.RegisteredUser, *errors.Error) {
	var out []types.RegisteredUser
	if err := c.do(ctx, "GET", "/assets/"+uuid+"/ownerships", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssetTransactions lists a paged window of transactions touching uuid per
// spec §4.4's {start, count, height_start, height_stop, sortorder} params.
func (c *Client) AssetTransactions(ctx context.Context, uuid string, params types.ListParams) ([]types.DistributionTransaction, *errors.Error) {
	q := url.Values{}
	if params.Start != 0 {
		q.Set("start", strconv.Itoa(params.Start))
	}
	if params.Count != 0 {
		q.Set("count", strconv.Itoa(params.Count))
	}
	if params.HeightStart != 0 {
		q.Set("height_start", strconv.FormatInt(params.HeightStart, 10))
	}
	if params.HeightStop != 0 {
		q.Set("height_stop", strconv.FormatInt(params.HeightStop, 10))
	}
	if params.SortOrder != "" {
		q.Set("sortorder", params.SortOrder)
	}

	var out []types.DistributionTransaction
	if err := c.do(ctx, "GET", "/assets/"+uuid+"/transactions", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AssetLostOutputs(ctx context.Context, uuid string) ([]types.Unspent, *errors.Error) {
	var out []types.Unspent
	if err := c.do(ctx, "GET", "/assets/"+uuid+"/lost-outputs", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateBlinders(ctx context.Context, uuid string, req types.UpdateBlindersRequest) *errors.Error {
	return c.do(ctx, "POST", "/assets/"+uuid+"/update-blinders", nil, req, nil)
}

func (c *Client) GetAssetMemo(ctx context.Context, uuid string) (string, *errors.Error) {
	var out struct {
		Memo string `json:"memo"`
	}
	if err := c.do(ctx, "GET", "/assets/"+uuid+"/memo", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Memo, nil
}

func (c *Client) SetAssetMemo(ctx context.Context, uuid, memo string) *errors.Error {
	return c.do(ctx, "POST", "/assets/"+uuid+"/memo", nil, map[string]string{"memo": memo}, nil)
}
