package api

import (
	"context"

	"amp/errors"
	"amp/types"
)

func (c *Client) ValidateGAID(ctx context.Context, gaid string) (bool, *errors.Error) {
	var out struct {
		Valid bool `json:"is_valid"`
	}
	if err := c.do(ctx, "GET", "/gaids/"+gaid+"/validate", nil, nil, &out); err != nil {
		return false, err
	}
	return out.Valid, nil
}

func (c *Client) ResolveGAID(ctx context.Context, gaid string) (string, *errors.Error) {
	var out struct {
		Address string `json:"address"`
	}
	if err := c.do(ctx, "GET", "/gaids/"+gaid+"/address", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Address, nil
}

func (c *Client) LookupGAIDUser(ctx context.Context, gaid string) (types.RegisteredUser, *errors.Error) {
	var out types.RegisteredUser
	if err := c.do(ctx, "GET", "/gaids/"+gaid+"/registered_user", nil, nil, &out); err != nil {
		return types.RegisteredUser{}, err
	}
	return out, nil
}

func (c *Client) GAIDBalances(ctx context.Context, gaid string) (map[string]int64, *errors.Error) {
	var out map[string]int64
	if err := c.do(ctx, "GET", "/gaids/"+gaid+"/balances", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
