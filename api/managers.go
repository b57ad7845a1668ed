package api

import (
	"context"

	"amp/errors"
	"amp/types"
)

func (c *Client) ListManagers(ctx context.Context) ([]string, *errors.Error) {
	var out []string
	if err := c.do(ctx, "GET", "/managers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateManager(ctx context.Context, req types.ManagerCreate) *errors.Error {
	return c.do(ctx, "POST", "/managers/add", nil, req, nil)
}

func (c *Client) EditManager(ctx context.Context, username string, req types.ManagerEdit) *errors.Error {
	return c.do(ctx, "PUT", "/managers/"+username, nil, req, nil)
}

func (c *Client) DeleteManager(ctx context.Context, username string) *errors.Error {
	return c.do(ctx, "DELETE", "/managers/"+username, nil, nil, nil)
}

func (c *Client) ChangeManagerPassword(ctx context.Context, username string, req types.ManagerPasswordChange) *errors.Error {
	return c.do(ctx, "POST", "/managers/"+username+"/change-password", nil, req, nil)
}

func (c *Client) LockManager(ctx context.Context, username string) *errors.Error {
	return c.do(ctx, "POST", "/managers/"+username+"/lock", nil, nil, nil)
}

func (c *Client) UnlockManager(ctx context.Context, username string) *errors.Error {
	return c.do(ctx, "POST", "/managers/"+username+"/unlock", nil, nil, nil)
}

func (c *Client) AddManagerAssetACL(ctx context.Context, username, assetUUID string) *errors.Error {
	return c.do(ctx, "POST", "/managers/"+username+"/assets/"+assetUUID+"/add", nil, nil, nil)
}

func (c *Client) RemoveManagerAssetACL(ctx context.Context, username, assetUUID string) *errors.Error {
	return c.do(ctx, "POST", "/managers/"+username+"/assets/"+assetUUID+"/remove", nil, nil, nil)
}
