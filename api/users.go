package api

import (
	"context"
	"strconv"

	"amp/errors"
	"amp/types"
)

func (c *Client) ListUsers(ctx context.Context) ([]types.RegisteredUser, *errors.Error) {
	var out []types.RegisteredUser
	if err := c.do(ctx, "GET", "/registered_users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (types.RegisteredUser, *errors.Error) {
	var out types.RegisteredUser
	if err := c.do(ctx, "GET", "/registered_users/"+strconv.Itoa(id), nil, nil, &out); err != nil {
		return types.RegisteredUser{}, err
	}
	return out, nil
}

func (c *Client) AddUser(ctx context.Context, req types.RegisteredUserAdd) (types.RegisteredUser, *errors.Error) {
	var out types.RegisteredUser
	if err := c.do(ctx, "POST", "/registered_users/add", nil, req, &out); err != nil {
		return types.RegisteredUser{}, err
	}
	return out, nil
}

func (c *Client) EditUser(ctx context.Context, id int, req types.RegisteredUserEdit) (types.RegisteredUser, *errors.Error) {
	var out types.RegisteredUser
	if err := c.do(ctx, "PUT", "/registered_users/"+strconv.Itoa(id), nil, req, &out); err != nil {
		return types.RegisteredUser{}, err
	}
	return out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) *errors.Error {
	return c.do(ctx, "DELETE", "/registered_users/"+strconv.Itoa(id), nil, nil, nil)
}

func (c *Client) UserSummary(ctx context.Context, id int) (map[string]interface{}, *errors.Error) {
	var out map[string]interface{}
	if err := c.do(ctx, "GET", "/registered_users/"+strconv.Itoa(id)+"/summary", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListUserGAIDs(ctx context.Context, id int) ([]types.GAID, *errors.Error) {
	var out []types.GAID
	if err := c.do(ctx, "GET", "/registered_users/"+strconv.Itoa(id)+"/gaids", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddUserGAID(ctx context.Context, id int, gaid string) (types.GAID, *errors.Error) {
	var out types.GAID
	body := map[string]string{"gaid": gaid}
	if err := c.do(ctx, "POST", "/registered_users/"+strconv.Itoa(id)+"/gaids/add", nil, body, &out); err != nil {
		return types.GAID{}, err
	}
	return out, nil
}

func (c *Client) SetDefaultGAID(ctx context.Context, id int, gaid string) *errors.Error {
	body := map[string]string{"gaid": gaid}
	return c.do(ctx, "POST", "/registered_users/"+strconv.Itoa(id)+"/gaids/default", nil, body, nil)
}

func (c *Client) AddUserToCategory(ctx context.Context, userID, categoryID int) *errors.Error {
	return c.do(ctx, "POST", "/categories/"+strconv.Itoa(categoryID)+"/registered_users/"+strconv.Itoa(userID)+"/add", nil, nil, nil)
}

func (c *Client) RemoveUserFromCategory(ctx context.Context, userID, categoryID int) *errors.Error {
	return c.do(ctx, "POST", "/categories/"+strconv.Itoa(categoryID)+"/registered_users/"+strconv.Itoa(userID)+"/remove", nil, nil, nil)
}
