package api

import (
	"context"
	"strconv"

	"amp/errors"
	"amp/types"
)

func (c *Client) ListAssignments(ctx context.Context, assetUUID string) ([]types.Assignment, *errors.Error) {
	var out []types.Assignment
	if err := c.do(ctx, "GET", "/assets/"+assetUUID+"/assignments", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAssignment(ctx context.Context, assetUUID string, id int) (types.Assignment, *errors.Error) {
	var out types.Assignment
	if err := c.do(ctx, "GET", "/assets/"+assetUUID+"/assignments/"+strconv.Itoa(id), nil, nil, &out); err != nil {
		return types.Assignment{}, err
	}
	return out, nil
}

func (c *Client) CreateAssignments(ctx context.Context, assetUUID string, req types.AssignmentCreateBody) ([]types.Assignment, *errors.Error) {
	var out []types.Assignment
	if err := c.do(ctx, "POST", "/assets/"+assetUUID+"/assignments/create", nil, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LockAssignment(ctx context.Context, assetUUID string, id int) *errors.Error {
	return c.do(ctx, "POST", "/assets/"+assetUUID+"/assignments/"+strconv.Itoa(id)+"/lock", nil, nil, nil)
}

func (c *Client) UnlockAssignment(ctx context.Context, assetUUID string, id int) *errors.Error {
	return c.do(ctx, "POST", "/assets/"+assetUUID+"/assignments/"+strconv.Itoa(id)+"/unlock", nil, nil, nil)
}

func (c *Client) DeleteAssignment(ctx context.Context, assetUUID string, id int) *errors.Error {
	return c.do(ctx, "DELETE", "/assets/"+assetUUID+"/assignments/"+strconv.Itoa(id), nil, nil, nil)
}
