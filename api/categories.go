package api

import (
	"context"
	"strconv"

	"amp/errors"
	"amp/types"
)

func (c *Client) ListCategories(ctx context.Context) ([]types.Category, *errors.Error) {
	var out []types.Category
	if err := c.do(ctx, "GET", "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCategory(ctx context.Context, id int) (types.Category, *errors.Error) {
	var out types.Category
	if err := c.do(ctx, "GET", "/categories/"+strconv.Itoa(id), nil, nil, &out); err != nil {
		return types.Category{}, err
	}
	return out, nil
}

func (c *Client) AddCategory(ctx context.Context, req types.CategoryAdd) (types.Category, *errors.Error) {
	var out types.Category
	if err := c.do(ctx, "POST", "/categories/add", nil, req, &out); err != nil {
		return types.Category{}, err
	}
	return out, nil
}

func (c *Client) EditCategory(ctx context.Context, id int, req types.CategoryEdit) (types.Category, *errors.Error) {
	var out types.Category
	if err := c.do(ctx, "PUT", "/categories/"+strconv.Itoa(id), nil, req, &out); err != nil {
		return types.Category{}, err
	}
	return out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int) *errors.Error {
	return c.do(ctx, "DELETE", "/categories/"+strconv.Itoa(id), nil, nil, nil)
}

func (c *Client) AddCategoryAsset(ctx context.Context, categoryID int, assetUUID string) *errors.Error {
	return c.do(ctx, "POST", "/categories/"+strconv.Itoa(categoryID)+"/assets/"+assetUUID+"/add", nil, nil, nil)
}

func (c *Client) RemoveCategoryAsset(ctx context.Context, categoryID int, assetUUID string) *errors.Error {
	return c.do(ctx, "POST", "/categories/"+strconv.Itoa(categoryID)+"/assets/"+assetUUID+"/remove", nil, nil, nil)
}
