package ampmock

import (
	"context"
	"sort"

	"amp/errors"
	"amp/types"
)

func (m *Mock) ListCategories(ctx context.Context) ([]types.Category, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Mock) GetCategory(ctx context.Context, id int) (types.Category, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return types.Category{}, notFound("category", itoaLocal(id))
	}
	return c, nil
}

func (m *Mock) AddCategory(ctx context.Context, req types.CategoryAdd) (types.Category, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextCategoryID++
	id := m.nextCategoryID
	c := types.Category{ID: id, Name: req.Name, Description: req.Description}
	m.categories[id] = c
	return c, nil
}

func (m *Mock) EditCategory(ctx context.Context, id int, req types.CategoryEdit) (types.Category, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return types.Category{}, notFound("category", itoaLocal(id))
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Description != "" {
		c.Description = req.Description
	}
	m.categories[id] = c
	return c, nil
}

func (m *Mock) DeleteCategory(ctx context.Context, id int) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return notFound("category", itoaLocal(id))
	}
	delete(m.categories, id)
	return nil
}

func (m *Mock) AddCategoryAsset(ctx context.Context, categoryID int, assetUUID string) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[categoryID]
	if !ok {
		return notFound("category", itoaLocal(categoryID))
	}
	c.AssetUUIDs = append(c.AssetUUIDs, assetUUID)
	m.categories[categoryID] = c
	return nil
}

func (m *Mock) RemoveCategoryAsset(ctx context.Context, categoryID int, assetUUID string) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[categoryID]
	if !ok {
		return notFound("category", itoaLocal(categoryID))
	}
	kept := c.AssetUUIDs[:0]
	for _, a := range c.AssetUUIDs {
		if a != assetUUID {
			kept = append(kept, a)
		}
	}
	c.AssetUUIDs = kept
	m.categories[categoryID] = c
	return nil
}
