package ampmock

import (
	"context"
	"sort"

	"amp/errors"
	"amp/types"
)

func (m *Mock) ListUsers(ctx context.Context) ([]types.RegisteredUser, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.RegisteredUser, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Mock) GetUser(ctx context.Context, id int) (types.RegisteredUser, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return types.RegisteredUser{}, notFound("user", itoaLocal(id))
	}
	return u, nil
}

func (m *Mock) AddUser(ctx context.Context, req types.RegisteredUserAdd) (types.RegisteredUser, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextUserID++
	id := m.nextUserID
	u := types.RegisteredUser{ID: id, Name: req.Name, IsCompany: req.IsCompany}
	if req.GAID != "" {
		u.GAID = &req.GAID
	}
	m.users[id] = u
	return u, nil
}

func (m *Mock) EditUser(ctx context.Context, id int, req types.RegisteredUserEdit) (types.RegisteredUser, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return types.RegisteredUser{}, notFound("user", itoaLocal(id))
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	m.users[id] = u
	return u, nil
}

func (m *Mock) DeleteUser(ctx context.Context, id int) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return notFound("user", itoaLocal(id))
	}
	delete(m.users, id)
	delete(m.userGAIDs, id)
	return nil
}

func (m *Mock) UserSummary(ctx context.Context, id int) (map[string]interface{}, *errors.Error) {
	u, err := m.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"id": u.ID, "name": u.Name}, nil
}

func (m *Mock) ListUserGAIDs(ctx context.Context, id int) ([]types.GAID, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userGAIDs[id], nil
}

func (m *Mock) AddUserGAID(ctx context.Context, id int, gaid string) (types.GAID, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := types.GAID{Value: gaid}
	m.userGAIDs[id] = append(m.userGAIDs[id], g)
	return g, nil
}

func (m *Mock) SetDefaultGAID(ctx context.Context, id int, gaid string) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return notFound("user", itoaLocal(id))
	}
	u.GAID = &gaid
	m.users[id] = u
	return nil
}

func (m *Mock) AddUserToCategory(ctx context.Context, userID, categoryID int) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[categoryID]
	if !ok {
		return notFound("category", itoaLocal(categoryID))
	}
	c.UserIDs = append(c.UserIDs, userID)
	m.categories[categoryID] = c
	return nil
}

func (m *Mock) RemoveUserFromCategory(ctx context.Context, userID, categoryID int) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[categoryID]
	if !ok {
		return notFound("category", itoaLocal(categoryID))
	}
	kept := c.UserIDs[:0]
	for _, id := range c.UserIDs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	c.UserIDs = kept
	m.categories[categoryID] = c
	return nil
}
