package ampmock

import (
	"context"
	"sort"

	"amp/errors"
	"amp/types"
)

// managerAccount holds the fields CreateManager/EditManager/
// ChangeManagerPassword each own a distinct slice of: EditManager must not
// reach into Password, and ChangeManagerPassword must not reach into
// IsAdmin.
type managerAccount struct {
	Password string
	IsAdmin  bool
}

func (m *Mock) ListManagers(ctx context.Context) ([]string, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.managers))
	for u := range m.managers {
		out = append(out, u)
	}
	sort.Strings(out)
	return out, nil
}

func (m *Mock) CreateManager(ctx context.Context, req types.ManagerCreate) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.managers[req.Username]; ok {
		return errors.Validation("manager already exists")
	}
	m.managers[req.Username] = managerAccount{Password: req.Password, IsAdmin: req.IsAdmin}
	return nil
}

func (m *Mock) EditManager(ctx context.Context, username string, req types.ManagerEdit) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.managers[username]
	if !ok {
		return notFound("manager", username)
	}
	acc.IsAdmin = req.IsAdmin
	m.managers[username] = acc
	return nil
}

func (m *Mock) DeleteManager(ctx context.Context, username string) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.managers[username]; !ok {
		return notFound("manager", username)
	}
	delete(m.managers, username)
	return nil
}

func (m *Mock) ChangeManagerPassword(ctx context.Context, username string, req types.ManagerPasswordChange) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.managers[username]
	if !ok {
		return notFound("manager", username)
	}
	acc.Password = req.NewPassword
	m.managers[username] = acc
	return nil
}

func (m *Mock) LockManager(ctx context.Context, username string) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.managers[username]; !ok {
		return notFound("manager", username)
	}
	return nil
}

func (m *Mock) UnlockManager(ctx context.Context, username string) *errors.Error {
	return m.LockManager(ctx, username)
}

func (m *Mock) AddManagerAssetACL(ctx context.Context, username, assetUUID string) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.managers[username]; !ok {
		return notFound("manager", username)
	}
	if _, ok := m.assets[assetUUID]; !ok {
		return notFound("asset", assetUUID)
	}
	return nil
}

func (m *Mock) RemoveManagerAssetACL(ctx context.Context, username, assetUUID string) *errors.Error {
	return m.AddManagerAssetACL(ctx, username, assetUUID)
}
