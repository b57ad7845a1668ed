package ampmock

import (
	"context"

	"amp/errors"
	"amp/types"
)

func (m *Mock) ValidateGAID(ctx context.Context, gaid string) (bool, *errors.Error) {
	return len(gaid) > 0, nil
}

func (m *Mock) ResolveGAID(ctx context.Context, gaid string) (string, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, gs := range m.userGAIDs {
		for _, g := range gs {
			if g.Value == gaid && g.Address != "" {
				return g.Address, nil
			}
		}
	}
	return "ex1q" + gaid, nil
}

func (m *Mock) LookupGAIDUser(ctx context.Context, gaid string) (types.RegisteredUser, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, gs := range m.userGAIDs {
		for _, g := range gs {
			if g.Value == gaid {
				return m.users[id], nil
			}
		}
	}
	return types.RegisteredUser{}, notFound("gaid", gaid)
}

func (m *Mock) GAIDBalances(ctx context.Context, gaid string) (map[string]int64, *errors.Error) {
	return map[string]int64{}, nil
}
