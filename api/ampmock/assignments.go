package ampmock

import (
	"context"
	"sort"

	"amp/errors"
	"amp/types"
)

func (m *Mock) assignmentsFor(assetUUID string) map[int]types.Assignment {
	a, ok := m.assignments[assetUUID]
	if !ok {
		a = make(map[int]types.Assignment)
		m.assignments[assetUUID] = a
	}
	return a
}

func (m *Mock) ListAssignments(ctx context.Context, assetUUID string) ([]types.Assignment, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Assignment, 0, len(m.assignments[assetUUID]))
	for _, a := range m.assignments[assetUUID] {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Mock) GetAssignment(ctx context.Context, assetUUID string, id int) (types.Assignment, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assignments[assetUUID][id]
	if !ok {
		return types.Assignment{}, notFound("assignment", itoaLocal(id))
	}
	return a, nil
}

func (m *Mock) CreateAssignments(ctx context.Context, assetUUID string, req types.AssignmentCreateBody) ([]types.Assignment, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[assetUUID]; !ok {
		return nil, notFound("asset", assetUUID)
	}
	bucket := m.assignmentsFor(assetUUID)
	out := make([]types.Assignment, 0, len(req.Assignments))
	for _, r := range req.Assignments {
		m.nextAssignmentID++
		a := types.Assignment{
			ID:                  m.nextAssignmentID,
			AssetUUID:           assetUUID,
			RegisteredUserID:    r.RegisteredUserID,
			Amount:              r.Amount,
			ReadyForDistribution: true,
		}
		bucket[a.ID] = a
		out = append(out, a)
	}
	return out, nil
}

func (m *Mock) LockAssignment(ctx context.Context, assetUUID string, id int) *errors.Error {
	return m.setAssignmentFlag(assetUUID, id, func(a *types.Assignment) { a.ReadyForDistribution = false })
}

func (m *Mock) UnlockAssignment(ctx context.Context, assetUUID string, id int) *errors.Error {
	return m.setAssignmentFlag(assetUUID, id, func(a *types.Assignment) { a.ReadyForDistribution = true })
}

func (m *Mock) setAssignmentFlag(assetUUID string, id int, mutate func(*types.Assignment)) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assignments[assetUUID][id]
	if !ok {
		return notFound("assignment", itoaLocal(id))
	}
	mutate(&a)
	m.assignments[assetUUID][id] = a
	return nil
}

func (m *Mock) DeleteAssignment(ctx context.Context, assetUUID string, id int) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assignments[assetUUID][id]; !ok {
		return notFound("assignment", itoaLocal(id))
	}
	delete(m.assignments[assetUUID], id)
	return nil
}
