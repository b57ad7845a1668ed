package ampmock

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"amp/errors"
	"amp/types"
)

func (m *Mock) distributionsFor(assetUUID string) map[string]types.Distribution {
	d, ok := m.distributions[assetUUID]
	if !ok {
		d = make(map[string]types.Distribution)
		m.distributions[assetUUID] = d
	}
	return d
}

func (m *Mock) CreateDistribution(ctx context.Context, assetUUID string, assignmentIDs []int) (types.Distribution, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket := m.assignmentsFor(assetUUID)
	for _, id := range assignmentIDs {
		a, ok := bucket[id]
		if !ok {
			return types.Distribution{}, notFound("assignment", itoaLocal(id))
		}
		if !a.ReadyForDistribution || a.IsDistributed {
			return types.Distribution{}, errors.Validation("assignment is not ready for distribution")
		}
	}

	distUUID := uuid.New().String()
	for _, id := range assignmentIDs {
		a := bucket[id]
		a.DistributionUUID = distUUID
		bucket[id] = a
	}

	dist := types.Distribution{UUID: distUUID, Status: types.DistributionUnconfirmed}
	m.distributionsFor(assetUUID)[distUUID] = dist
	return dist, nil
}

func (m *Mock) ConfirmDistribution(ctx context.Context, assetUUID, distUUID string, req types.DistributionConfirm) (types.Distribution, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dist, ok := m.distributions[assetUUID][distUUID]
	if !ok {
		return types.Distribution{}, notFound("distribution", distUUID)
	}

	var outputs []types.DistributionOutputAssignment
	bucket := m.assignmentsFor(assetUUID)
	for id, a := range bucket {
		if a.DistributionUUID != distUUID {
			continue
		}
		a.IsDistributed = true
		bucket[id] = a
		outputs = append(outputs, types.DistributionOutputAssignment{RegisteredUserID: a.RegisteredUserID, Amount: a.Amount})
	}
	sort.Slice(outputs, func(i, j int) bool { return outputs[i].RegisteredUserID < outputs[j].RegisteredUserID })

	dist.Status = types.DistributionConfirmed
	dist.Transactions = []types.DistributionTransaction{{
		TxID:              req.TxData.TxID,
		Status:            "CONFIRMED",
		OutputAssignments: outputs,
	}}
	m.distributions[assetUUID][distUUID] = dist
	return dist, nil
}

func (m *Mock) CancelDistribution(ctx context.Context, assetUUID, distUUID string) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.distributions[assetUUID][distUUID]; !ok {
		return notFound("distribution", distUUID)
	}
	delete(m.distributions[assetUUID], distUUID)
	for id, a := range m.assignments[assetUUID] {
		if a.DistributionUUID == distUUID {
			a.DistributionUUID = ""
			m.assignments[assetUUID][id] = a
		}
	}
	return nil
}

func (m *Mock) ListDistributions(ctx context.Context, assetUUID string) ([]types.Distribution, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Distribution, 0, len(m.distributions[assetUUID]))
	for _, d := range m.distributions[assetUUID] {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UUID < out[j].UUID })
	return out, nil
}

func (m *Mock) GetDistribution(ctx context.Context, assetUUID, distUUID string) (types.Distribution, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.distributions[assetUUID][distUUID]
	if !ok {
		return types.Distribution{}, notFound("distribution", distUUID)
	}
	return d, nil
}
