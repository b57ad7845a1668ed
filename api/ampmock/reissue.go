package ampmock

import (
	"context"

	"github.com/google/uuid"

	"amp/errors"
	"amp/types"
)

func (m *Mock) RequestReissue(ctx context.Context, assetUUID string, req types.ReissueRequest) (types.TxData, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[assetUUID]; !ok {
		return types.TxData{}, notFound("asset", assetUUID)
	}
	return types.TxData{TxID: uuid.New().String()}, nil
}

func (m *Mock) ConfirmReissue(ctx context.Context, assetUUID string, req types.ReissueConfirm) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[assetUUID]; !ok {
		return notFound("asset", assetUUID)
	}
	return nil
}

func (m *Mock) RequestBurn(ctx context.Context, assetUUID string, req types.BurnRequest) (types.TxData, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[assetUUID]; !ok {
		return types.TxData{}, notFound("asset", assetUUID)
	}
	return types.TxData{TxID: uuid.New().String()}, nil
}

func (m *Mock) ConfirmBurn(ctx context.Context, assetUUID string, req types.BurnConfirm) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[assetUUID]; !ok {
		return notFound("asset", assetUUID)
	}
	return nil
}
