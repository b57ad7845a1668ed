package ampmock

import (
	"context"

	"github.com/google/uuid"

	"amp/errors"
)

func (m *Mock) Broadcast(ctx context.Context, signedHex string) (string, *errors.Error) {
	if signedHex == "" {
		return "", errors.Validation("signed transaction hex must not be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	txid := uuid.New().String()
	m.broadcasts[txid] = "pending"
	return txid, nil
}

func (m *Mock) BroadcastStatus(ctx context.Context, txid string) (string, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	status, ok := m.broadcasts[txid]
	if !ok {
		return "", notFound("broadcast", txid)
	}
	return status, nil
}
