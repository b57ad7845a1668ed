// Package ampmock is an in-memory implementation of api.Backend for
// consumer testing (spec §4.4, §1's "mock API client used for consumer
// testing"), grounded on original_source/src/mock_client.rs's in-memory
// store keyed by uuid/id with the same create/list/get/edit/delete shape
// as the real API, and on the teacher's core/mockhsm.HSM idiom of a single
// mutex guarding a handful of maps (_examples/13401095975-chain/core/mockhsm/mockhsm.go).
package ampmock

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"amp/api"
	"amp/errors"
	"amp/types"
)

func itoaLocal(i int) string { return strconv.Itoa(i) }

// Mock is a single-process, in-memory stand-in for the platform. All state
// lives behind one mutex, exactly like the teacher's HSM.cache/cacheMu.
type Mock struct {
	mu sync.Mutex

	assets      map[string]types.Asset
	users       map[int]types.RegisteredUser
	userGAIDs   map[int][]types.GAID
	categories  map[int]types.Category
	assignments map[string]map[int]types.Assignment // assetUUID -> id -> Assignment
	distributions map[string]map[string]types.Distribution // assetUUID -> uuid -> Distribution
	managers    map[string]managerAccount
	broadcasts  map[string]string // txid -> status
	memos       map[string]string // assetUUID -> memo

	nextUserID       int
	nextCategoryID   int
	nextAssignmentID int
}

var _ api.Backend = (*Mock)(nil)

// New returns an empty Mock ready for use.
func New() *Mock {
	return &Mock{
		assets:        make(map[string]types.Asset),
		users:         make(map[int]types.RegisteredUser),
		userGAIDs:     make(map[int][]types.GAID),
		categories:    make(map[int]types.Category),
		assignments:   make(map[string]map[int]types.Assignment),
		distributions: make(map[string]map[string]types.Distribution),
		managers:      make(map[string]managerAccount),
		broadcasts:    make(map[string]string),
		memos:         make(map[string]string),
	}
}

func notFound(what, id string) *errors.Error {
	return errors.API(404, fmt.Sprintf("%s %s not found", what, id))
}

// --- Assets ---

func (m *Mock) ListAssets(ctx context.Context) ([]types.Asset, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Asset, 0, len(m.assets))
	for _, a := range m.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UUID < out[j].UUID })
	return out, nil
}

func (m *Mock) GetAsset(ctx context.Context, id string) (types.Asset, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return types.Asset{}, notFound("asset", id)
	}
	return a, nil
}

func (m *Mock) IssueAsset(ctx context.Context, req types.Issuance) (types.IssuanceResponse, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	assetUUID := uuid.New().String()
	assetID := uuid.New().String()
	m.assets[assetUUID] = types.Asset{
		UUID:      assetUUID,
		AssetID:   assetID,
		Name:      req.Name,
		Ticker:    req.Ticker,
		Precision: req.Precision,
		Domain:    req.Domain,
		PubKey:    req.PubKey,
	}
	m.assignments[assetUUID] = make(map[int]types.Assignment)
	m.distributions[assetUUID] = make(map[string]types.Distribution)
	return types.IssuanceResponse{AssetUUID: assetUUID, AssetID: assetID, TxID: uuid.New().String()}, nil
}

func (m *Mock) RegisterAsset(ctx context.Context, id string) (types.Asset, *errors.Error) {
	return m.setAssetFlag(id, func(a *types.Asset) { a.IsRegistered = true })
}

func (m *Mock) RegisterAssetAsAuthorized(ctx context.Context, id string) (types.Asset, *errors.Error) {
	return m.setAssetFlag(id, func(a *types.Asset) { a.IsRegistered, a.IsAuthorized = true, true })
}

func (m *Mock) setAssetFlag(id string, mutate func(*types.Asset)) (types.Asset, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return types.Asset{}, notFound("asset", id)
	}
	mutate(&a)
	m.assets[id] = a
	return a, nil
}

func (m *Mock) EditAsset(ctx context.Context, id string, req types.EditAssetRequest) (types.Asset, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return types.Asset{}, notFound("asset", id)
	}
	if req.Name != "" {
		a.Name = req.Name
	}
	if req.Ticker != "" {
		a.Ticker = req.Ticker
	}
	if req.Domain != "" {
		a.Domain = req.Domain
	}
	m.assets[id] = a
	return a, nil
}

func (m *Mock) DeleteAsset(ctx context.Context, id string) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[id]; !ok {
		return notFound("asset", id)
	}
	delete(m.assets, id)
	delete(m.assignments, id)
	delete(m.distributions, id)
	return nil
}

func (m *Mock) LockAsset(ctx context.Context, id string) *errors.Error {
	_, err := m.setAssetFlag(id, func(a *types.Asset) { a.IsLocked = true })
	return err
}

func (m *Mock) UnlockAsset(ctx context.Context, id string) *errors.Error {
	_, err := m.setAssetFlag(id, func(a *types.Asset) { a.IsLocked = false })
	return err
}

func (m *Mock) AssetSummary(ctx context.Context, id string) (map[string]interface{}, *errors.Error) {
	a, err := m.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"asset_uuid": a.UUID, "name": a.Name}, nil
}

func (m *Mock) AssetBalance(ctx context.Context, id string) (int64, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, dists := range m.distributions[id] {
		for _, tx := range dists.Transactions {
			for _, oa := range tx.OutputAssignments {
				total += oa.Amount
			}
		}
	}
	return total, nil
}

func (m *Mock) AssetOwnerships(ctx context.Context, id string) ([]types.RegisteredUser, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.RegisteredUser
	for _, u := range m.users {
		if u.GAID != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *Mock) AssetTransactions(ctx context.Context, id string, params types.ListParams) ([]types.DistributionTransaction, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.DistributionTransaction
	for _, d := range m.distributions[id] {
		out = append(out, d.Transactions...)
	}
	return out, nil
}

func (m *Mock) AssetLostOutputs(ctx context.Context, id string) ([]types.Unspent, *errors.Error) {
	return nil, nil
}

func (m *Mock) UpdateBlinders(ctx context.Context, id string, req types.UpdateBlindersRequest) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[id]; !ok {
		return notFound("asset", id)
	}
	return nil
}

func (m *Mock) GetAssetMemo(ctx context.Context, id string) (string, *errors.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.memos[id], nil
}

func (m *Mock) SetAssetMemo(ctx context.Context, id, memo string) *errors.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memos[id] = memo
	return nil
}
