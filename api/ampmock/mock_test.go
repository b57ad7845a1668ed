package ampmock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amp/types"
)

func TestIssueListGetAsset(t *testing.T) {
	m := New()
	ctx := context.Background()

	issued, err := m.IssueAsset(ctx, types.Issuance{Name: "Widget", Ticker: "WDG", Precision: 2})
	require.Nil(t, err)

	assets, err := m.ListAssets(ctx)
	require.Nil(t, err)
	require.Len(t, assets, 1)

	got, err := m.GetAsset(ctx, issued.AssetUUID)
	require.Nil(t, err)
	assert.Equal(t, "Widget", got.Name)
}

func TestGetAssetNotFoundSurfacesAPIError(t *testing.T) {
	m := New()
	_, err := m.GetAsset(context.Background(), "nope")
	require.NotNil(t, err)
	assert.Equal(t, "Api", err.Kind.String())
}

func TestFullAssignmentToDistributionLifecycle(t *testing.T) {
	m := New()
	ctx := context.Background()

	asset, err := m.IssueAsset(ctx, types.Issuance{Name: "Widget"})
	require.Nil(t, err)

	user, err := m.AddUser(ctx, types.RegisteredUserAdd{Name: "Alice"})
	require.Nil(t, err)

	assignments, err := m.CreateAssignments(ctx, asset.AssetUUID, types.AssignmentCreateBody{
		Assignments: []types.AssignmentRequest{{RegisteredUserID: user.ID, Amount: 500}},
	})
	require.Nil(t, err)
	require.Len(t, assignments, 1)

	dist, err := m.CreateDistribution(ctx, asset.AssetUUID, []int{assignments[0].ID})
	require.Nil(t, err)
	assert.Equal(t, types.DistributionUnconfirmed, dist.Status)

	confirmed, err := m.ConfirmDistribution(ctx, asset.AssetUUID, dist.UUID, types.DistributionConfirm{
		TxData: types.TxData{TxID: "abc123"},
	})
	require.Nil(t, err)
	assert.Equal(t, types.DistributionConfirmed, confirmed.Status)
	require.Len(t, confirmed.Transactions, 1)
	assert.Equal(t, int64(500), confirmed.Transactions[0].OutputAssignments[0].Amount)

	balance, err := m.AssetBalance(ctx, asset.AssetUUID)
	require.Nil(t, err)
	assert.Equal(t, int64(500), balance)
}

func TestCreateDistributionRejectsAssignmentNotReady(t *testing.T) {
	m := New()
	ctx := context.Background()

	asset, _ := m.IssueAsset(ctx, types.Issuance{Name: "Widget"})
	user, _ := m.AddUser(ctx, types.RegisteredUserAdd{Name: "Bob"})
	assignments, _ := m.CreateAssignments(ctx, asset.AssetUUID, types.AssignmentCreateBody{
		Assignments: []types.AssignmentRequest{{RegisteredUserID: user.ID, Amount: 10}},
	})
	require.Nil(t, m.LockAssignment(ctx, asset.AssetUUID, assignments[0].ID))

	_, err := m.CreateDistribution(ctx, asset.AssetUUID, []int{assignments[0].ID})
	require.NotNil(t, err)
	assert.Equal(t, "Validation", err.Kind.String())
}

func TestBroadcastRejectsEmptyHex(t *testing.T) {
	m := New()
	_, err := m.Broadcast(context.Background(), "")
	require.NotNil(t, err)
	assert.Equal(t, "Validation", err.Kind.String())
}
