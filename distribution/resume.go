package distribution

import (
	"context"

	"amp/api"
	"amp/coinselect"
	"amp/errors"
	"amp/rpcclient"
	"amp/types"
)

// ConfirmDistribution resumes a distribution whose transaction already
// broadcast successfully but whose AWAIT_CONFIRMATIONS or
// CONFIRM_SERVER_SIDE step did not complete (spec §4.9 step 7's resume
// variant). Re-entry needs the same TxData Distribute computed during
// SELECT_AND_BUILD — the caller is expected to have persisted it (e.g.
// alongside its own job record) the moment BROADCAST returned a txid, since
// spec.md's own resume signature (asset_uuid, distribution_uuid, txid) only
// identifies the transaction, not its vins/vouts; this module widens the
// resume entry point to accept the data explicitly rather than silently
// re-deriving it from node state, which would not reproduce the exact
// vout-to-recipient mapping the original SELECT_AND_BUILD chose. See
// DESIGN.md.
func ConfirmDistribution(
	ctx context.Context,
	backend api.Backend,
	rpc *rpcclient.Client,
	walletName string,
	assetUUID, distUUID, txid string,
	txData types.TxData,
	opts Options,
) (Result, *errors.Error) {
	walletRPC := rpc.Wallet(walletName)

	asset, err := backend.GetAsset(ctx, assetUUID)
	if err != nil {
		return Result{}, err.WithContext("distribution resume: RESOLVE_ASSET")
	}

	return finishAfterBroadcast(ctx, backend, walletRPC, assetUUID, distUUID, txid, txData, coinselect.Assembled{}, asset.AssetID, opts)
}
