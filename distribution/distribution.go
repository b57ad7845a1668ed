// Package distribution is amp's distribution orchestrator (C9, THE CORE of
// this module): the multi-step state machine that plans, funds, builds,
// signs, broadcasts, confirms, and reconciles a distribution transaction
// across the platform's HTTP API and the blockchain node's JSON-RPC, with
// partial-failure recovery (spec §4.9).
//
// Styled after the teacher's core/transact.go build/submit/finalizeTxWait
// sequencing and its cancelReservation best-effort cleanup
// (_examples/13401095975-chain/core/transact.go), generalized from a single
// protocol.Chain backend to two independent backends (api.Backend,
// rpcclient.Client) bound together by one sequential procedure — spec §9's
// "the orchestrator is one sequential async procedure; concurrency exists
// only across distinct orchestrator invocations."
package distribution

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"amp/api"
	"amp/coinselect"
	"amp/confirm"
	"amp/errors"
	"amp/hexutil"
	"amp/internal/logging"
	"amp/rpcclient"
	"amp/signer"
	"amp/types"
)

var log = logging.For("distribution")

// Request is one (user, destination, amount) entry in a distribution plan,
// the element type of distribute_asset's assignments parameter (spec §4.9).
type Request struct {
	UserID    int
	Address   string
	AmountBTC float64
}

// Result is the outcome of a successfully completed Distribute.
type Result struct {
	DistributionUUID string
	TxID             string
	Change           []types.Unspent
}

// Distribute implements spec §4.9's state machine end to end:
// VALIDATE_INPUTS -> RESERVE_SERVER_SIDE -> RESOLVE_ASSET -> SELECT_AND_BUILD
// -> SIGN -> BROADCAST -> AWAIT_CONFIRMATIONS -> COLLECT_CHANGE ->
// CONFIRM_SERVER_SIDE -> DONE.
//
// Asset resolution (the precision needed to convert each request's BTC
// amount into the smallest-unit amounts this backend's assignment-creation
// endpoint requires) is fetched before the server-side reservation call
// rather than after, reordering spec §4.9's steps 2/3: GetAsset has no side
// effects, so running it first is observably identical to running it
// second except that a caller who only wants to see "does this asset even
// exist" surface before the reservation attempt gets that for free. See
// DESIGN.md.
func Distribute(
	ctx context.Context,
	backend api.Backend,
	rpc *rpcclient.Client,
	walletName string,
	sign signer.Signer,
	assetUUID string,
	requests []Request,
	opts Options,
) (Result, *errors.Error) {
	if err := validateInputs(assetUUID, requests); err != nil {
		return Result{}, err
	}

	asset, err := backend.GetAsset(ctx, assetUUID)
	if err != nil {
		return Result{}, err.WithContext("distribution: RESOLVE_ASSET")
	}

	distUUID, err := reserveServerSide(ctx, backend, assetUUID, asset, requests, opts)
	if err != nil {
		return Result{}, err.WithContext("distribution: RESERVE_SERVER_SIDE")
	}

	walletRPC := rpc.Wallet(walletName)

	recipients := map[string]float64{}
	for _, r := range requests {
		recipients[r.Address] += r.AmountBTC
	}

	changeAddress, err := walletRPC.GetNewAddress(ctx)
	if err != nil {
		return Result{}, err.WithContext("distribution: SELECT_AND_BUILD: getnewaddress")
	}

	assembled, err := coinselect.Assemble(ctx, walletRPC, asset.AssetID, recipients, changeAddress, opts.Fee)
	if err != nil {
		return Result{}, err.WithContext("distribution: SELECT_AND_BUILD")
	}

	signedHex, serr := sign.SignTransaction(ctx, assembled.RawHex)
	if serr != nil {
		return Result{}, errors.Signer(serr.Error()).WithContext("distribution: SIGN")
	}
	if verr := hexutil.ValidateSigned(signedHex, assembled.RawHex); verr != nil {
		return Result{}, verr.WithContext("distribution: SIGN")
	}

	// Once BROADCAST has returned a txid, every error carries the txid and
	// distribution uuid (spec §4.9's post-broadcast failure model): the
	// on-chain effect is final and the caller must be able to resume. A
	// failed BROADCAST call itself has no txid and carries neither.
	txid, err := walletRPC.SendRawTransaction(ctx, signedHex)
	if err != nil {
		return Result{}, err.WithContext("distribution: BROADCAST")
	}
	log.Info("broadcast distribution transaction", "txid", txid, "distribution_uuid", distUUID)

	txData := buildTxData(txid, signedHex, assembled, recipients, changeAddress, asset.AssetID, asset.Precision)

	return finishAfterBroadcast(ctx, backend, walletRPC, assetUUID, distUUID, txid, txData, assembled, asset.AssetID, opts)
}

// finishAfterBroadcast runs AWAIT_CONFIRMATIONS -> COLLECT_CHANGE ->
// CONFIRM_SERVER_SIDE, shared between Distribute's first pass and
// ConfirmDistribution's resume path (spec §4.9 step 7's "resume variant...
// reuses steps 7-9").
func finishAfterBroadcast(
	ctx context.Context,
	backend api.Backend,
	walletRPC *rpcclient.Client,
	assetUUID, distUUID, txid string,
	txData types.TxData,
	assembled coinselect.Assembled,
	assetID string,
	opts Options,
) (Result, *errors.Error) {
	if _, err := confirm.WaitForConfirmations(ctx, walletRPC, txid, opts.Confirmation); err != nil {
		return Result{}, errors.WithTxContext(err, txid, distUUID).WithContext("distribution: AWAIT_CONFIRMATIONS")
	}

	change, err := coinselect.CollectChange(ctx, walletRPC, txid, assetID)
	if err != nil {
		return Result{}, errors.WithTxContext(err, txid, distUUID).WithContext("distribution: COLLECT_CHANGE")
	}

	if _, err := backend.ConfirmDistribution(ctx, assetUUID, distUUID, types.DistributionConfirm{TxData: txData, Change: change}); err != nil {
		// Preserve err's own Kind/Status (Api, Network, Serde, ...) rather
		// than forcing it into an Api{status:0} — a retry-budget-exhausted
		// transport failure here is still retryable, and IsRetryable()
		// must see that through CONFIRM_SERVER_SIDE's failure. The txid
		// and retry-safety note are layered on as additional context.
		note := fmt.Sprintf("confirming distribution %s for tx %s failed; retrying confirm-server-side is safe", distUUID, txid)
		return Result{}, errors.WithTxContext(err, txid, distUUID).WithContext(note).WithContext("distribution: CONFIRM_SERVER_SIDE")
	}

	return Result{DistributionUUID: distUUID, TxID: txid, Change: change}, nil
}

func reserveServerSide(ctx context.Context, backend api.Backend, assetUUID string, asset types.Asset, requests []Request, opts Options) (string, *errors.Error) {
	assignmentReqs := make([]types.AssignmentRequest, 0, len(requests))
	for _, r := range requests {
		assignmentReqs = append(assignmentReqs, types.AssignmentRequest{
			RegisteredUserID: r.UserID,
			Amount:           toSmallestUnits(r.AmountBTC, asset.Precision),
		})
	}

	created, err := backend.CreateAssignments(ctx, assetUUID, types.AssignmentCreateBody{Assignments: assignmentReqs})
	if err != nil {
		return "", err
	}

	ids := make([]int, 0, len(created))
	for _, a := range created {
		ids = append(ids, a.ID)
	}

	dist, err := backend.CreateDistribution(ctx, assetUUID, ids)
	if err != nil {
		return "", err
	}

	if opts.VerifyReservationEcho {
		if verr := verifyReservationEcho(ctx, backend, assetUUID, dist.UUID, ids); verr != nil {
			return "", verr
		}
	}

	return dist.UUID, nil
}

// verifyReservationEcho re-fetches the distribution the platform just
// created and fails closed if it does not list exactly the assignment ids
// requested, per SPEC_FULL.md §10's first open-question decision (off by
// default via Options.VerifyReservationEcho).
func verifyReservationEcho(ctx context.Context, backend api.Backend, assetUUID, distUUID string, wantIDs []int) *errors.Error {
	assignments, err := backend.ListAssignments(ctx, assetUUID)
	if err != nil {
		return err.WithContext("verifying reservation echo")
	}

	got := map[int]bool{}
	for _, a := range assignments {
		if a.DistributionUUID == distUUID {
			got[a.ID] = true
		}
	}
	for _, id := range wantIDs {
		if !got[id] {
			return errors.Validation(fmt.Sprintf("reservation echo mismatch: assignment %d not reflected in distribution %s", id, distUUID))
		}
	}
	if len(got) != len(wantIDs) {
		return errors.Validation(fmt.Sprintf("reservation echo mismatch: distribution %s lists %d assignments, %d requested", distUUID, len(got), len(wantIDs)))
	}
	return nil
}

func toSmallestUnits(amountBTC float64, precision int) int64 {
	scale := math.Pow(10, float64(precision))
	return int64(math.Round(amountBTC * scale))
}

func buildTxData(txid, signedHex string, assembled coinselect.Assembled, recipients map[string]float64, changeAddress, assetID string, precision int) types.TxData {
	vins := make([]types.TxVin, 0, len(assembled.Selected))
	for _, u := range assembled.Selected {
		vins = append(vins, types.TxVin{TxID: u.TxID, Vout: u.Vout})
	}

	vouts := make([]types.TxVout, 0, len(recipients)+1)
	for addr, amount := range recipients {
		vouts = append(vouts, types.TxVout{Address: addr, Amount: toSmallestUnits(amount, precision), Asset: assetID})
	}
	if assembled.Change > 0 {
		vouts = append(vouts, types.TxVout{Address: changeAddress, Amount: toSmallestUnits(assembled.Change, precision), Asset: assetID})
	}

	return types.TxData{TxID: txid, Hex: signedHex, Vins: vins, Vouts: vouts}
}

func validateInputs(assetUUID string, requests []Request) *errors.Error {
	if _, err := uuid.Parse(assetUUID); err != nil {
		return errors.ValidationField("asset_uuid", "must be a valid UUID")
	}
	if len(requests) == 0 {
		return errors.Validation("assignments must not be empty")
	}
	for i, r := range requests {
		if r.UserID == 0 {
			return errors.ValidationField(fmt.Sprintf("assignments[%d].user_id", i), "must not be empty")
		}
		if r.Address == "" {
			return errors.ValidationField(fmt.Sprintf("assignments[%d].address", i), "must not be empty")
		}
		if r.AmountBTC <= 0 {
			return errors.ValidationField(fmt.Sprintf("assignments[%d].amount", i), "must be greater than zero")
		}
	}
	return nil
}
