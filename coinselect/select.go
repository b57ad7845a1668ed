// Package coinselect implements UTXO coin selection and raw-transaction
// assembly (spec §4.7), the on-chain half of a distribution: picking
// confidential outputs of a specific asset to cover an amount, building a
// partially-signed transaction, and collecting post-confirmation change
// data.
//
// Styled after the teacher's api/utxodb (_examples/13401095975-chain/api/utxodb):
// the same ErrInsufficient-shaped naming and largest-first sort.Sort
// idiom, generalized here from a stateful in-memory reservation pool (with
// expiring heap-based reservations) to the stateless greedy selector spec.md
// actually specifies, since amp never locally reserves UTXOs — the node and
// platform are authoritative. Exact behavior and error strings are grounded
// on original_source/tests/transaction_construction.rs's
// test_utxo_selection_* suite.
package coinselect

import (
	"context"
	"fmt"
	"sort"

	"amp/errors"
	"amp/internal/logging"
	"amp/rpcclient"
	"amp/types"
)

var log = logging.For("coinselect")

// DefaultFee is the flat fee amp applies absent an explicit override, per
// spec §4.9 step 4 ("a conservative flat fee ... default 0.1 base units")
// and §9's open-question decision to keep fee selection a flat constant
// that always applies before change computation.
const DefaultFee = 0.1

// byAmountDescending sorts Unspent values largest-first, matching the
// teacher's utxodb.byKeyUTXO sort-type idiom.
type byAmountDescending []types.Unspent

func (u byAmountDescending) Len() int      { return len(u) }
func (u byAmountDescending) Swap(i, j int) { u[i], u[j] = u[j], u[i] }
func (u byAmountDescending) Less(i, j int) bool { return u[i].Amount > u[j].Amount }

// Select implements spec §4.7.1's largest-first greedy algorithm: list the
// wallet's UTXOs, filter to the requested asset's spendable outputs, sort
// descending by amount, and greedily accumulate until the sum covers
// amount+fee.
func Select(ctx context.Context, rpc *rpcclient.Client, assetID string, amount, fee float64) ([]types.Unspent, float64, *errors.Error) {
	all, err := rpc.ListUnspent(ctx)
	if err != nil {
		return nil, 0, err.WithContext("coinselect: listing unspent outputs")
	}

	var candidates []types.Unspent
	for _, u := range all {
		if u.Asset == assetID && u.Spendable {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		return nil, 0, errors.Validation(fmt.Sprintf("No spendable UTXOs for asset %s", assetID))
	}

	sort.Sort(byAmountDescending(candidates))

	need := amount + fee
	var selected []types.Unspent
	var sum float64
	for _, u := range candidates {
		if sum >= need {
			break
		}
		selected = append(selected, u)
		sum += u.Amount
	}

	if sum < need {
		return nil, 0, errors.Validation(fmt.Sprintf("Insufficient UTXOs (have %v, need %v)", sum, need))
	}

	log.Debug("selected utxos", "count", len(selected), "sum", sum, "need", need)
	return selected, sum, nil
}
