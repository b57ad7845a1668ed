package coinselect

import (
	"context"

	"amp/errors"
	"amp/hexutil"
	"amp/rpcclient"
	"amp/types"
)

// Assembled is the result of Assemble: the raw unsigned transaction hex, the
// UTXOs it spends, and the change amount computed during assembly.
type Assembled struct {
	RawHex   string
	Selected []types.Unspent
	Change   float64
}

// Assemble builds an unsigned raw transaction spending enough of assetID to
// cover recipients, sending any leftover to changeAddress, per spec §4.7.2.
func Assemble(
	ctx context.Context,
	rpc *rpcclient.Client,
	assetID string,
	recipients map[string]float64,
	changeAddress string,
	fee float64,
) (Assembled, *errors.Error) {
	var requested float64
	for _, amount := range recipients {
		requested += amount
	}
	if requested == 0 {
		return Assembled{}, errors.Validation("Total distribution amount must be greater than zero")
	}

	selected, sum, err := Select(ctx, rpc, assetID, requested, fee)
	if err != nil {
		return Assembled{}, err
	}

	change := sum - requested - fee
	if change < 0 {
		// Select guarantees sum >= requested+fee; negative change here
		// would mean a coin-selection bug, not a user-correctable error.
		return Assembled{}, errors.Validation("coin selection returned insufficient funds after selection")
	}

	outputs := make(map[string]float64, len(recipients)+1)
	assets := make(map[string]string, len(recipients)+1)
	for addr, amount := range recipients {
		outputs[addr] = amount
		assets[addr] = assetID
	}
	if change > 0 {
		outputs[changeAddress] = change
		assets[changeAddress] = assetID
	}

	inputs := make([]types.TxVin, 0, len(selected))
	for _, u := range selected {
		inputs = append(inputs, types.TxVin{TxID: u.TxID, Vout: u.Vout})
	}

	rawHex, rerr := rpc.CreateRawTransaction(ctx, inputs, outputs, assets)
	if rerr != nil {
		return Assembled{}, rerr.WithContext("coinselect: createrawtransaction")
	}
	if verr := hexutil.Validate(rawHex); verr != nil {
		return Assembled{}, verr.WithContext("coinselect: validating assembled raw transaction")
	}

	return Assembled{RawHex: rawHex, Selected: selected, Change: change}, nil
}

// CollectChange queries the wallet for change UTXOs produced by txid, per
// spec §4.7.3: outputs of assetID, belonging to txid, that are spendable.
// The result may be empty; the server needs it regardless for ledger
// reconciliation.
func CollectChange(ctx context.Context, rpc *rpcclient.Client, txid, assetID string) ([]types.Unspent, *errors.Error) {
	all, err := rpc.ListUnspent(ctx)
	if err != nil {
		return nil, err.WithContext("coinselect: collecting change")
	}

	var out []types.Unspent
	for _, u := range all {
		if u.TxID == txid && u.Asset == assetID && u.Spendable {
			out = append(out, u)
		}
	}
	return out, nil
}
