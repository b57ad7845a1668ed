// Package signer defines the capability amp's distribution orchestrator
// delegates transaction signing to (spec §4.6). Signer is a single-method
// interface — no inheritance, test doubles are parallel implementations
// (spec §9) — styled after the teacher's core/blocksigner.Signer (a small
// type wrapping a key handle behind one verb-shaped method plus a String()
// for logging) and after the capability-interface pattern in
// _examples/Jason-chen-taiwan-arcSignv2/src/chainadapter's provider
// interfaces.
//
// Key-derivation internals of any real signer are explicitly out of scope
// (spec.md §1); this package specifies only the contract and the on-disk
// mnemonic store described in spec.md §6.
package signer

import "context"

// Signer takes an unsigned transaction's hex encoding and returns its signed
// hex encoding. Implementations may be invoked from multiple goroutines
// concurrently and are responsible for any internal locking (spec §4.6).
type Signer interface {
	SignTransaction(ctx context.Context, unsignedHex string) (string, error)
}
