package distribution

import (
	"amp/coinselect"
	"amp/confirm"
	"amp/config"
)

// Options tunes a single Distribute call beyond its required arguments.
// DefaultOptions returns the production defaults; tests typically start
// from it and override Confirmation's timing to run in milliseconds.
type Options struct {
	// Fee is the flat amount, in the asset's display units, subtracted
	// from selected inputs before computing change (spec §4.9 step 4,
	// §9's open-question decision to keep fee a flat, overridable
	// constant applied before change computation).
	Fee float64

	// Confirmation controls AWAIT_CONFIRMATIONS's polling behavior.
	Confirmation confirm.Options

	// VerifyReservationEcho, when true, re-fetches the distribution
	// immediately after RESERVE_SERVER_SIDE and fails closed if the
	// server's echoed assignment set does not match what was requested,
	// per SPEC_FULL.md §10's first open-question decision. Off by
	// default: the platform is the source of truth for reservation
	// state, and most callers should not pay the extra round trip.
	VerifyReservationEcho bool
}

// DefaultOptions returns amp's production defaults: coinselect.DefaultFee
// and config.DefaultConfirmation().
func DefaultOptions() Options {
	return Options{
		Fee:          coinselect.DefaultFee,
		Confirmation: confirm.Options(config.DefaultConfirmation()),
	}
}
