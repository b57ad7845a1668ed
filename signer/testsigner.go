package signer

import (
	"context"
	"errors"
	"sync"
)

// Func adapts a plain function to Signer, grounded on
// original_source/tests/transaction_construction.rs's MockSigner variants
// (new_success, new_failure, with_return_value, with_expected_input)
// translated from a struct-of-options into a single closure-based adapter
// plus a thread-safe call counter, matching spec.md §9's "test doubles are
// parallel implementations" (no inheritance).
type Func struct {
	fn func(ctx context.Context, unsignedHex string) (string, error)

	mu    sync.Mutex
	calls int
}

// NewFunc wraps fn as a Signer.
func NewFunc(fn func(ctx context.Context, unsignedHex string) (string, error)) *Func {
	return &Func{fn: fn}
}

// Succeeding returns a Func that appends a fixed suffix to whatever hex it
// receives, mirroring MockSigner::new_success's
// `format!("{}deadbeefcafebabe1234567890abcdef", unsigned_tx)`.
func Succeeding() *Func {
	return NewFunc(func(ctx context.Context, unsignedHex string) (string, error) {
		return unsignedHex + "deadbeefcafebabe1234567890abcdef", nil
	})
}

// Failing returns a Func that always fails, mirroring MockSigner::new_failure.
func Failing(reason string) *Func {
	return NewFunc(func(ctx context.Context, unsignedHex string) (string, error) {
		return "", errors.New(reason)
	})
}

// WithReturnValue returns a Func that always returns signedHex regardless of
// input, mirroring MockSigner::with_return_value — used to exercise the
// orchestrator's rejection of malformed signer output.
func WithReturnValue(signedHex string) *Func {
	return NewFunc(func(ctx context.Context, unsignedHex string) (string, error) {
		return signedHex, nil
	})
}

// WithExpectedInput returns a Func that fails unless it is called with
// exactly expected, mirroring MockSigner::with_expected_input.
func WithExpectedInput(expected, signedHex string) *Func {
	return NewFunc(func(ctx context.Context, unsignedHex string) (string, error) {
		if unsignedHex != expected {
			return "", errors.New("unexpected input to signer")
		}
		return signedHex, nil
	})
}

func (f *Func) SignTransaction(ctx context.Context, unsignedHex string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.fn(ctx, unsignedHex)
}

// CallCount returns how many times SignTransaction has been invoked.
func (f *Func) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var _ Signer = (*Func)(nil)
