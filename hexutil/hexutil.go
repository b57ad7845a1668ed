// Package hexutil implements the hex validation every produced or consumed
// transaction hex string must pass, per spec.md §4.7.2's last paragraph:
// non-empty, even length, all characters in [0-9a-fA-F], and decoded length
// >= 10 bytes. Shared by signer (C6) and coinselect (C7) so both validate
// identically rather than each growing its own copy.
package hexutil

import (
	"encoding/hex"
	"strings"

	"amp/errors"
)

// minDecodedBytes is spec §4.7.2's minimum transaction size in decoded
// bytes; anything shorter cannot possibly be a real transaction.
const minDecodedBytes = 10

// Validate checks s against spec §4.7.2's hex rules.
func Validate(s string) *errors.Error {
	if s == "" {
		return errors.Validation("transaction hex must not be empty")
	}
	if len(s)%2 != 0 {
		return errors.Validation("transaction hex must have even length")
	}
	if strings.IndexFunc(s, notHexDigit) >= 0 {
		return errors.Validation("transaction hex must contain only [0-9a-fA-F]")
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return errors.Validation("transaction hex failed to decode: " + err.Error())
	}
	if len(decoded) < minDecodedBytes {
		return errors.Validation("transaction hex decodes to fewer than 10 bytes")
	}
	return nil
}

// ValidateSigned additionally enforces spec §4.7.2's signer-output rule:
// the signed hex must decode to a byte length >= the unsigned input's.
func ValidateSigned(signedHex, unsignedHex string) *errors.Error {
	if err := Validate(signedHex); err != nil {
		return err
	}
	signed, _ := hex.DecodeString(signedHex)
	unsigned, _ := hex.DecodeString(unsignedHex)
	if len(signed) < len(unsigned) {
		return errors.Validation("signed transaction shorter than input")
	}
	return nil
}

func notHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return false
	case r >= 'a' && r <= 'f':
		return false
	case r >= 'A' && r <= 'F':
		return false
	default:
		return true
	}
}
