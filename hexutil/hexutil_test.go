package hexutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedHex(t *testing.T) {
	err := Validate("deadbeefcafebabe1234567890abcdef")
	assert.Nil(t, err)
}

func TestValidateRejectsEmpty(t *testing.T) {
	err := Validate("")
	require.NotNil(t, err)
	assert.Equal(t, "Validation", err.Kind.String())
}

func TestValidateRejectsOddLength(t *testing.T) {
	err := Validate("abc")
	require.NotNil(t, err)
	assert.Contains(t, err.Reason, "even length")
}

func TestValidateRejectsNonHexCharacters(t *testing.T) {
	err := Validate("zzzzzzzzzzzzzzzzzzzz")
	require.NotNil(t, err)
	assert.Contains(t, err.Reason, "[0-9a-fA-F]")
}

func TestValidateRejectsTooShort(t *testing.T) {
	err := Validate("deadbeef")
	require.NotNil(t, err)
	assert.Contains(t, err.Reason, "fewer than 10 bytes")
}

func TestValidateSignedRejectsShrunkOutput(t *testing.T) {
	unsigned := "deadbeefcafebabe1234567890abcdef"
	signed := "deadbeefcafebabe1234"
	err := ValidateSigned(signed, unsigned)
	require.NotNil(t, err)
	assert.Contains(t, err.Reason, "shorter than input")
}

func TestValidateSignedAcceptsGrownOutput(t *testing.T) {
	unsigned := "deadbeefcafebabe1234567890abcdef"
	signed := unsigned + "deadbeefcafebabe1234567890abcdef"
	err := ValidateSigned(signed, unsigned)
	assert.Nil(t, err)
}
