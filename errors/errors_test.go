package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want bool
	}{
		{"api 500", API(500, ""), true},
		{"api 429", API(429, ""), true},
		{"api 400", API(400, "bad"), false},
		{"api 401 is not retryable here", API(401, ""), false},
		{"network", Network("connection reset", nil), true},
		{"auth", Auth("token expired"), false},
		{"validation", Validation("bad input"), false},
		{"signer", Signer("boom"), false},
		{"timeout", Timeout("confirmations", "deadbeef"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.err.IsRetryable())
		})
	}
}

func TestRetryInstructionsNamesTxID(t *testing.T) {
	err := Timeout("confirmations", "abc123")
	assert.Contains(t, err.RetryInstructions(), "abc123")
}

func TestWithContextPrependsWithoutChangingVariant(t *testing.T) {
	err := Validation("amount must be > 0")
	wrapped := err.WithContext("step 3: build tx")
	assert.Equal(t, KindValidation, wrapped.Kind)
	assert.Equal(t, "step 3: build tx: validation error: amount must be > 0", wrapped.Error())
}

func TestWithTxContextCarriesTxidAndDistribution(t *testing.T) {
	err := API(503, "unavailable")
	wrapped := WithTxContext(err, "tx1", "dist1")
	msg := wrapped.Error()
	assert.Contains(t, msg, "tx1")
	assert.Contains(t, msg, "dist1")
}

func TestNilErrorWithContextIsNil(t *testing.T) {
	var err *Error
	assert.Nil(t, err.WithContext("x"))
}
