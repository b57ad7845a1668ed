package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadRetryFallsBackOnInvalidMaxAttempts(t *testing.T) {
	prev := *retryMaxAttmpt
	*retryMaxAttmpt = "0"
	defer func() { *retryMaxAttmpt = prev }()

	r := LoadRetry()
	assert.Equal(t, defaultMaxAttempts, r.MaxAttempts)
}

func TestLoadRetryFallsBackWhenBaseExceedsMax(t *testing.T) {
	prevBase, prevMax := *retryBaseDelay, *retryMaxDelay
	*retryBaseDelay = "9000"
	*retryMaxDelay = "1000"
	defer func() { *retryBaseDelay, *retryMaxDelay = prevBase, prevMax }()

	r := LoadRetry()
	assert.Equal(t, defaultBaseDelayMS, r.BaseDelayMS)
	assert.Equal(t, defaultMaxDelayMS, r.MaxDelayMS)
}

func TestAPIBaseURLDefault(t *testing.T) {
	assert.NotEmpty(t, APIBaseURL())
}
