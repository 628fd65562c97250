package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromiseTokensUnique(t *testing.T) {
	a := NextPromiseToken()
	b := NextPromiseToken()
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, EmptyPromiseToken, a)
}

func TestPromiseResultTryGet(t *testing.T) {
	token := NextPromiseToken()
	result := PromiseResult{Token: token, Payload: 42}

	payload, ok := result.TryGet(token)
	assert.True(t, ok)
	assert.Equal(t, 42, payload)

	// A stale or foreign token is a non-event.
	_, ok = result.TryGet(NextPromiseToken())
	assert.False(t, ok)

	// The empty token never matches, even against a zero result.
	_, ok = PromiseResult{}.TryGet(EmptyPromiseToken)
	assert.False(t, ok)
}
