package core

import "sync/atomic"

// PromiseToken correlates a scheduled background computation with the
// single result it eventually produces. Tokens wrap a monotonically
// increasing counter: equality-comparable, never reused, and the zero
// value never matches a real result.
type PromiseToken uint64

// EmptyPromiseToken is the token of a widget that is not waiting on
// anything. It never matches a delivered result.
const EmptyPromiseToken PromiseToken = 0

var promiseTokenCounter atomic.Uint64

// NextPromiseToken returns a fresh token.
func NextPromiseToken() PromiseToken {
	return PromiseToken(promiseTokenCounter.Add(1))
}

// PromiseResult is the payload of a completed background computation.
// The framework does not track which widget scheduled what; the widget
// correlates by comparing tokens.
type PromiseResult struct {
	Token   PromiseToken
	Payload any
}

// TryGet returns the payload if the result matches the given token.
// Mismatched or empty tokens return false; a stale result is an
// ignorable non-event, not an error.
func (r PromiseResult) TryGet(token PromiseToken) (any, bool) {
	if token == EmptyPromiseToken || r.Token != token {
		return nil, false
	}
	return r.Payload, true
}
