package testing

import (
	"sort"
	"time"

	"github.com/go-mason/mason/pkg/core"
)

type mockTimer struct {
	token    core.TimerToken
	deadline time.Duration
}

// MockTimerQueue provides controllable timers for deterministic tests.
// Time only moves when MoveForward is called.
type MockTimerQueue struct {
	now     time.Duration
	next    core.TimerToken
	pending []mockTimer
}

// NewMockTimerQueue returns an empty queue at time zero.
func NewMockTimerQueue() *MockTimerQueue {
	return &MockTimerQueue{}
}

// ScheduleTimer registers a timer firing after the given duration.
func (q *MockTimerQueue) ScheduleTimer(duration time.Duration) core.TimerToken {
	q.next++
	q.pending = append(q.pending, mockTimer{
		token:    q.next,
		deadline: q.now + duration,
	})
	return q.next
}

// MoveForward advances the queue's clock and returns the tokens of
// every timer that fired, in deadline order.
func (q *MockTimerQueue) MoveForward(duration time.Duration) []core.TimerToken {
	q.now += duration

	var fired []mockTimer
	var remaining []mockTimer
	for _, t := range q.pending {
		if t.deadline <= q.now {
			fired = append(fired, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	q.pending = remaining

	sort.Slice(fired, func(i, j int) bool {
		if fired[i].deadline != fired[j].deadline {
			return fired[i].deadline < fired[j].deadline
		}
		return fired[i].token < fired[j].token
	})
	tokens := make([]core.TimerToken, len(fired))
	for i, t := range fired {
		tokens[i] = t.token
	}
	return tokens
}

// Pending returns the number of timers not yet fired.
func (q *MockTimerQueue) Pending() int {
	return len(q.pending)
}
