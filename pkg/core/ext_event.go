package core

import "sync"

// ExtMessage is a cross-thread-submitted message awaiting drain on the
// dispatch thread.
type ExtMessage interface {
	isExtMessage()
}

// ExtCommand is an externally submitted command.
type ExtCommand struct {
	Selector Selector
	Payload  any
	Target   Target
}

// ExtPromise is an externally resolved promise result.
type ExtPromise struct {
	Result PromiseResult
	Widget WidgetId
	Window WindowId
}

func (ExtCommand) isExtMessage() {}
func (ExtPromise) isExtMessage() {}

// IdleHandle wakes the dispatch thread. It only exists once a window
// does, and may be replaced when the originating window changes.
type IdleHandle interface {
	ScheduleIdle()
}

// ExtEventError is returned when an external event cannot be
// submitted. It means the host application has gone away; submission is
// not retryable.
type ExtEventError struct{}

func (ExtEventError) Error() string {
	return "window missing for external event"
}

// extEventShared is the state shared between the owning queue and every
// sink clone. The wake handle lives under the same lock so replacing it
// is visible to all sinks.
type extEventShared struct {
	mu     sync.Mutex
	items  []ExtMessage
	handle IdleHandle
	// dead is set when the host tears down or a drain panicked while
	// holding the queue. Once dead, every submission fails; this is the
	// poisoned-lock policy mapped onto Go.
	dead bool
}

// ExtEventQueue owns the external event mailbox inside the running
// application. Sinks created from it can move to other threads.
type ExtEventQueue struct {
	shared *extEventShared
	// HandleWindowID tracks which window the wake handle belongs to, so
	// the host knows when a new handle is needed.
	HandleWindowID WindowId
}

// NewExtEventQueue creates an empty mailbox.
func NewExtEventQueue() *ExtEventQueue {
	return &ExtEventQueue{shared: &extEventShared{}}
}

// MakeSink returns a sink sharing this queue. Sinks are cheap to copy
// and safe for concurrent use.
func (q *ExtEventQueue) MakeSink() ExtEventSink {
	return ExtEventSink{shared: q.shared}
}

// SetIdle installs or replaces the wake handle. All existing sinks see
// the new handle.
func (q *ExtEventQueue) SetIdle(handle IdleHandle, windowID WindowId) {
	q.shared.mu.Lock()
	q.shared.handle = handle
	q.shared.mu.Unlock()
	q.HandleWindowID = windowID
}

// HasPendingItems reports whether the mailbox holds undrained messages.
func (q *ExtEventQueue) HasPendingItems() bool {
	q.shared.mu.Lock()
	defer q.shared.mu.Unlock()
	return len(q.shared.items) > 0
}

// Recv removes and returns the oldest message.
func (q *ExtEventQueue) Recv() (ExtMessage, bool) {
	q.shared.mu.Lock()
	defer q.shared.mu.Unlock()
	if len(q.shared.items) == 0 {
		return nil, false
	}
	msg := q.shared.items[0]
	q.shared.items = q.shared.items[1:]
	return msg, true
}

// Kill marks the mailbox dead. Every later submission from any sink
// fails with ExtEventError. Used when the host shuts down or a drain
// fails irrecoverably.
func (q *ExtEventQueue) Kill() {
	q.shared.mu.Lock()
	q.shared.dead = true
	q.shared.items = nil
	q.shared.mu.Unlock()
}

// ExtEventSink can move to other threads and submit commands or promise
// results back to the running application. Enqueueing never blocks the
// dispatch thread; each submission attempts a best-effort wake and
// tolerates the wake handle not existing yet.
type ExtEventSink struct {
	shared *extEventShared
}

// SubmitCommand enqueues a command. TargetAuto is resolved to the
// global target by the receiving queue.
func (s ExtEventSink) SubmitCommand(selector Selector, payload any, target Target) error {
	return s.push(ExtCommand{Selector: selector, Payload: payload, Target: target})
}

// ResolvePromise enqueues a promise result addressed to the scheduling
// widget in its host window.
func (s ExtEventSink) ResolvePromise(result PromiseResult, targetWidget WidgetId, targetWindow WindowId) error {
	return s.push(ExtPromise{Result: result, Widget: targetWidget, Window: targetWindow})
}

func (s ExtEventSink) push(msg ExtMessage) error {
	s.shared.mu.Lock()
	if s.shared.dead {
		s.shared.mu.Unlock()
		return ExtEventError{}
	}
	s.shared.items = append(s.shared.items, msg)
	handle := s.shared.handle
	s.shared.mu.Unlock()

	if handle != nil {
		handle.ScheduleIdle()
	}
	return nil
}
