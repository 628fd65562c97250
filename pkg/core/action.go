package core

// Action is an application-level message emitted by a widget. Actions
// are never consumed by the framework; they reach the surrounding
// delegate verbatim, in emission order.
type Action interface {
	isAction()
}

// ButtonPressed is emitted when a button-like widget is clicked.
type ButtonPressed struct{}

// TextChanged is emitted when editable text content changes.
type TextChanged struct {
	Text string
}

func (ButtonPressed) isAction() {}
func (TextChanged) isAction()   {}

// ActionEntry records which widget in which window emitted an action.
type ActionEntry struct {
	Action Action
	Widget WidgetId
	Window WindowId
}

// ActionQueue is the FIFO of actions emitted during a pass.
type ActionQueue struct {
	items []ActionEntry
}

// Push appends an entry.
func (q *ActionQueue) Push(entry ActionEntry) {
	q.items = append(q.items, entry)
}

// PopFront removes and returns the oldest entry.
func (q *ActionQueue) PopFront() (ActionEntry, bool) {
	if len(q.items) == 0 {
		return ActionEntry{}, false
	}
	entry := q.items[0]
	q.items = q.items[1:]
	return entry, true
}

// Len returns the number of queued entries.
func (q *ActionQueue) Len() int {
	return len(q.items)
}
