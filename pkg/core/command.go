package core

// Selector identifies the meaning of a command. Selectors are plain
// strings compared for equality; payloads are carried separately so
// commands can cross threads.
type Selector string

// Command is an intra-tree message. Commands produced during a pass are
// queued and re-dispatched as synthetic targeted-command events after
// the pass, so handling a command runs the full normal event pipeline.
type Command struct {
	Selector Selector
	Payload  any
	Target   Target
}

// NewCommand creates a command with an automatic target.
func NewCommand(selector Selector, payload any) Command {
	return Command{Selector: selector, Payload: payload, Target: TargetAuto()}
}

// To returns the command re-addressed to the given target.
func (c Command) To(target Target) Command {
	c.Target = target
	return c
}

// DefaultTo resolves an automatic target to the given concrete target.
func (c Command) DefaultTo(target Target) Command {
	if c.Target.Kind == TargetKindAuto {
		c.Target = target
	}
	return c
}

// TargetKind discriminates command targets.
type TargetKind int

// Target kinds.
const (
	// TargetKindAuto defers target resolution to the receiving queue.
	TargetKindAuto TargetKind = iota
	// TargetKindGlobal addresses the whole application.
	TargetKindGlobal
	// TargetKindWindow addresses one window's tree.
	TargetKindWindow
	// TargetKindWidget addresses exactly one widget.
	TargetKindWidget
)

// Target addresses a command to a window, a widget, or the whole
// application.
type Target struct {
	Kind   TargetKind
	Window WindowId
	Widget WidgetId
}

// TargetAuto returns the automatic target, resolved by the receiver.
func TargetAuto() Target { return Target{Kind: TargetKindAuto} }

// TargetGlobal returns the application-wide target.
func TargetGlobal() Target { return Target{Kind: TargetKindGlobal} }

// TargetWindow addresses one window.
func TargetWindow(id WindowId) Target {
	return Target{Kind: TargetKindWindow, Window: id}
}

// TargetWidget addresses exactly one widget.
func TargetWidget(id WidgetId) Target {
	return Target{Kind: TargetKindWidget, Widget: id}
}

// CommandQueue is the FIFO of commands produced during a pass, drained
// to a fixpoint afterward.
type CommandQueue struct {
	items []Command
}

// Push appends a command.
func (q *CommandQueue) Push(cmd Command) {
	q.items = append(q.items, cmd)
}

// PopFront removes and returns the oldest command.
func (q *CommandQueue) PopFront() (Command, bool) {
	if len(q.items) == 0 {
		return Command{}, false
	}
	cmd := q.items[0]
	q.items = q.items[1:]
	return cmd, true
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int {
	return len(q.items)
}
