package core

import "github.com/go-mason/mason/pkg/theme"

// AppDelegate is the application's hook into dispatch. The host calls
// it on the dispatch thread: events may be filtered before routing,
// commands may be claimed before the tree sees them, and every action a
// widget emits is handed over verbatim, in emission order.
type AppDelegate interface {
	// OnEvent may observe or rewrite an event before it is routed.
	// Returning nil swallows the event.
	OnEvent(ctx *DelegateCtx, windowID WindowId, event Event) Event
	// OnCommand may claim a command before tree dispatch. Returning
	// HandledYes stops the command from reaching any widget.
	OnCommand(ctx *DelegateCtx, target Target, cmd Command) Handled
	// OnAction receives an action emitted by a widget.
	OnAction(ctx *DelegateCtx, windowID WindowId, widgetID WidgetId, action Action)
	// OnWindowAdded is called once the window's tree is connected.
	OnWindowAdded(ctx *DelegateCtx, windowID WindowId)
	// OnWindowRemoved is called when the window goes away.
	OnWindowRemoved(ctx *DelegateCtx, windowID WindowId)
}

// DelegateBase is a no-op AppDelegate. Embed it and override what you
// need.
type DelegateBase struct{}

var _ AppDelegate = (*DelegateBase)(nil)

// OnEvent passes the event through unchanged.
func (*DelegateBase) OnEvent(_ *DelegateCtx, _ WindowId, event Event) Event { return event }

// OnCommand leaves the command for tree dispatch.
func (*DelegateBase) OnCommand(_ *DelegateCtx, _ Target, _ Command) Handled { return HandledNo }

// OnAction ignores the action.
func (*DelegateBase) OnAction(_ *DelegateCtx, _ WindowId, _ WidgetId, _ Action) {}

// OnWindowAdded does nothing.
func (*DelegateBase) OnWindowAdded(_ *DelegateCtx, _ WindowId) {}

// OnWindowRemoved does nothing.
func (*DelegateBase) OnWindowRemoved(_ *DelegateCtx, _ WindowId) {}

// DelegateCtx gives the delegate controlled access to the application
// while a dispatch step runs.
type DelegateCtx struct {
	window *WindowRoot
	env    *theme.Env
}

// NewDelegateCtx builds a context for one delegate call.
func NewDelegateCtx(window *WindowRoot, env *theme.Env) *DelegateCtx {
	return &DelegateCtx{window: window, env: env}
}

// GetExternalHandle returns a sink usable from any thread.
func (c *DelegateCtx) GetExternalHandle() ExtEventSink {
	return c.window.deps.ExtSink
}

// SubmitCommand queues a command for the current drain.
func (c *DelegateCtx) SubmitCommand(cmd Command) {
	c.window.deps.Commands.Push(cmd.DefaultTo(TargetWindow(c.window.id)))
}

// EditRoot runs f with a mutable view of the window's root widget.
func (c *DelegateCtx) EditRoot(f func(*WidgetMut)) {
	c.window.EditRoot(c.env, f)
}
