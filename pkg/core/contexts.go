package core

import (
	stderrors "errors"
	"time"

	"github.com/go-mason/mason/pkg/debug"
	"github.com/go-mason/mason/pkg/errors"
	"github.com/go-mason/mason/pkg/graphics"
)

// GlobalPassCtx is the process-wide state shared by every context
// created during one pass: queues, the external sink, the pass logger,
// and window-level focus bookkeeping. It lives on the stack of the pass
// driver and is never retained past the pass.
type GlobalPassCtx struct {
	ExtSink  ExtEventSink
	Logger   *debug.Logger
	Commands *CommandQueue
	Actions  *ActionQueue
	Timers   TimerScheduler
	WindowID WindowId

	// Focus is the widget holding input focus at pass start, if any.
	Focus *WidgetId
	// FocusRequest is set by RequestFocus/ResignFocus during the pass
	// and applied by the window afterward.
	FocusRequest  *WidgetId
	focusReleased bool
}

// NewGlobalPassCtx assembles the shared state for one pass.
func NewGlobalPassCtx(
	sink ExtEventSink,
	logger *debug.Logger,
	commands *CommandQueue,
	actions *ActionQueue,
	timers TimerScheduler,
	windowID WindowId,
	focus *WidgetId,
) *GlobalPassCtx {
	return &GlobalPassCtx{
		ExtSink:  sink,
		Logger:   logger,
		Commands: commands,
		Actions:  actions,
		Timers:   timers,
		WindowID: windowID,
		Focus:    focus,
	}
}

// widgetCtx is the capability set shared by the event, lifecycle,
// layout and synthetic mutation contexts. It borrows the current
// widget's state record for the duration of a single pass step.
type widgetCtx struct {
	global     *GlobalPassCtx
	state      *WidgetState
	pass       string
	widgetType string
	initted    bool
}

// Init marks the widget as visited by this pass. Every pass-entry
// method must call it first; the pass driver verifies the mark.
func (c *widgetCtx) Init() {
	if c.initted {
		return
	}
	c.initted = true
	if c.global != nil && c.global.Logger != nil {
		c.global.Logger.PushPass(c.pass, uint64(c.state.id), c.widgetType)
	}
}

// WidgetID returns the current widget's id.
func (c *widgetCtx) WidgetID() WidgetId {
	return c.state.id
}

// WindowID returns the host window's id.
func (c *widgetCtx) WindowID() WindowId {
	return c.global.WindowID
}

// Size returns the size computed by the last layout pass.
func (c *widgetCtx) Size() graphics.Size {
	return c.state.size
}

// RequestPaint flags this widget for repaint.
func (c *widgetCtx) RequestPaint() {
	c.state.needsPaint = true
}

// RequestLayout flags this widget for re-layout.
func (c *widgetCtx) RequestLayout() {
	c.state.needsLayout = true
	c.state.needsPaint = true
}

// RequestAnimFrame asks for an animation-frame event.
func (c *widgetCtx) RequestAnimFrame() {
	c.state.requestAnim = true
}

// ChildrenChanged tells the framework this widget's child set changed.
// New children receive WidgetAdded before the next pass, and layout is
// re-run.
func (c *widgetCtx) ChildrenChanged() {
	c.state.childrenChanged = true
	c.state.needsLayout = true
	c.state.needsPaint = true
}

// SubmitCommand queues a command for dispatch after this pass.
func (c *widgetCtx) SubmitCommand(cmd Command) {
	c.global.Commands.Push(cmd.DefaultTo(TargetWindow(c.global.WindowID)))
}

// requestTimer schedules a host timer and returns its token.
func (c *widgetCtx) requestTimer(duration time.Duration) TimerToken {
	if c.global.Timers == nil {
		errors.Report(&errors.MasonError{
			Op:   "core.RequestTimer",
			Kind: errors.KindUnknown,
			Err:  stderrors.New("no timer scheduler configured"),
		})
		return 0
	}
	return c.global.Timers.ScheduleTimer(duration)
}

// computeInBackground schedules work off the dispatch thread. The
// returned token identifies the single result that will eventually be
// delivered as a PromiseResultEvent to this widget. The work runs to
// completion regardless of widget lifetime; a panic inside it is
// reported and converted to a nil payload so the widget still receives
// a result.
func (c *widgetCtx) computeInBackground(work func() any) PromiseToken {
	token := NextPromiseToken()
	sink := c.global.ExtSink
	widgetID := c.state.id
	windowID := c.global.WindowID
	go func() {
		var payload any
		func() {
			defer errors.Recover("core.ComputeInBackground")
			payload = work()
		}()
		if err := sink.ResolvePromise(PromiseResult{Token: token, Payload: payload}, widgetID, windowID); err != nil {
			errors.Report(&errors.MasonError{
				Op:   "core.ComputeInBackground",
				Kind: errors.KindBackground,
				Err:  err,
			})
		}
	}()
	return token
}

// EventCtx is the context handed to Widget.OnEvent.
type EventCtx struct {
	widgetCtx
	handled bool
}

// IsHot reports whether the pointer is over the widget.
func (c *EventCtx) IsHot() bool { return c.state.isHot }

// IsActive reports whether the widget captured the pointer.
func (c *EventCtx) IsActive() bool { return c.state.isActive }

// SetActive captures or releases the pointer. Active widgets keep
// receiving pointer events even when the pointer leaves them.
func (c *EventCtx) SetActive(active bool) {
	c.state.isActive = active
}

// SetHandled marks the event as claimed; the dispatcher stops issuing
// it to further widgets.
func (c *EventCtx) SetHandled() { c.handled = true }

// IsHandled reports whether some widget already claimed the event.
func (c *EventCtx) IsHandled() bool { return c.handled }

// SubmitAction emits an application-level action attributed to this
// widget.
func (c *EventCtx) SubmitAction(action Action) {
	c.global.Actions.Push(ActionEntry{
		Action: action,
		Widget: c.state.id,
		Window: c.global.WindowID,
	})
}

// RequestFocus asks for input focus; applied after the pass.
func (c *EventCtx) RequestFocus() {
	id := c.state.id
	c.global.FocusRequest = &id
}

// ResignFocus gives up input focus; applied after the pass.
func (c *EventCtx) ResignFocus() {
	c.global.FocusRequest = nil
	c.global.focusReleased = true
}

// RequestTimer schedules a host timer; the TimerEvent carrying the
// returned token arrives when it fires.
func (c *EventCtx) RequestTimer(duration time.Duration) TimerToken {
	return c.requestTimer(duration)
}

// ComputeInBackground schedules background work from an event handler.
func (c *EventCtx) ComputeInBackground(work func() any) PromiseToken {
	return c.computeInBackground(work)
}

// LifeCycleCtx is the context handed to Widget.Lifecycle and
// Widget.OnStatusChange.
type LifeCycleCtx struct {
	widgetCtx
}

// ComputeInBackground schedules background work, typically from
// WidgetAdded.
func (c *LifeCycleCtx) ComputeInBackground(work func() any) PromiseToken {
	return c.computeInBackground(work)
}

// RequestTimer schedules a host timer.
func (c *LifeCycleCtx) RequestTimer(duration time.Duration) TimerToken {
	return c.requestTimer(duration)
}

// LayoutCtx is the context handed to Widget.Layout.
type LayoutCtx struct {
	widgetCtx
}

// PlaceChild positions a child relative to this widget's origin. Only
// placed children participate in painting and hit-testing.
func (c *LayoutCtx) PlaceChild(child *WidgetPod, origin graphics.Offset) {
	child.state.origin = origin
	child.state.isPlaced = true
}

// SkipChild excludes a child from painting and hit-testing until it is
// placed again. Used when a composite widget switches between mutually
// exclusive children.
func (c *LayoutCtx) SkipChild(child *WidgetPod) {
	child.state.isPlaced = false
}

// WidgetCtx is the synthetic context backing a WidgetMut: mutation
// methods on a concrete widget's mutable view use it to flag the
// minimal invalidation for each change.
type WidgetCtx struct {
	widgetCtx
}

// SubmitAction emits an application-level action attributed to this
// widget.
func (c *WidgetCtx) SubmitAction(action Action) {
	c.global.Actions.Push(ActionEntry{
		Action: action,
		Widget: c.state.id,
		Window: c.global.WindowID,
	})
}

// ComputeInBackground schedules background work from an out-of-pass
// mutation.
func (c *WidgetCtx) ComputeInBackground(work func() any) PromiseToken {
	return c.computeInBackground(work)
}

// PaintCtx is the context handed to Widget.Paint. It is restricted to
// issuing draw commands and recursing into children; layout-relevant
// state is off limits.
type PaintCtx struct {
	global     *GlobalPassCtx
	state      *WidgetState
	canvas     graphics.Canvas
	region     graphics.Region
	widgetType string
	initted    bool
}

// Init marks the widget as visited by the paint pass.
func (c *PaintCtx) Init() {
	if c.initted {
		return
	}
	c.initted = true
	if c.global != nil && c.global.Logger != nil {
		c.global.Logger.PushPass("paint", uint64(c.state.id), c.widgetType)
	}
}

// Size returns the widget's laid-out size.
func (c *PaintCtx) Size() graphics.Size {
	return c.state.size
}

// IsHot reports whether the pointer is over the widget.
func (c *PaintCtx) IsHot() bool { return c.state.isHot }

// IsActive reports whether the widget captured the pointer.
func (c *PaintCtx) IsActive() bool { return c.state.isActive }

// HasFocus reports whether the widget holds input focus.
func (c *PaintCtx) HasFocus() bool { return c.state.hasFocus }

// Region returns the accumulated invalid region, in window coordinates.
func (c *PaintCtx) Region() graphics.Region {
	return c.region
}

// Canvas returns the draw-command sink, already translated and clipped
// to this widget's layout rectangle.
func (c *PaintCtx) Canvas() graphics.Canvas {
	return c.canvas
}

// FillRect fills a rectangle in widget-local coordinates.
func (c *PaintCtx) FillRect(rect graphics.Rect, color graphics.Color) {
	c.canvas.FillRect(rect, color)
}

// StrokeLine strokes a line in widget-local coordinates.
func (c *PaintCtx) StrokeLine(from, to graphics.Offset, color graphics.Color, width float64) {
	c.canvas.StrokeLine(from, to, color, width)
}

// DrawText draws a single line of text in widget-local coordinates.
func (c *PaintCtx) DrawText(text string, origin graphics.Offset, color graphics.Color) {
	c.canvas.DrawText(text, origin, color)
}

// DrawImage draws an image buffer in widget-local coordinates.
func (c *PaintCtx) DrawImage(buf *graphics.ImageBuf, dst graphics.Rect) {
	c.canvas.DrawImage(buf, dst)
}
