package core

import (
	"time"

	"github.com/go-mason/mason/pkg/graphics"
)

// Event is a notification delivered through the event pass. Pointer
// events are routed to the child whose layout rectangle contains the
// position; targeted commands and promise results are routed by widget
// id and claimed by exactly one recipient; everything else broadcasts.
type Event interface {
	isEvent()
}

// WindowConnectedEvent is sent once when the widget tree is attached to
// a live window.
type WindowConnectedEvent struct{}

// WindowSizeEvent reports the window's new logical size.
type WindowSizeEvent struct {
	Size graphics.Size
}

// MouseMoveEvent reports pointer movement.
type MouseMoveEvent struct {
	Mouse MouseEvent
}

// MouseDownEvent reports a pointer button press.
type MouseDownEvent struct {
	Mouse MouseEvent
}

// MouseUpEvent reports a pointer button release.
type MouseUpEvent struct {
	Mouse MouseEvent
}

// WheelEvent reports scroll wheel movement.
type WheelEvent struct {
	Mouse MouseEvent
}

// KeyDownEvent reports a key press.
type KeyDownEvent struct {
	Key KeyEvent
}

// KeyUpEvent reports a key release.
type KeyUpEvent struct {
	Key KeyEvent
}

// AnimFrameEvent is delivered to widgets that requested an animation
// frame. Interval is the time since the previous frame.
type AnimFrameEvent struct {
	Interval time.Duration
}

// TimerEvent reports that a previously requested timer fired.
type TimerEvent struct {
	Token TimerToken
}

// TargetedCommandEvent carries a command routed through the tree. It is
// injected by the window/harness layer, never by ordinary widgets.
type TargetedCommandEvent struct {
	Command Command
}

// RoutePromiseResultEvent carries a promise result toward its target
// widget. The pass driver converts it into a PromiseResultEvent at the
// target; ordinary widgets never see the routing form.
type RoutePromiseResultEvent struct {
	Result PromiseResult
	Target WidgetId
}

// PromiseResultEvent delivers a background computation result to the
// widget that scheduled it. The widget must match Result against tokens
// it stored; stale tokens are silently ignored.
type PromiseResultEvent struct {
	Result PromiseResult
}

func (WindowConnectedEvent) isEvent()    {}
func (WindowSizeEvent) isEvent()         {}
func (MouseMoveEvent) isEvent()          {}
func (MouseDownEvent) isEvent()          {}
func (MouseUpEvent) isEvent()            {}
func (WheelEvent) isEvent()              {}
func (KeyDownEvent) isEvent()            {}
func (KeyUpEvent) isEvent()              {}
func (AnimFrameEvent) isEvent()          {}
func (TimerEvent) isEvent()              {}
func (TargetedCommandEvent) isEvent()    {}
func (RoutePromiseResultEvent) isEvent() {}
func (PromiseResultEvent) isEvent()      {}

// MouseButton identifies a pointer button.
type MouseButton int

// Pointer buttons.
const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// MouseButtons is the set of currently held buttons.
type MouseButtons uint8

// Insert adds a button to the set.
func (b *MouseButtons) Insert(button MouseButton) {
	*b |= 1 << uint(button)
}

// Remove deletes a button from the set.
func (b *MouseButtons) Remove(button MouseButton) {
	*b &^= 1 << uint(button)
}

// Contains reports whether the button is held.
func (b MouseButtons) Contains(button MouseButton) bool {
	return b&(1<<uint(button)) != 0
}

// Modifiers is the set of held modifier keys.
type Modifiers uint8

// Modifier keys.
const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// MouseEvent is the pointer state snapshot shipped with every pointer
// event. Pos and WindowPos are identical until portals/viewports offset
// them; routing always uses WindowPos.
type MouseEvent struct {
	Pos        graphics.Offset
	WindowPos  graphics.Offset
	Buttons    MouseButtons
	Button     MouseButton
	Mods       Modifiers
	Count      int
	WheelDelta graphics.Offset
}

// KeyEvent is the raw key data shipped with key events.
type KeyEvent struct {
	// Text is the text produced by the key, if any.
	Text string
	Mods Modifiers
}

// TimerToken correlates a timer request with its TimerEvent.
type TimerToken uint64

// TimerScheduler schedules host timers. The real window layer wires
// this to the platform; the test harness provides a mock queue.
type TimerScheduler interface {
	ScheduleTimer(duration time.Duration) TimerToken
}

// StatusChange is a widget-visible status transition, delivered through
// OnStatusChange rather than the ordinary event pass.
type StatusChange interface {
	isStatusChange()
}

// HotChanged reports that the pointer entered or left the widget.
type HotChanged struct {
	Hot bool
}

// FocusChanged reports that the widget gained or lost input focus.
type FocusChanged struct {
	Focused bool
}

func (HotChanged) isStatusChange()   {}
func (FocusChanged) isStatusChange() {}

// LifeCycleEvent is a structural notification delivered depth-first.
type LifeCycleEvent interface {
	isLifeCycle()
}

// WidgetAddedEvent reaches a widget before any other pass touches it.
// It is the correct place to kick off one-time background work.
type WidgetAddedEvent struct{}

// SizeChangedEvent reports the widget's new size after layout.
type SizeChangedEvent struct {
	Size graphics.Size
}

func (WidgetAddedEvent) isLifeCycle() {}
func (SizeChangedEvent) isLifeCycle() {}
