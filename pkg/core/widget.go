// Package core implements the widget pass pipeline: the widget tree,
// the event/lifecycle/layout/paint pass drivers, scoped views into
// subtrees, cross-thread event injection, and background promise
// resolution.
//
// The tree is owned exclusively by one dispatch thread. A pass is a
// single synchronous traversal of one kind; contexts created for a pass
// never outlive it. Dirty flags set anywhere in the tree are OR-ed into
// every ancestor before a pass returns, so the root always knows
// whether follow-up layout or paint work is pending.
package core

import (
	"sync/atomic"

	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// WidgetId uniquely identifies a widget for the lifetime of the
// process. Ids are assigned when the widget is wrapped in a WidgetPod
// and never change or get reused.
type WidgetId uint64

var widgetIDCounter atomic.Uint64

// NextWidgetID returns a fresh process-unique widget id.
func NextWidgetID() WidgetId {
	return WidgetId(widgetIDCounter.Add(1))
}

// WindowId uniquely identifies a window for the lifetime of the process.
type WindowId uint64

var windowIDCounter atomic.Uint64

// NextWindowID returns a fresh process-unique window id.
func NextWindowID() WindowId {
	return WindowId(windowIDCounter.Add(1))
}

// Widget is the capability set every tree node implements.
//
// Every pass-entry method must call ctx.Init() before doing anything
// else; the pass driver checks the mark after the call and treats a
// missing one as a programmer error.
//
// Layout must return a size satisfying the given constraints and must
// place every child it intends to paint via LayoutCtx.PlaceChild;
// children left unplaced are excluded from painting and hit-testing.
// Paint may only issue draw commands and recurse into children.
type Widget interface {
	// OnEvent handles an event delivered to this widget's subtree.
	OnEvent(ctx *EventCtx, event Event, env *theme.Env)
	// OnStatusChange handles hot/focus status transitions.
	OnStatusChange(ctx *LifeCycleCtx, change StatusChange, env *theme.Env)
	// Lifecycle handles structural notifications.
	Lifecycle(ctx *LifeCycleCtx, event LifeCycleEvent, env *theme.Env)
	// Layout computes the widget's size under the given constraints.
	Layout(ctx *LayoutCtx, bc BoxConstraints, env *theme.Env) graphics.Size
	// Paint draws the widget.
	Paint(ctx *PaintCtx, env *theme.Env)
	// Children returns the widget's child pods in paint order.
	Children() []*WidgetPod
}

// Handled reports whether an event was claimed by some widget.
type Handled bool

const (
	// HandledYes means a widget claimed the event.
	HandledYes Handled = true
	// HandledNo means no widget claimed the event.
	HandledNo Handled = false
)
