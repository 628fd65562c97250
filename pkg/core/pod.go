package core

import (
	"reflect"

	"github.com/go-mason/mason/pkg/errors"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// WidgetPod pairs a widget with its framework-owned state and drives
// every pass through it. Container widgets hold children as pods and
// forward pass calls to them; the pod applies the routing rules, runs
// the widget's pass-entry method, verifies the ctx.Init() mark, and
// merges the child state into the parent before returning.
type WidgetPod struct {
	widget Widget
	state  WidgetState

	// lastConstraints caches the constraints of the last layout so an
	// unchanged subtree can be skipped.
	lastConstraints BoxConstraints
	hasLayout       bool
}

// NewWidgetPod wraps a widget, assigning it a fresh id.
func NewWidgetPod(w Widget) *WidgetPod {
	return NewWidgetPodWithID(w, NextWidgetID())
}

// NewWidgetPodWithID wraps a widget under a caller-chosen id. The id
// must be unique in the tree; tests use this to address widgets
// directly.
func NewWidgetPodWithID(w Widget, id WidgetId) *WidgetPod {
	return &WidgetPod{widget: w, state: newWidgetState(id)}
}

// Widget returns the wrapped widget.
func (p *WidgetPod) Widget() Widget { return p.widget }

// ID returns the wrapped widget's id.
func (p *WidgetPod) ID() WidgetId { return p.state.id }

// State returns the pod's state record.
func (p *WidgetPod) State() *WidgetState { return &p.state }

func (p *WidgetPod) widgetType() string {
	t := reflect.TypeOf(p.widget)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// OnEvent routes an event into this subtree.
//
// Pointer events update hot status first, then reach the widget only
// while it is hot or has captured the pointer. Animation frames reach
// only widgets that requested one. Widget-targeted commands and routed
// promise results descend to their target without touching other
// widgets and are claimed there. Everything else broadcasts.
func (p *WidgetPod) OnEvent(parentCtx *EventCtx, event Event, env *theme.Env) {
	if parentCtx.IsHandled() {
		p.state.MergeUp(parentCtx.state)
		return
	}

	recurse := true
	switch e := event.(type) {
	case MouseMoveEvent:
		recurse = p.prepareMouse(parentCtx.global, e.Mouse, env)
	case MouseDownEvent:
		recurse = p.prepareMouse(parentCtx.global, e.Mouse, env)
	case MouseUpEvent:
		recurse = p.prepareMouse(parentCtx.global, e.Mouse, env)
	case WheelEvent:
		recurse = p.prepareMouse(parentCtx.global, e.Mouse, env)
	case AnimFrameEvent:
		recurse = p.state.requestAnim
		p.state.requestAnim = false
	case TargetedCommandEvent:
		if e.Command.Target.Kind == TargetKindWidget {
			if e.Command.Target.Widget == p.state.id {
				p.deliverEvent(parentCtx, event, env)
				parentCtx.handled = true
			} else {
				p.routeToChildren(parentCtx, event, env)
			}
			p.state.MergeUp(parentCtx.state)
			return
		}
	case RoutePromiseResultEvent:
		if e.Target == p.state.id {
			p.deliverEvent(parentCtx, PromiseResultEvent{Result: e.Result}, env)
			parentCtx.handled = true
		} else {
			p.routeToChildren(parentCtx, event, env)
		}
		p.state.MergeUp(parentCtx.state)
		return
	}

	if recurse {
		p.deliverEvent(parentCtx, event, env)
	}
	p.state.MergeUp(parentCtx.state)
}

// prepareMouse updates hot status from the pointer position and reports
// whether the event should reach the widget. A widget that captured the
// pointer keeps receiving events regardless of position.
func (p *WidgetPod) prepareMouse(global *GlobalPassCtx, mouse MouseEvent, env *theme.Env) bool {
	hadActive := p.state.isActive
	p.updateHotState(global, mouse.WindowPos, env)
	return hadActive || p.state.isHot
}

func (p *WidgetPod) updateHotState(global *GlobalPassCtx, windowPos graphics.Offset, env *theme.Env) {
	hot := p.state.isPlaced && p.state.WindowLayoutRect().Contains(windowPos)
	if hot == p.state.isHot {
		return
	}
	p.state.isHot = hot
	ctx := LifeCycleCtx{widgetCtx{
		global:     global,
		state:      &p.state,
		pass:       "status",
		widgetType: p.widgetType(),
	}}
	p.widget.OnStatusChange(&ctx, HotChanged{Hot: hot}, env)
	checkPassEntered("status", ctx.widgetType, ctx.initted)
}

func (p *WidgetPod) deliverEvent(parentCtx *EventCtx, event Event, env *theme.Env) {
	ctx := EventCtx{
		widgetCtx: widgetCtx{
			global:     parentCtx.global,
			state:      &p.state,
			pass:       "event",
			widgetType: p.widgetType(),
		},
		handled: parentCtx.handled,
	}
	p.widget.OnEvent(&ctx, event, env)
	checkPassEntered("event", ctx.widgetType, ctx.initted)
	parentCtx.handled = ctx.handled
}

// routeToChildren descends toward a routed event's target without
// delivering the routing form to this widget.
func (p *WidgetPod) routeToChildren(parentCtx *EventCtx, event Event, env *theme.Env) {
	ctx := EventCtx{
		widgetCtx: widgetCtx{global: parentCtx.global, state: &p.state, pass: "event"},
		handled:   parentCtx.handled,
	}
	for _, child := range p.widget.Children() {
		if ctx.handled {
			break
		}
		child.OnEvent(&ctx, event, env)
	}
	parentCtx.handled = ctx.handled
}

// Lifecycle routes a structural notification into this subtree.
// WidgetAdded reaches only subtrees holding unannounced widgets;
// SizeChanged is delivered directly by the layout driver and never
// forwarded.
func (p *WidgetPod) Lifecycle(parentCtx *LifeCycleCtx, event LifeCycleEvent, env *theme.Env) {
	recurse := true
	switch event.(type) {
	case WidgetAddedEvent:
		recurse = p.state.isNew || p.state.childrenChanged
		if recurse {
			p.state.isNew = false
			p.state.isAdded = true
			p.state.childrenChanged = false
		}
	case SizeChangedEvent:
		recurse = false
	}

	if recurse {
		ctx := LifeCycleCtx{widgetCtx{
			global:     parentCtx.global,
			state:      &p.state,
			pass:       "lifecycle",
			widgetType: p.widgetType(),
		}}
		p.widget.Lifecycle(&ctx, event, env)
		checkPassEntered("lifecycle", ctx.widgetType, ctx.initted)
	}
	p.state.MergeUp(parentCtx.state)
}

// Layout computes this subtree's size under the given constraints.
// Subtrees that are not dirty and see the same constraints as last time
// return their cached size without running the widget.
func (p *WidgetPod) Layout(parentCtx *LayoutCtx, bc BoxConstraints, env *theme.Env) graphics.Size {
	if !p.state.needsLayout && p.hasLayout && bc == p.lastConstraints {
		return p.state.size
	}

	ctx := LayoutCtx{widgetCtx{
		global:     parentCtx.global,
		state:      &p.state,
		pass:       "layout",
		widgetType: p.widgetType(),
	}}
	size := p.widget.Layout(&ctx, bc, env)
	checkPassEntered("layout", ctx.widgetType, ctx.initted)
	if !bc.IsSatisfiedBy(size) {
		err := &errors.InvariantError{
			Widget: ctx.widgetType,
			Pass:   "layout",
			Detail: "returned size violates constraints",
		}
		if DebugChecks {
			panic(err)
		}
		errors.ReportInvariant(err)
		size = bc.Constrain(size)
	}

	changed := size != p.state.size
	p.state.size = size
	p.state.needsLayout = false
	p.lastConstraints = bc
	p.hasLayout = true

	if changed && p.state.isAdded {
		lcCtx := LifeCycleCtx{widgetCtx{
			global:     parentCtx.global,
			state:      &p.state,
			pass:       "lifecycle",
			widgetType: ctx.widgetType,
		}}
		p.widget.Lifecycle(&lcCtx, SizeChangedEvent{Size: size}, env)
		checkPassEntered("lifecycle", lcCtx.widgetType, lcCtx.initted)
	}

	p.state.MergeUp(parentCtx.state)
	return size
}

// Paint draws this subtree. Unplaced widgets and subtrees outside the
// invalid region are skipped; the child canvas is translated to the
// widget's origin and clipped to its size.
func (p *WidgetPod) Paint(parentCtx *PaintCtx, env *theme.Env) {
	if !p.state.isPlaced {
		return
	}
	region := parentCtx.region
	if !region.IsEmpty() && !region.Intersects(p.state.WindowLayoutRect()) && !p.state.needsPaint {
		return
	}

	canvas := parentCtx.canvas
	canvas.Save()
	canvas.Translate(p.state.origin.X, p.state.origin.Y)
	canvas.ClipRect(p.state.size.ToRect())

	ctx := PaintCtx{
		global:     parentCtx.global,
		state:      &p.state,
		canvas:     canvas,
		region:     region,
		widgetType: p.widgetType(),
	}
	p.widget.Paint(&ctx, env)
	checkPassEntered("paint", ctx.widgetType, ctx.initted)

	canvas.Restore()
	p.state.needsPaint = false
}

// updateWindowOrigins recomputes window-relative origins for the whole
// subtree. Run after every layout pass, once placements are final.
func (p *WidgetPod) updateWindowOrigins(parentWindowOrigin graphics.Offset) {
	p.state.windowOrigin = parentWindowOrigin.Add(p.state.origin)
	for _, child := range p.widget.Children() {
		child.updateWindowOrigins(p.state.windowOrigin)
	}
}

// findByID returns the pod with the given id in this subtree, or nil.
func (p *WidgetPod) findByID(id WidgetId) *WidgetPod {
	if p.state.id == id {
		return p
	}
	for _, child := range p.widget.Children() {
		if found := child.findByID(id); found != nil {
			return found
		}
	}
	return nil
}

// setFocus flips the widget's focus flag and notifies it.
func (p *WidgetPod) setFocus(global *GlobalPassCtx, focused bool, env *theme.Env) {
	if p.state.hasFocus == focused {
		return
	}
	p.state.hasFocus = focused
	ctx := LifeCycleCtx{widgetCtx{
		global:     global,
		state:      &p.state,
		pass:       "status",
		widgetType: p.widgetType(),
	}}
	p.widget.OnStatusChange(&ctx, FocusChanged{Focused: focused}, env)
	checkPassEntered("status", ctx.widgetType, ctx.initted)
}
