package core

import (
	"github.com/go-mason/mason/pkg/debug"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// PassDeps bundles the services a pass needs. The host (platform shell
// or test harness) owns the queues and hands the same bundle to every
// pass it drives.
type PassDeps struct {
	ExtSink  ExtEventSink
	Commands *CommandQueue
	Actions  *ActionQueue
	Timers   TimerScheduler
	Logger   *debug.Logger
}

// WindowRoot owns one window's widget tree and drives the passes over
// it. All methods must be called from the dispatch thread.
type WindowRoot struct {
	id   WindowId
	root *WidgetPod
	size graphics.Size

	focus *WidgetId
	deps  PassDeps

	// invalid accumulates repaint rectangles between paint passes, in
	// window coordinates.
	invalid graphics.Region
}

// NewWindowRoot builds a window around the given root widget.
func NewWindowRoot(root Widget, deps PassDeps) *WindowRoot {
	return &WindowRoot{
		id:   NextWindowID(),
		root: NewWidgetPod(root),
		deps: deps,
	}
}

// ID returns the window's id.
func (w *WindowRoot) ID() WindowId { return w.id }

// Root returns the root pod.
func (w *WindowRoot) Root() *WidgetPod { return w.root }

// RootRef returns a read-only view of the root.
func (w *WindowRoot) RootRef() WidgetRef { return refFromPod(w.root) }

// Size returns the window's logical size.
func (w *WindowRoot) Size() graphics.Size { return w.size }

// Focus returns the id of the focused widget, if any.
func (w *WindowRoot) Focus() *WidgetId { return w.focus }

// NeedsLayout reports whether a layout pass is pending.
func (w *WindowRoot) NeedsLayout() bool { return w.root.state.needsLayout }

// NeedsPaint reports whether a paint pass is pending.
func (w *WindowRoot) NeedsPaint() bool { return w.root.state.needsPaint }

// WantsAnimFrame reports whether some widget requested an animation
// frame.
func (w *WindowRoot) WantsAnimFrame() bool { return w.root.state.requestAnim }

// Invalid returns the accumulated invalid region.
func (w *WindowRoot) Invalid() graphics.Region { return w.invalid }

// FindWidgetByID returns a read-only view of the widget with the given
// id, if it exists in this window.
func (w *WindowRoot) FindWidgetByID(id WidgetId) (WidgetRef, bool) {
	pod := w.root.findByID(id)
	if pod == nil {
		return WidgetRef{}, false
	}
	return refFromPod(pod), true
}

func (w *WindowRoot) globalCtx() *GlobalPassCtx {
	return NewGlobalPassCtx(
		w.deps.ExtSink,
		w.deps.Logger,
		w.deps.Commands,
		w.deps.Actions,
		w.deps.Timers,
		w.id,
		w.focus,
	)
}

// Event dispatches one event through the tree, then runs the follow-up
// processing every pass requires: announcing new children, applying
// focus changes, and recording invalidation.
func (w *WindowRoot) Event(event Event, env *theme.Env) Handled {
	if e, ok := event.(WindowSizeEvent); ok {
		w.size = e.Size
		w.root.state.needsLayout = true
		w.root.hasLayout = false
	}

	global := w.globalCtx()
	var parentState WidgetState
	rootCtx := EventCtx{widgetCtx: widgetCtx{global: global, state: &parentState, pass: "event"}}
	w.root.OnEvent(&rootCtx, event, env)
	w.postEventProcessing(global, env)
	return Handled(rootCtx.handled)
}

// Lifecycle dispatches one structural notification through the tree.
func (w *WindowRoot) Lifecycle(event LifeCycleEvent, env *theme.Env) {
	global := w.globalCtx()
	w.lifecyclePass(global, event, env)
	w.postEventProcessing(global, env)
}

func (w *WindowRoot) lifecyclePass(global *GlobalPassCtx, event LifeCycleEvent, env *theme.Env) {
	var parentState WidgetState
	ctx := LifeCycleCtx{widgetCtx{global: global, state: &parentState, pass: "lifecycle"}}
	w.root.Lifecycle(&ctx, event, env)
}

// postEventProcessing runs after every pass that may have dirtied the
// tree: widgets added during the pass get WidgetAdded before anything
// else can reach them, focus requests are applied, and pending repaint
// is recorded in the invalid region.
func (w *WindowRoot) postEventProcessing(global *GlobalPassCtx, env *theme.Env) {
	for w.root.state.isNew || w.root.state.childrenChanged {
		w.lifecyclePass(global, WidgetAddedEvent{}, env)
	}

	if global.FocusRequest != nil || global.focusReleased {
		w.applyFocus(global, env)
	}

	if w.root.state.needsPaint {
		w.invalid.AddRect(w.root.state.WindowLayoutRect())
	}
}

func (w *WindowRoot) applyFocus(global *GlobalPassCtx, env *theme.Env) {
	newFocus := global.FocusRequest
	sameFocus := func(a, b *WidgetId) bool {
		if a == nil || b == nil {
			return a == b
		}
		return *a == *b
	}
	if sameFocus(w.focus, newFocus) {
		return
	}
	if w.focus != nil {
		if pod := w.root.findByID(*w.focus); pod != nil {
			pod.setFocus(global, false, env)
		}
	}
	if newFocus != nil {
		if pod := w.root.findByID(*newFocus); pod != nil {
			pod.setFocus(global, true, env)
		} else {
			newFocus = nil
		}
	}
	w.focus = newFocus
	global.Focus = newFocus
	global.FocusRequest = nil
	global.focusReleased = false
}

// DoLayout runs a layout pass over the whole tree under tight window
// constraints, then finalizes window-relative origins.
func (w *WindowRoot) DoLayout(env *theme.Env) {
	global := w.globalCtx()

	for w.root.state.isNew || w.root.state.childrenChanged {
		w.lifecyclePass(global, WidgetAddedEvent{}, env)
	}

	var parentState WidgetState
	ctx := LayoutCtx{widgetCtx{global: global, state: &parentState, pass: "layout"}}
	bc := Tight(w.size)
	w.root.Layout(&ctx, bc, env)
	ctx.PlaceChild(w.root, graphics.Offset{})
	w.root.updateWindowOrigins(graphics.Offset{})

	w.invalid.AddRect(w.root.state.WindowLayoutRect())
}

// DoPaint paints the whole tree onto the canvas, window background
// first, and clears the invalid region.
func (w *WindowRoot) DoPaint(canvas graphics.Canvas, env *theme.Env) {
	global := w.globalCtx()

	canvas.FillRect(w.size.ToRect(), env.Color(theme.WindowBackgroundColor))

	var parentState WidgetState
	ctx := PaintCtx{
		global: global,
		state:  &parentState,
		canvas: canvas,
		region: w.invalid,
	}
	w.root.Paint(&ctx, env)
	w.invalid.Clear()
}

// EditRoot runs f with a mutable view of the root widget, then performs
// the same follow-up processing as an event pass. This is the only
// sanctioned way to mutate the tree from outside a pass.
func (w *WindowRoot) EditRoot(env *theme.Env, f func(*WidgetMut)) {
	global := w.globalCtx()
	mut := mutFromPod(w.root, global, env)
	f(&mut)
	w.postEventProcessing(global, env)
}

// EditWidget runs f with a mutable view of the widget with the given
// id. The invalidation recorded by f is merged into every ancestor so
// the follow-up passes see it from the root.
func (w *WindowRoot) EditWidget(id WidgetId, env *theme.Env, f func(*WidgetMut)) error {
	path := findPath(w.root, id)
	if path == nil {
		return ErrWidgetNotFound
	}
	global := w.globalCtx()
	mut := mutFromPod(path[len(path)-1], global, env)
	f(&mut)
	for i := len(path) - 1; i > 0; i-- {
		path[i].state.MergeUp(&path[i-1].state)
	}
	w.postEventProcessing(global, env)
	return nil
}

func findPath(p *WidgetPod, id WidgetId) []*WidgetPod {
	if p.state.id == id {
		return []*WidgetPod{p}
	}
	for _, child := range p.widget.Children() {
		if sub := findPath(child, id); sub != nil {
			return append([]*WidgetPod{p}, sub...)
		}
	}
	return nil
}
