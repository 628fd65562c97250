package core

import (
	"time"

	"github.com/go-mason/mason/pkg/debug"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// stubWidget records every pass that reaches it. Children are laid out
// side by side, left to right, at their preferred size.
type stubWidget struct {
	size     graphics.Size
	children []*WidgetPod

	events     []Event
	lifecycles []LifeCycleEvent
	statuses   []StatusChange
	layouts    int
	paints     int

	// handler runs after recording, with the widget's own context.
	handler func(*EventCtx, Event)
	// skipInit simulates a widget that forgets ctx.Init().
	skipInit bool
}

func newStub(width, height float64, children ...*WidgetPod) *stubWidget {
	return &stubWidget{
		size:     graphics.Size{Width: width, Height: height},
		children: children,
	}
}

func (w *stubWidget) OnEvent(ctx *EventCtx, event Event, env *theme.Env) {
	if !w.skipInit {
		ctx.Init()
	}
	w.events = append(w.events, event)
	if w.handler != nil {
		w.handler(ctx, event)
	}
	for _, child := range w.children {
		child.OnEvent(ctx, event, env)
	}
}

func (w *stubWidget) OnStatusChange(ctx *LifeCycleCtx, change StatusChange, _ *theme.Env) {
	ctx.Init()
	w.statuses = append(w.statuses, change)
}

func (w *stubWidget) Lifecycle(ctx *LifeCycleCtx, event LifeCycleEvent, env *theme.Env) {
	ctx.Init()
	w.lifecycles = append(w.lifecycles, event)
	for _, child := range w.children {
		child.Lifecycle(ctx, event, env)
	}
}

func (w *stubWidget) Layout(ctx *LayoutCtx, bc BoxConstraints, env *theme.Env) graphics.Size {
	ctx.Init()
	w.layouts++
	var x float64
	for _, child := range w.children {
		childSize := child.Layout(ctx, bc.Loosen(), env)
		ctx.PlaceChild(child, graphics.Offset{X: x})
		x += childSize.Width
	}
	return bc.Constrain(w.size)
}

func (w *stubWidget) Paint(ctx *PaintCtx, env *theme.Env) {
	ctx.Init()
	w.paints++
	for _, child := range w.children {
		child.Paint(ctx, env)
	}
}

func (w *stubWidget) Children() []*WidgetPod {
	return w.children
}

func countEvents[T Event](w *stubWidget) int {
	n := 0
	for _, e := range w.events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

func countLifecycles[T LifeCycleEvent](w *stubWidget) int {
	n := 0
	for _, e := range w.lifecycles {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

type stubTimers struct {
	next      TimerToken
	scheduled []time.Duration
}

func (s *stubTimers) ScheduleTimer(duration time.Duration) TimerToken {
	s.next++
	s.scheduled = append(s.scheduled, duration)
	return s.next
}

// windowFixture wires a WindowRoot with real queues, connected and laid
// out at 200x100.
type windowFixture struct {
	window   *WindowRoot
	queue    *ExtEventQueue
	commands CommandQueue
	actions  ActionQueue
	timers   stubTimers
	env      *theme.Env
}

func newFixture(root Widget) *windowFixture {
	f := &windowFixture{
		queue: NewExtEventQueue(),
		env:   theme.WithTheme(),
	}
	f.window = NewWindowRoot(root, PassDeps{
		ExtSink:  f.queue.MakeSink(),
		Commands: &f.commands,
		Actions:  &f.actions,
		Timers:   &f.timers,
		Logger:   debug.NewLogger(false),
	})
	f.window.Event(WindowConnectedEvent{}, f.env)
	f.window.Event(WindowSizeEvent{Size: graphics.Size{Width: 200, Height: 100}}, f.env)
	f.window.DoLayout(f.env)
	// Settle the initial paint so tests observe only their own dirtying.
	f.window.DoPaint(graphics.NewSurface(200, 100), f.env)
	return f
}

func mouseAt(x, y float64) MouseEvent {
	pos := graphics.Offset{X: x, Y: y}
	return MouseEvent{Pos: pos, WindowPos: pos}
}
