package widgets

import (
	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// unboundedHost lays out its child with no upper limit on either axis,
// for exercising leaf fallback sizes.
type unboundedHost struct {
	child *core.WidgetPod
}

func newUnboundedHost(child core.Widget) *unboundedHost {
	return &unboundedHost{child: core.NewWidgetPod(child)}
}

func (w *unboundedHost) OnEvent(ctx *core.EventCtx, event core.Event, env *theme.Env) {
	ctx.Init()
	w.child.OnEvent(ctx, event, env)
}

func (w *unboundedHost) OnStatusChange(ctx *core.LifeCycleCtx, _ core.StatusChange, _ *theme.Env) {
	ctx.Init()
}

func (w *unboundedHost) Lifecycle(ctx *core.LifeCycleCtx, event core.LifeCycleEvent, env *theme.Env) {
	ctx.Init()
	w.child.Lifecycle(ctx, event, env)
}

func (w *unboundedHost) Layout(ctx *core.LayoutCtx, bc core.BoxConstraints, env *theme.Env) graphics.Size {
	ctx.Init()
	childSize := w.child.Layout(ctx, core.UnboundedConstraints(), env)
	ctx.PlaceChild(w.child, graphics.Offset{})
	_ = childSize
	return bc.Constrain(bc.Max)
}

func (w *unboundedHost) Paint(ctx *core.PaintCtx, env *theme.Env) {
	ctx.Init()
	w.child.Paint(ctx, env)
}

func (w *unboundedHost) Children() []*core.WidgetPod {
	return []*core.WidgetPod{w.child}
}
