// Package widgets provides the built-in widget set: basic containers,
// text, buttons, images, and the widgets backing asynchronous content.
package widgets

import (
	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// SizedBox forces a fixed width, height, or both onto its optional
// child. Axes left unset defer to the child; with no child, unset axes
// collapse to zero.
type SizedBox struct {
	child *core.WidgetPod

	width     float64
	height    float64
	hasWidth  bool
	hasHeight bool
}

// NewSizedBox wraps a child with no size overrides.
func NewSizedBox(child core.Widget) *SizedBox {
	return &SizedBox{child: core.NewWidgetPod(child)}
}

// NewEmptySizedBox returns a box with no child. Useful as an explicitly
// blank slot in a container.
func NewEmptySizedBox() *SizedBox {
	return &SizedBox{}
}

// FixedWidth pins the box's width.
func (w *SizedBox) FixedWidth(width float64) *SizedBox {
	w.width = width
	w.hasWidth = true
	return w
}

// FixedHeight pins the box's height.
func (w *SizedBox) FixedHeight(height float64) *SizedBox {
	w.height = height
	w.hasHeight = true
	return w
}

// Child returns the child pod, or nil.
func (w *SizedBox) Child() *core.WidgetPod { return w.child }

func (w *SizedBox) childConstraints(bc core.BoxConstraints) core.BoxConstraints {
	child := bc.Loosen()
	if w.hasWidth {
		width := clampAxis(w.width, bc.Min.Width, bc.Max.Width)
		child.Min.Width = width
		child.Max.Width = width
	}
	if w.hasHeight {
		height := clampAxis(w.height, bc.Min.Height, bc.Max.Height)
		child.Min.Height = height
		child.Max.Height = height
	}
	return child
}

func (w *SizedBox) OnEvent(ctx *core.EventCtx, event core.Event, env *theme.Env) {
	ctx.Init()
	if w.child != nil {
		w.child.OnEvent(ctx, event, env)
	}
}

func (w *SizedBox) OnStatusChange(ctx *core.LifeCycleCtx, _ core.StatusChange, _ *theme.Env) {
	ctx.Init()
}

func (w *SizedBox) Lifecycle(ctx *core.LifeCycleCtx, event core.LifeCycleEvent, env *theme.Env) {
	ctx.Init()
	if w.child != nil {
		w.child.Lifecycle(ctx, event, env)
	}
}

func (w *SizedBox) Layout(ctx *core.LayoutCtx, bc core.BoxConstraints, env *theme.Env) graphics.Size {
	ctx.Init()
	if w.child == nil {
		size := graphics.Size{}
		if w.hasWidth {
			size.Width = w.width
		}
		if w.hasHeight {
			size.Height = w.height
		}
		return bc.Constrain(size)
	}
	childSize := w.child.Layout(ctx, w.childConstraints(bc), env)
	ctx.PlaceChild(w.child, graphics.Offset{})
	size := childSize
	if w.hasWidth {
		size.Width = w.width
	}
	if w.hasHeight {
		size.Height = w.height
	}
	return bc.Constrain(size)
}

func (w *SizedBox) Paint(ctx *core.PaintCtx, env *theme.Env) {
	ctx.Init()
	if w.child != nil {
		w.child.Paint(ctx, env)
	}
}

func (w *SizedBox) Children() []*core.WidgetPod {
	if w.child == nil {
		return nil
	}
	return []*core.WidgetPod{w.child}
}

// SizedBoxMut is the mutable view of a SizedBox.
type SizedBoxMut struct {
	*core.WidgetMut
	widget *SizedBox
}

// AsSizedBox downcasts a mutable view to a SizedBox view.
func AsSizedBox(m *core.WidgetMut) (SizedBoxMut, error) {
	w, err := core.Downcast[*SizedBox](m)
	if err != nil {
		return SizedBoxMut{}, err
	}
	return SizedBoxMut{WidgetMut: m, widget: w}, nil
}

// SetChild replaces the box's child.
func (m SizedBoxMut) SetChild(child core.Widget) {
	m.widget.child = core.NewWidgetPod(child)
	m.Ctx.ChildrenChanged()
}

// RemoveChild drops the box's child.
func (m SizedBoxMut) RemoveChild() {
	m.widget.child = nil
	m.Ctx.ChildrenChanged()
}

func clampAxis(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
