package widgets

import (
	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// Button is a clickable widget with a text label. A press captures the
// pointer; releasing over the button emits core.ButtonPressed, while
// releasing elsewhere cancels the press.
type Button struct {
	label *core.WidgetPod
}

// NewButton creates a button with the given label text.
func NewButton(text string) *Button {
	return &Button{label: core.NewWidgetPod(NewLabel(text))}
}

const buttonPadding = 8

func (w *Button) OnEvent(ctx *core.EventCtx, event core.Event, _ *theme.Env) {
	ctx.Init()
	switch e := event.(type) {
	case core.MouseDownEvent:
		if e.Mouse.Button == core.MouseButtonLeft {
			ctx.SetActive(true)
			ctx.RequestPaint()
		}
	case core.MouseUpEvent:
		if e.Mouse.Button == core.MouseButtonLeft && ctx.IsActive() {
			ctx.SetActive(false)
			if ctx.IsHot() {
				ctx.SubmitAction(core.ButtonPressed{})
			}
			ctx.RequestPaint()
		}
	}
}

func (w *Button) OnStatusChange(ctx *core.LifeCycleCtx, change core.StatusChange, _ *theme.Env) {
	ctx.Init()
	if _, ok := change.(core.HotChanged); ok {
		ctx.RequestPaint()
	}
}

func (w *Button) Lifecycle(ctx *core.LifeCycleCtx, event core.LifeCycleEvent, env *theme.Env) {
	ctx.Init()
	w.label.Lifecycle(ctx, event, env)
}

func (w *Button) Layout(ctx *core.LayoutCtx, bc core.BoxConstraints, env *theme.Env) graphics.Size {
	ctx.Init()
	padding := graphics.Size{Width: 2 * buttonPadding, Height: 2 * buttonPadding}
	labelBC := bc.Loosen().Shrink(padding)
	labelSize := w.label.Layout(ctx, labelBC, env)

	minHeight := env.Float(theme.BasicWidgetHeight)
	size := bc.Constrain(graphics.Size{
		Width:  labelSize.Width + padding.Width,
		Height: max(labelSize.Height+padding.Height, minHeight),
	})
	ctx.PlaceChild(w.label, graphics.Offset{
		X: (size.Width - labelSize.Width) / 2,
		Y: (size.Height - labelSize.Height) / 2,
	})
	return size
}

func (w *Button) Paint(ctx *core.PaintCtx, env *theme.Env) {
	ctx.Init()
	rect := ctx.Size().ToRect()

	bg := env.Color(theme.ButtonColor)
	if ctx.IsActive() && ctx.IsHot() {
		bg = bg.Darken()
	} else if ctx.IsHot() {
		bg = bg.Lighten()
	}
	ctx.FillRect(rect, bg)

	border := env.Color(theme.ButtonBorderColor)
	width := env.Float(theme.ButtonBorderWidth)
	strokeRectBorder(ctx, rect, border, width)

	w.label.Paint(ctx, env)
}

func (w *Button) Children() []*core.WidgetPod {
	return []*core.WidgetPod{w.label}
}

// ButtonMut is the mutable view of a Button.
type ButtonMut struct {
	*core.WidgetMut
	widget *Button
}

// AsButton downcasts a mutable view to a Button view.
func AsButton(m *core.WidgetMut) (ButtonMut, error) {
	w, err := core.Downcast[*Button](m)
	if err != nil {
		return ButtonMut{}, err
	}
	return ButtonMut{WidgetMut: m, widget: w}, nil
}

// SetText replaces the button's label text.
func (m ButtonMut) SetText(text string) {
	m.MutateChild(m.widget.label, func(child *core.WidgetMut) {
		label, err := AsLabel(child)
		if err != nil {
			return
		}
		label.SetText(text)
	})
}

func strokeRectBorder(ctx *core.PaintCtx, rect graphics.Rect, color graphics.Color, width float64) {
	if width <= 0 {
		return
	}
	corners := []graphics.Offset{
		{X: rect.Left, Y: rect.Top},
		{X: rect.Right, Y: rect.Top},
		{X: rect.Right, Y: rect.Bottom},
		{X: rect.Left, Y: rect.Bottom},
	}
	for i := 0; i < 4; i++ {
		ctx.StrokeLine(corners[i], corners[(i+1)%4], color, width)
	}
}
