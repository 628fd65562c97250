package widgets

import (
	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// Label draws a single line of text.
type Label struct {
	text string

	// color overrides the themed text color when set.
	color    graphics.Color
	hasColor bool
}

// NewLabel creates a label showing the given text.
func NewLabel(text string) *Label {
	return &Label{text: text}
}

// WithColor overrides the themed text color.
func (w *Label) WithColor(color graphics.Color) *Label {
	w.color = color
	w.hasColor = true
	return w
}

// Text returns the label's current text.
func (w *Label) Text() string { return w.text }

func (w *Label) textColor(env *theme.Env) graphics.Color {
	if w.hasColor {
		return w.color
	}
	return env.Color(theme.TextColor)
}

func (w *Label) OnEvent(ctx *core.EventCtx, _ core.Event, _ *theme.Env) {
	ctx.Init()
}

func (w *Label) OnStatusChange(ctx *core.LifeCycleCtx, _ core.StatusChange, _ *theme.Env) {
	ctx.Init()
}

func (w *Label) Lifecycle(ctx *core.LifeCycleCtx, _ core.LifeCycleEvent, _ *theme.Env) {
	ctx.Init()
}

func (w *Label) Layout(ctx *core.LayoutCtx, bc core.BoxConstraints, _ *theme.Env) graphics.Size {
	ctx.Init()
	return bc.Constrain(graphics.MeasureText(w.text))
}

func (w *Label) Paint(ctx *core.PaintCtx, env *theme.Env) {
	ctx.Init()
	ctx.DrawText(w.text, graphics.Offset{}, w.textColor(env))
}

func (w *Label) Children() []*core.WidgetPod { return nil }

// LabelMut is the mutable view of a Label.
type LabelMut struct {
	*core.WidgetMut
	widget *Label
}

// AsLabel downcasts a mutable view to a Label view.
func AsLabel(m *core.WidgetMut) (LabelMut, error) {
	w, err := core.Downcast[*Label](m)
	if err != nil {
		return LabelMut{}, err
	}
	return LabelMut{WidgetMut: m, widget: w}, nil
}

// SetText replaces the label's text.
func (m LabelMut) SetText(text string) {
	m.widget.text = text
	m.Ctx.RequestLayout()
}

// SetColor overrides the text color.
func (m LabelMut) SetColor(color graphics.Color) {
	m.widget.color = color
	m.widget.hasColor = true
	m.Ctx.RequestPaint()
}

// ClearColor reverts to the themed text color.
func (m LabelMut) ClearColor() {
	m.widget.hasColor = false
	m.Ctx.RequestPaint()
}
