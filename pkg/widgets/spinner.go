package widgets

import (
	"math"

	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// Spinner is an animated progress indicator for work of unknown
// duration. It drives itself with animation frames from the moment it
// is added to the tree.
type Spinner struct {
	// t is the animation phase in [0, 1).
	t float64

	color    graphics.Color
	hasColor bool
}

// NewSpinner creates a spinner in the themed text color.
func NewSpinner() *Spinner {
	return &Spinner{}
}

// WithColor overrides the spinner color.
func (w *Spinner) WithColor(color graphics.Color) *Spinner {
	w.color = color
	w.hasColor = true
	return w
}

func (w *Spinner) spokeColor(env *theme.Env) graphics.Color {
	if w.hasColor {
		return w.color
	}
	return env.Color(theme.TextColor)
}

func (w *Spinner) OnEvent(ctx *core.EventCtx, event core.Event, _ *theme.Env) {
	ctx.Init()
	if e, ok := event.(core.AnimFrameEvent); ok {
		w.t += e.Interval.Seconds()
		w.t -= math.Floor(w.t)
		ctx.RequestAnimFrame()
		ctx.RequestPaint()
	}
}

func (w *Spinner) OnStatusChange(ctx *core.LifeCycleCtx, _ core.StatusChange, _ *theme.Env) {
	ctx.Init()
}

func (w *Spinner) Lifecycle(ctx *core.LifeCycleCtx, event core.LifeCycleEvent, _ *theme.Env) {
	ctx.Init()
	if _, ok := event.(core.WidgetAddedEvent); ok {
		ctx.RequestAnimFrame()
		ctx.RequestPaint()
	}
}

// Layout fills bounded constraints and falls back to a themed square
// when either axis is unbounded.
func (w *Spinner) Layout(ctx *core.LayoutCtx, bc core.BoxConstraints, env *theme.Env) graphics.Size {
	ctx.Init()
	if bc.IsWidthBounded() && bc.IsHeightBounded() {
		return bc.Max
	}
	side := env.Float(theme.BasicWidgetHeight)
	return bc.Constrain(graphics.Size{Width: side, Height: side})
}

func (w *Spinner) Paint(ctx *core.PaintCtx, env *theme.Env) {
	ctx.Init()
	size := ctx.Size()
	center := graphics.Offset{X: size.Width / 2, Y: size.Height / 2}
	outer := math.Min(size.Width, size.Height) / 2
	inner := outer * 0.5
	color := w.spokeColor(env)

	const spokes = 12
	for i := 0; i < spokes; i++ {
		angle := float64(i)/spokes*2*math.Pi - math.Pi/2
		phase := float64(i)/spokes + w.t
		phase -= math.Floor(phase)
		alpha := 0.2 + 0.8*phase
		dir := graphics.FromAngle(angle)
		from := center.Add(dir.Scale(inner))
		to := center.Add(dir.Scale(outer))
		ctx.StrokeLine(from, to, color.WithAlpha(alpha), 2)
	}
}

func (w *Spinner) Children() []*core.WidgetPod { return nil }

// SpinnerMut is the mutable view of a Spinner.
type SpinnerMut struct {
	*core.WidgetMut
	widget *Spinner
}

// AsSpinner downcasts a mutable view to a Spinner view.
func AsSpinner(m *core.WidgetMut) (SpinnerMut, error) {
	w, err := core.Downcast[*Spinner](m)
	if err != nil {
		return SpinnerMut{}, err
	}
	return SpinnerMut{WidgetMut: m, widget: w}, nil
}

// SetColor overrides the spinner color.
func (m SpinnerMut) SetColor(color graphics.Color) {
	m.widget.color = color
	m.widget.hasColor = true
	m.Ctx.RequestPaint()
}
