package widgets

import (
	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// Axis selects a Flex container's main direction.
type Axis int

// Flex directions.
const (
	Horizontal Axis = iota
	Vertical
)

type flexChild struct {
	pod  *core.WidgetPod
	flex float64
}

// Flex lays out children along one axis. Fixed children get their
// preferred size; flexible children share the remaining space in
// proportion to their flex factor. Children are cross-axis centered.
type Flex struct {
	axis     Axis
	children []flexChild
}

// NewRow creates a horizontal Flex.
func NewRow() *Flex { return &Flex{axis: Horizontal} }

// NewColumn creates a vertical Flex.
func NewColumn() *Flex { return &Flex{axis: Vertical} }

// WithChild appends a fixed-size child. Returns the Flex for chaining.
func (w *Flex) WithChild(child core.Widget) *Flex {
	w.children = append(w.children, flexChild{pod: core.NewWidgetPod(child)})
	return w
}

// WithFlexChild appends a child sharing leftover space by the given
// factor. Factors at or below zero are treated as fixed.
func (w *Flex) WithFlexChild(child core.Widget, flex float64) *Flex {
	if flex <= 0 {
		return w.WithChild(child)
	}
	w.children = append(w.children, flexChild{pod: core.NewWidgetPod(child), flex: flex})
	return w
}

// ChildPods returns the child pods in layout order.
func (w *Flex) ChildPods() []*core.WidgetPod {
	pods := make([]*core.WidgetPod, len(w.children))
	for i, c := range w.children {
		pods[i] = c.pod
	}
	return pods
}

func (w *Flex) mainCross(size graphics.Size) (main, cross float64) {
	if w.axis == Horizontal {
		return size.Width, size.Height
	}
	return size.Height, size.Width
}

func (w *Flex) pack(main, cross float64) graphics.Size {
	if w.axis == Horizontal {
		return graphics.Size{Width: main, Height: cross}
	}
	return graphics.Size{Width: cross, Height: main}
}

func (w *Flex) OnEvent(ctx *core.EventCtx, event core.Event, env *theme.Env) {
	ctx.Init()
	for _, c := range w.children {
		c.pod.OnEvent(ctx, event, env)
	}
}

func (w *Flex) OnStatusChange(ctx *core.LifeCycleCtx, _ core.StatusChange, _ *theme.Env) {
	ctx.Init()
}

func (w *Flex) Lifecycle(ctx *core.LifeCycleCtx, event core.LifeCycleEvent, env *theme.Env) {
	ctx.Init()
	for _, c := range w.children {
		c.pod.Lifecycle(ctx, event, env)
	}
}

func (w *Flex) Layout(ctx *core.LayoutCtx, bc core.BoxConstraints, env *theme.Env) graphics.Size {
	ctx.Init()

	maxMain, maxCross := w.mainCross(bc.Max)
	loose := bc.Loosen()

	// Fixed children first, to learn how much space is left over.
	var usedMain, maxChildCross, totalFlex float64
	sizes := make([]graphics.Size, len(w.children))
	for i, c := range w.children {
		if c.flex > 0 {
			totalFlex += c.flex
			continue
		}
		sizes[i] = c.pod.Layout(ctx, loose, env)
		main, cross := w.mainCross(sizes[i])
		usedMain += main
		if cross > maxChildCross {
			maxChildCross = cross
		}
	}

	if totalFlex > 0 {
		remaining := maxMain - usedMain
		if remaining < 0 {
			remaining = 0
		}
		for i, c := range w.children {
			if c.flex <= 0 {
				continue
			}
			childMain := remaining * c.flex / totalFlex
			childBC := core.BoxConstraints{
				Min: w.pack(childMain, 0),
				Max: w.pack(childMain, maxCross),
			}
			sizes[i] = c.pod.Layout(ctx, childBC, env)
			main, cross := w.mainCross(sizes[i])
			usedMain += main
			if cross > maxChildCross {
				maxChildCross = cross
			}
		}
	}

	size := bc.Constrain(w.pack(usedMain, maxChildCross))
	_, crossAvail := w.mainCross(size)

	var offset float64
	for i, c := range w.children {
		main, cross := w.mainCross(sizes[i])
		crossOffset := (crossAvail - cross) / 2
		if w.axis == Horizontal {
			ctx.PlaceChild(c.pod, graphics.Offset{X: offset, Y: crossOffset})
		} else {
			ctx.PlaceChild(c.pod, graphics.Offset{X: crossOffset, Y: offset})
		}
		offset += main
	}
	return size
}

func (w *Flex) Paint(ctx *core.PaintCtx, env *theme.Env) {
	ctx.Init()
	for _, c := range w.children {
		c.pod.Paint(ctx, env)
	}
}

func (w *Flex) Children() []*core.WidgetPod {
	return w.ChildPods()
}

// FlexMut is the mutable view of a Flex.
type FlexMut struct {
	*core.WidgetMut
	widget *Flex
}

// AsFlex downcasts a mutable view to a Flex view.
func AsFlex(m *core.WidgetMut) (FlexMut, error) {
	w, err := core.Downcast[*Flex](m)
	if err != nil {
		return FlexMut{}, err
	}
	return FlexMut{WidgetMut: m, widget: w}, nil
}

// AddChild appends a fixed-size child.
func (m FlexMut) AddChild(child core.Widget) {
	m.widget.children = append(m.widget.children, flexChild{pod: core.NewWidgetPod(child)})
	m.Ctx.ChildrenChanged()
}

// AddFlexChild appends a flexible child.
func (m FlexMut) AddFlexChild(child core.Widget, flex float64) {
	if flex <= 0 {
		m.AddChild(child)
		return
	}
	m.widget.children = append(m.widget.children, flexChild{pod: core.NewWidgetPod(child), flex: flex})
	m.Ctx.ChildrenChanged()
}

// RemoveChild removes the child at the given index.
func (m FlexMut) RemoveChild(index int) {
	if index < 0 || index >= len(m.widget.children) {
		return
	}
	m.widget.children = append(m.widget.children[:index], m.widget.children[index+1:]...)
	m.Ctx.ChildrenChanged()
}

// MutateChild runs f with a mutable view of the child at the given
// index.
func (m FlexMut) MutateChild(index int, f func(*core.WidgetMut)) {
	if index < 0 || index >= len(m.widget.children) {
		return
	}
	m.WidgetMut.MutateChild(m.widget.children[index].pod, f)
}
