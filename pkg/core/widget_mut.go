package core

import (
	stderrors "errors"
	"fmt"

	"github.com/go-mason/mason/pkg/theme"
)

// ErrWidgetNotFound is returned when no widget with the requested id
// exists in the tree.
var ErrWidgetNotFound = stderrors.New("widget not found")

// ErrWrongWidgetType is returned when a widget exists but is not of the
// requested concrete type.
var ErrWrongWidgetType = stderrors.New("widget has wrong type")

// WidgetMut is a scoped mutable view of a widget. It exists only inside
// an edit closure run by the framework; the attached context records
// the invalidation each mutation requires, and the framework runs the
// follow-up passes once the closure returns.
type WidgetMut struct {
	Ctx    *WidgetCtx
	widget Widget
	env    *theme.Env
}

func mutFromPod(p *WidgetPod, global *GlobalPassCtx, env *theme.Env) WidgetMut {
	return WidgetMut{
		Ctx: &WidgetCtx{widgetCtx{
			global:     global,
			state:      &p.state,
			pass:       "mutate",
			widgetType: p.widgetType(),
		}},
		widget: p.widget,
		env:    env,
	}
}

// Widget returns the underlying widget.
func (m *WidgetMut) Widget() Widget { return m.widget }

// Env returns the environment in scope for this edit.
func (m *WidgetMut) Env() *theme.Env { return m.env }

// MutateChild runs f with a mutable view of the given child and merges
// the child's invalidation into this widget afterward.
func (m *WidgetMut) MutateChild(child *WidgetPod, f func(*WidgetMut)) {
	childMut := mutFromPod(child, m.Ctx.global, m.env)
	f(&childMut)
	child.state.MergeUp(m.Ctx.state)
}

// Downcast returns the concrete widget behind a mutable view.
// A nil view yields ErrWidgetNotFound; a type mismatch yields an error
// wrapping ErrWrongWidgetType.
func Downcast[W Widget](m *WidgetMut) (W, error) {
	var zero W
	if m == nil || m.widget == nil {
		return zero, ErrWidgetNotFound
	}
	w, ok := m.widget.(W)
	if !ok {
		return zero, fmt.Errorf("%w: have %T", ErrWrongWidgetType, m.widget)
	}
	return w, nil
}
