package core

// WidgetRef is a read-only view of a widget and its state. Refs are
// cheap values; they stay valid only while the tree is not mutated, so
// callers must not hold one across a pass.
type WidgetRef struct {
	widget Widget
	state  *WidgetState
}

func refFromPod(p *WidgetPod) WidgetRef {
	return WidgetRef{widget: p.widget, state: &p.state}
}

// Widget returns the underlying widget. Callers must not mutate it
// through this reference.
func (r WidgetRef) Widget() Widget { return r.widget }

// State returns the widget's state record for inspection.
func (r WidgetRef) State() *WidgetState { return r.state }

// ID returns the widget's id.
func (r WidgetRef) ID() WidgetId { return r.state.id }

// Children returns read-only views of the widget's children.
func (r WidgetRef) Children() []WidgetRef {
	pods := r.widget.Children()
	refs := make([]WidgetRef, len(pods))
	for i, pod := range pods {
		refs[i] = refFromPod(pod)
	}
	return refs
}

// FindByID searches this subtree depth-first for the given id.
func (r WidgetRef) FindByID(id WidgetId) (WidgetRef, bool) {
	if r.state.id == id {
		return r, true
	}
	for _, child := range r.Children() {
		if found, ok := child.FindByID(id); ok {
			return found, true
		}
	}
	return WidgetRef{}, false
}
