package core

import "github.com/go-mason/mason/pkg/graphics"

// WidgetState is the per-node cache threaded through every pass: layout
// geometry, dirty flags, and status flags. Each WidgetPod owns exactly
// one state record for its widget.
//
// Invariant: any dirty flag set on a child is OR-ed into the ancestor
// chain (MergeUp) before the pass that set it completes, so a localized
// change is visible at the root without walking the tree.
type WidgetState struct {
	id WidgetId

	// origin is the widget's position relative to its parent, assigned
	// by the parent's PlaceChild call.
	origin graphics.Offset
	// windowOrigin is the widget's position relative to the window,
	// recomputed from parent placements after every layout pass.
	windowOrigin graphics.Offset
	size         graphics.Size

	needsLayout     bool
	needsPaint      bool
	childrenChanged bool

	// isNew is true until the widget receives WidgetAdded.
	isNew bool
	// isAdded is true once WidgetAdded has been delivered.
	isAdded bool
	// isPlaced is true once the parent's layout placed this widget.
	// Unplaced widgets are skipped by paint and hit-testing.
	isPlaced bool

	isHot    bool
	isActive bool
	hasFocus bool

	// requestAnim is set by RequestAnimFrame and cleared when the next
	// AnimFrame event is delivered.
	requestAnim bool
}

// newWidgetState returns the state for a freshly constructed widget.
// Every flag that gates a pass starts dirty: a new subtree must be
// announced (childrenChanged), laid out, and painted.
func newWidgetState(id WidgetId) WidgetState {
	return WidgetState{
		id:              id,
		needsLayout:     true,
		needsPaint:      true,
		childrenChanged: true,
		isNew:           true,
	}
}

// ID returns the widget's process-unique id.
func (s *WidgetState) ID() WidgetId { return s.id }

// Size returns the size computed by the last layout pass.
func (s *WidgetState) Size() graphics.Size { return s.size }

// Origin returns the widget's position relative to its parent.
func (s *WidgetState) Origin() graphics.Offset { return s.origin }

// LayoutRect returns the widget's rectangle relative to its parent.
func (s *WidgetState) LayoutRect() graphics.Rect {
	return graphics.RectFromOriginSize(s.origin, s.size)
}

// WindowLayoutRect returns the widget's rectangle relative to the window.
func (s *WidgetState) WindowLayoutRect() graphics.Rect {
	return graphics.RectFromOriginSize(s.windowOrigin, s.size)
}

// NeedsLayout reports whether a layout pass must revisit this subtree.
func (s *WidgetState) NeedsLayout() bool { return s.needsLayout }

// NeedsPaint reports whether a paint pass must revisit this subtree.
func (s *WidgetState) NeedsPaint() bool { return s.needsPaint }

// ChildrenChanged reports whether this subtree has children awaiting
// WidgetAdded.
func (s *WidgetState) ChildrenChanged() bool { return s.childrenChanged }

// IsHot reports whether the pointer is over the widget.
func (s *WidgetState) IsHot() bool { return s.isHot }

// IsActive reports whether the widget captured the pointer.
func (s *WidgetState) IsActive() bool { return s.isActive }

// HasFocus reports whether the widget holds input focus.
func (s *WidgetState) HasFocus() bool { return s.hasFocus }

// IsPlaced reports whether the parent's last layout placed this widget.
func (s *WidgetState) IsPlaced() bool { return s.isPlaced }

// MergeUp ORs this state's propagating flags into the parent state.
// Called by the pass driver after every child visit; this is the only
// mechanism by which dirtiness reaches the root.
func (s *WidgetState) MergeUp(parent *WidgetState) {
	parent.needsLayout = parent.needsLayout || s.needsLayout
	parent.needsPaint = parent.needsPaint || s.needsPaint
	parent.childrenChanged = parent.childrenChanged || s.childrenChanged
	parent.requestAnim = parent.requestAnim || s.requestAnim
}
