package graphics

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the component-wise difference of two offsets.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Scale returns the offset multiplied by factor.
func (o Offset) Scale(factor float64) Offset {
	return Offset{X: o.X * factor, Y: o.Y * factor}
}

// FromAngle returns a unit vector pointing at the given angle in radians.
func FromAngle(radians float64) Offset {
	return Offset{X: math.Cos(radians), Y: math.Sin(radians)}
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// ToRect returns the rectangle from the origin spanning this size.
func (s Size) ToRect() Rect {
	return Rect{Right: s.Width, Bottom: s.Height}
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// RectFromOriginSize constructs a Rect from an origin point and a size.
func RectFromOriginSize(origin Offset, size Size) Rect {
	return RectFromLTWH(origin.X, origin.Y, size.Width, size.Height)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Offset {
	return Offset{X: r.Left, Y: r.Top}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{
		X: (r.Left + r.Right) * 0.5,
		Y: (r.Top + r.Bottom) * 0.5,
	}
}

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Right-r.Left < epsilon || r.Bottom-r.Top < epsilon
}

// Contains reports whether the point lies inside the rectangle.
// Points on the left/top edge are inside, points on the right/bottom
// edge are outside, so adjacent rectangles don't both claim the seam.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.Left < other.Right && other.Left < r.Right &&
		r.Top < other.Bottom && other.Top < r.Bottom
}

// Union returns the smallest rectangle enclosing both rectangles.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

// Intersect returns the overlapping area of two rectangles, or the zero
// Rect if they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Left:   math.Max(r.Left, other.Left),
		Top:    math.Max(r.Top, other.Top),
		Right:  math.Min(r.Right, other.Right),
		Bottom: math.Min(r.Bottom, other.Bottom),
	}
	if out.Left >= out.Right || out.Top >= out.Bottom {
		return Rect{}
	}
	return out
}

// Translate returns the rectangle shifted by the given offset.
func (r Rect) Translate(by Offset) Rect {
	return Rect{
		Left:   r.Left + by.X,
		Top:    r.Top + by.Y,
		Right:  r.Right + by.X,
		Bottom: r.Bottom + by.Y,
	}
}

// Region is a paint-invalidation area tracked as a single bounding
// rectangle. Adding rectangles grows the bounds; the pipeline only ever
// needs "does this subtree intersect the damage" queries, so a bounding
// box is enough.
type Region struct {
	bounds Rect
}

// RegionFromRect returns a region covering exactly the given rectangle.
func RegionFromRect(rect Rect) Region {
	return Region{bounds: rect}
}

// AddRect grows the region to include the given rectangle.
func (g *Region) AddRect(rect Rect) {
	g.bounds = g.bounds.Union(rect)
}

// Union grows the region to include another region.
func (g *Region) Union(other Region) {
	g.bounds = g.bounds.Union(other.bounds)
}

// Bounds returns the bounding rectangle of the region.
func (g Region) Bounds() Rect {
	return g.bounds
}

// IsEmpty reports whether the region covers no area.
func (g Region) IsEmpty() bool {
	return g.bounds.IsEmpty()
}

// Intersects reports whether the region overlaps the rectangle.
func (g Region) Intersects(rect Rect) bool {
	return g.bounds.Intersects(rect)
}

// Clear empties the region.
func (g *Region) Clear() {
	g.bounds = Rect{}
}
