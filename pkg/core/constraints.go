package core

import (
	"math"

	"github.com/go-mason/mason/pkg/graphics"
)

// Unbounded marks a constraint axis with no upper limit.
const Unbounded = math.MaxFloat64

// BoxConstraints is the range of sizes a parent allows a child.
type BoxConstraints struct {
	Min graphics.Size
	Max graphics.Size
}

// Tight returns constraints admitting exactly one size.
func Tight(size graphics.Size) BoxConstraints {
	return BoxConstraints{Min: size, Max: size}
}

// Loose returns constraints from zero up to the given size.
func Loose(size graphics.Size) BoxConstraints {
	return BoxConstraints{Max: size}
}

// UnboundedConstraints returns constraints with no upper limit on
// either axis.
func UnboundedConstraints() BoxConstraints {
	return BoxConstraints{Max: graphics.Size{Width: Unbounded, Height: Unbounded}}
}

// IsWidthBounded reports whether the width has a finite upper limit.
func (bc BoxConstraints) IsWidthBounded() bool {
	return bc.Max.Width < Unbounded
}

// IsHeightBounded reports whether the height has a finite upper limit.
func (bc BoxConstraints) IsHeightBounded() bool {
	return bc.Max.Height < Unbounded
}

// IsTight reports whether exactly one size satisfies the constraints.
func (bc BoxConstraints) IsTight() bool {
	return bc.Min == bc.Max
}

// Constrain clamps a size into the allowed range.
func (bc BoxConstraints) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  clamp(size.Width, bc.Min.Width, bc.Max.Width),
		Height: clamp(size.Height, bc.Min.Height, bc.Max.Height),
	}
}

// IsSatisfiedBy reports whether the size lies within the constraints.
func (bc BoxConstraints) IsSatisfiedBy(size graphics.Size) bool {
	return bc.Constrain(size) == size
}

// Loosen returns the constraints with the minimum dropped to zero.
func (bc BoxConstraints) Loosen() BoxConstraints {
	return BoxConstraints{Max: bc.Max}
}

// Shrink returns the constraints reduced by the given size on both the
// minimum and maximum, never below zero.
func (bc BoxConstraints) Shrink(by graphics.Size) BoxConstraints {
	shrink := func(v, by float64) float64 {
		if v >= Unbounded {
			return v
		}
		return math.Max(0, v-by)
	}
	return BoxConstraints{
		Min: graphics.Size{
			Width:  shrink(bc.Min.Width, by.Width),
			Height: shrink(bc.Min.Height, by.Height),
		},
		Max: graphics.Size{
			Width:  shrink(bc.Max.Width, by.Width),
			Height: shrink(bc.Max.Height, by.Height),
		},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
