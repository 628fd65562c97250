package graphics

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Surface is a software raster Canvas drawing into an RGBA pixel buffer.
// The transform stack supports translation only, which is all the
// painting pipeline emits.
type Surface struct {
	img   *image.RGBA
	state surfaceState
	stack []surfaceState
}

type surfaceState struct {
	offset Offset
	clip   Rect
}

// NewSurface creates a surface of the given pixel dimensions, cleared
// to transparent.
func NewSurface(width, height int) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &Surface{
		img: img,
		state: surfaceState{
			clip: RectFromLTWH(0, 0, float64(width), float64(height)),
		},
	}
}

// Image returns the underlying pixel buffer.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Clear fills the whole surface with a color, ignoring clip and transform.
func (s *Surface) Clear(c Color) {
	r, g, b, a := c.Bytes()
	col := color.RGBA{R: r, G: g, B: b, A: a}
	bounds := s.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s.img.SetRGBA(x, y, col)
		}
	}
}

// Save pushes the current transform and clip state.
func (s *Surface) Save() {
	s.stack = append(s.stack, s.state)
}

// Restore pops the most recent Save. Unbalanced restores are ignored.
func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Translate shifts the origin of subsequent draw calls.
func (s *Surface) Translate(dx, dy float64) {
	s.state.offset.X += dx
	s.state.offset.Y += dy
}

// ClipRect intersects the clip with a rectangle in local coordinates.
func (s *Surface) ClipRect(rect Rect) {
	s.state.clip = s.state.clip.Intersect(rect.Translate(s.state.offset))
}

// FillRect fills a rectangle with a solid color.
func (s *Surface) FillRect(rect Rect, c Color) {
	device := rect.Translate(s.state.offset).Intersect(s.state.clip)
	if device.IsEmpty() {
		return
	}
	x0 := int(math.Floor(device.Left))
	y0 := int(math.Floor(device.Top))
	x1 := int(math.Ceil(device.Right))
	y1 := int(math.Ceil(device.Bottom))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.blend(x, y, c)
		}
	}
}

// StrokeLine strokes a line segment with the given width.
// Pixels within half the stroke width of the segment are covered, with
// no edge antialiasing.
func (s *Surface) StrokeLine(from, to Offset, c Color, width float64) {
	from = from.Add(s.state.offset)
	to = to.Add(s.state.offset)
	half := width / 2
	box := Rect{
		Left:   math.Min(from.X, to.X) - half,
		Top:    math.Min(from.Y, to.Y) - half,
		Right:  math.Max(from.X, to.X) + half,
		Bottom: math.Max(from.Y, to.Y) + half,
	}.Intersect(s.state.clip)
	if box.IsEmpty() {
		return
	}
	x0, y0 := int(math.Floor(box.Left)), int(math.Floor(box.Top))
	x1, y1 := int(math.Ceil(box.Right)), int(math.Ceil(box.Bottom))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := Offset{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if distanceToSegment(p, from, to) <= half {
				s.blend(x, y, c)
			}
		}
	}
}

// DrawText draws a single line of text using the built-in 7x13 face.
func (s *Surface) DrawText(text string, origin Offset, c Color) {
	face := basicfont.Face7x13
	r, g, b, a := c.Bytes()
	clip := s.state.clip
	dst := &clippedImage{img: s.img, clip: image.Rect(
		int(math.Floor(clip.Left)), int(math.Floor(clip.Top)),
		int(math.Ceil(clip.Right)), int(math.Ceil(clip.Bottom)),
	)}
	drawer := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: r, G: g, B: b, A: a}),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(math.Round(origin.X + s.state.offset.X))),
			Y: fixed.I(int(math.Round(origin.Y+s.state.offset.Y)) + face.Ascent),
		},
	}
	drawer.DrawString(text)
}

// DrawImage draws an image buffer scaled into the destination rect.
func (s *Surface) DrawImage(buf *ImageBuf, dst Rect) {
	if buf.IsEmpty() {
		return
	}
	device := dst.Translate(s.state.offset)
	dstRect := image.Rect(
		int(math.Round(device.Left)), int(math.Round(device.Top)),
		int(math.Round(device.Right)), int(math.Round(device.Bottom)),
	)
	clip := image.Rect(
		int(math.Floor(s.state.clip.Left)), int(math.Floor(s.state.clip.Top)),
		int(math.Ceil(s.state.clip.Right)), int(math.Ceil(s.state.clip.Bottom)),
	)
	src := buf.Image()
	xdraw.ApproxBiLinear.Scale(
		&clippedImage{img: s.img, clip: clip},
		dstRect, src, src.Bounds(), xdraw.Over, nil,
	)
}

// blend writes a color at (x, y) with source-over alpha blending.
func (s *Surface) blend(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}).In(s.img.Bounds()) {
		return
	}
	sr, sg, sb, sa := c.RGBAF()
	if sa <= 0 {
		return
	}
	old := s.img.RGBAAt(x, y)
	dr := float64(old.R) / maxByte
	dg := float64(old.G) / maxByte
	db := float64(old.B) / maxByte
	da := float64(old.A) / maxByte
	outA := sa + da*(1-sa)
	var outR, outG, outB float64
	if outA > 0 {
		outR = (sr*sa + dr*da*(1-sa)) / outA
		outG = (sg*sa + dg*da*(1-sa)) / outA
		outB = (sb*sa + db*da*(1-sa)) / outA
	}
	s.img.SetRGBA(x, y, color.RGBA{
		R: uint8(outR*maxByte + 0.5),
		G: uint8(outG*maxByte + 0.5),
		B: uint8(outB*maxByte + 0.5),
		A: uint8(outA*maxByte + 0.5),
	})
}

func distanceToSegment(p, a, b Offset) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		d := p.Sub(a)
		return math.Hypot(d.X, d.Y)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	closest := a.Add(ab.Scale(t))
	d := p.Sub(closest)
	return math.Hypot(d.X, d.Y)
}

// clippedImage restricts writes to a clip rectangle.
type clippedImage struct {
	img  *image.RGBA
	clip image.Rectangle
}

func (c *clippedImage) ColorModel() color.Model { return c.img.ColorModel() }
func (c *clippedImage) Bounds() image.Rectangle { return c.img.Bounds() }
func (c *clippedImage) At(x, y int) color.Color { return c.img.At(x, y) }

func (c *clippedImage) Set(x, y int, col color.Color) {
	if (image.Point{X: x, Y: y}).In(c.clip) {
		c.img.Set(x, y, col)
	}
}
