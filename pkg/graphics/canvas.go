package graphics

// Canvas is the draw-command sink widgets paint into. Implementations
// include the recording canvas produced by PictureRecorder and the
// software raster Surface.
type Canvas interface {
	// Save pushes the current transform and clip state.
	Save()
	// Restore pops the most recent Save.
	Restore()
	// Translate shifts the origin of subsequent draw calls.
	Translate(dx, dy float64)
	// ClipRect intersects the clip with a rectangle in local coordinates.
	ClipRect(rect Rect)
	// FillRect fills a rectangle with a solid color.
	FillRect(rect Rect, color Color)
	// StrokeLine strokes a line segment with the given width.
	StrokeLine(from, to Offset, color Color, width float64)
	// DrawText draws a single line of text below the given top-left corner.
	DrawText(text string, origin Offset, color Color)
	// DrawImage draws an image buffer scaled into the destination rect.
	DrawImage(buf *ImageBuf, dst Rect)
}
