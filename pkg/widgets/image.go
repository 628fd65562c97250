package widgets

import (
	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// Image draws a decoded image buffer, scaled to its laid-out size.
// An empty buffer paints nothing.
type Image struct {
	buf *graphics.ImageBuf
}

// NewImage creates an image widget over the given buffer.
func NewImage(buf *graphics.ImageBuf) *Image {
	if buf == nil {
		buf = graphics.EmptyImageBuf()
	}
	return &Image{buf: buf}
}

func (w *Image) OnEvent(ctx *core.EventCtx, _ core.Event, _ *theme.Env) {
	ctx.Init()
}

func (w *Image) OnStatusChange(ctx *core.LifeCycleCtx, _ core.StatusChange, _ *theme.Env) {
	ctx.Init()
}

func (w *Image) Lifecycle(ctx *core.LifeCycleCtx, _ core.LifeCycleEvent, _ *theme.Env) {
	ctx.Init()
}

func (w *Image) Layout(ctx *core.LayoutCtx, bc core.BoxConstraints, _ *theme.Env) graphics.Size {
	ctx.Init()
	return bc.Constrain(w.buf.Size())
}

func (w *Image) Paint(ctx *core.PaintCtx, _ *theme.Env) {
	ctx.Init()
	if w.buf.IsEmpty() {
		return
	}
	ctx.DrawImage(w.buf, ctx.Size().ToRect())
}

func (w *Image) Children() []*core.WidgetPod { return nil }

// ImageMut is the mutable view of an Image.
type ImageMut struct {
	*core.WidgetMut
	widget *Image
}

// AsImage downcasts a mutable view to an Image view.
func AsImage(m *core.WidgetMut) (ImageMut, error) {
	w, err := core.Downcast[*Image](m)
	if err != nil {
		return ImageMut{}, err
	}
	return ImageMut{WidgetMut: m, widget: w}, nil
}

// SetBuf replaces the image buffer.
func (m ImageMut) SetBuf(buf *graphics.ImageBuf) {
	if buf == nil {
		buf = graphics.EmptyImageBuf()
	}
	m.widget.buf = buf
	m.Ctx.RequestLayout()
}
