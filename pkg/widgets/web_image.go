package widgets

import (
	"io"
	"net/http"

	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/errors"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// WebImage fetches an image over HTTP in the background and shows it
// once decoded. A spinner placeholder fills the slot while the fetch is
// in flight; a failed fetch or decode leaves an empty image. The fetch
// starts when the widget joins the tree.
type WebImage struct {
	url   string
	token core.PromiseToken
	child *core.WidgetPod
}

// NewWebImage creates a widget loading the given URL.
func NewWebImage(url string) *WebImage {
	placeholder := NewSizedBox(NewSpinner()).FixedWidth(40).FixedHeight(40)
	return &WebImage{
		url:   url,
		child: core.NewWidgetPod(placeholder),
	}
}

// URL returns the image URL.
func (w *WebImage) URL() string { return w.url }

func (w *WebImage) OnEvent(ctx *core.EventCtx, event core.Event, env *theme.Env) {
	ctx.Init()
	if e, ok := event.(core.PromiseResultEvent); ok {
		if payload, ok := e.Result.TryGet(w.token); ok {
			buf, ok := payload.(*graphics.ImageBuf)
			if !ok {
				buf = graphics.EmptyImageBuf()
			}
			w.token = core.EmptyPromiseToken
			w.child = core.NewWidgetPod(NewImage(buf))
			ctx.ChildrenChanged()
			return
		}
	}
	w.child.OnEvent(ctx, event, env)
}

func (w *WebImage) OnStatusChange(ctx *core.LifeCycleCtx, _ core.StatusChange, _ *theme.Env) {
	ctx.Init()
}

func (w *WebImage) Lifecycle(ctx *core.LifeCycleCtx, event core.LifeCycleEvent, env *theme.Env) {
	ctx.Init()
	if _, ok := event.(core.WidgetAddedEvent); ok && w.token == core.EmptyPromiseToken {
		url := w.url
		w.token = ctx.ComputeInBackground(func() any {
			return fetchImage(url)
		})
	}
	w.child.Lifecycle(ctx, event, env)
}

func (w *WebImage) Layout(ctx *core.LayoutCtx, bc core.BoxConstraints, env *theme.Env) graphics.Size {
	ctx.Init()
	size := w.child.Layout(ctx, bc, env)
	ctx.PlaceChild(w.child, graphics.Offset{})
	return size
}

func (w *WebImage) Paint(ctx *core.PaintCtx, env *theme.Env) {
	ctx.Init()
	w.child.Paint(ctx, env)
}

func (w *WebImage) Children() []*core.WidgetPod {
	return []*core.WidgetPod{w.child}
}

func fetchImage(url string) *graphics.ImageBuf {
	resp, err := http.Get(url)
	if err != nil {
		errors.Report(&errors.MasonError{
			Op:   "widgets.WebImage.fetch",
			Kind: errors.KindBackground,
			Err:  err,
		})
		return graphics.EmptyImageBuf()
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		errors.Report(&errors.MasonError{
			Op:   "widgets.WebImage.fetch",
			Kind: errors.KindBackground,
			Err:  err,
		})
		return graphics.EmptyImageBuf()
	}
	buf, err := graphics.ImageBufFromBytes(data)
	if err != nil {
		errors.Report(&errors.MasonError{
			Op:   "widgets.WebImage.decode",
			Kind: errors.KindBackground,
			Err:  err,
		})
		return graphics.EmptyImageBuf()
	}
	return buf
}
