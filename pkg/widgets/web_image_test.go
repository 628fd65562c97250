package widgets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/graphics"
	masontest "github.com/go-mason/mason/pkg/testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0x80, G: 0x20, B: 0x20, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestWebImageShowsSpinnerWhileLoading(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	web := NewWebImage(server.URL)
	h := masontest.Create(web)

	_, isBox := web.child.Widget().(*SizedBox)
	assert.True(t, isBox)
	// The placeholder spinner is animating.
	assert.True(t, h.Window().WantsAnimFrame())
}

func TestWebImageSwapsToImageOnSuccess(t *testing.T) {
	data := pngBytes(t, 8, 6)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	web := NewWebImage(server.URL)
	h := masontest.Create(web)

	require.True(t, h.WaitForExternalEvents(5*time.Second))

	img, ok := web.child.Widget().(*Image)
	require.True(t, ok)
	assert.Equal(t, graphics.Size{Width: 8, Height: 6}, img.buf.Size())
	// The swapped child was announced and laid out.
	assert.True(t, web.child.State().IsPlaced())
	assert.Equal(t, graphics.Size{Width: 8, Height: 6}, web.child.State().Size())
}

func TestWebImageFailureYieldsEmptyImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not an image"))
	}))
	defer server.Close()

	web := NewWebImage(server.URL)
	h := masontest.Create(web)

	require.True(t, h.WaitForExternalEvents(5*time.Second))

	img, ok := web.child.Widget().(*Image)
	require.True(t, ok)
	assert.True(t, img.buf.IsEmpty())
}

func TestWebImageIgnoresStaleResult(t *testing.T) {
	data := pngBytes(t, 4, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	web := NewWebImage(server.URL)
	h := masontest.Create(web)
	require.True(t, h.WaitForExternalEvents(5*time.Second))
	require.IsType(t, &Image{}, web.child.Widget())

	// A second result for a token nobody is waiting on is a non-event.
	sink := h.ExtEventSink()
	stale := h.RootWidget().ID()
	require.NoError(t, sink.ResolvePromise(
		core.PromiseResult{Token: core.NextPromiseToken(), Payload: graphics.EmptyImageBuf()},
		stale,
		h.Window().ID(),
	))
	require.True(t, h.WaitForExternalEvents(time.Second))
	assert.IsType(t, &Image{}, web.child.Widget())
}
