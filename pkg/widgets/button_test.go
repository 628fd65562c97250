package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/graphics"
	masontest "github.com/go-mason/mason/pkg/testing"
)

func TestButtonClickEmitsOneAction(t *testing.T) {
	h := masontest.Create(NewButton("OK"))

	h.MouseClickOn(h.RootWidget().ID())

	entry, ok := h.PopAction()
	require.True(t, ok)
	assert.Equal(t, core.ButtonPressed{}, entry.Action)
	assert.Equal(t, h.RootWidget().ID(), entry.Widget)

	_, ok = h.PopAction()
	assert.False(t, ok)
}

func TestButtonReleaseOutsideCancels(t *testing.T) {
	h := masontest.CreateWithSize(NewButton("OK"), graphics.Size{Width: 100, Height: 40})

	h.MouseMoveTo(h.RootWidget().ID())
	h.MouseButtonPress(core.MouseButtonLeft)
	require.True(t, h.RootWidget().State().IsActive())

	// Drag outside the window before releasing.
	h.MouseMove(graphics.Offset{X: 500, Y: 500})
	h.MouseButtonRelease(core.MouseButtonLeft)

	_, ok := h.PopAction()
	assert.False(t, ok)
	assert.False(t, h.RootWidget().State().IsActive())
}

func TestButtonRightClickIgnored(t *testing.T) {
	h := masontest.Create(NewButton("OK"))

	h.MouseMoveTo(h.RootWidget().ID())
	h.MouseButtonPress(core.MouseButtonRight)
	h.MouseButtonRelease(core.MouseButtonRight)

	_, ok := h.PopAction()
	assert.False(t, ok)
}

func TestButtonMutSetText(t *testing.T) {
	button := NewButton("before")
	h := masontest.Create(button)

	h.EditRootWidget(func(m *core.WidgetMut) {
		mut, err := AsButton(m)
		require.NoError(t, err)
		mut.SetText("a considerably longer label")
	})

	label, ok := button.label.Widget().(*Label)
	require.True(t, ok)
	assert.Equal(t, "a considerably longer label", label.Text())
}

func TestButtonDowncastMismatch(t *testing.T) {
	h := masontest.Create(NewLabel("not a button"))
	h.EditRootWidget(func(m *core.WidgetMut) {
		_, err := AsButton(m)
		assert.ErrorIs(t, err, core.ErrWrongWidgetType)
	})
}
