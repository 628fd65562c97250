package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
	"github.com/go-mason/mason/pkg/widgets"
)

type recordingDelegate struct {
	core.DelegateBase
	commands []core.Command
	actions  []core.Action
	claim    func(cmd core.Command) core.Handled
}

func (d *recordingDelegate) OnCommand(_ *core.DelegateCtx, _ core.Target, cmd core.Command) core.Handled {
	d.commands = append(d.commands, cmd)
	if d.claim != nil {
		return d.claim(cmd)
	}
	return core.HandledNo
}

func (d *recordingDelegate) OnAction(_ *core.DelegateCtx, _ core.WindowId, _ core.WidgetId, action core.Action) {
	d.actions = append(d.actions, action)
}

func TestCreateConnectsAndLaysOut(t *testing.T) {
	h := Create(widgets.NewLabel("hi"))
	assert.False(t, h.Window().NeedsLayout())
	assert.Equal(t, DefaultHarnessSize, h.Window().Size())
	assert.True(t, h.RootWidget().State().IsPlaced())
}

func TestExternalCommandsArriveInOrder(t *testing.T) {
	h := Create(widgets.NewLabel("hi"))
	delegate := &recordingDelegate{}
	h.SetDelegate(delegate)

	sink := h.ExtEventSink()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = sink.SubmitCommand("bg.first", nil, core.TargetAuto())
		_ = sink.SubmitCommand("bg.second", nil, core.TargetAuto())
	}()
	<-done

	require.True(t, h.WaitForExternalEvents(time.Second))
	require.Len(t, delegate.commands, 2)
	assert.Equal(t, core.Selector("bg.first"), delegate.commands[0].Selector)
	assert.Equal(t, core.Selector("bg.second"), delegate.commands[1].Selector)
	// Auto targets resolve to the harness window.
	assert.Equal(t, core.TargetKindWindow, delegate.commands[0].Target.Kind)
}

func TestDelegateClaimsCommand(t *testing.T) {
	h := Create(widgets.NewLabel("hi"))
	delegate := &recordingDelegate{
		claim: func(core.Command) core.Handled { return core.HandledYes },
	}
	h.SetDelegate(delegate)

	h.SubmitCommand(core.NewCommand("app.quit", nil))
	assert.Len(t, delegate.commands, 1)
}

func TestDelegateReceivesActions(t *testing.T) {
	h := Create(widgets.NewButton("OK"))
	delegate := &recordingDelegate{}
	h.SetDelegate(delegate)

	h.MouseClickOn(h.RootWidget().ID())

	require.Len(t, delegate.actions, 1)
	assert.Equal(t, core.ButtonPressed{}, delegate.actions[0])
	// With a delegate, nothing is left for PopAction.
	_, ok := h.PopAction()
	assert.False(t, ok)
}

func TestEditRootWidgetRunsFollowUpPasses(t *testing.T) {
	h := Create(widgets.NewLabel("hi"))
	h.EditRootWidget(func(m *core.WidgetMut) {
		m.Ctx.RequestLayout()
	})
	assert.False(t, h.Window().NeedsLayout())
}

func TestGetWidgetPanicsOnUnknownID(t *testing.T) {
	h := Create(widgets.NewLabel("hi"))
	assert.Panics(t, func() {
		h.GetWidget(core.WidgetId(999999))
	})
}

func TestTryGetWidget(t *testing.T) {
	h := Create(widgets.NewLabel("hi"))
	_, ok := h.TryGetWidget(core.WidgetId(999999))
	assert.False(t, ok)

	ref, ok := h.TryGetWidget(h.RootWidget().ID())
	require.True(t, ok)
	assert.Equal(t, h.RootWidget().ID(), ref.ID())
}

func TestInspectWidgetsVisitsWholeTree(t *testing.T) {
	row := widgets.NewRow().
		WithChild(widgets.NewLabel("a")).
		WithChild(widgets.NewButton("b"))
	h := Create(row)

	var visited int
	h.InspectWidgets(func(core.WidgetRef) { visited++ })
	// Row, label, button, and the button's internal label.
	assert.Equal(t, 4, visited)
}

func TestProcessAnimFramesWithoutRequest(t *testing.T) {
	h := Create(widgets.NewLabel("hi"))
	assert.False(t, h.ProcessAnimFrames(16*time.Millisecond))
}

func TestMoveTimersForwardDeliversTimerEvents(t *testing.T) {
	h := Create(widgets.NewLabel("hi"))
	// Nothing scheduled: moving time is a no-op.
	h.MoveTimersForward(time.Second)

	token := h.timers.ScheduleTimer(100 * time.Millisecond)
	fired := h.timers.MoveForward(50 * time.Millisecond)
	assert.Empty(t, fired)
	fired = h.timers.MoveForward(50 * time.Millisecond)
	require.Len(t, fired, 1)
	assert.Equal(t, token, fired[0])
}

func TestRenderProducesWindowSizedImage(t *testing.T) {
	h := CreateWithSize(widgets.NewLabel("hi"), graphics.Size{Width: 120, Height: 80})
	img := h.Render()
	bounds := img.Bounds()
	assert.Equal(t, 120, bounds.Dx())
	assert.Equal(t, 80, bounds.Dy())

	// The window background is painted.
	bg := h.Env().Color(theme.WindowBackgroundColor)
	r, g, b, _ := bg.Bytes()
	i := img.PixOffset(100, 70)
	assert.Equal(t, r, img.Pix[i])
	assert.Equal(t, g, img.Pix[i+1])
	assert.Equal(t, b, img.Pix[i+2])
}

func TestKeyboardTypeCharsBroadcasts(t *testing.T) {
	h := Create(widgets.NewLabel("hi"))
	// Broadcast keys reach every widget without panicking; the label
	// simply ignores them.
	h.KeyboardTypeChars("abc")
}
