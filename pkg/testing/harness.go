// Package testing provides the headless harness for exercising widget
// trees: synthetic input, command and timer control, scoped tree edits,
// and screenshot comparison.
package testing

import (
	"fmt"
	"image"
	"time"

	"github.com/go-mason/mason/pkg/core"
	"github.com/go-mason/mason/pkg/debug"
	"github.com/go-mason/mason/pkg/errors"
	"github.com/go-mason/mason/pkg/graphics"
	"github.com/go-mason/mason/pkg/theme"
)

// DefaultHarnessSize is the window size Create uses.
var DefaultHarnessSize = graphics.Size{Width: 400, Height: 400}

// maxDispatchRounds bounds the post-event drain so a command loop
// cannot hang a test.
const maxDispatchRounds = 100

// Harness hosts a widget tree without a platform window. Every method
// runs passes synchronously on the calling goroutine, so a test can
// interleave input, inspection, and edits deterministically.
type Harness struct {
	window   *core.WindowRoot
	queue    *core.ExtEventQueue
	commands core.CommandQueue
	actions  core.ActionQueue
	timers   *MockTimerQueue
	env      *theme.Env
	logger   *debug.Logger
	delegate core.AppDelegate

	mousePos graphics.Offset
	buttons  core.MouseButtons

	rendering bool
}

type noopIdle struct{}

func (noopIdle) ScheduleIdle() {}

// Create hosts the widget at the default window size.
func Create(root core.Widget) *Harness {
	return CreateWithSize(root, DefaultHarnessSize)
}

// CreateWithSize hosts the widget at the given window size. The tree is
// connected, announced, and laid out before this returns.
func CreateWithSize(root core.Widget, size graphics.Size) *Harness {
	h := &Harness{
		queue:  core.NewExtEventQueue(),
		timers: NewMockTimerQueue(),
		env:    theme.WithTheme(),
		logger: debug.NewLogger(false),
	}
	h.window = core.NewWindowRoot(root, core.PassDeps{
		ExtSink:  h.queue.MakeSink(),
		Commands: &h.commands,
		Actions:  &h.actions,
		Timers:   h.timers,
		Logger:   h.logger,
	})
	h.queue.SetIdle(noopIdle{}, h.window.ID())

	h.ProcessEvent(core.WindowConnectedEvent{})
	h.ProcessEvent(core.WindowSizeEvent{Size: size})
	return h
}

// SetDelegate installs an application delegate. Commands pass through
// it before tree dispatch and emitted actions are delivered to it.
func (h *Harness) SetDelegate(d core.AppDelegate) {
	h.delegate = d
}

// Window returns the harness's window root.
func (h *Harness) Window() *core.WindowRoot { return h.window }

// Env returns the environment in effect.
func (h *Harness) Env() *theme.Env { return h.env }

// ExtEventSink returns a sink usable from other goroutines.
func (h *Harness) ExtEventSink() core.ExtEventSink {
	return h.queue.MakeSink()
}

// Logger returns the pass logger.
func (h *Harness) Logger() *debug.Logger { return h.logger }

// ProcessEvent dispatches one event, then drains everything the pass
// produced and re-runs layout if needed.
func (h *Harness) ProcessEvent(event core.Event) {
	if h.delegate != nil {
		ctx := core.NewDelegateCtx(h.window, h.env)
		event = h.delegate.OnEvent(ctx, h.window.ID(), event)
		if event == nil {
			return
		}
	}
	h.window.Event(event, h.env)
	h.processStateAfterEvent()
}

// processStateAfterEvent drains external messages and queued commands
// to a fixpoint, then brings layout up to date.
func (h *Harness) processStateAfterEvent() {
	for round := 0; ; round++ {
		progressed := false

		for {
			msg, ok := h.queue.Recv()
			if !ok {
				break
			}
			progressed = true
			switch m := msg.(type) {
			case core.ExtCommand:
				cmd := core.Command{
					Selector: m.Selector,
					Payload:  m.Payload,
					Target:   m.Target,
				}
				h.commands.Push(cmd.DefaultTo(core.TargetWindow(h.window.ID())))
			case core.ExtPromise:
				h.window.Event(core.RoutePromiseResultEvent{
					Result: m.Result,
					Target: m.Widget,
				}, h.env)
			}
		}

		for {
			cmd, ok := h.commands.PopFront()
			if !ok {
				break
			}
			progressed = true
			h.dispatchCommand(cmd)
		}

		h.deliverActions()

		if !progressed {
			break
		}
		if round >= maxDispatchRounds {
			errors.Report(&errors.MasonError{
				Op:   "testing.Harness.processStateAfterEvent",
				Kind: errors.KindUnknown,
				Err:  fmt.Errorf("command dispatch did not settle after %d rounds", maxDispatchRounds),
			})
			break
		}
	}

	if h.window.NeedsLayout() {
		h.window.DoLayout(h.env)
	}
}

func (h *Harness) dispatchCommand(cmd core.Command) {
	if h.delegate != nil {
		ctx := core.NewDelegateCtx(h.window, h.env)
		if h.delegate.OnCommand(ctx, cmd.Target, cmd) == core.HandledYes {
			return
		}
	}
	h.window.Event(core.TargetedCommandEvent{Command: cmd}, h.env)
}

func (h *Harness) deliverActions() {
	if h.delegate == nil {
		return
	}
	for {
		entry, ok := h.actions.PopFront()
		if !ok {
			return
		}
		ctx := core.NewDelegateCtx(h.window, h.env)
		h.delegate.OnAction(ctx, entry.Window, entry.Widget, entry.Action)
	}
}

// WaitForExternalEvents polls the mailbox until a background thread
// submits something, then drains it. Reports whether anything arrived
// before the timeout.
func (h *Harness) WaitForExternalEvents(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if h.queue.HasPendingItems() {
			h.processStateAfterEvent()
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
}

// SubmitCommand queues a command and dispatches it immediately.
func (h *Harness) SubmitCommand(cmd core.Command) {
	h.commands.Push(cmd.DefaultTo(core.TargetWindow(h.window.ID())))
	h.processStateAfterEvent()
}

// PopAction removes and returns the oldest emitted action. With a
// delegate installed, actions go to the delegate instead.
func (h *Harness) PopAction() (core.ActionEntry, bool) {
	return h.actions.PopFront()
}

func (h *Harness) mouseEvent(button core.MouseButton, count int) core.MouseEvent {
	return core.MouseEvent{
		Pos:       h.mousePos,
		WindowPos: h.mousePos,
		Buttons:   h.buttons,
		Button:    button,
		Count:     count,
	}
}

// MouseMove moves the pointer to a window position.
func (h *Harness) MouseMove(pos graphics.Offset) {
	h.mousePos = pos
	h.ProcessEvent(core.MouseMoveEvent{Mouse: h.mouseEvent(core.MouseButtonNone, 0)})
}

// MouseButtonPress presses a pointer button at the current position.
func (h *Harness) MouseButtonPress(button core.MouseButton) {
	h.buttons.Insert(button)
	h.ProcessEvent(core.MouseDownEvent{Mouse: h.mouseEvent(button, 1)})
}

// MouseButtonRelease releases a pointer button at the current position.
func (h *Harness) MouseButtonRelease(button core.MouseButton) {
	h.buttons.Remove(button)
	h.ProcessEvent(core.MouseUpEvent{Mouse: h.mouseEvent(button, 0)})
}

// MouseWheel scrolls at the current position.
func (h *Harness) MouseWheel(delta graphics.Offset) {
	ev := h.mouseEvent(core.MouseButtonNone, 0)
	ev.WheelDelta = delta
	h.ProcessEvent(core.WheelEvent{Mouse: ev})
}

// MouseMoveTo moves the pointer to the center of the given widget.
func (h *Harness) MouseMoveTo(id core.WidgetId) {
	widget := h.GetWidget(id)
	h.MouseMove(widget.State().WindowLayoutRect().Center())
}

// MouseClickOn moves to the widget's center and left-clicks it.
func (h *Harness) MouseClickOn(id core.WidgetId) {
	h.MouseMoveTo(id)
	h.MouseButtonPress(core.MouseButtonLeft)
	h.MouseButtonRelease(core.MouseButtonLeft)
}

// KeyboardTypeChars sends a key down/up pair for each character.
func (h *Harness) KeyboardTypeChars(text string) {
	for _, r := range text {
		key := core.KeyEvent{Text: string(r)}
		h.ProcessEvent(core.KeyDownEvent{Key: key})
		h.ProcessEvent(core.KeyUpEvent{Key: key})
	}
}

// MoveTimersForward advances mock time and delivers every timer that
// fired.
func (h *Harness) MoveTimersForward(duration time.Duration) {
	for _, token := range h.timers.MoveForward(duration) {
		h.ProcessEvent(core.TimerEvent{Token: token})
	}
}

// ProcessAnimFrames delivers one animation frame if any widget asked
// for one, and reports whether it did.
func (h *Harness) ProcessAnimFrames(interval time.Duration) bool {
	if !h.window.WantsAnimFrame() {
		return false
	}
	h.ProcessEvent(core.AnimFrameEvent{Interval: interval})
	return true
}

// RootWidget returns a read-only view of the root.
func (h *Harness) RootWidget() core.WidgetRef {
	return h.window.RootRef()
}

// TryGetWidget returns a read-only view of the widget with the given
// id, if present.
func (h *Harness) TryGetWidget(id core.WidgetId) (core.WidgetRef, bool) {
	return h.window.FindWidgetByID(id)
}

// GetWidget returns a read-only view of the widget with the given id,
// panicking if it is missing.
func (h *Harness) GetWidget(id core.WidgetId) core.WidgetRef {
	ref, ok := h.TryGetWidget(id)
	if !ok {
		panic(fmt.Sprintf("widget %d not found", id))
	}
	return ref
}

// InspectWidgets calls f for every widget in the tree, depth-first.
func (h *Harness) InspectWidgets(f func(core.WidgetRef)) {
	var walk func(ref core.WidgetRef)
	walk = func(ref core.WidgetRef) {
		f(ref)
		for _, child := range ref.Children() {
			walk(child)
		}
	}
	walk(h.RootWidget())
}

// EditRootWidget runs f with a mutable view of the root, then runs the
// follow-up passes the edit requires.
func (h *Harness) EditRootWidget(f func(*core.WidgetMut)) {
	h.window.EditRoot(h.env, f)
	h.processStateAfterEvent()
}

// EditWidget runs f with a mutable view of the widget with the given
// id.
func (h *Harness) EditWidget(id core.WidgetId, f func(*core.WidgetMut)) error {
	if err := h.window.EditWidget(id, h.env, f); err != nil {
		return err
	}
	h.processStateAfterEvent()
	return nil
}

// Render paints the tree into a fresh software surface and returns the
// pixels. Rendering reentrantly (from inside a paint) is a programmer
// error and panics.
func (h *Harness) Render() *image.RGBA {
	if h.rendering {
		panic("recursive render")
	}
	h.rendering = true
	defer func() { h.rendering = false }()

	if h.window.NeedsLayout() {
		h.window.DoLayout(h.env)
	}
	size := h.window.Size()
	surface := graphics.NewSurface(int(size.Width), int(size.Height))
	h.window.DoPaint(surface, h.env)
	return surface.Image()
}
