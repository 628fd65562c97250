package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mason/mason/pkg/graphics"
)

func TestNewPodStartsDirty(t *testing.T) {
	pod := NewWidgetPod(newStub(10, 10))
	assert.True(t, pod.State().NeedsLayout())
	assert.True(t, pod.State().NeedsPaint())
	assert.True(t, pod.State().ChildrenChanged())
	assert.False(t, pod.State().IsPlaced())
}

func TestWidgetAddedDeliveredOncePerWidget(t *testing.T) {
	child := newStub(10, 10)
	root := newStub(200, 100, NewWidgetPod(child))
	f := newFixture(root)

	assert.Equal(t, 1, countLifecycles[WidgetAddedEvent](root))
	assert.Equal(t, 1, countLifecycles[WidgetAddedEvent](child))

	// Further passes must not re-announce.
	f.window.Event(KeyDownEvent{Key: KeyEvent{Text: "a"}}, f.env)
	assert.Equal(t, 1, countLifecycles[WidgetAddedEvent](root))
	assert.Equal(t, 1, countLifecycles[WidgetAddedEvent](child))
}

func TestWidgetAddedReachesLateChildren(t *testing.T) {
	root := newStub(200, 100)
	f := newFixture(root)

	late := newStub(10, 10)
	f.window.EditRoot(f.env, func(m *WidgetMut) {
		root.children = append(root.children, NewWidgetPod(late))
		m.Ctx.ChildrenChanged()
	})

	assert.Equal(t, 1, countLifecycles[WidgetAddedEvent](late))
	assert.True(t, f.window.NeedsLayout())
}

func TestMergeUpReachesRoot(t *testing.T) {
	leaf := newStub(10, 10)
	leaf.handler = func(ctx *EventCtx, event Event) {
		if _, ok := event.(KeyDownEvent); ok {
			ctx.RequestLayout()
		}
	}
	mid := newStub(50, 50, NewWidgetPod(leaf))
	root := newStub(200, 100, NewWidgetPod(mid))
	f := newFixture(root)
	require.False(t, f.window.NeedsLayout())

	f.window.Event(KeyDownEvent{Key: KeyEvent{Text: "x"}}, f.env)
	assert.True(t, f.window.NeedsLayout())
	assert.True(t, f.window.NeedsPaint())
}

func TestLayoutSkipsCleanSubtree(t *testing.T) {
	child := newStub(10, 10)
	root := newStub(200, 100, NewWidgetPod(child))
	f := newFixture(root)
	require.Equal(t, 1, child.layouts)

	// Nothing dirty: a second layout pass runs no widget at all.
	f.window.DoLayout(f.env)
	assert.Equal(t, 1, root.layouts)
	assert.Equal(t, 1, child.layouts)

	// Dirtying the root re-runs it, while the clean child subtree is
	// skipped under unchanged constraints.
	f.window.EditRoot(f.env, func(m *WidgetMut) {
		m.Ctx.RequestLayout()
	})
	f.window.DoLayout(f.env)
	assert.Equal(t, 2, root.layouts)
	assert.Equal(t, 1, child.layouts)
}

func TestLayoutIdempotent(t *testing.T) {
	child := newStub(30, 20)
	root := newStub(200, 100, NewWidgetPod(child))
	f := newFixture(root)

	size := root.children[0].State().Size()
	origin := root.children[0].State().Origin()

	f.window.EditRoot(f.env, func(m *WidgetMut) { m.Ctx.RequestLayout() })
	f.window.DoLayout(f.env)

	assert.Equal(t, size, root.children[0].State().Size())
	assert.Equal(t, origin, root.children[0].State().Origin())
}

func TestWindowOriginsFollowPlacement(t *testing.T) {
	left := newStub(40, 20)
	right := newStub(30, 20)
	root := newStub(200, 100, NewWidgetPod(left), NewWidgetPod(right))
	newFixture(root)

	rightState := root.children[1].State()
	assert.Equal(t, graphics.Offset{X: 40}, rightState.Origin())
	assert.Equal(t, graphics.Offset{X: 40}, rightState.WindowLayoutRect().Origin())
}

func TestTargetedCommandClaimedOnce(t *testing.T) {
	left := newStub(40, 20)
	right := newStub(30, 20)
	root := newStub(200, 100, NewWidgetPod(left), NewWidgetPod(right))
	f := newFixture(root)

	target := root.children[1].ID()
	cmd := NewCommand("test.ping", nil).To(TargetWidget(target))
	handled := f.window.Event(TargetedCommandEvent{Command: cmd}, f.env)

	assert.Equal(t, HandledYes, handled)
	assert.Equal(t, 0, countEvents[TargetedCommandEvent](left))
	assert.Equal(t, 1, countEvents[TargetedCommandEvent](right))
	// The routing pass must not hand the command to the root either.
	assert.Equal(t, 0, countEvents[TargetedCommandEvent](root))
}

func TestWindowCommandBroadcasts(t *testing.T) {
	left := newStub(40, 20)
	root := newStub(200, 100, NewWidgetPod(left))
	f := newFixture(root)

	cmd := NewCommand("test.ping", nil).To(TargetWindow(f.window.ID()))
	f.window.Event(TargetedCommandEvent{Command: cmd}, f.env)

	assert.Equal(t, 1, countEvents[TargetedCommandEvent](root))
	assert.Equal(t, 1, countEvents[TargetedCommandEvent](left))
}

func TestPromiseResultRoutedToTarget(t *testing.T) {
	left := newStub(40, 20)
	right := newStub(30, 20)
	root := newStub(200, 100, NewWidgetPod(left), NewWidgetPod(right))
	f := newFixture(root)

	token := NextPromiseToken()
	f.window.Event(RoutePromiseResultEvent{
		Result: PromiseResult{Token: token, Payload: "done"},
		Target: root.children[0].ID(),
	}, f.env)

	require.Equal(t, 1, countEvents[PromiseResultEvent](left))
	assert.Equal(t, 0, countEvents[PromiseResultEvent](right))
	assert.Equal(t, 0, countEvents[RoutePromiseResultEvent](left))
	assert.Equal(t, 0, countEvents[RoutePromiseResultEvent](root))

	got := left.events[len(left.events)-1].(PromiseResultEvent)
	payload, ok := got.Result.TryGet(token)
	require.True(t, ok)
	assert.Equal(t, "done", payload)
}

func TestAnimFrameOnlyWhereRequested(t *testing.T) {
	wants := newStub(40, 20)
	idle := newStub(30, 20)
	root := newStub(200, 100, NewWidgetPod(wants), NewWidgetPod(idle))
	f := newFixture(root)

	wants.handler = func(ctx *EventCtx, event Event) {
		if _, ok := event.(KeyDownEvent); ok {
			ctx.RequestAnimFrame()
		}
	}
	f.window.Event(KeyDownEvent{Key: KeyEvent{Text: "a"}}, f.env)
	require.True(t, f.window.WantsAnimFrame())

	f.window.Event(AnimFrameEvent{Interval: 16 * time.Millisecond}, f.env)
	assert.Equal(t, 1, countEvents[AnimFrameEvent](wants))
	assert.Equal(t, 0, countEvents[AnimFrameEvent](idle))

	// The request is consumed with the frame.
	f.window.Event(AnimFrameEvent{Interval: 16 * time.Millisecond}, f.env)
	assert.Equal(t, 1, countEvents[AnimFrameEvent](wants))
}

func TestPointerHotGating(t *testing.T) {
	left := newStub(40, 20)
	right := newStub(30, 20)
	root := newStub(200, 100, NewWidgetPod(left), NewWidgetPod(right))
	f := newFixture(root)

	f.window.Event(MouseMoveEvent{Mouse: mouseAt(10, 10)}, f.env)
	assert.True(t, root.children[0].State().IsHot())
	assert.False(t, root.children[1].State().IsHot())
	assert.Equal(t, 1, countEvents[MouseMoveEvent](left))
	assert.Equal(t, 0, countEvents[MouseMoveEvent](right))
	require.Len(t, left.statuses, 1)
	assert.Equal(t, HotChanged{Hot: true}, left.statuses[0])

	// Crossing to the sibling flips both hot states.
	f.window.Event(MouseMoveEvent{Mouse: mouseAt(45, 10)}, f.env)
	assert.False(t, root.children[0].State().IsHot())
	assert.True(t, root.children[1].State().IsHot())
	assert.Equal(t, HotChanged{Hot: false}, left.statuses[len(left.statuses)-1])
}

func TestActiveWidgetKeepsPointer(t *testing.T) {
	left := newStub(40, 20)
	left.handler = func(ctx *EventCtx, event Event) {
		switch event.(type) {
		case MouseDownEvent:
			ctx.SetActive(true)
		case MouseUpEvent:
			ctx.SetActive(false)
		}
	}
	root := newStub(200, 100, NewWidgetPod(left))
	f := newFixture(root)

	f.window.Event(MouseMoveEvent{Mouse: mouseAt(10, 10)}, f.env)
	f.window.Event(MouseDownEvent{Mouse: mouseAt(10, 10)}, f.env)
	require.True(t, root.children[0].State().IsActive())

	// Outside the widget, but still delivered while active.
	f.window.Event(MouseUpEvent{Mouse: mouseAt(150, 90)}, f.env)
	assert.Equal(t, 1, countEvents[MouseUpEvent](left))
	assert.False(t, root.children[0].State().IsActive())

	// Once released, far-away events stop arriving.
	f.window.Event(MouseDownEvent{Mouse: mouseAt(150, 90)}, f.env)
	assert.Equal(t, 1, countEvents[MouseDownEvent](left))
}

func TestSetHandledStopsPropagation(t *testing.T) {
	first := newStub(40, 20)
	second := newStub(30, 20)
	first.handler = func(ctx *EventCtx, event Event) {
		if _, ok := event.(KeyDownEvent); ok {
			ctx.SetHandled()
		}
	}
	root := newStub(200, 100, NewWidgetPod(first), NewWidgetPod(second))
	f := newFixture(root)

	handled := f.window.Event(KeyDownEvent{Key: KeyEvent{Text: "a"}}, f.env)
	assert.Equal(t, HandledYes, handled)
	assert.Equal(t, 1, countEvents[KeyDownEvent](first))
	assert.Equal(t, 0, countEvents[KeyDownEvent](second))
}

func TestMissingInitPanicsUnderDebugChecks(t *testing.T) {
	bad := newStub(10, 10)
	bad.skipInit = true
	root := newStub(200, 100, NewWidgetPod(bad))
	f := newFixture(root)

	require.True(t, DebugChecks)
	assert.Panics(t, func() {
		f.window.Event(KeyDownEvent{Key: KeyEvent{Text: "a"}}, f.env)
	})
}

func TestUnplacedChildSkippedByPaintAndHitTest(t *testing.T) {
	child := newStub(40, 20)
	root := newStub(200, 100, NewWidgetPod(child))
	f := newFixture(root)

	painted := child.paints
	root.children[0].State().isPlaced = false
	f.window.Event(MouseMoveEvent{Mouse: mouseAt(10, 10)}, f.env)
	assert.False(t, root.children[0].State().IsHot())

	surface := graphics.NewSurface(200, 100)
	f.window.DoPaint(surface, f.env)
	assert.Equal(t, painted, child.paints)
}

func TestRequestTimerUsesScheduler(t *testing.T) {
	leaf := newStub(10, 10)
	var token TimerToken
	leaf.handler = func(ctx *EventCtx, event Event) {
		if _, ok := event.(KeyDownEvent); ok {
			token = ctx.RequestTimer(50 * time.Millisecond)
		}
	}
	root := newStub(200, 100, NewWidgetPod(leaf))
	f := newFixture(root)

	f.window.Event(KeyDownEvent{Key: KeyEvent{Text: "t"}}, f.env)
	require.Equal(t, TimerToken(1), token)
	require.Len(t, f.timers.scheduled, 1)
	assert.Equal(t, 50*time.Millisecond, f.timers.scheduled[0])

	f.window.Event(TimerEvent{Token: token}, f.env)
	assert.Equal(t, 1, countEvents[TimerEvent](leaf))
}
