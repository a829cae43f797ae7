package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/window"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

func setup(t *testing.T) (*Controller, *window.Manager, *input.Bus) {
	t.Helper()
	bus := input.NewBus()
	windows := window.NewManager(window.DefaultLayout(), nil)
	return NewController(bus, windows, DefaultTopBarHeight), windows, bus
}

func titleBar(id string) input.Target {
	return input.Target{Kind: input.TargetWindow, ID: id, Part: input.PartTitleBar}
}

func move(bus *input.Bus, x, y int) {
	bus.Emit(input.Pointer{Kind: input.PointerMove, Position: types.Point{X: x, Y: y}})
}

func TestDragFollowsPointer(t *testing.T) {
	c, windows, bus := setup(t)
	w := windows.Open("chat")

	require.True(t, c.Begin(titleBar(w.ID), types.Point{X: 110, Y: 105}))
	assert.Equal(t, StateDragging, c.State())

	session, ok := c.Active()
	require.True(t, ok)
	assert.Equal(t, types.Point{X: 10, Y: 5}, session.Offset)

	move(bus, 310, 405)
	got, _ := windows.Get(w.ID)
	assert.Equal(t, types.Point{X: 300, Y: 400}, got.Position)

	bus.Emit(input.Pointer{Kind: input.PointerUp, Position: types.Point{X: 310, Y: 405}})
	assert.Equal(t, StateIdle, c.State())

	move(bus, 0, 0)
	got, _ = windows.Get(w.ID)
	assert.Equal(t, types.Point{X: 300, Y: 400}, got.Position, "moves after pointer-up are ignored")
}

func TestDragClampsBelowTopBar(t *testing.T) {
	c, windows, bus := setup(t)
	w := windows.Open("chat")

	require.True(t, c.Begin(titleBar(w.ID), types.Point{X: 120, Y: 110}))

	for _, y := range []int{90, 40, 10, -50, 0, 200, 38} {
		move(bus, 150, y)
		got, _ := windows.Get(w.ID)
		assert.GreaterOrEqual(t, got.Position.Y, DefaultTopBarHeight, "pointer y %d", y)
	}
}

func TestDragRaisesOnStart(t *testing.T) {
	c, windows, bus := setup(t)
	a := windows.Open("chat")
	windows.Open("notes")

	require.True(t, c.Begin(titleBar(a.ID), types.Point{X: 100, Y: 100}))
	bus.Emit(input.Pointer{Kind: input.PointerUp})

	top, _ := windows.Topmost()
	assert.Equal(t, a.ID, top.ID, "focus follows drag start even without movement")
}

func TestControlsAndBodyDoNotStartDrag(t *testing.T) {
	c, windows, bus := setup(t)
	w := windows.Open("chat")

	for _, part := range []string{input.PartControls, input.PartBody, ""} {
		target := input.Target{Kind: input.TargetWindow, ID: w.ID, Part: part}
		assert.False(t, c.Begin(target, types.Point{X: 100, Y: 100}), "part %q", part)
	}
	assert.False(t, c.Begin(titleBar("missing"), types.Point{}))
	assert.Equal(t, 0, bus.Count(input.PointerMove))
}

func TestListenersAttachedOnlyWhileDragging(t *testing.T) {
	c, windows, bus := setup(t)
	w := windows.Open("chat")

	assert.Equal(t, 0, bus.Count(input.PointerMove))
	assert.Equal(t, 0, bus.Count(input.PointerUp))

	c.Begin(titleBar(w.ID), types.Point{X: 100, Y: 100})
	c.Begin(titleBar(w.ID), types.Point{X: 100, Y: 100})
	assert.Equal(t, 1, bus.Count(input.PointerMove))
	assert.Equal(t, 1, bus.Count(input.PointerUp))

	c.End()
	assert.Equal(t, 0, bus.Count(input.PointerMove))
	assert.Equal(t, 0, bus.Count(input.PointerUp))
}

func TestReleaseWhenWindowCloses(t *testing.T) {
	c, windows, bus := setup(t)
	a := windows.Open("chat")
	b := windows.Open("notes")

	c.Begin(titleBar(a.ID), types.Point{X: 100, Y: 100})
	assert.False(t, c.Release(b.ID))
	assert.True(t, c.Dragging(a.ID))

	windows.Close(a.ID)
	move(bus, 200, 200)
	assert.Equal(t, StateIdle, c.State(), "moving a vanished window ends the drag")
	assert.Equal(t, 0, bus.Count(input.PointerMove))
}

func TestMinimizedWindowDoesNotDrag(t *testing.T) {
	c, windows, bus := setup(t)
	a := windows.Open("chat")
	windows.Open("notes")
	windows.Minimize(a.ID)

	assert.False(t, c.Begin(titleBar(a.ID), types.Point{X: 150, Y: 110}))
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, 0, bus.Count(input.PointerMove))

	move(bus, 500, 500)
	got, _ := windows.Get(a.ID)
	assert.Equal(t, types.Point{X: 100, Y: 100}, got.Position)
	assert.Equal(t, 101, got.ZIndex, "not raised")
	assert.True(t, got.IsMinimized)
}
