package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

func pointerDown(bus *input.Bus, target input.Target) {
	bus.Emit(input.Pointer{Kind: input.PointerDown, Target: target})
}

func TestOpenClosesSiblings(t *testing.T) {
	bus := input.NewBus()
	c := NewCoordinator(bus)

	opens := []func(){
		c.OpenAppleMenu,
		func() { c.OpenTopMenu("File") },
		c.OpenControlCenter,
		c.OpenSpotlight,
		func() { c.OpenContextMenu(types.Point{X: 5, Y: 6}, "") },
		func() { c.OpenTopMenu("Edit") },
	}
	want := []Kind{KindAppleMenu, KindTopMenu, KindControlCenter, KindSpotlight, KindContextMenu, KindTopMenu}

	for i, open := range opens {
		open()
		assert.Equal(t, want[i], c.Active().Kind)
		assert.Equal(t, 1, bus.Count(input.PointerDown), "exactly one dismissal listener after open %d", i)
	}
	assert.Equal(t, "Edit", c.Active().Menu)
}

func TestListenerOnlyWhileOpen(t *testing.T) {
	bus := input.NewBus()
	c := NewCoordinator(bus)

	assert.False(t, c.ListenerAttached())
	assert.Equal(t, 0, bus.Count(input.PointerDown))

	c.OpenControlCenter()
	assert.True(t, c.ListenerAttached())

	require.True(t, c.Close())
	assert.False(t, c.ListenerAttached())
	assert.Equal(t, 0, bus.Count(input.PointerDown))
	assert.False(t, c.Close())
}

func TestOutsideClickDismisses(t *testing.T) {
	tests := []struct {
		name     string
		open     func(c *Coordinator)
		target   input.Target
		wantOpen bool
	}{
		{"desktop click closes apple menu", (*Coordinator).OpenAppleMenu, input.Target{Kind: input.TargetDesktop}, false},
		{"click inside apple menu keeps it", (*Coordinator).OpenAppleMenu, input.Target{Kind: input.TargetOverlay, ID: "apple_menu"}, true},
		{"own trigger keeps apple menu", (*Coordinator).OpenAppleMenu, input.Target{Kind: input.TargetMenuBar, ID: TriggerApple}, true},
		{"other trigger closes apple menu", (*Coordinator).OpenAppleMenu, input.Target{Kind: input.TargetMenuBar, ID: "File"}, false},
		{"window click closes spotlight", (*Coordinator).OpenSpotlight, input.Target{Kind: input.TargetWindow, ID: "w", Part: input.PartBody}, false},
		{"inside top menu", func(c *Coordinator) { c.OpenTopMenu("File") }, input.Target{Kind: input.TargetOverlay, ID: "File"}, true},
		{"inside context menu", func(c *Coordinator) { c.OpenContextMenu(types.Point{}, "doc") }, input.Target{Kind: input.TargetOverlay, ID: "context_menu"}, true},
		{"dock closes context menu", func(c *Coordinator) { c.OpenContextMenu(types.Point{}, "doc") }, input.Target{Kind: input.TargetDock, ID: "chat"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := input.NewBus()
			c := NewCoordinator(bus)
			tt.open(c)

			pointerDown(bus, tt.target)
			assert.Equal(t, tt.wantOpen, c.Active().Open())
			assert.Equal(t, tt.wantOpen, c.ListenerAttached())
		})
	}
}

func TestCancelClosesEveryOverlay(t *testing.T) {
	bus := input.NewBus()
	c := NewCoordinator(bus)

	for _, open := range []func(){
		c.OpenAppleMenu,
		func() { c.OpenTopMenu("View") },
		c.OpenControlCenter,
		c.OpenSpotlight,
		func() { c.OpenContextMenu(types.Point{X: 1, Y: 1}, "x") },
	} {
		open()
		require.True(t, c.Cancel())
		assert.Equal(t, KindNone, c.Active().Kind)
		assert.False(t, c.ListenerAttached())
	}
	assert.False(t, c.Cancel())
}

func TestToggle(t *testing.T) {
	c := NewCoordinator(input.NewBus())

	c.Toggle(TriggerApple)
	assert.Equal(t, KindAppleMenu, c.Active().Kind)

	c.Toggle("File")
	assert.Equal(t, KindTopMenu, c.Active().Kind)

	c.Toggle("File")
	assert.Equal(t, KindNone, c.Active().Kind)

	c.Toggle(TriggerControlCenter)
	c.Toggle(TriggerControlCenter)
	assert.Equal(t, KindNone, c.Active().Kind)

	c.Toggle(TriggerSpotlight)
	assert.Equal(t, KindSpotlight, c.Active().Kind)
}

func TestSpotlightReopenKeepsQuery(t *testing.T) {
	c := NewCoordinator(input.NewBus())

	assert.False(t, c.SetQuery("too early"))
	c.OpenSpotlight()
	require.True(t, c.SetQuery("cha"))

	c.OpenSpotlight()
	assert.Equal(t, "cha", c.Active().Query)

	c.OpenAppleMenu()
	c.OpenSpotlight()
	assert.Empty(t, c.Active().Query)
}

func TestContextMenuActions(t *testing.T) {
	c := NewCoordinator(input.NewBus())

	c.OpenContextMenu(types.Point{X: 10, Y: 20}, "welcome")
	s := c.Active()
	require.NotNil(t, s.Position)
	assert.Equal(t, types.Point{X: 10, Y: 20}, *s.Position)
	assert.Equal(t, ItemActions, s.Actions())

	c.OpenContextMenu(types.Point{X: 30, Y: 40}, "")
	assert.Equal(t, BackgroundActions, c.Active().Actions())

	c.Close()
	assert.Nil(t, c.Active().Actions())
}

func TestOnChangeSequence(t *testing.T) {
	c := NewCoordinator(input.NewBus())
	var transitions []string
	c.OnChange(func(from, to State) {
		transitions = append(transitions, from.Kind.String()+">"+to.Kind.String())
	})

	c.OpenAppleMenu()
	c.OpenSpotlight()
	c.Close()

	assert.Equal(t, []string{
		"none>apple_menu",
		"apple_menu>none",
		"none>spotlight",
		"spotlight>none",
	}, transitions)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("control_center")
	require.NoError(t, err)
	assert.Equal(t, KindControlCenter, k)

	_, err = ParseKind("dock")
	assert.Error(t, err)

	var decoded Kind
	require.NoError(t, decoded.UnmarshalText([]byte("spotlight")))
	assert.Equal(t, KindSpotlight, decoded)
}
