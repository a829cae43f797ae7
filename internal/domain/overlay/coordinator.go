package overlay

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Menu bar trigger ids for the fixed overlays
const (
	TriggerApple         = "apple"
	TriggerControlCenter = "control_center"
	TriggerSpotlight     = "spotlight"
)

// Coordinator keeps at most one overlay open.
//
// Opening closes whatever is open first. A single outside-click listener
// lives on the bus only while something is open.
type Coordinator struct {
	state    State
	bus      *input.Bus
	detach   func()
	onChange func(from, to State)
}

// NewCoordinator creates an idle coordinator
func NewCoordinator(bus *input.Bus) *Coordinator {
	return &Coordinator{bus: bus}
}

// OnChange registers a transition observer
func (c *Coordinator) OnChange(f func(from, to State)) {
	c.onChange = f
}

// Active returns the current overlay state
func (c *Coordinator) Active() State {
	return c.state
}

// ListenerAttached reports whether the outside-click listener is on the bus
func (c *Coordinator) ListenerAttached() bool {
	return c.detach != nil
}

// OpenAppleMenu opens the apple menu
func (c *Coordinator) OpenAppleMenu() {
	c.open(State{Kind: KindAppleMenu})
}

// OpenTopMenu opens a named menu bar menu
func (c *Coordinator) OpenTopMenu(name string) {
	c.open(State{Kind: KindTopMenu, Menu: name})
}

// OpenControlCenter opens the control center
func (c *Coordinator) OpenControlCenter() {
	c.open(State{Kind: KindControlCenter})
}

// OpenSpotlight opens Spotlight; opening it while open keeps the query
func (c *Coordinator) OpenSpotlight() {
	if c.state.Kind == KindSpotlight {
		return
	}
	c.open(State{Kind: KindSpotlight})
}

// OpenContextMenu opens a context menu at pos; itemID selects item actions
func (c *Coordinator) OpenContextMenu(pos types.Point, itemID string) {
	c.open(State{Kind: KindContextMenu, Position: &pos, ItemID: itemID})
}

// SetQuery updates the Spotlight query; ignored unless Spotlight is open
func (c *Coordinator) SetQuery(q string) bool {
	if c.state.Kind != KindSpotlight {
		return false
	}
	c.state.Query = q
	return true
}

// Toggle handles a menu bar trigger: the open overlay's own trigger closes
// it, any other trigger opens its overlay.
func (c *Coordinator) Toggle(trigger string) {
	if c.state.Open() && c.state.Kind != KindContextMenu && c.state.Name() == trigger {
		c.Close()
		return
	}
	switch trigger {
	case TriggerApple:
		c.OpenAppleMenu()
	case TriggerControlCenter:
		c.OpenControlCenter()
	case TriggerSpotlight:
		c.OpenSpotlight()
	default:
		c.OpenTopMenu(trigger)
	}
}

// Close returns to idle. Reports whether something was open.
func (c *Coordinator) Close() bool {
	if !c.state.Open() {
		return false
	}
	from := c.state
	c.state = State{}
	if c.detach != nil {
		c.detach()
		c.detach = nil
	}
	c.notify(from, c.state)
	return true
}

// Cancel handles the cancel key. Every overlay honors it.
func (c *Coordinator) Cancel() bool {
	return c.Close()
}

func (c *Coordinator) open(next State) {
	from := c.state
	if from.Open() {
		// siblings close before the new overlay opens
		c.state = State{}
		if c.detach != nil {
			c.detach()
			c.detach = nil
		}
		c.notify(from, c.state)
	}

	c.state = next
	c.detach = c.bus.On(input.PointerDown, c.onPointerDown)
	c.notify(State{}, next)
}

func (c *Coordinator) onPointerDown(ev input.Pointer) {
	if !c.Contains(ev.Target) {
		c.Close()
	}
}

// Contains reports whether target lies inside the active overlay's region:
// its surface or, for menu bar overlays, its own trigger.
func (c *Coordinator) Contains(target input.Target) bool {
	if !c.state.Open() {
		return false
	}
	name := c.state.Name()
	switch target.Kind {
	case input.TargetOverlay:
		return target.ID == c.state.Kind.String() || target.ID == name
	case input.TargetMenuBar:
		return c.state.Kind != KindContextMenu && target.ID == name
	}
	return false
}

func (c *Coordinator) notify(from, to State) {
	if c.onChange != nil {
		c.onChange(from, to)
	}
}
