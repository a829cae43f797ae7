package drag

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/window"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// DefaultTopBarHeight is the height of the persistent menu bar
const DefaultTopBarHeight = 28

// State is the drag state machine's state
type State int

const (
	StateIdle State = iota
	StateDragging
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Windows is the slice of the window registry a drag needs
type Windows interface {
	Get(id string) (window.Window, bool)
	Move(id string, pos types.Point) bool
	BringToFront(id string) bool
}

// Session describes an active drag
type Session struct {
	WindowID string      `json:"window_id"`
	Offset   types.Point `json:"offset"`
}

// Controller repositions one window while the pointer is held on its title bar.
//
// Move and up listeners exist on the bus only while Dragging.
type Controller struct {
	state        State
	session      Session
	bus          *input.Bus
	windows      Windows
	topBarHeight int
	detach       []func()
}

// NewController creates an idle controller
func NewController(bus *input.Bus, windows Windows, topBarHeight int) *Controller {
	if topBarHeight < 0 {
		topBarHeight = DefaultTopBarHeight
	}
	return &Controller{
		bus:          bus,
		windows:      windows,
		topBarHeight: topBarHeight,
	}
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Active returns the current session, if dragging
func (c *Controller) Active() (Session, bool) {
	if c.state != StateDragging {
		return Session{}, false
	}
	return c.session, true
}

// Dragging reports whether windowID is being dragged
func (c *Controller) Dragging(windowID string) bool {
	return c.state == StateDragging && c.session.WindowID == windowID
}

// TopBarHeight returns the clamp applied to the window's y coordinate
func (c *Controller) TopBarHeight() int {
	return c.topBarHeight
}

// Begin starts a drag for a pointer-down on target. Only the title bar
// of a visible window starts a drag; the control buttons region never
// does. The window is raised immediately, whatever happens next.
func (c *Controller) Begin(target input.Target, pointer types.Point) bool {
	if target.Kind != input.TargetWindow || target.Part != input.PartTitleBar {
		return false
	}
	w, ok := c.windows.Get(target.ID)
	if !ok || w.IsMinimized {
		return false
	}
	if c.state == StateDragging {
		c.End()
	}

	c.windows.BringToFront(w.ID)
	c.session = Session{
		WindowID: w.ID,
		Offset:   pointer.Sub(w.Position),
	}
	c.state = StateDragging
	c.detach = []func(){
		c.bus.On(input.PointerMove, c.onMove),
		c.bus.On(input.PointerUp, c.onUp),
	}
	return true
}

func (c *Controller) onMove(ev input.Pointer) {
	if c.state != StateDragging {
		return
	}
	pos := ev.Position.Sub(c.session.Offset)
	if pos.Y < c.topBarHeight {
		pos.Y = c.topBarHeight
	}
	if !c.windows.Move(c.session.WindowID, pos) {
		c.End()
	}
}

func (c *Controller) onUp(ev input.Pointer) {
	c.End()
}

// End leaves Dragging and detaches the positional listeners
func (c *Controller) End() {
	for _, d := range c.detach {
		d()
	}
	c.detach = nil
	c.session = Session{}
	c.state = StateIdle
}

// Release ends the drag if it targets windowID (window closed or minimized)
func (c *Controller) Release(windowID string) bool {
	if !c.Dragging(windowID) {
		return false
	}
	c.End()
	return true
}
