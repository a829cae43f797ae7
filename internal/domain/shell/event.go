package shell

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// EventType names an input event on the wire
type EventType string

const (
	EventBootAnimationComplete EventType = "boot.animation_complete"
	EventBootActivate          EventType = "boot.activate"

	EventPointerDown EventType = "pointer.down"
	EventPointerMove EventType = "pointer.move"
	EventPointerUp   EventType = "pointer.up"
	EventKeyDown     EventType = "key.down"
	EventContextMenu EventType = "context_menu"

	EventDockOpen       EventType = "dock.open"
	EventWindowOpen     EventType = "window.open"
	EventWindowClose    EventType = "window.close"
	EventWindowMinimize EventType = "window.minimize"
	EventWindowRestore  EventType = "window.restore"
	EventWindowFocus    EventType = "window.focus"

	EventDesktopSelect   EventType = "desktop.select"
	EventDesktopActivate EventType = "desktop.activate"

	EventOverlayOpen     EventType = "overlay.open"
	EventOverlayClose    EventType = "overlay.close"
	EventSpotlightQuery  EventType = "spotlight.query"
	EventSpotlightSelect EventType = "spotlight.select"
	EventMenuSelect      EventType = "menu.select"
)

var (
	ErrUnknownEvent = errors.New("unknown event type")
	ErrInvalidEvent = errors.New("invalid event")
	ErrClosed       = errors.New("shell session is closed")
)

// Event is a single user input or UI action sent by the front end
type Event struct {
	Type     EventType    `json:"type" yaml:"type"`
	AppID    string       `json:"app_id,omitempty" yaml:"app_id"`
	WindowID string       `json:"window_id,omitempty" yaml:"window_id"`
	ItemID   string       `json:"item_id,omitempty" yaml:"item_id"`
	X        int          `json:"x,omitempty" yaml:"x"`
	Y        int          `json:"y,omitempty" yaml:"y"`
	Target   input.Target `json:"target" yaml:"target"`
	Key      string       `json:"key,omitempty" yaml:"key"`
	Meta     bool         `json:"meta,omitempty" yaml:"meta"`
	Ctrl     bool         `json:"ctrl,omitempty" yaml:"ctrl"`
	Shift    bool         `json:"shift,omitempty" yaml:"shift"`
	Alt      bool         `json:"alt,omitempty" yaml:"alt"`
	Overlay  string       `json:"overlay,omitempty" yaml:"overlay"`
	Name     string       `json:"name,omitempty" yaml:"name"`
	Action   string       `json:"action,omitempty" yaml:"action"`
	Query    string       `json:"query,omitempty" yaml:"query"`
}

// Point returns the event's pointer coordinates
func (e Event) Point() types.Point {
	return types.Point{X: e.X, Y: e.Y}
}

// Validate checks that the fields required by the event type are present
func (e Event) Validate() error {
	missing := func(field string) error {
		return fmt.Errorf("%w: %s requires %s", ErrInvalidEvent, e.Type, field)
	}

	switch e.Type {
	case EventBootAnimationComplete, EventBootActivate,
		EventPointerDown, EventPointerMove, EventPointerUp,
		EventContextMenu, EventOverlayClose, EventSpotlightQuery:
		return nil
	case EventKeyDown:
		if e.Key == "" {
			return missing("key")
		}
	case EventDockOpen, EventWindowOpen, EventSpotlightSelect:
		if e.AppID == "" {
			return missing("app_id")
		}
	case EventWindowClose, EventWindowMinimize, EventWindowRestore, EventWindowFocus:
		if e.WindowID == "" {
			return missing("window_id")
		}
	case EventDesktopSelect, EventDesktopActivate:
		if e.ItemID == "" {
			return missing("item_id")
		}
	case EventOverlayOpen:
		if e.Overlay == "" {
			return missing("overlay")
		}
	case EventMenuSelect:
		if e.Action == "" {
			return missing("action")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
	return nil
}

// Result reports what an event did
type Result struct {
	// Handled is true when the event changed shell state
	Handled bool `json:"handled"`
	// PreventDefault asks the client to suppress the browser's own behavior
	PreventDefault bool `json:"prevent_default,omitempty"`
	// WindowID is set when the event opened a window
	WindowID string `json:"window_id,omitempty"`
}
