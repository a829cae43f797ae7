package overlay

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Kind identifies the transient surface that is open
type Kind int

const (
	KindNone Kind = iota
	KindAppleMenu
	KindTopMenu
	KindControlCenter
	KindSpotlight
	KindContextMenu
)

var kindNames = map[Kind]string{
	KindNone:          "none",
	KindAppleMenu:     "apple_menu",
	KindTopMenu:       "top_menu",
	KindControlCenter: "control_center",
	KindSpotlight:     "spotlight",
	KindContextMenu:   "context_menu",
}

// String returns the wire name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind converts a wire name into a Kind
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown overlay %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Context menu action sets
var (
	ItemActions       = []string{"open", "get_info", "rename", "move_to_trash"}
	BackgroundActions = []string{"new_folder", "get_info", "change_background", "show_view_options"}
)

// State is the single active overlay value
type State struct {
	Kind Kind `json:"kind"`
	// Menu is the top menu name for KindTopMenu
	Menu string `json:"menu,omitempty"`
	// Position and ItemID are set for KindContextMenu
	Position *types.Point `json:"position,omitempty"`
	ItemID   string       `json:"item_id,omitempty"`
	// Query is the Spotlight search text
	Query string `json:"query,omitempty"`
}

// Open reports whether an overlay is active
func (s State) Open() bool {
	return s.Kind != KindNone
}

// Actions returns the context menu action set for the state
func (s State) Actions() []string {
	if s.Kind != KindContextMenu {
		return nil
	}
	if s.ItemID != "" {
		return ItemActions
	}
	return BackgroundActions
}

// Name returns the menu bar trigger id that owns the overlay
func (s State) Name() string {
	switch s.Kind {
	case KindTopMenu:
		return s.Menu
	case KindAppleMenu:
		return TriggerApple
	case KindControlCenter:
		return TriggerControlCenter
	case KindSpotlight:
		return TriggerSpotlight
	}
	return s.Kind.String()
}
