package shell

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/catalog"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/content"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/drag"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/overlay"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/window"
)

// Window position transitions
const (
	// TransitionNone is used while a window is dragged so it tracks the pointer
	TransitionNone  = "none"
	TransitionEased = "ease"
)

// Snapshot is a value copy of everything the front end renders
type Snapshot struct {
	SessionID     string `json:"session_id"`
	Version       uint64 `json:"version"`
	Phase         string `json:"phase"`
	AnimationDone bool   `json:"animation_done"`
	Ready         bool   `json:"ready"`

	// Windows is the paint set in ascending z order; minimized windows are
	// listed separately for the dock
	Windows   []WindowView  `json:"windows"`
	Minimized []WindowView  `json:"minimized"`
	MaxZ      int           `json:"max_z"`
	Drag      *drag.Session `json:"drag,omitempty"`

	Overlay OverlayView `json:"overlay"`

	Desktop      []catalog.DesktopItem `json:"desktop"`
	SelectedItem string                `json:"selected_item,omitempty"`
	Dock         []catalog.App         `json:"dock"`

	Theme        ThemeView `json:"theme"`
	TopBarHeight int       `json:"top_bar_height"`
}

// WindowView is a window plus what its body mounts
type WindowView struct {
	window.Window
	Content    content.View `json:"content"`
	Dragging   bool         `json:"dragging"`
	Transition string       `json:"transition"`
}

// OverlayView is the active overlay with derived data
type OverlayView struct {
	overlay.State
	Name    string        `json:"name,omitempty"`
	Actions []string      `json:"actions,omitempty"`
	Results []catalog.App `json:"results,omitempty"`
}

// ThemeView carries the persona palette and derived background
type ThemeView struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
}

// Window returns the snapshot's view of a window, visible or minimized
func (s Snapshot) Window(id string) (WindowView, bool) {
	for _, list := range [][]WindowView{s.Windows, s.Minimized} {
		for _, w := range list {
			if w.ID == id {
				return w, true
			}
		}
	}
	return WindowView{}, false
}

// Top returns the topmost visible window
func (s Snapshot) Top() (WindowView, bool) {
	if len(s.Windows) == 0 {
		return WindowView{}, false
	}
	return s.Windows[len(s.Windows)-1], true
}

func (s *Shell) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID:     s.id,
		Version:       s.version,
		Phase:         s.boot.Phase().String(),
		AnimationDone: s.boot.AnimationDone(),
		Ready:         s.boot.Ready(),
		Windows:       []WindowView{},
		Minimized:     []WindowView{},
		MaxZ:          s.windows.MaxZ(),
		Desktop:       s.catalog.Items(),
		SelectedItem:  s.selected,
		Dock:          s.catalog.Apps(),
		Theme: ThemeView{
			Primary:    s.palette.Primary,
			Secondary:  s.palette.Secondary,
			Background: s.palette.Background(),
		},
		TopBarHeight: s.drag.TopBarHeight(),
	}

	if session, ok := s.drag.Active(); ok {
		snap.Drag = &session
	}
	for _, w := range s.windows.PaintOrder() {
		snap.Windows = append(snap.Windows, s.windowView(w))
	}
	for _, w := range s.windows.Minimized() {
		snap.Minimized = append(snap.Minimized, s.windowView(w))
	}

	state := s.overlays.Active()
	snap.Overlay = OverlayView{State: state, Actions: state.Actions()}
	if state.Kind == overlay.KindTopMenu {
		snap.Overlay.Name = state.Menu
	}
	if state.Kind == overlay.KindSpotlight {
		snap.Overlay.Results = s.catalog.Search(state.Query, s.limit)
	}
	return snap
}

func (s *Shell) windowView(w window.Window) WindowView {
	dragging := s.drag.Dragging(w.ID)
	transition := TransitionEased
	if dragging {
		transition = TransitionNone
	}
	return WindowView{
		Window:     w,
		Content:    s.content.Mount(w.ContentType),
		Dragging:   dragging,
		Transition: transition,
	}
}
