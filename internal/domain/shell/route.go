package shell

import (
	"strings"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/boot"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/catalog"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/drag"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/input"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/overlay"
	"go.uber.org/zap"
)

// Keys the shell reacts to
const (
	KeyEscape = "Escape"
	KeySpace  = " "
)

// Menu actions understood by every overlay
const (
	ActionOpen           = "open"
	ActionOpenPrefix     = "open:"
	ActionCloseWindow    = "close_window"
	ActionMinimizeWindow = "minimize_window"
)

// apply routes a validated event. Callers hold s.mu.
func (s *Shell) apply(ev Event) Result {
	switch ev.Type {
	case EventBootAnimationComplete:
		if s.boot.Phase() != boot.PhaseHello || s.boot.AnimationDone() {
			return Result{}
		}
		s.boot.AnimationComplete()
		return Result{Handled: true}
	case EventBootActivate:
		if !s.boot.Activate() {
			return Result{}
		}
		s.log.Debug("Boot phase changed", zap.Stringer("phase", s.boot.Phase()))
		return Result{Handled: true}
	}

	// the desktop is not mounted yet
	if !s.boot.Ready() {
		return Result{}
	}

	switch ev.Type {
	case EventPointerDown:
		return s.pointerDown(ev)
	case EventPointerMove, EventPointerUp:
		return s.pointerMoveOrUp(ev)
	case EventKeyDown:
		return s.keyDown(ev)
	case EventContextMenu:
		return s.contextMenu(ev)
	case EventDockOpen, EventWindowOpen:
		return s.openWindow(ev.AppID)
	case EventWindowClose:
		return Result{Handled: s.closeWindow(ev.WindowID)}
	case EventWindowMinimize:
		return Result{Handled: s.minimizeWindow(ev.WindowID)}
	case EventWindowRestore, EventWindowFocus:
		return Result{Handled: s.focusWindow(ev.WindowID)}
	case EventDesktopSelect:
		return Result{Handled: s.selectItem(ev.ItemID)}
	case EventDesktopActivate:
		return s.activateItem(ev.ItemID)
	case EventOverlayOpen:
		return s.openOverlay(ev)
	case EventOverlayClose:
		return Result{Handled: s.overlays.Close()}
	case EventSpotlightQuery:
		return Result{Handled: s.overlays.SetQuery(ev.Query)}
	case EventSpotlightSelect:
		if s.overlays.Active().Kind != overlay.KindSpotlight {
			return Result{}
		}
		s.overlays.Close()
		return s.openWindow(ev.AppID)
	case EventMenuSelect:
		return s.menuSelect(ev.Action)
	}
	return Result{}
}

func (s *Shell) pointerDown(ev Event) Result {
	before := s.overlays.Active()
	s.bus.Emit(input.Pointer{Kind: input.PointerDown, Position: ev.Point(), Target: ev.Target})
	res := Result{Handled: before.Open() && !s.overlays.Active().Open()}

	t := ev.Target
	switch t.Kind {
	case input.TargetWindow:
		// minimized windows are not painted, so a hit on one is stale
		if w, ok := s.windows.Get(t.ID); ok && w.IsMinimized {
			break
		}
		if s.drag.Begin(t, ev.Point()) {
			s.log.Debug("Drag started", zap.String("window_id", t.ID))
			s.recordWindowOp("focus", 0)
			if s.metrics != nil {
				s.metrics.IncDragSessions()
			}
			res.Handled = true
		} else if s.focusWindow(t.ID) {
			res.Handled = true
		}
	case input.TargetMenuBar:
		if t.ID != "" {
			s.overlays.Toggle(t.ID)
			res.Handled = true
		}
	case input.TargetDesktopItem:
		if s.selectItem(t.ID) {
			res.Handled = true
		}
	case input.TargetDesktop:
		if s.selected != "" {
			s.selected = ""
			res.Handled = true
		}
	}
	return res
}

func (s *Shell) pointerMoveOrUp(ev Event) Result {
	dragging := s.drag.State() == drag.StateDragging
	kind := input.PointerMove
	if ev.Type == EventPointerUp {
		kind = input.PointerUp
	}
	s.bus.Emit(input.Pointer{Kind: kind, Position: ev.Point(), Target: ev.Target})
	return Result{Handled: dragging}
}

func (s *Shell) keyDown(ev Event) Result {
	switch {
	case ev.Key == KeySpace && (ev.Meta || ev.Ctrl):
		s.overlays.OpenSpotlight()
		return Result{Handled: true, PreventDefault: true}
	case ev.Key == KeyEscape:
		return Result{Handled: s.overlays.Cancel()}
	}
	return Result{}
}

func (s *Shell) contextMenu(ev Event) Result {
	itemID := ""
	switch ev.Target.Kind {
	case input.TargetDesktopItem:
		if _, ok := s.catalog.Item(ev.Target.ID); !ok {
			return Result{}
		}
		itemID = ev.Target.ID
		s.selected = itemID
	case input.TargetDesktop, input.TargetNone:
	default:
		return Result{}
	}

	s.overlays.OpenContextMenu(ev.Point(), itemID)
	return Result{Handled: true, PreventDefault: true}
}

func (s *Shell) openOverlay(ev Event) Result {
	kind, err := overlay.ParseKind(ev.Overlay)
	if err != nil {
		return Result{}
	}

	switch kind {
	case overlay.KindAppleMenu:
		s.overlays.OpenAppleMenu()
	case overlay.KindTopMenu:
		if ev.Name == "" {
			return Result{}
		}
		s.overlays.OpenTopMenu(ev.Name)
	case overlay.KindControlCenter:
		s.overlays.OpenControlCenter()
	case overlay.KindSpotlight:
		s.overlays.OpenSpotlight()
	case overlay.KindContextMenu:
		return s.contextMenu(Event{
			X:      ev.X,
			Y:      ev.Y,
			Target: input.Target{Kind: contextTargetKind(ev.ItemID), ID: ev.ItemID},
		})
	default:
		return Result{}
	}
	return Result{Handled: true}
}

func contextTargetKind(itemID string) input.TargetKind {
	if itemID == "" {
		return input.TargetDesktop
	}
	return input.TargetDesktopItem
}

// menuSelect closes the open overlay and runs the chosen action
func (s *Shell) menuSelect(action string) Result {
	state := s.overlays.Active()
	if !state.Open() {
		return Result{}
	}
	s.overlays.Close()
	res := Result{Handled: true}

	switch {
	case action == ActionOpen && state.ItemID != "":
		if r := s.activateItem(state.ItemID); r.WindowID != "" {
			res.WindowID = r.WindowID
		}
	case strings.HasPrefix(action, ActionOpenPrefix):
		if appID := strings.TrimPrefix(action, ActionOpenPrefix); appID != "" {
			res.WindowID = s.openWindow(appID).WindowID
		}
	case action == ActionCloseWindow:
		if w, ok := s.windows.Topmost(); ok {
			s.closeWindow(w.ID)
		}
	case action == ActionMinimizeWindow:
		if w, ok := s.windows.Topmost(); ok {
			s.minimizeWindow(w.ID)
		}
	default:
		s.log.Debug("Menu action has no handler", zap.String("action", action))
	}
	return res
}

func (s *Shell) openWindow(appID string) Result {
	w := s.windows.Open(appID)
	s.recordWindowOp("open", 1)
	s.log.Debug("Window opened",
		zap.String("window_id", w.ID),
		zap.String("app_id", appID),
		zap.Int("z_index", w.ZIndex))
	return Result{Handled: true, WindowID: w.ID}
}

func (s *Shell) closeWindow(id string) bool {
	s.drag.Release(id)
	if !s.windows.Close(id) {
		return false
	}
	s.recordWindowOp("close", -1)
	s.log.Debug("Window closed", zap.String("window_id", id))
	return true
}

func (s *Shell) minimizeWindow(id string) bool {
	s.drag.Release(id)
	if !s.windows.Minimize(id) {
		return false
	}
	s.recordWindowOp("minimize", 0)
	return true
}

func (s *Shell) focusWindow(id string) bool {
	if !s.windows.Focus(id) {
		return false
	}
	s.recordWindowOp("focus", 0)
	return true
}

func (s *Shell) selectItem(id string) bool {
	if _, ok := s.catalog.Item(id); !ok || s.selected == id {
		return false
	}
	s.selected = id
	return true
}

// activateItem selects an item and opens the app a file points at
func (s *Shell) activateItem(id string) Result {
	item, ok := s.catalog.Item(id)
	if !ok {
		return Result{}
	}
	s.selected = id
	if item.Type != catalog.ItemFile || item.Opens == "" {
		return Result{Handled: true}
	}
	return s.openWindow(item.Opens)
}
