package input

import "fmt"

// TargetKind identifies the shell surface an input event landed on
type TargetKind string

const (
	TargetNone        TargetKind = ""
	TargetDesktop     TargetKind = "desktop"
	TargetDesktopItem TargetKind = "desktop_item"
	TargetWindow      TargetKind = "window"
	TargetMenuBar     TargetKind = "menubar"
	TargetDock        TargetKind = "dock"
	TargetOverlay     TargetKind = "overlay"
)

// Window parts
const (
	PartTitleBar = "titlebar"
	PartControls = "controls"
	PartBody     = "body"
)

// Target is the hit-test result the client attaches to pointer events.
//
// ID meaning depends on Kind: window id, desktop item id, dock app id,
// menu bar entry name or overlay kind.
type Target struct {
	Kind TargetKind `json:"kind" yaml:"kind"`
	ID   string     `json:"id,omitempty" yaml:"id"`
	Part string     `json:"part,omitempty" yaml:"part"`
}

// String returns a compact representation for logs
func (t Target) String() string {
	if t.Part != "" {
		return fmt.Sprintf("%s:%s:%s", t.Kind, t.ID, t.Part)
	}
	if t.ID != "" {
		return fmt.Sprintf("%s:%s", t.Kind, t.ID)
	}
	return string(t.Kind)
}

// Is reports whether the target matches kind and id
func (t Target) Is(kind TargetKind, id string) bool {
	return t.Kind == kind && t.ID == id
}
