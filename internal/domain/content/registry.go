package content

import (
	"errors"
	"fmt"
)

// Type is the closed tag selecting which collaborator renders a window body
type Type string

const (
	TypeChat      Type = "chat"
	TypePersonas  Type = "personas"
	TypeMemory    Type = "memory"
	TypeKnowledge Type = "knowledge"
	TypeSettings  Type = "settings"
	TypeNotes     Type = "notes"
)

// PlaceholderMessage is shown when no renderer exists for a tag
const PlaceholderMessage = "Content not available"

// ErrUnknownType is returned when registering a tag outside the closed set
var ErrUnknownType = errors.New("unknown content type")

// Types returns the closed set in display order
func Types() []Type {
	return []Type{TypeChat, TypePersonas, TypeMemory, TypeKnowledge, TypeSettings, TypeNotes}
}

// Valid reports whether t belongs to the closed set
func (t Type) Valid() bool {
	switch t {
	case TypeChat, TypePersonas, TypeMemory, TypeKnowledge, TypeSettings, TypeNotes:
		return true
	}
	return false
}

// View describes what the front end mounts inside a window body
type View struct {
	Type        Type   `json:"type"`
	Component   string `json:"component,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Renderer produces the mountable view for one content type.
// The shell passes nothing and does not inspect failures inside the view.
type Renderer interface {
	Mount() View
}

// Component is a Renderer that mounts a named front-end component
type Component struct {
	Type Type
	Name string
}

// Mount implements Renderer
func (c Component) Mount() View {
	return View{Type: c.Type, Component: c.Name}
}

// Placeholder is the fallback renderer
type Placeholder struct{}

// Mount implements Renderer
func (Placeholder) Mount() View {
	return View{Placeholder: true, Message: PlaceholderMessage}
}

// Registry maps content types to renderers with an explicit fallback
type Registry struct {
	renderers map[Type]Renderer
	fallback  Renderer
}

// NewRegistry creates a registry pre-populated with the default components
func NewRegistry() *Registry {
	r := &Registry{
		renderers: make(map[Type]Renderer),
		fallback:  Placeholder{},
	}
	defaults := map[Type]string{
		TypeChat:      "ChatView",
		TypePersonas:  "PersonaManager",
		TypeMemory:    "MemoryView",
		TypeKnowledge: "KnowledgeBase",
		TypeSettings:  "SettingsPanel",
		TypeNotes:     "NotesView",
	}
	for t, name := range defaults {
		r.renderers[t] = Component{Type: t, Name: name}
	}
	return r
}

// Register replaces the renderer for t
func (r *Registry) Register(t Type, renderer Renderer) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if renderer == nil {
		delete(r.renderers, t)
		return nil
	}
	r.renderers[t] = renderer
	return nil
}

// Mount returns the view for t, or the placeholder for unknown or missing tags
func (r *Registry) Mount(t Type) View {
	if renderer, ok := r.renderers[t]; ok && t.Valid() {
		return renderer.Mount()
	}
	return r.fallback.Mount()
}
