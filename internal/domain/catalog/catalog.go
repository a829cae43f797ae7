package catalog

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/content"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// DefaultIcon is used for apps the catalog does not know
const DefaultIcon = "🗔"

// DefaultWindowSize is used when an app declares no size
var DefaultWindowSize = types.Size{Width: 640, Height: 480}

// ItemType classifies desktop items
type ItemType string

const (
	ItemFolder ItemType = "folder"
	ItemFile   ItemType = "file"
)

// App is a dock application definition
type App struct {
	ID      string       `json:"id" yaml:"id" toml:"id"`
	Title   string       `json:"title" yaml:"title" toml:"title"`
	Icon    string       `json:"icon" yaml:"icon" toml:"icon"`
	Content content.Type `json:"content_type" yaml:"content" toml:"content"`
	Size    types.Size   `json:"size" yaml:"size" toml:"size"`
}

// DesktopItem is a static icon on the desktop background
type DesktopItem struct {
	ID       string      `json:"id" yaml:"id" toml:"id"`
	Name     string      `json:"name" yaml:"name" toml:"name"`
	Type     ItemType    `json:"type" yaml:"type" toml:"type"`
	Icon     string      `json:"icon" yaml:"icon" toml:"icon"`
	Position types.Point `json:"position" yaml:"position" toml:"position"`
	// Opens names the app a file item launches when activated
	Opens string `json:"opens,omitempty" yaml:"opens" toml:"opens"`
}

// Catalog holds dock apps and desktop items in declaration order
type Catalog struct {
	apps     []App
	items    []DesktopItem
	appIndex map[string]int
	itemIdx  map[string]int
}

// New builds a catalog; later entries with a duplicate id replace earlier ones
func New(apps []App, items []DesktopItem) *Catalog {
	c := &Catalog{
		appIndex: make(map[string]int),
		itemIdx:  make(map[string]int),
	}
	for _, a := range apps {
		c.putApp(a)
	}
	for _, it := range items {
		c.putItem(it)
	}
	return c
}

// Default returns the built-in catalog
func Default() *Catalog {
	return New(
		[]App{
			{ID: "chat", Title: "Chat", Icon: "💬", Content: content.TypeChat, Size: types.Size{Width: 720, Height: 520}},
			{ID: "personas", Title: "Personas", Icon: "🎭", Content: content.TypePersonas, Size: types.Size{Width: 640, Height: 480}},
			{ID: "memory", Title: "Memory", Icon: "🧠", Content: content.TypeMemory, Size: types.Size{Width: 640, Height: 480}},
			{ID: "knowledge", Title: "Knowledge Base", Icon: "📚", Content: content.TypeKnowledge, Size: types.Size{Width: 760, Height: 540}},
			{ID: "settings", Title: "Settings", Icon: "⚙️", Content: content.TypeSettings, Size: types.Size{Width: 560, Height: 420}},
			{ID: "notes", Title: "Notes", Icon: "📝", Content: content.TypeNotes, Size: types.Size{Width: 520, Height: 440}},
		},
		[]DesktopItem{
			{ID: "documents", Name: "Documents", Type: ItemFolder, Icon: "📁", Position: types.Point{X: 40, Y: 60}},
			{ID: "projects", Name: "Projects", Type: ItemFolder, Icon: "📁", Position: types.Point{X: 40, Y: 160}},
			{ID: "welcome", Name: "Welcome.txt", Type: ItemFile, Icon: "📄", Position: types.Point{X: 40, Y: 260}, Opens: "notes"},
			{ID: "persona-notes", Name: "Persona Notes.md", Type: ItemFile, Icon: "📄", Position: types.Point{X: 40, Y: 360}, Opens: "personas"},
		},
	)
}

func (c *Catalog) putApp(a App) {
	if i, ok := c.appIndex[a.ID]; ok {
		c.apps[i] = a
		return
	}
	c.appIndex[a.ID] = len(c.apps)
	c.apps = append(c.apps, a)
}

func (c *Catalog) putItem(it DesktopItem) {
	if i, ok := c.itemIdx[it.ID]; ok {
		c.items[i] = it
		return
	}
	c.itemIdx[it.ID] = len(c.items)
	c.items = append(c.items, it)
}

// App looks up an app definition
func (c *Catalog) App(id string) (App, bool) {
	i, ok := c.appIndex[id]
	if !ok {
		return App{}, false
	}
	return c.apps[i], true
}

// Resolve returns the definition for id, or a generic one for unknown apps
func (c *Catalog) Resolve(id string) App {
	if app, ok := c.App(id); ok {
		if app.Size.IsZero() {
			app.Size = DefaultWindowSize
		}
		if app.Icon == "" {
			app.Icon = DefaultIcon
		}
		if app.Title == "" {
			app.Title = id
		}
		return app
	}
	return App{ID: id, Title: id, Icon: DefaultIcon, Size: DefaultWindowSize}
}

// Apps returns a copy of all apps
func (c *Catalog) Apps() []App {
	out := make([]App, len(c.apps))
	copy(out, c.apps)
	return out
}

// Item looks up a desktop item
func (c *Catalog) Item(id string) (DesktopItem, bool) {
	i, ok := c.itemIdx[id]
	if !ok {
		return DesktopItem{}, false
	}
	return c.items[i], true
}

// Items returns a copy of all desktop items
func (c *Catalog) Items() []DesktopItem {
	out := make([]DesktopItem, len(c.items))
	copy(out, c.items)
	return out
}
