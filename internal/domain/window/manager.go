package window

import (
	"fmt"
	"sort"
	"time"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Manager owns the open windows and the shared z-index counter.
//
// It is the only writer of window records and of the counter. Manager is
// not safe for concurrent use; the Shell serializes every call.
type Manager struct {
	windows  []*Window // creation order
	byID     map[string]*Window
	maxZ     int
	layout   Layout
	apps     AppResolver
	now      func() time.Time
	lastTick int64
}

// NewManager creates an empty registry
func NewManager(layout Layout, apps AppResolver) *Manager {
	return &Manager{
		byID:   make(map[string]*Window),
		maxZ:   layout.ZBase,
		layout: layout,
		apps:   apps,
		now:    time.Now,
	}
}

// WithClock overrides the creation timestamp source
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Open creates a new window for appID. It always succeeds; opening the
// same app again yields an independent, cascaded instance.
func (m *Manager) Open(appID string) Window {
	app := App{Title: appID}
	if m.apps != nil {
		app = m.apps.ResolveApp(appID)
	}

	offset := len(m.windows) * m.layout.CascadeStep
	m.maxZ++

	w := &Window{
		ID:          fmt.Sprintf("%s-%d", appID, m.stamp()),
		AppID:       appID,
		Title:       app.Title,
		Icon:        app.Icon,
		Position:    m.layout.CascadeBase.Add(types.Point{X: offset, Y: offset}),
		Size:        app.Size,
		ZIndex:      m.maxZ,
		ContentType: app.Content,
	}

	m.windows = append(m.windows, w)
	m.byID[w.ID] = w
	return *w
}

// stamp returns a strictly increasing millisecond timestamp
func (m *Manager) stamp() int64 {
	tick := m.now().UnixMilli()
	if tick <= m.lastTick {
		tick = m.lastTick + 1
	}
	m.lastTick = tick
	return tick
}

// Close removes a window. Unknown ids are a no-op.
func (m *Manager) Close(id string) bool {
	if _, ok := m.byID[id]; !ok {
		return false
	}
	delete(m.byID, id)
	for i, w := range m.windows {
		if w.ID == id {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			break
		}
	}
	return true
}

// Minimize hides a window from the paint set, keeping geometry and z-index
func (m *Manager) Minimize(id string) bool {
	w, ok := m.byID[id]
	if !ok {
		return false
	}
	w.IsMinimized = true
	return true
}

// Restore clears the minimized flag
func (m *Manager) Restore(id string) bool {
	w, ok := m.byID[id]
	if !ok {
		return false
	}
	w.IsMinimized = false
	return true
}

// BringToFront gives the window a z-index above every other window.
// It does not restore minimized windows.
func (m *Manager) BringToFront(id string) bool {
	w, ok := m.byID[id]
	if !ok {
		return false
	}

	top := m.maxZ
	for _, other := range m.windows {
		if other.ZIndex > top {
			top = other.ZIndex
		}
	}
	m.maxZ = top + 1
	w.ZIndex = m.maxZ
	return true
}

// Focus restores a minimized window and raises it
func (m *Manager) Focus(id string) bool {
	if !m.Restore(id) {
		return false
	}
	return m.BringToFront(id)
}

// Move sets a window's position
func (m *Manager) Move(id string, pos types.Point) bool {
	w, ok := m.byID[id]
	if !ok {
		return false
	}
	w.Position = pos
	return true
}

// Get returns a copy of the window
func (m *Manager) Get(id string) (Window, bool) {
	w, ok := m.byID[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// List returns copies of all windows in creation order
func (m *Manager) List() []Window {
	out := make([]Window, len(m.windows))
	for i, w := range m.windows {
		out[i] = *w
	}
	return out
}

// PaintOrder returns visible windows in ascending z-index
func (m *Manager) PaintOrder() []Window {
	out := make([]Window, 0, len(m.windows))
	for _, w := range m.windows {
		if !w.IsMinimized {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// Minimized returns minimized windows in creation order
func (m *Manager) Minimized() []Window {
	var out []Window
	for _, w := range m.windows {
		if w.IsMinimized {
			out = append(out, *w)
		}
	}
	return out
}

// Topmost returns the visible window with the highest z-index
func (m *Manager) Topmost() (Window, bool) {
	order := m.PaintOrder()
	if len(order) == 0 {
		return Window{}, false
	}
	return order[len(order)-1], true
}

// Len returns the number of open windows, minimized included
func (m *Manager) Len() int {
	return len(m.windows)
}

// MaxZ returns the current value of the z-index counter
func (m *Manager) MaxZ() int {
	return m.maxZ
}
