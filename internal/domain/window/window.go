package window

import (
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/content"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// Window is an open app window in the shell
type Window struct {
	ID          string       `json:"id"`
	AppID       string       `json:"app_id"`
	Title       string       `json:"title"`
	Icon        string       `json:"icon"`
	Position    types.Point  `json:"position"`
	Size        types.Size   `json:"size"`
	IsMinimized bool         `json:"is_minimized"`
	ZIndex      int          `json:"z_index"`
	ContentType content.Type `json:"content_type"`
}

// Layout holds cascade and paint-order parameters
type Layout struct {
	// CascadeBase is where the first window opens
	CascadeBase types.Point
	// CascadeStep is added per already-open window in both axes
	CascadeStep int
	// ZBase is the counter value before the first window; the first gets ZBase+1
	ZBase int
}

// DefaultLayout matches the shell's stock cascade
func DefaultLayout() Layout {
	return Layout{
		CascadeBase: types.Point{X: 100, Y: 100},
		CascadeStep: 30,
		ZBase:       100,
	}
}

// App is what the registry needs to know about an app to open it
type App struct {
	Title   string
	Icon    string
	Content content.Type
	Size    types.Size
}

// AppResolver supplies app definitions; unknown ids still resolve
type AppResolver interface {
	ResolveApp(appID string) App
}
