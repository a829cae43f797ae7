package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/session"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/shell"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/types"
)

// CreateSession starts a new desktop; the body is optional
func (h *Handlers) CreateSession(c *gin.Context) {
	var req types.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), req.PersonaID)
	if err != nil {
		if errors.Is(err, session.ErrTooManySessions) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session":  sess.Info(),
		"snapshot": sess.Shell.Snapshot(),
	})
}

// ListSessions returns every live session
func (h *Handlers) ListSessions(c *gin.Context) {
	infos := h.sessions.List()
	c.JSON(http.StatusOK, gin.H{
		"sessions": infos,
		"count":    len(infos),
	})
}

// GetSession returns the full snapshot of a session
func (h *Handlers) GetSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Shell.Snapshot())
}

// DeleteSession ends a session and releases its shell
func (h *Handlers) DeleteSession(c *gin.Context) {
	if !h.sessions.End(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PostEvent dispatches one input event and returns the outcome with the
// resulting snapshot
func (h *Handlers) PostEvent(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var ev shell.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := sess.Shell.Dispatch(ev)
	if err != nil {
		c.JSON(dispatchStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":   res,
		"snapshot": sess.Shell.Snapshot(),
	})
}

// ListWindows returns visible windows in paint order plus minimized ones
func (h *Handlers) ListWindows(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	snap := sess.Shell.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"windows":   snap.Windows,
		"minimized": snap.Minimized,
		"max_z":     snap.MaxZ,
	})
}

// OpenWindow opens an app the same way a dock click does
func (h *Handlers) OpenWindow(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req types.OpenWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := sess.Shell.Dispatch(shell.Event{Type: shell.EventWindowOpen, AppID: req.AppID})
	if err != nil {
		c.JSON(dispatchStatus(err), gin.H{"error": err.Error()})
		return
	}
	if !res.Handled {
		c.JSON(http.StatusConflict, gin.H{"error": "desktop not ready"})
		return
	}

	snap := sess.Shell.Snapshot()
	view, _ := snap.Window(res.WindowID)
	c.JSON(http.StatusCreated, gin.H{"window": view})
}

// FocusWindow restores and raises a window
func (h *Handlers) FocusWindow(c *gin.Context) {
	h.windowAction(c, shell.EventWindowFocus)
}

// MinimizeWindow hides a window into the dock
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.windowAction(c, shell.EventWindowMinimize)
}

// RestoreWindow brings a minimized window back to the top
func (h *Handlers) RestoreWindow(c *gin.Context) {
	h.windowAction(c, shell.EventWindowRestore)
}

// CloseWindow removes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.windowAction(c, shell.EventWindowClose)
}

func (h *Handlers) windowAction(c *gin.Context, typ shell.EventType) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	wid := c.Param("wid")
	if !sess.Shell.Snapshot().Ready {
		c.JSON(http.StatusConflict, gin.H{"error": "desktop not ready"})
		return
	}

	res, err := sess.Shell.Dispatch(shell.Event{Type: typ, WindowID: wid})
	if err != nil {
		c.JSON(dispatchStatus(err), gin.H{"error": err.Error()})
		return
	}
	if !res.Handled {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"snapshot": sess.Shell.Snapshot(),
	})
}

func (h *Handlers) session(c *gin.Context) (*session.Session, bool) {
	sess, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return sess, true
}

func dispatchStatus(err error) int {
	switch {
	case errors.Is(err, shell.ErrUnknownEvent), errors.Is(err, shell.ErrInvalidEvent):
		return http.StatusBadRequest
	case errors.Is(err, shell.ErrClosed):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
