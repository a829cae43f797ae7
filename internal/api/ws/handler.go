package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/session"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/domain/shell"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/desktop/internal/shared/id"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Frame types
const (
	FrameSystem   = "system"
	FrameSnapshot = "snapshot"
	FrameResult   = "result"
	FramePong     = "pong"
	FrameError    = "error"
)

// Inbound message types
const (
	MessageEvent    = "event"
	MessagePing     = "ping"
	MessageSnapshot = "snapshot"
)

// Inbound is a client message
type Inbound struct {
	Type  string       `json:"type"`
	Event *shell.Event `json:"event,omitempty"`
}

// Frame is a server message
type Frame struct {
	Type         string          `json:"type"`
	Message      string          `json:"message,omitempty"`
	ConnectionID string          `json:"connection_id,omitempty"`
	Result       *shell.Result   `json:"result,omitempty"`
	Snapshot     *shell.Snapshot `json:"snapshot,omitempty"`
	Timestamp    int64           `json:"timestamp"`
}

// Handler streams session snapshots over WebSocket and accepts input events
type Handler struct {
	sessions *session.Manager
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. Origin checks are left to the
// CORS middleware.
func NewHandler(sessions *session.Manager, metrics *monitoring.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// conn serializes writes; gorilla allows one concurrent writer
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) write(f Frame) error {
	if f.Timestamp == 0 {
		f.Timestamp = time.Now().Unix()
	}
	data, err := sonic.Marshal(f)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// HandleSession upgrades the request and streams the session named by :id
func (h *Handler) HandleSession(c *gin.Context) {
	sess, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	connID := id.NewConnectionID()
	log := h.logger.With(zap.String("session_id", sess.ID), zap.String("connection_id", connID.String()))
	log.Debug("WebSocket connected")

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	cn := &conn{ws: ws}
	h.send(cn, Frame{Type: FrameSystem, Message: "connected", ConnectionID: connID.String()})

	updates, unsubscribe := sess.Shell.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go h.push(cn, updates, done, log)

	ws.SetReadLimit(maxMessageSize)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("WebSocket read error", zap.Error(err))
			}
			break
		}

		var msg Inbound
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.sendError(cn, "malformed message")
			continue
		}
		switch msg.Type {
		case MessageEvent, MessageSnapshot, MessagePing:
			h.record(monitoring.DirectionIn, msg.Type)
		default:
			h.record(monitoring.DirectionIn, "unknown")
		}

		switch msg.Type {
		case MessageEvent:
			h.handleEvent(cn, sess, msg)
		case MessageSnapshot:
			snap := sess.Shell.Snapshot()
			h.send(cn, Frame{Type: FrameSnapshot, Snapshot: &snap})
		case MessagePing:
			h.send(cn, Frame{Type: FramePong})
		default:
			h.sendError(cn, "unknown message type")
		}
	}

	unsubscribe()
	<-done
	log.Debug("WebSocket disconnected")
}

func (h *Handler) handleEvent(cn *conn, sess *session.Session, msg Inbound) {
	if msg.Event == nil {
		h.sendError(cn, "event message without event")
		return
	}
	res, err := sess.Shell.Dispatch(*msg.Event)
	if err != nil {
		h.sendError(cn, err.Error())
		return
	}
	h.send(cn, Frame{Type: FrameResult, Result: &res})
}

// push forwards snapshots until the subscription closes, then tells the
// client the session is gone if it ended server side
func (h *Handler) push(cn *conn, updates <-chan shell.Snapshot, done chan<- struct{}, log *zap.Logger) {
	defer close(done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				cn.mu.Lock()
				cn.ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
					time.Now().Add(writeWait))
				cn.mu.Unlock()
				return
			}
			if err := h.send(cn, Frame{Type: FrameSnapshot, Snapshot: &snap}); err != nil {
				log.Debug("Snapshot push failed", zap.Error(err))
			}
		case <-ticker.C:
			if err := cn.ping(); err != nil {
				log.Debug("Ping failed", zap.Error(err))
			}
		}
	}
}

func (h *Handler) send(cn *conn, f Frame) error {
	h.record(monitoring.DirectionOut, f.Type)
	return cn.write(f)
}

func (h *Handler) sendError(cn *conn, msg string) error {
	return h.send(cn, Frame{Type: FrameError, Message: msg})
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}
