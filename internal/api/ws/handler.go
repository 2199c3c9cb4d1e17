package ws

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/layout"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/session"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/infrastructure/logging"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/shared/id"
)

// Panel is the coordinator surface the stream layer drives.
type Panel interface {
	Session(id string) session.Session
	Snapshot() layout.PanelSnapshot
}

// Backlogger is the optional session capability for replaying recent
// output to a client that attached late.
type Backlogger interface {
	Backlog() []byte
}

// Frame is one client-to-engine message.
type Frame struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	Data      string `json:"data,omitempty"`
	Cols      int    `json:"cols,omitempty"`
	Rows      int    `json:"rows,omitempty"`
}

// errorFrame is pushed back on malformed or unroutable frames.
type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Handler upgrades stream connections and routes their frames.
type Handler struct {
	hub      *Hub
	panel    Panel
	log      *zap.Logger
	metrics  Metrics
	upgrader websocket.Upgrader
}

// NewHandler creates a stream handler on top of hub and panel.
func NewHandler(hub *Hub, panel Panel, logger *logging.Logger, metrics Metrics) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		hub:     hub,
		panel:   panel,
		log:     logger.Component("ws"),
		metrics: metrics,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The engine binds loopback for its own editor.
				return true
			},
		},
	}
}

// HandleConnection upgrades the request and runs the client's pumps.
// The client receives the current layout before any live events, so a
// late joiner renders the panel without a separate fetch.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("stream upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		id:   string(id.NewRequestID()),
		conn: conn,
		hub:  h.hub,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}

	snap := h.panel.Snapshot()
	hello := layout.Event{Type: layout.EventLayoutChanged, Panel: &snap}
	if data, err := hello.Encode(); err == nil {
		client.send <- data
	}

	h.hub.register <- client

	go client.writePump()
	go client.readPump(h)
}

// handleFrame routes one inbound frame. Runs on the client's read
// goroutine.
func (h *Handler) handleFrame(c *Client, raw []byte) {
	var f Frame
	if err := sonic.Unmarshal(raw, &f); err != nil {
		h.sendError(c, "invalid frame")
		return
	}
	if h.metrics != nil {
		h.metrics.RecordWSMessage("in", f.Type)
	}

	switch f.Type {
	case "input":
		s := h.panel.Session(f.SessionID)
		if s == nil {
			h.sendError(c, "unknown session")
			return
		}
		if err := s.Send(f.Data); err != nil {
			h.log.Debug("input rejected",
				zap.String("session_id", f.SessionID), zap.Error(err))
		}
	case "resize":
		if f.Cols <= 0 || f.Rows <= 0 {
			h.sendError(c, "invalid dimensions")
			return
		}
		s := h.panel.Session(f.SessionID)
		if s == nil {
			h.sendError(c, "unknown session")
			return
		}
		if err := s.Resize(f.Cols, f.Rows); err != nil {
			h.log.Debug("resize rejected",
				zap.String("session_id", f.SessionID), zap.Error(err))
		}
	case "backlog":
		h.sendBacklog(c, f.SessionID)
	case "ping":
		h.reply(c, map[string]string{"type": "pong"}, "pong")
	default:
		h.sendError(c, "unknown frame type")
	}
}

// sendBacklog replays a session's recent output to one client.
func (h *Handler) sendBacklog(c *Client, sessionID string) {
	s := h.panel.Session(sessionID)
	if s == nil {
		h.sendError(c, "unknown session")
		return
	}
	b, ok := s.(Backlogger)
	if !ok {
		h.sendError(c, "session has no backlog")
		return
	}
	h.reply(c, OutputFrame{
		Type:      "backlog",
		SessionID: sessionID,
		Data:      b.Backlog(),
	}, "backlog")
}

func (h *Handler) sendError(c *Client, msg string) {
	h.reply(c, errorFrame{Type: "error", Message: msg}, "error")
}

// reply queues a frame for one client, counting it and tolerating a
// full buffer.
func (h *Handler) reply(c *Client, payload any, msgType string) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		h.log.Error("frame encode failed", zap.Error(err))
		return
	}
	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", msgType)
	}
	if !c.deliver(data) {
		h.log.Warn("client buffer full, dropping reply",
			zap.String("client_id", c.id),
			zap.String("type", msgType))
	}
}
