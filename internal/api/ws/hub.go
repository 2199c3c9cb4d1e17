package ws

import (
	"sync/atomic"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/layout"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/infrastructure/logging"
)

// Metrics counts stream connections and frames. *monitoring.Metrics
// satisfies it; nil disables counting.
type Metrics interface {
	IncWSConnections()
	DecWSConnections()
	RecordWSMessage(direction, msgType string)
}

// OutputFrame carries raw session bytes to stream clients. Data rides
// as base64 per JSON []byte marshaling; the frontend decodes before
// feeding its terminal renderer.
type OutputFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Data      []byte `json:"data"`
}

// Hub fans engine frames out to every connected stream client. The Run
// goroutine is the only one touching the client set and the only
// sender on client channels after registration, so a slow client can
// be cut loose without racing an in-flight send.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	count      atomic.Int32
	log        *zap.Logger
	metrics    Metrics
}

// NewHub creates a hub. Call Run on its own goroutine before serving
// connections.
func NewHub(logger *logging.Logger, metrics Metrics) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		log:        logger.Component("ws"),
		metrics:    metrics,
	}
}

// Run owns the client set until Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				close(client.done)
				delete(h.clients, client)
			}
			h.count.Store(0)
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.count.Store(int32(len(h.clients)))
			if h.metrics != nil {
				h.metrics.IncWSConnections()
			}
			h.log.Info("stream client connected",
				zap.String("client_id", client.id),
				zap.Int("total", len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.done)
				h.count.Store(int32(len(h.clients)))
				if h.metrics != nil {
					h.metrics.DecWSConnections()
				}
				h.log.Info("stream client disconnected",
					zap.String("client_id", client.id),
					zap.Int("total", len(h.clients)))
			}
		case frame := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- frame:
				default:
					// A full buffer means the client stopped reading.
					// Cut it loose; it can reconnect and fetch the
					// backlog.
					delete(h.clients, client)
					close(client.done)
					h.count.Store(int32(len(h.clients)))
					if h.metrics != nil {
						h.metrics.DecWSConnections()
					}
					h.log.Warn("dropping slow stream client",
						zap.String("client_id", client.id))
				}
			}
		}
	}
}

// Stop shuts the hub down and disconnects every client.
func (h *Hub) Stop() {
	close(h.done)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// BroadcastEvent pushes a panel event to all clients. Safe to call
// from under the coordinator lock: it only enqueues.
func (h *Hub) BroadcastEvent(e layout.Event) {
	data, err := e.Encode()
	if err != nil {
		h.log.Error("event encode failed", zap.Error(err))
		return
	}
	h.enqueue(data, e.Type)
}

// BroadcastOutput pushes raw session output to all clients.
func (h *Hub) BroadcastOutput(sessionID string, data []byte) {
	frame, err := sonic.Marshal(OutputFrame{
		Type:      "output",
		SessionID: sessionID,
		Data:      data,
	})
	if err != nil {
		h.log.Error("output encode failed", zap.Error(err))
		return
	}
	h.enqueue(frame, "output")
}

func (h *Hub) enqueue(frame []byte, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", msgType)
	}
	select {
	case h.broadcast <- frame:
	case <-h.done:
	default:
		h.log.Warn("broadcast buffer full, dropping frame",
			zap.String("type", msgType))
	}
}
