package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// writeWait is the deadline for one outbound frame.
	writeWait = 10 * time.Second
	// pongWait is how long a connection may stay silent.
	pongWait = 60 * time.Second
	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// maxFrameSize bounds inbound frames; input lines are small.
	maxFrameSize = 64 * 1024
	// sendBuffer is the per-client outbound queue. Overflow means the
	// client is not reading and gets disconnected.
	sendBuffer = 256
)

// Client is one stream connection. send is never closed; the hub
// signals shutdown through done, so the read goroutine may keep
// queueing replies without racing a close.
type Client struct {
	id   string
	conn *websocket.Conn
	hub  *Hub
	send chan []byte
	done chan struct{}
}

// readPump consumes inbound frames until the connection dies.
func (c *Client) readPump(h *Handler) {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("stream read ended",
					zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}
		h.handleFrame(c, message)
	}
}

// writePump drains send onto the wire and keeps the connection alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// deliver queues one frame for this client only. Reports false when
// the buffer is full.
func (c *Client) deliver(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}
