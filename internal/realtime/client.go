package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

const sendBuffer = 16

// client is one websocket connection. All writes go through the send channel
// so the write pump is the connection's single writer.
type client struct {
	conn  *websocket.Conn
	send  chan frame
	rooms map[string]struct{}

	closeOnce sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:  conn,
		send:  make(chan frame, sendBuffer),
		rooms: make(map[string]struct{}),
	}
}

// enqueue queues a frame for delivery, dropping it if the peer is too slow
// to drain its buffer. Chat notices are not worth blocking the hub over.
func (c *client) enqueue(f frame) {
	select {
	case c.send <- f:
	default:
	}
}

func (c *client) writePump() {
	for f := range c.send {
		if err := c.conn.WriteJSON(f); err != nil {
			break
		}
	}
	_ = c.conn.Close()
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}
