// Package realtime implements the chat channel: a websocket hub with named
// rooms, join notices, and per-room fan-out.
package realtime

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pathagar/bookshop-api/internal/api/metrics"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

const (
	// Inbound events.
	eventJoinRoom   = "joinRoom"
	eventNewMessage = "newMessage"

	// Outbound events.
	eventMessage       = "message"
	eventLatestMessage = "getLatestMessage"

	welcomeNotice = "Welcome to the Pathagar chat"
	joinNotice    = "A user has joined the chat"
)

// frame is the JSON message exchanged over the chat channel.
type frame struct {
	Event   string `json:"event"`
	Room    string `json:"room,omitempty"`
	Message string `json:"message,omitempty"`
}

// Hub tracks connected clients and their room subscriptions.
//
// Access control is an explicit construction-time decision: with requireAuth
// set, the upgrade is gated behind bearer-token verification (header or
// "token" query parameter); otherwise the channel is a public lobby, which is
// the posture the original service shipped with.
type Hub struct {
	upgrader    websocket.Upgrader
	tokens      ports.TokenCodec
	requireAuth bool
	log         zerolog.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	rooms   map[string]map[*client]struct{}
}

func NewHub(tokens ports.TokenCodec, requireAuth bool, log zerolog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		tokens:      tokens,
		requireAuth: requireAuth,
		log:         log,
		clients:     make(map[*client]struct{}),
		rooms:       make(map[string]map[*client]struct{}),
	}
}

// ServeWS handles GET /chat/ws: authorizes (when configured), upgrades, and
// runs the connection's read loop until the peer disconnects.
func (h *Hub) ServeWS(c echo.Context) error {
	if h.requireAuth {
		if err := h.authorize(c); err != nil {
			return err
		}
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return nil // upgrader already wrote the response
	}

	cl := newClient(conn)
	h.register(cl)
	go cl.writePump()

	cl.enqueue(frame{Event: eventMessage, Message: welcomeNotice})
	h.broadcastExcept(cl, frame{Event: eventMessage, Message: joinNotice})

	h.readLoop(cl)
	return nil
}

// authorize resolves the bearer token from the Authorization header or the
// "token" query parameter, preserving the guard's status distinction.
func (h *Hub) authorize(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		header := c.Request().Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			token = parts[1]
		}
	}
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
	}

	if _, err := h.tokens.Verify(token); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "invalid token")
	}
	return nil
}

func (h *Hub) readLoop(cl *client) {
	defer h.unregister(cl)

	for {
		var f frame
		if err := cl.conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Msg("websocket read ended")
			}
			return
		}

		switch f.Event {
		case eventJoinRoom:
			if f.Room != "" {
				h.join(cl, f.Room)
			}
		case eventNewMessage:
			if f.Room != "" {
				h.emitToRoom(f.Room, f.Message)
			}
		}
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	metrics.ChatConnectionsActive.Inc()
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, cl)
	for room := range cl.rooms {
		delete(h.rooms[room], cl)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()

	cl.close()
	metrics.ChatConnectionsActive.Dec()
}

// join subscribes the client to a named room.
func (h *Hub) join(cl *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]struct{})
	}
	h.rooms[room][cl] = struct{}{}
	cl.rooms[room] = struct{}{}
}

// emitToRoom fans the payload out to every subscriber of the room,
// including the sender.
func (h *Hub) emitToRoom(room, message string) {
	out := frame{Event: eventLatestMessage, Room: room, Message: message}

	h.mu.RLock()
	for cl := range h.rooms[room] {
		cl.enqueue(out)
	}
	h.mu.RUnlock()

	metrics.ChatMessagesTotal.Inc()
}

// broadcastExcept sends the frame to every connected client but one.
func (h *Hub) broadcastExcept(except *client, f frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for cl := range h.clients {
		if cl != except {
			cl.enqueue(f)
		}
	}
}
