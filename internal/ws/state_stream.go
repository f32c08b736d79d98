package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/yummiapp/yummi-api/internal/logger"
	"github.com/yummiapp/yummi-api/internal/state"
	"go.uber.org/zap"
)

// WebSocket message types for the state stream.
const (
	MsgTypeConnected         = "connected"          // Connection confirmed
	MsgTypeSnapshot          = "snapshot"           // Full state snapshot
	MsgTypeConsumeNavigation = "consume_navigation" // Client consumes the navigation signal
	MsgTypeNavigation        = "navigation"         // Reply to consume_navigation
	MsgTypeError             = "error"              // Error message
)

// WSMessage is the envelope for all messages on the state stream.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ConnectedPayload confirms a successful connection.
type ConnectedPayload struct {
	ClientID string `json:"client_id"`
}

// NavigationPayload answers consume_navigation. Target is empty when no
// navigation was pending.
type NavigationPayload struct {
	Target  string `json:"target,omitempty"`
	Pending bool   `json:"pending"`
}

// ErrorPayload carries an error message to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// StateHandler streams search state snapshots to UI clients.
type StateHandler struct {
	Hub            *Hub
	Store          *state.Store
	AllowedOrigins []string
	upgrader       websocket.Upgrader
}

// NewStateHandler returns a new StateHandler. Origins in allowedOrigins and
// localhost are accepted; requests without an Origin header (native apps)
// are always accepted.
func NewStateHandler(hub *Hub, store *state.Store, allowedOrigins []string) *StateHandler {
	h := &StateHandler{
		Hub:            hub,
		Store:          store,
		AllowedOrigins: allowedOrigins,
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin:     h.checkOrigin,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	return h
}

func (h *StateHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return strings.HasPrefix(origin, "http://localhost:") || origin == "http://localhost"
}

// StartRelay subscribes to the store and forwards every change to all
// connected clients until ctx is done.
func (h *StateHandler) StartRelay(ctx context.Context) {
	snapshots, unsubscribe := h.Store.Subscribe()
	go h.relay(ctx, snapshots, unsubscribe)
}

func (h *StateHandler) relay(ctx context.Context, snapshots <-chan state.Snapshot, unsubscribe func()) {
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			msg, err := encode(MsgTypeSnapshot, snap)
			if err != nil {
				logger.Get().Error("failed to encode snapshot", zap.Error(err))
				continue
			}
			logger.Get().Debug("broadcasting state snapshot",
				zap.Uint64("generation", snap.Generation),
				zap.Int("subscribers", h.Hub.ClientCount()),
			)
			select {
			case h.Hub.Broadcast <- msg:
			case <-ctx.Done():
				return
			}
		}
	}
}

// HandleStateStream upgrades the request to a WebSocket connection. The
// client first receives a connected message and the current snapshot, then
// a snapshot after every change.
func (h *StateHandler) HandleStateStream(c *gin.Context) {
	log := logger.FromGin(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		Hub:  h.Hub,
		Conn: conn,
		Send: make(chan []byte, 16),
		ID:   uuid.NewString(),
	}

	// Queue the greeting before registering so it cannot race a broadcast
	// into an unregistered client.
	if msg, err := encode(MsgTypeConnected, ConnectedPayload{ClientID: client.ID}); err == nil {
		client.Send <- msg
	}
	if msg, err := encode(MsgTypeSnapshot, h.Store.Snapshot()); err == nil {
		client.Send <- msg
	}
	select {
	case h.Hub.Register <- client:
	case <-h.Hub.done:
		conn.Close()
		return
	}

	log.Info("state stream opened", zap.String("client_id", client.ID))

	go client.WritePump()
	go client.ReadPump(h.handleMessage)
}

// handleMessage parses an incoming message and routes it.
func (h *StateHandler) handleMessage(client *Client, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.sendError(client, "invalid message format")
		return
	}

	switch msg.Type {
	case MsgTypeConsumeNavigation:
		target, ok := h.Store.ConsumeNavigation()
		reply, err := encode(MsgTypeNavigation, NavigationPayload{Target: target, Pending: ok})
		if err != nil {
			return
		}
		h.Hub.SendTo(client, reply)

	default:
		h.sendError(client, "unknown message type: "+msg.Type)
	}
}

func (h *StateHandler) sendError(client *Client, message string) {
	msg, err := encode(MsgTypeError, ErrorPayload{Message: message})
	if err != nil {
		return
	}
	h.Hub.SendTo(client, msg)
}

func encode(msgType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{Type: msgType, Payload: raw})
}
