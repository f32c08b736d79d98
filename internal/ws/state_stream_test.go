package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yummiapp/yummi-api/internal/models"
	"github.com/yummiapp/yummi-api/internal/state"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupStateServer starts a hub, relay and HTTP server around store.
func setupStateServer(t *testing.T, store *state.Store) (*StateHandler, string) {
	t.Helper()
	hub := NewHub()
	go hub.Run()

	ctx, cancel := context.WithCancel(context.Background())
	handler := NewStateHandler(hub, store, []string{"https://app.yummi.example"})
	handler.StartRelay(ctx)

	r := gin.New()
	r.GET("/ws/state", handler.HandleStateStream)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		srv.Close()
		cancel()
		hub.Stop()
	})
	return handler, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/state"
}

// readUntil reads messages until one of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) WSMessage {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		conn.SetReadDeadline(deadline)
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %q: %v", msgType, err)
		}
		if msg.Type == msgType {
			return msg
		}
	}
}

func TestStateStream_GreetingAndInitialSnapshot(t *testing.T) {
	_, url := setupStateServer(t, state.NewStore())

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	var first WSMessage
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if first.Type != MsgTypeConnected {
		t.Fatalf("first message type = %q, want connected", first.Type)
	}

	msg := readUntil(t, conn, MsgTypeSnapshot)
	var snap state.Snapshot
	if err := json.Unmarshal(msg.Payload, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap.Result != nil || snap.Recipes != nil {
		t.Errorf("initial snapshot = %+v, want empty", snap)
	}
}

func TestStateStream_PushesCommitsAndConsumesNavigation(t *testing.T) {
	store := state.NewStore()
	_, url := setupStateServer(t, store)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()
	readUntil(t, conn, MsgTypeSnapshot)

	_, gen := store.Begin(context.Background())
	store.Commit(gen, models.NewSuccess([]models.Recipe{{ID: "r1", Title: "Chicken Soup", ImageURL: models.DefaultImageURL}}), "Chicken")

	msg := readUntil(t, conn, MsgTypeSnapshot)
	var snap state.Snapshot
	if err := json.Unmarshal(msg.Payload, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap.NavigateTo != "Chicken" || len(snap.Recipes) != 1 {
		t.Fatalf("pushed snapshot = %+v", snap)
	}

	if err := conn.WriteJSON(WSMessage{Type: MsgTypeConsumeNavigation}); err != nil {
		t.Fatalf("write error: %v", err)
	}
	reply := readUntil(t, conn, MsgTypeNavigation)
	var nav NavigationPayload
	json.Unmarshal(reply.Payload, &nav)
	if !nav.Pending || nav.Target != "Chicken" {
		t.Errorf("navigation = %+v, want pending Chicken", nav)
	}

	conn.WriteJSON(WSMessage{Type: MsgTypeConsumeNavigation})
	reply = readUntil(t, conn, MsgTypeNavigation)
	json.Unmarshal(reply.Payload, &nav)
	if nav.Pending {
		t.Error("navigation must only be consumed once")
	}
}

func TestStateStream_UnknownMessageType(t *testing.T) {
	_, url := setupStateServer(t, state.NewStore())

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	conn.WriteJSON(WSMessage{Type: "dance"})
	msg := readUntil(t, conn, MsgTypeError)
	var payload ErrorPayload
	json.Unmarshal(msg.Payload, &payload)
	if payload.Message != "unknown message type: dance" {
		t.Errorf("error message = %q", payload.Message)
	}
}

func TestCheckOrigin(t *testing.T) {
	h := NewStateHandler(NewHub(), state.NewStore(), []string{"https://app.yummi.example"})
	cases := map[string]bool{
		"":                          true,
		"https://app.yummi.example": true,
		"http://localhost:3000":     true,
		"https://evil.example":      false,
	}
	for origin, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/ws/state", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		if got := h.checkOrigin(req); got != want {
			t.Errorf("checkOrigin(%q) = %v, want %v", origin, got, want)
		}
	}
}

func TestHub_SendToUnregisteredClient(t *testing.T) {
	hub := NewHub()
	client := &Client{Hub: hub, Send: make(chan []byte, 1), ID: "c1"}
	if hub.SendTo(client, []byte("x")) {
		t.Error("SendTo should refuse unregistered clients")
	}
}

func TestHub_BroadcastAndStop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, Send: make(chan []byte, 4), ID: "c1"}
	hub.Register <- client
	hub.Broadcast <- []byte("hello")

	select {
	case msg := <-client.Send:
		if string(msg) != "hello" {
			t.Errorf("msg = %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("broadcast not delivered")
	}
	if n := hub.ClientCount(); n != 1 {
		t.Errorf("ClientCount() = %d, want 1", n)
	}

	hub.Stop()
	select {
	case _, ok := <-client.Send:
		if ok {
			t.Error("Send should be closed after Stop")
		}
	case <-time.After(time.Second):
		t.Fatal("Send not closed after Stop")
	}
	if n := hub.ClientCount(); n != 0 {
		t.Errorf("ClientCount() after Stop = %d, want 0", n)
	}
}
