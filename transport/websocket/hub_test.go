package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap/zaptest"

	"github.com/wricardo/solitaire/game/engine"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{
		id:        sessionID + "-client",
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
}

func testState() *engine.BoardState {
	board := engine.NewBoard(engine.DefaultLayout())
	board.InitializeDeck()
	board.InitializePlayfield()
	return board.Snapshot(nil)
}

func TestNewHub(t *testing.T) {
	hub := NewHub(nil)

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.broadcast == nil || hub.register == nil || hub.unregister == nil {
		t.Error("Hub channels not initialized")
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)
	if hub.ClientCount("test-session") != 1 {
		t.Fatalf("Expected 1 client in session, got %d", hub.ClientCount("test-session"))
	}

	hub.unregisterClient(client)
	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
	if _, ok := <-client.send; ok {
		t.Error("Expected send channel to be closed")
	}

	// unregistering twice is harmless
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	client1 := newTestClient(hub, "multi")
	client2 := newTestClient(hub, "multi")
	other := newTestClient(hub, "other")

	hub.registerClient(client1)
	hub.registerClient(client2)
	hub.registerClient(other)

	hub.broadcastMessage(&Message{SessionID: "multi", Event: EventStateUpdate, BoardState: testState()})

	for _, c := range []*Client{client1, client2} {
		select {
		case data := <-c.send:
			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("Failed to decode message: %v", err)
			}
			if msg.Event != EventStateUpdate {
				t.Errorf("Expected event %s, got %s", EventStateUpdate, msg.Event)
			}
			if msg.BoardState == nil || msg.BoardState.TotalCards != engine.DeckSize {
				t.Errorf("Expected a full board state, got %+v", msg.BoardState)
			}
		default:
			t.Error("Expected client in session to receive the message")
		}
	}

	select {
	case <-other.send:
		t.Error("Client in another session should not receive the message")
	default:
	}

	hub.unregisterClient(client1)
	if hub.ClientCount("multi") != 1 {
		t.Errorf("Expected 1 client remaining in session, got %d", hub.ClientCount("multi"))
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	slow := &Client{id: "slow", hub: hub, sessionID: "s", send: make(chan []byte)}
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{SessionID: "s", Event: "ping"})

	if hub.ClientCount("s") != 0 {
		t.Error("Expected slow client to be disconnected")
	}
}

func TestHubServeWS(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zaptest.NewLogger(t))
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"))
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=abcd"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount("abcd") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.BroadcastToSession("abcd", testState())
	hub.BroadcastEvent("abcd", "session_deleted", map[string]string{"id": "abcd"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first Message
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("Failed to read state update: %v", err)
	}
	if first.Event != EventStateUpdate || first.SessionID != "abcd" {
		t.Errorf("Unexpected first message: %+v", first)
	}
	if first.BoardState == nil || len(first.BoardState.Lanes[6]) != 7 {
		t.Error("Expected the dealt board in the state update")
	}

	var second Message
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("Failed to read event: %v", err)
	}
	if second.Event != "session_deleted" {
		t.Errorf("Expected session_deleted event, got %s", second.Event)
	}

	cancel()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("Expected the connection to close when the hub stops")
	}
}
