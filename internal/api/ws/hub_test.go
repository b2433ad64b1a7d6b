package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chance-chess/internal/config"
	"chance-chess/internal/game"
	"chance-chess/internal/room"
	"chance-chess/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type testMsg struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*room.Manager, *Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.DefaultConfig
	cfg.RNGSeed = 7
	rm := room.NewManager(store.NewMemoryStore(), cfg, nil)
	hub := NewHub(rm, nil, nil)
	rm.SetBroadcaster(hub)

	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return rm, hub, srv
}

func dial(t *testing.T, srv *httptest.Server, code string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?room_code=" + code
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitFor reads until a message with the given action arrives.
func waitFor(t *testing.T, conn *websocket.Conn, action string) testMsg {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var msg testMsg
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %q: %v", action, err)
		}
		if msg.Action == action {
			return msg
		}
	}
}

func waitForClients(t *testing.T, hub *Hub, code string, n int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for hub.ClientCount(code) < n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", hub.ClientCount(code), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHandleWSRejectsMissingRoom(t *testing.T) {
	_, _, srv := setup(t)
	for _, q := range []string{"", "?room_code=NOPE"} {
		resp, err := http.Get(srv.URL + "/ws" + q)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusSwitchingProtocols || resp.StatusCode == http.StatusOK {
			t.Errorf("%q: status %d", q, resp.StatusCode)
		}
	}
}

func TestMoveIsBroadcastToRoom(t *testing.T) {
	rm, hub, srv := setup(t)
	r, white, _ := rm.CreateRoom(game.Classic, "Ana", "")
	_, black, _ := rm.Join(r.Code, "Budi")

	a := dial(t, srv, r.Code)
	b := dial(t, srv, r.Code)
	waitForClients(t, hub, r.Code, 2)

	if err := a.WriteJSON(gin.H{"action": "move", "data": gin.H{"playerId": white.ID, "from": "e2", "to": "e4"}}); err != nil {
		t.Fatal(err)
	}
	msg := waitFor(t, b, "state-updated")
	var payload struct {
		Action string    `json:"action"`
		Room   room.View `json:"room"`
	}
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Action != "move" || payload.Room.State.CurrentTurn != game.Black {
		t.Fatalf("payload = %s", msg.Data)
	}

	// out of turn: only the sender hears about it
	if err := a.WriteJSON(gin.H{"action": "move", "data": gin.H{"playerId": white.ID, "from": "d2", "to": "d4"}}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, a, "error")

	if err := b.WriteJSON(gin.H{"action": "select", "data": gin.H{"playerId": black.ID, "square": "g8"}}); err != nil {
		t.Fatal(err)
	}
	sel := waitFor(t, b, "selection")
	var snap game.Snapshot
	if err := json.Unmarshal(sel.Data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.SelectedPiece == nil || len(snap.ValidMoves) != 2 {
		t.Fatalf("selection = %s", sel.Data)
	}
}

func TestUnknownActionReturnsError(t *testing.T) {
	rm, hub, srv := setup(t)
	r, _, _ := rm.CreateRoom(game.Classic, "Ana", "")
	c := dial(t, srv, r.Code)
	waitForClients(t, hub, r.Code, 1)

	if err := c.WriteJSON(gin.H{"action": "castle-everything"}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, c, "error")
}

func TestBotRepliesAfterHumanMove(t *testing.T) {
	rm, hub, srv := setup(t)
	r, human, _ := rm.CreateRoom(game.Classic, "Ana", "")
	if _, _, err := rm.AddBot(r.Code); err != nil {
		t.Fatal(err)
	}
	c := dial(t, srv, r.Code)
	waitForClients(t, hub, r.Code, 1)

	if err := c.WriteJSON(gin.H{"action": "move", "data": gin.H{"playerId": human.ID, "from": "e2", "to": "e4"}}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, c, "bot-move")
	if s, _ := rm.State(r.Code); s.CurrentTurn != game.White {
		t.Fatalf("turn after bot reply = %s", s.CurrentTurn)
	}
}

func TestOriginChecker(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"empty list allows all", nil, "http://evil.test", true},
		{"wildcard", []string{"*"}, "http://evil.test", true},
		{"listed", []string{"http://a.test"}, "http://a.test", true},
		{"unlisted", []string{"http://a.test"}, "http://b.test", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			req.Header.Set("Origin", tt.origin)
			if got := originChecker(tt.allowed)(req); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
