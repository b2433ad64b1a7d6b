package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chance-chess/internal/api/ws"
	"chance-chess/internal/config"
	"chance-chess/internal/game"
	"chance-chess/internal/room"
	"chance-chess/internal/shared"
	"chance-chess/internal/store"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *room.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.DefaultConfig
	cfg.RNGSeed = 3
	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg, nil)
	hub := ws.NewHub(rm, nil, nil)
	rm.SetBroadcaster(hub)
	return NewRouter(rm, mem, hub, cfg, nil), rm
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

type created struct {
	RoomCode string        `json:"roomCode"`
	Player   shared.Player `json:"player"`
	Room     room.View     `json:"room"`
}

func createRoom(t *testing.T, r *gin.Engine, body gin.H) created {
	t.Helper()
	w := do(t, r, http.MethodPost, "/rooms", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var out created
	decode(t, w, &out)
	return out
}

func TestCreateAndGetRoom(t *testing.T) {
	r, _ := newTestRouter(t)
	out := createRoom(t, r, gin.H{"playerName": "Ana", "variant": "dice"})
	if out.Room.Variant != game.Dice || !out.Room.State.WaitingForDiceRoll {
		t.Fatalf("room = %+v", out.Room)
	}

	w := do(t, r, http.MethodGet, "/rooms/"+out.RoomCode, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/rooms/NOPE", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing room: %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/rooms", gin.H{"variant": "blitz"}); w.Code != http.StatusBadRequest {
		t.Fatalf("bad variant: %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/rooms", gin.H{"fen": "8/8/8/8/8/8/8/8 w - - 0 1"}); w.Code != http.StatusBadRequest {
		t.Fatalf("kingless fen: %d", w.Code)
	}
}

func TestMoveFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	out := createRoom(t, r, gin.H{"playerName": "Ana"})
	base := "/rooms/" + out.RoomCode

	w := do(t, r, http.MethodPost, base+"/join", gin.H{"playerName": "Budi"})
	if w.Code != http.StatusOK {
		t.Fatalf("join: %d %s", w.Code, w.Body.String())
	}
	var joined struct {
		Player shared.Player `json:"player"`
	}
	decode(t, w, &joined)

	tests := []struct {
		name string
		body gin.H
		want int
	}{
		{"missing player", gin.H{"from": "e2", "to": "e4"}, http.StatusBadRequest},
		{"bad square", gin.H{"playerId": out.Player.ID, "from": "e9", "to": "e4"}, http.StatusBadRequest},
		{"wrong player", gin.H{"playerId": joined.Player.ID, "from": "e2", "to": "e4"}, http.StatusForbidden},
		{"illegal", gin.H{"playerId": out.Player.ID, "from": "e2", "to": "e5"}, http.StatusUnprocessableEntity},
		{"legal", gin.H{"playerId": out.Player.ID, "from": "e2", "to": "e4"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, r, http.MethodPost, base+"/move", tt.body); w.Code != tt.want {
				t.Fatalf("status %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}

	w = do(t, r, http.MethodGet, base+"/fen", nil)
	var fen struct {
		FEN string `json:"fen"`
	}
	decode(t, w, &fen)
	if fen.FEN != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1" {
		t.Fatalf("fen = %q", fen.FEN)
	}

	w = do(t, r, http.MethodGet, base+"/record", nil)
	var rec shared.GameRecord
	decode(t, w, &rec)
	if rec.Board.FEN != fen.FEN || len(rec.Pieces) != 32 {
		t.Fatalf("record = %+v", rec.Board)
	}

	w = do(t, r, http.MethodPost, base+"/select", gin.H{"playerId": joined.Player.ID, "square": "b8"})
	var snap game.Snapshot
	decode(t, w, &snap)
	if snap.SelectedPiece == nil || len(snap.ValidMoves) != 2 {
		t.Fatalf("select = %s", w.Body.String())
	}

	w = do(t, r, http.MethodPost, base+"/reset", gin.H{"playerId": joined.Player.ID})
	decode(t, w, &snap)
	if snap.LastMove != nil || snap.CurrentTurn != game.White {
		t.Fatalf("reset = %s", w.Body.String())
	}

	if w := do(t, r, http.MethodPost, base+"/join", gin.H{"playerName": "Citra"}); w.Code != http.StatusConflict {
		t.Fatalf("third join: %d", w.Code)
	}
}

func TestRollAndToss(t *testing.T) {
	r, _ := newTestRouter(t)
	dice := createRoom(t, r, gin.H{"variant": "dice"})
	coin := createRoom(t, r, gin.H{"variant": "coin_toss"})

	w := do(t, r, http.MethodPost, "/rooms/"+dice.RoomCode+"/roll", gin.H{"playerId": dice.Player.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("roll: %d %s", w.Code, w.Body.String())
	}
	var rolled struct {
		Roll  game.DiceRoll `json:"roll"`
		State game.Snapshot `json:"state"`
	}
	decode(t, w, &rolled)
	if rolled.Roll.Value < 1 || rolled.Roll.Value > 6 || rolled.State.RemainingMoves != rolled.Roll.MovesGranted {
		t.Fatalf("roll = %+v", rolled)
	}
	if w := do(t, r, http.MethodPost, "/rooms/"+dice.RoomCode+"/roll", gin.H{"playerId": dice.Player.ID}); w.Code != http.StatusConflict {
		t.Fatalf("second roll: %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/rooms/"+dice.RoomCode+"/toss", gin.H{"playerId": dice.Player.ID}); w.Code != http.StatusConflict {
		t.Fatalf("toss in dice room: %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/rooms/"+coin.RoomCode+"/toss", gin.H{"playerId": coin.Player.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("toss: %d %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodPost, "/rooms/"+coin.RoomCode+"/roll", gin.H{"playerId": "ghost"}); w.Code != http.StatusNotFound {
		t.Fatalf("ghost roll: %d", w.Code)
	}
}

func TestPromote(t *testing.T) {
	r, _ := newTestRouter(t)
	out := createRoom(t, r, gin.H{"fen": "4k3/P7/8/8/8/8/8/4K3 w - - 0 1"})
	base := "/rooms/" + out.RoomCode
	pid := out.Player.ID

	if w := do(t, r, http.MethodPost, base+"/move", gin.H{"playerId": pid, "from": "a7", "to": "a8"}); w.Code != http.StatusOK {
		t.Fatalf("move: %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, base+"/move", gin.H{"playerId": pid, "from": "e8", "to": "d8"}); w.Code != http.StatusConflict {
		t.Fatalf("move while pending: %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, base+"/promote", gin.H{"playerId": pid, "square": "a8", "piece": "dragon"}); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown piece: %d", w.Code)
	}
	w := do(t, r, http.MethodPost, base+"/promote", gin.H{"playerId": pid, "square": "a8", "piece": "knight"})
	if w.Code != http.StatusOK {
		t.Fatalf("promote: %d %s", w.Code, w.Body.String())
	}
	var snap game.Snapshot
	decode(t, w, &snap)
	if p, _ := snap.Board.At(game.Pos(0, 0)); p.Type != game.Knight || snap.PendingPromotion != nil {
		t.Fatalf("a8 = %v, pending = %v", p, snap.PendingPromotion)
	}
}

func TestBotMoveEndpoint(t *testing.T) {
	r, rm := newTestRouter(t)
	out := createRoom(t, r, gin.H{})
	if w := do(t, r, http.MethodPost, "/rooms/"+out.RoomCode+"/bot-move", nil); w.Code != http.StatusConflict {
		t.Fatalf("no bot: %d", w.Code)
	}
	w := do(t, r, http.MethodPost, "/rooms/"+out.RoomCode+"/bots", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("add bot: %d", w.Code)
	}
	if _, _, err := rm.BotMove(out.RoomCode); !errors.Is(err, room.ErrNotBotTurn) {
		t.Fatalf("white is human, err = %v", err)
	}
}

func TestConfigAndHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	createRoom(t, r, gin.H{})

	w := do(t, r, http.MethodGet, "/healthz", nil)
	var health struct {
		Status string `json:"status"`
		Rooms  int    `json:"rooms"`
	}
	decode(t, w, &health)
	if health.Status != "ok" || health.Rooms != 1 {
		t.Fatalf("health = %+v", health)
	}

	w = do(t, r, http.MethodGet, "/config", nil)
	var cfg struct {
		DefaultVariant string         `json:"defaultVariant"`
		Weights        config.Weights `json:"weights"`
	}
	decode(t, w, &cfg)
	if cfg.DefaultVariant != "classic" || cfg.Weights != config.DefaultConfig.Weights {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestSwaggerDoc(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/swagger/doc.json", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("doc.json: %d", w.Code)
	}
	var doc struct {
		Info  struct{ Title string } `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	decode(t, w, &doc)
	if doc.Info.Title != "Chance Chess API" {
		t.Errorf("title = %q", doc.Info.Title)
	}
	if _, ok := doc.Paths["/rooms/{code}/move"]; !ok {
		t.Error("move route undocumented")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{room.ErrRoomNotFound, http.StatusNotFound},
		{room.ErrNotYourTurn, http.StatusForbidden},
		{game.ErrInvalidFEN, http.StatusBadRequest},
		{room.ErrIllegalPromotion, http.StatusUnprocessableEntity},
		{room.ErrGameOver, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
