package ws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"chance-chess/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxBotSteps bounds one bot run so an all-bot room cannot spin forever.
const maxBotSteps = 64

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*client]struct{}
	roomManager RoomManager
	upgrader    websocket.Upgrader
	log         *zap.Logger
}

// NewHub returns a hub serving roomManager. An empty allowedOrigins list, or
// one containing "*", accepts any origin.
func NewHub(roomManager RoomManager, allowedOrigins []string, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		rooms:       make(map[string]map[*client]struct{}),
		roomManager: roomManager,
		log:         logger,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := map[string]bool{}
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		if len(set) == 0 {
			return true
		}
		return set[r.Header.Get("Origin")]
	}
}

type envelope struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

type inbound struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// actionData carries the fields any client action may use. Squares are in
// algebraic notation.
type actionData struct {
	PlayerID string `json:"playerId"`
	Square   string `json:"square"`
	From     string `json:"from"`
	To       string `json:"to"`
	Piece    string `json:"piece"`
}

func (h *Hub) HandleWS(c *gin.Context) {
	roomCode := c.Query("room_code")
	if roomCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing room_code"})
		return
	}
	if _, ok := h.roomManager.Get(roomCode); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	cl := &client{conn: conn}
	h.join(roomCode, cl)
	h.log.Info("websocket connected", zap.String("code", roomCode), zap.Int("clients", h.ClientCount(roomCode)))

	defer func() {
		h.leave(roomCode, cl)
		_ = conn.Close()
	}()

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read failed", zap.String("code", roomCode), zap.Error(err))
			}
			return
		}
		reply, err := h.dispatch(roomCode, msg)
		if err != nil {
			h.log.Debug("action refused",
				zap.String("code", roomCode),
				zap.String("action", msg.Action),
				zap.Error(err))
			_ = cl.send(envelope{Action: "error", Data: gin.H{"action": msg.Action, "error": err.Error()}})
			continue
		}
		if reply != nil {
			_ = cl.send(*reply)
		}
		go h.DriveBots(roomCode)
	}
}

// dispatch runs one client action. State changes reach every client through
// the manager's broadcast; only the reply for the sender is returned here.
func (h *Hub) dispatch(code string, msg inbound) (*envelope, error) {
	var d actionData
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &d); err != nil {
			return nil, fmt.Errorf("invalid data: %w", err)
		}
	}

	switch msg.Action {
	case "select":
		pos, err := square(d.Square)
		if err != nil {
			return nil, err
		}
		snap, err := h.roomManager.Select(code, d.PlayerID, pos)
		if err != nil {
			return nil, err
		}
		return &envelope{Action: "selection", Data: snap}, nil
	case "move":
		from, err := square(d.From)
		if err != nil {
			return nil, err
		}
		to, err := square(d.To)
		if err != nil {
			return nil, err
		}
		_, err = h.roomManager.Move(code, d.PlayerID, from, to)
		return nil, err
	case "roll":
		roll, _, err := h.roomManager.Roll(code, d.PlayerID)
		if err != nil {
			return nil, err
		}
		return &envelope{Action: "dice-rolled", Data: roll}, nil
	case "toss":
		toss, _, err := h.roomManager.Toss(code, d.PlayerID)
		if err != nil {
			return nil, err
		}
		return &envelope{Action: "coin-tossed", Data: toss}, nil
	case "promote":
		pos, err := square(d.Square)
		if err != nil {
			return nil, err
		}
		pt := game.Queen
		if d.Piece != "" {
			var ok bool
			if pt, ok = game.ParsePieceType(d.Piece); !ok {
				return nil, fmt.Errorf("unknown piece %q", d.Piece)
			}
		}
		_, err = h.roomManager.Promote(code, d.PlayerID, pos, pt)
		return nil, err
	case "bot_move":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown action %q", msg.Action)
	}
}

func square(s string) (game.Position, error) {
	p, ok := game.ParsePosition(s)
	if !ok {
		return game.Position{}, fmt.Errorf("%w: %q", game.ErrInvalidPosition, s)
	}
	return p, nil
}

// DriveBots plays every bot action that is due in the room, one after
// another, announcing each as "bot-move".
func (h *Hub) DriveBots(code string) {
	r, ok := h.roomManager.Get(code)
	if !ok {
		return
	}
	for i := 0; i < maxBotSteps && r.BotToMove(); i++ {
		mv, snap, err := h.roomManager.BotMove(code)
		if err != nil {
			h.log.Warn("bot move failed", zap.String("code", code), zap.Error(err))
			return
		}
		h.Broadcast(code, "bot-move", gin.H{"move": mv, "state": snap})
	}
}

// Broadcast sends {action, data} to every client of the room. Clients that
// cannot be written to are dropped.
func (h *Hub) Broadcast(roomCode string, action string, data interface{}) {
	if h == nil {
		return
	}
	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[roomCode]))
	for cl := range h.rooms[roomCode] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	msg := envelope{Action: action, Data: data}
	for _, cl := range clients {
		if err := cl.send(msg); err != nil {
			h.log.Warn("broadcast failed", zap.String("code", roomCode), zap.Error(err))
			h.leave(roomCode, cl)
			_ = cl.conn.Close()
		}
	}
}

func (h *Hub) ClientCount(roomCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomCode])
}

func (h *Hub) join(code string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[code]; !ok {
		h.rooms[code] = make(map[*client]struct{})
	}
	h.rooms[code][cl] = struct{}{}
}

func (h *Hub) leave(code string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[code], cl)
	if len(h.rooms[code]) == 0 {
		delete(h.rooms, code)
	}
}
