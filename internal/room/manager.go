package room

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"chance-chess/internal/config"
	"chance-chess/internal/game"
	"chance-chess/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Manager struct {
	store Store
	cfg   config.Config
	log   *zap.Logger
	bc    Broadcaster
	now   func() time.Time
}

func NewManager(s Store, cfg config.Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: s, cfg: cfg, log: logger, bc: nopBroadcaster{}, now: time.Now}
}

// SetBroadcaster wires the websocket hub after both sides are constructed.
func (m *Manager) SetBroadcaster(b Broadcaster) {
	if b == nil {
		b = nopBroadcaster{}
	}
	m.bc = b
}

// DefaultVariant is the configured variant for rooms created without one.
func (m *Manager) DefaultVariant() game.GameVariant {
	v, _ := game.ParseVariant(m.cfg.DefaultVariant)
	return v
}

// CreateRoom opens a room and seats the creator as White. A non-empty fen
// starts the game from that position.
func (m *Manager) CreateRoom(variant game.GameVariant, creatorName, fen string) (*Room, shared.Player, error) {
	if creatorName == "" {
		creatorName = "Player"
	}
	opts := []game.Option{}
	if m.cfg.RNGSeed != 0 {
		opts = append(opts, game.WithSeed(m.cfg.RNGSeed))
	}

	var engine *game.Engine
	if strings.TrimSpace(fen) == "" {
		engine = game.NewEngine(variant, opts...)
	} else {
		var err error
		if engine, err = game.NewEngineFromFEN(variant, fen, opts...); err != nil {
			return nil, shared.Player{}, err
		}
	}

	creator := shared.Player{ID: uuid.NewString(), Name: creatorName, Color: game.White}
	r := &Room{
		ID:        uuid.NewString(),
		Code:      m.freshCode(),
		Variant:   variant,
		CreatedAt: m.now(),
		players:   []shared.Player{creator},
		engine:    engine,
	}
	m.store.SaveRoom(r)
	m.store.SaveRecord(m.recordLocked(r))
	m.log.Info("room created",
		zap.String("code", r.Code),
		zap.Stringer("variant", variant),
		zap.String("player", creator.ID))
	return r, creator, nil
}

func (m *Manager) freshCode() string {
	for {
		code := randCode(m.cfg.RoomCodeLength)
		if _, taken := m.store.GetRoom(code); !taken {
			return code
		}
	}
}

func (m *Manager) Get(code string) (*Room, bool) {
	return m.store.GetRoom(code)
}

func (m *Manager) room(code string) (*Room, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, code)
	}
	return r, nil
}

// Join seats a second human as Black.
func (m *Manager) Join(code, name string) (*Room, shared.Player, error) {
	if name == "" {
		name = "Player"
	}
	return m.seat(code, shared.Player{ID: uuid.NewString(), Name: name})
}

// AddBot seats a bot in the free color.
func (m *Manager) AddBot(code string) (*Room, shared.Player, error) {
	return m.seat(code, shared.Player{ID: "bot-" + uuid.NewString(), Name: "Bot", IsBot: true})
}

func (m *Manager) seat(code string, p shared.Player) (*Room, shared.Player, error) {
	r, err := m.room(code)
	if err != nil {
		return nil, shared.Player{}, err
	}
	r.mu.Lock()
	defer m.release(r)

	free := false
	for _, c := range [2]game.Color{game.White, game.Black} {
		if _, taken := r.seatedFor(c); !taken {
			p.Color, free = c, true
			break
		}
	}
	if !free {
		return nil, shared.Player{}, fmt.Errorf("%w: %s", ErrRoomFull, code)
	}
	r.players = append(r.players, p)
	m.commitLocked(r, "player-joined")
	m.log.Info("player seated",
		zap.String("code", code),
		zap.String("player", p.ID),
		zap.Stringer("color", p.Color),
		zap.Bool("bot", p.IsBot))
	return r, p, nil
}

// State returns the room's current snapshot.
func (m *Manager) State(code string) (game.Snapshot, error) {
	r, err := m.room(code)
	if err != nil {
		return game.Snapshot{}, err
	}
	return r.View().State, nil
}

func (m *Manager) Select(code, playerID string, pos game.Position) (game.Snapshot, error) {
	r, err := m.room(code)
	if err != nil {
		return game.Snapshot{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !pos.Valid() {
		return game.Snapshot{}, fmt.Errorf("%w: %v", game.ErrInvalidPosition, pos)
	}
	if !r.mayPlay(playerID, r.engine.State().CurrentTurn) {
		return game.Snapshot{}, ErrNotYourTurn
	}
	r.engine.SelectPiece(pos)
	return r.engine.State(), nil
}

func (m *Manager) Move(code, playerID string, from, to game.Position) (game.Snapshot, error) {
	r, err := m.room(code)
	if err != nil {
		return game.Snapshot{}, err
	}
	r.mu.Lock()
	defer m.release(r)

	if err := m.moveLocked(r, playerID, from, to); err != nil {
		return game.Snapshot{}, err
	}
	m.commitLocked(r, "move")
	return r.engine.State(), nil
}

func (m *Manager) moveLocked(r *Room, playerID string, from, to game.Position) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: %v -> %v", game.ErrInvalidPosition, from, to)
	}
	s := r.engine.State()
	switch {
	case s.IsCheckmate != nil:
		return ErrGameOver
	case s.PendingPromotion != nil:
		return ErrPromotionPending
	case s.WaitingForDiceRoll, s.WaitingForCoinToss:
		return fmt.Errorf("%w: move", ErrNotAwaited)
	}
	if !r.mayPlay(playerID, s.CurrentTurn) {
		return ErrNotYourTurn
	}
	if !r.engine.MovePiece(from, to) {
		m.log.Debug("move refused",
			zap.String("code", r.Code),
			zap.Stringer("from", from),
			zap.Stringer("to", to))
		return fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}
	m.log.Info("move applied",
		zap.String("code", r.Code),
		zap.String("player", playerID),
		zap.Stringer("from", from),
		zap.Stringer("to", to))
	return nil
}

// Roll throws the die. Any seated player may roll.
func (m *Manager) Roll(code, playerID string) (game.DiceRoll, game.Snapshot, error) {
	r, err := m.room(code)
	if err != nil {
		return game.DiceRoll{}, game.Snapshot{}, err
	}
	r.mu.Lock()
	defer m.release(r)

	if _, ok := r.player(playerID); !ok {
		return game.DiceRoll{}, game.Snapshot{}, ErrPlayerNotFound
	}
	roll := r.engine.RollDice()
	if roll.Value == 0 {
		return roll, game.Snapshot{}, fmt.Errorf("%w: dice roll", ErrNotAwaited)
	}
	m.log.Info("dice rolled",
		zap.String("code", r.Code),
		zap.Int("value", roll.Value),
		zap.Stringer("player", roll.Player),
		zap.Int("moves", roll.MovesGranted))
	m.commitLocked(r, "dice-rolled")
	return roll, r.engine.State(), nil
}

// Toss flips the coin. Any seated player may toss.
func (m *Manager) Toss(code, playerID string) (game.CoinFlip, game.Snapshot, error) {
	r, err := m.room(code)
	if err != nil {
		return game.CoinFlip{}, game.Snapshot{}, err
	}
	r.mu.Lock()
	defer m.release(r)

	if _, ok := r.player(playerID); !ok {
		return game.CoinFlip{}, game.Snapshot{}, ErrPlayerNotFound
	}
	before := r.engine.State()
	toss := r.engine.TossCoin()
	if r.engine.State().WaitingForCoinToss == before.WaitingForCoinToss {
		return toss, game.Snapshot{}, fmt.Errorf("%w: coin toss", ErrNotAwaited)
	}
	m.log.Info("coin tossed", zap.String("code", r.Code), zap.Stringer("result", toss.Result))
	m.commitLocked(r, "coin-tossed")
	return toss, r.engine.State(), nil
}

// Promote resolves a pending promotion. Only the player who moved the pawn may choose.
func (m *Manager) Promote(code, playerID string, pos game.Position, pt game.PieceType) (game.Snapshot, error) {
	r, err := m.room(code)
	if err != nil {
		return game.Snapshot{}, err
	}
	r.mu.Lock()
	defer m.release(r)

	if err := m.promoteLocked(r, playerID, pos, pt); err != nil {
		return game.Snapshot{}, err
	}
	m.commitLocked(r, "pawn-promoted")
	return r.engine.State(), nil
}

func (m *Manager) promoteLocked(r *Room, playerID string, pos game.Position, pt game.PieceType) error {
	s := r.engine.State()
	if s.LastMove == nil {
		return ErrIllegalPromotion
	}
	if !r.mayPlay(playerID, s.LastMove.Piece.Color) {
		return ErrNotYourTurn
	}
	if !r.engine.PromotePawn(pos, pt) {
		return fmt.Errorf("%w: %s to %s", ErrIllegalPromotion, pos, pt)
	}
	m.log.Info("pawn promoted", zap.String("code", r.Code), zap.Stringer("square", pos), zap.Stringer("piece", pt))
	return nil
}

// Reset restarts the room's game from its starting position.
func (m *Manager) Reset(code, playerID string) (game.Snapshot, error) {
	r, err := m.room(code)
	if err != nil {
		return game.Snapshot{}, err
	}
	r.mu.Lock()
	defer m.release(r)

	if _, ok := r.player(playerID); !ok {
		return game.Snapshot{}, ErrPlayerNotFound
	}
	r.engine.ResetGame()
	m.log.Info("game reset", zap.String("code", r.Code))
	m.commitLocked(r, "game-reset")
	return r.engine.State(), nil
}

func (m *Manager) FEN(code string) (string, error) {
	r, err := m.room(code)
	if err != nil {
		return "", err
	}
	return r.View().FEN, nil
}

func (m *Manager) Record(code string) (shared.GameRecord, error) {
	rec, ok := m.store.GetRecord(code)
	if !ok {
		return shared.GameRecord{}, fmt.Errorf("%w: %s", ErrRoomNotFound, code)
	}
	return rec, nil
}

// BotMove lets the bot whose action is due play it: a pending promotion, a
// roll or toss in an all-bot room, or its best scoring move.
func (m *Manager) BotMove(code string) (shared.Move, game.Snapshot, error) {
	r, err := m.room(code)
	if err != nil {
		return shared.Move{}, game.Snapshot{}, err
	}
	r.mu.Lock()
	defer m.release(r)

	bot, ok := r.botActorLocked()
	if !ok {
		return shared.Move{}, game.Snapshot{}, ErrNotBotTurn
	}

	s := r.engine.State()
	var mv shared.Move
	switch {
	case s.PendingPromotion != nil:
		if err := m.promoteLocked(r, bot.ID, *s.PendingPromotion, game.Queen); err != nil {
			return shared.Move{}, game.Snapshot{}, err
		}
		mv = shared.Move{PlayerID: bot.ID, From: s.LastMove.From, To: *s.PendingPromotion, Promotion: game.Queen}
	case s.WaitingForDiceRoll:
		r.engine.RollDice()
	case s.WaitingForCoinToss:
		r.engine.TossCoin()
	default:
		best, err := r.engine.BestMove(m.cfg.Weights)
		if err != nil {
			return shared.Move{}, game.Snapshot{}, err
		}
		if err := m.moveLocked(r, bot.ID, best.From, best.To); err != nil {
			return shared.Move{}, game.Snapshot{}, err
		}
		mv = shared.Move{PlayerID: bot.ID, From: best.From, To: best.To}
		if p := r.engine.State().PendingPromotion; p != nil {
			if err := m.promoteLocked(r, bot.ID, *p, game.Queen); err != nil {
				return shared.Move{}, game.Snapshot{}, err
			}
			mv.Promotion = game.Queen
		}
	}

	m.commitLocked(r, "bot-move")
	return mv, r.engine.State(), nil
}

// commitLocked persists the room and its record and queues the update for
// release to broadcast.
func (m *Manager) commitLocked(r *Room, action string) {
	m.store.SaveRoom(r)
	m.store.SaveRecord(m.recordLocked(r))
	r.pending = &event{action: action, view: r.viewLocked()}
}

// release unlocks r, then broadcasts any update queued by commitLocked.
func (m *Manager) release(r *Room) {
	ev := r.pending
	r.pending = nil
	r.mu.Unlock()
	if ev != nil {
		m.bc.Broadcast(r.Code, "state-updated", gin.H{
			"action": ev.action,
			"room":   ev.view,
		})
	}
}

func (m *Manager) recordLocked(r *Room) shared.GameRecord {
	return shared.RecordFromSnapshot(r.ID, r.Code, r.engine.State(), r.engine.FEN(), r.players, m.now())
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return string(b)
}
