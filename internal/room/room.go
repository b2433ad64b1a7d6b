package room

import (
	"sync"
	"time"

	"chance-chess/internal/game"
	"chance-chess/internal/shared"
)

// Room hosts one game. All engine access goes through the room's mutex.
type Room struct {
	ID        string
	Code      string
	Variant   game.GameVariant
	CreatedAt time.Time

	mu      sync.Mutex
	players []shared.Player
	engine  *game.Engine
	pending *event
}

// event is a state change waiting to be broadcast once mu is released.
type event struct {
	action string
	view   View
}

// View is the JSON shape of a room sent to clients.
type View struct {
	ID        string           `json:"id"`
	Code      string           `json:"code"`
	Variant   game.GameVariant `json:"variant"`
	Players   []shared.Player  `json:"players"`
	State     game.Snapshot    `json:"state"`
	FEN       string           `json:"fen"`
	CreatedAt time.Time        `json:"createdAt"`
}

type Store interface {
	GetRoom(code string) (*Room, bool)
	SaveRoom(r *Room)
	SaveRecord(rec shared.GameRecord)
	GetRecord(code string) (shared.GameRecord, bool)
}

func (r *Room) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewLocked()
}

func (r *Room) viewLocked() View {
	return View{
		ID:        r.ID,
		Code:      r.Code,
		Variant:   r.Variant,
		Players:   append([]shared.Player(nil), r.players...),
		State:     r.engine.State(),
		FEN:       r.engine.FEN(),
		CreatedAt: r.CreatedAt,
	}
}

func (r *Room) Players() []shared.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shared.Player(nil), r.players...)
}

func (r *Room) player(id string) (shared.Player, bool) {
	for _, p := range r.players {
		if p.ID == id {
			return p, true
		}
	}
	return shared.Player{}, false
}

// seatedFor returns the player holding color c.
func (r *Room) seatedFor(c game.Color) (shared.Player, bool) {
	for _, p := range r.players {
		if p.Color == c {
			return p, true
		}
	}
	return shared.Player{}, false
}

// mayPlay reports whether the player may act for color c. A free seat may be
// played by anyone already in the room, which is how hot-seat games work.
func (r *Room) mayPlay(playerID string, c game.Color) bool {
	if _, ok := r.player(playerID); !ok {
		return false
	}
	holder, taken := r.seatedFor(c)
	return !taken || holder.ID == playerID
}

// BotToMove reports whether the next action in the room belongs to a bot.
func (r *Room) BotToMove() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.botActorLocked()
	return ok
}

func (r *Room) botActorLocked() (shared.Player, bool) {
	s := r.engine.State()
	if s.IsCheckmate != nil {
		return shared.Player{}, false
	}
	if s.PendingPromotion != nil {
		if last := s.LastMove; last != nil {
			if p, ok := r.seatedFor(last.Piece.Color); ok && p.IsBot {
				return p, true
			}
		}
		return shared.Player{}, false
	}
	if s.WaitingForDiceRoll || s.WaitingForCoinToss {
		// a bot only draws when no human is around to do it
		for _, p := range r.players {
			if !p.IsBot {
				return shared.Player{}, false
			}
		}
		if len(r.players) > 0 {
			return r.players[0], true
		}
		return shared.Player{}, false
	}
	p, ok := r.seatedFor(s.CurrentTurn)
	if ok && p.IsBot {
		return p, true
	}
	return shared.Player{}, false
}
