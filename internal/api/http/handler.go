package http

import (
	"errors"
	"fmt"
	"net/http"

	"chance-chess/internal/api/ws"
	"chance-chess/internal/game"
	"chance-chess/internal/room"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound), errors.Is(err, room.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrNotYourTurn):
		return http.StatusForbidden
	case errors.Is(err, game.ErrInvalidFEN), errors.Is(err, game.ErrInvalidPosition):
		return http.StatusBadRequest
	case errors.Is(err, room.ErrIllegalMove), errors.Is(err, room.ErrIllegalPromotion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, room.ErrRoomFull),
		errors.Is(err, room.ErrNotAwaited),
		errors.Is(err, room.ErrPromotionPending),
		errors.Is(err, room.ErrGameOver),
		errors.Is(err, room.ErrNotBotTurn),
		errors.Is(err, game.ErrNoLegalMoves):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func square(s string) (game.Position, error) {
	p, ok := game.ParsePosition(s)
	if !ok {
		return game.Position{}, fmt.Errorf("%w: %q", game.ErrInvalidPosition, s)
	}
	return p, nil
}

// @Summary Create new room
// @Description Create a room for one variant, optionally from a FEN position and with a bot opponent
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.CreateRoomRequest true "Room options"
// @Success 201 {object} map[string]interface{}
// @Router /rooms [post]
func CreateRoomHandler(rm *room.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		variant := rm.DefaultVariant()
		if req.Variant != "" {
			v, ok := game.ParseVariant(req.Variant)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown variant " + req.Variant})
				return
			}
			variant = v
		}
		rx, player, err := rm.CreateRoom(variant, req.PlayerName, req.FEN)
		if err != nil {
			fail(c, err)
			return
		}
		if req.WithBot {
			if _, _, err := rm.AddBot(rx.Code); err != nil {
				fail(c, err)
				return
			}
			go hub.DriveBots(rx.Code)
		}
		c.JSON(http.StatusCreated, gin.H{"roomCode": rx.Code, "player": player, "room": rx.View()})
	}
}

// @Summary Join a room
// @Description Seat a second human in the free color
// @Tags Room
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param request body http.JoinRoomRequest false "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/join [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		_ = c.ShouldBindJSON(&req)
		rx, player, err := rm.Join(c.Param("code"), req.PlayerName)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"player": player, "room": rx.View()})
	}
}

// @Summary Add a bot
// @Description Seat a bot in the free color; it plays as soon as an action is due
// @Tags Room
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/bots [post]
func AddBotHandler(rm *room.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		rx, bot, err := rm.AddBot(c.Param("code"))
		if err != nil {
			fail(c, err)
			return
		}
		go hub.DriveBots(rx.Code)
		c.JSON(http.StatusOK, gin.H{"player": bot, "room": rx.View()})
	}
}

// @Summary Get room
// @Tags Room
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} room.View
// @Router /rooms/{code} [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rx, ok := rm.Get(c.Param("code"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, rx.View())
	}
}

// @Summary Select a piece
// @Description Returns the snapshot with the piece's valid and blocked destinations
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param request body http.SelectRequest true "Square"
// @Success 200 {object} game.Snapshot
// @Router /rooms/{code}/select [post]
func SelectHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SelectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		pos, err := square(req.Square)
		if err != nil {
			fail(c, err)
			return
		}
		snap, err := rm.Select(c.Param("code"), req.PlayerID, pos)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// @Summary Player makes a move
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param request body http.MoveRequest true "Move data"
// @Success 200 {object} game.Snapshot
// @Router /rooms/{code}/move [post]
func MoveHandler(rm *room.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		from, err := square(req.From)
		if err != nil {
			fail(c, err)
			return
		}
		to, err := square(req.To)
		if err != nil {
			fail(c, err)
			return
		}
		code := c.Param("code")
		snap, err := rm.Move(code, req.PlayerID, from, to)
		if err != nil {
			fail(c, err)
			return
		}
		go hub.DriveBots(code)
		c.JSON(http.StatusOK, snap)
	}
}

// @Summary Roll the die
// @Description Dice variant: 1-3 gives White that many moves, 4-6 gives Black value-3
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param request body http.PlayerRequest true "Player"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/roll [post]
func RollHandler(rm *room.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlayerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		code := c.Param("code")
		roll, snap, err := rm.Roll(code, req.PlayerID)
		if err != nil {
			fail(c, err)
			return
		}
		go hub.DriveBots(code)
		c.JSON(http.StatusOK, gin.H{"roll": roll, "state": snap})
	}
}

// @Summary Toss the coin
// @Description Coin-toss variant: the result decides who moves next
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param request body http.PlayerRequest true "Player"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/toss [post]
func TossHandler(rm *room.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlayerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		code := c.Param("code")
		toss, snap, err := rm.Toss(code, req.PlayerID)
		if err != nil {
			fail(c, err)
			return
		}
		go hub.DriveBots(code)
		c.JSON(http.StatusOK, gin.H{"toss": toss, "state": snap})
	}
}

// @Summary Promote a pawn
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param request body http.PromoteRequest true "Promotion"
// @Success 200 {object} game.Snapshot
// @Router /rooms/{code}/promote [post]
func PromoteHandler(rm *room.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PromoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		pos, err := square(req.Square)
		if err != nil {
			fail(c, err)
			return
		}
		pt := game.Queen
		if req.Piece != "" {
			var ok bool
			if pt, ok = game.ParsePieceType(req.Piece); !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown piece " + req.Piece})
				return
			}
		}
		code := c.Param("code")
		snap, err := rm.Promote(code, req.PlayerID, pos, pt)
		if err != nil {
			fail(c, err)
			return
		}
		go hub.DriveBots(code)
		c.JSON(http.StatusOK, snap)
	}
}

// @Summary Reset the game
// @Description Restart from the room's starting position
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Room Code"
// @Param request body http.PlayerRequest true "Player"
// @Success 200 {object} game.Snapshot
// @Router /rooms/{code}/reset [post]
func ResetHandler(rm *room.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlayerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		code := c.Param("code")
		snap, err := rm.Reset(code, req.PlayerID)
		if err != nil {
			fail(c, err)
			return
		}
		go hub.DriveBots(code)
		c.JSON(http.StatusOK, snap)
	}
}

// @Summary Let bot make its move
// @Description The bot whose action is due plays its best scoring move
// @Tags Game
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/bot-move [post]
func BotMoveHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		mv, snap, err := rm.BotMove(c.Param("code"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"move": mv, "state": snap})
	}
}

// @Summary Export FEN
// @Tags Game
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} map[string]interface{}
// @Router /rooms/{code}/fen [get]
func FENHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		fen, err := rm.FEN(c.Param("code"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"fen": fen})
	}
}

// @Summary Persisted game record
// @Tags Game
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} shared.GameRecord
// @Router /rooms/{code}/record [get]
func RecordHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := rm.Record(c.Param("code"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}
