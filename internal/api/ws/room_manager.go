package ws

import (
	"chance-chess/internal/game"
	"chance-chess/internal/room"
	"chance-chess/internal/shared"
)

// RoomManager is the part of *room.Manager the hub drives.
type RoomManager interface {
	Get(code string) (*room.Room, bool)
	Select(code, playerID string, pos game.Position) (game.Snapshot, error)
	Move(code, playerID string, from, to game.Position) (game.Snapshot, error)
	Roll(code, playerID string) (game.DiceRoll, game.Snapshot, error)
	Toss(code, playerID string) (game.CoinFlip, game.Snapshot, error)
	Promote(code, playerID string, pos game.Position, pt game.PieceType) (game.Snapshot, error)
	BotMove(code string) (shared.Move, game.Snapshot, error)
}
