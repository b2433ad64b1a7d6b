package shared

import (
	"time"

	"chance-chess/internal/game"
)

type Player struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Color game.Color `json:"color"`
	IsBot bool       `json:"isBot"`
}

type Move struct {
	PlayerID  string         `json:"playerId"`
	From      game.Position  `json:"from"`
	To        game.Position  `json:"to"`
	Promotion game.PieceType `json:"promotion,omitempty"`
}

// BoardRecord, PieceRecord and GameRecord are the persisted projection of a
// game. They are written from snapshots and never read back into an engine.
type BoardRecord struct {
	ID          string           `json:"id"`
	RoomCode    string           `json:"roomCode"`
	GameType    game.GameVariant `json:"gameType"`
	CurrentTurn game.Color       `json:"currentTurn"`
	FEN         string           `json:"fen"`
	IsInCheck   *game.Color      `json:"isInCheck"`
	IsCheckmate *game.Color      `json:"isCheckmate"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type PieceRecord struct {
	BoardID  string         `json:"boardId"`
	Type     game.PieceType `json:"type"`
	Color    game.Color     `json:"color"`
	Row      int            `json:"row"`
	Col      int            `json:"col"`
	HasMoved bool           `json:"hasMoved"`
}

type GameRecord struct {
	Board   BoardRecord   `json:"board"`
	Players []Player      `json:"players"`
	Pieces  []PieceRecord `json:"pieces"`
}

// RecordFromSnapshot projects snap onto the persistence schema.
func RecordFromSnapshot(boardID, roomCode string, snap game.Snapshot, fen string, players []Player, at time.Time) GameRecord {
	rec := GameRecord{
		Board: BoardRecord{
			ID:          boardID,
			RoomCode:    roomCode,
			GameType:    snap.GameType,
			CurrentTurn: snap.CurrentTurn,
			FEN:         fen,
			IsInCheck:   snap.IsInCheck,
			IsCheckmate: snap.IsCheckmate,
			UpdatedAt:   at,
		},
		Players: append([]Player(nil), players...),
	}
	squares := snap.Board.Squares()
	for _, row := range squares {
		for _, sq := range row {
			if sq.Piece == nil {
				continue
			}
			rec.Pieces = append(rec.Pieces, PieceRecord{
				BoardID:  boardID,
				Type:     sq.Piece.Type,
				Color:    sq.Piece.Color,
				Row:      sq.Position.Row,
				Col:      sq.Position.Col,
				HasMoved: sq.Piece.HasMoved,
			})
		}
	}
	return rec
}
