package http

// Squares in every request use algebraic notation ("e2").

// CreateRoomRequest represents the payload for POST /rooms.
type CreateRoomRequest struct {
	PlayerName string `json:"playerName"`
	Variant    string `json:"variant"` // classic, coin_toss or dice; empty uses the configured default
	FEN        string `json:"fen"`
	WithBot    bool   `json:"withBot"`
}

// JoinRoomRequest represents the payload for joining an existing room.
type JoinRoomRequest struct {
	PlayerName string `json:"playerName"`
}

// PlayerRequest is the body of actions that only identify the actor.
type PlayerRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
}

type SelectRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Square   string `json:"square" binding:"required"`
}

// MoveRequest represents a player move.
type MoveRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	From     string `json:"from" binding:"required"`
	To       string `json:"to" binding:"required"`
}

// PromoteRequest names the pawn's square and the piece it becomes; an empty
// piece means queen.
type PromoteRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Square   string `json:"square" binding:"required"`
	Piece    string `json:"piece"`
}
