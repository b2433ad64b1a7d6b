package game

import "errors"

var (
	ErrKingMissing     = errors.New("king missing from board")
	ErrInvalidFEN      = errors.New("invalid fen")
	ErrInvalidPosition = errors.New("invalid position")
	ErrNoLegalMoves    = errors.New("no legal moves available")
)
