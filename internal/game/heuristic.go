package game

import (
	"math"

	"chance-chess/internal/config"
)

var pieceValues = [...]int{NoPiece: 0, Pawn: 1, Knight: 3, Bishop: 3, Rook: 5, Queen: 9, King: 0}

// HeuristicScore rates m for the side to move after playing it on a copy of
// s. A pending promotion is resolved to a queen before scoring.
func HeuristicScore(s State, m LastMove, w config.Weights) int {
	next, ok := Move(s, m.From, m.To)
	if !ok {
		return math.MinInt
	}
	score := 0

	if next.PendingPromotion != nil {
		next, _ = Promote(next, *next.PendingPromotion, Queen)
		score += w.WPromote
	}

	// Immediate win
	if next.IsCheckmate != nil && *next.IsCheckmate != m.Piece.Color {
		return w.WMate
	}

	if victim, ok := s.Board.At(m.To); ok {
		score += pieceValues[victim.Type] * w.WCapture
	} else if m.Piece.Type == Pawn && isEnPassantPossible(&s.Board, s.LastMove, m.From, m.To) {
		score += pieceValues[Pawn] * w.WCapture
	}

	if next.IsInCheck != nil && *next.IsInCheck != m.Piece.Color {
		score += w.WCheck
	}

	if m.To.Row >= 3 && m.To.Row <= 4 && m.To.Col >= 3 && m.To.Col <= 4 {
		score += w.WCenter
	}

	// Leaving the piece en prise
	if moved, ok := next.Board.At(m.To); ok && IsSquareUnderAttack(&next.Board, m.To, m.Piece.Color.Opposite()) {
		score -= pieceValues[moved.Type] * w.WHanging
	}

	return score
}

// FindBestBotMove returns the highest scoring legal move for the side to
// move. Ties go to the first move in board order.
func FindBestBotMove(s State, w config.Weights) (LastMove, error) {
	moves := AllLegalMoves(s)
	if len(moves) == 0 {
		return LastMove{}, ErrNoLegalMoves
	}

	best := moves[0]
	bestScore := math.MinInt
	for _, m := range moves {
		if score := HeuristicScore(s, m, w); score > bestScore {
			bestScore = score
			best = m
		}
	}
	return best, nil
}

// BestMove is FindBestBotMove on the engine's current state.
func (e *Engine) BestMove(w config.Weights) (LastMove, error) {
	return FindBestBotMove(e.state, w)
}
