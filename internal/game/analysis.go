package game

import "fmt"

// IsSquareUnderAttack reports whether any piece of color by attacks target on b.
func IsSquareUnderAttack(b *Board, target Position, by Color) bool {
	attacked := false
	b.forEachPiece(func(from Position, pc Piece) {
		if attacked || pc.Color != by || from == target {
			return
		}
		if attacks(b, from, pc, target) {
			attacked = true
		}
	})
	return attacked
}

// kingPosition returns the square of c's king. A missing king cannot arise
// under enforced rules, so it panics with ErrKingMissing.
func kingPosition(b *Board, c Color) Position {
	pos, ok := b.findKing(c)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrKingMissing, c))
	}
	return pos
}

// isKingAttacked reports whether c's king is attacked on b.
func isKingAttacked(b *Board, c Color) bool {
	return IsSquareUnderAttack(b, kingPosition(b, c), c.Opposite())
}

// AllLegalMoves lists every legal move of the side to move in board order,
// including castles as king moves. It is empty whenever CanMove is false.
func AllLegalMoves(s State) []LastMove {
	if !CanMove(s) {
		return nil
	}
	var out []LastMove
	s.Board.forEachPiece(func(from Position, pc Piece) {
		if pc.Color != s.CurrentTurn {
			return
		}
		for _, to := range LegalMoves(s, from) {
			out = append(out, LastMove{From: from, To: to, Piece: pc})
		}
	})
	return out
}
