package game

// LegalMoves returns the destinations of the piece on pos that do not leave
// its own king attacked.
func LegalMoves(s State, pos Position) []Position {
	return legalMoves(&s.Board, s.LastMove, pos)
}

func legalMoves(b *Board, last *LastMove, pos Position) []Position {
	pc, ok := b.At(pos)
	if !ok {
		return nil
	}
	raw, _ := RawMoves(b, last, pos)
	out := make([]Position, 0, len(raw))
	for _, to := range raw {
		scratch := applyMove(*b, last, pos, to)
		if !isKingAttacked(&scratch, pc.Color) {
			out = append(out, to)
		}
	}
	return out
}

// hasLegalMove reports whether any piece of color c has a legal move.
func hasLegalMove(b *Board, last *LastMove, c Color) bool {
	found := false
	b.forEachPiece(func(pos Position, pc Piece) {
		if found || pc.Color != c {
			return
		}
		if len(legalMoves(b, last, pos)) > 0 {
			found = true
		}
	})
	return found
}

// applyMove returns b with the piece on from relocated to to. An en passant
// capture also removes the passed pawn and a two-file king step also moves
// the castling rook. b is a copy, the caller's board is untouched.
func applyMove(b Board, last *LastMove, from, to Position) Board {
	pc, ok := b.At(from)
	if !ok {
		return b
	}
	if pc.Type == Pawn && isEnPassantPossible(&b, last, from, to) {
		b.Clear(last.To)
	}
	if pc.Type == King && absInt(to.Col-from.Col) == 2 {
		if rookPos, ok := castleRookSource(from, to); ok {
			b.relocate(rookPos, castleRookTarget(from, rookPos))
		}
	}
	b.relocate(from, to)
	return b
}

// CastlingPartners lists, for a selected king, the rooks it can castle with
// and, for a selected rook, the king it can castle with.
func CastlingPartners(s State, pos Position) []Position {
	pc, ok := s.Board.At(pos)
	if !ok {
		return nil
	}
	row := homeRow(pc.Color)
	kingPos := Pos(row, kingHomeCol)
	var out []Position
	switch pc.Type {
	case King:
		for _, col := range [2]int{kingsideRookCol, queensideRookCol} {
			rookPos := Pos(row, col)
			if isCastlingPossible(&s.Board, pos, rookPos) {
				out = append(out, rookPos)
			}
		}
	case Rook:
		if isCastlingPossible(&s.Board, kingPos, pos) {
			out = append(out, kingPos)
		}
	}
	return out
}

func containsPosition(list []Position, p Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
