package game

// Select marks the piece on pos as selected and computes its destinations.
// The selection is cleared when pos is empty or holds a piece that is not the
// current mover's.
func Select(s State, pos Position) State {
	s = s.clearSelection()
	pc, ok := s.Board.At(pos)
	if !ok || pc.Color != s.CurrentTurn {
		return s
	}

	valid := LegalMoves(s, pos)
	valid = append(valid, CastlingPartners(s, pos)...)

	rawValid, rawBlocked := RawMoves(&s.Board, s.LastMove, pos)
	var blocked []Position
	for _, p := range append(rawValid, rawBlocked...) {
		if !containsPosition(valid, p) && !containsPosition(blocked, p) {
			blocked = append(blocked, p)
		}
	}

	s.SelectedPiece = positionPtr(pos)
	s.ValidMoves = valid
	s.BlockedMoves = blocked
	return s
}

func Unselect(s State) State { return s.clearSelection() }

// CanMove reports whether the turn state currently accepts a move.
func CanMove(s State) bool {
	switch {
	case s.IsCheckmate != nil, s.PendingPromotion != nil:
		return false
	case s.WaitingForCoinToss, s.WaitingForDiceRoll:
		return false
	case s.Variant == Dice && s.RemainingMoves <= 0:
		return false
	}
	return true
}

// Move plays from→to for the side to move. It reports false and returns s
// unchanged when the move is refused.
func Move(s State, from, to Position) (State, bool) {
	if !CanMove(s) || !from.Valid() || !to.Valid() {
		return s, false
	}
	pc, ok := s.Board.At(from)
	if !ok || pc.Color != s.CurrentTurn {
		return s, false
	}

	if kingPos, rookPos, ok := castleRequest(&s.Board, from, to); ok {
		if !isCastlingPossible(&s.Board, kingPos, rookPos) {
			return s, false
		}
		king, _ := s.Board.At(kingPos)
		next := s
		next.Board.relocate(kingPos, castleKingTarget(kingPos, rookPos))
		next.Board.relocate(rookPos, castleRookTarget(kingPos, rookPos))
		next.LastMove = &LastMove{From: kingPos, To: castleKingTarget(kingPos, rookPos), Piece: king}
		return handlePostMove(next), true
	}

	if !containsPosition(LegalMoves(s, from), to) {
		return s, false
	}
	next := s
	next.Board = applyMove(s.Board, s.LastMove, from, to)
	next.LastMove = &LastMove{From: from, To: to, Piece: pc}
	if pc.Type == Pawn && to.Row == promotionRow(pc.Color) {
		next.PendingPromotion = positionPtr(to)
	}
	return handlePostMove(next), true
}

// castleRequest recognizes the three ways a castle is asked for: the king
// stepping two files, the king onto its rook, and the rook onto its king.
// It returns the king and rook squares involved.
func castleRequest(b *Board, from, to Position) (kingPos, rookPos Position, ok bool) {
	pc, _ := b.At(from)
	target, occupied := b.At(to)
	home := Pos(homeRow(pc.Color), kingHomeCol)
	switch {
	case pc.Type == King && from == home && !occupied:
		rookPos, ok = castleRookSource(from, to)
		return from, rookPos, ok
	case pc.Type == King && from == home && target.Type == Rook && target.Color == pc.Color:
		return from, to, to.Row == home.Row && (to.Col == kingsideRookCol || to.Col == queensideRookCol)
	case pc.Type == Rook && to == home && target.Type == King && target.Color == pc.Color:
		return to, from, from.Row == home.Row && (from.Col == kingsideRookCol || from.Col == queensideRookCol)
	}
	return Position{}, Position{}, false
}

// handlePostMove advances the turn after a completed move. A check on the
// board takes precedence over every variant rule.
func handlePostMove(s State) State {
	s = s.clearSelection()
	s = recomputeCheck(s)
	s = recomputeCheckmate(s)
	if s.IsInCheck != nil {
		return applyCheckOverride(s)
	}

	switch s.Variant {
	case Dice:
		s.RemainingMoves--
		if s.RemainingMoves <= 0 {
			s.RemainingMoves = 0
			s.WaitingForDiceRoll = true
		}
	case CoinToss:
		s.WaitingForCoinToss = true
	default:
		s.CurrentTurn = s.CurrentTurn.Opposite()
	}
	return s
}

// randomGated reports whether a roll or toss would be ignored right now.
func randomGated(s State) bool {
	return s.IsInCheck != nil || s.IsCheckmate != nil || s.PendingPromotion != nil
}

// Roll throws the die for the Dice variant. 1-3 hand White that many moves,
// 4-6 hand Black value-3 moves. Outside an awaited roll it returns s and a
// zero DiceRoll.
func Roll(s State, rnd Randomizer) (State, DiceRoll) {
	if s.Variant != Dice || !s.WaitingForDiceRoll || randomGated(s) {
		return s, DiceRoll{}
	}
	value := rnd.Intn(6) + 1
	roll := DiceRoll{Value: value, MovesGranted: value, Player: White}
	if value > 3 {
		roll.MovesGranted = value - 3
		roll.Player = Black
	}

	s = s.clearSelection()
	s.CurrentTurn = roll.Player
	s.RemainingMoves = roll.MovesGranted
	s.WaitingForDiceRoll = false
	s.LastDiceRoll = &roll
	return s, roll
}

// Toss flips the coin for the CoinToss variant. Outside an awaited toss it
// returns s and the current turn as the result.
func Toss(s State, rnd Randomizer) (State, CoinFlip) {
	if s.Variant != CoinToss || !s.WaitingForCoinToss || randomGated(s) {
		return s, CoinFlip{Result: s.CurrentTurn}
	}
	toss := CoinFlip{Result: White}
	if rnd.Intn(2) == 1 {
		toss.Result = Black
	}

	s = s.clearSelection()
	s.CurrentTurn = toss.Result
	s.WaitingForCoinToss = false
	s.LastCoinToss = &toss
	return s, toss
}

// IsPromotionType reports whether a pawn may become pt.
func IsPromotionType(pt PieceType) bool {
	switch pt {
	case Knight, Bishop, Rook, Queen:
		return true
	}
	return false
}

// Promote replaces the last mover's pawn standing on the far rank with pt
// and re-evaluates check.
func Promote(s State, pos Position, pt PieceType) (State, bool) {
	if s.LastMove == nil || !IsPromotionType(pt) {
		return s, false
	}
	if s.PendingPromotion != nil && *s.PendingPromotion != pos {
		return s, false
	}
	c := s.LastMove.Piece.Color
	pc, ok := s.Board.At(pos)
	if !ok || pc.Type != Pawn || pc.Color != c || pos.Row != promotionRow(c) {
		return s, false
	}

	s.Board.Set(pos, Piece{Type: pt, Color: c, HasMoved: true})
	s.PendingPromotion = nil
	s = recomputeCheck(s)
	s = recomputeCheckmate(s)
	if s.IsInCheck != nil {
		s = applyCheckOverride(s)
	}
	return s, true
}
