package game

// recomputeCheck tests both kings and flags whichever is attacked.
// Clearing check also clears checkmate.
func recomputeCheck(s State) State {
	s.IsInCheck = nil
	for _, c := range [2]Color{White, Black} {
		if isKingAttacked(&s.Board, c) {
			s.IsInCheck = colorPtr(c)
		}
	}
	if s.IsInCheck == nil {
		s.IsCheckmate = nil
	}
	return s
}

// recomputeCheckmate flags the checked color as mated when none of its pieces
// has a legal move. It never looks at a position without check, so a side
// with no moves and no check is left as is.
func recomputeCheckmate(s State) State {
	s.IsCheckmate = nil
	if s.IsInCheck == nil {
		return s
	}
	checked := *s.IsInCheck
	if !hasLegalMove(&s.Board, s.LastMove, checked) {
		s.IsCheckmate = colorPtr(checked)
	}
	return s
}

// applyCheckOverride hands the turn to the checked side and suspends the
// variant's random turn assignment until the check is resolved. In the Dice
// variant the checked side gets exactly one move.
func applyCheckOverride(s State) State {
	if s.IsInCheck == nil {
		return s
	}
	s.WaitingForCoinToss = false
	s.WaitingForDiceRoll = false
	s.CurrentTurn = *s.IsInCheck
	if s.Variant == Dice {
		s.RemainingMoves = 1
	}
	return s
}
