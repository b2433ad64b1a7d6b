package game

// Direction offsets as {row, col} deltas.
var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	queenDirs     = append(append([][2]int{}, straightDirs...), diagonalDirs...)
)

const (
	kingHomeCol      = 4
	kingsideRookCol  = 7
	queensideRookCol = 0
	kingsideKingCol  = 6
	queensideKingCol = 2
)

// RawMoves returns the geometric destinations of the piece on pos, ignoring
// king safety. valid holds reachable squares; blocked holds squares the piece
// reaches but cannot enter because a friendly piece stands there.
// last is the previous move, used for en passant; it may be nil.
func RawMoves(b *Board, last *LastMove, pos Position) (valid, blocked []Position) {
	pc, ok := b.At(pos)
	if !ok {
		return nil, nil
	}
	switch pc.Type {
	case Pawn:
		valid = pawnMoves(b, last, pos, pc)
	case Knight:
		valid, blocked = stepMoves(b, pos, pc.Color, knightOffsets)
	case Bishop:
		valid, blocked = slideMoves(b, pos, pc.Color, diagonalDirs)
	case Rook:
		valid, blocked = slideMoves(b, pos, pc.Color, straightDirs)
	case Queen:
		valid, blocked = slideMoves(b, pos, pc.Color, queenDirs)
	case King:
		valid, blocked = stepMoves(b, pos, pc.Color, kingOffsets)
		valid = append(valid, castlingMoves(b, pos, pc)...)
	}
	return valid, blocked
}

func slideMoves(b *Board, from Position, c Color, dirs [][2]int) (valid, blocked []Position) {
	for _, d := range dirs {
		for to := from.Offset(d[0], d[1]); to.Valid(); to = to.Offset(d[0], d[1]) {
			occupant, ok := b.At(to)
			if !ok {
				valid = append(valid, to)
				continue
			}
			if occupant.Color == c {
				blocked = append(blocked, to)
			} else {
				valid = append(valid, to)
			}
			break
		}
	}
	return valid, blocked
}

func stepMoves(b *Board, from Position, c Color, offsets [][2]int) (valid, blocked []Position) {
	for _, o := range offsets {
		to := from.Offset(o[0], o[1])
		if !to.Valid() {
			continue
		}
		occupant, ok := b.At(to)
		switch {
		case !ok || occupant.Color != c:
			valid = append(valid, to)
		default:
			blocked = append(blocked, to)
		}
	}
	return valid, blocked
}

func pawnMoves(b *Board, last *LastMove, from Position, pc Piece) []Position {
	var out []Position
	dir := pawnDir(pc.Color)

	one := from.Offset(dir, 0)
	if b.isEmpty(one) {
		out = append(out, one)
		two := from.Offset(2*dir, 0)
		if from.Row == pawnStartRow(pc.Color) && b.isEmpty(two) {
			out = append(out, two)
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to := from.Offset(dir, dc)
		if !to.Valid() {
			continue
		}
		occupant, ok := b.At(to)
		if ok {
			if occupant.Color != pc.Color {
				out = append(out, to)
			}
			continue
		}
		if isEnPassantPossible(b, last, from, to) {
			out = append(out, to)
		}
	}
	return out
}

// isEnPassantPossible reports whether the pawn on from may capture en passant
// by moving to to. Only the immediately preceding move can enable it.
func isEnPassantPossible(b *Board, last *LastMove, from, to Position) bool {
	pc, ok := b.At(from)
	if !ok || pc.Type != Pawn || last == nil {
		return false
	}
	if absInt(to.Col-from.Col) != 1 || to.Row-from.Row != pawnDir(pc.Color) {
		return false
	}
	if !last.isPawnDoubleStep() || last.Piece.Color == pc.Color {
		return false
	}
	if last.To.Col != to.Col || last.To.Row != from.Row {
		return false
	}
	enemy := last.Piece.Color
	if last.From.Row != pawnStartRow(enemy) || from.Row != pawnStartRow(enemy)+2*pawnDir(enemy) {
		return false
	}
	victim, ok := b.At(last.To)
	return ok && victim.Type == Pawn && victim.Color == enemy && b.isEmpty(to)
}

// castlingMoves lists the king destinations of every castle currently possible.
func castlingMoves(b *Board, kingPos Position, king Piece) []Position {
	if king.HasMoved || kingPos != Pos(homeRow(king.Color), kingHomeCol) {
		return nil
	}
	var out []Position
	for _, rookCol := range [2]int{kingsideRookCol, queensideRookCol} {
		rookPos := Pos(kingPos.Row, rookCol)
		if isCastlingPossible(b, kingPos, rookPos) {
			out = append(out, castleKingTarget(kingPos, rookPos))
		}
	}
	return out
}

func castleKingTarget(kingPos, rookPos Position) Position {
	if rookPos.Col == kingsideRookCol {
		return Pos(kingPos.Row, kingsideKingCol)
	}
	return Pos(kingPos.Row, queensideKingCol)
}

func castleRookTarget(kingPos, rookPos Position) Position {
	if rookPos.Col == kingsideRookCol {
		return Pos(kingPos.Row, kingsideKingCol-1)
	}
	return Pos(kingPos.Row, queensideKingCol+1)
}

// castleRookSource maps a two-file king step onto the rook it castles with.
func castleRookSource(from, to Position) (Position, bool) {
	if from.Col != kingHomeCol || from.Row != to.Row {
		return Position{}, false
	}
	switch to.Col {
	case kingsideKingCol:
		return Pos(from.Row, kingsideRookCol), true
	case queensideKingCol:
		return Pos(from.Row, queensideRookCol), true
	default:
		return Position{}, false
	}
}

// isCastlingPossible checks the king/rook pair on their home squares, that
// neither has moved, that the squares between them are empty, and that the
// king neither stands on nor crosses an attacked square. The attack on the
// king's current square is evaluated fresh on b.
func isCastlingPossible(b *Board, kingPos, rookPos Position) bool {
	king, ok := b.At(kingPos)
	if !ok || king.Type != King || king.HasMoved {
		return false
	}
	row := homeRow(king.Color)
	if kingPos != Pos(row, kingHomeCol) {
		return false
	}
	if rookPos.Row != row || (rookPos.Col != kingsideRookCol && rookPos.Col != queensideRookCol) {
		return false
	}
	rook, ok := b.At(rookPos)
	if !ok || rook.Type != Rook || rook.Color != king.Color || rook.HasMoved {
		return false
	}

	step := 1
	if rookPos.Col < kingPos.Col {
		step = -1
	}
	for col := kingPos.Col + step; col != rookPos.Col; col += step {
		if !b.isEmpty(Pos(row, col)) {
			return false
		}
	}

	enemy := king.Color.Opposite()
	target := castleKingTarget(kingPos, rookPos)
	for col := kingPos.Col; ; col += step {
		if IsSquareUnderAttack(b, Pos(row, col), enemy) {
			return false
		}
		if col == target.Col {
			break
		}
	}
	return true
}

// attacks reports whether the piece pc standing on from attacks target.
// Pawns attack diagonally only and castling never counts as an attack.
func attacks(b *Board, from Position, pc Piece, target Position) bool {
	dr, dc := target.Row-from.Row, target.Col-from.Col
	switch pc.Type {
	case Pawn:
		return dr == pawnDir(pc.Color) && absInt(dc) == 1
	case Knight:
		return (absInt(dr) == 1 && absInt(dc) == 2) || (absInt(dr) == 2 && absInt(dc) == 1)
	case King:
		return (dr != 0 || dc != 0) && absInt(dr) <= 1 && absInt(dc) <= 1
	case Bishop:
		return absInt(dr) == absInt(dc) && dr != 0 && pathClear(b, from, target)
	case Rook:
		return (dr == 0) != (dc == 0) && pathClear(b, from, target)
	case Queen:
		aligned := absInt(dr) == absInt(dc) || dr == 0 || dc == 0
		return aligned && (dr != 0 || dc != 0) && pathClear(b, from, target)
	default:
		return false
	}
}

// pathClear reports whether every square strictly between two aligned squares is empty.
func pathClear(b *Board, from, to Position) bool {
	stepR, stepC := sign(to.Row-from.Row), sign(to.Col-from.Col)
	for p := from.Offset(stepR, stepC); p != to; p = p.Offset(stepR, stepC) {
		if !b.isEmpty(p) {
			return false
		}
	}
	return true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
