package game

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFEN builds a State from Forsyth-Edwards Notation. The halfmove and
// fullmove counters are optional and ignored. Castling rights decide which
// kings and rooks count as unmoved; an en passant square stands in for the
// double step that created it.
func ParseFEN(variant GameVariant, fen string) (State, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return State{}, fmt.Errorf("%w: want 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	b, err := parsePlacement(fields[0])
	if err != nil {
		return State{}, err
	}

	turn, ok := ParseColor(fields[1])
	if !ok || len(fields[1]) != 1 {
		return State{}, fmt.Errorf("%w: active color %q", ErrInvalidFEN, fields[1])
	}

	if err := applyCastlingRights(&b, fields[2]); err != nil {
		return State{}, err
	}

	last, err := parseEnPassant(&b, fields[3], turn)
	if err != nil {
		return State{}, err
	}

	for _, f := range fields[4:] {
		if n, err := strconv.Atoi(f); err != nil || n < 0 {
			return State{}, fmt.Errorf("%w: move counter %q", ErrInvalidFEN, f)
		}
	}

	if isKingAttacked(&b, White) && isKingAttacked(&b, Black) {
		return State{}, fmt.Errorf("%w: both kings in check", ErrInvalidFEN)
	}
	return initialState(variant, b, turn, last), nil
}

func parsePlacement(field string) (Board, error) {
	var b Board
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return b, fmt.Errorf("%w: want 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	kings := map[Color]int{}
	for row, rank := range ranks {
		col := 0
		for _, ch := range rank {
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			pt, ok := ParsePieceType(string(ch))
			if !ok {
				return b, fmt.Errorf("%w: piece %q", ErrInvalidFEN, ch)
			}
			if col > 7 {
				return b, fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, 8-row)
			}
			c := Black
			if ch >= 'A' && ch <= 'Z' {
				c = White
			}
			pc := Piece{Type: pt, Color: c}
			switch pt {
			case Pawn:
				if row == 0 || row == 7 {
					return b, fmt.Errorf("%w: pawn on back rank %s", ErrInvalidFEN, Pos(row, col))
				}
				pc.HasMoved = row != pawnStartRow(c)
			case King, Rook:
				// unmoved only when a castling right says so
				pc.HasMoved = true
			}
			if pt == King {
				kings[c]++
			}
			b.Set(Pos(row, col), pc)
			col++
		}
		if col != 8 {
			return b, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, 8-row, col)
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return b, fmt.Errorf("%w: want one king per side", ErrInvalidFEN)
	}
	return b, nil
}

func applyCastlingRights(b *Board, field string) error {
	if field == "-" {
		return nil
	}
	for _, ch := range field {
		var c Color
		var rookCol int
		switch ch {
		case 'K':
			c, rookCol = White, kingsideRookCol
		case 'Q':
			c, rookCol = White, queensideRookCol
		case 'k':
			c, rookCol = Black, kingsideRookCol
		case 'q':
			c, rookCol = Black, queensideRookCol
		default:
			return fmt.Errorf("%w: castling %q", ErrInvalidFEN, field)
		}
		kingPos := Pos(homeRow(c), kingHomeCol)
		rookPos := Pos(homeRow(c), rookCol)
		king, kok := b.At(kingPos)
		rook, rok := b.At(rookPos)
		if !kok || king.Type != King || king.Color != c || !rok || rook.Type != Rook || rook.Color != c {
			continue
		}
		king.HasMoved = false
		rook.HasMoved = false
		b.Set(kingPos, king)
		b.Set(rookPos, rook)
	}
	return nil
}

func parseEnPassant(b *Board, field string, turn Color) (*LastMove, error) {
	if field == "-" {
		return nil, nil
	}
	target, ok := ParsePosition(field)
	if !ok {
		return nil, fmt.Errorf("%w: en passant %q", ErrInvalidFEN, field)
	}
	mover := turn.Opposite()
	from := Pos(pawnStartRow(mover), target.Col)
	to := Pos(pawnStartRow(mover)+2*pawnDir(mover), target.Col)
	if target.Row != pawnStartRow(mover)+pawnDir(mover) {
		return nil, fmt.Errorf("%w: en passant square %s", ErrInvalidFEN, field)
	}
	pc, ok := b.At(to)
	if !ok || pc.Type != Pawn || pc.Color != mover || !b.isEmpty(target) || !b.isEmpty(from) {
		return nil, fmt.Errorf("%w: no pawn passed %s", ErrInvalidFEN, field)
	}
	return &LastMove{From: from, To: to, Piece: Piece{Type: Pawn, Color: mover}}, nil
}

// FEN renders s as Forsyth-Edwards Notation with zeroed move counters.
// A pawn waiting for promotion cannot be expressed and is written as is.
func FEN(s State) string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			pc, ok := s.Board.At(Pos(row, col))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	turn := "w"
	if s.CurrentTurn == Black {
		turn = "b"
	}

	ep := "-"
	if s.LastMove != nil && s.LastMove.isPawnDoubleStep() {
		ep = s.LastMove.From.Offset(pawnDir(s.LastMove.Piece.Color), 0).String()
	}
	return fmt.Sprintf("%s %s %s %s 0 1", sb.String(), turn, castlingRights(&s.Board), ep)
}

func castlingRights(b *Board) string {
	var sb strings.Builder
	for _, r := range []struct {
		letter  byte
		c       Color
		rookCol int
	}{
		{'K', White, kingsideRookCol},
		{'Q', White, queensideRookCol},
		{'k', Black, kingsideRookCol},
		{'q', Black, queensideRookCol},
	} {
		king, kok := b.At(Pos(homeRow(r.c), kingHomeCol))
		rook, rok := b.At(Pos(homeRow(r.c), r.rookCol))
		if kok && rok && king.Type == King && king.Color == r.c && !king.HasMoved &&
			rook.Type == Rook && rook.Color == r.c && !rook.HasMoved {
			sb.WriteByte(r.letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
