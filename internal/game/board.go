package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Board is an 8x8 grid held by value. Assigning a Board copies every piece,
// so a copy can be mutated freely without touching the original.
type Board struct {
	cells [8][8]Piece
}

var backRankOrder = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard opening layout.
func NewBoard() Board {
	var b Board
	for col, pt := range backRankOrder {
		b.cells[homeRow(Black)][col] = Piece{Type: pt, Color: Black}
		b.cells[pawnStartRow(Black)][col] = Piece{Type: Pawn, Color: Black}
		b.cells[pawnStartRow(White)][col] = Piece{Type: Pawn, Color: White}
		b.cells[homeRow(White)][col] = Piece{Type: pt, Color: White}
	}
	return b
}

// At returns the piece on p and whether the square is occupied.
func (b *Board) At(p Position) (Piece, bool) {
	if !p.Valid() {
		return Piece{}, false
	}
	pc := b.cells[p.Row][p.Col]
	return pc, !pc.Empty()
}

func (b *Board) Set(p Position, pc Piece) {
	if !p.Valid() {
		return
	}
	b.cells[p.Row][p.Col] = pc
}

func (b *Board) Clear(p Position) { b.Set(p, Piece{}) }

func (b *Board) isEmpty(p Position) bool {
	_, ok := b.At(p)
	return p.Valid() && !ok
}

// relocate moves whatever stands on from to to, marking it as moved.
func (b *Board) relocate(from, to Position) {
	pc, ok := b.At(from)
	if !ok {
		return
	}
	pc.HasMoved = true
	b.Clear(from)
	b.Set(to, pc)
}

// findKing locates the king of color c.
func (b *Board) findKing(c Color) (Position, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			pc := b.cells[row][col]
			if pc.Type == King && pc.Color == c {
				return Position{Row: row, Col: col}, true
			}
		}
	}
	return Position{}, false
}

// forEachPiece calls fn for every occupied square in row-major order.
func (b *Board) forEachPiece(fn func(Position, Piece)) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if pc := b.cells[row][col]; !pc.Empty() {
				fn(Position{Row: row, Col: col}, pc)
			}
		}
	}
}

// Squares returns the grid row by row with independent piece copies.
func (b *Board) Squares() [8][8]Square {
	var out [8][8]Square
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := Square{Position: Position{Row: row, Col: col}}
			if pc := b.cells[row][col]; !pc.Empty() {
				p := pc
				sq.Piece = &p
			}
			out[row][col] = sq
		}
	}
	return out
}

func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Squares())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var grid [8][8]Square
	if err := json.Unmarshal(data, &grid); err != nil {
		return err
	}
	var next Board
	for row := range grid {
		for col, sq := range grid[row] {
			if sq.Piece == nil {
				continue
			}
			if sq.Piece.Type == NoPiece {
				return fmt.Errorf("square %s: piece without type", Pos(row, col))
			}
			next.cells[row][col] = *sq.Piece
		}
	}
	*b = next
	return nil
}

// String draws the board with rank 8 on top, one FEN letter per square.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		sb.WriteByte(byte('8' - row))
		sb.WriteByte(' ')
		for col := 0; col < 8; col++ {
			sb.WriteString(b.cells[row][col].String())
			if col < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}
