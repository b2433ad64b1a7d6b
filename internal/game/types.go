package game

import (
	"fmt"
	"strings"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("invalid color %q", string(text))
	}
	*c = parsed
	return nil
}

func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	default:
		return White, false
	}
}

// homeRow is the back rank of the given color.
func homeRow(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// pawnStartRow is the rank a pawn may double-step from.
func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// pawnDir is the row delta of a single pawn step.
func pawnDir(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// promotionRow is the opponent's back rank.
func promotionRow(c Color) int { return homeRow(c.Opposite()) }

type PieceType uint8

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Symbol returns the FEN letter, upper case for White.
func (p PieceType) Symbol(c Color) string {
	var s string
	switch p {
	case Pawn:
		s = "p"
	case Knight:
		s = "n"
	case Bishop:
		s = "b"
	case Rook:
		s = "r"
	case Queen:
		s = "q"
	case King:
		s = "k"
	default:
		return "."
	}
	if c == White {
		return strings.ToUpper(s)
	}
	return s
}

func (p PieceType) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *PieceType) UnmarshalText(text []byte) error {
	parsed, ok := ParsePieceType(string(text))
	if !ok {
		return fmt.Errorf("invalid piece type %q", string(text))
	}
	*p = parsed
	return nil
}

func ParsePieceType(s string) (PieceType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "pawn":
		return Pawn, true
	case "n", "knight":
		return Knight, true
	case "b", "bishop":
		return Bishop, true
	case "r", "rook":
		return Rook, true
	case "q", "queen":
		return Queen, true
	case "k", "king":
		return King, true
	default:
		return NoPiece, false
	}
}

// Piece is held by value everywhere; the zero value is an empty square.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

func (p Piece) Empty() bool { return p.Type == NoPiece }

func (p Piece) String() string {
	if p.Empty() {
		return "."
	}
	return p.Type.Symbol(p.Color)
}

// Position addresses a square; row 0 is Black's back rank, row 7 is White's.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func Pos(row, col int) Position { return Position{Row: row, Col: col} }

func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

func (p Position) Offset(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// String renders algebraic notation, e.g. {6,4} is "e2".
func (p Position) String() string {
	if !p.Valid() {
		return "??"
	}
	return string([]byte{byte('a' + p.Col), byte('8' - p.Row)})
}

func ParsePosition(s string) (Position, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Position{}, false
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, false
	}
	return Position{Row: int('8' - rank), Col: int(file - 'a')}, true
}

type Square struct {
	Position Position `json:"position"`
	Piece    *Piece   `json:"piece"`
}

// LastMove records the most recent move; Piece is the mover as it was before moving.
type LastMove struct {
	From  Position `json:"from"`
	To    Position `json:"to"`
	Piece Piece    `json:"piece"`
}

func (m LastMove) isPawnDoubleStep() bool {
	return m.Piece.Type == Pawn && m.From.Col == m.To.Col && absInt(m.To.Row-m.From.Row) == 2
}

type GameVariant uint8

const (
	Classic GameVariant = iota
	CoinToss
	Dice
)

func (v GameVariant) String() string {
	switch v {
	case CoinToss:
		return "coin_toss"
	case Dice:
		return "dice"
	default:
		return "classic"
	}
}

func (v GameVariant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *GameVariant) UnmarshalText(text []byte) error {
	parsed, ok := ParseVariant(string(text))
	if !ok {
		return fmt.Errorf("invalid game variant %q", string(text))
	}
	*v = parsed
	return nil
}

func ParseVariant(s string) (GameVariant, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic", "":
		return Classic, true
	case "coin_toss", "cointoss", "coin-toss", "coin":
		return CoinToss, true
	case "dice", "die":
		return Dice, true
	default:
		return Classic, false
	}
}

type DiceRoll struct {
	Value        int   `json:"value"`
	MovesGranted int   `json:"movesGranted"`
	Player       Color `json:"player"`
}

type CoinFlip struct {
	Result Color `json:"result"`
}

// Randomizer is the source for dice and coin draws. *math/rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func colorPtr(c Color) *Color { return &c }

func positionPtr(p Position) *Position { return &p }
