package game

import (
	"errors"
	"math"
	"testing"

	"chance-chess/internal/config"
)

func TestFindBestBotMove(t *testing.T) {
	w := config.DefaultConfig.Weights
	tests := []struct {
		name     string
		fen      string
		from, to string
	}{
		{"mate in one", "6k1/5ppp/8/8/8/8/8/R3K3 w Q - 0 1", "a1", "a8"},
		{"win the queen", "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1", "e4", "d5"},
		{"promote", "7k/P7/8/8/8/8/8/4K3 w - - 0 1", "a7", "a8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFEN(t, Classic, tt.fen)
			got, err := FindBestBotMove(s, w)
			if err != nil {
				t.Fatal(err)
			}
			if got.From != sq(t, tt.from) || got.To != sq(t, tt.to) {
				t.Fatalf("best = %s%s, want %s%s", got.From, got.To, tt.from, tt.to)
			}
		})
	}
}

func TestFindBestBotMoveNoMoves(t *testing.T) {
	s := NewState(Dice)
	if _, err := FindBestBotMove(s, config.DefaultConfig.Weights); !errors.Is(err, ErrNoLegalMoves) {
		t.Fatalf("err = %v, want ErrNoLegalMoves before the roll", err)
	}
}

func TestHeuristicScoreRefusedMove(t *testing.T) {
	s := NewState(Classic)
	m := LastMove{From: Pos(6, 4), To: Pos(3, 4), Piece: Piece{Type: Pawn, Color: White}}
	if got := HeuristicScore(s, m, config.DefaultConfig.Weights); got != math.MinInt {
		t.Fatalf("score = %d, want MinInt", got)
	}
}

func TestHeuristicPenalizesHangingPiece(t *testing.T) {
	s := mustFEN(t, Classic, "4k3/8/8/3p4/8/8/8/2Q1K3 w - - 0 1")
	w := config.DefaultConfig.Weights
	safe := HeuristicScore(s, LastMove{From: sq(t, "c1"), To: sq(t, "c2"), Piece: Piece{Type: Queen, Color: White}}, w)
	hanging := HeuristicScore(s, LastMove{From: sq(t, "c1"), To: sq(t, "c4"), Piece: Piece{Type: Queen, Color: White}}, w)
	if hanging >= safe {
		t.Fatalf("hanging queen scored %d, safe square %d", hanging, safe)
	}
}
