package game

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/notnil/chess"
)

// referenceMoves lists the from/to pairs notnil/chess allows in fen.
// Promotions collapse to one entry per square pair.
func referenceMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("reference rejects %q: %v", fen, err)
	}
	g := chess.NewGame(opt)
	seen := map[string]bool{}
	var out []string
	for _, m := range g.ValidMoves() {
		key := m.S1().String() + m.S2().String()
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func ourMoves(s State) []string {
	var out []string
	for _, m := range AllLegalMoves(s) {
		out = append(out, m.From.String()+m.To.String())
	}
	sort.Strings(out)
	return out
}

func sameMoves(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLegalMovesMatchReference(t *testing.T) {
	positions := []string{
		startFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1",
		"7k/8/8/K2Pp2r/8/8/8/8 w - e6 0 1",
	}
	for _, fen := range positions {
		t.Run(fen, func(t *testing.T) {
			s := mustFEN(t, Classic, fen)
			if got, want := ourMoves(s), referenceMoves(t, fen); !sameMoves(got, want) {
				t.Fatalf("moves differ\n got %v\nwant %v", got, want)
			}
		})
	}
}

func TestRandomGamesMatchReference(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for game := 0; game < 12; game++ {
		s := NewState(Classic)
		for ply := 0; ply < 120; ply++ {
			fen := FEN(s)
			got, want := ourMoves(s), referenceMoves(t, fen)
			if !sameMoves(got, want) {
				t.Fatalf("game %d ply %d %s\n got %v\nwant %v", game, ply, fen, got, want)
			}
			moves := AllLegalMoves(s)
			if len(moves) == 0 {
				break
			}
			m := moves[rnd.Intn(len(moves))]
			next, ok := Move(s, m.From, m.To)
			if !ok {
				t.Fatalf("game %d ply %d: listed move %s%s refused", game, ply, m.From, m.To)
			}
			if next.PendingPromotion != nil {
				next, _ = Promote(next, *next.PendingPromotion, Queen)
			}
			s = next
		}
	}
}
