package game

import "testing"

// scriptedRand replays fixed draws; each value is taken modulo n.
type scriptedRand struct {
	vals []int
	i    int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func mustFEN(t *testing.T, variant GameVariant, fen string) State {
	t.Helper()
	s, err := ParseFEN(variant, fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return s
}

func sq(t *testing.T, name string) Position {
	t.Helper()
	p, ok := ParsePosition(name)
	if !ok {
		t.Fatalf("bad square %q", name)
	}
	return p
}

func mustMove(t *testing.T, s State, from, to string) State {
	t.Helper()
	next, ok := Move(s, sq(t, from), sq(t, to))
	if !ok {
		t.Fatalf("move %s%s refused\n%s", from, to, s.Board)
	}
	return next
}

func hasPos(list []Position, p Position) bool { return containsPosition(list, p) }
