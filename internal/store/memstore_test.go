package store

import (
	"sort"
	"testing"
	"time"

	"chance-chess/internal/config"
	"chance-chess/internal/game"
	"chance-chess/internal/room"
	"chance-chess/internal/shared"
)

func TestMemoryStoreRecords(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.GetRecord("ABCDEF"); ok {
		t.Fatal("empty store returned a record")
	}

	snap := game.NewEngine(game.Classic).State()
	first := shared.RecordFromSnapshot("b1", "ABCDEF", snap, "fen-1", nil, time.Unix(1, 0))
	second := shared.RecordFromSnapshot("b1", "ABCDEF", snap, "fen-2", nil, time.Unix(2, 0))
	s.SaveRecord(first)
	s.SaveRecord(second)

	got, ok := s.GetRecord("ABCDEF")
	if !ok {
		t.Fatal("record missing")
	}
	if got.Board.FEN != "fen-2" {
		t.Errorf("FEN = %q, want the latest save", got.Board.FEN)
	}
	if len(got.Pieces) != 32 {
		t.Errorf("pieces = %d, want 32", len(got.Pieces))
	}
}

func TestMemoryStoreRooms(t *testing.T) {
	s := NewMemoryStore()
	m := room.NewManager(s, config.DefaultConfig, nil)

	var want []string
	for i := 0; i < 3; i++ {
		r, _, err := m.CreateRoom(game.Classic, "p", "")
		if err != nil {
			t.Fatal(err)
		}
		want = append(want, r.Code)

		got, ok := s.GetRoom(r.Code)
		if !ok || got != r {
			t.Fatalf("room %s not stored", r.Code)
		}
		if _, ok := s.GetRecord(r.Code); !ok {
			t.Fatalf("room %s has no record", r.Code)
		}
	}

	codes := s.RoomCodes()
	sort.Strings(codes)
	sort.Strings(want)
	if len(codes) != len(want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	for i := range codes {
		if codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", codes, want)
		}
	}
}
