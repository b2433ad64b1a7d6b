package store

import (
	"sync"

	"chance-chess/internal/room"
	"chance-chess/internal/shared"
)

type MemoryStore struct {
	mu      sync.RWMutex
	rooms   map[string]*room.Room
	records map[string]shared.GameRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:   map[string]*room.Room{},
		records: map[string]shared.GameRecord{},
	}
}

func (m *MemoryStore) GetRoom(code string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

func (m *MemoryStore) SaveRoom(r *room.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.Code] = r
}

// SaveRecord keeps the latest record per room code.
func (m *MemoryStore) SaveRecord(rec shared.GameRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.Board.RoomCode] = rec
}

func (m *MemoryStore) GetRecord(code string) (shared.GameRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[code]
	return rec, ok
}

// RoomCodes lists every stored room.
func (m *MemoryStore) RoomCodes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.rooms))
	for code := range m.rooms {
		out = append(out, code)
	}
	return out
}
