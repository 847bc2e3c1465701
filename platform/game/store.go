package game

import (
	"errors"
	"sync"
	"time"

	"github.com/bluemarble/bluemarble-backend/app/models"
)

// SaveStore persists game snapshots keyed by room id. The go-pg
// implementation lives in platform/database; MemSaveStore backs headless
// runs and tests. Store failures never crash a room, the in-memory state
// stays authoritative.
type SaveStore interface {
	Upsert(save *models.GameSave) error
	// Load returns the active save for roomId, or an error if none exists.
	Load(roomId string) (*models.GameSave, error)
	Deactivate(roomId string) error
}

type MemSaveStore struct {
	mu    sync.Mutex
	saves map[string]*models.GameSave
}

func NewMemSaveStore() *MemSaveStore {
	return &MemSaveStore{saves: make(map[string]*models.GameSave)}
}

func (s *MemSaveStore) Upsert(save *models.GameSave) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	save.LastUpdated = time.Now()
	s.saves[save.RoomId] = save
	return nil
}

func (s *MemSaveStore) Load(roomId string) (*models.GameSave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	save, ok := s.saves[roomId]
	if !ok || !save.IsActive {
		return nil, errors.New("no saved game")
	}
	return save, nil
}

func (s *MemSaveStore) Deactivate(roomId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if save, ok := s.saves[roomId]; ok {
		save.IsActive = false
	}
	return nil
}
