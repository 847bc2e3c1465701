package database

import (
	"github.com/go-pg/pg/v10"

	"github.com/bluemarble/bluemarble-backend/app/models"
)

// GameSaveStore implements game.SaveStore on Postgres: one row per room,
// upserted in place, with an active flag instead of deletion.
type GameSaveStore struct {
	db *pg.DB
}

func NewGameSaveStore(db *pg.DB) *GameSaveStore {
	return &GameSaveStore{db: db}
}

func (s *GameSaveStore) Upsert(save *models.GameSave) error {
	_, err := s.db.Model(save).
		OnConflict("(room_id) DO UPDATE").
		Set("room_name = EXCLUDED.room_name, state = EXCLUDED.state, last_updated = EXCLUDED.last_updated, is_active = EXCLUDED.is_active").
		Insert()
	return err
}

func (s *GameSaveStore) Load(roomId string) (*models.GameSave, error) {
	save := new(models.GameSave)
	err := s.db.Model(save).
		Where("room_id = ? and is_active = ?", roomId, true).
		Select()
	if err != nil {
		return nil, err
	}
	return save, nil
}

func (s *GameSaveStore) Deactivate(roomId string) error {
	_, err := s.db.Model((*models.GameSave)(nil)).
		Where("room_id = ?", roomId).
		Set("is_active = ?", false).
		Update()
	return err
}
