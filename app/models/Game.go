package models

import "time"

type GameLog struct {
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// GameState is the single authoritative state of one match. The log is
// prepended (newest first) and trimmed by the room that owns it.
type GameState struct {
	Board       []Cell    `json:"board"`
	Players     []*Player `json:"players"`
	CurrentTurn string    `json:"currentTurn"`
	TurnOrder   []string  `json:"turnOrder"`
	Log         []GameLog `json:"log"`
	DeckPointer int       `json:"deckPointer"`
	WelfarePool int       `json:"welfarePool"`
}

func (s *GameState) PlayerById(id string) *Player {
	for _, p := range s.Players {
		if p.Id == id {
			return p
		}
	}
	return nil
}

func (s *GameState) CellById(id int) *Cell {
	for i := range s.Board {
		if s.Board[i].Id == id {
			return &s.Board[i]
		}
	}
	return nil
}

// GameSave is the persisted snapshot of a room, upserted by room id.
type GameSave struct {
	tableName   struct{}  `pg:"game_saves"` //nolint:structcheck
	RoomId      string    `pg:"room_id,pk" json:"roomId"`
	RoomName    string    `pg:"room_name" json:"roomName"`
	State       []byte    `pg:"state" json:"state"`
	LastUpdated time.Time `pg:"last_updated" json:"lastUpdated"`
	IsActive    bool      `pg:"is_active,use_zero" json:"isActive"`
}

type ChatMessage struct {
	Id         string `json:"id"`
	RoomId     string `json:"roomId"`
	PlayerId   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

type RoomCreateDto struct {
	RoomName   string `json:"roomName"`
	PlayerName string `json:"playerName"`
	Color      string `json:"color"`
}

type RoomInfo struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Players int    `json:"players"`
	Started bool   `json:"started"`
}
