package game

import (
	"github.com/bluemarble/bluemarble-backend/app/models"
	"github.com/bluemarble/bluemarble-backend/platform/board"
)

func testPlayer(id, name string, cash int) *models.Player {
	return &models.Player{Id: id, Name: name, Cash: cash}
}

func testState(players ...*models.Player) *models.GameState {
	order := make([]string, len(players))
	for i, p := range players {
		order[i] = p.Id
	}
	state := &models.GameState{
		Board:     board.Load(),
		Players:   players,
		TurnOrder: order,
	}
	if len(players) > 0 {
		state.CurrentTurn = players[0].Id
	}
	return state
}

func giveProperty(state *models.GameState, propertyId int, ownerId string, building models.Building) *models.Property {
	prop := state.CellById(propertyId).Property
	prop.Owner = ownerId
	prop.Building = building
	return prop
}

func newTestRegistry() *Registry {
	return NewRegistry(NewMemSaveStore(), NewImmediateScheduler())
}

// seqSource feeds rand.Rand a fixed Int63 sequence so probabilistic
// branches can be pinned. 0 maps to Float64()==0, nearMaxInt63 to just
// below 1. The value stays a little under 2^63 so its float64 conversion
// does too; rounding up to exactly 2^63 would make Float64 retry forever.
type seqSource struct {
	vals []int64
	i    int
}

const nearMaxInt63 = int64(1<<63 - 1<<10)

func (s *seqSource) Int63() int64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *seqSource) Seed(int64) {}
