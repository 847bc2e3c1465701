package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bluemarble/bluemarble-backend/app/models"
	"github.com/bluemarble/bluemarble-backend/platform/board"
)

func TestHandleCellUnownedPropertyOnlyLogs(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)

	handleCell(state, a, state.CellById(1))
	assert.Equal(t, StartingCash, a.Cash)
	assert.Len(t, state.Log, 1)
}

func TestHandleCellOwnPropertyNoEffect(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)
	giveProperty(state, 1, "a", models.BuildingNone)

	handleCell(state, a, state.CellById(1))
	assert.Equal(t, StartingCash, a.Cash)
	assert.Empty(t, state.Log)
}

func TestHandleCellTollByTier(t *testing.T) {
	tests := []struct {
		building models.Building
		toll     int
	}{
		{models.BuildingNone, 20000},
		{models.BuildingVilla, 100000},
		{models.BuildingBldg, 400000},
		{models.BuildingHotel, 1000000},
	}
	for _, tt := range tests {
		a := testPlayer("a", "A", StartingCash)
		b := testPlayer("b", "B", StartingCash)
		state := testState(a, b)
		giveProperty(state, 18, "b", tt.building) // Ottawa, 200000

		handleCell(state, a, state.CellById(18))
		assert.Equal(t, StartingCash-tt.toll, a.Cash, string(tt.building))
		assert.Equal(t, StartingCash+tt.toll, b.Cash, string(tt.building))
		assert.Equal(t, 2*StartingCash, a.Cash+b.Cash, "toll is conserved between the parties")
	}
}

func TestHandleCellTax(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)
	handleCell(state, a, state.CellById(4))
	assert.Equal(t, StartingCash-150000, a.Cash, "10% of cash above the minimum")

	poor := testPlayer("p", "P", 100000)
	state2 := testState(poor)
	handleCell(state2, poor, state2.CellById(4))
	assert.Equal(t, 100000-TaxMinimum, poor.Cash, "fixed minimum applies")
}

func TestHandleCellIsland(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)
	handleCell(state, a, state.CellById(board.IslandPos))
	assert.Equal(t, IslandTurns, a.InIsland)
}

func TestHandleCellWorldTour(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)
	handleCell(state, a, state.CellById(board.WorldTourPos))
	assert.Equal(t, StartingCash+WorldTourBonus, a.Cash)
}

func TestHandleCellSpaceTravel(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	a.Position = board.SpaceTravelPos
	state := testState(a)
	handleCell(state, a, state.CellById(board.SpaceTravelPos))
	assert.Equal(t, board.StartPos, a.Position)
}

func TestHandleCellWelfare(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)
	state.WelfarePool = 90000

	handleCell(state, a, state.CellById(27))
	assert.Equal(t, StartingCash+90000, a.Cash)
	assert.Equal(t, 0, state.WelfarePool)
}

func TestHandleCellMaintenance(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)
	giveProperty(state, 1, "a", models.BuildingVilla)
	giveProperty(state, 3, "a", models.BuildingHotel)
	giveProperty(state, 5, "a", models.BuildingNone) // unbuilt, not charged

	handleCell(state, a, state.CellById(34))
	assert.Equal(t, StartingCash-2*MaintenanceFee, a.Cash)
	assert.Equal(t, 2*MaintenanceFee, state.WelfarePool)
}

func TestHandleCellGoldenKeyAdvancesDeck(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)

	handleCell(state, a, state.CellById(2))
	assert.Equal(t, 1, state.DeckPointer)
}

func TestHandleCellStartNoEffect(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)
	handleCell(state, a, state.CellById(0))
	assert.Equal(t, StartingCash, a.Cash)
	assert.Empty(t, state.Log)
}

func TestHandleCellTollBankruptsVisitor(t *testing.T) {
	a := testPlayer("a", "A", 10000)
	b := testPlayer("b", "B", StartingCash)
	state := testState(a, b)
	giveProperty(state, 18, "b", models.BuildingHotel) // toll 1000000

	winner := handleCell(state, a, state.CellById(18))
	assert.True(t, a.Bankrupt)
	assert.NotNil(t, winner)
	assert.Equal(t, "b", winner.Id)
}
