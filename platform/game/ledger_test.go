package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluemarble/bluemarble-backend/app/models"
)

func TestCanBuildBuildingGroupGating(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	b := testPlayer("b", "B", StartingCash)
	state := testState(a, b)

	// brown group is 1 and 3
	giveProperty(state, 1, "a", models.BuildingNone)
	assert.False(t, CanBuildBuilding(state, "a", 1), "group incomplete")

	giveProperty(state, 3, "b", models.BuildingNone)
	assert.False(t, CanBuildBuilding(state, "a", 1), "group member owned by opponent")

	state.CellById(3).Property.Owner = "a"
	assert.True(t, CanBuildBuilding(state, "a", 1), "group complete")
}

func TestCanBuildBuildingUngroupedProperty(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)
	giveProperty(state, 39, "a", models.BuildingNone) // Seoul has no color group
	assert.True(t, CanBuildBuilding(state, "a", 39))
}

func TestCanBuildBuildingRejectsNonOwner(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)
	assert.False(t, CanBuildBuilding(state, "a", 1), "unowned")
	assert.False(t, CanBuildBuilding(state, "a", 0), "not a property cell")
}

func TestCalculateToll(t *testing.T) {
	prop := &models.Property{Price: 200000}
	tests := []struct {
		building models.Building
		want     int
	}{
		{models.BuildingNone, 20000},
		{models.BuildingVilla, 100000},
		{models.BuildingBldg, 400000},
		{models.BuildingHotel, 1000000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateToll(prop, tt.building), string(tt.building))
	}
}

func TestGetBuildingCost(t *testing.T) {
	assert.Equal(t, 100000, GetBuildingCost(&models.Property{Price: 200000}))
	assert.Equal(t, 25000, GetBuildingCost(&models.Property{Price: 50000}))
}

func TestBuyPropertyValidation(t *testing.T) {
	a := testPlayer("a", "A", 100000)
	b := testPlayer("b", "B", StartingCash)
	state := testState(a, b)

	_, err := buyProperty(state, a, 18) // Ottawa, 200000
	require.Error(t, err, "insufficient funds")
	assert.Equal(t, 100000, a.Cash)

	giveProperty(state, 1, "b", models.BuildingNone)
	_, err = buyProperty(state, a, 1)
	require.Error(t, err, "already owned")

	_, err = buyProperty(state, a, 4) // tax cell
	require.Error(t, err)
}

func TestBuildBuildingDebitsCost(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)
	giveProperty(state, 1, "a", models.BuildingNone)
	giveProperty(state, 3, "a", models.BuildingNone)

	prop, err := buildBuilding(state, a, 1, models.BuildingVilla)
	require.NoError(t, err)
	assert.Equal(t, models.BuildingVilla, prop.Building)
	assert.Equal(t, StartingCash-25000, a.Cash)
}

func TestBuildBuildingRejectsIncompleteGroup(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	state := testState(a)
	giveProperty(state, 1, "a", models.BuildingNone)

	_, err := buildBuilding(state, a, 1, models.BuildingVilla)
	require.Error(t, err)
	assert.Equal(t, StartingCash, a.Cash, "no partial debit")
	assert.Equal(t, models.BuildingNone, state.CellById(1).Property.Building)
}
