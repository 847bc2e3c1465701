package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluemarble/bluemarble-backend/app/models"
)

func fixedRand(vals ...int64) *rand.Rand {
	return rand.New(&seqSource{vals: vals})
}

func TestFixedRandFloat64Bounds(t *testing.T) {
	assert.Equal(t, 0.0, fixedRand(0).Float64())

	// must land strictly below 1, or Float64 would retry on the same
	// value forever
	high := fixedRand(nearMaxInt63).Float64()
	assert.Less(t, high, 1.0)
	assert.Greater(t, high, 0.999)
}

func TestEasyBuysCheapProperty(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	a.Position = 1 // Taipei, 50000, well under 30% of cash
	state := testState(a)

	ai := NewAIPolicy(models.DifficultyEasy, fixedRand(nearMaxInt63))
	d := ai.Decide(state, a)
	assert.Equal(t, ActionBuy, d.Action)
	assert.Equal(t, 1, d.PropertyId)
}

func TestEasySkipsExpensiveProperty(t *testing.T) {
	a := testPlayer("a", "A", 100000)
	a.Position = 18 // Ottawa, 200000, unaffordable
	state := testState(a)

	ai := NewAIPolicy(models.DifficultyEasy, fixedRand(nearMaxInt63))
	d := ai.Decide(state, a)
	assert.Equal(t, ActionPass, d.Action)
}

func TestEasyRandomRefusal(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	a.Position = 1
	state := testState(a)

	ai := NewAIPolicy(models.DifficultyEasy, fixedRand(0))
	d := ai.Decide(state, a)
	assert.Equal(t, ActionPass, d.Action, "acceptance roll failed")
}

func TestNormalBuysOnGroupSynergy(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	a.Position = 1
	state := testState(a)
	giveProperty(state, 3, "a", models.BuildingNone) // other brown property

	// synergy short-circuits the acceptance roll
	ai := NewAIPolicy(models.DifficultyNormal, fixedRand(0))
	d := ai.Decide(state, a)
	assert.Equal(t, ActionBuy, d.Action)
}

func TestHardBuysOnlyAboveThreshold(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	a.Position = 1
	state := testState(a)

	ai := NewAIPolicy(models.DifficultyHard, fixedRand(nearMaxInt63))
	d := ai.Decide(state, a)
	assert.Equal(t, ActionPass, d.Action, "0.52 strategic value is below 0.6")

	giveProperty(state, 3, "a", models.BuildingNone)
	d = ai.Decide(state, a)
	assert.Equal(t, ActionBuy, d.Action, "group synergy lifts the score over the bar")
}

func TestBuildTierScalesWithCash(t *testing.T) {
	tests := []struct {
		difficulty models.Difficulty
		cash       int
		want       models.Building
	}{
		{models.DifficultyEasy, StartingCash, models.BuildingVilla},
		{models.DifficultyNormal, 50000, models.BuildingVilla},
		{models.DifficultyNormal, 100000, models.BuildingBldg},
		{models.DifficultyHard, 100000, models.BuildingBldg},
		{models.DifficultyHard, 200000, models.BuildingHotel},
	}
	for _, tt := range tests {
		ai := NewAIPolicy(tt.difficulty, fixedRand(0))
		assert.Equal(t, tt.want, ai.buildTier(tt.cash, 25000), "%s with %d", tt.difficulty, tt.cash)
	}
}

func TestDecideBuildsOnCompleteGroup(t *testing.T) {
	a := testPlayer("a", "A", StartingCash)
	a.Position = 0
	state := testState(a)
	giveProperty(state, 1, "a", models.BuildingNone)
	giveProperty(state, 3, "a", models.BuildingNone)

	ai := NewAIPolicy(models.DifficultyHard, fixedRand(0))
	d := ai.Decide(state, a)
	require.Equal(t, ActionBuild, d.Action)
	assert.Equal(t, 1, d.PropertyId)
	assert.Equal(t, models.BuildingHotel, d.BuildingTier, "flush with cash")
}

func TestDistressSellsBuildingFirst(t *testing.T) {
	a := testPlayer("a", "A", 40000)
	b := testPlayer("b", "B", StartingCash)
	a.Position = 0
	state := testState(a, b)
	giveProperty(state, 1, "a", models.BuildingVilla) // incomplete group, no build option

	ai := NewAIPolicy(models.DifficultyEasy, fixedRand(nearMaxInt63))
	d := ai.Decide(state, a)
	require.Equal(t, ActionSell, d.Action)
	assert.Equal(t, 1, d.PropertyId)
}

func TestDistressSellsCheapestProperty(t *testing.T) {
	a := testPlayer("a", "A", 30000)
	b := testPlayer("b", "B", StartingCash)
	a.Position = 0
	state := testState(a, b)
	giveProperty(state, 5, "a", models.BuildingNone)  // Manila, 80000
	giveProperty(state, 1, "a", models.BuildingNone)  // Taipei, 50000
	giveProperty(state, 18, "a", models.BuildingNone) // Ottawa, 200000

	ai := NewAIPolicy(models.DifficultyEasy, fixedRand(nearMaxInt63))
	d := ai.Decide(state, a)
	require.Equal(t, ActionSell, d.Action)
	assert.Equal(t, 1, d.PropertyId, "cheapest goes first")
}

func TestHardTradeTargetsRichestOpponent(t *testing.T) {
	a := testPlayer("a", "A", 500000)
	b := testPlayer("b", "B", 200000)
	c := testPlayer("c", "C", 900000)
	a.Position = 0
	state := testState(a, b, c)
	giveProperty(state, 1, "a", models.BuildingNone)

	ai := NewAIPolicy(models.DifficultyHard, fixedRand(0))
	d := ai.Decide(state, a)
	require.Equal(t, ActionTrade, d.Action)
	assert.Equal(t, "c", d.TargetId)
	assert.Equal(t, []int{1}, d.Properties)
	assert.Equal(t, 60000, d.CashRequest, "120% of the cheapest holding")
}

func TestHardTradeIsRare(t *testing.T) {
	a := testPlayer("a", "A", 500000)
	b := testPlayer("b", "B", 200000)
	a.Position = 0
	state := testState(a, b)
	giveProperty(state, 1, "a", models.BuildingNone)

	ai := NewAIPolicy(models.DifficultyHard, fixedRand(nearMaxInt63))
	d := ai.Decide(state, a)
	assert.Equal(t, ActionPass, d.Action)
}

func TestActionDelayByDifficulty(t *testing.T) {
	easy := NewAIPolicy(models.DifficultyEasy, fixedRand(0))
	hard := NewAIPolicy(models.DifficultyHard, fixedRand(0))
	assert.Greater(t, int64(easy.ActionDelay()), int64(hard.ActionDelay()))
}
