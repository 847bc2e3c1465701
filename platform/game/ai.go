package game

import (
	"math/rand"
	"sort"
	"time"

	"github.com/bluemarble/bluemarble-backend/app/models"
)

// Decision actions. Exactly one is emitted per turn; the room applies it
// through the same operations human players use.
const (
	ActionBuy   = "buyProperty"
	ActionBuild = "buildBuilding"
	ActionSell  = "sellAsset"
	ActionTrade = "proposeTrade"
	ActionPass  = "pass"
)

type Decision struct {
	Action       string          `json:"action"`
	PropertyId   int             `json:"propertyId,omitempty"`
	BuildingTier models.Building `json:"buildingTier,omitempty"`
	TargetId     string          `json:"targetId,omitempty"`
	CashRequest  int             `json:"cashRequest,omitempty"`
	Properties   []int           `json:"properties,omitempty"`
}

// AIPolicy decides one action per turn for a scripted player. The random
// source is injected so tests can pin the probabilistic branches.
type AIPolicy struct {
	difficulty models.Difficulty
	rng        *rand.Rand
}

func NewAIPolicy(difficulty models.Difficulty, rng *rand.Rand) *AIPolicy {
	return &AIPolicy{difficulty: difficulty, rng: rng}
}

func (ai *AIPolicy) Difficulty() models.Difficulty { return ai.difficulty }

// ActionDelay paces AI turns for human observers. Not a correctness
// requirement; the immediate scheduler compresses it to zero in tests.
func (ai *AIPolicy) ActionDelay() time.Duration {
	switch ai.difficulty {
	case models.DifficultyEasy:
		return 2 * time.Second
	case models.DifficultyHard:
		return time.Second
	default:
		return 1500 * time.Millisecond
	}
}

// Decide evaluates, in priority order: purchase of the cell under the
// player, construction on a group-complete holding, distress liquidation,
// a hard-only trade proposal, then pass.
func (ai *AIPolicy) Decide(state *models.GameState, player *models.Player) Decision {
	cell := &state.Board[player.Position]
	if cell.Type == models.CellProperty && cell.Property != nil && cell.Property.Owner == "" {
		if ai.shouldBuy(state, player, cell.Property) {
			return Decision{Action: ActionBuy, PropertyId: cell.Id}
		}
	}

	if d, ok := ai.decideBuild(state, player); ok {
		return d
	}

	if player.Cash < 100000 {
		if d, ok := ai.decideSell(state, player); ok {
			return d
		}
	}

	if ai.difficulty == models.DifficultyHard {
		if d, ok := ai.decideTrade(state, player); ok {
			return d
		}
	}

	return Decision{Action: ActionPass}
}

func (ai *AIPolicy) shouldBuy(state *models.GameState, player *models.Player, prop *models.Property) bool {
	if player.Cash < prop.Price {
		return false
	}
	switch ai.difficulty {
	case models.DifficultyEasy:
		return float64(prop.Price) <= float64(player.Cash)*0.3 && ai.rng.Float64() > 0.3
	case models.DifficultyNormal:
		if float64(prop.Price) > float64(player.Cash)*0.5 {
			return false
		}
		return ai.hasGroupAdvantage(state, player, prop.ColorGroup) || ai.rng.Float64() > 0.4
	case models.DifficultyHard:
		if float64(prop.Price) > float64(player.Cash)*0.7 {
			return false
		}
		return ai.strategicValue(state, player, prop) > 0.6
	}
	return false
}

// hasGroupAdvantage is true when the player already owns another property
// in the group.
func (ai *AIPolicy) hasGroupAdvantage(state *models.GameState, player *models.Player, group string) bool {
	if group == "" {
		return false
	}
	for i := range state.Board {
		c := &state.Board[i]
		if c.Type == models.CellProperty && c.Property != nil &&
			c.Property.ColorGroup == group && c.Property.Owner == player.Id {
			return true
		}
	}
	return false
}

// strategicValue scores a purchase between 0 and 1: 0.5 base, +0.3 for
// group synergy, plus a toll-to-price term.
func (ai *AIPolicy) strategicValue(state *models.GameState, player *models.Player, prop *models.Property) float64 {
	value := 0.5
	if ai.hasGroupAdvantage(state, player, prop.ColorGroup) {
		value += 0.3
	}
	tollRatio := float64(CalculateToll(prop, models.BuildingNone)) / float64(prop.Price)
	value += tollRatio * 0.2
	if value > 1 {
		value = 1
	}
	return value
}

func (ai *AIPolicy) decideBuild(state *models.GameState, player *models.Player) (Decision, bool) {
	chance := map[models.Difficulty]float64{
		models.DifficultyEasy:   0.3,
		models.DifficultyNormal: 0.6,
		models.DifficultyHard:   0.9,
	}[ai.difficulty]

	for _, prop := range ai.ownedProperties(state, player) {
		if !CanBuildBuilding(state, player.Id, prop.Id) {
			continue
		}
		cost := GetBuildingCost(prop)
		if float64(player.Cash) < float64(cost)*1.5 {
			continue
		}
		if ai.rng.Float64() < chance {
			return Decision{
				Action:       ActionBuild,
				PropertyId:   prop.Id,
				BuildingTier: ai.buildTier(player.Cash, cost),
			}, true
		}
	}
	return Decision{}, false
}

func (ai *AIPolicy) buildTier(cash, baseCost int) models.Building {
	switch ai.difficulty {
	case models.DifficultyEasy:
		return models.BuildingVilla
	case models.DifficultyNormal:
		if cash > baseCost*3 {
			return models.BuildingBldg
		}
		return models.BuildingVilla
	default:
		if cash > baseCost*5 {
			return models.BuildingHotel
		}
		if cash > baseCost*3 {
			return models.BuildingBldg
		}
		return models.BuildingVilla
	}
}

// decideSell liquidates under real distress only: a built structure first,
// otherwise the cheapest holding.
func (ai *AIPolicy) decideSell(state *models.GameState, player *models.Player) (Decision, bool) {
	if player.Cash > 50000 {
		return Decision{}, false
	}
	owned := ai.ownedProperties(state, player)
	for _, prop := range owned {
		if prop.Building != models.BuildingNone {
			return Decision{Action: ActionSell, PropertyId: prop.Id}, true
		}
	}
	if len(owned) == 0 {
		return Decision{}, false
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Price < owned[j].Price })
	return Decision{Action: ActionSell, PropertyId: owned[0].Id}, true
}

// decideTrade occasionally offers the cheapest holding to the richest
// solvent opponent for 120% of its price.
func (ai *AIPolicy) decideTrade(state *models.GameState, player *models.Player) (Decision, bool) {
	if ai.rng.Float64() > 0.1 {
		return Decision{}, false
	}
	var target *models.Player
	for _, p := range state.Players {
		if p.Id == player.Id || p.Bankrupt {
			continue
		}
		if target == nil || p.Cash > target.Cash {
			target = p
		}
	}
	if target == nil {
		return Decision{}, false
	}
	owned := ai.ownedProperties(state, player)
	if len(owned) == 0 {
		return Decision{}, false
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Price < owned[j].Price })
	cheapest := owned[0]
	return Decision{
		Action:      ActionTrade,
		TargetId:    target.Id,
		Properties:  []int{cheapest.Id},
		CashRequest: cheapest.Price * 12 / 10,
	}, true
}

func (ai *AIPolicy) ownedProperties(state *models.GameState, player *models.Player) []*models.Property {
	var owned []*models.Property
	for i := range state.Board {
		c := &state.Board[i]
		if c.Type == models.CellProperty && c.Property != nil && c.Property.Owner == player.Id {
			owned = append(owned, c.Property)
		}
	}
	return owned
}
