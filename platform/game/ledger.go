package game

import (
	"errors"

	"github.com/bluemarble/bluemarble-backend/app/models"
	"github.com/bluemarble/bluemarble-backend/platform/board"
)

// colorGroups maps a group tag to the property ids that complete it.
// A property outside every group can always be built on.
var colorGroups = map[string][]int{
	"brown":  {1, 3},
	"blue":   {5, 6, 8},
	"purple": {9, 11, 12},
	"orange": {13, 14, 15},
	"red":    {16, 18, 19},
	"yellow": {21, 23, 24},
	"green":  {25, 26, 28},
	"black":  {29, 31},
}

func colorGroupOf(propertyId int) []int {
	for _, group := range colorGroups {
		for _, id := range group {
			if id == propertyId {
				return group
			}
		}
	}
	return nil
}

// CanBuildBuilding reports whether playerId may construct on propertyId:
// the cell must be a property the player owns and the player must hold the
// entire color group.
func CanBuildBuilding(state *models.GameState, playerId string, propertyId int) bool {
	cell := state.CellById(propertyId)
	if cell == nil || cell.Type != models.CellProperty || cell.Property == nil {
		return false
	}
	if cell.Property.Owner != playerId {
		return false
	}
	group := colorGroupOf(propertyId)
	if group == nil {
		return true
	}
	for _, id := range group {
		c := state.CellById(id)
		if c == nil || c.Type != models.CellProperty || c.Property == nil || c.Property.Owner != playerId {
			return false
		}
	}
	return true
}

// CalculateToll is basePrice scaled by the building tier, floored to whole won.
func CalculateToll(property *models.Property, building models.Building) int {
	base := property.Price
	switch building {
	case models.BuildingVilla:
		return base / 2
	case models.BuildingBldg:
		return base * 2
	case models.BuildingHotel:
		return base * 5
	default:
		return base / 10
	}
}

func GetBuildingCost(property *models.Property) int {
	return property.Price / 2
}

// buyProperty debits the actor and assigns ownership. The cell must be an
// unowned property and the actor must afford the full price.
func buyProperty(state *models.GameState, player *models.Player, propertyId int) (*models.Property, error) {
	prop, err := board.GetProperty(propertyId, state.Board)
	if err != nil {
		return nil, errors.New("cell is not purchasable")
	}
	if prop.Owner != "" {
		return nil, errors.New("property already owned")
	}
	if player.Cash < prop.Price {
		return nil, errors.New("insufficient funds")
	}
	player.Cash -= prop.Price
	prop.Owner = player.Id
	logf(state, "%s bought %s (-%d)", player.Name, prop.Name, prop.Price)
	return prop, nil
}

// buildBuilding debits the construction cost and sets the tier after the
// ledger validation passes.
func buildBuilding(state *models.GameState, player *models.Player, propertyId int, tier models.Building) (*models.Property, error) {
	prop, err := board.GetProperty(propertyId, state.Board)
	if err != nil {
		return nil, errors.New("cell is not buildable")
	}
	if prop.Owner != player.Id {
		return nil, errors.New("not your property")
	}
	if tier == models.BuildingNone {
		return nil, errors.New("invalid building tier")
	}
	if !CanBuildBuilding(state, player.Id, propertyId) {
		return nil, errors.New("color group incomplete")
	}
	cost := GetBuildingCost(prop)
	if player.Cash < cost {
		return nil, errors.New("insufficient funds")
	}
	player.Cash -= cost
	prop.Building = tier
	logf(state, "%s built a %s on %s (-%d)", player.Name, tier, prop.Name, cost)
	return prop, nil
}
