package game

import (
	"errors"

	"github.com/bluemarble/bluemarble-backend/app/models"
)

// liquidatableValue is the nominal worth of a player's holdings ignoring
// cash: property price plus a 25% building credit per built property.
func liquidatableValue(state *models.GameState, playerId string) int {
	total := 0
	for i := range state.Board {
		cell := &state.Board[i]
		if cell.Type != models.CellProperty || cell.Property == nil || cell.Property.Owner != playerId {
			continue
		}
		total += cell.Property.Price
		if cell.Property.Building != models.BuildingNone {
			total += cell.Property.Price / 4
		}
	}
	return total
}

// CheckBankruptcy resolves a player whose cash has gone negative. A player
// who could still cover the debt by liquidating is left alone; the client
// (or the AI distress rule) must sell manually. A truly insolvent player is
// marked bankrupt: with a known creditor all assets transfer to them with
// building tiers intact, otherwise properties revert to the bank unbuilt.
// Returns the winner when exactly one solvent player remains.
func CheckBankruptcy(state *models.GameState, playerId string, creditorId string) (bool, *models.Player) {
	player := state.PlayerById(playerId)
	if player == nil || player.Cash >= 0 {
		return false, nil
	}

	if player.Cash+liquidatableValue(state, playerId) >= 0 {
		return false, nil
	}

	player.Bankrupt = true

	if creditor := state.PlayerById(creditorId); creditor != nil {
		if player.Cash > 0 {
			creditor.Cash += player.Cash
		}
		for i := range state.Board {
			cell := &state.Board[i]
			if cell.Type == models.CellProperty && cell.Property != nil && cell.Property.Owner == playerId {
				cell.Property.Owner = creditorId
			}
		}
		logf(state, "%s went bankrupt, all assets transferred to %s", player.Name, creditor.Name)
	} else {
		for i := range state.Board {
			cell := &state.Board[i]
			if cell.Type == models.CellProperty && cell.Property != nil && cell.Property.Owner == playerId {
				cell.Property.Owner = ""
				cell.Property.Building = models.BuildingNone
			}
		}
		logf(state, "%s went bankrupt, all properties returned to the bank", player.Name)
	}

	player.Cash = 0

	var alive *models.Player
	count := 0
	for _, p := range state.Players {
		if !p.Bankrupt {
			alive = p
			count++
		}
	}
	if count == 1 {
		logf(state, "%s wins, every opponent is bankrupt", alive.Name)
		return true, alive
	}
	return true, nil
}

// SellBuilding refunds half the construction cost and clears the tier.
func SellBuilding(state *models.GameState, playerId string, propertyId int) error {
	player := state.PlayerById(playerId)
	cell := state.CellById(propertyId)
	if player == nil || cell == nil || cell.Type != models.CellProperty || cell.Property == nil {
		return errors.New("property not found")
	}
	prop := cell.Property
	if prop.Owner != playerId {
		return errors.New("not your property")
	}
	if prop.Building == models.BuildingNone {
		return errors.New("nothing built here")
	}
	refund := prop.Price / 2 / 2
	player.Cash += refund
	prop.Building = models.BuildingNone
	logf(state, "%s sold the building on %s (+%d)", player.Name, prop.Name, refund)
	return nil
}

// SellProperty refunds half the nominal price and returns the property,
// building included, to the bank.
func SellProperty(state *models.GameState, playerId string, propertyId int) error {
	player := state.PlayerById(playerId)
	cell := state.CellById(propertyId)
	if player == nil || cell == nil || cell.Type != models.CellProperty || cell.Property == nil {
		return errors.New("property not found")
	}
	prop := cell.Property
	if prop.Owner != playerId {
		return errors.New("not your property")
	}
	refund := prop.Price / 2
	player.Cash += refund
	prop.Owner = ""
	prop.Building = models.BuildingNone
	logf(state, "%s sold %s (+%d)", player.Name, prop.Name, refund)
	return nil
}
