package game

import (
	"github.com/bluemarble/bluemarble-backend/app/models"
	"github.com/bluemarble/bluemarble-backend/platform/board"
)

// handleCell applies the landed cell's effect to the acting player. The
// switch is total over the cell variants. Returns the winner if the effect
// bankrupted someone and ended the game.
func handleCell(state *models.GameState, player *models.Player, cell *models.Cell) *models.Player {
	switch cell.Type {
	case models.CellProperty:
		prop := cell.Property
		if prop == nil {
			return nil
		}
		if prop.Owner == "" {
			logf(state, "%s arrived at unowned %s", player.Name, prop.Name)
			return nil
		}
		if prop.Owner == player.Id {
			return nil
		}
		owner := state.PlayerById(prop.Owner)
		if owner == nil {
			return nil
		}
		toll := CalculateToll(prop, prop.Building)
		player.Cash -= toll
		owner.Cash += toll
		logf(state, "%s paid %d toll to %s for %s", player.Name, toll, owner.Name, prop.Name)
		_, winner := CheckBankruptcy(state, player.Id, owner.Id)
		return winner

	case models.CellTax:
		amount := player.Cash / 10
		if amount < TaxMinimum {
			amount = TaxMinimum
		}
		player.Cash -= amount
		logf(state, "%s paid %d income tax", player.Name, amount)
		_, winner := CheckBankruptcy(state, player.Id, "")
		return winner

	case models.CellIsland:
		player.InIsland = IslandTurns
		logf(state, "%s is stranded on the island for %d turns", player.Name, IslandTurns)
		return nil

	case models.CellWorldTour:
		player.Cash += WorldTourBonus
		logf(state, "%s received the world tour bonus +%d", player.Name, WorldTourBonus)
		return nil

	case models.CellSpaceTravel:
		player.Position = board.StartPos
		logf(state, "%s space-traveled back to Start", player.Name)
		return nil

	case models.CellGoldenKey:
		drawGoldenKey(state, player)
		return nil

	case models.CellWelfare:
		amount := state.WelfarePool
		player.Cash += amount
		state.WelfarePool = 0
		logf(state, "%s collected the welfare fund %d", player.Name, amount)
		return nil

	case models.CellMaintenance:
		count := 0
		for i := range state.Board {
			c := &state.Board[i]
			if c.Type == models.CellProperty && c.Property != nil &&
				c.Property.Owner == player.Id && c.Property.Building != models.BuildingNone {
				count++
			}
		}
		fee := count * MaintenanceFee
		player.Cash -= fee
		state.WelfarePool += fee
		logf(state, "%s paid %d building maintenance", player.Name, fee)
		_, winner := CheckBankruptcy(state, player.Id, "")
		return winner

	case models.CellStart:
		return nil
	}
	return nil
}
