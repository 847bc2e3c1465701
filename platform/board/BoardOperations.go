package board

import (
	_ "embed"
	"encoding/json"
	"errors"

	"github.com/bluemarble/bluemarble-backend/app/models"
)

// Well-known cell positions.
const (
	StartPos       = 0
	IslandPos      = 10
	SpaceTravelPos = 20
	WorldTourPos   = 30
)

//go:embed board.json
var boardJSON []byte

// Load returns a fresh copy of the 40-cell board. Each room gets its own
// copy so property ownership never leaks between matches.
func Load() []models.Cell {
	var cells []models.Cell
	if err := json.Unmarshal(boardJSON, &cells); err != nil {
		panic(err)
	}
	return cells
}

func GetByPos(pos int, cells []models.Cell) (*models.Cell, error) { // O(N) time complexity
	for i := range cells {
		if cells[i].Id == pos {
			return &cells[i], nil
		}
	}
	return nil, errors.New("not found")
}

func GetProperty(id int, cells []models.Cell) (*models.Property, error) {
	cell, err := GetByPos(id, cells)
	if err != nil {
		return nil, err
	}
	if cell.Type != models.CellProperty || cell.Property == nil {
		return nil, errors.New("not a property")
	}
	return cell.Property, nil
}
