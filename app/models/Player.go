package models

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

type Player struct {
	Id           string     `json:"id"`
	Name         string     `json:"name"`
	Color        string     `json:"color"`
	Cash         int        `json:"cash"`
	Position     int        `json:"position"`
	InIsland     int        `json:"inIsland"`
	Bankrupt     bool       `json:"bankrupt"`
	IsAI         bool       `json:"isAI,omitempty"`
	AIDifficulty Difficulty `json:"aiDifficulty,omitempty"`
}
