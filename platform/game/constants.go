package game

// Economic constants, in won.
const (
	StartingCash   = 1500000
	LapSalary      = 200000
	TaxMinimum     = 50000
	WorldTourBonus = 400000 // double salary, paid flat
	MaintenanceFee = 10000  // per built property
)

const (
	MaxPlayers     = 5
	IslandTurns    = 3
	DoublesForJail = 3
	MaxLogEntries  = 100
)
