package models

type CellType string

const (
	CellStart       CellType = "start"
	CellProperty    CellType = "property"
	CellTax         CellType = "tax"
	CellGoldenKey   CellType = "golden-key"
	CellWorldTour   CellType = "world-tour"
	CellSpaceTravel CellType = "space-travel"
	CellIsland      CellType = "island"
	CellWelfare     CellType = "welfare"
	CellMaintenance CellType = "maintenance"
)

type Building string

const (
	BuildingNone  Building = "none"
	BuildingVilla Building = "villa"
	BuildingBldg  Building = "building"
	BuildingHotel Building = "hotel"
)

type Property struct {
	Id         int      `json:"id"`
	Name       string   `json:"name"`
	ColorGroup string   `json:"colorGroup,omitempty"`
	Price      int      `json:"price"`
	Owner      string   `json:"owner,omitempty"`
	Building   Building `json:"building"`
}

type Cell struct {
	Id       int       `json:"id"`
	Type     CellType  `json:"type"`
	Name     string    `json:"name,omitempty"`
	Property *Property `json:"property,omitempty"`
}
