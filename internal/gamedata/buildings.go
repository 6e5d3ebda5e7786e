package gamedata

// BuildingID identifies a constructible building type.
type BuildingID string

const (
	BuildingFarm     BuildingID = "farm"
	BuildingMine     BuildingID = "mine"
	BuildingMarket   BuildingID = "market"
	BuildingAcademy  BuildingID = "academy"
	BuildingFortress BuildingID = "fortress"
)

// AcademyTrainFactor is the train-time multiplier applied when the training
// hex hosts an academy. Effective time is floored at one turn.
const AcademyTrainFactor = 0.5

// BuildingDef defines a building type's cost, construction time, and effects.
type BuildingDef struct {
	ID         BuildingID `json:"id"`
	Name       string     `json:"name"`
	Cost       Yield      `json:"cost"`
	BuildTime  int        `json:"build_time"` // Turns to construct
	Yields     Yield      `json:"yields"`     // Added to the hex's per-turn income
	DefenseMod float64    `json:"defense_mod"`
	// TrainSite marks buildings that let the hex train units at all.
	TrainSite bool `json:"train_site"`
}

var buildingCatalog = map[BuildingID]BuildingDef{
	BuildingFarm: {
		ID: BuildingFarm, Name: "Farm",
		Cost: Yield{Gold: 60, Iron: 10}, BuildTime: 2,
		Yields: Yield{Grain: 3},
	},
	BuildingMine: {
		ID: BuildingMine, Name: "Mine",
		Cost: Yield{Gold: 80, Iron: 20}, BuildTime: 3,
		Yields: Yield{Iron: 3},
	},
	BuildingMarket: {
		ID: BuildingMarket, Name: "Market",
		Cost: Yield{Gold: 100, Iron: 20}, BuildTime: 2,
		Yields: Yield{Gold: 4, Influence: 1},
	},
	BuildingAcademy: {
		ID: BuildingAcademy, Name: "Academy",
		Cost: Yield{Gold: 140, Iron: 40}, BuildTime: 3,
		Yields:    Yield{Influence: 1},
		TrainSite: true,
	},
	BuildingFortress: {
		ID: BuildingFortress, Name: "Fortress",
		Cost: Yield{Gold: 160, Iron: 80}, BuildTime: 3,
		DefenseMod: 0.50,
		TrainSite:  true,
	},
}

// Building returns the catalog entry for a building id.
func Building(id BuildingID) (BuildingDef, bool) {
	def, ok := buildingCatalog[id]
	return def, ok
}

// AllBuildings returns every building type in deterministic catalog order.
func AllBuildings() []BuildingDef {
	return []BuildingDef{
		buildingCatalog[BuildingFarm],
		buildingCatalog[BuildingMine],
		buildingCatalog[BuildingMarket],
		buildingCatalog[BuildingAcademy],
		buildingCatalog[BuildingFortress],
	}
}
