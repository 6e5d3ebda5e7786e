package gamedata

// Branch is a unit's service arm. It drives doctrine availability and
// branch-specific terrain modifiers.
type Branch uint8

const (
	BranchInfantry Branch = iota
	BranchCavalry
	BranchArmor
	BranchArtillery
)

// BranchName returns a human-readable branch name.
func BranchName(b Branch) string {
	switch b {
	case BranchInfantry:
		return "Infantry"
	case BranchCavalry:
		return "Cavalry"
	case BranchArmor:
		return "Armor"
	case BranchArtillery:
		return "Artillery"
	default:
		return "Unknown"
	}
}

// UnitTypeID identifies a trainable unit type in the catalog.
type UnitTypeID string

const (
	UnitMilitia   UnitTypeID = "militia"
	UnitInfantry  UnitTypeID = "infantry"
	UnitOutriders UnitTypeID = "outriders"
	UnitIronclad  UnitTypeID = "ironclad"
	UnitArtillery UnitTypeID = "artillery"
)

// UnitTypeDef defines a unit type's base stats and training requirements.
type UnitTypeDef struct {
	ID        UnitTypeID `json:"id"`
	Name      string     `json:"name"`
	Branch    Branch     `json:"branch"`
	Attack    float64    `json:"attack"`
	Defense   float64    `json:"defense"`
	Movement  int        `json:"movement"` // Movement points per turn
	Range     int        `json:"range"`    // Attack range in hexes
	Sight     int        `json:"sight"`    // Fog-of-war sight radius
	Cost      Yield      `json:"cost"`
	Upkeep    int        `json:"upkeep"`     // Gold per turn
	TrainTime int        `json:"train_time"` // Turns to train
	// RequiresBuilding gates training on a building at the hex; empty means
	// any owned hex with a capital or any training site.
	RequiresBuilding BuildingID `json:"requires_building,omitempty"`
}

var unitCatalog = map[UnitTypeID]UnitTypeDef{
	UnitMilitia: {
		ID: UnitMilitia, Name: "Militia", Branch: BranchInfantry,
		Attack: 8, Defense: 10, Movement: 2, Range: 1, Sight: 2,
		Cost: Yield{Gold: 40, Iron: 10, Grain: 20}, Upkeep: 1, TrainTime: 1,
	},
	UnitInfantry: {
		ID: UnitInfantry, Name: "Line Infantry", Branch: BranchInfantry,
		Attack: 14, Defense: 14, Movement: 2, Range: 1, Sight: 2,
		Cost: Yield{Gold: 60, Iron: 30, Grain: 30}, Upkeep: 2, TrainTime: 2,
	},
	UnitOutriders: {
		ID: UnitOutriders, Name: "Outriders", Branch: BranchCavalry,
		Attack: 12, Defense: 8, Movement: 4, Range: 1, Sight: 4,
		Cost: Yield{Gold: 80, Iron: 20, Grain: 40}, Upkeep: 2, TrainTime: 2,
	},
	UnitIronclad: {
		ID: UnitIronclad, Name: "Ironclad", Branch: BranchArmor,
		Attack: 22, Defense: 18, Movement: 3, Range: 1, Sight: 2,
		Cost: Yield{Gold: 120, Iron: 80, Grain: 20}, Upkeep: 4, TrainTime: 3,
		RequiresBuilding: BuildingFortress,
	},
	UnitArtillery: {
		ID: UnitArtillery, Name: "Field Artillery", Branch: BranchArtillery,
		Attack: 18, Defense: 6, Movement: 1, Range: 2, Sight: 2,
		Cost: Yield{Gold: 100, Iron: 60, Grain: 10}, Upkeep: 3, TrainTime: 3,
		RequiresBuilding: BuildingAcademy,
	},
}

// UnitType returns the catalog entry for a unit type id.
func UnitType(id UnitTypeID) (UnitTypeDef, bool) {
	def, ok := unitCatalog[id]
	return def, ok
}

// AllUnitTypes returns every unit type in deterministic catalog order.
func AllUnitTypes() []UnitTypeDef {
	return []UnitTypeDef{
		unitCatalog[UnitMilitia],
		unitCatalog[UnitInfantry],
		unitCatalog[UnitOutriders],
		unitCatalog[UnitIronclad],
		unitCatalog[UnitArtillery],
	}
}

// BranchTerrainMod returns the branch-specific defense modifier a unit gets
// when defending on the given terrain.
func BranchTerrainMod(b Branch, t Terrain) float64 {
	switch b {
	case BranchInfantry:
		if t == TerrainForest || t == TerrainHills {
			return 0.10
		}
	case BranchCavalry:
		if t == TerrainForest || t == TerrainMarsh {
			return -0.10
		}
	case BranchArmor:
		if t == TerrainMountain || t == TerrainMarsh {
			return -0.20
		}
		if t == TerrainPlains {
			return 0.10
		}
	case BranchArtillery:
		if t == TerrainHills {
			return 0.10
		}
	}
	return 0
}
