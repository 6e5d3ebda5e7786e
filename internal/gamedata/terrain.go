// Package gamedata holds the immutable reference catalogs: terrain, unit
// types, buildings, factions, doctrines, and diplomatic actions. Catalogs are
// validated once at startup; unknown ids are a fatal configuration error, not
// a runtime fallback.
package gamedata

// Terrain types for hex tiles.
type Terrain uint8

const (
	TerrainPlains    Terrain = iota // Open farmland, capital-worthy
	TerrainForest                   // Timber cover, slow going
	TerrainHills                    // Defensible high ground
	TerrainMountain                 // Iron-rich, hard to cross
	TerrainMarsh                    // Wet lowland, poor footing
	TerrainWasteland                // Scavenge-rich ruin belt at the map edge
)

// AllTerrains lists every terrain type in catalog order.
var AllTerrains = [6]Terrain{
	TerrainPlains, TerrainForest, TerrainHills,
	TerrainMountain, TerrainMarsh, TerrainWasteland,
}

// Yield is a per-turn resource tuple produced by a hex or building.
type Yield struct {
	Gold      int `json:"gold"`
	Iron      int `json:"iron"`
	Grain     int `json:"grain"`
	Influence int `json:"influence"`
}

// Add returns the component-wise sum of two yields.
func (y Yield) Add(o Yield) Yield {
	return Yield{
		Gold:      y.Gold + o.Gold,
		Iron:      y.Iron + o.Iron,
		Grain:     y.Grain + o.Grain,
		Influence: y.Influence + o.Influence,
	}
}

// TerrainDef describes one terrain type's movement, combat, and economic
// characteristics plus its map-generation weighting.
type TerrainDef struct {
	Name        string  `json:"name"`
	MoveCost    int     `json:"move_cost"`    // Movement points per step into this hex
	DefenseMod  float64 `json:"defense_mod"`  // Defender effective-defense multiplier bonus
	Yields      Yield   `json:"yields"`       // Per-turn yield when owned
	CapitalSite bool    `json:"capital_site"` // Eligible to host a faction capital
	GenWeight   float64 `json:"gen_weight"`   // Base map-generation weight
	EdgeBias    float64 `json:"edge_bias"`    // Added weight per unit of normalized distance-from-center
}

var terrainCatalog = map[Terrain]TerrainDef{
	TerrainPlains: {
		Name:        "Plains",
		MoveCost:    1,
		DefenseMod:  0,
		Yields:      Yield{Gold: 2, Grain: 3},
		CapitalSite: true,
		GenWeight:   0.34,
		EdgeBias:    -0.10,
	},
	TerrainForest: {
		Name:       "Forest",
		MoveCost:   2,
		DefenseMod: 0.15,
		Yields:     Yield{Gold: 1, Iron: 1, Grain: 1},
		GenWeight:  0.22,
	},
	TerrainHills: {
		Name:       "Hills",
		MoveCost:   2,
		DefenseMod: 0.25,
		Yields:     Yield{Gold: 2, Iron: 2},
		GenWeight:  0.16,
		EdgeBias:   0.04,
	},
	TerrainMountain: {
		Name:       "Mountain",
		MoveCost:   3,
		DefenseMod: 0.40,
		Yields:     Yield{Gold: 1, Iron: 3},
		GenWeight:  0.08,
		EdgeBias:   0.12,
	},
	TerrainMarsh: {
		Name:       "Marsh",
		MoveCost:   3,
		DefenseMod: -0.10,
		Yields:     Yield{Grain: 1},
		GenWeight:  0.12,
	},
	TerrainWasteland: {
		Name:       "Wasteland",
		MoveCost:   2,
		DefenseMod: 0,
		Yields:     Yield{Gold: 3, Iron: 1},
		GenWeight:  0.08,
		EdgeBias:   0.14, // Ruin belt thickens toward the rim, thins at the core
	},
}

// TerrainInfo returns the catalog entry for a terrain type. Panics on an
// unknown type; the catalog is closed and validated at startup.
func TerrainInfo(t Terrain) TerrainDef {
	def, ok := terrainCatalog[t]
	if !ok {
		panic("gamedata: unknown terrain type")
	}
	return def
}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	if def, ok := terrainCatalog[t]; ok {
		return def.Name
	}
	return "Unknown"
}
