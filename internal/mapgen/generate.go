// Package mapgen produces the initial hex grid: seeded terrain assignment,
// faction capitals, and starting fog of war. The same seed and radius always
// reproduce the same map.
package mapgen

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
	"github.com/talgya/ironmarch/internal/world"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Radius int   `json:"radius"`
	Seed   int64 `json:"seed"`
}

// DefaultGenConfig returns the standard four-faction map.
func DefaultGenConfig() GenConfig {
	return GenConfig{Radius: 7, Seed: 1}
}

// StartPositions returns the four faction capital coordinates for a map of
// the given radius, spread across alternating compass directions at roughly
// two thirds of the radius.
func StartPositions(radius int) [4]hexmath.HexCoord {
	k := (2 * radius) / 3
	if k < 1 {
		k = 1
	}
	dirs := hexmath.NeighborDirections
	return [4]hexmath.HexCoord{
		dirs[0].Scale(k), // east
		dirs[1].Scale(k), // northeast
		dirs[3].Scale(k), // west
		dirs[4].Scale(k), // southwest
	}
}

// Generate creates the complete starting map. Terrain is drawn from a
// weighted distribution whose weights shift with normalized distance from
// center; the roll for each hex comes from seeded simplex noise evaluated at
// the hex's pixel coordinates, so the result is a pure function of
// (seed, q, r). The origin and each faction start hex are forced to
// capital-worthy terrain.
func Generate(cfg GenConfig) *world.Map {
	noise := opensimplex.NewNormalized(cfg.Seed)
	m := world.NewMap(cfg.Radius)
	origin := hexmath.HexCoord{}
	starts := StartPositions(cfg.Radius)

	for _, coord := range hexmath.Spiral(origin, cfg.Radius) {
		terrain := rollTerrain(noise, coord, cfg.Radius)
		if coord == origin || isStart(starts, coord) {
			terrain = capitalTerrain()
		}
		m.Set(world.NewHex(coord, terrain))
	}

	for i, def := range gamedata.AllFactions() {
		capital := m.Get(starts[i])
		capital.Owner = def.ID
		capital.Capital = true

		// Starting fog: the capital and its immediate ring are known to the
		// owning faction only.
		capital.Reveal(def.ID)
		for _, nc := range capital.Coord.Neighbors() {
			if hex := m.Get(nc); hex != nil {
				hex.Reveal(def.ID)
			}
		}
	}

	return m
}

// rollTerrain picks a terrain type for one hex from the distance-weighted
// distribution.
func rollTerrain(noise opensimplex.Noise, coord hexmath.HexCoord, radius int) gamedata.Terrain {
	// Sample in pixel space so neighboring hexes get decorrelated rolls at a
	// scale the noise can resolve.
	x, y := hexmath.AxialToPixel(coord, 1)
	roll := noise.Eval2(x*0.731, y*0.731)

	dist := float64(hexmath.Distance(hexmath.HexCoord{}, coord)) / math.Max(1, float64(radius))

	total := 0.0
	weights := make([]float64, len(gamedata.AllTerrains))
	for i, t := range gamedata.AllTerrains {
		def := gamedata.TerrainInfo(t)
		w := def.GenWeight + def.EdgeBias*dist
		if w < 0 {
			w = 0
		}
		weights[i] = w
		total += w
	}

	target := roll * total
	acc := 0.0
	for i, t := range gamedata.AllTerrains {
		acc += weights[i]
		if target < acc {
			return t
		}
	}
	return gamedata.AllTerrains[len(gamedata.AllTerrains)-1]
}

// capitalTerrain returns the first capital-worthy terrain in catalog order.
func capitalTerrain() gamedata.Terrain {
	for _, t := range gamedata.AllTerrains {
		if gamedata.TerrainInfo(t).CapitalSite {
			return t
		}
	}
	// Validate() guarantees at least one capital site exists.
	return gamedata.TerrainPlains
}

func isStart(starts [4]hexmath.HexCoord, coord hexmath.HexCoord) bool {
	for _, s := range starts {
		if s == coord {
			return true
		}
	}
	return false
}
