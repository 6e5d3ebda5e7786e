// Package world provides the hex grid the game is played on: tiles with
// terrain, ownership, buildings, and per-faction fog-of-war flags. Hexes are
// created once at map generation and mutated in place; never deleted.
package world

import (
	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
)

// Hex represents a single tile on the game map.
type Hex struct {
	Coord   hexmath.HexCoord `json:"coord"`
	Terrain gamedata.Terrain `json:"terrain"`

	// Owner is the controlling faction; FactionNone for unclaimed ground.
	Owner   gamedata.FactionID `json:"owner"`
	Capital bool               `json:"capital"`

	// Buildings constructed on this hex, in completion order.
	Buildings []gamedata.BuildingID `json:"buildings"`

	// Per-faction fog of war. Visible is recomputed from scratch on every
	// refresh; Explored is sticky and never cleared.
	Visible  map[gamedata.FactionID]bool `json:"visible"`
	Explored map[gamedata.FactionID]bool `json:"explored"`
}

// NewHex creates a tile with empty fog state.
func NewHex(coord hexmath.HexCoord, terrain gamedata.Terrain) *Hex {
	return &Hex{
		Coord:    coord,
		Terrain:  terrain,
		Owner:    gamedata.FactionNone,
		Visible:  make(map[gamedata.FactionID]bool),
		Explored: make(map[gamedata.FactionID]bool),
	}
}

// Yields returns the hex's per-turn income: the terrain's fixed yield plus
// every completed building's yield.
func (h *Hex) Yields() gamedata.Yield {
	total := gamedata.TerrainInfo(h.Terrain).Yields
	for _, id := range h.Buildings {
		if def, ok := gamedata.Building(id); ok {
			total = total.Add(def.Yields)
		}
	}
	return total
}

// HasBuilding reports whether a building of the given type stands here.
func (h *Hex) HasBuilding(id gamedata.BuildingID) bool {
	for _, b := range h.Buildings {
		if b == id {
			return true
		}
	}
	return false
}

// BuildingDefenseMod sums the defense bonuses of all completed buildings.
func (h *Hex) BuildingDefenseMod() float64 {
	total := 0.0
	for _, id := range h.Buildings {
		if def, ok := gamedata.Building(id); ok {
			total += def.DefenseMod
		}
	}
	return total
}

// CanTrain reports whether the hex can host a training queue: capitals always
// can, otherwise a training-site building (academy, fortress) is required.
func (h *Hex) CanTrain() bool {
	if h.Capital {
		return true
	}
	for _, id := range h.Buildings {
		if def, ok := gamedata.Building(id); ok && def.TrainSite {
			return true
		}
	}
	return false
}

// Reveal marks the hex visible and explored for a faction.
func (h *Hex) Reveal(f gamedata.FactionID) {
	h.Visible[f] = true
	h.Explored[f] = true
}
