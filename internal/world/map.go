package world

import (
	"fmt"

	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
)

// Map holds the complete hex grid.
type Map struct {
	Hexes  map[hexmath.HexCoord]*Hex `json:"-"`
	Radius int                       `json:"radius"`
}

// NewMap creates an empty map with the given radius. A grid of radius R
// contains the 3R²+3R+1 hexes where max(|q|, |r|, |s|) <= R.
func NewMap(radius int) *Map {
	return &Map{
		Hexes:  make(map[hexmath.HexCoord]*Hex, 3*radius*radius+3*radius+1),
		Radius: radius,
	}
}

// Get returns the hex at the given coordinate, or nil if out of bounds.
func (m *Map) Get(coord hexmath.HexCoord) *Hex {
	return m.Hexes[coord]
}

// Set places a hex at its coordinate.
func (m *Map) Set(hex *Hex) {
	m.Hexes[hex.Coord] = hex
}

// InBounds reports whether the coordinate is within the map radius.
func (m *Map) InBounds(coord hexmath.HexCoord) bool {
	return hexmath.Distance(hexmath.HexCoord{}, coord) <= m.Radius
}

// HexCount returns the total number of hexes in the map.
func (m *Map) HexCount() int {
	return len(m.Hexes)
}

// OwnedBy returns all hexes owned by a faction, in no particular order.
func (m *Map) OwnedBy(f gamedata.FactionID) []*Hex {
	var owned []*Hex
	for _, hex := range m.Hexes {
		if hex.Owner == f {
			owned = append(owned, hex)
		}
	}
	return owned
}

// OwnedCount returns how many hexes a faction owns.
func (m *Map) OwnedCount(f gamedata.FactionID) int {
	count := 0
	for _, hex := range m.Hexes {
		if hex.Owner == f {
			count++
		}
	}
	return count
}

// CapitalOf returns the faction's capital hex, or nil if it has none.
func (m *Map) CapitalOf(f gamedata.FactionID) *Hex {
	for _, hex := range m.Hexes {
		if hex.Capital && hex.Owner == f {
			return hex
		}
	}
	return nil
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(radius=%d, hexes=%d)", m.Radius, m.HexCount())
}
