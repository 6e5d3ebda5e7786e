package engine

import (
	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
)

// RefreshVisibility recomputes fog of war for every faction. Visible is
// rebuilt from scratch: every owned hex and its neighbors, plus the sight
// radius around each living unit. Explored is sticky; hexes seen once stay
// explored forever.
func (g *Game) RefreshVisibility() {
	for _, hex := range g.Map.Hexes {
		hex.Visible = make(map[gamedata.FactionID]bool)
	}

	for f := range g.Factions {
		for _, hex := range g.Map.OwnedBy(f) {
			hex.Reveal(f)
			for _, nc := range hex.Coord.Neighbors() {
				if n := g.Map.Get(nc); n != nil {
					n.Reveal(f)
				}
			}
		}
	}

	for _, u := range g.Units {
		def, ok := gamedata.UnitType(u.TypeID)
		if !ok {
			continue
		}
		for _, c := range hexmath.Spiral(u.Pos, def.Sight) {
			if hex := g.Map.Get(c); hex != nil {
				hex.Reveal(u.Faction)
			}
		}
	}
}

// VisibleTo reports whether a faction can currently see a hex.
func (g *Game) VisibleTo(f gamedata.FactionID, coord hexmath.HexCoord) bool {
	hex := g.Map.Get(coord)
	return hex != nil && hex.Visible[f]
}
