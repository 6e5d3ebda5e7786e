package engine

import (
	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
)

// SelectHex sets the transient selection. If a friendly unit of the acting
// faction stands on the hex, its legal move and attack sets are computed
// against the current phase; selecting anything else just records the hex.
func (g *Game) SelectHex(f gamedata.FactionID, coord hexmath.HexCoord) Result {
	if g.Over {
		return rejected(ReasonGameOver)
	}
	if f != g.ActiveFaction() {
		return rejected(ReasonNotYourTurn)
	}
	if g.Map.Get(coord) == nil {
		return rejected(ReasonUnknownHex)
	}

	sel := &Selection{Hex: coord}
	if u := g.UnitAt(coord); u != nil && u.Faction == f {
		sel.UnitID = u.ID
		if g.Phase == PhaseMovement && !u.MovedThisTurn {
			sel.LegalMoves = g.legalMoves(u)
		}
		if g.Phase == PhaseCombat && !u.AttackedThisTurn {
			sel.LegalAttacks = g.legalAttacks(u)
		}
	}
	g.Selection = sel
	return accepted()
}

// legalMoves runs a uniform-cost search from the unit's position over its
// movement budget. Hexes holding any unit are impassable and cannot be
// entered; terrain sets the per-hex entry cost.
func (g *Game) legalMoves(u *Unit) map[hexmath.HexCoord]int {
	def, ok := gamedata.UnitType(u.TypeID)
	if !ok {
		return nil
	}
	budget := def.Movement

	best := map[hexmath.HexCoord]int{u.Pos: 0}
	frontier := []hexmath.HexCoord{u.Pos}
	for len(frontier) > 0 {
		// Pop the cheapest frontier entry; budgets are tiny so a linear scan
		// beats a heap here.
		minIdx := 0
		for i, c := range frontier {
			if best[c] < best[frontier[minIdx]] {
				minIdx = i
			}
		}
		cur := frontier[minIdx]
		frontier = append(frontier[:minIdx], frontier[minIdx+1:]...)

		for _, nc := range cur.Neighbors() {
			hex := g.Map.Get(nc)
			if hex == nil {
				continue
			}
			if g.UnitAt(nc) != nil {
				continue
			}
			cost := best[cur] + gamedata.TerrainInfo(hex.Terrain).MoveCost
			if cost > budget {
				continue
			}
			if prev, seen := best[nc]; seen && prev <= cost {
				continue
			}
			best[nc] = cost
			frontier = append(frontier, nc)
		}
	}

	delete(best, u.Pos)
	return best
}

// legalAttacks returns the ids of enemy units within the unit's attack range.
// Allied factions cannot be targeted.
func (g *Game) legalAttacks(u *Unit) map[string]bool {
	def, ok := gamedata.UnitType(u.TypeID)
	if !ok {
		return nil
	}
	targets := make(map[string]bool)
	for _, other := range g.Units {
		if other.Faction == u.Faction {
			continue
		}
		if g.RelationBetween(u.Faction, other.Faction) == gamedata.RelationAllied {
			continue
		}
		if hexmath.Distance(u.Pos, other.Pos) <= def.Range {
			targets[other.ID] = true
		}
	}
	return targets
}
