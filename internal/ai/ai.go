// Package ai drives non-player factions. It issues only the engine's public
// actions, so an AI faction plays by exactly the rules a human does; all
// personality comes from the faction's static weights.
package ai

import (
	"sort"

	"github.com/talgya/ironmarch/internal/engine"
	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
)

// TakeTurn plays one faction's complete turn: production, diplomacy,
// movement, combat, advancing phases as it goes. Returns once the faction's
// Combat phase has been advanced past.
func TakeTurn(g *engine.Game, f gamedata.FactionID) {
	if g.Over || g.ActiveFaction() != f {
		return
	}
	def, ok := gamedata.Faction(f)
	if !ok {
		return
	}
	w := def.Weights

	planProduction(g, f, w)
	g.AdvancePhase()
	if g.Over || g.ActiveFaction() != f {
		return
	}

	planDiplomacy(g, f, w)
	g.AdvancePhase()
	if g.Over || g.ActiveFaction() != f {
		return
	}

	planMovement(g, f, w)
	g.AdvancePhase()
	if g.Over || g.ActiveFaction() != f {
		return
	}

	planCombat(g, f, w)
	g.AdvancePhase()
}

// planProduction picks at most one building and one training order per turn,
// greedily by score. Hexes are visited in sorted id order so the same state
// always produces the same orders.
func planProduction(g *engine.Game, f gamedata.FactionID, w gamedata.AIWeights) {
	hexes := g.Map.OwnedBy(f)
	sort.Slice(hexes, func(i, j int) bool {
		return hexes[i].Coord.HexID() < hexes[j].Coord.HexID()
	})

	bestBuildScore := 0.0
	var bestBuildHex hexmath.HexCoord
	var bestBuild gamedata.BuildingID
	for _, hex := range hexes {
		for _, def := range gamedata.AllBuildings() {
			if hex.HasBuilding(def.ID) {
				continue
			}
			if !g.CanAfford(f, def.Cost) {
				continue
			}
			score := yieldValue(def.Yields)*w.Economy +
				def.DefenseMod*10*w.Aggression -
				yieldValue(def.Cost)/20*(1-w.Economy)
			if score > bestBuildScore {
				bestBuildScore = score
				bestBuildHex = hex.Coord
				bestBuild = def.ID
			}
		}
	}
	if bestBuild != "" {
		g.StartBuilding(f, bestBuildHex, bestBuild)
	}

	bestTrainScore := 0.0
	var bestTrainHex hexmath.HexCoord
	var bestTrain gamedata.UnitTypeID
	for _, hex := range hexes {
		if !hex.CanTrain() {
			continue
		}
		for _, def := range gamedata.AllUnitTypes() {
			if def.RequiresBuilding != "" && !hex.HasBuilding(def.RequiresBuilding) {
				continue
			}
			if !g.CanAfford(f, def.Cost) {
				continue
			}
			cost := yieldValue(def.Cost)
			efficiency := 0.0
			if cost > 0 {
				efficiency = (def.Attack + def.Defense) / cost * 100
			}
			score := (def.Attack+def.Defense)*w.Aggression +
				float64(def.Movement)*w.Expansion*3 +
				efficiency*w.Economy -
				float64(def.TrainTime)*2
			if score > bestTrainScore {
				bestTrainScore = score
				bestTrainHex = hex.Coord
				bestTrain = def.ID
			}
		}
	}
	if bestTrain != "" {
		g.StartTraining(f, bestTrainHex, bestTrain)
	}
}

// planDiplomacy makes at most one move per turn. Diplomatic factions warm
// relations with their strongest rival; aggressive ones declare war on the
// weakest neighbor once they outmuscle it.
func planDiplomacy(g *engine.Game, f gamedata.FactionID, w gamedata.AIWeights) {
	ownStrength := militaryStrength(g, f)

	type rival struct {
		id       gamedata.FactionID
		strength float64
		relation gamedata.Relation
	}
	var rivals []rival
	for _, def := range gamedata.AllFactions() {
		if def.ID == f || g.Factions[def.ID].Eliminated {
			continue
		}
		rivals = append(rivals, rival{
			id:       def.ID,
			strength: militaryStrength(g, def.ID),
			relation: g.RelationBetween(f, def.ID),
		})
	}
	if len(rivals) == 0 {
		return
	}
	sort.Slice(rivals, func(i, j int) bool { return rivals[i].strength > rivals[j].strength })

	if w.Diplomacy >= 0.5 {
		strongest := rivals[0]
		switch {
		case strongest.relation == gamedata.RelationWar:
			g.PerformDiplomaticAction(f, strongest.id, gamedata.DiplomacyOfferTruce)
		case strongest.relation == gamedata.RelationCordial && w.Diplomacy >= 0.7:
			g.PerformDiplomaticAction(f, strongest.id, gamedata.DiplomacyProposeAlliance)
		case strongest.relation < gamedata.RelationCordial:
			g.PerformDiplomaticAction(f, strongest.id, gamedata.DiplomacySendEnvoy)
		}
		return
	}

	if w.Aggression >= 0.7 {
		weakest := rivals[len(rivals)-1]
		if weakest.relation > gamedata.RelationWar && ownStrength > weakest.strength*1.2 {
			g.PerformDiplomaticAction(f, weakest.id, gamedata.DiplomacyDeclareWar)
		}
	}
}

// planMovement moves every unit that has a destination scoring better than
// standing still.
func planMovement(g *engine.Game, f gamedata.FactionID, w gamedata.AIWeights) {
	for _, u := range unitsSorted(g, f) {
		if u.MovedThisTurn {
			continue
		}
		if !g.SelectHex(f, u.Pos).OK || g.Selection == nil {
			continue
		}

		bestScore := 0.0
		var best hexmath.HexCoord
		found := false
		for _, dest := range sortedCoords(g.Selection.LegalMoves) {
			score := moveScore(g, f, w, u, dest)
			if score > bestScore {
				bestScore = score
				best = dest
				found = true
			}
		}
		if found {
			g.MoveUnit(f, u.ID, best)
		}
	}
}

// moveScore values a destination by the ground gained and the enemies it
// closes on, discounted by the risk of straying from friendly territory.
func moveScore(g *engine.Game, f gamedata.FactionID, w gamedata.AIWeights, u *engine.Unit, dest hexmath.HexCoord) float64 {
	hex := g.Map.Get(dest)
	score := 0.0

	switch {
	case hex.Owner == gamedata.FactionNone:
		score += 2.0 * w.Expansion
	case hex.Owner != f && g.RelationBetween(f, hex.Owner) != gamedata.RelationAllied:
		score += 2.5 * w.Aggression
		if hex.Capital {
			score += 5.0 * w.Aggression
		}
	}

	if d, ok := nearestEnemyDistance(g, f, dest); ok {
		score += (1.0 / float64(1+d)) * 4 * w.Aggression
	}

	if capital := g.Map.CapitalOf(f); capital != nil {
		score -= float64(hexmath.Distance(dest, capital.Coord)) * 0.15 * (1 - w.Risk)
	}

	score -= float64(hexmath.Distance(u.Pos, dest)) * 0.1
	return score
}

// planCombat previews every available attack and commits those whose win
// probability clears the faction's risk-scaled threshold.
func planCombat(g *engine.Game, f gamedata.FactionID, w gamedata.AIWeights) {
	threshold := 0.65 - 0.3*w.Risk

	for _, u := range unitsSorted(g, f) {
		if u.AttackedThisTurn {
			continue
		}
		if !g.SelectHex(f, u.Pos).OK || g.Selection == nil {
			continue
		}

		bestScore := 0.0
		bestTarget := ""
		for _, targetID := range sortedKeys(g.Selection.LegalAttacks) {
			if !g.InitiateAttack(f, u.ID, targetID).OK {
				continue
			}
			p := g.Pending.Preview
			score := p.WinProbability * w.Risk
			if p.DefenderDestroyed {
				score += 0.5
			}
			if p.AttackerDestroyed {
				score -= 1.0
			}
			score *= w.Aggression
			g.CancelCombat(f)

			if p.WinProbability >= threshold && score > bestScore {
				bestScore = score
				bestTarget = targetID
			}
		}
		if bestTarget != "" && g.InitiateAttack(f, u.ID, bestTarget).OK {
			g.ResolveCombat(f)
			if g.Over {
				return
			}
		}
	}
}

// militaryStrength sums a faction's effective unit stats as a blunt power
// estimate for diplomacy and targeting.
func militaryStrength(g *engine.Game, f gamedata.FactionID) float64 {
	total := 0.0
	for _, u := range g.UnitsOf(f) {
		if def, ok := gamedata.UnitType(u.TypeID); ok {
			total += (def.Attack + def.Defense) * (u.Health / 100)
		}
	}
	return total
}

// nearestEnemyDistance returns the hex distance to the closest non-allied
// foreign unit.
func nearestEnemyDistance(g *engine.Game, f gamedata.FactionID, from hexmath.HexCoord) (int, bool) {
	best := 0
	found := false
	for _, u := range g.Units {
		if u.Faction == f || g.RelationBetween(f, u.Faction) == gamedata.RelationAllied {
			continue
		}
		d := hexmath.Distance(from, u.Pos)
		if !found || d < best {
			best = d
			found = true
		}
	}
	return best, found
}

// yieldValue flattens a resource tuple into one comparable number. Gold is
// the baseline; iron and influence are scarcer than grain.
func yieldValue(y gamedata.Yield) float64 {
	return float64(y.Gold) + 1.5*float64(y.Iron) + float64(y.Grain) + 2*float64(y.Influence)
}

// unitsSorted returns a faction's units in stable id order so plans are
// deterministic across runs.
func unitsSorted(g *engine.Game, f gamedata.FactionID) []*engine.Unit {
	units := g.UnitsOf(f)
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })
	return units
}

func sortedCoords(m map[hexmath.HexCoord]int) []hexmath.HexCoord {
	coords := make([]hexmath.HexCoord, 0, len(m))
	for c := range m {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool { return coords[i].HexID() < coords[j].HexID() })
	return coords
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
