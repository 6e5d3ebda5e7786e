package engine

import (
	"fmt"
	"math"

	"github.com/talgya/ironmarch/internal/gamedata"
)

// collectIncome credits every living faction its per-turn yields: terrain plus
// completed buildings across owned hexes, scaled by the faction's production
// passive, minus gold upkeep for its standing units. Pools never go negative;
// upkeep shortfall is clamped rather than carried as debt.
func (g *Game) collectIncome() {
	for f, fs := range g.Factions {
		if fs.Eliminated {
			continue
		}

		var gross gamedata.Yield
		for _, hex := range g.Map.OwnedBy(f) {
			gross = gross.Add(hex.Yields())
		}

		def, _ := gamedata.Faction(f)
		mult := 1 + def.Bonuses.ProductionPct
		gross.Gold = int(math.Floor(float64(gross.Gold) * mult))
		gross.Iron = int(math.Floor(float64(gross.Iron) * mult))
		gross.Grain = int(math.Floor(float64(gross.Grain) * mult))

		upkeep := 0
		for _, u := range g.UnitsOf(f) {
			if udef, ok := gamedata.UnitType(u.TypeID); ok {
				upkeep += udef.Upkeep
			}
		}

		fs.Resources = fs.Resources.Add(gross)
		fs.Resources.Gold -= upkeep
		if fs.Resources.Gold < 0 {
			fs.Resources.Gold = 0
		}

		g.EmitEvent("income", fmt.Sprintf("%s collects %dg %di %df %dinf (upkeep %dg)",
			factionLabel(f), gross.Gold, gross.Iron, gross.Grain, gross.Influence, upkeep))
	}
}
