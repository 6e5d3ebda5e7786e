package engine

import (
	"fmt"

	"github.com/talgya/ironmarch/internal/gamedata"
)

// Victory thresholds.
const (
	DominationTerritory = 0.60 // Fraction of all hexes
	EconomicGold        = 5000
	EconomicTerritory   = 0.25
)

// updateEliminations marks factions whose capital has fallen. An eliminated
// faction's remaining units are disbanded and its queues forfeited.
func (g *Game) updateEliminations() {
	for f, fs := range g.Factions {
		if fs.Eliminated {
			continue
		}
		if g.Map.CapitalOf(f) != nil {
			continue
		}
		fs.Eliminated = true
		for _, u := range g.UnitsOf(f) {
			g.removeUnit(u.ID)
		}
		g.dropOrdersOf(f)
		g.EmitEvent("victory", fmt.Sprintf("%s has fallen", factionLabel(f)))
	}
}

// dropOrdersOf forfeits all pending orders of an eliminated faction.
func (g *Game) dropOrdersOf(f gamedata.FactionID) {
	var builds []*BuildOrder
	for _, o := range g.BuildQueue {
		if o.Faction != f {
			builds = append(builds, o)
		}
	}
	g.BuildQueue = builds

	var trains []*TrainOrder
	for _, o := range g.TrainQueue {
		if o.Faction != f {
			trains = append(trains, o)
		}
	}
	g.TrainQueue = trains
}

// evaluateVictory checks the three win conditions in priority order:
// domination, economic, last faction standing. The first satisfied condition
// ends the game.
func (g *Game) evaluateVictory() {
	if g.Over {
		return
	}
	total := g.Map.HexCount()

	for _, def := range gamedata.AllFactions() {
		fs := g.Factions[def.ID]
		if fs.Eliminated {
			continue
		}
		owned := g.Map.OwnedCount(def.ID)
		share := float64(owned) / float64(total)

		if share >= DominationTerritory {
			g.declareWinner(def.ID, "domination")
			return
		}
		if fs.Resources.Gold >= EconomicGold && share >= EconomicTerritory {
			g.declareWinner(def.ID, "economic")
			return
		}
	}

	var survivor gamedata.FactionID
	living := 0
	for f, fs := range g.Factions {
		if !fs.Eliminated {
			living++
			survivor = f
		}
	}
	if living == 1 {
		g.declareWinner(survivor, "elimination")
	}
}

func (g *Game) declareWinner(f gamedata.FactionID, kind string) {
	g.Over = true
	g.Winner = f
	g.VictoryKind = kind
	g.EmitEvent("victory", fmt.Sprintf("%s wins by %s on turn %d",
		factionLabel(f), kind, g.Turn))
}
