package engine

import (
	"fmt"

	"github.com/talgya/ironmarch/internal/combat"
	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
)

// InitiateAttack declares an attack and computes its preview. Nothing mutates
// until ResolveCombat; CancelCombat withdraws the declaration. The defender
// must be in the attacker's current legal attack set.
func (g *Game) InitiateAttack(f gamedata.FactionID, attackerID, defenderID string) Result {
	if g.Over {
		return rejected(ReasonGameOver)
	}
	if g.Phase != PhaseCombat {
		return rejected(ReasonWrongPhase)
	}
	if f != g.ActiveFaction() {
		return rejected(ReasonNotYourTurn)
	}
	attacker, ok := g.Units[attackerID]
	if !ok {
		return rejected(ReasonUnknownUnit)
	}
	if attacker.Faction != f {
		return rejected("unit belongs to another faction")
	}
	if attacker.AttackedThisTurn {
		return rejected(ReasonAlreadyActed)
	}
	defender, ok := g.Units[defenderID]
	if !ok {
		return rejected(ReasonUnknownUnit)
	}
	if g.Selection == nil || g.Selection.UnitID != attackerID {
		return rejected(ReasonNoSelection)
	}
	if !g.Selection.LegalAttacks[defenderID] {
		return rejected(ReasonIllegalTarget)
	}

	defHex := g.Map.Get(defender.Pos)
	attDef, _ := gamedata.UnitType(attacker.TypeID)
	defDef, _ := gamedata.UnitType(defender.TypeID)

	attSnap := g.combatantFor(attacker, gamedata.DoctrineAssault)
	defSnap := g.combatantFor(defender, gamedata.DoctrineDefensive)
	attSnap.Doctrine = combat.RecommendedDoctrine(attDef, attSnap, defSnap, defHex.Terrain, true)
	defSnap.Doctrine = combat.RecommendedDoctrine(defDef, defSnap, attSnap, defHex.Terrain, false)

	preview := combat.ComputePreview(combat.PreviewInput{
		Attacker:        attSnap,
		Defender:        defSnap,
		Terrain:         defHex.Terrain,
		BuildingDefense: defHex.BuildingDefenseMod(),
	})

	g.Pending = &PendingCombat{
		AttackerID: attackerID,
		DefenderID: defenderID,
		Preview:    preview,
	}
	return accepted()
}

// CancelCombat withdraws a declared attack without consuming the attacker's
// action.
func (g *Game) CancelCombat(f gamedata.FactionID) Result {
	if g.Over {
		return rejected(ReasonGameOver)
	}
	if f != g.ActiveFaction() {
		return rejected(ReasonNotYourTurn)
	}
	if g.Pending == nil {
		return rejected(ReasonNoPending)
	}
	g.Pending = nil
	return accepted()
}

// ResolveCombat rolls variance on the pending attack and applies the outcome:
// damage, destruction, experience, hex capture, and retreat.
func (g *Game) ResolveCombat(f gamedata.FactionID) Result {
	if g.Over {
		return rejected(ReasonGameOver)
	}
	if g.Phase != PhaseCombat {
		return rejected(ReasonWrongPhase)
	}
	if f != g.ActiveFaction() {
		return rejected(ReasonNotYourTurn)
	}
	if g.Pending == nil {
		return rejected(ReasonNoPending)
	}

	pending := g.Pending
	g.Pending = nil
	g.Selection = nil

	attacker, aOK := g.Units[pending.AttackerID]
	defender, dOK := g.Units[pending.DefenderID]
	if !aOK || !dOK {
		return rejected(ReasonUnknownUnit)
	}

	res := combat.Resolve(pending.Preview, g.rng.Float64(), g.rng.Float64())

	attacker.AttackedThisTurn = true
	attacker.Health = res.AttackerHealth
	defender.Health = res.DefenderHealth
	attacker.XP += res.AttackerXP
	defender.XP += res.DefenderXP

	attDef, _ := gamedata.UnitType(attacker.TypeID)
	defDef, _ := gamedata.UnitType(defender.TypeID)
	defenderPos := defender.Pos

	g.EmitEvent("combat", fmt.Sprintf("%s %s attacks %s %s at %s",
		factionLabel(attacker.Faction), attDef.Name,
		factionLabel(defender.Faction), defDef.Name, defenderPos.HexID()))

	if res.DefenderDestroyed {
		g.removeUnit(defender.ID)
		g.EmitEvent("combat", fmt.Sprintf("%s %s is destroyed",
			factionLabel(defender.Faction), defDef.Name))
	} else if res.DefenderRetreat {
		if fallback, ok := g.retreatHex(defender, attacker.Pos); ok {
			defender.Pos = fallback
			g.EmitEvent("combat", fmt.Sprintf("%s %s falls back to %s",
				factionLabel(defender.Faction), defDef.Name, fallback.HexID()))
		}
	}

	if res.AttackerDestroyed {
		g.removeUnit(attacker.ID)
		g.EmitEvent("combat", fmt.Sprintf("%s %s is destroyed",
			factionLabel(attacker.Faction), attDef.Name))
	}

	if res.HexCaptured {
		hex := g.Map.Get(defenderPos)
		prev := hex.Owner
		hex.Owner = attacker.Faction
		// Melee attackers advance into the taken ground.
		if hexmath.Distance(attacker.Pos, defenderPos) == 1 && g.UnitAt(defenderPos) == nil {
			attacker.Pos = defenderPos
		}
		if prev != gamedata.FactionNone && prev != attacker.Faction {
			g.EmitEvent("capture", fmt.Sprintf("%s seizes %s from %s",
				factionLabel(attacker.Faction), defenderPos.HexID(), factionLabel(prev)))
		}
	}

	g.RefreshVisibility()
	g.updateEliminations()
	g.evaluateVictory()
	return accepted()
}

// retreatHex picks where a battered defender falls back to: the free,
// passable neighbor that gains the most distance from the attacker, ties
// broken by fixed direction order.
func (g *Game) retreatHex(defender *Unit, attackerPos hexmath.HexCoord) (hexmath.HexCoord, bool) {
	bestDist := hexmath.Distance(defender.Pos, attackerPos)
	var best hexmath.HexCoord
	found := false
	for _, nc := range defender.Pos.Neighbors() {
		hex := g.Map.Get(nc)
		if hex == nil || g.UnitAt(nc) != nil {
			continue
		}
		if d := hexmath.Distance(nc, attackerPos); d > bestDist {
			bestDist = d
			best = nc
			found = true
		}
	}
	return best, found
}
