package engine

import (
	"fmt"

	"github.com/talgya/ironmarch/internal/gamedata"
)

// PerformDiplomaticAction runs one catalog action against a target faction:
// relation-window gate, cost, success roll, then a one-step or terminal
// relation shift applied to both sides. The returned Result's Reason carries
// the outcome message on success too, so callers can surface it.
func (g *Game) PerformDiplomaticAction(f, target gamedata.FactionID, key gamedata.DiplomaticActionKey) Result {
	if g.Over {
		return rejected(ReasonGameOver)
	}
	if g.Phase != PhaseDiplomacy {
		return rejected(ReasonWrongPhase)
	}
	if f != g.ActiveFaction() {
		return rejected(ReasonNotYourTurn)
	}
	if f == target {
		return rejected("cannot target yourself")
	}
	ts, ok := g.Factions[target]
	if !ok {
		return rejected("unknown target faction")
	}
	if ts.Eliminated {
		return rejected("target faction is eliminated")
	}
	def, ok := gamedata.DiplomaticAction(key)
	if !ok {
		return rejected("unknown diplomatic action")
	}

	current := g.RelationBetween(f, target)
	if current < def.MinRelation || current > def.MaxRelation {
		return rejected(fmt.Sprintf("%s not possible at %s standing",
			def.Name, gamedata.RelationName(current)))
	}
	if !g.CanAfford(f, def.Cost) {
		return rejected(ReasonUnaffordable)
	}

	g.spend(f, def.Cost)

	if def.SuccessOdds < 1.0 && g.rng.Float64() >= def.SuccessOdds {
		msg := fmt.Sprintf("%s from %s to %s is rebuffed",
			def.Name, factionLabel(f), factionLabel(target))
		g.EmitEvent("diplomacy", msg)
		return Result{OK: true, Reason: msg}
	}

	var next gamedata.Relation
	if def.Terminal {
		next = def.SetRelation
	} else if def.StepDelta > 0 {
		next = current.Improve()
	} else {
		next = current.Worsen()
	}
	g.setRelation(f, target, next)

	msg := fmt.Sprintf("%s: %s and %s are now %s",
		def.Name, factionLabel(f), factionLabel(target), gamedata.RelationName(next))
	g.EmitEvent("diplomacy", msg)
	return Result{OK: true, Reason: msg}
}
