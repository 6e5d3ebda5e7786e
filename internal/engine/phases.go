package engine

import "fmt"

// Phase is one stage of a faction's turn. The sequence is fixed and cyclic:
// each faction runs Production → Diplomacy → Movement → Combat, then control
// passes to the next faction; when the last faction finishes Combat,
// end-of-turn processing runs and the turn counter increments.
type Phase uint8

const (
	PhaseProduction Phase = iota
	PhaseDiplomacy
	PhaseMovement
	PhaseCombat
)

// PhaseName returns a human-readable phase name.
func PhaseName(p Phase) string {
	switch p {
	case PhaseProduction:
		return "Production"
	case PhaseDiplomacy:
		return "Diplomacy"
	case PhaseMovement:
		return "Movement"
	case PhaseCombat:
		return "Combat"
	default:
		return "Unknown"
	}
}

// AdvancePhase moves to the next phase; past the last phase it hands control
// to the next living faction at Production, and after the final faction it
// runs end-of-turn processing. Selection and any pending combat are dropped.
func (g *Game) AdvancePhase() Result {
	if g.Over {
		return rejected(ReasonGameOver)
	}

	g.Selection = nil
	g.Pending = nil

	if g.Phase < PhaseCombat {
		g.Phase++
		g.EmitEvent("phase", fmt.Sprintf("%s enters %s phase",
			factionLabel(g.ActiveFaction()), PhaseName(g.Phase)))
		return accepted()
	}

	// Past the last phase: next faction, or end of turn.
	for next := g.ActiveIdx + 1; next < len(g.TurnOrder); next++ {
		if !g.Factions[g.TurnOrder[next]].Eliminated {
			g.ActiveIdx = next
			g.Phase = PhaseProduction
			g.EmitEvent("phase", fmt.Sprintf("%s begins its turn",
				factionLabel(g.ActiveFaction())))
			return accepted()
		}
	}

	g.processEndOfTurn()
	return accepted()
}

// EndTurn force-skips whatever remains of the current turn: end-of-turn
// processing runs immediately and the next turn starts at the first living
// faction's Production phase.
func (g *Game) EndTurn() Result {
	if g.Over {
		return rejected(ReasonGameOver)
	}
	g.Selection = nil
	g.Pending = nil
	g.processEndOfTurn()
	return accepted()
}

// processEndOfTurn runs the atomic turn rollover, in order: queue timers,
// unit flag reset, income, fog refresh, victory evaluation.
func (g *Game) processEndOfTurn() {
	g.advanceQueues()

	for _, u := range g.Units {
		u.MovedThisTurn = false
		u.AttackedThisTurn = false
	}

	g.collectIncome()
	g.RefreshVisibility()
	g.updateEliminations()
	g.evaluateVictory()

	if g.Over {
		return
	}

	g.Turn++
	g.Phase = PhaseProduction
	g.ActiveIdx = g.firstLivingFaction()
	g.EmitEvent("turn", fmt.Sprintf("Turn %d begins", g.Turn))
}

// firstLivingFaction returns the turn-order index of the first faction still
// in the game.
func (g *Game) firstLivingFaction() int {
	for i, f := range g.TurnOrder {
		if !g.Factions[f].Eliminated {
			return i
		}
	}
	return 0
}
