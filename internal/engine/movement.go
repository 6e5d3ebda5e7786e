package engine

import (
	"fmt"

	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
)

// MoveUnit moves the selected unit to a destination in its legal move set.
// Entering an undefended hex of a non-allied faction (or unclaimed ground)
// captures it. The unit's move flag is consumed and fog is refreshed.
func (g *Game) MoveUnit(f gamedata.FactionID, unitID string, dest hexmath.HexCoord) Result {
	if g.Over {
		return rejected(ReasonGameOver)
	}
	if g.Phase != PhaseMovement {
		return rejected(ReasonWrongPhase)
	}
	if f != g.ActiveFaction() {
		return rejected(ReasonNotYourTurn)
	}
	u, ok := g.Units[unitID]
	if !ok {
		return rejected(ReasonUnknownUnit)
	}
	if u.Faction != f {
		return rejected("unit belongs to another faction")
	}
	if u.MovedThisTurn {
		return rejected(ReasonAlreadyActed)
	}
	if g.Selection == nil || g.Selection.UnitID != unitID {
		return rejected(ReasonNoSelection)
	}
	if _, legal := g.Selection.LegalMoves[dest]; !legal {
		return rejected(ReasonIllegalTarget)
	}

	u.Pos = dest
	u.MovedThisTurn = true
	g.Selection = nil

	hex := g.Map.Get(dest)
	if hex.Owner != f && g.RelationBetween(f, hex.Owner) != gamedata.RelationAllied {
		prev := hex.Owner
		hex.Owner = f
		if prev == gamedata.FactionNone {
			g.EmitEvent("capture", fmt.Sprintf("%s claims %s",
				factionLabel(f), dest.HexID()))
		} else {
			g.EmitEvent("capture", fmt.Sprintf("%s seizes %s from %s",
				factionLabel(f), dest.HexID(), factionLabel(prev)))
		}
	}

	g.RefreshVisibility()
	return accepted()
}
