package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
	"github.com/talgya/ironmarch/internal/mapgen"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(mapgen.GenConfig{Radius: 4, Seed: 7}, gamedata.FactionConcord)
	require.NoError(t, err)
	return g
}

// placeUnit drops a unit on a hex forced to plains, bypassing training.
func placeUnit(t *testing.T, g *Game, typeID gamedata.UnitTypeID, f gamedata.FactionID, coord hexmath.HexCoord) *Unit {
	t.Helper()
	hex := g.Map.Get(coord)
	require.NotNil(t, hex)
	require.Nil(t, g.UnitAt(coord), "test hex %s must be free", coord.HexID())
	hex.Terrain = gamedata.TerrainPlains
	return g.spawnUnit(typeID, f, coord)
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t)

	assert.Equal(t, 1, g.Turn)
	assert.Equal(t, PhaseProduction, g.Phase)
	assert.Len(t, g.Factions, 4)
	assert.Len(t, g.TurnOrder, 4)
	assert.Equal(t, gamedata.FactionConcord, g.ActiveFaction())

	for _, def := range gamedata.AllFactions() {
		fs := g.Factions[def.ID]
		assert.Equal(t, startingResources, fs.Resources)
		assert.False(t, fs.Eliminated)
		for other, rel := range fs.Relations {
			assert.Equal(t, gamedata.RelationNeutral, rel,
				"%s vs %s", def.Name, gamedata.FactionName(other))
		}

		capital := g.Map.CapitalOf(def.ID)
		require.NotNil(t, capital)
		garrison := g.UnitAt(capital.Coord)
		require.NotNil(t, garrison, "%s capital garrison", def.Name)
		assert.Equal(t, gamedata.UnitMilitia, garrison.TypeID)
	}
}

func TestNewGameRejectsUnknownFaction(t *testing.T) {
	_, err := NewGame(mapgen.DefaultGenConfig(), gamedata.FactionNone)
	assert.Error(t, err)
}

func TestOwnedHexesVisible(t *testing.T) {
	g := newTestGame(t)

	for _, def := range gamedata.AllFactions() {
		for _, hex := range g.Map.OwnedBy(def.ID) {
			assert.True(t, hex.Visible[def.ID], "owned hex %s", hex.Coord.HexID())
			assert.True(t, hex.Explored[def.ID])
		}
	}
}

func TestExploredIsSticky(t *testing.T) {
	g := newTestGame(t)

	// Strip the starting garrison so only the test unit provides sight.
	for _, su := range g.UnitsOf(gamedata.FactionConcord) {
		g.removeUnit(su.ID)
	}
	u := placeUnit(t, g, gamedata.UnitMilitia, gamedata.FactionConcord, hexmath.HexCoord{Q: 0, R: 0})
	g.RefreshVisibility()
	target := hexmath.HexCoord{Q: 0, R: -1}
	require.True(t, g.Map.Get(target).Visible[gamedata.FactionConcord])

	// March the unit away; the hex drops out of sight but stays explored.
	u.Pos = hexmath.HexCoord{Q: 0, R: 4}
	g.RefreshVisibility()
	assert.False(t, g.Map.Get(target).Visible[gamedata.FactionConcord])
	assert.True(t, g.Map.Get(target).Explored[gamedata.FactionConcord])
}

func TestTrainingCompletesAfterTrainTime(t *testing.T) {
	g := newTestGame(t)
	capital := g.Map.CapitalOf(gamedata.FactionConcord)
	before := len(g.Units)

	res := g.StartTraining(gamedata.FactionConcord, capital.Coord, gamedata.UnitMilitia)
	require.True(t, res.OK, res.Reason)

	def, _ := gamedata.UnitType(gamedata.UnitMilitia)
	fs := g.Factions[gamedata.FactionConcord]
	assert.Equal(t, startingResources.Gold-def.Cost.Gold, fs.Resources.Gold)

	g.EndTurn() // militia trains in one turn
	assert.Len(t, g.Units, before+1)
	assert.Empty(t, g.TrainQueue)

	for _, u := range g.Units {
		assert.False(t, u.MovedThisTurn, "flags reset at end of turn")
		assert.False(t, u.AttackedThisTurn)
	}
}

func TestTrainingQueueCap(t *testing.T) {
	g := newTestGame(t)
	capital := g.Map.CapitalOf(gamedata.FactionConcord)

	for i := 0; i < TrainQueueCap; i++ {
		res := g.StartTraining(gamedata.FactionConcord, capital.Coord, gamedata.UnitMilitia)
		require.True(t, res.OK, "order %d: %s", i, res.Reason)
	}
	res := g.StartTraining(gamedata.FactionConcord, capital.Coord, gamedata.UnitMilitia)
	assert.False(t, res.OK)
	assert.Equal(t, ReasonQueueFull, res.Reason)
}

func TestTrainingRequiresBuilding(t *testing.T) {
	g := newTestGame(t)
	capital := g.Map.CapitalOf(gamedata.FactionConcord)
	g.Factions[gamedata.FactionConcord].Resources = gamedata.Yield{Gold: 1000, Iron: 1000, Grain: 1000}

	res := g.StartTraining(gamedata.FactionConcord, capital.Coord, gamedata.UnitIronclad)
	assert.False(t, res.OK, "ironclads need a fortress")

	capital.Buildings = append(capital.Buildings, gamedata.BuildingFortress)
	res = g.StartTraining(gamedata.FactionConcord, capital.Coord, gamedata.UnitIronclad)
	assert.True(t, res.OK, res.Reason)
}

func TestAcademyHalvesTrainTime(t *testing.T) {
	g := newTestGame(t)
	capital := g.Map.CapitalOf(gamedata.FactionConcord)
	capital.Buildings = append(capital.Buildings, gamedata.BuildingAcademy)

	res := g.StartTraining(gamedata.FactionConcord, capital.Coord, gamedata.UnitOutriders)
	require.True(t, res.OK, res.Reason)

	// Outriders take 2 turns; the academy rounds 2*0.5 up to 1.
	require.Len(t, g.TrainQueue, 1)
	assert.Equal(t, 1, g.TrainQueue[0].TurnsLeft)
}

func TestCancelTrainingRefundsHalf(t *testing.T) {
	g := newTestGame(t)
	capital := g.Map.CapitalOf(gamedata.FactionConcord)

	res := g.StartTraining(gamedata.FactionConcord, capital.Coord, gamedata.UnitMilitia)
	require.True(t, res.OK, res.Reason)
	require.Len(t, g.TrainQueue, 1)

	orderID := g.TrainQueue[0].ID
	res = g.CancelTraining(gamedata.FactionConcord, orderID)
	require.True(t, res.OK, res.Reason)
	assert.Empty(t, g.TrainQueue)

	// Cost 40/10/20, refund floors to 20/5/10.
	fs := g.Factions[gamedata.FactionConcord]
	assert.Equal(t, startingResources.Gold-40+20, fs.Resources.Gold)
	assert.Equal(t, startingResources.Iron-10+5, fs.Resources.Iron)
	assert.Equal(t, startingResources.Grain-20+10, fs.Resources.Grain)

	res = g.CancelTraining(gamedata.FactionConcord, orderID)
	assert.False(t, res.OK, "double cancel must fail")
}

func TestBuildingCompletes(t *testing.T) {
	g := newTestGame(t)
	capital := g.Map.CapitalOf(gamedata.FactionConcord)

	res := g.StartBuilding(gamedata.FactionConcord, capital.Coord, gamedata.BuildingFarm)
	require.True(t, res.OK, res.Reason)

	res = g.StartBuilding(gamedata.FactionConcord, capital.Coord, gamedata.BuildingFarm)
	assert.False(t, res.OK, "no duplicate orders for the same building")

	g.EndTurn() // farm takes 2 turns
	assert.False(t, capital.HasBuilding(gamedata.BuildingFarm))
	g.EndTurn()
	assert.True(t, capital.HasBuilding(gamedata.BuildingFarm))
	assert.Empty(t, g.BuildQueue)
}

func TestStartBuildingGates(t *testing.T) {
	g := newTestGame(t)
	capital := g.Map.CapitalOf(gamedata.FactionConcord)

	res := g.StartBuilding(gamedata.FactionRustborn, capital.Coord, gamedata.BuildingFarm)
	assert.Equal(t, ReasonNotYourTurn, res.Reason)

	g.Phase = PhaseMovement
	res = g.StartBuilding(gamedata.FactionConcord, capital.Coord, gamedata.BuildingFarm)
	assert.Equal(t, ReasonWrongPhase, res.Reason)

	g.Phase = PhaseProduction
	g.Factions[gamedata.FactionConcord].Resources = gamedata.Yield{}
	res = g.StartBuilding(gamedata.FactionConcord, capital.Coord, gamedata.BuildingFarm)
	assert.Equal(t, ReasonUnaffordable, res.Reason)
}

func TestMovement(t *testing.T) {
	g := newTestGame(t)
	g.Phase = PhaseMovement

	start := hexmath.HexCoord{Q: 0, R: 0}
	dest := hexmath.HexCoord{Q: 0, R: -1}
	u := placeUnit(t, g, gamedata.UnitMilitia, gamedata.FactionConcord, start)
	g.Map.Get(dest).Terrain = gamedata.TerrainPlains

	res := g.SelectHex(gamedata.FactionConcord, start)
	require.True(t, res.OK, res.Reason)
	require.NotNil(t, g.Selection)
	assert.Equal(t, u.ID, g.Selection.UnitID)
	assert.Equal(t, 1, g.Selection.LegalMoves[dest], "plains neighbor costs one point")

	res = g.MoveUnit(gamedata.FactionConcord, u.ID, dest)
	require.True(t, res.OK, res.Reason)
	assert.Equal(t, dest, u.Pos)
	assert.True(t, u.MovedThisTurn)
	assert.Equal(t, gamedata.FactionConcord, g.Map.Get(dest).Owner,
		"entering unclaimed ground captures it")

	g.SelectHex(gamedata.FactionConcord, dest)
	res = g.MoveUnit(gamedata.FactionConcord, u.ID, start)
	assert.Equal(t, ReasonAlreadyActed, res.Reason)
}

func TestMovementBlockedByUnits(t *testing.T) {
	g := newTestGame(t)
	g.Phase = PhaseMovement

	start := hexmath.HexCoord{Q: 0, R: 0}
	blockedHex := hexmath.HexCoord{Q: 0, R: -1}
	u := placeUnit(t, g, gamedata.UnitMilitia, gamedata.FactionConcord, start)
	placeUnit(t, g, gamedata.UnitMilitia, gamedata.FactionRustborn, blockedHex)

	require.True(t, g.SelectHex(gamedata.FactionConcord, start).OK)
	_, legal := g.Selection.LegalMoves[blockedHex]
	assert.False(t, legal, "occupied hexes cannot be entered")

	res := g.MoveUnit(gamedata.FactionConcord, u.ID, blockedHex)
	assert.Equal(t, ReasonIllegalTarget, res.Reason)
}

func TestMovementRespectsTerrainCost(t *testing.T) {
	g := newTestGame(t)
	g.Phase = PhaseMovement

	start := hexmath.HexCoord{Q: 0, R: 0}
	mountain := hexmath.HexCoord{Q: 0, R: -1}
	placeUnit(t, g, gamedata.UnitMilitia, gamedata.FactionConcord, start)
	g.Map.Get(mountain).Terrain = gamedata.TerrainMountain

	require.True(t, g.SelectHex(gamedata.FactionConcord, start).OK)
	_, legal := g.Selection.LegalMoves[mountain]
	assert.False(t, legal, "mountains cost 3, militia has 2 movement")
}

func TestCombatFlow(t *testing.T) {
	g := newTestGame(t)
	g.Phase = PhaseCombat

	attPos := hexmath.HexCoord{Q: 0, R: 0}
	defPos := hexmath.HexCoord{Q: 0, R: -1}
	attacker := placeUnit(t, g, gamedata.UnitMilitia, gamedata.FactionConcord, attPos)
	defender := placeUnit(t, g, gamedata.UnitMilitia, gamedata.FactionRustborn, defPos)

	require.True(t, g.SelectHex(gamedata.FactionConcord, attPos).OK)
	assert.True(t, g.Selection.LegalAttacks[defender.ID])

	res := g.InitiateAttack(gamedata.FactionConcord, attacker.ID, defender.ID)
	require.True(t, res.OK, res.Reason)
	require.NotNil(t, g.Pending)
	assert.Greater(t, g.Pending.Preview.WinProbability, 0.0)

	// Declared but unresolved combat changes nothing.
	assert.Equal(t, 100.0, attacker.Health)
	assert.Equal(t, 100.0, defender.Health)

	res = g.ResolveCombat(gamedata.FactionConcord)
	require.True(t, res.OK, res.Reason)
	assert.Nil(t, g.Pending)
	assert.True(t, attacker.AttackedThisTurn)
	assert.Less(t, attacker.Health, 100.0)
	assert.Greater(t, attacker.XP, 0)

	res = g.ResolveCombat(gamedata.FactionConcord)
	assert.Equal(t, ReasonNoPending, res.Reason)
}

func TestCancelCombat(t *testing.T) {
	g := newTestGame(t)
	g.Phase = PhaseCombat

	attacker := placeUnit(t, g, gamedata.UnitMilitia, gamedata.FactionConcord, hexmath.HexCoord{Q: 0, R: 0})
	defender := placeUnit(t, g, gamedata.UnitMilitia, gamedata.FactionRustborn, hexmath.HexCoord{Q: 0, R: -1})

	require.True(t, g.SelectHex(gamedata.FactionConcord, attacker.Pos).OK)
	require.True(t, g.InitiateAttack(gamedata.FactionConcord, attacker.ID, defender.ID).OK)

	res := g.CancelCombat(gamedata.FactionConcord)
	require.True(t, res.OK)
	assert.Nil(t, g.Pending)
	assert.False(t, attacker.AttackedThisTurn, "a withdrawn attack is not consumed")
}

func TestAlliedFactionsCannotAttack(t *testing.T) {
	g := newTestGame(t)
	g.Phase = PhaseCombat
	g.setRelation(gamedata.FactionConcord, gamedata.FactionRustborn, gamedata.RelationAllied)

	attacker := placeUnit(t, g, gamedata.UnitMilitia, gamedata.FactionConcord, hexmath.HexCoord{Q: 0, R: 0})
	defender := placeUnit(t, g, gamedata.UnitMilitia, gamedata.FactionRustborn, hexmath.HexCoord{Q: 0, R: -1})

	require.True(t, g.SelectHex(gamedata.FactionConcord, attacker.Pos).OK)
	assert.Empty(t, g.Selection.LegalAttacks)

	res := g.InitiateAttack(gamedata.FactionConcord, attacker.ID, defender.ID)
	assert.Equal(t, ReasonIllegalTarget, res.Reason)
}

func TestDiplomacy(t *testing.T) {
	g := newTestGame(t)
	g.Phase = PhaseDiplomacy

	t.Run("denounce steps relations down", func(t *testing.T) {
		res := g.PerformDiplomaticAction(gamedata.FactionConcord, gamedata.FactionRustborn, gamedata.DiplomacyDenounce)
		require.True(t, res.OK, res.Reason)
		assert.Equal(t, gamedata.RelationHostile,
			g.RelationBetween(gamedata.FactionConcord, gamedata.FactionRustborn))
		assert.Equal(t, gamedata.RelationHostile,
			g.RelationBetween(gamedata.FactionRustborn, gamedata.FactionConcord),
			"relations are mutual")
	})

	t.Run("declare war is terminal", func(t *testing.T) {
		res := g.PerformDiplomaticAction(gamedata.FactionConcord, gamedata.FactionRustborn, gamedata.DiplomacyDeclareWar)
		require.True(t, res.OK, res.Reason)
		assert.Equal(t, gamedata.RelationWar,
			g.RelationBetween(gamedata.FactionConcord, gamedata.FactionRustborn))
	})

	t.Run("alliance gated on cordial standing", func(t *testing.T) {
		res := g.PerformDiplomaticAction(gamedata.FactionConcord, gamedata.FactionMeridian, gamedata.DiplomacyProposeAlliance)
		assert.False(t, res.OK)
	})

	t.Run("wrong phase rejected", func(t *testing.T) {
		g.Phase = PhaseProduction
		res := g.PerformDiplomaticAction(gamedata.FactionConcord, gamedata.FactionMeridian, gamedata.DiplomacyDenounce)
		assert.Equal(t, ReasonWrongPhase, res.Reason)
	})
}

func TestPhaseCycle(t *testing.T) {
	g := newTestGame(t)

	wantPhases := []Phase{PhaseDiplomacy, PhaseMovement, PhaseCombat}
	for _, want := range wantPhases {
		require.True(t, g.AdvancePhase().OK)
		assert.Equal(t, want, g.Phase)
		assert.Equal(t, gamedata.FactionConcord, g.ActiveFaction())
	}

	require.True(t, g.AdvancePhase().OK)
	assert.Equal(t, PhaseProduction, g.Phase)
	assert.Equal(t, gamedata.FactionRustborn, g.ActiveFaction())

	// Three more factions times four phases rolls the turn over.
	for i := 0; i < 12; i++ {
		require.True(t, g.AdvancePhase().OK)
	}
	assert.Equal(t, 2, g.Turn)
	assert.Equal(t, gamedata.FactionConcord, g.ActiveFaction())
}

func TestIncome(t *testing.T) {
	g := newTestGame(t)

	// Strip Concord's units so upkeep is zero; it owns only its plains capital.
	for _, u := range g.UnitsOf(gamedata.FactionConcord) {
		g.removeUnit(u.ID)
	}
	fs := g.Factions[gamedata.FactionConcord]
	goldBefore, grainBefore := fs.Resources.Gold, fs.Resources.Grain

	g.collectIncome()

	// Plains yields 2 gold and 3 grain; Concord's production passive is +5%.
	assert.Equal(t, goldBefore+2, fs.Resources.Gold)
	assert.Equal(t, grainBefore+3, fs.Resources.Grain)
}

func TestUpkeepClampsAtZero(t *testing.T) {
	g := newTestGame(t)
	fs := g.Factions[gamedata.FactionConcord]
	fs.Resources.Gold = 0

	g.collectIncome()
	assert.GreaterOrEqual(t, fs.Resources.Gold, 0, "upkeep never drives gold negative")
}

func TestDominationVictory(t *testing.T) {
	g := newTestGame(t)
	for _, hex := range g.Map.Hexes {
		hex.Owner = gamedata.FactionRustborn
	}

	g.evaluateVictory()
	assert.True(t, g.Over)
	assert.Equal(t, gamedata.FactionRustborn, g.Winner)
	assert.Equal(t, "domination", g.VictoryKind)
}

func TestEconomicVictory(t *testing.T) {
	g := newTestGame(t)
	fs := g.Factions[gamedata.FactionMeridian]
	fs.Resources.Gold = EconomicGold

	need := int(float64(g.Map.HexCount())*EconomicTerritory) + 1
	owned := 0
	for _, hex := range g.Map.Hexes {
		if owned >= need {
			break
		}
		hex.Owner = gamedata.FactionMeridian
		owned++
	}

	g.evaluateVictory()
	assert.True(t, g.Over)
	assert.Equal(t, gamedata.FactionMeridian, g.Winner)
	assert.Equal(t, "economic", g.VictoryKind)
}

func TestEliminationVictory(t *testing.T) {
	g := newTestGame(t)

	// Thornwall takes every rival capital.
	for _, def := range gamedata.AllFactions() {
		if def.ID == gamedata.FactionThornwal {
			continue
		}
		g.Map.CapitalOf(def.ID).Owner = gamedata.FactionThornwal
	}

	g.updateEliminations()
	g.evaluateVictory()

	assert.True(t, g.Over)
	assert.Equal(t, gamedata.FactionThornwal, g.Winner)
	assert.Equal(t, "elimination", g.VictoryKind)
	assert.Empty(t, g.UnitsOf(gamedata.FactionConcord), "fallen factions are disbanded")
}

func TestActionsRejectedAfterGameOver(t *testing.T) {
	g := newTestGame(t)
	g.Over = true

	capital := g.Map.CapitalOf(gamedata.FactionConcord)
	assert.Equal(t, ReasonGameOver, g.StartTraining(gamedata.FactionConcord, capital.Coord, gamedata.UnitMilitia).Reason)
	assert.Equal(t, ReasonGameOver, g.AdvancePhase().Reason)
	assert.Equal(t, ReasonGameOver, g.EndTurn().Reason)
}
