package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/ironmarch/internal/engine"
	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/mapgen"
)

func newGame(t *testing.T) *engine.Game {
	t.Helper()
	g, err := engine.NewGame(mapgen.GenConfig{Radius: 5, Seed: 11}, gamedata.FactionConcord)
	require.NoError(t, err)
	return g
}

func TestTakeTurnHandsOffToNextFaction(t *testing.T) {
	g := newGame(t)
	require.Equal(t, gamedata.FactionConcord, g.ActiveFaction())

	TakeTurn(g, gamedata.FactionConcord)

	assert.Equal(t, gamedata.FactionRustborn, g.ActiveFaction())
	assert.Equal(t, engine.PhaseProduction, g.Phase)
	assert.Equal(t, 1, g.Turn)
	assert.Nil(t, g.Pending, "no combat left pending after the turn")
	assert.Nil(t, g.Selection)
}

func TestTakeTurnIgnoresWrongFaction(t *testing.T) {
	g := newGame(t)
	turn, phase := g.Turn, g.Phase

	TakeTurn(g, gamedata.FactionThornwal)

	assert.Equal(t, turn, g.Turn, "out-of-turn factions change nothing")
	assert.Equal(t, phase, g.Phase)
	assert.Equal(t, gamedata.FactionConcord, g.ActiveFaction())
}

func TestFullRoundAdvancesTurn(t *testing.T) {
	g := newGame(t)

	for !g.Over && g.Turn == 1 {
		TakeTurn(g, g.ActiveFaction())
	}
	assert.Equal(t, 2, g.Turn)
}

func TestCampaignStaysConsistent(t *testing.T) {
	g := newGame(t)

	for turn := 1; !g.Over && turn <= 20; turn = g.Turn {
		TakeTurn(g, g.ActiveFaction())
	}

	// Whatever the AIs did, the core bookkeeping must hold.
	for _, def := range gamedata.AllFactions() {
		fs := g.Factions[def.ID]
		assert.GreaterOrEqual(t, fs.Resources.Gold, 0, "%s gold", def.Name)
		assert.GreaterOrEqual(t, fs.Resources.Iron, 0)
		assert.GreaterOrEqual(t, fs.Resources.Grain, 0)
		assert.GreaterOrEqual(t, fs.Resources.Influence, 0)
	}

	seen := make(map[string]bool)
	for _, u := range g.Units {
		assert.Greater(t, u.Health, 0.0, "dead units must be removed")
		assert.NotNil(t, g.Map.Get(u.Pos), "units stay on the map")
		key := u.Pos.HexID()
		assert.False(t, seen[key], "one unit per hex at %s", key)
		seen[key] = true
	}

	for _, hex := range g.Map.Hexes {
		if hex.Owner != gamedata.FactionNone {
			assert.True(t, hex.Visible[hex.Owner], "owners see their territory")
		}
	}
}

func TestAggressorDeclaresWarWhenDominant(t *testing.T) {
	g := newGame(t)
	g.Phase = engine.PhaseDiplomacy

	// Hand the turn to the most aggressive faction and make it overwhelming.
	for g.ActiveFaction() != gamedata.FactionRustborn {
		require.True(t, g.AdvancePhase().OK)
	}
	g.Phase = engine.PhaseDiplomacy
	for _, def := range gamedata.AllFactions() {
		if def.ID == gamedata.FactionRustborn {
			continue
		}
		for _, u := range g.UnitsOf(def.ID) {
			u.Health = 10
		}
	}

	def, ok := gamedata.Faction(gamedata.FactionRustborn)
	require.True(t, ok)
	w := def.Weights
	require.GreaterOrEqual(t, w.Aggression, 0.7, "Rustborn is the aggressor archetype")

	planDiplomacy(g, gamedata.FactionRustborn, w)

	atWar := 0
	for _, def := range gamedata.AllFactions() {
		if def.ID == gamedata.FactionRustborn {
			continue
		}
		if g.RelationBetween(gamedata.FactionRustborn, def.ID) == gamedata.RelationWar {
			atWar++
		}
	}
	assert.GreaterOrEqual(t, atWar, 1, "a dominant aggressor picks a fight")
}
