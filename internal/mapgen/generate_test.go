package mapgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
)

func TestGenerateHexCount(t *testing.T) {
	for _, radius := range []int{1, 3, 7} {
		m := Generate(GenConfig{Radius: radius, Seed: 42})
		assert.Equal(t, 3*radius*radius+3*radius+1, m.HexCount(), "radius %d", radius)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := GenConfig{Radius: 5, Seed: 99}
	a := Generate(cfg)
	b := Generate(cfg)

	require.Equal(t, a.HexCount(), b.HexCount())
	for coord, hexA := range a.Hexes {
		hexB := b.Get(coord)
		require.NotNil(t, hexB)
		assert.Equal(t, hexA.Terrain, hexB.Terrain, "terrain at %s", coord.HexID())
		assert.Equal(t, hexA.Owner, hexB.Owner)
		assert.Equal(t, hexA.Capital, hexB.Capital)
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	a := Generate(GenConfig{Radius: 5, Seed: 1})
	b := Generate(GenConfig{Radius: 5, Seed: 2})

	same := 0
	for coord, hexA := range a.Hexes {
		if hexA.Terrain == b.Get(coord).Terrain {
			same++
		}
	}
	assert.Less(t, same, a.HexCount(), "different seeds should change at least one hex")
}

func TestCapitals(t *testing.T) {
	m := Generate(DefaultGenConfig())
	starts := StartPositions(m.Radius)

	for i, def := range gamedata.AllFactions() {
		hex := m.Get(starts[i])
		require.NotNil(t, hex)
		assert.True(t, hex.Capital)
		assert.Equal(t, def.ID, hex.Owner)
		assert.True(t, gamedata.TerrainInfo(hex.Terrain).CapitalSite,
			"capitals sit on capital-worthy terrain")
		assert.Equal(t, hex, m.CapitalOf(def.ID))
	}
}

func TestStartPositionsDistinct(t *testing.T) {
	for _, radius := range []int{1, 2, 4, 7, 12} {
		starts := StartPositions(radius)
		seen := make(map[hexmath.HexCoord]bool)
		for _, s := range starts {
			assert.False(t, seen[s], "radius %d: duplicate start %s", radius, s.HexID())
			seen[s] = true
			assert.LessOrEqual(t, hexmath.Distance(hexmath.HexCoord{}, s), radius)
		}
	}
}

func TestStartingFog(t *testing.T) {
	m := Generate(DefaultGenConfig())
	starts := StartPositions(m.Radius)

	first := gamedata.AllFactions()[0].ID
	second := gamedata.AllFactions()[1].ID

	capital := m.Get(starts[0])
	assert.True(t, capital.Visible[first])
	assert.True(t, capital.Explored[first])
	assert.False(t, capital.Visible[second], "rival capitals start hidden")

	for _, nc := range capital.Coord.Neighbors() {
		if hex := m.Get(nc); hex != nil {
			assert.True(t, hex.Visible[first])
		}
	}
}
