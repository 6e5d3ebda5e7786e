package gamedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestVeterancyTiers(t *testing.T) {
	tests := []struct {
		xp   int
		want Veterancy
	}{
		{0, VeterancyGreen},
		{29, VeterancyGreen},
		{30, VeterancyTrained},
		{79, VeterancyTrained},
		{80, VeterancyVeteran},
		{160, VeterancyElite},
		{299, VeterancyElite},
		{300, VeterancyLegendary},
		{10000, VeterancyLegendary},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VeterancyForXP(tt.xp), "xp %d", tt.xp)
	}

	prev := 0.0
	for v := VeterancyGreen; v <= VeterancyLegendary; v++ {
		mult := VeterancyMultiplier(v)
		assert.Greater(t, mult, prev, "multipliers strictly increase")
		prev = mult
	}
}

func TestDoctrineAdvantage(t *testing.T) {
	assert.Equal(t, 0.20, DoctrineAdvantage(DoctrineAssault, DoctrineAttrition))
	assert.Equal(t, -0.20, DoctrineAdvantage(DoctrineAssault, DoctrineDefensive))
	assert.Equal(t, 0.0, DoctrineAdvantage(DoctrineAssault, DoctrineAssault))

	// Every strong matchup is mirrored by the victim's weakness.
	for d, def := range doctrineCatalog {
		for _, victim := range def.StrongAgainst {
			assert.Equal(t, 0.20, DoctrineAdvantage(d, victim))
		}
		for _, menace := range def.WeakAgainst {
			assert.Equal(t, -0.20, DoctrineAdvantage(d, menace))
		}
	}
}

func TestRelationSaturation(t *testing.T) {
	assert.Equal(t, RelationAllied, RelationAllied.Improve())
	assert.Equal(t, RelationWar, RelationWar.Worsen())
	assert.Equal(t, RelationCordial, RelationNeutral.Improve())
	assert.Equal(t, RelationHostile, RelationNeutral.Worsen())
}

func TestUnitCatalogGates(t *testing.T) {
	ironclad, ok := UnitType(UnitIronclad)
	require.True(t, ok)
	assert.Equal(t, BuildingFortress, ironclad.RequiresBuilding)

	artillery, ok := UnitType(UnitArtillery)
	require.True(t, ok)
	assert.Equal(t, BuildingAcademy, artillery.RequiresBuilding)
	assert.Equal(t, 2, artillery.Range)
}

func TestTerrainCatalog(t *testing.T) {
	capitalSites := 0
	for _, terrain := range AllTerrains {
		def := TerrainInfo(terrain)
		assert.GreaterOrEqual(t, def.MoveCost, 1, "%s", def.Name)
		if def.CapitalSite {
			capitalSites++
		}
	}
	assert.GreaterOrEqual(t, capitalSites, 1)
}
