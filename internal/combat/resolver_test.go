package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/ironmarch/internal/gamedata"
)

func infantryCombatant(id string, attack, defense, health float64) Combatant {
	return Combatant{
		UnitID:   id,
		TypeID:   gamedata.UnitInfantry,
		Branch:   gamedata.BranchInfantry,
		Attack:   attack,
		Defense:  defense,
		Health:   health,
		Doctrine: gamedata.DoctrineAttrition,
	}
}

func TestEffectiveAttack(t *testing.T) {
	base := infantryCombatant("a", 20, 10, 100)

	t.Run("full health baseline", func(t *testing.T) {
		assert.InDelta(t, 20, EffectiveAttack(base), 1e-9)
	})

	t.Run("health scales linearly", func(t *testing.T) {
		wounded := base
		wounded.Health = 50
		assert.InDelta(t, 10, EffectiveAttack(wounded), 1e-9)
	})

	t.Run("veterancy multiplies", func(t *testing.T) {
		vet := base
		vet.XP = 80
		assert.InDelta(t, 25, EffectiveAttack(vet), 1e-9) // 20 * 1.25
	})

	t.Run("doctrine and faction passives stack", func(t *testing.T) {
		buffed := base
		buffed.Doctrine = gamedata.DoctrineAssault // +0.20 attack
		buffed.AttackBonus = 0.10
		assert.InDelta(t, 20*1.20*1.10, EffectiveAttack(buffed), 1e-9)
	})
}

func TestEffectiveDefenseTerrain(t *testing.T) {
	d := infantryCombatant("d", 10, 20, 100)

	plains := EffectiveDefense(d, gamedata.TerrainPlains, 0)
	hills := EffectiveDefense(d, gamedata.TerrainHills, 0)
	fortified := EffectiveDefense(d, gamedata.TerrainHills, 0.50)

	assert.Greater(t, hills, plains, "high ground helps the defender")
	assert.Greater(t, fortified, hills, "fortifications stack on terrain")

	// Infantry gets an extra branch bonus on hills: (1+0.25)(1+0.10).
	attrition, _ := gamedata.DoctrineInfo(gamedata.DoctrineAttrition)
	want := 20 * (1 + attrition.DefenseMod) * 1.25 * 1.10
	assert.InDelta(t, want, hills, 1e-9)
}

func TestPreviewDamageSplit(t *testing.T) {
	in := PreviewInput{
		Attacker: infantryCombatant("a", 20, 10, 100),
		Defender: infantryCombatant("d", 10, 10, 100),
		Terrain:  gamedata.TerrainPlains,
	}
	p := ComputePreview(in)

	assert.InDelta(t, BaseDamagePool, p.AttackerDamage/(1+casualtyMod(in.Attacker.Doctrine))+
		p.DefenderDamage/(1+casualtyMod(in.Defender.Doctrine)), 1e-9,
		"raw damage shares sum to the pool")
	assert.Greater(t, p.DefenderDamage, p.AttackerDamage,
		"the stronger attacker deals more than it takes")
	assert.GreaterOrEqual(t, p.AttackerHealth, 0.0)
	assert.GreaterOrEqual(t, p.DefenderHealth, 0.0)
}

func TestPreviewMonotonicity(t *testing.T) {
	defender := infantryCombatant("d", 10, 12, 100)
	var lastDefenderDamage float64

	for i, attack := range []float64{5, 10, 20, 40} {
		p := ComputePreview(PreviewInput{
			Attacker: infantryCombatant("a", attack, 10, 100),
			Defender: defender,
			Terrain:  gamedata.TerrainPlains,
		})
		if i > 0 {
			assert.Greater(t, p.DefenderDamage, lastDefenderDamage,
				"more attack force means more defender damage")
		}
		lastDefenderDamage = p.DefenderDamage
	}
}

func TestPreviewWinProbabilityClamped(t *testing.T) {
	overwhelming := ComputePreview(PreviewInput{
		Attacker: infantryCombatant("a", 1000, 10, 100),
		Defender: infantryCombatant("d", 1, 1, 100),
		Terrain:  gamedata.TerrainPlains,
	})
	assert.Equal(t, 0.95, overwhelming.WinProbability)

	hopeless := ComputePreview(PreviewInput{
		Attacker: infantryCombatant("a", 1, 1, 100),
		Defender: infantryCombatant("d", 10, 1000, 100),
		Terrain:  gamedata.TerrainPlains,
	})
	assert.GreaterOrEqual(t, hopeless.WinProbability, 0.05)
	assert.Less(t, hopeless.WinProbability, 0.3)
}

func TestFirstStrike(t *testing.T) {
	base := PreviewInput{
		Attacker: infantryCombatant("a", 20, 10, 100),
		Defender: infantryCombatant("d", 10, 10, 100),
		Terrain:  gamedata.TerrainPlains,
	}
	without := ComputePreview(base)

	struck := base
	struck.Attacker.Doctrine = gamedata.DoctrineFlanking
	with := ComputePreview(struck)

	assert.Greater(t, with.DefenderDamage/with.AttackForce, without.DefenderDamage/without.AttackForce,
		"first strike raises defender damage beyond the force shift alone")
}

func TestResolve(t *testing.T) {
	p := ComputePreview(PreviewInput{
		Attacker: infantryCombatant("a", 30, 10, 100),
		Defender: infantryCombatant("d", 5, 5, 30),
		Terrain:  gamedata.TerrainPlains,
	})

	t.Run("health never negative", func(t *testing.T) {
		for _, roll := range []float64{0, 0.25, 0.5, 0.75, 0.999} {
			res := Resolve(p, roll, 0.9)
			assert.GreaterOrEqual(t, res.AttackerHealth, 0.0)
			assert.GreaterOrEqual(t, res.DefenderHealth, 0.0)
		}
	})

	t.Run("variance is anti-correlated", func(t *testing.T) {
		low := Resolve(p, 0.0, 0.9)
		high := Resolve(p, 0.999, 0.9)
		assert.Greater(t, low.AttackerDamage, high.AttackerDamage)
		assert.Less(t, low.DefenderDamage, high.DefenderDamage)
	})

	t.Run("kill awards and capture", func(t *testing.T) {
		res := Resolve(p, 0.999, 0.9) // max defender damage on a 30-health defender
		require.True(t, res.DefenderDestroyed)
		assert.False(t, res.AttackerDestroyed)
		assert.True(t, res.HexCaptured)
		assert.Equal(t, XPKill, res.AttackerXP)
		assert.Equal(t, 0, res.DefenderXP, "destroyed units earn nothing")
	})

	t.Run("survivors earn fight xp", func(t *testing.T) {
		even := ComputePreview(PreviewInput{
			Attacker: infantryCombatant("a", 10, 10, 100),
			Defender: infantryCombatant("d", 10, 10, 100),
			Terrain:  gamedata.TerrainPlains,
		})
		res := Resolve(even, 0.5, 0.9)
		assert.False(t, res.AttackerDestroyed)
		assert.False(t, res.DefenderDestroyed)
		assert.Equal(t, XPFight, res.AttackerXP)
		assert.Equal(t, XPFight, res.DefenderXP)
	})

	t.Run("battered defender retreat is a coin flip", func(t *testing.T) {
		weak := ComputePreview(PreviewInput{
			Attacker: infantryCombatant("a", 30, 10, 100),
			Defender: infantryCombatant("d", 5, 5, 40),
			Terrain:  gamedata.TerrainPlains,
		})
		res := Resolve(weak, 0.5, 0.1)
		if !res.DefenderDestroyed && res.DefenderHealth < RetreatHealthThreshold*100 {
			assert.True(t, res.DefenderRetreat)
		}
		res = Resolve(weak, 0.5, 0.9)
		assert.False(t, res.DefenderRetreat)
	})
}

func TestAvailableDoctrines(t *testing.T) {
	militia, _ := gamedata.UnitType(gamedata.UnitMilitia)
	outriders, _ := gamedata.UnitType(gamedata.UnitOutriders)
	ironclad, _ := gamedata.UnitType(gamedata.UnitIronclad)
	artillery, _ := gamedata.UnitType(gamedata.UnitArtillery)

	assert.ElementsMatch(t,
		[]gamedata.Doctrine{gamedata.DoctrineAssault, gamedata.DoctrineDefensive, gamedata.DoctrineAttrition, gamedata.DoctrineBlitz},
		AvailableDoctrines(militia))
	assert.Contains(t, AvailableDoctrines(outriders), gamedata.DoctrineFlanking)
	assert.Contains(t, AvailableDoctrines(ironclad), gamedata.DoctrineSiege)
	assert.Contains(t, AvailableDoctrines(artillery), gamedata.DoctrineSiege)
	assert.NotContains(t, AvailableDoctrines(artillery), gamedata.DoctrineBlitz,
		"artillery is too slow for blitz")
}
