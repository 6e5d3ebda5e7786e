// Package combat adjudicates battles between two units. The resolver is
// pure: it works on snapshots, never touches game state, and takes its
// randomness as explicit arguments so outcomes replay exactly.
package combat

import (
	"math"

	"github.com/talgya/ironmarch/internal/gamedata"
)

// BaseDamagePool is the fixed total damage split between the two sides in
// proportion to the opposing side's force.
const BaseDamagePool = 30.0

// FirstStrikeBonus is the extra share added to the defender's damage when the
// attacker's doctrine strikes first.
const FirstStrikeBonus = 0.15

// RetreatHealthThreshold is the health fraction below which a surviving
// defender may fall back.
const RetreatHealthThreshold = 0.30

// XP awards: destroying the opponent earns the large award, surviving a fight
// the small one. Destroyed units earn nothing.
const (
	XPKill  = 25
	XPFight = 8
)

// Combatant is an immutable snapshot of one side of a battle.
type Combatant struct {
	UnitID   string              `json:"unit_id"`
	Faction  gamedata.FactionID  `json:"faction"`
	TypeID   gamedata.UnitTypeID `json:"type_id"`
	Branch   gamedata.Branch     `json:"branch"`
	Attack   float64             `json:"attack"`
	Defense  float64             `json:"defense"`
	Health   float64             `json:"health"` // 0-100
	XP       int                 `json:"xp"`
	Doctrine gamedata.Doctrine   `json:"doctrine"`

	// Faction passive bonuses, as fractions.
	AttackBonus  float64 `json:"attack_bonus"`
	DefenseBonus float64 `json:"defense_bonus"`
}

// PreviewInput carries everything the resolver needs: both snapshots plus the
// defender's terrain and fortification context.
type PreviewInput struct {
	Attacker        Combatant        `json:"attacker"`
	Defender        Combatant        `json:"defender"`
	Terrain         gamedata.Terrain `json:"terrain"`          // Defender's hex
	BuildingDefense float64          `json:"building_defense"` // Defender's hex building bonus
}

// Preview is the deterministic expected outcome before variance.
type Preview struct {
	Input PreviewInput `json:"input"`

	AttackForce float64 `json:"attack_force"`
	DefendForce float64 `json:"defend_force"`
	Advantage   float64 `json:"advantage"` // Doctrine matchup, ±0.20

	// Expected damage each side takes, before variance.
	AttackerDamage float64 `json:"attacker_damage"`
	DefenderDamage float64 `json:"defender_damage"`

	AttackerHealth    float64 `json:"attacker_health"`
	DefenderHealth    float64 `json:"defender_health"`
	AttackerDestroyed bool    `json:"attacker_destroyed"`
	DefenderDestroyed bool    `json:"defender_destroyed"`

	WinProbability float64 `json:"win_probability"`
}

// Result is the randomized final outcome applied to game state.
type Result struct {
	AttackerID string `json:"attacker_id"`
	DefenderID string `json:"defender_id"`

	AttackerDamage float64 `json:"attacker_damage"`
	DefenderDamage float64 `json:"defender_damage"`

	AttackerHealth    float64 `json:"attacker_health"`
	DefenderHealth    float64 `json:"defender_health"`
	AttackerDestroyed bool    `json:"attacker_destroyed"`
	DefenderDestroyed bool    `json:"defender_destroyed"`

	HexCaptured     bool `json:"hex_captured"`
	DefenderRetreat bool `json:"defender_retreat"`

	AttackerXP int `json:"attacker_xp"`
	DefenderXP int `json:"defender_xp"`
}

// EffectiveAttack computes a combatant's attack force contribution: base
// attack scaled by veterancy, remaining health, doctrine stance, and faction
// passives.
func EffectiveAttack(c Combatant) float64 {
	def, ok := gamedata.DoctrineInfo(c.Doctrine)
	if !ok {
		panic("combat: unknown doctrine")
	}
	vet := gamedata.VeterancyMultiplier(gamedata.VeterancyForXP(c.XP))
	return c.Attack * vet * (c.Health / 100) * (1 + def.AttackMod) * (1 + c.AttackBonus)
}

// EffectiveDefense computes the defender's defense force: the attacker-side
// factors plus terrain, branch-terrain, and fortification multipliers.
func EffectiveDefense(c Combatant, terrain gamedata.Terrain, buildingDefense float64) float64 {
	def, ok := gamedata.DoctrineInfo(c.Doctrine)
	if !ok {
		panic("combat: unknown doctrine")
	}
	vet := gamedata.VeterancyMultiplier(gamedata.VeterancyForXP(c.XP))
	base := c.Defense * vet * (c.Health / 100) * (1 + def.DefenseMod) * (1 + c.DefenseBonus)
	base *= 1 + gamedata.TerrainInfo(terrain).DefenseMod
	base *= 1 + gamedata.BranchTerrainMod(c.Branch, terrain)
	base *= 1 + buildingDefense
	return base
}

// ComputePreview produces the deterministic expected outcome of an attack.
// Damage splits Lanchester-style: each side takes the fixed pool scaled by
// the opposing side's share of total force, then its own doctrine's casualty
// modifier scales what it takes.
func ComputePreview(in PreviewInput) Preview {
	attackForce := EffectiveAttack(in.Attacker)
	defendForce := EffectiveDefense(in.Defender, in.Terrain, in.BuildingDefense)

	advantage := gamedata.DoctrineAdvantage(in.Attacker.Doctrine, in.Defender.Doctrine)
	attackForce *= 1 + advantage

	total := attackForce + defendForce
	if total <= 0 {
		// Two zero-force husks; nobody lands a hit.
		total = 1
	}

	attackerDamage := BaseDamagePool * (defendForce / total)
	defenderDamage := BaseDamagePool * (attackForce / total)

	attackerDamage *= 1 + casualtyMod(in.Attacker.Doctrine)
	defenderDamage *= 1 + casualtyMod(in.Defender.Doctrine)

	if firstStrike(in.Attacker.Doctrine) {
		defenderDamage += defenderDamage * FirstStrikeBonus
	}

	attackerHealth := math.Max(0, in.Attacker.Health-attackerDamage)
	defenderHealth := math.Max(0, in.Defender.Health-defenderDamage)

	winP := 0.5
	if defendForce > 0 {
		winP = 0.5 + (attackForce/defendForce-1)*0.25
	}
	winP = clamp(winP, 0.05, 0.95)

	return Preview{
		Input:             in,
		AttackForce:       attackForce,
		DefendForce:       defendForce,
		Advantage:         advantage,
		AttackerDamage:    attackerDamage,
		DefenderDamage:    defenderDamage,
		AttackerHealth:    attackerHealth,
		DefenderHealth:    defenderHealth,
		AttackerDestroyed: attackerHealth <= 0,
		DefenderDestroyed: defenderHealth <= 0,
		WinProbability:    winP,
	}
}

// Resolve applies randomized variance to a preview and produces the final
// outcome. The single variance roll in [0,1) maps to anti-correlated ±20%
// factors for the two sides; retreatRoll decides the coin-flip when a
// battered defender survives.
func Resolve(p Preview, varianceRoll, retreatRoll float64) Result {
	attackerDamage := p.AttackerDamage * (0.8 + 0.4*(1-varianceRoll))
	defenderDamage := p.DefenderDamage * (0.8 + 0.4*varianceRoll)

	attackerHealth := math.Max(0, p.Input.Attacker.Health-attackerDamage)
	defenderHealth := math.Max(0, p.Input.Defender.Health-defenderDamage)
	attackerDestroyed := attackerHealth <= 0
	defenderDestroyed := defenderHealth <= 0

	captured := defenderDestroyed && !attackerDestroyed

	retreat := false
	if !defenderDestroyed && defenderHealth < RetreatHealthThreshold*100 {
		retreat = retreatRoll < 0.5
	}

	attackerXP, defenderXP := 0, 0
	if !attackerDestroyed {
		attackerXP = XPFight
		if defenderDestroyed {
			attackerXP = XPKill
		}
	}
	if !defenderDestroyed {
		defenderXP = XPFight
		if attackerDestroyed {
			defenderXP = XPKill
		}
	}

	return Result{
		AttackerID:        p.Input.Attacker.UnitID,
		DefenderID:        p.Input.Defender.UnitID,
		AttackerDamage:    attackerDamage,
		DefenderDamage:    defenderDamage,
		AttackerHealth:    attackerHealth,
		DefenderHealth:    defenderHealth,
		AttackerDestroyed: attackerDestroyed,
		DefenderDestroyed: defenderDestroyed,
		HexCaptured:       captured,
		DefenderRetreat:   retreat,
		AttackerXP:        attackerXP,
		DefenderXP:        defenderXP,
	}
}

func casualtyMod(d gamedata.Doctrine) float64 {
	if def, ok := gamedata.DoctrineInfo(d); ok {
		return def.CasualtyMod
	}
	return 0
}

func firstStrike(d gamedata.Doctrine) bool {
	if def, ok := gamedata.DoctrineInfo(d); ok {
		return def.FirstStrike
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
