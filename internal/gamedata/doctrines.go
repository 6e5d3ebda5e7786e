package gamedata

// Doctrine is a combat stance. Doctrines form a rock-paper-scissors layer on
// top of raw stats: each is strong against some stances and weak against
// others, worth ±20% attack force.
type Doctrine uint8

const (
	DoctrineAssault Doctrine = iota
	DoctrineDefensive
	DoctrineAttrition
	DoctrineFlanking
	DoctrineBlitz
	DoctrineSiege
)

// DoctrineName returns a human-readable doctrine name.
func DoctrineName(d Doctrine) string {
	switch d {
	case DoctrineAssault:
		return "Assault"
	case DoctrineDefensive:
		return "Defensive"
	case DoctrineAttrition:
		return "Attrition"
	case DoctrineFlanking:
		return "Flanking"
	case DoctrineBlitz:
		return "Blitz"
	case DoctrineSiege:
		return "Siege"
	default:
		return "Unknown"
	}
}

// DoctrineDef defines a doctrine's stat modifiers and matchup table.
//
// CasualtyMod scales the damage the side fighting under this doctrine TAKES:
// negative values mean the stance absorbs punishment better, positive values
// mean it trades protection for pressure. This is the one consistent rule for
// the casualty direction used everywhere in the combat resolver.
type DoctrineDef struct {
	Name          string     `json:"name"`
	AttackMod     float64    `json:"attack_mod"`
	DefenseMod    float64    `json:"defense_mod"`
	StrongAgainst []Doctrine `json:"strong_against"`
	WeakAgainst   []Doctrine `json:"weak_against"`
	CasualtyMod   float64    `json:"casualty_mod"`
	FirstStrike   bool       `json:"first_strike"`
}

var doctrineCatalog = map[Doctrine]DoctrineDef{
	DoctrineAssault: {
		Name: "Assault", AttackMod: 0.20, DefenseMod: -0.10,
		StrongAgainst: []Doctrine{DoctrineAttrition},
		WeakAgainst:   []Doctrine{DoctrineDefensive},
		CasualtyMod:   0.10,
	},
	DoctrineDefensive: {
		Name: "Defensive", AttackMod: -0.15, DefenseMod: 0.25,
		StrongAgainst: []Doctrine{DoctrineAssault},
		WeakAgainst:   []Doctrine{DoctrineFlanking},
		CasualtyMod:   -0.20,
	},
	DoctrineAttrition: {
		Name: "Attrition", AttackMod: 0, DefenseMod: 0.10,
		StrongAgainst: []Doctrine{DoctrineBlitz},
		WeakAgainst:   []Doctrine{DoctrineAssault},
		CasualtyMod:   -0.10,
	},
	DoctrineFlanking: {
		Name: "Flanking", AttackMod: 0.15, DefenseMod: -0.15,
		StrongAgainst: []Doctrine{DoctrineDefensive},
		WeakAgainst:   []Doctrine{DoctrineSiege},
		FirstStrike:   true,
	},
	DoctrineBlitz: {
		Name: "Blitz", AttackMod: 0.25, DefenseMod: -0.20,
		StrongAgainst: []Doctrine{DoctrineSiege},
		WeakAgainst:   []Doctrine{DoctrineAttrition},
		CasualtyMod:   0.15,
		FirstStrike:   true,
	},
	DoctrineSiege: {
		Name: "Siege", AttackMod: 0.30, DefenseMod: -0.25,
		StrongAgainst: []Doctrine{DoctrineFlanking},
		WeakAgainst:   []Doctrine{DoctrineBlitz},
	},
}

// AllDoctrines returns every doctrine in catalog order.
func AllDoctrines() []DoctrineDef {
	return []DoctrineDef{
		doctrineCatalog[DoctrineAssault],
		doctrineCatalog[DoctrineDefensive],
		doctrineCatalog[DoctrineAttrition],
		doctrineCatalog[DoctrineFlanking],
		doctrineCatalog[DoctrineBlitz],
		doctrineCatalog[DoctrineSiege],
	}
}

// DoctrineInfo returns the catalog entry for a doctrine.
func DoctrineInfo(d Doctrine) (DoctrineDef, bool) {
	def, ok := doctrineCatalog[d]
	return def, ok
}

// DoctrineAdvantage returns the attack-force modifier for the attacker's
// doctrine against the defender's: +0.20 when strong against it, -0.20 when
// weak against it, 0 otherwise.
func DoctrineAdvantage(attacker, defender Doctrine) float64 {
	def, ok := doctrineCatalog[attacker]
	if !ok {
		return 0
	}
	for _, d := range def.StrongAgainst {
		if d == defender {
			return 0.20
		}
	}
	for _, d := range def.WeakAgainst {
		if d == defender {
			return -0.20
		}
	}
	return 0
}

// Veterancy is a discrete experience tier granting a multiplicative combat
// bonus. Tiers are derived from accumulated experience via fixed thresholds.
type Veterancy uint8

const (
	VeterancyGreen Veterancy = iota
	VeterancyTrained
	VeterancyVeteran
	VeterancyElite
	VeterancyLegendary
)

// veterancyThresholds maps minimum accumulated XP to each tier, in order.
var veterancyThresholds = [5]int{0, 30, 80, 160, 300}

// veterancyMultipliers gives the combat-stat multiplier per tier.
var veterancyMultipliers = [5]float64{1.0, 1.1, 1.25, 1.4, 1.6}

// VeterancyForXP maps accumulated experience to its tier.
func VeterancyForXP(xp int) Veterancy {
	tier := VeterancyGreen
	for i, threshold := range veterancyThresholds {
		if xp >= threshold {
			tier = Veterancy(i)
		}
	}
	return tier
}

// VeterancyMultiplier returns the combat-stat multiplier for a tier.
func VeterancyMultiplier(v Veterancy) float64 {
	if int(v) >= len(veterancyMultipliers) {
		return veterancyMultipliers[len(veterancyMultipliers)-1]
	}
	return veterancyMultipliers[v]
}

// VeterancyName returns a human-readable tier name.
func VeterancyName(v Veterancy) string {
	switch v {
	case VeterancyGreen:
		return "Green"
	case VeterancyTrained:
		return "Trained"
	case VeterancyVeteran:
		return "Veteran"
	case VeterancyElite:
		return "Elite"
	case VeterancyLegendary:
		return "Legendary"
	default:
		return "Unknown"
	}
}
