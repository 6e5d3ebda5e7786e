package combat

import "github.com/talgya/ironmarch/internal/gamedata"

// AvailableDoctrines returns the stances a unit type can fight under.
// Assault, defensive, and attrition are always open; fast units unlock
// flanking and blitz; armor and ranged units unlock siege.
func AvailableDoctrines(def gamedata.UnitTypeDef) []gamedata.Doctrine {
	doctrines := []gamedata.Doctrine{
		gamedata.DoctrineAssault,
		gamedata.DoctrineDefensive,
		gamedata.DoctrineAttrition,
	}
	if def.Movement >= 3 {
		doctrines = append(doctrines, gamedata.DoctrineFlanking)
	}
	if def.Movement >= 2 {
		doctrines = append(doctrines, gamedata.DoctrineBlitz)
	}
	if def.Branch == gamedata.BranchArmor || def.Range > 1 {
		doctrines = append(doctrines, gamedata.DoctrineSiege)
	}
	return doctrines
}

// RecommendedDoctrine picks a sensible stance from the available set.
// Attackers press with aggressive stances when they hold a clear stat and
// health edge and fall back on flanking or siege when outmatched; defenders
// dig in on good ground or when damaged, and otherwise trade blows.
func RecommendedDoctrine(def gamedata.UnitTypeDef, self, opponent Combatant, terrain gamedata.Terrain, isAttacker bool) gamedata.Doctrine {
	available := AvailableDoctrines(def)

	statRatio := 1.0
	if isAttacker {
		if opponent.Defense > 0 {
			statRatio = self.Attack / opponent.Defense
		}
	} else {
		if opponent.Attack > 0 {
			statRatio = self.Defense / opponent.Attack
		}
	}
	healthEdge := self.Health - opponent.Health

	if isAttacker {
		if statRatio >= 1.3 && healthEdge >= 0 {
			return pick(available, gamedata.DoctrineBlitz, gamedata.DoctrineAssault)
		}
		if statRatio >= 1.0 {
			return pick(available, gamedata.DoctrineAssault)
		}
		// Outmatched: look for an angle rather than a straight trade.
		return pick(available, gamedata.DoctrineFlanking, gamedata.DoctrineSiege, gamedata.DoctrineAttrition)
	}

	goodGround := gamedata.TerrainInfo(terrain).DefenseMod >= 0.15
	if goodGround || self.Health < 50 {
		return pick(available, gamedata.DoctrineDefensive)
	}
	if statRatio >= 1.2 && healthEdge > 0 {
		// Strong enough to counter-punch instead of absorbing.
		return pick(available, gamedata.DoctrineAssault, gamedata.DoctrineAttrition)
	}
	return pick(available, gamedata.DoctrineAttrition, gamedata.DoctrineDefensive)
}

// pick returns the first preferred doctrine present in the available set.
// The base set always contains attrition, so pick never falls through for
// preference lists ending in a base doctrine; defensive is the final default.
func pick(available []gamedata.Doctrine, preferred ...gamedata.Doctrine) gamedata.Doctrine {
	for _, want := range preferred {
		for _, have := range available {
			if have == want {
				return want
			}
		}
	}
	return gamedata.DoctrineDefensive
}
