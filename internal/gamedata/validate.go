package gamedata

import "fmt"

// Validate checks every cross-reference in the static catalogs. It is called
// once at startup; a failure here means the shipped data tables are corrupt,
// so the game refuses to start rather than degrading to fallback values.
func Validate() error {
	for _, t := range AllTerrains {
		def, ok := terrainCatalog[t]
		if !ok {
			return fmt.Errorf("terrain %d missing from catalog", t)
		}
		if def.MoveCost < 1 {
			return fmt.Errorf("terrain %s: move cost must be >= 1", def.Name)
		}
		if def.GenWeight < 0 {
			return fmt.Errorf("terrain %s: negative generation weight", def.Name)
		}
	}

	capitalSites := 0
	for _, def := range terrainCatalog {
		if def.CapitalSite {
			capitalSites++
		}
	}
	if capitalSites == 0 {
		return fmt.Errorf("no capital-worthy terrain in catalog")
	}

	for id, def := range unitCatalog {
		if def.ID != id {
			return fmt.Errorf("unit %q: id mismatch (%q)", id, def.ID)
		}
		if def.Movement < 1 || def.Range < 1 || def.Sight < 1 {
			return fmt.Errorf("unit %q: movement, range, and sight must be >= 1", id)
		}
		if def.TrainTime < 1 {
			return fmt.Errorf("unit %q: train time must be >= 1", id)
		}
		if def.RequiresBuilding != "" {
			if _, ok := buildingCatalog[def.RequiresBuilding]; !ok {
				return fmt.Errorf("unit %q: unknown required building %q", id, def.RequiresBuilding)
			}
		}
	}

	for id, def := range buildingCatalog {
		if def.ID != id {
			return fmt.Errorf("building %q: id mismatch (%q)", id, def.ID)
		}
		if def.BuildTime < 1 {
			return fmt.Errorf("building %q: build time must be >= 1", id)
		}
	}

	for id, def := range factionCatalog {
		if def.ID != id {
			return fmt.Errorf("faction %d: id mismatch (%d)", id, def.ID)
		}
		w := def.Weights
		for name, v := range map[string]float64{
			"aggression": w.Aggression, "expansion": w.Expansion,
			"diplomacy": w.Diplomacy, "risk": w.Risk, "economy": w.Economy,
		} {
			if v < 0 || v > 1 {
				return fmt.Errorf("faction %s: weight %s out of [0,1]", def.Name, name)
			}
		}
	}

	for d, def := range doctrineCatalog {
		for _, other := range def.StrongAgainst {
			if _, ok := doctrineCatalog[other]; !ok {
				return fmt.Errorf("doctrine %s: unknown strong-against %d", def.Name, other)
			}
			if other == d {
				return fmt.Errorf("doctrine %s: strong against itself", def.Name)
			}
		}
		for _, other := range def.WeakAgainst {
			if _, ok := doctrineCatalog[other]; !ok {
				return fmt.Errorf("doctrine %s: unknown weak-against %d", def.Name, other)
			}
		}
	}

	for key, def := range diplomacyCatalog {
		if def.Key != key {
			return fmt.Errorf("diplomatic action %q: key mismatch (%q)", key, def.Key)
		}
		if def.MinRelation > def.MaxRelation {
			return fmt.Errorf("diplomatic action %q: min relation above max", key)
		}
		if def.SuccessOdds <= 0 || def.SuccessOdds > 1 {
			return fmt.Errorf("diplomatic action %q: success odds out of (0,1]", key)
		}
		if !def.Terminal && def.StepDelta == 0 {
			return fmt.Errorf("diplomatic action %q: no effect", key)
		}
	}

	return nil
}
