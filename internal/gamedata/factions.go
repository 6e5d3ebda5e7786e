package gamedata

// FactionID identifies one of the four playable factions.
type FactionID uint8

const (
	FactionNone     FactionID = 0 // Unclaimed territory
	FactionConcord  FactionID = 1
	FactionRustborn FactionID = 2
	FactionMeridian FactionID = 3
	FactionThornwal FactionID = 4
)

// AIWeights are the personality traits driving non-player decision making.
// All values are in [0, 1].
type AIWeights struct {
	Aggression float64 `json:"aggression"` // Appetite for attacks and military spend
	Expansion  float64 `json:"expansion"`  // Appetite for territory and mobility
	Diplomacy  float64 `json:"diplomacy"`  // Inclination toward diplomatic actions
	Risk       float64 `json:"risk"`       // Tolerance for uncertain fights
	Economy    float64 `json:"economy"`    // Weight on production and cost efficiency
}

// PassiveBonuses are a faction's always-on percentage modifiers.
type PassiveBonuses struct {
	AttackPct     float64 `json:"attack_pct"`
	DefensePct    float64 `json:"defense_pct"`
	ProductionPct float64 `json:"production_pct"`
}

// FactionDef is a faction's static identity plus its behavioral parameters.
type FactionDef struct {
	ID      FactionID      `json:"id"`
	Name    string         `json:"name"`
	Color   string         `json:"color"`
	Emblem  string         `json:"emblem"`
	Lore    string         `json:"lore"`
	Weights AIWeights      `json:"weights"`
	Bonuses PassiveBonuses `json:"bonuses"`
}

var factionCatalog = map[FactionID]FactionDef{
	FactionConcord: {
		ID: FactionConcord, Name: "Ashen Concord",
		Color: "#8a8f98", Emblem: "laurel",
		Lore: "Heirs of the old accord halls, the Concord still believes the sphere can be stitched back together with treaties — and keeps a standing army in case it can't.",
		Weights: AIWeights{Aggression: 0.35, Expansion: 0.5, Diplomacy: 0.85, Risk: 0.35, Economy: 0.55},
		Bonuses: PassiveBonuses{DefensePct: 0.05, ProductionPct: 0.05},
	},
	FactionRustborn: {
		ID: FactionRustborn, Name: "Rustborn Clans",
		Color: "#b3532c", Emblem: "tusk",
		Lore: "Scrap-forged raiders of the wasteland belt. The clans measure worth in captured ground and count diplomacy as a slower kind of siege.",
		Weights: AIWeights{Aggression: 0.9, Expansion: 0.7, Diplomacy: 0.15, Risk: 0.75, Economy: 0.3},
		Bonuses: PassiveBonuses{AttackPct: 0.10},
	},
	FactionMeridian: {
		ID: FactionMeridian, Name: "Meridian League",
		Color: "#caa53d", Emblem: "scale",
		Lore: "A merchant league that treats every border as a market waiting to open. Its coffers fund settlements faster than its rivals can burn them.",
		Weights: AIWeights{Aggression: 0.3, Expansion: 0.8, Diplomacy: 0.6, Risk: 0.4, Economy: 0.9},
		Bonuses: PassiveBonuses{ProductionPct: 0.15},
	},
	FactionThornwal: {
		ID: FactionThornwal, Name: "Thornwall Pact",
		Color: "#3f6b45", Emblem: "bramble",
		Lore: "Hill-folk sworn to hold what is theirs. The Pact digs in, fortifies, and lets attackers break themselves on the walls.",
		Weights: AIWeights{Aggression: 0.45, Expansion: 0.35, Diplomacy: 0.5, Risk: 0.2, Economy: 0.5},
		Bonuses: PassiveBonuses{DefensePct: 0.15},
	},
}

// Faction returns the catalog entry for a faction id.
func Faction(id FactionID) (FactionDef, bool) {
	def, ok := factionCatalog[id]
	return def, ok
}

// AllFactions returns the four playable factions in id order.
func AllFactions() []FactionDef {
	return []FactionDef{
		factionCatalog[FactionConcord],
		factionCatalog[FactionRustborn],
		factionCatalog[FactionMeridian],
		factionCatalog[FactionThornwal],
	}
}

// FactionName returns a human-readable name, with "Unclaimed" for FactionNone.
func FactionName(id FactionID) string {
	if id == FactionNone {
		return "Unclaimed"
	}
	if def, ok := factionCatalog[id]; ok {
		return def.Name
	}
	return "Unknown"
}
