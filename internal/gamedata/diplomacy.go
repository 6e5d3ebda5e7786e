package gamedata

// Relation is the ordered diplomatic scale between two factions. Combat
// between a pair is permitted at any level below Allied; allied factions
// cannot attack each other.
type Relation uint8

const (
	RelationWar Relation = iota
	RelationHostile
	RelationNeutral
	RelationCordial
	RelationAllied
)

// RelationName returns a human-readable relation name.
func RelationName(r Relation) string {
	switch r {
	case RelationWar:
		return "War"
	case RelationHostile:
		return "Hostile"
	case RelationNeutral:
		return "Neutral"
	case RelationCordial:
		return "Cordial"
	case RelationAllied:
		return "Allied"
	default:
		return "Unknown"
	}
}

// Improve returns the relation one step warmer, saturating at Allied.
func (r Relation) Improve() Relation {
	if r >= RelationAllied {
		return RelationAllied
	}
	return r + 1
}

// Worsen returns the relation one step colder, saturating at War.
func (r Relation) Worsen() Relation {
	if r <= RelationWar {
		return RelationWar
	}
	return r - 1
}

// DiplomaticActionKey identifies an action in the diplomacy catalog.
type DiplomaticActionKey string

const (
	DiplomacySendEnvoy       DiplomaticActionKey = "send_envoy"
	DiplomacyDenounce        DiplomaticActionKey = "denounce"
	DiplomacyOfferTruce      DiplomaticActionKey = "offer_truce"
	DiplomacyProposeAlliance DiplomaticActionKey = "propose_alliance"
	DiplomacyDeclareWar      DiplomaticActionKey = "declare_war"
)

// DiplomaticActionDef defines an action's gate, cost, and effect. Terminal
// actions jump straight to SetRelation; step actions move one step.
type DiplomaticActionDef struct {
	Key         DiplomaticActionKey `json:"key"`
	Name        string              `json:"name"`
	MinRelation Relation            `json:"min_relation"` // Current relation must be >= this
	MaxRelation Relation            `json:"max_relation"` // Current relation must be <= this
	Cost        Yield               `json:"cost"`
	SuccessOdds float64             `json:"success_odds"` // 1.0 = deterministic
	StepDelta   int                 `json:"step_delta"`   // +1 warmer / -1 colder, when not terminal
	Terminal    bool                `json:"terminal"`
	SetRelation Relation            `json:"set_relation"` // Target relation for terminal actions
}

var diplomacyCatalog = map[DiplomaticActionKey]DiplomaticActionDef{
	DiplomacySendEnvoy: {
		Key: DiplomacySendEnvoy, Name: "Send Envoy",
		MinRelation: RelationHostile, MaxRelation: RelationCordial,
		Cost:        Yield{Gold: 50, Influence: 10},
		SuccessOdds: 0.7, StepDelta: 1,
	},
	DiplomacyDenounce: {
		Key: DiplomacyDenounce, Name: "Denounce",
		MinRelation: RelationHostile, MaxRelation: RelationAllied,
		SuccessOdds: 1.0, StepDelta: -1,
	},
	DiplomacyOfferTruce: {
		Key: DiplomacyOfferTruce, Name: "Offer Truce",
		MinRelation: RelationWar, MaxRelation: RelationWar,
		Cost:        Yield{Gold: 80, Influence: 20},
		SuccessOdds: 0.6, StepDelta: 1,
	},
	DiplomacyProposeAlliance: {
		Key: DiplomacyProposeAlliance, Name: "Propose Alliance",
		MinRelation: RelationCordial, MaxRelation: RelationCordial,
		Cost:        Yield{Gold: 100, Influence: 30},
		SuccessOdds: 0.5, Terminal: true, SetRelation: RelationAllied,
	},
	DiplomacyDeclareWar: {
		Key: DiplomacyDeclareWar, Name: "Declare War",
		MinRelation: RelationHostile, MaxRelation: RelationAllied,
		SuccessOdds: 1.0, Terminal: true, SetRelation: RelationWar,
	},
}

// DiplomaticAction returns the catalog entry for an action key.
func DiplomaticAction(key DiplomaticActionKey) (DiplomaticActionDef, bool) {
	def, ok := diplomacyCatalog[key]
	return def, ok
}

// AllDiplomaticActions returns the catalog in deterministic order.
func AllDiplomaticActions() []DiplomaticActionDef {
	return []DiplomaticActionDef{
		diplomacyCatalog[DiplomacySendEnvoy],
		diplomacyCatalog[DiplomacyDenounce],
		diplomacyCatalog[DiplomacyOfferTruce],
		diplomacyCatalog[DiplomacyProposeAlliance],
		diplomacyCatalog[DiplomacyDeclareWar],
	}
}
