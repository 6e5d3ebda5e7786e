// Package engine owns the canonical game state and the turn/phase state
// machine. All mutation flows through the action API: every action validates
// its preconditions first and returns a Result instead of mutating on
// failure, so an invalid dispatch leaves prior state untouched.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/ironmarch/internal/combat"
	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
	"github.com/talgya/ironmarch/internal/mapgen"
	"github.com/talgya/ironmarch/internal/world"
)

// Starting resource pool for every faction.
var startingResources = gamedata.Yield{Gold: 200, Iron: 100, Grain: 100, Influence: 10}

// TrainQueueCap is the per-hex limit on simultaneous training orders.
const TrainQueueCap = 3

// CancelRefundFraction of the original cost is returned on cancellation,
// floored per resource.
const CancelRefundFraction = 0.5

// FactionState is one faction's mutable runtime state.
type FactionState struct {
	ID         gamedata.FactionID                       `json:"id"`
	Resources  gamedata.Yield                           `json:"resources"`
	Relations  map[gamedata.FactionID]gamedata.Relation `json:"relations"`
	Eliminated bool                                     `json:"eliminated"`
}

// Unit is a live unit on the map.
type Unit struct {
	ID      string              `json:"id"`
	TypeID  gamedata.UnitTypeID `json:"type_id"`
	Faction gamedata.FactionID  `json:"faction"`
	Pos     hexmath.HexCoord    `json:"pos"`
	Health  float64             `json:"health"` // 0-100; removed from the world at 0
	XP      int                 `json:"xp"`     // Monotonic; maps to veterancy tiers

	MovedThisTurn    bool `json:"moved_this_turn"`
	AttackedThisTurn bool `json:"attacked_this_turn"`
}

// Veterancy returns the unit's current experience tier.
func (u *Unit) Veterancy() gamedata.Veterancy {
	return gamedata.VeterancyForXP(u.XP)
}

// BuildOrder is a queued building under construction.
type BuildOrder struct {
	ID        string              `json:"id"`
	Hex       hexmath.HexCoord    `json:"hex"`
	Building  gamedata.BuildingID `json:"building"`
	Faction   gamedata.FactionID  `json:"faction"`
	TurnsLeft int                 `json:"turns_left"`
	Paid      gamedata.Yield      `json:"paid"`
}

// TrainOrder is a queued unit in training.
type TrainOrder struct {
	ID        string              `json:"id"`
	Hex       hexmath.HexCoord    `json:"hex"`
	UnitType  gamedata.UnitTypeID `json:"unit_type"`
	Faction   gamedata.FactionID  `json:"faction"`
	TurnsLeft int                 `json:"turns_left"`
	Paid      gamedata.Yield      `json:"paid"`
}

// Selection is the transient UI selection: the chosen hex, the chosen unit,
// and that unit's legal move and attack sets under the current phase.
// Cleared on every phase or turn advance; never persisted.
type Selection struct {
	Hex          hexmath.HexCoord          `json:"hex"`
	UnitID       string                    `json:"unit_id,omitempty"`
	LegalMoves   map[hexmath.HexCoord]int  `json:"-"` // destination -> movement cost
	LegalAttacks map[string]bool           `json:"-"` // defender unit ids
}

// PendingCombat is the ephemeral record between attack declaration and
// resolution. Units are snapshotted; nothing mutates until resolution.
type PendingCombat struct {
	AttackerID string         `json:"attacker_id"`
	DefenderID string         `json:"defender_id"`
	Preview    combat.Preview `json:"preview"`
}

// Game is the single mutable world state. Player input and the AI both drive
// it exclusively through the action methods; neither has a privileged path.
type Game struct {
	Map       *world.Map
	Factions  map[gamedata.FactionID]*FactionState
	TurnOrder []gamedata.FactionID
	Units     map[string]*Unit

	BuildQueue []*BuildOrder
	TrainQueue []*TrainOrder

	Turn      int   // Monotonic, starts at 1
	Phase     Phase // Fixed cyclic sequence
	ActiveIdx int   // Index into TurnOrder

	PlayerFaction gamedata.FactionID

	Selection *Selection
	Pending   *PendingCombat

	Events []Event

	Over        bool
	Winner      gamedata.FactionID
	VictoryKind string

	Seed int64
	rng  *rand.Rand
}

// NewGame builds a fresh game: generated map, seeded factions at neutral
// relations, and each faction's starting garrison. The seed drives map
// generation and every stochastic outcome afterward, so two games with the
// same seed and the same action sequence are identical.
func NewGame(cfg mapgen.GenConfig, player gamedata.FactionID) (*Game, error) {
	if err := gamedata.Validate(); err != nil {
		return nil, fmt.Errorf("static data validation: %w", err)
	}
	if _, ok := gamedata.Faction(player); !ok {
		return nil, fmt.Errorf("unknown player faction %d", player)
	}

	g := &Game{
		Map:           mapgen.Generate(cfg),
		Factions:      make(map[gamedata.FactionID]*FactionState),
		Units:         make(map[string]*Unit),
		Turn:          1,
		Phase:         PhaseProduction,
		PlayerFaction: player,
		Seed:          cfg.Seed,
		rng:           rand.New(rand.NewSource(cfg.Seed)),
	}

	for _, def := range gamedata.AllFactions() {
		relations := make(map[gamedata.FactionID]gamedata.Relation)
		for _, other := range gamedata.AllFactions() {
			if other.ID != def.ID {
				relations[other.ID] = gamedata.RelationNeutral
			}
		}
		g.Factions[def.ID] = &FactionState{
			ID:        def.ID,
			Resources: startingResources,
			Relations: relations,
		}
		g.TurnOrder = append(g.TurnOrder, def.ID)
	}

	starts := mapgen.StartPositions(cfg.Radius)
	for i, def := range gamedata.AllFactions() {
		g.spawnStartingUnits(def.ID, starts[i])
	}

	g.RefreshVisibility()
	g.EmitEvent("turn", fmt.Sprintf("Turn %d begins", g.Turn))
	return g, nil
}

// spawnStartingUnits places the initial garrison: militia on the capital and
// outriders on the first free neighboring hex.
func (g *Game) spawnStartingUnits(f gamedata.FactionID, capital hexmath.HexCoord) {
	g.spawnUnit(gamedata.UnitMilitia, f, capital)
	for _, nc := range capital.Neighbors() {
		hex := g.Map.Get(nc)
		if hex == nil || g.UnitAt(nc) != nil {
			continue
		}
		if gamedata.TerrainInfo(hex.Terrain).MoveCost > 2 {
			continue
		}
		g.spawnUnit(gamedata.UnitOutriders, f, nc)
		break
	}
}

// spawnUnit creates a unit at full health. Callers validate the placement.
func (g *Game) spawnUnit(typeID gamedata.UnitTypeID, f gamedata.FactionID, pos hexmath.HexCoord) *Unit {
	u := &Unit{
		ID:      uuid.NewString(),
		TypeID:  typeID,
		Faction: f,
		Pos:     pos,
		Health:  100,
	}
	g.Units[u.ID] = u
	return u
}

// Rehydrate finalizes a Game rebuilt from a snapshot: the rng stream restarts
// from the stored seed offset by the current turn, so a loaded game is
// deterministic going forward even though the original stream position is not
// persisted.
func (g *Game) Rehydrate() {
	g.rng = rand.New(rand.NewSource(g.Seed + int64(g.Turn)))
}

// removeUnit deletes a destroyed unit from the world.
func (g *Game) removeUnit(id string) {
	delete(g.Units, id)
}

// ActiveFaction returns the faction whose phases are currently running.
func (g *Game) ActiveFaction() gamedata.FactionID {
	return g.TurnOrder[g.ActiveIdx]
}

// UnitAt returns the unit occupying a hex, or nil.
func (g *Game) UnitAt(coord hexmath.HexCoord) *Unit {
	for _, u := range g.Units {
		if u.Pos == coord {
			return u
		}
	}
	return nil
}

// UnitsOf returns all living units of a faction, in no particular order.
func (g *Game) UnitsOf(f gamedata.FactionID) []*Unit {
	var units []*Unit
	for _, u := range g.Units {
		if u.Faction == f {
			units = append(units, u)
		}
	}
	return units
}

// RelationBetween returns the mutual relation between two factions.
func (g *Game) RelationBetween(a, b gamedata.FactionID) gamedata.Relation {
	if fs, ok := g.Factions[a]; ok {
		if rel, ok := fs.Relations[b]; ok {
			return rel
		}
	}
	return gamedata.RelationNeutral
}

// setRelation updates the mutual relation symmetrically.
func (g *Game) setRelation(a, b gamedata.FactionID, rel gamedata.Relation) {
	if fs, ok := g.Factions[a]; ok {
		fs.Relations[b] = rel
	}
	if fs, ok := g.Factions[b]; ok {
		fs.Relations[a] = rel
	}
}

// CanAfford reports whether a faction's pool covers a cost.
func (g *Game) CanAfford(f gamedata.FactionID, cost gamedata.Yield) bool {
	fs, ok := g.Factions[f]
	if !ok {
		return false
	}
	r := fs.Resources
	return r.Gold >= cost.Gold && r.Iron >= cost.Iron &&
		r.Grain >= cost.Grain && r.Influence >= cost.Influence
}

// spend deducts a cost. Callers must have passed CanAfford; pools never go
// negative.
func (g *Game) spend(f gamedata.FactionID, cost gamedata.Yield) {
	fs := g.Factions[f]
	fs.Resources.Gold -= cost.Gold
	fs.Resources.Iron -= cost.Iron
	fs.Resources.Grain -= cost.Grain
	fs.Resources.Influence -= cost.Influence
}

// credit adds to a faction's pool.
func (g *Game) credit(f gamedata.FactionID, amount gamedata.Yield) {
	fs := g.Factions[f]
	fs.Resources = fs.Resources.Add(amount)
}

// combatantFor snapshots a unit for the combat resolver.
func (g *Game) combatantFor(u *Unit, doctrine gamedata.Doctrine) combat.Combatant {
	def, _ := gamedata.UnitType(u.TypeID)
	fdef, _ := gamedata.Faction(u.Faction)
	return combat.Combatant{
		UnitID:       u.ID,
		Faction:      u.Faction,
		TypeID:       u.TypeID,
		Branch:       def.Branch,
		Attack:       def.Attack,
		Defense:      def.Defense,
		Health:       u.Health,
		XP:           u.XP,
		Doctrine:     doctrine,
		AttackBonus:  fdef.Bonuses.AttackPct,
		DefenseBonus: fdef.Bonuses.DefensePct,
	}
}
