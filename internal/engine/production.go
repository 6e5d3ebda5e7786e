package engine

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
)

// StartBuilding queues a building on an owned hex. The full cost is paid up
// front; the order completes after the building's construction time.
func (g *Game) StartBuilding(f gamedata.FactionID, coord hexmath.HexCoord, building gamedata.BuildingID) Result {
	if g.Over {
		return rejected(ReasonGameOver)
	}
	if g.Phase != PhaseProduction {
		return rejected(ReasonWrongPhase)
	}
	if f != g.ActiveFaction() {
		return rejected(ReasonNotYourTurn)
	}
	def, ok := gamedata.Building(building)
	if !ok {
		return rejected("unknown building type")
	}
	hex := g.Map.Get(coord)
	if hex == nil {
		return rejected(ReasonUnknownHex)
	}
	if hex.Owner != f {
		return rejected("hex not owned")
	}
	if hex.HasBuilding(building) {
		return rejected("building already present")
	}
	for _, o := range g.BuildQueue {
		if o.Hex == coord && o.Building == building {
			return rejected("building already under construction")
		}
	}
	if !g.CanAfford(f, def.Cost) {
		return rejected(ReasonUnaffordable)
	}

	g.spend(f, def.Cost)
	g.BuildQueue = append(g.BuildQueue, &BuildOrder{
		ID:        uuid.NewString(),
		Hex:       coord,
		Building:  building,
		Faction:   f,
		TurnsLeft: def.BuildTime,
		Paid:      def.Cost,
	})
	g.EmitEvent("production", fmt.Sprintf("%s starts a %s at %s",
		factionLabel(f), def.Name, coord.HexID()))
	return accepted()
}

// StartTraining queues a unit at an owned hex that can train. The hex carries
// at most TrainQueueCap simultaneous orders; an academy on the hex halves the
// training time, floored at one turn.
func (g *Game) StartTraining(f gamedata.FactionID, coord hexmath.HexCoord, unitType gamedata.UnitTypeID) Result {
	if g.Over {
		return rejected(ReasonGameOver)
	}
	if g.Phase != PhaseProduction {
		return rejected(ReasonWrongPhase)
	}
	if f != g.ActiveFaction() {
		return rejected(ReasonNotYourTurn)
	}
	def, ok := gamedata.UnitType(unitType)
	if !ok {
		return rejected("unknown unit type")
	}
	hex := g.Map.Get(coord)
	if hex == nil {
		return rejected(ReasonUnknownHex)
	}
	if hex.Owner != f {
		return rejected("hex not owned")
	}
	if !hex.CanTrain() {
		return rejected("hex cannot train units")
	}
	if def.RequiresBuilding != "" && !hex.HasBuilding(def.RequiresBuilding) {
		return rejected(fmt.Sprintf("requires a %s", def.RequiresBuilding))
	}
	if g.trainOrdersAt(coord) >= TrainQueueCap {
		return rejected(ReasonQueueFull)
	}
	if !g.CanAfford(f, def.Cost) {
		return rejected(ReasonUnaffordable)
	}

	turns := def.TrainTime
	if hex.HasBuilding(gamedata.BuildingAcademy) {
		turns = int(math.Ceil(float64(def.TrainTime) * gamedata.AcademyTrainFactor))
		if turns < 1 {
			turns = 1
		}
	}

	g.spend(f, def.Cost)
	g.TrainQueue = append(g.TrainQueue, &TrainOrder{
		ID:        uuid.NewString(),
		Hex:       coord,
		UnitType:  unitType,
		Faction:   f,
		TurnsLeft: turns,
		Paid:      def.Cost,
	})
	g.EmitEvent("production", fmt.Sprintf("%s begins training %s at %s",
		factionLabel(f), def.Name, coord.HexID()))
	return accepted()
}

// CancelBuilding removes a queued building order and refunds half the paid
// cost, floored per resource.
func (g *Game) CancelBuilding(f gamedata.FactionID, orderID string) Result {
	if g.Over {
		return rejected(ReasonGameOver)
	}
	for i, o := range g.BuildQueue {
		if o.ID != orderID {
			continue
		}
		if o.Faction != f {
			return rejected("order belongs to another faction")
		}
		g.credit(f, refund(o.Paid))
		g.BuildQueue = append(g.BuildQueue[:i], g.BuildQueue[i+1:]...)
		g.EmitEvent("production", fmt.Sprintf("%s cancels construction at %s",
			factionLabel(f), o.Hex.HexID()))
		return accepted()
	}
	return rejected("unknown build order")
}

// CancelTraining removes a queued training order and refunds half the paid
// cost, floored per resource.
func (g *Game) CancelTraining(f gamedata.FactionID, orderID string) Result {
	if g.Over {
		return rejected(ReasonGameOver)
	}
	for i, o := range g.TrainQueue {
		if o.ID != orderID {
			continue
		}
		if o.Faction != f {
			return rejected("order belongs to another faction")
		}
		g.credit(f, refund(o.Paid))
		g.TrainQueue = append(g.TrainQueue[:i], g.TrainQueue[i+1:]...)
		g.EmitEvent("production", fmt.Sprintf("%s cancels training at %s",
			factionLabel(f), o.Hex.HexID()))
		return accepted()
	}
	return rejected("unknown train order")
}

// trainOrdersAt counts pending training orders anchored to one hex.
func (g *Game) trainOrdersAt(coord hexmath.HexCoord) int {
	n := 0
	for _, o := range g.TrainQueue {
		if o.Hex == coord {
			n++
		}
	}
	return n
}

// refund returns half of a paid cost, floored per resource.
func refund(paid gamedata.Yield) gamedata.Yield {
	return gamedata.Yield{
		Gold:      int(math.Floor(float64(paid.Gold) * CancelRefundFraction)),
		Iron:      int(math.Floor(float64(paid.Iron) * CancelRefundFraction)),
		Grain:     int(math.Floor(float64(paid.Grain) * CancelRefundFraction)),
		Influence: int(math.Floor(float64(paid.Influence) * CancelRefundFraction)),
	}
}

// advanceQueues ticks every pending order down one turn and completes those
// that reach zero. Orders on hexes the faction no longer controls are
// forfeited without refund.
func (g *Game) advanceQueues() {
	var remainingBuilds []*BuildOrder
	for _, o := range g.BuildQueue {
		o.TurnsLeft--
		if o.TurnsLeft > 0 {
			remainingBuilds = append(remainingBuilds, o)
			continue
		}
		hex := g.Map.Get(o.Hex)
		if hex == nil || hex.Owner != o.Faction {
			g.EmitEvent("production", fmt.Sprintf("%s loses its construction at %s",
				factionLabel(o.Faction), o.Hex.HexID()))
			continue
		}
		hex.Buildings = append(hex.Buildings, o.Building)
		def, _ := gamedata.Building(o.Building)
		g.EmitEvent("production", fmt.Sprintf("%s completes a %s at %s",
			factionLabel(o.Faction), def.Name, o.Hex.HexID()))
	}
	g.BuildQueue = remainingBuilds

	var remainingTrains []*TrainOrder
	for _, o := range g.TrainQueue {
		o.TurnsLeft--
		if o.TurnsLeft > 0 {
			remainingTrains = append(remainingTrains, o)
			continue
		}
		hex := g.Map.Get(o.Hex)
		if hex == nil || hex.Owner != o.Faction {
			g.EmitEvent("production", fmt.Sprintf("%s loses recruits at %s",
				factionLabel(o.Faction), o.Hex.HexID()))
			continue
		}
		pos, ok := g.spawnPosition(o.Hex)
		if !ok {
			// No room this turn; the order waits.
			o.TurnsLeft = 1
			remainingTrains = append(remainingTrains, o)
			continue
		}
		u := g.spawnUnit(o.UnitType, o.Faction, pos)
		u.MovedThisTurn = true
		u.AttackedThisTurn = true
		def, _ := gamedata.UnitType(o.UnitType)
		g.EmitEvent("production", fmt.Sprintf("%s musters %s at %s",
			factionLabel(o.Faction), def.Name, pos.HexID()))
	}
	g.TrainQueue = remainingTrains
}

// spawnPosition finds where a trained unit appears: the training hex itself if
// free, otherwise the first unoccupied neighbor.
func (g *Game) spawnPosition(coord hexmath.HexCoord) (hexmath.HexCoord, bool) {
	if g.UnitAt(coord) == nil {
		return coord, true
	}
	for _, nc := range coord.Neighbors() {
		if g.Map.Get(nc) != nil && g.UnitAt(nc) == nil {
			return nc, true
		}
	}
	return hexmath.HexCoord{}, false
}
