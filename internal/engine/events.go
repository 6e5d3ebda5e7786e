package engine

import (
	"log/slog"

	"github.com/talgya/ironmarch/internal/gamedata"
)

// Event is one entry in the game's narrative feed. Everything noteworthy the
// engine does lands here: turn starts, phase changes, battles, captures,
// completed construction, diplomacy, victory.
type Event struct {
	Turn        int    `json:"turn"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// EmitEvent appends to the event log and mirrors the entry to slog.
func (g *Game) EmitEvent(category, description string) {
	g.Events = append(g.Events, Event{
		Turn:        g.Turn,
		Category:    category,
		Description: description,
	})
	slog.Debug("event", "turn", g.Turn, "category", category, "description", description)
}

// EventsSince returns the tail of the event log starting at index from.
func (g *Game) EventsSince(from int) []Event {
	if from < 0 {
		from = 0
	}
	if from >= len(g.Events) {
		return nil
	}
	return g.Events[from:]
}

func factionLabel(f gamedata.FactionID) string {
	return gamedata.FactionName(f)
}
