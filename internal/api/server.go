// Package api serves the game over HTTP: public GET endpoints for observing
// state, a bearer-token action endpoint for driving it, and a websocket
// stream of the event feed.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/ironmarch/internal/engine"
	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
	"github.com/talgya/ironmarch/internal/persistence"
)

// Server serves the game state over HTTP. Mu guards Game against the turn
// loop; every handler takes it around reads and actions.
type Server struct {
	Game     *engine.Game
	Hub      *Hub
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for the action endpoints. Empty = actions disabled.
	Mu       *sync.Mutex
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	actionLimiter := NewRateLimiter(600, time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.locked(s.handleStatus))
	mux.HandleFunc("/api/v1/map", s.locked(s.handleMap))
	mux.HandleFunc("/api/v1/units", s.locked(s.handleUnits))
	mux.HandleFunc("/api/v1/factions", s.locked(s.handleFactions))
	mux.HandleFunc("/api/v1/events", s.locked(s.handleEvents))
	mux.HandleFunc("/api/v1/doctrines", s.handleDoctrines)

	mux.HandleFunc("/api/v1/action", RateLimitMiddleware(actionLimiter, s.adminOnly(s.locked(s.handleAction))))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.locked(s.handleSnapshot)))

	mux.HandleFunc("/ws", s.Hub.handleWS)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "action_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// locked wraps a handler so it holds the game mutex for its duration.
func (s *Server) locked(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Mu.Lock()
		defer s.Mu.Unlock()
		next(w, r)
	}
}

// adminOnly requires a bearer token on POST; GET passes through.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "action endpoints disabled (no IRONMARCH_ADMIN_KEY set)", http.StatusForbidden)
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.AdminKey {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	g := s.Game
	status := map[string]any{
		"name":           "Ironmarch",
		"turn":           g.Turn,
		"phase":          engine.PhaseName(g.Phase),
		"active_faction": gamedata.FactionName(g.ActiveFaction()),
		"map":            g.Map.String(),
		"units":          len(g.Units),
		"over":           g.Over,
	}
	if g.Over {
		status["winner"] = gamedata.FactionName(g.Winner)
		status["victory"] = g.VictoryKind
	}
	writeJSON(w, status)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	type hexEntry struct {
		Q         int      `json:"q"`
		R         int      `json:"r"`
		Terrain   string   `json:"terrain"`
		Owner     uint8    `json:"owner"`
		Capital   bool     `json:"capital,omitempty"`
		Buildings []string `json:"buildings,omitempty"`
	}

	// Optional fog filter: ?faction=N returns only that faction's explored
	// hexes. Without it the full observer map is returned.
	var viewer gamedata.FactionID
	fogged := false
	if f := r.URL.Query().Get("faction"); f != "" {
		if n, err := strconv.Atoi(f); err == nil {
			viewer = gamedata.FactionID(n)
			fogged = true
		}
	}

	hexes := make([]hexEntry, 0, s.Game.Map.HexCount())
	for _, h := range s.Game.Map.Hexes {
		if fogged && !h.Explored[viewer] {
			continue
		}
		entry := hexEntry{
			Q:       h.Coord.Q,
			R:       h.Coord.R,
			Terrain: gamedata.TerrainName(h.Terrain),
			Owner:   uint8(h.Owner),
			Capital: h.Capital,
		}
		for _, b := range h.Buildings {
			entry.Buildings = append(entry.Buildings, string(b))
		}
		hexes = append(hexes, entry)
	}
	sort.Slice(hexes, func(i, j int) bool {
		if hexes[i].Q != hexes[j].Q {
			return hexes[i].Q < hexes[j].Q
		}
		return hexes[i].R < hexes[j].R
	})

	writeJSON(w, map[string]any{
		"radius": s.Game.Map.Radius,
		"hexes":  hexes,
	})
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	type unitSummary struct {
		ID        string  `json:"id"`
		Type      string  `json:"type"`
		Faction   string  `json:"faction"`
		Q         int     `json:"q"`
		R         int     `json:"r"`
		Health    float64 `json:"health"`
		XP        int     `json:"xp"`
		Veterancy string  `json:"veterancy"`
	}

	var result []unitSummary
	for _, u := range s.Game.Units {
		def, _ := gamedata.UnitType(u.TypeID)
		result = append(result, unitSummary{
			ID:        u.ID,
			Type:      def.Name,
			Faction:   gamedata.FactionName(u.Faction),
			Q:         u.Pos.Q,
			R:         u.Pos.R,
			Health:    u.Health,
			XP:        u.XP,
			Veterancy: gamedata.VeterancyName(u.Veterancy()),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	writeJSON(w, result)
}

func (s *Server) handleFactions(w http.ResponseWriter, r *http.Request) {
	type factionSummary struct {
		ID         uint8             `json:"id"`
		Name       string            `json:"name"`
		Gold       string            `json:"gold"`
		Iron       int               `json:"iron"`
		Grain      int               `json:"grain"`
		Influence  int               `json:"influence"`
		Territory  int               `json:"territory"`
		Units      int               `json:"units"`
		Relations  map[string]string `json:"relations"`
		Eliminated bool              `json:"eliminated"`
	}

	var result []factionSummary
	for _, def := range gamedata.AllFactions() {
		fs := s.Game.Factions[def.ID]
		relations := make(map[string]string)
		for other, rel := range fs.Relations {
			relations[gamedata.FactionName(other)] = gamedata.RelationName(rel)
		}
		result = append(result, factionSummary{
			ID:         uint8(def.ID),
			Name:       def.Name,
			Gold:       humanize.Comma(int64(fs.Resources.Gold)),
			Iron:       fs.Resources.Iron,
			Grain:      fs.Resources.Grain,
			Influence:  fs.Resources.Influence,
			Territory:  s.Game.Map.OwnedCount(def.ID),
			Units:      len(s.Game.UnitsOf(def.ID)),
			Relations:  relations,
			Eliminated: fs.Eliminated,
		})
	}
	writeJSON(w, result)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events := s.Game.Events
	if category := r.URL.Query().Get("category"); category != "" {
		var filtered []engine.Event
		for _, e := range events {
			if e.Category == category {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	start := 0
	if len(events) > limit {
		start = len(events) - limit
	}
	writeJSON(w, events[start:])
}

// handleDoctrines exposes the static doctrine catalog; no lock needed.
func (s *Server) handleDoctrines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, gamedata.AllDoctrines())
}

// actionRequest is the wire form of one game action; Type selects the
// dispatch and the remaining fields are read as that action needs them.
type actionRequest struct {
	Type     string `json:"type"`
	Faction  uint8  `json:"faction"`
	Q        int    `json:"q"`
	R        int    `json:"r"`
	UnitID   string `json:"unit_id,omitempty"`
	TargetID string `json:"target_id,omitempty"`
	OrderID  string `json:"order_id,omitempty"`
	Building string `json:"building,omitempty"`
	UnitType string `json:"unit_type,omitempty"`
	Target   uint8  `json:"target,omitempty"`
	Action   string `json:"action,omitempty"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	g := s.Game
	f := gamedata.FactionID(req.Faction)
	coord := hexmath.HexCoord{Q: req.Q, R: req.R}
	before := len(g.Events)

	var res engine.Result
	switch req.Type {
	case "select":
		res = g.SelectHex(f, coord)
	case "move":
		res = g.MoveUnit(f, req.UnitID, coord)
	case "attack":
		res = g.InitiateAttack(f, req.UnitID, req.TargetID)
	case "resolve":
		res = g.ResolveCombat(f)
	case "cancel_combat":
		res = g.CancelCombat(f)
	case "build":
		res = g.StartBuilding(f, coord, gamedata.BuildingID(req.Building))
	case "train":
		res = g.StartTraining(f, coord, gamedata.UnitTypeID(req.UnitType))
	case "cancel_build":
		res = g.CancelBuilding(f, req.OrderID)
	case "cancel_train":
		res = g.CancelTraining(f, req.OrderID)
	case "diplomacy":
		res = g.PerformDiplomaticAction(f, gamedata.FactionID(req.Target), gamedata.DiplomaticActionKey(req.Action))
	case "advance_phase":
		res = g.AdvancePhase()
	case "end_turn":
		res = g.EndTurn()
	default:
		http.Error(w, fmt.Sprintf("unknown action type %q", req.Type), http.StatusBadRequest)
		return
	}

	if s.Hub != nil {
		s.Hub.Broadcast(g.EventsSince(before))
	}
	writeJSON(w, res)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}
	if err := s.DB.SaveGame(s.Game); err != nil {
		slog.Error("snapshot failed", "error", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"saved": true, "turn": s.Game.Turn})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
