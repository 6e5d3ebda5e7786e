// Package persistence provides SQLite-based game state storage: full snapshot
// save and load, plus an append-only event archive.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/ironmarch/internal/engine"
	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/hexmath"
	"github.com/talgya/ironmarch/internal/world"
)

// DB wraps a SQLite connection for game state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS hexes (
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		terrain INTEGER NOT NULL,
		owner INTEGER NOT NULL,
		capital INTEGER NOT NULL,
		buildings_json TEXT NOT NULL,
		visible_json TEXT NOT NULL,
		explored_json TEXT NOT NULL,
		PRIMARY KEY (q, r)
	);

	CREATE TABLE IF NOT EXISTS units (
		id TEXT PRIMARY KEY,
		type_id TEXT NOT NULL,
		faction INTEGER NOT NULL,
		pos_q INTEGER NOT NULL,
		pos_r INTEGER NOT NULL,
		health REAL NOT NULL,
		xp INTEGER NOT NULL,
		moved INTEGER NOT NULL,
		attacked INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS factions (
		id INTEGER PRIMARY KEY,
		gold INTEGER NOT NULL,
		iron INTEGER NOT NULL,
		grain INTEGER NOT NULL,
		influence INTEGER NOT NULL,
		relations_json TEXT NOT NULL,
		eliminated INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS build_queue (
		id TEXT PRIMARY KEY,
		hex_q INTEGER NOT NULL,
		hex_r INTEGER NOT NULL,
		building TEXT NOT NULL,
		faction INTEGER NOT NULL,
		turns_left INTEGER NOT NULL,
		paid_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS train_queue (
		id TEXT PRIMARY KEY,
		hex_q INTEGER NOT NULL,
		hex_r INTEGER NOT NULL,
		unit_type TEXT NOT NULL,
		faction INTEGER NOT NULL,
		turns_left INTEGER NOT NULL,
		paid_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		turn INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_turn ON events(turn);
	CREATE INDEX IF NOT EXISTS idx_units_faction ON units(faction);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveGame performs a full snapshot save: every table is replaced except the
// event archive, which only grows.
func (db *DB) SaveGame(g *engine.Game) error {
	slog.Info("saving game", "turn", g.Turn, "units", len(g.Units))

	if err := db.saveHexes(g); err != nil {
		return fmt.Errorf("save hexes: %w", err)
	}
	if err := db.saveUnits(g); err != nil {
		return fmt.Errorf("save units: %w", err)
	}
	if err := db.saveFactions(g); err != nil {
		return fmt.Errorf("save factions: %w", err)
	}
	if err := db.saveQueues(g); err != nil {
		return fmt.Errorf("save queues: %w", err)
	}
	if err := db.saveMetaAll(g); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Info("game saved")
	return nil
}

func (db *DB) saveHexes(g *engine.Game) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM hexes"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO hexes
		(q, r, terrain, owner, capital, buildings_json, visible_json, explored_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, hex := range g.Map.Hexes {
		buildingsJSON, _ := json.Marshal(hex.Buildings)
		visibleJSON, _ := json.Marshal(hex.Visible)
		exploredJSON, _ := json.Marshal(hex.Explored)

		_, err := stmt.Exec(
			hex.Coord.Q, hex.Coord.R, hex.Terrain, hex.Owner, boolInt(hex.Capital),
			string(buildingsJSON), string(visibleJSON), string(exploredJSON),
		)
		if err != nil {
			return fmt.Errorf("insert hex %s: %w", hex.Coord.HexID(), err)
		}
	}

	return tx.Commit()
}

func (db *DB) saveUnits(g *engine.Game) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM units"); err != nil {
		return err
	}

	for _, u := range g.Units {
		_, err := tx.Exec(`INSERT INTO units
			(id, type_id, faction, pos_q, pos_r, health, xp, moved, attacked)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.TypeID, u.Faction, u.Pos.Q, u.Pos.R, u.Health, u.XP,
			boolInt(u.MovedThisTurn), boolInt(u.AttackedThisTurn),
		)
		if err != nil {
			return fmt.Errorf("insert unit %s: %w", u.ID, err)
		}
	}

	return tx.Commit()
}

func (db *DB) saveFactions(g *engine.Game) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM factions"); err != nil {
		return err
	}

	for _, fs := range g.Factions {
		relationsJSON, _ := json.Marshal(fs.Relations)
		_, err := tx.Exec(`INSERT INTO factions
			(id, gold, iron, grain, influence, relations_json, eliminated)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			fs.ID, fs.Resources.Gold, fs.Resources.Iron, fs.Resources.Grain,
			fs.Resources.Influence, string(relationsJSON), boolInt(fs.Eliminated),
		)
		if err != nil {
			return fmt.Errorf("insert faction %d: %w", fs.ID, err)
		}
	}

	return tx.Commit()
}

func (db *DB) saveQueues(g *engine.Game) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM build_queue"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM train_queue"); err != nil {
		return err
	}

	for _, o := range g.BuildQueue {
		paidJSON, _ := json.Marshal(o.Paid)
		_, err := tx.Exec(`INSERT INTO build_queue
			(id, hex_q, hex_r, building, faction, turns_left, paid_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.Hex.Q, o.Hex.R, o.Building, o.Faction, o.TurnsLeft, string(paidJSON),
		)
		if err != nil {
			return fmt.Errorf("insert build order %s: %w", o.ID, err)
		}
	}

	for _, o := range g.TrainQueue {
		paidJSON, _ := json.Marshal(o.Paid)
		_, err := tx.Exec(`INSERT INTO train_queue
			(id, hex_q, hex_r, unit_type, faction, turns_left, paid_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.Hex.Q, o.Hex.R, o.UnitType, o.Faction, o.TurnsLeft, string(paidJSON),
		)
		if err != nil {
			return fmt.Errorf("insert train order %s: %w", o.ID, err)
		}
	}

	return tx.Commit()
}

func (db *DB) saveMetaAll(g *engine.Game) error {
	meta := map[string]string{
		"radius":         strconv.Itoa(g.Map.Radius),
		"turn":           strconv.Itoa(g.Turn),
		"phase":          strconv.Itoa(int(g.Phase)),
		"active_idx":     strconv.Itoa(g.ActiveIdx),
		"player_faction": strconv.Itoa(int(g.PlayerFaction)),
		"seed":           strconv.FormatInt(g.Seed, 10),
		"over":           strconv.FormatBool(g.Over),
		"winner":         strconv.Itoa(int(g.Winner)),
		"victory_kind":   g.VictoryKind,
	}
	for key, value := range meta {
		if err := db.SaveMeta(key, value); err != nil {
			return err
		}
	}
	return nil
}

// SaveEvents appends events to the archive.
func (db *DB) SaveEvents(events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (turn, category, description) VALUES (?, ?, ?)",
			e.Turn, e.Category, e.Description,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in game metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO game_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM game_meta WHERE key = ?", key)
	return value, err
}

// RecentEvents returns the most recent N archived events, newest first.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT turn, category, description FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

// HasSnapshot reports whether the database holds a saved game.
func (db *DB) HasSnapshot() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM game_meta"); err != nil {
		return false
	}
	return count > 0
}

// LoadGame rebuilds a complete Game from the latest snapshot.
func (db *DB) LoadGame() (*engine.Game, error) {
	meta, err := db.loadMetaAll()
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}

	g := &engine.Game{
		Factions: make(map[gamedata.FactionID]*engine.FactionState),
		Units:    make(map[string]*engine.Unit),
	}

	g.Turn = atoiOr(meta["turn"], 1)
	g.Phase = engine.Phase(atoiOr(meta["phase"], 0))
	g.ActiveIdx = atoiOr(meta["active_idx"], 0)
	g.PlayerFaction = gamedata.FactionID(atoiOr(meta["player_faction"], 1))
	g.Seed, _ = strconv.ParseInt(meta["seed"], 10, 64)
	g.Over = meta["over"] == "true"
	g.Winner = gamedata.FactionID(atoiOr(meta["winner"], 0))
	g.VictoryKind = meta["victory_kind"]

	if err := db.loadHexes(g, atoiOr(meta["radius"], 7)); err != nil {
		return nil, fmt.Errorf("load hexes: %w", err)
	}
	if err := db.loadUnits(g); err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}
	if err := db.loadFactions(g); err != nil {
		return nil, fmt.Errorf("load factions: %w", err)
	}
	if err := db.loadQueues(g); err != nil {
		return nil, fmt.Errorf("load queues: %w", err)
	}

	g.Rehydrate()
	slog.Info("game loaded", "turn", g.Turn, "units", len(g.Units))
	return g, nil
}

func (db *DB) loadMetaAll() (map[string]string, error) {
	rows, err := db.conn.Queryx("SELECT key, value FROM game_meta")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

func (db *DB) loadHexes(g *engine.Game, radius int) error {
	g.Map = world.NewMap(radius)

	rows, err := db.conn.Queryx(
		"SELECT q, r, terrain, owner, capital, buildings_json, visible_json, explored_json FROM hexes")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var q, r, capital int
		var terrain, owner uint8
		var buildingsJSON, visibleJSON, exploredJSON string
		if err := rows.Scan(&q, &r, &terrain, &owner, &capital,
			&buildingsJSON, &visibleJSON, &exploredJSON); err != nil {
			return err
		}

		hex := world.NewHex(hexmath.HexCoord{Q: q, R: r}, gamedata.Terrain(terrain))
		hex.Owner = gamedata.FactionID(owner)
		hex.Capital = capital != 0
		if err := json.Unmarshal([]byte(buildingsJSON), &hex.Buildings); err != nil {
			return fmt.Errorf("hex %d,%d buildings: %w", q, r, err)
		}
		if err := json.Unmarshal([]byte(visibleJSON), &hex.Visible); err != nil {
			return fmt.Errorf("hex %d,%d visible: %w", q, r, err)
		}
		if err := json.Unmarshal([]byte(exploredJSON), &hex.Explored); err != nil {
			return fmt.Errorf("hex %d,%d explored: %w", q, r, err)
		}
		g.Map.Set(hex)
	}
	return rows.Err()
}

func (db *DB) loadUnits(g *engine.Game) error {
	rows, err := db.conn.Queryx(
		"SELECT id, type_id, faction, pos_q, pos_r, health, xp, moved, attacked FROM units")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u engine.Unit
		var faction uint8
		var q, r, moved, attacked int
		if err := rows.Scan(&u.ID, &u.TypeID, &faction, &q, &r,
			&u.Health, &u.XP, &moved, &attacked); err != nil {
			return err
		}
		u.Faction = gamedata.FactionID(faction)
		u.Pos = hexmath.HexCoord{Q: q, R: r}
		u.MovedThisTurn = moved != 0
		u.AttackedThisTurn = attacked != 0
		unit := u
		g.Units[unit.ID] = &unit
	}
	return rows.Err()
}

func (db *DB) loadFactions(g *engine.Game) error {
	rows, err := db.conn.Queryx(
		"SELECT id, gold, iron, grain, influence, relations_json, eliminated FROM factions")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id uint8
		var eliminated int
		var relationsJSON string
		fs := &engine.FactionState{}
		if err := rows.Scan(&id, &fs.Resources.Gold, &fs.Resources.Iron,
			&fs.Resources.Grain, &fs.Resources.Influence, &relationsJSON, &eliminated); err != nil {
			return err
		}
		fs.ID = gamedata.FactionID(id)
		fs.Eliminated = eliminated != 0
		if err := json.Unmarshal([]byte(relationsJSON), &fs.Relations); err != nil {
			return fmt.Errorf("faction %d relations: %w", id, err)
		}
		g.Factions[fs.ID] = fs
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// Turn order follows the catalog; eliminated factions keep their slot.
	for _, def := range gamedata.AllFactions() {
		if _, ok := g.Factions[def.ID]; ok {
			g.TurnOrder = append(g.TurnOrder, def.ID)
		}
	}
	return nil
}

func (db *DB) loadQueues(g *engine.Game) error {
	buildRows, err := db.conn.Queryx(
		"SELECT id, hex_q, hex_r, building, faction, turns_left, paid_json FROM build_queue")
	if err != nil {
		return err
	}
	defer buildRows.Close()

	for buildRows.Next() {
		var o engine.BuildOrder
		var q, r int
		var faction uint8
		var paidJSON string
		if err := buildRows.Scan(&o.ID, &q, &r, &o.Building, &faction,
			&o.TurnsLeft, &paidJSON); err != nil {
			return err
		}
		o.Hex = hexmath.HexCoord{Q: q, R: r}
		o.Faction = gamedata.FactionID(faction)
		if err := json.Unmarshal([]byte(paidJSON), &o.Paid); err != nil {
			return fmt.Errorf("build order %s paid: %w", o.ID, err)
		}
		order := o
		g.BuildQueue = append(g.BuildQueue, &order)
	}
	if err := buildRows.Err(); err != nil {
		return err
	}

	trainRows, err := db.conn.Queryx(
		"SELECT id, hex_q, hex_r, unit_type, faction, turns_left, paid_json FROM train_queue")
	if err != nil {
		return err
	}
	defer trainRows.Close()

	for trainRows.Next() {
		var o engine.TrainOrder
		var q, r int
		var faction uint8
		var paidJSON string
		if err := trainRows.Scan(&o.ID, &q, &r, &o.UnitType, &faction,
			&o.TurnsLeft, &paidJSON); err != nil {
			return err
		}
		o.Hex = hexmath.HexCoord{Q: q, R: r}
		o.Faction = gamedata.FactionID(faction)
		if err := json.Unmarshal([]byte(paidJSON), &o.Paid); err != nil {
			return fmt.Errorf("train order %s paid: %w", o.ID, err)
		}
		order := o
		g.TrainQueue = append(g.TrainQueue, &order)
	}
	return trainRows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
