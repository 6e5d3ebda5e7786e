// Command ironmarch runs a headless four-faction campaign: the AI plays every
// faction, state autosaves each turn, and the HTTP API exposes the world for
// observers and external drivers.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/ironmarch/internal/ai"
	"github.com/talgya/ironmarch/internal/api"
	"github.com/talgya/ironmarch/internal/engine"
	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/persistence"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("IRONMARCH: four banners, one sphere")

	cfg := engine.DefaultGameConfig()
	if s := os.Getenv("IRONMARCH_SEED"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			cfg.Seed = v
		}
	}
	if s := os.Getenv("IRONMARCH_RADIUS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			cfg.MapRadius = v
		}
	}

	apiPort := 8080
	if s := os.Getenv("IRONMARCH_PORT"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			apiPort = v
		}
	}

	maxTurns := 200
	if s := os.Getenv("IRONMARCH_MAX_TURNS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			maxTurns = v
		}
	}

	turnDelay := 500 * time.Millisecond
	if s := os.Getenv("IRONMARCH_TURN_DELAY_MS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			turnDelay = time.Duration(v) * time.Millisecond
		}
	}

	dbPath := "data/ironmarch.db"
	if s := os.Getenv("IRONMARCH_DB"); s != "" {
		dbPath = s
	}

	os.MkdirAll("data", 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	var game *engine.Game
	if db.HasSnapshot() {
		slog.Info("found saved game, loading...")
		game, err = db.LoadGame()
		if err != nil {
			slog.Error("failed to load game", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("no saved game, starting fresh", "seed", cfg.Seed, "radius", cfg.MapRadius)
		game, err = engine.StartGame(cfg)
		if err != nil {
			slog.Error("failed to start game", "error", err)
			os.Exit(1)
		}
		if err := db.SaveGame(game); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	adminKey := os.Getenv("IRONMARCH_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("IRONMARCH_ADMIN_KEY not set, action POST endpoints disabled")
	}

	var mu sync.Mutex
	hub := api.NewHub()
	server := &api.Server{
		Game:     game,
		Hub:      hub,
		DB:       db,
		Port:     apiPort,
		AdminKey: adminKey,
		Mu:       &mu,
	}
	server.Start()

	stop := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		close(stop)
	}()

	fmt.Printf("\nIronmarch begins: %s, %d hexes, seed %d.\n",
		game.Map.String(), game.Map.HexCount(), game.Seed)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", apiPort)
	fmt.Println("Running campaign... (Ctrl+C to stop)")

	runCampaign(game, db, hub, &mu, maxTurns, turnDelay, stop)

	slog.Info("final save...")
	mu.Lock()
	if err := db.SaveGame(game); err != nil {
		slog.Error("final save failed", "error", err)
	}
	if err := db.SaveEvents(game.Events); err != nil {
		slog.Error("event archive failed", "error", err)
	}
	mu.Unlock()

	printOutcome(game)
}

// runCampaign plays AI turns until victory, the turn cap, or shutdown.
func runCampaign(game *engine.Game, db *persistence.DB, hub *api.Hub, mu *sync.Mutex, maxTurns int, delay time.Duration, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		mu.Lock()
		if game.Over || game.Turn > maxTurns {
			mu.Unlock()
			return
		}

		turn := game.Turn
		before := len(game.Events)
		for !game.Over && game.Turn == turn {
			ai.TakeTurn(game, game.ActiveFaction())
		}
		hub.Broadcast(game.EventsSince(before))

		if err := db.SaveGame(game); err != nil {
			slog.Error("autosave failed", "error", err, "turn", turn)
		}

		slog.Info("turn complete",
			"turn", turn,
			"units", len(game.Units),
			"events", len(game.Events)-before,
		)
		mu.Unlock()

		select {
		case <-stop:
			return
		case <-time.After(delay):
		}
	}
}

// printOutcome writes the end-of-campaign summary.
func printOutcome(game *engine.Game) {
	if game.Over {
		fmt.Printf("\n%s wins by %s on turn %d.\n",
			gamedata.FactionName(game.Winner), game.VictoryKind, game.Turn)
	} else {
		fmt.Printf("\nCampaign halted on turn %d with no victor.\n", game.Turn)
	}
	for _, def := range gamedata.AllFactions() {
		fs := game.Factions[def.ID]
		status := "standing"
		if fs.Eliminated {
			status = "fallen"
		}
		fmt.Printf("  %-16s %s — %s gold, %d hexes, %d units\n",
			def.Name, status,
			humanize.Comma(int64(fs.Resources.Gold)),
			game.Map.OwnedCount(def.ID),
			len(game.UnitsOf(def.ID)))
	}
}
