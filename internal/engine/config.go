package engine

import (
	"github.com/talgya/ironmarch/internal/gamedata"
	"github.com/talgya/ironmarch/internal/mapgen"
)

// GameConfig bundles everything needed to start a game.
type GameConfig struct {
	MapRadius     int                `json:"map_radius"`
	Seed          int64              `json:"seed"`
	PlayerFaction gamedata.FactionID `json:"player_faction"`
}

// DefaultGameConfig returns sensible defaults: the standard map size with the
// Concord as the observed faction.
func DefaultGameConfig() GameConfig {
	gen := mapgen.DefaultGenConfig()
	return GameConfig{
		MapRadius:     gen.Radius,
		Seed:          gen.Seed,
		PlayerFaction: gamedata.FactionConcord,
	}
}

// StartGame creates a new game from a config.
func StartGame(cfg GameConfig) (*Game, error) {
	return NewGame(mapgen.GenConfig{Radius: cfg.MapRadius, Seed: cfg.Seed}, cfg.PlayerFaction)
}
