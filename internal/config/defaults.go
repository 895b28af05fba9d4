package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/parallax.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			TileWidth:  2,
			TileHeight: 1,
			TickRate:   30,
		},
		World: WorldConfig{
			StartMap:    1,
			PlayerSpeed: 0.125,
		},
		Storage: StorageConfig{
			DBPath: "~/.parallax/saves.db",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
