// Package config provides YAML-based configuration loading for the
// parallax viewer.
package config

import "time"

// Config is the full application configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	World   WorldConfig   `yaml:"world"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// DisplayConfig defines how the map is projected onto the terminal.
type DisplayConfig struct {
	TileWidth  int `yaml:"tile_width"`
	TileHeight int `yaml:"tile_height"`
	TickRate   int `yaml:"tick_rate"`
}

// WorldConfig defines where the world comes from and how it plays.
type WorldConfig struct {
	StartMap    int     `yaml:"start_map"`
	PlayerSpeed float64 `yaml:"player_speed"`
	MapsDir     string  `yaml:"maps_dir"`
	AssetsDir   string  `yaml:"assets_dir"`
}

// StorageConfig defines the save database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // "~/" is expanded to the home directory
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Validate fills out-of-range values with defaults.
func (c *Config) Validate() {
	def := DefaultConfig()
	if c.Display.TileWidth <= 0 {
		c.Display.TileWidth = def.Display.TileWidth
	}
	if c.Display.TileHeight <= 0 {
		c.Display.TileHeight = def.Display.TileHeight
	}
	if c.Display.TickRate <= 0 {
		c.Display.TickRate = def.Display.TickRate
	}
	if c.World.StartMap <= 0 {
		c.World.StartMap = def.World.StartMap
	}
	if c.World.PlayerSpeed <= 0 || c.World.PlayerSpeed > 1 {
		c.World.PlayerSpeed = def.World.PlayerSpeed
	}
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = def.Server.IdleTimeout
	}
}
