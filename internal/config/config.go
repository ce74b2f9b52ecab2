package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Game    GameConfig    `toml:"game"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	BindAddress string `toml:"bind_address"`
	ClientDir   string `toml:"client_dir"` // empty = probe ./client and ../client
}

type GameConfig struct {
	TickRate          int     `toml:"tick_rate"` // world updates per second
	VehicleCount      int     `toml:"vehicle_count"`
	NPCCount          int     `toml:"npc_count"`
	MissionCount      int     `toml:"mission_count"`
	WorldExtent       float64 `toml:"world_extent"`
	PlayerSpawnExtent float64 `toml:"player_spawn_extent"`
	VehicleRadius     float64 `toml:"vehicle_radius"`
	MissionRadius     float64 `toml:"mission_radius"`
	StartingMoney     int     `toml:"starting_money"`
	Seed              int64   `toml:"seed"` // 0 = random world each boot
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML config, layering it over the defaults. An empty path or
// a missing file yields the defaults; a file that exists but does not parse
// is an error.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			BindAddress: ":3001",
		},
		Game: GameConfig{
			TickRate:          30,
			VehicleCount:      20,
			NPCCount:          50,
			MissionCount:      10,
			WorldExtent:       1000,
			PlayerSpawnExtent: 100,
			VehicleRadius:     5,
			MissionRadius:     10,
			StartingMoney:     1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
