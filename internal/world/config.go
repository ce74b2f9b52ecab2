package world

import "time"

// Config captures the knobs used when seeding and running a world.
type Config struct {
	VehicleCount int
	NPCCount     int
	MissionCount int

	// WorldExtent is the side length of the square area vehicles, NPCs and
	// missions are scattered over, centered on the origin. PlayerSpawnExtent
	// bounds the smaller area new players spawn in.
	WorldExtent       float64
	PlayerSpawnExtent float64

	// Interaction radii, planar distance, boundary inclusive.
	VehicleRadius float64
	MissionRadius float64

	NPCDwell      time.Duration
	NPCMoveChance float64
	NPCStepExtent float64

	StartingMoney int

	// Seed makes world generation and NPC wandering deterministic when
	// non-zero. Zero seeds from the clock.
	Seed int64
}

// DefaultConfig mirrors the default city: 20 vehicles, 50 NPCs, 10 missions
// scattered over a 1000-unit square.
func DefaultConfig() Config {
	return Config{
		VehicleCount:      20,
		NPCCount:          50,
		MissionCount:      10,
		WorldExtent:       1000,
		PlayerSpawnExtent: 100,
		VehicleRadius:     5,
		MissionRadius:     10,
		NPCDwell:          5 * time.Second,
		NPCMoveChance:     0.3,
		NPCStepExtent:     10,
		StartingMoney:     1000,
	}
}

// normalized returns a config with zero or negative fields replaced by
// defaults so a partially filled config still produces a playable world.
func (cfg Config) normalized() Config {
	defaults := DefaultConfig()
	if cfg.VehicleCount < 0 {
		cfg.VehicleCount = defaults.VehicleCount
	}
	if cfg.NPCCount < 0 {
		cfg.NPCCount = defaults.NPCCount
	}
	if cfg.MissionCount < 0 {
		cfg.MissionCount = defaults.MissionCount
	}
	if cfg.WorldExtent <= 0 {
		cfg.WorldExtent = defaults.WorldExtent
	}
	if cfg.PlayerSpawnExtent <= 0 {
		cfg.PlayerSpawnExtent = defaults.PlayerSpawnExtent
	}
	if cfg.VehicleRadius <= 0 {
		cfg.VehicleRadius = defaults.VehicleRadius
	}
	if cfg.MissionRadius <= 0 {
		cfg.MissionRadius = defaults.MissionRadius
	}
	if cfg.NPCDwell <= 0 {
		cfg.NPCDwell = defaults.NPCDwell
	}
	if cfg.NPCMoveChance <= 0 {
		cfg.NPCMoveChance = defaults.NPCMoveChance
	}
	if cfg.NPCStepExtent <= 0 {
		cfg.NPCStepExtent = defaults.NPCStepExtent
	}
	if cfg.StartingMoney <= 0 {
		cfg.StartingMoney = defaults.StartingMoney
	}
	return cfg
}
