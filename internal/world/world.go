package world

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// World is the authoritative registry of players, vehicles, NPCs and
// missions. Every exported operation is a complete critical section under
// one mutex, so callers observe registry mutations as atomic steps ordered
// by arrival.
type World struct {
	mu       sync.Mutex
	cfg      Config
	rng      *rand.Rand
	logger   *zap.Logger
	players  map[string]*playerState
	vehicles map[string]*vehicleState
	npcs     map[string]*npcState
	missions map[string]*missionState
	nextID   uint64
}

// New constructs a world and seeds its vehicles, NPCs and missions.
func New(cfg Config, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.normalized()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w := &World{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		logger:   logger,
		players:  make(map[string]*playerState),
		vehicles: make(map[string]*vehicleState),
		npcs:     make(map[string]*npcState),
		missions: make(map[string]*missionState),
	}
	w.seedVehicles()
	w.seedNPCs()
	w.seedMissions()

	logger.Info("world seeded",
		zap.Int("vehicles", len(w.vehicles)),
		zap.Int("npcs", len(w.npcs)),
		zap.Int("missions", len(w.missions)))
	return w
}

var vehicleTypes = []VehicleType{
	VehicleSedan, VehicleSports, VehicleSUV, VehicleTruck, VehiclePolice, VehicleTaxi,
}

func (w *World) seedVehicles() {
	for i := 0; i < w.cfg.VehicleCount; i++ {
		vehicle := &vehicleState{Vehicle: Vehicle{
			ID:       fmt.Sprintf("vehicle_%d", w.allocID()),
			Type:     vehicleTypes[w.rng.Intn(len(vehicleTypes))],
			Position: w.randomPosition(w.cfg.WorldExtent),
			Rotation: Rotation{Y: w.randomAngle()},
		}}
		w.vehicles[vehicle.ID] = vehicle
	}
}

func (w *World) seedNPCs() {
	now := time.Now()
	for i := 0; i < w.cfg.NPCCount; i++ {
		kind := NPCCivilian
		if w.randomFloat() > 0.8 {
			kind = NPCPolice
		}
		npc := &npcState{
			NPC: NPC{
				ID:       fmt.Sprintf("npc_%d", w.allocID()),
				Type:     kind,
				Position: w.randomPosition(w.cfg.WorldExtent),
				Rotation: Rotation{Y: w.randomAngle()},
				State:    "idle",
			},
			lastUpdate: now,
		}
		w.npcs[npc.ID] = npc
	}
}

func (w *World) seedMissions() {
	missionTypes := []MissionType{MissionDelivery, MissionChase, MissionTheft}
	for i := 0; i < w.cfg.MissionCount; i++ {
		mission := &missionState{Mission: Mission{
			ID:          fmt.Sprintf("mission_%d", w.allocID()),
			Type:        missionTypes[w.rng.Intn(len(missionTypes))],
			Title:       fmt.Sprintf("Mission %d", i+1),
			Description: "Complete this mission for rewards",
			Position:    w.randomPosition(w.cfg.WorldExtent),
			Reward:      w.rng.Intn(1000) + 100,
			Status:      MissionAvailable,
		}}
		w.missions[mission.ID] = mission
	}
}

func (w *World) allocID() uint64 {
	w.nextID++
	return w.nextID
}

// Players returns a point-in-time copy of every player.
func (w *World) Players() []Player {
	w.mu.Lock()
	defer w.mu.Unlock()

	players := make([]Player, 0, len(w.players))
	for _, state := range w.players {
		players = append(players, state.snapshot())
	}
	return players
}

// Vehicles returns a point-in-time copy of every vehicle.
func (w *World) Vehicles() []Vehicle {
	w.mu.Lock()
	defer w.mu.Unlock()

	vehicles := make([]Vehicle, 0, len(w.vehicles))
	for _, state := range w.vehicles {
		vehicles = append(vehicles, state.snapshot())
	}
	return vehicles
}

// NPCs returns a point-in-time copy of every NPC.
func (w *World) NPCs() []NPC {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.npcSnapshotLocked()
}

func (w *World) npcSnapshotLocked() []NPC {
	npcs := make([]NPC, 0, len(w.npcs))
	for _, state := range w.npcs {
		npcs = append(npcs, state.snapshot())
	}
	return npcs
}

// Missions returns a point-in-time copy of every mission, completed ones
// included; a finished mission stays visible to clients.
func (w *World) Missions() []Mission {
	w.mu.Lock()
	defer w.mu.Unlock()

	missions := make([]Mission, 0, len(w.missions))
	for _, state := range w.missions {
		missions = append(missions, state.snapshot())
	}
	return missions
}
