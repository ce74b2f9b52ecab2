package world

import "time"

// Vec3 is a world-space position. Vehicles and players move on the ground
// plane, so y is carried for the client but ignored by distance checks.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Rotation is a heading around the vertical axis, in radians.
type Rotation struct {
	Y float64 `json:"y"`
}

type Player struct {
	ID             string   `json:"id"`
	Model          string   `json:"type"`
	Position       Vec3     `json:"position"`
	Rotation       Rotation `json:"rotation"`
	InVehicle      bool     `json:"inVehicle"`
	CurrentVehicle string   `json:"currentVehicle"`
	Missions       []string `json:"missions"`
	Money          int      `json:"money"`
}

type VehicleType string

const (
	VehicleSedan  VehicleType = "sedan"
	VehicleSports VehicleType = "sports"
	VehicleSUV    VehicleType = "suv"
	VehicleTruck  VehicleType = "truck"
	VehiclePolice VehicleType = "police"
	VehicleTaxi   VehicleType = "taxi"
)

type Vehicle struct {
	ID       string      `json:"id"`
	Type     VehicleType `json:"type"`
	Position Vec3        `json:"position"`
	Rotation Rotation    `json:"rotation"`
	Occupied bool        `json:"occupied"`
	Driver   string      `json:"driver"`
}

type NPCType string

const (
	NPCCivilian NPCType = "civilian"
	NPCPolice   NPCType = "police"
)

type NPC struct {
	ID         string   `json:"id"`
	Type       NPCType  `json:"type"`
	Position   Vec3     `json:"position"`
	Rotation   Rotation `json:"rotation"`
	State      string   `json:"state"`
	LastUpdate int64    `json:"lastUpdate"`
}

type MissionType string

const (
	MissionDelivery MissionType = "delivery"
	MissionChase    MissionType = "chase"
	MissionTheft    MissionType = "theft"
)

type MissionStatus string

const (
	MissionAvailable  MissionStatus = "available"
	MissionInProgress MissionStatus = "in_progress"
	MissionCompleted  MissionStatus = "completed"
)

type Mission struct {
	ID          string        `json:"id"`
	Type        MissionType   `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Position    Vec3          `json:"position"`
	Reward      int           `json:"reward"`
	Status      MissionStatus `json:"status"`
	AssignedTo  string        `json:"assignedTo"`
}

type playerState struct {
	Player
}

func (s *playerState) snapshot() Player {
	player := s.Player
	player.Missions = append([]string(nil), s.Missions...)
	return player
}

type vehicleState struct {
	Vehicle
}

func (s *vehicleState) snapshot() Vehicle {
	return s.Vehicle
}

type npcState struct {
	NPC
	lastUpdate time.Time
}

func (s *npcState) snapshot() NPC {
	npc := s.NPC
	npc.LastUpdate = s.lastUpdate.UnixMilli()
	return npc
}

type missionState struct {
	Mission
}

func (s *missionState) snapshot() Mission {
	return s.Mission
}
