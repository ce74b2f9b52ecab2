package server

import "urbanpulse/server/internal/world"

// Server-to-client events. Every message carries a "type" discriminator;
// payload field names match what the presentation shell expects.

type gameStateMessage struct {
	Type     string          `json:"type"`
	Players  []world.Player  `json:"players"`
	Vehicles []world.Vehicle `json:"vehicles"`
	NPCs     []world.NPC     `json:"npcs"`
	Missions []world.Mission `json:"missions"`
}

type playerJoinedMessage struct {
	Type   string       `json:"type"`
	Player world.Player `json:"player"`
}

type playerLeftMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type playerMovedMessage struct {
	Type     string         `json:"type"`
	ID       string         `json:"id"`
	Position world.Vec3     `json:"position"`
	Rotation world.Rotation `json:"rotation"`
}

type vehicleEnteredMessage struct {
	Type      string `json:"type"`
	PlayerID  string `json:"playerId"`
	VehicleID string `json:"vehicleId"`
}

type vehicleExitedMessage struct {
	Type      string `json:"type"`
	PlayerID  string `json:"playerId"`
	VehicleID string `json:"vehicleId"`
}

type vehicleMovedMessage struct {
	Type      string         `json:"type"`
	VehicleID string         `json:"vehicleId"`
	Position  world.Vec3     `json:"position"`
	Rotation  world.Rotation `json:"rotation"`
}

type missionStartedMessage struct {
	Type    string        `json:"type"`
	Mission world.Mission `json:"mission"`
}

type missionCompletedMessage struct {
	Type   string `json:"type"`
	Reward int    `json:"reward"`
}

// missionUpdatedMessage is the notice fanned out to everyone except the
// acting player; its status values are "started" and "completed".
type missionUpdatedMessage struct {
	Type      string `json:"type"`
	MissionID string `json:"missionId"`
	Status    string `json:"status"`
	PlayerID  string `json:"playerId"`
}

type gameUpdateMessage struct {
	Type string      `json:"type"`
	NPCs []world.NPC `json:"npcs"`
	Time int64       `json:"time"`
}

type heartbeatMessage struct {
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rtt"`
}

// DiagnosticsPlayer is the per-session liveness view served by the
// diagnostics endpoint.
type DiagnosticsPlayer struct {
	ID            string `json:"id"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
	RTTMillis     int64  `json:"rttMillis"`
}
