package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"urbanpulse/server/internal/world"
)

// HubConfig carries the session-layer knobs.
type HubConfig struct {
	TickRate          int
	WriteWait         time.Duration
	HeartbeatInterval time.Duration
	DisconnectAfter   time.Duration
}

// DefaultHubConfig returns the production defaults: 30 Hz world updates and
// heartbeat-based pruning after three missed intervals.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		TickRate:          defaultTickRate,
		WriteWait:         writeWait,
		HeartbeatInterval: heartbeatInterval,
		DisconnectAfter:   disconnectAfter,
	}
}

func (cfg HubConfig) normalized() HubConfig {
	defaults := DefaultHubConfig()
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaults.TickRate
	}
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = defaults.WriteWait
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = defaults.HeartbeatInterval
	}
	if cfg.DisconnectAfter <= 0 {
		cfg.DisconnectAfter = 3 * cfg.HeartbeatInterval
	}
	return cfg
}

// SessionConn is the subset of *websocket.Conn the hub needs. Narrowing the
// dependency keeps fan-out testable without sockets.
type SessionConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// session wraps one live connection. The write mutex serializes writers
// (read loop replies and broadcast fan-out share the socket); heartbeat
// bookkeeping is guarded by the hub mutex.
type session struct {
	conn      SessionConn
	writeMu   sync.Mutex
	writeWait time.Duration

	lastHeartbeat time.Time
	lastRTT       time.Duration
}

func (s *session) write(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub binds live connections to player identities and fans world-state
// changes out to them. The world registry stays networking-free; the hub is
// the only component that knows both sides.
type Hub struct {
	mu       sync.Mutex
	cfg      HubConfig
	world    *world.World
	sessions map[string]*session

	logger    *zap.Logger
	telemetry *telemetryCounters
}

// NewHub wires a hub to an existing world.
func NewHub(w *world.World, cfg HubConfig, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		cfg:       cfg.normalized(),
		world:     w,
		sessions:  make(map[string]*session),
		logger:    logger,
		telemetry: newTelemetryCounters(),
	}
}

// World exposes the registry for the HTTP layer's read-only endpoints.
func (h *Hub) World() *world.World {
	return h.world
}

// Connect allocates a player identity for a fresh connection, sends the full
// world snapshot to it, and announces the newcomer to everyone else. The
// returned id doubles as the player id for the connection's lifetime.
func (h *Hub) Connect(conn SessionConn) (string, bool) {
	playerID := uuid.NewString()
	player := h.world.AddPlayer(playerID)

	sess := &session{
		conn:          conn,
		writeWait:     h.cfg.WriteWait,
		lastHeartbeat: time.Now(),
	}

	h.mu.Lock()
	h.sessions[playerID] = sess
	h.mu.Unlock()

	snapshot := gameStateMessage{
		Type:     "gameState",
		Players:  h.world.Players(),
		Vehicles: h.world.Vehicles(),
		NPCs:     h.world.NPCs(),
		Missions: h.world.Missions(),
	}
	if !h.send(playerID, snapshot) {
		return "", false
	}

	h.broadcast(playerJoinedMessage{Type: "playerJoined", Player: player}, playerID)
	return playerID, true
}

// Disconnect tears a session down: the registry releases any vehicle the
// player was driving before the record is deleted, then the remaining peers
// learn the player left. Safe to call twice.
func (h *Hub) Disconnect(playerID string) {
	h.mu.Lock()
	sess, ok := h.sessions[playerID]
	if ok {
		delete(h.sessions, playerID)
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	sess.conn.Close()

	h.world.RemovePlayer(playerID)
	h.broadcast(playerLeftMessage{Type: "playerLeft", ID: playerID}, playerID)
}

// HandleMove records a player transform and echoes it to everyone except the
// sender, who already has the freshest local transform. Unknown players are
// ignored.
func (h *Hub) HandleMove(playerID string, position world.Vec3, rotation world.Rotation) {
	if !h.world.UpdatePlayerPosition(playerID, position, rotation) {
		return
	}
	h.broadcast(playerMovedMessage{
		Type:     "playerMoved",
		ID:       playerID,
		Position: position,
		Rotation: rotation,
	}, playerID)
}

// HandleEnterVehicle attempts a vehicle claim. Success is confirmed to every
// connection including the actor, so the actor's optimistic local state is
// corrected by the same authoritative event its peers receive. Failure emits
// nothing.
func (h *Hub) HandleEnterVehicle(playerID, vehicleID string) {
	result := h.world.EnterVehicle(playerID, vehicleID)
	if !result.OK {
		h.logger.Debug("enterVehicle rejected",
			zap.String("player", playerID),
			zap.String("vehicle", vehicleID),
			zap.String("reason", string(result.Reason)))
		return
	}
	h.broadcast(vehicleEnteredMessage{
		Type:      "vehicleEntered",
		PlayerID:  playerID,
		VehicleID: vehicleID,
	}, "")
}

// HandleExitVehicle releases the player's vehicle and tells every connection
// which vehicle became free. Failure emits nothing.
func (h *Hub) HandleExitVehicle(playerID string) {
	vehicleID, result := h.world.ExitVehicle(playerID)
	if !result.OK {
		h.logger.Debug("exitVehicle rejected",
			zap.String("player", playerID),
			zap.String("reason", string(result.Reason)))
		return
	}
	h.broadcast(vehicleExitedMessage{
		Type:      "vehicleExited",
		PlayerID:  playerID,
		VehicleID: vehicleID,
	}, "")
}

// HandleVehicleMove records a vehicle transform and echoes it to everyone
// except the sender. Unknown vehicles are ignored.
func (h *Hub) HandleVehicleMove(playerID, vehicleID string, position world.Vec3, rotation world.Rotation) {
	if !h.world.UpdateVehiclePosition(vehicleID, position, rotation) {
		return
	}
	h.broadcast(vehicleMovedMessage{
		Type:      "vehicleMoved",
		VehicleID: vehicleID,
		Position:  position,
		Rotation:  rotation,
	}, playerID)
}

// HandleStartMission assigns a mission: the starter gets the full mission
// object back, the rest get a status notice. Failure emits nothing.
func (h *Hub) HandleStartMission(playerID, missionID string) {
	mission, result := h.world.StartMission(playerID, missionID)
	if !result.OK {
		h.logger.Debug("startMission rejected",
			zap.String("player", playerID),
			zap.String("mission", missionID),
			zap.String("reason", string(result.Reason)))
		return
	}
	h.send(playerID, missionStartedMessage{Type: "missionStarted", Mission: mission})
	h.broadcast(missionUpdatedMessage{
		Type:      "missionUpdated",
		MissionID: missionID,
		Status:    "started",
		PlayerID:  playerID,
	}, playerID)
}

// HandleCompleteMission pays a mission out: the completer gets the reward,
// the rest get a status notice. Failure emits nothing.
func (h *Hub) HandleCompleteMission(playerID, missionID string) {
	reward, result := h.world.CompleteMission(playerID, missionID)
	if !result.OK {
		h.logger.Debug("completeMission rejected",
			zap.String("player", playerID),
			zap.String("mission", missionID),
			zap.String("reason", string(result.Reason)))
		return
	}
	h.send(playerID, missionCompletedMessage{Type: "missionCompleted", Reward: reward})
	h.broadcast(missionUpdatedMessage{
		Type:      "missionUpdated",
		MissionID: missionID,
		Status:    "completed",
		PlayerID:  playerID,
	}, playerID)
}

// HandleHeartbeat records liveness and round-trip time for a session and
// acks the sender with the measured RTT.
func (h *Hub) HandleHeartbeat(playerID string, receivedAt time.Time, clientSent int64) {
	h.mu.Lock()
	sess, ok := h.sessions[playerID]
	if !ok {
		h.mu.Unlock()
		return
	}
	sess.lastHeartbeat = receivedAt
	if clientSent > 0 {
		clientTime := time.UnixMilli(clientSent)
		if clientTime.Before(receivedAt.Add(5 * time.Second)) {
			rtt := receivedAt.Sub(clientTime)
			if rtt < 0 {
				rtt = 0
			}
			sess.lastRTT = rtt
		}
	}
	rtt := sess.lastRTT
	h.mu.Unlock()

	h.send(playerID, heartbeatMessage{
		Type:       "heartbeat",
		ServerTime: receivedAt.UnixMilli(),
		ClientTime: clientSent,
		RTTMillis:  rtt.Milliseconds(),
	})
}

// Run drives the fixed-rate simulation loop until the context is canceled.
// Each iteration prunes sessions that missed their heartbeats, advances NPC
// wandering, and pushes the periodic world update to every session.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			started := time.Now()

			for _, stale := range h.staleSessions(now) {
				h.logger.Info("disconnecting session after missed heartbeats",
					zap.String("player", stale))
				h.Disconnect(stale)
			}

			npcs := h.world.Tick(now)
			h.broadcast(gameUpdateMessage{
				Type: "gameUpdate",
				NPCs: npcs,
				Time: now.UnixMilli(),
			}, "")

			h.telemetry.RecordTickDuration(time.Since(started))
		}
	}
}

func (h *Hub) staleSessions(now time.Time) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var stale []string
	for id, sess := range h.sessions {
		if now.Sub(sess.lastHeartbeat) > h.cfg.DisconnectAfter {
			stale = append(stale, id)
		}
	}
	return stale
}

// send delivers one message to one session. A failed write tears the
// session down. Returns false when the session is gone.
func (h *Hub) send(playerID string, payload any) bool {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal message", zap.Error(err))
		return true
	}

	h.mu.Lock()
	sess, ok := h.sessions[playerID]
	h.mu.Unlock()
	if !ok {
		return false
	}

	if err := sess.write(data); err != nil {
		h.logger.Warn("dropping session after failed write",
			zap.String("player", playerID), zap.Error(err))
		h.Disconnect(playerID)
		return false
	}
	h.telemetry.RecordSend(len(data), 1)
	return true
}

// broadcast fans one message out to every session, optionally excluding the
// originator. Marshals once; writes happen outside the hub mutex.
func (h *Hub) broadcast(payload any, exclude string) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal broadcast", zap.Error(err))
		return
	}

	h.mu.Lock()
	targets := make(map[string]*session, len(h.sessions))
	for id, sess := range h.sessions {
		if id == exclude {
			continue
		}
		targets[id] = sess
	}
	h.mu.Unlock()

	var failed []string
	for id, sess := range targets {
		if err := sess.write(data); err != nil {
			h.logger.Warn("dropping session after failed broadcast",
				zap.String("player", id), zap.Error(err))
			failed = append(failed, id)
		}
	}
	h.telemetry.RecordSend(len(data), len(targets)-len(failed))

	for _, id := range failed {
		h.Disconnect(id)
	}
}

// DiagnosticsSnapshot exposes per-session heartbeat data for the
// diagnostics endpoint.
func (h *Hub) DiagnosticsSnapshot() []DiagnosticsPlayer {
	h.mu.Lock()
	defer h.mu.Unlock()

	players := make([]DiagnosticsPlayer, 0, len(h.sessions))
	for id, sess := range h.sessions {
		players = append(players, DiagnosticsPlayer{
			ID:            id,
			LastHeartbeat: sess.lastHeartbeat.UnixMilli(),
			RTTMillis:     sess.lastRTT.Milliseconds(),
		})
	}
	return players
}

// TickRate reports the configured update frequency.
func (h *Hub) TickRate() int {
	return h.cfg.TickRate
}

// Telemetry exposes the broadcast counters.
func (h *Hub) Telemetry() TelemetrySnapshot {
	return h.telemetry.Snapshot()
}
