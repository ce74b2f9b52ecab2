package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	server "urbanpulse/server"
	"urbanpulse/server/internal/world"
)

// clientMessage is the single inbound envelope. Fields not used by a given
// event type are left at their zero values; position and rotation are
// pointers so a missing transform can be told apart from the origin.
type clientMessage struct {
	Type      string          `json:"type"`
	Position  *world.Vec3     `json:"position"`
	Rotation  *world.Rotation `json:"rotation"`
	VehicleID string          `json:"vehicleId"`
	MissionID string          `json:"missionId"`
	SentAt    int64           `json:"sentAt"`
}

// Gateway owns the per-connection read loop and the inbound dispatch table.
type Gateway struct {
	hub    *server.Hub
	logger *zap.Logger
}

// NewGateway constructs a session gateway bound to the given hub.
func NewGateway(hub *server.Hub, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{hub: hub, logger: logger}
}

// dispatch maps inbound event names to handlers. Keeping the mapping as
// data makes the gateway's surface auditable in one place and lets tests
// drive handlers without a socket.
var dispatch = map[string]func(*Gateway, string, clientMessage){
	"playerMove":      (*Gateway).playerMove,
	"enterVehicle":    (*Gateway).enterVehicle,
	"exitVehicle":     (*Gateway).exitVehicle,
	"vehicleMove":     (*Gateway).vehicleMove,
	"startMission":    (*Gateway).startMission,
	"completeMission": (*Gateway).completeMission,
	"heartbeat":       (*Gateway).heartbeat,
}

// Serve runs one connection from open to close. The connection becomes a
// player immediately on open and stays one until the socket drops; there is
// no handshake state in between.
func (g *Gateway) Serve(conn *websocket.Conn) {
	playerID, ok := g.hub.Connect(conn)
	if !ok {
		return
	}
	g.logger.Info("session opened", zap.String("player", playerID))

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			g.logger.Info("session closed", zap.String("player", playerID))
			g.hub.Disconnect(playerID)
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			g.logger.Warn("discarding malformed message",
				zap.String("player", playerID), zap.Error(err))
			continue
		}

		handler, ok := dispatch[msg.Type]
		if !ok {
			g.logger.Warn("unknown message type",
				zap.String("player", playerID), zap.String("event", msg.Type))
			continue
		}
		handler(g, playerID, msg)
	}
}

func (g *Gateway) playerMove(playerID string, msg clientMessage) {
	if msg.Position == nil || msg.Rotation == nil {
		return
	}
	g.hub.HandleMove(playerID, *msg.Position, *msg.Rotation)
}

func (g *Gateway) enterVehicle(playerID string, msg clientMessage) {
	if msg.VehicleID == "" {
		return
	}
	g.hub.HandleEnterVehicle(playerID, msg.VehicleID)
}

func (g *Gateway) exitVehicle(playerID string, _ clientMessage) {
	g.hub.HandleExitVehicle(playerID)
}

func (g *Gateway) vehicleMove(playerID string, msg clientMessage) {
	if msg.VehicleID == "" || msg.Position == nil || msg.Rotation == nil {
		return
	}
	g.hub.HandleVehicleMove(playerID, msg.VehicleID, *msg.Position, *msg.Rotation)
}

func (g *Gateway) startMission(playerID string, msg clientMessage) {
	if msg.MissionID == "" {
		return
	}
	g.hub.HandleStartMission(playerID, msg.MissionID)
}

func (g *Gateway) completeMission(playerID string, msg clientMessage) {
	if msg.MissionID == "" {
		return
	}
	g.hub.HandleCompleteMission(playerID, msg.MissionID)
}

func (g *Gateway) heartbeat(playerID string, msg clientMessage) {
	g.hub.HandleHeartbeat(playerID, time.Now(), msg.SentAt)
}
