package world

import "go.uber.org/zap"

const defaultPlayerModel = "male"

// AddPlayer registers a player under the given session id at a randomized
// spawn point. Always succeeds; the returned snapshot is what the gateway
// announces to other sessions.
func (w *World) AddPlayer(playerID string) Player {
	w.mu.Lock()
	defer w.mu.Unlock()

	player := &playerState{Player: Player{
		ID:       playerID,
		Model:    defaultPlayerModel,
		Position: w.randomPosition(w.cfg.PlayerSpawnExtent),
		Missions: []string{},
		Money:    w.cfg.StartingMoney,
	}}
	w.players[playerID] = player

	w.logger.Info("player joined", zap.String("player", playerID))
	return player.snapshot()
}

// RemovePlayer deletes a player record, forcing a vehicle exit first so the
// vehicle becomes claimable again. It returns the freed vehicle id, if any,
// for broadcast. Unknown ids are a no-op.
func (w *World) RemovePlayer(playerID string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	player, ok := w.players[playerID]
	if !ok {
		return "", false
	}

	freedVehicle := ""
	if player.InVehicle {
		freedVehicle = w.releaseVehicleLocked(player)
	}
	delete(w.players, playerID)

	w.logger.Info("player left", zap.String("player", playerID))
	return freedVehicle, freedVehicle != ""
}

// UpdatePlayerPosition overwrites a player's transform. The client is
// trusted; no plausibility check is applied. Unknown ids are a no-op.
func (w *World) UpdatePlayerPosition(playerID string, position Vec3, rotation Rotation) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	player, ok := w.players[playerID]
	if !ok {
		return false
	}
	player.Position = position
	player.Rotation = rotation
	return true
}
