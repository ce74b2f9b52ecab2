package world

import "go.uber.org/zap"

// EnterVehicle claims a vehicle for a player. The occupancy check and the
// claim happen inside one critical section, so two racing requests for the
// same vehicle resolve deterministically: the first one in wins, the second
// sees the occupied flag and gets ReasonVehicleUnavailable.
func (w *World) EnterVehicle(playerID, vehicleID string) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	player, ok := w.players[playerID]
	if !ok {
		return failure(ReasonVehicleUnavailable, "Vehicle not available")
	}
	vehicle, ok := w.vehicles[vehicleID]
	if !ok || vehicle.Occupied {
		return failure(ReasonVehicleUnavailable, "Vehicle not available")
	}

	if planarDistance(player.Position, vehicle.Position) > w.cfg.VehicleRadius {
		return failure(ReasonTooFar, "Too far from vehicle")
	}

	vehicle.Occupied = true
	vehicle.Driver = playerID
	player.InVehicle = true
	player.CurrentVehicle = vehicleID

	w.logger.Debug("vehicle entered",
		zap.String("player", playerID),
		zap.String("vehicle", vehicleID))
	return success()
}

// ExitVehicle releases the player's current vehicle and returns its id so
// the gateway can broadcast which vehicle became free.
func (w *World) ExitVehicle(playerID string) (string, Result) {
	w.mu.Lock()
	defer w.mu.Unlock()

	player, ok := w.players[playerID]
	if !ok || !player.InVehicle {
		return "", failure(ReasonNotInVehicle, "Not in vehicle")
	}

	vehicleID := w.releaseVehicleLocked(player)

	w.logger.Debug("vehicle exited",
		zap.String("player", playerID),
		zap.String("vehicle", vehicleID))
	return vehicleID, success()
}

// releaseVehicleLocked clears both sides of the player/vehicle link and
// returns the freed vehicle id. Caller holds the mutex.
func (w *World) releaseVehicleLocked(player *playerState) string {
	vehicleID := player.CurrentVehicle
	if vehicle, ok := w.vehicles[vehicleID]; ok {
		vehicle.Occupied = false
		vehicle.Driver = ""
	}
	player.InVehicle = false
	player.CurrentVehicle = ""
	return vehicleID
}

// UpdateVehiclePosition overwrites a vehicle's transform. The caller is not
// required to be the driver. Unknown ids are a no-op.
func (w *World) UpdateVehiclePosition(vehicleID string, position Vec3, rotation Rotation) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	vehicle, ok := w.vehicles[vehicleID]
	if !ok {
		return false
	}
	vehicle.Position = position
	vehicle.Rotation = rotation
	return true
}
