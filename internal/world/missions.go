package world

import "go.uber.org/zap"

// StartMission assigns an available mission to the player if they are close
// enough to its marker. The mission snapshot is returned for the direct
// reply to the starter.
func (w *World) StartMission(playerID, missionID string) (Mission, Result) {
	w.mu.Lock()
	defer w.mu.Unlock()

	player, ok := w.players[playerID]
	if !ok {
		return Mission{}, failure(ReasonMissionUnavailable, "Mission not available")
	}
	mission, ok := w.missions[missionID]
	if !ok || mission.Status != MissionAvailable {
		return Mission{}, failure(ReasonMissionUnavailable, "Mission not available")
	}

	if planarDistance(player.Position, mission.Position) > w.cfg.MissionRadius {
		return Mission{}, failure(ReasonTooFar, "Too far from mission")
	}

	mission.Status = MissionInProgress
	mission.AssignedTo = playerID
	player.Missions = append(player.Missions, missionID)

	w.logger.Info("mission started",
		zap.String("player", playerID),
		zap.String("mission", missionID))
	return mission.snapshot(), success()
}

// CompleteMission pays out a mission the player is assigned to. Completed
// missions are terminal: re-completion is rejected outright rather than
// relying on the assignee still being set.
func (w *World) CompleteMission(playerID, missionID string) (int, Result) {
	w.mu.Lock()
	defer w.mu.Unlock()

	player, ok := w.players[playerID]
	if !ok {
		return 0, failure(ReasonNotAssigned, "Mission not assigned to player")
	}
	mission, ok := w.missions[missionID]
	if !ok || mission.AssignedTo != playerID || mission.Status == MissionCompleted {
		return 0, failure(ReasonNotAssigned, "Mission not assigned to player")
	}

	mission.Status = MissionCompleted
	player.Money += mission.Reward
	player.Missions = removeString(player.Missions, missionID)

	w.logger.Info("mission completed",
		zap.String("player", playerID),
		zap.String("mission", missionID),
		zap.Int("reward", mission.Reward))
	return mission.Reward, success()
}

func removeString(values []string, target string) []string {
	for i, value := range values {
		if value == target {
			return append(values[:i], values[i+1:]...)
		}
	}
	return values
}
