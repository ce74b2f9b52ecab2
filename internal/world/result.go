package world

// FailureReason identifies why a registry operation was rejected.
type FailureReason string

const (
	ReasonVehicleUnavailable FailureReason = "vehicle_unavailable"
	ReasonTooFar             FailureReason = "too_far"
	ReasonNotInVehicle       FailureReason = "not_in_vehicle"
	ReasonMissionUnavailable FailureReason = "mission_unavailable"
	ReasonNotAssigned        FailureReason = "not_assigned"
)

// Result reports the outcome of a registry operation. Operations never
// return errors; a rejected request carries a reason and a human-readable
// message and mutates nothing.
type Result struct {
	OK      bool
	Reason  FailureReason
	Message string
}

func success() Result {
	return Result{OK: true}
}

func failure(reason FailureReason, message string) Result {
	return Result{Reason: reason, Message: message}
}
