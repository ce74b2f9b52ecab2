package world

import "math"

// planarDistance measures distance on the ground plane; y is ignored because
// interactions happen between ground-bound actors.
func planarDistance(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}
