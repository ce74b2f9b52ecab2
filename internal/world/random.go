package world

import "math"

// Random helpers share the world's seeded rng so a fixed seed reproduces the
// same city and the same NPC wandering. Callers must hold no lock; these are
// only invoked from within registry operations.

func (w *World) randomFloat() float64 {
	return w.rng.Float64()
}

func (w *World) randomAngle() float64 {
	return w.randomFloat() * 2 * math.Pi
}

// randomPosition picks a ground-level point uniformly within a square of the
// given side length centered on the origin.
func (w *World) randomPosition(extent float64) Vec3 {
	return Vec3{
		X: (w.randomFloat() - 0.5) * extent,
		Z: (w.randomFloat() - 0.5) * extent,
	}
}

// randomOffset picks a displacement in [-extent/2, extent/2) on each axis.
func (w *World) randomOffset(extent float64) (float64, float64) {
	return (w.randomFloat() - 0.5) * extent, (w.randomFloat() - 0.5) * extent
}
