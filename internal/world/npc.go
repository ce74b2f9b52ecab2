package world

import "time"

// Tick advances NPC wandering and returns the post-tick NPC snapshot for
// broadcast. NPCs whose last update is younger than the dwell interval are
// left untouched; the rest reset their clock and, with a fixed probability,
// take a bounded random step and a new heading. The staggering keeps NPCs
// from moving in lockstep and keeps each tick O(n) with a cheap per-NPC
// branch.
func (w *World) Tick(now time.Time) []NPC {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, npc := range w.npcs {
		if now.Sub(npc.lastUpdate) < w.cfg.NPCDwell {
			continue
		}
		npc.lastUpdate = now

		if w.randomFloat() < w.cfg.NPCMoveChance {
			dx, dz := w.randomOffset(w.cfg.NPCStepExtent)
			npc.Position.X += dx
			npc.Position.Z += dz
			npc.Rotation.Y = w.randomAngle()
		}
	}

	return w.npcSnapshotLocked()
}
