package world

import (
	"testing"
	"time"
)

func npcsByID(npcs []NPC) map[string]NPC {
	byID := make(map[string]NPC, len(npcs))
	for _, npc := range npcs {
		byID[npc.ID] = npc
	}
	return byID
}

func TestTickRespectsDwell(t *testing.T) {
	base := time.Now()
	cfg := DefaultConfig()
	cfg.Seed = 11
	w := New(cfg, nil)
	before := npcsByID(w.NPCs())

	// Multiple ticks inside the dwell window must leave every NPC alone.
	for _, offset := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
		after := npcsByID(w.Tick(base.Add(offset)))
		for id, npc := range after {
			if npc != before[id] {
				t.Fatalf("npc %s mutated %v after seeding: %+v vs %+v", id, offset, npc, before[id])
			}
		}
	}
}

func TestTickAfterDwellResetsClock(t *testing.T) {
	base := time.Now()
	cfg := DefaultConfig()
	cfg.Seed = 11
	w := New(cfg, nil)

	now := base.Add(6 * time.Second)
	after := npcsByID(w.Tick(now))

	for id, npc := range after {
		if npc.LastUpdate != now.UnixMilli() {
			t.Fatalf("npc %s lastUpdate not reset: got %d, want %d", id, npc.LastUpdate, now.UnixMilli())
		}
	}
}

func TestTickWandersSomeNPCs(t *testing.T) {
	base := time.Now()
	cfg := DefaultConfig()
	cfg.Seed = 11
	w := New(cfg, nil)
	before := npcsByID(w.NPCs())

	after := npcsByID(w.Tick(base.Add(6 * time.Second)))

	moved, held := 0, 0
	for id, npc := range after {
		prev := before[id]
		if npc.Position == prev.Position {
			held++
			continue
		}
		moved++
		dx := npc.Position.X - prev.Position.X
		dz := npc.Position.Z - prev.Position.Z
		if dx < -5 || dx > 5 || dz < -5 || dz > 5 {
			t.Fatalf("npc %s stepped beyond bound: dx=%v dz=%v", id, dx, dz)
		}
		if npc.Position.Y != prev.Position.Y {
			t.Fatalf("npc %s left the ground plane", id)
		}
	}

	// With 50 NPCs at 30% move probability, a tick with zero movers or
	// zero holders means the staggering is broken.
	if moved == 0 {
		t.Fatalf("expected some NPCs to wander")
	}
	if held == 0 {
		t.Fatalf("expected some NPCs to stand still")
	}
}

func TestTickDwellBoundResetEvenWhenHolding(t *testing.T) {
	base := time.Now()
	cfg := DefaultConfig()
	cfg.Seed = 11
	w := New(cfg, nil)

	first := base.Add(6 * time.Second)
	w.Tick(first)

	// Immediately after a dwell expiry the clock restarts: a tick one
	// second later must not touch anyone, movers or holders alike.
	before := npcsByID(w.NPCs())
	after := npcsByID(w.Tick(first.Add(time.Second)))
	for id, npc := range after {
		if npc != before[id] {
			t.Fatalf("npc %s mutated inside fresh dwell window", id)
		}
	}
}

func TestTickEmptyWorld(t *testing.T) {
	w := newTestWorld(t, Config{VehicleCount: 0, NPCCount: 0, MissionCount: 0, Seed: 3})
	if npcs := w.Tick(time.Now()); len(npcs) != 0 {
		t.Fatalf("expected no NPCs, got %d", len(npcs))
	}
}
