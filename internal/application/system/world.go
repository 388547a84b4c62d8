package system

import (
	"time"

	"github.com/younwookim/petalarena/internal/domain/entity"
)

// World is the simulation context shared by every system.
// Only the tick driver mutates it.
type World struct {
	Arena entity.Arena
	Now   time.Duration
	Frame int
	Wave  int
	Dead  bool

	Player      *entity.Player
	Mobs        []*entity.Mob
	Projectiles []*entity.Projectile
	Drops       []*entity.Drop
	Petals      []*entity.Petal

	nextID entity.EntityID
}

// NewWorld creates an empty world with the player at the arena center
func NewWorld(arena entity.Arena, stats entity.PlayerStats) *World {
	return &World{
		Arena:  arena,
		Wave:   1,
		Player: entity.NewPlayer(arena.CenterX(), arena.CenterY(), stats),
	}
}

// NextID returns a fresh entity ID
func (w *World) NextID() entity.EntityID {
	w.nextID++
	return w.nextID
}

// AddMob appends a mob to the live list
func (w *World) AddMob(m *entity.Mob) {
	if m == nil {
		return
	}
	w.Mobs = append(w.Mobs, m)
}

// Clear removes every mob, projectile and drop
func (w *World) Clear() {
	w.Mobs = w.Mobs[:0]
	w.Projectiles = w.Projectiles[:0]
	w.Drops = w.Drops[:0]
}

// PetalFor returns the petal orbiting for slot index i, or nil
func (w *World) PetalFor(i int) *entity.Petal {
	if len(w.Petals) == 0 {
		return nil
	}
	return w.Petals[i%len(w.Petals)]
}
