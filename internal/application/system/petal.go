package system

import (
	"math"

	"github.com/younwookim/petalarena/internal/domain/entity"
	"github.com/younwookim/petalarena/internal/infrastructure/config"
)

// PetalSystem keeps the orbiting petals in step with the player
type PetalSystem struct {
	config *config.PlayerConfig
}

// NewPetalSystem creates a new petal system
func NewPetalSystem(cfg *config.PlayerConfig) *PetalSystem {
	return &PetalSystem{config: cfg}
}

// Refresh recreates the petals evenly spaced around the player
func (s *PetalSystem) Refresh(w *World) {
	n := w.Player.PetalCount
	w.Petals = w.Petals[:0]
	for i := 0; i < n; i++ {
		w.Petals = append(w.Petals, &entity.Petal{
			Angle:     2 * math.Pi / float64(n) * float64(i),
			Radius:    s.config.PetalRadius,
			SlotIndex: i,
		})
	}
}

// Update spins the petals and moves the orbit distance toward its target.
// Holding expand snaps to the expanded distance.
func (s *PetalSystem) Update(w *World, expand bool) {
	if len(w.Petals) != w.Player.PetalCount {
		s.Refresh(w)
	}
	for _, p := range w.Petals {
		p.Angle += s.config.PetalSpin
	}

	pl := w.Player
	if expand {
		pl.PetalDistance = pl.PetalDistanceExpanded
		return
	}
	pl.PetalDistance += (pl.PetalDistanceDefault - pl.PetalDistance) * s.config.PetalLerp
}
