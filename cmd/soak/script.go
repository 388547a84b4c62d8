package main

import (
	"math"
	"math/rand"

	"github.com/younwookim/petalarena/internal/application/system"
	"github.com/younwookim/petalarena/internal/domain/entity"
)

// script produces pointer input that circles the arena and fights the nearest mob
type script struct {
	rng   *rand.Rand
	frame int
}

func newScript(seed int64) *script {
	return &script{rng: rand.New(rand.NewSource(seed))}
}

func (s *script) next(w *system.World) system.InputState {
	defer func() { s.frame++ }()

	in := system.Idle()
	in.Mode = system.ControlPointer
	in.HasPointer = true

	t := float64(s.frame) / 60
	cx, cy := w.Arena.CenterX(), w.Arena.CenterY()
	r := math.Min(cx, cy) * 0.5
	in.PointerX = cx + math.Cos(t*0.8)*r
	in.PointerY = cy + math.Sin(t*0.8)*r

	if s.frame%20 == 0 {
		if m := nearestMob(w); m != nil {
			in.Attack = true
			in.PointerX, in.PointerY = m.X, m.Y
		}
	}
	in.Expand = (s.frame/60)%3 == 0
	in.Use = s.frame%90 == 45
	if s.rng.Intn(600) == 0 {
		in.SwapSlot = s.rng.Intn(entity.SlotCount)
	}
	return in
}

func nearestMob(w *system.World) *entity.Mob {
	var best *entity.Mob
	bestDist := math.Inf(1)
	for _, m := range w.Mobs {
		d := entity.Distance(w.Player.X, w.Player.Y, m.X, m.Y)
		if d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}
