package playing

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/petalarena/internal/application/state"
	"github.com/younwookim/petalarena/internal/application/system"
	"github.com/younwookim/petalarena/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{30, 110, 60, 255}
	colorPlayer     = color.RGBA{255, 228, 107, 255}
	colorPlayerEdge = color.RGBA{207, 187, 80, 255}
	colorFlash      = color.RGBA{255, 255, 255, 255}
	colorPetalEmpty = color.RGBA{255, 255, 255, 90}
	colorShot       = color.RGBA{255, 255, 255, 255}
	colorMobShot    = color.RGBA{40, 40, 40, 255}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{117, 221, 52, 255}
	colorMobHealth  = color.RGBA{230, 60, 60, 255}
	colorSlotEmpty  = color.RGBA{0, 0, 0, 80}
)

// Draw renders the arena (implements scene.Scene)
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	w := p.sim.World
	p.drawDrops(screen, w)
	p.drawMobs(screen, w)
	p.drawProjectiles(screen, w)
	p.drawPlayer(screen, w)
	p.drawPetals(screen, w)

	p.drawHUD(screen, p.sim.Snapshot())

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress ESC to resume")
	case state.StateDead:
		p.drawOverlay(screen, color.RGBA{100, 0, 0, 180},
			fmt.Sprintf("YOU DIED\n\nReached wave %d\n\nPress R to respawn", w.Wave))
	}
}

func fillCircle(dst *ebiten.Image, x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), c, true)
}

func (p *Playing) drawDrops(screen *ebiten.Image, w *system.World) {
	half := float64(iconSize) / 2
	for _, d := range w.Drops {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(d.X-half, d.Y-half)
		screen.DrawImage(p.icons.get(d.Type, d.Rarity), op)
	}
}

func (p *Playing) drawMobs(screen *ebiten.Image, w *system.World) {
	for _, m := range w.Mobs {
		c := color.Color(rarityColor(m.RarityName))
		if w.Now < m.HitFlashUntil {
			c = colorFlash
		}

		if m.IsChain() {
			// Tail first so the head stays on top
			for i := len(m.Segments) - 1; i >= 0; i-- {
				s := m.Segments[i]
				fillCircle(screen, s.X, s.Y, s.Radius, c)
				vector.StrokeCircle(screen, float32(s.X), float32(s.Y), float32(s.Radius), 2, shade(rarityColor(m.RarityName), 0.6), true)
			}
			continue
		}

		fillCircle(screen, m.X, m.Y, m.Radius, c)
		// Facing marker
		fx := m.X + math.Cos(m.Facing)*m.Radius*0.7
		fy := m.Y + math.Sin(m.Facing)*m.Radius*0.7
		fillCircle(screen, fx, fy, math.Max(2, m.Radius*0.2), colorMobShot)

		if m.MaxHealth > 0 && m.Health < m.MaxHealth {
			drawBar(screen, m.X-m.Radius, m.Y+m.Radius+4, m.Radius*2, 3, m.Health/m.MaxHealth, colorMobHealth)
		}
	}
}

func (p *Playing) drawProjectiles(screen *ebiten.Image, w *system.World) {
	for _, pr := range w.Projectiles {
		fillCircle(screen, pr.X, pr.Y, pr.Radius, colorShot)
	}
	for _, m := range w.Mobs {
		for _, pr := range m.Projectiles {
			fillCircle(screen, pr.X, pr.Y, pr.Radius, colorMobShot)
		}
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, w *system.World) {
	pl := w.Player
	c := color.Color(colorPlayer)
	if w.Now < pl.HitFlashUntil {
		c = colorFlash
	}
	fillCircle(screen, pl.X, pl.Y, pl.Radius, c)
	vector.StrokeCircle(screen, float32(pl.X), float32(pl.Y), float32(pl.Radius), 2, colorPlayerEdge, true)
}

func (p *Playing) drawPetals(screen *ebiten.Image, w *system.World) {
	pl := w.Player
	for _, petal := range w.Petals {
		x, y := petal.Position(pl.X, pl.Y, pl.PetalDistance+petal.Extra(w.Now))

		c := color.Color(colorPetalEmpty)
		if petal.SlotIndex < entity.SlotCount {
			if it := pl.Equipped[petal.SlotIndex]; it != nil {
				c = rarityColor(it.Rarity)
			}
		}
		fillCircle(screen, x, y, petal.Radius, c)
	}
}

func drawBar(screen *ebiten.Image, x, y, width, height, ratio float64, fg color.Color) {
	ratio = math.Max(0, math.Min(1, ratio))
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), colorHealthBG, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width*ratio), float32(height), fg, false)
}

func (p *Playing) drawHUD(screen *ebiten.Image, snap system.Snapshot) {
	drawBar(screen, 10, float64(p.screenH-20), 160, 10, healthRatio(snap), colorHealthFG)
	ebitenutil.DebugPrintAt(screen, hudLine(snap, p.mode), 10, p.screenH-38)

	p.drawLoadout(screen)

	if p.status != "" {
		ebitenutil.DebugPrintAt(screen, p.status, 10, 22)
	}
	ebitenutil.DebugPrint(screen, "WASD: Move | Click: Attack | Space: Expand | E: Use | 1-0: Swap | C: Craft | M: Mode | ESC: Pause | Q: Quit")
}

// drawLoadout draws the main row and, smaller, the swap row along the bottom right
func (p *Playing) drawLoadout(screen *ebiten.Image) {
	pl := p.sim.World.Player
	gap := 4
	x0 := p.screenW - entity.SlotCount*(iconSize+gap) - 6
	y0 := p.screenH - iconSize - 8

	for i := 0; i < entity.SlotCount; i++ {
		x := x0 + i*(iconSize+gap)
		p.drawSlot(screen, pl.Equipped[i], x, y0, 1)
		p.drawSlot(screen, pl.Swap[i], x+iconSize/4, y0-iconSize/2-6, 0.5)
	}
}

func (p *Playing) drawSlot(screen *ebiten.Image, it *entity.Item, x, y int, scale float64) {
	if it == nil {
		s := float32(iconSize * scale)
		vector.DrawFilledRect(screen, float32(x), float32(y), s, s, colorSlotEmpty, false)
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(p.icons.get(it.Type, it.Rarity), op)
	if it.Stack > 1 && scale >= 1 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", it.Stack), x+iconSize-10, y+iconSize-14)
	}
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.RGBA, text string) {
	vector.DrawFilledRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), c, false)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}

func healthRatio(snap system.Snapshot) float64 {
	if snap.MaxHealth <= 0 {
		return 0
	}
	return snap.Health / snap.MaxHealth
}

// hudLine formats the wave summary shown above the health bar
func hudLine(snap system.Snapshot, mode system.ControlMode) string {
	kills := 0
	for _, n := range snap.Kills {
		kills += n
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Wave %d | Mobs %d", snap.Wave, snap.Mobs)
	if snap.Pending > 0 {
		fmt.Fprintf(&b, " (+%d)", snap.Pending)
	}
	fmt.Fprintf(&b, " | Kills %d | HP %.0f/%.0f | %s", kills, snap.Health, snap.MaxHealth, mode)
	return b.String()
}
