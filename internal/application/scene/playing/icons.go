package playing

import (
	"image/color"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/petalarena/internal/domain/entity"
)

const iconSize = 24

var colorUnknownRarity = color.RGBA{150, 150, 150, 255}

type iconKey struct {
	Type   string
	Rarity string
}

// iconCache renders one square icon per (item type, rarity) on first use
type iconCache struct {
	size   int
	images map[iconKey]*ebiten.Image
}

func newIconCache(size int) *iconCache {
	return &iconCache{size: size, images: make(map[iconKey]*ebiten.Image)}
}

func (c *iconCache) get(itemType, rarity string) *ebiten.Image {
	key := iconKey{Type: itemType, Rarity: rarity}
	if img, ok := c.images[key]; ok {
		return img
	}

	s := float32(c.size)
	fill := rarityColor(rarity)
	img := ebiten.NewImage(c.size, c.size)
	vector.DrawFilledRect(img, 0, 0, s, s, fill, false)
	vector.StrokeRect(img, 1, 1, s-2, s-2, 2, shade(fill, 0.6), false)
	ebitenutil.DebugPrintAt(img, iconLabel(itemType), 4, c.size/2-8)

	c.images[key] = img
	return img
}

// iconLabel returns the two-letter tag drawn on an icon
func iconLabel(itemType string) string {
	r := []rune(strings.TrimSpace(itemType))
	if len(r) == 0 {
		return "?"
	}
	if len(r) > 2 {
		r = r[:2]
	}
	r[0] = unicode.ToUpper(r[0])
	if len(r) == 2 {
		r[1] = unicode.ToLower(r[1])
	}
	return string(r)
}

func rarityColor(rarity string) color.RGBA {
	if c, ok := entity.RarityColors[rarity]; ok {
		return c
	}
	return colorUnknownRarity
}

// shade scales the color channels by f, keeping alpha
func shade(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		x := float64(v) * f
		if x > 255 {
			x = 255
		}
		return uint8(x)
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}
