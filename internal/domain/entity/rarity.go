package entity

import (
	"image/color"
	"math"
	"math/rand"
)

// RarityNames is the ordered rarity ladder, lowest first
var RarityNames = []string{
	"Common", "Unusual", "Rare", "Epic", "Legendary", "Mythical", "Ultra",
	"Super", "Radiant", "Mystitic", "Runic", "Seraphic", "Umbral", "Impracticality",
}

// RarityColors maps rarity names to their display color
var RarityColors = map[string]color.RGBA{
	"Common":    {0xbf, 0xee, 0xcb, 255},
	"Unusual":   {0xff, 0xf9, 0xc4, 255},
	"Rare":      {0x3b, 0x6c, 0xff, 255},
	"Epic":      {0xd6, 0xb3, 0xff, 255},
	"Legendary": {0x80, 0x00, 0x00, 255},
	"Mythical":  {0x5f, 0xd6, 0xd1, 255},
	"Ultra":     {0xff, 0x4d, 0xb8, 255},
	"Super":     {0x00, 0xc9, 0xa7, 255},
	"Radiant":   {0xff, 0xd2, 0x4d, 255},
	"Mystitic":  {0x30, 0xe0, 0xd0, 255},
	"Runic":     {0x2b, 0x2b, 0x7a, 255},
	"Seraphic":  {0xff, 0xff, 0xff, 255},
	"Umbral":    {0x00, 0x00, 0x00, 255},
	// shifting rainbow in play; magenta stands in for a fixed color
	"Impracticality": {0xff, 0x00, 0xff, 255},
}

// RarityGrowth is the per-tier stat multiplier base
const RarityGrowth = 1.55

// RarityBand holds spawn weights for waves up to MaxWave (0 means unbounded)
type RarityBand struct {
	MaxWave int
	Weights []float64
}

// RarityTable selects a band of spawn weights by wave number
type RarityTable struct {
	Bands []RarityBand
}

// DefaultRarityTable returns the built-in four-band table
func DefaultRarityTable() RarityTable {
	return RarityTable{Bands: []RarityBand{
		{MaxWave: 3, Weights: []float64{50, 25, 12, 6, 3, 2, 1, 0.5, 0.3, 0.2, 0.1, 0.05, 0.01, 0.01}},
		{MaxWave: 6, Weights: []float64{40, 25, 15, 8, 5, 4, 2, 1, 0.5, 0.3, 0.2, 0.1, 0.05, 0.05}},
		{MaxWave: 9, Weights: []float64{30, 20, 20, 10, 8, 6, 3, 2, 1, 0.5, 0.3, 0.2, 0.1, 0.1}},
		{MaxWave: 0, Weights: []float64{20, 15, 20, 10, 10, 8, 5, 4, 2, 1, 0.5, 0.3, 0.2, 0.2}},
	}}
}

// WeightsFor returns the weight vector for the given wave
func (t RarityTable) WeightsFor(wave int) []float64 {
	for _, b := range t.Bands {
		if b.MaxWave == 0 || wave <= b.MaxWave {
			return b.Weights
		}
	}
	if len(t.Bands) == 0 {
		return nil
	}
	return t.Bands[len(t.Bands)-1].Weights
}

// Pick rolls a rarity index for the wave.
// A non-positive total yields the lowest tier; falling through yields the highest.
func (t RarityTable) Pick(rng *rand.Rand, wave int) int {
	weights := t.WeightsFor(wave)
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}

	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return i
		}
	}
	return len(weights) - 1
}

// PickRarity rolls a rarity index with the default table
func PickRarity(rng *rand.Rand, wave int) int {
	return DefaultRarityTable().Pick(rng, wave)
}

// RarityMultiplier returns the stat multiplier for a rarity index
func RarityMultiplier(index int) float64 {
	return math.Pow(RarityGrowth, math.Max(0, float64(index)))
}

// RarityIndex returns the ladder position of name, or -1 if unknown
func RarityIndex(name string) int {
	for i, n := range RarityNames {
		if n == name {
			return i
		}
	}
	return -1
}

// RarityName returns the name at index, clamped to the ladder
func RarityName(index int) string {
	if index < 0 {
		index = 0
	}
	if index >= len(RarityNames) {
		index = len(RarityNames) - 1
	}
	return RarityNames[index]
}

// NextRarity returns the tier above name.
// The second result is false when name is unknown or already the highest tier.
func NextRarity(name string) (string, bool) {
	i := RarityIndex(name)
	if i < 0 || i+1 >= len(RarityNames) {
		return "", false
	}
	return RarityNames[i+1], true
}
