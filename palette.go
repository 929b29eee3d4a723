package evergreen

import (
	"fmt"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteEntry is one weighted color choice.
type PaletteEntry struct {
	Name  string
	Color Color
	// Alt, when Graded is set, is blended with Color in Lab space by a
	// secondary random factor so a single entry yields a band of shades.
	Alt    Color
	Graded bool
	// Weight is the base selection weight. Weights need not sum to 1.
	Weight float64
	// ApexBias scales Weight by (1 + ApexBias*h) for normalized height h,
	// concentrating the entry toward the top of the tree.
	ApexBias float64
	// Highlight is the probability of brightening a sample by Brightness.
	Highlight  float64
	Brightness float64
}

// Palette is an ordered, weighted color table.
type Palette []PaletteEntry

// DefaultPalette returns foliage greens as the dominant tone with ornament
// reds, gold lights and white snow as accents. Gold and white lean toward
// the apex.
func DefaultPalette() Palette {
	return Palette{
		{
			Name:       "foliage",
			Color:      MustHex("#0b5d1e"),
			Alt:        MustHex("#228b22"),
			Graded:     true,
			Weight:     0.70,
			Highlight:  0.04,
			Brightness: 1.4,
		},
		{
			Name:       "ornament",
			Color:      MustHex("#ff0000"),
			Alt:        MustHex("#c41e3a"),
			Graded:     true,
			Weight:     0.15,
			Highlight:  0.1,
			Brightness: 1.3,
		},
		{
			Name:       "gold",
			Color:      MustHex("#ffd700"),
			Weight:     0.10,
			ApexBias:   3,
			Highlight:  0.2,
			Brightness: 1.5,
		},
		{
			Name:     "snow",
			Color:    ColorWhite,
			Weight:   0.05,
			ApexBias: 3,
		},
	}
}

// Validate checks that the palette has at least one entry with positive
// weight and that no weight is negative or non-finite.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: no entries", ErrInvalidPalette)
	}
	total := 0.0
	for i, e := range p {
		if !finite(e.Weight) || e.Weight < 0 || !finite(e.ApexBias) || e.ApexBias < 0 {
			return fmt.Errorf("%w: entry %d (%s) weight %v bias %v", ErrInvalidPalette, i, e.Name, e.Weight, e.ApexBias)
		}
		if e.Highlight < 0 || e.Highlight > 1 {
			return fmt.Errorf("%w: entry %d (%s) highlight %v", ErrInvalidPalette, i, e.Name, e.Highlight)
		}
		total += e.Weight
	}
	if !(total > 0) {
		return fmt.Errorf("%w: weights sum to %v", ErrInvalidPalette, total)
	}
	return nil
}

// Pick returns the index of the entry chosen for normalized height h.
func (p Palette) Pick(rng *rand.Rand, h float64) int {
	total := 0.0
	for i := range p {
		total += p.weight(i, h)
	}
	u := rng.Float64() * total
	for i := range p {
		w := p.weight(i, h)
		if u < w {
			return i
		}
		u -= w
	}
	// Float rounding can leave u just above the last bucket.
	for i := len(p) - 1; i >= 0; i-- {
		if p.weight(i, h) > 0 {
			return i
		}
	}
	return 0
}

func (p Palette) weight(i int, h float64) float64 {
	e := &p[i]
	return e.Weight * (1 + e.ApexBias*h)
}

// Sample picks an entry for normalized height h and resolves its final color.
func (p Palette) Sample(rng *rand.Rand, h float64) Color {
	e := &p[p.Pick(rng, h)]
	c := e.Color
	if e.Graded {
		c = blendLab(e.Color, e.Alt, rng.Float64())
	}
	if e.Highlight > 0 && e.Brightness > 0 && rng.Float64() < e.Highlight {
		c = c.Scale(e.Brightness)
	}
	return c
}

// blendLab mixes a and b in CIE-L*a*b* so intermediate shades stay
// perceptually even.
func blendLab(a, b Color, t float64) Color {
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	m := ca.BlendLab(cb, t).Clamped()
	return Color{m.R, m.G, m.B}
}

// ParseHex parses "#rrggbb" into a Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{c.R, c.G, c.B}, nil
}

// MustHex is ParseHex that panics on malformed input. Intended for
// package-level palette literals.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
