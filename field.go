package evergreen

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Field holds the immutable per-particle attributes: both endpoint
// positions, colors and size offsets. All buffers are flat and parallel;
// particle i occupies [3i, 3i+3) of the vector buffers and [i] of Sizes.
//
// A Field is written once by Generate (or NewField) and only read afterward.
type Field struct {
	Tree    []float32
	Scatter []float32
	Colors  []float32
	Sizes   []float32
	// Topper is the apex position reserved for the topper ornament.
	Topper Vec3

	count int
}

// Generate builds the tree and starfield endpoints plus colors for
// cfg.Count particles. It is the only place positions and colors are
// computed. rng may be nil, in which case one is seeded from cfg.Seed
// (or randomly when the seed is zero). The same seeded rng state always
// yields the same field.
func Generate(cfg Config, rng *rand.Rand) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generate field: %w", err)
	}
	if rng == nil {
		rng = newRand(cfg.Seed)
	}

	n := cfg.Count
	f := &Field{
		Tree:    make([]float32, 3*n),
		Scatter: make([]float32, 3*n),
		Colors:  make([]float32, 3*n),
		Sizes:   make([]float32, n),
		count:   n,
	}

	t := cfg.Tree
	f.Topper = Vec3{Y: t.Height/2 - t.TopperReserve}

	for i := 0; i < n; i++ {
		o := 3 * i

		tp, h := treePoint(t, i, n, rng)
		f.Tree[o] = float32(tp.X)
		f.Tree[o+1] = float32(tp.Y)
		f.Tree[o+2] = float32(tp.Z)

		sp := scatterPoint(cfg.Starfield.Radius, rng)
		f.Scatter[o] = float32(sp.X)
		f.Scatter[o+1] = float32(sp.Y)
		f.Scatter[o+2] = float32(sp.Z)

		c := cfg.Palette.Sample(rng, h)
		f.Colors[o] = float32(c.R)
		f.Colors[o+1] = float32(c.G)
		f.Colors[o+2] = float32(c.B)

		f.Sizes[i] = float32(rng.Float64())
	}

	if err := f.checkFinite(); err != nil {
		return nil, fmt.Errorf("generate field: %w", err)
	}
	return f, nil
}

// NewField wraps precomputed endpoints. colors may be nil, in which case
// every particle is white. All size offsets are zero.
func NewField(tree, scatter []Vec3, colors []Color) (*Field, error) {
	n := len(tree)
	if n == 0 {
		return nil, fmt.Errorf("new field: %w", ErrInvalidCount)
	}
	if len(scatter) != n || (colors != nil && len(colors) != n) {
		return nil, fmt.Errorf("new field: %w: %d tree, %d scatter, %d colors",
			ErrInvalidGeometry, n, len(scatter), len(colors))
	}
	f := &Field{
		Tree:    make([]float32, 3*n),
		Scatter: make([]float32, 3*n),
		Colors:  make([]float32, 3*n),
		Sizes:   make([]float32, n),
		count:   n,
	}
	for i := 0; i < n; i++ {
		o := 3 * i
		putVec(f.Tree[o:o+3], tree[i])
		putVec(f.Scatter[o:o+3], scatter[i])
		c := ColorWhite
		if colors != nil {
			c = colors[i]
		}
		f.Colors[o] = float32(clamp01(c.R))
		f.Colors[o+1] = float32(clamp01(c.G))
		f.Colors[o+2] = float32(clamp01(c.B))
	}
	if err := f.checkFinite(); err != nil {
		return nil, fmt.Errorf("new field: %w", err)
	}
	return f, nil
}

// Len returns the particle count N.
func (f *Field) Len() int {
	return f.count
}

// TreeAt returns the tree endpoint of particle i.
func (f *Field) TreeAt(i int) Vec3 {
	return vecAt(f.Tree, i)
}

// ScatterAt returns the starfield endpoint of particle i.
func (f *Field) ScatterAt(i int) Vec3 {
	return vecAt(f.Scatter, i)
}

// ColorAt returns the color of particle i.
func (f *Field) ColorAt(i int) Color {
	o := 3 * i
	return Color{float64(f.Colors[o]), float64(f.Colors[o+1]), float64(f.Colors[o+2])}
}

// treePoint places particle i of n on the cone and returns the position
// together with the normalized height actually used (after apex relocation).
func treePoint(t TreeConfig, i, n int, rng *rand.Rand) (Vec3, float64) {
	h := float64(i) / float64(n)

	// Thin the tip: above the threshold a particle is re-drawn lower with
	// probability rising quadratically to 1 at the apex.
	if t.ApexThreshold < 1 && h > t.ApexThreshold {
		excess := (h - t.ApexThreshold) / (1 - t.ApexThreshold)
		if rng.Float64() < excess*excess {
			h = rng.Float64() * t.ApexThreshold
		}
	}

	angle := float64(i) * t.AngleStep
	radius := math.Pow(1-h, t.Taper) * t.MaxRadius
	radius *= t.BandBase + t.BandAmplitude*math.Sin(t.BandFrequency*angle)
	if t.Layers > 0 {
		tier := h * float64(t.Layers)
		radius *= 1 - t.LayerDepth*(tier-math.Floor(tier))
	}
	radius *= 1 - t.RadiusVariance*rng.Float64()

	jx := (rng.Float64()*2 - 1) * t.Jitter
	jz := (rng.Float64()*2 - 1) * t.Jitter

	return Vec3{
		X: math.Cos(angle)*radius + jx,
		Y: h*t.Height - t.Height/2 - t.TopperReserve,
		Z: math.Sin(angle)*radius + jz,
	}, h
}

// scatterPoint samples the ball of radius r uniformly by volume. The cube
// root removes the bias toward the surface; acos(2u-1) removes clustering
// at the poles.
func scatterPoint(r float64, rng *rand.Rand) Vec3 {
	rad := r * math.Cbrt(rng.Float64())
	theta := rng.Float64() * 2 * math.Pi
	phi := math.Acos(2*rng.Float64() - 1)
	sinPhi := math.Sin(phi)
	return Vec3{
		X: rad * sinPhi * math.Cos(theta),
		Y: rad * sinPhi * math.Sin(theta),
		Z: rad * math.Cos(phi),
	}
}

func (f *Field) checkFinite() error {
	for _, buf := range [...][]float32{f.Tree, f.Scatter, f.Colors, f.Sizes} {
		for j, v := range buf {
			if !finite(float64(v)) {
				return fmt.Errorf("%w: non-finite value at %d", ErrInvalidGeometry, j)
			}
		}
	}
	return nil
}

func vecAt(buf []float32, i int) Vec3 {
	o := 3 * i
	return Vec3{X: float64(buf[o]), Y: float64(buf[o+1]), Z: float64(buf[o+2])}
}

func putVec(dst []float32, v Vec3) {
	dst[0] = float32(v.X)
	dst[1] = float32(v.Y)
	dst[2] = float32(v.Z)
}

// newRand returns a PCG-backed generator. A zero seed picks a random one.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
