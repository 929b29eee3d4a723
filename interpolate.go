package evergreen

import "math"

// Interpolate writes lerp(tree, scatter, blend) into dst component-wise and
// superimposes the breathing oscillation on y, weighted by (1 - blend) so it
// is present only toward the tree shape and vanishes exactly at blend = 1.
//
// The oscillation is a function of the absolute time t (seconds), never
// integrated, so pausing the frame loop cannot make positions drift. blend
// is clamped to [0, 1]. dst, tree and scatter must have equal length, a
// multiple of 3. Interpolate does not allocate.
func Interpolate(dst, tree, scatter []float32, blend, t float64, b BreathingConfig) {
	blend = clamp01(blend)
	n := len(dst) / 3
	tree = tree[:3*n]
	scatter = scatter[:3*n]

	bf := float32(blend)
	amp := b.Amplitude * (1 - blend)
	breathe := amp != 0

	for i := 0; i < n; i++ {
		o := 3 * i
		tx, ty, tz := tree[o], tree[o+1], tree[o+2]
		x := tx + (scatter[o]-tx)*bf
		y := ty + (scatter[o+1]-ty)*bf
		z := tz + (scatter[o+2]-tz)*bf
		if breathe {
			y += float32(math.Sin(t*b.Frequency+float64(i)*b.Phase) * amp)
		}
		dst[o] = x
		dst[o+1] = y
		dst[o+2] = z
	}

	// Exact endpoint at full scatter regardless of float rounding.
	if blend == 1 {
		copy(dst, scatter)
	}
}

// Buffers are the renderer-facing flat arrays. Positions is rewritten every
// frame; Colors and Sizes are shared with the Field and never change.
type Buffers struct {
	Positions []float32
	Colors    []float32
	Sizes     []float32

	version uint64
}

// newBuffers allocates the position buffer for f and seeds it with the
// tree endpoint.
func newBuffers(f *Field) *Buffers {
	b := &Buffers{
		Positions: make([]float32, len(f.Tree)),
		Colors:    f.Colors,
		Sizes:     f.Sizes,
	}
	copy(b.Positions, f.Tree)
	b.version = 1
	return b
}

// MarkChanged bumps the version so samplers know Positions must be re-uploaded.
func (b *Buffers) MarkChanged() {
	b.version++
}

// Version returns the current position buffer version.
func (b *Buffers) Version() uint64 {
	return b.version
}

// Changed reports whether Positions has been rewritten since the sampler
// last observed version seen.
func (b *Buffers) Changed(seen uint64) bool {
	return b.version != seen
}

// Len returns the particle count.
func (b *Buffers) Len() int {
	return len(b.Positions) / 3
}

// PositionAt returns the rendered position of particle i.
func (b *Buffers) PositionAt(i int) Vec3 {
	return vecAt(b.Positions, i)
}
