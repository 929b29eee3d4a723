package evergreen

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// topperFadeEnd is the blend factor at which the topper is fully hidden.
const topperFadeEnd = 0.5

// Draw renders the scene to screen: particles as one additive batch, then
// visible photos, then the topper and the HUD. Queued screenshots are
// captured last.
func (s *Scene) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	screen.Fill(s.ClearColor.toRGBA(1))

	s.camera.computeView()
	var culled int
	s.verts, s.inds, culled = buildParticleQuads(s.verts[:0], s.inds[:0], s.camera,
		s.buffers.Positions, s.buffers.Colors, s.buffers.Sizes, s.cfg.View.ParticleSize)

	if s.debug {
		stats.buildTime = time.Since(t0)
		stats.particleCount = s.buffers.Len()
		stats.culledCount = culled
		stats.vertexCount = len(s.verts)
		t0 = time.Now()
	}

	if len(s.verts) > 0 {
		var op ebiten.DrawTrianglesOptions
		op.Blend = s.BlendMode.EbitenBlend()
		op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		screen.DrawTriangles32(s.verts, s.inds, WhitePixel, &op)
	}

	stats.photoCount = s.drawPhotos(screen)
	s.drawTopper(screen)
	if s.showHUD {
		s.drawHUD(screen)
	}

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLogDraw(stats)
	}

	s.flushScreenshots(screen)
}

// buildParticleQuads appends one camera-facing quad per visible particle.
// Quad size scales with the per-particle size offset and with perspective;
// brightness fades slightly with depth. Particles behind the near plane are
// skipped and counted in culled.
func buildParticleQuads(verts []ebiten.Vertex, inds []uint32, cam *Camera,
	positions, colors, sizes []float32, baseSize float64) ([]ebiten.Vertex, []uint32, int) {

	cam.computeView()
	culled := 0
	n := len(positions) / 3
	for i := 0; i < n; i++ {
		o := 3 * i
		sx, sy, depth, ok := cam.project(float64(positions[o]), float64(positions[o+1]), float64(positions[o+2]))
		if !ok {
			culled++
			continue
		}

		size := baseSize * (0.6 + 0.8*float64(sizes[i])) * (cam.focal / depth)
		if size < 1 {
			size = 1
		}
		half := float32(size / 2)
		x, y := float32(sx), float32(sy)

		// Far particles dim toward 40% so the depth reads.
		fade := float32(math.Max(0.4, math.Min(1, 2*cam.Distance/depth)))
		cr, cg, cb := colors[o]*fade, colors[o+1]*fade, colors[o+2]*fade

		base := uint32(len(verts))
		verts = append(verts,
			ebiten.Vertex{DstX: x - half, DstY: y - half, SrcX: 0, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
			ebiten.Vertex{DstX: x + half, DstY: y - half, SrcX: 1, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
			ebiten.Vertex{DstX: x - half, DstY: y + half, SrcX: 0, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
			ebiten.Vertex{DstX: x + half, DstY: y + half, SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
		)
		inds = append(inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
	return verts, inds, culled
}

// drawPhotos draws every visible photo with a positive scale, back to front,
// and returns how many were drawn.
func (s *Scene) drawPhotos(screen *ebiten.Image) int {
	drawn := 0
	for _, it := range s.photosByDepth() {
		if !it.Visible || it.Scale <= 0 {
			continue
		}
		sx, sy, depth, ok := s.camera.Project(it.Pos)
		if !ok {
			continue
		}
		edge := s.cfg.Photos.Size * it.Scale * s.camera.PixelsPerUnit(depth)

		img := it.Image
		if img == nil {
			img = WhitePixel
		}
		b := img.Bounds()
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(edge/float64(b.Dx()), edge/float64(b.Dy()))
		op.GeoM.Translate(sx-edge/2, sy-edge/2)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, &op)
		drawn++
	}
	return drawn
}

// photosByDepth returns visible photos sorted far to near. The spotlit
// item always sorts last.
func (s *Scene) photosByDepth() []*PhotoItem {
	items := s.photos.Items()
	if len(items) < 2 {
		return items
	}
	sorted := make([]*PhotoItem, len(items))
	copy(sorted, items)
	spot := s.photos.Spotlit()
	depthOf := func(it *PhotoItem) float64 {
		if it == spot {
			return -math.MaxFloat64
		}
		_, _, d, _ := s.camera.Project(it.Pos)
		return d
	}
	// Insertion sort: photo counts are small.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && depthOf(sorted[j]) > depthOf(sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

// topperColor is the gold of the apex star.
var topperColor = Color{1, 0.84, 0}

// drawTopper draws a five-point star at the apex, fading out as the field
// leaves the tree shape.
func (s *Scene) drawTopper(screen *ebiten.Image) {
	alpha := 1 - s.morph.Blend()/topperFadeEnd
	if alpha <= 0 {
		return
	}
	sx, sy, depth, ok := s.camera.Project(s.field.Topper)
	if !ok {
		return
	}
	outer := 1.2 * s.camera.PixelsPerUnit(depth)
	verts, inds := starFan(float32(sx), float32(sy), float32(outer), float32(outer*0.45),
		topperColor, float32(alpha), s.camera.Yaw)

	var op ebiten.DrawTrianglesOptions
	op.Blend = BlendAdd.EbitenBlend()
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	screen.DrawTriangles32(verts, inds, WhitePixel, &op)
}

// starFan builds a triangle fan for a five-point star centered at (cx, cy).
// Colors are premultiplied by alpha.
func starFan(cx, cy, outer, inner float32, c Color, alpha float32, spin float64) ([]ebiten.Vertex, []uint32) {
	const points = 5
	r, g, b := float32(c.R)*alpha, float32(c.G)*alpha, float32(c.B)*alpha
	verts := make([]ebiten.Vertex, 0, 2*points+1)
	verts = append(verts, ebiten.Vertex{DstX: cx, DstY: cy, SrcX: 0.5, SrcY: 0.5, ColorR: r, ColorG: g, ColorB: b, ColorA: alpha})
	for k := 0; k < 2*points; k++ {
		rad := outer
		if k%2 == 1 {
			rad = inner
		}
		a := spin - math.Pi/2 + float64(k)*math.Pi/points
		sin, cos := math.Sincos(a)
		verts = append(verts, ebiten.Vertex{
			DstX: cx + rad*float32(cos), DstY: cy + rad*float32(sin),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: alpha,
		})
	}
	inds := make([]uint32, 0, 3*2*points)
	for k := uint32(1); k <= 2*points; k++ {
		next := k%(2*points) + 1
		inds = append(inds, 0, k, next)
	}
	return verts, inds
}

// toRGBA converts to a premultiplied color.RGBA with the given alpha.
func (c Color) toRGBA(alpha float64) color.RGBA {
	a := clamp01(alpha)
	return color.RGBA{
		R: uint8(clamp01(c.R*a) * 255),
		G: uint8(clamp01(c.G*a) * 255),
		B: uint8(clamp01(c.B*a) * 255),
		A: uint8(a * 255),
	}
}
