package evergreen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Color represents an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// ColorWhite is the neutral tint.
var ColorWhite = Color{1, 1, 1}

// Scale multiplies every channel by f and clamps the result to [0, 1].
func (c Color) Scale(f float64) Color {
	return Color{clamp01(c.R * f), clamp01(c.G * f), clamp01(c.B * f)}
}

// Vec3 is the 3D vector type used for endpoint positions and view math.
type Vec3 = r3.Vec

// WhitePixel is a 1x1 white image used as the source texture for particle quads.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA(1))
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Shape identifies one endpoint configuration of the particle field.
type Shape uint8

const (
	ShapeTree    Shape = iota // cone/spiral, blend endpoint 0
	ShapeScatter              // spherical starfield, blend endpoint 1
)

// Endpoint returns the blend factor associated with the shape.
func (s Shape) Endpoint() float64 {
	if s == ShapeScatter {
		return 1
	}
	return 0
}

func (s Shape) String() string {
	switch s {
	case ShapeTree:
		return "tree"
	case ShapeScatter:
		return "scatter"
	default:
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
}

// ParseShape maps a shape name to a Shape. "galaxy" and "starfield" are
// accepted as aliases for the scattered shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tree":
		return ShapeTree, nil
	case "scatter", "scattered", "galaxy", "starfield":
		return ShapeScatter, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendAdd    BlendMode = iota // additive / lighter (default for particles)
	BlendNormal                  // source-over (standard alpha blending)
	BlendScreen                  // screen (1 - (1-src)*(1-dst); only brightens)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendLighter
	}
}

// clamp01 restricts v to [0, 1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
