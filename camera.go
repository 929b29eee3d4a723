package evergreen

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"gonum.org/v1/gonum/spatial/r3"
)

// nearPlane is the minimum view depth that still projects.
const nearPlane = 0.1

// Camera is a perspective view orbiting the field. The field spins around
// the Y axis by Yaw; the eye sits at (0, Elevation, Distance) looking at
// the origin.
type Camera struct {
	// Yaw is the field's rotation around Y in radians.
	Yaw float64
	// Distance and Elevation place the eye.
	Distance  float64
	Elevation float64
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
	// AutoRotate is the yaw rate in radians per second applied while the
	// committed shape is the tree.
	AutoRotate float64

	// Gesture spin: the requested rate is smoothed by a damped spring so a
	// jittery palm position does not jerk the view.
	spring     harmonica.Spring
	springDT   float32
	springFreq float64
	springDamp float64
	spinTarget float64
	spinRate   float64
	spinVel    float64

	yawTween *gween.Tween

	right, up, forward r3.Vec
	eye                r3.Vec
	focal              float64
	cosYaw, sinYaw     float64
	dirty              bool
}

// newCamera creates a Camera for the given viewport.
func newCamera(view ViewConfig, g GestureConfig, viewport Rect) *Camera {
	return &Camera{
		Distance:   view.Distance,
		Elevation:  view.Elevation,
		FOV:        view.FOV,
		Viewport:   viewport,
		AutoRotate: view.AutoRotate,
		springFreq: g.SpringFrequency,
		springDamp: g.SpringDamping,
		dirty:      true,
	}
}

// SetSpin requests a gesture-driven spin rate in radians per second.
func (c *Camera) SetSpin(rate float64) {
	c.spinTarget = rate
}

// SpinRate returns the current smoothed gesture spin rate.
func (c *Camera) SpinRate() float64 {
	return c.spinRate
}

// ScrollYawTo animates Yaw to the given angle over duration seconds.
// Spin and auto-rotation are suspended until it completes.
func (c *Camera) ScrollYawTo(yaw float64, duration float32, fn ease.TweenFunc) {
	c.yawTween = gween.New(float32(c.Yaw), float32(yaw), duration, fn)
}

// update advances spin, auto-rotation and yaw scrolling by dt seconds.
func (c *Camera) update(dt float32, autoRotate bool) {
	prevYaw := c.Yaw

	if dt > 0 {
		// The spring coefficients depend on the step, so rebuild when it changes.
		if dt != c.springDT {
			c.spring = harmonica.NewSpring(float64(dt), c.springFreq, c.springDamp)
			c.springDT = dt
		}
		c.spinRate, c.spinVel = c.spring.Update(c.spinRate, c.spinVel, c.spinTarget)
	}

	if c.yawTween != nil {
		val, done := c.yawTween.Update(dt)
		c.Yaw = float64(val)
		if done {
			c.yawTween = nil
		}
	} else {
		rate := c.spinRate
		if autoRotate {
			rate += c.AutoRotate
		}
		c.Yaw = math.Mod(c.Yaw+rate*float64(dt), 2*math.Pi)
	}

	if c.Yaw != prevYaw {
		c.dirty = true
	}
}

// MarkDirty forces a recomputation of the view basis. Call it after
// changing Viewport, FOV, Distance or Elevation directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// computeView refreshes the cached eye basis and yaw terms if dirty.
func (c *Camera) computeView() {
	if !c.dirty {
		return
	}
	c.dirty = false

	c.eye = r3.Vec{Y: c.Elevation, Z: c.Distance}
	c.forward = r3.Unit(r3.Scale(-1, c.eye))
	c.right = r3.Unit(r3.Cross(c.forward, r3.Vec{Y: 1}))
	c.up = r3.Cross(c.right, c.forward)
	c.focal = (c.Viewport.Height / 2) / math.Tan(c.FOV*math.Pi/360)
	c.sinYaw, c.cosYaw = math.Sincos(c.Yaw)
}

// Project maps a world position to screen coordinates. depth is the
// distance along the view axis; ok is false for points behind the near
// plane.
func (c *Camera) Project(p Vec3) (sx, sy, depth float64, ok bool) {
	c.computeView()
	return c.project(p.X, p.Y, p.Z)
}

func (c *Camera) project(x, y, z float64) (sx, sy, depth float64, ok bool) {
	rx := x*c.cosYaw + z*c.sinYaw
	rz := -x*c.sinYaw + z*c.cosYaw
	d := r3.Vec{X: rx - c.eye.X, Y: y - c.eye.Y, Z: rz - c.eye.Z}

	depth = r3.Dot(d, c.forward)
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	k := c.focal / depth
	sx = c.Viewport.X + c.Viewport.Width/2 + r3.Dot(d, c.right)*k
	sy = c.Viewport.Y + c.Viewport.Height/2 - r3.Dot(d, c.up)*k
	return sx, sy, depth, true
}

// PixelsPerUnit returns how many screen pixels one world unit spans at depth.
func (c *Camera) PixelsPerUnit(depth float64) float64 {
	c.computeView()
	if depth < nearPlane {
		depth = nearPlane
	}
	return c.focal / depth
}
