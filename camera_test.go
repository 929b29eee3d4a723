package evergreen

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func newTestCamera() *Camera {
	cfg := DefaultConfig()
	return newCamera(cfg.View, cfg.Gesture, Rect{Width: 800, Height: 600})
}

func TestCameraProjectOrigin(t *testing.T) {
	c := newTestCamera()
	sx, sy, depth, ok := c.Project(Vec3{})
	if !ok {
		t.Fatal("origin not visible")
	}
	if math.Abs(sx-400) > 1e-9 || math.Abs(sy-300) > 1e-9 {
		t.Errorf("origin projected to (%v, %v), want viewport center", sx, sy)
	}
	if want := math.Hypot(c.Distance, c.Elevation); math.Abs(depth-want) > 1e-9 {
		t.Errorf("depth = %v, want %v", depth, want)
	}
}

func TestCameraProjectOrientation(t *testing.T) {
	c := newTestCamera()
	cx, cy, _, _ := c.Project(Vec3{})
	rx, _, _, _ := c.Project(Vec3{X: 5})
	_, uy, _, _ := c.Project(Vec3{Y: 5})
	if rx <= cx {
		t.Errorf("+X projected left of center: %v <= %v", rx, cx)
	}
	if uy >= cy {
		t.Errorf("+Y projected below center: %v >= %v", uy, cy)
	}
}

func TestCameraProjectBehind(t *testing.T) {
	c := newTestCamera()
	if _, _, _, ok := c.Project(Vec3{Z: 100}); ok {
		t.Error("point behind the eye reported visible")
	}
}

func TestCameraPerspectiveShrinks(t *testing.T) {
	c := newTestCamera()
	_, _, near, _ := c.Project(Vec3{Z: 10})
	_, _, far, _ := c.Project(Vec3{Z: -10})
	if c.PixelsPerUnit(near) <= c.PixelsPerUnit(far) {
		t.Error("near points not larger than far points")
	}
	if c.PixelsPerUnit(-1) != c.PixelsPerUnit(nearPlane) {
		t.Error("PixelsPerUnit not clamped at the near plane")
	}
}

func TestCameraAutoRotate(t *testing.T) {
	c := newTestCamera()
	c.update(1, true)
	if math.Abs(c.Yaw-c.AutoRotate) > 1e-6 {
		t.Errorf("yaw = %v, want %v", c.Yaw, c.AutoRotate)
	}
	c.update(1, false)
	if math.Abs(c.Yaw-c.AutoRotate) > 1e-6 {
		t.Errorf("yaw moved without auto-rotation or spin: %v", c.Yaw)
	}
	for i := 0; i < 200; i++ {
		c.update(1, true)
	}
	if c.Yaw < 0 || c.Yaw >= 2*math.Pi {
		t.Errorf("yaw %v not wrapped to [0, 2π)", c.Yaw)
	}
}

func TestCameraSpinSmoothed(t *testing.T) {
	c := newTestCamera()
	c.SetSpin(2)
	c.update(1.0/60, false)
	if r := c.SpinRate(); r <= 0 || r >= 2 {
		t.Errorf("spin after one frame = %v, want strictly between 0 and 2", r)
	}
	for i := 0; i < 600; i++ {
		c.update(1.0/60, false)
	}
	if r := c.SpinRate(); math.Abs(r-2) > 0.01 {
		t.Errorf("spin did not settle: %v", r)
	}
}

func TestCameraSpinIndependentOfTickRate(t *testing.T) {
	spinAfter := func(tps, steps int) float64 {
		c := newTestCamera()
		c.SetSpin(1)
		for i := 0; i < steps; i++ {
			c.update(float32(1.0/float64(tps)), false)
		}
		return c.SpinRate()
	}

	tests := []struct {
		name  string
		tps   int
		steps int
	}{
		{"20tps", 20, 6},
		{"30tps", 30, 9},
		{"120tps", 120, 36},
	}
	want := spinAfter(60, 18) // 0.3s
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spinAfter(tt.tps, tt.steps); math.Abs(got-want) > 1e-3 {
				t.Errorf("spin after 0.3s = %v, want %v", got, want)
			}
		})
	}
}

func TestCameraZeroStepKeepsSpin(t *testing.T) {
	c := newTestCamera()
	c.SetSpin(2)
	c.update(0, false)
	if r := c.SpinRate(); r != 0 {
		t.Errorf("spin after zero step = %v, want 0", r)
	}
}

func TestCameraScrollYawTo(t *testing.T) {
	c := newTestCamera()
	c.ScrollYawTo(1, 0.5, ease.Linear)
	c.update(0.25, true)
	if math.Abs(c.Yaw-0.5) > 1e-6 {
		t.Errorf("yaw halfway = %v, want 0.5", c.Yaw)
	}
	c.update(0.25, true)
	if math.Abs(c.Yaw-1) > 1e-6 {
		t.Errorf("yaw = %v, want 1", c.Yaw)
	}
	if c.yawTween != nil {
		t.Error("tween not cleared")
	}
}

func TestCameraViewportChange(t *testing.T) {
	c := newTestCamera()
	c.Project(Vec3{})
	c.Viewport = Rect{X: 100, Y: 50, Width: 200, Height: 100}
	c.MarkDirty()
	sx, sy, _, _ := c.Project(Vec3{})
	if math.Abs(sx-200) > 1e-9 || math.Abs(sy-100) > 1e-9 {
		t.Errorf("center = (%v, %v), want (200, 100)", sx, sy)
	}
}
