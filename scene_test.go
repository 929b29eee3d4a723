package evergreen

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"
)

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	cfg := testConfig(200)
	cfg.Transition = linearTransition(time.Second)
	s, err := NewScene(cfg, nil)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	s.SetDebugOutput(nil)
	return s
}

func stepFor(s *Scene, seconds float64) {
	const dt = 1.0 / 60
	for n := int(seconds/dt + 0.5); n > 0; n-- {
		s.Step(dt)
	}
}

type recordingSink struct {
	morphs  []MorphEvent
	reveals []PhotoRevealEvent
}

func (r *recordingSink) EmitMorph(e MorphEvent)        { r.morphs = append(r.morphs, e) }
func (r *recordingSink) EmitReveal(e PhotoRevealEvent) { r.reveals = append(r.reveals, e) }

func TestNewSceneDefaults(t *testing.T) {
	s := newTestScene(t)
	if s.Morph().Target() != ShapeTree || s.Morph().Blend() != 0 {
		t.Errorf("target=%v blend=%v", s.Morph().Target(), s.Morph().Blend())
	}
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q", s.ScreenshotDir)
	}
	if s.BlendMode != BlendAdd {
		t.Errorf("BlendMode = %v, want BlendAdd", s.BlendMode)
	}
	if s.Buffers().Len() != 200 || s.Field().Len() != 200 {
		t.Errorf("buffers=%d field=%d", s.Buffers().Len(), s.Field().Len())
	}
}

func TestNewSceneInvalid(t *testing.T) {
	cfg := testConfig(0)
	if _, err := NewScene(cfg, nil); err == nil {
		t.Error("expected error for zero count")
	}
	if _, err := NewSceneFromField(DefaultConfig(), nil, nil); err == nil {
		t.Error("expected error for nil field")
	}
}

func TestSceneStepMarksChanged(t *testing.T) {
	s := newTestScene(t)
	seen := s.Buffers().Version()
	s.Step(1.0 / 60)
	if !s.Buffers().Changed(seen) {
		t.Error("Step did not mark positions changed")
	}
	if s.Elapsed() <= 0 {
		t.Error("elapsed did not advance")
	}
}

func TestSceneBreathingFadesDuringScatter(t *testing.T) {
	s := newTestScene(t)
	b := s.Config().Breathing
	if b.Amplitude == 0 {
		t.Fatal("test config has no breathing")
	}
	s.RequestShape(ShapeScatter)
	stepFor(s, 0.5)

	blend := s.Morph().Blend()
	if blend <= 0 || blend >= 1 {
		t.Fatalf("blend = %v, want mid-transition", blend)
	}
	f := s.Field()
	still := make([]float32, len(f.Tree))
	Interpolate(still, f.Tree, f.Scatter, blend, 0, BreathingConfig{})

	tsec := s.Elapsed().Seconds()
	pos := s.Buffers().Positions
	for _, i := range []int{0, 7, 42} {
		got := float64(pos[3*i+1] - still[3*i+1])
		want := math.Sin(tsec*b.Frequency+float64(i)*b.Phase) * b.Amplitude * (1 - blend)
		if math.Abs(got-want) > 1e-4 {
			t.Errorf("particle %d breathing offset = %v, want %v", i, got, want)
		}
	}
}

func TestSceneNeverRequested(t *testing.T) {
	s := newTestScene(t)
	stepFor(s, 3)
	if s.Morph().Target() != ShapeTree || s.Morph().Blend() != 0 {
		t.Error("scene left the tree without a request")
	}
}

func TestSceneFullCycle(t *testing.T) {
	s := newTestScene(t)
	sink := &recordingSink{}
	s.SetEventSink(sink)
	s.Photos().Add("a", nil)

	var settled []Shape
	s.OnSettled(func(sh Shape) { settled = append(settled, sh) })

	if err := s.HandleGesture(GestureOpen, 0.5); err != nil {
		t.Fatal(err)
	}
	stepFor(s, 1.2)
	if s.Morph().Blend() != 1 {
		t.Fatalf("blend = %v after transition", s.Morph().Blend())
	}
	for i := 0; i < s.Buffers().Len(); i++ {
		if s.Buffers().PositionAt(i) != s.Field().ScatterAt(i) {
			t.Fatalf("particle %d not at scatter endpoint", i)
		}
	}
	if !s.Photos().Items()[0].Visible {
		t.Error("photo hidden after scatter settled")
	}

	if _, err := s.HandleHand(testHand(0.15, 0.2)); err != nil {
		t.Fatal(err)
	}
	if s.Photos().Items()[0].Visible {
		t.Error("photo visible while returning to tree")
	}
	stepFor(s, 1.2)

	if len(settled) != 2 || settled[0] != ShapeScatter || settled[1] != ShapeTree {
		t.Errorf("settled = %v", settled)
	}
	if len(sink.morphs) != 4 {
		t.Errorf("sink saw %d morph events, want 4", len(sink.morphs))
	}
}

func TestSceneSpotlightDebounce(t *testing.T) {
	cfg := testConfig(50)
	cfg.Photos.Cooldown = 1500 * time.Millisecond
	s, err := NewScene(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	sink := &recordingSink{}
	s.SetEventSink(sink)
	s.Photos().Add("a", nil)

	_ = s.HandleGesture(GesturePinch, 0.5)
	stepFor(s, 0.2)
	_ = s.HandleGesture(GesturePinch, 0.5)

	if len(sink.reveals) != 1 {
		t.Fatalf("reveals = %d, want 1", len(sink.reveals))
	}
	if sink.reveals[0].Name != "a" || sink.reveals[0].At != 0 {
		t.Errorf("reveal = %+v", sink.reveals[0])
	}
}

func TestScenesAreIndependent(t *testing.T) {
	a := newTestScene(t)
	b := newTestScene(t)
	a.RequestShape(ShapeScatter)
	stepFor(a, 0.5)
	if b.Morph().Target() != ShapeTree || b.Morph().Blend() != 0 {
		t.Error("request on one scene affected another")
	}
}

func TestSceneDebugOutput(t *testing.T) {
	s := newTestScene(t)
	var buf bytes.Buffer
	s.SetDebugOutput(&buf)
	s.SetDebugMode(true)
	s.RequestShape(ShapeScatter)
	s.Step(1.0 / 60)

	out := buf.String()
	for _, want := range []string{"[evergreen] morph started scatter", "[evergreen] interpolate:"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	s.SetDebugMode(false)
	s.Step(1.0 / 60)
	if buf.Len() != 0 {
		t.Errorf("debug output with debug off: %q", buf.String())
	}
}

func TestSceneUpdateFunc(t *testing.T) {
	s := newTestScene(t)
	calls := 0
	s.SetUpdateFunc(func() error { calls++; return nil })
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("update func called %d times", calls)
	}
}

func TestSceneHUDText(t *testing.T) {
	s := newTestScene(t)
	s.Photos().Add("a", nil)
	text := s.hudText(60, 60)
	for _, want := range []string{"FPS: 60.0", "shape: tree", "blend: 0.00", "photos: 1"} {
		if !strings.Contains(text, want) {
			t.Errorf("HUD %q missing %q", text, want)
		}
	}
}

func TestSceneSetViewport(t *testing.T) {
	s := newTestScene(t)
	s.SetViewport(Rect{Width: 320, Height: 200})
	sx, sy, _, ok := s.Camera().Project(Vec3{})
	if !ok || sx < 159 || sx > 161 || sy < 99 || sy > 101 {
		t.Errorf("center = (%v, %v, %v)", sx, sy, ok)
	}
}
