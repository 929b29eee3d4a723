package evergreen

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventSink is the interface for optional ECS integration. When set on a
// Scene, morph notifications and photo reveals are forwarded to it.
type EventSink interface {
	EmitMorph(event MorphEvent)
	EmitReveal(event PhotoRevealEvent)
}

// PhotoRevealEvent reports an accepted spotlight.
type PhotoRevealEvent struct {
	ItemID int
	Name   string
	At     time.Duration
}

const (
	defaultViewportW = 1280
	defaultViewportH = 720
)

// Scene is the top-level object that owns the particle field, the morph
// controller, the rendered buffers, the camera and the photo wall. Nothing
// is shared between scenes.
type Scene struct {
	cfg     Config
	field   *Field
	morph   *Morph
	buffers *Buffers
	camera  *Camera
	photos  *PhotoWall
	router  *GestureRouter
	sink    EventSink

	// elapsed is the absolute scene time; breathing is a function of it.
	elapsed time.Duration

	// ClearColor fills the screen before drawing. The zero value is black.
	ClearColor Color
	// BlendMode is the compositing operation for particle quads.
	BlendMode BlendMode
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	showHUD    bool
	bindings   []keyBinding
	updateFunc func() error

	// Render scratch, reused across frames.
	verts []ebiten.Vertex
	inds  []uint32

	injectQueue     []syntheticInput
	testRunner      *TestRunner
	screenshotQueue []string

	debug    bool
	debugOut io.Writer
}

// NewScene validates cfg, generates the particle field and wires the
// controller, photo wall and gesture router together. rng may be nil.
func NewScene(cfg Config, rng *rand.Rand) (*Scene, error) {
	if rng == nil {
		rng = newRand(cfg.Seed)
	}
	f, err := Generate(cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	return newScene(cfg, f, rng)
}

// NewSceneFromField builds a scene around precomputed endpoints. cfg.Count
// is taken from the field.
func NewSceneFromField(cfg Config, f *Field, rng *rand.Rand) (*Scene, error) {
	if f == nil {
		return nil, fmt.Errorf("new scene: %w: nil field", ErrInvalidCount)
	}
	cfg.Count = f.Len()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	if rng == nil {
		rng = newRand(cfg.Seed)
	}
	return newScene(cfg, f, rng)
}

func newScene(cfg Config, f *Field, rng *rand.Rand) (*Scene, error) {
	m, err := NewMorph(cfg.Transition, ShapeTree)
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	s := &Scene{
		cfg:           cfg,
		field:         f,
		morph:         m,
		buffers:       newBuffers(f),
		camera:        newCamera(cfg.View, cfg.Gesture, Rect{Width: defaultViewportW, Height: defaultViewportH}),
		photos:        NewPhotoWall(cfg.Photos, rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))),
		ScreenshotDir: "screenshots",
		bindings:      defaultBindings(),
		debug:         cfg.Debug,
		debugOut:      os.Stderr,
	}
	s.router = NewGestureRouter(cfg.Gesture, m, s.photos, s.camera.SetSpin)

	m.OnEvent(s.photos.HandleMorph)
	m.OnEvent(s.forwardMorph)
	s.photos.OnReveal = s.forwardReveal

	s.frame()
	return s, nil
}

// Update reads keyboard bindings and advances the scene by one fixed tick.
// Call it from ebiten.Game.Update.
func (s *Scene) Update() error {
	s.processKeys()
	s.Step(float32(1.0 / float64(ebiten.TPS())))
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Step advances the scene by dt seconds without reading any device input:
// scripted and injected input, the morph tween, the photo spotlight, the
// camera, and finally the per-frame interpolation. Breathing is weighted
// by the tree share of the blend, so it keeps running, fading out, while a
// transition toward scatter is in flight.
func (s *Scene) Step(dt float32) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjected()

	s.morph.Update(dt)
	s.photos.Update(dt)
	s.camera.update(dt, s.morph.Target() == ShapeTree)

	s.elapsed += time.Duration(float64(dt) * float64(time.Second))
	s.frame()
}

// frame rewrites the rendered positions from the live blend and marks them
// changed for the renderer.
func (s *Scene) frame() {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	Interpolate(s.buffers.Positions, s.field.Tree, s.field.Scatter,
		s.morph.Blend(), s.elapsed.Seconds(), s.cfg.Breathing)
	s.buffers.MarkChanged()

	if s.debug {
		s.debugLogFrame(time.Since(t0))
	}
}

// RequestShape commits a target shape. See Morph.RequestShape.
func (s *Scene) RequestShape(shape Shape) bool {
	return s.morph.RequestShape(shape)
}

// HandleGesture routes a classified gesture at the current scene time.
func (s *Scene) HandleGesture(g Gesture, palmX float64) error {
	return s.router.Handle(g, palmX, s.elapsed)
}

// HandleHand classifies and routes a hand skeleton at the current scene time.
// A nil hand means no hand was detected.
func (s *Scene) HandleHand(h *Hand) (Gesture, error) {
	return s.router.HandleHand(h, s.elapsed)
}

// Spotlight asks the photo wall for a debounced spotlight now.
func (s *Scene) Spotlight() (*PhotoItem, error) {
	return s.photos.Spotlight(s.elapsed)
}

// Config returns the configuration the scene was built with.
func (s *Scene) Config() Config { return s.cfg }

// Field returns the immutable particle field.
func (s *Scene) Field() *Field { return s.field }

// Morph returns the scene's morph controller.
func (s *Scene) Morph() *Morph { return s.morph }

// Buffers returns the renderer-facing buffers.
func (s *Scene) Buffers() *Buffers { return s.buffers }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Photos returns the photo wall.
func (s *Scene) Photos() *PhotoWall { return s.photos }

// Elapsed returns the absolute scene time.
func (s *Scene) Elapsed() time.Duration { return s.elapsed }

// SetEventSink sets the optional ECS bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetUpdateFunc registers a callback run at the end of every Update.
// A non-nil error returned from it ends the game loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetHUD shows or hides the status overlay.
func (s *Scene) SetHUD(enabled bool) {
	s.showHUD = enabled
}

// SetDebugMode enables or disables per-frame timing stats on the debug output.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetDebugOutput redirects debug logging. The default is os.Stderr.
func (s *Scene) SetDebugOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	s.debugOut = w
}

// SetViewport resizes the camera viewport.
func (s *Scene) SetViewport(r Rect) {
	s.camera.Viewport = r
	s.camera.MarkDirty()
}

func (s *Scene) forwardMorph(e MorphEvent) {
	if s.debug {
		s.debugLogf("morph %s %s at blend %.3f", morphKindName(e.Kind), e.Shape, e.Blend)
	}
	if s.sink != nil {
		s.sink.EmitMorph(e)
	}
}

func (s *Scene) forwardReveal(it *PhotoItem) {
	if s.debug {
		s.debugLogf("spotlight photo %d %q", it.ID, it.Name)
	}
	if s.sink != nil {
		s.sink.EmitReveal(PhotoRevealEvent{ItemID: it.ID, Name: it.Name, At: s.elapsed})
	}
}

func morphKindName(k MorphEventKind) string {
	if k == MorphSettled {
		return "settled"
	}
	return "started"
}

// OnSettled registers fn to run whenever a transition completes.
func (s *Scene) OnSettled(fn func(Shape)) CallbackHandle {
	return s.morph.OnSettled(fn)
}
