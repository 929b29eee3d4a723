package evergreen

import (
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MorphEventKind distinguishes morph notifications.
type MorphEventKind uint8

const (
	MorphStarted MorphEventKind = iota // a transition toward Shape began
	MorphSettled                       // blend reached Shape's endpoint
)

// MorphEvent is delivered to Morph listeners.
type MorphEvent struct {
	Kind  MorphEventKind
	Shape Shape
	// Blend is the blend factor at the time of the event.
	Blend float64
}

type morphHandler struct {
	id uint32
	fn func(MorphEvent)
}

// CallbackHandle allows removing a registered morph listener.
type CallbackHandle struct {
	id uint32
	m  *Morph
}

// Remove unregisters the listener so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.m == nil {
		return
	}
	s := h.m.handlers
	for i := range s {
		if s[i].id == h.id {
			// Build a fresh slice; emit may be ranging over the old one.
			hs := make([]morphHandler, 0, len(s)-1)
			hs = append(hs, s[:i]...)
			h.m.handlers = append(hs, s[i+1:]...)
			return
		}
	}
}

// transition is a resolved duration + easing pair for one direction.
type transition struct {
	duration float32
	fn       ease.TweenFunc
}

// Morph owns the single blend factor of a scene and the committed target
// shape. blend is changed only by the tween in Update; the target only by
// RequestShape.
//
// There is no global state; each Scene owns one Morph.
type Morph struct {
	raw    float64 // unclamped tween output
	target Shape
	tween  *gween.Tween

	toTree    transition
	toScatter transition

	settled   Shape
	isSettled bool

	handlers []morphHandler
	nextID   uint32
}

// NewMorph returns a controller resting at the initial shape.
func NewMorph(cfg TransitionConfig, initial Shape) (*Morph, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("new morph: %w", err)
	}
	toTree, _ := EasingByName(cfg.ToTreeEasing)
	toScatter, _ := EasingByName(cfg.ToScatterEasing)
	return &Morph{
		raw:       initial.Endpoint(),
		target:    initial,
		toTree:    transition{seconds(cfg.ToTree), toTree},
		toScatter: transition{seconds(cfg.ToScatter), toScatter},
		settled:   initial,
		isSettled: true,
	}, nil
}

// SetEasing overrides the easing used when moving toward s.
func (m *Morph) SetEasing(s Shape, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	if s == ShapeScatter {
		m.toScatter.fn = fn
	} else {
		m.toTree.fn = fn
	}
}

// RequestShape commits s as the target. It is a no-op returning false when s
// is already the committed target, leaving the blend and any in-flight tween
// untouched. Otherwise a new tween starts from the live blend value, so a
// reversal mid-flight continues smoothly from where the particles are.
func (m *Morph) RequestShape(s Shape) bool {
	if s > ShapeScatter || s == m.target {
		return false
	}
	m.target = s
	m.isSettled = false

	from := m.Blend()
	m.raw = from
	tr := m.transitionFor(s)
	m.emit(MorphEvent{Kind: MorphStarted, Shape: s, Blend: from})

	if tr.duration <= 0 {
		m.tween = nil
		m.raw = s.Endpoint()
		m.settle()
		return true
	}
	m.tween = gween.New(float32(from), float32(s.Endpoint()), tr.duration, tr.fn)
	return true
}

// Update advances the in-flight tween by dt seconds. Settle listeners fire
// from inside Update on the frame the tween completes.
func (m *Morph) Update(dt float32) {
	if m.tween == nil {
		return
	}
	val, done := m.tween.Update(dt)
	m.raw = float64(val)
	if done {
		m.tween = nil
		m.raw = m.target.Endpoint()
		m.settle()
	}
}

// Blend returns the current blend factor clamped to [0, 1]. Overshooting
// easings (elastic, back) never extrapolate past an endpoint.
func (m *Morph) Blend() float64 {
	return clamp01(m.raw)
}

// Target returns the committed shape.
func (m *Morph) Target() Shape {
	return m.target
}

// InFlight reports whether a transition is running.
func (m *Morph) InFlight() bool {
	return m.tween != nil
}

// Settled returns the shape the blend last came to rest at and whether the
// controller is currently at rest there.
func (m *Morph) Settled() (Shape, bool) {
	return m.settled, m.isSettled
}

// OnEvent registers fn for every morph notification.
func (m *Morph) OnEvent(fn func(MorphEvent)) CallbackHandle {
	m.nextID++
	m.handlers = append(m.handlers, morphHandler{id: m.nextID, fn: fn})
	return CallbackHandle{id: m.nextID, m: m}
}

// OnSettled registers fn for settle notifications only.
func (m *Morph) OnSettled(fn func(Shape)) CallbackHandle {
	return m.OnEvent(func(e MorphEvent) {
		if e.Kind == MorphSettled {
			fn(e.Shape)
		}
	})
}

func (m *Morph) settle() {
	m.settled = m.target
	m.isSettled = true
	m.emit(MorphEvent{Kind: MorphSettled, Shape: m.target, Blend: m.Blend()})
}

func (m *Morph) emit(e MorphEvent) {
	hs := m.handlers
	for _, h := range hs {
		h.fn(e)
	}
}

func (m *Morph) transitionFor(s Shape) transition {
	if s == ShapeScatter {
		return m.toScatter
	}
	return m.toTree
}

// seconds converts a duration to the float32 seconds gween works in.
func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}
