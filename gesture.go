package evergreen

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Landmark is one hand keypoint in normalized image coordinates
// (x, y in [0, 1], origin top-left).
type Landmark struct {
	X, Y, Z float64
}

// Hand is the 21-point hand skeleton produced by common pose estimators.
type Hand [21]Landmark

// Landmark indices used by the classifier.
const (
	LandmarkWrist     = 0
	LandmarkThumbTip  = 4
	LandmarkIndexTip  = 8
	LandmarkMiddleMCP = 9 // base of the middle finger, close to the palm center
	LandmarkMiddleTip = 12
	LandmarkRingTip   = 16
	LandmarkPinkyTip  = 20
)

// Gesture is a classified hand pose.
type Gesture uint8

const (
	GestureNone  Gesture = iota // no hand in frame
	GestureFist                 // all four fingers curled
	GestureOpen                 // hand open
	GesturePinch                // thumb and index touching
)

func (g Gesture) String() string {
	switch g {
	case GestureNone:
		return "none"
	case GestureFist:
		return "fist"
	case GestureOpen:
		return "open"
	case GesturePinch:
		return "pinch"
	default:
		return fmt.Sprintf("Gesture(%d)", uint8(g))
	}
}

// ParseGesture maps a gesture name to a Gesture.
func ParseGesture(name string) (Gesture, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return GestureNone, nil
	case "fist":
		return GestureFist, nil
	case "open":
		return GestureOpen, nil
	case "pinch":
		return GesturePinch, nil
	}
	return GestureNone, fmt.Errorf("parse gesture: unknown gesture %q", name)
}

// Classify maps a hand skeleton to a gesture. A fist wins over a pinch:
// curled fingers often bring the thumb and index together as well.
func Classify(h *Hand, cfg GestureConfig) Gesture {
	if h == nil {
		return GestureNone
	}
	wrist := h[LandmarkWrist]
	closed := true
	for _, tip := range [...]int{LandmarkIndexTip, LandmarkMiddleTip, LandmarkRingTip, LandmarkPinkyTip} {
		if planarDist(h[tip], wrist) >= cfg.FistRadius {
			closed = false
			break
		}
	}
	if closed {
		return GestureFist
	}
	if planarDist(h[LandmarkThumbTip], h[LandmarkIndexTip]) < cfg.PinchDistance {
		return GesturePinch
	}
	return GestureOpen
}

// PalmX returns the horizontal palm position in [0, 1].
func (h *Hand) PalmX() float64 {
	return h[LandmarkMiddleMCP].X
}

func planarDist(a, b Landmark) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// GestureRouter turns classified gestures into engine intents: fist
// requests the tree, open requests the starfield and steers the view spin
// with the palm, pinch asks the photo wall for a debounced spotlight.
//
// The router only sets intent. It never touches particle buffers.
type GestureRouter struct {
	Morph  *Morph
	Photos *PhotoWall
	// Spin receives the requested view spin in radians per second.
	Spin func(rate float64)

	cfg GestureConfig
}

// NewGestureRouter wires a router to its collaborators. photos and spin may be nil.
func NewGestureRouter(cfg GestureConfig, m *Morph, photos *PhotoWall, spin func(float64)) *GestureRouter {
	return &GestureRouter{Morph: m, Photos: photos, Spin: spin, cfg: cfg}
}

// Handle routes one gesture observed at time now. palmX is ignored unless g
// is GestureOpen. The returned error is ErrNoPhotos or ErrCoolingDown for a
// pinch that produced no spotlight; callers typically ignore it.
func (r *GestureRouter) Handle(g Gesture, palmX float64, now time.Duration) error {
	switch g {
	case GestureFist:
		r.Morph.RequestShape(ShapeTree)
		r.spin(0)
	case GestureOpen:
		r.Morph.RequestShape(ShapeScatter)
		r.spin((palmX - 0.5) * r.cfg.SpinGain)
	case GesturePinch:
		if r.Photos == nil {
			return ErrNoPhotos
		}
		_, err := r.Photos.Spotlight(now)
		return err
	default:
		r.spin(0)
	}
	return nil
}

// HandleHand classifies h and routes the result. A nil hand counts as GestureNone.
func (r *GestureRouter) HandleHand(h *Hand, now time.Duration) (Gesture, error) {
	g := Classify(h, r.cfg)
	palm := 0.5
	if h != nil {
		palm = h.PalmX()
	}
	return g, r.Handle(g, palm, now)
}

func (r *GestureRouter) spin(rate float64) {
	if r.Spin != nil {
		r.Spin(rate)
	}
}
