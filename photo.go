package evergreen

import (
	"image"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PhotoItem is a user-supplied image placed in the scene. It is only a
// consumer of morph transitions; the engine never touches its pixels.
type PhotoItem struct {
	ID    int
	Name  string
	Image *ebiten.Image // nil renders as a plain quad
	// Home is the resting placement among the scattered stars.
	Home Vec3
	// Pos and Scale are the current placement, animated while spotlit.
	Pos     Vec3
	Scale   float64
	Visible bool
}

// spotPhase tracks the spotlight state machine.
type spotPhase uint8

const (
	spotGrow spotPhase = iota
	spotHold
	spotShrink
)

type spotlight struct {
	item  *PhotoItem
	phase spotPhase
	tween *gween.Tween
	hold  float32 // seconds remaining in spotHold
}

// PhotoWall holds the photo items and toggles their visibility in lockstep
// with the morph: visible once the scattered shape has settled, hidden as
// soon as a transition back to the tree starts. A debounced spotlight brings
// one random item to the front, holds it, then returns it to a new home.
//
// An empty wall is valid; every operation on it is a no-op.
type PhotoWall struct {
	cfg      PhotoConfig
	rng      *rand.Rand
	items    []*PhotoItem
	nextID   int
	eligible bool
	cooldown Cooldown
	spot     *spotlight

	// OnReveal, when set, is called for every accepted spotlight.
	OnReveal func(*PhotoItem)
}

// NewPhotoWall creates an empty wall. rng drives home placement and the
// spotlight choice; nil seeds a random generator.
func NewPhotoWall(cfg PhotoConfig, rng *rand.Rand) *PhotoWall {
	if rng == nil {
		rng = newRand(0)
	}
	return &PhotoWall{
		cfg:      cfg,
		rng:      rng,
		cooldown: Cooldown{Window: cfg.Cooldown},
	}
}

// Add places a decoded image on the wall. img may be nil.
func (w *PhotoWall) Add(name string, img image.Image) *PhotoItem {
	var eimg *ebiten.Image
	switch v := img.(type) {
	case nil:
	case *ebiten.Image:
		eimg = v
	default:
		eimg = ebiten.NewImageFromImage(v)
	}
	w.nextID++
	home := w.randomHome()
	it := &PhotoItem{
		ID:      w.nextID,
		Name:    name,
		Image:   eimg,
		Home:    home,
		Pos:     home,
		Scale:   1,
		Visible: w.eligible,
	}
	w.items = append(w.items, it)
	return it
}

// Clear removes every item and cancels any spotlight.
func (w *PhotoWall) Clear() {
	w.items = w.items[:0]
	w.spot = nil
}

// Len returns the number of items.
func (w *PhotoWall) Len() int {
	return len(w.items)
}

// Items returns the wall's items. The returned slice MUST NOT be mutated.
func (w *PhotoWall) Items() []*PhotoItem {
	return w.items
}

// Eligible reports whether items are currently shown among the stars.
func (w *PhotoWall) Eligible() bool {
	return w.eligible
}

// Spotlit returns the item currently in front, or nil.
func (w *PhotoWall) Spotlit() *PhotoItem {
	if w.spot == nil {
		return nil
	}
	return w.spot.item
}

// HandleMorph applies a morph notification. Register it with Morph.OnEvent.
func (w *PhotoWall) HandleMorph(e MorphEvent) {
	switch {
	case e.Kind == MorphSettled && e.Shape == ShapeScatter:
		w.setEligible(true)
	case e.Kind == MorphStarted && e.Shape == ShapeTree:
		w.setEligible(false)
	}
}

func (w *PhotoWall) setEligible(v bool) {
	w.eligible = v
	if !v && w.spot != nil {
		w.rehome(w.spot.item)
		w.spot = nil
	}
	for _, it := range w.items {
		it.Visible = v
	}
}

// Spotlight brings a random item to the front at time now. It returns
// ErrNoPhotos on an empty wall and ErrCoolingDown when now falls inside the
// cooldown window of the previous accepted spotlight.
func (w *PhotoWall) Spotlight(now time.Duration) (*PhotoItem, error) {
	if len(w.items) == 0 {
		return nil, ErrNoPhotos
	}
	if !w.cooldown.Allow(now) {
		return nil, ErrCoolingDown
	}
	if w.spot != nil {
		w.rehome(w.spot.item)
	}

	it := w.items[w.rng.IntN(len(w.items))]
	it.Visible = true
	it.Pos = Vec3{Z: w.cfg.FrontZ}
	it.Scale = 0
	w.spot = &spotlight{
		item:  it,
		phase: spotGrow,
		tween: gween.New(0, float32(w.cfg.PopScale), seconds(w.cfg.Pop), ease.OutBack),
	}
	if w.cfg.Pop <= 0 {
		it.Scale = w.cfg.PopScale
		w.spot.phase = spotHold
		w.spot.hold = seconds(w.cfg.Hold)
	}
	if w.OnReveal != nil {
		w.OnReveal(it)
	}
	return it, nil
}

// Update advances the spotlight by dt seconds.
func (w *PhotoWall) Update(dt float32) {
	sp := w.spot
	if sp == nil {
		return
	}
	switch sp.phase {
	case spotGrow:
		val, done := sp.tween.Update(dt)
		sp.item.Scale = float64(val)
		if done {
			sp.phase = spotHold
			sp.hold = seconds(w.cfg.Hold)
		}
	case spotHold:
		sp.hold -= dt
		if sp.hold <= 0 {
			sp.phase = spotShrink
			sp.tween = gween.New(float32(sp.item.Scale), 0, seconds(w.cfg.Pop), ease.OutQuad)
			if w.cfg.Pop <= 0 {
				w.rehome(sp.item)
				w.spot = nil
			}
		}
	case spotShrink:
		val, done := sp.tween.Update(dt)
		sp.item.Scale = float64(val)
		if done {
			w.rehome(sp.item)
			w.spot = nil
		}
	}
}

// rehome returns an item to a fresh random home at rest scale.
func (w *PhotoWall) rehome(it *PhotoItem) {
	it.Home = w.randomHome()
	it.Pos = it.Home
	it.Scale = 1
	it.Visible = w.eligible
}

func (w *PhotoWall) randomHome() Vec3 {
	return Vec3{
		X: (w.rng.Float64() - 0.5) * w.cfg.SpreadX,
		Y: (w.rng.Float64() - 0.5) * w.cfg.SpreadY,
		Z: (w.rng.Float64() - 0.5) * w.cfg.SpreadZ,
	}
}
