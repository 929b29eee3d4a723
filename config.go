package evergreen

import (
	"fmt"
	"math"
	"time"

	"github.com/caarlos0/env/v11"
)

// envPrefix is prepended to every environment variable read by LoadConfigFromEnv.
const envPrefix = "EVERGREEN_"

// Config is the startup-time configuration of a Scene. Nothing in it is
// mutated once the scene is built.
type Config struct {
	// Count is the number of particles N. Fixed for the lifetime of a scene.
	Count int `env:"COUNT"`
	// Seed seeds the field generator. Zero picks a random seed.
	Seed uint64 `env:"SEED"`

	Tree       TreeConfig       `envPrefix:"TREE_"`
	Starfield  StarfieldConfig  `envPrefix:"STARFIELD_"`
	Transition TransitionConfig `envPrefix:"TRANSITION_"`
	Breathing  BreathingConfig  `envPrefix:"BREATHING_"`
	Photos     PhotoConfig      `envPrefix:"PHOTO_"`
	Gesture    GestureConfig    `envPrefix:"GESTURE_"`
	View       ViewConfig       `envPrefix:"VIEW_"`

	// Palette is the weighted color table. Not loaded from the environment.
	Palette Palette

	// Debug enables per-frame stats on the debug output.
	Debug bool `env:"DEBUG"`
}

// TreeConfig shapes the cone/spiral endpoint.
type TreeConfig struct {
	// Height is the vertical extent H; the tree spans [-H/2, H/2) before
	// the topper reserve is applied.
	Height float64 `env:"HEIGHT"`
	// MaxRadius is the radius at the base of the cone.
	MaxRadius float64 `env:"MAX_RADIUS"`
	// Taper is the exponent p in (1-h)^p. 1 gives a straight cone.
	Taper float64 `env:"TAPER"`
	// Layers is the number of branch tiers. Zero disables layering.
	Layers int `env:"LAYERS"`
	// LayerDepth is how far (as a fraction of the radius) each tier pulls in
	// toward its top edge.
	LayerDepth float64 `env:"LAYER_DEPTH"`
	// BandBase and BandAmplitude give the periodic modulation a + b*sin(k*angle).
	BandBase      float64 `env:"BAND_BASE"`
	BandAmplitude float64 `env:"BAND_AMPLITUDE"`
	BandFrequency float64 `env:"BAND_FREQUENCY"`
	// AngleStep is the per-index angular increment.
	AngleStep float64 `env:"ANGLE_STEP"`
	// Jitter is the half-width of the uniform planar jitter.
	Jitter float64 `env:"JITTER"`
	// RadiusVariance shrinks each particle's radius by up to this fraction.
	RadiusVariance float64 `env:"RADIUS_VARIANCE"`
	// ApexThreshold is the normalized height above which particles are
	// progressively relocated away from the tip.
	ApexThreshold float64 `env:"APEX_THRESHOLD"`
	// TopperReserve shifts the whole tree down to leave room for the topper.
	TopperReserve float64 `env:"TOPPER_RESERVE"`
}

// StarfieldConfig shapes the spherical endpoint.
type StarfieldConfig struct {
	Radius float64 `env:"RADIUS"`
}

// TransitionConfig controls the morph tween.
type TransitionConfig struct {
	ToScatter       time.Duration `env:"TO_SCATTER"`
	ToTree          time.Duration `env:"TO_TREE"`
	ToScatterEasing string        `env:"TO_SCATTER_EASING"`
	ToTreeEasing    string        `env:"TO_TREE_EASING"`
}

// BreathingConfig controls the tree-only vertical oscillation.
type BreathingConfig struct {
	Amplitude float64 `env:"AMPLITUDE"`
	// Frequency is the angular frequency ω in radians per second.
	Frequency float64 `env:"FREQUENCY"`
	// Phase is the per-index phase offset φ.
	Phase float64 `env:"PHASE"`
}

// PhotoConfig controls the photo wall.
type PhotoConfig struct {
	// Cooldown is the debounce window for spotlight triggers.
	Cooldown time.Duration `env:"COOLDOWN"`
	// Hold is how long a spotlighted photo stays in front.
	Hold time.Duration `env:"HOLD"`
	// Pop is the duration of the grow and shrink tweens.
	Pop      time.Duration `env:"POP"`
	PopScale float64       `env:"POP_SCALE"`
	// Size is the edge length of a photo quad in world units.
	Size float64 `env:"SIZE"`
	// SpreadX, SpreadY, SpreadZ bound the random home placement (full widths).
	SpreadX float64 `env:"SPREAD_X"`
	SpreadY float64 `env:"SPREAD_Y"`
	SpreadZ float64 `env:"SPREAD_Z"`
	// FrontZ is the depth a spotlighted photo moves to.
	FrontZ float64 `env:"FRONT_Z"`
}

// GestureConfig holds hand-landmark thresholds in normalized image units.
type GestureConfig struct {
	FistRadius    float64 `env:"FIST_RADIUS"`
	PinchDistance float64 `env:"PINCH_DISTANCE"`
	// SpinGain converts palm offset from center into radians per second.
	SpinGain        float64 `env:"SPIN_GAIN"`
	SpringFrequency float64 `env:"SPRING_FREQUENCY"`
	SpringDamping   float64 `env:"SPRING_DAMPING"`
}

// ViewConfig controls the orbit camera and particle sprites.
type ViewConfig struct {
	// AutoRotate is the yaw rate in radians per second while in tree shape.
	AutoRotate float64 `env:"AUTO_ROTATE"`
	Distance   float64 `env:"DISTANCE"`
	Elevation  float64 `env:"ELEVATION"`
	// FOV is the vertical field of view in degrees.
	FOV          float64 `env:"FOV"`
	ParticleSize float64 `env:"PARTICLE_SIZE"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Count: 3000,
		Tree: TreeConfig{
			Height:         40,
			MaxRadius:      10,
			Taper:          1,
			Layers:         7,
			LayerDepth:     0.3,
			BandBase:       1,
			BandAmplitude:  0.08,
			BandFrequency:  5,
			AngleStep:      2.4,
			Jitter:         0.75,
			RadiusVariance: 0.15,
			ApexThreshold:  0.92,
			TopperReserve:  1.5,
		},
		Starfield: StarfieldConfig{Radius: 40},
		Transition: TransitionConfig{
			ToScatter:       2 * time.Second,
			ToTree:          2500 * time.Millisecond,
			ToScatterEasing: "inOutQuad",
			ToTreeEasing:    "outElastic",
		},
		Breathing: BreathingConfig{
			Amplitude: 0.15,
			Frequency: 1.5,
			Phase:     0.05,
		},
		Photos: PhotoConfig{
			Cooldown: 2 * time.Second,
			Hold:     3 * time.Second,
			Pop:      500 * time.Millisecond,
			PopScale: 1.5,
			Size:     5,
			SpreadX:  30,
			SpreadY:  30,
			SpreadZ:  10,
			FrontZ:   20,
		},
		Gesture: GestureConfig{
			FistRadius:      0.35,
			PinchDistance:   0.05,
			SpinGain:        6,
			SpringFrequency: 6,
			SpringDamping:   0.8,
		},
		View: ViewConfig{
			AutoRotate:   0.12,
			Distance:     30,
			Elevation:    10,
			FOV:          75,
			ParticleSize: 0.4,
		},
		Palette: DefaultPalette(),
	}
}

// LoadConfigFromEnv returns DefaultConfig overlaid with EVERGREEN_*
// environment variables. Unset variables keep their defaults.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports the first configuration problem that would make the
// generator or the controller produce NaN/Inf output or fail at runtime.
func (c Config) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, c.Count)
	}
	t := c.Tree
	if !(t.Height > 0) || !finite(t.Height) {
		return fmt.Errorf("%w: tree height %v", ErrInvalidGeometry, t.Height)
	}
	if !(t.MaxRadius > 0) || !finite(t.MaxRadius) {
		return fmt.Errorf("%w: tree max radius %v", ErrInvalidGeometry, t.MaxRadius)
	}
	if !(t.Taper > 0) || !finite(t.Taper) {
		return fmt.Errorf("%w: tree taper %v", ErrInvalidGeometry, t.Taper)
	}
	if t.Layers < 0 || t.LayerDepth < 0 || t.LayerDepth >= 1 {
		return fmt.Errorf("%w: tree layers %d depth %v", ErrInvalidGeometry, t.Layers, t.LayerDepth)
	}
	if !finite(t.BandBase) || !finite(t.BandAmplitude) || !finite(t.BandFrequency) ||
		t.BandBase-math.Abs(t.BandAmplitude) <= 0 {
		return fmt.Errorf("%w: band modulation %v±%v", ErrInvalidGeometry, t.BandBase, t.BandAmplitude)
	}
	if !finite(t.AngleStep) || t.AngleStep == 0 {
		return fmt.Errorf("%w: angle step %v", ErrInvalidGeometry, t.AngleStep)
	}
	if !finite(t.Jitter) || t.Jitter < 0 {
		return fmt.Errorf("%w: jitter %v", ErrInvalidGeometry, t.Jitter)
	}
	if !(t.RadiusVariance >= 0 && t.RadiusVariance < 1) {
		return fmt.Errorf("%w: radius variance %v", ErrInvalidGeometry, t.RadiusVariance)
	}
	if !(t.ApexThreshold > 0 && t.ApexThreshold <= 1) {
		return fmt.Errorf("%w: apex threshold %v", ErrInvalidGeometry, t.ApexThreshold)
	}
	if !finite(t.TopperReserve) {
		return fmt.Errorf("%w: topper reserve %v", ErrInvalidGeometry, t.TopperReserve)
	}
	if !(c.Starfield.Radius > 0) || !finite(c.Starfield.Radius) {
		return fmt.Errorf("%w: starfield radius %v", ErrInvalidGeometry, c.Starfield.Radius)
	}
	if err := c.Palette.Validate(); err != nil {
		return err
	}
	if err := c.Transition.validate(); err != nil {
		return err
	}
	b := c.Breathing
	if !finite(b.Amplitude) || !finite(b.Frequency) || !finite(b.Phase) {
		return fmt.Errorf("%w: breathing %+v", ErrInvalidGeometry, b)
	}
	p := c.Photos
	if p.Cooldown < 0 || p.Hold < 0 || p.Pop < 0 {
		return fmt.Errorf("%w: photo timings %v/%v/%v", ErrInvalidDuration, p.Cooldown, p.Hold, p.Pop)
	}
	if !(p.PopScale > 0) || !finite(p.PopScale) || !(p.Size > 0) || !finite(p.Size) {
		return fmt.Errorf("%w: photo pop scale %v size %v", ErrInvalidGeometry, p.PopScale, p.Size)
	}
	for _, v := range [...]float64{p.SpreadX, p.SpreadY, p.SpreadZ} {
		if !(v >= 0) || !finite(v) {
			return fmt.Errorf("%w: photo spread %v/%v/%v", ErrInvalidGeometry, p.SpreadX, p.SpreadY, p.SpreadZ)
		}
	}
	if !finite(p.FrontZ) {
		return fmt.Errorf("%w: photo front z %v", ErrInvalidGeometry, p.FrontZ)
	}
	g := c.Gesture
	if !(g.FistRadius > 0) || !finite(g.FistRadius) || !(g.PinchDistance > 0) || !finite(g.PinchDistance) {
		return fmt.Errorf("%w: gesture thresholds %v/%v", ErrInvalidGeometry, g.FistRadius, g.PinchDistance)
	}
	if !finite(g.SpinGain) || !(g.SpringFrequency >= 0) || !finite(g.SpringFrequency) ||
		!(g.SpringDamping >= 0) || !finite(g.SpringDamping) {
		return fmt.Errorf("%w: gesture spin %+v", ErrInvalidGeometry, g)
	}
	v := c.View
	if !(v.FOV > 0 && v.FOV < 180) || !(v.Distance > 0) || !finite(v.Distance) {
		return fmt.Errorf("%w: view fov %v distance %v", ErrInvalidGeometry, v.FOV, v.Distance)
	}
	if !finite(v.AutoRotate) || !finite(v.Elevation) || !(v.ParticleSize > 0) || !finite(v.ParticleSize) {
		return fmt.Errorf("%w: view %+v", ErrInvalidGeometry, v)
	}
	return nil
}

func (t TransitionConfig) validate() error {
	if t.ToScatter < 0 || t.ToTree < 0 {
		return fmt.Errorf("%w: transition %v/%v", ErrInvalidDuration, t.ToScatter, t.ToTree)
	}
	if _, err := EasingByName(t.ToScatterEasing); err != nil {
		return err
	}
	if _, err := EasingByName(t.ToTreeEasing); err != nil {
		return err
	}
	return nil
}
