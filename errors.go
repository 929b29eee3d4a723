package evergreen

import "errors"

var (
	// ErrInvalidCount is returned when the particle count is not positive.
	ErrInvalidCount = errors.New("evergreen: particle count must be positive")
	// ErrInvalidGeometry is returned for degenerate or non-finite shape parameters.
	ErrInvalidGeometry = errors.New("evergreen: invalid geometry")
	// ErrInvalidPalette is returned for empty palettes or unusable weights.
	ErrInvalidPalette = errors.New("evergreen: invalid palette")
	// ErrUnknownEasing is returned when an easing name is not registered.
	ErrUnknownEasing = errors.New("evergreen: unknown easing")
	// ErrUnknownShape is returned when a shape name cannot be parsed.
	ErrUnknownShape = errors.New("evergreen: unknown shape")
	// ErrInvalidDuration is returned for negative timing parameters.
	ErrInvalidDuration = errors.New("evergreen: invalid duration")
	// ErrNoPhotos is returned when a photo action is requested on an empty wall.
	ErrNoPhotos = errors.New("evergreen: no photos loaded")
	// ErrCoolingDown is returned when a debounced trigger arrives inside its window.
	ErrCoolingDown = errors.New("evergreen: trigger cooling down")
)
