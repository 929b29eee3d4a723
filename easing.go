package evergreen

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// easings maps configuration names to gween easing functions.
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inOutExpo":    ease.InOutExpo,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"outBounce":    ease.OutBounce,
}

// EasingByName resolves a registered easing name. An empty name resolves
// to linear.
func EasingByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}

// EasingNames returns the registered easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
