package evergreen

import (
	"fmt"
	"time"
)

// debugStats holds per-draw timing and vertex metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	buildTime     time.Duration
	submitTime    time.Duration
	particleCount int
	culledCount   int
	vertexCount   int
	photoCount    int
}

// debugLogFrame prints the interpolation cost of one frame.
func (s *Scene) debugLogFrame(interp time.Duration) {
	_, _ = fmt.Fprintf(s.debugOut,
		"[evergreen] interpolate: %v | blend: %.3f | target: %s | t: %.2fs\n",
		interp, s.morph.Blend(), s.morph.Target(), s.elapsed.Seconds())
}

// debugLogDraw prints build/submit timings and vertex counts.
func (s *Scene) debugLogDraw(stats debugStats) {
	_, _ = fmt.Fprintf(s.debugOut,
		"[evergreen] build: %v | submit: %v | total: %v\n",
		stats.buildTime, stats.submitTime, stats.buildTime+stats.submitTime)
	_, _ = fmt.Fprintf(s.debugOut,
		"[evergreen] particles: %d | culled: %d | vertices: %d | photos: %d\n",
		stats.particleCount, stats.culledCount, stats.vertexCount, stats.photoCount)
}

// debugLogf prints a one-off debug line.
func (s *Scene) debugLogf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.debugOut, "[evergreen] "+format+"\n", args...)
}
