package evergreen

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next drawn frame. The PNG is
// written to ScreenshotDir and its name carries the label and the shape the
// field is heading to, e.g. 20261018_101500_key_scatter.png.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// PendingScreenshots returns the number of captures waiting for Draw.
func (s *Scene) PendingScreenshots() int {
	return len(s.screenshotQueue)
}

// flushScreenshots captures screen once and writes it for every queued
// label. Failures are reported on the debug writer and drop the queue.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		s.reportf("screenshot: mkdir %s: %v", s.ScreenshotDir, err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		name := screenshotName(stamp, label, s.morph.Target())
		if err := writePNG(filepath.Join(s.ScreenshotDir, name), img); err != nil {
			s.reportf("screenshot: %v", err)
		}
	}
}

// reportf writes to stderr regardless of debug mode. Used for failures the
// user asked for explicitly, like a screenshot that could not be saved.
func (s *Scene) reportf(format string, args ...any) {
	w := s.debugOut
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w, "[evergreen] "+format+"\n", args...)
}

// unpremultiply converts ebiten's premultiplied RGBA readback into a
// straight-alpha NRGBA image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func screenshotName(stamp, label string, shape Shape) string {
	return fmt.Sprintf("%s_%s_%s.png", stamp, sanitizeLabel(label), shape)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replaces everything
// else with '_' and maps a blank label to "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
