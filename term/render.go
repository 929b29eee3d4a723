// Package term renders an evergreen scene to a terminal with tcell.
//
// Each cell shows the nearest particle that projects into it. Cells are
// treated as two vertical pixels tall so the field keeps its aspect ratio.
package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/evergreen"
)

// ramp maps particle brightness to glyphs, dim to bright.
var ramp = []rune{'.', '·', '+', '*', '✦'}

const (
	topperGlyph = '★'
	photoGlyph  = '▣'
)

// Renderer draws scene frames to a tcell screen. It keeps a depth buffer
// sized to the screen and reuses it across frames.
type Renderer struct {
	Screen tcell.Screen
	// Background fills empty cells.
	Background tcell.Color
	// ShowHUD prints a status line in the top row.
	ShowHUD bool

	depth []float64
	w, h  int
}

// NewRenderer creates a renderer for an initialized screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{Screen: screen, Background: tcell.ColorBlack, ShowHUD: true}
}

// Draw renders one frame of s and shows it. It returns the number of cells
// that received a particle.
func (r *Renderer) Draw(s *evergreen.Scene) int {
	w, h := r.Screen.Size()
	if w <= 0 || h <= 0 {
		return 0
	}
	r.resize(w, h)

	bg := tcell.StyleDefault.Background(r.Background)
	r.Screen.Fill(' ', bg)

	// Project with a copy of the scene camera sized to the cell grid.
	cam := *s.Camera()
	cam.Viewport = evergreen.Rect{Width: float64(w), Height: float64(2 * h)}
	cam.MarkDirty()

	buf := s.Buffers()
	lit := 0
	for i := 0; i < buf.Len(); i++ {
		sx, sy, depth, ok := cam.Project(buf.PositionAt(i))
		if !ok {
			continue
		}
		x, y := cellAt(sx, sy)
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		k := y*w + x
		if depth >= r.depth[k] {
			continue
		}
		if math.IsInf(r.depth[k], 1) {
			lit++
		}
		r.depth[k] = depth

		c := s.Field().ColorAt(i)
		fade := math.Max(0.4, math.Min(1, 2*cam.Distance/depth))
		size := float64(buf.Sizes[i])
		r.Screen.SetContent(x, y, glyphFor(fade*(0.5+0.5*size)), nil,
			bg.Foreground(rgb(c.Scale(fade))))
	}

	r.drawPhotos(s, &cam, bg)
	r.drawTopper(s, &cam, bg)
	if r.ShowHUD {
		r.drawText(0, 0, hudLine(s), bg.Foreground(tcell.ColorWhite))
	}
	r.Screen.Show()
	return lit
}

func (r *Renderer) resize(w, h int) {
	if w != r.w || h != r.h || len(r.depth) != w*h {
		r.w, r.h = w, h
		r.depth = make([]float64, w*h)
	}
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}
}

func (r *Renderer) drawPhotos(s *evergreen.Scene, cam *evergreen.Camera, bg tcell.Style) {
	spot := s.Photos().Spotlit()
	for _, it := range s.Photos().Items() {
		if !it.Visible || it.Scale <= 0 {
			continue
		}
		sx, sy, _, ok := cam.Project(it.Pos)
		if !ok {
			continue
		}
		st := bg.Foreground(tcell.ColorSilver)
		if it == spot {
			st = bg.Foreground(tcell.ColorWhite).Bold(true)
		}
		x, y := cellAt(sx, sy)
		r.set(x, y, photoGlyph, st)
	}
}

func (r *Renderer) drawTopper(s *evergreen.Scene, cam *evergreen.Camera, bg tcell.Style) {
	if s.Morph().Blend() >= 0.5 {
		return
	}
	sx, sy, _, ok := cam.Project(s.Field().Topper)
	if !ok {
		return
	}
	x, y := cellAt(sx, sy)
	r.set(x, y, topperGlyph, bg.Foreground(tcell.ColorGold).Bold(true))
}

// cellAt maps a projected pixel position to a cell. Cells are two pixels
// tall; flooring keeps points just left of or above the screen off it.
func cellAt(sx, sy float64) (int, int) {
	return int(math.Floor(sx)), int(math.Floor(sy / 2))
}

func (r *Renderer) set(x, y int, ch rune, st tcell.Style) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	r.Screen.SetContent(x, y, ch, nil, st)
}

func (r *Renderer) drawText(x, y int, text string, st tcell.Style) {
	for _, ch := range text {
		r.set(x, y, ch, st)
		x++
	}
}

func hudLine(s *evergreen.Scene) string {
	m := s.Morph()
	return fmt.Sprintf(" %s  blend %.2f  photos %d  [t]ree [g]alaxy [space] [p]hoto [q]uit",
		m.Target(), m.Blend(), s.Photos().Len())
}

// glyphFor picks a ramp glyph for a brightness in [0, 1].
func glyphFor(v float64) rune {
	i := int(v * float64(len(ramp)))
	if i < 0 {
		i = 0
	}
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	return ramp[i]
}

func rgb(c evergreen.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R*255), int32(c.G*255), int32(c.B*255))
}
