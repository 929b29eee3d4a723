package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/evergreen"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func newTestScene(t *testing.T) *evergreen.Scene {
	t.Helper()
	cfg := evergreen.DefaultConfig()
	cfg.Count = 500
	cfg.Seed = 7
	s, err := evergreen.NewScene(cfg, nil)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

func cellRune(screen tcell.SimulationScreen, x, y int) rune {
	ch, _, _, _ := screen.GetContent(x, y)
	return ch
}

func TestRendererDrawsParticles(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	s := newTestScene(t)
	r := NewRenderer(screen)
	r.ShowHUD = false

	lit := r.Draw(s)
	if lit == 0 {
		t.Fatal("no cells lit")
	}

	counted := 0
	for y := 0; y < 24; y++ {
		for x := 0; x < 80; x++ {
			if cellRune(screen, x, y) != ' ' {
				counted++
			}
		}
	}
	// The topper may occupy a cell a particle did not.
	if counted < lit || counted > lit+1 {
		t.Errorf("non-blank cells = %d, lit = %d", counted, lit)
	}
}

func TestRendererTopperFadesWithScatter(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	s := newTestScene(t)
	r := NewRenderer(screen)
	r.ShowHUD = false

	hasTopper := func() bool {
		for y := 0; y < 24; y++ {
			for x := 0; x < 80; x++ {
				if cellRune(screen, x, y) == topperGlyph {
					return true
				}
			}
		}
		return false
	}

	r.Draw(s)
	if !hasTopper() {
		t.Error("topper missing in tree shape")
	}

	s.RequestShape(evergreen.ShapeScatter)
	for i := 0; i < 300; i++ {
		s.Step(1.0 / 60)
	}
	r.Draw(s)
	if hasTopper() {
		t.Error("topper still drawn in starfield")
	}
}

func TestRendererHUD(t *testing.T) {
	screen := newSimScreen(t, 100, 10)
	s := newTestScene(t)
	r := NewRenderer(screen)
	r.Draw(s)

	want := []rune(" tree")
	for i, ch := range want {
		if got := cellRune(screen, i, 0); got != ch {
			t.Fatalf("HUD cell %d = %q, want %q", i, got, ch)
		}
	}
}

func TestRendererResize(t *testing.T) {
	screen := newSimScreen(t, 40, 12)
	s := newTestScene(t)
	r := NewRenderer(screen)
	r.Draw(s)
	if len(r.depth) != 40*12 {
		t.Fatalf("depth len = %d", len(r.depth))
	}
	screen.SetSize(60, 20)
	r.Draw(s)
	if len(r.depth) != 60*20 {
		t.Errorf("depth len after resize = %d", len(r.depth))
	}
}

func TestGlyphFor(t *testing.T) {
	tests := []struct {
		v    float64
		want rune
	}{
		{-1, ramp[0]},
		{0, ramp[0]},
		{0.99, ramp[len(ramp)-1]},
		{5, ramp[len(ramp)-1]},
	}
	for _, tt := range tests {
		if got := glyphFor(tt.v); got != tt.want {
			t.Errorf("glyphFor(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		sx, sy float64
		x, y   int
	}{
		{0, 0, 0, 0},
		{3.9, 5.9, 3, 2},
		{-0.5, 4, -1, 2},
		{2, -0.5, 2, -1},
		{-1.5, -3, -2, -2},
	}
	for _, tt := range tests {
		x, y := cellAt(tt.sx, tt.sy)
		if x != tt.x || y != tt.y {
			t.Errorf("cellAt(%v, %v) = (%d, %d), want (%d, %d)", tt.sx, tt.sy, x, y, tt.x, tt.y)
		}
	}
}

func TestHandleKey(t *testing.T) {
	s := newTestScene(t)

	if !HandleKey(s, tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)) {
		t.Fatal("g should not quit")
	}
	if s.Morph().Target() != evergreen.ShapeScatter {
		t.Errorf("target after g = %v", s.Morph().Target())
	}

	HandleKey(s, tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	if s.Morph().Target() != evergreen.ShapeTree {
		t.Errorf("target after f = %v", s.Morph().Target())
	}

	HandleKey(s, tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if s.Morph().Target() != evergreen.ShapeScatter {
		t.Errorf("target after space = %v", s.Morph().Target())
	}

	if HandleKey(s, tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if HandleKey(s, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Esc should quit")
	}
}
