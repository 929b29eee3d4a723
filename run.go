package evergreen

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowHUD bool
	// Resizable lets the user resize the window; the camera viewport follows.
	Resizable bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	w, h  int
}

func (g *game) Update() error             { return g.scene.Update() }
func (g *game) Draw(screen *ebiten.Image) { g.scene.Draw(screen) }

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	if outsideW != g.w || outsideH != g.h {
		g.w, g.h = outsideW, outsideH
		g.scene.SetViewport(Rect{Width: float64(outsideW), Height: float64(outsideH)})
	}
	return outsideW, outsideH
}

// Run opens a window and drives scene until the window closes or the
// scene's update func returns an error. For full control, implement
// ebiten.Game yourself and call Scene.Update and Scene.Draw.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = defaultViewportW, defaultViewportH
	}
	if cfg.Title == "" {
		cfg.Title = "Evergreen"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	scene.SetHUD(cfg.ShowHUD)
	scene.SetViewport(Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)})

	if err := ebiten.RunGame(&game{scene: scene, w: cfg.Width, h: cfg.Height}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
