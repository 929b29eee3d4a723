package evergreen

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudText formats the status overlay.
func (s *Scene) hudText(fps, tps float64) string {
	spin := s.camera.SpinRate()
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f\nshape: %s  blend: %.2f\nphotos: %d  spin: %+.2f",
		fps, tps, s.morph.Target(), s.morph.Blend(), s.photos.Len(), spin)
}

// drawHUD prints the status overlay in the top-left corner.
func (s *Scene) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, s.hudText(ebiten.ActualFPS(), ebiten.ActualTPS()))
}
