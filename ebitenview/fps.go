package ebitenview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefresh = 0.5 // seconds

// fpsOverlay shows FPS and TPS in the top-left corner in debug mode. The
// text is refreshed twice a second so it stays readable.
type fpsOverlay struct {
	text   string
	since  float64
	sample func() (fps, tps float64)
}

func (o *fpsOverlay) update(dt float64) {
	o.since += dt
	if o.text != "" && o.since < fpsRefresh {
		return
	}
	o.since = 0
	sample := o.sample
	if sample == nil {
		sample = func() (float64, float64) { return ebiten.ActualFPS(), ebiten.ActualTPS() }
	}
	fps, tps := sample()
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
}

func (o *fpsOverlay) draw(v *View, screen *ebiten.Image) {
	if o.text == "" {
		return
	}
	v.fillRect(screen, 0, 0, 100, 32, color.RGBA{A: 128})
	ebitenutil.DebugPrint(screen, o.text)
}
