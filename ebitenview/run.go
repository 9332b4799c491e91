package ebitenview

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// Scale multiplies the logical screen size for the window. Defaults to 1.
	Scale float64
	// ExitOnScriptDone ends the game loop once an attached ScriptRunner has
	// finished.
	ExitOnScriptDone bool
}

// game adapts a View to ebiten.Game. View.Layout reports widget geometry,
// so the screen layout lives here.
type game struct {
	v   *View
	cfg RunConfig
}

func (g *game) Update() error {
	if err := g.v.Update(); err != nil {
		return err
	}
	if g.cfg.ExitOnScriptDone && g.v.runner != nil && g.v.runner.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.v.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.v.ScreenSize()
}

// Run opens a window and blocks until it is closed, the game loop fails or,
// with ExitOnScriptDone, the script finishes. Pending background fetches are
// stopped on return.
func Run(v *View, cfg RunConfig) error {
	defer v.Close()
	if cfg.Title == "" {
		cfg.Title = "slidecheck"
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	w, h := v.ScreenSize()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(int(float64(w)*cfg.Scale), int(float64(h)*cfg.Scale))

	err := ebiten.RunGame(&game{v: v, cfg: cfg})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
