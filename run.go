package hexfolio

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool
	Debug     bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error { return g.scene.Update() }

func (g *game) Draw(screen *ebiten.Image) { g.scene.Draw(screen) }

// Layout tracks the outside size so the scene always fills the window.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and runs the game loop until the window closes or the
// scene's update func returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	if cfg.ShowFPS {
		scene.UI().AddChild(NewFPSWidget())
	}
	scene.SetViewport(float64(cfg.Width), float64(cfg.Height))
	return ebiten.RunGame(&game{scene: scene})
}
