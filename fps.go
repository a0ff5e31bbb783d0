package hexfolio

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates a node that displays the current FPS and TPS,
// refreshed about twice a second with ebitenutil.DebugPrint.
func NewFPSWidget() *Node {
	img := ebiten.NewImage(100, 32)

	node := NewImageSprite("fps_widget", img)
	node.RenderLayer = 255

	var lastUpdate float64
	node.OnUpdate = func(ft FrameTime) {
		lastUpdate += ft.Delta
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0

		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return node
}
