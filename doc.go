// Package hexfolio renders animated hexagon backdrops and morphing detail
// modals for portfolio showcases on [Ebitengine].
//
// The package is a small retained-mode scene graph. A [Scene] owns two node
// trees: [Scene.Root] is drawn through the [Camera], whose viewport tracks the
// window so one world unit is one pixel, and [Scene.UI] is drawn in screen
// space on top of it. Nodes are containers, solid rectangles, images or
// triangle meshes, and every node may carry an OnUpdate callback that runs
// once per frame with a [FrameTime].
//
// # Quick start
//
//	scene := hexfolio.NewScene()
//	cfg := hexgrid.DefaultConfig()
//	cfg.Mode = hexgrid.ModeTrails
//	hexfolio.NewSurface(scene, cfg)
//	hexfolio.Run(scene, hexfolio.RunConfig{Title: "hexfolio", Width: 1280, Height: 800})
//
// # Hex surfaces
//
// [Surface] wraps a [hexgrid.Field] and rebuilds its mesh every frame for the
// active mode: pulsing fill, overlapping outlines, wandering edge trails or
// travelling strata. The field is rebuilt when the viewport changes size, and
// its slow sway drives the camera.
//
// # Modal transitions
//
// A [Selector] holds the selected project together with the card it came
// from. A [Modal] subscribes to it: on select it grows from the card to
// [ExpandedBounds] with an [OpeningAnimator]; on close a [ClosingAnimator]
// re-measures the card every frame through [MeasureStable], so the shell lands
// on the card even while the card is moving or pulsing, then cross-fades to
// a ghost and reveals the card.
//
// Tweens over [gween] animate node fields directly; see [TweenGroup].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package hexfolio
