package hexfolio

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// submitBatches draws the sorted commands to target in order.
func (s *Scene) submitBatches(target *ebiten.Image) {
	if len(s.commands) == 0 {
		return
	}

	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandSprite:
			submitSprite(target, cmd, &op)
		case CommandMesh:
			submitMesh(target, cmd)
		}
	}
}

// submitSprite draws a solid rectangle (the white pixel scaled by the
// transform) or a custom image using DrawImage.
func submitSprite(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	img := cmd.directImage
	if img == nil {
		img = ensureWhitePixel()
	}
	op.GeoM.Reset()
	op.GeoM.Concat(commandGeoM(cmd))
	op.ColorScale.Reset()
	a := cmd.Color.A
	op.ColorScale.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)
	op.Blend = cmd.BlendMode.EbitenBlend()
	target.DrawImage(img, op)
}

// submitMesh draws a mesh command using DrawTriangles. Vertex colors were
// premultiplied by transformVertices.
func submitMesh(target *ebiten.Image, cmd *RenderCommand) {
	img := cmd.meshImage
	if img == nil {
		img = ensureWhitePixel()
	}
	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = cmd.BlendMode.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.AntiAlias = true
	target.DrawTriangles(cmd.meshVerts, cmd.meshInds, img, &triOp)
}

// commandGeoM converts a command's float32 affine transform to an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	t := cmd.Transform
	m.SetElement(0, 0, float64(t[0]))
	m.SetElement(1, 0, float64(t[1]))
	m.SetElement(0, 1, float64(t[2]))
	m.SetElement(1, 1, float64(t[3]))
	m.SetElement(0, 2, float64(t[4]))
	m.SetElement(1, 2, float64(t[5]))
	return m
}

// toRGBA converts c to an 8-bit straight-alpha color.
func (c Color) toRGBA() color.Color {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}
