// Package poster rasterises a single frame of a hex grid to an image without
// a window, for static backgrounds and previews.
package poster

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"slices"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/phanxgames/hexfolio/hexgrid"
)

const (
	// simulationFPS is the step rate used to warm up trails before capture.
	simulationFPS = 30
	// maxSimulatedSeconds caps the warm-up so a large Time stays cheap.
	maxSimulatedSeconds = 20.0
	maxDimension        = 8192
	// DefaultMaxCells bounds the grid a single Render may build.
	DefaultMaxCells = 1 << 20
)

// Options controls one poster frame.
type Options struct {
	Width    int
	Height   int
	Time     float64 // seconds into the animation
	Caption  string
	FontSize float64
	// MaxCells caps the number of cells; zero means DefaultMaxCells.
	MaxCells int
}

// ErrSize is returned for a non-positive or oversized frame.
var ErrSize = errors.New("poster: invalid size")

// ErrTooDense is returned when the grid would need more than MaxCells cells.
var ErrTooDense = errors.New("poster: grid too dense")

// Frame is a rendered poster.
type Frame struct {
	dc *gg.Context
}

// Image returns the rendered pixels.
func (f *Frame) Image() image.Image { return f.dc.Image() }

// EncodePNG writes the frame as PNG.
func (f *Frame) EncodePNG(w io.Writer) error { return f.dc.EncodePNG(w) }

// SavePNG writes the frame to a PNG file.
func (f *Frame) SavePNG(path string) error { return f.dc.SavePNG(path) }

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error
)

func loadMono() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
	})
	return monoFont, monoErr
}

// Render draws the grid described by cfg at opts.Time. Each call owns its own
// field, so concurrent calls share nothing.
func Render(cfg hexgrid.Config, opts Options) (*Frame, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.Width > maxDimension || opts.Height > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, opts.Width, opts.Height)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("poster: %w", err)
	}

	w, h := float64(opts.Width), float64(opts.Height)
	limit := opts.MaxCells
	if limit <= 0 {
		limit = DefaultMaxCells
	}
	if n := hexgrid.CellCount(w, h, cfg); n > limit {
		return nil, fmt.Errorf("%w: %d cells, limit %d", ErrTooDense, n, limit)
	}
	field := hexgrid.NewField(cfg)
	defer field.Dispose()
	field.Resize(w, h)
	simulate(field, opts.Time)

	dc := gg.NewContext(opts.Width, opts.Height)
	bg := hexgrid.CellColor(cfg.Hue/360, cfg.Saturation, 0.06)
	dc.SetRGB(bg.R, bg.G, bg.B)
	dc.Clear()

	dc.Push()
	dc.Translate(w/2, h/2)
	rot, zoom := field.Sway()
	dc.Rotate(rot)
	dc.Scale(zoom, zoom)
	switch cfg.Mode {
	case hexgrid.ModeFill:
		drawCells(dc, field)
		drawFillEdges(dc, field)
	case hexgrid.ModeOverlapLine:
		drawOutlines(dc, field)
	case hexgrid.ModeTrails:
		drawTrails(dc, field)
	case hexgrid.ModeStrata:
		drawCells(dc, field)
	}
	dc.Pop()

	if opts.Caption != "" {
		if err := drawCaption(dc, opts); err != nil {
			return nil, err
		}
	}
	return &Frame{dc: dc}, nil
}

// simulate advances field to t. Trails depend on their history, so they are
// stepped at a fixed rate; the other modes are pure functions of time.
func simulate(field *hexgrid.Field, t float64) {
	if t <= 0 {
		return
	}
	if field.Mode() != hexgrid.ModeTrails {
		field.Advance(hexgrid.FrameTime{Elapsed: t})
		return
	}
	start := math.Max(0, t-maxSimulatedSeconds)
	steps := int(math.Ceil((t - start) * simulationFPS))
	prev := start
	for i := 1; i <= steps; i++ {
		now := start + (t-start)*float64(i)/float64(steps)
		field.Advance(hexgrid.FrameTime{Elapsed: now, Delta: now - prev})
		prev = now
	}
}

func hexPath(dc *gg.Context, c hexgrid.Point, radius float64) {
	for k := 0; k < 6; k++ {
		p := hexgrid.Corner(c, radius, k)
		if k == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.ClosePath()
}

func setCellColor(dc *gg.Context, cfg hexgrid.Config, hue01, lightness, alpha float64) {
	c := hexgrid.CellColor(hue01, cfg.Saturation, lightness)
	dc.SetRGBA(c.R, c.G, c.B, alpha)
}

func drawCells(dc *gg.Context, field *hexgrid.Field) {
	cfg := field.Config()
	cells, states := field.Cells(), field.States()
	for i := range cells {
		c, st := &cells[i], &states[i]
		center := hexgrid.Point{X: c.Center.X + st.Offset.X, Y: c.Center.Y + st.Offset.Y}
		hexPath(dc, center, c.Radius*st.Scale)
		setCellColor(dc, cfg, c.Hue01, st.Lightness, st.Alpha)
		dc.Fill()
	}
}

func drawFillEdges(dc *gg.Context, field *hexgrid.Field) {
	cfg := field.Config()
	g := field.Graph()
	glow := field.VertexGlow()
	cells := field.Cells()
	tu := cfg.Pulse
	baseL := cfg.Lightness / 100
	dc.SetLineWidth(1)
	for _, e := range g.Edges {
		p := (glow[e.A] + glow[e.B]) / 2
		l := math.Max(0.05, math.Min(0.95, baseL+(p-0.5)*2*tu.LightAmp))
		va, vb := g.Vertices[e.A], g.Vertices[e.B]
		setCellColor(dc, cfg, cells[e.CellA].Hue01, l, tu.AlphaMin+(tu.AlphaMax-tu.AlphaMin)*p)
		dc.DrawLine(va.X, va.Y, vb.X, vb.Y)
		dc.Stroke()
	}
}

func drawOutlines(dc *gg.Context, field *hexgrid.Field) {
	cfg := field.Config()
	cells, states := field.Cells(), field.States()
	dc.SetLineWidth(1.25)
	for i := range cells {
		c, st := &cells[i], &states[i]
		hexPath(dc, c.Center, c.Radius*st.Scale)
		setCellColor(dc, cfg, c.Hue01, st.Lightness, st.Alpha)
		dc.Stroke()
	}
}

func drawTrails(dc *gg.Context, field *hexgrid.Field) {
	cfg := field.Config()
	g := field.Graph()
	hue := cfg.Hue / 360
	baseL := cfg.Lightness / 100

	dc.SetLineWidth(1)
	setCellColor(dc, cfg, hue, baseL, 0.06)
	for _, e := range g.Edges {
		va, vb := g.Vertices[e.A], g.Vertices[e.B]
		dc.DrawLine(va.X, va.Y, vb.X, vb.Y)
	}
	dc.Stroke()

	// Sorted so overlapping strokes blend the same way on every render.
	trails := field.Trails()
	hot := make([]int, 0, trails.ActiveCount())
	trails.EachHot(func(id int, _ float64) { hot = append(hot, id) })
	slices.Sort(hot)

	dc.SetLineWidth(2)
	for _, id := range hot {
		e := g.Edges[id]
		va, vb := g.Vertices[e.A], g.Vertices[e.B]
		setCellColor(dc, cfg, hue, math.Min(0.95, baseL+0.4), trails.Heat(id))
		dc.DrawLine(va.X, va.Y, vb.X, vb.Y)
		dc.Stroke()
	}
}

func drawCaption(dc *gg.Context, opts Options) error {
	f, err := loadMono()
	if err != nil {
		return fmt.Errorf("poster: parse font: %w", err)
	}
	size := opts.FontSize
	if size <= 0 {
		size = 14
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetRGBA(1, 1, 1, 0.85)
	dc.DrawStringAnchored(opts.Caption, size, float64(opts.Height)-size, 0, 0)
	return nil
}
