// Package showcase assembles a drifting carousel of project cards over a hex
// surface, wired to a detail modal.
package showcase

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/hexfolio"
	"github.com/phanxgames/hexfolio/hexgrid"
)

// Project is one entry of the carousel.
type Project struct {
	Title   string
	Summary string
	Hue     float64 // degrees
}

// DefaultProjects returns placeholder entries.
func DefaultProjects() []Project {
	return []Project{
		{Title: "Tidepool", Summary: "Realtime ocean telemetry", Hue: 195},
		{Title: "Lantern", Summary: "Offline-first notes", Hue: 42},
		{Title: "Quarry", Summary: "Columnar log search", Hue: 12},
		{Title: "Fernway", Summary: "Trail maps for runners", Hue: 130},
		{Title: "Parcel", Summary: "Package tracking bot", Hue: 275},
		{Title: "Glasshouse", Summary: "Greenhouse sensor mesh", Hue: 160},
	}
}

// Options configures the carousel.
type Options struct {
	Projects   []Project
	CardWidth  float64
	CardHeight float64
	Gap        float64
	Bottom     float64 // distance from the strip to the bottom edge
	DriftSpeed float64 // pixels per second, leftward
	HoverScale float64
	Modal      hexfolio.ModalConfig
}

func (o Options) withDefaults() Options {
	if o.Projects == nil {
		o.Projects = DefaultProjects()
	}
	if o.CardWidth == 0 {
		o.CardWidth = 240
	}
	if o.CardHeight == 0 {
		o.CardHeight = 150
	}
	if o.Gap == 0 {
		o.Gap = 28
	}
	if o.Bottom == 0 {
		o.Bottom = 64
	}
	if o.DriftSpeed == 0 {
		o.DriftSpeed = 36
	}
	if o.HoverScale == 0 {
		o.HoverScale = 1.06
	}
	return o
}

// Showcase owns the card strip, the selector and the modal.
type Showcase struct {
	scene    *hexfolio.Scene
	opts     Options
	selector *hexfolio.Selector
	modal    *hexfolio.Modal
	strip    *hexfolio.Node
	detail   *hexfolio.Node
	cards    []*card
	offset   float64
}

type card struct {
	project Project
	node    *hexfolio.Node
	el      *hexfolio.NodeElement
}

// New builds the carousel under the scene's UI root and a modal above it.
// Escape closes the modal.
func New(scene *hexfolio.Scene, opts Options) *Showcase {
	opts = opts.withDefaults()
	s := &Showcase{
		scene:    scene,
		opts:     opts,
		selector: hexfolio.NewSelector(),
		strip:    hexfolio.NewContainer("cards"),
	}
	scene.UI().AddChild(s.strip)
	for i, p := range opts.Projects {
		s.cards = append(s.cards, s.newCard(i, p))
	}
	s.strip.OnUpdate = s.update
	// The strip updates before the modal, so the card hidden earlier this
	// frame must reappear as soon as the modal lets go of it.
	s.selector.OnReveal = s.reveal

	s.modal = hexfolio.NewModal(scene, s.selector, opts.Modal)
	s.modal.OnStateChange = func(st hexfolio.ModalState) {
		if st == hexfolio.ModalOpening {
			s.showDetail()
		}
	}
	scene.OnKeyPress(func(k ebiten.Key) {
		if k == ebiten.KeyEscape {
			s.selector.CloseProject()
		}
	})
	return s
}

// Selector returns the selection contract shared by cards and modal.
func (s *Showcase) Selector() *hexfolio.Selector { return s.selector }

// Modal returns the detail modal.
func (s *Showcase) Modal() *hexfolio.Modal { return s.modal }

// Card returns the element of the i-th card.
func (s *Showcase) Card(i int) *hexfolio.NodeElement { return s.cards[i].el }

func (s *Showcase) newCard(i int, p Project) *card {
	w, h := s.opts.CardWidth, s.opts.CardHeight
	c := &card{project: p}

	c.node = hexfolio.NewContainer(fmt.Sprintf("card_%d", i))
	c.node.PivotX, c.node.PivotY = w/2, h/2
	c.node.HitShape = hexfolio.HitRect{Width: w, Height: h}

	r, g, b := hexgrid.RGB(p.Hue/360, 45, 0.32)
	c.node.AddChild(hexfolio.NewRoundedRect("card_body", w, h, s.opts.Modal.WithDefaults().OriginRadius,
		hexfolio.Color{R: r, G: g, B: b, A: 0.92}))
	c.node.AddChild(label(p.Title, 16, 14))

	c.el = hexfolio.NewNodeElement(s.scene, c.node, w, h)

	c.node.OnHover = func(hovering bool) {
		target := 1.0
		if hovering {
			target = s.opts.HoverScale
		}
		c.node.Play(hexfolio.TweenScale(c.node, target, target, 0.18, ease.OutCubic))
	}
	c.node.OnClick = func(hexfolio.ClickContext) {
		rect, ok := hexfolio.MeasureStable(c.el)
		if !ok {
			return
		}
		s.selector.SelectProject(c.project, rect, c.el)
	}
	s.strip.AddChild(c.node)
	return c
}

// update drifts the strip and hides the card the modal grew out of.
func (s *Showcase) update(ft hexfolio.FrameTime) {
	vw, vh := s.scene.Viewport()
	w, h := s.opts.CardWidth, s.opts.CardHeight
	pitch := w + s.opts.Gap
	total := pitch * float64(len(s.cards))
	if total == 0 {
		return
	}
	s.offset = math.Mod(s.offset+s.opts.DriftSpeed*ft.Delta, total)

	span := math.Max(total, vw+pitch)
	y := vh - s.opts.Bottom - h/2
	for i, c := range s.cards {
		x := math.Mod(float64(i)*pitch-s.offset+span, span) - pitch
		c.node.SetPosition(x+w/2, y)
		if s.selector.OriginHidden(c.el) {
			c.node.SetAlpha(0)
		} else {
			c.node.SetAlpha(1)
		}
	}
}

// reveal shows the card a finished selection came from.
func (s *Showcase) reveal(sel hexfolio.Selection) {
	for _, c := range s.cards {
		if sel.Origin == c.el {
			c.node.SetAlpha(1)
		}
	}
}

// showDetail fills the modal content with the selected project.
func (s *Showcase) showDetail() {
	if s.detail != nil {
		s.detail.Dispose()
		s.detail = nil
	}
	sel, ok := s.selector.Current()
	if !ok {
		return
	}
	p, ok := sel.Project.(Project)
	if !ok {
		return
	}
	s.detail = hexfolio.NewContainer("detail")
	s.detail.AddChild(label(p.Title, 32, 28))
	s.detail.AddChild(label(p.Summary, 32, 52))
	s.modal.Content().AddChild(s.detail)
}

// label renders text with the debug font into an image sprite at (x, y).
func label(text string, x, y float64) *hexfolio.Node {
	img := ebiten.NewImage(8*len(text)+8, 20)
	img.Fill(color.Transparent)
	ebitenutil.DebugPrint(img, text)
	n := hexfolio.NewImageSprite("label", img)
	n.SetPosition(x, y)
	return n
}
