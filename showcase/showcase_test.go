package showcase

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/hexfolio"
)

func newShowcase(t *testing.T) (*hexfolio.Scene, *Showcase) {
	t.Helper()
	scene := hexfolio.NewScene()
	scene.SetViewport(1280, 800)
	s := New(scene, Options{})
	if err := scene.Step(1.0 / 60); err != nil {
		t.Fatalf("Step: %v", err)
	}
	return scene, s
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if len(o.Projects) != len(DefaultProjects()) {
		t.Errorf("Projects = %d, want %d", len(o.Projects), len(DefaultProjects()))
	}
	if o.CardWidth != 240 || o.CardHeight != 150 || o.Gap != 28 {
		t.Errorf("card layout = %v x %v gap %v", o.CardWidth, o.CardHeight, o.Gap)
	}
	o = Options{Projects: []Project{}, DriftSpeed: 5}.withDefaults()
	if len(o.Projects) != 0 {
		t.Error("an explicit empty project list should be kept")
	}
	if o.DriftSpeed != 5 {
		t.Errorf("DriftSpeed = %v, want 5", o.DriftSpeed)
	}
}

func TestNewBuildsCards(t *testing.T) {
	scene, s := newShowcase(t)
	if got := s.strip.NumChildren(); got != len(DefaultProjects()) {
		t.Errorf("cards = %d, want %d", got, len(DefaultProjects()))
	}
	if s.Modal().State() != hexfolio.ModalClosed {
		t.Errorf("modal state = %v, want closed", s.Modal().State())
	}
	var names []string
	for _, c := range scene.UI().Children() {
		names = append(names, c.Name)
	}
	if len(names) != 2 || names[0] != "cards" || names[1] != "modal" {
		t.Errorf("UI children = %v, want [cards modal]", names)
	}
}

func TestDriftWrapsAround(t *testing.T) {
	scene, s := newShowcase(t)
	pitch := s.opts.CardWidth + s.opts.Gap
	total := pitch * float64(len(s.cards))
	for i := 0; i < 50; i++ {
		if err := scene.Step(0.5); err != nil {
			t.Fatal(err)
		}
		if s.offset < 0 || s.offset >= total {
			t.Fatalf("offset = %v, want in [0, %v)", s.offset, total)
		}
		for j, c := range s.cards {
			left := c.node.X - s.opts.CardWidth/2
			if left < -pitch || left >= total {
				t.Fatalf("card %d left = %v out of strip", j, left)
			}
		}
	}
}

func TestCardClickOpensModal(t *testing.T) {
	scene, s := newShowcase(t)
	c := s.cards[2]
	scene.InjectClick(c.node.X, c.node.Y)
	_ = scene.Update()
	_ = scene.Update()

	sel, ok := s.Selector().Current()
	if !ok {
		t.Fatal("click should select the card's project")
	}
	if p, _ := sel.Project.(Project); p.Title != c.project.Title {
		t.Errorf("selected %q, want %q", p.Title, c.project.Title)
	}
	if s.Modal().State() != hexfolio.ModalOpening {
		t.Errorf("modal state = %v, want opening", s.Modal().State())
	}
	if c.node.Alpha != 0 {
		t.Errorf("origin alpha = %v, want hidden", c.node.Alpha)
	}
	if s.detail == nil || s.detail.Parent != s.Modal().Content() {
		t.Error("detail view should be placed in the modal content")
	}

	scene.InjectKey(ebiten.KeyEscape)
	_ = scene.Update()
	if s.Modal().State() != hexfolio.ModalClosingTrack {
		t.Errorf("modal state = %v, want closing-track after escape", s.Modal().State())
	}
}

func TestCloseHandsBackWithoutGap(t *testing.T) {
	scene, s := newShowcase(t)
	c := s.cards[2]
	rect, _ := hexfolio.MeasureStable(c.el)
	s.Selector().SelectProject(c.project, rect, c.el)
	for i := 0; i < 200 && s.Modal().State() != hexfolio.ModalOpen; i++ {
		_ = scene.Step(1.0 / 60)
	}

	scene.InjectKey(ebiten.KeyEscape)
	_ = scene.Update()
	if s.Modal().State() != hexfolio.ModalClosingTrack {
		t.Fatalf("modal state = %v, want closing-track", s.Modal().State())
	}
	for i := 0; i < 200 && s.Modal().State() != hexfolio.ModalClosed; i++ {
		_ = scene.Step(1.0 / 60)
		ghostShown := s.Modal().Ghost().Visible && s.Modal().State() != hexfolio.ModalClosed
		if !ghostShown && c.node.Alpha == 0 {
			t.Fatalf("frame %d (%v): neither the ghost nor the card is visible", i, s.Modal().State())
		}
	}
	if s.Modal().State() != hexfolio.ModalClosed {
		t.Fatalf("modal state = %v, want closed", s.Modal().State())
	}
	if c.node.Alpha != 1 {
		t.Errorf("card alpha on the closing frame = %v, want 1", c.node.Alpha)
	}
}
