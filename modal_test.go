package hexfolio

import (
	"math"
	"testing"
)

const frame = 1.0 / 60

func TestExpandedBoundsDesktop(t *testing.T) {
	got := ExpandedBounds(1280, 800, ModalConfig{})
	assertRect(t, "bounds", got, Rect{X: 90, Y: 48, Width: 1100, Height: 704})
}

func TestExpandedBoundsCapped(t *testing.T) {
	got := ExpandedBounds(2560, 1440, ModalConfig{})
	assertRect(t, "bounds", got, Rect{X: 730, Y: 310, Width: 1100, Height: 820})
}

func TestExpandedBoundsMobileMargin(t *testing.T) {
	got := ExpandedBounds(375, 667, ModalConfig{})
	assertRect(t, "bounds", got, Rect{X: 16, Y: 16, Width: 343, Height: 635})
}

func TestExpandedBoundsTinyViewport(t *testing.T) {
	got := ExpandedBounds(20, 10, ModalConfig{})
	if got.Width != 0 || got.Height != 0 {
		t.Errorf("size = %vx%v, want 0x0", got.Width, got.Height)
	}
	assertNear(t, "X", got.X, 10)
}

func TestExpandedBoundsDeterministic(t *testing.T) {
	cfg := ModalConfig{Margin: 30, MaxWidth: 900}
	for _, vp := range [][2]float64{{1024, 768}, {1920, 1080}, {600, 900}} {
		a := ExpandedBounds(vp[0], vp[1], cfg)
		b := ExpandedBounds(vp[0], vp[1], cfg)
		if a != b {
			t.Errorf("ExpandedBounds(%v) not deterministic: %v vs %v", vp, a, b)
		}
		if c := a.Center(); !approxEqual(c.X, vp[0]/2, epsilon) || !approxEqual(c.Y, vp[1]/2, epsilon) {
			t.Errorf("ExpandedBounds(%v) centre = %v", vp, c)
		}
	}
}

// --- Opening ---

func TestOpeningStartsOnOrigin(t *testing.T) {
	origin := Rect{X: 100, Y: 600, Width: 240, Height: 150}
	a := NewOpeningAnimator(origin, 1280, 800, ModalConfig{})
	assertRect(t, "Box", a.Box(), origin)
	assertNear(t, "Opacity", a.Opacity(), 0)
	assertNear(t, "Radius", a.Radius(), 14)
	if a.Done() || a.Progress() != 0 {
		t.Error("fresh animator should not be done")
	}
}

func TestOpeningReachesTarget(t *testing.T) {
	origin := Rect{X: 100, Y: 600, Width: 240, Height: 150}
	a := NewOpeningAnimator(origin, 1280, 800, ModalConfig{})
	target := ExpandedBounds(1280, 800, ModalConfig{})

	prevW := origin.Width
	frames := 0
	for !a.Update(frame) {
		frames++
		if frames > 100 {
			t.Fatal("opening never finished")
		}
		w := a.Box().Width
		if w < prevW-1e-3 {
			t.Fatalf("width shrank from %f to %f", prevW, w)
		}
		prevW = w
		if op := a.Opacity(); op < 0 || op > 1 {
			t.Fatalf("opacity %f outside [0,1]", op)
		}
	}
	if frames < 20 || frames > 27 {
		t.Errorf("frames = %d, want about 0.42s at 60fps", frames)
	}
	if a.Box() != target {
		t.Errorf("final Box = %v, want exactly %v", a.Box(), target)
	}
	assertNear(t, "Opacity", a.Opacity(), 1)
	assertNear(t, "Radius", a.Radius(), 20)
	assertNear(t, "Progress", a.Progress(), 1)
}

func TestOpeningEasesOut(t *testing.T) {
	origin := Rect{Width: 100, Height: 100}
	a := NewOpeningAnimator(origin, 1280, 800, ModalConfig{OpenDuration: 1})
	target := a.Target()
	for i := 0; i < 30; i++ {
		a.Update(frame)
	}
	// OutCubic covers 87.5% of the distance by the midpoint.
	got := (a.Box().Width - origin.Width) / (target.Width - origin.Width)
	if !approxEqual(got, 0.875, 0.01) {
		t.Errorf("progress at t=0.5 = %f, want 0.875", got)
	}
}

func TestOpeningRetarget(t *testing.T) {
	a := NewOpeningAnimator(Rect{X: 10, Y: 10, Width: 50, Height: 50}, 1280, 800, ModalConfig{})
	for i := 0; i < 10; i++ {
		a.Update(frame)
	}
	a.Retarget(800, 600)
	want := ExpandedBounds(800, 600, ModalConfig{})
	if a.Target() != want {
		t.Errorf("Target = %v, want %v", a.Target(), want)
	}
	for i := 0; i < 100 && !a.Update(frame); i++ {
	}
	if a.Box() != want {
		t.Errorf("Box = %v, want %v", a.Box(), want)
	}

	a.Retarget(1920, 1080)
	if want := ExpandedBounds(1920, 1080, ModalConfig{}); a.Box() != want || !a.Done() {
		t.Errorf("finished animator should snap: Box = %v, want %v", a.Box(), want)
	}
}

// --- Closing ---

func TestCrossfade(t *testing.T) {
	tests := []struct {
		k, start, end, shell, ghost float64
	}{
		{0, 0.4, 0.6, 1, 0},
		{0.4, 0.4, 0.6, 1, 0},
		{0.5, 0.4, 0.6, 0.5, 0.5},
		{0.6, 0.4, 0.6, 0, 1},
		{1, 0.4, 0.6, 0, 1},
		{0.49, 0.5, 0.5, 1, 0},
		{0.5, 0.5, 0.5, 0, 1},
	}
	for _, tt := range tests {
		s, g := crossfade(tt.k, tt.start, tt.end)
		if !approxEqual(s, tt.shell, epsilon) || !approxEqual(g, tt.ghost, epsilon) {
			t.Errorf("crossfade(%v, %v, %v) = (%v, %v), want (%v, %v)",
				tt.k, tt.start, tt.end, s, g, tt.shell, tt.ghost)
		}
	}
}

func TestClosingLandsOnDriftingOrigin(t *testing.T) {
	base := ExpandedBounds(1280, 800, ModalConfig{})
	el := newFakeElement(Rect{X: 500, Y: 600, Width: 240, Height: 150})
	a := NewClosingAnimator(base, el, ModalConfig{})
	if !a.Tracking() {
		t.Fatal("Tracking = false for a connected origin")
	}
	assertRect(t, "ShellRect at start", a.ShellRect(), base)

	frames := 0
	for a.Phase() == CloseTracking {
		el.rect.X -= 0.6
		a.Update(frame)
		frames++
		if frames > 100 {
			t.Fatal("tracking never ended")
		}
		sh, gh := a.Opacities()
		if !approxEqual(sh+gh, 1, 1e-9) {
			t.Fatalf("opacities %f + %f != 1", sh, gh)
		}
	}
	if frames < 19 || frames > 23 {
		t.Errorf("tracking frames = %d, want about 0.34s at 60fps", frames)
	}
	if a.Phase() != CloseHandoff {
		t.Fatalf("Phase = %v, want handoff", a.Phase())
	}
	assertRect(t, "ShellRect at handoff", a.ShellRect(), el.rect)
	if sh, gh := a.Opacities(); sh != 0 || gh != 1 {
		t.Errorf("opacities = (%f, %f), want (0, 1)", sh, gh)
	}

	for i := 0; i < 100 && a.Phase() == CloseHandoff; i++ {
		el.rect.X -= 0.6
		a.Update(frame)
		assertRect(t, "ShellRect following", a.ShellRect(), el.rect)
	}
	if a.Phase() != CloseDone {
		t.Errorf("Phase = %v, want done", a.Phase())
	}
}

func TestClosingTransformOriginTopLeft(t *testing.T) {
	base := Rect{X: 100, Y: 100, Width: 400, Height: 200}
	el := newFakeElement(Rect{X: 300, Y: 500, Width: 200, Height: 50})
	a := NewClosingAnimator(base, el, ModalConfig{})
	a.pose(0.5)
	tr, sx, sy := a.Transform()
	assertNear(t, "tx", tr.X, 100)
	assertNear(t, "ty", tr.Y, 200)
	assertNear(t, "sx", sx, 0.75)
	assertNear(t, "sy", sy, 0.625)
	assertRect(t, "ShellRect", a.ShellRect(), Rect{X: 200, Y: 300, Width: 300, Height: 125})
}

func TestClosingDisconnectedFallback(t *testing.T) {
	base := Rect{X: 90, Y: 48, Width: 1100, Height: 704}
	el := newFakeElement(Rect{X: 1, Y: 2, Width: 3, Height: 4})
	el.connected = false
	a := NewClosingAnimator(base, el, ModalConfig{})
	if a.Tracking() {
		t.Fatal("Tracking = true for a disconnected origin")
	}
	prev := 1.0
	frames := 0
	for !a.Update(frame) {
		frames++
		if frames > 100 {
			t.Fatal("fallback never finished")
		}
		sh, gh := a.Opacities()
		if sh > prev || gh != 0 {
			t.Fatalf("frame %d: opacities (%f, %f)", frames, sh, gh)
		}
		prev = sh
		if a.Phase() == CloseHandoff {
			t.Fatal("fallback must not hand off to a ghost")
		}
		assertRect(t, "ShellRect", a.ShellRect(), base)
	}
	if sh, _ := a.Opacities(); sh != 0 {
		t.Errorf("final shell opacity = %f, want 0", sh)
	}
}

func TestClosingKeepsLastRectAfterDisconnect(t *testing.T) {
	base := Rect{X: 90, Y: 48, Width: 1100, Height: 704}
	el := newFakeElement(Rect{X: 400, Y: 600, Width: 240, Height: 150})
	a := NewClosingAnimator(base, el, ModalConfig{})
	var last Rect
	for i := 0; i < 5; i++ {
		el.rect.X -= 2
		a.Update(frame)
		last = el.rect
	}
	el.connected = false
	for i := 0; i < 100 && a.Phase() == CloseTracking; i++ {
		el.rect.X -= 2
		a.Update(frame)
	}
	if a.Live() != last {
		t.Errorf("Live = %v, want last measured %v", a.Live(), last)
	}
	assertRect(t, "ShellRect", a.ShellRect(), last)
}

func TestClosingCustomMeasure(t *testing.T) {
	calls := 0
	cfg := ModalConfig{Measure: func(el Element) (Rect, bool) {
		calls++
		return Rect{X: 5, Y: 5, Width: 10, Height: 10}, true
	}}
	a := NewClosingAnimator(Rect{Width: 100, Height: 100}, nil, cfg)
	a.Update(frame)
	if calls != 2 {
		t.Errorf("Measure calls = %d, want 2", calls)
	}
	if math.IsNaN(a.ShellRect().X) {
		t.Error("ShellRect is NaN")
	}
}

func TestModalConfigWithDefaults(t *testing.T) {
	c := ModalConfig{OpenDuration: 1, CrossfadeStart: 0.2, CrossfadeEnd: 0.3}.WithDefaults()
	if c.OpenDuration != 1 || c.CloseDuration != 0.34 {
		t.Errorf("durations = %v, %v", c.OpenDuration, c.CloseDuration)
	}
	if c.CrossfadeStart != 0.2 || c.CrossfadeEnd != 0.3 {
		t.Errorf("crossfade = [%v, %v], want [0.2, 0.3]", c.CrossfadeStart, c.CrossfadeEnd)
	}
	if c.Measure == nil {
		t.Error("Measure not defaulted")
	}
}
