package hexfolio

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	n := NewContainer("n")
	g := TweenPosition(n, 100, 50, 1, ease.Linear)
	g.Update(0.5)
	if !approxEqual(n.X, 50, 1e-4) || !approxEqual(n.Y, 25, 1e-4) {
		t.Errorf("halfway = (%f, %f), want (50, 25)", n.X, n.Y)
	}
	if g.Done {
		t.Error("Done too early")
	}
	g.Update(0.6)
	if n.X != 100 || n.Y != 50 {
		t.Errorf("end = (%f, %f), want (100, 50)", n.X, n.Y)
	}
	if !g.Done {
		t.Error("Done = false after duration")
	}
}

func TestTweenColor(t *testing.T) {
	n := NewRect("r", 1, 1, Color{0, 0, 0, 1})
	g := TweenColor(n, Color{1, 0.5, 0, 0.5}, 0.2, ease.Linear)
	g.Update(1)
	if n.Color != (Color{1, 0.5, 0, 0.5}) {
		t.Errorf("Color = %v", n.Color)
	}
}

func TestTweenStopsOnDisposedNode(t *testing.T) {
	n := NewContainer("n")
	g := TweenAlpha(n, 0, 1, ease.Linear)
	n.Dispose()
	g.Update(0.5)
	if !g.Done {
		t.Error("group should finish when its node is disposed")
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %f, want untouched 1", n.Alpha)
	}
}

func TestPlayRestoresOnUpdate(t *testing.T) {
	s := NewScene()
	n := NewContainer("n")
	calls := 0
	n.OnUpdate = func(FrameTime) { calls++ }
	s.UI().AddChild(n)

	n.Play(TweenScale(n, 2, 2, 0.1, ease.OutCubic))
	for i := 0; i < 10; i++ {
		_ = s.Step(0.05)
	}
	if calls != 10 {
		t.Errorf("previous OnUpdate ran %d times, want 10", calls)
	}
	if n.ScaleX != 2 || n.ScaleY != 2 {
		t.Errorf("Scale = (%f, %f), want (2, 2)", n.ScaleX, n.ScaleY)
	}
	if n.playing != nil {
		t.Error("playing should be cleared after the group finishes")
	}
}

func TestPlayReplacesRunningGroup(t *testing.T) {
	s := NewScene()
	n := NewContainer("n")
	s.UI().AddChild(n)

	first := TweenScale(n, 3, 3, 1, ease.Linear)
	n.Play(first)
	_ = s.Step(0.1)
	n.Play(TweenScale(n, 1, 1, 0.1, ease.Linear))
	if !first.Done {
		t.Error("replaced group should be stopped")
	}
	for i := 0; i < 5; i++ {
		_ = s.Step(0.05)
	}
	if n.ScaleX != 1 {
		t.Errorf("ScaleX = %f, want 1", n.ScaleX)
	}
	if n.OnUpdate != nil {
		t.Error("OnUpdate should return to nil")
	}
}
