package hexfolio

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ModalConfig tunes the modal transition. Zero fields take the values of
// DefaultModalConfig.
type ModalConfig struct {
	// Durations in seconds.
	OpenDuration   float64
	CloseDuration  float64
	FollowDuration float64

	// Expanded bounds.
	Margin           float64
	MobileMargin     float64
	MobileBreakpoint float64
	MaxWidth         float64
	MaxHeight        float64

	// Corner radii of the card and of the expanded modal.
	OriginRadius   float64
	ExpandedRadius float64

	// Cross-fade window on the eased closing progress.
	CrossfadeStart float64
	CrossfadeEnd   float64

	ShellColor    Color
	GhostColor    Color
	BackdropColor Color

	// Measure reads the live origin box. Defaults to MeasureStable.
	Measure MeasureFunc
}

// DefaultModalConfig returns the stock timing and layout.
func DefaultModalConfig() ModalConfig {
	return ModalConfig{
		OpenDuration:     0.42,
		CloseDuration:    0.34,
		FollowDuration:   0.18,
		Margin:           48,
		MobileMargin:     16,
		MobileBreakpoint: 768,
		MaxWidth:         1100,
		MaxHeight:        820,
		OriginRadius:     14,
		ExpandedRadius:   20,
		CrossfadeStart:   0.4,
		CrossfadeEnd:     0.6,
		ShellColor:       Color{0.09, 0.1, 0.14, 1},
		GhostColor:       Color{0.16, 0.18, 0.25, 1},
		BackdropColor:    Color{0, 0, 0, 0.55},
		Measure:          MeasureStable,
	}
}

// WithDefaults fills zero fields from DefaultModalConfig.
func (c ModalConfig) WithDefaults() ModalConfig {
	d := DefaultModalConfig()
	fill := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&c.OpenDuration, d.OpenDuration)
	fill(&c.CloseDuration, d.CloseDuration)
	fill(&c.FollowDuration, d.FollowDuration)
	fill(&c.Margin, d.Margin)
	fill(&c.MobileMargin, d.MobileMargin)
	fill(&c.MobileBreakpoint, d.MobileBreakpoint)
	fill(&c.MaxWidth, d.MaxWidth)
	fill(&c.MaxHeight, d.MaxHeight)
	fill(&c.OriginRadius, d.OriginRadius)
	fill(&c.ExpandedRadius, d.ExpandedRadius)
	if c.CrossfadeStart == 0 && c.CrossfadeEnd == 0 {
		c.CrossfadeStart, c.CrossfadeEnd = d.CrossfadeStart, d.CrossfadeEnd
	}
	if c.ShellColor == (Color{}) {
		c.ShellColor = d.ShellColor
	}
	if c.GhostColor == (Color{}) {
		c.GhostColor = d.GhostColor
	}
	if c.BackdropColor == (Color{}) {
		c.BackdropColor = d.BackdropColor
	}
	if c.Measure == nil {
		c.Measure = d.Measure
	}
	return c
}

// ExpandedBounds returns the centred modal box for a vw x vh viewport: the
// viewport minus the margin on every side, capped at the maximum size.
// Viewports narrower than the mobile breakpoint use the mobile margin.
func ExpandedBounds(vw, vh float64, cfg ModalConfig) Rect {
	cfg = cfg.WithDefaults()
	m := cfg.Margin
	if vw < cfg.MobileBreakpoint {
		m = cfg.MobileMargin
	}
	w := math.Max(0, math.Min(vw-2*m, cfg.MaxWidth))
	h := math.Max(0, math.Min(vh-2*m, cfg.MaxHeight))
	return Rect{X: (vw - w) / 2, Y: (vh - h) / 2, Width: w, Height: h}
}

// --- Opening ---

// Tweened channels of the opening animation.
const (
	chLeft = iota
	chTop
	chWidth
	chHeight
	chOpacity
	chRadius
	numChannels
)

// OpeningAnimator grows the modal from the origin card to the expanded
// bounds. Box starts exactly on the origin rect. Opacity is the content
// opacity, rising from 0 to 1.
type OpeningAnimator struct {
	cfg      ModalConfig
	tweens   [numChannels]*gween.Tween
	values   [numChannels]float64
	target   Rect
	duration float64
	elapsed  float64
	done     bool
}

// NewOpeningAnimator snaps to origin and starts tweening toward the expanded
// bounds of a vw x vh viewport.
func NewOpeningAnimator(origin Rect, vw, vh float64, cfg ModalConfig) *OpeningAnimator {
	cfg = cfg.WithDefaults()
	a := &OpeningAnimator{cfg: cfg, duration: cfg.OpenDuration}
	a.values = [numChannels]float64{origin.X, origin.Y, origin.Width, origin.Height, 0, cfg.OriginRadius}
	a.aim(ExpandedBounds(vw, vh, cfg), cfg.OpenDuration)
	return a
}

// aim restarts every channel from its current value toward target over d
// seconds.
func (a *OpeningAnimator) aim(target Rect, d float64) {
	a.target = target
	ends := [numChannels]float64{target.X, target.Y, target.Width, target.Height, 1, a.cfg.ExpandedRadius}
	for i := range a.tweens {
		a.tweens[i] = gween.New(float32(a.values[i]), float32(ends[i]), float32(d), ease.OutCubic)
	}
}

// Update advances the animation by dt seconds and reports whether it has
// finished.
func (a *OpeningAnimator) Update(dt float64) bool {
	if a.done {
		return true
	}
	a.elapsed += dt
	finished := true
	for i, tw := range a.tweens {
		v, end := tw.Update(float32(dt))
		a.values[i] = float64(v)
		finished = finished && end
	}
	if finished || a.elapsed >= a.duration {
		a.snap()
	}
	return a.done
}

func (a *OpeningAnimator) snap() {
	t := a.target
	a.values = [numChannels]float64{t.X, t.Y, t.Width, t.Height, 1, a.cfg.ExpandedRadius}
	a.done = true
}

// Retarget aims at the expanded bounds of a new viewport for the remaining
// time. A finished animator snaps straight to them.
func (a *OpeningAnimator) Retarget(vw, vh float64) {
	target := ExpandedBounds(vw, vh, a.cfg)
	remaining := a.duration - a.elapsed
	if a.done || remaining <= 0 {
		a.target = target
		a.snap()
		return
	}
	a.aim(target, remaining)
}

// Box returns the current modal box.
func (a *OpeningAnimator) Box() Rect {
	return Rect{X: a.values[chLeft], Y: a.values[chTop], Width: a.values[chWidth], Height: a.values[chHeight]}
}

// Opacity returns the current content opacity.
func (a *OpeningAnimator) Opacity() float64 { return a.values[chOpacity] }

// Radius returns the current corner radius.
func (a *OpeningAnimator) Radius() float64 { return a.values[chRadius] }

// Target returns the bounds being animated toward.
func (a *OpeningAnimator) Target() Rect { return a.target }

// Progress returns elapsed time over duration, in [0, 1].
func (a *OpeningAnimator) Progress() float64 {
	if a.done {
		return 1
	}
	return clamp01(a.elapsed / a.duration)
}

// Done reports whether the animation has finished.
func (a *OpeningAnimator) Done() bool { return a.done }

// --- Closing ---

// ClosePhase is the stage of a ClosingAnimator.
type ClosePhase uint8

const (
	CloseTracking ClosePhase = iota // shell flies toward the live origin
	CloseHandoff                    // ghost follows the origin
	CloseDone
)

// ClosingAnimator flies the modal shell from its frozen base rect onto the
// origin card, re-measuring the card every frame so a moving card is still
// hit. The shell is driven by transform only; its origin is the top-left of
// base.
//
// When the origin cannot be measured at start the shell fades out in place
// without a ghost. When it disconnects part way, the last measured rect is
// the target.
type ClosingAnimator struct {
	cfg      ModalConfig
	origin   Element
	base     Rect
	live     Rect
	tracking bool

	progress *gween.Tween
	elapsed  float64
	follow   float64
	phase    ClosePhase

	k            float64
	translate    Vec2
	scaleX       float64
	scaleY       float64
	shellOpacity float64
	ghostOpacity float64
}

// NewClosingAnimator freezes base and takes a first measurement of origin.
func NewClosingAnimator(base Rect, origin Element, cfg ModalConfig) *ClosingAnimator {
	cfg = cfg.WithDefaults()
	a := &ClosingAnimator{
		cfg:          cfg,
		origin:       origin,
		base:         base,
		progress:     gween.New(0, 1, float32(cfg.CloseDuration), ease.OutCubic),
		scaleX:       1,
		scaleY:       1,
		shellOpacity: 1,
	}
	a.live, a.tracking = cfg.Measure(origin)
	return a
}

// Update advances the animation by dt seconds and reports whether it has
// finished.
func (a *ClosingAnimator) Update(dt float64) bool {
	switch a.phase {
	case CloseTracking:
		a.elapsed += dt
		k, finished := a.progress.Update(float32(dt))
		a.k = float64(k)
		if !a.tracking {
			a.shellOpacity = 1 - clamp01(a.elapsed/a.cfg.CloseDuration)
			if finished {
				a.shellOpacity = 0
				a.phase = CloseDone
			}
			return a.phase == CloseDone
		}
		a.remeasure()
		a.pose(a.k)
		if finished {
			a.pose(1)
			a.shellOpacity, a.ghostOpacity = 0, 1
			a.phase = CloseHandoff
		}
	case CloseHandoff:
		a.follow += dt
		a.remeasure()
		a.pose(1)
		a.shellOpacity, a.ghostOpacity = 0, 1
		if a.follow >= a.cfg.FollowDuration {
			a.phase = CloseDone
		}
	}
	return a.phase == CloseDone
}

func (a *ClosingAnimator) remeasure() {
	if r, ok := a.cfg.Measure(a.origin); ok {
		a.live = r
	}
}

// pose sets the shell transform and cross-fade for eased progress k.
func (a *ClosingAnimator) pose(k float64) {
	a.translate = Vec2{X: (a.live.X - a.base.X) * k, Y: (a.live.Y - a.base.Y) * k}
	a.scaleX = lerp(1, ratio(a.live.Width, a.base.Width), k)
	a.scaleY = lerp(1, ratio(a.live.Height, a.base.Height), k)
	a.shellOpacity, a.ghostOpacity = crossfade(k, a.cfg.CrossfadeStart, a.cfg.CrossfadeEnd)
}

// crossfade splits opacity between shell and ghost across [start, end].
func crossfade(k, start, end float64) (shell, ghost float64) {
	var u float64
	switch {
	case end > start:
		u = clamp01((k - start) / (end - start))
	case k >= start:
		u = 1
	}
	return 1 - u, u
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 1
	}
	return num / den
}

// Phase returns the current phase.
func (a *ClosingAnimator) Phase() ClosePhase { return a.phase }

// Tracking reports whether the animator has a landing target.
func (a *ClosingAnimator) Tracking() bool { return a.tracking }

// Progress returns the eased progress k in [0, 1].
func (a *ClosingAnimator) Progress() float64 { return a.k }

// Base returns the frozen starting rect.
func (a *ClosingAnimator) Base() Rect { return a.base }

// Live returns the most recent origin measurement.
func (a *ClosingAnimator) Live() Rect { return a.live }

// Transform returns the shell translation and scale relative to base.
func (a *ClosingAnimator) Transform() (translate Vec2, scaleX, scaleY float64) {
	return a.translate, a.scaleX, a.scaleY
}

// ShellRect returns the box the transformed shell covers on screen.
func (a *ClosingAnimator) ShellRect() Rect {
	return Rect{
		X:      a.base.X + a.translate.X,
		Y:      a.base.Y + a.translate.Y,
		Width:  a.base.Width * a.scaleX,
		Height: a.base.Height * a.scaleY,
	}
}

// Opacities returns the shell and ghost opacity.
func (a *ClosingAnimator) Opacities() (shell, ghost float64) {
	return a.shellOpacity, a.ghostOpacity
}
