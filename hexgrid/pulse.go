package hexgrid

import "math"

// FrameTime is the clock input for one animation frame, in seconds.
type FrameTime struct {
	Elapsed float64
	Delta   float64
}

// CellState is the derived visual state of one cell for one frame.
type CellState struct {
	Pulse     float64 // [0,1]
	Scale     float64 // multiplier on the cell radius
	Alpha     float64
	Lightness float64 // [0.05,0.95]
	Offset    Point   // displacement from the cell centre
}

// Animator turns a cell and a time into a CellState. Every cell has its own
// phase and speed, so neighbouring cells drift apart instead of pulsing in
// lockstep.
type Animator struct {
	Tuning PulseTuning
}

// Pulse returns 0.5 + 0.5·sin(2π·baseFreq·speed·t + phase).
func (a Animator) Pulse(c *Cell, t float64) float64 {
	return 0.5 + 0.5*math.Sin(2*math.Pi*a.Tuning.BaseFreq*c.Speed*t+c.Phase)
}

// Animate computes the frame state of c at time t. baseLightness is in [0,1].
func (a Animator) Animate(c *Cell, t, baseLightness float64) CellState {
	return a.fromPulse(a.Pulse(c, t), baseLightness)
}

func (a Animator) fromPulse(p, baseLightness float64) CellState {
	tu := a.Tuning
	scaleT := 1 - p
	if tu.Invert {
		scaleT = p
	}
	return CellState{
		Pulse:     p,
		Scale:     lerp(tu.ScaleMin, tu.ScaleMax, scaleT),
		Alpha:     lerp(tu.AlphaMin, tu.AlphaMax, 1-p),
		Lightness: clamp(baseLightness+(p-0.5)*2*tu.LightAmp, 0.05, 0.95),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Sway returns the global rotation (radians) and zoom applied to the whole
// grid at time t.
func Sway(o SwayOptions, t float64) (rotation, zoom float64) {
	if o.Period <= 0 {
		return 0, 1
	}
	w := 2 * math.Pi * t / o.Period
	return o.Rotation * math.Sin(w), 1 + o.Zoom*math.Sin(w*0.5)
}
