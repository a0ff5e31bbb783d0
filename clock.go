package hexfolio

import "github.com/phanxgames/hexfolio/hexgrid"

// FrameTime is the elapsed and delta time handed to per-frame callbacks.
type FrameTime = hexgrid.FrameTime

// Clock accumulates frame deltas into elapsed time. Animation code receives
// FrameTime values rather than reading a wall clock, so tests can feed
// synthetic time.
type Clock struct {
	elapsed float64
}

// Advance moves the clock forward by dt seconds. Negative deltas are treated
// as zero.
func (c *Clock) Advance(dt float64) FrameTime {
	if dt < 0 {
		dt = 0
	}
	c.elapsed += dt
	return FrameTime{Elapsed: c.elapsed, Delta: dt}
}

// Elapsed returns the total advanced time in seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}
