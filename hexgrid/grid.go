package hexgrid

import (
	"math"
	"math/rand/v2"
)

// Point is a position in grid space: pixels, origin at the viewport centre,
// Y increasing downward.
type Point struct {
	X, Y float64
}

// Cell is one pointy-top hexagon. Cells are immutable after Build; per-frame
// visual state lives in CellState.
type Cell struct {
	Row, Col int
	Center   Point
	Radius   float64 // centre to corner
	Hue01    float64 // [0,1)
	Phase    float64 // [0,2π)
	Speed    float64 // oscillator frequency multiplier
}

const (
	speedMin = 0.65
	speedMax = 1.35
)

var sqrt3 = math.Sqrt(3)

// Spacing returns the hexagon radius and the column and row steps for a given
// flat-to-flat width.
func Spacing(pixelsPerHex float64) (radius, colStep, rowStep float64) {
	radius = pixelsPerHex / sqrt3
	return radius, pixelsPerHex, 1.5 * radius
}

// newRand returns the deterministic source used for a config's per-cell
// jitter and for trail walkers.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Build tiles a width x height viewport, centred on the origin, with
// pointy-top hexagons plus cfg.Margin extra rows and columns on every side.
// Odd rows are shifted right by half a column. A degenerate viewport or
// density yields nil.
func Build(width, height float64, cfg Config) []Cell {
	if width <= 0 || height <= 0 || cfg.PixelsPerHex <= 0 {
		return nil
	}
	radius, colStep, rowStep := Spacing(cfg.PixelsPerHex)
	halfCols, halfRows := halfExtent(width, height, cfg)

	rng := newRand(cfg.Seed)
	base := cfg.Hue / 360
	jitter := cfg.HueJitter / 360

	cells := make([]Cell, 0, (2*halfCols+1)*(2*halfRows+1))
	for row := -halfRows; row <= halfRows; row++ {
		shift := 0.0
		if row&1 != 0 {
			shift = colStep / 2
		}
		for col := -halfCols; col <= halfCols; col++ {
			cells = append(cells, Cell{
				Row:    row,
				Col:    col,
				Center: Point{X: float64(col)*colStep + shift, Y: float64(row) * rowStep},
				Radius: radius,
				Hue01:  Wrap01(base + (rng.Float64()*2-1)*jitter),
				Phase:  rng.Float64() * 2 * math.Pi,
				Speed:  speedMin + rng.Float64()*(speedMax-speedMin),
			})
		}
	}
	return cells
}

// CellCount returns how many cells Build would produce without allocating
// them. Densities too fine to count saturate at math.MaxInt32.
func CellCount(width, height float64, cfg Config) int {
	if width <= 0 || height <= 0 || cfg.PixelsPerHex <= 0 {
		return 0
	}
	margin := float64(max(cfg.Margin, minMargin))
	_, colStep, rowStep := Spacing(cfg.PixelsPerHex)
	cols := 2*(math.Ceil(width/2/colStep)+margin) + 1
	rows := 2*(math.Ceil(height/2/rowStep)+margin) + 1
	n := cols * rows
	if math.IsInf(n, 0) || math.IsNaN(n) || n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// halfExtent returns the number of columns and rows on each side of the
// centre cell, margin included.
func halfExtent(width, height float64, cfg Config) (halfCols, halfRows int) {
	margin := max(cfg.Margin, minMargin)
	_, colStep, rowStep := Spacing(cfg.PixelsPerHex)
	halfCols = int(math.Ceil(width/2/colStep)) + margin
	halfRows = int(math.Ceil(height/2/rowStep)) + margin
	return halfCols, halfRows
}

// Wrap01 wraps v into [0,1) in both directions.
func Wrap01(v float64) float64 {
	v -= math.Floor(v)
	if v >= 1 {
		// Floor of a value a hair below an integer can round back up.
		v = 0
	}
	return v
}

// Corner returns corner k (0..5) of a pointy-top hexagon. Corner 0 is the
// upper-right corner and corners proceed clockwise on screen; corners 2 and 5
// are the bottom and top points.
func Corner(center Point, radius float64, k int) Point {
	angle := (float64(k)*60 - 30) * math.Pi / 180
	sin, cos := math.Sincos(angle)
	return Point{X: center.X + radius*cos, Y: center.Y + radius*sin}
}
