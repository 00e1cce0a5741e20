// Package noise implements 2-D gradient (Perlin-style) noise.
//
// An Engine assigns a random unit gradient to each integer lattice point the
// first time that point is needed and remembers it for the rest of its life,
// so repeated queries against the same engine are stable. Different engines
// draw different gradients; there is no seed that reproduces a field across
// runs.
//
// Engines are not safe for concurrent use. Each goroutine that produces
// samples should own its own Engine.
package noise

import (
	"math"
	"math/rand/v2"
)

// MaxLattice bounds the lattice index on either axis. Past 2^53 adjacent
// integers are no longer distinct float64 values.
const MaxLattice = 1 << 53

// Engine samples gradient noise. The zero value is not usable; call New or
// NewWithSource.
type Engine struct {
	src       Source
	gradients gradientStore
}

// New creates an engine with an empty gradient store and a private random
// source seeded from the runtime.
func New() *Engine {
	return NewWithSource(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewWithSource creates an engine that draws gradient angles from src.
func NewWithSource(src Source) *Engine {
	return &Engine{
		src:       src,
		gradients: make(gradientStore),
	}
}

// SampleAt returns the noise value at (x, y). Values are typically within
// [-1, 1] but are not clamped.
//
// SampleAt populates the gradient cache as a side effect; the returned value
// for a given coordinate never changes for the lifetime of e. It panics with
// a *CoordinateError when (x, y) is out of domain; use Sample for input that
// has not been validated.
func (e *Engine) SampleAt(x, y float64) float64 {
	v, err := e.Sample(x, y)
	if err != nil {
		panic(err)
	}
	return v
}

// Sample is SampleAt with an error return instead of a panic.
func (e *Engine) Sample(x, y float64) (float64, error) {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	if !inDomain(x0) || !inDomain(y0) {
		return 0, &CoordinateError{X: x, Y: y}
	}
	x1 := x0 + 1
	y1 := y0 + 1

	dx0, dy0 := x-x0, y-y0
	dx1, dy1 := x-x1, y-y1

	px, py := int64(x0), int64(y0)
	g00 := e.gradientAt(LatticePoint{X: px, Y: py})
	g10 := e.gradientAt(LatticePoint{X: px + 1, Y: py})
	g01 := e.gradientAt(LatticePoint{X: px, Y: py + 1})
	g11 := e.gradientAt(LatticePoint{X: px + 1, Y: py + 1})

	n00 := Dot(g00, Vec2{X: dx0, Y: dy0})
	n10 := Dot(g10, Vec2{X: dx1, Y: dy0})
	n01 := Dot(g01, Vec2{X: dx0, Y: dy1})
	n11 := Dot(g11, Vec2{X: dx1, Y: dy1})

	top := Blend(n00, n10, dx0)
	bottom := Blend(n01, n11, dx0)
	return Blend(top, bottom, dy0), nil
}

// Gradients reports how many lattice points have been assigned a gradient.
func (e *Engine) Gradients() int {
	return len(e.gradients)
}

// inDomain reports whether a floored coordinate and its successor are both
// valid lattice indices. NaN compares false and is rejected.
func inDomain(f float64) bool {
	return f >= -MaxLattice && f < MaxLattice
}
