package noise

import "math"

// LatticePoint identifies an integer grid coordinate.
type LatticePoint struct {
	X, Y int64
}

// Source supplies uniformly distributed values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// gradientStore maps lattice points to their unit gradient. Entries are
// inserted once and never replaced.
type gradientStore map[LatticePoint]Vec2

// gradientAt returns the gradient assigned to p, drawing a new one from the
// engine's source on first access.
func (e *Engine) gradientAt(p LatticePoint) Vec2 {
	if g, ok := e.gradients[p]; ok {
		return g
	}

	theta := 2 * math.Pi * e.src.Float64()
	g := Vec2{X: math.Cos(theta), Y: math.Sin(theta)}
	e.gradients[p] = g
	return g
}
