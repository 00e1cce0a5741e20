package noise

// Vec2 is a 2-D vector. Gradients and corner offsets are both Vec2.
type Vec2 struct {
	X, Y float64
}

// Dot returns the dot product of a and b.
func Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Blend interpolates between a0 and a1 with the quintic Smootherstep curve.
// The curve has zero first and second derivative at t=0 and t=1, so cells
// join without visible seams. t is normally in [0, 1] but is not clamped.
func Blend(a0, a1, t float64) float64 {
	return a0 + (a1-a0)*((t*(t*6-15)+10)*t*t*t)
}
