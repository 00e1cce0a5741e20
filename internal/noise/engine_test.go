package noise

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(12345, 67890))
}

func TestNew(t *testing.T) {
	e := New()
	require.NotNil(t, e)
	assert.Equal(t, 0, e.Gradients(), "a fresh engine has no cached gradients")
}

func TestGradientAt_SeededSource(t *testing.T) {
	e := NewWithSource(seeded())
	ref := seeded()

	points := []LatticePoint{{0, 0}, {1, 0}, {0, 1}, {-7, 42}}
	for _, p := range points {
		theta := 2 * math.Pi * ref.Float64()
		expected := Vec2{X: math.Cos(theta), Y: math.Sin(theta)}
		assert.Equal(t, expected, e.gradientAt(p), "gradient for %v", p)
	}
}

func TestGradientAt_Stable(t *testing.T) {
	e := New()
	p := LatticePoint{X: 3, Y: 5}
	first := e.gradientAt(p)

	for x := int64(-20); x < 20; x++ {
		for y := int64(-20); y < 20; y++ {
			e.gradientAt(LatticePoint{X: x, Y: y})
		}
	}

	assert.Equal(t, math.Float64bits(first.X), math.Float64bits(e.gradientAt(p).X))
	assert.Equal(t, math.Float64bits(first.Y), math.Float64bits(e.gradientAt(p).Y))
	assert.Equal(t, 40*40, e.Gradients())
}

func TestGradientAt_UnitLength(t *testing.T) {
	e := New()
	for x := int64(0); x < 50; x++ {
		for y := int64(0); y < 50; y++ {
			g := e.gradientAt(LatticePoint{X: x, Y: y})
			assert.InDelta(t, 1.0, g.X*g.X+g.Y*g.Y, 1e-9, "gradient at (%d, %d)", x, y)
		}
	}
}

func TestSampleAt_LatticePointsAreZero(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		x, y float64
	}{
		{name: "origin", x: 0, y: 0},
		{name: "positive lattice point", x: 3, y: 5},
		{name: "negative lattice point", x: -4, y: -9},
		{name: "mixed signs", x: 12, y: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, e.SampleAt(tt.x, tt.y))
		})
	}
}

func TestSampleAt_Deterministic(t *testing.T) {
	e := New()
	coords := [][2]float64{{0.5, 0.5}, {10.25, 3.75}, {-15.3, -8.9}, {1000.1, 0.001}}

	first := make([]float64, len(coords))
	for i, c := range coords {
		first[i] = e.SampleAt(c[0], c[1])
	}

	// Interleave unrelated queries before repeating.
	for i := 0; i < 500; i++ {
		e.SampleAt(float64(i)*0.37, float64(i)*-0.91)
	}

	for i, c := range coords {
		again := e.SampleAt(c[0], c[1])
		assert.Equal(t, math.Float64bits(first[i]), math.Float64bits(again),
			"sample at (%g, %g) changed", c[0], c[1])
	}
}

func TestSampleAt_SeededValue(t *testing.T) {
	e := NewWithSource(seeded())
	got := e.SampleAt(0.25, 0.75)

	// Corners are visited in the order (x0,y0), (x1,y0), (x0,y1), (x1,y1).
	ref := seeded()
	grad := func() Vec2 {
		theta := 2 * math.Pi * ref.Float64()
		return Vec2{X: math.Cos(theta), Y: math.Sin(theta)}
	}
	g00, g10, g01, g11 := grad(), grad(), grad(), grad()

	n00 := Dot(g00, Vec2{0.25, 0.75})
	n10 := Dot(g10, Vec2{-0.75, 0.75})
	n01 := Dot(g01, Vec2{0.25, -0.25})
	n11 := Dot(g11, Vec2{-0.75, -0.25})
	expected := Blend(Blend(n00, n10, 0.25), Blend(n01, n11, 0.25), 0.75)

	assert.Equal(t, expected, got)
}

func TestSampleAt_CacheGrowthBound(t *testing.T) {
	for _, n := range []int{1, 4, 16, 33} {
		e := New()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				e.SampleAt(float64(i)+0.5, float64(j)+0.5)
			}
		}
		assert.LessOrEqual(t, e.Gradients(), (n+1)*(n+1), "n=%d", n)
	}
}

func TestSampleAt_FineGridSharesCorners(t *testing.T) {
	e := New()
	const step = 1.0 / 64
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			e.SampleAt(float64(x)*step, float64(y)*step)
		}
	}
	// 128 samples at 1/64 cover two cells per axis.
	assert.Equal(t, 3*3, e.Gradients())
}

func TestSampleAt_RangeSanity(t *testing.T) {
	e := New()
	rng := seeded()

	for i := 0; i < 10000; i++ {
		x := rng.Float64() * 100
		y := rng.Float64() * 100
		v := e.SampleAt(x, y)
		require.False(t, math.IsNaN(v), "NaN at (%g, %g)", x, y)
		require.GreaterOrEqual(t, v, -1.5, "sample at (%g, %g)", x, y)
		require.LessOrEqual(t, v, 1.5, "sample at (%g, %g)", x, y)
	}
}

func TestSampleAt_Continuity(t *testing.T) {
	e := New()
	base := e.SampleAt(10, 10.5)

	// Approaching a cell edge from either side yields the same value.
	left := e.SampleAt(math.Nextafter(10, 0), 10.5)
	assert.InDelta(t, base, left, 1e-9)

	// Along a cell edge the slope is at most 1 + 15/8.
	for _, d := range []float64{1e-3, 1e-2} {
		assert.InDelta(t, base, e.SampleAt(10+d, 10.5), 3*d)
		assert.InDelta(t, base, e.SampleAt(10, 10.5+d), 3*d)
	}
}

func TestSampleAt_Scenario(t *testing.T) {
	e := New()
	assert.Equal(t, 0.0, e.SampleAt(0, 0))

	a := e.SampleAt(0.5, 0.5)
	b := e.SampleAt(0.5, 0.5)
	assert.False(t, math.IsNaN(a))
	assert.False(t, math.IsInf(a, 0))
	assert.Equal(t, a, b)
}

func TestSample_OutOfDomain(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		x, y float64
	}{
		{name: "NaN x", x: math.NaN(), y: 0},
		{name: "NaN y", x: 0, y: math.NaN()},
		{name: "positive infinity", x: math.Inf(1), y: 0},
		{name: "negative infinity", x: 0, y: math.Inf(-1)},
		{name: "beyond max lattice", x: MaxLattice, y: 0},
		{name: "beyond min lattice", x: 0, y: -MaxLattice - 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Sample(tt.x, tt.y)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCoordinateOutOfDomain))

			var coordErr *CoordinateError
			require.ErrorAs(t, err, &coordErr)
			assert.Equal(t, 0, e.Gradients(), "rejected input must not touch the cache")
		})
	}
}

func TestSample_EdgeOfDomain(t *testing.T) {
	e := New()

	v, err := e.Sample(-MaxLattice, MaxLattice-1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestSampleAt_PanicsOutOfDomain(t *testing.T) {
	e := New()
	assert.PanicsWithError(t, (&CoordinateError{X: math.Inf(1), Y: 1}).Error(), func() {
		e.SampleAt(math.Inf(1), 1)
	})
}

func TestEngines_AreIndependent(t *testing.T) {
	a := NewWithSource(rand.New(rand.NewPCG(1, 1)))
	b := NewWithSource(rand.New(rand.NewPCG(2, 2)))

	differs := false
	for i := 0; i < 16; i++ {
		x := float64(i) + 0.5
		if a.SampleAt(x, 0.5) != b.SampleAt(x, 0.5) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "engines with different sources should produce different fields")
}

func BenchmarkEngine_SampleAt(b *testing.B) {
	e := New()
	const step = 1.0 / 64

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := float64(i%512) * step
		y := float64((i/512)%512) * step
		e.SampleAt(x, y)
	}
}

func BenchmarkEngine_ColdCache(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := New()
		for x := 0; x < 64; x++ {
			e.SampleAt(float64(x)+0.5, 0.5)
		}
	}
}
