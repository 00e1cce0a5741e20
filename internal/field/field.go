// Package field turns a noise engine into square grids of samples and hands
// completed grids from producer goroutines to consumers.
package field

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/VoidMesh/noise/internal/config"
)

var (
	ErrInvalidParams = errors.New("invalid field parameters")
	ErrOutOfBounds   = errors.New("coordinate outside field")
)

// Default sampling: 64 samples per lattice cell over 8 cells.
const (
	DefaultStep   = 1.0 / 64
	DefaultExtent = 8.0
)

// MaxSamples bounds the samples per axis, and with it the memory of one grid.
const MaxSamples = config.MaxFieldSamples

// Params describes which part of the noise plane a field covers.
type Params struct {
	// Step is the distance between neighbouring samples in lattice units.
	Step float64 `json:"step"`
	// Extent is the side of the sampled square in lattice units.
	Extent float64 `json:"extent"`
}

// DefaultParams returns the default sampling parameters.
func DefaultParams() Params {
	return Params{Step: DefaultStep, Extent: DefaultExtent}
}

// Samples is the number of samples along each axis.
func (p Params) Samples() int {
	return int(math.Floor(p.Extent / p.Step))
}

func (p Params) Validate() error {
	if !(p.Step > 0) || math.IsInf(p.Step, 0) {
		return fmt.Errorf("%w: step must be positive and finite, got %g", ErrInvalidParams, p.Step)
	}
	if !(p.Extent > 0) || math.IsInf(p.Extent, 0) {
		return fmt.Errorf("%w: extent must be positive and finite, got %g", ErrInvalidParams, p.Extent)
	}
	// Checked as a float so a huge ratio cannot overflow the int conversion.
	n := math.Floor(p.Extent / p.Step)
	if n < 1 {
		return fmt.Errorf("%w: extent %g is smaller than step %g", ErrInvalidParams, p.Extent, p.Step)
	}
	if n > MaxSamples {
		return fmt.Errorf("%w: %g samples per axis exceeds %d", ErrInvalidParams, n, MaxSamples)
	}
	return nil
}

// Field is one completed grid of noise samples. It is never modified after
// it leaves the goroutine that generated it.
type Field struct {
	ID          string        `json:"id"`
	Params      Params        `json:"params"`
	Samples     int           `json:"samples"`
	Values      []float64     `json:"values,omitempty"`
	Min         float64       `json:"min"`
	Max         float64       `json:"max"`
	Mean        float64       `json:"mean"`
	Gradients   int           `json:"gradients"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`
}

// At returns the sample in column x, row y.
func (f *Field) At(x, y int) float64 {
	return f.Values[y*f.Samples+x]
}

// Nearest returns the sample closest to the continuous coordinate (fx, fy).
// The field covers [0, Extent) on both axes; near the far edge the last
// sample is used.
func (f *Field) Nearest(fx, fy float64) (float64, error) {
	extent := f.Params.Extent
	if !(fx >= 0 && fx < extent) || !(fy >= 0 && fy < extent) {
		return 0, fmt.Errorf("%w: (%g, %g) not in [0, %g)", ErrOutOfBounds, fx, fy, extent)
	}
	x := min(int(math.Round(fx/f.Params.Step)), f.Samples-1)
	y := min(int(math.Round(fy/f.Params.Step)), f.Samples-1)
	return f.At(x, y), nil
}

// summarize fills Min, Max and Mean from Values.
func (f *Field) summarize() {
	if len(f.Values) == 0 {
		return
	}
	f.Min, f.Max = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, v := range f.Values {
		f.Min = math.Min(f.Min, v)
		f.Max = math.Max(f.Max, v)
		sum += v
	}
	f.Mean = sum / float64(len(f.Values))
}
