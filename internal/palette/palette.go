// Package palette maps noise values onto colours and renders fields as
// images.
package palette

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrUnknownPalette = errors.New("unknown palette")

// Mapper turns a noise value into a colour.
type Mapper interface {
	Colour(v float64) colorful.Color
}

// Names lists the palettes ByName accepts.
var Names = []string{"grayscale", "banded"}

// ByName returns the named palette.
func ByName(name string) (Mapper, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "grayscale", "greyscale", "":
		return Grayscale{}, nil
	case "banded":
		return DefaultBands(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
}

// weight maps a noise value from [-1, 1] onto [0, 1], clamping outliers.
func weight(v float64) float64 {
	w := (v + 1) / 2
	switch {
	case w < 0 || math.IsNaN(w):
		return 0
	case w > 1:
		return 1
	}
	return w
}

// Grayscale shades from black at -1 to white at 1.
type Grayscale struct{}

func (Grayscale) Colour(v float64) colorful.Color {
	w := weight(v)
	return colorful.Color{R: w, G: w, B: w}
}

// Stop anchors a colour at a weight in [0, 1].
type Stop struct {
	At     float64
	Colour colorful.Color
}

// Banded interpolates between stops ordered by At. It reads like a map:
// deep water, shallows, lowland and rock.
type Banded struct {
	Stops []Stop
}

var (
	deepWater = colorful.Color{R: 0.0, G: 0.1, B: 0.4}
	shallows  = colorful.Color{R: 0.1, G: 0.2, B: 0.5}
	lowland   = colorful.Color{R: 0.1, G: 0.4, B: 0.1}
	rock      = colorful.Color{R: 0.7, G: 0.7, B: 0.7}
)

// DefaultBands returns the water/land/rock palette.
func DefaultBands() Banded {
	return Banded{Stops: []Stop{
		{At: 0.00, Colour: deepWater},
		{At: 0.30, Colour: shallows},
		{At: 0.35, Colour: lowland},
		{At: 0.50, Colour: lowland},
		{At: 1.00, Colour: rock},
	}}
}

func (b Banded) Colour(v float64) colorful.Color {
	if len(b.Stops) == 0 {
		return Grayscale{}.Colour(v)
	}

	w := weight(v)
	for i := 0; i < len(b.Stops)-1; i++ {
		lo, hi := b.Stops[i], b.Stops[i+1]
		if w >= lo.At && w <= hi.At {
			if hi.At == lo.At {
				return lo.Colour
			}
			return lo.Colour.BlendRgb(hi.Colour, (w-lo.At)/(hi.At-lo.At))
		}
	}

	if w < b.Stops[0].At {
		return b.Stops[0].Colour
	}
	return b.Stops[len(b.Stops)-1].Colour
}
