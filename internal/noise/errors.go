package noise

import (
	"errors"
	"fmt"
)

// ErrCoordinateOutOfDomain is returned for coordinates that cannot be mapped
// onto the lattice: NaN, infinities, or floors beyond MaxLattice.
var ErrCoordinateOutOfDomain = errors.New("coordinate out of domain")

// CoordinateError reports the coordinate that was rejected.
//
// errors.Is(err, ErrCoordinateOutOfDomain) holds for every CoordinateError.
type CoordinateError struct {
	X, Y float64
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s: (%g, %g)", ErrCoordinateOutOfDomain, e.X, e.Y)
}

func (e *CoordinateError) Unwrap() error { return ErrCoordinateOutOfDomain }
