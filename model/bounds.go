package model

import (
	"errors"
	"fmt"
	"math"
)

// EarthEquatorialRadius is the WGS-84 equatorial radius in metres.
const EarthEquatorialRadius = 6378137.0

// ErrOutOfBounds is returned when an orbital element is set outside its bound.
var ErrOutOfBounds = errors.New("value out of bounds")

// Bounds is a closed interval [Lower, Upper].
type Bounds struct {
	Lower float64
	Upper float64
}

// NewBounds returns a closed interval. It fails if upper < lower.
func NewBounds(lower, upper float64) (Bounds, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return Bounds{}, fmt.Errorf("bounds must not be NaN")
	}
	if upper < lower {
		return Bounds{}, fmt.Errorf("upper bound %g is less than lower bound %g", upper, lower)
	}
	return Bounds{Lower: lower, Upper: upper}, nil
}

// Contains reports whether v lies within the interval, endpoints included.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%g, %g]", b.Lower, b.Upper)
}

// ElementBounds holds one bound per classical orbital element.
type ElementBounds struct {
	SMA         Bounds // metres
	Ecc         Bounds
	Inc         Bounds // radians
	ArgPerigee  Bounds // radians
	RAAN        Bounds // radians
	TrueAnomaly Bounds // radians
}

// DefaultElementBounds admits any bound Earth orbit from the surface out to
// roughly GEO altitude.
func DefaultElementBounds() ElementBounds {
	angle := Bounds{Lower: 0, Upper: 2 * math.Pi}
	return ElementBounds{
		SMA:         Bounds{Lower: EarthEquatorialRadius, Upper: 5e7},
		Ecc:         Bounds{Lower: 0, Upper: 1},
		Inc:         Bounds{Lower: 0, Upper: math.Pi},
		ArgPerigee:  angle,
		RAAN:        angle,
		TrueAnomaly: angle,
	}
}
