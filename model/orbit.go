package model

import "fmt"

// OrbitalElements is a set of classical Keplerian elements, each constrained
// to its bound. Values are copied on assignment; the setters are the only way
// to change an element and they refuse values outside the bound.
type OrbitalElements struct {
	sma         float64
	ecc         float64
	inc         float64
	argPerigee  float64
	raan        float64
	trueAnomaly float64

	bounds ElementBounds
}

// NewOrbitalElements validates every element against b.
// Angles are radians and the semi-major axis is metres.
func NewOrbitalElements(b ElementBounds, sma, ecc, inc, argPerigee, raan, trueAnomaly float64) (OrbitalElements, error) {
	e := OrbitalElements{bounds: b}
	setters := []struct {
		set func(float64) error
		v   float64
	}{
		{e.SetSMA, sma},
		{e.SetEcc, ecc},
		{e.SetInc, inc},
		{e.SetArgPerigee, argPerigee},
		{e.SetRAAN, raan},
		{e.SetTrueAnomaly, trueAnomaly},
	}
	for _, s := range setters {
		if err := s.set(s.v); err != nil {
			return OrbitalElements{}, err
		}
	}
	return e, nil
}

// CircularElements builds a circular orbit with default bounds, zero argument
// of perigee and zero true anomaly.
func CircularElements(sma, inc, raan float64) (OrbitalElements, error) {
	return NewOrbitalElements(DefaultElementBounds(), sma, 0, inc, 0, raan, 0)
}

func (e OrbitalElements) SMA() float64         { return e.sma }
func (e OrbitalElements) Ecc() float64         { return e.ecc }
func (e OrbitalElements) Inc() float64         { return e.inc }
func (e OrbitalElements) ArgPerigee() float64  { return e.argPerigee }
func (e OrbitalElements) RAAN() float64        { return e.raan }
func (e OrbitalElements) TrueAnomaly() float64 { return e.trueAnomaly }

// Bounds returns the bounds the elements were created with.
func (e OrbitalElements) Bounds() ElementBounds { return e.bounds }

// SetSMA sets the semi-major axis in metres.
func (e *OrbitalElements) SetSMA(v float64) error {
	return setBounded(&e.sma, v, e.bounds.SMA, "semi-major axis")
}

// SetEcc sets the eccentricity.
func (e *OrbitalElements) SetEcc(v float64) error {
	return setBounded(&e.ecc, v, e.bounds.Ecc, "eccentricity")
}

// SetInc sets the inclination in radians.
func (e *OrbitalElements) SetInc(v float64) error {
	return setBounded(&e.inc, v, e.bounds.Inc, "inclination")
}

// SetArgPerigee sets the argument of perigee in radians.
func (e *OrbitalElements) SetArgPerigee(v float64) error {
	return setBounded(&e.argPerigee, v, e.bounds.ArgPerigee, "argument of perigee")
}

// SetRAAN sets the right ascension of the ascending node in radians.
func (e *OrbitalElements) SetRAAN(v float64) error {
	return setBounded(&e.raan, v, e.bounds.RAAN, "right ascension of the ascending node")
}

// SetTrueAnomaly sets the true anomaly in radians.
func (e *OrbitalElements) SetTrueAnomaly(v float64) error {
	return setBounded(&e.trueAnomaly, v, e.bounds.TrueAnomaly, "true anomaly")
}

func setBounded(dst *float64, v float64, b Bounds, name string) error {
	if !b.Contains(v) {
		return fmt.Errorf("%w: %s %g not in %s", ErrOutOfBounds, name, v, b)
	}
	*dst = v
	return nil
}
