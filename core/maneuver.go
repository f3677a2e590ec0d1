package core

import (
	"math"

	"github.com/signalsfoundry/constellation-deployment/model"
)

// Physical constants (SI units).
const (
	// EarthMu is the WGS-84 gravitational parameter [m^3/s^2].
	EarthMu = 3.986004418e14
	// EarthRadius is the WGS-84 equatorial radius [m].
	EarthRadius = model.EarthEquatorialRadius
	// EarthJ2 is the second zonal harmonic.
	EarthJ2 = 1.08262668e-3
	// EarthRotationRate is the sidereal rotation rate [rad/s].
	EarthRotationRate = 7.2921150e-5
	// StandardGravity is g0 [m/s^2], the reference for specific impulse.
	StandardGravity = 9.80665
)

// CircularVelocity is the speed of a circular orbit of radius sma.
func CircularVelocity(sma float64) float64 {
	return math.Sqrt(EarthMu / sma)
}

// transferVelocity is the vis-viva speed at radius r on an orbit with
// semi-major axis a.
func transferVelocity(r, a float64) float64 {
	return math.Sqrt(EarthMu * (2/r - 1/a))
}

// HohmannFirstBurn is the magnitude of the burn that puts a craft on a
// circular orbit of radius r1 onto the transfer ellipse towards r2.
func HohmannFirstBurn(r1, r2 float64) float64 {
	atx := (r1 + r2) / 2
	return math.Abs(transferVelocity(r1, atx) - CircularVelocity(r1))
}

// HohmannSecondBurn is the magnitude of the burn that circularises at r2.
func HohmannSecondBurn(r1, r2 float64) float64 {
	atx := (r1 + r2) / 2
	return math.Abs(CircularVelocity(r2) - transferVelocity(r2, atx))
}

// HohmannTransfer is the total delta-V of a two-burn circular-to-circular transfer.
func HohmannTransfer(r1, r2 float64) float64 {
	return HohmannFirstBurn(r1, r2) + HohmannSecondBurn(r1, r2)
}

// SimplePlaneChange is the cost of rotating a velocity of magnitude v by
// theta radians without changing its magnitude.
func SimplePlaneChange(v, theta float64) float64 {
	return 2 * v * math.Sin(theta/2)
}

// CombinedPlaneChange is the cost of going from speed vInitial to speed
// vFinal while rotating the velocity by theta, as a single burn.
func CombinedPlaneChange(vInitial, vFinal, theta float64) float64 {
	sq := vInitial*vInitial + vFinal*vFinal - 2*vInitial*vFinal*math.Cos(theta)
	// rounding can push a zero-cost maneuver slightly negative
	if sq < 0 {
		return 0
	}
	return math.Sqrt(sq)
}

// NodalPrecessionRate is the secular J2 drift of the ascending node [rad/s].
func NodalPrecessionRate(sma, ecc, inc float64) float64 {
	n := math.Sqrt(EarthMu / (sma * sma * sma))
	p := sma * (1 - ecc*ecc)
	ratio := EarthRadius / p
	return -1.5 * n * EarthJ2 * ratio * ratio * math.Cos(inc)
}
