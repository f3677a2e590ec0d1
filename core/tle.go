package core

import (
	"errors"
	"fmt"
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/constellation-deployment/model"
)

// ErrDegenerateState is returned for state vectors that do not describe a
// bound orbit (zero radius, zero angular momentum or escape energy).
var ErrDegenerateState = errors.New("degenerate state vector")

// ElementsFromTLE propagates a two-line element set with SGP4 to at and
// converts the resulting state into classical elements.
// go-satellite works in kilometres and TEME; the planner treats TEME as
// inertial, which is well within the accuracy of a linear drift model.
func ElementsFromTLE(line1, line2 string, at time.Time, b model.ElementBounds) (model.OrbitalElements, error) {
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS84)

	at = at.UTC()
	year, month, day := at.Date()
	hour, min, sec := at.Clock()
	posECI, velECI := satellite.Propagate(sat, year, int(month), day, hour, min, sec)

	const kmToM = 1000.0
	r := Vec3{X: posECI.X * kmToM, Y: posECI.Y * kmToM, Z: posECI.Z * kmToM}
	v := Vec3{X: velECI.X * kmToM, Y: velECI.Y * kmToM, Z: velECI.Z * kmToM}
	if math.IsNaN(r.Norm()) || math.IsNaN(v.Norm()) {
		return model.OrbitalElements{}, fmt.Errorf("%w: SGP4 propagation failed", ErrDegenerateState)
	}
	return ElementsFromStateVector(r, v, b)
}

// ElementsFromStateVector converts an inertial position [m] and velocity
// [m/s] into classical elements. For circular orbits the argument of perigee
// is zero and the true anomaly is measured from the ascending node; for
// equatorial orbits the RAAN is zero and angles are measured from the x axis.
func ElementsFromStateVector(r, v Vec3, b model.ElementBounds) (model.OrbitalElements, error) {
	const eps = 1e-10

	rn := r.Norm()
	vn := v.Norm()
	h := r.Cross(v)
	hn := h.Norm()
	if rn == 0 || hn == 0 {
		return model.OrbitalElements{}, fmt.Errorf("%w: zero radius or angular momentum", ErrDegenerateState)
	}

	energy := vn*vn/2 - EarthMu/rn
	if energy >= 0 {
		return model.OrbitalElements{}, fmt.Errorf("%w: orbit is not bound", ErrDegenerateState)
	}
	sma := -EarthMu / (2 * energy)

	eVec := r.Scale(vn*vn - EarthMu/rn).Sub(v.Scale(r.Dot(v))).Scale(1 / EarthMu)
	ecc := eVec.Norm()

	inc := math.Acos(clampUnit(h.Z / hn))

	node := Vec3{X: -h.Y, Y: h.X}
	nn := node.Norm()

	var raan, argPer, anomaly float64
	equatorial := nn < eps*hn
	circular := ecc < eps

	if !equatorial {
		raan = math.Acos(clampUnit(node.X / nn))
		if node.Y < 0 {
			raan = 2*math.Pi - raan
		}
	}

	switch {
	case !circular && !equatorial:
		argPer = angleBetween(node, eVec, eVec.Z < 0)
		anomaly = angleBetween(eVec, r, r.Dot(v) < 0)
	case !circular && equatorial:
		argPer = math.Atan2(eVec.Y, eVec.X)
		if h.Z < 0 {
			argPer = -argPer
		}
		anomaly = angleBetween(eVec, r, r.Dot(v) < 0)
	case circular && !equatorial:
		anomaly = angleBetween(node, r, r.Z < 0)
	default:
		anomaly = math.Atan2(r.Y, r.X)
		if h.Z < 0 {
			anomaly = -anomaly
		}
	}

	return model.NewOrbitalElements(b, sma, ecc, inc, wrapAngle(argPer), wrapAngle(raan), wrapAngle(anomaly))
}
