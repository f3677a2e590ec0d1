package core

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/signalsfoundry/constellation-deployment/model"
)

const (
	issLine1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	issLine2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

func TestElementsFromTLE_ISS(t *testing.T) {
	epoch := time.Date(2021, time.October, 2, 14, 11, 0, 0, time.UTC)
	el, err := ElementsFromTLE(issLine1, issLine2, epoch, model.DefaultElementBounds())
	if err != nil {
		t.Fatalf("ElementsFromTLE: %v", err)
	}

	if el.SMA() < 6.75e6 || el.SMA() > 6.85e6 {
		t.Fatalf("sma = %v, want about 6.797e6", el.SMA())
	}
	approx(t, "inc", el.Inc(), 51.6459*math.Pi/180, 0.01)
	approx(t, "raan", el.RAAN(), 115.9059*math.Pi/180, 0.01)
	if el.Ecc() > 0.01 {
		t.Fatalf("ecc = %v, want near-circular", el.Ecc())
	}
}

func TestElementsFromStateVector_Inclined(t *testing.T) {
	const (
		r   = 7e6
		inc = 0.9
	)
	v := CircularVelocity(r)
	el, err := ElementsFromStateVector(
		Vec3{X: r},
		Vec3{Y: v * math.Cos(inc), Z: v * math.Sin(inc)},
		model.DefaultElementBounds(),
	)
	if err != nil {
		t.Fatalf("ElementsFromStateVector: %v", err)
	}
	approx(t, "sma", el.SMA(), r, 1e-3)
	approx(t, "ecc", el.Ecc(), 0, 1e-9)
	approx(t, "inc", el.Inc(), inc, 1e-12)
	approx(t, "raan", el.RAAN(), 0, 1e-12)
}

func TestElementsFromStateVector_EccentricEquatorial(t *testing.T) {
	// Perigee at 7000 km on the +y axis, apogee at 9000 km.
	const rp, ra = 7e6, 9e6
	a := (rp + ra) / 2
	vp := math.Sqrt(EarthMu * (2/rp - 1/a))
	el, err := ElementsFromStateVector(Vec3{Y: rp}, Vec3{X: -vp}, model.DefaultElementBounds())
	if err != nil {
		t.Fatalf("ElementsFromStateVector: %v", err)
	}
	approx(t, "sma", el.SMA(), a, 1e-3)
	approx(t, "ecc", el.Ecc(), (ra-rp)/(ra+rp), 1e-9)
	approx(t, "inc", el.Inc(), 0, 1e-12)
	approx(t, "arg perigee", el.ArgPerigee(), math.Pi/2, 1e-9)
	approx(t, "true anomaly", el.TrueAnomaly(), 0, 1e-6)
}

func TestElementsFromStateVector_Degenerate(t *testing.T) {
	b := model.DefaultElementBounds()
	r := Vec3{X: 7e6}

	if _, err := ElementsFromStateVector(r, Vec3{}, b); !errors.Is(err, ErrDegenerateState) {
		t.Fatalf("zero velocity: expected ErrDegenerateState, got %v", err)
	}
	escape := Vec3{Y: 2 * CircularVelocity(7e6)}
	if _, err := ElementsFromStateVector(r, escape, b); !errors.Is(err, ErrDegenerateState) {
		t.Fatalf("escape velocity: expected ErrDegenerateState, got %v", err)
	}
}

func TestElementsFromStateVector_OutOfBounds(t *testing.T) {
	b := model.DefaultElementBounds()
	b.SMA = model.Bounds{Lower: model.EarthEquatorialRadius, Upper: 6.9e6}

	v := CircularVelocity(7e6)
	_, err := ElementsFromStateVector(Vec3{X: 7e6}, Vec3{Y: v}, b)
	if !errors.Is(err, model.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}
