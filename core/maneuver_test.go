package core

import (
	"math"
	"testing"
)

const (
	leoRadius = 6678137.0
	geoRadius = 42164000.0
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Fatalf("%s = %v, want %v ± %v", name, got, want, tol)
	}
}

func TestCircularVelocity(t *testing.T) {
	approx(t, "v(7000 km)", CircularVelocity(7e6), 7546.05, 0.1)
	approx(t, "v(GEO)", CircularVelocity(geoRadius), 3074.66, 0.1)
}

func TestHohmann_LEOToGEO(t *testing.T) {
	approx(t, "first burn", HohmannFirstBurn(leoRadius, geoRadius), 2425.4, 5)
	approx(t, "second burn", HohmannSecondBurn(leoRadius, geoRadius), 1466.9, 5)
	approx(t, "total", HohmannTransfer(leoRadius, geoRadius), 3892.3, 10)
}

func TestHohmann_SameOrbitIsFree(t *testing.T) {
	approx(t, "first", HohmannFirstBurn(7e6, 7e6), 0, 1e-9)
	approx(t, "second", HohmannSecondBurn(7e6, 7e6), 0, 1e-9)
}

func TestHohmann_TotalIsSymmetric(t *testing.T) {
	up := HohmannTransfer(leoRadius, geoRadius)
	down := HohmannTransfer(geoRadius, leoRadius)
	approx(t, "down", down, up, 1e-6)
}

func TestSimplePlaneChange(t *testing.T) {
	v := CircularVelocity(7e6)
	approx(t, "60 deg", SimplePlaneChange(v, math.Pi/3), v, 1e-9)
	approx(t, "0 deg", SimplePlaneChange(v, 0), 0, 0)
	approx(t, "180 deg", SimplePlaneChange(v, math.Pi), 2*v, 1e-9)
}

func TestCombinedPlaneChange(t *testing.T) {
	v := CircularVelocity(7e6)
	approx(t, "equal speeds", CombinedPlaneChange(v, v, 0.3), SimplePlaneChange(v, 0.3), 1e-6)
	approx(t, "no rotation", CombinedPlaneChange(7000, 7500, 0), 500, 1e-9)
	approx(t, "identical", CombinedPlaneChange(v, v, 0), 0, 0)

	merged := CombinedPlaneChange(v, v+HohmannFirstBurn(7e6, 7.5e6), 0.2)
	separate := HohmannFirstBurn(7e6, 7.5e6) + SimplePlaneChange(v, 0.2)
	if merged >= separate {
		t.Fatalf("combined burn %v should be cheaper than separate burns %v", merged, separate)
	}
}

func TestNodalPrecessionRate(t *testing.T) {
	// A sun-synchronous orbit precesses one revolution per year.
	sunSync := 2 * math.Pi / (365.2422 * 86400)
	got := NodalPrecessionRate(7078137, 0, 98.2*math.Pi/180)
	approx(t, "sun-synchronous rate", got, sunSync, 0.02*sunSync)

	if r := NodalPrecessionRate(7e6, 0, 0.9); r >= 0 {
		t.Fatalf("prograde orbit should regress, got %v", r)
	}
	approx(t, "polar rate", NodalPrecessionRate(7e6, 0, math.Pi/2), 0, 1e-20)
}
