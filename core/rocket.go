package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrStageMismatch is returned when staged inputs have different lengths.
var ErrStageMismatch = errors.New("stage arrays must be the same length")

// Propellant describes the performance of a propellant.
type Propellant struct {
	Name string  `yaml:"name" json:"name"`
	Isp  float64 `yaml:"isp" json:"isp"` // seconds
}

// LaunchStage is one stage of a launch vehicle.
type LaunchStage struct {
	DryMass    float64    `yaml:"dry_mass" json:"dry_mass"` // kg, without propellant
	WetMass    float64    `yaml:"wet_mass" json:"wet_mass"` // kg, with propellant
	Propellant Propellant `yaml:"propellant" json:"propellant"`
}

// LaunchVehicle is an ordered stack of stages, first-burning stage first.
type LaunchVehicle struct {
	Stages []LaunchStage `yaml:"stages" json:"stages"`
}

// DeltaV is the ideal velocity change of the whole vehicle. Each stage
// carries the wet mass of every stage above it.
func (lv LaunchVehicle) DeltaV() (float64, error) {
	n := len(lv.Stages)
	isp := make([]float64, n)
	initial := make([]float64, n)
	final := make([]float64, n)
	for i, s := range lv.Stages {
		isp[i] = s.Propellant.Isp
		initial[i] = s.WetMass
		final[i] = s.DryMass
	}
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			initial[i] += lv.Stages[j].WetMass
			final[i] += lv.Stages[j].WetMass
		}
	}
	return StagedRocketEquation(isp, initial, final)
}

// RocketEquation is the Tsiolkovsky delta-V [m/s] for specific impulse isp [s]
// and initial/final masses.
func RocketEquation(isp, initialMass, finalMass float64) float64 {
	return StandardGravity * isp * math.Log(initialMass/finalMass)
}

// StagedRocketEquation sums the rocket equation over stages. initial[i] is
// the vehicle mass when stage i ignites and final[i] the mass at its burnout,
// before separation.
func StagedRocketEquation(isp, initial, final []float64) (float64, error) {
	if len(isp) != len(initial) || len(isp) != len(final) {
		return 0, fmt.Errorf("%w: isp=%d initial=%d final=%d", ErrStageMismatch, len(isp), len(initial), len(final))
	}
	v := 0.0
	for i := range isp {
		v += RocketEquation(isp[i], initial[i], final[i])
	}
	return v, nil
}

// RequiredPropellantMass is the propellant [kg] a vehicle of initial mass
// [kg] burns to produce deltaV [m/s] at the given isp [s].
func RequiredPropellantMass(deltaV, initialMass, isp float64) float64 {
	final := initialMass / math.Exp(deltaV/(StandardGravity*isp))
	return initialMass - final
}
