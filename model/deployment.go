package model

import "encoding/json"

// Installment is a group of satellites deployed by one launch vehicle and
// space-tug pass. Satellites are held in deployment order. An Installment is
// immutable: accessors hand out copies.
type Installment struct {
	satellites   []Satellite
	launchDeltaV float64
	tugDeltaV    float64
}

// NewInstallment copies order so later changes by the caller are not seen.
func NewInstallment(order []Satellite, launchDeltaV, tugDeltaV float64) Installment {
	return Installment{
		satellites:   append([]Satellite(nil), order...),
		launchDeltaV: launchDeltaV,
		tugDeltaV:    tugDeltaV,
	}
}

// Satellites returns the members in deployment order.
func (i Installment) Satellites() []Satellite {
	return append([]Satellite(nil), i.satellites...)
}

// Len is the number of satellites in the installment.
func (i Installment) Len() int { return len(i.satellites) }

// LaunchDeltaV is the ascent cost [m/s] to reach the first satellite's orbit.
func (i Installment) LaunchDeltaV() float64 { return i.launchDeltaV }

// TugDeltaV is the cumulative cost [m/s] of the in-orbit transfers.
func (i Installment) TugDeltaV() float64 { return i.tugDeltaV }

// TotalDeltaV is LaunchDeltaV + TugDeltaV.
func (i Installment) TotalDeltaV() float64 { return i.launchDeltaV + i.tugDeltaV }

type installmentJSON struct {
	Satellites   []Satellite `json:"satellites"`
	LaunchDeltaV float64     `json:"launch_delta_v"`
	TugDeltaV    float64     `json:"tug_delta_v"`
	TotalDeltaV  float64     `json:"total_delta_v"`
}

func (i Installment) MarshalJSON() ([]byte, error) {
	return json.Marshal(installmentJSON{
		Satellites:   i.satellites,
		LaunchDeltaV: i.launchDeltaV,
		TugDeltaV:    i.tugDeltaV,
		TotalDeltaV:  i.TotalDeltaV(),
	})
}

// DeploymentStrategy is the set of installments that together deploy every
// satellite of a candidate exactly once.
type DeploymentStrategy struct {
	installments []Installment
}

// NewDeploymentStrategy copies installments.
func NewDeploymentStrategy(installments []Installment) DeploymentStrategy {
	return DeploymentStrategy{installments: append([]Installment(nil), installments...)}
}

// Installments returns the installments of the strategy.
func (d DeploymentStrategy) Installments() []Installment {
	return append([]Installment(nil), d.installments...)
}

// Launches is the number of installments.
func (d DeploymentStrategy) Launches() int { return len(d.installments) }

// Satellites is the number of satellites across all installments.
func (d DeploymentStrategy) Satellites() int {
	n := 0
	for _, inst := range d.installments {
		n += inst.Len()
	}
	return n
}

// TotalDeltaV sums the launch and tug delta-V of every installment.
func (d DeploymentStrategy) TotalDeltaV() float64 {
	dv := 0.0
	for _, inst := range d.installments {
		dv += inst.TotalDeltaV()
	}
	return dv
}

type strategyJSON struct {
	Launches     int           `json:"launches"`
	TotalDeltaV  float64       `json:"total_delta_v"`
	Installments []Installment `json:"installments"`
}

func (d DeploymentStrategy) MarshalJSON() ([]byte, error) {
	inst := d.installments
	if inst == nil {
		inst = []Installment{}
	}
	return json.Marshal(strategyJSON{
		Launches:     len(d.installments),
		TotalDeltaV:  d.TotalDeltaV(),
		Installments: inst,
	})
}
