package service

import (
	"github.com/signalsfoundry/constellation-deployment/internal/manifest"
	"github.com/signalsfoundry/constellation-deployment/kb"
	"github.com/signalsfoundry/constellation-deployment/model"
)

// PlanRequest asks for deployments of every candidate in Manifest. Penalty
// is the objective reported for infeasible candidates.
type PlanRequest struct {
	Manifest manifest.Manifest `json:"manifest"`
	Penalty  float64           `json:"penalty,omitempty"`
}

// PlanResponse carries one result per candidate, in request order.
type PlanResponse struct {
	Candidates []CandidatePlan `json:"candidates"`
}

// CandidatePlan is the outcome for one candidate. Feasible is false when the
// planner found no deployment; Error then explains why.
type CandidatePlan struct {
	Name         string            `json:"name"`
	Feasible     bool              `json:"feasible"`
	Error        string            `json:"error,omitempty"`
	Objective    float64           `json:"objective"`
	Launches     int               `json:"launches"`
	TotalDeltaV  float64           `json:"total_delta_v"`
	Installments []InstallmentPlan `json:"installments,omitempty"`
}

// InstallmentPlan is one launch and its deployment order.
type InstallmentPlan struct {
	Satellites   []manifest.Satellite `json:"satellites"`
	LaunchDeltaV float64              `json:"launch_delta_v"`
	TugDeltaV    float64              `json:"tug_delta_v"`
	TotalDeltaV  float64              `json:"total_delta_v"`
}

// ListLaunchSitesRequest is empty.
type ListLaunchSitesRequest struct{}

// ListLaunchSitesResponse lists the catalog sorted by name.
type ListLaunchSitesResponse struct {
	Sites []kb.LaunchSite `json:"sites"`
}

func newCandidatePlan(name string, strategy model.DeploymentStrategy) CandidatePlan {
	out := CandidatePlan{
		Name:        name,
		Feasible:    true,
		Objective:   strategy.TotalDeltaV(),
		Launches:    strategy.Launches(),
		TotalDeltaV: strategy.TotalDeltaV(),
	}
	for _, inst := range strategy.Installments() {
		ip := InstallmentPlan{
			LaunchDeltaV: inst.LaunchDeltaV(),
			TugDeltaV:    inst.TugDeltaV(),
			TotalDeltaV:  inst.TotalDeltaV(),
		}
		for _, s := range inst.Satellites() {
			ip.Satellites = append(ip.Satellites, manifest.FromSatellite(s))
		}
		out.Installments = append(out.Installments, ip)
	}
	return out
}
