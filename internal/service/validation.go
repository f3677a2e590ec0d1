package service

import (
	"fmt"
	"math"
)

// Request size limits. Planning time grows with the Bell number of the
// candidate size, so large candidates are refused up front.
const (
	MaxCandidates             = 256
	MaxSatellitesPerCandidate = 64
)

// ValidatePlanRequest checks the structure of req. Orbital elements are
// checked later against the element bounds.
func ValidatePlanRequest(req *PlanRequest) error {
	if req == nil {
		return &ValidationError{Violations: []FieldViolation{{Field: "request", Description: "is required"}}}
	}

	verr := &ValidationError{}
	if math.IsNaN(req.Penalty) || math.IsInf(req.Penalty, 0) || req.Penalty < 0 {
		verr.add("penalty", "must be a finite value >= 0, got %v", req.Penalty)
	}

	m := req.Manifest
	if err := m.Validate(); err != nil {
		verr.add("manifest", "%v", err)
	}

	switch {
	case len(m.Satellites) == 0 && len(m.Candidates) == 0:
		verr.add("manifest", "at least one candidate or satellite is required")
	case len(m.Candidates) > MaxCandidates:
		verr.add("manifest.candidates", "at most %d candidates are allowed, got %d", MaxCandidates, len(m.Candidates))
	}
	if n := len(m.Satellites); n > MaxSatellitesPerCandidate {
		verr.add("manifest.satellites", "at most %d satellites are allowed, got %d", MaxSatellitesPerCandidate, n)
	}
	for i, c := range m.Candidates {
		if c.Name == "" {
			verr.add(fmt.Sprintf("manifest.candidates[%d].name", i), "is required")
		}
		if n := len(c.Satellites); n > MaxSatellitesPerCandidate {
			verr.add(fmt.Sprintf("manifest.candidates[%d].satellites", i),
				"at most %d satellites are allowed, got %d", MaxSatellitesPerCandidate, n)
		}
	}
	return verr.orNil()
}
