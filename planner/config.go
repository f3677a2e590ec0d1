package planner

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/signalsfoundry/constellation-deployment/core"
)

// Config holds the limits and search settings of a Planner.
type Config struct {
	TugDeltaVLimit float64 // m/s available to the tug of one installment
	RAANTimeLimit  float64 // s allowed for differential nodal drift
	RAANTolerance  float64 // rad of node separation accepted without drift
	LaunchLatitude float64 // rad

	// LargeGroupThreshold is K: satellites sharing an exact (inc, raan) plane
	// in a bucket of more than K members are tried as one pre-formed group.
	LargeGroupThreshold int

	// MaxSearchSteps and MaxSearchDuration bound the combinatorial search of
	// one Plan call. Zero disables the respective limit.
	MaxSearchSteps    int
	MaxSearchDuration time.Duration

	// Workers bounds PlanBatch concurrency. Zero means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the reference planner settings.
func DefaultConfig() Config {
	return Config{
		TugDeltaVLimit:      2200,
		RAANTimeLimit:       604800,
		RAANTolerance:       core.DefaultRAANTolerance,
		LaunchLatitude:      0,
		LargeGroupThreshold: 5,
		MaxSearchSteps:      50_000_000,
		MaxSearchDuration:   30 * time.Second,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case !nonNegative(c.TugDeltaVLimit):
		return fmt.Errorf("%w: tug delta-V limit %v must be >= 0", ErrInvalidConfig, c.TugDeltaVLimit)
	case !nonNegative(c.RAANTimeLimit):
		return fmt.Errorf("%w: RAAN time limit %v must be >= 0", ErrInvalidConfig, c.RAANTimeLimit)
	case !nonNegative(c.RAANTolerance) || c.RAANTolerance > math.Pi:
		return fmt.Errorf("%w: RAAN tolerance %v not in [0, pi]", ErrInvalidConfig, c.RAANTolerance)
	case math.IsNaN(c.LaunchLatitude) || math.Abs(c.LaunchLatitude) > math.Pi/2:
		return fmt.Errorf("%w: launch latitude %v not in [-pi/2, pi/2]", ErrInvalidConfig, c.LaunchLatitude)
	case c.LargeGroupThreshold < 1:
		return fmt.Errorf("%w: large group threshold %d must be >= 1", ErrInvalidConfig, c.LargeGroupThreshold)
	case c.MaxSearchSteps < 0:
		return fmt.Errorf("%w: max search steps %d must be >= 0", ErrInvalidConfig, c.MaxSearchSteps)
	case c.MaxSearchDuration < 0:
		return fmt.Errorf("%w: max search duration %v must be >= 0", ErrInvalidConfig, c.MaxSearchDuration)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d must be >= 0", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Limits returns the group constraints the planner enforces.
func (c Config) Limits() core.Limits {
	return core.Limits{
		TugDeltaV:     c.TugDeltaVLimit,
		RAANTime:      c.RAANTimeLimit,
		RAANTolerance: c.RAANTolerance,
	}
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// +Inf is a valid "unlimited" setting; NaN and negatives are not.
func nonNegative(v float64) bool {
	return !math.IsNaN(v) && v >= 0
}
