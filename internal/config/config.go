// Package config loads process configuration from DEPLOY_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/signalsfoundry/constellation-deployment/kb"
	"github.com/signalsfoundry/constellation-deployment/planner"
)

// Config is the environment configuration shared by the server and the CLI.
// Flags override individual fields.
type Config struct {
	TugDeltaVLimit      float64       `env:"DEPLOY_TUG_DV_LIMIT" envDefault:"2200"`
	RAANTimeLimit       float64       `env:"DEPLOY_RAAN_TIME_LIMIT" envDefault:"604800"`
	RAANTolerance       float64       `env:"DEPLOY_RAAN_TOLERANCE" envDefault:"0.05"`
	LaunchLatitude      float64       `env:"DEPLOY_LAUNCH_LATITUDE" envDefault:"0"`
	LaunchSite          string        `env:"DEPLOY_LAUNCH_SITE"`
	LargeGroupThreshold int           `env:"DEPLOY_LARGE_GROUP_THRESHOLD" envDefault:"5"`
	MaxSearchSteps      int           `env:"DEPLOY_MAX_SEARCH_STEPS" envDefault:"50000000"`
	MaxSearchDuration   time.Duration `env:"DEPLOY_MAX_SEARCH_DURATION" envDefault:"30s"`
	Workers             int           `env:"DEPLOY_WORKERS" envDefault:"0"`

	GRPCAddr    string `env:"DEPLOY_GRPC_ADDR" envDefault:":50061"`
	MetricsAddr string `env:"DEPLOY_METRICS_ADDR" envDefault:":9090"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// PlannerConfig converts cfg into planner settings. A named launch site
// overrides LaunchLatitude and is resolved against catalog.
func (c Config) PlannerConfig(catalog *kb.Catalog) (planner.Config, error) {
	pc := planner.Config{
		TugDeltaVLimit:      c.TugDeltaVLimit,
		RAANTimeLimit:       c.RAANTimeLimit,
		RAANTolerance:       c.RAANTolerance,
		LaunchLatitude:      c.LaunchLatitude,
		LargeGroupThreshold: c.LargeGroupThreshold,
		MaxSearchSteps:      c.MaxSearchSteps,
		MaxSearchDuration:   c.MaxSearchDuration,
		Workers:             c.Workers,
	}
	if c.LaunchSite != "" {
		if catalog == nil {
			catalog = kb.DefaultCatalog()
		}
		site, err := catalog.LaunchSite(c.LaunchSite)
		if err != nil {
			return planner.Config{}, err
		}
		pc.LaunchLatitude = site.Latitude
	}
	if err := pc.Validate(); err != nil {
		return planner.Config{}, err
	}
	return pc, nil
}
