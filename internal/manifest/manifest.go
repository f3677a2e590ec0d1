// Package manifest reads constellation candidates from YAML or JSON files.
//
// A manifest lists one or more candidates. Each satellite gives either its
// classical elements or a two-line element set, which is propagated to the
// manifest epoch:
//
//	epoch: 2025-01-01T00:00:00Z
//	launch_site: kourou
//	units: degrees
//	limits:
//	  tug_delta_v: 600
//	candidates:
//	  - name: shell-a
//	    satellites:
//	      - {id: a1, sma: 7000000, inc: 53, raan: 0}
//	      - id: iss
//	        tle:
//	          - "1 25544U ..."
//	          - "2 25544 ..."
//
// A top-level satellites list is shorthand for a single candidate.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/constellation-deployment/core"
	"github.com/signalsfoundry/constellation-deployment/kb"
	"github.com/signalsfoundry/constellation-deployment/model"
	"github.com/signalsfoundry/constellation-deployment/planner"
)

// ErrInvalidManifest is returned for manifests that parse but do not make sense.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest is the file format.
type Manifest struct {
	Name       string      `yaml:"name,omitempty" json:"name,omitempty"`
	Epoch      string      `yaml:"epoch,omitempty" json:"epoch,omitempty"` // RFC 3339
	LaunchSite string      `yaml:"launch_site,omitempty" json:"launch_site,omitempty"`
	Units      string      `yaml:"units,omitempty" json:"units,omitempty"` // radians (default) or degrees
	Limits     *Limits     `yaml:"limits,omitempty" json:"limits,omitempty"`
	Satellites []Satellite `yaml:"satellites,omitempty" json:"satellites,omitempty"`
	Candidates []Candidate `yaml:"candidates,omitempty" json:"candidates,omitempty"`
}

// Limits override planner settings for the manifest. Unset fields keep the
// planner's value.
type Limits struct {
	TugDeltaV           *float64 `yaml:"tug_delta_v,omitempty" json:"tug_delta_v,omitempty"`
	RAANTime            *float64 `yaml:"raan_time,omitempty" json:"raan_time,omitempty"`
	RAANTolerance       *float64 `yaml:"raan_tolerance,omitempty" json:"raan_tolerance,omitempty"`
	LargeGroupThreshold *int     `yaml:"large_group_threshold,omitempty" json:"large_group_threshold,omitempty"`
	MaxSearchSteps      *int     `yaml:"max_search_steps,omitempty" json:"max_search_steps,omitempty"`
}

// Candidate is one constellation design.
type Candidate struct {
	Name       string      `yaml:"name" json:"name"`
	Satellites []Satellite `yaml:"satellites" json:"satellites"`
}

// Satellite is either a set of elements or a TLE. Distances are metres.
type Satellite struct {
	ID          string   `yaml:"id" json:"id"`
	SMA         float64  `yaml:"sma,omitempty" json:"sma,omitempty"`
	Ecc         float64  `yaml:"ecc,omitempty" json:"ecc,omitempty"`
	Inc         float64  `yaml:"inc,omitempty" json:"inc,omitempty"`
	RAAN        float64  `yaml:"raan,omitempty" json:"raan,omitempty"`
	ArgPerigee  float64  `yaml:"arg_perigee,omitempty" json:"arg_perigee,omitempty"`
	TrueAnomaly float64  `yaml:"true_anomaly,omitempty" json:"true_anomaly,omitempty"`
	TLE         []string `yaml:"tle,omitempty" json:"tle,omitempty"`
}

// Resolved is a candidate converted into planner input.
type Resolved struct {
	Name       string
	Satellites []model.Satellite
}

// Load reads and parses the manifest at path.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a YAML or JSON manifest. Unknown fields are rejected.
func Parse(data []byte) (Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return Manifest{}, fmt.Errorf("%w: empty document", ErrInvalidManifest)
		}
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Marshal encodes m as YAML.
func Marshal(m Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}

// Validate checks the manifest structure. Element bounds are checked by Resolve.
func (m Manifest) Validate() error {
	if _, err := m.epoch(); err != nil {
		return err
	}
	switch strings.ToLower(m.Units) {
	case "", "radians", "degrees":
	default:
		return fmt.Errorf("%w: units %q must be radians or degrees", ErrInvalidManifest, m.Units)
	}
	if len(m.Satellites) > 0 && len(m.Candidates) > 0 {
		return fmt.Errorf("%w: use either satellites or candidates, not both", ErrInvalidManifest)
	}
	for _, c := range m.candidates() {
		ids := make(map[string]bool, len(c.Satellites))
		for i, s := range c.Satellites {
			if s.ID == "" {
				return fmt.Errorf("%w: candidate %q satellite %d has no id", ErrInvalidManifest, c.Name, i)
			}
			if ids[s.ID] {
				return fmt.Errorf("%w: candidate %q repeats satellite %q", ErrInvalidManifest, c.Name, s.ID)
			}
			ids[s.ID] = true
			if len(s.TLE) != 0 && len(s.TLE) != 2 {
				return fmt.Errorf("%w: satellite %q tle must have two lines", ErrInvalidManifest, s.ID)
			}
		}
	}
	return nil
}

func (m Manifest) epoch() (time.Time, error) {
	if m.Epoch == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, m.Epoch)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: epoch: %w", ErrInvalidManifest, err)
	}
	return t, nil
}

func (m Manifest) candidates() []Candidate {
	if len(m.Satellites) > 0 {
		name := m.Name
		if name == "" {
			name = "default"
		}
		return []Candidate{{Name: name, Satellites: m.Satellites}}
	}
	return m.Candidates
}

// Resolve converts every candidate into satellites checked against bounds.
// TLEs are propagated to the manifest epoch, or to now when it is unset.
func (m Manifest) Resolve(bounds model.ElementBounds, now time.Time) ([]Resolved, error) {
	at, err := m.epoch()
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = now
	}
	scale := 1.0
	if strings.EqualFold(m.Units, "degrees") {
		scale = math.Pi / 180
	}

	cands := m.candidates()
	out := make([]Resolved, 0, len(cands))
	for _, c := range cands {
		r := Resolved{Name: c.Name, Satellites: make([]model.Satellite, 0, len(c.Satellites))}
		for _, s := range c.Satellites {
			sat, err := s.resolve(bounds, at, scale)
			if err != nil {
				return nil, fmt.Errorf("candidate %q: %w", c.Name, err)
			}
			r.Satellites = append(r.Satellites, sat)
		}
		out = append(out, r)
	}
	return out, nil
}

func (s Satellite) resolve(bounds model.ElementBounds, at time.Time, scale float64) (model.Satellite, error) {
	if len(s.TLE) == 2 {
		el, err := core.ElementsFromTLE(s.TLE[0], s.TLE[1], at, bounds)
		if err != nil {
			return model.Satellite{}, fmt.Errorf("satellite %q: %w", s.ID, err)
		}
		return model.Satellite{ID: s.ID, Elements: el}, nil
	}
	el, err := model.NewOrbitalElements(bounds, s.SMA, s.Ecc,
		s.Inc*scale, s.ArgPerigee*scale, s.RAAN*scale, s.TrueAnomaly*scale)
	if err != nil {
		return model.Satellite{}, fmt.Errorf("satellite %q: %w", s.ID, err)
	}
	return model.Satellite{ID: s.ID, Elements: el}, nil
}

// FromSatellite is the inverse of resolving explicit elements, in radians.
func FromSatellite(s model.Satellite) Satellite {
	return Satellite{
		ID:          s.ID,
		SMA:         s.Elements.SMA(),
		Ecc:         s.Elements.Ecc(),
		Inc:         s.Elements.Inc(),
		RAAN:        s.Elements.RAAN(),
		ArgPerigee:  s.Elements.ArgPerigee(),
		TrueAnomaly: s.Elements.TrueAnomaly(),
	}
}

// Apply overlays the manifest's launch site and limits onto cfg. The launch
// site is looked up in catalog.
func (m Manifest) Apply(cfg planner.Config, catalog *kb.Catalog) (planner.Config, error) {
	if m.LaunchSite != "" {
		if catalog == nil {
			catalog = kb.DefaultCatalog()
		}
		site, err := catalog.LaunchSite(m.LaunchSite)
		if err != nil {
			return planner.Config{}, err
		}
		cfg.LaunchLatitude = site.Latitude
	}
	if l := m.Limits; l != nil {
		if l.TugDeltaV != nil {
			cfg.TugDeltaVLimit = *l.TugDeltaV
		}
		if l.RAANTime != nil {
			cfg.RAANTimeLimit = *l.RAANTime
		}
		if l.RAANTolerance != nil {
			cfg.RAANTolerance = *l.RAANTolerance
		}
		if l.LargeGroupThreshold != nil {
			cfg.LargeGroupThreshold = *l.LargeGroupThreshold
		}
		if l.MaxSearchSteps != nil {
			cfg.MaxSearchSteps = *l.MaxSearchSteps
		}
	}
	if err := cfg.Validate(); err != nil {
		return planner.Config{}, err
	}
	return cfg, nil
}
