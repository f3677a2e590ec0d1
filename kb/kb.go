package kb

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrLaunchSiteExists is returned when a site name is registered twice.
	ErrLaunchSiteExists = errors.New("launch site already exists")
	// ErrLaunchSiteNotFound is returned for unknown site names.
	ErrLaunchSiteNotFound = errors.New("launch site not found")
	// ErrInvalidLaunchSite is returned for sites with a bad name or latitude.
	ErrInvalidLaunchSite = errors.New("invalid launch site")
)

// LaunchSite is a named launch location. Only latitude matters for ascent
// delta-V; longitude is kept for display.
type LaunchSite struct {
	Name      string  `yaml:"name" json:"name"`
	Latitude  float64 `yaml:"latitude" json:"latitude"`   // radians
	Longitude float64 `yaml:"longitude" json:"longitude"` // radians
}

// Catalog is an in-memory, thread-safe registry of launch sites.
// Lookups are case-insensitive.
type Catalog struct {
	mu    sync.RWMutex
	sites map[string]LaunchSite
}

// NewCatalog constructs an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{sites: make(map[string]LaunchSite)}
}

// DefaultCatalog returns a catalog seeded with well-known orbital launch sites.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, s := range []struct {
		name     string
		lat, lon float64 // degrees
	}{
		{"cape-canaveral", 28.5, -80.6},
		{"vandenberg", 34.7, -120.6},
		{"kourou", 5.2, -52.8},
		{"baikonur", 45.6, 63.3},
		{"tanegashima", 30.4, 131.0},
		{"mahia", -39.3, 177.9},
		{"sriharikota", 13.7, 80.2},
		{"jiuquan", 40.96, 100.3},
	} {
		// seed data is known-good
		_ = c.AddLaunchSite(LaunchSite{
			Name:      s.name,
			Latitude:  s.lat * math.Pi / 180,
			Longitude: s.lon * math.Pi / 180,
		})
	}
	return c
}

// AddLaunchSite registers a new site. It returns an error if the name already
// exists or the latitude is outside [-pi/2, pi/2].
func (c *Catalog) AddLaunchSite(s LaunchSite) error {
	key := normalize(s.Name)
	if key == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidLaunchSite)
	}
	if math.IsNaN(s.Latitude) || math.Abs(s.Latitude) > math.Pi/2 {
		return fmt.Errorf("%w: latitude %g rad out of range for %q", ErrInvalidLaunchSite, s.Latitude, s.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sites[key]; exists {
		return fmt.Errorf("%w: %q", ErrLaunchSiteExists, s.Name)
	}
	c.sites[key] = s
	return nil
}

// LaunchSite returns the site registered under name.
func (c *Catalog) LaunchSite(name string) (LaunchSite, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.sites[normalize(name)]
	if !ok {
		return LaunchSite{}, fmt.Errorf("%w: %q", ErrLaunchSiteNotFound, name)
	}
	return s, nil
}

// ListLaunchSites returns a snapshot of all sites sorted by name.
func (c *Catalog) ListLaunchSites() []LaunchSite {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]LaunchSite, 0, len(c.sites))
	for _, s := range c.sites {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return normalize(res[i].Name) < normalize(res[j].Name) })
	return res
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
