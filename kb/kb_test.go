package kb

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
)

func TestAddAndGetLaunchSite(t *testing.T) {
	c := NewCatalog()
	if err := c.AddLaunchSite(LaunchSite{Name: "Test-Range", Latitude: 0.5}); err != nil {
		t.Fatalf("AddLaunchSite error: %v", err)
	}
	got, err := c.LaunchSite("  test-range ")
	if err != nil {
		t.Fatalf("LaunchSite error: %v", err)
	}
	if got.Latitude != 0.5 {
		t.Fatalf("Latitude = %v, want 0.5", got.Latitude)
	}
}

func TestAddLaunchSiteDuplicate(t *testing.T) {
	c := NewCatalog()
	if err := c.AddLaunchSite(LaunchSite{Name: "site"}); err != nil {
		t.Fatalf("first AddLaunchSite error: %v", err)
	}
	if err := c.AddLaunchSite(LaunchSite{Name: "SITE"}); !errors.Is(err, ErrLaunchSiteExists) {
		t.Fatalf("duplicate AddLaunchSite: got %v, want ErrLaunchSiteExists", err)
	}
}

func TestAddLaunchSiteValidation(t *testing.T) {
	c := NewCatalog()
	cases := []LaunchSite{
		{Name: ""},
		{Name: "pole-plus", Latitude: math.Pi/2 + 0.01},
		{Name: "nan", Latitude: math.NaN()},
	}
	for _, s := range cases {
		if err := c.AddLaunchSite(s); !errors.Is(err, ErrInvalidLaunchSite) {
			t.Fatalf("AddLaunchSite(%+v): got %v, want ErrInvalidLaunchSite", s, err)
		}
	}
}

func TestUnknownLaunchSite(t *testing.T) {
	if _, err := DefaultCatalog().LaunchSite("atlantis"); !errors.Is(err, ErrLaunchSiteNotFound) {
		t.Fatalf("got %v, want ErrLaunchSiteNotFound", err)
	}
}

func TestDefaultCatalogSeeds(t *testing.T) {
	c := DefaultCatalog()
	kourou, err := c.LaunchSite("Kourou")
	if err != nil {
		t.Fatalf("LaunchSite(Kourou): %v", err)
	}
	if deg := kourou.Latitude * 180 / math.Pi; math.Abs(deg-5.2) > 1e-9 {
		t.Fatalf("Kourou latitude = %v deg, want 5.2", deg)
	}
	sites := c.ListLaunchSites()
	if len(sites) != 8 {
		t.Fatalf("ListLaunchSites len = %d, want 8", len(sites))
	}
	for i := 1; i < len(sites); i++ {
		if sites[i-1].Name > sites[i].Name {
			t.Fatalf("ListLaunchSites not sorted: %q before %q", sites[i-1].Name, sites[i].Name)
		}
	}
}

func TestCatalogConcurrentAccess(t *testing.T) {
	c := NewCatalog()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.AddLaunchSite(LaunchSite{Name: fmt.Sprintf("site-%d", i)})
		}()
		go func() {
			defer wg.Done()
			_ = c.ListLaunchSites()
		}()
	}
	wg.Wait()
	if n := len(c.ListLaunchSites()); n != 20 {
		t.Fatalf("ListLaunchSites len = %d, want 20", n)
	}
}
