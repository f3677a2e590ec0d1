package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalsfoundry/constellation-deployment/internal/service"
)

const testManifest = `
limits:
  tug_delta_v: 10
candidates:
  - name: one-plane
    satellites:
      - {id: a, sma: 7000000, inc: 0.9, raan: 0}
      - {id: b, sma: 7000000, inc: 0.9, raan: 0.01}
  - name: two-planes
    satellites:
      - {id: low-inc, sma: 7000000, inc: 0.3}
      - {id: high-inc, sma: 7000000, inc: 1.3}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPlan_JSON(t *testing.T) {
	path := writeFile(t, "candidates.yaml", testManifest)

	out, err := execute(t, "plan", path, "-o", "json")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	var resp service.PlanResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(resp.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(resp.Candidates))
	}
	if got := resp.Candidates[0].Launches; got != 1 {
		t.Fatalf("one-plane launches = %d, want 1", got)
	}
	if got := resp.Candidates[1].Launches; got != 2 {
		t.Fatalf("two-planes launches = %d, want 2", got)
	}
}

func TestPlan_Table(t *testing.T) {
	path := writeFile(t, "candidates.yaml", testManifest)

	out, err := execute(t, "plan", path)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, want := range []string{"CANDIDATE", "one-plane", "two-planes", "DEPLOYMENT ORDER", "low-inc"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlan_Errors(t *testing.T) {
	path := writeFile(t, "candidates.yaml", testManifest)

	if _, err := execute(t, "plan", path, "-o", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, err := execute(t, "plan", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if _, err := execute(t, "plan"); err == nil {
		t.Fatal("expected error without a manifest argument")
	}
}

func TestCheck(t *testing.T) {
	path := writeFile(t, "candidates.yaml", testManifest)

	out, err := execute(t, "check", path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "one launch=yes") {
		t.Fatalf("expected one-plane to fit one launch:\n%s", out)
	}
	if !strings.Contains(out, "one launch=no") {
		t.Fatalf("expected two-planes not to fit one launch:\n%s", out)
	}
}

func TestPropellant(t *testing.T) {
	out, err := execute(t, "propellant", "--dv", "1000", "--mass", "1000", "--isp", "300")
	if err != nil {
		t.Fatalf("propellant: %v", err)
	}
	if !strings.Contains(out, "propellant: 288.16 kg") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	if _, err := execute(t, "propellant", "--dv", "1000"); err == nil {
		t.Fatal("expected error without mass and isp")
	}
}

func TestPropellant_Vehicle(t *testing.T) {
	path := writeFile(t, "vehicle.yaml", `
stages:
  - {dry_mass: 1000, wet_mass: 10000, propellant: {name: kerolox, isp: 300}}
  - {dry_mass: 200, wet_mass: 2000, propellant: {name: hydrolox, isp: 350}}
`)
	out, err := execute(t, "propellant", "--vehicle", path)
	if err != nil {
		t.Fatalf("propellant: %v", err)
	}
	if !strings.Contains(out, "delta-v: 11981.7 m/s") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSites(t *testing.T) {
	out, err := execute(t, "sites")
	if err != nil {
		t.Fatalf("sites: %v", err)
	}
	if !strings.Contains(out, "kourou") || !strings.Contains(out, "5.20") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
