package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/signalsfoundry/constellation-deployment/internal/service"
	"github.com/signalsfoundry/constellation-deployment/kb"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func ms(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePlanTables(w io.Writer, resp *service.PlanResponse) error {
	summary := newTable("CANDIDATE", "FEASIBLE", "LAUNCHES", "TOTAL DV (m/s)", "OBJECTIVE")
	for _, c := range resp.Candidates {
		summary.Row(c.Name, strconv.FormatBool(c.Feasible), strconv.Itoa(c.Launches), ms(c.TotalDeltaV), ms(c.Objective))
	}
	if _, err := fmt.Fprintln(w, summary.String()); err != nil {
		return err
	}

	for _, c := range resp.Candidates {
		if !c.Feasible {
			if _, err := fmt.Fprintf(w, "\n%s\n%s\n", titleStyle.Render(c.Name), c.Error); err != nil {
				return err
			}
			continue
		}
		t := newTable("#", "DEPLOYMENT ORDER", "LAUNCH DV", "TUG DV", "TOTAL DV")
		for i, inst := range c.Installments {
			ids := make([]string, len(inst.Satellites))
			for j, s := range inst.Satellites {
				ids[j] = s.ID
			}
			t.Row(strconv.Itoa(i+1), strings.Join(ids, " > "), ms(inst.LaunchDeltaV), ms(inst.TugDeltaV), ms(inst.TotalDeltaV))
		}
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", titleStyle.Render(c.Name), t.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeCheckTable(w io.Writer, res candidateCheck) error {
	t := newTable("A", "B", "RAAN GAP (deg)", "RAAN OK", "PAIR TUG DV", "FITS")
	for _, p := range res.Pairs {
		t.Row(p.A, p.B, strconv.FormatFloat(p.RAANGapDeg, 'f', 2, 64), strconv.FormatBool(p.Compatible), ms(p.TugDeltaV), strconv.FormatBool(p.Fits))
	}
	oneLaunch := res.OneLaunch
	if res.OneLaunch == "yes" {
		oneLaunch += " (" + ms(res.OneLaunchDV) + " m/s)"
	}
	_, err := fmt.Fprintf(w, "%s  satellites=%d  plane-change lower bound=%s m/s  one launch=%s\n%s\n\n",
		titleStyle.Render(res.Name), res.Satellites, ms(res.LowerBound), oneLaunch, t.String())
	return err
}

func writeSitesTable(w io.Writer, sites []kb.LaunchSite) error {
	t := newTable("SITE", "LATITUDE (deg)", "LONGITUDE (deg)")
	for _, s := range sites {
		t.Row(s.Name,
			strconv.FormatFloat(s.Latitude*180/math.Pi, 'f', 2, 64),
			strconv.FormatFloat(s.Longitude*180/math.Pi, 'f', 2, 64))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}
