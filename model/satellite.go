package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Satellite is one manifested satellite of a constellation candidate.
// It is a plain value: two satellites with the same ID and elements are equal.
type Satellite struct {
	ID       string
	Elements OrbitalElements
}

// NewCircularSatellite is a convenience for circular orbits with default bounds.
func NewCircularSatellite(id string, sma, inc, raan float64) (Satellite, error) {
	el, err := CircularElements(sma, inc, raan)
	if err != nil {
		return Satellite{}, fmt.Errorf("satellite %q: %w", id, err)
	}
	return Satellite{ID: id, Elements: el}, nil
}

func (s Satellite) SMA() float64  { return s.Elements.SMA() }
func (s Satellite) Ecc() float64  { return s.Elements.Ecc() }
func (s Satellite) Inc() float64  { return s.Elements.Inc() }
func (s Satellite) RAAN() float64 { return s.Elements.RAAN() }

type satelliteJSON struct {
	ID          string  `json:"id,omitempty"`
	SMA         float64 `json:"sma"`
	Ecc         float64 `json:"ecc"`
	Inc         float64 `json:"inc"`
	ArgPerigee  float64 `json:"arg_perigee"`
	RAAN        float64 `json:"raan"`
	TrueAnomaly float64 `json:"true_anomaly"`
}

// MarshalJSON encodes the satellite with its elements flattened.
func (s Satellite) MarshalJSON() ([]byte, error) {
	return json.Marshal(satelliteJSON{
		ID:          s.ID,
		SMA:         s.Elements.SMA(),
		Ecc:         s.Elements.Ecc(),
		Inc:         s.Elements.Inc(),
		ArgPerigee:  s.Elements.ArgPerigee(),
		RAAN:        s.Elements.RAAN(),
		TrueAnomaly: s.Elements.TrueAnomaly(),
	})
}

// Element names one classical orbital element.
type Element int

const (
	ElementSMA Element = iota
	ElementEcc
	ElementInc
	ElementRAAN
	ElementArgPerigee
	ElementTrueAnomaly
)

func (e Element) String() string {
	switch e {
	case ElementSMA:
		return "sma"
	case ElementEcc:
		return "ecc"
	case ElementInc:
		return "inc"
	case ElementRAAN:
		return "raan"
	case ElementArgPerigee:
		return "arg_perigee"
	case ElementTrueAnomaly:
		return "true_anomaly"
	default:
		return fmt.Sprintf("Element(%d)", int(e))
	}
}

// Of returns the value of element e for satellite s.
func (e Element) Of(s Satellite) float64 {
	switch e {
	case ElementSMA:
		return s.Elements.SMA()
	case ElementEcc:
		return s.Elements.Ecc()
	case ElementInc:
		return s.Elements.Inc()
	case ElementRAAN:
		return s.Elements.RAAN()
	case ElementArgPerigee:
		return s.Elements.ArgPerigee()
	case ElementTrueAnomaly:
		return s.Elements.TrueAnomaly()
	default:
		panic(fmt.Sprintf("model: unknown orbital element %d", int(e)))
	}
}

// SortBy returns a copy of sats in ascending order of element e.
// Satellites with equal values keep their relative order.
func SortBy(sats []Satellite, e Element) []Satellite {
	out := append([]Satellite(nil), sats...)
	sort.SliceStable(out, func(i, j int) bool {
		return e.Of(out[i]) < e.Of(out[j])
	})
	return out
}
