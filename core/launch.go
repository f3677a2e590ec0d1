package core

import "math"

// Ascent is the burnout delta-V of a direct ascent into an orbital plane.
//
// A plane of inclination i can be entered from a site at latitude L on two
// azimuths: beta = asin(cos i / cos L), crossing the site northbound, and
// pi - beta, crossing it southbound. Both totals are reported; planners use
// the smaller one.
type Ascent struct {
	Northbound float64 // m/s, azimuth beta
	Southbound float64 // m/s, azimuth pi - beta
	Azimuth    float64 // beta, radians from north

	// PlaneChange is the part of both totals spent on a plane change after
	// burnout. It is non-zero only when the inclination cannot be reached
	// directly from the site, that is when inc < |lat| or inc > pi - |lat|.
	// The vehicle then flies to the closest reachable inclination and turns
	// the rest at burnout velocity.
	PlaneChange float64
}

// Min is the cheaper of the two azimuths.
func (a Ascent) Min() float64 {
	return math.Min(a.Northbound, a.Southbound)
}

// LaunchAscent decomposes the burnout velocity into topocentric-horizon
// components (south, east, zenith) relative to the rotating launch site and
// returns the magnitude for each azimuth. Angles are radians.
func LaunchAscent(inc, launchLatitude, burnoutVelocity, flightPathAngle float64) Ascent {
	lat := math.Abs(launchLatitude)
	reachable := math.Min(math.Max(inc, lat), math.Pi-lat)

	var planeChange float64
	if reachable != inc {
		planeChange = SimplePlaneChange(burnoutVelocity, math.Abs(inc-reachable))
	}

	sinAz := math.Cos(reachable) / math.Cos(lat)
	sinAz = math.Max(-1, math.Min(1, sinAz))
	az := math.Asin(sinAz)

	siteVelocity := EarthRotationRate * EarthRadius * math.Cos(launchLatitude)
	return Ascent{
		Northbound:  ascentMagnitude(burnoutVelocity, az, flightPathAngle, siteVelocity) + planeChange,
		Southbound:  ascentMagnitude(burnoutVelocity, math.Pi-az, flightPathAngle, siteVelocity) + planeChange,
		Azimuth:     az,
		PlaneChange: planeChange,
	}
}

func ascentMagnitude(v, azimuth, flightPathAngle, siteVelocity float64) float64 {
	horizontal := v * math.Cos(flightPathAngle)
	south := -horizontal * math.Cos(azimuth)
	east := horizontal*math.Sin(azimuth) - siteVelocity
	zenith := v * math.Sin(flightPathAngle)
	return math.Sqrt(south*south + east*east + zenith*zenith)
}
