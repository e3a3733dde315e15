package astro

import (
	"math"

	"github.com/litescript/ls-solar/internal/calendar"
)

// SkyCoord holds the Sun's position in equatorial and horizontal
// coordinates.
type SkyCoord struct {
	// Equatorial coordinates (of date)
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)

	// Horizontal coordinates (observer-relative)
	AzDeg float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
	ElDeg float64 // Elevation/Altitude in degrees (0=horizon, 90=zenith)

	// Ecliptic longitude the position was derived from
	LongitudeDeg float64
}

// SiderealFromMoment returns mean sidereal time at Greenwich in degrees, in
// [0, 360), for Universal moment t.
func SiderealFromMoment(t calendar.Moment) float64 {
	c := float64(t-J2000) / 36525
	return calendar.Mod(calendar.Poly(c, []float64{
		280.46061837, 36525 * 360.98564736629, 0.000387933, -1.0 / 38710000,
	}), 360)
}

// EquatorialToHorizontal fills in Az/El of eq for an observer at loc and
// Universal moment t. RA/Dec are preserved.
//
// Uses standard astronomical conventions:
//   - Azimuth: 0° = North, 90° = East, 180° = South, 270° = West
//   - Elevation: 0° = horizon, 90° = zenith
func EquatorialToHorizontal(eq SkyCoord, loc Location, t calendar.Moment) SkyCoord {
	lat := degToRad(loc.Latitude)
	dec := degToRad(eq.DecDeg)

	// Hour angle = LST - RA
	ha := degToRad(SiderealFromMoment(t) + loc.Longitude - eq.RAdeg)

	alt := math.Asin(math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(ha))

	// atan2 form measures from south; shift to north-based azimuth
	az := math.Atan2(math.Sin(ha), math.Cos(ha)*math.Sin(lat)-math.Tan(dec)*math.Cos(lat))

	out := eq
	out.AzDeg = calendar.Mod(radToDeg(az)+180, 360)
	out.ElDeg = radToDeg(alt)
	return out
}

// SunPosition returns the Sun's position for an observer at loc and
// Universal moment t.
func SunPosition(t calendar.Moment, loc Location) SkyCoord {
	lambda := SolarLongitude(t)
	eq := SkyCoord{
		RAdeg:        RightAscension(t, 0, lambda),
		DecDeg:       Declination(t, 0, lambda),
		LongitudeDeg: lambda,
	}
	return EquatorialToHorizontal(eq, loc, t)
}

// SolarAltitude returns the geometric altitude of the Sun in degrees.
func SolarAltitude(t calendar.Moment, loc Location) float64 {
	return SunPosition(t, loc).ElDeg
}

// SolarAzimuth returns the azimuth of the Sun in degrees from north.
func SolarAzimuth(t calendar.Moment, loc Location) float64 {
	return SunPosition(t, loc).AzDeg
}
