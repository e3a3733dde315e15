// Package astro provides the solar ephemeris: time frame conversions, the
// ephemeris correction, the solar position model and the event solvers
// built on it.
package astro

import (
	"fmt"
	"strings"
)

// Location is an observer on the Earth's surface.
type Location struct {
	Name      string  // Optional name for the site
	Latitude  float64 // Latitude in degrees (north positive)
	Longitude float64 // Longitude in degrees (east positive)
	Elevation float64 // Elevation above sea level in meters
	Zone      float64 // Standard time offset from UTC in hours
}

// String implements fmt.Stringer.
func (l Location) String() string {
	name := l.Name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("%s (%.5f, %.5f, %gm, UTC%+g)", name, l.Latitude, l.Longitude, l.Elevation, l.Zone)
}

// Reference locations.
var (
	Urbana    = Location{Name: "Urbana", Latitude: 40.11059, Longitude: -88.20727, Elevation: 222, Zone: -6}
	Mecca     = Location{Name: "Mecca", Latitude: 21.42664, Longitude: 39.82563, Elevation: 0, Zone: 2}
	Jerusalem = Location{Name: "Jerusalem", Latitude: 31.76904, Longitude: 35.21633, Elevation: 0, Zone: 2}
	// Tehran elevation is taken as 0 m rather than the true ~1100 m so that
	// calendar epochs anchored there match the published tables.
	Tehran = Location{Name: "Tehran", Latitude: 35.696111, Longitude: 51.423056, Elevation: 0, Zone: 3.5}
	Haifa  = Location{Name: "Haifa", Latitude: 32.81841, Longitude: 34.9885, Elevation: 0, Zone: 2}
)

var presets = []Location{Urbana, Mecca, Jerusalem, Tehran, Haifa}

// Presets returns the reference locations.
func Presets() []Location {
	out := make([]Location, len(presets))
	copy(out, presets)
	return out
}

// LookupLocation finds a reference location by name, ignoring case.
func LookupLocation(name string) (Location, bool) {
	for _, l := range presets {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Location{}, false
}
