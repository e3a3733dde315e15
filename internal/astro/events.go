package astro

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/ls-solar/internal/calendar"
)

const (
	// EarthRadius in meters, used for the dip of the horizon.
	EarthRadius = 6.372e6

	// solarSemiDiameter is the apparent radius of the Sun's disk in degrees.
	solarSemiDiameter = 16.0 / 60
)

// Refraction returns the depression of the visible horizon in degrees at
// loc: mean refraction plus the dip due to the observer's elevation.
// Elevations below sea level are treated as sea level.
func Refraction(t calendar.Moment, loc Location) float64 {
	h := math.Max(0, loc.Elevation)
	dip := radToDeg(math.Acos(EarthRadius / (EarthRadius + h)))
	return 34.0/60 + dip + 19.0/3600*math.Sqrt(h)
}

// Twilight is a named solar depression used for dawn and dusk.
type Twilight int

const (
	Civil Twilight = iota
	Nautical
	Astronomical
)

// Depression returns the twilight angle below the horizon in degrees.
func (tw Twilight) Depression() float64 {
	switch tw {
	case Nautical:
		return 12
	case Astronomical:
		return 18
	default:
		return 6
	}
}

func (tw Twilight) String() string {
	switch tw {
	case Civil:
		return "civil"
	case Nautical:
		return "nautical"
	case Astronomical:
		return "astronomical"
	default:
		return fmt.Sprintf("Twilight(%d)", int(tw))
	}
}

// ParseTwilight parses "civil", "nautical" or "astronomical".
func ParseTwilight(s string) (Twilight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "civil", "":
		return Civil, nil
	case "nautical":
		return Nautical, nil
	case "astronomical":
		return Astronomical, nil
	default:
		return Civil, fmt.Errorf("unknown twilight %q", s)
	}
}

// Dawn returns the Standard time on RD date when the Sun rises through
// alpha degrees below the horizon at loc.
func Dawn(date int, loc Location, alpha float64) (calendar.Moment, bool) {
	approx := UniversalFromLocal(calendar.Moment(date)+0.25, loc)
	t, ok := MomentOfDepression(approx, loc, alpha, Morning)
	if !ok {
		return 0, false
	}
	return StandardFromUniversal(t, loc), true
}

// Dusk returns the Standard time on RD date when the Sun sets through
// alpha degrees below the horizon at loc.
func Dusk(date int, loc Location, alpha float64) (calendar.Moment, bool) {
	approx := UniversalFromLocal(calendar.Moment(date)+0.75, loc)
	t, ok := MomentOfDepression(approx, loc, alpha, Evening)
	if !ok {
		return 0, false
	}
	return StandardFromUniversal(t, loc), true
}

// Sunrise returns the Standard time of sunrise (upper limb on the visible
// horizon) on RD date at loc.
func Sunrise(date int, loc Location) (calendar.Moment, bool) {
	alpha := Refraction(calendar.Moment(date)+0.25, loc) + solarSemiDiameter
	return Dawn(date, loc, alpha)
}

// Sunset returns the Standard time of sunset on RD date at loc.
func Sunset(date int, loc Location) (calendar.Moment, bool) {
	alpha := Refraction(calendar.Moment(date)+0.75, loc) + solarSemiDiameter
	return Dusk(date, loc, alpha)
}

// Event is an optional Standard time. Valid is false when the Sun never
// reaches the event's depression that day.
type Event struct {
	Time  calendar.Moment
	Valid bool
}

func newEvent(t calendar.Moment, ok bool) Event {
	return Event{Time: t, Valid: ok}
}

// DayEvents collects the solar events of one RD date at a location. All
// times are Standard time.
type DayEvents struct {
	Date     int
	Location Location
	Twilight Twilight
	Dawn     Event
	Sunrise  Event
	Noon     calendar.Moment
	Sunset   Event
	Dusk     Event
}

// ComputeDayEvents evaluates dawn, sunrise, apparent noon, sunset and dusk
// for RD date at loc.
func ComputeDayEvents(date int, loc Location, tw Twilight) DayEvents {
	alpha := tw.Depression()
	return DayEvents{
		Date:     date,
		Location: loc,
		Twilight: tw,
		Dawn:     newEvent(Dawn(date, loc, alpha)),
		Sunrise:  newEvent(Sunrise(date, loc)),
		Noon:     Midday(date, loc),
		Sunset:   newEvent(Sunset(date, loc)),
		Dusk:     newEvent(Dusk(date, loc, alpha)),
	}
}

// DayLength returns hours between sunrise and sunset. Without both events
// it returns 24 if the Sun is up at noon and 0 otherwise.
func (d DayEvents) DayLength() float64 {
	if d.Sunrise.Valid && d.Sunset.Valid {
		return float64(d.Sunset.Time-d.Sunrise.Time) * 24
	}
	if SolarAltitude(UniversalFromStandard(d.Noon, d.Location), d.Location) > 0 {
		return 24
	}
	return 0
}
