// Package crosscheck compares the solar engine against independent
// reference implementations: NOAA sunrise/sunset and Meeus equinoxes.
package crosscheck

import (
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/solstice"
	"github.com/nathan-osman/go-sunrise"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/calendar"
)

// Default tolerances. The NOAA algorithm uses a fixed 0.833 degree
// horizon while the engine adds the dip for the observer's elevation.
const (
	DefaultEventTolerance  = 6 * time.Minute
	DefaultSeasonTolerance = 5 * time.Minute
)

// Comparison is one engine result set against a reference.
type Comparison struct {
	Name      string
	Ours      time.Time
	Reference time.Time
	Diff      time.Duration // Ours - Reference
	Skipped   bool          // either side has no event
	OK        bool
}

func compare(name string, ours, ref time.Time, oursOK bool, tol time.Duration) Comparison {
	c := Comparison{Name: name, Ours: ours, Reference: ref}
	if !oursOK || ref.IsZero() {
		c.Skipped = true
		// Agreeing that there is no event is a pass.
		c.OK = !oursOK && ref.IsZero()
		return c
	}
	c.Diff = ours.Sub(ref)
	c.OK = c.Diff.Abs() <= tol
	return c
}

func utc(t calendar.Moment, loc astro.Location) time.Time {
	return astro.UniversalFromStandard(t, loc).Time()
}

// Events compares sunrise, sunset and solar noon on RD date at loc with
// github.com/nathan-osman/go-sunrise.
func Events(date int, loc astro.Location, tol time.Duration) []Comparison {
	year, month, day := calendar.GregorianFromFixed(date)
	refRise, refSet := sunrise.SunriseSunset(loc.Latitude, loc.Longitude, year, time.Month(month), day)

	rise, riseOK := astro.Sunrise(date, loc)
	set, setOK := astro.Sunset(date, loc)
	noon := astro.Midday(date, loc)

	var refNoon time.Time
	if !refRise.IsZero() && !refSet.IsZero() {
		refNoon = refRise.Add(refSet.Sub(refRise) / 2)
	}

	return []Comparison{
		compare("sunrise", utc(rise, loc), refRise, riseOK, tol),
		compare("sunset", utc(set, loc), refSet, setOK, tol),
		compare("noon", utc(noon, loc), refNoon, true, tol),
	}
}

// MeeusSeason returns the Universal time of the equinox or solstice at
// solar longitude lambda in year, per Meeus chapter 27.
func MeeusSeason(year int, lambda float64) time.Time {
	var jde float64
	switch lambda {
	case astro.Summer:
		jde = solstice.June(year)
	case astro.Autumn:
		jde = solstice.September(year)
	case astro.Winter:
		jde = solstice.December(year)
	default:
		jde = solstice.March(year)
	}
	return astro.UniversalFromDynamical(MomentFromJD(jde)).Time()
}

// MomentFromJD converts a Julian Day to an RD moment in the same time
// scale, going through the Gregorian date.
func MomentFromJD(jd float64) calendar.Moment {
	y, m, d := julian.JDToCalendar(jd)
	whole := math.Floor(d)
	return calendar.Moment(calendar.FixedFromGregorian(y, m, int(whole))) + calendar.Moment(d-whole)
}

var seasonNames = []struct {
	name   string
	lambda float64
}{
	{"march equinox", astro.Spring},
	{"june solstice", astro.Summer},
	{"september equinox", astro.Autumn},
	{"december solstice", astro.Winter},
}

// Seasons compares the four equinox and solstice moments of year with
// github.com/mooncaker816/learnmeeus.
func Seasons(year int, tol time.Duration) []Comparison {
	out := make([]Comparison, 0, len(seasonNames))
	for _, s := range seasonNames {
		m, err := astro.Season(year, s.lambda)
		ours := m.Time()
		out = append(out, compare(s.name, ours, MeeusSeason(year, s.lambda), err == nil, tol))
	}
	return out
}
