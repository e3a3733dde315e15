package astro

import (
	"math"

	"github.com/litescript/ls-solar/internal/calendar"
)

// Direction selects the morning or evening crossing of a depression angle.
type Direction int

const (
	// Morning is the crossing before apparent noon (dawn, sunrise).
	Morning Direction = iota
	// Evening is the crossing after apparent noon (sunset, dusk).
	Evening
)

func (d Direction) String() string {
	if d == Morning {
		return "morning"
	}
	return "evening"
}

const (
	// MaxDepressionIterations bounds the refinement in MomentOfDepression.
	MaxDepressionIterations = 32

	// depressionTolerance is 30 seconds.
	depressionTolerance = 1.0 / 2880
)

// SineOffset returns the sine of the hour-angle offset from 6 a.m./6 p.m.
// apparent time at which the Sun is alpha degrees below the horizon, using
// the Sun's declination at local moment t. Magnitudes above 1 mean the Sun
// never reaches that depression on the day.
func SineOffset(t calendar.Moment, loc Location, alpha float64) float64 {
	tp := UniversalFromLocal(t, loc)
	delta := Declination(tp, 0, SolarLongitude(tp))
	return tand(loc.Latitude)*tand(delta) + sind(alpha)/(cosd(delta)*cosd(loc.Latitude))
}

// ApproxMomentOfDepression estimates, in local mean time, when the Sun is
// alpha degrees below the horizon on the day containing local moment t.
// The second result is false when no such moment exists.
func ApproxMomentOfDepression(t calendar.Moment, loc Location, alpha float64, dir Direction) (calendar.Moment, bool) {
	try := SineOffset(t, loc, alpha)
	date := calendar.Moment(t.Fixed())

	value := try
	if math.Abs(try) > 1 {
		// Retry with the declination at midnight or noon.
		var alt calendar.Moment
		switch {
		case alpha < 0:
			alt = date + 0.5
		case dir == Morning:
			alt = date
		default:
			alt = date + 1
		}
		value = SineOffset(alt, loc, alpha)
	}

	if math.Abs(value) > 1 {
		return 0, false
	}

	offset := calendar.Mod3(radToDeg(math.Asin(value))/360, -0.5, 0.5)
	if dir == Morning {
		return LocalFromApparent(date+calendar.Moment(0.25-offset), loc), true
	}
	return LocalFromApparent(date+calendar.Moment(0.75+offset), loc), true
}

// momentOfDepressionLocal refines the estimate from local moment approx
// until successive estimates agree within 30 seconds.
func momentOfDepressionLocal(approx calendar.Moment, loc Location, alpha float64, dir Direction) (calendar.Moment, bool) {
	t := approx
	for i := 0; i < MaxDepressionIterations; i++ {
		next, ok := ApproxMomentOfDepression(t, loc, alpha, dir)
		if !ok {
			return 0, false
		}
		if math.Abs(float64(next-t)) < depressionTolerance {
			return next, true
		}
		t = next
	}
	return 0, false
}

// MomentOfDepression returns the Universal moment near Universal moment
// approx at which the Sun is alpha degrees below the horizon, in the given
// direction. Positive alpha is below the horizon. The second result is
// false when the Sun does not reach that depression on the day or the
// refinement does not settle.
func MomentOfDepression(approx calendar.Moment, loc Location, alpha float64, dir Direction) (calendar.Moment, bool) {
	t, ok := momentOfDepressionLocal(LocalFromUniversal(approx, loc), loc, alpha, dir)
	if !ok {
		return 0, false
	}
	return UniversalFromLocal(t, loc), true
}
