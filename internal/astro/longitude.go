package astro

import (
	"fmt"
	"math"

	"github.com/litescript/ls-solar/internal/calendar"
	"github.com/litescript/ls-solar/internal/rootfind"
)

// daysPerDegree is the mean motion of the Sun in longitude, inverted.
const daysPerDegree = MeanTropicalYear / 360

// seasonWindow is the half-width in days searched around a mean-motion
// estimate. The true Sun leads or lags the mean Sun by under three days.
const seasonWindow = 5

// EstimatePriorSolarLongitude approximates the last Universal moment at or
// before t when the solar longitude was lambda degrees. It takes one
// correction step from the mean-motion estimate and is good to within a
// few minutes.
func EstimatePriorSolarLongitude(lambda float64, t calendar.Moment) calendar.Moment {
	tau := t - calendar.Moment(daysPerDegree*calendar.Mod(SolarLongitude(t)-lambda, 360))
	delta := calendar.Mod3(SolarLongitude(tau)-lambda, -180, 180)
	return min(t, tau-calendar.Moment(daysPerDegree*delta))
}

// longitudeResidual is the signed angular distance of the Sun past lambda.
func longitudeResidual(lambda float64) rootfind.Func {
	return func(x float64) float64 {
		return calendar.Mod3(SolarLongitude(calendar.Moment(x))-lambda, -180, 180)
	}
}

// SolarLongitudeAfter returns the first Universal moment at or after t when
// the solar longitude is lambda degrees.
func SolarLongitudeAfter(lambda float64, t calendar.Moment) (calendar.Moment, error) {
	tau := float64(t) + daysPerDegree*calendar.Mod(lambda-SolarLongitude(t), 360)
	left := math.Max(float64(t), tau-seasonWindow)
	right := tau + seasonWindow
	return solveLongitude(lambda, left, right)
}

// SolarLongitudeBefore returns the last Universal moment at or before t
// when the solar longitude was lambda degrees, refining
// EstimatePriorSolarLongitude to sub-second precision.
func SolarLongitudeBefore(lambda float64, t calendar.Moment) (calendar.Moment, error) {
	est := float64(EstimatePriorSolarLongitude(lambda, t))
	left := est - seasonWindow
	right := math.Min(float64(t), est+seasonWindow)
	return solveLongitude(lambda, left, right)
}

func solveLongitude(lambda, left, right float64) (calendar.Moment, error) {
	f := longitudeResidual(lambda)
	l, r, err := rootfind.Bracket(f, left, right)
	if err != nil {
		return 0, fmt.Errorf("solar longitude %g: %w", lambda, err)
	}
	root, err := rootfind.Bisection(f, l, r)
	if err != nil {
		return 0, fmt.Errorf("solar longitude %g: %w", lambda, err)
	}
	return calendar.Moment(root), nil
}

// Season returns the Universal moment in Gregorian year when the solar
// longitude reaches lambda, e.g. Spring for the March equinox.
func Season(year int, lambda float64) (calendar.Moment, error) {
	jan1 := calendar.Moment(calendar.FixedFromGregorian(year, 1, 1))
	return SolarLongitudeAfter(lambda, jan1)
}
